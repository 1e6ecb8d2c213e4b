package pagelens

// Platform identifies an e-commerce platform.
type Platform string

// Known e-commerce platforms.
const (
	PlatformUnknown     Platform = ""
	PlatformShopify     Platform = "shopify"
	PlatformWooCommerce Platform = "woocommerce"
	PlatformMagento     Platform = "magento"
	PlatformPrestaShop  Platform = "prestashop"
)

// PlatformDetector fingerprints known e-commerce platforms from markup.
//
// A platform is declared detected only when at least two of its indicator
// strings match; a single generic class name is not enough.
type PlatformDetector interface {
	// Detect analyzes the page and returns the identified platform.
	// Returns PlatformUnknown if no platform crosses the threshold.
	Detect(page *Page) Platform
}
