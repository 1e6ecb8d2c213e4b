package pagelens

import (
	"time"
	"unicode/utf8"
)

// Product name length gate. Candidates outside these bounds are discarded.
const (
	MinProductNameLen = 3
	MaxProductNameLen = 200
)

// Product is the richest extracted entity. Instances are created once per
// run and never mutated after scoring.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Price         string `json:"price,omitempty"`
	OriginalPrice string `json:"originalPrice,omitempty"`
	Currency      string `json:"currency,omitempty"`

	Category     string   `json:"category,omitempty"`
	CategoryPath []string `json:"categoryPath,omitempty"`

	Brand string `json:"brand,omitempty"`
	Model string `json:"model,omitempty"`
	SKU   string `json:"sku,omitempty"`
	GTIN  string `json:"gtin,omitempty"`
	UPC   string `json:"upc,omitempty"`
	EAN   string `json:"ean,omitempty"`
	MPN   string `json:"mpn,omitempty"`

	Images []string `json:"images,omitempty"`
	Videos []string `json:"videos,omitempty"`

	Specifications map[string]string `json:"specifications,omitempty"`
	Features       []string          `json:"features,omitempty"`
	Colors         []string          `json:"colors,omitempty"`
	Sizes          []string          `json:"sizes,omitempty"`
	Variants       []ProductVariant  `json:"variants,omitempty"`
	Dimensions     *Dimensions       `json:"dimensions,omitempty"`
	Materials      []string          `json:"materials,omitempty"`

	Availability string          `json:"availability,omitempty"`
	StockStatus  string          `json:"stockStatus,omitempty"`
	DeliveryInfo string          `json:"deliveryInfo,omitempty"`
	Seller       string          `json:"seller,omitempty"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	Reviews      *ReviewSummary  `json:"reviews,omitempty"`
	Promotions   []string        `json:"promotions,omitempty"`
	Metadata     ProductMetadata `json:"metadata"`

	URL       string    `json:"url,omitempty"`
	Source    string    `json:"source"`
	ScrapedAt time.Time `json:"scraped_at"`

	// ConfidenceScore is assigned by the detection strategy (0.0-1.0).
	ConfidenceScore float64 `json:"confidence_score"`

	// QualityScore is additive and intentionally not clamped to 100.
	QualityScore      int `json:"quality_score"`
	CompletenessScore int `json:"completeness_score"`
	ReliabilityScore  int `json:"reliability_score"`
}

// ProductVariant is one selectable variation of a product.
type ProductVariant struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	Price string `json:"price,omitempty"`
}

// Dimensions holds physical size information as found on the page.
type Dimensions struct {
	Length string `json:"length,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
	Weight string `json:"weight,omitempty"`
	Raw    string `json:"raw,omitempty"`
}

// ReviewSummary aggregates review information found on the page.
type ReviewSummary struct {
	Rating string `json:"rating,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// ProductMetadata records extraction provenance.
type ProductMetadata struct {
	ScrapingMethod string `json:"scraping_method"`
	Platform       string `json:"platform,omitempty"`
}

// Validate returns an error if the product fails the name gate.
func (p *Product) Validate() error {
	n := utf8.RuneCountInString(p.Name)
	if n < MinProductNameLen {
		return Errorf(EINVALID, "product name too short")
	}
	if n > MaxProductNameLen {
		return Errorf(EINVALID, "product name too long")
	}
	return nil
}

// ProductStrategy is one self-contained heuristic that scans a page for
// product candidates using a specific signal. Strategies share no state and
// are safe to run concurrently; each returns its own immutable candidate
// slice tagged with its name.
type ProductStrategy interface {
	// Name returns the strategy identifier used as the candidate Source.
	Name() string

	// Detect scans the page and returns product candidates. Finding
	// nothing is not an error; strategies return an empty slice.
	Detect(page *Page) ([]*Product, error)
}
