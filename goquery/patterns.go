package goquery

import (
	"regexp"

	"github.com/pagelens/pagelens"
)

// Immutable pattern tables shared by the detection strategies. Everything
// here is compiled once at process start and only ever read afterwards.

// priceRe matches a decimal-like price token with an optional currency
// marker on either side.
var priceRe = regexp.MustCompile(`(?i)(?:€|\$|£|lei|ron|eur|usd|gbp)?\s*\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{1,2})?\s*(?:€|\$|£|lei|ron|eur|usd|gbp)\b|\d{1,3}(?:[.,]\d{3})*[.,]\d{2}\b`)

// currencyRe pulls the currency marker out of a price string.
var currencyRe = regexp.MustCompile(`(?i)(€|\$|£|lei|ron|eur|usd|gbp)`)

var currencyCodes = map[string]string{
	"€": "EUR", "eur": "EUR",
	"$": "USD", "usd": "USD",
	"£": "GBP", "gbp": "GBP",
	"lei": "RON", "ron": "RON",
}

// productKeywords gates semantic candidates: an element must match the
// page language's commerce vocabulary to be accepted.
var productKeywords = map[pagelens.Language]*regexp.Regexp{
	pagelens.LangRomanian:   regexp.MustCompile(`(?i)(preț|pret|lei|cumpără|cumpara|adaugă în coș|adauga in cos|coș|cos|livrare|garanție|garantie|stoc|reducere|ofertă|oferta|produs)`),
	pagelens.LangEnglish:    regexp.MustCompile(`(?i)(price|buy|add to cart|cart|basket|shipping|delivery|warranty|stock|sale|discount|offer|product)`),
	pagelens.LangFrench:     regexp.MustCompile(`(?i)(prix|acheter|ajouter au panier|panier|livraison|garantie|stock|promo|réduction|produit)`),
	pagelens.LangSpanish:    regexp.MustCompile(`(?i)(precio|comprar|añadir al carrito|carrito|envío|envio|garantía|garantia|stock|oferta|descuento|producto)`),
	pagelens.LangGerman:     regexp.MustCompile(`(?i)(preis|kaufen|in den warenkorb|warenkorb|versand|garantie|lager|angebot|rabatt|produkt)`),
	pagelens.LangItalian:    regexp.MustCompile(`(?i)(prezzo|acquista|aggiungi al carrello|carrello|spedizione|garanzia|disponibilità|offerta|sconto|prodotto)`),
	pagelens.LangPortuguese: regexp.MustCompile(`(?i)(preço|preco|comprar|adicionar ao carrinho|carrinho|envio|garantia|estoque|oferta|desconto|produto)`),
}

// keywordsForLanguage returns the commerce vocabulary for lang, falling
// back to English for unknown languages.
func keywordsForLanguage(lang pagelens.Language) *regexp.Regexp {
	if re, ok := productKeywords[lang]; ok {
		return re
	}
	return productKeywords[pagelens.LangEnglish]
}

// categoryTaxonomy maps category names to keyword patterns, tried in order.
// The taxonomy follows the Romanian retail vocabulary the engine was
// originally tuned for, with English equivalents folded in.
var categoryTaxonomy = []struct {
	Name    string
	Pattern *regexp.Regexp
}{
	{"telefoane", regexp.MustCompile(`(?i)(telefon|smartphone|iphone|mobile phone)`)},
	{"laptopuri", regexp.MustCompile(`(?i)(laptop|notebook|ultrabook|macbook)`)},
	{"electronice", regexp.MustCompile(`(?i)(electronic|televizor|tv|monitor|tabletă|tableta|tablet|căști|casti|headphone|boxe|speaker|cablu|cable|hdmi|usb)`)},
	{"electrocasnice", regexp.MustCompile(`(?i)(frigider|mașină de spălat|masina de spalat|aragaz|cuptor|aspirator|espressor|washing machine|fridge|oven)`)},
	{"imbracaminte", regexp.MustCompile(`(?i)(tricou|cămașă|camasa|rochie|pantaloni|geacă|geaca|pulover|t-shirt|dress|jacket|jeans)`)},
	{"incaltaminte", regexp.MustCompile(`(?i)(pantofi|adidași|adidasi|ghete|sandale|cizme|shoes|sneakers|boots)`)},
	{"jucarii", regexp.MustCompile(`(?i)(jucărie|jucarie|jucării|jucarii|lego|păpușă|papusa|toy|puzzle)`)},
	{"carti", regexp.MustCompile(`(?i)(carte|cărți|roman|book|novel|manual)`)},
	{"sport", regexp.MustCompile(`(?i)(bicicletă|bicicleta|fitness|minge|gantere|sport|bicycle|dumbbell)`)},
	{"auto", regexp.MustCompile(`(?i)(anvelope|jante|acumulator auto|ulei motor|car tire|motor oil)`)},
	{"gradina", regexp.MustCompile(`(?i)(grădină|gradina|gazon|motocoasă|motocoasa|garden|lawn)`)},
	{"cosmetice", regexp.MustCompile(`(?i)(parfum|cremă|crema|ruj|șampon|sampon|makeup|perfume|shampoo)`)},
}

// Localized stock status vocabularies.
var (
	inStockRe = regexp.MustCompile(`(?i)(în stoc|in stoc|disponibil|in stock|available|auf lager|en stock|disponibile|em estoque)`)
	outStockRe = regexp.MustCompile(`(?i)(stoc epuizat|epuizat|indisponibil|out of stock|sold out|unavailable|nicht verfügbar|agotado|esaurito|esgotado)`)
	preorderRe = regexp.MustCompile(`(?i)(precomandă|precomanda|pre-?order|disponibil la comandă|disponibil la comanda)`)
)

// productURLRe matches anchors that look like product detail pages.
var productURLRe = regexp.MustCompile(`(?i)(/product/|/produs/|/produse/|/p/|/item/|/dp/|/prod/|product_id=|id_product=|/products/)`)

// productImageRe flags product-indicative substrings in image src, alt, or
// class attributes.
var productImageRe = regexp.MustCompile(`(?i)(product|produs|item|sku|catalog)`)

// productLinkTextRe flags anchors whose text or class suggests a product
// detail link.
var productLinkTextRe = regexp.MustCompile(`(?i)(view product|see details|quick view|buy now|shop now|vezi produs|vezi detalii|detalii produs|cumpără acum|cumpara acum|adaugă în coș|adauga in cos)`)

// placeholderImageRe excludes loading placeholders and tracking pixels
// from extracted image lists.
var placeholderImageRe = regexp.MustCompile(`(?i)(placeholder|spinner|loading|lazy\.|blank\.|pixel\.|data:image/gif)`)

// specRowRe parses "label: value" specification rows from list items.
var specRowRe = regexp.MustCompile(`^\s*([^:]{2,60}?)\s*:\s*(.+?)\s*$`)

// dimensionsRe matches "30 x 20 x 10 cm" style dimension strings.
var dimensionsRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*[x×]\s*(\d+(?:[.,]\d+)?)\s*[x×]\s*(\d+(?:[.,]\d+)?)\s*(mm|cm|m|in)?`)

// weightRe matches a standalone weight token.
var weightRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(kg|g|lb|lbs)\b`)

// ratingRe matches "4.5 / 5" or "4,5 din 5" style review ratings.
var ratingRe = regexp.MustCompile(`(\d(?:[.,]\d)?)\s*(?:/|din|out of|of)\s*5`)

// reviewCountRe matches "(123 reviews)" / "123 recenzii" style counts.
var reviewCountRe = regexp.MustCompile(`(?i)(\d+)\s*(?:reviews|review|recenzii|recenzie|ratings|opinii)`)

// promotionRe flags promotional copy near a candidate.
var promotionRe = regexp.MustCompile(`(?i)(reducere|ofertă|oferta|promoție|promotie|discount|sale|-\d{1,2}\s*%|\d{1,2}\s*%\s*off|black friday|transport gratuit|free shipping)`)

// deliveryRe flags delivery copy near a candidate.
var deliveryRe = regexp.MustCompile(`(?i)(livrare[^.<]{0,80}|delivery[^.<]{0,80}|shipping[^.<]{0,80}|transport gratuit[^.<]{0,40})`)

// knownColors is the color vocabulary scanned in candidate text.
var knownColors = []string{
	"negru", "alb", "roșu", "rosu", "albastru", "verde", "gri", "argintiu", "auriu", "roz", "galben", "maro", "mov",
	"black", "white", "red", "blue", "green", "gray", "grey", "silver", "gold", "pink", "yellow", "brown", "purple",
}

// knownMaterials is the material vocabulary scanned in candidate text.
var knownMaterials = []string{
	"bumbac", "piele", "lemn", "metal", "aluminiu", "oțel", "otel", "sticlă", "sticla", "plastic", "ceramică", "ceramica", "lână", "lana",
	"cotton", "leather", "wood", "aluminium", "aluminum", "steel", "glass", "ceramic", "wool", "polyester", "silicon", "silicone",
}

// sizeTokenRe matches clothing/shoe size tokens in size option lists.
var sizeTokenRe = regexp.MustCompile(`^(XXS|XS|S|M|L|XL|XXL|XXXL|\d{2}(?:[.,]5)?|EU\s?\d{2})$`)

// platformIndicators fingerprints known e-commerce platforms. A platform
// is detected only when at least two indicators appear in the HTML or URL.
var platformIndicators = []struct {
	Platform   pagelens.Platform
	Indicators []string
}{
	{pagelens.PlatformShopify, []string{
		"cdn.shopify.com", "myshopify.com", "shopify-section", "shopify.theme", "/cdn/shop/", "shopify-payment-button",
	}},
	{pagelens.PlatformWooCommerce, []string{
		"woocommerce", "wc-block", "wp-content/plugins/woocommerce", "woocommerce-loop-product", "add-to-cart=", "wc_add_to_cart",
	}},
	{pagelens.PlatformMagento, []string{
		"magento", "mage/cookies", "mage-init", "catalog/product/view", "varien", "static/frontend",
	}},
	{pagelens.PlatformPrestaShop, []string{
		"prestashop", "id_product=", "/modules/ps_", "presta", "blockcart", "prestashop.min.js",
	}},
}

// platformSelectors maps a detected platform to its known product
// container selectors, used by the platform-selector strategy.
var platformSelectors = map[pagelens.Platform][]string{
	pagelens.PlatformShopify: {
		".product-form", ".product-single", ".product-card", ".grid-product", "[data-product-id]",
	},
	pagelens.PlatformWooCommerce: {
		"li.product", ".woocommerce ul.products .product", ".wc-block-grid__product", ".product.type-product",
	},
	pagelens.PlatformMagento: {
		".product-item", ".product-info-main", ".item.product", ".product-item-info",
	},
	pagelens.PlatformPrestaShop: {
		".product-miniature", "#product", ".product-container", ".js-product-miniature",
	},
}
