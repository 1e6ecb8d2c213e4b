package goquery

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pagelens/pagelens"
)

// Strategy names, used as the Source of every candidate a strategy emits.
const (
	SourceStructuredData   = "structured-data"
	SourcePlatformSelector = "platform-selector"
	SourceSemantic         = "semantic"
	SourceVisualCue        = "visual-cue"
	SourceTextPattern      = "text-pattern"
	SourceURLPattern       = "url-pattern"
	SourceImageBased       = "image-based"
	SourceLinkBased        = "link-based"
)

// Strategy confidence scores, ordered by how trustworthy the extraction
// method is.
const (
	confidenceStructuredData = 0.95
	confidencePlatform       = 0.85
	confidenceSemantic       = 0.75
	confidenceURLPattern     = 0.70
	confidenceVisualCue      = 0.65
	confidenceTextPattern    = 0.60
	confidenceLinkBased      = 0.60
	confidenceImageBased     = 0.55
)

// Ensure SchemaStrategy implements pagelens.ProductStrategy at compile time.
var _ pagelens.ProductStrategy = (*SchemaStrategy)(nil)

// SchemaStrategy builds product candidates from the structured data blocks
// already extracted from the page. It is the highest trust strategy.
type SchemaStrategy struct{}

// NewSchemaStrategy creates a new SchemaStrategy.
func NewSchemaStrategy() *SchemaStrategy {
	return &SchemaStrategy{}
}

// Name returns the strategy identifier.
func (s *SchemaStrategy) Name() string { return SourceStructuredData }

// Detect accepts a structured data item as a product candidate when its
// @type mentions Product or Offer, or when it carries both a name and a
// price.
func (s *SchemaStrategy) Detect(page *pagelens.Page) ([]*pagelens.Product, error) {
	var products []*pagelens.Product

	for _, block := range page.Schema {
		if !isProductItem(block.Data) {
			continue
		}
		if p := productFromSchema(block.Data, page); p != nil {
			products = append(products, p)
		}
	}
	return products, nil
}

func isProductItem(data map[string]any) bool {
	t := strings.ToLower(schemaString(data, "@type"))
	if strings.Contains(t, "product") || strings.Contains(t, "offer") {
		return true
	}
	name := schemaString(data, "name")
	price := schemaPrice(data)
	return name != "" && price != ""
}

func productFromSchema(data map[string]any, page *pagelens.Page) *pagelens.Product {
	name := schemaString(data, "name")
	if n := utf8.RuneCountInString(name); n < pagelens.MinProductNameLen || n > pagelens.MaxProductNameLen {
		return nil
	}

	p := &pagelens.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: schemaString(data, "description"),
		Price:       schemaPrice(data),
		Currency:    schemaCurrency(data),
		Category:    schemaString(data, "category"),
		Brand:       schemaNested(data, "brand"),
		Model:       schemaString(data, "model"),
		SKU:         schemaString(data, "sku"),
		GTIN:        schemaString(data, "gtin13", "gtin"),
		UPC:         schemaString(data, "gtin12", "upc"),
		EAN:         schemaString(data, "ean"),
		MPN:         schemaString(data, "mpn"),
		Images:      schemaStrings(data, "image"),
		Seller:      schemaNested(data, "seller"),

		URL:       page.URL,
		Source:    SourceStructuredData,
		ScrapedAt: time.Now().UTC(),

		ConfidenceScore: confidenceStructuredData,
		Metadata: pagelens.ProductMetadata{
			ScrapingMethod: SourceStructuredData,
			Platform:       string(page.Platform),
		},
	}

	if u := schemaString(data, "url"); u != "" {
		p.URL = resolveURL(page.URL, u)
	}
	if offers, ok := data["offers"].(map[string]any); ok {
		if avail := schemaString(offers, "availability"); avail != "" {
			p.Availability = avail
			if strings.Contains(strings.ToLower(avail), "outofstock") {
				p.StockStatus = "out_of_stock"
			} else if strings.Contains(strings.ToLower(avail), "instock") {
				p.StockStatus = "in_stock"
			}
		}
	}
	if rating, ok := data["aggregateRating"].(map[string]any); ok {
		p.Reviews = &pagelens.ReviewSummary{
			Rating: schemaString(rating, "ratingValue"),
		}
		if c := schemaString(rating, "reviewCount", "ratingCount"); c != "" {
			fmt.Sscanf(c, "%d", &p.Reviews.Count)
		}
	}
	return p
}

// schemaString returns the first present key as a string. Numeric JSON
// values are formatted without a trailing exponent.
func schemaString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := data[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v == float64(int64(v)) {
				return fmt.Sprintf("%d", int64(v))
			}
			return fmt.Sprintf("%g", v)
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// schemaNested reads a value that may be a plain string or an object with
// a name property (schema.org Brand, Organization, Person).
func schemaNested(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case map[string]any:
		return schemaString(v, "name")
	}
	return ""
}

// schemaPrice reads the price from the item itself or its offers object.
func schemaPrice(data map[string]any) string {
	if p := schemaString(data, "price"); p != "" {
		return p
	}
	switch offers := data["offers"].(type) {
	case map[string]any:
		return schemaString(offers, "price", "lowPrice")
	case []any:
		if len(offers) > 0 {
			if m, ok := offers[0].(map[string]any); ok {
				return schemaString(m, "price", "lowPrice")
			}
		}
	}
	return ""
}

func schemaCurrency(data map[string]any) string {
	if c := schemaString(data, "priceCurrency"); c != "" {
		return c
	}
	if offers, ok := data["offers"].(map[string]any); ok {
		return schemaString(offers, "priceCurrency")
	}
	return ""
}

// schemaStrings reads a value that may be a string or a list of strings.
func schemaStrings(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case string:
		if v != "" {
			return []string{v}
		}
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		if u := schemaString(v, "url", "contentUrl"); u != "" {
			return []string{u}
		}
	}
	return nil
}
