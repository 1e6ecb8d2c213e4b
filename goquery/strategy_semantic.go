package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
	"golang.org/x/net/html"
)

// semanticSelectors are generic product markers independent of any
// platform.
var semanticSelectors = []string{
	`[itemtype*="Product"]`,
	"[data-product]",
	"[data-product-id]",
	".product",
	".product-item",
	".product-card",
	".product-box",
	"article.product",
}

// Ensure SemanticStrategy implements pagelens.ProductStrategy at compile time.
var _ pagelens.ProductStrategy = (*SemanticStrategy)(nil)

// SemanticStrategy scans generic semantic product selectors. An element is
// accepted only if it has either an image or a price AND matches the page
// language's commerce vocabulary, which suppresses noise from generic
// "product" class names.
type SemanticStrategy struct{}

// NewSemanticStrategy creates a new SemanticStrategy.
func NewSemanticStrategy() *SemanticStrategy {
	return &SemanticStrategy{}
}

// Name returns the strategy identifier.
func (s *SemanticStrategy) Name() string { return SourceSemantic }

// Detect scans the semantic selector list and extracts gated candidates.
func (s *SemanticStrategy) Detect(page *pagelens.Page) ([]*pagelens.Product, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	keywords := keywordsForLanguage(page.Language)

	var products []*pagelens.Product
	seen := make(map[*html.Node]bool)

	for _, selector := range semanticSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			node := sel.Get(0)
			if seen[node] {
				return
			}
			seen[node] = true

			text := sel.Text()
			hasImage := sel.Find("img").Length() > 0
			hasPrice := priceRe.MatchString(text)
			if !hasImage && !hasPrice {
				return
			}
			if !keywords.MatchString(text) {
				return
			}

			if p := extractCandidate(sel, page, SourceSemantic, confidenceSemantic); p != nil {
				products = append(products, p)
			}
		})
	}
	return products, nil
}
