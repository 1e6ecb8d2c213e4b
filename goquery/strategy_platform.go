package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
	"golang.org/x/net/html"
)

// Ensure PlatformStrategy implements pagelens.ProductStrategy at compile time.
var _ pagelens.ProductStrategy = (*PlatformStrategy)(nil)

// PlatformStrategy queries the detected platform's known product container
// selectors. It contributes nothing when no platform was fingerprinted.
type PlatformStrategy struct{}

// NewPlatformStrategy creates a new PlatformStrategy.
func NewPlatformStrategy() *PlatformStrategy {
	return &PlatformStrategy{}
}

// Name returns the strategy identifier.
func (s *PlatformStrategy) Name() string { return SourcePlatformSelector }

// Detect extracts a candidate from every element matching the detected
// platform's product selectors.
func (s *PlatformStrategy) Detect(page *pagelens.Page) ([]*pagelens.Product, error) {
	selectors, ok := platformSelectors[page.Platform]
	if !ok {
		return nil, nil
	}

	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	var products []*pagelens.Product
	seen := make(map[*html.Node]bool)

	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			node := sel.Get(0)
			if seen[node] {
				return
			}
			seen[node] = true
			if p := extractCandidate(sel, page, SourcePlatformSelector, confidencePlatform); p != nil {
				products = append(products, p)
			}
		})
	}
	return products, nil
}
