package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
	"golang.org/x/net/html"
)

// Ensure LinkStrategy implements pagelens.ProductStrategy at compile time.
var _ pagelens.ProductStrategy = (*LinkStrategy)(nil)

// LinkStrategy flags anchors whose text or class suggests a "view product"
// call to action and extracts from their container.
type LinkStrategy struct{}

// NewLinkStrategy creates a new LinkStrategy.
func NewLinkStrategy() *LinkStrategy {
	return &LinkStrategy{}
}

// Name returns the strategy identifier.
func (s *LinkStrategy) Name() string { return SourceLinkBased }

// Detect scans anchors for product call-to-action text.
func (s *LinkStrategy) Detect(page *pagelens.Page) ([]*pagelens.Product, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	var products []*pagelens.Product
	seen := make(map[*html.Node]bool)

	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		marker := cleanText(a.Text()) + " " + a.AttrOr("class", "") + " " + a.AttrOr("title", "")
		if !productLinkTextRe.MatchString(marker) {
			return
		}

		container := findProductContainer(a, 4)
		node := container.Get(0)
		if seen[node] {
			return
		}
		seen[node] = true

		p := extractCandidate(container, page, SourceLinkBased, confidenceLinkBased)
		if p == nil {
			return
		}
		if href := a.AttrOr("href", ""); href != "" {
			p.URL = resolveURL(page.URL, href)
		}
		products = append(products, p)
	})
	return products, nil
}
