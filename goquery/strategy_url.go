package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
	"golang.org/x/net/html"
)

// Ensure URLStrategy implements pagelens.ProductStrategy at compile time.
var _ pagelens.ProductStrategy = (*URLStrategy)(nil)

// URLStrategy flags anchors whose href matches product-URL patterns
// (/product/, /p/, /produs/, product_id=, ...) and extracts from the
// nearest product-looking ancestor container.
type URLStrategy struct{}

// NewURLStrategy creates a new URLStrategy.
func NewURLStrategy() *URLStrategy {
	return &URLStrategy{}
}

// Name returns the strategy identifier.
func (s *URLStrategy) Name() string { return SourceURLPattern }

// Detect scans anchors for product-looking hrefs.
func (s *URLStrategy) Detect(page *pagelens.Page) ([]*pagelens.Product, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	var products []*pagelens.Product
	seen := make(map[*html.Node]bool)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !productURLRe.MatchString(href) {
			return
		}

		container := findProductContainer(a, 4)
		node := container.Get(0)
		if seen[node] {
			return
		}
		seen[node] = true

		p := extractCandidate(container, page, SourceURLPattern, confidenceURLPattern)
		if p == nil {
			return
		}
		p.URL = resolveURL(page.URL, href)
		products = append(products, p)
	})
	return products, nil
}
