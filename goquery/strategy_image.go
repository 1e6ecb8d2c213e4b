package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
	"golang.org/x/net/html"
)

// Ensure ImageStrategy implements pagelens.ProductStrategy at compile time.
var _ pagelens.ProductStrategy = (*ImageStrategy)(nil)

// ImageStrategy flags img elements whose src, alt, or class contain
// product-indicative substrings, then extracts from the nearest ancestor
// container carrying product markup.
type ImageStrategy struct{}

// NewImageStrategy creates a new ImageStrategy.
func NewImageStrategy() *ImageStrategy {
	return &ImageStrategy{}
}

// Name returns the strategy identifier.
func (s *ImageStrategy) Name() string { return SourceImageBased }

// Detect scans images for product indicators.
func (s *ImageStrategy) Detect(page *pagelens.Page) ([]*pagelens.Product, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	var products []*pagelens.Product
	seen := make(map[*html.Node]bool)

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		marker := img.AttrOr("src", "") + " " + img.AttrOr("alt", "") + " " + img.AttrOr("class", "")
		if !productImageRe.MatchString(marker) {
			return
		}

		container := findProductContainer(img, 5)
		if container.Get(0) == img.Get(0) {
			// An image with no product-looking ancestor is a dead end.
			return
		}
		node := container.Get(0)
		if seen[node] {
			return
		}
		seen[node] = true

		if p := extractCandidate(container, page, SourceImageBased, confidenceImageBased); p != nil {
			products = append(products, p)
		}
	})
	return products, nil
}
