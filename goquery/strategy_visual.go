package goquery

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// visualContainerSelectors approximate "visually prominent" blocks.
var visualContainerSelectors = []string{
	".card", ".tile", ".box", ".cell", ".grid-item", ".col", "article", "li",
}

// buyControlSelectors match add-to-cart style controls.
const buyControlSelectors = `button, input[type="submit"], .add-to-cart, .btn-cart, [name="add"], .buy-button`

// minVisualSize is the smallest declared pixel dimension accepted when an
// element carries explicit size information.
const minVisualSize = 100

var styleSizeRe = regexp.MustCompile(`(?i)(?:width|height)\s*:\s*(\d+)px`)

// Ensure VisualStrategy implements pagelens.ProductStrategy at compile time.
var _ pagelens.ProductStrategy = (*VisualStrategy)(nil)

// VisualStrategy accepts elements that look like product tiles: large
// enough (when the markup declares a size; there is no renderer, so
// declared width/height attributes and inline styles stand in for the
// rendered bounding box) and containing an image, a price-like element, or
// an add-to-cart control.
type VisualStrategy struct{}

// NewVisualStrategy creates a new VisualStrategy.
func NewVisualStrategy() *VisualStrategy {
	return &VisualStrategy{}
}

// Name returns the strategy identifier.
func (s *VisualStrategy) Name() string { return SourceVisualCue }

// Detect scans visually prominent containers for product cues.
func (s *VisualStrategy) Detect(page *pagelens.Page) ([]*pagelens.Product, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	var products []*pagelens.Product
	for _, selector := range visualContainerSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if tooSmall(sel) {
				return
			}

			hasImage := sel.Find("img").Length() > 0
			hasPrice := priceRe.MatchString(sel.Text())
			hasControl := sel.Find(buyControlSelectors).Length() > 0
			if !hasImage && !hasPrice && !hasControl {
				return
			}

			if p := extractCandidate(sel, page, SourceVisualCue, confidenceVisualCue); p != nil {
				products = append(products, p)
			}
		})
	}
	return products, nil
}

// tooSmall reports whether the element declares a pixel size below the
// visual threshold. Elements without declared sizes are not rejected.
func tooSmall(sel *goquery.Selection) bool {
	check := func(v string) bool {
		n, err := strconv.Atoi(v)
		return err == nil && n > 0 && n < minVisualSize
	}

	if w, ok := sel.Attr("width"); ok && check(w) {
		return true
	}
	if h, ok := sel.Attr("height"); ok && check(h) {
		return true
	}
	if style, ok := sel.Attr("style"); ok {
		for _, m := range styleSizeRe.FindAllStringSubmatch(style, -1) {
			if check(m[1]) {
				return true
			}
		}
	}
	return false
}
