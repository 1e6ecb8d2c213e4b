package goquery

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// Bounds on candidate text length for the text-pattern scan. Shorter
// blocks carry too little signal; longer ones are page sections, not
// single product tiles.
const (
	minTextCandidateLen = 30
	maxTextCandidateLen = 800
)

// minKeywordHits is the commerce keyword density gate.
const minKeywordHits = 3

// Ensure TextStrategy implements pagelens.ProductStrategy at compile time.
var _ pagelens.ProductStrategy = (*TextStrategy)(nil)

// TextStrategy scans generic elements for language-specific commerce
// keyword density (price, stock, warranty vocabulary) combined with a
// price token.
type TextStrategy struct{}

// NewTextStrategy creates a new TextStrategy.
func NewTextStrategy() *TextStrategy {
	return &TextStrategy{}
}

// Name returns the strategy identifier.
func (s *TextStrategy) Name() string { return SourceTextPattern }

// Detect scans block elements for keyword-dense product copy.
func (s *TextStrategy) Detect(page *pagelens.Page) ([]*pagelens.Product, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	keywords := keywordsForLanguage(page.Language)

	var products []*pagelens.Product
	doc.Find("div, li, article, section").Each(func(_ int, sel *goquery.Selection) {
		text := cleanText(sel.Text())
		n := utf8.RuneCountInString(text)
		if n < minTextCandidateLen || n > maxTextCandidateLen {
			return
		}

		// Prefer leaf-ish containers: a child that matches on its own
		// will be (or has been) visited separately.
		if sel.ChildrenFiltered("div, li, article, section").Length() > 3 {
			return
		}

		if !priceRe.MatchString(text) {
			return
		}
		if len(keywords.FindAllStringIndex(text, -1)) < minKeywordHits {
			return
		}

		if p := extractCandidate(sel, page, SourceTextPattern, confidenceTextPattern); p != nil {
			products = append(products, p)
		}
	})
	return products, nil
}
