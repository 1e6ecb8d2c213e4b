// Package goquery provides DOM-facing implementations of the pagelens
// detection interfaces: structured data extraction, platform
// fingerprinting, the product detection strategies, and the article and
// contact detectors. All traversal is read-only; every component parses
// the page HTML itself so strategies stay independent and safe to run
// concurrently.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// parse builds a goquery document from the page HTML.
func parse(page *pagelens.Page) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, pagelens.Errorf(pagelens.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// cleanText collapses whitespace runs in element text to single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolveURL resolves href against the page URL. Returns the href
// unchanged when either side fails to parse.
func resolveURL(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// firstAttr returns the first non-empty attribute among names.
func firstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
