// Package trafilatura provides the boilerplate-removing main content
// extractor used as the article detector's fallback path.
package trafilatura

import (
	"bytes"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
	"github.com/pagelens/pagelens"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagelens.Extractor at compile time.
var _ pagelens.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content plus whatever
// document metadata trafilatura recovers.
func (e *Extractor) Extract(rawHTML string) (*pagelens.ExtractResult, error) {
	if rawHTML == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	out := &pagelens.ExtractResult{
		Title:       result.Metadata.Title,
		Author:      result.Metadata.Author,
		Excerpt:     result.Metadata.Description,
		ContentHTML: contentHTML,
	}
	if !result.Metadata.Date.IsZero() {
		out.PublishedAt = result.Metadata.Date.Format(time.RFC3339)
	}
	return out, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
