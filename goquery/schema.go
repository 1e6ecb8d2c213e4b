package goquery

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// Ensure SchemaExtractor implements pagelens.SchemaExtractor at compile time.
var _ pagelens.SchemaExtractor = (*SchemaExtractor)(nil)

// SchemaExtractor pulls JSON-LD, microdata, and RDFa blocks out of a page.
type SchemaExtractor struct {
	logger *slog.Logger
}

// SchemaOption configures a SchemaExtractor.
type SchemaOption func(*SchemaExtractor)

// WithSchemaLogger sets the logger used to report skipped malformed blocks.
func WithSchemaLogger(logger *slog.Logger) SchemaOption {
	return func(e *SchemaExtractor) {
		e.logger = logger
	}
}

// NewSchemaExtractor creates a new SchemaExtractor.
func NewSchemaExtractor(opts ...SchemaOption) *SchemaExtractor {
	e := &SchemaExtractor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractSchema returns every structured data block found in the page, in
// document order grouped by kind: JSON-LD first, then microdata, then RDFa.
func (e *SchemaExtractor) ExtractSchema(page *pagelens.Page) ([]pagelens.StructuredData, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	var out []pagelens.StructuredData
	out = append(out, e.extractJSONLD(doc, page.URL)...)
	out = append(out, extractMicrodata(doc)...)
	out = append(out, extractRDFa(doc)...)
	return out, nil
}

// extractJSONLD parses every ld+json script. A malformed script is logged
// and skipped; it never aborts extraction of the remaining scripts.
func (e *SchemaExtractor) extractJSONLD(doc *goquery.Document, pageURL string) []pagelens.StructuredData {
	var out []pagelens.StructuredData

	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}

		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			e.logger.Warn("skipping malformed JSON-LD block",
				"url", pageURL,
				"index", i,
				"error", err,
			)
			return
		}

		switch v := parsed.(type) {
		case map[string]any:
			out = append(out, pagelens.StructuredData{Type: pagelens.SchemaJSONLD, Data: v})
		case []any:
			// A top-level array holds independent entities.
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					out = append(out, pagelens.StructuredData{Type: pagelens.SchemaJSONLD, Data: m})
				}
			}
		}
	})
	return out
}

// extractMicrodata walks every itemscope element and builds an object from
// its itemtype and descendant itemprop elements.
func extractMicrodata(doc *goquery.Document) []pagelens.StructuredData {
	var out []pagelens.StructuredData

	doc.Find("[itemscope]").Each(func(_ int, scope *goquery.Selection) {
		data := make(map[string]any)
		if itemType, ok := scope.Attr("itemtype"); ok {
			data["@type"] = itemType
		}

		scope.Find("[itemprop]").Each(func(_ int, prop *goquery.Selection) {
			name, _ := prop.Attr("itemprop")
			if name == "" {
				return
			}
			value := microdataValue(prop)
			if value == "" {
				return
			}

			// Repeated itemprop names fold into an array under one key.
			switch existing := data[name].(type) {
			case nil:
				data[name] = value
			case string:
				data[name] = []any{existing, value}
			case []any:
				data[name] = append(existing, value)
			}
		})

		if len(data) > 0 {
			out = append(out, pagelens.StructuredData{Type: pagelens.SchemaMicrodata, Data: data})
		}
	})
	return out
}

// microdataValue reads the value of an itemprop element from the attribute
// appropriate to its tag, falling back to text content.
func microdataValue(sel *goquery.Selection) string {
	switch goquery.NodeName(sel) {
	case "meta":
		return firstAttr(sel, "content")
	case "img", "audio", "video", "embed", "iframe", "source":
		return firstAttr(sel, "src")
	case "a", "link", "area":
		return firstAttr(sel, "href")
	case "time":
		if v := firstAttr(sel, "datetime"); v != "" {
			return v
		}
	case "data", "meter":
		if v := firstAttr(sel, "value"); v != "" {
			return v
		}
	}
	return cleanText(sel.Text())
}

// extractRDFa walks every element carrying typeof and reads its
// property/content pairs. Nested RDFa scopes are not recursively merged.
func extractRDFa(doc *goquery.Document) []pagelens.StructuredData {
	var out []pagelens.StructuredData

	doc.Find("[typeof]").Each(func(_ int, scope *goquery.Selection) {
		data := make(map[string]any)
		if t, ok := scope.Attr("typeof"); ok {
			data["@type"] = t
		}

		scope.Find("[property]").Each(func(_ int, prop *goquery.Selection) {
			name, _ := prop.Attr("property")
			if name == "" {
				return
			}
			value := firstAttr(prop, "content")
			if value == "" {
				value = cleanText(prop.Text())
			}
			if value == "" {
				return
			}
			if _, exists := data[name]; !exists {
				data[name] = value
			}
		})

		if len(data) > 1 {
			out = append(out, pagelens.StructuredData{Type: pagelens.SchemaRDFa, Data: data})
		}
	})
	return out
}
