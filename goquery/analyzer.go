package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// Ensure PageAnalyzer implements pagelens.PageAnalyzer at compile time.
var _ pagelens.PageAnalyzer = (*PageAnalyzer)(nil)

// PageAnalyzer computes the page-level metadata snapshot: document
// metadata, link/image/heading inventories, and the SEO, performance, and
// security read-only snapshots. Everything is computed in one pass over a
// freshly parsed document and never mutated afterwards.
type PageAnalyzer struct{}

// NewPageAnalyzer creates a new PageAnalyzer.
func NewPageAnalyzer() *PageAnalyzer {
	return &PageAnalyzer{}
}

// Analyze builds the full analysis for the page.
func (a *PageAnalyzer) Analyze(page *pagelens.Page) (*pagelens.PageAnalysis, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	analysis := &pagelens.PageAnalysis{
		Title:    cleanText(doc.Find("title").First().Text()),
		Metadata: make(map[string]string),
	}

	seo := &pagelens.SEOData{
		Title:        analysis.Title,
		OpenGraph:    make(map[string]string),
		TwitterCards: make(map[string]string),
	}

	doc.Find("meta").Each(func(_ int, m *goquery.Selection) {
		content := m.AttrOr("content", "")
		if content == "" {
			return
		}
		name := m.AttrOr("name", "")
		property := m.AttrOr("property", "")

		key := name
		if key == "" {
			key = property
		}
		if key != "" {
			analysis.Metadata[key] = content
		}

		switch strings.ToLower(name) {
		case "description":
			analysis.Description = content
			seo.MetaDescription = content
		case "keywords":
			analysis.Keywords = content
			seo.MetaKeywords = content
		case "robots":
			seo.Robots = content
		case "viewport":
			seo.HasViewport = true
		}
		if strings.HasPrefix(property, "og:") {
			seo.OpenGraph[property] = content
		}
		if strings.HasPrefix(name, "twitter:") {
			seo.TwitterCards[name] = content
		}
	})

	seo.Canonical = doc.Find(`link[rel="canonical"]`).First().AttrOr("href", "")
	seo.H1Count = doc.Find("h1").Length()
	seo.HasStructured = doc.Find(`script[type="application/ld+json"], [itemscope], [typeof]`).Length() > 0

	pageHost := hostOf(page.URL)
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "javascript:") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "#") {
			return
		}
		resolved := resolveURL(page.URL, href)
		analysis.Links = append(analysis.Links, pagelens.Link{
			URL:  resolved,
			Text: truncate(cleanText(link.Text()), 200),
			Rel:  link.AttrOr("rel", ""),
		})
		if hostOf(resolved) == pageHost {
			seo.InternalLinks++
		} else {
			seo.ExternalLinks++
		}
	})

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := firstAttr(img, "src", "data-src")
		if src == "" || placeholderImageRe.MatchString(src) {
			return
		}
		alt := img.AttrOr("alt", "")
		analysis.Images = append(analysis.Images, pagelens.Image{
			URL: resolveURL(page.URL, src),
			Alt: alt,
		})
		seo.ImagesTotal++
		if alt != "" {
			seo.ImagesWithAlt++
		}
	})

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		text := cleanText(h.Text())
		if text == "" {
			return
		}
		analysis.Headings = append(analysis.Headings, pagelens.Heading{
			Level: int(goquery.NodeName(h)[1] - '0'),
			Text:  truncate(text, 300),
		})
	})

	analysis.Text = visibleText(doc)
	analysis.SEO = seo
	analysis.Performance = performanceSnapshot(doc, page)
	analysis.Security = securitySnapshot(doc, page)
	return analysis, nil
}

// visibleText returns the body text with script and style content removed.
func visibleText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	if body.Length() == 0 {
		return cleanText(doc.Text())
	}
	body.Find("script, style, noscript").Remove()
	return cleanText(body.Text())
}

func performanceSnapshot(doc *goquery.Document, page *pagelens.Page) *pagelens.PerformanceMetrics {
	return &pagelens.PerformanceMetrics{
		HTMLSize:        len(page.HTML),
		TextSize:        len(visibleText(doc)),
		ScriptCount:     doc.Find("script").Length(),
		StylesheetCount: doc.Find(`link[rel="stylesheet"], style`).Length(),
		ImageCount:      doc.Find("img").Length(),
		IframeCount:     doc.Find("iframe").Length(),
		DOMNodes:        doc.Find("*").Length(),
	}
}

func securitySnapshot(doc *goquery.Document, page *pagelens.Page) *pagelens.SecurityScan {
	scan := &pagelens.SecurityScan{
		HTTPS: strings.HasPrefix(page.URL, "https://"),
	}

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			scan.ExternalScripts++
			if scan.HTTPS && strings.HasPrefix(src, "http://") {
				scan.MixedContent = true
			}
		} else if strings.TrimSpace(s.Text()) != "" {
			scan.InlineScripts++
		}
	})

	doc.Find("img[src], link[href], iframe[src]").Each(func(_ int, el *goquery.Selection) {
		src := firstAttr(el, "src", "href")
		if scan.HTTPS && strings.HasPrefix(src, "http://") {
			scan.MixedContent = true
		}
	})

	doc.Find("form[action]").Each(func(_ int, f *goquery.Selection) {
		if strings.HasPrefix(f.AttrOr("action", ""), "http://") {
			scan.InsecureFormAction = true
		}
	})
	return scan
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
