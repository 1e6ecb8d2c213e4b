package goquery

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/pagelens/pagelens"
	"golang.org/x/net/html"
)

// SourceArticle tags candidates produced by the selector-based pass;
// SourceArticleFallback tags those recovered by the boilerplate extractor.
const (
	SourceArticle         = "article-selector"
	SourceArticleFallback = "article-extractor"
)

// articleConfidence is fixed: article detection is single-strategy, with
// no multi-strategy fusion to grade against.
const articleConfidence = 0.8

// articleContainerSelectors is the candidate container fallthrough list.
var articleContainerSelectors = []string{
	"article",
	`[itemtype*="Article"]`,
	".post",
	".blog-post",
	".article",
	".entry",
}

var (
	articleTitleSelectors   = []string{"h1", ".entry-title", ".post-title", ".article-title", `[itemprop="headline"]`, "h2"}
	articleContentSelectors = []string{`[itemprop="articleBody"]`, ".entry-content", ".post-content", ".article-content", ".content"}
	articleAuthorSelectors  = []string{`[itemprop="author"]`, `[rel="author"]`, ".author", ".byline", ".post-author"}
	articleDateSelectors    = []string{`[itemprop="datePublished"]`, "time", ".date", ".published", ".post-date"}
	articleCategorySelector = []string{`[itemprop="articleSection"]`, ".category", ".post-category"}
	articleTagSelectors     = []string{".tags a", ".tag", `[rel="tag"]`}
)

// readingWordsPerMinute converts word counts into reading time estimates.
const readingWordsPerMinute = 200

// Ensure ArticleDetector implements pagelens.ArticleDetector at compile time.
var _ pagelens.ArticleDetector = (*ArticleDetector)(nil)

// ArticleDetector finds editorial content with a single selector-based
// pass. When the pass finds nothing, an optional boilerplate-removing
// extractor recovers the page's main content instead; an optional
// converter renders each accepted article's body as Markdown.
type ArticleDetector struct {
	extractor pagelens.Extractor
	converter pagelens.Converter
}

// NewArticleDetector creates a new ArticleDetector. Both dependencies are
// optional; nil disables the fallback or the markdown body respectively.
func NewArticleDetector(extractor pagelens.Extractor, converter pagelens.Converter) *ArticleDetector {
	return &ArticleDetector{extractor: extractor, converter: converter}
}

// DetectArticles extracts articles from the page. Candidates missing a
// title or content are discarded.
func (d *ArticleDetector) DetectArticles(page *pagelens.Page) ([]*pagelens.Article, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	var articles []*pagelens.Article
	seen := make(map[*html.Node]bool)

	for _, selector := range articleContainerSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			node := sel.Get(0)
			if seen[node] {
				return
			}
			seen[node] = true

			if a := d.extractArticle(sel, page); a != nil {
				articles = append(articles, a)
			}
		})
	}

	if len(articles) == 0 && d.extractor != nil {
		if a := d.fallbackArticle(page); a != nil {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

func (d *ArticleDetector) extractArticle(sel *goquery.Selection, page *pagelens.Page) *pagelens.Article {
	title := firstText(sel, articleTitleSelectors)
	content, contentHTML := articleContent(sel)
	if title == "" || content == "" {
		return nil
	}

	a := &pagelens.Article{
		ID:       uuid.New().String(),
		Title:    title,
		Author:   firstText(sel, articleAuthorSelectors),
		Category: firstText(sel, articleCategorySelector),
		Content:  content,
		Images:   extractImages(sel, page),

		URL:       page.URL,
		Source:    SourceArticle,
		ScrapedAt: time.Now().UTC(),

		ConfidenceScore: articleConfidence,
	}

	a.PublishedAt = parseArticleDate(sel, articleDateSelectors)
	a.ModifiedAt = parseMetaDate(sel, "dateModified")

	sel.Find(strings.Join(articleTagSelectors, ", ")).Each(func(_ int, t *goquery.Selection) {
		if tag := cleanText(t.Text()); tag != "" {
			a.Tags = append(a.Tags, tag)
		}
	})

	a.WordCount = len(strings.Fields(content))
	a.ReadingTime = (a.WordCount + readingWordsPerMinute - 1) / readingWordsPerMinute

	if d.converter != nil && contentHTML != "" {
		if md, err := d.converter.Convert(contentHTML); err == nil {
			a.ContentMarkdown = md
		}
	}
	return a
}

// fallbackArticle recovers the page's main content when no selector-based
// candidate was accepted.
func (d *ArticleDetector) fallbackArticle(page *pagelens.Page) *pagelens.Article {
	result, err := d.extractor.Extract(page.HTML)
	if err != nil || result == nil {
		return nil
	}

	content := htmlToText(result.ContentHTML)
	if result.Title == "" || content == "" {
		return nil
	}

	a := &pagelens.Article{
		ID:      uuid.New().String(),
		Title:   result.Title,
		Author:  result.Author,
		Content: content,

		URL:       page.URL,
		Source:    SourceArticleFallback,
		ScrapedAt: time.Now().UTC(),

		ConfidenceScore: articleConfidence,
	}
	if result.PublishedAt != "" {
		if t, err := dateparse.ParseAny(result.PublishedAt); err == nil {
			a.PublishedAt = &t
		}
	}
	a.WordCount = len(strings.Fields(content))
	a.ReadingTime = (a.WordCount + readingWordsPerMinute - 1) / readingWordsPerMinute

	if d.converter != nil && result.ContentHTML != "" {
		if md, err := d.converter.Convert(result.ContentHTML); err == nil {
			a.ContentMarkdown = md
		}
	}
	return a
}

// articleContent returns both the text and the inner HTML of the first
// matching content container, falling back to the container's own text.
func articleContent(sel *goquery.Selection) (text, contentHTML string) {
	for _, s := range articleContentSelectors {
		el := sel.Find(s).First()
		if el.Length() == 0 {
			continue
		}
		if t := cleanText(el.Text()); t != "" {
			h, _ := el.Html()
			return t, h
		}
	}

	// Whole container text minus the title heading.
	clone := sel.Clone()
	clone.Find("h1, h2, h3").Remove()
	if t := cleanText(clone.Text()); utf8.RuneCountInString(t) > 40 {
		h, _ := sel.Html()
		return t, h
	}
	return "", ""
}

func firstText(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		if found := cleanText(sel.Find(s).First().Text()); found != "" {
			return found
		}
	}
	return ""
}

func parseArticleDate(sel *goquery.Selection, selectors []string) *time.Time {
	for _, s := range selectors {
		el := sel.Find(s).First()
		if el.Length() == 0 {
			continue
		}
		raw := firstAttr(el, "datetime", "content")
		if raw == "" {
			raw = cleanText(el.Text())
		}
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return &t
		}
	}
	return nil
}

func parseMetaDate(sel *goquery.Selection, itemprop string) *time.Time {
	raw := itempropText(sel, itemprop)
	if raw == "" {
		return nil
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return &t
	}
	return nil
}

// htmlToText strips tags from an HTML fragment.
func htmlToText(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return cleanText(doc.Text())
}
