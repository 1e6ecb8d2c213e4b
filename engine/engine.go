// Package engine orchestrates a scraping run: fetch, detect, extract,
// deduplicate, score, and assemble the result payload.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/text"
	"golang.org/x/sync/errgroup"
)

// Ensure Engine implements pagelens.Scraper at compile time.
var _ pagelens.Scraper = (*Engine)(nil)

// Engine is the canonical Scraper implementation. All dependencies are
// injected; optional ones (Cache, Enhancer, NewFetcher) may be nil.
type Engine struct {
	Config pagelens.Config

	Fetcher pagelens.Fetcher

	// NewFetcher builds a one-off fetcher honoring per-request config
	// overrides. When nil, overrides that affect fetching are ignored and
	// the shared Fetcher is used as-is.
	NewFetcher func(cfg pagelens.Config) pagelens.Fetcher

	Cache      pagelens.PageCache
	Schema     pagelens.SchemaExtractor
	Platform   pagelens.PlatformDetector
	Strategies []pagelens.ProductStrategy
	Articles   pagelens.ArticleDetector
	Contacts   pagelens.ContactExtractor
	Analyzer   pagelens.PageAnalyzer
	Enhancer   pagelens.Enhancer

	Logger *slog.Logger
}

// Scrape executes one synchronous run for the request.
func (e *Engine) Scrape(ctx context.Context, req *pagelens.Request) (*pagelens.Result, error) {
	begin := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	r := req.Normalize()
	cfg := r.Config.Apply(e.Config)

	html, err := e.fetch(ctx, &r, cfg)
	if err != nil {
		return nil, err
	}
	if len(html) < pagelens.MinDocumentLen {
		return nil, pagelens.Errorf(pagelens.EINVALID, "document too small to parse (%d bytes)", len(html))
	}

	page := &pagelens.Page{
		URL:             r.URL,
		HTML:            html,
		FetchedAt:       time.Now().UTC(),
		CustomSelectors: r.CustomSelectors,
	}

	analysis, err := e.Analyzer.Analyze(page)
	if err != nil {
		return nil, err
	}

	page.Language = pagelens.DetectLanguage(analysis.Text)
	page.Platform = e.Platform.Detect(page)

	schema, err := e.Schema.ExtractSchema(page)
	if err != nil {
		e.logger().Warn("schema extraction failed", "url", r.URL, "err", err)
	}
	page.Schema = schema

	result := &pagelens.Result{
		URL:            r.URL,
		Title:          analysis.Title,
		Description:    analysis.Description,
		Keywords:       analysis.Keywords,
		Language:       page.Language,
		Platform:       page.Platform,
		Text:           truncate(analysis.Text, pagelens.MaxResultTextLen),
		Links:          analysis.Links,
		Images:         analysis.Images,
		Metadata:       analysis.Metadata,
		Headings:       analysis.Headings,
		Products:       []*pagelens.Product{},
		Articles:       []*pagelens.Article{},
		StructuredData: schema,
	}
	if result.StructuredData == nil {
		result.StructuredData = []pagelens.StructuredData{}
	}

	if r.Targets(pagelens.TargetProducts) {
		result.Products = e.detectProducts(ctx, &r, page, analysis.Text)
	}
	if r.Targets(pagelens.TargetArticles) {
		result.Articles = e.detectArticles(page)
	}
	if r.Targets(pagelens.TargetContacts) {
		contacts, err := e.Contacts.ExtractContacts(page)
		if err != nil {
			e.logger().Warn("contact extraction failed", "url", r.URL, "err", err)
		} else {
			result.Contacts = contacts
		}
	}

	if r.ExtractSEOData {
		result.SEOData = analysis.SEO
	}
	if r.PerformanceMetrics {
		result.PerformanceMetrics = analysis.Performance
	}
	if r.SecurityScan {
		result.SecurityScan = analysis.Security
	}
	if r.AnalyzeContent {
		result.ContentQuality = &pagelens.ContentQuality{
			ReadabilityScore: text.FleschReadingEase(analysis.Text),
			Keywords:         text.Keywords(analysis.Text, text.DefaultKeywordCount),
			Summary:          text.Summarize(analysis.Text, text.DefaultSummarySentences),
		}
	}

	result.Timestamp = time.Now().UTC()
	result.ProcessingTime = time.Since(begin).Milliseconds()
	result.Success = true
	return result, nil
}

// fetch returns the page HTML, consulting the cache first when one is
// configured.
func (e *Engine) fetch(ctx context.Context, r *pagelens.Request, cfg pagelens.Config) (string, error) {
	if e.Cache != nil {
		html, ok, err := e.Cache.Get(ctx, r.URL)
		if err != nil {
			e.logger().Warn("cache read failed", "url", r.URL, "err", err)
		} else if ok {
			return html, nil
		}
	}

	fetcher := e.Fetcher
	if r.Config != nil && e.NewFetcher != nil {
		f := e.NewFetcher(cfg)
		defer f.Close()
		fetcher = f
	}

	html, err := fetcher.Fetch(ctx, r.URL)
	if err != nil {
		return "", err
	}

	if e.Cache != nil {
		if err := e.Cache.Put(ctx, r.URL, html); err != nil {
			e.logger().Warn("cache write failed", "url", r.URL, "err", err)
		}
	}
	return html, nil
}

// detectProducts fans the strategies out concurrently, then merges their
// candidates: validate, deduplicate, optionally enhance, and score. A
// failing strategy contributes nothing instead of failing the run.
func (e *Engine) detectProducts(ctx context.Context, r *pagelens.Request, page *pagelens.Page, pageText string) []*pagelens.Product {
	candidates := make([][]*pagelens.Product, len(e.Strategies))

	g, _ := errgroup.WithContext(ctx)
	for i, strategy := range e.Strategies {
		g.Go(func() error {
			found, err := strategy.Detect(page)
			if err != nil {
				e.logger().Warn("strategy failed",
					"strategy", strategy.Name(), "url", page.URL, "err", err)
				return nil
			}
			candidates[i] = found
			return nil
		})
	}
	g.Wait()

	var products []*pagelens.Product
	for _, found := range candidates {
		for _, p := range found {
			if err := p.Validate(); err != nil {
				continue
			}
			products = append(products, p)
		}
	}

	products = pagelens.DeduplicateProducts(products)

	if e.Enhancer != nil && (r.Mode == pagelens.ModeAIEnhanced || r.Mode == pagelens.ModeComprehensive) {
		enhanced, err := e.Enhancer.Enhance(ctx, pageText, products)
		if err != nil {
			e.logger().Warn("enhancement failed", "url", page.URL, "err", err)
		} else if enhanced != nil {
			products = enhanced
		}
	}

	products = pagelens.ScoreProducts(products, page.URL)

	if products == nil {
		products = []*pagelens.Product{}
	}
	return products
}

// detectArticles runs the article detector and drops invalid candidates.
func (e *Engine) detectArticles(page *pagelens.Page) []*pagelens.Article {
	found, err := e.Articles.DetectArticles(page)
	if err != nil {
		e.logger().Warn("article detection failed", "url", page.URL, "err", err)
		return []*pagelens.Article{}
	}

	articles := make([]*pagelens.Article, 0, len(found))
	for _, a := range found {
		if err := a.Validate(); err != nil {
			continue
		}
		articles = append(articles, a)
	}
	return articles
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
