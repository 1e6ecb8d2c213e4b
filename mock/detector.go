package mock

import "github.com/pagelens/pagelens"

var _ pagelens.SchemaExtractor = (*SchemaExtractor)(nil)

// SchemaExtractor is a mock implementation of pagelens.SchemaExtractor.
type SchemaExtractor struct {
	ExtractSchemaFn func(page *pagelens.Page) ([]pagelens.StructuredData, error)
}

func (e *SchemaExtractor) ExtractSchema(page *pagelens.Page) ([]pagelens.StructuredData, error) {
	return e.ExtractSchemaFn(page)
}

var _ pagelens.PlatformDetector = (*PlatformDetector)(nil)

// PlatformDetector is a mock implementation of pagelens.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(page *pagelens.Page) pagelens.Platform
}

func (d *PlatformDetector) Detect(page *pagelens.Page) pagelens.Platform {
	return d.DetectFn(page)
}

var _ pagelens.ProductStrategy = (*ProductStrategy)(nil)

// ProductStrategy is a mock implementation of pagelens.ProductStrategy.
type ProductStrategy struct {
	NameFn   func() string
	DetectFn func(page *pagelens.Page) ([]*pagelens.Product, error)
}

func (s *ProductStrategy) Name() string {
	return s.NameFn()
}

func (s *ProductStrategy) Detect(page *pagelens.Page) ([]*pagelens.Product, error) {
	return s.DetectFn(page)
}

var _ pagelens.ArticleDetector = (*ArticleDetector)(nil)

// ArticleDetector is a mock implementation of pagelens.ArticleDetector.
type ArticleDetector struct {
	DetectArticlesFn func(page *pagelens.Page) ([]*pagelens.Article, error)
}

func (d *ArticleDetector) DetectArticles(page *pagelens.Page) ([]*pagelens.Article, error) {
	return d.DetectArticlesFn(page)
}

var _ pagelens.ContactExtractor = (*ContactExtractor)(nil)

// ContactExtractor is a mock implementation of pagelens.ContactExtractor.
type ContactExtractor struct {
	ExtractContactsFn func(page *pagelens.Page) (*pagelens.ContactInfo, error)
}

func (e *ContactExtractor) ExtractContacts(page *pagelens.Page) (*pagelens.ContactInfo, error) {
	return e.ExtractContactsFn(page)
}

var _ pagelens.PageAnalyzer = (*PageAnalyzer)(nil)

// PageAnalyzer is a mock implementation of pagelens.PageAnalyzer.
type PageAnalyzer struct {
	AnalyzeFn func(page *pagelens.Page) (*pagelens.PageAnalysis, error)
}

func (a *PageAnalyzer) Analyze(page *pagelens.Page) (*pagelens.PageAnalysis, error) {
	return a.AnalyzeFn(page)
}
