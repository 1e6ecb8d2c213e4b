package pagelens

// PageAnalysis holds page-level metadata computed once per run: document
// metadata, the link/image/heading inventories, and the read-only SEO,
// performance, and security snapshots.
type PageAnalysis struct {
	Title       string
	Description string
	Keywords    string

	// Text is the page's visible text, untruncated.
	Text string

	Links    []Link
	Images   []Image
	Metadata map[string]string
	Headings []Heading

	SEO         *SEOData
	Performance *PerformanceMetrics
	Security    *SecurityScan
}

// PageAnalyzer computes the page-level metadata snapshot.
type PageAnalyzer interface {
	Analyze(page *Page) (*PageAnalysis, error)
}
