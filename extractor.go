package pagelens

// ExtractResult holds the main content pulled from an HTML page by a
// boilerplate-removing extractor.
type ExtractResult struct {
	// Title comes from page metadata (meta tags, JSON+LD, etc.).
	Title string

	// Author and PublishedAt come from page metadata when available.
	Author      string
	PublishedAt string

	// ContentHTML is the main content as clean HTML with navigation,
	// footers, sidebars, and ads removed.
	ContentHTML string

	// Excerpt is a short description of the content when available.
	Excerpt string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// The article detector uses it as a fallback when no selector-based
// candidates are found.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
