package pagelens

import "time"

// MaxResultTextLen bounds the plain text carried in a Result.
const MaxResultTextLen = 10000

// MinDocumentLen is the smallest HTML payload treated as a parseable page.
// Anything shorter fails the run with EINVALID.
const MinDocumentLen = 100

// Page is the per-run snapshot handed to detectors. The engine builds it
// once (raw HTML plus the upstream detectors' outputs) and detectors treat
// it as read-only.
type Page struct {
	URL       string
	HTML      string
	FetchedAt time.Time

	// Filled by the upstream detectors before product/article detection.
	Language Language
	Platform Platform
	Schema   []StructuredData

	// Caller-provided selector overrides, keyed by field name.
	CustomSelectors map[string]string
}

// Link is one hyperlink found on the page.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text,omitempty"`
	Rel  string `json:"rel,omitempty"`
}

// Image is one image reference found on the page.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Heading is one h1-h6 element found on the page.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// SEOData is a read-only SEO snapshot computed once per run.
type SEOData struct {
	Title           string            `json:"title,omitempty"`
	MetaDescription string            `json:"metaDescription,omitempty"`
	MetaKeywords    string            `json:"metaKeywords,omitempty"`
	Canonical       string            `json:"canonical,omitempty"`
	Robots          string            `json:"robots,omitempty"`
	OpenGraph       map[string]string `json:"openGraph,omitempty"`
	TwitterCards    map[string]string `json:"twitterCards,omitempty"`
	H1Count         int               `json:"h1Count"`
	InternalLinks   int               `json:"internalLinks"`
	ExternalLinks   int               `json:"externalLinks"`
	ImagesWithAlt   int               `json:"imagesWithAlt"`
	ImagesTotal     int               `json:"imagesTotal"`
	HasViewport     bool              `json:"hasViewport"`
	HasStructured   bool              `json:"hasStructuredData"`
}

// PerformanceMetrics is a read-only size/complexity snapshot of the page.
type PerformanceMetrics struct {
	HTMLSize        int `json:"htmlSize"`
	TextSize        int `json:"textSize"`
	ScriptCount     int `json:"scriptCount"`
	StylesheetCount int `json:"stylesheetCount"`
	ImageCount      int `json:"imageCount"`
	IframeCount     int `json:"iframeCount"`
	DOMNodes        int `json:"domNodes"`
}

// SecurityScan is a read-only security posture snapshot of the page.
type SecurityScan struct {
	HTTPS              bool `json:"https"`
	MixedContent       bool `json:"mixedContent"`
	InlineScripts      int  `json:"inlineScripts"`
	ExternalScripts    int  `json:"externalScripts"`
	InsecureFormAction bool `json:"insecureFormAction"`
}

// ContentQuality summarizes the text processor's analysis of a page.
type ContentQuality struct {
	ReadabilityScore float64  `json:"readabilityScore"`
	Keywords         []string `json:"keywords"`
	Summary          string   `json:"summary"`
}

// Result is the full outcome of one scraping run.
type Result struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty"`

	Language Language `json:"language,omitempty"`
	Platform Platform `json:"platform,omitempty"`

	// Text is the page's visible text, truncated to MaxResultTextLen.
	Text string `json:"text"`

	Links    []Link            `json:"links"`
	Images   []Image           `json:"images"`
	Metadata map[string]string `json:"metadata"`
	Headings []Heading         `json:"headings"`

	Products       []*Product       `json:"products"`
	Articles       []*Article       `json:"articles"`
	Contacts       *ContactInfo     `json:"contacts,omitempty"`
	StructuredData []StructuredData `json:"structuredData"`

	SEOData            *SEOData            `json:"seoData,omitempty"`
	PerformanceMetrics *PerformanceMetrics `json:"performanceMetrics,omitempty"`
	SecurityScan       *SecurityScan       `json:"securityScan,omitempty"`
	ContentQuality     *ContentQuality     `json:"contentQuality,omitempty"`

	Timestamp      time.Time `json:"timestamp"`
	ProcessingTime int64     `json:"processingTime"` // milliseconds
	Success        bool      `json:"success"`
}
