package pagelens

// Mode selects how much work a scraping run performs.
type Mode string

// Supported scraping modes.
const (
	ModeBasic         Mode = "basic"
	ModeAdvanced      Mode = "advanced"
	ModeAIEnhanced    Mode = "ai_enhanced"
	ModeComprehensive Mode = "comprehensive"
)

// Target content types a request can ask for.
const (
	TargetProducts = "products"
	TargetArticles = "articles"
	TargetContacts = "contacts"
)

// Request describes a single scraping run. It is immutable once received;
// Normalize returns an adjusted copy instead of mutating in place.
type Request struct {
	URL          string   `json:"url"`
	DeepScraping bool     `json:"deepScraping"`
	MaxDepth     int      `json:"maxDepth"`
	Mode         Mode     `json:"scrapingMode"`
	TargetTypes  []string `json:"targetTypes"`

	// CustomSelectors maps field names to caller-provided CSS selectors
	// that are tried before the built-in fallthrough lists.
	CustomSelectors map[string]string `json:"customSelectors"`

	ExtractSchema       bool `json:"extractSchema"`
	ExtractJSONLD       bool `json:"extractJsonLd"`
	ExtractMicrodata    bool `json:"extractMicrodata"`
	ExtractOpenGraph    bool `json:"extractOpenGraph"`
	ExtractTwitterCards bool `json:"extractTwitterCards"`

	AnalyzeContent     bool `json:"analyzeContent"`
	DetectLanguage     bool `json:"detectLanguage"`
	ExtractSEOData     bool `json:"extractSEOData"`
	PerformanceMetrics bool `json:"performanceMetrics"`
	SecurityScan       bool `json:"securityScan"`
	AccessibilityCheck bool `json:"accessibilityCheck"`

	Config *Override `json:"config"`
}

// Validate returns an error if the request cannot be executed.
func (r *Request) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "request URL required")
	}
	switch r.Mode {
	case "", ModeBasic, ModeAdvanced, ModeAIEnhanced, ModeComprehensive:
	default:
		return Errorf(EINVALID, "unknown scraping mode %q", r.Mode)
	}
	return nil
}

// Normalize returns a copy of the request with mode-dependent defaults
// filled in. An empty mode becomes basic; comprehensive mode switches every
// feature flag on.
func (r Request) Normalize() Request {
	if r.Mode == "" {
		r.Mode = ModeBasic
	}
	if len(r.TargetTypes) == 0 {
		r.TargetTypes = []string{TargetProducts, TargetArticles}
	}
	if r.Mode == ModeComprehensive {
		r.ExtractSchema = true
		r.ExtractJSONLD = true
		r.ExtractMicrodata = true
		r.ExtractOpenGraph = true
		r.ExtractTwitterCards = true
		r.AnalyzeContent = true
		r.DetectLanguage = true
		r.ExtractSEOData = true
		r.PerformanceMetrics = true
		r.SecurityScan = true
	}
	return r
}

// Targets reports whether the request asked for the given content type.
func (r *Request) Targets(contentType string) bool {
	for _, t := range r.TargetTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
