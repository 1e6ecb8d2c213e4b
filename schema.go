package pagelens

// Structured data block types supported by the schema extractor.
const (
	SchemaJSONLD    = "json-ld"
	SchemaMicrodata = "microdata"
	SchemaRDFa      = "rdfa"
)

// StructuredData is one machine-readable data block embedded in a page.
type StructuredData struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// SchemaExtractor pulls JSON-LD, microdata, and RDFa blocks out of a page.
//
// A malformed block is isolated: it is skipped (and may be logged by a
// decorator) without aborting extraction of the remaining blocks.
type SchemaExtractor interface {
	ExtractSchema(page *Page) ([]StructuredData, error)
}
