package pagelens

// Converter converts HTML to Markdown.
// The article detector uses it to produce the markdown body of detected
// articles from their cleaned content HTML.
type Converter interface {
	Convert(html string) (string, error)
}
