package pagelens

import "time"

// Article represents extracted editorial content.
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	Category string `json:"category,omitempty"`

	Tags []string `json:"tags,omitempty"`

	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ModifiedAt  *time.Time `json:"modifiedAt,omitempty"`

	Content         string   `json:"content"`
	ContentMarkdown string   `json:"contentMarkdown,omitempty"`
	Images          []string `json:"images,omitempty"`

	WordCount   int `json:"wordCount,omitempty"`
	ReadingTime int `json:"readingTime,omitempty"` // minutes

	URL       string    `json:"url,omitempty"`
	Source    string    `json:"source"`
	ScrapedAt time.Time `json:"scraped_at"`

	ConfidenceScore float64 `json:"confidence_score"`
}

// Validate returns an error if the article is missing its required fields.
// Articles without both a title and content are discarded.
func (a *Article) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	if a.Content == "" {
		return Errorf(EINVALID, "article content required")
	}
	return nil
}

// ArticleDetector finds editorial content on a page.
type ArticleDetector interface {
	// DetectArticles scans the page and returns accepted articles.
	DetectArticles(page *Page) ([]*Article, error)
}
