package pagelens

import "time"

// ContactInfo holds contact records found on a page.
type ContactInfo struct {
	ID        string    `json:"id"`
	Emails    []string  `json:"emails,omitempty"`
	Phones    []string  `json:"phones,omitempty"`
	Addresses []string  `json:"addresses,omitempty"`
	Social    []string  `json:"social,omitempty"`
	URL       string    `json:"url,omitempty"`
	Source    string    `json:"source"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// Empty reports whether the record carries no contact data at all.
func (c *ContactInfo) Empty() bool {
	return len(c.Emails) == 0 && len(c.Phones) == 0 &&
		len(c.Addresses) == 0 && len(c.Social) == 0
}

// SocialPost represents an embedded social media post reference.
type SocialPost struct {
	ID        string    `json:"id"`
	Network   string    `json:"network"`
	URL       string    `json:"url"`
	Text      string    `json:"text,omitempty"`
	Author    string    `json:"author,omitempty"`
	Source    string    `json:"source"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// ContactExtractor finds contact records on a page.
type ContactExtractor interface {
	ExtractContacts(page *Page) (*ContactInfo, error)
}
