package goquery

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/pagelens/pagelens"
)

// SourceContact tags extracted contact records.
const SourceContact = "contact-scan"

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+|00)\d{1,3}[\s.\-]?(?:\(?\d{1,4}\)?[\s.\-]?)?\d{3}[\s.\-]?\d{3,4}(?:[\s.\-]?\d{2,4})?`)

	socialHosts = []string{
		"facebook.com", "instagram.com", "twitter.com", "x.com",
		"linkedin.com", "youtube.com", "tiktok.com", "pinterest.com",
	}

	addressSelectors = []string{"address", `[itemtype*="PostalAddress"]`, ".address", ".contact-address"}
)

// Ensure ContactExtractor implements pagelens.ContactExtractor at compile time.
var _ pagelens.ContactExtractor = (*ContactExtractor)(nil)

// ContactExtractor finds emails, phone numbers, postal addresses, and
// social profile links on a page.
type ContactExtractor struct{}

// NewContactExtractor creates a new ContactExtractor.
func NewContactExtractor() *ContactExtractor {
	return &ContactExtractor{}
}

// ExtractContacts scans the page for contact records. Returns nil when
// nothing was found.
func (e *ContactExtractor) ExtractContacts(page *pagelens.Page) (*pagelens.ContactInfo, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}

	c := &pagelens.ContactInfo{
		ID:        uuid.New().String(),
		URL:       page.URL,
		Source:    SourceContact,
		ScrapedAt: time.Now().UTC(),
	}

	text := doc.Text()
	c.Emails = uniqueMatches(emailRe, text, 10)

	// mailto: links are more reliable than body text.
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		email := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(email, '?'); i >= 0 {
			email = email[:i]
		}
		c.Emails = appendUnique(c.Emails, email, 10)
	})

	c.Phones = uniqueMatches(phoneRe, text, 10)
	doc.Find(`a[href^="tel:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		c.Phones = appendUnique(c.Phones, strings.TrimPrefix(href, "tel:"), 10)
	})

	for _, s := range addressSelectors {
		doc.Find(s).Each(func(_ int, el *goquery.Selection) {
			if addr := cleanText(el.Text()); addr != "" {
				c.Addresses = appendUnique(c.Addresses, addr, 5)
			}
		})
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		lower := strings.ToLower(href)
		for _, host := range socialHosts {
			if strings.Contains(lower, host) {
				c.Social = appendUnique(c.Social, resolveURL(page.URL, href), 10)
				break
			}
		}
	})

	if c.Empty() {
		return nil, nil
	}
	return c, nil
}

func uniqueMatches(re *regexp.Regexp, text string, limit int) []string {
	var out []string
	for _, m := range re.FindAllString(text, -1) {
		out = appendUnique(out, cleanText(m), limit)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func appendUnique(list []string, value string, limit int) []string {
	value = strings.TrimSpace(value)
	if value == "" || len(list) >= limit {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
