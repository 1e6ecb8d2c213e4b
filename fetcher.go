package pagelens

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations handle user agent selection, retries, rate limiting,
// and robots.txt compliance behind this interface.
type Fetcher interface {
	// Fetch issues a GET for the URL and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// PageCache stores fetched HTML keyed by URL with a TTL.
type PageCache interface {
	// Get returns the cached HTML for the URL. The bool result is false
	// on a miss or when the entry has expired.
	Get(ctx context.Context, url string) (html string, ok bool, err error)

	// Put stores the HTML for the URL, replacing any previous entry.
	Put(ctx context.Context, url string, html string) error

	Close() error
}
