package pagelens

import "context"

// Scraper runs one full analysis of a page: fetch, detect, extract, score.
// The engine package provides the canonical implementation; the HTTP
// server and CLI depend only on this interface.
type Scraper interface {
	// Scrape executes a single synchronous run for the request and
	// returns the assembled result. The returned error carries an
	// application error code when the run fails before producing a
	// result.
	Scrape(ctx context.Context, req *Request) (*Result, error)
}
