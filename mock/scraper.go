package mock

import (
	"context"

	"github.com/pagelens/pagelens"
)

var _ pagelens.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of pagelens.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, req *pagelens.Request) (*pagelens.Result, error)
}

func (s *Scraper) Scrape(ctx context.Context, req *pagelens.Request) (*pagelens.Result, error) {
	return s.ScrapeFn(ctx, req)
}
