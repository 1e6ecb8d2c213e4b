package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagelens/pagelens"
)

// Ensure LoggingScraper implements pagelens.Scraper.
var _ pagelens.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with per-run summary logging.
type LoggingScraper struct {
	next   pagelens.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next pagelens.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the run outcome.
func (s *LoggingScraper) Scrape(ctx context.Context, req *pagelens.Request) (result *pagelens.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.URL,
			"mode", req.Mode,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs,
				"products", len(result.Products),
				"articles", len(result.Articles),
				"platform", result.Platform,
				"language", result.Language,
			)
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, req)
}
