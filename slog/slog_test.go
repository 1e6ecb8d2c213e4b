package slog_test

import (
	"bytes"
	"context"
	stdslog "log/slog"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/mock"
	"github.com/pagelens/pagelens/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufLogger() (*stdslog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return stdslog.New(stdslog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs the fetched size", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufLogger()
		fetcher := slog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>ok</html>", nil
			},
		}, logger)

		html, err := fetcher.Fetch(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Contains(t, buf.String(), "msg=fetch")
		assert.Contains(t, buf.String(), "url=https://example.com")
		assert.Contains(t, buf.String(), "bytes=15")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufLogger()
		fetcher := slog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "connection refused")
			},
		}, logger)

		_, err := fetcher.Fetch(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "connection refused")
	})

	t.Run("close delegates", func(t *testing.T) {
		t.Parallel()

		logger, _ := newBufLogger()
		closed := false
		fetcher := slog.NewLoggingFetcher(&mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}, logger)

		require.NoError(t, fetcher.Close())
		assert.True(t, closed)
	})
}

func TestLoggingScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("logs the run summary", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufLogger()
		scraper := slog.NewLoggingScraper(&mock.Scraper{
			ScrapeFn: func(ctx context.Context, req *pagelens.Request) (*pagelens.Result, error) {
				return &pagelens.Result{
					URL:      req.URL,
					Platform: pagelens.PlatformShopify,
					Language: pagelens.LangRomanian,
					Products: []*pagelens.Product{{Name: "Cablu HDMI 2m"}},
					Success:  true,
				}, nil
			},
		}, logger)

		result, err := scraper.Scrape(context.Background(), &pagelens.Request{
			URL:  "https://example.com",
			Mode: pagelens.ModeBasic,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Contains(t, buf.String(), "msg=scrape")
		assert.Contains(t, buf.String(), "products=1")
		assert.Contains(t, buf.String(), "platform=shopify")
	})

	t.Run("failed runs still log", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufLogger()
		scraper := slog.NewLoggingScraper(&mock.Scraper{
			ScrapeFn: func(ctx context.Context, req *pagelens.Request) (*pagelens.Result, error) {
				return nil, pagelens.Errorf(pagelens.EINVALID, "bad request")
			},
		}, logger)

		_, err := scraper.Scrape(context.Background(), &pagelens.Request{URL: "https://example.com"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "msg=scrape")
		assert.Contains(t, buf.String(), "bad request")
	})
}
