// Package http provides the HTTP implementations of the engine's edges:
// the outbound page fetcher and the inbound analysis server.
package http

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/pagelens/pagelens"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// maxBodySize caps how much of a response body the fetcher reads.
const maxBodySize = 10 << 20

// Ensure Fetcher implements pagelens.Fetcher at compile time.
var _ pagelens.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over plain HTTP. It rotates user agents, retries
// failed requests with doubling delays, rate-limits successive requests,
// caps concurrent in-flight requests, and optionally honors robots.txt.
// It does not execute JavaScript.
type Fetcher struct {
	client  *http.Client
	config  pagelens.Config
	limiter *rate.Limiter
	sem     *semaphore.Weighted
	robots  *Robots

	// sleep is swapped out in tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewFetcher creates a Fetcher for the given configuration.
func NewFetcher(cfg pagelens.Config) *Fetcher {
	f := &Fetcher{
		config: cfg,
		sleep:  sleepCtx,
	}

	f.client = &http.Client{
		Timeout: cfg.Timeout.Std(),
	}
	if !cfg.FollowRedirects {
		f.client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	if delay := cfg.RateLimitDelay.Std(); delay > 0 {
		f.limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
	if n := cfg.MaxConcurrentRequests; n > 0 {
		f.sem = semaphore.NewWeighted(int64(n))
	}
	if cfg.RespectRobotsTxt {
		f.robots = NewRobots(f.client, f.userAgent())
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, retrying transient
// failures up to the configured number of attempts.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.sem != nil {
		if err := f.sem.Acquire(ctx, 1); err != nil {
			return "", err
		}
		defer f.sem.Release(1)
	}

	if f.robots != nil {
		allowed, err := f.robots.Allowed(ctx, url)
		if err != nil {
			return "", err
		}
		if !allowed {
			return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "fetch blocked by robots.txt: %s", url)
		}
	}

	var lastErr error
	delay := f.config.RetryDelay.Std()
	for attempt := 0; attempt <= f.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			if err := f.sleep(ctx, delay); err != nil {
				return "", err
			}
			delay *= 2
		}

		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		html, err := f.fetchOnce(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", lastErr
		}
	}
	return "", lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagelens.Errorf(pagelens.EINVALID, "invalid URL %q: %v", url, err)
	}

	req.Header.Set("User-Agent", f.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,ro;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "fetch %s: HTTP %d %s", url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "read %s: %v", url, err)
	}
	return string(body), nil
}

// userAgent picks a random user agent from the configured pool.
func (f *Fetcher) userAgent() string {
	if len(f.config.UserAgents) == 0 {
		return "pagelens/1.0"
	}
	return f.config.UserAgents[rand.Intn(len(f.config.UserAgents))]
}

// Close releases resources held by the fetcher.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
