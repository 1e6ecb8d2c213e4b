// Package mock provides function-field mock implementations of every
// service interface for use in tests.
package mock

import (
	"context"

	"github.com/pagelens/pagelens"
)

var _ pagelens.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagelens.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ pagelens.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of pagelens.PageCache.
type PageCache struct {
	GetFn   func(ctx context.Context, url string) (string, bool, error)
	PutFn   func(ctx context.Context, url string, html string) error
	CloseFn func() error
}

func (c *PageCache) Get(ctx context.Context, url string) (string, bool, error) {
	return c.GetFn(ctx, url)
}

func (c *PageCache) Put(ctx context.Context, url string, html string) error {
	return c.PutFn(ctx, url, html)
}

func (c *PageCache) Close() error {
	if c.CloseFn == nil {
		return nil
	}
	return c.CloseFn()
}
