package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pagelens/pagelens"
)

// Ensure PageCache implements pagelens.PageCache at compile time.
var _ pagelens.PageCache = (*PageCache)(nil)

// PageCache stores fetched HTML keyed by URL. Entries older than the TTL
// are treated as misses and overwritten on the next Put.
type PageCache struct {
	db  *DB
	ttl time.Duration

	// now is swapped out in tests.
	now func() time.Time
}

// NewPageCache creates a PageCache over an open DB. A zero or negative
// TTL makes every Get a miss.
func NewPageCache(db *DB, ttl time.Duration) *PageCache {
	return &PageCache{
		db:  db,
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached HTML for the URL if a fresh entry exists.
func (c *PageCache) Get(ctx context.Context, url string) (string, bool, error) {
	if c.ttl <= 0 {
		return "", false, nil
	}

	var html, fetchedAt string
	err := c.db.QueryRowContext(ctx,
		`SELECT html, fetched_at FROM pages WHERE url = ?`, url,
	).Scan(&html, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}

	t, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil || c.now().Sub(t) > c.ttl {
		return "", false, nil
	}
	return html, true, nil
}

// Put stores the HTML for the URL, replacing any previous entry.
func (c *PageCache) Put(ctx context.Context, url string, html string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO pages (url, html, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET html = excluded.html, fetched_at = excluded.fetched_at`,
		url, html, c.now().UTC().Format(time.RFC3339Nano))
	return err
}

// Close closes the underlying database.
func (c *PageCache) Close() error {
	return c.db.Close()
}
