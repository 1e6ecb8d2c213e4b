package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db := NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPageCache(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a page", func(t *testing.T) {
		t.Parallel()

		c := NewPageCache(openTestDB(t), time.Hour)
		ctx := context.Background()

		require.NoError(t, c.Put(ctx, "https://example.com", "<html>cached</html>"))

		html, ok, err := c.Get(ctx, "https://example.com")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "<html>cached</html>", html)
	})

	t.Run("misses on unknown URLs", func(t *testing.T) {
		t.Parallel()

		c := NewPageCache(openTestDB(t), time.Hour)

		_, ok, err := c.Get(context.Background(), "https://example.com/unknown")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired entries are misses", func(t *testing.T) {
		t.Parallel()

		c := NewPageCache(openTestDB(t), time.Minute)
		ctx := context.Background()

		base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return base }
		require.NoError(t, c.Put(ctx, "https://example.com", "<html>stale</html>"))

		c.now = func() time.Time { return base.Add(2 * time.Minute) }
		_, ok, err := c.Get(ctx, "https://example.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("fresh entries within the TTL are hits", func(t *testing.T) {
		t.Parallel()

		c := NewPageCache(openTestDB(t), time.Minute)
		ctx := context.Background()

		base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return base }
		require.NoError(t, c.Put(ctx, "https://example.com", "<html>fresh</html>"))

		c.now = func() time.Time { return base.Add(30 * time.Second) }
		html, ok, err := c.Get(ctx, "https://example.com")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "<html>fresh</html>", html)
	})

	t.Run("zero TTL disables the cache", func(t *testing.T) {
		t.Parallel()

		c := NewPageCache(openTestDB(t), 0)
		ctx := context.Background()

		require.NoError(t, c.Put(ctx, "https://example.com", "<html>ignored</html>"))

		_, ok, err := c.Get(ctx, "https://example.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("put replaces previous entries", func(t *testing.T) {
		t.Parallel()

		c := NewPageCache(openTestDB(t), time.Hour)
		ctx := context.Background()

		require.NoError(t, c.Put(ctx, "https://example.com", "<html>old</html>"))
		require.NoError(t, c.Put(ctx, "https://example.com", "<html>new</html>"))

		html, ok, err := c.Get(ctx, "https://example.com")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "<html>new</html>", html)
	})
}
