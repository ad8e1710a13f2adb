package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labellens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := NewRedisCache("redis://"+mr.Addr(), "labellens:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c, mr
}

func TestNewRedisCache(t *testing.T) {
	t.Run("rejects malformed url", func(t *testing.T) {
		_, err := NewRedisCache("not-a-url", "")
		assert.Error(t, err)
	})

	t.Run("reports unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := NewRedisCache("redis://"+addr, "")
		assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
	})
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ocr:abc", "contains wheat, milk", time.Hour))

	got, err := c.Get(ctx, "ocr:abc")
	require.NoError(t, err)
	assert.Equal(t, "contains wheat, milk", got)

	// stored under the prefix
	raw, err := mr.Get("labellens:ocr:abc")
	require.NoError(t, err)
	assert.Equal(t, "contains wheat, milk", raw)
	assert.Equal(t, time.Hour, mr.TTL("labellens:ocr:abc"))
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestRedisCache(t)

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_DeleteAndExists(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "k"))

	ok, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := newTestRedisCache(t)
	mr.Close()

	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	err = c.Set(context.Background(), "k", "v", time.Minute)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}
