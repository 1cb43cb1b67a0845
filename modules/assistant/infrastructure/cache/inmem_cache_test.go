package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entcache "github.com/flowgate/flowgate/modules/assistant/domain/entities/cache"
	"github.com/flowgate/flowgate/modules/assistant/infrastructure/cache"
)

func TestInmemCache_RoundTrip(t *testing.T) {
	t.Parallel()

	c := cache.NewInmemCache(time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	require.ErrorIs(t, err, entcache.ErrKeyNotFound)

	require.NoError(t, c.Set(ctx, "key", "value"))
	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestInmemCache_Expiry(t *testing.T) {
	t.Parallel()

	c := cache.NewInmemCache(time.Millisecond)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value"))
	time.Sleep(5 * time.Millisecond)

	_, err := c.Get(ctx, "key")
	require.ErrorIs(t, err, entcache.ErrKeyNotFound)
}

func TestInmemCache_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	c := cache.NewInmemCache(0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value"))
	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}
