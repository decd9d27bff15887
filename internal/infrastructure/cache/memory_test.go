package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "products:list:a", "payload", time.Minute)

	value, ok := c.Get(ctx, "products:list:a")
	require.True(t, ok)
	assert.Equal(t, "payload", value)

	_, ok = c.Get(ctx, "products:list:missing")
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCacheZeroTTLDisablesWrite(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k", "v", 0)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCacheInvalidateByPrefix(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "products:list:a", "1", time.Minute)
	c.Set(ctx, "products:list:b", "2", time.Minute)
	c.Set(ctx, "stats:dashboard", "3", time.Minute)

	c.InvalidateByPrefix(ctx, "products:")

	_, ok := c.Get(ctx, "products:list:a")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "products:list:b")
	assert.False(t, ok)

	value, ok := c.Get(ctx, "stats:dashboard")
	require.True(t, ok)
	assert.Equal(t, "3", value)
}
