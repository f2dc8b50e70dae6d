package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := NewTTL()
	c.Set("orders:2024-03", []int{1, 2, 3}, time.Minute)

	v, ok := c.Get("orders:2024-03")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	c := &TTLCache{entries: make(map[string]entry)}
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("k", "v", time.Minute)
	_, ok := c.Get("k")
	require.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry past its TTL is gone")
}

func TestTTLCache_ExplicitExpire(t *testing.T) {
	c := NewTTL()
	c.Set("k", "v", time.Minute)
	c.Expire("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestTTLCache_ZeroTTLNotStored(t *testing.T) {
	c := NewTTL()
	c.Set("k", "v", 0)
	_, ok := c.Get("k")
	assert.False(t, ok)
}
