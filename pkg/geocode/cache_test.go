package geocode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGet(t *testing.T) {
	cache := NewTTLCache(time.Hour, 10)

	point := &Point{Lat: 40.7128, Lng: -74.0060}
	cache.Set("new york", point)

	got, ok := cache.Get("new york")
	require.True(t, ok)
	assert.Equal(t, point, got)

	_, ok = cache.Get("boston")
	assert.False(t, ok)
}

func TestTTLCache_NegativeResult(t *testing.T) {
	cache := NewTTLCache(time.Hour, 10)

	cache.Set("nowhere at all", nil)

	got, ok := cache.Get("nowhere at all")
	require.True(t, ok)
	assert.Nil(t, got)
}

func TestTTLCache_Expiry(t *testing.T) {
	cache := NewTTLCache(time.Hour, 10)

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Set("new york", &Point{Lat: 40.7128, Lng: -74.0060})

	current = current.Add(30 * time.Minute)
	_, ok := cache.Get("new york")
	assert.True(t, ok)

	current = current.Add(31 * time.Minute)
	_, ok = cache.Get("new york")
	assert.False(t, ok)
}

func TestTTLCache_BoundedEviction(t *testing.T) {
	cache := NewTTLCache(time.Hour, 3)

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Set("a", &Point{Lat: 1})
	current = current.Add(time.Second)
	cache.Set("b", &Point{Lat: 2})
	current = current.Add(time.Second)
	cache.Set("c", &Point{Lat: 3})
	current = current.Add(time.Second)
	cache.Set("d", &Point{Lat: 4})

	assert.Equal(t, 3, cache.Len())

	// Oldest entry was evicted to make room.
	_, ok := cache.Get("a")
	assert.False(t, ok)

	for _, key := range []string{"b", "c", "d"} {
		_, ok := cache.Get(key)
		assert.True(t, ok, "expected %q to survive eviction", key)
	}
}

func TestTTLCache_EvictionPrefersExpired(t *testing.T) {
	cache := NewTTLCache(time.Minute, 2)

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Set("stale", &Point{Lat: 1})
	current = current.Add(2 * time.Minute)
	cache.Set("fresh", &Point{Lat: 2})
	cache.Set("newer", &Point{Lat: 3})

	// The expired entry was dropped, not the fresh one.
	_, ok := cache.Get("fresh")
	assert.True(t, ok)
	_, ok = cache.Get("newer")
	assert.True(t, ok)
}

func TestTTLCache_OverwriteSameKey(t *testing.T) {
	cache := NewTTLCache(time.Hour, 2)

	cache.Set("x", &Point{Lat: 1})
	cache.Set("x", &Point{Lat: 2})

	got, ok := cache.Get("x")
	require.True(t, ok)
	assert.Equal(t, 2.0, got.Lat)
	assert.Equal(t, 1, cache.Len())
}
