package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	_, ok := c.Get("missing")
	require.False(t, ok)

	c.Set("answer", 42)
	val, ok := c.Get("answer")
	require.True(t, ok)
	require.Equal(t, 42, val)
}

func TestExpiry(t *testing.T) {
	c := New[string, string](30*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("key", "value")
	_, ok := c.Get("key")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get("key")
	require.False(t, ok, "expired entry must not be returned")
}

func TestEvictExpired(t *testing.T) {
	// Kısa cleanup interval — fiziksel silmenin çalıştığını doğrula.
	c := New[string, string](10*time.Millisecond, 20*time.Millisecond)
	defer c.Close()

	c.Set("a", "1")
	c.Set("b", "2")
	require.Equal(t, 2, c.Len())

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, c.Len(), "cleanup goroutine must evict expired entries")
}

func TestExpiresIn(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	require.Equal(t, time.Duration(0), c.ExpiresIn("missing"))

	c.Set("key", 1)
	remaining := c.ExpiresIn("key")
	require.Greater(t, remaining, 50*time.Second)
	require.LessOrEqual(t, remaining, time.Minute)
}

func TestDeleteAndClear(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	require.False(t, ok)
	_, ok = c.Get("b")
	require.True(t, ok)

	c.Clear()
	require.Equal(t, 0, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](time.Minute, time.Minute)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			c.Set(n, n*2)
		}(i)
		go func(n int) {
			defer wg.Done()
			c.Get(n)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 50, c.Len())
}
