package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestViewCache_SetAndGet(t *testing.T) {
	c, err := NewViewCache(128, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	body := []byte(`{"BTC-EUR":{}}`)
	c.Set("views:markets:specs", body)
	c.cache.Wait()

	got, ok := c.Get("views:markets:specs")
	require.True(t, ok)
	require.Equal(t, body, got)
}

func TestViewCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewViewCache(64, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	body, ok := c.Get("views:markets:state")
	require.False(t, ok)
	require.Nil(t, body)
}

func TestViewCache_EntryExpiresAfterTTL(t *testing.T) {
	c, err := NewViewCache(64, 20*time.Millisecond)
	require.NoError(t, err)
	defer c.Close()

	c.Set("views:markets:specs", []byte(`{}`))
	c.cache.Wait()

	_, ok := c.Get("views:markets:specs")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = c.Get("views:markets:specs")
	require.False(t, ok)
}
