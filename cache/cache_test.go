package cache

import (
	"testing"
	"time"

	"app/forecast"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Hour)
	r := forecast.Result{ProductID: "p1", ConfidenceScore: 0.5}

	_, ok := c.Get("p1")
	assert.False(t, ok)

	c.Set("p1", r)
	got, ok := c.Get("p1")
	assert.True(t, ok)
	assert.Equal(t, r, got)
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Hour)
	current := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("p1", forecast.Result{ProductID: "p1"})

	current = current.Add(59 * time.Minute)
	_, ok := c.Get("p1")
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = c.Get("p1")
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c := New(time.Hour)
	c.Set("p1", forecast.Result{ProductID: "p1"})
	c.Set("p2", forecast.Result{ProductID: "p2"})

	c.Invalidate("p1")
	_, ok := c.Get("p1")
	assert.False(t, ok)
	_, ok = c.Get("p2")
	assert.True(t, ok)

	c.Purge()
	_, ok = c.Get("p2")
	assert.False(t, ok)
}
