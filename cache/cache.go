package cache

import (
	"sync"
	"time"

	"app/forecast"
)

type entry struct {
	result   forecast.Result
	storedAt time.Time
}

// ForecastCache memoizes forecast results per product with a TTL. It sits
// outside the forecasting engine, which stays a pure function; callers
// invalidate entries whenever a product's ledger changes.
type ForecastCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *ForecastCache {
	return &ForecastCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached result for a product id if present and fresh.
func (c *ForecastCache) Get(productID string) (forecast.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[productID]
	if !ok {
		return forecast.Result{}, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, productID)
		return forecast.Result{}, false
	}
	return e.result, true
}

// Set stores a result for a product id.
func (c *ForecastCache) Set(productID string, result forecast.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[productID] = entry{result: result, storedAt: c.now()}
}

// Invalidate drops the entry for one product.
func (c *ForecastCache) Invalidate(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, productID)
}

// Purge drops every entry.
func (c *ForecastCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
