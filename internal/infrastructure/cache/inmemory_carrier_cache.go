package cache

import (
	"context"
	"sync"
	"time"

	"github.com/erp/connector/internal/domain/integration"
)

// carrierEntry is a cached carrier list with its expiration
type carrierEntry struct {
	carriers  []integration.Carrier
	expiresAt time.Time
}

// InMemoryCarrierCache implements CarrierCache using an in-memory map.
// It is suitable for single-instance deployments and testing.
type InMemoryCarrierCache struct {
	mu        sync.RWMutex
	entries   map[string]carrierEntry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCarrierCache creates an in-memory carrier cache.
// A background goroutine evicts expired entries every cleanupInterval
// (5 minutes when zero).
func NewInMemoryCarrierCache(cleanupInterval time.Duration) *InMemoryCarrierCache {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	c := &InMemoryCarrierCache{
		entries:  make(map[string]carrierEntry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop(cleanupInterval)

	return c
}

// GetCarriers returns the cached carriers of an order
func (c *InMemoryCarrierCache) GetCarriers(_ context.Context, orderID string) ([]integration.Carrier, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[orderID]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return cloneCarriers(e.carriers), true, nil
}

// SetCarriers caches the carriers of an order for ttl
func (c *InMemoryCarrierCache) SetCarriers(_ context.Context, orderID string, carriers []integration.Carrier, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[orderID] = carrierEntry{
		carriers:  cloneCarriers(carriers),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryCarrierCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryCarrierCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryCarrierCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for orderID, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, orderID)
		}
	}
}

// Size returns the number of entries, expired ones included
func (c *InMemoryCarrierCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cloneCarriers(carriers []integration.Carrier) []integration.Carrier {
	if carriers == nil {
		return []integration.Carrier{}
	}
	out := make([]integration.Carrier, len(carriers))
	copy(out, carriers)
	return out
}

// Ensure InMemoryCarrierCache implements CarrierCache
var _ integration.CarrierCache = (*InMemoryCarrierCache)(nil)
