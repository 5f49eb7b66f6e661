package integration

import (
	"context"
	"time"
)

// CarrierCache stores the shipping carriers available for an order.
// Carrier lists rarely change while an order is open, so adapters may
// serve repeated lookups from it.
type CarrierCache interface {
	// GetCarriers returns the cached carriers of an order; found is false on a miss
	GetCarriers(ctx context.Context, orderID string) (carriers []Carrier, found bool, err error)
	// SetCarriers caches the carriers of an order for ttl
	SetCarriers(ctx context.Context, orderID string, carriers []Carrier, ttl time.Duration) error
	// Close releases the cache's resources
	Close() error
}
