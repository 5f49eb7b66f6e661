package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/integration"
)

// CarrierCacheFactory creates carrier caches based on configuration
type CarrierCacheFactory struct {
	redisConfig           RedisConfig
	keyPrefix             string
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CarrierCacheFactoryOption is a functional option for configuring the factory
type CarrierCacheFactoryOption func(*CarrierCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CarrierCacheFactoryOption {
	return func(f *CarrierCacheFactory) {
		f.logger = logger
	}
}

// WithKeyPrefix sets the Redis key prefix of carrier entries
func WithKeyPrefix(prefix string) CarrierCacheFactoryOption {
	return func(f *CarrierCacheFactory) {
		f.keyPrefix = prefix
	}
}

// WithInMemoryFallback controls whether an in-memory cache replaces an
// unreachable Redis. Default is true.
func WithInMemoryFallback(allow bool) CarrierCacheFactoryOption {
	return func(f *CarrierCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCarrierCacheFactory creates a new factory
func NewCarrierCacheFactory(cfg RedisConfig, opts ...CarrierCacheFactoryOption) *CarrierCacheFactory {
	f := &CarrierCacheFactory{
		redisConfig:           cfg,
		keyPrefix:             DefaultKeyPrefix,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed carrier cache
func (f *CarrierCacheFactory) CreateRedisCache() (integration.CarrierCache, error) {
	c, err := NewRedisCarrierCache(f.redisConfig, f.keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis carrier cache: %w", err)
	}
	return c, nil
}

// CreateInMemoryCache creates a process-local carrier cache
func (f *CarrierCacheFactory) CreateInMemoryCache() integration.CarrierCache {
	return NewInMemoryCarrierCache(0)
}

// CreateCache tries Redis first and falls back to memory when allowed
func (f *CarrierCacheFactory) CreateCache() (integration.CarrierCache, error) {
	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis carrier cache", zap.String("addr", f.redisConfig.Addr))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory carrier cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
