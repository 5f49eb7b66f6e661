package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erp/connector/internal/domain/integration"
)

// DefaultKeyPrefix namespaces carrier entries in Redis
const DefaultKeyPrefix = "magento:carriers:"

// ErrInvalidTTL indicates a non-positive cache TTL
var ErrInvalidTTL = errors.New("cache: ttl must be positive")

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCarrierCache implements CarrierCache using Redis.
// Entries are shared by every connector instance using the same server.
type RedisCarrierCache struct {
	client    *redis.Client
	keyPrefix string
}

// carrierRecord is the JSON form of a cached carrier
type carrierRecord struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewRedisCarrierCache connects to Redis and returns a carrier cache
func NewRedisCarrierCache(cfg RedisConfig, keyPrefix string) (*RedisCarrierCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCarrierCacheWithClient(client, keyPrefix), nil
}

// NewRedisCarrierCacheWithClient creates a cache on an existing client
func NewRedisCarrierCacheWithClient(client *redis.Client, keyPrefix string) *RedisCarrierCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisCarrierCache{client: client, keyPrefix: keyPrefix}
}

// GetCarriers returns the cached carriers of an order
func (c *RedisCarrierCache) GetCarriers(ctx context.Context, orderID string) ([]integration.Carrier, bool, error) {
	data, err := c.client.Get(ctx, c.key(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read carriers: %w", err)
	}

	carriers, err := decodeCarriers(data)
	if err != nil {
		return nil, false, err
	}
	return carriers, true, nil
}

// SetCarriers caches the carriers of an order for ttl
func (c *RedisCarrierCache) SetCarriers(ctx context.Context, orderID string, carriers []integration.Carrier, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	data, err := encodeCarriers(carriers)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(orderID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store carriers: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisCarrierCache) Close() error {
	return c.client.Close()
}

func (c *RedisCarrierCache) key(orderID string) string {
	return c.keyPrefix + orderID
}

func encodeCarriers(carriers []integration.Carrier) ([]byte, error) {
	records := make([]carrierRecord, len(carriers))
	for i, carrier := range carriers {
		records[i] = carrierRecord{Code: carrier.Code, Name: carrier.Name}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode carriers: %w", err)
	}
	return data, nil
}

func decodeCarriers(data []byte) ([]integration.Carrier, error) {
	var records []carrierRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode carriers: %w", err)
	}
	carriers := make([]integration.Carrier, len(records))
	for i, r := range records {
		carriers[i] = integration.Carrier{Code: r.Code, Name: r.Name}
	}
	return carriers, nil
}

// Ensure RedisCarrierCache implements CarrierCache
var _ integration.CarrierCache = (*RedisCarrierCache)(nil)
