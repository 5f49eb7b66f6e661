package magento

import (
	"errors"
	"time"
)

const (
	// DefaultStoreID is the store view used by cart calls when none is given
	DefaultStoreID = "1"
	// DefaultCarrierCacheTTL is how long carrier lists are cached
	DefaultCarrierCacheTTL = 15 * time.Minute
)

// ErrConfigNegativeCacheTTL indicates a negative carrier cache TTL
var ErrConfigNegativeCacheTTL = errors.New("magento: carrier cache TTL cannot be negative")

// Config holds configuration for the storefront connector
type Config struct {
	// DefaultStoreID is the store view used by cart operations
	DefaultStoreID string
	// CarrierCacheTTL is how long shipment carriers are cached (0 disables caching)
	CarrierCacheTTL time.Duration
	// Grammar is the native filter dialect (nil selects DefaultGrammar)
	Grammar *Grammar
}

// NewConfig creates a new connector configuration with defaults
func NewConfig() *Config {
	return &Config{
		DefaultStoreID:  DefaultStoreID,
		CarrierCacheTTL: DefaultCarrierCacheTTL,
		Grammar:         DefaultGrammar(),
	}
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	if c.DefaultStoreID == "" {
		c.DefaultStoreID = DefaultStoreID
	}
	if c.CarrierCacheTTL < 0 {
		return ErrConfigNegativeCacheTTL
	}
	if c.Grammar == nil {
		c.Grammar = DefaultGrammar()
	}
	return c.Grammar.Validate()
}
