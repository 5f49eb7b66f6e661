package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/erp/connector/internal/infrastructure/magento"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Redis        RedisConfig
	CarrierCache CarrierCacheConfig
	Storefront   StorefrontConfig
	Filter       FilterConfig
	Telemetry    TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
	RateLimitRPS     float64
	RateLimitBurst   int
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port address of the Redis server
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CarrierCacheConfig controls caching of shipment carrier lists
type CarrierCacheConfig struct {
	Enabled          bool
	TTL              time.Duration
	KeyPrefix        string
	InMemoryFallback bool
}

// StorefrontConfig holds the remote storefront settings
type StorefrontConfig struct {
	DefaultStoreID string
	SessionToken   string
}

// FilterConfig holds the native filter dialect.
// Empty values keep the platform defaults; TimeZone is an IANA zone name
// and dates render in UTC without it.
type FilterConfig struct {
	OrSeparator      string
	OrOpen           string
	OrClose          string
	DateLayout       string
	TimeZone         string
	NullLiteral      string
	BooleanFormat    string            // text or numeric
	BooleanOverrides map[string]string // field name -> text or numeric
}

// TelemetryConfig holds OpenTelemetry export settings
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	Insecure          bool
	MetricsEnabled    bool
	MetricsInterval   time.Duration
	// LogsEnabled exports application logs over OTLP next to local output
	LogsEnabled bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with MAGE_ prefix (e.g., MAGE_REDIS_HOST)
// 2. Variables from a .env file in the working directory
// 3. config.toml
// 4. Built-in defaults
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("MAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Flags that are on unless disabled
	v.SetDefault("carrier_cache.enabled", true)
	v.SetDefault("carrier_cache.in_memory_fallback", true)
	v.SetDefault("telemetry.sampling_ratio", 1.0)
	v.SetDefault("telemetry.insecure", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
			RateLimitRPS:     v.GetFloat64("http.rate_limit_rps"),
			RateLimitBurst:   v.GetInt("http.rate_limit_burst"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		CarrierCache: CarrierCacheConfig{
			Enabled:          v.GetBool("carrier_cache.enabled"),
			TTL:              v.GetDuration("carrier_cache.ttl"),
			KeyPrefix:        v.GetString("carrier_cache.key_prefix"),
			InMemoryFallback: v.GetBool("carrier_cache.in_memory_fallback"),
		},
		Storefront: StorefrontConfig{
			DefaultStoreID: v.GetString("storefront.default_store_id"),
			SessionToken:   v.GetString("storefront.session_token"),
		},
		Filter: FilterConfig{
			OrSeparator:      v.GetString("filter.or_separator"),
			OrOpen:           v.GetString("filter.or_open"),
			OrClose:          v.GetString("filter.or_close"),
			DateLayout:       v.GetString("filter.date_layout"),
			TimeZone:         v.GetString("filter.time_zone"),
			NullLiteral:      v.GetString("filter.null_literal"),
			BooleanFormat:    v.GetString("filter.boolean_format"),
			BooleanOverrides: v.GetStringMapString("filter.boolean_overrides"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			LogsEnabled:       v.GetBool("telemetry.logs.enabled"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv exports the variables of .env files without overriding the
// process environment. Missing files are ignored.
func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading %s: %w", file, err)
		}
	}
	return nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "magento-connector"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	// No CORS origin default: cross-origin requests stay disabled until configured
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.CarrierCache.TTL == 0 {
		cfg.CarrierCache.TTL = magento.DefaultCarrierCacheTTL
	}
	if cfg.CarrierCache.KeyPrefix == "" {
		cfg.CarrierCache.KeyPrefix = "magento:carriers:"
	}
	if cfg.Storefront.DefaultStoreID == "" {
		cfg.Storefront.DefaultStoreID = magento.DefaultStoreID
	}
	if cfg.Filter.OrSeparator == "" {
		cfg.Filter.OrSeparator = magento.DefaultOrSeparator
	}
	if cfg.Filter.OrOpen == "" {
		cfg.Filter.OrOpen = magento.DefaultOrOpen
	}
	if cfg.Filter.OrClose == "" {
		cfg.Filter.OrClose = magento.DefaultOrClose
	}
	if cfg.Filter.DateLayout == "" {
		cfg.Filter.DateLayout = magento.DefaultDateLayout
	}
	if cfg.Filter.NullLiteral == "" {
		cfg.Filter.NullLiteral = magento.DefaultNullLiteral
	}
	if cfg.Filter.BooleanFormat == "" {
		cfg.Filter.BooleanFormat = "text"
	}
	if len(cfg.Filter.BooleanOverrides) == 0 {
		cfg.Filter.BooleanOverrides = map[string]string{"is_active": "numeric"}
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.CarrierCache.TTL < 0 {
		return fmt.Errorf("carrier_cache.ttl cannot be negative")
	}
	if c.HTTP.RateLimitRPS < 0 || c.HTTP.RateLimitBurst < 0 {
		return fmt.Errorf("http.rate_limit_rps and http.rate_limit_burst cannot be negative")
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		return fmt.Errorf("redis.port must be between 1 and 65535, got %d", c.Redis.Port)
	}
	if _, err := booleanFormat(c.Filter.BooleanFormat); err != nil {
		return fmt.Errorf("filter.boolean_format: %w", err)
	}
	for field, format := range c.Filter.BooleanOverrides {
		if _, err := booleanFormat(format); err != nil {
			return fmt.Errorf("filter.boolean_overrides.%s: %w", field, err)
		}
	}
	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0 and 1, got %v", c.Telemetry.SamplingRatio)
	}
	if _, err := c.Filter.Grammar(); err != nil {
		return err
	}

	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// Grammar builds the native filter dialect described by the section
func (f FilterConfig) Grammar() (*magento.Grammar, error) {
	g := magento.DefaultGrammar()
	if f.OrSeparator != "" {
		g.OrSeparator = f.OrSeparator
	}
	if f.OrOpen != "" {
		g.OrOpen = f.OrOpen
	}
	if f.OrClose != "" {
		g.OrClose = f.OrClose
	}
	if f.DateLayout != "" {
		g.DateLayout = f.DateLayout
	}
	if f.TimeZone != "" {
		loc, err := time.LoadLocation(f.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("filter.time_zone: %w", err)
		}
		g.Location = loc
	}
	if f.NullLiteral != "" {
		g.NullLiteral = f.NullLiteral
	}
	if f.BooleanFormat != "" {
		b, err := booleanFormat(f.BooleanFormat)
		if err != nil {
			return nil, err
		}
		g.Booleans = b
	}
	if len(f.BooleanOverrides) > 0 {
		g.BooleanOverrides = make(map[string]magento.BooleanFormat, len(f.BooleanOverrides))
		for field, name := range f.BooleanOverrides {
			b, err := booleanFormat(name)
			if err != nil {
				return nil, err
			}
			g.BooleanOverrides[field] = b
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func booleanFormat(name string) (magento.BooleanFormat, error) {
	switch strings.ToLower(name) {
	case "text":
		return magento.TextBoolean, nil
	case "numeric":
		return magento.NumericBoolean, nil
	default:
		return magento.BooleanFormat{}, fmt.Errorf("unknown boolean format %q (want text or numeric)", name)
	}
}

// Connector builds the storefront connector configuration
func (c *Config) Connector() (*magento.Config, error) {
	g, err := c.Filter.Grammar()
	if err != nil {
		return nil, err
	}
	ttl := c.CarrierCache.TTL
	if !c.CarrierCache.Enabled {
		ttl = 0
	}
	return &magento.Config{
		DefaultStoreID:  c.Storefront.DefaultStoreID,
		CarrierCacheTTL: ttl,
		Grammar:         g,
	}, nil
}
