package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Lookup    LookupConfig
	Cache     CacheConfig
	Scan      ScanConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LookupConfig holds product lookup API configuration
type LookupConfig struct {
	// EndpointTemplate must contain exactly one %s, replaced by the barcode
	EndpointTemplate  string        `mapstructure:"endpoint_template"`
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// CacheConfig holds product cache configuration
type CacheConfig struct {
	Path string `mapstructure:"path"`
}

// ScanConfig holds scan debouncing configuration
type ScanConfig struct {
	Cooldown time.Duration `mapstructure:"cooldown"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
	Burst int `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/scanlens/")

	// Environment variable settings
	v.SetEnvPrefix("SCANLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Lookup defaults
	v.SetDefault("lookup.endpoint_template", "https://world.openfoodfacts.org/api/v2/product/%s.json")
	v.SetDefault("lookup.user_agent", "ScanLens/1.0")
	v.SetDefault("lookup.timeout", "10s")
	v.SetDefault("lookup.requests_per_second", 10.0)
	v.SetDefault("lookup.burst", 10)

	// Cache defaults
	v.SetDefault("cache.path", "data/products.json")

	// Scan defaults
	v.SetDefault("scan.cooldown", "2s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	if strings.Count(config.Lookup.EndpointTemplate, "%s") != 1 {
		return fmt.Errorf("lookup endpoint template must contain exactly one %%s placeholder, got: %s",
			config.Lookup.EndpointTemplate)
	}

	if !strings.HasPrefix(config.Lookup.EndpointTemplate, "http://") &&
		!strings.HasPrefix(config.Lookup.EndpointTemplate, "https://") {
		return fmt.Errorf("lookup endpoint template must be an http(s) URL, got: %s",
			config.Lookup.EndpointTemplate)
	}

	if config.Cache.Path == "" {
		return fmt.Errorf("cache path is required (set SCANLENS_CACHE_PATH)")
	}

	if config.Scan.Cooldown < 0 {
		return fmt.Errorf("scan cooldown must not be negative, got: %s", config.Scan.Cooldown)
	}

	return nil
}
