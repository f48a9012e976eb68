package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Digikala PlatformConfig
	Torob    PlatformConfig
	Cache    CacheConfig
	Debug    bool `mapstructure:"debug"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PlatformConfig holds one upstream platform's API configuration
type PlatformConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricefinder/")

	v.SetEnvPrefix("PRICEFINDER")
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults suffice
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*", "moz-extension://*"})

	v.SetDefault("digikala.base_url", "https://api.digikala.com")
	v.SetDefault("torob.base_url", "https://api.torob.com")

	v.SetDefault("cache.ttl", "5m")

	v.SetDefault("debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Digikala.BaseURL == "" {
		return fmt.Errorf("digikala base URL is required")
	}
	if config.Torob.BaseURL == "" {
		return fmt.Errorf("torob base URL is required")
	}
	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache TTL must not be negative")
	}
	return nil
}
