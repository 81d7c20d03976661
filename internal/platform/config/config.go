// Package config loads application configuration from a YAML file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in upstream.provider.
const (
	ProviderYahoo        = "yahoo"
	ProviderAlphaVantage = "alphavantage"
)

// Database drivers accepted in database.driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Upstream struct {
		Provider  string        `yaml:"provider"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"upstream"`
	Yahoo struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"yahoo"`
	AlphaVantage struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"alpha_vantage"`
	Quotes struct {
		StrictShape bool `yaml:"strict_shape"`
	} `yaml:"quotes"`
	Redis struct {
		Host     string        `yaml:"host"`
		Port     string        `yaml:"port"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		StateTTL time.Duration `yaml:"state_ttl"`
	} `yaml:"redis"`
	Database struct {
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Migrate  bool   `yaml:"migrate"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("UPSTREAM_PROVIDER"); v != "" {
		cfg.Upstream.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.Timeout = d
		}
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Yahoo.BaseURL = v
	}
	if v := os.Getenv("YAHOO_API_KEY"); v != "" {
		cfg.Yahoo.APIKey = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_BASE_URL"); v != "" {
		cfg.AlphaVantage.BaseURL = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		cfg.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("QUOTES_STRICT_SHAPE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Quotes.StrictShape = b
		}
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		cfg.Redis.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if os.Getenv("RUN_MIGRATIONS") == "true" {
		cfg.Database.Migrate = true
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Upstream.Provider == "" {
		cfg.Upstream.Provider = ProviderYahoo
	}
	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = 10 * time.Second
	}
	if cfg.Upstream.UserAgent == "" {
		cfg.Upstream.UserAgent = "dashboard-backend/1.0"
	}
	if cfg.Yahoo.BaseURL == "" {
		cfg.Yahoo.BaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.AlphaVantage.BaseURL == "" {
		cfg.AlphaVantage.BaseURL = "https://www.alphavantage.co/query"
	}
	if cfg.Redis.Host != "" && cfg.Redis.Port == "" {
		cfg.Redis.Port = "6379"
	}
	if cfg.Redis.StateTTL <= 0 {
		cfg.Redis.StateTTL = 24 * time.Hour
	}
	if cfg.Database.Driver == DriverPostgres && cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Upstream.Provider {
	case ProviderYahoo:
	case ProviderAlphaVantage:
		if c.AlphaVantage.APIKey == "" {
			return fmt.Errorf("alpha_vantage.api_key is required when upstream.provider is %q", ProviderAlphaVantage)
		}
	default:
		return fmt.Errorf("upstream.provider must be %q or %q, got %q", ProviderYahoo, ProviderAlphaVantage, c.Upstream.Provider)
	}
	switch c.Database.Driver {
	case "", DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if c.Database.Driver == DriverSQLite && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for the %q driver", DriverSQLite)
	}
	return nil
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// DatabaseEnabled reports whether a symbol catalog database is configured.
func (c *Config) DatabaseEnabled() bool {
	return c.Database.Driver != ""
}
