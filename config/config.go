// Package config loads the period engine server configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/warp/period-engine/factory"
	"github.com/warp/period-engine/periods"
	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Engine   EngineConfig   `yaml:"engine"`
	Verbose  bool           `yaml:"-"` // set via CLI flag
}

// ServerConfig contains HTTP settings.
type ServerConfig struct {
	HTTPAddress    string   `yaml:"http_address"`    // listen address (default: :8080)
	AllowedOrigins []string `yaml:"allowed_origins"` // CORS origins (default: *)
	ReadTimeout    string   `yaml:"read_timeout"`    // e.g. "15s"
	WriteTimeout   string   `yaml:"write_timeout"`   // e.g. "15s"
}

// DatabaseConfig contains record store settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // sqlite file, ":memory:" for a throwaway store
}

// EngineConfig sizes the option catalogue.
type EngineConfig struct {
	MonthsBack    int                  `yaml:"months_back"`
	YearsBack     int                  `yaml:"years_back"`
	DefaultLocale string               `yaml:"default_locale"`
	Options       []factory.OptionJSON `yaml:"options"` // extra custom options
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = ":8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "15s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "15s"
	}
	if c.Database.Path == "" {
		c.Database.Path = "periods.db"
	}
	defaults := periods.DefaultCatalogueConfig()
	if c.Engine.MonthsBack == 0 {
		c.Engine.MonthsBack = defaults.MonthsBack
	}
	if c.Engine.YearsBack == 0 {
		c.Engine.YearsBack = defaults.YearsBack
	}
	if c.Engine.DefaultLocale == "" {
		c.Engine.DefaultLocale = "en"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.HTTPAddress == "" {
		return fmt.Errorf("server.http_address is required")
	}
	if _, err := time.ParseDuration(c.Server.ReadTimeout); err != nil {
		return fmt.Errorf("invalid server.read_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Server.WriteTimeout); err != nil {
		return fmt.Errorf("invalid server.write_timeout: %w", err)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if _, err := c.Catalogue(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

// CatalogueConfig builds the catalogue settings, including extra options.
func (c *Config) CatalogueConfig() (periods.CatalogueConfig, error) {
	extra, err := factory.NewOptionFactory().BuildOptions(c.Engine.Options)
	if err != nil {
		return periods.CatalogueConfig{}, err
	}
	cfg := periods.CatalogueConfig{
		MonthsBack: c.Engine.MonthsBack,
		YearsBack:  c.Engine.YearsBack,
		Extra:      extra,
	}
	return cfg, cfg.Validate()
}

// Catalogue builds the option catalogue.
func (c *Config) Catalogue() (*periods.Catalogue, error) {
	cfg, err := c.CatalogueConfig()
	if err != nil {
		return nil, err
	}
	return periods.NewCatalogue(cfg)
}

// Timeouts returns the parsed server read and write timeouts.
func (c *Config) Timeouts() (read, write time.Duration) {
	read, _ = time.ParseDuration(c.Server.ReadTimeout)
	write, _ = time.ParseDuration(c.Server.WriteTimeout)
	return read, write
}
