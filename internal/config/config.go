// Package config loads and persists the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/waylightapp/waylight/internal/lightninglane"
)

// Config represents the application configuration.
type Config struct {
	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// API server configuration
	API APIConfig `toml:"api"`

	// Export configuration
	Export ExportConfig `toml:"export"`

	// Lightning Lane reference-table overrides
	LightningLane LightningLaneConfig `toml:"lightning_lane"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Path to the SQLite database
	AutoMigrate bool   `toml:"auto_migrate"` // Run migrations on open
}

// APIConfig contains REST API server settings.
type APIConfig struct {
	Port           int      `toml:"port"`            // Listen port
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins
	RateLimit      float64  `toml:"rate_limit"`      // Requests per second per server
	RateBurst      int      `toml:"rate_burst"`      // Burst size
}

// ExportConfig contains report export settings.
type ExportConfig struct {
	Dir        string `toml:"dir"`         // Output directory for reports
	PrettyJSON bool   `toml:"pretty_json"` // Indent JSON exports
}

// LightningLaneConfig overrides entries of the built-in reference tables.
// Anything left empty keeps the defaults.
type LightningLaneConfig struct {
	HighDemandAttractions []string           `toml:"high_demand_attractions"`
	BaseWaitMinutes       map[string]int     `toml:"base_wait_minutes"`
	SellOutTimes          map[string]string  `toml:"sell_out_times"`
	SinglePassCosts       map[string]float64 `toml:"single_pass_costs"`
	MultiPassBasePrice    float64            `toml:"multi_pass_base_price"`
	WeekendSurcharge      float64            `toml:"weekend_surcharge"`
	WeekdaySurcharge      float64            `toml:"weekday_surcharge"`
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        "", // resolved under the config dir when empty
			AutoMigrate: true,
		},
		API: APIConfig{
			Port:           8090,
			AllowedOrigins: []string{"http://localhost:3000"},
			RateLimit:      50,
			RateBurst:      100,
		},
		Export: ExportConfig{
			Dir:        "",
			PrettyJSON: true,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// Dir returns the Waylight configuration directory, creating it if
// needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".waylight")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return configDir, nil
}

// Path returns the path to the configuration file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns the default config if
// the file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// DatabasePath resolves the configured database path, defaulting to
// waylight.db under the config directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "waylight.db"), nil
}

// Tables merges the Lightning Lane overrides over the built-in defaults.
func (c *Config) Tables() lightninglane.Tables {
	tables := lightninglane.DefaultTables()

	if len(c.LightningLane.HighDemandAttractions) > 0 {
		tables.HighDemandAttractions = make(map[string]bool, len(c.LightningLane.HighDemandAttractions))
		for _, id := range c.LightningLane.HighDemandAttractions {
			tables.HighDemandAttractions[id] = true
		}
	}
	for id, wait := range c.LightningLane.BaseWaitMinutes {
		tables.BaseWaitMinutes[id] = wait
	}
	for id, t := range c.LightningLane.SellOutTimes {
		tables.SellOutTimes[id] = t
	}
	for id, cost := range c.LightningLane.SinglePassCosts {
		tables.SinglePassCosts[id] = cost
	}
	if c.LightningLane.MultiPassBasePrice > 0 {
		tables.MultiPassBasePrice = c.LightningLane.MultiPassBasePrice
	}
	if c.LightningLane.WeekendSurcharge > 0 {
		tables.WeekendSurcharge = c.LightningLane.WeekendSurcharge
	}
	if c.LightningLane.WeekdaySurcharge > 0 {
		tables.WeekdaySurcharge = c.LightningLane.WeekdaySurcharge
	}
	return tables
}
