package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"stockdash/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Version      int              `toml:"version"`
	Symbol       string           `toml:"symbol"`
	TimeFrame    domain.TimeFrame `toml:"time_frame"`
	Indicator    string           `toml:"indicator"` // "", "sma", "ema" or "bollinger"
	TickRate     Duration         `toml:"tick_rate"`
	RefreshTicks int              `toml:"refresh_ticks"` // 0 disables the periodic refresh
	CacheSize    int              `toml:"cache_size"`
	CacheTTL     Duration         `toml:"cache_ttl"`
	FetchTimeout Duration         `toml:"fetch_timeout"`
	LogFile      string           `toml:"log_file"`
	APIKeyEnv    string           `toml:"api_key_env"`
	Source       string           `toml:"source"` // "polygon" or "demo"
}

// Market data sources
const (
	SourcePolygon = "polygon"
	SourceDemo    = "demo"
)

// Duration is a time.Duration written as "100ms" in the config file
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service over the user's config file
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return &configService{
		filePath: filepath.Join(configDir, "stockdash", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service over the file at path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Load loads the configuration from file, falling back to the defaults
// when there is none
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Config: no file at %s, using defaults", cs.filePath)
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Symbol = strings.TrimSpace(cfg.Symbol)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	return &Config{
		Version:      1,
		Symbol:       "TSLA",
		TimeFrame:    domain.OneMonth,
		TickRate:     Duration{100 * time.Millisecond},
		RefreshTicks: 600,
		CacheSize:    64,
		CacheTTL:     Duration{5 * time.Minute},
		FetchTimeout: Duration{10 * time.Second},
		LogFile:      filepath.Join(cacheDir, "stockdash", "stockdash.log"),
		APIKeyEnv:    "POLYGON_API_KEY",
		Source:       SourcePolygon,
	}
}

// Validate checks the values the rest of the program relies on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Symbol) == "" {
		return errors.New("symbol must not be empty")
	}
	if _, _, err := c.ParsedIndicator(); err != nil {
		return err
	}
	if c.TickRate.Duration <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %s", c.TickRate)
	}
	if c.RefreshTicks < 0 {
		return fmt.Errorf("refresh_ticks must not be negative, got %d", c.RefreshTicks)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}
	if c.FetchTimeout.Duration <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.Source != SourcePolygon && c.Source != SourceDemo {
		return fmt.Errorf("source must be %q or %q, got %q", SourcePolygon, SourceDemo, c.Source)
	}
	return nil
}

// ParsedIndicator returns the configured indicator; ok is false for none
func (c *Config) ParsedIndicator() (domain.Indicator, bool, error) {
	return domain.ParseIndicator(c.Indicator)
}

// APIKey reads the market data key from the configured environment variable
func (c *Config) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}
