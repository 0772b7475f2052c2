package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library    LibraryConfig    `toml:"library"`
	Radio      RadioConfig      `toml:"radio"`
	Metadata   MetadataConfig   `toml:"metadata"`
	Lyrics     LyricsConfig     `toml:"lyrics"`
	Validation ValidationConfig `toml:"validation"`
	Database   DatabaseConfig   `toml:"database"`
	Server     ServerConfig     `toml:"server"`
}

// LibraryConfig contains connection settings for the remote music library.
type LibraryConfig struct {
	BaseURL     string `toml:"base_url"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	ClientName  string `toml:"client_name"`
	HeadersPath string `toml:"headers_path"`
}

// RadioConfig contains settings for the radio station directory.
type RadioConfig struct {
	BaseURL   string  `toml:"base_url"`
	UserAgent string  `toml:"user_agent"`
	RateLimit float64 `toml:"rate_limit"`
}

// MetadataConfig contains credentials for the music-metadata provider.
type MetadataConfig struct {
	BaseURL      string `toml:"base_url"`
	TokenURL     string `toml:"token_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// LyricsConfig contains settings for the lyrics provider.
type LyricsConfig struct {
	BaseURL  string `toml:"base_url"`
	CacheTTL int    `toml:"cache_ttl_hours"`
}

// TTL returns the configured lyrics cache lifetime as a duration. Zero
// disables expiry.
func (l LyricsConfig) TTL() time.Duration {
	return time.Duration(l.CacheTTL) * time.Hour
}

// ValidationConfig bounds stream validation calls.
type ValidationConfig struct {
	DefaultTimeoutMs int `toml:"default_timeout_ms"`
	MinTimeoutMs     int `toml:"min_timeout_ms"`
	MaxTimeoutMs     int `toml:"max_timeout_ms"`
	DiscoveryWorkers int `toml:"discovery_workers"`
}

// DefaultTimeout returns the configured single-validation timeout as a duration.
func (v ValidationConfig) DefaultTimeout() time.Duration {
	if v.DefaultTimeoutMs <= 0 {
		return 8 * time.Second
	}
	return time.Duration(v.DefaultTimeoutMs) * time.Millisecond
}

// MinTimeout returns the lower bound for a validation timeout.
func (v ValidationConfig) MinTimeout() time.Duration {
	if v.MinTimeoutMs <= 0 {
		return 1 * time.Second
	}
	return time.Duration(v.MinTimeoutMs) * time.Millisecond
}

// MaxTimeout returns the upper bound for a validation timeout.
func (v ValidationConfig) MaxTimeout() time.Duration {
	if v.MaxTimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(v.MaxTimeoutMs) * time.Millisecond
}

// Workers returns the configured discovery worker count.
func (v ValidationConfig) Workers() int {
	if v.DiscoveryWorkers <= 0 {
		return 5
	}
	return v.DiscoveryWorkers
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
