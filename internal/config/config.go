// Package config handles loading and resolving stackslip configuration.
// Resolution order (first non-empty value wins):
//  1. CLI flags (--key, --site, ...)
//  2. Environment variables STACKEX_KEY / STACKSLIP_SITE
//  3. config.json in the current working directory
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultConfigFile = "config.json"
	DefaultFormat     = "text"
	DefaultTimeout    = 30 * time.Second
	DefaultRate       = 5.0
	DefaultSite       = "stackoverflow"
	DefaultBaseURL    = "https://api.stackexchange.com/2.3/"
	DefaultFilter     = "!BTeL)VRhXdb1"
	EnvKey            = "STACKEX_KEY"
	EnvSite           = "STACKSLIP_SITE"
)

// File is the on-disk representation of config.json.
type File struct {
	Key           string  `json:"key"`
	Site          string  `json:"site"`
	DefaultFormat string  `json:"default_format"`
	Timeout       string  `json:"timeout"`
	Rate          float64 `json:"rate"`
	BaseURL       string  `json:"base_url"`
	Filter        string  `json:"filter"`
	OutDir        string  `json:"out_dir"`
}

// Config is the fully-resolved runtime configuration.
// All callers use this struct; the File is only read during loading.
type Config struct {
	Key        string // Stack Exchange app key; optional quota widener
	Site       string
	Format     string
	Timeout    time.Duration
	Rate       float64
	BaseURL    string
	Filter     string
	OutDir     string
	ConfigPath string // path of the config.json that was loaded (empty if none found)

	// Runtime overrides set from CLI flags after Load()
	Quiet   bool
	Verbose bool
	Debug   bool
}

// Load resolves configuration from all sources.
// flagKey is the value of --key (empty string if not set).
func Load(flagKey string) (*Config, error) {
	cfg := &Config{
		Site:    DefaultSite,
		Format:  DefaultFormat,
		Timeout: DefaultTimeout,
		Rate:    DefaultRate,
		BaseURL: DefaultBaseURL,
		Filter:  DefaultFilter,
	}

	// Layer 1: config.json (lowest priority)
	if f, path, err := loadFile(); err == nil {
		applyFile(cfg, f, path)
	}

	// Layer 2: environment variables
	if v := os.Getenv(EnvKey); v != "" {
		cfg.Key = v
	}
	if v := os.Getenv(EnvSite); v != "" {
		cfg.Site = v
	}

	// Layer 3: CLI flag (highest priority)
	if flagKey != "" {
		cfg.Key = flagKey
	}

	return cfg, nil
}

// Validate returns an error if required fields are missing or unusable.
// The app key is never required: the API serves anonymous quota.
func (c *Config) Validate() error {
	if c.Site == "" {
		return errors.New("site must not be empty (e.g. stackoverflow, superuser)")
	}
	if c.Rate <= 0 {
		return fmt.Errorf("rate must be positive, got %g", c.Rate)
	}
	return nil
}

// SiteHost returns the public host for the configured site, used in the
// profile URL line and the barcode payload.
func (c *Config) SiteHost() string {
	return c.Site + ".com"
}

// RedactedKey returns the app key with most characters replaced by
// asterisks. Safe for logging and display.
func (c *Config) RedactedKey() string {
	if c.Key == "" {
		return ""
	}
	if len(c.Key) <= 4 {
		return "****"
	}
	return c.Key[:2] + "****" + c.Key[len(c.Key)-2:]
}

// loadFile attempts to read config.json from the current working directory.
func loadFile() (*File, string, error) {
	path, err := filepath.Abs(DefaultConfigFile)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("config.json not found at %s", path)
		}
		return nil, "", fmt.Errorf("reading config.json: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parsing config.json: %w", err)
	}
	return &f, path, nil
}

// applyFile copies values from a parsed File into cfg,
// skipping any fields that are zero/empty.
func applyFile(cfg *Config, f *File, path string) {
	cfg.ConfigPath = path
	if f.Key != "" {
		cfg.Key = f.Key
	}
	if f.Site != "" {
		cfg.Site = f.Site
	}
	if f.DefaultFormat != "" {
		cfg.Format = f.DefaultFormat
	}
	if f.Timeout != "" {
		if d, err := time.ParseDuration(f.Timeout); err == nil {
			cfg.Timeout = d
		}
	}
	if f.Rate > 0 {
		cfg.Rate = f.Rate
	}
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.Filter != "" {
		cfg.Filter = f.Filter
	}
	if f.OutDir != "" {
		cfg.OutDir = f.OutDir
	}
}

// Template returns a File populated with sensible defaults, suitable for
// writing an initial config.json via `stackslip config init`.
func Template() File {
	return File{
		Key:           "",
		Site:          DefaultSite,
		DefaultFormat: DefaultFormat,
		Timeout:       "30s",
		Rate:          DefaultRate,
		BaseURL:       DefaultBaseURL,
		Filter:        DefaultFilter,
	}
}

// WriteFile serialises a File to the given path.
func WriteFile(path string, f File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0600)
}
