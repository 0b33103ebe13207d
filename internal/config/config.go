package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the per-installation config.toml.
type Config struct {
	// APIBaseURL is the catalog/auth API root.
	APIBaseURL string `toml:"api_base_url"`
	// ChatURL is the seller chat websocket endpoint (demo echo service).
	ChatURL string `toml:"chat_url"`
	// WebBaseURL is the storefront root used to build shareable links.
	WebBaseURL string `toml:"web_base_url"`
	// PageSize is the number of products shown per page.
	PageSize int `toml:"page_size"`
	// CacheTTLSeconds bounds how long a catalog result stays fresh.
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIBaseURL:      "https://dummyjson.com",
		ChatURL:         "wss://echo.websocket.org",
		WebBaseURL:      "https://fynd.example/shop/",
		PageSize:        20,
		CacheTTLSeconds: 60,
	}
}

// CacheTTL returns the catalog cache freshness window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Load reads config from the given path, filling unset fields from Default.
// Returns the defaults and an error if the file is missing or malformed.
func Load(path string) (*Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return Default(), err
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = Default().PageSize
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = Default().CacheTTLSeconds
	}
	return cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
