// ABOUTME: Console configuration: backend base URL, token, timeout
// ABOUTME: JSON file at an XDG path, overridden by .env and environment
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// AppName is the directory name under the XDG config home.
	AppName = "tripdesk"

	// ConfigFileName is where the console stores its settings.
	ConfigFileName = "config.json"
)

// Config holds everything the console needs to reach the backend. The
// base URL is the single required value; everything else has a default.
type Config struct {
	// BaseURL is the backend API root, e.g. https://travel.example.com/api
	BaseURL string `json:"base_url" env:"TRIPDESK_API_URL"`

	// Token is the API token sent on every request; empty means
	// unauthenticated.
	Token string `json:"token,omitempty" env:"TRIPDESK_API_TOKEN"`

	// TimeoutSeconds bounds each backend call.
	TimeoutSeconds int `json:"timeout_seconds,omitempty" env:"TRIPDESK_TIMEOUT"`
}

// DefaultConfig returns a config with sensible defaults and no base URL;
// the caller must supply one before the client can be built.
func DefaultConfig() *Config {
	return &Config{TimeoutSeconds: 30}
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// configPath returns the path to the config file, creating its directory.
func configPath() (string, error) {
	dir := filepath.Join(xdg.ConfigHome, AppName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads config in precedence order: defaults, then the config file,
// then a .env file in the working directory, then real environment
// variables. Missing file and missing .env are both fine.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := configPath()
	if err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	return cfg, nil
}

// Save persists the config to disk. The token lives in the same file, so
// keep the permissions tight.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// SetBaseURL sets the backend root and saves.
func (c *Config) SetBaseURL(baseURL string) error {
	c.BaseURL = baseURL
	return c.Save()
}

// SetToken sets the API token and saves.
func (c *Config) SetToken(token string) error {
	c.Token = token
	return c.Save()
}
