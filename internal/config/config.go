// Package config loads the client configuration: a YAML file created on
// first run, with BORELLI_* environment variables taking precedence.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the firm's webhook backend.
const DefaultBaseURL = "https://matheuscarneiro12.app.n8n.cloud/webhook"

// Config is the top-level client configuration.
type Config struct {
	// APIBaseURL is the webhook base path every request is issued against.
	APIBaseURL string `yaml:"api_base_url"`

	// SessionFile overrides where the authenticated session is persisted.
	// Empty means the per-user default location.
	SessionFile string `yaml:"session_file,omitempty"`

	// LogLevel accepts debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// HTTPTimeoutSeconds bounds each request. Zero means the default.
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		APIBaseURL:         DefaultBaseURL,
		LogLevel:           "info",
		HTTPTimeoutSeconds: 10,
	}
}

// Normalize fills missing or zero values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultBaseURL
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HTTPTimeoutSeconds <= 0 {
		c.HTTPTimeoutSeconds = 10
	}
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("BORELLI_API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("BORELLI_SESSION_FILE"); v != "" {
		c.SessionFile = v
	}
	if v := os.Getenv("BORELLI_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BORELLI_HTTP_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.HTTPTimeoutSeconds = secs
		}
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "borelli", "config.yaml"), nil
}

// Load reads the YAML config at path. A missing file is created with the
// defaults; environment overrides are applied last either way.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	cfg.ApplyEnv()
	return &cfg, nil
}

// Save writes the config atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".borelli-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
