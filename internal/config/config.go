// Package config holds the operator-local settings for talking to the
// marketplace admin API.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultPageSize = 20

type Config struct {
	// APIURL is the base URL of the marketplace admin API.
	APIURL string `json:"apiUrl,omitempty"`
	Token  string `json:"token,omitempty"`

	// TimeoutSeconds bounds every request; a hung mutation would otherwise
	// leave its entity pending forever in the UI.
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`
	PageSize       int `json:"pageSize,omitempty"`

	// CacheDir overrides where list/detail snapshots persist (default:
	// <config dir>/cache).
	CacheDir string `json:"cacheDir,omitempty"`
}

func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) EffectivePageSize() int {
	if c.PageSize <= 0 {
		return defaultPageSize
	}
	return c.PageSize
}

// Dir resolves the config directory. RENTDESK_CONFIG_DIR keeps tests and
// fixtures away from the operator's real home.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("RENTDESK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rentdesk"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file and applies environment overrides
// (RENTDESK_API_URL, RENTDESK_TOKEN). A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
	}

	if v := strings.TrimSpace(os.Getenv("RENTDESK_API_URL")); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("RENTDESK_TOKEN")); v != "" {
		cfg.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("RENTDESK_TIMEOUT_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
	return cfg, nil
}

// Save writes the config atomically (temp file + rename) so a CLI command
// and an open console can't corrupt each other's writes.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "config.json.*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, 0o600)
	return os.Rename(tmp, path)
}

// CachePath resolves where snapshot data lives.
func (c *Config) CachePath() (string, error) {
	if strings.TrimSpace(c.CacheDir) != "" {
		return c.CacheDir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}
