package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the gophboard client.
type Config struct {
	// ServerEndpointAddr is the base URL of the board API.
	ServerEndpointAddr string
	// DatabasePath is the SQLite file holding the session.
	DatabasePath string
	// KeyFile holds the hex private key used to sign in.
	KeyFile        string
	RequestTimeout time.Duration
	// RefreshBefore renews the credential when it expires sooner than this.
	RefreshBefore time.Duration
	// LogFile enables logging when set; the terminal board owns stdout.
	LogFile string
}

// LoadDefaults populates c with sensible defaults. Local files live under
// the user's configuration directory.
func (c *Config) LoadDefaults() {
	dir := defaultDir()
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.DatabasePath = filepath.Join(dir, "session.db")
	c.KeyFile = filepath.Join(dir, "wallet.key")
	c.RequestTimeout = 10 * time.Second
	c.RefreshBefore = time.Hour
	c.LogFile = ""
}

func defaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "gophboard")
}

// Load builds the effective configuration: defaults, then the JSON file at
// path (if any), then each field of flags whose flag changed reports as set.
func Load(path string, flags *Config, changed func(name string) bool) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if flags != nil && changed != nil {
		overlayFlags(cfg, flags, changed)
	}
	return cfg, nil
}
