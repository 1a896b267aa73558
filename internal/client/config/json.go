package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	DatabasePath       string         `json:"database_path"`
	KeyFile            string         `json:"key_file"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	RefreshBefore      timex.Duration `json:"refresh_before"`
	LogFile            string         `json:"log_file"`
}

// parseJson overlays cfg with the non-empty values of the JSON file at path.
// An empty path loads nothing.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KeyFile != "" {
		cfg.KeyFile = jc.KeyFile
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RefreshBefore.Duration > 0 {
		cfg.RefreshBefore = jc.RefreshBefore.Duration
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
	return nil
}
