package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophboard/internal/flagx"
	"github.com/dmitrijs2005/gophboard/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	DeletedPageSize       int            `json:"deleted_page_size"`
	AllowedOrigins        []string       `json:"allowed_origins"`
	LogLevel              string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config. Fields absent
// from the file keep their current values. An unreadable or malformed file
// panics.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.DeletedPageSize > 0 {
		config.DeletedPageSize = c.DeletedPageSize
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
