// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
)

// Config holds runtime settings for the gophboard server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: lifetime of issued credentials.
//   - DeletedPageSize: page size of the deleted-items log.
//   - AllowedOrigins: CORS origins allowed to call the API.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	DeletedPageSize       int
	AllowedOrigins        []string
	LogLevel              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.DeletedPageSize = common.DefaultDeletedPageSize
	c.AllowedOrigins = []string{"*"}
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
