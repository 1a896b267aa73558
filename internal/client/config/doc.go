// Package config loads runtime configuration for the gophboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by --config (see parseJson).
//  3. Command-line flags given explicitly, which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "database_path": "/home/me/.config/gophboard/session.db",
//	  "key_file": "/home/me/.config/gophboard/wallet.key",
//	  "request_timeout": "10s",
//	  "refresh_before": "1h",
//	  "log_file": "/tmp/gophboard.log"
//	}
package config
