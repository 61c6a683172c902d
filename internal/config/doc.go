// Package config loads runtime configuration for the portfolio server and the
// admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Deploy-time credentials (remote data API, AI key, admin password) are not
// part of Config. They are read from the process environment by LoadEnv,
// after .env files have been loaded with godotenv.
//
// # JSON schema
//
// Durations use timex.Duration, so "3s" and integer nanoseconds both work:
//
//	{
//	  "http_addr": ":3000",
//	  "database_path": "portfolio.db",
//	  "token_validity": "12h",
//	  "online_check_interval": "3s",
//	  "log_backend": "zerolog"
//	}
package config
