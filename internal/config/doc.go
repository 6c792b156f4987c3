// Package config loads and validates matchbot configuration.
//
// Every setting comes from an environment variable, parsed with
// caarlos0/env into grouped structs:
//
//   - ServerConfig: HTTP listener and timeouts
//   - DiscordConfig: bot token, application ID, interaction public key
//   - DatabaseConfig: DB_DRIVER (surreal or sqlite) and its settings
//   - RedisConfig: optional browse session backend
//   - SessionConfig: browse flow TTL and sweep interval
//   - LogConfig: JSON output and debug level
//   - RateLimitConfig: per-user interaction limits
//
// Load never fails on missing values; Validate reports all problems at once:
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
package config
