// Package config handles configuration for the server component: defaults,
// a JSON file overlay, environment variables and command-line flags, applied
// in that order.
package config

import "time"

// Config holds runtime settings for the itemkeeper server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: postgres:// URL (pgx) or a SQLite file path / file: URI.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - DebugFallbackUser: accept the built-in alice/secret login. Development only.
//   - LogFormat / LogLevel: see logging.New.
type Config struct {
	EndpointAddrGRPC             string        `env:"ITEMKEEPER_GRPC_ADDR"`
	DatabaseDSN                  string        `env:"ITEMKEEPER_DATABASE_DSN"`
	SecretKey                    string        `env:"ITEMKEEPER_SECRET_KEY"`
	AccessTokenValidityDuration  time.Duration `env:"ITEMKEEPER_ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `env:"ITEMKEEPER_REFRESH_TOKEN_TTL"`
	DebugFallbackUser            bool          `env:"ITEMKEEPER_DEBUG_FALLBACK_USER"`
	LogFormat                    string        `env:"ITEMKEEPER_LOG_FORMAT"`
	LogLevel                     string        `env:"ITEMKEEPER_LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "itemkeeper.db"
	c.EndpointAddrGRPC = ":50051"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.DebugFallbackUser = false
	c.LogFormat = "json"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
// Unreadable or invalid sources panic.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
