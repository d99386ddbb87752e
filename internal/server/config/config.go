// Package config handles configuration for the server component,
// including defaults, environment (.env), JSON overlay, and command-line flags.
package config

import (
	"strings"
)

// Config holds runtime settings for the letshang server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - EndpointAddrHTTP: bind address for health, metrics and share previews.
//   - DatabaseDSN: PostgreSQL DSN (pgx), or "memory" for the in-process store.
//   - SecretKey: HMAC secret for verifying identity tokens (HS256).
//   - ShareBaseURL: web app address that share links point at.
//   - CORSAllowedOrigins: origins allowed to call the HTTP endpoint.
//   - LogLevel: debug, info, warn or error.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     object storage for avatars.
type Config struct {
	EndpointAddrGRPC   string
	EndpointAddrHTTP   string
	DatabaseDSN        string
	SecretKey          string
	ShareBaseURL       string
	CORSAllowedOrigins []string
	LogLevel           string
	S3RootUser         string
	S3RootPassword     string
	S3Bucket           string
	S3Region           string
	S3BaseEndpoint     string
}

// MemoryDSN selects the in-process store instead of PostgreSQL.
const MemoryDSN = "memory"

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = MemoryDSN
	c.SecretKey = "secretKey"
	c.ShareBaseURL = "http://localhost:3000/"
	c.CORSAllowedOrigins = []string{"*"}
	c.LogLevel = "info"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "avatars"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// UsesMemoryStore reports whether DatabaseDSN selects the in-process store.
func (c *Config) UsesMemoryStore() bool {
	return c.DatabaseDSN == MemoryDSN
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
