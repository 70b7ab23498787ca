package config

import (
	"time"

	"github.com/dmitrijs2005/healthplanner/internal/client/credentials"
)

// Config holds runtime settings for the healthplanner CLI.
//
// Fields:
//   - APIBase: scheme://host[:port] of the backend; requests go to APIBase + "/api".
//   - DataDir: directory for the local database and log files.
//   - CredentialStore: which credentials backend keeps the access token.
//   - RequestTimeout: per request timeout of the HTTP client.
//   - Debug: verbose logging, mirrored to stderr.
type Config struct {
	APIBase         string
	DataDir         string
	CredentialStore credentials.Kind
	RequestTimeout  time.Duration
	Debug           bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBase = "http://localhost:8000"
	c.DataDir = ".healthplanner"
	c.CredentialStore = credentials.KindSQLite
	c.RequestTimeout = 15 * time.Second
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and an optional .env file), JSON (if present) and
// command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
