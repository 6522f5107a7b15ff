// Package config handles configuration for the TaskFlow CLI,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for TaskFlow.
//
// Fields:
//   - DatabasePath: path to the local SQLite file holding the state snapshot.
//   - ReconcileInterval: how often the overdue-task sweep runs.
//   - SessionSecret: HMAC secret for signing the persisted session token
//     (HS256). Do not use the default outside local development.
//   - SessionTokenValidityDuration: how long a persisted session survives
//     across restarts before the user must log in again.
type Config struct {
	DatabasePath                 string
	ReconcileInterval            time.Duration
	SessionSecret                string
	SessionTokenValidityDuration time.Duration
}

// LoadDefaults populates Config with local-development defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "taskflow.db"
	c.ReconcileInterval = 60 * time.Second
	c.SessionSecret = "secretKey"
	c.SessionTokenValidityDuration = 30 * 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
