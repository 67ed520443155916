package config

import "time"

// Config holds runtime settings for the PADIPS CLI.
//
// BaseURL is the single prefix all HTTP endpoints are resolved against
// (the deployed backend mounts everything under /auth). SecondsPerQuestion
// and PointsPerCorrect are deliberately configuration, not constants: both
// have drifted across releases of the backend.
type Config struct {
	BaseURL            string
	RealtimeURL        string
	APIKey             string
	RequestTimeout     time.Duration
	SecondsPerQuestion int
	PointsPerCorrect   float64
	DatabasePath       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://padips2back.onrender.com/auth"
	c.RealtimeURL = "wss://padips2back.onrender.com/ws"
	c.APIKey = ""
	c.RequestTimeout = 10 * time.Second
	c.SecondsPerQuestion = 60
	c.PointsPerCorrect = 1.5
	c.DatabasePath = "padips.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment, and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
