package config

import "time"

// Config holds runtime settings for the sitereport client.
//
// Units: OnlineCheckInterval and SyncSweepInterval are time.Durations
// (e.g., 3*time.Second).
type Config struct {
	RemoteBaseURL       string
	APIKey              string
	DatabaseDSN         string
	StateFilePath       string
	OnlineCheckInterval time.Duration
	SyncSweepInterval   time.Duration
	ArchiveLimit        int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RemoteBaseURL = "http://127.0.0.1:8080"
	c.APIKey = ""
	c.DatabaseDSN = "sitereport.db"
	c.StateFilePath = "sitereport_state.json"
	c.OnlineCheckInterval = 3 * time.Second
	c.SyncSweepInterval = 30 * time.Second
	c.ArchiveLimit = 20
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
