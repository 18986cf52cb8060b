package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/fieldworks/sitereport/internal/flagx"
	"github.com/fieldworks/sitereport/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	RemoteBaseURL       string         `json:"remote_base_url"`
	APIKey              string         `json:"api_key"`
	DatabaseDSN         string         `json:"database_dsn"`
	StateFilePath       string         `json:"state_file_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SyncSweepInterval   timex.Duration `json:"sync_sweep_interval"`
	ArchiveLimit        int            `json:"archive_limit"`
}

// parseJson overlays Config with values loaded from a JSON file selected
// via the -c or -config flags. Only fields present in the file override
// the existing values. Panics on read or unmarshal errors (caller should
// recover if desired).
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RemoteBaseURL != "" {
		cfg.RemoteBaseURL = jc.RemoteBaseURL
	}
	if jc.APIKey != "" {
		cfg.APIKey = jc.APIKey
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.StateFilePath != "" {
		cfg.StateFilePath = jc.StateFilePath
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.SyncSweepInterval.Duration != 0 {
		cfg.SyncSweepInterval = time.Duration(jc.SyncSweepInterval.Duration)
	}
	if jc.ArchiveLimit != 0 {
		cfg.ArchiveLimit = jc.ArchiveLimit
	}
}
