// Package config loads runtime configuration for the sitereport client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-r string   base URL of the remote REST API
//	-k string   API key sent with every remote request
//	-d string   SQLite DSN of the local record store
//	-s string   path of the client state file
//	-i int      online status check interval (seconds)
//	-w int      photo sync sweep interval (seconds)
//	-n int      default archive page size
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "remote_base_url": "https://api.example.com",
//	  "api_key": "...",
//	  "database_dsn": "sitereport.db",
//	  "state_file_path": "sitereport_state.json",
//	  "online_check_interval": "3s",
//	  "sync_sweep_interval": "30s",
//	  "archive_limit": 20
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
