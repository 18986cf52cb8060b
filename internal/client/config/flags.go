package config

import (
	"flag"
	"os"
	"time"

	"github.com/fieldworks/sitereport/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-k", "-d", "-s", "-i", "-w", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RemoteBaseURL, "r", cfg.RemoteBaseURL, "base URL of the remote REST API")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "API key sent with every remote request")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite DSN of the local record store")
	fs.StringVar(&cfg.StateFilePath, "s", cfg.StateFilePath, "path of the client state file")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	syncSweepInterval := fs.Int("w", int(cfg.SyncSweepInterval.Seconds()), "photo sync sweep interval (in seconds)")
	fs.IntVar(&cfg.ArchiveLimit, "n", cfg.ArchiveLimit, "default archive page size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.SyncSweepInterval = time.Duration(*syncSweepInterval) * time.Second
}
