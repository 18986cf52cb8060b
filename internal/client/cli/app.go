// Package cli implements the interactive shell of the sitereport client.
// It wires the storage tiers, the connectivity watcher, and the photo
// sync sweeper together and dispatches user commands to the data layer.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/fieldworks/sitereport/internal/client/config"
	"github.com/fieldworks/sitereport/internal/client/connectivity"
	"github.com/fieldworks/sitereport/internal/client/datalayer"
	"github.com/fieldworks/sitereport/internal/client/flagstore"
	"github.com/fieldworks/sitereport/internal/client/localstore"
	"github.com/fieldworks/sitereport/internal/client/photosync"
	"github.com/fieldworks/sitereport/internal/client/remote"
	"github.com/fieldworks/sitereport/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	local   *localstore.Store
	flags   *flagstore.Store
	data    *datalayer.Service
	watcher *connectivity.Watcher
	sweeper *photosync.Sweeper
	reader  *bufio.Reader
}

// NewApp wires every component from the configuration. A broken local
// database is not fatal: the client starts anyway and data operations
// degrade to remote-only until the store recovers.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewDefault(slog.LevelInfo)

	local := localstore.New(cfg.DatabaseDSN, log)
	if err := local.Open(ctx); err != nil {
		log.Warn(ctx, "local store unavailable, continuing without cache", "error", err)
	}

	flags, err := flagstore.Open(cfg.StateFilePath)
	if err != nil {
		return nil, err
	}

	rs := remote.NewRESTClient(cfg.RemoteBaseURL, cfg.APIKey, nil, log)
	watcher := connectivity.NewWatcher(rs, cfg.OnlineCheckInterval, log)
	queue := photosync.NewQueue(local, rs, log)
	sweeper := photosync.NewSweeper(queue, watcher.IsOnline, cfg.SyncSweepInterval, log)
	data := datalayer.New(local, flags, rs, queue, watcher.IsOnline, log)

	return &App{
		config:  cfg,
		log:     log,
		local:   local,
		flags:   flags,
		data:    data,
		watcher: watcher,
		sweeper: sweeper,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run probes connectivity once, starts the background watcher and the
// photo sweeper, and hands control to the command loop.
func (a *App) Run(ctx context.Context) {
	a.watcher.Check(ctx)
	go a.watcher.Start(ctx)

	if err := a.sweeper.Start(); err != nil {
		a.log.Warn(ctx, "photo sweeper failed to start", "error", err)
	}
	defer a.sweeper.Stop()
	defer a.local.Close()

	a.Root(ctx)
}
