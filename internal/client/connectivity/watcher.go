// Package connectivity maintains the online/offline predicate the tiered
// resolver gates its remote fallback on.
package connectivity

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fieldworks/sitereport/internal/logging"
)

// Pinger probes backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher probes the remote store on an interval and exposes the last known
// reachability as a lock-free predicate. It starts in the offline state
// until the first successful probe.
type Watcher struct {
	pinger   Pinger
	interval time.Duration
	log      logging.Logger

	online atomic.Bool
}

func NewWatcher(pinger Pinger, interval time.Duration, log logging.Logger) *Watcher {
	return &Watcher{pinger: pinger, interval: interval, log: log}
}

// IsOnline reports the last observed connectivity state.
func (w *Watcher) IsOnline() bool {
	return w.online.Load()
}

// Check runs one probe immediately and updates the state.
func (w *Watcher) Check(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := w.pinger.Ping(probeCtx)
	was := w.online.Swap(err == nil)
	if was != (err == nil) {
		if err == nil {
			w.log.Info(ctx, "switched to online mode")
		} else {
			w.log.Info(ctx, "switched to offline mode", "reason", err)
		}
	}
	return err == nil
}

// Start blocks, probing every interval until ctx is done. Run it on its own
// goroutine.
func (w *Watcher) Start(ctx context.Context) {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
