package photosync

import (
	"context"
	"time"

	"github.com/fieldworks/sitereport/internal/logging"
	"github.com/robfig/cron/v3"
)

// Sweeper periodically retries pending/failed uploads and purges deferred
// deletions. It only consumes the queue's public by-status surface, so any
// other reconciliation process could replace it.
type Sweeper struct {
	queue  *Queue
	online func() bool
	log    logging.Logger

	cron *cron.Cron
	spec string
}

// NewSweeper schedules sweeps every interval. The online predicate gates
// each run; offline sweeps are skipped entirely.
func NewSweeper(queue *Queue, online func() bool, interval time.Duration, log logging.Logger) *Sweeper {
	return &Sweeper{
		queue:  queue,
		online: online,
		log:    log,
		cron:   cron.New(),
		spec:   "@every " + interval.String(),
	}
}

func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// SyncNow runs one sweep immediately, outside the schedule. Returns the
// number of photos that reached the synced state.
func (s *Sweeper) SyncNow(ctx context.Context) (int, error) {
	synced, err := s.queue.SyncPending(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.queue.PurgeDeleted(ctx); err != nil {
		return synced, err
	}
	return synced, nil
}

func (s *Sweeper) sweep() {
	if !s.online() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	synced, err := s.queue.SyncPending(ctx)
	if err != nil {
		s.log.Warn(ctx, "photo sync sweep failed", "err", err)
		return
	}
	if synced > 0 {
		s.log.Info(ctx, "photo sync sweep finished", "synced", synced)
	}
	if err := s.queue.PurgeDeleted(ctx); err != nil {
		s.log.Warn(ctx, "photo cleanup sweep failed", "err", err)
	}
}
