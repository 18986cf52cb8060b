package connectivity

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fieldworks/sitereport/internal/logging"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error { return f.err }

func TestWatcher_StartsOffline(t *testing.T) {
	w := NewWatcher(&fakePinger{}, time.Second, logging.NewDefault(slog.LevelError))
	assert.False(t, w.IsOnline())
}

func TestCheck_TogglesState(t *testing.T) {
	p := &fakePinger{}
	w := NewWatcher(p, time.Second, logging.NewDefault(slog.LevelError))
	ctx := context.Background()

	assert.True(t, w.Check(ctx))
	assert.True(t, w.IsOnline())

	p.err = errors.New("connection refused")
	assert.False(t, w.Check(ctx))
	assert.False(t, w.IsOnline())

	p.err = nil
	assert.True(t, w.Check(ctx))
	assert.True(t, w.IsOnline())
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	w := NewWatcher(&fakePinger{}, 10*time.Millisecond, logging.NewDefault(slog.LevelError))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	// the initial probe inside Start flips the state
	assert.Eventually(t, w.IsOnline, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on context cancel")
	}
}
