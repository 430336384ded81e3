//go:build unit

package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"agency-notify/internal/domain/notification"
	"agency-notify/internal/pkg/clock"
	"agency-notify/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDeleter struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
	swept   chan struct{}
}

func newStubDeleter() *stubDeleter {
	return &stubDeleter{swept: make(chan struct{}, 16)}
}

func (d *stubDeleter) DeleteExpired(_ context.Context, olderThan time.Time) (int64, error) {
	d.mu.Lock()
	d.cutoffs = append(d.cutoffs, olderThan)
	d.mu.Unlock()
	select {
	case d.swept <- struct{}{}:
	default:
	}
	if d.err != nil {
		return 0, d.err
	}
	return 1, nil
}

func (d *stubDeleter) sweepCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cutoffs)
}

func newReaper(d *stubDeleter, clk clock.Clock, interval time.Duration) *worker.Reaper {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return worker.NewReaper(d, clk, interval, logger)
}

func TestReaper_Run(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("sweeps immediately with the retention cutoff", func(t *testing.T) {
		deleter := newStubDeleter()
		reaper := newReaper(deleter, clock.NewMockClock(now), time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			reaper.Run(ctx)
			close(done)
		}()

		select {
		case <-deleter.swept:
		case <-time.After(time.Second):
			t.Fatal("first sweep never happened")
		}

		cancel()
		<-done

		require.GreaterOrEqual(t, deleter.sweepCount(), 1)
		assert.Equal(t, now.Add(-notification.TTL), deleter.cutoffs[0])
	})

	t.Run("keeps ticking until cancelled", func(t *testing.T) {
		deleter := newStubDeleter()
		reaper := newReaper(deleter, clock.NewMockClock(now), 5*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			reaper.Run(ctx)
			close(done)
		}()

		for range 3 {
			select {
			case <-deleter.swept:
			case <-time.After(time.Second):
				t.Fatal("sweep stopped early")
			}
		}

		cancel()
		<-done
	})

	t.Run("a failed sweep does not stop the loop", func(t *testing.T) {
		deleter := newStubDeleter()
		deleter.err = errors.New("database connection error")
		reaper := newReaper(deleter, clock.NewMockClock(now), 5*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			reaper.Run(ctx)
			close(done)
		}()

		for range 2 {
			select {
			case <-deleter.swept:
			case <-time.After(time.Second):
				t.Fatal("sweep stopped after failure")
			}
		}

		cancel()
		<-done
	})
}
