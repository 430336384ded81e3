package worker

import (
	"context"
	"log/slog"
	"time"

	"agency-notify/internal/domain/notification"
	"agency-notify/internal/pkg/clock"
)

type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// Reaper removes notifications past their TTL. Deletion is eventual: the
// query path filters expired rows anyway, so a missed run only costs storage.
type Reaper struct {
	repo     ExpiredDeleter
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
}

func NewReaper(repo ExpiredDeleter, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Reaper {
	return &Reaper{
		repo:     repo,
		clock:    clk,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled.
func (r *Reaper) Run(ctx context.Context) {
	r.logger.Info("notification reaper started", slog.Duration("interval", r.interval))

	r.sweep(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("notification reaper stopped")
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	cutoff := r.clock.Now().Add(-notification.TTL)

	removed, err := r.repo.DeleteExpired(ctx, cutoff)
	if err != nil {
		r.logger.Error("failed to reap expired notifications", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		r.logger.Info("reaped expired notifications", slog.Int64("removed", removed))
	}
}
