// Package weekly runs the periodic rollover of weekly leaderboard points.
package weekly

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// PointsResetter zeroes weekly points and reports how many entries changed
type PointsResetter interface {
	ResetWeeklyPoints(ctx context.Context) (int, error)
}

// Resetter calls ResetWeeklyPoints on a fixed interval
type Resetter struct {
	target   PointsResetter
	interval time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewResetter creates a new weekly reset worker
func NewResetter(target PointsResetter, interval time.Duration) *Resetter {
	if interval <= 0 {
		interval = 7 * 24 * time.Hour
	}

	return &Resetter{
		target:   target,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins the worker in a goroutine. The first reset happens one
// interval after start, never immediately.
func (r *Resetter) Start(ctx context.Context) {
	go r.run(ctx)
}

// Done is closed once the worker has stopped
func (r *Resetter) Done() <-chan struct{} {
	return r.done
}

func (r *Resetter) run(ctx context.Context) {
	defer r.once.Do(func() { close(r.done) })

	slog.Info("weekly reset worker started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("weekly reset worker stopped")
			return
		case <-ticker.C:
			r.reset(ctx)
		}
	}
}

func (r *Resetter) reset(ctx context.Context) {
	n, err := r.target.ResetWeeklyPoints(ctx)
	if err != nil {
		slog.Error("failed to reset weekly points", "error", err)
		return
	}
	slog.Info("weekly points reset", "entries", n)
}
