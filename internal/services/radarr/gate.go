package radarr

import (
	"context"
	"sync"
	"time"
)

// gate enforces a minimum interval after each successful addition. Unlike a
// token bucket it never lets the first call after a success through early, and
// failed additions do not restart the interval.
type gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
}

func newGate(interval time.Duration) *gate {
	return &gate{
		interval: interval,
		now:      time.Now,
		sleep:    sleepWithContext,
	}
}

// wait blocks until the interval since the last mark has elapsed.
func (g *gate) wait(ctx context.Context) error {
	if g == nil || g.interval <= 0 {
		return nil
	}
	g.mu.Lock()
	last := g.last
	g.mu.Unlock()
	if last.IsZero() {
		return nil
	}
	return g.sleep(ctx, g.interval-g.now().Sub(last))
}

// mark records a successful addition.
func (g *gate) mark() {
	if g == nil || g.interval <= 0 {
		return
	}
	g.mu.Lock()
	g.last = g.now()
	g.mu.Unlock()
}

// sleepWithContext blocks for d, returning early if ctx is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
