package usecase

import (
	"context"
	"sync"
	"time"
)

// cooldownGate pauses every worker while the platform is rate limiting.
// Block extends the shared deadline; Wait sleeps until it has passed.
type cooldownGate struct {
	mu    sync.Mutex
	until time.Time
	now   func() time.Time
}

func newCooldownGate() *cooldownGate {
	return &cooldownGate{now: time.Now}
}

// Block pushes the deadline to now+d unless a later one is already set.
// Returns the effective deadline.
func (g *cooldownGate) Block(d time.Duration) time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()

	candidate := g.now().Add(d)
	if candidate.After(g.until) {
		g.until = candidate
	}
	return g.until
}

func (g *cooldownGate) Until() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.until
}

// Wait blocks until the deadline passes or ctx is done. Loops because
// another worker may extend the deadline mid-sleep.
func (g *cooldownGate) Wait(ctx context.Context) error {
	for {
		g.mu.Lock()
		remaining := g.until.Sub(g.now())
		g.mu.Unlock()

		if remaining <= 0 {
			return ctx.Err()
		}
		if err := sleepCtx(ctx, remaining); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
