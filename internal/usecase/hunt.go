// Package usecase orchestrates hunts: candidate feed, worker pool, retry and
// cooldown policy, checkpointing, and the event stream consumed by the CLI
// and the dashboard.
package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/ports"
)

// EventKind tags hunt progress events.
type EventKind string

const (
	EventResult   EventKind = "result"
	EventCooldown EventKind = "cooldown"
)

// Event is one unit of hunt progress. Result is set for EventResult; Until
// for EventCooldown.
type Event struct {
	Kind   EventKind
	Result domain.CheckResult
	Until  time.Time
}

// Summary aggregates a finished (or interrupted) hunt.
type Summary struct {
	Checked       int
	Counts        map[domain.Status]int
	LastCandidate string
	StartedAt     time.Time
	EndedAt       time.Time
}

// Hunt wires the generator to the checker pool and the sinks.
type Hunt struct {
	cfg     domain.Config
	checker ports.Checker
	sink    ports.AvailableSink

	ckpt   ports.CheckpointStore
	ledger ports.Ledger
	log    *slog.Logger

	onEvent func(Event)
	limit   int
	fresh   bool

	gate *cooldownGate

	mu      sync.Mutex
	counts  map[domain.Status]int
	checked int
	last    string
	saved   string
}

type Option func(*Hunt)

// WithCheckpoint enables resume support via the given store.
func WithCheckpoint(store ports.CheckpointStore) Option {
	return func(h *Hunt) { h.ckpt = store }
}

// WithLedger records every outcome in the given ledger.
func WithLedger(l ports.Ledger) Option {
	return func(h *Hunt) { h.ledger = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Hunt) { h.log = l }
}

// WithEvents registers a progress callback. It is invoked from worker
// goroutines and must not block.
func WithEvents(fn func(Event)) Option {
	return func(h *Hunt) { h.onEvent = fn }
}

// WithLimit stops the feed after n candidates (0 = exhaust the window).
func WithLimit(n int) Option {
	return func(h *Hunt) { h.limit = n }
}

// WithFresh ignores any existing checkpoint.
func WithFresh(fresh bool) Option {
	return func(h *Hunt) { h.fresh = fresh }
}

func NewHunt(cfg domain.Config, checker ports.Checker, sink ports.AvailableSink, opts ...Option) *Hunt {
	h := &Hunt{
		cfg:     cfg,
		checker: checker,
		sink:    sink,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		gate:    newCooldownGate(),
		counts:  map[domain.Status]int{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run drives the hunt to completion or cancellation. A cancelled context is
// reported as the returned error after the final checkpoint save; the summary
// is valid either way.
func (h *Hunt) Run(ctx context.Context) (Summary, error) {
	started := time.Now()

	if err := h.cfg.Validate(); err != nil {
		return Summary{}, err
	}

	gen, err := domain.NewGenerator(h.cfg.MinLen, h.cfg.MaxLen)
	if err != nil {
		return Summary{}, err
	}

	if h.ckpt != nil && !h.fresh {
		last, loadErr := h.ckpt.Load()
		switch {
		case loadErr != nil:
			h.log.Warn("checkpoint.load_failed", "err", loadErr)
		case last != "":
			if saErr := gen.StartAfter(last); saErr != nil {
				h.log.Warn("checkpoint.unusable", "last", last, "err", saErr)
			} else {
				h.log.Info("hunt.resuming", "after", last)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	feed := make(chan string, h.cfg.Threads*2)

	g.Go(func() error {
		defer close(feed)
		dispatched := 0
		for {
			if h.limit > 0 && dispatched >= h.limit {
				return nil
			}
			candidate, ok := gen.Next()
			if !ok {
				return nil
			}
			select {
			case feed <- candidate:
				dispatched++
				h.markDispatched(candidate)
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	for i := 0; i < h.cfg.Threads; i++ {
		g.Go(func() error { return h.worker(gctx, feed) })
	}

	stopSaver := h.startSaver()
	runErr := g.Wait()
	stopSaver()
	h.saveCheckpoint()

	return h.summary(started), runErr
}

func (h *Hunt) worker(ctx context.Context, feed <-chan string) error {
	for candidate := range feed {
		if err := h.gate.Wait(ctx); err != nil {
			return err
		}

		res, err := h.checkWithRetry(ctx, candidate)
		if err != nil {
			return err
		}
		if err := h.handleResult(ctx, res); err != nil {
			return err
		}

		if err := sleepCtx(ctx, h.jitter()); err != nil {
			return err
		}
	}
	return nil
}

// checkWithRetry probes one candidate until it classifies cleanly. Blocked
// responses pause every worker and do not consume attempts; the same
// candidate is re-probed after the cooldown. error/unknown outcomes retry
// with exponential backoff up to MaxAttempts.
func (h *Hunt) checkWithRetry(ctx context.Context, candidate string) (domain.CheckResult, error) {
	attempt := 0
	for {
		res, err := h.checker.Check(ctx, candidate)
		if err != nil {
			return domain.CheckResult{}, err
		}
		attempt++
		res.Attempts = attempt

		switch res.Status {
		case domain.StatusAvailable, domain.StatusTaken:
			return res, nil

		case domain.StatusBlocked:
			until := h.gate.Block(h.cfg.BlockedCooldown)
			h.log.Warn("hunt.blocked", "candidate", candidate, "http_status", res.HTTPStatus, "until", until)
			h.emit(Event{Kind: EventCooldown, Until: until})
			if err := h.gate.Wait(ctx); err != nil {
				return res, err
			}
			attempt-- // pauses don't count against the retry budget

		default: // StatusError, StatusUnknown
			if attempt >= h.cfg.MaxAttempts {
				return res, nil
			}
			backoff := h.cfg.RetryBase << (attempt - 1)
			h.log.Debug("hunt.retrying", "candidate", candidate, "attempt", attempt, "backoff", backoff)
			if err := sleepCtx(ctx, backoff); err != nil {
				return res, err
			}
		}
	}
}

func (h *Hunt) handleResult(ctx context.Context, res domain.CheckResult) error {
	h.mu.Lock()
	h.counts[res.Status]++
	h.checked++
	h.mu.Unlock()

	if h.ledger != nil {
		if err := h.ledger.Record(ctx, res); err != nil {
			h.log.Warn("ledger.record_failed", "candidate", res.Candidate, "err", err)
		}
	}

	switch res.Status {
	case domain.StatusAvailable:
		if err := h.sink.Append(res.Candidate); err != nil {
			return err
		}
		// Persist immediately so a crash never re-offers a found name.
		h.saveCheckpoint()
		h.log.Info("candidate.available", "candidate", res.Candidate, "latency_ms", res.Latency.Milliseconds())
	case domain.StatusTaken:
		h.log.Debug("candidate.taken", "candidate", res.Candidate)
	default:
		h.log.Debug("candidate.unresolved", "candidate", res.Candidate, "status", res.Status, "attempts", res.Attempts)
	}

	h.emit(Event{Kind: EventResult, Result: res})
	return nil
}

func (h *Hunt) markDispatched(candidate string) {
	h.mu.Lock()
	h.last = candidate
	h.mu.Unlock()
}

// startSaver runs the periodic checkpoint writer; the returned func stops it.
func (h *Hunt) startSaver() func() {
	if h.ckpt == nil || h.cfg.CheckpointInterval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(h.cfg.CheckpointInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				h.saveCheckpoint()
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}

// saveCheckpoint is best-effort: a failed save is logged, never fatal.
func (h *Hunt) saveCheckpoint() {
	if h.ckpt == nil {
		return
	}

	h.mu.Lock()
	last := h.last
	dirty := last != "" && last != h.saved
	h.mu.Unlock()

	if !dirty {
		return
	}
	if err := h.ckpt.Save(last); err != nil {
		h.log.Warn("checkpoint.save_failed", "last", last, "err", err)
		return
	}

	h.mu.Lock()
	h.saved = last
	h.mu.Unlock()
}

func (h *Hunt) jitter() time.Duration {
	min, max := h.cfg.DelayMin, h.cfg.DelayMax
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int64N(int64(max-min)))
}

func (h *Hunt) emit(ev Event) {
	if h.onEvent != nil {
		h.onEvent(ev)
	}
}

func (h *Hunt) summary(started time.Time) Summary {
	h.mu.Lock()
	defer h.mu.Unlock()

	counts := make(map[domain.Status]int, len(h.counts))
	for k, v := range h.counts {
		counts[k] = v
	}
	return Summary{
		Checked:       h.checked,
		Counts:        counts,
		LastCandidate: h.last,
		StartedAt:     started,
		EndedAt:       time.Now(),
	}
}

// IsCancelled reports whether a hunt error is a clean interruption rather
// than a failure.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
