package typewriter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Animator runs one Sequence at a time and publishes every emitted step.
//
// The emit callback is invoked while the animator holds its lock, which is
// what guarantees that nothing is emitted once Cancel has returned. It must
// therefore return quickly and must not call back into the Animator.
type Animator struct {
	clock  clockwork.Clock
	timing Timing
	emit   func(string)
	logger *slog.Logger

	mu     sync.Mutex
	text   string
	cur    *run
	nextID uint64
}

type run struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewAnimator returns an idle animator. A nil clock uses the real clock;
// emit may be nil when callers only poll Text.
func NewAnimator(clock clockwork.Clock, timing Timing, emit func(string), logger *slog.Logger) *Animator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Animator{
		clock:  clock,
		timing: timing.withDefaults(),
		emit:   emit,
		logger: logger,
	}
}

// Start cancels any run in progress and begins animating phrases. The
// returned channel is closed when this run finishes or is cancelled.
func (a *Animator) Start(ctx context.Context, phrases []string) <-chan struct{} {
	a.mu.Lock()
	if a.cur != nil {
		a.cur.cancel()
	}
	a.nextID++
	rctx, cancel := context.WithCancel(ctx)
	r := &run{id: a.nextID, ctx: rctx, cancel: cancel, done: make(chan struct{})}
	a.cur = r
	a.text = ""
	a.mu.Unlock()

	a.logger.Debug("typewriter started", "run", r.id, "phrases", len(phrases))
	go a.loop(r, NewSequence(phrases, a.timing))
	return r.done
}

// Cancel stops the current run, leaving Text at its last value. Calling
// Cancel with nothing running, or more than once, has no effect.
func (a *Animator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cur == nil {
		return
	}
	a.cur.cancel()
	a.logger.Debug("typewriter cancelled", "run", a.cur.id, "text", a.text)
	a.cur = nil
}

// Text returns the currently displayed text.
func (a *Animator) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.text
}

// Running reports whether a run is in progress.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cur != nil
}

func (a *Animator) loop(r *run, seq *Sequence) {
	defer close(r.done)
	defer r.cancel()

	for {
		step, ok := seq.Next()
		if !ok {
			a.finish(r)
			return
		}
		if !a.wait(r.ctx, step.Delay) {
			return
		}
		if step.Emit && !a.publish(r, step.Text) {
			return
		}
	}
}

func (a *Animator) wait(ctx context.Context, d time.Duration) bool {
	timer := a.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return ctx.Err() == nil
	}
}

func (a *Animator) publish(r *run, text string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cur != r || r.ctx.Err() != nil {
		return false
	}
	a.text = text
	if a.emit != nil {
		a.emit(text)
	}
	return true
}

func (a *Animator) finish(r *run) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cur == r {
		a.cur = nil
		a.logger.Debug("typewriter finished", "run", r.id, "text", a.text)
	}
}
