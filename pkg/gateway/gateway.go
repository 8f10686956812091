// Package gateway binds a section's visibility trigger to the animation it
// plays on first view: a typewriter run, a staggered card reveal, or a
// plain visible-flag flip.
package gateway

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"gitlab.com/tinyland/lab/folio/pkg/reveal"
	"gitlab.com/tinyland/lab/folio/pkg/typewriter"
	"gitlab.com/tinyland/lab/folio/pkg/visibility"
)

// Action is started when its section first becomes visible and stopped
// when the section is torn down.
type Action interface {
	Start()
	Stop()
}

// Flag is a visibility flag read by the presentation layer.
type Flag struct {
	v atomic.Bool
}

// Set reports the flag as on.
func (f *Flag) Set() { f.v.Store(true) }

// On reports the flag state.
func (f *Flag) On() bool { return f.v.Load() }

type flip struct{ flag *Flag }

func (a flip) Start() { a.flag.Set() }
func (a flip) Stop()  {}

// Flip turns flag on.
func Flip(flag *Flag) Action { return flip{flag: flag} }

type typing struct {
	ctx     context.Context
	anim    *typewriter.Animator
	phrases []string
}

func (a typing) Start() { a.anim.Start(a.ctx, a.phrases) }
func (a typing) Stop()  { a.anim.Cancel() }

// StartTyping runs phrases through anim. Stop cancels the run.
func StartTyping(ctx context.Context, anim *typewriter.Animator, phrases []string) Action {
	return typing{ctx: ctx, anim: anim, phrases: phrases}
}

type stagger struct {
	clock clockwork.Clock
	step  time.Duration
	set   reveal.Set

	mu     sync.Mutex
	handle *reveal.Handle
}

func (a *stagger) Start() {
	h := reveal.Stagger(a.clock, a.step, a.set)
	a.mu.Lock()
	a.handle = h
	a.mu.Unlock()
}

func (a *stagger) Stop() {
	a.mu.Lock()
	h := a.handle
	a.mu.Unlock()
	if h != nil {
		h.Stop()
	}
}

// Stagger reveals set with the given per-card step.
func Stagger(clock clockwork.Clock, step time.Duration, set reveal.Set) Action {
	return &stagger{clock: clock, step: step, set: set}
}

// Binding ties one trigger to its actions.
type Binding struct {
	trigger *visibility.Trigger
	actions []Action

	mu      sync.Mutex
	started bool
	closed  bool
}

// Bind observes target through o and starts actions, in order, the first
// time target's visible fraction reaches threshold.
func Bind(o visibility.Observer, target visibility.Target, threshold float64, opts []visibility.Option, actions ...Action) *Binding {
	b := &Binding{
		trigger: visibility.NewTrigger(o, opts...),
		actions: actions,
	}
	b.trigger.Observe(target, threshold, b.fire)
	return b
}

func (b *Binding) fire() {
	b.mu.Lock()
	if b.closed || b.started {
		b.mu.Unlock()
		return
	}
	b.started = true
	b.mu.Unlock()

	for _, a := range b.actions {
		a.Start()
	}
}

// Visible reports whether the section has been seen.
func (b *Binding) Visible() bool {
	return b.trigger.Observed()
}

// Teardown detaches the trigger and stops any running actions.
func (b *Binding) Teardown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	started := b.started
	b.mu.Unlock()

	b.trigger.Detach()
	if started {
		for _, a := range b.actions {
			a.Stop()
		}
	}
}
