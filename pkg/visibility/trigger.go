// Package visibility detects the first time a page section scrolls into view.
//
// A Trigger wraps an injected Observer (the host's intersection capability)
// and turns its stream of intersection ratios into a single notification.
// After firing, the trigger detaches itself from the observer so no further
// callbacks are delivered and the host can release the registration.
package visibility

import (
	"log/slog"
	"sync"
)

// Target is anything the host can measure against the viewport.
type Target interface {
	ID() string
}

// ClassSetter is implemented by targets that carry presentation classes.
// When a Trigger is configured with WithClass, the class is switched on
// the moment the target becomes visible.
type ClassSetter interface {
	SetClass(name string, on bool)
}

// Observer is the host capability that reports intersection ratios for a
// target. notify may be called synchronously from within Observe with the
// initial ratio. The returned detach func stops notifications and must be
// safe to call more than once.
type Observer interface {
	Observe(target Target, notify func(ratio float64)) (detach func())
}

// Option configures a Trigger.
type Option func(*Trigger)

// WithClass sets the presentation class toggled on the target when it fires.
func WithClass(name string) Option {
	return func(t *Trigger) { t.class = name }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Trigger) {
		if l != nil {
			t.logger = l
		}
	}
}

// Trigger fires a callback at most once per instance.
type Trigger struct {
	observer Observer
	class    string
	logger   *slog.Logger

	mu       sync.Mutex
	attached bool
	observed bool
	done     bool
	detach   func()
}

// NewTrigger returns a Trigger bound to the given host observer.
func NewTrigger(o Observer, opts ...Option) *Trigger {
	t := &Trigger{
		observer: o,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Observe starts watching target. onVisible runs once, the first time the
// visible fraction of target reaches threshold. Thresholds outside (0,1]
// are clamped; a threshold of zero means "any visible part".
//
// A Trigger observes one target for its whole life: calling Observe again,
// or after Detach, does nothing.
func (t *Trigger) Observe(target Target, threshold float64, onVisible func()) {
	if t.observer == nil || target == nil {
		return
	}

	t.mu.Lock()
	if t.attached || t.done {
		t.mu.Unlock()
		return
	}
	t.attached = true
	t.mu.Unlock()

	threshold = clampThreshold(threshold)

	detach := t.observer.Observe(target, func(ratio float64) {
		if ratio <= 0 || ratio < threshold {
			return
		}

		t.mu.Lock()
		if t.done {
			t.mu.Unlock()
			return
		}
		t.observed = true
		t.done = true
		d := t.detach
		t.detach = nil
		t.mu.Unlock()

		if d != nil {
			d()
		}
		if cs, ok := target.(ClassSetter); ok && t.class != "" {
			cs.SetClass(t.class, true)
		}
		t.logger.Debug("target visible", "target", target.ID(), "ratio", ratio, "threshold", threshold)
		if onVisible != nil {
			onVisible()
		}
	})

	t.mu.Lock()
	if t.done {
		// Fired (or detached) before the host handed back its detach func.
		t.mu.Unlock()
		if detach != nil {
			detach()
		}
		return
	}
	t.detach = detach
	t.mu.Unlock()
}

// Observed reports whether the trigger has fired.
func (t *Trigger) Observed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.observed
}

// Detach stops observing without firing. Used when the hosting section is
// torn down. Safe to call repeatedly.
func (t *Trigger) Detach() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	d := t.detach
	t.detach = nil
	t.mu.Unlock()

	if d != nil {
		d()
	}
}

func clampThreshold(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
