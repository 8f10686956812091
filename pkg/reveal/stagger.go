// Package reveal plays the staggered slide-in of a section's cards.
package reveal

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultStep is the delay between consecutive cards.
const DefaultStep = 150 * time.Millisecond

// Revealer is a single element that can be revealed.
type Revealer interface {
	Reveal()
}

// RevealFunc adapts a function to Revealer.
type RevealFunc func()

// Reveal implements Revealer.
func (f RevealFunc) Reveal() { f() }

// Set groups what a section reveals: an optional heading, the cards, and
// an optional trailing element.
type Set struct {
	Lead  Revealer
	Cards []Revealer
	Tail  Revealer
}

// Handle controls a running stagger.
type Handle struct {
	mu      sync.Mutex
	timers  []clockwork.Timer
	stopped bool
}

// Stagger reveals set.Lead and the first card immediately, card i after
// i*step, and set.Tail immediately. A non-positive step uses DefaultStep.
func Stagger(clock clockwork.Clock, step time.Duration, set Set) *Handle {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if step <= 0 {
		step = DefaultStep
	}

	h := &Handle{}
	if set.Lead != nil {
		set.Lead.Reveal()
	}
	for i, card := range set.Cards {
		if card == nil {
			continue
		}
		if i == 0 {
			card.Reveal()
			continue
		}
		h.timers = append(h.timers, clock.AfterFunc(time.Duration(i)*step, func() {
			h.mu.Lock()
			stopped := h.stopped
			h.mu.Unlock()
			if !stopped {
				card.Reveal()
			}
		}))
	}
	if set.Tail != nil {
		set.Tail.Reveal()
	}
	return h
}

// Stop cancels every card not yet revealed. Safe to call repeatedly.
func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	for _, t := range h.timers {
		t.Stop()
	}
}

// Board tracks which of n items have been revealed. Its items are safe to
// reveal from timer goroutines while the UI reads them.
type Board struct {
	mu       sync.Mutex
	revealed []bool
	onChange func()
}

// NewBoard returns a board of n hidden items. onChange, if set, runs after
// each newly revealed item and must not block.
func NewBoard(n int, onChange func()) *Board {
	return &Board{revealed: make([]bool, n), onChange: onChange}
}

// Item returns the Revealer for item i.
func (b *Board) Item(i int) Revealer {
	return RevealFunc(func() {
		b.mu.Lock()
		if i < 0 || i >= len(b.revealed) || b.revealed[i] {
			b.mu.Unlock()
			return
		}
		b.revealed[i] = true
		b.mu.Unlock()
		if b.onChange != nil {
			b.onChange()
		}
	})
}

// Items returns Revealers for every item in order.
func (b *Board) Items() []Revealer {
	out := make([]Revealer, b.Len())
	for i := range out {
		out[i] = b.Item(i)
	}
	return out
}

// Revealed reports whether item i is visible.
func (b *Board) Revealed(i int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return i >= 0 && i < len(b.revealed) && b.revealed[i]
}

// Count returns how many items are visible.
func (b *Board) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.revealed {
		if r {
			n++
		}
	}
	return n
}

// Len returns the number of items.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.revealed)
}
