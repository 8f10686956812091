// Package scroll derives the header hide/show signal from scroll movement.
//
// The Tracker hides the header while the page moves down past a fixed
// threshold and shows it again on any upward movement. Programmatic scrolls
// (navigation clicks) lock the tracker so the header stays visible while the
// page animates; the lock is released once the scroll offset settles.
package scroll

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Defaults for Config.
const (
	DefaultHideThreshold    = 120
	DefaultSettleEpsilon    = 2
	DefaultSettleDelay      = 250 * time.Millisecond
	DefaultMobileBreakpoint = 768
	DefaultMobileOffset     = 20
	DefaultDesktopOffset    = 50
)

// Page is the scrolling surface the tracker navigates.
type Page interface {
	// ScrollY returns the current scroll offset.
	ScrollY() float64
	// ScrollTo starts a (possibly animated) scroll towards y.
	ScrollTo(y float64)
	// ElementY returns the absolute offset of the element with the given id.
	ElementY(id string) (float64, bool)
	// Width returns the current viewport width.
	Width() float64
}

// FrameScheduler runs fn on the next animation frame.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// FrameFunc adapts a plain function to FrameScheduler.
type FrameFunc func(fn func())

// RequestFrame implements FrameScheduler.
func (f FrameFunc) RequestFrame(fn func()) { f(fn) }

// Config holds the tracker tuning values. Zero fields take the defaults.
type Config struct {
	HideThreshold    float64
	SettleEpsilon    float64
	SettleDelay      time.Duration
	MobileBreakpoint float64
	MobileOffset     float64
	DesktopOffset    float64
}

func (c Config) withDefaults() Config {
	if c.HideThreshold <= 0 {
		c.HideThreshold = DefaultHideThreshold
	}
	if c.SettleEpsilon <= 0 {
		c.SettleEpsilon = DefaultSettleEpsilon
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.MobileBreakpoint <= 0 {
		c.MobileBreakpoint = DefaultMobileBreakpoint
	}
	if c.MobileOffset <= 0 {
		c.MobileOffset = DefaultMobileOffset
	}
	if c.DesktopOffset <= 0 {
		c.DesktopOffset = DefaultDesktopOffset
	}
	return c
}

// Tracker owns the header's scroll state: the last sampled offset, the
// hidden flag, the programmatic-scroll lock and the navigation drawer.
type Tracker struct {
	cfg    Config
	clock  clockwork.Clock
	page   Page
	frames FrameScheduler
	logger *slog.Logger

	mu       sync.Mutex
	lastY    float64
	hidden   bool
	locked   bool
	menuOpen bool
	// gen identifies the programmatic scroll currently in flight. Settle
	// polls and unlock timers from older scrolls compare against it and
	// give up when they have been superseded.
	gen    uint64
	unlock clockwork.Timer
}

// NewTracker returns a tracker for page. frames drives the settle poll and
// clock schedules the delayed unlock; a nil clock uses the real clock.
func NewTracker(cfg Config, page Page, frames FrameScheduler, clock clockwork.Clock, logger *slog.Logger) *Tracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{
		cfg:    cfg.withDefaults(),
		clock:  clock,
		page:   page,
		frames: frames,
		logger: logger,
	}
}

// OnScroll feeds a new scroll offset. While locked the sample is ignored
// entirely, lastY included.
func (t *Tracker) OnScroll(curr float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.locked {
		return
	}
	t.hidden = curr > t.lastY && curr > t.cfg.HideThreshold
	t.lastY = curr
}

// Hidden reports whether the header should be hidden.
func (t *Tracker) Hidden() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hidden
}

// Locked reports whether direction updates are suppressed.
func (t *Tracker) Locked() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locked
}

// LastY returns the last offset accepted by OnScroll.
func (t *Tracker) LastY() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastY
}

// Lock suppresses direction updates and shows the header immediately.
func (t *Tracker) Lock() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lockLocked()
}

func (t *Tracker) lockLocked() {
	t.gen++
	t.locked = true
	t.hidden = false
	if t.unlock != nil {
		t.unlock.Stop()
		t.unlock = nil
	}
}

// Unlock re-enables direction updates. Unlocking an unlocked tracker has
// no effect.
func (t *Tracker) Unlock() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.unlockLocked()
}

func (t *Tracker) unlockLocked() {
	t.locked = false
	if t.unlock != nil {
		t.unlock.Stop()
		t.unlock = nil
	}
}

// MenuOpen reports whether the navigation drawer is open.
func (t *Tracker) MenuOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.menuOpen
}

// ToggleMenu opens or closes the navigation drawer.
func (t *Tracker) ToggleMenu() {
	t.mu.Lock()
	t.menuOpen = !t.menuOpen
	t.mu.Unlock()
}

// CloseMenu closes the navigation drawer.
func (t *Tracker) CloseMenu() {
	t.mu.Lock()
	t.menuOpen = false
	t.mu.Unlock()
}

// Offset returns the gap left above a navigation target for a viewport of
// the given width.
func (t *Tracker) Offset(width float64) float64 {
	if width < t.cfg.MobileBreakpoint {
		return t.cfg.MobileOffset
	}
	return t.cfg.DesktopOffset
}

// ScrollTo navigates to the element with the given id. The header stays
// visible for the whole programmatic scroll: the tracker locks, issues the
// scroll, then samples the offset once per frame and unlocks SettleDelay
// after two consecutive samples land within SettleEpsilon of each other.
// A missing element is a silent no-op.
func (t *Tracker) ScrollTo(id string) {
	if t.page == nil {
		return
	}
	elementY, ok := t.page.ElementY(id)
	if !ok {
		t.logger.Debug("scroll target missing", "id", id)
		return
	}

	t.mu.Lock()
	t.menuOpen = false
	t.lockLocked()
	gen := t.gen
	t.mu.Unlock()

	finalY := elementY - t.Offset(t.page.Width())
	t.page.ScrollTo(finalY)
	t.logger.Debug("programmatic scroll", "id", id, "target", finalY)

	if t.frames == nil {
		t.scheduleUnlock(gen)
		return
	}
	t.pollSettle(gen, t.page.ScrollY())
}

func (t *Tracker) pollSettle(gen uint64, lastY float64) {
	t.frames.RequestFrame(func() {
		if !t.current(gen) {
			return
		}
		nowY := t.page.ScrollY()
		if math.Abs(nowY-lastY) < t.cfg.SettleEpsilon {
			t.scheduleUnlock(gen)
			return
		}
		t.pollSettle(gen, nowY)
	})
}

func (t *Tracker) scheduleUnlock(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen || !t.locked {
		return
	}
	if t.unlock != nil {
		t.unlock.Stop()
	}
	t.unlock = t.clock.AfterFunc(t.cfg.SettleDelay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if gen != t.gen {
			return
		}
		t.locked = false
		t.unlock = nil
		t.logger.Debug("scroll settled, header unlocked")
	})
}

func (t *Tracker) current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen == t.gen && t.locked
}
