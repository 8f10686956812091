package visibility

import "sync"

// Bounds is the vertical extent of a target in page rows.
type Bounds struct {
	Top    int
	Height int
}

// Viewport is the terminal implementation of Observer. Sections register
// their row bounds with Place; every Scroll recomputes the visible fraction
// of each observed target and notifies its observers.
type Viewport struct {
	mu      sync.Mutex
	top     int
	height  int
	bounds  map[string]Bounds
	entries map[uint64]*entry
	nextID  uint64
}

type entry struct {
	target Target
	notify func(float64)
}

// NewViewport returns an empty viewport of zero height.
func NewViewport() *Viewport {
	return &Viewport{
		bounds:  make(map[string]Bounds),
		entries: make(map[uint64]*entry),
	}
}

// Place records the bounds of the target with the given id. It does not
// notify; call Scroll (or Refresh) after a layout pass.
func (v *Viewport) Place(id string, b Bounds) {
	v.mu.Lock()
	v.bounds[id] = b
	v.mu.Unlock()
}

// Observe implements Observer. The current ratio is delivered immediately,
// mirroring the initial callback of a browser IntersectionObserver.
func (v *Viewport) Observe(target Target, notify func(float64)) func() {
	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.entries[id] = &entry{target: target, notify: notify}
	ratio := v.ratioLocked(target.ID())
	v.mu.Unlock()

	notify(ratio)

	return func() {
		v.mu.Lock()
		delete(v.entries, id)
		v.mu.Unlock()
	}
}

// Scroll moves the viewport to top with the given height and notifies
// every live observer.
func (v *Viewport) Scroll(top, height int) {
	v.mu.Lock()
	v.top = top
	v.height = height
	v.mu.Unlock()
	v.Refresh()
}

// Refresh re-notifies every live observer with its current ratio.
func (v *Viewport) Refresh() {
	type pending struct {
		notify func(float64)
		ratio  float64
	}

	v.mu.Lock()
	batch := make([]pending, 0, len(v.entries))
	for _, e := range v.entries {
		batch = append(batch, pending{notify: e.notify, ratio: v.ratioLocked(e.target.ID())})
	}
	v.mu.Unlock()

	for _, p := range batch {
		p.notify(p.ratio)
	}
}

// Ratio returns the visible fraction of the target with the given id.
func (v *Viewport) Ratio(id string) float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ratioLocked(id)
}

// Observing returns the number of live registrations.
func (v *Viewport) Observing() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.entries)
}

func (v *Viewport) ratioLocked(id string) float64 {
	b, ok := v.bounds[id]
	if !ok || b.Height <= 0 || v.height <= 0 {
		return 0
	}
	lo := max(b.Top, v.top)
	hi := min(b.Top+b.Height, v.top+v.height)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(b.Height)
}
