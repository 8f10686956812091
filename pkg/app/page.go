package app

import (
	"math"
	"sync"

	"github.com/charmbracelet/harmonica"
)

// springFrequency is the angular frequency of the scroll spring.
const springFrequency = 6.0

// page is the scrollable surface behind the body. Offsets are in page
// units (rowUnits per terminal row) so that the scroll tracker's
// thresholds keep the meaning they have on a pixel page. It implements
// scroll.Page and is only touched from the update loop.
type page struct {
	rowUnits float64
	cols     int

	y, vel, target float64
	maxY           float64
	animating      bool
	spring         harmonica.Spring

	elements map[string]int
}

func newPage(rowUnits float64, frameRate int) *page {
	return &page{
		rowUnits: rowUnits,
		spring:   harmonica.NewSpring(harmonica.FPS(frameRate), springFrequency, 1.0),
		elements: make(map[string]int),
	}
}

func (p *page) ScrollY() float64 { return p.y }

// ScrollTo starts a spring animation towards y. The spring is critically
// damped and seeded with velocity frequency*distance, which turns it into
// an exponential ease-out: every frame covers the same share of what is
// left, starting with the first.
func (p *page) ScrollTo(y float64) {
	p.target = p.clamp(y)
	p.vel = springFrequency * (p.target - p.y)
	p.animating = p.target != p.y
}

func (p *page) ElementY(id string) (float64, bool) {
	row, ok := p.elements[id]
	if !ok {
		return 0, false
	}
	return float64(row) * p.rowUnits, true
}

// Width reports the viewport width in page units. A cell is about half as
// wide as it is tall.
func (p *page) Width() float64 { return float64(p.cols) * p.rowUnits / 2 }

// Row is the first page row in view.
func (p *page) Row() int { return int(math.Round(p.y / p.rowUnits)) }

// Jump scrolls by rows immediately, cancelling any animation.
func (p *page) Jump(rows int) {
	p.JumpTo(p.y + float64(rows)*p.rowUnits)
}

// JumpTo scrolls to y immediately.
func (p *page) JumpTo(y float64) {
	p.y = p.clamp(y)
	p.target = p.y
	p.vel = 0
	p.animating = false
}

// SetMaxRow bounds scrolling to the last row that can sit at the top.
func (p *page) SetMaxRow(row int) {
	p.maxY = math.Max(0, float64(row)*p.rowUnits)
	p.y = p.clamp(p.y)
	p.target = p.clamp(p.target)
}

// step advances the spring one frame and reports whether it is still
// moving. The tail snaps once less than half a row remains: sub-row motion
// is invisible and would otherwise outlast the scroll tracker's settle
// delay.
func (p *page) step() bool {
	if !p.animating {
		return false
	}
	p.y, p.vel = p.spring.Update(p.y, p.vel, p.target)
	if math.Abs(p.y-p.target) < p.rowUnits/2 {
		p.y, p.vel = p.target, 0
		p.animating = false
	}
	return p.animating
}

func (p *page) clamp(y float64) float64 {
	return math.Min(math.Max(y, 0), p.maxY)
}

// frameQueue collects callbacks for the next frame. It implements
// scroll.FrameScheduler.
type frameQueue struct {
	mu  sync.Mutex
	fns []func()
}

func (q *frameQueue) RequestFrame(fn func()) {
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
}

// run executes the callbacks queued so far. Callbacks queued while running
// wait for the following frame.
func (q *frameQueue) run() {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (q *frameQueue) pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fns) > 0
}
