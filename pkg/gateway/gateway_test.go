package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"gitlab.com/tinyland/lab/folio/pkg/reveal"
	"gitlab.com/tinyland/lab/folio/pkg/typewriter"
	"gitlab.com/tinyland/lab/folio/pkg/visibility"
)

type section string

func (s section) ID() string { return string(s) }

func newViewport() *visibility.Viewport {
	vp := visibility.NewViewport()
	vp.Place("hero", visibility.Bounds{Top: 0, Height: 10})
	vp.Place("work", visibility.Bounds{Top: 40, Height: 20})
	vp.Place("stack", visibility.Bounds{Top: 80, Height: 10})
	vp.Scroll(0, 20)
	return vp
}

func TestFlipOnVisibility(t *testing.T) {
	vp := newViewport()
	var flag Flag
	b := Bind(vp, section("stack"), 0.2, nil, Flip(&flag))

	if flag.On() || b.Visible() {
		t.Fatal("flag set before section was visible")
	}
	vp.Scroll(75, 20)
	if !flag.On() || !b.Visible() {
		t.Error("flag not set once the section scrolled into view")
	}
}

func TestTypingStartsOnce(t *testing.T) {
	vp := newViewport()
	clock := clockwork.NewFakeClock()
	out := make(chan string, 16)
	anim := typewriter.NewAnimator(clock, typewriter.DefaultTiming(), func(s string) { out <- s }, nil)

	b := Bind(vp, section("hero"), 0.3, nil, StartTyping(context.Background(), anim, []string{"Go"}))
	if !b.Visible() || !anim.Running() {
		t.Fatal("hero is on screen; typing should have started")
	}

	vp.Scroll(1, 20)
	vp.Scroll(0, 20)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	clock.BlockUntilContext(ctx, 1)
	clock.Advance(typewriter.DefaultTypeDelay)
	select {
	case got := <-out:
		if got != "G" {
			t.Errorf("first tick %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick")
	}

	b.Teardown()
	b.Teardown()
	if anim.Running() {
		t.Error("teardown should cancel the animator")
	}
}

func TestStaggerOnVisibility(t *testing.T) {
	vp := newViewport()
	clock := clockwork.NewFakeClock()
	cards := reveal.NewBoard(3, nil)
	heading := false

	Bind(vp, section("work"), 0.2, nil, Stagger(clock, reveal.DefaultStep, reveal.Set{
		Lead:  reveal.RevealFunc(func() { heading = true }),
		Cards: cards.Items(),
	}))
	if heading || cards.Count() != 0 {
		t.Fatal("work revealed while off screen")
	}

	vp.Scroll(30, 20) // rows 40..49 visible: 10/20
	if !heading || cards.Count() != 1 {
		t.Fatalf("heading=%v cards=%d after scrolling in", heading, cards.Count())
	}

	clock.Advance(2 * reveal.DefaultStep)
	deadline := time.Now().Add(time.Second)
	for cards.Count() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if cards.Count() != 3 {
		t.Errorf("expected all cards revealed, got %d", cards.Count())
	}
}

func TestTeardownBeforeVisible(t *testing.T) {
	vp := newViewport()
	var flag Flag
	b := Bind(vp, section("stack"), 0.2, nil, Flip(&flag))
	b.Teardown()

	vp.Scroll(80, 20)
	if flag.On() {
		t.Error("torn-down binding still fired")
	}
	if vp.Observing() != 0 {
		t.Errorf("teardown left %d registrations", vp.Observing())
	}
}
