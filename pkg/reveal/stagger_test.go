package reveal

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met within 1s")
}

func TestStaggerTiming(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cards := NewBoard(4, nil)
	var lead, tail bool

	Stagger(clock, 0, Set{
		Lead:  RevealFunc(func() { lead = true }),
		Cards: cards.Items(),
		Tail:  RevealFunc(func() { tail = true }),
	})

	if !lead || !tail {
		t.Fatalf("lead=%v tail=%v, both should be immediate", lead, tail)
	}
	if cards.Count() != 1 || !cards.Revealed(0) {
		t.Fatalf("expected only the first card immediately, count=%d", cards.Count())
	}

	for i := 1; i < 4; i++ {
		clock.Advance(DefaultStep - time.Millisecond)
		time.Sleep(5 * time.Millisecond)
		if cards.Revealed(i) {
			t.Fatalf("card %d revealed early", i)
		}
		clock.Advance(time.Millisecond)
		waitFor(t, func() bool { return cards.Revealed(i) })
	}
}

func TestStaggerStop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cards := NewBoard(3, nil)
	h := Stagger(clock, 100*time.Millisecond, Set{Cards: cards.Items()})

	clock.Advance(100 * time.Millisecond)
	waitFor(t, func() bool { return cards.Revealed(1) })

	h.Stop()
	h.Stop()
	clock.Advance(time.Second)
	time.Sleep(5 * time.Millisecond)
	if cards.Revealed(2) {
		t.Error("card revealed after Stop")
	}
}

func TestBoardRevealOnce(t *testing.T) {
	changes := 0
	b := NewBoard(2, func() { changes++ })
	item := b.Item(0)
	item.Reveal()
	item.Reveal()
	b.Item(5).Reveal()

	if changes != 1 {
		t.Errorf("onChange ran %d times, want 1", changes)
	}
	if b.Count() != 1 || b.Revealed(1) || b.Revealed(-1) {
		t.Errorf("unexpected board state: count=%d", b.Count())
	}
}
