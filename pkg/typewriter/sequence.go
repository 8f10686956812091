// Package typewriter animates a queue of phrases as if they were typed,
// held on screen, and erased one character at a time.
//
// Sequence is the pure state machine: it yields one Step per tick and
// knows nothing about time beyond the delay each step asks for. Animator
// runs a Sequence against a clockwork.Clock so the same code is driven by
// real timers in the TUI and by a fake clock in tests.
package typewriter

import "time"

// Default tick timings.
const (
	DefaultTypeDelay  = 100 * time.Millisecond
	DefaultEraseDelay = 50 * time.Millisecond
	DefaultHold       = 1200 * time.Millisecond
)

// Timing controls the pace of a Sequence.
type Timing struct {
	Type  time.Duration // per character while typing
	Erase time.Duration // per character while erasing
	Hold  time.Duration // pause once a phrase is fully typed
	// Loop erases the last phrase as well and starts over from the first.
	Loop bool
}

// DefaultTiming returns the standard typewriter pace.
func DefaultTiming() Timing {
	return Timing{Type: DefaultTypeDelay, Erase: DefaultEraseDelay, Hold: DefaultHold}
}

func (t Timing) withDefaults() Timing {
	if t.Type <= 0 {
		t.Type = DefaultTypeDelay
	}
	if t.Erase <= 0 {
		t.Erase = DefaultEraseDelay
	}
	if t.Hold <= 0 {
		t.Hold = DefaultHold
	}
	return t
}

// Phase is the state of the phrase currently on screen.
type Phase int

const (
	Typing Phase = iota
	Holding
	Erasing
	Finished
)

func (p Phase) String() string {
	switch p {
	case Typing:
		return "typing"
	case Holding:
		return "holding"
	case Erasing:
		return "erasing"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Step is one tick of the animation: wait Delay, then, if Emit is set,
// display Text.
type Step struct {
	Delay time.Duration
	Text  string
	Emit  bool
	Phase Phase
}

// Sequence walks a phrase queue in insertion order.
type Sequence struct {
	phrases [][]rune
	timing  Timing
	idx     int
	pos     int
	phase   Phase
}

// NewSequence returns a sequence over phrases. Characters are runes, so
// multi-byte text types one visible character per tick.
func NewSequence(phrases []string, timing Timing) *Sequence {
	s := &Sequence{timing: timing.withDefaults()}
	for _, p := range phrases {
		s.phrases = append(s.phrases, []rune(p))
	}
	if len(s.phrases) == 0 {
		s.phase = Finished
	}
	return s
}

// Phase returns the current phase.
func (s *Sequence) Phase() Phase { return s.phase }

// Index returns the index of the phrase currently on screen.
func (s *Sequence) Index() int { return s.idx }

// Next advances the machine by one tick. It returns false once the last
// phrase has been typed and held.
func (s *Sequence) Next() (Step, bool) {
	for {
		if s.phase == Finished {
			return Step{Phase: Finished}, false
		}
		cur := s.phrases[s.idx]

		switch s.phase {
		case Typing:
			if s.pos < len(cur) {
				s.pos++
				return Step{Delay: s.timing.Type, Text: string(cur[:s.pos]), Emit: true, Phase: Typing}, true
			}
			s.phase = Holding

		case Holding:
			if s.idx == len(s.phrases)-1 && !s.timing.Loop {
				s.phase = Finished
			} else {
				s.phase = Erasing
			}
			return Step{Delay: s.timing.Hold, Text: string(cur), Phase: Holding}, true

		case Erasing:
			if s.pos > 0 {
				s.pos--
				return Step{Delay: s.timing.Erase, Text: string(cur[:s.pos]), Emit: true, Phase: Erasing}, true
			}
			s.idx++
			if s.idx == len(s.phrases) {
				s.idx = 0
			}
			s.phase = Typing
		}
	}
}
