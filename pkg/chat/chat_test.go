package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// blockingAsker holds every question until the test releases it.
type blockingAsker struct {
	mu      sync.Mutex
	calls   []string
	release chan struct{}
	answer  string
	err     error
}

func newBlockingAsker(answer string, err error) *blockingAsker {
	return &blockingAsker{release: make(chan struct{}), answer: answer, err: err}
}

func (b *blockingAsker) Ask(ctx context.Context, q string) (string, error) {
	b.mu.Lock()
	b.calls = append(b.calls, q)
	b.mu.Unlock()
	select {
	case <-b.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return b.answer, b.err
}

func staticAsker(answer string, err error) Asker {
	return AskerFunc(func(context.Context, string) (string, error) { return answer, err })
}

func TestSubmitGuards(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"whitespace mix", "\t\n  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(staticAsker("x", nil), nil)
			c.SetInput(tt.input)
			if _, ok := c.Submit(); ok {
				t.Error("expected Submit to refuse blank input")
			}
			if c.Send(context.Background()) {
				t.Error("expected Send to refuse blank input")
			}
			if n := len(c.Transcript()); n != 0 {
				t.Errorf("blank input mutated the transcript: %d entries", n)
			}
			if c.Loading() {
				t.Error("blank input set loading")
			}
		})
	}
}

func TestSubmitAppendsUserAndPlaceholder(t *testing.T) {
	c := NewController(staticAsker("x", nil), nil)
	c.SetInput("  hi there  ")

	req, ok := c.Submit()
	if !ok {
		t.Fatal("Submit refused valid input")
	}
	if req.Question != "hi there" {
		t.Errorf("question %q, want trimmed", req.Question)
	}
	if c.Input() != "" {
		t.Errorf("input not cleared: %q", c.Input())
	}
	if !c.Loading() || c.State() != Pending {
		t.Error("expected loading while pending")
	}

	got := c.Transcript()
	want := []Message{
		{Sender: User, Text: "hi there"},
		{Sender: AI, Text: PlaceholderText, Pending: true},
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("transcript = %+v, want %+v", got, want)
	}
}

func TestSuccessReplacesPlaceholder(t *testing.T) {
	c := NewController(staticAsker("I build web apps.", nil), nil)
	c.SetInput("what do you do?")
	if !c.Send(context.Background()) {
		t.Fatal("Send refused valid input")
	}

	got := c.Transcript()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %+v", got)
	}
	if got[1] != (Message{Sender: AI, Text: "I build web apps."}) {
		t.Errorf("placeholder not replaced: %+v", got[1])
	}
	if c.Loading() || c.Outcome() != Succeeded || c.State() != Resolved {
		t.Errorf("loading=%v outcome=%v state=%v", c.Loading(), c.Outcome(), c.State())
	}
}

func TestMissingAnswerUsesFallback(t *testing.T) {
	for _, answer := range []string{"", "   "} {
		c := NewController(staticAsker(answer, nil), nil)
		c.SetInput("who?")
		c.Send(context.Background())

		got := c.Transcript()
		if got[len(got)-1].Text != FallbackAnswer {
			t.Errorf("answer %q: last entry %q, want fallback", answer, got[len(got)-1].Text)
		}
	}
}

func TestFailureKeepsPlaceholderAndAppends(t *testing.T) {
	c := NewController(staticAsker("", errors.New("connection refused")), nil)
	c.SetInput("hello")
	c.Send(context.Background())

	got := c.Transcript()
	want := []Message{
		{Sender: User, Text: "hello"},
		{Sender: AI, Text: PlaceholderText},
		{Sender: AI, Text: FailureText, Failed: true},
	}
	if len(got) != len(want) {
		t.Fatalf("transcript = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if c.Loading() {
		t.Error("loading left set after failure")
	}
	if c.Outcome() != Failed {
		t.Errorf("outcome = %v, want Failed", c.Outcome())
	}
}

func TestRapidDoubleSendIsGuarded(t *testing.T) {
	asker := newBlockingAsker("hey", nil)
	c := NewController(asker, nil)

	c.SetInput("hi")
	first, ok := c.Submit()
	if !ok {
		t.Fatal("first Submit refused")
	}

	c.SetInput("hi")
	if _, ok := c.Submit(); ok {
		t.Fatal("second Submit accepted while loading")
	}

	done := make(chan Result)
	go func() { done <- first.Do(context.Background()) }()
	close(asker.release)
	c.Complete(<-done)

	users := 0
	for _, m := range c.Transcript() {
		if m.Sender == User && m.Text == "hi" {
			users++
		}
	}
	if users != 1 {
		t.Errorf("expected exactly one user entry, got %d", users)
	}
	if len(asker.calls) != 1 {
		t.Errorf("expected one dispatched query, got %d", len(asker.calls))
	}
	if c.Input() != "hi" {
		t.Errorf("rejected send should leave the input alone, got %q", c.Input())
	}
}

func TestAtMostOnePendingAndLast(t *testing.T) {
	c := NewController(staticAsker("ok", nil), nil)
	for i := 0; i < 3; i++ {
		c.SetInput("q")
		req, ok := c.Submit()
		if !ok {
			t.Fatalf("round %d: Submit refused", i)
		}
		tr := c.Transcript()
		pending := 0
		for _, m := range tr {
			if m.Pending {
				pending++
			}
		}
		if pending != 1 || !tr[len(tr)-1].Pending {
			t.Fatalf("round %d: pending=%d last=%+v", i, pending, tr[len(tr)-1])
		}
		c.Complete(req.Do(context.Background()))
	}
	if n := len(c.Transcript()); n != 6 {
		t.Errorf("expected 6 entries after 3 rounds, got %d", n)
	}
}

func TestStaleResultDropped(t *testing.T) {
	c := NewController(staticAsker("ok", nil), nil)
	c.SetInput("q")
	req, _ := c.Submit()
	res := req.Do(context.Background())

	if c.Complete(Result{RequestID: "someone-else", Answer: "nope"}) {
		t.Error("accepted a result for an unknown request")
	}
	if !c.Complete(res) {
		t.Fatal("rejected the pending result")
	}
	if c.Complete(res) {
		t.Error("accepted the same result twice")
	}
	if got := c.Transcript(); len(got) != 2 || got[1].Text != "ok" {
		t.Errorf("transcript = %+v", got)
	}
}

func TestAnswerMatchingFailureTextIsNotFailed(t *testing.T) {
	c := NewController(staticAsker(FailureText, nil), nil)
	c.SetInput("say the error line")
	c.Send(context.Background())

	last := c.Transcript()[len(c.Transcript())-1]
	if last.Text != FailureText || last.Failed {
		t.Errorf("answer entry = %+v, want an ordinary answer", last)
	}
	if c.Outcome() != Succeeded {
		t.Errorf("outcome = %v, want Succeeded", c.Outcome())
	}
}

func TestNilAskerFails(t *testing.T) {
	c := NewController(nil, nil)
	c.SetInput("q")
	c.Send(context.Background())
	tr := c.Transcript()
	if last := tr[len(tr)-1]; last.Text != FailureText || !last.Failed {
		t.Errorf("expected failure entry, got %+v", tr)
	}
}

func TestFormatLinks(t *testing.T) {
	links := Links{GitHub: "https://github.com/example", Email: "me@example.com"}
	out := Format("See my github or contact me. LinkedIn too.", links)

	if !strings.Contains(out, ansi.SetHyperlink("https://github.com/example")+"github") {
		t.Error("github mention not linked")
	}
	if !strings.Contains(out, ansi.SetHyperlink("mailto:me@example.com")+"contact me") {
		t.Error("contact me not linked")
	}
	if !strings.Contains(out, ". LinkedIn too.") {
		t.Error("unconfigured LinkedIn should stay plain")
	}
	if got := ansi.Strip(out); got != "See my github or contact me. LinkedIn too." {
		t.Errorf("visible text changed: %q", got)
	}
}
