package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Asker is the remote answer service. An empty answer with a nil error
// means the service had no confident answer.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// AskerFunc adapts a function to Asker.
type AskerFunc func(ctx context.Context, question string) (string, error)

// Ask implements Asker.
func (f AskerFunc) Ask(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// State is the controller's lifecycle position.
type State int

const (
	// Idle: no request has been made yet.
	Idle State = iota
	// Pending: a request is in flight and its placeholder is in the transcript.
	Pending
	// Resolved: the last request finished; new sends are accepted.
	Resolved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// Outcome is how the last request ended.
type Outcome int

const (
	NoOutcome Outcome = iota
	Succeeded
	Failed
)

// Request is the handle for one in-flight question.
type Request struct {
	ID       string
	Question string

	asker Asker
	index int
}

// Result is what a Request produced.
type Result struct {
	RequestID string
	Answer    string
	Err       error
}

// Do dispatches the question. It blocks until the service answers or ctx
// is done and never touches the transcript; pass the Result to Complete.
func (r *Request) Do(ctx context.Context) Result {
	res := Result{RequestID: r.ID}
	if r.asker == nil {
		res.Err = errNoAsker
		return res
	}
	res.Answer, res.Err = r.asker.Ask(ctx, r.Question)
	return res
}

// Controller owns the transcript, the input buffer and the loading guard.
// Nothing else mutates them.
type Controller struct {
	asker  Asker
	logger *slog.Logger

	mu         sync.Mutex
	input      string
	transcript []Message
	state      State
	outcome    Outcome
	pending    *Request
}

// NewController returns an idle controller with an empty transcript.
func NewController(asker Asker, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{asker: asker, logger: logger}
}

// SetInput replaces the input buffer.
func (c *Controller) SetInput(s string) {
	c.mu.Lock()
	c.input = s
	c.mu.Unlock()
}

// Input returns the input buffer.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Submit starts a request from the input buffer. It is a no-op, returning
// false, when the trimmed input is empty or a request is already in flight.
// Otherwise the user's question and a placeholder answer are appended, the
// input is cleared and the controller is loading until Complete.
func (c *Controller) Submit() (*Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	question := strings.TrimSpace(c.input)
	if question == "" || c.state == Pending {
		return nil, false
	}

	c.transcript = append(c.transcript, Message{Sender: User, Text: question})
	c.input = ""
	c.transcript = append(c.transcript, Message{Sender: AI, Text: PlaceholderText, Pending: true})

	req := &Request{
		ID:       uuid.NewString(),
		Question: question,
		asker:    c.asker,
		index:    len(c.transcript) - 1,
	}
	c.pending = req
	c.state = Pending

	c.logger.Debug("chat request submitted", "request", req.ID, "question", question)
	return req, true
}

// Complete reconciles the transcript with a result. On success the
// placeholder is replaced in place by the answer, or by FallbackAnswer when
// the answer is empty. On failure the placeholder is kept and FailureText
// is appended after it. Results for anything but the pending request are
// dropped and Complete returns false.
func (c *Controller) Complete(res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Pending || c.pending == nil || c.pending.ID != res.RequestID {
		c.logger.Debug("dropping stale chat result", "request", res.RequestID)
		return false
	}
	idx := c.pending.index

	if res.Err != nil {
		c.transcript[idx].Pending = false
		c.transcript = append(c.transcript, Message{Sender: AI, Text: FailureText, Failed: true})
		c.outcome = Failed
		c.logger.Warn("chat request failed", "request", res.RequestID, "error", res.Err)
	} else {
		answer := strings.TrimSpace(res.Answer)
		if answer == "" {
			answer = FallbackAnswer
		}
		c.transcript[idx] = Message{Sender: AI, Text: answer}
		c.outcome = Succeeded
		c.logger.Debug("chat request answered", "request", res.RequestID)
	}

	c.pending = nil
	c.state = Resolved
	return true
}

// Send runs a whole request synchronously: Submit, Do, Complete. It
// reports whether a request was made.
func (c *Controller) Send(ctx context.Context) bool {
	req, ok := c.Submit()
	if !ok {
		return false
	}
	c.Complete(req.Do(ctx))
	return true
}

// Loading reports whether a request is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Pending
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Outcome returns how the most recent request ended.
func (c *Controller) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Transcript returns a copy of the transcript.
func (c *Controller) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}
