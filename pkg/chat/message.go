// Package chat implements the ask-me widget's request lifecycle: an
// optimistic transcript that shows the user's question and a placeholder
// immediately, then reconciles once the remote answer service responds.
package chat

// Sender identifies who wrote a message.
type Sender string

const (
	User Sender = "user"
	AI   Sender = "ai"
)

// Fixed transcript texts.
const (
	PlaceholderText = "Thinking..."
	FallbackAnswer  = "I'm not sure."
	FailureText     = "Something went wrong. Try again."
)

// Message is one transcript entry.
type Message struct {
	Sender Sender
	Text   string
	// Pending marks the placeholder of the request in flight.
	Pending bool
	// Failed marks the notice appended when a request fails.
	Failed bool
}
