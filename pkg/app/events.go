// Package app is the terminal front end for the portfolio: a bubbletea
// model that lays the sections out as one long scrolling page and wires
// the engine packages to it. The viewport drives visibility triggers, the
// scroll tracker drives the header, and chat requests run as commands.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/folio/pkg/chat"
)

// FrameEvent advances smooth scrolling and runs queued frame callbacks.
// Frames are only scheduled while something is animating.
type FrameEvent struct {
	Time time.Time
}

// ActivityEvent reports that a background animation (typewriter tick or
// card reveal) changed what the page shows.
type ActivityEvent struct{}

// ChatResultEvent carries a finished answer request back into the update
// loop.
type ChatResultEvent struct {
	Result chat.Result
}

// actionBarClosedEvent ends the action bar's closing transition.
type actionBarClosedEvent struct{}
