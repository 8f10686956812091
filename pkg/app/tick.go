package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/folio/pkg/chat"
)

// actionBarCloseDelay is how long the action bar shows its closing state.
const actionBarCloseDelay = 300 * time.Millisecond

// FrameCmd returns a Cmd that sends a FrameEvent after d.
func FrameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameEvent{Time: t}
	})
}

// waitForActivity blocks until a background animation signals ch.
func waitForActivity(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ActivityEvent{}
	}
}

// AskCmd runs req off the update loop and delivers its result.
func AskCmd(ctx context.Context, req *chat.Request) tea.Cmd {
	return func() tea.Msg {
		return ChatResultEvent{Result: req.Do(ctx)}
	}
}

func closeActionBarCmd() tea.Cmd {
	return tea.Tick(actionBarCloseDelay, func(time.Time) tea.Msg {
		return actionBarClosedEvent{}
	})
}
