package terminal

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Capabilities is the cached terminal summary for the current session.
type Capabilities struct {
	Term       Terminal
	Size       Size
	Profile    termenv.Profile
	TTY        bool // stdout is an interactive terminal
	Hyperlinks bool
	Mouse      bool
	Mux        bool // inside tmux or screen
}

// Interactive reports whether the full-screen UI can run. A plain render
// is used otherwise.
func (c *Capabilities) Interactive() bool {
	return c.TTY && c.Size.Cols >= 20 && c.Size.Rows >= 8
}

var (
	cached     *Capabilities
	detectOnce sync.Once
)

// DetectCapabilities performs detection once and caches the result.
func DetectCapabilities() *Capabilities {
	detectOnce.Do(func() {
		cached = detect(os.Stdout)
	})
	return cached
}

func detect(out *os.File) *Capabilities {
	t := Detect()
	tty := isTerminal(out.Fd())

	profile := termenv.Ascii
	if tty {
		profile = termenv.NewOutput(out).EnvColorProfile()
	}

	return &Capabilities{
		Term:       t,
		Size:       GetSize(),
		Profile:    profile,
		TTY:        tty,
		Hyperlinks: tty && t.SupportsHyperlinks(),
		Mouse:      tty && t.SupportsMouse(),
		Mux:        os.Getenv("TMUX") != "" || os.Getenv("STY") != "",
	}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
