// Package terminal answers the questions folio asks of its host terminal
// before drawing: is stdout a TTY, how big is it, how many colours does it
// take, and will it honour hyperlinks and mouse reporting.
//
// Identification is environment-only (no query sequences, no I/O).
package terminal

import (
	"os"
	"strings"
)

// Terminal identifies the terminal emulator in use.
type Terminal int

const (
	TermUnknown Terminal = iota
	TermGhostty
	TermKitty
	TermWezTerm
	TermITerm2
	TermAlacritty
	TermGNOME // VTE-based, includes Tilix
	TermVSCode
	TermEmacs
	TermTmux
	TermScreen
	TermGeneric
)

var terminalNames = [...]string{
	TermUnknown:   "unknown",
	TermGhostty:   "ghostty",
	TermKitty:     "kitty",
	TermWezTerm:   "wezterm",
	TermITerm2:    "iterm2",
	TermAlacritty: "alacritty",
	TermGNOME:     "vte",
	TermVSCode:    "vscode",
	TermEmacs:     "emacs",
	TermTmux:      "tmux",
	TermScreen:    "screen",
	TermGeneric:   "generic",
}

// String returns the human-readable name of the terminal.
func (t Terminal) String() string {
	if t >= 0 && int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return "unknown"
}

// SupportsHyperlinks reports whether the terminal renders OSC 8 links.
// Chat answers fall back to plain text elsewhere.
func (t Terminal) SupportsHyperlinks() bool {
	switch t {
	case TermGhostty, TermKitty, TermWezTerm, TermITerm2,
		TermAlacritty, TermGNOME, TermVSCode:
		return true
	default:
		return false
	}
}

// SupportsMouse reports whether SGR mouse reporting can be trusted for
// clickable navigation.
func (t Terminal) SupportsMouse() bool {
	switch t {
	case TermEmacs, TermUnknown:
		return false
	default:
		return true
	}
}

// Detect identifies the terminal emulator from environment variables,
// most reliable signal first:
//
//  1. TERM_PROGRAM
//  2. TERM (xterm-ghostty, xterm-kitty, alacritty)
//  3. emulator-specific vars (KITTY_WINDOW_ID, ITERM_SESSION_ID, ...)
//  4. VTE_VERSION
//  5. INSIDE_EMACS
//  6. TMUX / STY, checked late so the inner terminal wins
func Detect() Terminal {
	if tp := os.Getenv("TERM_PROGRAM"); tp != "" {
		switch strings.ToLower(tp) {
		case "ghostty":
			return TermGhostty
		case "kitty":
			return TermKitty
		case "wezterm":
			return TermWezTerm
		case "iterm.app":
			return TermITerm2
		case "vscode":
			return TermVSCode
		case "alacritty":
			return TermAlacritty
		case "tmux":
			return TermTmux
		}
	}

	switch term := os.Getenv("TERM"); {
	case term == "xterm-ghostty":
		return TermGhostty
	case term == "xterm-kitty":
		return TermKitty
	case strings.HasPrefix(term, "alacritty"):
		return TermAlacritty
	}

	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "":
		return TermKitty
	case os.Getenv("ITERM_SESSION_ID") != "", os.Getenv("LC_TERMINAL") == "iTerm2":
		return TermITerm2
	case os.Getenv("WEZTERM_EXECUTABLE") != "":
		return TermWezTerm
	case os.Getenv("VTE_VERSION") != "":
		return TermGNOME
	case os.Getenv("INSIDE_EMACS") != "":
		return TermEmacs
	case os.Getenv("TMUX") != "":
		return TermTmux
	case os.Getenv("STY") != "":
		return TermScreen
	}

	return TermGeneric
}
