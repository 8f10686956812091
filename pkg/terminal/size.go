package terminal

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
)

// Size is the terminal's dimensions in character cells.
type Size struct {
	Cols int
	Rows int
}

// GetSize returns the current terminal dimensions. It tries, in order:
//  1. the window size of stdout
//  2. the window size of stderr (stdout may be redirected)
//  3. COLUMNS/LINES
//  4. 80x24
func GetSize() Size {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if s, ok := sizeOf(f.Fd()); ok {
			return s
		}
	}
	return sizeFromEnv()
}

func sizeOf(fd uintptr) (Size, bool) {
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return Size{}, false
	}
	return Size{Cols: w, Rows: h}, true
}

func sizeFromEnv() Size {
	return Size{Cols: envInt("COLUMNS", 80), Rows: envInt("LINES", 24)}
}

// envInt reads a positive integer from the named variable, or returns
// fallback.
func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
