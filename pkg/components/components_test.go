package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/folio/pkg/theme"
)

func TestVisibleLenIgnoresEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"\x1b[1mbold\x1b[22m", 4},
		{ansi.SetHyperlink("https://example.com") + "GitHub" + ansi.ResetHyperlink(), 6},
		{"日本", 4},
	}
	for _, tt := range tests {
		if got := VisibleLen(tt.in); got != tt.want {
			t.Errorf("VisibleLen(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		tail  string
		want  string
	}{
		{"hello world", 5, "", "hello"},
		{"hello world", 6, "…", "hello…"},
		{"short", 10, "…", "short"},
		{"anything", 0, "", ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width, tt.tail); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadding(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcdef", 4); got != "abcdef" {
		t.Errorf("PadRight wide = %q", got)
	}
	if got := Center("ab", 5); got != " ab  " {
		t.Errorf("Center = %q", got)
	}
}

func TestWrapAndIndent(t *testing.T) {
	lines := Wrap("the quick brown fox", 10)
	if len(lines) != 2 {
		t.Fatalf("Wrap gave %d lines: %q", len(lines), lines)
	}
	for _, l := range lines {
		if VisibleLen(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if got := Indent("a\nb", 2); got != "  a\n  b" {
		t.Errorf("Indent = %q", got)
	}
	if Lines("") != 0 || Lines("a\nb\nc") != 3 {
		t.Error("Lines miscounted")
	}
}

func TestCardHiddenKeepsFootprint(t *testing.T) {
	s := NewStyles(termenv.Ascii, theme.Default())
	c := Card{Title: "Platform", Meta: "2023 – now", Body: "Built the deploy pipeline for every service.", Tags: []string{"Go", "Kubernetes"}}

	shown := c.Render(s, 30, false)
	hidden := c.Render(s, 30, true)

	if lipgloss.Width(shown) != lipgloss.Width(hidden) || lipgloss.Height(shown) != lipgloss.Height(hidden) {
		t.Errorf("hidden card is %dx%d, shown is %dx%d",
			lipgloss.Width(hidden), lipgloss.Height(hidden), lipgloss.Width(shown), lipgloss.Height(shown))
	}
	if strings.TrimSpace(hidden) != "" {
		t.Error("hidden card should draw nothing visible")
	}
	if !strings.Contains(Plain(shown), "Platform") {
		t.Error("shown card lost its title")
	}
	if lipgloss.Width(shown) > 30 {
		t.Errorf("card width %d exceeds 30", lipgloss.Width(shown))
	}
}

func TestStylesFollowProfile(t *testing.T) {
	plain := NewStyles(termenv.Ascii, theme.Get("nord")).Heading.Render("Work")
	if plain != Plain(plain) {
		t.Errorf("ascii profile emitted escapes: %q", plain)
	}
	coloured := NewStyles(termenv.TrueColor, theme.Get("nord")).Heading.Render("Work")
	if coloured == Plain(coloured) {
		t.Error("truecolor profile should colour the heading")
	}
}
