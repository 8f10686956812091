package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card is a bordered block with a title, body text and a tag line.
type Card struct {
	Title string
	Meta  string
	Body  string
	Tags  []string
}

// Render draws c at the given outer width. A hidden card keeps its
// height but draws only a blank placeholder, so revealing it never
// shifts the layout below.
func (c Card) Render(s Styles, width int, hidden bool) string {
	return c.render(s, s.Card, width, hidden)
}

// RenderFocused draws c with the focus border.
func (c Card) RenderFocused(s Styles, width int, hidden bool) string {
	return c.render(s, s.CardFocus, width, hidden)
}

func (c Card) render(s Styles, frame lipgloss.Style, width int, hidden bool) string {
	inner := width - frame.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	var b strings.Builder
	b.WriteString(s.CardTitle.Render(Truncate(c.Title, inner, "…")))
	if c.Meta != "" {
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(Truncate(c.Meta, inner, "…")))
	}
	if c.Body != "" {
		b.WriteString("\n")
		b.WriteString(strings.Join(Wrap(c.Body, inner), "\n"))
	}
	if len(c.Tags) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(Wrap(s.Tag.Render(strings.Join(c.Tags, " · ")), inner), "\n"))
	}

	out := frame.Width(inner + frame.GetHorizontalPadding()).Render(b.String())
	if !hidden {
		return out
	}
	return Conceal(out)
}

// Conceal replaces block with blank space of the same footprint.
func Conceal(block string) string {
	return Blank(lipgloss.Width(block), lipgloss.Height(block))
}

// Blank returns a block of spaces w cells wide and h rows tall.
func Blank(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	row := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}
