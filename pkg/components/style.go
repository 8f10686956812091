package components

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/folio/pkg/theme"
)

// Styles is the page's style sheet.
type Styles struct {
	Header    lipgloss.Style
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	Heading   lipgloss.Style
	Hero      lipgloss.Style
	Caret     lipgloss.Style
	Muted     lipgloss.Style
	Card      lipgloss.Style
	CardFocus lipgloss.Style
	CardTitle lipgloss.Style
	Tag       lipgloss.Style
	UserMsg   lipgloss.Style
	AIMsg     lipgloss.Style
	Pending   lipgloss.Style
	Error     lipgloss.Style
	ActionBar lipgloss.Style
	Overlay   lipgloss.Style
}

// NewStyles builds the style sheet for a palette and colour profile.
// termenv.Ascii yields an uncoloured sheet that still keeps borders and
// emphasis.
func NewStyles(profile termenv.Profile, t theme.Theme) Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return Styles{
		Header:    r.NewStyle().Bold(true).Padding(0, 1),
		NavItem:   fg(t.Dim).Padding(0, 1),
		NavActive: fg(t.Accent).Bold(true).Padding(0, 1),
		Heading:   fg(t.Accent).Bold(true).MarginBottom(1),
		Hero:      fg(t.Foreground).Bold(true),
		Caret:     fg(t.Accent).Blink(true),
		Muted:     fg(t.Dim),
		Card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		CardFocus: r.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),
		CardTitle: fg(t.Title).Bold(true),
		Tag:       fg(t.Accent),
		UserMsg:   fg(t.User),
		AIMsg:     fg(t.Foreground),
		Pending:   fg(t.Dim).Italic(true),
		Error:     fg(t.Error),
		ActionBar: r.NewStyle().Reverse(true).Padding(0, 1),
		Overlay: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(1, 2),
	}
}
