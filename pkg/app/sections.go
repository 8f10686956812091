package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/folio/pkg/chat"
	"gitlab.com/tinyland/lab/folio/pkg/components"
	"gitlab.com/tinyland/lab/folio/pkg/content"
)

const caret = "▌"

func projectZone(i int) string { return fmt.Sprintf("project:%d", i) }

func menuItemZone(id string) string { return "menu:" + id }

func (m AppModel) renderSection(id string, w int) string {
	switch id {
	case sectionHero:
		return m.renderHero(w)
	case sectionWork:
		return m.renderWork(w)
	case sectionStack:
		return m.renderStack(w)
	case sectionProjects:
		return m.renderProjects(w)
	case sectionChat:
		return m.renderChat(w)
	}
	return ""
}

// shown reports whether an entrance has played. Plain output shows
// everything.
func (m AppModel) shown(on bool) bool { return m.plain || on }

func (m AppModel) link(url, text string) string {
	if !m.hyperlinks || url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

func (m AppModel) renderHero(w int) string {
	s := m.styles
	c := m.content

	role := m.typer.Text() + s.Caret.Render(caret)
	if m.plain {
		role = strings.Join(c.Roles, " · ")
	}

	rows := []string{
		"",
		s.Hero.Render(components.Truncate(c.Name, w, "…")),
		components.Truncate("I'm a "+role, w, ""),
	}
	if !c.CareerStart.IsZero() {
		rows = append(rows, s.Muted.Render(content.Experience(c.CareerStart.Time, m.clock.Now())+" of experience"))
	}

	var links []string
	if c.Links.GitHub != "" {
		links = append(links, m.link(c.Links.GitHub, "GitHub"))
	}
	if c.Links.LinkedIn != "" {
		links = append(links, m.link(c.Links.LinkedIn, "LinkedIn"))
	}
	if c.Links.Email != "" {
		links = append(links, m.link("mailto:"+c.Links.Email, c.Links.Email))
	}
	if len(links) > 0 {
		rows = append(rows, "", strings.Join(links, s.Muted.Render(" · ")))
	}
	if c.Notice != "" {
		rows = append(rows, "", s.Muted.Render(c.Notice))
	}

	if !m.plain {
		for len(rows) < m.height-3 {
			rows = append(rows, "")
		}
		rows = append(rows, s.Muted.Render("↓ scroll · tab to navigate · / to ask"))
	}
	return strings.Join(rows, "\n") + "\n"
}

func (m AppModel) renderWork(w int) string {
	s := m.styles

	heading := s.Heading.Render("Work")
	if !m.shown(m.workLead.On()) {
		heading = components.Conceal(heading)
	}
	blocks := []string{heading}

	idx := 0
	for _, item := range m.content.Work {
		intro := s.CardTitle.Render(item.Title)
		if item.Description != "" {
			intro += "\n" + strings.Join(components.Wrap(s.Muted.Render(item.Description), w), "\n")
		}
		if !m.shown(m.workLead.On()) {
			intro = components.Conceal(intro)
		}
		blocks = append(blocks, intro)

		for _, step := range item.Timeline {
			card := components.Card{
				Title: joinNonEmpty(" · ", step.Role, step.Type),
				Meta:  joinNonEmpty(" · ", step.Duration, step.Location),
				Body:  step.Description,
				Tags:  step.Skills,
			}
			blocks = append(blocks, card.Render(s, w, !m.plain && !m.work.Revealed(idx)))
			idx++
		}
	}

	more := s.Tag.Render(m.link(m.content.Links.GitHub, "More on GitHub →"))
	if !m.shown(m.workTail.On()) {
		more = components.Conceal(more)
	}
	blocks = append(blocks, more, "")
	return strings.Join(blocks, "\n")
}

func (m AppModel) renderStack(w int) string {
	s := m.styles

	blocks := []string{s.Heading.Render("Tech Stack")}
	for _, cat := range m.content.TechStack {
		blocks = append(blocks,
			s.CardTitle.Render(cat.Name),
			strings.Join(components.Wrap(s.Tag.Render(strings.Join(cat.Technologies, " · ")), w), "\n"),
			"")
	}

	out := strings.Join(blocks, "\n")
	if !m.shown(m.stackShown.On()) {
		return components.Conceal(out)
	}
	return out
}

func (m AppModel) renderProjects(w int) string {
	s := m.styles
	visible := m.shown(m.projectsShown.On())

	blocks := []string{s.Heading.Render("Projects")}
	for i, p := range m.content.Projects {
		card := components.Card{
			Title: p.Title,
			Meta:  p.Category,
			Body:  p.Description,
			Tags:  p.Tags,
		}
		var out string
		if i == m.project && !m.plain {
			out = card.RenderFocused(s, w, false)
		} else {
			out = card.Render(s, w, false)
		}
		if visible && !m.plain {
			out = m.zones.Mark(projectZone(i), out)
		}
		blocks = append(blocks, out)
	}
	if !m.plain {
		blocks = append(blocks, s.Muted.Render("[ ] select · o details"))
	}
	blocks = append(blocks, "")

	out := strings.Join(blocks, "\n")
	if !visible {
		return components.Conceal(out)
	}
	return out
}

func (m AppModel) renderChat(w int) string {
	s := m.styles

	heading := s.Heading.Render("Ask me anything")
	if !m.plain && !m.sections[sectionChat].HasClass(inViewClass) {
		heading = s.Muted.Bold(true).MarginBottom(1).Render("Ask me anything")
	}
	rows := []string{heading}

	if m.plain {
		rows = append(rows, s.Muted.Render(`Run "folio -ask <question>" to ask a question.`))
		return strings.Join(rows, "\n")
	}

	for _, msg := range m.chat.Transcript() {
		rows = append(rows, m.renderMessage(msg, w))
	}
	if len(m.chat.Transcript()) > 0 {
		rows = append(rows, "")
	}

	if m.typing {
		rows = append(rows, m.input.View())
	} else {
		rows = append(rows, s.Muted.Render("press / to ask a question"))
	}
	return strings.Join(rows, "\n") + "\n"
}

func (m AppModel) renderMessage(msg chat.Message, w int) string {
	s := m.styles
	const gutter = 5

	var label, text string
	switch {
	case msg.Sender == chat.User:
		label = s.UserMsg.Render("you")
		text = msg.Text
	case msg.Pending:
		label = s.AIMsg.Render("ai")
		text = s.Pending.Render(msg.Text)
	case msg.Failed:
		label = s.AIMsg.Render("ai")
		text = s.Error.Render(msg.Text)
	default:
		label = s.AIMsg.Render("ai")
		text = msg.Text
		if m.hyperlinks {
			text = chat.Format(text, m.links)
		}
	}

	lines := components.Wrap(text, max(w-gutter, 10))
	for i := range lines {
		if i == 0 {
			lines[i] = components.PadRight(label, gutter) + lines[i]
		} else {
			lines[i] = strings.Repeat(" ", gutter) + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) renderHeader() string {
	s := m.styles
	left := s.Header.Render(m.content.Name)

	var right string
	if m.narrow() {
		right = m.zones.Mark(menuZone, s.NavItem.Render("≡ menu"))
	} else {
		var items []string
		for i, it := range navItems {
			st := s.NavItem
			if i == m.navFocus {
				st = s.NavActive
			}
			items = append(items, m.zones.Mark(navZone(it.ID), st.Render(it.Label)))
		}
		right = strings.Join(items, "")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return components.Truncate(left+" "+right, m.width, "")
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m AppModel) renderMenu() []string {
	s := m.styles
	rows := make([]string, 0, len(navItems))
	for i, it := range navItems {
		st := s.NavItem
		marker := "  "
		if i == m.navFocus {
			st = s.NavActive
			marker = "› "
		}
		rows = append(rows, m.zones.Mark(menuItemZone(it.ID), st.Render(marker+it.Label)))
	}
	return rows
}

func (m AppModel) renderActionBar() string {
	s := m.styles
	if m.bar == barClosing {
		return s.Muted.Render(components.PadRight("", m.width))
	}
	hint := "tab/enter navigate · / ask · m menu · q quit"
	dismiss := m.zones.Mark(dismissZone, "[x]")
	w := m.width - lipgloss.Width(dismiss) - 1
	return s.ActionBar.Render(components.PadRight(components.Truncate(hint, max(w-2, 0), "…"), max(w-2, 0))) + " " + dismiss
}

func (m AppModel) renderOverlay() string {
	s := m.styles
	if m.project < 0 || m.project >= len(m.content.Projects) {
		return ""
	}
	p := m.content.Projects[m.project]
	w := min(m.contentWidth(), 72) - s.Overlay.GetHorizontalFrameSize()

	rows := []string{s.CardTitle.Render(p.Title)}
	if p.Category != "" {
		rows = append(rows, s.Muted.Render(p.Category))
	}
	rows = append(rows, "")
	rows = append(rows, components.Wrap(p.Description, w)...)
	if len(p.Responsibilities) > 0 {
		rows = append(rows, "")
		for _, r := range p.Responsibilities {
			wrapped := components.Wrap(r, w-2)
			rows = append(rows, "• "+wrapped[0])
			for _, l := range wrapped[1:] {
				rows = append(rows, "  "+l)
			}
		}
	}
	if len(p.Tags) > 0 {
		rows = append(rows, "", s.Tag.Render(strings.Join(p.Tags, " · ")))
	}
	rows = append(rows, "", s.Muted.Render("esc to close"))
	return s.Overlay.Width(w + s.Overlay.GetHorizontalPadding()).Render(strings.Join(rows, "\n"))
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

var helpKeys = [][2]string{
	{"j/k ↑/↓", "scroll"},
	{"space/pgup", "page"},
	{"g/G", "top / bottom"},
	{"tab/shift+tab", "focus nav item"},
	{"enter", "go to focused section"},
	{"m", "toggle menu"},
	{"/", "ask a question"},
	{"[ ] o", "select / open project"},
	{"x", "dismiss action bar"},
	{"q", "quit"},
}

func (m AppModel) renderHelp() string {
	s := m.styles
	rows := []string{s.CardTitle.Render("Keys"), ""}
	for _, k := range helpKeys {
		rows = append(rows, s.Tag.Render(components.PadRight(k[0], 16))+k[1])
	}
	return s.Overlay.Render(strings.Join(rows, "\n"))
}
