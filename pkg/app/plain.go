package app

import "strings"

// RenderPlain renders the whole page once, fully revealed and without
// interactive chrome, for pipes and dumb terminals.
func RenderPlain(opts Options, width int) string {
	m := NewAppModel(opts)
	defer m.Close()

	m.plain = true
	m.width = max(width, 20)
	m.page.cols = m.width
	m.layout()

	out := strings.TrimRight(strings.Join(m.lines, "\n"), "\n ")
	return m.zones.Scan(out) + "\n"
}
