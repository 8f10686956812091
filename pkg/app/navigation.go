package app

// navItem is one header destination.
type navItem struct {
	ID    string
	Label string
}

var navItems = []navItem{
	{ID: sectionHero, Label: "Home"},
	{ID: sectionWork, Label: "Work"},
	{ID: sectionStack, Label: "Stack"},
	{ID: sectionProjects, Label: "Projects"},
	{ID: sectionChat, Label: "Ask"},
}

// CycleFocusForward moves nav focus to the next item, wrapping around.
func (m *AppModel) CycleFocusForward() {
	m.navFocus = (m.navFocus + 1) % len(navItems)
}

// CycleFocusBackward moves nav focus to the previous item, wrapping around.
func (m *AppModel) CycleFocusBackward() {
	m.navFocus = (m.navFocus - 1 + len(navItems)) % len(navItems)
}

// FocusedNavID returns the section the focused nav item points at.
func (m AppModel) FocusedNavID() string {
	return navItems[m.navFocus].ID
}

// Navigate starts a smooth scroll to the section with the given id and
// returns the frame command that drives it.
func (m *AppModel) Navigate(id string) {
	m.tracker.ScrollTo(id)
	for i, it := range navItems {
		if it.ID == id {
			m.navFocus = i
		}
	}
	m.logger.Debug("navigate", "section", id)
}

func navZone(id string) string { return "nav:" + id }
