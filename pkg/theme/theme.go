// Package theme holds the page's named colour palettes.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme is a palette of hex colours.
type Theme struct {
	Name string

	Foreground string
	Dim        string // muted text, hints
	Accent     string // headings, focus, tags

	Border      string // card borders
	BorderFocus string // selected card border
	Title       string // card titles

	User  string // the visitor's chat messages
	Error string // failure text
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	for _, t := range builtins() {
		Register(t)
	}
}

// Default returns the dark neutral theme with a purple accent.
func Default() Theme {
	return Theme{
		Name:        "default",
		Foreground:  "#E5E7EB",
		Dim:         "#6B7280",
		Accent:      "#7C3AED",
		Border:      "#4B5563",
		BorderFocus: "#7C3AED",
		Title:       "#F9FAFB",
		User:        "#38BDF8",
		Error:       "#F87171",
	}
}

func builtins() []Theme {
	return []Theme{
		Default(),
		{
			Name:        "gruvbox",
			Foreground:  "#ebdbb2",
			Dim:         "#928374",
			Accent:      "#fe8019",
			Border:      "#504945",
			BorderFocus: "#fe8019",
			Title:       "#fbf1c7",
			User:        "#83a598",
			Error:       "#fb4934",
		},
		{
			Name:        "nord",
			Foreground:  "#eceff4",
			Dim:         "#4c566a",
			Accent:      "#88c0d0",
			Border:      "#3b4252",
			BorderFocus: "#88c0d0",
			Title:       "#e5e9f0",
			User:        "#81a1c1",
			Error:       "#bf616a",
		},
		{
			Name:        "dracula",
			Foreground:  "#f8f8f2",
			Dim:         "#6272a4",
			Accent:      "#bd93f9",
			Border:      "#44475a",
			BorderFocus: "#ff79c6",
			Title:       "#f8f8f2",
			User:        "#8be9fd",
			Error:       "#ff5555",
		},
	}
}

// Get returns a named theme, falling back to Default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds t under its lowercase name, replacing any theme of that
// name.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
