package theme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// tomlTheme is the file layout of a theme:
//
//	name = "paper"
//	[text]
//	foreground = "#222222"
//	...
type tomlTheme struct {
	Name string   `toml:"name"`
	Text tomlText `toml:"text"`
	Card tomlCard `toml:"card"`
	Chat tomlChat `toml:"chat"`
}

type tomlText struct {
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type tomlCard struct {
	Border      string `toml:"border"`
	BorderFocus string `toml:"border_focus"`
	Title       string `toml:"title"`
}

type tomlChat struct {
	User  string `toml:"user"`
	Error string `toml:"error"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a theme definition.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt tomlTheme
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:        tt.Name,
		Foreground:  tt.Text.Foreground,
		Dim:         tt.Text.Dim,
		Accent:      tt.Text.Accent,
		Border:      tt.Card.Border,
		BorderFocus: tt.Card.BorderFocus,
		Title:       tt.Card.Title,
		User:        tt.Chat.User,
		Error:       tt.Chat.Error,
	}
	if err := Validate(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadFile reads a theme file and registers it.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: %w", err)
	}
	t, err := LoadFromTOML(data)
	if err != nil {
		return Theme{}, err
	}
	Register(t)
	return t, nil
}

// SaveToTOML serializes a theme.
func SaveToTOML(t Theme) ([]byte, error) {
	tt := tomlTheme{
		Name: t.Name,
		Text: tomlText{Foreground: t.Foreground, Dim: t.Dim, Accent: t.Accent},
		Card: tomlCard{Border: t.Border, BorderFocus: t.BorderFocus, Title: t.Title},
		Chat: tomlChat{User: t.User, Error: t.Error},
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks that the theme is named and every colour is #RRGGBB.
func Validate(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	colors := []struct{ field, value string }{
		{"text.foreground", t.Foreground},
		{"text.dim", t.Dim},
		{"text.accent", t.Accent},
		{"card.border", t.Border},
		{"card.border_focus", t.BorderFocus},
		{"card.title", t.Title},
		{"chat.user", t.User},
		{"chat.error", t.Error},
	}
	for _, c := range colors {
		if !hexColor.MatchString(c.value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", c.value, c.field)
		}
	}
	return nil
}
