package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinsValid(t *testing.T) {
	for _, name := range Names() {
		if err := Validate(Get(name)); err != nil {
			t.Errorf("builtin %q invalid: %v", name, err)
		}
	}
}

func TestGet(t *testing.T) {
	if th := Get("NORD"); th.Name != "nord" {
		t.Errorf("Get is case-insensitive, got %q", th.Name)
	}
	if th := Get("no-such-theme"); th.Name != "default" {
		t.Errorf("unknown theme should fall back to default, got %q", th.Name)
	}
}

func TestNames(t *testing.T) {
	got := strings.Join(Names(), ",")
	for _, want := range []string{"default", "dracula", "gruvbox", "nord"} {
		if !strings.Contains(got, want) {
			t.Errorf("Names() = %s, missing %s", got, want)
		}
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	orig := Get("dracula")
	data, err := SaveToTOML(orig)
	if err != nil {
		t.Fatal(err)
	}
	back, err := LoadFromTOML(data)
	if err != nil {
		t.Fatalf("LoadFromTOML: %v\n%s", err, data)
	}
	if back != orig {
		t.Errorf("round trip changed theme:\n got %+v\nwant %+v", back, orig)
	}
}

func TestLoadFromTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", "name = ", "parse TOML"},
		{"no name", "[text]\nforeground = \"#ffffff\"\n", `"name"`},
		{"bad colour", "name = \"x\"\n[text]\nforeground = \"white\"\n", "text.foreground"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromTOML([]byte(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoadFileRegisters(t *testing.T) {
	th := Default()
	th.Name = "paper"
	th.Accent = "#112233"
	data, err := SaveToTOML(th)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "paper.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if Get("paper").Accent != "#112233" {
		t.Error("loaded theme not registered")
	}
}
