// Package config provides TOML-based configuration for folio.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/folio/pkg/theme"
)

// Config is the top-level folio configuration.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Chat      ChatConfig      `toml:"chat"`
	Animation AnimationConfig `toml:"animation"`
	Scroll    ScrollConfig    `toml:"scroll"`
}

// GeneralConfig holds process-wide settings.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
	// LogFile receives all log output; the TUI owns the terminal.
	LogFile string `toml:"log_file"`
	// ContentFile replaces the embedded page payload when set.
	ContentFile string `toml:"content_file"`
	// Theme names a built-in palette. ThemeFile, when set, loads a TOML
	// palette instead.
	Theme     string `toml:"theme"`
	ThemeFile string `toml:"theme_file"`
}

// ChatConfig configures the ask-me widget's answer service.
type ChatConfig struct {
	Endpoint  string   `toml:"endpoint"`
	Timeout   Duration `toml:"timeout"`
	CacheSize int      `toml:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl"`
}

// AnimationConfig paces the typewriter and card reveals.
type AnimationConfig struct {
	TypeDelay  Duration `toml:"type_delay"`
	EraseDelay Duration `toml:"erase_delay"`
	Hold       Duration `toml:"hold"`
	Loop       bool     `toml:"loop"`
	Stagger    Duration `toml:"stagger"`
}

// ScrollConfig tunes header auto-hide and smooth scrolling.
type ScrollConfig struct {
	HideThreshold float64  `toml:"hide_threshold"`
	SettleEpsilon float64  `toml:"settle_epsilon"`
	SettleDelay   Duration `toml:"settle_delay"`
	FrameRate     int      `toml:"frame_rate"`
	// RowUnits converts terminal rows to page units so that the threshold
	// and offsets keep their meaning on a character grid.
	RowUnits float64 `toml:"row_units"`
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks the configuration for values the application cannot run
// with.
func (c *Config) Validate() error {
	var errs []error

	if !validLogLevels[strings.ToLower(c.General.LogLevel)] {
		errs = append(errs, fmt.Errorf("general.log_level: unknown level %q", c.General.LogLevel))
	}
	if c.General.ThemeFile == "" && c.General.Theme != "" && !slices.Contains(theme.Names(), strings.ToLower(c.General.Theme)) {
		errs = append(errs, fmt.Errorf("general.theme: unknown theme %q (available: %s)",
			c.General.Theme, strings.Join(theme.Names(), ", ")))
	}
	if c.Chat.Endpoint != "" {
		u, err := url.Parse(c.Chat.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("chat.endpoint: %q is not an http(s) URL", c.Chat.Endpoint))
		}
	}
	if c.Chat.CacheSize < 0 {
		errs = append(errs, errors.New("chat.cache_size: must not be negative"))
	}
	if h := c.Animation.Hold.Duration; h > 0 && h < 100*time.Millisecond {
		errs = append(errs, fmt.Errorf("animation.hold: %s is too short to read", h))
	}
	if c.Scroll.FrameRate < 0 || c.Scroll.FrameRate > 240 {
		errs = append(errs, fmt.Errorf("scroll.frame_rate: %d out of range 0-240", c.Scroll.FrameRate))
	}
	if c.Scroll.RowUnits < 0 {
		errs = append(errs, errors.New("scroll.row_units: must not be negative"))
	}

	return errors.Join(errs...)
}

// Duration is a non-negative time.Duration read from TOML. Values are Go
// duration strings ("150ms", "1.2s") or bare integers, which count
// milliseconds since every animation delay lives at that scale:
//
//	type_delay = 100
//	hold = "1.2s"
type Duration struct {
	time.Duration
}

// UnmarshalTOML accepts a duration string or an integer millisecond count.
func (d *Duration) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		return d.UnmarshalText([]byte(v))
	case int64:
		return d.set(time.Duration(v)*time.Millisecond, strconv.FormatInt(v, 10))
	default:
		return fmt.Errorf("invalid duration %v: want a string like \"150ms\" or integer milliseconds", v)
	}
}

// UnmarshalText parses a duration string. A bare integer is milliseconds.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return d.set(time.Duration(ms)*time.Millisecond, s)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d.set(parsed, s)
}

func (d *Duration) set(v time.Duration, src string) error {
	if v < 0 {
		return fmt.Errorf("negative duration %q not allowed", src)
	}
	d.Duration = v
	return nil
}

// MarshalText writes the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
