package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultEndpoint is the answer service used when none is configured.
const DefaultEndpoint = "http://127.0.0.1:8000"

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/folio/config.toml
//  2. ~/.config/folio/config.toml
//
// If no file exists, returns DefaultConfig() with env overrides applied.
func Load() (*Config, error) {
	loadDotEnv()
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadDotEnv()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			LogFile:  filepath.Join(xdgStateHome(home), "folio", "folio.log"),
			Theme:    "default",
		},
		Chat: ChatConfig{
			Endpoint:  DefaultEndpoint,
			Timeout:   Duration{30 * time.Second},
			CacheSize: 64,
			CacheTTL:  Duration{10 * time.Minute},
		},
		Animation: AnimationConfig{
			TypeDelay:  Duration{100 * time.Millisecond},
			EraseDelay: Duration{50 * time.Millisecond},
			Hold:       Duration{1200 * time.Millisecond},
			Stagger:    Duration{150 * time.Millisecond},
		},
		Scroll: ScrollConfig{
			HideThreshold: 120,
			SettleEpsilon: 2,
			SettleDelay:   Duration{250 * time.Millisecond},
			FrameRate:     60,
			RowUnits:      20,
		},
	}
}

// loadDotEnv reads ./.env into the environment without overriding values
// that are already set. A missing file is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FOLIO_ASK_URL"); v != "" {
		cfg.Chat.Endpoint = v
	}
	if v := os.Getenv("FOLIO_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
	if v := os.Getenv("FOLIO_THEME"); v != "" {
		cfg.General.Theme = v
	}
	if v := os.Getenv("FOLIO_CONTENT"); v != "" {
		cfg.General.ContentFile = v
	}
	if v := os.Getenv("FOLIO_LOOP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Animation.Loop = b
		}
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "folio", "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "folio", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
