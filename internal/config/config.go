// Package config holds the user-facing configuration: shell and
// environment for new terminals, scrollback and selection behavior,
// and custom key bindings. Configuration lives in a TOML file under
// the XDG config directory and can be hot-reloaded.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// appDir is the directory name under the XDG config root.
const appDir = "termbridge"

// Config is the full user configuration.
type Config struct {
	// Shell is the program spawned for new terminals. Empty means the
	// user's login shell.
	Shell string   `toml:"shell"`
	Args  []string `toml:"args"`
	// Term is the TERM value advertised to children.
	Term string `toml:"term"`

	ScrollbackLines int  `toml:"scrollback_lines"`
	CopyOnSelect    bool `toml:"copy_on_select"`
	BracketedPaste  bool `toml:"bracketed_paste"`
	// ClickIntervalMS is the multi-click window in milliseconds.
	ClickIntervalMS int `toml:"click_interval_ms"`

	Bindings []Binding `toml:"bindings"`
}

// Binding is one user keybinding entry.
type Binding struct {
	// Key is a chord like "ctrl+shift+c" or "shift+pageup".
	Key string `toml:"key"`
	// Action names what the chord does: ignore, copy, paste,
	// clear-selection, scroll-up, scroll-down, scroll-top,
	// scroll-bottom or write.
	Action string `toml:"action"`
	// Bytes is the literal payload for the write action.
	Bytes string `toml:"bytes,omitempty"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Term:            "xterm-256color",
		ScrollbackLines: 10000,
		ClickIntervalMS: 500,
	}
}

// ClickInterval returns the multi-click window as a duration.
func (c *Config) ClickInterval() time.Duration {
	if c.ClickIntervalMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.ClickIntervalMS) * time.Millisecond
}

// DefaultPath returns the config file location under the XDG config
// directory, creating parent directories as needed.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(appDir + "/config.toml")
}

// Load reads the configuration at path. A missing file is not an
// error; it yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path) // #nosec G304 - path is the user's own config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault reads the configuration from the default XDG location.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return Load(path)
}

// Save writes the configuration as TOML.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// validate rejects configurations that would misbehave at runtime.
func (c *Config) validate() error {
	if c.ScrollbackLines < 0 {
		return fmt.Errorf("scrollback_lines must not be negative, got %d", c.ScrollbackLines)
	}
	for i, b := range c.Bindings {
		if _, err := ParseChord(b.Key); err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
		if _, err := parseAction(b.Action); err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
	}
	return nil
}
