package termbridge

import "github.com/Gaurav-Gosain/termbridge/internal/config"

// Config is the user configuration: shell and TERM for new terminals,
// scrollback retention, selection behavior and custom key bindings.
type Config = config.Config

// Binding is one configured key chord entry, like
// {Key: "ctrl+shift+t", Action: "write", Bytes: "top\n"}.
type Binding = config.Binding

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig reads a TOML configuration file. A missing file is not an
// error; it yields the defaults.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// LoadDefaultConfig reads the configuration from the default XDG
// location.
func LoadDefaultConfig() (*Config, error) {
	return config.LoadDefault()
}

// DefaultConfigPath returns the config file location under the XDG
// config directory.
func DefaultConfigPath() (string, error) {
	return config.DefaultPath()
}
