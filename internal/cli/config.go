package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults loaded from the config file.
// Flags always win over config values; config values win over built-ins.
type Config struct {
	Render RenderConfig `toml:"render"`
	Show   ShowConfig   `toml:"show"`
}

// RenderConfig holds defaults for the render command.
type RenderConfig struct {
	Format   string `toml:"format"`   // "dot", "svg", or "png"
	Detailed bool   `toml:"detailed"` // include payloads in node labels
}

// ShowConfig holds defaults for the show command.
type ShowConfig struct {
	ShowRefs bool `toml:"show_refs"` // print short refs next to payloads
}

// defaultConfig returns the built-in defaults used when no config file exists.
func defaultConfig() Config {
	return Config{
		Render: RenderConfig{Format: "svg"},
		Show:   ShowConfig{ShowRefs: true},
	}
}

// defaultConfigPath returns ~/.config/rbxdom/config.toml, or an empty string
// if the home directory cannot be determined.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// loadConfig reads the TOML config at path, falling back to the default
// location when path is empty. A missing file is not an error: built-in
// defaults are returned. A file that exists but fails to parse is an error,
// since silently ignoring it would hide typos.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
