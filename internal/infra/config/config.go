// Package config provides configuration loading functionality.
package config

import (
	"os"
	"path/filepath"
)

// FileName is the configuration file name looked up in both the global
// config directory and the working directory.
const FileName = "labtrack.toml"

// Config represents the application configuration.
type Config struct {
	Data DataConfig `toml:"data"`
	Log  LogConfig  `toml:"log"`
	UI   UIConfig   `toml:"ui"`
}

// DataConfig holds storage settings from the [data] section.
type DataConfig struct {
	Dir  string `toml:"dir"`  // Data directory (default: ~/.local/share/labtrack)
	File string `toml:"file"` // Document file name within Dir
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // Log level: debug, info, warn, error
}

// UIConfig holds TUI settings from the [ui] section.
type UIConfig struct {
	ShowCompleted   *bool `toml:"show_completed"`   // Show completed tasks in the list
	DefaultPriority *int  `toml:"default_priority"` // Priority preselected for new tasks (0-2)
}

// NewDefault returns the default configuration.
func NewDefault() *Config {
	showCompleted := true
	defaultPriority := 0
	return &Config{
		Data: DataConfig{
			Dir:  defaultDataDir(),
			File: "research_data.json",
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			ShowCompleted:   &showCompleted,
			DefaultPriority: &defaultPriority,
		},
	}
}

// StorePath returns the full path of the backing document.
func (c *Config) StorePath() string {
	return filepath.Join(c.Data.Dir, c.Data.File)
}

// defaultDataDir resolves the XDG data directory for labtrack.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "labtrack")
}
