package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Loader loads configuration from TOML files.
type Loader struct {
	workDir       string // Directory searched for a workspace labtrack.toml
	globalConfDir string // Global config directory (e.g., ~/.config/labtrack)
}

// NewLoader creates a new Loader.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory. This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "labtrack")
}

// Load returns the merged configuration. Workspace config takes precedence
// over global config, which takes precedence over defaults.
func (l *Loader) Load() (*Config, error) {
	base := NewDefault()

	global, err := l.loadFile(filepath.Join(l.globalConfDir, FileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if global != nil {
		base = merge(base, global)
	}

	workspace, err := l.loadFile(filepath.Join(l.workDir, FileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if workspace != nil {
		base = merge(base, workspace)
	}

	return base, nil
}

// loadFile reads and parses a single TOML config file.
func (l *Loader) loadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// merge overlays non-empty fields of overlay onto base and returns base.
func merge(base, overlay *Config) *Config {
	if overlay.Data.Dir != "" {
		base.Data.Dir = overlay.Data.Dir
	}
	if overlay.Data.File != "" {
		base.Data.File = overlay.Data.File
	}
	if overlay.Log.Level != "" {
		base.Log.Level = overlay.Log.Level
	}
	if overlay.UI.ShowCompleted != nil {
		base.UI.ShowCompleted = overlay.UI.ShowCompleted
	}
	if overlay.UI.DefaultPriority != nil {
		base.UI.DefaultPriority = overlay.UI.DefaultPriority
	}
	return base
}
