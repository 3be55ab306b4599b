package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoader_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Data.File != "research_data.json" {
		t.Errorf("Data.File = %q", cfg.Data.File)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.UI.ShowCompleted == nil || !*cfg.UI.ShowCompleted {
		t.Errorf("UI.ShowCompleted = %v, want true", cfg.UI.ShowCompleted)
	}
}

func TestLoader_GlobalConfig(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[data]
dir = "/tmp/research"

[log]
level = "debug"
`)

	loader := NewLoaderWithGlobalDir(t.TempDir(), globalDir)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Data.Dir != "/tmp/research" {
		t.Errorf("Data.Dir = %q", cfg.Data.Dir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	// Unset fields keep defaults.
	if cfg.Data.File != "research_data.json" {
		t.Errorf("Data.File = %q", cfg.Data.File)
	}
}

func TestLoader_WorkspaceOverridesGlobal(t *testing.T) {
	globalDir := t.TempDir()
	workDir := t.TempDir()
	writeConfig(t, globalDir, `
[log]
level = "debug"

[ui]
show_completed = false
`)
	writeConfig(t, workDir, `
[log]
level = "error"
`)

	loader := NewLoaderWithGlobalDir(workDir, globalDir)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want workspace to win", cfg.Log.Level)
	}
	if cfg.UI.ShowCompleted == nil || *cfg.UI.ShowCompleted {
		t.Errorf("UI.ShowCompleted = %v, want global false preserved", cfg.UI.ShowCompleted)
	}
}

func TestLoader_MalformedFile(t *testing.T) {
	workDir := t.TempDir()
	writeConfig(t, workDir, "not [valid toml")

	loader := NewLoaderWithGlobalDir(workDir, t.TempDir())
	if _, err := loader.Load(); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestConfig_StorePath(t *testing.T) {
	cfg := NewDefault()
	cfg.Data.Dir = "/data"
	cfg.Data.File = "r.json"
	if got := cfg.StorePath(); got != filepath.Join("/data", "r.json") {
		t.Errorf("StorePath() = %q", got)
	}
}
