package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}

	if cfg != Default() {
		t.Errorf("got %+v, want the defaults", cfg)
	}
}

func TestLoadOverridesOnTopOfDefaults(t *testing.T) {

	path := filepath.Join(t.TempDir(), "nmage2d.toml")
	data := `
[window]
title = "my game"
width = 640

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Window.Title != "my game" || cfg.Window.Width != 640 {
		t.Errorf("overrides not applied: %+v", cfg.Window)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level is %q, want debug", cfg.Log.Level)
	}

	// Anything the file doesn't mention keeps its default
	if cfg.Window.Height != Default().Window.Height {
		t.Errorf("height is %d, want the default %d", cfg.Window.Height, Default().Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("vsync default was lost")
	}
}

func TestLoadMalformedFileErrors(t *testing.T) {

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[window\ntitle="), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed toml")
	}
}
