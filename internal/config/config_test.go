package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	want := Default()
	if *cfg != *want {
		t.Fatalf("cfg=%+v, want defaults %+v", cfg, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "fade_out_ms: 100\nprefer_simple_fullscreen: true\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.FadeOutMS != 100 {
		t.Fatalf("FadeOutMS=%d, want 100", cfg.FadeOutMS)
	}
	if !cfg.PreferSimpleFullscreen {
		t.Fatal("PreferSimpleFullscreen=false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level=%q, want debug", cfg.Logging.Level)
	}
	// Untouched keys keep defaults.
	if cfg.FadeInMS != 600 {
		t.Fatalf("FadeInMS=%d, want 600", cfg.FadeInMS)
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}
