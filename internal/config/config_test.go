package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Surface.Shape != "plane" {
		t.Errorf("expected shape plane, got %s", cfg.Surface.Shape)
	}
	if cfg.Surface.Size != 2.0 {
		t.Errorf("expected size 2.0, got %f", cfg.Surface.Size)
	}
	if cfg.Levels.Reshape != 2 {
		t.Errorf("expected reshape level 2, got %d", cfg.Levels.Reshape)
	}
	if cfg.Levels.Top != 3 {
		t.Errorf("expected top level 3, got %d", cfg.Levels.Top)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gridprobe.yaml")
	data := []byte("surface:\n  shape: sphere\nlevels:\n  top: 5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	// File values override defaults...
	if cfg.Surface.Shape != "sphere" {
		t.Errorf("expected shape sphere, got %s", cfg.Surface.Shape)
	}
	if cfg.Levels.Top != 5 {
		t.Errorf("expected top level 5, got %d", cfg.Levels.Top)
	}
	// ...while unset fields keep their defaults.
	if cfg.Levels.Reshape != 2 {
		t.Errorf("expected reshape level 2, got %d", cfg.Levels.Reshape)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "gridprobe.yaml")

	cfg := Default()
	cfg.Surface.Shape = "cube"
	cfg.Levels.Reshape = 1
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Surface.Shape != "cube" || loaded.Levels.Reshape != 1 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
