package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the default values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Raycast.TotalSteps != 200 {
		t.Errorf("Expected default step budget 200, got %d", cfg.Raycast.TotalSteps)
	}
	if cfg.Raycast.StepsPerPass != 0 {
		t.Errorf("Expected single-pass rendering by default, got %d steps per pass", cfg.Raycast.StepsPerPass)
	}
	if cfg.Raycast.BlendFactor != 0.1 {
		t.Errorf("Expected default blend factor 0.1, got %g", cfg.Raycast.BlendFactor)
	}
	if !cfg.Raycast.Dither {
		t.Errorf("Expected dithering enabled by default")
	}
	if cfg.Display.ClipLow != 0 || cfg.Display.ClipHigh != 0 {
		t.Errorf("Expected default clip window [0,0], got [%g,%g]",
			cfg.Display.ClipLow, cfg.Display.ClipHigh)
	}
	if cfg.Display.Colormap != "grayscale" {
		t.Errorf("Expected default colormap grayscale, got %q", cfg.Display.Colormap)
	}
	if len(cfg.ClipPlanes) != 0 {
		t.Errorf("Expected no default clip planes, got %d", len(cfg.ClipPlanes))
	}
	if cfg.Output.Width != 512 || cfg.Output.Height != 512 {
		t.Errorf("Expected default output 512x512, got %dx%d",
			cfg.Output.Width, cfg.Output.Height)
	}
}

// TestLoadConfigMissingFile verifies that a missing file yields the defaults
// without error
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for a missing file, got error: %v", err)
	}
	if cfg.Raycast.TotalSteps != 200 {
		t.Errorf("Expected default configuration, got %d total steps", cfg.Raycast.TotalSteps)
	}
}

// TestSaveLoadRoundTrip verifies that a saved configuration loads back
// unchanged
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volcast.yaml")

	cfg := DefaultConfig()
	cfg.Raycast.TotalSteps = 300
	cfg.Raycast.StepsPerPass = 64
	cfg.Display.ClipLow = -0.5
	cfg.Display.ClipHigh = 0.25
	cfg.Display.InvertClip = true
	cfg.Display.Colormap = "hot"
	cfg.Display.NegColormap = "cool"
	cfg.ClipPlanes = []ClipPlane{{A: 1, D: -0.5}}
	cfg.Output.Width = 640
	cfg.Output.Height = 480

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Raycast.TotalSteps != 300 || loaded.Raycast.StepsPerPass != 64 {
		t.Errorf("Expected step budgets 300/64, got %d/%d",
			loaded.Raycast.TotalSteps, loaded.Raycast.StepsPerPass)
	}
	if loaded.Display.ClipLow != -0.5 || loaded.Display.ClipHigh != 0.25 || !loaded.Display.InvertClip {
		t.Errorf("Expected clip window [-0.5,0.25] inverted, got [%g,%g] invert=%v",
			loaded.Display.ClipLow, loaded.Display.ClipHigh, loaded.Display.InvertClip)
	}
	if loaded.Display.Colormap != "hot" || loaded.Display.NegColormap != "cool" {
		t.Errorf("Expected colormaps hot/cool, got %q/%q",
			loaded.Display.Colormap, loaded.Display.NegColormap)
	}
	if len(loaded.ClipPlanes) != 1 || loaded.ClipPlanes[0].A != 1 || loaded.ClipPlanes[0].D != -0.5 {
		t.Errorf("Expected clip plane x=0.5 to round-trip, got %+v", loaded.ClipPlanes)
	}
	if loaded.Output.Width != 640 || loaded.Output.Height != 480 {
		t.Errorf("Expected output 640x480, got %dx%d", loaded.Output.Width, loaded.Output.Height)
	}
}

// TestLoadConfigPartial verifies that fields absent from the file keep their
// defaults
func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	partial := "raycast:\n  totalSteps: 50\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Raycast.TotalSteps != 50 {
		t.Errorf("Expected overridden step budget 50, got %d", cfg.Raycast.TotalSteps)
	}
	if cfg.Raycast.BlendFactor != 0.1 {
		t.Errorf("Expected default blend factor to survive, got %g", cfg.Raycast.BlendFactor)
	}
	if cfg.Output.Width != 512 {
		t.Errorf("Expected default output width to survive, got %d", cfg.Output.Width)
	}
}

// TestLoadConfigInvalidYAML verifies that malformed files are reported
func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("raycast: [not: a: mapping"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("Expected malformed YAML to be rejected")
	}
}

// TestCreateDefaultConfigFile verifies the generated file loads back as the
// defaults
func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "default.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("Failed to create default config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}
	if cfg.Raycast.TotalSteps != 200 || cfg.Output.Width != 512 {
		t.Errorf("Expected generated file to hold the defaults")
	}
}
