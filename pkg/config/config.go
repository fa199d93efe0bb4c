// Package config provides configuration loading and management for volcast.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ClipPlane is the YAML form of a clip plane equation a*x+b*y+c*z+d = 0 in
// texture-coordinate space.
type ClipPlane struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
	D float64 `yaml:"d"`
}

// Config represents the application configuration loaded from YAML
type Config struct {
	// Raycast parameters
	Raycast struct {
		// TotalSteps is the full per-ray step budget
		TotalSteps int `yaml:"totalSteps"`

		// StepsPerPass bounds one pass; 0 renders in a single pass
		StepsPerPass int `yaml:"stepsPerPass"`

		// BlendFactor in (0,1] controls per-sample contribution
		BlendFactor float64 `yaml:"blendFactor"`

		// Dither jitters ray origins to hide step banding
		Dither bool `yaml:"dither"`

		// Workers is the number of goroutines tracing fragments
		// (0 = one per CPU core)
		Workers int `yaml:"workers"`
	} `yaml:"raycast"`

	// Display parameters: clip window and colour mapping
	Display struct {
		// ClipLow and ClipHigh bound the rejected value window in data units
		ClipLow  float64 `yaml:"clipLow"`
		ClipHigh float64 `yaml:"clipHigh"`

		// InvertClip rejects values outside the window instead of inside
		InvertClip bool `yaml:"invertClip"`

		// Colormap names the positive colour table (grayscale, hot, cool)
		Colormap string `yaml:"colormap"`

		// NegColormap, when non-empty, enables negative-domain colour
		// mapping through the named table
		NegColormap string `yaml:"negColormap"`

		// TexZero is the zero point of the sign test selecting the
		// negative table
		TexZero float64 `yaml:"texZero"`

		// ClobberAlpha forces the output alpha to ClobberValue
		ClobberAlpha bool    `yaml:"clobberAlpha"`
		ClobberValue float64 `yaml:"clobberValue"`
	} `yaml:"display"`

	// ClipPlanes holds up to 10 active clip planes
	ClipPlanes []ClipPlane `yaml:"clipPlanes"`

	// Output parameters
	Output struct {
		// Width and Height are the rendered image dimensions
		Width  int `yaml:"width"`
		Height int `yaml:"height"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default raycast parameters
	cfg.Raycast.TotalSteps = 200
	cfg.Raycast.StepsPerPass = 0
	cfg.Raycast.BlendFactor = 0.1
	cfg.Raycast.Dither = true
	cfg.Raycast.Workers = runtime.NumCPU()

	// Set default display parameters. The degenerate [0,0] clip window
	// rejects exactly the zero-valued background voxels.
	cfg.Display.ClipLow = 0
	cfg.Display.ClipHigh = 0
	cfg.Display.InvertClip = false
	cfg.Display.Colormap = "grayscale"
	cfg.Display.NegColormap = ""
	cfg.Display.TexZero = 0
	cfg.Display.ClobberAlpha = false
	cfg.Display.ClobberValue = 1.0

	// Set default output parameters
	cfg.Output.Width = 512
	cfg.Output.Height = 512
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
