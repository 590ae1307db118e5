// Package config loads the gradientfollow settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/additionsdigital/gradientfollow/pkg/render"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file looked up when none is given, relative to
// the working directory.
const DefaultPath = "gradientfollow.yaml"

// Config holds the settings shared by every command.
type Config struct {
	FPS              int    `yaml:"fps"`
	Background       string `yaml:"background"` // "R,G,B"
	TransitionMillis int    `yaml:"transition_ms"`
	RadialSegments   int    `yaml:"radial_segments"`
	LogFile          string `yaml:"log_file"` // Empty disables logging
	ShowHUD          bool   `yaml:"show_hud"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FPS:              60,
		Background:       "255,255,255",
		TransitionMillis: 300,
		RadialSegments:   32,
		LogFile:          "logs/gradientfollow.log",
	}
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps %d out of range [1, 240]", c.FPS))
	}
	if c.TransitionMillis < 1 {
		errs = append(errs, fmt.Errorf("transition_ms %d must be positive", c.TransitionMillis))
	}
	if c.RadialSegments < 3 {
		errs = append(errs, fmt.Errorf("radial_segments %d must be at least 3", c.RadialSegments))
	}
	if _, err := c.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Transition returns the transition pass duration.
func (c Config) Transition() time.Duration {
	return time.Duration(c.TransitionMillis) * time.Millisecond
}

// BackgroundColor parses Background.
func (c Config) BackgroundColor() (render.Color, error) {
	return ParseColor(c.Background)
}

// ParseColor parses an "R,G,B" triple of 0-255 components.
func ParseColor(s string) (render.Color, error) {
	var r, g, b int
	if n, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil || n != 3 {
		return render.Color{}, fmt.Errorf("background %q: want R,G,B", s)
	}
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return render.Color{}, fmt.Errorf("background %q: component %d out of range", s, v)
		}
	}
	return render.RGB(uint8(r), uint8(g), uint8(b)), nil
}
