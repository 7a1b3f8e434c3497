// Package config handles tiletool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tilebleed/internal/logger"
	"github.com/Faultbox/tilebleed/internal/terrain"
	"github.com/Faultbox/tilebleed/pkg/math"
)

// DefaultField is the weight field commands operate on unless told otherwise.
const DefaultField = "Group"

// ErrInvalid reports a configuration value outside its allowed range.
var ErrInvalid = errors.New("invalid config")

// Config holds all tool settings.
type Config struct {
	Bleed   BleedConfig   `yaml:"bleed"`
	Splat   SplatConfig   `yaml:"splat"`
	Grade   GradeConfig   `yaml:"grade"`
	Strip   StripConfig   `yaml:"strip"`
	Logging LoggingConfig `yaml:"logging"`
}

// BleedConfig holds cross-tile bleed settings.
type BleedConfig struct {
	Field string `yaml:"field"`
	// Seed drives trail lengths. 0 picks a time-based seed.
	Seed             int64   `yaml:"seed"`
	Order            string  `yaml:"order"`
	RestrictToBorder bool    `yaml:"restrict_to_border"`
	Decay            float64 `yaml:"decay"`
	TrailTarget      float64 `yaml:"trail_target"`
	TrailBlend       float64 `yaml:"trail_blend"`
}

// SplatConfig holds random circle seeding settings.
type SplatConfig struct {
	Field     string  `yaml:"field"`
	Seed      int64   `yaml:"seed"`
	Count     int     `yaml:"count"`
	Radius    float64 `yaml:"radius"`
	Falloff   float64 `yaml:"falloff"`
	MaxHeight float64 `yaml:"max_height"`
}

// GradeConfig holds edge-loop grading settings.
type GradeConfig struct {
	Field    string  `yaml:"field"`
	Step     float64 `yaml:"step"`
	MaxSteps int     `yaml:"max_steps"`
}

// StripConfig holds border strip settings.
type StripConfig struct {
	Field string `yaml:"field"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the standard values.
func Default() *Config {
	b := terrain.DefaultBleedOptions()
	s := terrain.DefaultSplatOptions()
	g := terrain.DefaultGradeOptions()
	return &Config{
		Bleed: BleedConfig{
			Field:       DefaultField,
			Order:       string(b.Order),
			Decay:       b.Decay,
			TrailTarget: b.TrailTarget,
			TrailBlend:  b.TrailBlend,
		},
		Splat: SplatConfig{
			Field:     DefaultField,
			Count:     s.Count,
			Radius:    s.Radius,
			Falloff:   s.Falloff,
			MaxHeight: s.MaxHeight,
		},
		Grade: GradeConfig{
			Field:    DefaultField,
			Step:     g.Step,
			MaxSteps: g.MaxSteps,
		},
		Strip: StripConfig{
			Field: "center",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	switch terrain.Order(c.Bleed.Order) {
	case terrain.OrderInput, terrain.OrderLeftToRight:
	default:
		return fmt.Errorf("%w: bleed.order %q", ErrInvalid, c.Bleed.Order)
	}
	for name, v := range map[string]float64{
		"bleed.decay":        c.Bleed.Decay,
		"bleed.trail_target": c.Bleed.TrailTarget,
		"bleed.trail_blend":  c.Bleed.TrailBlend,
		"splat.radius":       c.Splat.Radius,
		"splat.falloff":      c.Splat.Falloff,
		"splat.max_height":   c.Splat.MaxHeight,
		"grade.step":         c.Grade.Step,
	} {
		if !math.IsFinite(v) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalid, name)
		}
	}
	if c.Bleed.Decay < 0 {
		return fmt.Errorf("%w: bleed.decay must not be negative", ErrInvalid)
	}
	if c.Splat.Count < 0 {
		return fmt.Errorf("%w: splat.count must not be negative", ErrInvalid)
	}
	if c.Splat.Radius <= 0 || c.Splat.Falloff <= 0 {
		return fmt.Errorf("%w: splat.radius and splat.falloff must be positive", ErrInvalid)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalid, err)
	}
	for name, f := range map[string]string{
		"bleed.field": c.Bleed.Field,
		"splat.field": c.Splat.Field,
		"grade.field": c.Grade.Field,
		"strip.field": c.Strip.Field,
	} {
		if f == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalid, name)
		}
	}
	return nil
}

// BleedOptions converts the bleed section to terrain options.
func (c BleedConfig) BleedOptions() terrain.BleedOptions {
	return terrain.BleedOptions{
		Order:            terrain.Order(c.Order),
		RestrictToBorder: c.RestrictToBorder,
		Decay:            c.Decay,
		TrailTarget:      c.TrailTarget,
		TrailBlend:       c.TrailBlend,
	}
}

// SplatOptions converts the splat section to terrain options.
func (c SplatConfig) SplatOptions() terrain.SplatOptions {
	return terrain.SplatOptions{
		Count:     c.Count,
		Radius:    c.Radius,
		Falloff:   c.Falloff,
		MaxHeight: c.MaxHeight,
	}
}

// GradeOptions converts the grade section to terrain options.
func (c GradeConfig) GradeOptions() terrain.GradeOptions {
	return terrain.GradeOptions{Step: c.Step, MaxSteps: c.MaxSteps}
}
