package smoothlife

import (
	"fmt"
	"strconv"
)

// Config controls the field geometry, kernel radii and rule variant.
type Config struct {
	Width  int
	Height int

	InnerRadius float64
	OuterRadius float64

	// Smooth selects the smoothed-integration rules. When false Timestep is
	// ignored and every tick fully replaces the field.
	Smooth   bool
	Timestep float64

	// Resolution is the side length of the precomputed rule table.
	Resolution int

	Seed int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       128,
		Height:      128,
		InnerRadius: 7,
		OuterRadius: 21,
		Timestep:    0.2,
		Resolution:  DefaultResolution,
		Seed:        1337,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Setting inner_radius without outer_radius derives the outer radius as three
// times the inner one.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["inner_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.InnerRadius = parsed
			c.OuterRadius = 3 * parsed
		}
	}
	if v, ok := cfg["outer_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > c.InnerRadius {
			c.OuterRadius = parsed
		}
	}
	if v, ok := cfg["smooth_timestepping"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Smooth = parsed
		}
	}
	if v, ok := cfg["timestep"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Timestep = parsed
		}
	}
	if v, ok := cfg["resolution"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Resolution = parsed
		}
	}
	return c
}

// Variant returns the rule variant the config selects.
func (c Config) Variant() Variant {
	if c.Smooth {
		return SmoothTimestep
	}
	return Discrete
}

// Validate rejects configurations the engine cannot run.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: field %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if !(c.InnerRadius > 0) || !(c.OuterRadius > c.InnerRadius) {
		return fmt.Errorf("%w: radii must satisfy 0 < inner < outer, got %g/%g", ErrInvalidDimensions, c.InnerRadius, c.OuterRadius)
	}
	if c.Smooth && c.Timestep < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidTimestep, c.Timestep)
	}
	return nil
}

// shape is the part of a config whose change forces kernels and rules to be
// rebuilt.
type shape struct {
	w, h       int
	inner      float64
	outer      float64
	variant    Variant
	resolution int
}

func (c Config) shape() shape {
	res := c.Resolution
	if res <= 0 {
		res = DefaultResolution
	}
	return shape{w: c.Width, h: c.Height, inner: c.InnerRadius, outer: c.OuterRadius, variant: c.Variant(), resolution: res}
}
