package app

import (
	"fmt"
	"log"
	"math"
	"time"

	"smoothlife/internal/colormap"
	"smoothlife/internal/core"
	"smoothlife/internal/render"
	"smoothlife/internal/sims/smoothlife"
)

// Controller binds Settings to a running engine and pipeline. Every change
// goes through Settings.Validate before reaching the engine.
type Controller struct {
	settings     *Settings
	viewW, viewH int

	engine   *smoothlife.Engine
	pipeline *render.Pipeline
}

// NewController validates s and builds the engine and pipeline for the
// configured viewport.
func NewController(s *Settings, logger *log.Logger) (*Controller, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	engine, err := s.NewEngine(s.Width, s.Height, logger)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		settings: s,
		viewW:    s.Width,
		viewH:    s.Height,
		engine:   engine,
		pipeline: render.NewPipeline(engine, render.WithLogger(logger)),
	}
	c.applyDisplay()
	return c, nil
}

// Settings returns the live settings.
func (c *Controller) Settings() *Settings { return c.settings }

// Engine returns the simulation engine.
func (c *Controller) Engine() *smoothlife.Engine { return c.engine }

// Pipeline returns the render pipeline.
func (c *Controller) Pipeline() *render.Pipeline { return c.pipeline }

// Resize adopts a new viewport. The engine only rebuilds when the derived
// field size actually changes.
func (c *Controller) Resize(viewW, viewH int) error {
	if viewW == c.viewW && viewH == c.viewH {
		return nil
	}
	cfg := c.settings.EngineConfig(viewW, viewH)
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.viewW, c.viewH = viewW, viewH
	return c.engine.Configure(cfg)
}

// Reset reseeds the field deterministically from seed.
func (c *Controller) Reset(seed int64) {
	c.settings.Seed = seed
	c.engine.Reset(seed)
}

// ToggleVisible pauses or resumes ticking. Resuming scatters a fresh pattern.
func (c *Controller) ToggleVisible() {
	c.pipeline.SetVisible(!c.pipeline.Visible())
}

// ToggleSmooth switches between the discrete and smoothed rules.
func (c *Controller) ToggleSmooth() bool {
	return c.SetBoolParameter("smooth_timestepping", !c.settings.SmoothTimestepping)
}

// CyclePalette advances to the next registered palette.
func (c *Controller) CyclePalette() {
	names := colormap.Names()
	next := (paletteIndex(c.settings.Palette().Name()) + 1) % len(names)
	c.settings.ColorMap = names[next]
	c.applyDisplay()
}

func (c *Controller) applyDisplay() {
	c.pipeline.SetPalette(c.settings.Palette())
	c.pipeline.SetColorScaling(c.settings.ColorScaling)
	c.pipeline.SetScale(c.settings.Scale)
	c.pipeline.SetFrameDelay(c.settings.FrameDelay)
}

// update applies edit to a copy of the settings and commits it only if the
// result validates and the engine accepts it.
func (c *Controller) update(edit func(*Settings)) bool {
	next := *c.settings
	edit(&next)
	if next == *c.settings {
		return false
	}
	if err := next.Validate(); err != nil {
		return false
	}
	if err := c.engine.Configure(next.EngineConfig(c.viewW, c.viewH)); err != nil {
		return false
	}
	*c.settings = next
	c.applyDisplay()
	return true
}

// tune validates edit against the settings and hands the change to the
// engine's own setter, committing the settings only if the engine took it.
func (c *Controller) tune(edit func(*Settings), apply func(*smoothlife.Engine) bool) bool {
	next := *c.settings
	edit(&next)
	if next == *c.settings {
		return false
	}
	if err := next.Validate(); err != nil {
		return false
	}
	if !apply(c.engine) {
		return false
	}
	*c.settings = next
	return true
}

func (c *Controller) Parameters() core.ParameterSnapshot {
	return core.Merge(c.settings.Parameters(), c.engine.Parameters())
}

func (c *Controller) ParameterControls() []core.ParameterControl {
	return append(c.engine.ParameterControls(), []core.ParameterControl{
		{Key: "scale", Label: "Scale", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 16, HasMin: true, HasMax: true},
		{Key: "palette", Label: "Palette", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: float64(len(colormap.Names()) - 1), HasMin: true, HasMax: true},
		{Key: "color_scaling", Label: "Contrast", Type: core.ParamTypeInt, Step: 5, Min: 0, Max: 100, HasMin: true, HasMax: true},
		{Key: "frame_delay", Label: "Frame delay (ms)", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 2000, HasMin: true, HasMax: true},
	}...)
}

func (c *Controller) SetIntParameter(key string, value int) bool {
	switch key {
	case "inner_radius":
		return c.tune(func(s *Settings) { s.InnerRadius = value }, func(e *smoothlife.Engine) bool {
			return e.SetIntParameter(key, value)
		})
	case "scale":
		return c.update(func(s *Settings) { s.Scale = value })
	case "palette":
		names := colormap.Names()
		if value < 0 || value >= len(names) {
			return false
		}
		return c.update(func(s *Settings) { s.ColorMap = names[value] })
	case "color_scaling":
		return c.update(func(s *Settings) { s.ColorScaling = value })
	case "frame_delay":
		return c.update(func(s *Settings) { s.FrameDelay = time.Duration(value) * time.Millisecond })
	}
	return false
}

func (c *Controller) SetFloatParameter(key string, value float64) bool {
	if key != "timestep" || math.IsNaN(value) {
		return false
	}
	return c.tune(func(s *Settings) { s.Timestep = value }, func(e *smoothlife.Engine) bool {
		return e.SetFloatParameter(key, value)
	})
}

func (c *Controller) SetBoolParameter(key string, value bool) bool {
	if key != "smooth_timestepping" {
		return false
	}
	return c.tune(func(s *Settings) { s.SmoothTimestepping = value }, func(e *smoothlife.Engine) bool {
		return e.SetBoolParameter(key, value)
	})
}

// OverlayLines summarises the running state for the stats overlay.
func (c *Controller) OverlayLines() []string {
	size := c.engine.Size()
	stats := c.pipeline.Stats()
	state := "running"
	if !c.pipeline.Visible() {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("%s %dx%d (%s)", c.engine.Name(), size.W, size.H, state),
		fmt.Sprintf("fps %.1f  frame %v", stats.FPS, stats.Average.Round(time.Microsecond)),
		fmt.Sprintf("mass %.1f  stagnant %d", c.engine.Mass(), c.engine.Stagnation()),
		fmt.Sprintf("reseeds %d  rebuilds %d", c.engine.Reseeds(), c.engine.Rebuilds()),
		fmt.Sprintf("palette %s  contrast %d", c.pipeline.Palette().Name(), c.settings.ColorScaling),
	}
}
