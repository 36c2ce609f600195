package app

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"smoothlife/internal/colormap"
	"smoothlife/internal/core"
	"smoothlife/internal/sims/smoothlife"
)

// ErrInvalidSetting reports a host setting outside its allowed range.
var ErrInvalidSetting = errors.New("app: invalid setting")

// Settings is the host configuration surface: everything the engine and the
// render pipeline are driven by.
type Settings struct {
	// Sim names the registered simulation the engine is built from.
	Sim string

	Scale              int
	InnerRadius        int
	Timestep           float64
	SmoothTimestepping bool
	ColorMap           string
	ColorScaling       int
	FrameDelay         time.Duration

	// Width and Height are the viewport in pixels; the field is the viewport
	// divided by Scale.
	Width  int
	Height int
	Seed   int64
	TPS    int
}

// NewSettings returns the default settings.
func NewSettings() *Settings {
	return &Settings{
		Sim:          "smoothlife",
		Scale:        4,
		InnerRadius:  7,
		Timestep:     0.2,
		ColorMap:     "viridis",
		ColorScaling: colormap.NeutralScaling,
		FrameDelay:   time.Second,
		Width:        640,
		Height:       480,
		Seed:         42,
		TPS:          60,
	}
}

// Bind attaches the settings to the provided FlagSet.
func (s *Settings) Bind(fs *flag.FlagSet) {
	fs.StringVar(&s.Sim, "sim", s.Sim, "simulation to run ("+strings.Join(core.SimNames(), ", ")+")")
	fs.IntVar(&s.Scale, "scale", s.Scale, "viewport pixels per field cell")
	fs.IntVar(&s.InnerRadius, "inner_radius", s.InnerRadius, "disc kernel radius; the annulus extends to three times it")
	fs.Float64Var(&s.Timestep, "timestep", s.Timestep, "integration step for smooth timestepping")
	fs.BoolVar(&s.SmoothTimestepping, "smooth_timestepping", s.SmoothTimestepping, "integrate towards the rule output instead of replacing the field")
	fs.StringVar(&s.ColorMap, "color_map_choice", s.ColorMap, "palette name")
	fs.IntVar(&s.ColorScaling, "color_scaling", s.ColorScaling, "contrast curve 0-100, 50 is neutral")
	fs.DurationVar(&s.FrameDelay, "frame_delay", s.FrameDelay, "pause between simulation ticks")
	fs.IntVar(&s.Width, "width", s.Width, "viewport width in pixels")
	fs.IntVar(&s.Height, "height", s.Height, "viewport height in pixels")
	fs.Int64Var(&s.Seed, "seed", s.Seed, "seed for field reseeding")
	fs.IntVar(&s.TPS, "tps", s.TPS, "host ticks per second")
}

// Validate rejects settings that must not reach the engine.
func (s *Settings) Validate() error {
	if _, ok := core.Sims()[s.Sim]; !ok {
		return fmt.Errorf("%w: unknown sim %q (have %s)", ErrInvalidSetting, s.Sim, strings.Join(core.SimNames(), ", "))
	}
	if s.Scale < 1 {
		return fmt.Errorf("%w: scale %d < 1", ErrInvalidSetting, s.Scale)
	}
	if s.ColorScaling < 0 || s.ColorScaling > 100 {
		return fmt.Errorf("%w: color_scaling %d outside 0-100", ErrInvalidSetting, s.ColorScaling)
	}
	if s.FrameDelay < 0 {
		return fmt.Errorf("%w: negative frame_delay %v", ErrInvalidSetting, s.FrameDelay)
	}
	if s.TPS < 1 {
		return fmt.Errorf("%w: tps %d < 1", ErrInvalidSetting, s.TPS)
	}
	return s.EngineConfig(s.Width, s.Height).Validate()
}

// FieldSize returns the field dimensions for a viewport.
func (s *Settings) FieldSize(viewW, viewH int) core.Size {
	scale := max(s.Scale, 1)
	return core.Size{W: viewW / scale, H: viewH / scale}
}

// EngineConfig derives the simulation configuration for a viewport.
func (s *Settings) EngineConfig(viewW, viewH int) smoothlife.Config {
	size := s.FieldSize(viewW, viewH)
	cfg := smoothlife.DefaultConfig()
	cfg.Width = size.W
	cfg.Height = size.H
	cfg.InnerRadius = float64(s.InnerRadius)
	cfg.OuterRadius = 3 * float64(s.InnerRadius)
	cfg.Smooth = s.SmoothTimestepping
	cfg.Timestep = s.Timestep
	cfg.Seed = s.Seed
	return cfg
}

// ConfigMap renders the engine settings for a viewport as the key/value map
// registered factories accept. smooth_timestepping is only set when enabled,
// so a sim name that implies the smoothed rules is not overridden.
func (s *Settings) ConfigMap(viewW, viewH int) map[string]string {
	size := s.FieldSize(viewW, viewH)
	m := map[string]string{
		"w":            strconv.Itoa(size.W),
		"h":            strconv.Itoa(size.H),
		"inner_radius": strconv.Itoa(s.InnerRadius),
		"timestep":     strconv.FormatFloat(s.Timestep, 'g', -1, 64),
		"seed":         strconv.FormatInt(s.Seed, 10),
	}
	if s.SmoothTimestepping {
		m["smooth_timestepping"] = "true"
	}
	return m
}

// NewEngine builds the configured sim through the registry and sizes it for
// the viewport. The variant the sim selected is written back to s.
func (s *Settings) NewEngine(viewW, viewH int, logger *log.Logger) (*smoothlife.Engine, error) {
	factory, ok := core.Sims()[s.Sim]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sim %q", ErrInvalidSetting, s.Sim)
	}
	sim, err := factory(s.ConfigMap(viewW, viewH))
	if err != nil {
		return nil, err
	}
	engine, ok := sim.(*smoothlife.Engine)
	if !ok {
		return nil, fmt.Errorf("%w: sim %q does not run on the smoothlife engine", ErrInvalidSetting, s.Sim)
	}
	engine.SetLogger(logger)
	s.SmoothTimestepping = engine.Config().Smooth
	return engine, nil
}

// Palette resolves the configured palette, falling back to the default.
func (s *Settings) Palette() *colormap.Palette { return colormap.Lookup(s.ColorMap) }

func (s *Settings) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Display",
			Params: []core.Parameter{
				core.IntParam("scale", "Scale", s.Scale),
				core.StringParam("color_map_choice", "Palette", s.Palette().Name()),
				core.IntParam("palette", "Palette index", paletteIndex(s.Palette().Name())),
				core.IntParam("color_scaling", "Contrast", s.ColorScaling),
				core.IntParam("frame_delay", "Frame delay (ms)", int(s.FrameDelay/time.Millisecond)),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				core.IntParam("inner_radius", "Inner radius", s.InnerRadius),
				core.BoolParam("smooth_timestepping", "Smooth timestepping", s.SmoothTimestepping),
				core.FloatParam("timestep", "Timestep", s.Timestep),
				{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(s.Seed, 10)},
			},
		},
	}}
}

func paletteIndex(name string) int {
	for i, n := range colormap.Names() {
		if n == name {
			return i
		}
	}
	return 0
}
