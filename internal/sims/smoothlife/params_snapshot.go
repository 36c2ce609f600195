package smoothlife

import (
	"math"

	"smoothlife/internal/core"
)

func (e *Engine) Parameters() core.ParameterSnapshot {
	cfg := e.cfg
	th := e.rules.Thresholds()
	groups := []core.ParameterGroup{
		{
			Name: "Field",
			Params: []core.Parameter{
				core.IntParam("w", "Width", cfg.Width),
				core.IntParam("h", "Height", cfg.Height),
				core.IntParam("seed", "Seed", int(cfg.Seed)),
			},
		},
		{
			Name: "Kernel",
			Params: []core.Parameter{
				core.FloatParam("inner_radius", "Inner radius", cfg.InnerRadius),
				core.FloatParam("outer_radius", "Outer radius", cfg.OuterRadius),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				core.StringParam("variant", "Variant", cfg.Variant().String()),
				core.BoolParam("smooth_timestepping", "Smooth timestepping", cfg.Smooth),
				core.FloatParam("timestep", "Timestep", cfg.Timestep),
				core.IntParam("resolution", "Table resolution", e.rules.Resolution()),
				core.FloatParam("b1", "Birth low", th.B1),
				core.FloatParam("b2", "Birth high", th.B2),
				core.FloatParam("d1", "Survive low", th.D1),
				core.FloatParam("d2", "Survive high", th.D2),
			},
		},
		{
			Name: "Vitality",
			Params: []core.Parameter{
				core.FloatParam("mass", "Mass", e.mass),
				core.IntParam("stagnation", "Stagnant ticks", e.stagnant),
				core.IntParam("reseeds", "Reseeds", e.reseeds),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "inner_radius", Label: "Inner radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 64, HasMin: true, HasMax: true},
		{Key: "timestep", Label: "Timestep", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "smooth_timestepping", Label: "Smooth steps", Type: core.ParamTypeBool},
	}
}

// SetIntParameter adjusts the inner radius, keeping the outer radius at three
// times it. The change goes through Configure so kernels are rebuilt.
func (e *Engine) SetIntParameter(key string, value int) bool {
	if key != "inner_radius" || value <= 0 {
		return false
	}
	cfg := e.cfg
	cfg.InnerRadius = float64(value)
	cfg.OuterRadius = 3 * float64(value)
	if cfg.shape() == e.cfg.shape() {
		return false
	}
	return e.Configure(cfg) == nil
}

// SetFloatParameter updates the timestep without a rebuild. Negative values
// are only rejected while the smoothed rules are active.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	if key != "timestep" || math.IsNaN(value) {
		return false
	}
	if value == e.cfg.Timestep {
		return false
	}
	cfg := e.cfg
	cfg.Timestep = value
	return e.Configure(cfg) == nil
}

// SetBoolParameter switches between the discrete and smoothed rules, which
// rebuilds the rule table and reseeds the field.
func (e *Engine) SetBoolParameter(key string, value bool) bool {
	if key != "smooth_timestepping" || value == e.cfg.Smooth {
		return false
	}
	cfg := e.cfg
	cfg.Smooth = value
	return e.Configure(cfg) == nil
}
