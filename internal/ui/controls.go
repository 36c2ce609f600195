package ui

import (
	"math"
	"strconv"

	"smoothlife/internal/core"
)

// controlState caches the HUD view of one adjustable parameter.
type controlState struct {
	control core.ParameterControl
	label   string

	intValue   int
	floatValue float64
	boolValue  bool
	hasValue   bool
}

// refresh reads the control's current value from params.
func (s *controlState) refresh(params map[string]core.Parameter) {
	s.hasValue = false
	s.label = "--"
	param, ok := params[s.control.Key]
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		v, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		s.intValue, s.floatValue = v, float64(v)
		s.label = strconv.Itoa(v)
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		s.floatValue = v
		s.label = formatFloat(s.control, v)
	case core.ParamTypeBool:
		v, err := strconv.ParseBool(param.Value)
		if err != nil {
			return
		}
		s.boolValue = v
		s.label = "off"
		if v {
			s.label = "on"
		}
	default:
		return
	}
	s.hasValue = true
}

// nextInt returns the value one step in direction, clamped to the bounds, and
// whether that differs from value.
func nextInt(ctrl core.ParameterControl, value, direction int) (int, bool) {
	step := int(math.Round(ctrl.Step))
	if step <= 0 {
		step = 1
	}
	target := value + direction*step
	if ctrl.HasMin {
		target = max(target, int(math.Round(ctrl.Min)))
	}
	if ctrl.HasMax {
		target = min(target, int(math.Round(ctrl.Max)))
	}
	return target, target != value
}

// nextFloat is the float counterpart of nextInt.
func nextFloat(ctrl core.ParameterControl, value float64, direction int) (float64, bool) {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	target := ctrl.Clamp(value + float64(direction)*step)
	return target, math.Abs(target-value) >= 1e-9
}

// nextBool maps the minus button to off and the plus button to on.
func nextBool(value bool, direction int) (bool, bool) {
	target := direction > 0
	return target, target != value
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func paramIndex(snap core.ParameterSnapshot) map[string]core.Parameter {
	out := map[string]core.Parameter{}
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			out[p.Key] = p
		}
	}
	return out
}
