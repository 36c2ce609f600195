package smoothlife

import "math"

// DefaultResolution is the side of the rule lookup table.
const DefaultResolution = 512

// Variant enumerates the local update rules.
type Variant uint8

const (
	// Discrete replaces every cell with the rule output each tick.
	Discrete Variant = iota
	// SmoothTimestep integrates towards the rule output with an explicit Euler
	// step of size dt and clamps the result to [0,1].
	SmoothTimestep
)

func (v Variant) String() string {
	switch v {
	case Discrete:
		return "discrete"
	case SmoothTimestep:
		return "smooth"
	default:
		return "unknown"
	}
}

// Thresholds holds the birth/death intervals and transition widths of a rule.
// N is the width of the neighbourhood step, M the width of the alive step.
type Thresholds struct {
	B1, B2 float64
	D1, D2 float64
	N, M   float64
}

// DefaultThresholds returns the constants tuned for each variant.
func DefaultThresholds(v Variant) Thresholds {
	if v == SmoothTimestep {
		return Thresholds{B1: 0.254, B2: 0.340, D1: 0.312, D2: 0.518, N: 0.028, M: 0.147}
	}
	return Thresholds{B1: 0.278, B2: 0.365, D1: 0.267, D2: 0.445, N: 0.028, M: 0.147}
}

// transition returns the closed-form s(n, m) for the variant, where n is the
// annulus density and m the disc density.
func (t Thresholds) transition(v Variant) func(n, m float64) float64 {
	if v == SmoothTimestep {
		return func(n, m float64) float64 {
			return pick(t.window(n, t.B1, t.D1), t.window(n, t.B2, t.D2), m)
		}
	}
	return func(n, m float64) float64 {
		alive := logistic(m, 0.5, t.M)
		return logistic(n, lerp(t.B1, t.D1, alive), t.N) * (1 - logistic(n, lerp(t.B2, t.D2, alive), t.N))
	}
}

// window is the piecewise-linear counterpart of the logistic band used by the
// smoothed rules.
func (t Thresholds) window(x, a, b float64) float64 {
	return ramp(x, a, t.N) * (1 - ramp(x, b, t.N))
}

func logistic(x, a, alpha float64) float64 {
	return 1 / (1 + math.Exp(-4/alpha*(x-a)))
}

func ramp(x, a, width float64) float64 {
	return min(max((x-a)/width+0.5, 0), 1)
}

// pick selects a when the alive indicator m is at most one half, b otherwise.
func pick(a, b, m float64) float64 {
	if m > 0.5 {
		return b
	}
	return a
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// RuleTable is a precomputed grid of rule outputs indexed by quantized
// (n, m) densities. It is immutable after construction.
type RuleTable struct {
	variant    Variant
	thresholds Thresholds
	res        int
	lookup     []float64
	lo, hi     float64
}

// NewRuleTable precalculates the table for the variant's default thresholds.
func NewRuleTable(v Variant, resolution int) *RuleTable {
	return NewRuleTableWith(v, DefaultThresholds(v), resolution)
}

// NewRuleTableWith precalculates the table for custom thresholds.
func NewRuleTableWith(v Variant, t Thresholds, resolution int) *RuleTable {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	rt := &RuleTable{variant: v, thresholds: t, res: resolution}
	rt.lookup = precalculate(resolution, t.transition(v))
	rt.lo, rt.hi = math.Inf(1), math.Inf(-1)
	for _, s := range rt.lookup {
		rt.lo = min(rt.lo, s)
		rt.hi = max(rt.hi, s)
	}
	return rt
}

// precalculate fills lookup[n*res+m] = s(n/res, m/res).
func precalculate(res int, s func(n, m float64) float64) []float64 {
	lookup := make([]float64, res*res)
	scale := float64(res)
	for n := 0; n < res; n++ {
		for m := 0; m < res; m++ {
			lookup[n*res+m] = s(float64(n)/scale, float64(m)/scale)
		}
	}
	return lookup
}

// quantize rounds v*res to the nearest index and clamps it to the table. NaN
// lands on index 0.
func quantize(v float64, res int) int {
	f := v*float64(res) + 0.5
	if !(f >= 1) {
		return 0
	}
	if f >= float64(res) {
		return res - 1
	}
	return int(f)
}

// Variant reports which rule the table encodes.
func (rt *RuleTable) Variant() Variant { return rt.variant }

// Thresholds reports the constants the table was built from.
func (rt *RuleTable) Thresholds() Thresholds { return rt.thresholds }

// Resolution reports the table side length.
func (rt *RuleTable) Resolution() int { return rt.res }

// Range reports the smallest and largest precomputed outputs.
func (rt *RuleTable) Range() (float64, float64) { return rt.lo, rt.hi }

// Lookup returns the table entry for the densities (n, m).
func (rt *RuleTable) Lookup(n, m float64) float64 {
	return rt.lookup[quantize(n, rt.res)*rt.res+quantize(m, rt.res)]
}

// Evaluate updates field in place from the annulus densities n and disc
// densities m. The discrete variant ignores dt.
func (rt *RuleTable) Evaluate(n, m []float64, dt float64, field []float64) {
	if rt.variant == SmoothTimestep {
		for i := range field {
			f := field[i]
			field[i] = min(max(f+dt*(rt.Lookup(n[i], m[i])-f), 0), 1)
		}
		return
	}
	for i := range field {
		field[i] = rt.Lookup(n[i], m[i])
	}
}
