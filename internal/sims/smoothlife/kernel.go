package smoothlife

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"smoothlife/internal/spectral"
)

// Multipliers holds the frequency-domain disc and annulus kernels for one
// field geometry. They are immutable once built.
type Multipliers struct {
	Width, Height int
	InnerRadius   float64
	OuterRadius   float64

	// Inner averages the disc of InnerRadius; Outer averages the annulus
	// between InnerRadius and OuterRadius.
	Inner []complex128
	Outer []complex128
}

// NewMultipliers builds both masks and transforms them once with plan.
func NewMultipliers(plan *spectral.Plan, innerRadius, outerRadius float64) *Multipliers {
	w, h := plan.Dims()
	inner, outer := radialMasks(w, h, innerRadius, outerRadius)
	return &Multipliers{
		Width:       w,
		Height:      h,
		InnerRadius: innerRadius,
		OuterRadius: outerRadius,
		Inner:       plan.Forward(nil, inner),
		Outer:       plan.Forward(nil, outer),
	}
}

// radialMasks returns the normalized disc and annulus masks, each summing to 1.
func radialMasks(w, h int, innerRadius, outerRadius float64) ([]float64, []float64) {
	disc := logisticDisc(w, h, innerRadius)
	ring := logisticDisc(w, h, outerRadius)
	discSum := floats.Sum(disc)
	ringSum := floats.Sum(ring)

	inner := append([]float64(nil), disc...)
	floats.Scale(1/discSum, inner)

	outer := make([]float64, len(ring))
	floats.SubTo(outer, ring, disc)
	floats.Scale(1/(ringSum-discSum), outer)
	return inner, outer
}

// logisticDisc evaluates a soft-edged disc centred on cell (0,0). Distances use
// the minimum image so the disc wraps around the torus, and the edge sharpens
// with log2 of the smaller field dimension.
func logisticDisc(w, h int, radius float64) []float64 {
	grid := make([]float64, w*h)
	sharpness := math.Log2(float64(min(w, h)))
	for r := 0; r < h; r++ {
		dy := float64((r+h/2)%h - h/2)
		for c := 0; c < w; c++ {
			dx := float64((c+w/2)%w - w/2)
			dist := math.Hypot(dx, dy)
			grid[r*w+c] = 1 / (1 + math.Exp(sharpness*(dist-radius)))
		}
	}
	return grid
}
