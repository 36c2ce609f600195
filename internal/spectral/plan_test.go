package spectral

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestRoundTripScalesBySize(t *testing.T) {
	for _, dims := range [][2]int{{8, 8}, {12, 5}, {7, 9}, {2, 3}} {
		w, h := dims[0], dims[1]
		p := NewPlan(w, h)
		rng := rand.New(rand.NewPCG(uint64(w), uint64(h)))
		src := make([]float64, w*h)
		for i := range src {
			src[i] = rng.Float64()
		}
		orig := append([]float64(nil), src...)

		spec := p.Forward(nil, src)
		for i := range src {
			if src[i] != orig[i] {
				t.Fatalf("%dx%d: forward modified its input at %d", w, h, i)
			}
		}
		out := p.Inverse(nil, spec)
		n := float64(p.Len())
		for i := range out {
			if got := out[i] / n; math.Abs(got-orig[i]) > 1e-9 {
				t.Fatalf("%dx%d: round trip mismatch at %d: got %f want %f", w, h, i, got, orig[i])
			}
		}
	}
}

func TestConvolutionWithShiftedImpulse(t *testing.T) {
	const w, h = 6, 4
	p := NewPlan(w, h)

	field := make([]float64, w*h)
	field[1*w+2] = 1
	field[3*w+5] = 2

	// Kernel with a single unit at (1, 1) shifts the field by one cell in both
	// directions, wrapping at the edges.
	kernel := make([]float64, w*h)
	kernel[1*w+1] = 1

	fs := p.Forward(nil, field)
	ks := p.Forward(nil, kernel)
	prod := p.NewSpectrum()
	MulScaled(prod, fs, ks, 1/float64(p.Len()))
	out := p.Inverse(nil, prod)

	want := make([]float64, w*h)
	want[2*w+3] = 1
	want[0*w+0] = 2
	for i := range out {
		if math.Abs(out[i]-want[i]) > 1e-9 {
			t.Fatalf("cell %d: got %f want %f", i, out[i], want[i])
		}
	}
}

func TestSpectrumLayout(t *testing.T) {
	p := NewPlan(9, 4)
	if got := p.SpectrumLen(); got != 4*5 {
		t.Fatalf("SpectrumLen = %d, want 20", got)
	}
	w, h := p.Dims()
	if w != 9 || h != 4 {
		t.Fatalf("Dims = %dx%d", w, h)
	}
}
