package colormap

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestBuildRejectsMalformedStops(t *testing.T) {
	red, blue := NewARGB(255, 0, 0), NewARGB(0, 0, 255)
	cases := map[string][]Stop{
		"empty":          nil,
		"not from zero":  {{Pos: 0.1, Color: red}, {Pos: 1, Color: blue}},
		"not to one":     {{Pos: 0, Color: red}, {Pos: 0.9, Color: blue}},
		"non increasing": {{Pos: 0, Color: red}, {Pos: 0.5, Color: blue}, {Pos: 0.5, Color: red}, {Pos: 1, Color: blue}},
		"decreasing":     {{Pos: 0, Color: red}, {Pos: 0.7, Color: blue}, {Pos: 0.3, Color: red}, {Pos: 1, Color: blue}},
		"nan position":   {{Pos: 0, Color: red}, {Pos: math.NaN(), Color: blue}, {Pos: 1, Color: red}},
	}
	for name, stops := range cases {
		if _, err := Build(stops, black, gray); !errors.Is(err, ErrInvalidPalette) {
			t.Fatalf("%s: expected ErrInvalidPalette, got %v", name, err)
		}
	}
}

func TestGetEdges(t *testing.T) {
	for _, name := range Names() {
		p := Lookup(name)
		stops := p.Stops()
		first, last := stops[0].Color, stops[len(stops)-1].Color
		for _, get := range []func(float64) ARGB{p.Get, p.GetFast} {
			if got := get(0); got != first {
				t.Fatalf("%s: get(0) = %#x, want %#x", name, got, first)
			}
			if got := get(1); got != last {
				t.Fatalf("%s: get(1) = %#x, want %#x", name, got, last)
			}
			if got := get(math.NaN()); got != p.NotApplicable() {
				t.Fatalf("%s: get(NaN) = %#x, want not-applicable %#x", name, got, p.NotApplicable())
			}
			if get(-5) != get(0) || get(5) != get(1) {
				t.Fatalf("%s: out of range values must clamp to the end stops", name)
			}
		}
	}
}

func TestSingleStopIsConstant(t *testing.T) {
	c := NewARGB(12, 34, 56)
	p, err := Build([]Stop{{Pos: 0.3, Color: c}}, black, gray)
	if err != nil {
		t.Fatalf("single stop palette should build: %v", err)
	}
	for _, v := range []float64{-1, 0, 0.25, 0.3, 0.99, 1, 7, math.Inf(1), math.Inf(-1)} {
		if got := p.Get(v); got != c {
			t.Fatalf("Get(%f) = %#x, want %#x", v, got, c)
		}
		if got := p.GetFast(v); got != c {
			t.Fatalf("GetFast(%f) = %#x, want %#x", v, got, c)
		}
	}
}

func TestGetFastAgreesOnUniformPalettes(t *testing.T) {
	for _, name := range Names() {
		p := Lookup(name)
		for _, s := range p.Stops() {
			if a, b := p.Get(s.Pos), p.GetFast(s.Pos); a != b || a != s.Color {
				t.Fatalf("%s: at stop %f Get=%#x GetFast=%#x want %#x", name, s.Pos, a, b, s.Color)
			}
		}
		for i := 1; i < 1000; i++ {
			v := float64(i) / 1000
			_, r1, g1, b1 := p.Get(v).Channels()
			_, r2, g2, b2 := p.GetFast(v).Channels()
			if absDiff(r1, r2) > 1 || absDiff(g1, g2) > 1 || absDiff(b1, b2) > 1 {
				t.Fatalf("%s: Get and GetFast diverge at %f", name, v)
			}
		}
	}
}

func TestGetFastApproximatesUnevenPalette(t *testing.T) {
	black, white := NewARGB(0, 0, 0), NewARGB(255, 255, 255)
	p, err := Build([]Stop{{0, black}, {0.9, white}, {1, white}}, black, black)
	if err != nil {
		t.Fatal(err)
	}
	// Only the searched lookup honours the uneven stop at 0.9.
	if got := p.Get(0.6); got != NewARGB(170, 170, 170) {
		t.Fatalf("Get(0.6) = %#x", got)
	}
	if got := p.GetFast(0.6); got != white {
		t.Fatalf("GetFast(0.6) = %#x, expected the approximate bracket to give white", got)
	}
}

func TestJetMidpointInterpolates(t *testing.T) {
	p := Lookup("jet")
	stops := p.Stops()
	lo, hi := stops[4], stops[5]
	_, rl, gl, bl := lo.Color.Channels()
	_, rh, gh, bh := hi.Color.Channels()

	mid := p.Get(0.5)
	a, r, g, b := mid.Channels()
	if a != 0xff {
		t.Fatalf("interpolated color must be opaque, alpha %d", a)
	}
	if !(r > rl && r < rh) || !(b < bl && b > bh) {
		t.Fatalf("get(0.5) = %#x not strictly between %#x and %#x", mid, lo.Color, hi.Color)
	}
	if g != gl || g != gh {
		t.Fatalf("green should stay at %d, got %d", gl, g)
	}

	// Channel-wise monotonic in theta between the two stops.
	var prevR, prevB uint8 = rl, bl
	for i := 1; i <= 16; i++ {
		v := lo.Pos + (hi.Pos-lo.Pos)*float64(i)/16
		_, r, _, b := p.Get(v).Channels()
		if r < prevR || b > prevB {
			t.Fatalf("non-monotonic interpolation at %f", v)
		}
		prevR, prevB = r, b
	}
}

func TestLookupFallsBackToJet(t *testing.T) {
	if Lookup("does-not-exist") != Default() {
		t.Fatal("unknown names should resolve to the default palette")
	}
	if Lookup(" Viridis ").Name() != "viridis" {
		t.Fatal("lookup should be case and space insensitive")
	}
	if Default().Name() != DefaultName {
		t.Fatalf("default palette is %q", Default().Name())
	}
	for _, name := range []string{
		"jet", "cube-helix", "parula", "seismic", "gray", "viridis", "magma",
		"inferno", "plasma", "twilight", "turbo", "rainbow", "better rainbow",
	} {
		if got := Lookup(name).Name(); got != name {
			t.Fatalf("Lookup(%q) resolved to %q", name, got)
		}
	}
	if got := Lookup("Better Rainbow").Name(); got != "better rainbow" {
		t.Fatalf("multi-word names should resolve case-insensitively, got %q", got)
	}
	if n := len(Names()); n != 13 {
		t.Fatalf("expected 13 palettes, got %d", n)
	}
}

func TestCyclicPaletteWrapsToItsStart(t *testing.T) {
	p := Lookup("twilight")
	if p.Get(0) != p.Get(1) {
		t.Fatalf("twilight ends differ: %#x vs %#x", p.Get(0), p.Get(1))
	}
}

func TestARGBImplementsColor(t *testing.T) {
	var c color.Color = NewARGB(255, 128, 0)
	r, g, b, a := c.RGBA()
	if r != 0xffff || g != 0x8080 || b != 0 || a != 0xffff {
		t.Fatalf("RGBA() = %#x %#x %#x %#x", r, g, b, a)
	}
	if Hex("#ff8000") != NewARGB(255, 128, 0) {
		t.Fatal("Hex parse mismatch")
	}
	if Hex("nonsense") != NewARGB(0, 0, 0) {
		t.Fatal("malformed hex should yield black")
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
