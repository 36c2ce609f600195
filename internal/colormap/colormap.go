// Package colormap maps scalar field values in [0,1] to display colors through
// linear interpolation between ordered color stops.
package colormap

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidPalette reports a malformed stop list.
var ErrInvalidPalette = errors.New("colormap: invalid palette")

// ARGB is a packed 32-bit color, alpha in the top byte.
type ARGB uint32

// NewARGB packs an opaque color.
func NewARGB(r, g, b uint8) ARGB {
	return ARGB(0xff<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromFloats packs an opaque color from channel intensities in [0,1].
func FromFloats(r, g, b float64) ARGB {
	return NewARGB(unitByte(r), unitByte(g), unitByte(b))
}

// Hex parses "#rrggbb" into an opaque color. Malformed input yields black.
func Hex(s string) ARGB {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return NewARGB(0, 0, 0)
	}
	return NewARGB(r, g, b)
}

// Channels unpacks the color.
func (c ARGB) Channels() (a, r, g, b uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements color.Color.
func (c ARGB) RGBA() (r, g, b, a uint32) {
	ca, cr, cg, cb := c.Channels()
	a = uint32(ca) * 0x101
	r = uint32(cr) * 0x101 * a / 0xffff
	g = uint32(cg) * 0x101 * a / 0xffff
	b = uint32(cb) * 0x101 * a / 0xffff
	return r, g, b, a
}

// Stop anchors a color at a position in [0,1].
type Stop struct {
	Pos   float64
	Color ARGB
}

// Palette is an immutable lookup table built from ordered stops plus two
// sentinel colors.
type Palette struct {
	name          string
	pos           []float64
	colors        []ARGB
	missing       ARGB
	notApplicable ARGB
}

// Build validates stops and returns a palette. Positions must increase
// strictly from exactly 0 to exactly 1, except that a single stop describes a
// constant palette regardless of its position.
func Build(stops []Stop, missing, notApplicable ARGB) (*Palette, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: no stops", ErrInvalidPalette)
	}
	p := &Palette{
		pos:           make([]float64, len(stops)),
		colors:        make([]ARGB, len(stops)),
		missing:       missing,
		notApplicable: notApplicable,
	}
	for i, s := range stops {
		p.pos[i] = s.Pos
		p.colors[i] = s.Color
	}
	if len(stops) == 1 {
		return p, nil
	}
	if p.pos[0] != 0 || p.pos[len(p.pos)-1] != 1 {
		return nil, fmt.Errorf("%w: stops must span [0,1], got [%g,%g]", ErrInvalidPalette, p.pos[0], p.pos[len(p.pos)-1])
	}
	for i := 1; i < len(p.pos); i++ {
		if !(p.pos[i] > p.pos[i-1]) {
			return nil, fmt.Errorf("%w: stop %d at %g does not follow %g", ErrInvalidPalette, i, p.pos[i], p.pos[i-1])
		}
	}
	return p, nil
}

// Uniform builds a palette with colors spaced evenly over [0,1].
func Uniform(colors []ARGB, missing, notApplicable ARGB) (*Palette, error) {
	stops := make([]Stop, len(colors))
	for i, c := range colors {
		stops[i] = Stop{Color: c}
		if len(colors) > 1 {
			stops[i].Pos = float64(i) / float64(len(colors)-1)
		}
	}
	return Build(stops, missing, notApplicable)
}

// Name returns the registry name, empty for ad-hoc palettes.
func (p *Palette) Name() string { return p.name }

// Len returns the number of stops.
func (p *Palette) Len() int { return len(p.colors) }

// Stops returns a copy of the stop list.
func (p *Palette) Stops() []Stop {
	out := make([]Stop, len(p.colors))
	for i := range out {
		out[i] = Stop{Pos: p.pos[i], Color: p.colors[i]}
	}
	return out
}

// Missing returns the color reserved for missing values.
func (p *Palette) Missing() ARGB { return p.missing }

// NotApplicable returns the color used for NaN.
func (p *Palette) NotApplicable() ARGB { return p.notApplicable }

// Get returns the color for v, locating the bracketing stops by binary search.
// NaN maps to the not-applicable color; values outside (0,1) clamp to the end
// stops.
func (p *Palette) Get(v float64) ARGB {
	if c, ok := p.edge(v); ok {
		return c
	}
	i := sort.SearchFloat64s(p.pos, v)
	if p.pos[i] == v {
		return p.colors[i]
	}
	theta := (v - p.pos[i-1]) / (p.pos[i] - p.pos[i-1])
	return lerp(p.colors[i-1], p.colors[i], theta)
}

// GetFast is Get with the bracketing index computed as floor(v*(n-1)) instead
// of searched. It is exact only when stops are evenly spaced; for uneven
// palettes the result is an approximation.
func (p *Palette) GetFast(v float64) ARGB {
	if c, ok := p.edge(v); ok {
		return c
	}
	n := len(p.colors)
	i := int(v * float64(n-1))
	if i >= n-1 {
		return p.colors[n-1]
	}
	theta := (v - p.pos[i]) / (p.pos[i+1] - p.pos[i])
	return lerp(p.colors[i], p.colors[i+1], theta)
}

func (p *Palette) edge(v float64) (ARGB, bool) {
	switch {
	case math.IsNaN(v):
		return p.notApplicable, true
	case v <= 0 || len(p.colors) == 1:
		return p.colors[0], true
	case v >= 1:
		return p.colors[len(p.colors)-1], true
	}
	return 0, false
}

func lerp(c1, c2 ARGB, theta float64) ARGB {
	_, r1, g1, b1 := c1.Channels()
	_, r2, g2, b2 := c2.Channels()
	return NewARGB(mix(r1, r2, theta), mix(g1, g2, theta), mix(b1, b2, theta))
}

func mix(a, b uint8, theta float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*theta)
	return uint8(min(max(v, 0), 255))
}

func unitByte(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}
