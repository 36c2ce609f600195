package core

import "gonum.org/v1/gonum/floats"

// Field stores a toroidal 2D grid of real cell values in row-major order.
type Field struct {
	W, H int
	data []float64
}

// NewField allocates a zeroed field with the given dimensions.
func NewField(w, h int) *Field {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Field{W: w, H: h, data: make([]float64, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (f *Field) Cells() []float64 { return f.data }

// Size reports the field dimensions.
func (f *Field) Size() Size { return Size{W: f.W, H: f.H} }

// Index returns the linear slice index for coordinates (x, y).
func (f *Field) Index(x, y int) int { return y*f.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (f *Field) Wrap(x, y int) (int, int) {
	x = (x%f.W + f.W) % f.W
	y = (y%f.H + f.H) % f.H
	return x, y
}

// Clear fills the field with zeros.
func (f *Field) Clear() {
	for i := range f.data {
		f.data[i] = 0
	}
}

// FillSquare sets a side*side block anchored at (x, y) to v, wrapping at the
// edges. The side is capped to the field dimensions so no cell is visited twice.
func (f *Field) FillSquare(x, y, side int, v float64) {
	sw, sh := min(side, f.W), min(side, f.H)
	for dy := 0; dy < sh; dy++ {
		for dx := 0; dx < sw; dx++ {
			wx, wy := f.Wrap(x+dx, y+dy)
			f.data[f.Index(wx, wy)] = v
		}
	}
}

// Sum returns the total mass of the field.
func (f *Field) Sum() float64 { return floats.Sum(f.data) }
