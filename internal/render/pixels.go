// Package render turns simulation fields into pixel frames and drives the
// step/draw pipeline that presents them.
package render

import (
	"image"
	"image/color"

	"smoothlife/internal/colormap"
)

// Frame is a W*H buffer of ARGB pixels in row-major order.
type Frame struct {
	W, H int
	Pix  []colormap.ARGB
}

// NewFrame allocates a frame of w*h opaque black pixels.
func NewFrame(w, h int) *Frame {
	f := &Frame{}
	f.resize(w, h)
	return f
}

func (f *Frame) resize(w, h int) {
	f.W, f.H = w, h
	if cap(f.Pix) >= w*h {
		f.Pix = f.Pix[:w*h]
	} else {
		f.Pix = make([]colormap.ARGB, w*h)
	}
	black := colormap.NewARGB(0, 0, 0)
	for i := range f.Pix {
		f.Pix[i] = black
	}
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.W, f.H) }

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return color.RGBA{}
	}
	return f.Pix[y*f.W+x]
}

// Paint maps values through the palette's uniform-spacing lookup into the
// frame. Values beyond the frame size are ignored.
func (f *Frame) Paint(values []float64, p *colormap.Palette) {
	n := min(len(values), len(f.Pix))
	for i := 0; i < n; i++ {
		f.Pix[i] = p.GetFast(values[i])
	}
}

// FillRGBA writes the frame as 8-bit RGBA into buf, which must hold at least
// 4*W*H bytes.
func (f *Frame) FillRGBA(buf []byte) {
	for i, c := range f.Pix {
		a, r, g, b := c.Channels()
		base := i * 4
		buf[base+0] = r
		buf[base+1] = g
		buf[base+2] = b
		buf[base+3] = a
	}
}

// RGBA copies the frame into a standard library image.
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	f.FillRGBA(img.Pix)
	return img
}
