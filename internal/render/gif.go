package render

import (
	"image"
	"image/color/palette"
	"image/gif"
	"io"

	xdraw "golang.org/x/image/draw"
)

// GIFRecorder is a Surface that collects blitted frames into an animated GIF.
type GIFRecorder struct {
	// Delay is the per-frame delay in hundredths of a second.
	Delay int
	anim  gif.GIF
}

// NewGIFRecorder returns a recorder that loops forever with the given delay.
func NewGIFRecorder(delay int) *GIFRecorder {
	return &GIFRecorder{Delay: delay}
}

// Blit scales the frame with nearest-neighbour sampling and quantises it.
func (r *GIFRecorder) Blit(f *Frame, scale int) error {
	scale = max(scale, 1)
	src := f.RGBA()
	bounds := image.Rect(0, 0, f.W*scale, f.H*scale)
	scaled := image.NewRGBA(bounds)
	xdraw.NearestNeighbor.Scale(scaled, bounds, src, src.Bounds(), xdraw.Src, nil)

	pimg := image.NewPaletted(bounds, palette.Plan9)
	xdraw.FloydSteinberg.Draw(pimg, bounds, scaled, image.Point{})
	r.anim.Image = append(r.anim.Image, pimg)
	r.anim.Delay = append(r.anim.Delay, r.Delay)
	return nil
}

// Frames reports how many frames have been recorded.
func (r *GIFRecorder) Frames() int { return len(r.anim.Image) }

// Encode writes the recorded animation to w.
func (r *GIFRecorder) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &r.anim)
}
