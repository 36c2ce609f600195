//go:build ebiten

package render

import "github.com/hajimehoshi/ebiten/v2"

// ScreenSurface blits frames onto an ebiten image, magnified by the scale.
type ScreenSurface struct {
	target *ebiten.Image
	img    *ebiten.Image
	buf    []byte
}

// NewScreenSurface returns a surface with no target; set one before blitting.
func NewScreenSurface() *ScreenSurface { return &ScreenSurface{} }

// SetTarget selects the image subsequent blits draw onto.
func (s *ScreenSurface) SetTarget(dst *ebiten.Image) { s.target = dst }

// Blit uploads the frame and draws it scaled onto the target.
func (s *ScreenSurface) Blit(f *Frame, scale int) error {
	if s.target == nil || f.W <= 0 || f.H <= 0 {
		return nil
	}
	if s.img == nil || s.img.Bounds().Dx() != f.W || s.img.Bounds().Dy() != f.H {
		if s.img != nil {
			s.img.Dispose()
		}
		s.img = ebiten.NewImage(f.W, f.H)
		s.buf = make([]byte, 4*f.W*f.H)
	}
	f.FillRGBA(s.buf)
	s.img.WritePixels(s.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	s.target.DrawImage(s.img, op)
	return nil
}
