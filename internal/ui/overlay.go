//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// LinesProvider supplies the text the stats overlay shows.
type LinesProvider interface {
	OverlayLines() []string
}

// Overlay draws a translucent stats box in the top-left corner. Tab toggles it.
type Overlay struct {
	source LinesProvider
	show   bool
	pixel  *ebiten.Image
}

// NewOverlay constructs a visible overlay for source.
func NewOverlay(source LinesProvider) *Overlay {
	o := &Overlay{source: source, show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || o.source == nil {
		return
	}
	lines := o.source.OverlayLines()
	if len(lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	width := 0
	for _, l := range lines {
		width = max(width, text.BoundString(face, l).Dx())
	}
	const pad, lineH = 6, 15
	box := image.Rect(4, 4, 4+width+2*pad, 4+len(lines)*lineH+2*pad)
	fillRect(screen, o.pixel, box, color.RGBA{A: 160})
	for i, l := range lines {
		text.Draw(screen, l, face, box.Min.X+pad, box.Min.Y+pad+(i+1)*lineH-4, color.RGBA{R: 230, G: 230, B: 235, A: 255})
	}
}
