//go:build !ebiten

package ui

// LinesProvider supplies the text the stats overlay shows.
type LinesProvider interface {
	OverlayLines() []string
}

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(LinesProvider) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
