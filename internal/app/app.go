//go:build ebiten

package app

import (
	"context"
	"errors"
	"log"
	"time"

	"smoothlife/internal/core"
	"smoothlife/internal/render"
	"smoothlife/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctx     context.Context
	ctrl    *Controller
	surface *render.ScreenSurface
	clock   *core.FrameClock
	hud     *ui.HUD
	overlay *ui.Overlay

	hudWidth int
	viewW    int
	logger   *log.Logger
}

// New constructs a Game. Ticking stops once ctx is done.
func New(ctx context.Context, ctrl *Controller, hudWidth int, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		ctx:      ctx,
		ctrl:     ctrl,
		surface:  render.NewScreenSurface(),
		clock:    core.NewFrameClock(ctrl.Pipeline().FrameDelay()),
		hud:      ui.NewHUD(ctrl, "SmoothLife", hudWidth),
		overlay:  ui.NewOverlay(ctrl),
		hudWidth: hudWidth,
		viewW:    ctrl.Settings().Width,
		logger:   logger,
	}
}

// Update handles input and keeps the frame clock in step with the settings.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.ToggleVisible()
		g.clock.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reset(g.ctrl.Settings().Seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.ctrl.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.CyclePalette()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) && !g.ctrl.ToggleSmooth() {
		g.logger.Printf("app: cannot switch rules with timestep %g", g.ctrl.Settings().Timestep)
	}
	g.hud.Update(g.viewW)
	g.overlay.Update()
	g.clock.SetDelay(g.ctrl.Pipeline().FrameDelay())
	return nil
}

// Draw runs a pipeline tick when one is due and otherwise re-presents the last
// frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	p := g.ctrl.Pipeline()
	if p.Visible() && g.clock.Due() {
		if err := p.RenderTick(g.ctx, g.surface); err != nil {
			if !errors.Is(err, render.ErrFrameAbandoned) {
				g.logger.Printf("app: %v", err)
			}
		}
	} else if err := p.Present(g.surface); err != nil {
		g.logger.Printf("app: %v", err)
	}
	g.hud.Draw(screen, g.viewW, screen.Bounds().Dy())
	g.overlay.Draw(screen)
}

// Layout sizes the field from the window, leaving room for the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	viewW := max(outsideWidth-g.hudWidth, 1)
	if err := g.ctrl.Resize(viewW, outsideHeight); err != nil {
		g.logger.Printf("app: resize %dx%d: %v", viewW, outsideHeight, err)
	} else {
		g.viewW = viewW
	}
	return outsideWidth, outsideHeight
}
