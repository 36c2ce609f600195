//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"smoothlife/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the field view. The target
// supplies values through core.ParameterProvider and accepts changes through
// whichever setter interfaces it implements.
type HUD struct {
	target any
	title  string
	width  int

	panel    *ebiten.Image
	pixel    *ebiten.Image
	offsetX  int
	controls []hudControl

	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	boolSetter  core.BoolParameterSetter
}

type hudControl struct {
	controlState
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for target with the given panel width.
func NewHUD(target any, title string, width int) *HUD {
	h := &HUD{target: target, title: title, width: max(width, 0)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := target.(core.ParameterControlsProvider); ok {
		for i, ctrl := range provider.ParameterControls() {
			top := controlsTop + i*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
			minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
			h.controls = append(h.controls, hudControl{
				controlState: controlState{control: ctrl, label: "--"},
				top:          top,
				minusRect:    minus,
				plusRect:     plus,
			})
		}
	}
	h.intSetter, _ = target.(core.IntParameterSetter)
	h.floatSetter, _ = target.(core.FloatParameterSetter)
	h.boolSetter, _ = target.(core.BoolParameterSetter)
	return h
}

// Update refreshes control values and handles clicks on the +/- buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.offsetX = panelOffsetX
	h.refresh()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.offsetX
	if px < 0 {
		return
	}
	for i := range h.controls {
		c := &h.controls[i]
		if !c.hasValue {
			continue
		}
		switch {
		case image.Pt(px, my).In(c.minusRect):
			h.adjust(c, -1)
			return
		case image.Pt(px, my).In(c.plusRect):
			h.adjust(c, 1)
			return
		}
	}
}

func (h *HUD) refresh() {
	provider, ok := h.target.(core.ParameterProvider)
	if !ok {
		return
	}
	params := paramIndex(provider.Parameters())
	for i := range h.controls {
		h.controls[i].refresh(params)
	}
}

func (h *HUD) adjust(c *hudControl, direction int) {
	switch c.control.Type {
	case core.ParamTypeInt:
		target, moved := nextInt(c.control, c.intValue, direction)
		if moved && h.intSetter != nil && h.intSetter.SetIntParameter(c.control.Key, target) {
			h.refresh()
		}
	case core.ParamTypeFloat:
		target, moved := nextFloat(c.control, c.floatValue, direction)
		if moved && h.floatSetter != nil && h.floatSetter.SetFloatParameter(c.control.Key, target) {
			h.refresh()
		}
	case core.ParamTypeBool:
		target, moved := nextBool(c.boolValue, direction)
		if moved && h.boolSetter != nil && h.boolSetter.SetBoolParameter(c.control.Key, target) {
			h.refresh()
		}
	}
}

func (h *HUD) canAdjust(c *hudControl, direction int) bool {
	if !c.hasValue {
		return false
	}
	switch c.control.Type {
	case core.ParamTypeInt:
		_, moved := nextInt(c.control, c.intValue, direction)
		return moved && h.intSetter != nil
	case core.ParamTypeFloat:
		_, moved := nextFloat(c.control, c.floatValue, direction)
		return moved && h.floatSetter != nil
	case core.ParamTypeBool:
		_, moved := nextBool(c.boolValue, direction)
		return moved && h.boolSetter != nil
	}
	return false
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i := range h.controls {
		c := &h.controls[i]
		y := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !c.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		w := text.BoundString(face, c.label).Dx()
		text.Draw(h.panel, c.label, face, c.minusRect.Min.X-buttonGap-w, y, valueColor)
		h.drawButton(c.minusRect, "-", h.canAdjust(c, -1))
		h.drawButton(c.plusRect, "+", h.canAdjust(c, 1))
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	fillRect(h.panel, h.pixel, rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

// fillRect stretches the 1x1 white pixel over rect, tinted with col.
func fillRect(dst, pixel *ebiten.Image, rect image.Rectangle, col color.Color) {
	if pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(pixel, op)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)
