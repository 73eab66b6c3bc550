package main

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/comalice/regionfsm"
	"github.com/comalice/regionfsm/host"
)

var (
	styleFrame   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	stylePending = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleFailed  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleOutput  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// cellCanvas draws regions on a terminal, one unit per cell.
type cellCanvas struct {
	screen tcell.Screen
	// overlay draws on top of the regions before the frame is shown.
	overlay func(tcell.Screen)
}

func (c *cellCanvas) Clear() {
	c.screen.Clear()
}

func (c *cellCanvas) Draw(_ *host.Component, r *regionfsm.Region, x, y, w, h float64) {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	if x1 <= x0 || y1 <= y0 {
		return
	}

	frame := styleFrame
	switch r.AssetStatus() {
	case regionfsm.AssetPending:
		frame = stylePending
	case regionfsm.AssetFailed:
		frame = styleFailed
	}

	if a := r.Asset(); a != nil && a.Image != nil {
		fillImage(c.screen, a.Image, x0, y0, x1, y1)
	}
	drawBox(c.screen, x0, y0, x1-1, y1-1, frame)
	drawText(c.screen, x0+1, y0, x1-1, r.Name(), styleLabel)
}

func (c *cellCanvas) Show() {
	if c.overlay != nil {
		c.overlay(c.screen)
	}
	c.screen.Show()
}

// fillImage paints img scaled into the cell rectangle [x0,x1)×[y0,y1) as
// background colors.
func fillImage(s tcell.Screen, img image.Image, x0, y0, x1, y1 int) {
	b := img.Bounds()
	cw, ch := x1-x0, y1-y0
	for cy := 0; cy < ch; cy++ {
		py := b.Min.Y + cy*b.Dy()/ch
		for cx := 0; cx < cw; cx++ {
			px := b.Min.X + cx*b.Dx()/cw
			r, g, bl, _ := img.At(px, py).RGBA()
			bg := tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(bl>>8))
			s.SetContent(x0+cx, y0+cy, ' ', nil, tcell.StyleDefault.Background(bg))
		}
	}
}

// drawBox outlines the inclusive cell rectangle. Single rows and columns
// degrade to lines.
func drawBox(s tcell.Screen, x0, y0, x1, y1 int, style tcell.Style) {
	for x := x0; x <= x1; x++ {
		s.SetContent(x, y0, tcell.RuneHLine, nil, style)
		s.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0; y <= y1; y++ {
		s.SetContent(x0, y, tcell.RuneVLine, nil, style)
		s.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	if x1 > x0 && y1 > y0 {
		s.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
		s.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
		s.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
		s.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
	}
}

// drawText writes text from (x, y), stopping before column limit.
func drawText(s tcell.Screen, x, y, limit int, text string, style tcell.Style) {
	for _, ch := range text {
		if x >= limit {
			return
		}
		s.SetContent(x, y, ch, nil, style)
		x++
	}
}
