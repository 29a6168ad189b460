// Package export renders a routed scene to PNG for visual inspection:
// tables with their node bands, the routed connector polylines, and
// optionally the visibility graph behind them.
package export

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"ortho/geo"
	"ortho/layout"
	"ortho/router"
)

// Scene is everything one rendering needs. Routes are the polylines
// returned by the router; Graph may be nil to skip drawing the grid.
type Scene struct {
	Area   geo.Rect
	Tables []layout.Table
	Routes [][]geo.Point
	Graph  *router.Graph
}

// WritePNG renders the scene scaled by scale pixels per unit and writes it
// to filename.
func WritePNG(filename string, s Scene, scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("export: scale must be positive, got %v", scale)
	}
	if s.Area.W <= 0 || s.Area.H <= 0 {
		return fmt.Errorf("export: empty scene area")
	}

	width := int(s.Area.W * scale)
	height := int(s.Area.H * scale)
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	face, err := monoFace(11)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	// Project scene coordinates into image space.
	px := func(x float64) float64 { return (x - s.Area.X) * scale }
	py := func(y float64) float64 { return (y - s.Area.Y) * scale }

	if s.Graph != nil {
		drawGraph(dc, s.Graph, px, py)
	}

	for _, t := range s.Tables {
		drawTable(dc, t, px, py)
	}

	dc.SetColor(color.Black)
	dc.SetLineWidth(1.5)
	for _, route := range s.Routes {
		for i := 0; i < len(route)-1; i++ {
			dc.DrawLine(px(route[i].X), py(route[i].Y), px(route[i+1].X), py(route[i+1].Y))
			dc.Stroke()
		}
	}

	return dc.SavePNG(filename)
}

// drawGraph paints the visibility segments faintly so routes stay legible.
func drawGraph(dc *gg.Context, g *router.Graph, px, py func(float64) float64) {
	dc.SetRGBA(0.6, 0.6, 0.9, 0.4)
	dc.SetLineWidth(0.5)
	for _, seg := range g.H {
		a, b := g.At(seg.A), g.At(seg.B)
		dc.DrawLine(px(a.X), py(a.Y), px(b.X), py(b.Y))
		dc.Stroke()
	}
	for _, seg := range g.V {
		a, b := g.At(seg.A), g.At(seg.B)
		dc.DrawLine(px(a.X), py(a.Y), px(b.X), py(b.Y))
		dc.Stroke()
	}
}

func drawTable(dc *gg.Context, t layout.Table, px, py func(float64) float64) {
	r := t.Rect()
	dc.SetRGBA(0.95, 0.95, 0.95, 1)
	dc.DrawRectangle(px(r.Left()), py(r.Top()), px(r.Right())-px(r.Left()), py(r.Bottom())-py(r.Top()))
	dc.Fill()

	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(px(r.Left()), py(r.Top()), px(r.Right())-px(r.Left()), py(r.Bottom())-py(r.Top()))
	dc.Stroke()
	dc.DrawString(t.ID, px(r.Left())+3, py(r.Top())-3)

	for _, n := range t.Nodes {
		nr := n.Rect()
		dc.DrawRectangle(px(nr.Left()), py(nr.Top()), px(nr.Right())-px(nr.Left()), py(nr.Bottom())-py(nr.Top()))
		dc.Stroke()
		dc.DrawString(n.ID, px(nr.Left())+3, py(nr.Bottom())-3)
	}
}

// monoFace loads the bundled monospace face at the given size.
func monoFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("export: failed to parse font: %v", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
