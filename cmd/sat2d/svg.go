package main

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/setanarut/sat2d"
	"github.com/setanarut/vec"
)

// svgDrawer renders a world frame as an SVG document.
type svgDrawer struct {
	view  sat2d.AABB
	flags uint
	buf   bytes.Buffer
}

func newSVGDrawer(view sat2d.AABB, flags uint) *svgDrawer {
	d := &svgDrawer{view: view, flags: flags}
	fmt.Fprintf(&d.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n",
		view.Min.X, view.Min.Y, view.Width(), view.Height())
	fmt.Fprintf(&d.buf, `<rect x="%g" y="%g" width="%g" height="%g" fill="#1e1e24"/>`+"\n",
		view.Min.X, view.Min.Y, view.Width(), view.Height())
	return d
}

// viewport returns the box around every body, padded, or a default frame for an empty world.
func viewport(w *sat2d.World) sat2d.AABB {
	if w.BodyCount() == 0 {
		return sat2d.NewAABB(0, 0, 1200, 900)
	}
	view := w.Bodies()[0].AABB()
	w.EachBody(func(b *sat2d.Body) {
		view = view.Merge(b.AABB())
	})
	const pad = 20
	return sat2d.NewAABB(view.Min.X-pad, view.Min.Y-pad, view.Max.X+pad, view.Max.Y+pad)
}

func (d *svgDrawer) WriteTo(w io.Writer) (int64, error) {
	d.buf.WriteString("</svg>\n")
	return d.buf.WriteTo(w)
}

func css(c sat2d.FColor) string {
	if c.A == 0 {
		return "none"
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", int(c.R*255), int(c.G*255), int(c.B*255), c.A)
}

func (d *svgDrawer) DrawCircle(pos vec.Vec2, angle, radius float64, outline, fill sat2d.FColor, data any) {
	fmt.Fprintf(&d.buf, `<circle cx="%g" cy="%g" r="%g" fill="%s" stroke="%s"/>`+"\n",
		pos.X, pos.Y, radius, css(fill), css(outline))
	// radius line shows the rotation
	tip := pos.Add(vec.ForAngle(angle).Scale(radius))
	d.DrawSegment(pos, tip, outline, data)
}

func (d *svgDrawer) DrawSegment(a, b vec.Vec2, fill sat2d.FColor, data any) {
	fmt.Fprintf(&d.buf, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s"/>`+"\n",
		a.X, a.Y, b.X, b.Y, css(fill))
}

func (d *svgDrawer) DrawPolygon(verts []vec.Vec2, outline, fill sat2d.FColor, data any) {
	d.buf.WriteString(`<polygon points="`)
	for i, v := range verts {
		if i > 0 {
			d.buf.WriteByte(' ')
		}
		fmt.Fprintf(&d.buf, "%g,%g", v.X, v.Y)
	}
	fmt.Fprintf(&d.buf, `" fill="%s" stroke="%s"/>`+"\n", css(fill), css(outline))
}

func (d *svgDrawer) DrawDot(size float64, pos vec.Vec2, fill sat2d.FColor, data any) {
	fmt.Fprintf(&d.buf, `<circle cx="%g" cy="%g" r="%g" fill="%s"/>`+"\n", pos.X, pos.Y, size/2, css(fill))
}

func (d *svgDrawer) Flags() uint {
	return d.flags
}

func (d *svgDrawer) OutlineColor() sat2d.FColor {
	return sat2d.FColor{R: 0.9, G: 0.9, B: 0.9, A: 1}
}

// BodyColor tints bodies by material; static bodies are grey.
func (d *svgDrawer) BodyColor(body *sat2d.Body, data any) sat2d.FColor {
	if body.IsStatic() {
		return sat2d.FColor{R: 0.4, G: 0.4, B: 0.45, A: 1}
	}
	hue := float64(body.Material()) / 6
	r, g, b := hueToRGB(hue)
	return sat2d.FColor{R: r, G: g, B: b, A: 0.8}
}

func (d *svgDrawer) ConstraintColor() sat2d.FColor {
	return sat2d.FColor{R: 0.5, G: 1, B: 0.5, A: 1}
}

func (d *svgDrawer) CollisionPointColor() sat2d.FColor {
	return sat2d.FColor{R: 1, G: 0.2, B: 0.2, A: 1}
}

func (d *svgDrawer) Data() any {
	return nil
}

func hueToRGB(h float64) (r, g, b float32) {
	channel := func(offset float64) float32 {
		k := math.Mod(offset+h*6, 6)
		return float32(0.75 - 0.5*math.Max(0, math.Min(math.Min(k, 4-k), 1)))
	}
	return channel(5), channel(3), channel(1)
}
