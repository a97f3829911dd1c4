package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/render"
)

// Surface draws onto the current raylib frame, offset by Origin.
type Surface struct {
	W, H   float64
	Origin orbit.Point
}

func toColor(c color.RGBA, alpha float64) rl.Color {
	a := render.WithAlpha(c, alpha)
	return rl.NewColor(a.R, a.G, a.B, a.A)
}

func (s *Surface) vec(p orbit.Point) rl.Vector2 {
	p = p.Add(s.Origin)
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func (s *Surface) Size() (float64, float64) { return s.W, s.H }

func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	o := s.Origin
	rl.DrawRectangle(int32(x+o.X), int32(y+o.Y), int32(math.Ceil(w)), int32(math.Ceil(h)), toColor(c, 1))
}

func (s *Surface) segment(a, b orbit.Point, st render.Stroke) {
	rl.DrawLineEx(s.vec(a), s.vec(b), float32(st.Width), toColor(st.Color, st.Alpha))
}

func (s *Surface) Line(a, b orbit.Point, st render.Stroke) {
	if len(st.Dash) == 0 {
		s.segment(a, b, st)
		return
	}
	for _, seg := range render.DashSegments(a, b, st.Dash) {
		s.segment(seg[0], seg[1], st)
	}
}

func (s *Surface) Circle(c orbit.Point, r float64, st render.Stroke) {
	pts := render.CirclePath(c, r, render.CircleSegments(r))
	render.StrokePath(pts, st.Dash, func(a, b orbit.Point) {
		s.segment(a, b, st)
	})
}

func (s *Surface) Disk(c orbit.Point, r float64, col color.RGBA) {
	rl.DrawCircleV(s.vec(c), float32(r), toColor(col, 1))
}

// Text takes at as the baseline-left corner, like a 2D canvas.
func (s *Surface) Text(at orbit.Point, text string, size float64, c color.RGBA) {
	v := s.vec(at)
	rl.DrawText(text, int32(v.X), int32(float64(v.Y)-size*0.8), int32(size), toColor(c, 1))
}
