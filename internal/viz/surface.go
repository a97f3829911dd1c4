package viz

import (
	"image/color"
	"math"

	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/render"
)

// minAlpha hides trail segments too faint to show as a dot.
const minAlpha = 0.12

// Surface draws onto a Canvas, fitting a world of w x h units into the
// canvas' sub-pixel grid with the aspect ratio kept.
type Surface struct {
	Canvas *Canvas

	w, h   float64
	scale  float64
	ox, oy float64
}

func NewSurface(c *Canvas, w, h float64) *Surface {
	s := &Surface{Canvas: c, w: w, h: h}
	s.fit()
	return s
}

func (s *Surface) fit() {
	cw, ch := float64(s.Canvas.Width*2), float64(s.Canvas.Height*4)
	s.scale = math.Min(cw/s.w, ch/s.h)
	s.ox = (cw - s.w*s.scale) / 2
	s.oy = (ch - s.h*s.scale) / 2
}

// Project maps world coordinates to sub-pixels.
func (s *Surface) Project(p orbit.Point) (int, int) {
	return int(math.Round(s.ox + p.X*s.scale)), int(math.Round(s.oy + p.Y*s.scale))
}

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

// FillRect only understands the full-canvas background fill.
func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	if x <= 0 && y <= 0 && w >= s.w && h >= s.h {
		s.Canvas.Clear()
	}
}

func (s *Surface) Line(a, b orbit.Point, st render.Stroke) {
	if st.Alpha < minAlpha {
		return
	}
	col := render.Blend(render.Background, st.Color, st.Alpha)
	for _, seg := range render.DashSegments(a, b, st.Dash) {
		x0, y0 := s.Project(seg[0])
		x1, y1 := s.Project(seg[1])
		s.Canvas.DrawLine(x0, y0, x1, y1, col)
	}
}

func (s *Surface) Circle(center orbit.Point, r float64, st render.Stroke) {
	if st.Alpha < minAlpha {
		return
	}
	col := render.Blend(render.Background, st.Color, st.Alpha)
	pts := render.CirclePath(center, r, render.CircleSegments(r))
	render.StrokePath(pts, st.Dash, func(a, b orbit.Point) {
		x0, y0 := s.Project(a)
		x1, y1 := s.Project(b)
		s.Canvas.DrawLine(x0, y0, x1, y1, col)
	})
}

func (s *Surface) Disk(center orbit.Point, r float64, c color.RGBA) {
	x, y := s.Project(center)
	s.Canvas.FillCircle(x, y, int(math.Max(1, math.Round(r*s.scale))), c)
}

func (s *Surface) Text(at orbit.Point, text string, size float64, c color.RGBA) {
	x, y := s.Project(at)
	s.Canvas.PutText(x/2, y/4, text, c)
}
