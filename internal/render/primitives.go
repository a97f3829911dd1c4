package render

import (
	"image/color"
	"math"

	"github.com/san-kum/epicycle/internal/orbit"
)

const (
	TrailAlpha = 0.7
	GlowAlpha  = 0.8
	GlowWidth  = 3
	LabelSize  = 14
)

// FadingTrail strokes pts segment by segment; segment i (1-based) gets
// alpha (i/len)*maxAlpha so the newest end is brightest.
func FadingTrail(s Surface, pts []orbit.Point, c color.RGBA, width, maxAlpha float64) {
	n := len(pts)
	if n < 2 {
		return
	}
	for i := 1; i < n; i++ {
		s.Line(pts[i-1], pts[i], Stroke{
			Color: c,
			Alpha: float64(i) / float64(n) * maxAlpha,
			Width: width,
		})
	}
}

// GlowTrail is the white apparent-position trail.
func GlowTrail(s Surface, pts []orbit.Point) {
	FadingTrail(s, pts, White, GlowWidth, GlowAlpha)
}

func DashedCircle(s Surface, center orbit.Point, r float64, st Stroke) {
	s.Circle(center, r, st)
}

func Guide(s Surface, from, to orbit.Point, st Stroke) {
	s.Line(from, to, st)
}

func Marker(s Surface, at orbit.Point, r float64, c color.RGBA) {
	s.Disk(at, r, c)
}

func Label(s Surface, at orbit.Point, text string) {
	s.Text(at, text, LabelSize, LabelColor)
}

// DashSegments splits the line a-b into the "on" pieces of a dash pattern.
// An empty pattern yields the whole line.
func DashSegments(a, b orbit.Point, dash []float64) [][2]orbit.Point {
	var segs [][2]orbit.Point
	StrokePath([]orbit.Point{a, b}, dash, func(p, q orbit.Point) {
		segs = append(segs, [2]orbit.Point{p, q})
	})
	return segs
}

// CirclePath approximates a circle with n+1 points; the last repeats the
// first.
func CirclePath(center orbit.Point, r float64, n int) []orbit.Point {
	if n < 3 {
		n = 3
	}
	pts := make([]orbit.Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = orbit.PositionOnCircle(center, r, 2*math.Pi*float64(i)/float64(n))
	}
	return pts
}

// CircleSegments returns a good polygon resolution for a circle of radius r.
func CircleSegments(r float64) int {
	n := int(r / 2)
	if n < 24 {
		return 24
	}
	if n > 180 {
		return 180
	}
	return n
}

// StrokePath draws a polyline with a dash pattern that runs on across
// vertices, for surfaces without native dashing.
func StrokePath(pts []orbit.Point, dash []float64, line func(a, b orbit.Point)) {
	period := 0.0
	for _, d := range dash {
		if d < 0 {
			period = 0
			break
		}
		period += d
	}
	if period == 0 {
		for i := 1; i < len(pts); i++ {
			if pts[i-1] != pts[i] {
				line(pts[i-1], pts[i])
			}
		}
		return
	}

	idx, left, on := 0, dash[0], true
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		length := a.Distance(b)
		if length == 0 {
			continue
		}
		dir := b.Sub(a).Scale(1 / length)
		pos := 0.0
		for pos < length {
			step := math.Min(left, length-pos)
			if on && step > 0 {
				line(a.Add(dir.Scale(pos)), a.Add(dir.Scale(pos+step)))
			}
			pos += step
			left -= step
			if left <= 0 {
				idx = (idx + 1) % len(dash)
				left = dash[idx]
				on = !on
			}
		}
	}
}
