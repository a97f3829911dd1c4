package orbit

import "math"

// Point is a 2D position in surface pixels.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point        { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point        { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Scale(s float64) Point    { return Point{p.X * s, p.Y * s} }
func (p Point) Length() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) Distance(o Point) float64 { return p.Sub(o).Length() }

// IsValid reports whether both coordinates are finite.
func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
