package orbit

import "math"

// PositionOnCircle returns the point at angle (radians) on the circle of the
// given radius around center.
func PositionOnCircle(center Point, radius, angle float64) Point {
	return Point{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}
