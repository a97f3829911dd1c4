// Package render draws a scene onto any 2D immediate-mode surface.
//
// Draw is stateless: everything it needs comes in through a Frame. Hosts
// (window, terminal, image export) only implement Surface.
package render

import (
	"image/color"

	"github.com/san-kum/epicycle/internal/orbit"
)

// Stroke describes how a line or circle outline is painted. Alpha scales the
// colour's own opacity; an empty Dash draws a solid line.
type Stroke struct {
	Color color.RGBA
	Alpha float64
	Width float64
	Dash  []float64
}

// Solid returns an opaque stroke of the given colour and width.
func Solid(c color.RGBA, width float64) Stroke {
	return Stroke{Color: c, Alpha: 1, Width: width}
}

// Dashed returns an opaque dashed stroke.
func Dashed(c color.RGBA, width float64, dash ...float64) Stroke {
	return Stroke{Color: c, Alpha: 1, Width: width, Dash: dash}
}

type Surface interface {
	Size() (w, h float64)
	FillRect(x, y, w, h float64, c color.RGBA)
	Line(a, b orbit.Point, s Stroke)
	Circle(center orbit.Point, r float64, s Stroke)
	Disk(center orbit.Point, r float64, c color.RGBA)
	Text(at orbit.Point, text string, size float64, c color.RGBA)
}
