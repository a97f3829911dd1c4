package export

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/render"
	"github.com/san-kum/epicycle/internal/viz"
)

// SVG is a render.Surface that accumulates SVG elements.
type SVG struct {
	w, h float64
	sb   strings.Builder
}

func NewSVG(w, h float64) *SVG {
	return &SVG{w: w, h: h}
}

func (s *SVG) Size() (float64, float64) { return s.w, s.h }

func (s *SVG) FillRect(x, y, w, h float64, c color.RGBA) {
	s.sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, w, h, render.HexString(c)))
}

func strokeAttrs(st render.Stroke) string {
	attrs := fmt.Sprintf(`stroke="%s" stroke-width="%.1f" stroke-linecap="round"`, render.HexString(st.Color), st.Width)
	if st.Alpha < 1 {
		attrs += fmt.Sprintf(` stroke-opacity="%.3f"`, st.Alpha)
	}
	if len(st.Dash) > 0 {
		parts := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			parts[i] = fmt.Sprintf("%g", d)
		}
		attrs += fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	return attrs
}

func (s *SVG) Line(a, b orbit.Point, st render.Stroke) {
	s.sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" %s/>
`, a.X, a.Y, b.X, b.Y, strokeAttrs(st)))
}

func (s *SVG) Circle(c orbit.Point, r float64, st render.Stroke) {
	s.sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" %s/>
`, c.X, c.Y, r, strokeAttrs(st)))
}

func (s *SVG) Disk(c orbit.Point, r float64, col color.RGBA) {
	s.sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.X, c.Y, r, render.HexString(col)))
}

func (s *SVG) Text(at orbit.Point, text string, size float64, c color.RGBA) {
	s.sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%g" fill="%s">%s</text>
`, at.X, at.Y, size, render.HexString(c), html.EscapeString(text)))
}

// String returns the complete document.
func (s *SVG) String() string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
%s</svg>
`, s.w, s.h, s.w, s.h, s.sb.String())
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// CanvasToSVG converts a braille canvas to SVG, one dot per sub-pixel in the
// cell's colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := render.HexString(canvas.Colors[row][col])

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
					}
				}
			}
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// PathToSVG plots a polyline scaled to fit width x height with 10% padding.
// Screen orientation is kept: y grows downwards as in the scene.
func PathToSVG(points []orbit.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2
	// one scale for both axes so loops keep their shape
	scale := min(float64(width)/rangeX, float64(height)/rangeY)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) * scale
		y := (p.Y - minY) * scale
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}
