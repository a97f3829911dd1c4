package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	Background  = Hex("#000000")
	SunColor    = Hex("#FFD700")
	EarthColor  = Hex("#0066FF")
	OrbitColor  = Hex("#333333")
	GuideColor  = Hex("#FFFF00")
	SightColor  = Hex("#FFE600")
	LabelColor  = Hex("#FFFFFF")
	White       = Hex("#FFFFFF")
	Deferent    = Hex("#444444")
	EpicycleRim = Hex("#666666")
	CenterColor = Hex("#888888")
	Caption     = Hex("#AAAAAA")
)

// Hex parses "#rrggbb"; anything unparseable renders white so a bad table
// colour stays visible.
func Hex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}

// Blend mixes fg over bg at the given alpha in RGB space.
func Blend(bg, fg color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return bg
	}
	if alpha >= 1 {
		return fg
	}
	b := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	f := colorful.Color{R: float64(fg.R) / 255, G: float64(fg.G) / 255, B: float64(fg.B) / 255}
	r, g, bl := b.BlendRgb(f, alpha).Clamped().RGB255()
	return color.RGBA{r, g, bl, 255}
}

// WithAlpha folds a stroke alpha into a non-premultiplied colour.
func WithAlpha(c color.RGBA, alpha float64) color.NRGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A)*alpha + 0.5)}
}

// HexString formats c as "#rrggbb".
func HexString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
