package export

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

// GIF collects frames for an animated GIF.
type GIF struct {
	anim  gif.GIF
	delay int
}

// NewGIF creates an encoder whose frames last delay hundredths of a second.
func NewGIF(delay int) *GIF {
	if delay < 1 {
		delay = 1
	}
	return &GIF{anim: gif.GIF{LoopCount: 0}, delay: delay}
}

// Add quantises img to the Plan 9 palette and appends it.
func (g *GIF) Add(img image.Image) {
	b := img.Bounds()
	frame := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(frame, b, img, b.Min)
	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, g.delay)
}

func (g *GIF) Len() int { return len(g.anim.Image) }

func (g *GIF) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &g.anim)
}
