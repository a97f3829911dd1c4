package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
)

const (
	charW = 8
	charH = 16
)

// Image rasterises the braille dots of the canvas, one charW x charH block
// per cell. Text overlay is not drawn.
func (c *Canvas) Image() *image.Paletted {
	pal := append(color.Palette{color.Black}, palette.WebSafe...)
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), pal)
	dotW, dotH := charW/2, charH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if r <= blank {
				continue
			}
			pattern := int(r - blank)
			idx := uint8(pal.Index(c.Colors[row][col]))
			if idx == 0 {
				// keep dots visible when the colour rounds to black
				idx = uint8(pal.Index(color.White))
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	return img
}

func (m *Model) captureFrame() {
	m.frames = append(m.frames, m.canvas.Image())
}

func (m *Model) saveGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 100/m.controls.FPS)
	}
	f, err := os.Create(m.controls.GIFPath)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
