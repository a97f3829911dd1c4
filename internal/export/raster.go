package export

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/render"
)

var regular, _ = truetype.Parse(goregular.TTF)

// Raster is a render.Surface backed by a gg context.
type Raster struct {
	dc    *gg.Context
	faces map[float64]font.Face
}

func NewRaster(w, h int) *Raster {
	dc := gg.NewContext(w, h)
	dc.SetLineCapRound()
	return &Raster{dc: dc, faces: make(map[float64]font.Face)}
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

func (r *Raster) FillRect(x, y, w, h float64, c color.RGBA) {
	r.dc.SetColor(c)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *Raster) stroke(st render.Stroke) {
	r.dc.SetColor(render.WithAlpha(st.Color, st.Alpha))
	r.dc.SetLineWidth(st.Width)
	r.dc.SetDash(st.Dash...)
	r.dc.Stroke()
}

func (r *Raster) Line(a, b orbit.Point, st render.Stroke) {
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.stroke(st)
}

func (r *Raster) Circle(c orbit.Point, radius float64, st render.Stroke) {
	r.dc.DrawCircle(c.X, c.Y, radius)
	r.stroke(st)
}

func (r *Raster) Disk(c orbit.Point, radius float64, col color.RGBA) {
	r.dc.SetColor(col)
	r.dc.DrawCircle(c.X, c.Y, radius)
	r.dc.Fill()
}

// face returns the Go Regular face at size pixels, cached per size.
func (r *Raster) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(regular, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	r.faces[size] = f
	return f
}

func (r *Raster) Text(at orbit.Point, text string, size float64, c color.RGBA) {
	if size > 0 && regular != nil {
		r.dc.SetFontFace(r.face(size))
	}
	r.dc.SetColor(c)
	r.dc.DrawString(text, at.X, at.Y)
}

func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }
