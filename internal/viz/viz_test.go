package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/render"
	"github.com/san-kum/epicycle/internal/scene"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != blank+0x1+0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != blank+0x80 {
		t.Errorf("unset failed: %U", c.Grid[0][0])
	}
	c.Set(-1, 0)
	c.Set(100, 100)
	c.Clear()
	if c.String() != string([]rune{blank, blank})+"\n" {
		t.Errorf("clear failed: %q", c.String())
	}
}

func TestCanvasText(t *testing.T) {
	c := NewCanvas(6, 2)
	c.PutText(4, 1, "Sun", render.SunColor)
	lines := strings.Split(c.String(), "\n")
	if !strings.HasSuffix(lines[1], "Su") {
		t.Errorf("text not clipped at edge: %q", lines[1])
	}
	if c.Colors[1][4] != render.SunColor {
		t.Error("text colour not recorded")
	}
}

func TestSurfaceFit(t *testing.T) {
	s := NewSurface(NewCanvas(80, 24), 1000, 800)
	// 160x96 sub-pixels; height limits the scale
	if math.Abs(s.scale-96.0/800) > 1e-12 {
		t.Errorf("scale %f", s.scale)
	}
	x, y := s.Project(orbit.Pt(500, 400))
	if x != 80 || y != 48 {
		t.Errorf("centre projected to %d,%d", x, y)
	}
}

func TestSurfaceDrawsScene(t *testing.T) {
	ctrl, err := scene.New(scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	canvas := NewCanvas(80, 24)
	surface := NewSurface(canvas, 1000, 800)
	for i := 0; i < 30; i++ {
		ctrl.Frame(surface)
	}

	dots := 0
	for _, row := range canvas.Grid {
		for _, r := range row {
			if r != blank {
				dots++
			}
		}
	}
	if dots == 0 {
		t.Fatal("nothing drawn")
	}
	if !strings.Contains(canvas.String(), "apparent position") {
		t.Error("missing apparent position label")
	}
	if canvas.Render() == "" {
		t.Error("empty render")
	}
}

func TestCanvasImage(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetColor(0, 0, render.SunColor)
	img := c.Image()
	if img.Bounds().Dx() != 4*charW || img.Bounds().Dy() != 2*charH {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if img.ColorIndexAt(0, 0) == 0 {
		t.Error("dot not painted")
	}
	if img.ColorIndexAt(charW-1, charH-1) != 0 {
		t.Error("background painted")
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelKeys(t *testing.T) {
	ctrl, err := scene.New(scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	var m tea.Model = NewModel(ctrl, Controls{FPS: 60}, nil)

	for i := 0; i < 5; i++ {
		m, _ = m.Update(TickMsg(time.Now()))
	}
	if ctrl.State().Time == 0 {
		t.Fatal("ticks did not advance time")
	}

	m, _ = m.Update(key(" "))
	if ctrl.State().Playing {
		t.Error("space should pause")
	}

	m, _ = m.Update(key("+"))
	if got := ctrl.State().Speed; math.Abs(got-1.1) > 1e-9 {
		t.Errorf("speed %v after +", got)
	}

	m, _ = m.Update(key("2"))
	if ctrl.State().Mode != orbit.ModeMars || ctrl.State().Time != 0 {
		t.Errorf("2 should switch to mars and reset, got %+v", ctrl.State())
	}

	m, _ = m.Update(key("v"))
	if ctrl.State().View != orbit.ViewFromEarth {
		t.Error("v should toggle the view")
	}

	m, _ = m.Update(key("t"))
	if m.(Model).theme.Name != "retro" {
		t.Errorf("theme %s", m.(Model).theme.Name)
	}

	if !strings.Contains(m.View(), "MARS") {
		t.Error("sidebar missing mode header")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestViewErrorShownInStatus(t *testing.T) {
	ctrl, err := scene.New(scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(ctrl, Controls{FPS: 60}, nil)
	m.setView(orbit.View(7))
	if m.status == "" {
		t.Fatal("rejected view left no status")
	}
	if ctrl.State().View != orbit.ViewTopDown {
		t.Errorf("view changed to %v", ctrl.State().View)
	}
	if !strings.Contains(m.View(), "unknown view") {
		t.Error("status not rendered in sidebar")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "night" {
		t.Error("unknown theme should fall back to night")
	}
	if NextTheme("minimal").Name != "night" {
		t.Error("themes should wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
