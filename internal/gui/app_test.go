package gui

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/epicycle/internal/config"
	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/scene"
)

func newApp(t *testing.T) *App {
	t.Helper()
	ctrl, err := scene.New(scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return NewApp(ctrl, config.DefaultConfig().SpeedRange, nil)
}

func TestTabAt(t *testing.T) {
	tests := []struct {
		x, y float64
		mode orbit.Mode
		ok   bool
	}{
		{10, 10, orbit.ModeVenus, true},
		{130, 20, orbit.ModeMars, true},
		{250, 5, orbit.ModePtolemaic, true},
		{400, 10, 0, false},
		{10, 100, 0, false},
		{-5, 10, 0, false},
	}
	for _, tt := range tests {
		m, ok := TabAt(tt.x, tt.y)
		if ok != tt.ok || (ok && m != tt.mode) {
			t.Errorf("TabAt(%v, %v) = %v, %v", tt.x, tt.y, m, ok)
		}
	}
}

func TestPress(t *testing.T) {
	a := newApp(t)
	for i := 0; i < 10; i++ {
		a.Ctrl.Tick()
	}

	a.Press(rl.KeySpace)
	if a.Ctrl.State().Playing {
		t.Error("space should pause")
	}

	a.Press(rl.KeyEqual)
	a.Press(rl.KeyEqual)
	if got := a.Ctrl.State().Speed; math.Abs(got-1.2) > 1e-9 {
		t.Errorf("speed %v after two presses", got)
	}
	for i := 0; i < 30; i++ {
		a.Press(rl.KeyMinus)
	}
	if got := a.Ctrl.State().Speed; got != 0.1 {
		t.Errorf("speed %v should clamp at 0.1", got)
	}

	a.Press(rl.KeyV)
	if a.Ctrl.State().View != orbit.ViewFromEarth {
		t.Error("v should toggle the view")
	}

	a.Press(rl.KeyThree)
	if a.Ctrl.State().Mode != orbit.ModePtolemaic || a.Ctrl.State().Time != 0 {
		t.Errorf("3 should enter ptolemaic at t=0, got %+v", a.Ctrl.State())
	}

	a.Press(rl.KeyQ)
	if !a.quit {
		t.Error("q should request quit")
	}
}

func TestClickSameTabKeepsTime(t *testing.T) {
	a := newApp(t)
	for i := 0; i < 10; i++ {
		a.Ctrl.Tick()
	}
	a.Click(10, 10)
	if a.Ctrl.State().Time == 0 {
		t.Error("clicking the active tab should not reset")
	}
	a.Click(130, 10)
	if a.Ctrl.State().Mode != orbit.ModeMars || a.Ctrl.State().Time != 0 {
		t.Errorf("clicking mars tab gave %+v", a.Ctrl.State())
	}
}

func TestTelemetryUnwraps(t *testing.T) {
	a := newApp(t)
	for i := 0; i < 400; i++ {
		a.record(a.Ctrl.Tick())
	}
	if len(a.Telemetry) != telemetryCap {
		t.Fatalf("telemetry length %d", len(a.Telemetry))
	}
	for i := 1; i < len(a.Telemetry); i++ {
		if math.Abs(a.Telemetry[i]-a.Telemetry[i-1]) > 180 {
			t.Fatalf("jump at %d: %v -> %v", i, a.Telemetry[i-1], a.Telemetry[i])
		}
	}
}
