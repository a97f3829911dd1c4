package gui

import (
	"context"
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/epicycle/internal/config"
	"github.com/san-kum/epicycle/internal/logging"
	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/render"
	"github.com/san-kum/epicycle/internal/scene"
)

var (
	ColTab     = rl.NewColor(40, 40, 40, 255)
	ColTabSel  = rl.NewColor(0, 102, 255, 255)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(110, 110, 110, 255)
	ColAccent  = rl.NewColor(255, 215, 0, 255)
)

const (
	tabBarHeight = 36
	tabWidth     = 120
	hudHeight    = 36
	telemetryCap = 300
)

var errWindowClosed = errors.New("gui: window closed")

type App struct {
	Ctrl    *scene.Controller
	Speed   config.SpeedRange
	Log     logging.Logger
	Surface *Surface

	Telemetry []float64
	quit      bool
}

func NewApp(ctrl *scene.Controller, speed config.SpeedRange, log logging.Logger) *App {
	if log == nil {
		log = logging.Noop()
	}
	w, h := ctrl.Size()
	return &App{
		Ctrl:      ctrl,
		Speed:     speed,
		Log:       log,
		Surface:   &Surface{W: w, H: h, Origin: orbit.Pt(0, tabBarHeight)},
		Telemetry: make([]float64, 0, telemetryCap),
	}
}

// windowPacer ends the loop when the window closes; raylib's target FPS
// does the actual pacing inside EndDrawing.
type windowPacer struct {
	app *App
}

func (p windowPacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.app.quit || rl.WindowShouldClose() {
		return errWindowClosed
	}
	return nil
}

// Run opens the window and blocks until it is closed. It must be called
// from the main goroutine.
func Run(ctx context.Context, ctrl *scene.Controller, speed config.SpeedRange, fps int, log logging.Logger) error {
	w, h := ctrl.Size()
	rl.InitWindow(int32(w), int32(h)+tabBarHeight+hudHeight, "epicycle")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)

	app := NewApp(ctrl, speed, log)
	loop := scene.NewLoop(windowPacer{app: app}, func(context.Context) error {
		app.Update()
		app.Draw()
		return nil
	})
	err := loop.Run(ctx)
	if errors.Is(err, errWindowClosed) || errors.Is(err, scene.ErrStopped) {
		return nil
	}
	return err
}

var boundKeys = []int32{
	rl.KeySpace, rl.KeyR, rl.KeyOne, rl.KeyTwo, rl.KeyThree,
	rl.KeyV, rl.KeyEqual, rl.KeyKpAdd, rl.KeyMinus, rl.KeyKpSubtract, rl.KeyQ,
}

// Update polls input.
func (a *App) Update() {
	for _, k := range boundKeys {
		if rl.IsKeyPressed(k) {
			a.Press(k)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		m := rl.GetMousePosition()
		a.Click(float64(m.X), float64(m.Y))
	}
}

// Press applies one key binding.
func (a *App) Press(key int32) {
	ctx := context.Background()
	switch key {
	case rl.KeySpace:
		a.Ctrl.TogglePlay()
	case rl.KeyR:
		a.Ctrl.Reset()
		a.Telemetry = a.Telemetry[:0]
	case rl.KeyOne, rl.KeyTwo, rl.KeyThree:
		a.selectMode(orbit.Modes[key-rl.KeyOne])
	case rl.KeyV:
		if err := a.Ctrl.SetView(a.Ctrl.State().View.Next()); err != nil {
			a.Log.Warn(ctx, "set view", logging.Err(err))
		}
	case rl.KeyEqual, rl.KeyKpAdd:
		a.nudge(1)
	case rl.KeyMinus, rl.KeyKpSubtract:
		a.nudge(-1)
	case rl.KeyQ:
		a.quit = true
	}
}

// Click selects the mode tab under (x, y), if any.
func (a *App) Click(x, y float64) {
	if m, ok := TabAt(x, y); ok {
		a.selectMode(m)
	}
}

// TabAt hit-tests the mode tab bar.
func TabAt(x, y float64) (orbit.Mode, bool) {
	if y < 0 || y >= tabBarHeight || x < 0 {
		return 0, false
	}
	i := int(x) / tabWidth
	if i >= len(orbit.Modes) {
		return 0, false
	}
	return orbit.Modes[i], true
}

func (a *App) selectMode(m orbit.Mode) {
	if m == a.Ctrl.State().Mode {
		return
	}
	if err := a.Ctrl.SetMode(m); err != nil {
		a.Log.Warn(context.Background(), "set mode", logging.Err(err))
		return
	}
	a.Telemetry = a.Telemetry[:0]
}

func (a *App) nudge(dir int) {
	v := a.Speed.Nudge(a.Ctrl.State().Speed, dir)
	if err := a.Ctrl.SetSpeed(v); err != nil {
		a.Log.Warn(context.Background(), "set speed", logging.Err(err))
	}
}

func (a *App) record(snap orbit.Snapshot) {
	lon := snap.ApparentLongitude()
	if n := len(a.Telemetry); n > 0 {
		lon = orbit.Unwrap(a.Telemetry[n-1], lon)
	}
	a.Telemetry = append(a.Telemetry, lon)
	if len(a.Telemetry) > telemetryCap {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	snap := a.Ctrl.Frame(a.Surface)
	if a.Ctrl.State().Playing {
		a.record(snap)
	}
	a.drawTabs()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) drawTabs() {
	current := a.Ctrl.State().Mode
	for i, m := range orbit.Modes {
		x := int32(i * tabWidth)
		bg := ColTab
		if m == current {
			bg = ColTabSel
		}
		rl.DrawRectangle(x+2, 2, tabWidth-4, tabBarHeight-4, bg)
		rl.DrawText(fmt.Sprintf("%d %s", i+1, m), x+12, 10, 16, ColText)
	}
}

func (a *App) DrawHUD() {
	st := a.Ctrl.State()
	y := int32(a.Surface.H) + tabBarHeight + 10

	status, col := "PLAYING", ColAccent
	if !st.Playing {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, 12, y, 16, col)

	view := st.View.String()
	if st.Mode == orbit.ModePtolemaic {
		view = "epicycle"
	}
	rl.DrawText(fmt.Sprintf("speed %.1fx   t %.2f   %s", st.Speed, st.Time, view), 110, y, 16, ColText)
	rl.DrawText("[SPACE] PLAY  [R] RESET  [1-3] MODE  [V] VIEW  [+/-] SPEED  [Q] QUIT", 12, int32(a.Surface.H)+tabBarHeight-20, 12, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(a.Surface.W)-70, y, 14, ColTextDim)

	a.DrawTelemetry()
}

// DrawTelemetry plots the apparent longitude in the top-right corner.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}
	width, height := 240, 60
	rectX, rectY := int(a.Surface.W)-width-20, tabBarHeight+10

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(telemetryCap))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, toColor(render.White, 0.8))
	rl.DrawText("apparent longitude", int32(rectX), int32(rectY+height+4), 12, ColTextDim)
}
