// Package scene owns the simulation state and turns it into frames.
package scene

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/san-kum/epicycle/internal/clock"
	"github.com/san-kum/epicycle/internal/logging"
	"github.com/san-kum/epicycle/internal/observability"
	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/render"
	"github.com/san-kum/epicycle/internal/trail"
)

var ErrStopped = errors.New("scene: loop stopped")

// ResetScope selects which trail stores a reset or mode switch clears.
type ResetScope string

const (
	// ResetActive clears only the store of the mode being shown.
	ResetActive ResetScope = "active"
	// ResetAll clears every mode's store.
	ResetAll ResetScope = "all"
)

func ParseResetScope(s string) (ResetScope, error) {
	switch ResetScope(s) {
	case ResetActive, ResetAll:
		return ResetScope(s), nil
	case "":
		return ResetActive, nil
	}
	return "", fmt.Errorf("scene: unknown reset scope %q", s)
}

type Options struct {
	BaseStep     float64
	Speed        float64
	TrailLength  int
	SphereRadius float64
	Width        float64
	Height       float64
	Mode         orbit.Mode
	View         orbit.View
	ResetScope   ResetScope
	Logger       logging.Logger
	Metrics      *observability.Metrics
}

func DefaultOptions() Options {
	return Options{
		BaseStep:     clock.DefaultBaseStep,
		Speed:        1,
		TrailLength:  trail.DefaultCapacity,
		SphereRadius: 300,
		Width:        1000,
		Height:       800,
		Mode:         orbit.ModeVenus,
		View:         orbit.ViewTopDown,
		ResetScope:   ResetActive,
	}
}

// State is a read-only copy of the controller's simulation state.
type State struct {
	Time    float64
	Speed   float64
	Playing bool
	Mode    orbit.Mode
	View    orbit.View
}

// Controller serializes every mutation and every frame behind one mutex, so
// host callbacks are atomic with respect to a tick.
type Controller struct {
	mu sync.Mutex

	opts   Options
	log    logging.Logger
	clock  *clock.Clock
	mode   orbit.Mode
	view   orbit.View
	center orbit.Point

	models map[orbit.Mode]orbit.Model
	trails map[orbit.Mode]*trail.Store
	last   map[orbit.Mode]*orbit.Snapshot
	snap   orbit.Snapshot
}

func New(opts Options) (*Controller, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Noop()
	}
	if opts.ResetScope == "" {
		opts.ResetScope = ResetActive
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("scene: invalid canvas %vx%v", opts.Width, opts.Height)
	}

	c := &Controller{
		opts:   opts,
		log:    opts.Logger,
		clock:  clock.New(opts.BaseStep, opts.Speed),
		view:   opts.View,
		center: orbit.Pt(opts.Width/2, opts.Height/2),
		models: make(map[orbit.Mode]orbit.Model, len(orbit.Modes)),
		trails: make(map[orbit.Mode]*trail.Store, len(orbit.Modes)),
		last:   make(map[orbit.Mode]*orbit.Snapshot, len(orbit.Modes)),
	}
	for _, m := range orbit.Modes {
		model, err := orbit.NewModel(m, opts.SphereRadius)
		if err != nil {
			return nil, err
		}
		c.models[m] = model
		c.trails[m] = trail.ForMode(m, opts.TrailLength)
	}
	if _, ok := c.models[opts.Mode]; !ok {
		return nil, fmt.Errorf("%w: %d", orbit.ErrUnknownMode, int(opts.Mode))
	}
	if _, err := orbit.ParseView(opts.View.String()); err != nil {
		return nil, err
	}
	c.mode = opts.Mode
	c.snap = c.compute()
	return c, nil
}

// UseModel replaces the model driving m. The mode's trail and history are
// cleared.
func (c *Controller) UseModel(m orbit.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models[m.Mode()] = m
	c.trails[m.Mode()].ClearAll()
	c.last[m.Mode()] = nil
	if m.Mode() == c.mode {
		c.snap = c.compute()
	}
}

// Tick advances the clock one step, recomputes the snapshot and, while
// playing, appends it to the active mode's trails.
func (c *Controller) Tick() orbit.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := time.Now()
	playing := c.tick()
	c.opts.Metrics.ObserveFrame(c.mode.String(), playing, time.Since(start))
	return c.snap
}

// Frame ticks and draws the result onto s.
func (c *Controller) Frame(s render.Surface) orbit.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := time.Now()
	playing := c.tick()
	render.Draw(s, c.frame())
	c.opts.Metrics.ObserveFrame(c.mode.String(), playing, time.Since(start))
	return c.snap
}

// Render draws the current snapshot without advancing.
func (c *Controller) Render(s render.Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	render.Draw(s, c.frame())
}

func (c *Controller) tick() bool {
	advanced := c.clock.Advance()
	c.snap = c.compute()
	if !advanced {
		return false
	}
	c.record()
	return true
}

// record appends the current snapshot to the active trails and makes it the
// mode's history.
func (c *Controller) record() {
	if c.snap.ApparentHeld {
		c.opts.Metrics.GuardHit()
		c.log.Debug(context.Background(), "apparent position held",
			logging.Stringer("mode", c.mode), logging.Float("time", c.snap.Time))
	}
	store := c.trails[c.mode]
	for _, s := range c.snap.Samples() {
		n, err := store.Append(s.Body, s.Point)
		if err != nil {
			c.log.Error(context.Background(), "append trail", logging.Err(err))
			continue
		}
		c.opts.Metrics.Evicted(c.mode.String(), string(s.Body), n)
	}
	snap := c.snap
	c.last[c.mode] = &snap
}

func (c *Controller) compute() orbit.Snapshot {
	return c.models[c.mode].Positions(c.clock.Time, c.center, c.last[c.mode])
}

func (c *Controller) frame() render.Frame {
	f := render.Frame{
		Snapshot: c.snap,
		Trails:   c.trails[c.mode],
		View:     c.view,
		Epicycle: orbit.Ptolemaic,
	}
	switch m := c.models[c.mode].(type) {
	case *orbit.HeliocentricModel:
		f.Planet = m.Config
	case *orbit.PtolemaicModel:
		f.Epicycle = m.Config
	}
	return f
}

func (c *Controller) Snapshot() orbit.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Time:    c.clock.Time,
		Speed:   c.clock.Speed,
		Playing: c.clock.Playing,
		Mode:    c.mode,
		View:    c.view,
	}
}

// TogglePlay flips between playing and paused and returns the new state.
func (c *Controller) TogglePlay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	playing := c.clock.Toggle()
	c.log.Info(context.Background(), "toggle", logging.Bool("playing", playing))
	return playing
}

func (c *Controller) SetSpeed(v float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock.SetSpeed(v)
}

// Reset rewinds time to zero and clears trails per the reset scope.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	c.opts.Metrics.Reset(observability.CauseReset)
	c.log.Info(context.Background(), "reset", logging.Stringer("mode", c.mode))
}

func (c *Controller) reset() {
	c.clock.Reset()
	if c.opts.ResetScope == ResetAll {
		for m, store := range c.trails {
			store.ClearAll()
			c.last[m] = nil
		}
	} else {
		c.trails[c.mode].ClearAll()
		c.last[c.mode] = nil
	}
	c.snap = c.compute()
}

// Seek jumps the active mode to time t. Its trails are rebuilt from at most
// TrailLength steps ending exactly at t. Play state and speed are kept.
func (c *Controller) Seek(t float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.clock.Seek(t); err != nil {
		return err
	}
	c.trails[c.mode].ClearAll()
	c.last[c.mode] = nil

	step := c.clock.BaseStep * c.clock.Speed
	k := min(float64(c.trails[c.mode].Capacity()-1), math.Floor(t/step))
	for i := int(k); i >= 0; i-- {
		c.clock.Time = t - float64(i)*step
		c.snap = c.compute()
		c.record()
	}
	c.clock.Time = t
	c.log.Debug(context.Background(), "seek", logging.Stringer("mode", c.mode), logging.Float("time", t))
	return nil
}

// SetMode switches to m, resetting time and trails. Selecting the current
// mode does nothing.
func (c *Controller) SetMode(m orbit.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.models[m]; !ok {
		return fmt.Errorf("%w: %d", orbit.ErrUnknownMode, int(m))
	}
	if m == c.mode {
		return nil
	}
	c.mode = m
	c.reset()
	c.opts.Metrics.Reset(observability.CauseMode)
	c.log.Info(context.Background(), "mode switched", logging.Stringer("mode", m))
	return nil
}

// SetView changes the presentation only.
func (c *Controller) SetView(v orbit.View) error {
	if _, err := orbit.ParseView(v.String()); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
	return nil
}

// Trail returns a copy of a series of the active mode.
func (c *Controller) Trail(b orbit.Body) []orbit.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trails[c.mode].Points(b)
}

// TrailOf returns a copy of a series of any mode.
func (c *Controller) TrailOf(m orbit.Mode, b orbit.Body) []orbit.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	store, ok := c.trails[m]
	if !ok {
		return nil
	}
	return store.Points(b)
}

func (c *Controller) Size() (w, h float64) { return c.opts.Width, c.opts.Height }
