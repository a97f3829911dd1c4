package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/epicycle/internal/clock"
	"github.com/san-kum/epicycle/internal/logging"
	"github.com/san-kum/epicycle/internal/observability"
	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/scene"
	"github.com/san-kum/epicycle/internal/trail"
)

const (
	DefaultWidth        = 1000
	DefaultHeight       = 800
	DefaultFPS          = 60
	DefaultSpeed        = 1.0
	DefaultSpeedMin     = 0.1
	DefaultSpeedMax     = 5.0
	DefaultSpeedStep    = 0.1
	DefaultSphereRadius = 300.0
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Mode         string         `yaml:"mode"`
	View         string         `yaml:"view"`
	Speed        float64        `yaml:"speed"`
	SpeedRange   SpeedRange     `yaml:"speed_range"`
	BaseStep     float64        `yaml:"base_step"`
	TrailLength  int            `yaml:"trail_length"`
	SphereRadius float64        `yaml:"sphere_radius"`
	ResetScope   string         `yaml:"reset_scope"`
	Window       WindowConfig   `yaml:"window"`
	Log          logging.Config `yaml:"log"`
	Tables       TablesConfig   `yaml:"tables,omitempty"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

// SpeedRange bounds the speed control. Step is the keyboard increment.
type SpeedRange struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

func (r SpeedRange) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Nudge moves v by n steps and clamps, rounding to the step grid so repeated
// presses do not drift.
func (r SpeedRange) Nudge(v float64, n int) float64 {
	next := v + float64(n)*r.Step
	if r.Step > 0 {
		next = math.Round(next/r.Step) * r.Step
	}
	return r.Clamp(next)
}

// TablesConfig overrides the built-in mode tables. Nil entries keep the
// defaults.
type TablesConfig struct {
	Venus     *orbit.PlanetConfig   `yaml:"venus,omitempty"`
	Mars      *orbit.PlanetConfig   `yaml:"mars,omitempty"`
	Ptolemaic *orbit.EpicycleConfig `yaml:"ptolemaic,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:  orbit.ModeVenus.String(),
		View:  orbit.ViewTopDown.String(),
		Speed: DefaultSpeed,
		SpeedRange: SpeedRange{
			Min:  DefaultSpeedMin,
			Max:  DefaultSpeedMax,
			Step: DefaultSpeedStep,
		},
		BaseStep:     clock.DefaultBaseStep,
		TrailLength:  trail.DefaultCapacity,
		SphereRadius: DefaultSphereRadius,
		ResetScope:   string(scene.ResetActive),
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
		Log: logging.Config{Level: "info", Format: "text"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(field string, v any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalid, field, v)
}

func (c *Config) Validate() error {
	if _, err := orbit.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := orbit.ParseView(c.View); err != nil {
		return err
	}
	if _, err := scene.ParseResetScope(c.ResetScope); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	r := c.SpeedRange
	if !(r.Min > 0) || !(r.Max >= r.Min) || math.IsInf(r.Max, 0) || r.Step < 0 {
		return invalid("speed_range", fmt.Sprintf("[%v, %v] step %v", r.Min, r.Max, r.Step))
	}
	if c.Speed < r.Min || c.Speed > r.Max || math.IsNaN(c.Speed) {
		return invalid("speed", c.Speed)
	}
	if !(c.BaseStep > 0) || math.IsInf(c.BaseStep, 0) {
		return invalid("base_step", c.BaseStep)
	}
	if c.TrailLength <= 0 {
		return invalid("trail_length", c.TrailLength)
	}
	if !(c.SphereRadius > 0) || math.IsInf(c.SphereRadius, 0) {
		return invalid("sphere_radius", c.SphereRadius)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window", fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPS < 0 {
		return invalid("window.fps", c.Window.FPS)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return invalid("log.level", c.Log.Level)
	}
	for name, t := range map[string]*orbit.PlanetConfig{"venus": c.Tables.Venus, "mars": c.Tables.Mars} {
		if t != nil && (t.PlanetOrbitRadius < 0 || t.EarthOrbitRadius < 0) {
			return invalid("tables."+name, "negative radius")
		}
	}
	if t := c.Tables.Ptolemaic; t != nil && (t.DeferentRadius < 0 || t.EpicycleRadius < 0 || t.SunOrbitRadius < 0) {
		return invalid("tables.ptolemaic", "negative radius")
	}
	return nil
}

// NewController builds a scene from the config. The config must be valid.
func (c *Config) NewController(log logging.Logger, metrics *observability.Metrics) (*scene.Controller, error) {
	mode, err := orbit.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	view, err := orbit.ParseView(c.View)
	if err != nil {
		return nil, err
	}
	scope, err := scene.ParseResetScope(c.ResetScope)
	if err != nil {
		return nil, err
	}

	ctrl, err := scene.New(scene.Options{
		BaseStep:     c.BaseStep,
		Speed:        c.Speed,
		TrailLength:  c.TrailLength,
		SphereRadius: c.SphereRadius,
		Width:        float64(c.Window.Width),
		Height:       float64(c.Window.Height),
		Mode:         mode,
		View:         view,
		ResetScope:   scope,
		Logger:       log,
		Metrics:      metrics,
	})
	if err != nil {
		return nil, err
	}

	if t := c.Tables.Venus; t != nil {
		ctrl.UseModel(orbit.NewHeliocentric(orbit.ModeVenus, *t, c.SphereRadius))
	}
	if t := c.Tables.Mars; t != nil {
		ctrl.UseModel(orbit.NewHeliocentric(orbit.ModeMars, *t, c.SphereRadius))
	}
	if t := c.Tables.Ptolemaic; t != nil {
		ctrl.UseModel(&orbit.PtolemaicModel{Config: *t})
	}
	return ctrl, nil
}
