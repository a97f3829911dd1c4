// Package clock advances simulation time.
package clock

import (
	"errors"
	"fmt"
	"math"
)

const DefaultBaseStep = 0.02

var (
	ErrInvalidSpeed = errors.New("clock: speed must be positive and finite")
	ErrInvalidTime  = errors.New("clock: time must be non-negative and finite")
)

// Clock is the play state and time of a scene. Time only moves while
// Playing.
type Clock struct {
	Time     float64
	Speed    float64
	Playing  bool
	BaseStep float64
}

func New(baseStep, speed float64) *Clock {
	if baseStep <= 0 {
		baseStep = DefaultBaseStep
	}
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		speed = 1
	}
	return &Clock{Speed: speed, Playing: true, BaseStep: baseStep}
}

// Advance moves time forward by one step when playing and reports whether
// it did.
func (c *Clock) Advance() bool {
	if !c.Playing {
		return false
	}
	c.Time += c.BaseStep * c.Speed
	return true
}

func (c *Clock) Toggle() bool {
	c.Playing = !c.Playing
	return c.Playing
}

func (c *Clock) SetSpeed(s float64) error {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, s)
	}
	c.Speed = s
	return nil
}

// Seek sets time to t. Play state and speed are kept.
func (c *Clock) Seek(t float64) error {
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTime, t)
	}
	c.Time = t
	return nil
}

// Reset rewinds time to zero. Play state and speed are kept.
func (c *Clock) Reset() { c.Time = 0 }
