package clock

import (
	"errors"
	"math"
	"testing"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		speed float64
		ticks int
		want  float64
	}{
		{1.0, 1, 0.02},
		{1.0, 50, 1.0},
		{2.5, 10, 0.5},
		{0.1, 100, 0.2},
	}
	for _, tt := range tests {
		c := New(DefaultBaseStep, tt.speed)
		for i := 0; i < tt.ticks; i++ {
			c.Advance()
		}
		if math.Abs(c.Time-tt.want) > 1e-9 {
			t.Errorf("speed=%v ticks=%d: time %v, want %v", tt.speed, tt.ticks, c.Time, tt.want)
		}
	}
}

func TestPausedFreezesTime(t *testing.T) {
	c := New(DefaultBaseStep, 1)
	c.Advance()
	if c.Toggle() {
		t.Fatal("expected paused after toggle")
	}
	before := c.Time
	for i := 0; i < 10; i++ {
		if c.Advance() {
			t.Error("advance reported progress while paused")
		}
	}
	if c.Time != before {
		t.Errorf("time moved while paused: %v -> %v", before, c.Time)
	}
}

func TestSetSpeed(t *testing.T) {
	c := New(DefaultBaseStep, 1)
	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := c.SetSpeed(bad); !errors.Is(err, ErrInvalidSpeed) {
			t.Errorf("SetSpeed(%v): expected ErrInvalidSpeed, got %v", bad, err)
		}
	}
	if c.Speed != 1 {
		t.Errorf("speed changed on rejected input: %v", c.Speed)
	}
	if err := c.SetSpeed(3); err != nil || c.Speed != 3 {
		t.Errorf("SetSpeed(3): %v, speed %v", err, c.Speed)
	}
}

func TestReset(t *testing.T) {
	c := New(DefaultBaseStep, 2)
	c.Advance()
	c.Toggle()
	c.Reset()
	if c.Time != 0 {
		t.Errorf("time %v after reset", c.Time)
	}
	if c.Playing || c.Speed != 2 {
		t.Error("reset should keep play state and speed")
	}
}

func TestSeek(t *testing.T) {
	c := New(DefaultBaseStep, 2)
	c.Toggle()
	for _, bad := range []float64{-0.5, math.NaN(), math.Inf(1)} {
		if err := c.Seek(bad); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("Seek(%v): expected ErrInvalidTime, got %v", bad, err)
		}
	}
	if err := c.Seek(math.Pi); err != nil {
		t.Fatal(err)
	}
	if c.Time != math.Pi || c.Playing || c.Speed != 2 {
		t.Errorf("after seek: %+v", *c)
	}
}
