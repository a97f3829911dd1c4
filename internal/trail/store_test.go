package trail

import (
	"errors"
	"testing"

	"github.com/san-kum/epicycle/internal/orbit"
)

func TestAppendBounded(t *testing.T) {
	tests := []struct {
		capacity int
		appends  int
		evicted  int
	}{
		{5, 3, 0},
		{5, 5, 0},
		{5, 6, 1},
		{5, 20, 15},
		{500, 1200, 700},
	}

	for _, tt := range tests {
		s := New(tt.capacity, orbit.BodyPlanet)
		total := 0
		for i := 0; i < tt.appends; i++ {
			n, err := s.Append(orbit.BodyPlanet, orbit.Pt(float64(i), 0))
			if err != nil {
				t.Fatal(err)
			}
			total += n
			if s.Len(orbit.BodyPlanet) > tt.capacity {
				t.Fatalf("length %d exceeds capacity %d", s.Len(orbit.BodyPlanet), tt.capacity)
			}
		}
		if total != tt.evicted {
			t.Errorf("cap=%d appends=%d: evicted %d, want %d", tt.capacity, tt.appends, total, tt.evicted)
		}

		pts := s.Points(orbit.BodyPlanet)
		first := tt.appends - len(pts)
		for i, p := range pts {
			if p.X != float64(first+i) {
				t.Fatalf("point %d is %v, want x=%d", i, p, first+i)
			}
		}
	}
}

func TestUnknownSeries(t *testing.T) {
	s := ForMode(orbit.ModePtolemaic, 10)
	_, err := s.Append(orbit.BodyApparent, orbit.Pt(0, 0))
	if !errors.Is(err, ErrUnknownSeries) {
		t.Errorf("expected ErrUnknownSeries, got %v", err)
	}
	if s.Points(orbit.BodyApparent) != nil {
		t.Error("expected nil points for unknown series")
	}
}

func TestClear(t *testing.T) {
	s := ForMode(orbit.ModeVenus, 10)
	for _, b := range s.Names() {
		s.Append(b, orbit.Pt(1, 1))
	}
	s.Clear(orbit.BodyEarth)
	if s.Len(orbit.BodyEarth) != 0 {
		t.Error("earth not cleared")
	}
	if s.Len(orbit.BodyPlanet) != 1 {
		t.Error("planet should be untouched")
	}
	s.ClearAll()
	if s.Total() != 0 {
		t.Errorf("expected empty store, got %d points", s.Total())
	}
}

func TestPointsIsCopy(t *testing.T) {
	s := New(3, orbit.BodySun)
	s.Append(orbit.BodySun, orbit.Pt(1, 2))
	pts := s.Points(orbit.BodySun)
	pts[0] = orbit.Pt(9, 9)
	if got := s.Points(orbit.BodySun)[0]; got != orbit.Pt(1, 2) {
		t.Errorf("store mutated through copy: %v", got)
	}
}

func TestDefaultCapacity(t *testing.T) {
	if c := New(0).Capacity(); c != DefaultCapacity {
		t.Errorf("expected %d, got %d", DefaultCapacity, c)
	}
}
