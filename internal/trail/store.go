// Package trail keeps bounded position histories, one series per tracked
// body.
package trail

import (
	"errors"
	"fmt"

	"github.com/san-kum/epicycle/internal/orbit"
)

// DefaultCapacity is the number of points kept per series.
const DefaultCapacity = 500

var ErrUnknownSeries = errors.New("trail: unknown series")

// Store maps series names to their points, oldest first. The set of series
// is fixed at construction.
type Store struct {
	capacity int
	names    []orbit.Body
	series   map[orbit.Body][]orbit.Point
}

// New creates a store with the given series. A non-positive capacity falls
// back to DefaultCapacity.
func New(capacity int, names ...orbit.Body) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		capacity: capacity,
		names:    append([]orbit.Body(nil), names...),
		series:   make(map[orbit.Body][]orbit.Point, len(names)),
	}
	for _, n := range names {
		s.series[n] = make([]orbit.Point, 0, capacity)
	}
	return s
}

// ForMode creates a store holding the mode's series.
func ForMode(m orbit.Mode, capacity int) *Store {
	return New(capacity, m.Series()...)
}

// Append pushes p onto the series and drops the oldest points beyond
// capacity. It returns how many points were dropped.
func (s *Store) Append(name orbit.Body, p orbit.Point) (int, error) {
	pts, ok := s.series[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSeries, name)
	}
	pts = append(pts, p)
	evicted := 0
	if len(pts) > s.capacity {
		evicted = len(pts) - s.capacity
		// shift in place so the backing array does not grow without bound
		n := copy(pts, pts[evicted:])
		pts = pts[:n]
	}
	s.series[name] = pts
	return evicted, nil
}

func (s *Store) Clear(name orbit.Body) {
	if pts, ok := s.series[name]; ok {
		s.series[name] = pts[:0]
	}
}

func (s *Store) ClearAll() {
	for n, pts := range s.series {
		s.series[n] = pts[:0]
	}
}

// Points returns a copy of the series, oldest first. Unknown series yield nil.
func (s *Store) Points(name orbit.Body) []orbit.Point {
	pts, ok := s.series[name]
	if !ok {
		return nil
	}
	out := make([]orbit.Point, len(pts))
	copy(out, pts)
	return out
}

// View returns the series without copying. The slice is only valid until the
// next Append or Clear.
func (s *Store) View(name orbit.Body) []orbit.Point {
	return s.series[name]
}

func (s *Store) Len(name orbit.Body) int { return len(s.series[name]) }

func (s *Store) Names() []orbit.Body { return append([]orbit.Body(nil), s.names...) }

func (s *Store) Capacity() int { return s.capacity }

// Total is the number of points held across all series.
func (s *Store) Total() int {
	n := 0
	for _, pts := range s.series {
		n += len(pts)
	}
	return n
}
