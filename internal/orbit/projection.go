package orbit

import "math"

// Apparent projects the planet's direction as seen from Earth onto a
// reference sphere of the given radius centred on Earth. ok is false when the
// two bodies coincide and the direction is undefined.
func Apparent(earth, planet Point, sphereRadius float64) (p Point, ok bool) {
	rel := planet.Sub(earth)
	dist := rel.Length()
	if dist == 0 {
		return Point{}, false
	}
	p = earth.Add(rel.Scale(sphereRadius / dist))
	if !p.IsValid() {
		return Point{}, false
	}
	return p, true
}

// Geocentric re-expresses heliocentric positions in a frame that holds Earth
// at center: the Sun is Earth's displacement reflected through center, and
// the planet keeps its offset from Earth.
func Geocentric(center, earth, planet Point) (sun, geoPlanet Point) {
	sun = center.Sub(earth.Sub(center))
	geoPlanet = center.Add(planet.Sub(earth))
	return sun, geoPlanet
}

// Longitude is the direction from one point to another in degrees,
// [0, 360), measured the same way as orbit angles.
func Longitude(from, to Point) float64 {
	d := to.Sub(from)
	deg := math.Atan2(d.Y, d.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Unwrap returns the value equivalent to next (mod 360) closest to prev, so
// a longitude series stays continuous across 0/360.
func Unwrap(prev, next float64) float64 {
	d := math.Mod(next-prev, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return prev + d
}

// ApparentLongitude is the planet's direction as seen from Earth, or from the
// centre in the Ptolemaic mode.
func (s Snapshot) ApparentLongitude() float64 {
	if s.Mode == ModePtolemaic {
		return Longitude(s.Center, s.Planet)
	}
	return Longitude(s.Earth, s.Planet)
}
