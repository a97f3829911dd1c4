package orbit

import "fmt"

// Snapshot is the set of positions computed for one frame. Which fields are
// meaningful depends on Mode.
type Snapshot struct {
	Mode   Mode
	Time   float64
	Center Point

	Planet Point

	// Heliocentric modes.
	Earth     Point
	Apparent  Point
	GeoSun    Point
	GeoPlanet Point
	// ApparentHeld is set when Earth and planet coincided and Apparent
	// carries the previous frame's value.
	ApparentHeld bool

	// Ptolemaic mode.
	EpicycleCenter Point
	Sun            Point
	DeferentAngle  float64
	EpicycleAngle  float64
}

// Sample is one body position destined for a trail series.
type Sample struct {
	Body  Body
	Point Point
}

// Samples lists the snapshot's trail points in the order of Mode.Series.
func (s Snapshot) Samples() []Sample {
	if s.Mode == ModePtolemaic {
		return []Sample{
			{BodyPlanet, s.Planet},
			{BodyEpicycleCenter, s.EpicycleCenter},
			{BodySun, s.Sun},
		}
	}
	return []Sample{
		{BodyPlanet, s.Planet},
		{BodyEarth, s.Earth},
		{BodyApparent, s.Apparent},
		{BodyGeoPlanet, s.GeoPlanet},
		{BodyGeoSun, s.GeoSun},
	}
}

// Model computes the snapshot of one mode at time t. prev is the previous
// snapshot of the same mode, nil when none, and is only consulted to hold
// values that are undefined at t.
type Model interface {
	Mode() Mode
	Positions(t float64, center Point, prev *Snapshot) Snapshot
}

// NewModel is the single dispatch point from a mode to its model.
func NewModel(m Mode, sphereRadius float64) (Model, error) {
	switch m {
	case ModeVenus, ModeMars:
		cfg, _ := PlanetTable(m)
		return &HeliocentricModel{mode: m, Config: cfg, SphereRadius: sphereRadius}, nil
	case ModePtolemaic:
		return &PtolemaicModel{Config: Ptolemaic}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
}

// HeliocentricModel places the planet and Earth on circles around the Sun.
type HeliocentricModel struct {
	mode         Mode
	Config       PlanetConfig
	SphereRadius float64
}

// NewHeliocentric builds a model from an arbitrary table, for modes that
// reuse the heliocentric layout with other bodies.
func NewHeliocentric(m Mode, cfg PlanetConfig, sphereRadius float64) *HeliocentricModel {
	return &HeliocentricModel{mode: m, Config: cfg, SphereRadius: sphereRadius}
}

func (h *HeliocentricModel) Mode() Mode { return h.mode }

func (h *HeliocentricModel) Positions(t float64, center Point, prev *Snapshot) Snapshot {
	planet := PositionOnCircle(center, h.Config.PlanetOrbitRadius, t*h.Config.PlanetAngularSpeed)
	earth := PositionOnCircle(center, h.Config.EarthOrbitRadius, t*h.Config.EarthAngularSpeed)

	s := Snapshot{Mode: h.mode, Time: t, Center: center, Planet: planet, Earth: earth}

	if apparent, ok := Apparent(earth, planet, h.SphereRadius); ok {
		s.Apparent = apparent
	} else {
		s.ApparentHeld = true
		s.Apparent = earth
		if prev != nil && prev.Mode == h.mode && prev.Apparent.IsValid() {
			s.Apparent = prev.Apparent
		}
	}

	s.GeoSun, s.GeoPlanet = Geocentric(center, earth, planet)
	return s
}

// PtolemaicModel carries the planet on an epicycle whose centre rides the
// deferent around Earth; the Sun circles Earth independently.
type PtolemaicModel struct {
	Config EpicycleConfig
}

func (p *PtolemaicModel) Mode() Mode { return ModePtolemaic }

func (p *PtolemaicModel) Positions(t float64, center Point, _ *Snapshot) Snapshot {
	deferentAngle := t * p.Config.DeferentAngularSpeed
	epicycleAngle := t * p.Config.EpicycleAngularSpeed

	epicycleCenter := PositionOnCircle(center, p.Config.DeferentRadius, deferentAngle)
	return Snapshot{
		Mode:           ModePtolemaic,
		Time:           t,
		Center:         center,
		Planet:         PositionOnCircle(epicycleCenter, p.Config.EpicycleRadius, epicycleAngle),
		EpicycleCenter: epicycleCenter,
		Sun:            PositionOnCircle(center, p.Config.SunOrbitRadius, t*p.Config.SunAngularSpeed),
		DeferentAngle:  deferentAngle,
		EpicycleAngle:  epicycleAngle,
	}
}
