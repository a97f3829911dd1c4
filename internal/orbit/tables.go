package orbit

// PlanetConfig describes a heliocentric mode: the observed planet and Earth
// on concentric circles around the Sun.
type PlanetConfig struct {
	PlanetOrbitRadius  float64 `yaml:"planet_orbit_radius"`
	EarthOrbitRadius   float64 `yaml:"earth_orbit_radius"`
	PlanetAngularSpeed float64 `yaml:"planet_angular_speed"`
	EarthAngularSpeed  float64 `yaml:"earth_angular_speed"`
	Color              string  `yaml:"color"`
	Name               string  `yaml:"name"`
}

// EpicycleConfig describes the Ptolemaic mode.
type EpicycleConfig struct {
	DeferentRadius       float64 `yaml:"deferent_radius"`
	EpicycleRadius       float64 `yaml:"epicycle_radius"`
	SunOrbitRadius       float64 `yaml:"sun_orbit_radius"`
	DeferentAngularSpeed float64 `yaml:"deferent_angular_speed"`
	EpicycleAngularSpeed float64 `yaml:"epicycle_angular_speed"`
	SunAngularSpeed      float64 `yaml:"sun_angular_speed"`
	Color                string  `yaml:"color"`
	Name                 string  `yaml:"name"`
}

// Venus is an inner planet: it never strays far from the Sun in the sky.
var Venus = PlanetConfig{
	PlanetOrbitRadius:  86,
	EarthOrbitRadius:   146,
	PlanetAngularSpeed: 1.625,
	EarthAngularSpeed:  1.0,
	Color:              "#FF6600",
	Name:               "Venus",
}

// Mars is an outer planet with visible retrograde loops at opposition.
var Mars = PlanetConfig{
	PlanetOrbitRadius:  193,
	EarthOrbitRadius:   146,
	PlanetAngularSpeed: 0.532,
	EarthAngularSpeed:  1.0,
	Color:              "#FF4444",
	Name:               "Mars",
}

var Ptolemaic = EpicycleConfig{
	DeferentRadius:       180,
	EpicycleRadius:       45,
	SunOrbitRadius:       280,
	DeferentAngularSpeed: 1.2,
	EpicycleAngularSpeed: 4.5,
	SunAngularSpeed:      1.2,
	Color:                "#FF6600",
	Name:                 "Venus",
}

// PlanetTable returns the heliocentric table for m.
func PlanetTable(m Mode) (PlanetConfig, bool) {
	switch m {
	case ModeVenus:
		return Venus, true
	case ModeMars:
		return Mars, true
	}
	return PlanetConfig{}, false
}
