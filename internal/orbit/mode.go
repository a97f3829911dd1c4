package orbit

import "fmt"

// Mode selects which sky model drives the scene.
type Mode int

const (
	ModeVenus Mode = iota
	ModeMars
	ModePtolemaic
)

// Modes lists every mode in tab order.
var Modes = []Mode{ModeVenus, ModeMars, ModePtolemaic}

var modeNames = map[Mode]string{
	ModeVenus:     "venus",
	ModeMars:      "mars",
	ModePtolemaic: "ptolemaic",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Heliocentric reports whether the mode is Sun-centred.
func (m Mode) Heliocentric() bool { return m == ModeVenus || m == ModeMars }

// Series returns the closed set of trail series recorded for the mode, in
// drawing order.
func (m Mode) Series() []Body {
	if m == ModePtolemaic {
		return []Body{BodyPlanet, BodyEpicycleCenter, BodySun}
	}
	return []Body{BodyPlanet, BodyEarth, BodyApparent, BodyGeoPlanet, BodyGeoSun}
}

// ParseMode maps an identifier such as "mars" to its Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// View selects the presentation of a heliocentric mode.
type View int

const (
	ViewTopDown View = iota
	ViewFromEarth
)

var viewNames = map[View]string{
	ViewTopDown:   "top-down",
	ViewFromEarth: "from-earth",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// Next cycles to the other view.
func (v View) Next() View {
	if v == ViewTopDown {
		return ViewFromEarth
	}
	return ViewTopDown
}

func ParseView(s string) (View, error) {
	for v, name := range viewNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Body names a tracked position; it doubles as the trail series name.
type Body string

const (
	BodyPlanet         Body = "planet"
	BodyEarth          Body = "earth"
	BodyApparent       Body = "apparent"
	BodyGeoPlanet      Body = "geoPlanet"
	BodyGeoSun         Body = "geoSun"
	BodyEpicycleCenter Body = "epicycleCenter"
	BodySun            Body = "sun"
)
