package render

import (
	"github.com/san-kum/epicycle/internal/orbit"
)

// TrailSource is the read side of a trail store.
type TrailSource interface {
	View(name orbit.Body) []orbit.Point
}

// Frame is everything Draw needs for one picture.
type Frame struct {
	Snapshot orbit.Snapshot
	Trails   TrailSource
	View     orbit.View
	Planet   orbit.PlanetConfig
	Epicycle orbit.EpicycleConfig
}

func (f Frame) trail(b orbit.Body) []orbit.Point {
	if f.Trails == nil {
		return nil
	}
	return f.Trails.View(b)
}

// Draw paints f onto s in a fixed order: background, reference geometry,
// trails, guide lines, bodies, labels.
func Draw(s Surface, f Frame) {
	w, h := s.Size()
	s.FillRect(0, 0, w, h, Background)

	switch {
	case f.Snapshot.Mode == orbit.ModePtolemaic:
		drawPtolemaic(s, f)
	case f.View == orbit.ViewFromEarth:
		drawFromEarth(s, f)
	default:
		drawTopDown(s, f)
	}
}

func drawTopDown(s Surface, f Frame) {
	snap := f.Snapshot
	c := snap.Center
	planetColor := Hex(f.Planet.Color)

	DashedCircle(s, c, f.Planet.PlanetOrbitRadius, Dashed(OrbitColor, 1, 5, 5))
	DashedCircle(s, c, f.Planet.EarthOrbitRadius, Dashed(OrbitColor, 1, 5, 5))

	FadingTrail(s, f.trail(orbit.BodyPlanet), planetColor, 2, TrailAlpha)
	FadingTrail(s, f.trail(orbit.BodyEarth), EarthColor, 2, TrailAlpha)
	GlowTrail(s, f.trail(orbit.BodyApparent))

	Guide(s, snap.Earth, snap.Planet, Dashed(GuideColor, 1, 3, 3))
	Guide(s, snap.Earth, snap.Apparent, Solid(SightColor, 2))

	Marker(s, c, 15, SunColor)
	Marker(s, snap.Planet, 8, planetColor)
	Marker(s, snap.Earth, 10, EarthColor)
	Marker(s, snap.Apparent, 6, White)

	Label(s, c.Add(orbit.Pt(20, 0)), "Sun")
	Label(s, snap.Planet.Add(orbit.Pt(15, 0)), f.Planet.Name)
	Label(s, snap.Earth.Add(orbit.Pt(15, 0)), "Earth")
	Label(s, snap.Apparent.Add(orbit.Pt(10, -10)), "apparent position")
}

func drawFromEarth(s Surface, f Frame) {
	snap := f.Snapshot
	c := snap.Center
	planetColor := Hex(f.Planet.Color)

	FadingTrail(s, f.trail(orbit.BodyGeoSun), SunColor, 2, TrailAlpha)
	FadingTrail(s, f.trail(orbit.BodyGeoPlanet), planetColor, 2, TrailAlpha)

	Guide(s, c, snap.GeoPlanet, Dashed(GuideColor, 1, 3, 3))

	Marker(s, c, 10, EarthColor)
	Marker(s, snap.GeoSun, 15, SunColor)
	Marker(s, snap.GeoPlanet, 8, planetColor)

	Label(s, c.Add(orbit.Pt(15, 0)), "Earth (center)")
	Label(s, snap.GeoSun.Add(orbit.Pt(20, 0)), "Sun")
	Label(s, snap.GeoPlanet.Add(orbit.Pt(15, 0)), f.Planet.Name)
}

func drawPtolemaic(s Surface, f Frame) {
	snap := f.Snapshot
	c := snap.Center
	cfg := f.Epicycle
	planetColor := Hex(cfg.Color)

	DashedCircle(s, c, cfg.DeferentRadius, Dashed(Deferent, 2, 5, 5))
	DashedCircle(s, snap.EpicycleCenter, cfg.EpicycleRadius, Dashed(EpicycleRim, 1, 3, 3))

	FadingTrail(s, f.trail(orbit.BodyEpicycleCenter), CenterColor, 2, TrailAlpha)
	FadingTrail(s, f.trail(orbit.BodyPlanet), planetColor, 3, TrailAlpha)
	FadingTrail(s, f.trail(orbit.BodySun), SunColor, 2, TrailAlpha)

	Guide(s, snap.EpicycleCenter, snap.Planet, Dashed(GuideColor, 2, 2, 2))
	Guide(s, c, snap.EpicycleCenter, Dashed(Caption, 1, 1, 1))

	Marker(s, c, 12, EarthColor)
	Marker(s, snap.EpicycleCenter, 4, CenterColor)
	Marker(s, snap.Planet, 8, planetColor)
	Marker(s, snap.Sun, 10, SunColor)

	Label(s, c.Add(orbit.Pt(20, 0)), "Earth (center)")
	Label(s, snap.EpicycleCenter.Add(orbit.Pt(10, -10)), "epicycle center")
	Label(s, snap.Planet.Add(orbit.Pt(15, 0)), cfg.Name)
	Label(s, snap.Sun.Add(orbit.Pt(12, 0)), "Sun")
	s.Text(snap.EpicycleCenter.Add(orbit.Pt(cfg.EpicycleRadius-40, -cfg.EpicycleRadius-10)), "epicycle", 12, Caption)
}
