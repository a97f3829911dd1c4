package scene

import (
	"errors"
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/epicycle/internal/clock"
	"github.com/san-kum/epicycle/internal/observability"
	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/render"
)

type countingSurface struct {
	fills, lines, disks int
}

func (s *countingSurface) Size() (float64, float64)                                { return 1000, 800 }
func (s *countingSurface) FillRect(x, y, w, h float64, c color.RGBA)               { s.fills++ }
func (s *countingSurface) Line(a, b orbit.Point, st render.Stroke)                 { s.lines++ }
func (s *countingSurface) Circle(c orbit.Point, r float64, st render.Stroke)       {}
func (s *countingSurface) Disk(c orbit.Point, r float64, col color.RGBA)           { s.disks++ }
func (s *countingSurface) Text(at orbit.Point, t string, sz float64, c color.RGBA) {}

func newController(mutate func(*Options)) *Controller {
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	c, err := New(opts)
	Expect(err).NotTo(HaveOccurred())
	return c
}

func ticks(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

var _ = Describe("Controller", func() {
	var c *Controller

	BeforeEach(func() {
		c = newController(nil)
	})

	It("starts playing at time zero in venus top-down", func() {
		st := c.State()
		Expect(st.Time).To(Equal(0.0))
		Expect(st.Playing).To(BeTrue())
		Expect(st.Speed).To(Equal(1.0))
		Expect(st.Mode).To(Equal(orbit.ModeVenus))
		Expect(st.View).To(Equal(orbit.ViewTopDown))
		Expect(c.Trail(orbit.BodyPlanet)).To(BeEmpty())
	})

	It("advances time by base step times speed", func() {
		Expect(c.SetSpeed(2.5)).To(Succeed())
		ticks(c, 10)
		Expect(c.State().Time).To(BeNumerically("~", 10*clock.DefaultBaseStep*2.5, 1e-9))
		Expect(c.Trail(orbit.BodyPlanet)).To(HaveLen(10))
	})

	It("rejects invalid speeds", func() {
		err := c.SetSpeed(0)
		Expect(errors.Is(err, clock.ErrInvalidSpeed)).To(BeTrue())
		Expect(c.SetSpeed(math.NaN())).NotTo(Succeed())
		Expect(c.State().Speed).To(Equal(1.0))
	})

	Describe("pausing", func() {
		It("freezes the snapshot and trails", func() {
			ticks(c, 25)
			Expect(c.TogglePlay()).To(BeFalse())

			first := c.Tick()
			lengths := map[orbit.Body]int{}
			for _, b := range orbit.ModeVenus.Series() {
				lengths[b] = len(c.Trail(b))
			}
			for i := 0; i < 50; i++ {
				Expect(c.Tick()).To(Equal(first))
			}
			for b, n := range lengths {
				Expect(c.Trail(b)).To(HaveLen(n))
			}
		})

		It("still draws a frame while paused", func() {
			c.TogglePlay()
			s := &countingSurface{}
			c.Frame(s)
			Expect(s.fills).To(Equal(1))
			Expect(s.disks).To(BeNumerically(">", 0))
		})
	})

	Describe("reset", func() {
		It("rewinds time and clears the active trails", func() {
			ticks(c, 40)
			c.Reset()
			Expect(c.State().Time).To(Equal(0.0))
			for _, b := range orbit.ModeVenus.Series() {
				Expect(c.Trail(b)).To(BeEmpty())
			}
		})

		It("replays deterministically", func() {
			ticks(c, 30)
			a := c.Snapshot()
			trailA := c.Trail(orbit.BodyApparent)

			c.Reset()
			ticks(c, 30)
			Expect(c.Snapshot()).To(Equal(a))
			Expect(c.Trail(orbit.BodyApparent)).To(Equal(trailA))
		})

		It("keeps other modes' trails under the active scope", func() {
			ticks(c, 10)
			Expect(c.SetMode(orbit.ModeMars)).To(Succeed())
			ticks(c, 5)
			c.Reset()
			Expect(c.TrailOf(orbit.ModeVenus, orbit.BodyPlanet)).To(HaveLen(10))
			Expect(c.TrailOf(orbit.ModeMars, orbit.BodyPlanet)).To(BeEmpty())
		})

		It("clears every mode under the all scope", func() {
			c = newController(func(o *Options) { o.ResetScope = ResetAll })
			ticks(c, 10)
			Expect(c.SetMode(orbit.ModeMars)).To(Succeed())
			Expect(c.TrailOf(orbit.ModeVenus, orbit.BodyPlanet)).To(BeEmpty())
			ticks(c, 5)
			c.Reset()
			Expect(c.TrailOf(orbit.ModeMars, orbit.BodyPlanet)).To(BeEmpty())
		})
	})

	Describe("seek", func() {
		It("lands exactly on the requested time", func() {
			t := math.Pi / 1.625
			Expect(c.Seek(t)).To(Succeed())
			Expect(c.State().Time).To(Equal(t))

			snap := c.Snapshot()
			Expect(snap.Time).To(Equal(t))
			Expect(snap.Planet.X).To(BeNumerically("~", 500-86, 1e-6))
			Expect(snap.Planet.Y).To(BeNumerically("~", 400, 1e-6))

			pts := c.Trail(orbit.BodyPlanet)
			Expect(pts).To(HaveLen(int(math.Floor(t/clock.DefaultBaseStep)) + 1))
			Expect(pts[len(pts)-1]).To(Equal(snap.Planet))
		})

		It("rebuilds at most a full trail for distant times", func() {
			c = newController(func(o *Options) { o.TrailLength = 50 })
			Expect(c.Seek(1e12)).To(Succeed())
			Expect(c.State().Time).To(Equal(1e12))
			for _, b := range orbit.ModeVenus.Series() {
				Expect(c.Trail(b)).To(HaveLen(50))
			}
		})

		It("rejects invalid times and keeps the state", func() {
			ticks(c, 5)
			before := c.State()
			for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
				Expect(errors.Is(c.Seek(bad), clock.ErrInvalidTime)).To(BeTrue())
			}
			Expect(c.State()).To(Equal(before))
			Expect(c.Trail(orbit.BodyPlanet)).To(HaveLen(5))
		})
	})

	Describe("mode switching", func() {
		It("clears the re-entered mode and keeps the one left", func() {
			ticks(c, 10)
			Expect(c.SetMode(orbit.ModeMars)).To(Succeed())
			ticks(c, 5)
			Expect(c.SetMode(orbit.ModeVenus)).To(Succeed())
			Expect(c.Trail(orbit.BodyPlanet)).To(BeEmpty())
			Expect(c.TrailOf(orbit.ModeMars, orbit.BodyPlanet)).To(HaveLen(5))
		})

		It("resets time and the entered mode", func() {
			ticks(c, 10)
			Expect(c.SetMode(orbit.ModePtolemaic)).To(Succeed())
			Expect(c.State().Time).To(Equal(0.0))
			Expect(c.Trail(orbit.BodyEpicycleCenter)).To(BeEmpty())

			snap := c.Snapshot()
			Expect(snap.Mode).To(Equal(orbit.ModePtolemaic))
			Expect(snap.EpicycleCenter.X).To(BeNumerically("~", 500+180, 1e-9))
		})

		It("ignores selecting the current mode", func() {
			ticks(c, 10)
			Expect(c.SetMode(orbit.ModeVenus)).To(Succeed())
			Expect(c.State().Time).To(BeNumerically(">", 0))
			Expect(c.Trail(orbit.BodyPlanet)).To(HaveLen(10))
		})

		It("rejects unknown modes", func() {
			err := c.SetMode(orbit.Mode(9))
			Expect(errors.Is(err, orbit.ErrUnknownMode)).To(BeTrue())
		})

		It("keeps time and trails when the view changes", func() {
			ticks(c, 10)
			Expect(c.SetView(orbit.ViewFromEarth)).To(Succeed())
			Expect(c.State().View).To(Equal(orbit.ViewFromEarth))
			Expect(c.Trail(orbit.BodyGeoSun)).To(HaveLen(10))
			Expect(c.State().Time).To(BeNumerically("~", 0.2, 1e-9))
		})
	})

	Describe("trail bound", func() {
		It("never exceeds the configured length", func() {
			c = newController(func(o *Options) { o.TrailLength = 20 })
			ticks(c, 100)
			for _, b := range orbit.ModeVenus.Series() {
				Expect(c.Trail(b)).To(HaveLen(20))
			}
			last := c.Trail(orbit.BodyPlanet)
			Expect(last[len(last)-1]).To(Equal(c.Snapshot().Planet))
		})
	})

	Describe("apparent guard", func() {
		It("never lets a non-finite point into the trails", func() {
			reg := prometheus.NewRegistry()
			m, err := observability.NewMetrics(reg)
			Expect(err).NotTo(HaveOccurred())
			c = newController(func(o *Options) { o.Metrics = m })

			same := orbit.PlanetConfig{PlanetOrbitRadius: 146, EarthOrbitRadius: 146, PlanetAngularSpeed: 1, EarthAngularSpeed: 1, Color: "#FF6600", Name: "Twin"}
			c.UseModel(orbit.NewHeliocentric(orbit.ModeVenus, same, 300))

			ticks(c, 20)
			Expect(c.Snapshot().ApparentHeld).To(BeTrue())
			for _, p := range c.Trail(orbit.BodyApparent) {
				Expect(p.IsValid()).To(BeTrue())
			}
			Expect(testutil.ToFloat64(m.GuardHits)).To(BeNumerically(">=", 20))
		})

		It("counts held positions only when time advances", func() {
			reg := prometheus.NewRegistry()
			m, err := observability.NewMetrics(reg)
			Expect(err).NotTo(HaveOccurred())
			c = newController(func(o *Options) { o.Metrics = m })

			same := orbit.PlanetConfig{PlanetOrbitRadius: 146, EarthOrbitRadius: 146, PlanetAngularSpeed: 1, EarthAngularSpeed: 1, Color: "#FF6600", Name: "Twin"}
			c.UseModel(orbit.NewHeliocentric(orbit.ModeVenus, same, 300))
			ticks(c, 3)
			hits := testutil.ToFloat64(m.GuardHits)

			c.TogglePlay()
			ticks(c, 25)
			Expect(c.Snapshot().ApparentHeld).To(BeTrue())
			Expect(testutil.ToFloat64(m.GuardHits)).To(Equal(hits))
		})
	})

	Describe("metrics", func() {
		It("counts frames, evictions and resets", func() {
			reg := prometheus.NewRegistry()
			m, err := observability.NewMetrics(reg)
			Expect(err).NotTo(HaveOccurred())
			c = newController(func(o *Options) {
				o.Metrics = m
				o.TrailLength = 5
			})

			ticks(c, 8)
			c.Reset()
			Expect(c.SetMode(orbit.ModeMars)).To(Succeed())

			Expect(testutil.ToFloat64(m.Frames.WithLabelValues("venus", "true"))).To(Equal(8.0))
			Expect(testutil.ToFloat64(m.TrailEvictions.WithLabelValues("venus", "planet"))).To(Equal(3.0))
			Expect(testutil.ToFloat64(m.Resets.WithLabelValues(observability.CauseReset))).To(Equal(1.0))
			Expect(testutil.ToFloat64(m.Resets.WithLabelValues(observability.CauseMode))).To(Equal(1.0))
		})
	})
})

var _ = Describe("ParseResetScope", func() {
	It("defaults to active", func() {
		Expect(ParseResetScope("")).To(Equal(ResetActive))
	})
	It("rejects unknown scopes", func() {
		_, err := ParseResetScope("some")
		Expect(err).To(HaveOccurred())
	})
})
