// Package observability holds the frame metrics of a running scene.
package observability

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Reset causes.
const (
	CauseReset = "reset"
	CauseMode  = "mode"
)

// Metrics bundles the scene collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	Frames         *prometheus.CounterVec
	FrameDuration  prometheus.Histogram
	TrailEvictions *prometheus.CounterVec
	GuardHits      prometheus.Counter
	Resets         *prometheus.CounterVec
}

// NewMetrics registers the scene metrics against reg, defaulting to the
// global registry when nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "epicycle_frames_total",
		Help: "Frames computed, labeled by mode and whether time advanced.",
	}, []string{"mode", "playing"}), "epicycle_frames_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "epicycle_frame_duration_seconds",
		Help:    "Time spent computing and drawing one frame.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.016, 0.033, 0.1},
	}), "epicycle_frame_duration_seconds")
	if err != nil {
		return nil, err
	}

	evictions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "epicycle_trail_evictions_total",
		Help: "Trail points dropped from the front of a full series.",
	}, []string{"mode", "series"}), "epicycle_trail_evictions_total")
	if err != nil {
		return nil, err
	}

	guard, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "epicycle_apparent_guard_total",
		Help: "Frames where planet and Earth coincided and the apparent position was held.",
	}), "epicycle_apparent_guard_total")
	if err != nil {
		return nil, err
	}

	resets, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "epicycle_resets_total",
		Help: "Scene resets, labeled by cause.",
	}, []string{"cause"}), "epicycle_resets_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer:       gatherer,
		Frames:         frames,
		FrameDuration:  duration,
		TrailEvictions: evictions,
		GuardHits:      guard,
		Resets:         resets,
	}, nil
}

func (m *Metrics) ObserveFrame(mode string, playing bool, d time.Duration) {
	if m == nil {
		return
	}
	p := "false"
	if playing {
		p = "true"
	}
	m.Frames.WithLabelValues(mode, p).Inc()
	if d > 0 {
		m.FrameDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) Evicted(mode, series string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.TrailEvictions.WithLabelValues(mode, series).Add(float64(n))
}

func (m *Metrics) GuardHit() {
	if m == nil {
		return
	}
	m.GuardHits.Inc()
}

func (m *Metrics) Reset(cause string) {
	if m == nil {
		return
	}
	m.Resets.WithLabelValues(cause).Inc()
}

// WriteText dumps every gathered family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
