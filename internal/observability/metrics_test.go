package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	m.ObserveFrame("venus", true, 2*time.Millisecond)
	m.ObserveFrame("venus", true, time.Millisecond)
	m.ObserveFrame("venus", false, time.Millisecond)
	m.Evicted("venus", "planet", 3)
	m.Evicted("venus", "planet", 0)
	m.GuardHit()
	m.Reset(CauseMode)

	if got := testutil.ToFloat64(m.Frames.WithLabelValues("venus", "true")); got != 2 {
		t.Fatalf("frames playing = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Frames.WithLabelValues("venus", "false")); got != 1 {
		t.Fatalf("frames paused = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.TrailEvictions.WithLabelValues("venus", "planet")); got != 3 {
		t.Fatalf("evictions = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.GuardHits); got != 1 {
		t.Fatalf("guard hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Resets.WithLabelValues(CauseMode)); got != 1 {
		t.Fatalf("resets = %v, want 1", got)
	}
	if count := histogramSampleCount(t, reg, "epicycle_frame_duration_seconds"); count != 3 {
		t.Fatalf("frame duration sample_count = %d, want 3", count)
	}
}

func TestNewMetricsReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("second NewMetrics: %v", err)
	}
	a.GuardHit()
	if got := testutil.ToFloat64(b.GuardHits); got != 1 {
		t.Fatalf("collectors not shared, got %v", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveFrame("mars", true, time.Second)
	m.GuardHit()
	m.Reset(CauseReset)
	if err := m.WriteText(&bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
}

func TestWriteText(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	m.Reset(CauseReset)

	var buf bytes.Buffer
	if err := m.WriteText(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `epicycle_resets_total{cause="reset"} 1`) {
		t.Errorf("unexpected exposition:\n%s", buf.String())
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if h := m.GetHistogram(); h != nil {
				return sampleCount(h)
			}
		}
	}
	return 0
}

func sampleCount(h *dto.Histogram) uint64 { return h.GetSampleCount() }
