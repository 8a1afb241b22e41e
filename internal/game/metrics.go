package game

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "snejk"

// Metrics exposes per-tick counters for the body simulation. A nil *Metrics
// records nothing.
type Metrics struct {
	tickDuration   prometheus.Histogram
	buildDuration  prometheus.Histogram
	historySamples prometheus.Gauge
	meshVertices   prometheus.Gauge
	meshTriangles  prometheus.Gauge
	recorded       prometheus.Counter
	evicted        prometheus.Counter
	skipped        prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	buckets := []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025}
	m := &Metrics{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time of one simulation tick including the mesh rebuild.",
			Buckets:   buckets,
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "mesh_build_duration_seconds",
			Help:      "Wall time spent tessellating the tube.",
			Buckets:   buckets,
		}),
		historySamples: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "history_samples",
			Help:      "Samples currently stored in the path history.",
		}),
		meshVertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "mesh_vertices",
			Help:      "Vertices in the last built tube mesh.",
		}),
		meshTriangles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "mesh_triangles",
			Help:      "Triangles in the last built tube mesh.",
		}),
		recorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "samples_recorded_total",
			Help:      "Path samples recorded since start.",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "samples_evicted_total",
			Help:      "Path samples evicted from the tail since start.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "crossings_skipped_total",
			Help:      "Segment crossings never placed because one tick covered more than the whole body.",
		}),
	}
	reg.MustRegister(
		m.tickDuration,
		m.buildDuration,
		m.historySamples,
		m.meshVertices,
		m.meshTriangles,
		m.recorded,
		m.evicted,
		m.skipped,
	)
	return m
}

func (m *Metrics) observeTick(start time.Time, build time.Duration, historyLen int, mesh *MeshBuffers) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(time.Since(start).Seconds())
	m.buildDuration.Observe(build.Seconds())
	m.historySamples.Set(float64(historyLen))
	m.meshVertices.Set(float64(mesh.VertexCount()))
	m.meshTriangles.Set(float64(mesh.TriangleCount()))
}

func (m *Metrics) addRecorded(n int) {
	if m == nil || n == 0 {
		return
	}
	m.recorded.Add(float64(n))
}

func (m *Metrics) incEvicted() {
	if m == nil {
		return
	}
	m.evicted.Inc()
}

func (m *Metrics) addSkipped(n int) {
	if m == nil || n == 0 {
		return
	}
	m.skipped.Add(float64(n))
}
