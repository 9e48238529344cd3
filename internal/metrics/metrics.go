// Package metrics exposes Prometheus counters for field generation and viewer
// sessions.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "noise_contours"

// Recorder holds the collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	reg prometheus.Gatherer

	regenerations prometheus.Counter
	derivations   *prometheus.CounterVec
	deriveSeconds prometheus.Histogram
	segments      prometheus.Gauge
	rejected      prometheus.Counter
	sessions      prometheus.Gauge
	frames        prometheus.Counter
	dropped       prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		reg: reg,
		regenerations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "base_regenerations_total",
			Help:      "Number of times the base noise was regenerated.",
		}),
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derivations_total",
			Help:      "Height field derivations by dimensionality and interpolation.",
		}, []string{"dims", "interpolation"}),
		deriveSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "derive_duration_seconds",
			Help:      "Time spent deriving the height field.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		segments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "contour_segments",
			Help:      "Segments in the most recent contour extraction.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_settings_total",
			Help:      "Setting changes refused because they were out of range.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "viewer_sessions",
			Help:      "Connected viewer sessions.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_rendered_total",
			Help:      "Frames rasterised by the scene loop.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_dropped_total",
			Help:      "Snapshots not delivered because a viewer was slow.",
		}),
	}
	reg.MustRegister(r.regenerations, r.derivations, r.deriveSeconds, r.segments,
		r.rejected, r.sessions, r.frames, r.dropped)
	return r
}

func (r *Recorder) Regenerated() {
	if r == nil {
		return
	}
	r.regenerations.Inc()
}

// Derived records one height field derivation.
func (r *Recorder) Derived(dims int, interpolation string, took time.Duration) {
	if r == nil {
		return
	}
	label := "2d"
	if dims == 1 {
		label = "1d"
	}
	r.derivations.WithLabelValues(label, interpolation).Inc()
	r.deriveSeconds.Observe(took.Seconds())
}

func (r *Recorder) Segments(n int) {
	if r == nil {
		return
	}
	r.segments.Set(float64(n))
}

func (r *Recorder) Rejected() {
	if r == nil {
		return
	}
	r.rejected.Inc()
}

func (r *Recorder) SessionOpened() {
	if r == nil {
		return
	}
	r.sessions.Inc()
}

func (r *Recorder) SessionClosed() {
	if r == nil {
		return
	}
	r.sessions.Dec()
}

func (r *Recorder) FrameRendered() {
	if r == nil {
		return
	}
	r.frames.Inc()
}

func (r *Recorder) SnapshotDropped() {
	if r == nil {
		return
	}
	r.dropped.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// StartHTTP serves /metrics on addr in a background goroutine.
func (r *Recorder) StartHTTP(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	go func() {
		log.Printf("Metrics available at http://%s/metrics", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("Metrics server error: %v", err)
		}
	}()
}
