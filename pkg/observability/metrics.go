// Package observability exposes the engine's lifecycle as Prometheus
// metrics. Wire Hooks() into the wizard and register the collectors on a
// registry served by promhttp.
package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/makebuild-code/slidenav/pkg/domain"
)

// Metrics holds the engine collectors.
type Metrics struct {
	decisions   *prometheus.CounterVec
	transitions prometheus.Counter
	duration    prometheus.Histogram
	queueDepth  prometheus.Gauge
	slideViews  *prometheus.CounterVec

	mu        sync.Mutex
	lastAdmit time.Time
}

// NewMetrics builds and registers the collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slidenav_admission_decisions_total",
			Help: "Navigation requests by admission outcome.",
		}, []string{"decision"}),
		transitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slidenav_transitions_total",
			Help: "Completed slide transitions.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "slidenav_transition_duration_seconds",
			Help:    "Admission-to-completion latency of slide transitions.",
			Buckets: prometheus.DefBuckets,
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "slidenav_queue_depth",
			Help: "Pending navigation requests in the overflow queue.",
		}),
		slideViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slidenav_slide_views_total",
			Help: "Slide activations by slide id.",
		}, []string{"slide_id"}),
	}

	for _, c := range []prometheus.Collector{
		m.decisions, m.transitions, m.duration, m.queueDepth, m.slideViews,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors. Register them
// alongside any application hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecision: func(ev domain.DecisionEvent) {
			m.decisions.WithLabelValues(string(ev.Decision)).Inc()
			m.queueDepth.Set(float64(ev.QueueDepth))
			if ev.Decision == domain.DecisionAdmitted {
				m.mu.Lock()
				m.lastAdmit = ev.Timestamp
				m.mu.Unlock()
			}
		},
		OnSlideChange: func(ev domain.SlideChangeEvent) {
			m.slideViews.WithLabelValues(ev.SlideID).Inc()
		},
		OnComplete: func(ev domain.TransitionEvent) {
			m.transitions.Inc()
			m.mu.Lock()
			admit := m.lastAdmit
			m.mu.Unlock()
			if !admit.IsZero() && ev.Timestamp.After(admit) {
				m.duration.Observe(ev.Timestamp.Sub(admit).Seconds())
			}
		},
	}
}
