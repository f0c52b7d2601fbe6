package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the studio.
type Metrics struct {
	Renders         prometheus.Counter
	TurtleBytes     prometheus.Histogram
	Drafts          *prometheus.CounterVec
	PublishDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg uses a fresh private registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		Renders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "semtoken_renders_total",
			Help: "Total number of Turtle documents rendered",
		}),
		TurtleBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "semtoken_turtle_bytes",
			Help:    "Size of rendered Turtle documents",
			Buckets: prometheus.ExponentialBuckets(128, 2, 10),
		}),
		Drafts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "semtoken_drafts_total",
				Help: "Draft store operations by kind and outcome",
			},
			[]string{"op", "result"},
		),
		PublishDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "semtoken_publish_duration_seconds",
				Help: "Duration of publish attempts",
			},
			[]string{"result"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.Renders, m.TurtleBytes, m.Drafts, m.PublishDuration)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Hooks records every lifecycle event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRender: func(_ context.Context, e *domain.RenderEvent) {
			m.Renders.Inc()
			m.TurtleBytes.Observe(float64(e.Bytes))
		},
		OnDraft: func(_ context.Context, e *domain.DraftEvent) {
			m.Drafts.WithLabelValues(draftOp(e.Type), result(e.IsError)).Inc()
		},
		OnPublish: func(_ context.Context, e *domain.PublishEvent) {
			m.PublishDuration.WithLabelValues(result(e.IsError)).Observe(e.Duration.Seconds())
		},
	}
}

func draftOp(t domain.EventType) string {
	switch t {
	case domain.EventDraftSaved:
		return "save"
	case domain.EventDraftLoaded:
		return "load"
	case domain.EventDraftDeleted:
		return "delete"
	default:
		return string(t)
	}
}

func result(isError bool) string {
	if isError {
		return "error"
	}
	return "ok"
}
