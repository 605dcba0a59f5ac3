// Package observ records prometheus metrics for workflow runs and event
// publishing.
package observ

import (
	"context"
	"errors"
	"time"

	"github.com/aq2208/gorder-workflow/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	placed        *prometheus.CounterVec
	failed        *prometheus.CounterVec
	events        *prometheus.CounterVec
	publishFailed prometheus.Counter
	duration      *prometheus.HistogramVec
}

// NewMetrics registers the workflow collectors on reg. Pass
// prometheus.DefaultRegisterer to expose them on /metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		placed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders that completed the place-order workflow",
		}, []string{"source"}),
		failed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "Orders rejected by the place-order workflow, by error code",
		}, []string{"source", "code"}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "order_events_total",
			Help: "Events produced by successful runs, by event name",
		}, []string{"event"}),
		publishFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "order_events_publish_failures_total",
			Help: "Event batches that could not be published",
		}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "place_order_duration_ms",
			Help:    "Duration of place-order runs in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		}, []string{"source"}),
	}
}

type instrumented struct {
	next   usecase.OrderPlacer
	m      *Metrics
	source string
}

// Instrument wraps a workflow so every run is counted under source
// (e.g. "http", "queue").
func (m *Metrics) Instrument(next usecase.OrderPlacer, source string) usecase.OrderPlacer {
	return &instrumented{next: next, m: m, source: source}
}

func (i *instrumented) Execute(ctx context.Context, in usecase.UnvalidatedOrder) ([]usecase.PlaceOrderEvent, error) {
	start := time.Now()
	events, err := i.next.Execute(ctx, in)
	i.m.duration.WithLabelValues(i.source).Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		code := "internal"
		var poe usecase.PlaceOrderError
		if errors.As(err, &poe) {
			code = usecase.ErrorCode(poe)
		}
		i.m.failed.WithLabelValues(i.source, code).Inc()
		return nil, err
	}

	i.m.placed.WithLabelValues(i.source).Inc()
	for _, ev := range events {
		i.m.events.WithLabelValues(usecase.EventName(ev)).Inc()
	}
	return events, nil
}

type countingPublisher struct {
	next usecase.EventPublisher
	m    *Metrics
}

// CountFailures wraps a publisher so failed batches show up in
// order_events_publish_failures_total.
func (m *Metrics) CountFailures(next usecase.EventPublisher) usecase.EventPublisher {
	return &countingPublisher{next: next, m: m}
}

func (p *countingPublisher) Publish(ctx context.Context, events []usecase.PlaceOrderEvent) error {
	err := p.next.Publish(ctx, events)
	if err != nil {
		p.m.publishFailed.Inc()
	}
	return err
}
