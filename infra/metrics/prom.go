package metrics

import (
	coremetrics "github.com/storeops/shelfwatch/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records dashboard events in Prometheus metrics.
type PromSink struct {
	queries *prometheus.CounterVec
	render  *prometheus.HistogramVec
	matched *prometheus.HistogramVec
	loads   prometheus.Counter
	records prometheus.Gauge
	views   prometheus.Gauge
}

// NewPromSink registers dashboard metrics on the default Prometheus
// registerer. The Prometheus server is started separately.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	queries, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_queries_total",
		Help: "Total number of dashboard queries served",
	}, []string{"endpoint", "stockout"}))
	if err != nil {
		return nil, err
	}
	render, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_render_seconds",
		Help:    "Time spent filtering and aggregating per query",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"}))
	if err != nil {
		return nil, err
	}
	matched, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_query_records",
		Help:    "Number of records matched per query",
		Buckets: prometheus.ExponentialBuckets(1, 10, 6),
	}, []string{"endpoint"}))
	if err != nil {
		return nil, err
	}
	loads, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dataset_loads_total",
		Help: "Total number of dataset loads",
	}))
	if err != nil {
		return nil, err
	}
	records, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dataset_records",
		Help: "Number of delivery records in the loaded dataset",
	}))
	if err != nil {
		return nil, err
	}
	views, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "saved_views",
		Help: "Number of saved dashboard views",
	}))
	if err != nil {
		return nil, err
	}
	return &PromSink{
		queries: queries,
		render:  render,
		matched: matched,
		loads:   loads,
		records: records,
		views:   views,
	}, nil
}

// register adds c to reg, reusing the existing collector when it was
// already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(T), nil
		}
		var zero T
		return zero, err
	}
	return c, nil
}

// RecordQuery increments the query counter and observes render duration and
// result size.
func (s *PromSink) RecordQuery(ev coremetrics.QueryEvent) error {
	s.queries.WithLabelValues(ev.Endpoint, ev.Filter.Stockout.String()).Inc()
	s.render.WithLabelValues(ev.Endpoint).Observe(ev.Duration.Seconds())
	s.matched.WithLabelValues(ev.Endpoint).Observe(float64(ev.Matched))
	return nil
}

// RecordLoad counts the load and sets the dataset size gauge.
func (s *PromSink) RecordLoad(ev coremetrics.LoadEvent) error {
	s.loads.Inc()
	s.records.Set(float64(ev.Records))
	return nil
}

// RecordView sets the saved view gauge.
func (s *PromSink) RecordView(ev coremetrics.ViewEvent) error {
	s.views.Set(float64(ev.Views))
	return nil
}
