package metrics

import (
	"fmt"

	"github.com/storeops/shelfwatch/config"
	coremetrics "github.com/storeops/shelfwatch/core/metrics"
)

// BuildSinks assembles the metrics pipeline from configuration. No enabled
// backend yields a NopSink, a single backend is returned directly and
// several are wrapped in a MultiSink.
func BuildSinks(cfg config.MetricsConfig) (coremetrics.Sink, error) {
	var sinks []coremetrics.Sink
	if cfg.Prometheus.Enabled {
		ps, err := NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prometheus sink: %w", err)
		}
		sinks = append(sinks, ps)
	}
	if cfg.Influx.Enabled {
		sinks = append(sinks, NewInfluxSinkWithFallback(cfg.Influx.URL, cfg.Influx.Token, cfg.Influx.Org, cfg.Influx.Bucket))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
