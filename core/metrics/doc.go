package metrics

// Package metrics defines interfaces and events for observing the dashboard.
// Sinks like PromSink and InfluxSink record dataset loads, dashboard queries
// and saved view changes and can be combined with NewMultiSink. NopSink is
// the default when no backend is configured.
