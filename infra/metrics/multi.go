package metrics

import coremetrics "github.com/storeops/shelfwatch/core/metrics"

// MultiSink fans dashboard events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordQuery forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordQuery(ev coremetrics.QueryEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordQuery(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordLoad forwards load events to sinks that record them.
func (m *MultiSink) RecordLoad(ev coremetrics.LoadEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.LoadRecorder); ok {
			if err := rec.RecordLoad(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordView forwards saved view events to sinks that record them.
func (m *MultiSink) RecordView(ev coremetrics.ViewEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.ViewRecorder); ok {
			if err := rec.RecordView(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
