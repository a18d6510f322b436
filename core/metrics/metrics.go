package metrics

import (
	"time"

	"github.com/storeops/shelfwatch/core/restock"
)

// QueryEvent describes one dashboard query after filtering ran.
type QueryEvent struct {
	Endpoint string
	Filter   restock.Filter
	Matched  int
	Total    int
	Duration time.Duration
	Time     time.Time
}

// Sink records dashboard queries for observability purposes.
type Sink interface {
	RecordQuery(ev QueryEvent) error
}

// LoadEvent captures one dataset load at startup.
type LoadEvent struct {
	Path     string
	Records  int
	Duration time.Duration
	Time     time.Time
}

// LoadRecorder records dataset loads.
type LoadRecorder interface {
	RecordLoad(ev LoadEvent) error
}

// ViewEvent captures a change to the saved view store.
type ViewEvent struct {
	Action string
	Views  int
	Time   time.Time
}

// ViewRecorder records saved view changes.
type ViewRecorder interface {
	RecordView(ev ViewEvent) error
}

// NopSink implements Sink and the optional recorders with no-op methods.
type NopSink struct{}

func (NopSink) RecordQuery(QueryEvent) error { return nil }
func (NopSink) RecordLoad(LoadEvent) error   { return nil }
func (NopSink) RecordView(ViewEvent) error   { return nil }
