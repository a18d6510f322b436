package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/storeops/shelfwatch/core/metrics"
	"github.com/storeops/shelfwatch/core/restock"
)

func TestPromSink_RecordQuery(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}
	ev := coremetrics.QueryEvent{
		Endpoint: "dashboard",
		Filter:   restock.Filter{Departments: []string{"Produce"}, Stockout: restock.StockoutOnly},
		Matched:  12,
		Total:    40,
		Duration: 150 * time.Millisecond,
		Time:     time.Now(),
	}
	if err := sink.RecordQuery(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP dashboard_queries_total Total number of dashboard queries served
# TYPE dashboard_queries_total counter
dashboard_queries_total{endpoint="dashboard",stockout="only"} 1
`
	if err := testutil.CollectAndCompare(sink.queries, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.render); c == 0 {
		t.Errorf("render duration not recorded")
	}
	if c := testutil.CollectAndCount(sink.matched); c == 0 {
		t.Errorf("matched size not recorded")
	}
}

func TestPromSink_RecordLoadAndView(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink := sinkIf.(*PromSink)

	if err := sink.RecordLoad(coremetrics.LoadEvent{Path: "data.csv", Records: 120, Duration: time.Second, Time: time.Now()}); err != nil {
		t.Fatalf("load error: %v", err)
	}
	expectedRecords := `
# HELP dataset_records Number of delivery records in the loaded dataset
# TYPE dataset_records gauge
dataset_records 120
`
	if err := testutil.CollectAndCompare(sink.records, strings.NewReader(expectedRecords)); err != nil {
		t.Errorf("unexpected dataset gauge: %v", err)
	}

	if err := sink.RecordView(coremetrics.ViewEvent{Action: "save", Views: 3, Time: time.Now()}); err != nil {
		t.Fatalf("view error: %v", err)
	}
	expectedViews := `
# HELP saved_views Number of saved dashboard views
# TYPE saved_views gauge
saved_views 3
`
	if err := testutil.CollectAndCompare(sink.views, strings.NewReader(expectedViews)); err != nil {
		t.Errorf("unexpected view gauge: %v", err)
	}
}

func TestNewPromSinkWithRegistry_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	// The second sink must reuse the already registered collectors.
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration: %v", err)
	}
}
