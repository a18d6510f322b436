package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/storeops/shelfwatch/core/restock"
)

const validCSV = `date,department,delay_reason,stocking_delay_minutes,stockout_flag,truck_count
2024-01-01,Produce,Late Truck,30,Yes,2
2024-01-02,Produce,Late Truck,20,Yes,3
2024-01-02,Dairy,,0,No,1
`

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deliveries.csv")
	if err := os.WriteFile(path, []byte(validCSV), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	ds, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("want 3 records, got %d", ds.Len())
	}
	recs := ds.Records()
	if !recs[0].Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date parsed wrong: %v", recs[0].Date)
	}
	if !recs[0].Stockout || recs[2].Stockout {
		t.Errorf("stockout flags parsed wrong: %v %v", recs[0].Stockout, recs[2].Stockout)
	}
	if recs[2].DelayReason != restock.NoReason {
		t.Errorf("empty reason not normalized: %q", recs[2].DelayReason)
	}
}

func TestLoadCSV_Missing(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParse_MissingColumn(t *testing.T) {
	in := "date,department,delay_reason,stocking_delay_minutes,stockout_flag\n"
	_, err := Parse(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "truck_count") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	recs, err := Parse(strings.NewReader("date,department,delay_reason,stocking_delay_minutes,stockout_flag,truck_count\n"))
	if err != nil {
		t.Fatalf("header only should load empty: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("want 0 records, got %d", len(recs))
	}
}

func TestParse_ColumnOrderFree(t *testing.T) {
	in := "truck_count,date,stockout_flag,department,stocking_delay_minutes,delay_reason\n4,2024-03-01,true,Bakery,12.5,Traffic\n"
	recs, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	r := recs[0]
	if r.TruckCount != 4 || r.Department != "Bakery" || r.DelayMinutes != 12.5 || !r.Stockout {
		t.Fatalf("columns mixed up: %+v", r)
	}
}

func TestParse_ExtraColumnIgnored(t *testing.T) {
	in := "date,department,delay_reason,stocking_delay_minutes,stockout_flag,truck_count,warehouse\n2024-03-01,Bakery,None,0,0,1,WH-7\n"
	recs, err := Parse(strings.NewReader(in))
	if err != nil || len(recs) != 1 {
		t.Fatalf("extra column should be ignored: %v", err)
	}
}

func TestParse_BadRows(t *testing.T) {
	cases := map[string]string{
		"bad date":       "2024-13-77,Produce,None,0,No,1",
		"bad delay":      "2024-01-01,Produce,None,abc,No,1",
		"negative delay": "2024-01-01,Produce,None,-5,No,1",
		"bad flag":       "2024-01-01,Produce,None,0,maybe,1",
		"bad trucks":     "2024-01-01,Produce,None,0,No,x",
		"negative truck": "2024-01-01,Produce,None,0,No,-1",
		"short row":      "2024-01-01,Produce,None",
	}
	header := "date,department,delay_reason,stocking_delay_minutes,stockout_flag,truck_count\n"
	for name, row := range cases {
		if _, err := Parse(strings.NewReader(header + row + "\n")); err == nil {
			t.Errorf("%s: expected error", name)
		} else if !strings.Contains(err.Error(), "row 2") {
			t.Errorf("%s: error does not name the row: %v", name, err)
		}
	}
}

func TestParse_BOMHeader(t *testing.T) {
	recs, err := Parse(strings.NewReader("﻿" + validCSV))
	if err != nil || len(recs) != 3 {
		t.Fatalf("BOM header rejected: %v", err)
	}
}

func TestParse_UnknownCategoricalsPassThrough(t *testing.T) {
	in := "date,department,delay_reason,stocking_delay_minutes,stockout_flag,truck_count\n2024-03-01,Cryo Storage,Solar Flare,3,No,1\n"
	recs, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if recs[0].Department != "Cryo Storage" || recs[0].DelayReason != "Solar Flare" {
		t.Fatalf("unexpected normalization: %+v", recs[0])
	}
}
