// Package dataset loads delivery records from the CSV file configured at
// startup. A load either yields a complete dataset or an error; partially
// parsed files are never served.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/storeops/shelfwatch/core/restock"
)

const dateLayout = "2006-01-02"

// Required header columns. Extra columns are ignored and order is free.
const (
	colDate        = "date"
	colDepartment  = "department"
	colDelayReason = "delay_reason"
	colDelay       = "stocking_delay_minutes"
	colStockout    = "stockout_flag"
	colTruckCount  = "truck_count"
)

var requiredColumns = []string{colDate, colDepartment, colDelayReason, colDelay, colStockout, colTruckCount}

// LoadCSV reads delivery records from path and builds the immutable dataset.
// A missing file, a missing required column or any malformed row aborts the
// load with an error naming the spot.
func LoadCSV(path string) (*restock.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	recs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return restock.NewDataset(recs), nil
}

// Parse reads records from r in the documented CSV schema.
func Parse(r io.Reader) ([]restock.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var recs []restock.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "﻿")
		}
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (restock.Record, error) {
	var rec restock.Record

	day, err := time.Parse(dateLayout, strings.TrimSpace(row[idx[colDate]]))
	if err != nil {
		return rec, fmt.Errorf("parse date: %w", err)
	}
	rec.Date = day

	rec.Department = strings.TrimSpace(row[idx[colDepartment]])

	reason := strings.TrimSpace(row[idx[colDelayReason]])
	if reason == "" {
		reason = restock.NoReason
	}
	rec.DelayReason = reason

	delay, err := strconv.ParseFloat(strings.TrimSpace(row[idx[colDelay]]), 64)
	if err != nil {
		return rec, fmt.Errorf("parse %s: %w", colDelay, err)
	}
	if delay < 0 {
		return rec, fmt.Errorf("%s must not be negative: %v", colDelay, delay)
	}
	rec.DelayMinutes = delay

	stockout, err := parseFlag(row[idx[colStockout]])
	if err != nil {
		return rec, err
	}
	rec.Stockout = stockout

	trucks, err := strconv.Atoi(strings.TrimSpace(row[idx[colTruckCount]]))
	if err != nil {
		return rec, fmt.Errorf("parse %s: %w", colTruckCount, err)
	}
	if trucks < 0 {
		return rec, fmt.Errorf("%s must not be negative: %d", colTruckCount, trucks)
	}
	rec.TruckCount = trucks

	return rec, nil
}

// parseFlag accepts the Yes/No spellings of the source exports next to the
// usual boolean tokens.
func parseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized %s value %q", colStockout, s)
}
