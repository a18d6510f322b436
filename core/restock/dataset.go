package restock

import (
	"sort"
	"time"
)

// Dataset is the full set of delivery records plus metadata derived once at
// construction. It is never mutated afterwards.
type Dataset struct {
	records     []Record
	departments []string
	reasons     []string
	minDate     time.Time
	maxDate     time.Time
}

// NewDataset copies recs, aligns dates to midnight UTC and derives the
// metadata served to filter controls.
func NewDataset(recs []Record) *Dataset {
	d := &Dataset{records: make([]Record, len(recs))}
	copy(d.records, recs)

	depts := make(map[string]struct{})
	reasons := make(map[string]struct{})
	for i := range d.records {
		day := Day(d.records[i].Date)
		d.records[i].Date = day
		depts[d.records[i].Department] = struct{}{}
		reasons[d.records[i].DelayReason] = struct{}{}
		if d.minDate.IsZero() || day.Before(d.minDate) {
			d.minDate = day
		}
		if d.maxDate.IsZero() || day.After(d.maxDate) {
			d.maxDate = day
		}
	}
	d.departments = sortedKeys(depts)
	d.reasons = sortedKeys(reasons)
	return d
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Departments returns the sorted unique department names.
func (d *Dataset) Departments() []string {
	return append([]string{}, d.departments...)
}

// Reasons returns the sorted unique delay reasons, including NoReason when
// present.
func (d *Dataset) Reasons() []string {
	return append([]string{}, d.reasons...)
}

// DateRange returns the earliest and latest record dates. Both are zero for
// an empty dataset.
func (d *Dataset) DateRange() (time.Time, time.Time) {
	return d.minDate, d.maxDate
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
