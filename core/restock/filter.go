package restock

import (
	"fmt"
	"slices"
	"time"
)

// StockoutFilter narrows records by their stockout flag.
type StockoutFilter int

const (
	// StockoutAny keeps every record regardless of the flag.
	StockoutAny StockoutFilter = iota
	// StockoutOnly keeps records that ended in a stockout.
	StockoutOnly
	// StockoutNone keeps records that did not end in a stockout.
	StockoutNone
)

// ParseStockoutFilter maps the wire tokens "any", "only" and "none".
// The empty string means StockoutAny.
func ParseStockoutFilter(s string) (StockoutFilter, error) {
	switch s {
	case "", "any":
		return StockoutAny, nil
	case "only":
		return StockoutOnly, nil
	case "none":
		return StockoutNone, nil
	}
	return StockoutAny, fmt.Errorf("unknown stockout filter %q", s)
}

func (s StockoutFilter) String() string {
	switch s {
	case StockoutOnly:
		return "only"
	case StockoutNone:
		return "none"
	default:
		return "any"
	}
}

// Filter selects a subset of a dataset. The zero value selects everything:
// an empty Departments or Reasons list leaves that dimension unrestricted,
// and zero Start or End leaves the date range open on that side. A record
// must match every restricted dimension to be kept.
type Filter struct {
	Departments []string
	Reasons     []string
	Stockout    StockoutFilter
	Start       time.Time
	End         time.Time
}

// Match reports whether r passes every restriction of f. The date range is
// inclusive on both ends at day granularity; Start after End matches nothing.
func (f Filter) Match(r Record) bool {
	if len(f.Departments) > 0 && !slices.Contains(f.Departments, r.Department) {
		return false
	}
	if len(f.Reasons) > 0 && !slices.Contains(f.Reasons, r.DelayReason) {
		return false
	}
	switch f.Stockout {
	case StockoutOnly:
		if !r.Stockout {
			return false
		}
	case StockoutNone:
		if r.Stockout {
			return false
		}
	}
	day := Day(r.Date)
	if !f.Start.IsZero() && day.Before(Day(f.Start)) {
		return false
	}
	if !f.End.IsZero() && day.After(Day(f.End)) {
		return false
	}
	return true
}

// Select returns the records of recs matching f, in input order.
func (f Filter) Select(recs []Record) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Apply returns the dataset records matching f, in load order. The dataset
// is not touched; applying the same filter to its own output is a no-op.
func (f Filter) Apply(ds *Dataset) []Record {
	return f.Select(ds.records)
}
