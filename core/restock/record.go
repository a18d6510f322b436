package restock

import "time"

// NoReason marks deliveries without a recorded delay cause. It counts as a
// regular value in reason aggregations.
const NoReason = "None"

// Record is a single truck delivery event. Values never change after load.
type Record struct {
	Date         time.Time
	Department   string
	DelayReason  string
	DelayMinutes float64
	Stockout     bool
	TruckCount   int
}

// Delayed reports whether the delivery had a recorded delay cause.
func (r Record) Delayed() bool {
	return r.DelayReason != NoReason
}

// Day aligns t to midnight UTC. Record dates have day granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
