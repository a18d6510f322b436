package restock

import (
	"sort"
	"time"
)

// Bucket labels used by DelayByStockout.
const (
	StockoutLabel   = "Stockout"
	NoStockoutLabel = "No Stockout"
)

// ReasonCount is one delay reason and its occurrence count.
type ReasonCount struct {
	Reason string
	Count  int
}

// ReasonDelay is the mean stocking delay for one delay reason.
type ReasonDelay struct {
	Reason     string
	AvgMinutes float64
}

// DepartmentDelay is the mean stocking delay for one department.
type DepartmentDelay struct {
	Department string
	AvgMinutes float64
}

// DepartmentCount is a per-department record count.
type DepartmentCount struct {
	Department string
	Count      int
}

// DepartmentRate is a per-department share in the range 0..1.
type DepartmentRate struct {
	Department string
	Rate       float64
}

// DayVolume is the total truck count delivered on one calendar date.
type DayVolume struct {
	Date   time.Time
	Trucks int
}

// WeekdayDelay is the mean stocking delay for one weekday.
type WeekdayDelay struct {
	Weekday    time.Weekday
	AvgMinutes float64
}

// SplitDelay is the mean stocking delay for one stockout bucket.
type SplitDelay struct {
	Label      string
	AvgMinutes float64
}

// ReasonFrequency counts occurrences per delay reason, NoReason included.
// The counts sum to len(recs). Results are sorted by count descending, ties
// by reason ascending.
func ReasonFrequency(recs []Record) []ReasonCount {
	counts := make(map[string]int)
	for _, r := range recs {
		counts[r.DelayReason]++
	}
	out := make([]ReasonCount, 0, len(counts))
	for reason, n := range counts {
		out = append(out, ReasonCount{Reason: reason, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

// AvgDelayByDepartment returns the mean delay per department, sorted by
// department. Departments absent from recs are omitted entirely, so no
// entry is ever produced from a zero record count.
func AvgDelayByDepartment(recs []Record) []DepartmentDelay {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range recs {
		sums[r.Department] += r.DelayMinutes
		counts[r.Department]++
	}
	out := make([]DepartmentDelay, 0, len(sums))
	for dept, sum := range sums {
		out = append(out, DepartmentDelay{Department: dept, AvgMinutes: sum / float64(counts[dept])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// StockoutsByDepartment counts stockout records per department, sorted by
// department. Departments without a stockout are omitted.
func StockoutsByDepartment(recs []Record) []DepartmentCount {
	counts := make(map[string]int)
	for _, r := range recs {
		if r.Stockout {
			counts[r.Department]++
		}
	}
	out := make([]DepartmentCount, 0, len(counts))
	for dept, n := range counts {
		out = append(out, DepartmentCount{Department: dept, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// StockoutRateByDepartment returns the share of deliveries that ended in a
// stockout per department, sorted by department. Unlike StockoutsByDepartment
// it keeps departments with a zero rate, since a zero is meaningful there.
func StockoutRateByDepartment(recs []Record) []DepartmentRate {
	stockouts := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range recs {
		counts[r.Department]++
		if r.Stockout {
			stockouts[r.Department]++
		}
	}
	out := make([]DepartmentRate, 0, len(counts))
	for dept, n := range counts {
		out = append(out, DepartmentRate{Department: dept, Rate: float64(stockouts[dept]) / float64(n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// DailyTruckVolume sums truck counts per calendar date, sorted by date
// ascending with no duplicate dates.
func DailyTruckVolume(recs []Record) []DayVolume {
	sums := make(map[time.Time]int)
	for _, r := range recs {
		sums[Day(r.Date)] += r.TruckCount
	}
	out := make([]DayVolume, 0, len(sums))
	for day, n := range sums {
		out = append(out, DayVolume{Date: day, Trucks: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// AvgDelayByReason returns the mean delay per delay reason, NoReason
// included, sorted by mean descending, ties by reason ascending.
func AvgDelayByReason(recs []Record) []ReasonDelay {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range recs {
		sums[r.DelayReason] += r.DelayMinutes
		counts[r.DelayReason]++
	}
	out := make([]ReasonDelay, 0, len(sums))
	for reason, sum := range sums {
		out = append(out, ReasonDelay{Reason: reason, AvgMinutes: sum / float64(counts[reason])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgMinutes != out[j].AvgMinutes {
			return out[i].AvgMinutes > out[j].AvgMinutes
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

// AvgDelayByWeekday returns the mean delay per weekday in Monday..Sunday
// order. Weekdays without records are omitted.
func AvgDelayByWeekday(recs []Record) []WeekdayDelay {
	var sums [7]float64
	var counts [7]int
	for _, r := range recs {
		idx := mondayIndex(r.Date.Weekday())
		sums[idx] += r.DelayMinutes
		counts[idx]++
	}
	out := make([]WeekdayDelay, 0, 7)
	for idx := 0; idx < 7; idx++ {
		if counts[idx] == 0 {
			continue
		}
		out = append(out, WeekdayDelay{
			Weekday:    weekdayAt(idx),
			AvgMinutes: sums[idx] / float64(counts[idx]),
		})
	}
	return out
}

// DelayByStockout returns the mean delay for the no-stockout and stockout
// buckets, in that order. Empty buckets are omitted.
func DelayByStockout(recs []Record) []SplitDelay {
	var sums [2]float64
	var counts [2]int
	for _, r := range recs {
		idx := 0
		if r.Stockout {
			idx = 1
		}
		sums[idx] += r.DelayMinutes
		counts[idx]++
	}
	labels := [2]string{NoStockoutLabel, StockoutLabel}
	out := make([]SplitDelay, 0, 2)
	for idx, n := range counts {
		if n == 0 {
			continue
		}
		out = append(out, SplitDelay{Label: labels[idx], AvgMinutes: sums[idx] / float64(n)})
	}
	return out
}

// mondayIndex maps time.Weekday (Sunday == 0) to a Monday-first index.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

func weekdayAt(idx int) time.Weekday {
	return time.Weekday((idx + 1) % 7)
}
