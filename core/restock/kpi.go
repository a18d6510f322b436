package restock

import "gonum.org/v1/gonum/stat"

// KPISet summarizes one filtered slice of deliveries. Shares are in the
// range 0..1 and every field is zero for empty input, never NaN.
type KPISet struct {
	TotalDeliveries int
	DelayedCount    int
	DelayedShare    float64
	StockoutCount   int
	StockoutShare   float64
	AvgDelayMinutes float64
}

// ComputeKPIs derives the headline numbers for recs. A delivery counts as
// delayed when its reason is anything but NoReason.
func ComputeKPIs(recs []Record) KPISet {
	k := KPISet{TotalDeliveries: len(recs)}
	if len(recs) == 0 {
		return k
	}
	delays := make([]float64, len(recs))
	for i, r := range recs {
		delays[i] = r.DelayMinutes
		if r.Delayed() {
			k.DelayedCount++
		}
		if r.Stockout {
			k.StockoutCount++
		}
	}
	n := float64(len(recs))
	k.DelayedShare = float64(k.DelayedCount) / n
	k.StockoutShare = float64(k.StockoutCount) / n
	k.AvgDelayMinutes = stat.Mean(delays, nil)
	return k
}

// VolumeTrend fits a least squares line through the daily volume series,
// with the day index as x. ok is false when there are fewer than two points.
func VolumeTrend(vols []DayVolume) (slope, intercept float64, ok bool) {
	if len(vols) < 2 {
		return 0, 0, false
	}
	xs := make([]float64, len(vols))
	ys := make([]float64, len(vols))
	for i, v := range vols {
		xs[i] = float64(i)
		ys[i] = float64(v.Trucks)
	}
	intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	return slope, intercept, true
}
