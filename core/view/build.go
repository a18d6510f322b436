package view

import (
	"sort"
	"strconv"
	"time"

	"github.com/storeops/shelfwatch/core/restock"
)

const dateLayout = "2006-01-02"

// Build runs the synchronous render path: filter, aggregate, snapshot.
// tableLimit caps the raw table rows; zero or a negative value disables the
// cap. Charts always go over every matched record.
func Build(ds *restock.Dataset, f restock.Filter, tableLimit int) Snapshot {
	recs := f.Apply(ds)
	return Snapshot{
		GeneratedAt: time.Now().UTC(),
		Filter:      EchoFilter(f),
		NoData:      len(recs) == 0,
		KPIs:        kpis(recs),
		Charts:      charts(recs),
		Table:       table(recs, tableLimit),
	}
}

// BuildMeta describes ds for populating the filter controls.
func BuildMeta(ds *restock.Dataset) Meta {
	m := Meta{
		Records:     ds.Len(),
		Departments: ds.Departments(),
		Reasons:     ds.Reasons(),
	}
	if first, last := ds.DateRange(); !first.IsZero() {
		m.FirstDate = first.Format(dateLayout)
		m.LastDate = last.Format(dateLayout)
	}
	return m
}

// EchoFilter restates f in wire form with non nil slices.
func EchoFilter(f restock.Filter) FilterEcho {
	e := FilterEcho{
		Departments: append([]string{}, f.Departments...),
		Reasons:     append([]string{}, f.Reasons...),
		Stockout:    f.Stockout.String(),
	}
	if !f.Start.IsZero() {
		e.Start = f.Start.Format(dateLayout)
	}
	if !f.End.IsZero() {
		e.End = f.End.Format(dateLayout)
	}
	return e
}

func kpis(recs []restock.Record) KPISet {
	k := restock.ComputeKPIs(recs)
	return KPISet{
		TotalDeliveries: k.TotalDeliveries,
		DelayedCount:    k.DelayedCount,
		DelayedPct:      k.DelayedShare * 100,
		StockoutCount:   k.StockoutCount,
		StockoutPct:     k.StockoutShare * 100,
		AvgDelayMinutes: k.AvgDelayMinutes,
	}
}

func charts(recs []restock.Record) []ChartConfig {
	freq := restock.ReasonFrequency(recs)
	byDept := restock.AvgDelayByDepartment(recs)
	stockouts := restock.StockoutsByDepartment(recs)
	vols := restock.DailyTruckVolume(recs)
	byReason := restock.AvgDelayByReason(recs)
	rates := restock.StockoutRateByDepartment(recs)
	weekdays := restock.AvgDelayByWeekday(recs)
	split := restock.DelayByStockout(recs)

	// Aggregates come back keyed by department; charts read better sorted
	// by value.
	sort.SliceStable(byDept, func(i, j int) bool { return byDept[i].AvgMinutes > byDept[j].AvgMinutes })
	sort.SliceStable(stockouts, func(i, j int) bool { return stockouts[i].Count > stockouts[j].Count })
	sort.SliceStable(rates, func(i, j int) bool { return rates[i].Rate > rates[j].Rate })

	volume := ChartConfig{
		Type:   "line",
		Title:  "Daily Truck Volume",
		XLabel: "Date",
		YLabel: "Trucks",
		Series: []Series{{
			Name: "Trucks",
			Points: points(vols, func(v restock.DayVolume) Point {
				return Point{Label: v.Date.Format(dateLayout), Value: float64(v.Trucks)}
			}),
		}},
	}
	if slope, intercept, ok := restock.VolumeTrend(vols); ok {
		trend := make([]Point, len(vols))
		for i, v := range vols {
			trend[i] = Point{Label: v.Date.Format(dateLayout), Value: intercept + slope*float64(i)}
		}
		volume.Series = append(volume.Series, Series{Name: "Trend", Points: trend})
	}

	return []ChartConfig{
		bar("Delay Reasons", "Reason", "Deliveries", points(freq, func(rc restock.ReasonCount) Point {
			return Point{Label: rc.Reason, Value: float64(rc.Count)}
		})),
		bar("Average Stocking Delay by Department", "Department", "Minutes", points(byDept, func(dd restock.DepartmentDelay) Point {
			return Point{Label: dd.Department, Value: dd.AvgMinutes}
		})),
		bar("Stockouts by Department", "Department", "Stockouts", points(stockouts, func(dc restock.DepartmentCount) Point {
			return Point{Label: dc.Department, Value: float64(dc.Count)}
		})),
		volume,
		bar("Average Delay by Reason", "Reason", "Minutes", points(byReason, func(rd restock.ReasonDelay) Point {
			return Point{Label: rd.Reason, Value: rd.AvgMinutes}
		})),
		bar("Stockout Rate by Department", "Department", "Percent", points(rates, func(dr restock.DepartmentRate) Point {
			return Point{Label: dr.Department, Value: dr.Rate * 100}
		})),
		bar("Average Delay by Weekday", "Weekday", "Minutes", points(weekdays, func(wd restock.WeekdayDelay) Point {
			return Point{Label: wd.Weekday.String(), Value: wd.AvgMinutes}
		})),
		bar("Delay by Stockout Outcome", "Outcome", "Minutes", points(split, func(sd restock.SplitDelay) Point {
			return Point{Label: sd.Label, Value: sd.AvgMinutes}
		})),
	}
}

func bar(title, xLabel, yLabel string, pts []Point) ChartConfig {
	return ChartConfig{
		Type:   "bar",
		Title:  title,
		XLabel: xLabel,
		YLabel: yLabel,
		Series: []Series{{Name: yLabel, Points: pts}},
	}
}

func points[T any](items []T, conv func(T) Point) []Point {
	out := make([]Point, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return out
}

func table(recs []restock.Record, limit int) TableData {
	td := TableData{
		Columns: []Column{
			{Key: "date", Label: "Date"},
			{Key: "department", Label: "Department"},
			{Key: "delay_reason", Label: "Delay Reason"},
			{Key: "stocking_delay_minutes", Label: "Delay (min)"},
			{Key: "stockout_flag", Label: "Stockout"},
			{Key: "truck_count", Label: "Trucks"},
		},
		TotalRows: len(recs),
	}
	n := len(recs)
	if limit > 0 && n > limit {
		n = limit
	}
	td.Rows = make([][]string, 0, n)
	for _, r := range recs[:n] {
		td.Rows = append(td.Rows, RecordRow(r))
	}
	return td
}

// RecordRow formats one record the way both the snapshot table and the CSV
// export present it. The spellings round trip through the loader.
func RecordRow(r restock.Record) []string {
	return []string{
		r.Date.Format(dateLayout),
		r.Department,
		r.DelayReason,
		strconv.FormatFloat(r.DelayMinutes, 'f', -1, 64),
		flag(r.Stockout),
		strconv.Itoa(r.TruckCount),
	}
}

func flag(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
