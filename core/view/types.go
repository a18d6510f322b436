package view

import "time"

// Point is one labeled value in a chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is a named sequence of points.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// ChartConfig describes one chart without committing to a rendering
// technology. Type is bar, line or pie.
type ChartConfig struct {
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	XLabel string   `json:"x_label,omitempty"`
	YLabel string   `json:"y_label,omitempty"`
	Series []Series `json:"series"`
}

// Column labels one table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TableData carries the filtered records for tabular display. Rows may be
// capped; TotalRows always holds the full filtered count.
type TableData struct {
	Columns   []Column   `json:"columns"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
}

// KPISet is the headline strip of the dashboard. Percentages are 0..100.
type KPISet struct {
	TotalDeliveries int     `json:"total_deliveries"`
	DelayedCount    int     `json:"delayed_count"`
	DelayedPct      float64 `json:"delayed_pct"`
	StockoutCount   int     `json:"stockout_count"`
	StockoutPct     float64 `json:"stockout_pct"`
	AvgDelayMinutes float64 `json:"avg_delay_minutes"`
}

// FilterEcho restates the applied filter in wire form.
type FilterEcho struct {
	Departments []string `json:"departments"`
	Reasons     []string `json:"reasons"`
	Stockout    string   `json:"stockout"`
	Start       string   `json:"start,omitempty"`
	End         string   `json:"end,omitempty"`
}

// Snapshot is everything one dashboard render needs. It is immutable and
// safe to share once built.
type Snapshot struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Filter      FilterEcho    `json:"filter"`
	NoData      bool          `json:"no_data"`
	KPIs        KPISet        `json:"kpis"`
	Charts      []ChartConfig `json:"charts"`
	Table       TableData     `json:"table"`
}

// Meta describes the loaded dataset for populating filter controls.
type Meta struct {
	Records     int      `json:"records"`
	Departments []string `json:"departments"`
	Reasons     []string `json:"reasons"`
	FirstDate   string   `json:"first_date,omitempty"`
	LastDate    string   `json:"last_date,omitempty"`
}
