package dataset

import (
	"encoding/csv"
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/storeops/shelfwatch/core/restock"
)

// GenSpec holds parameters for synthetic delivery history generation.
type GenSpec struct {
	Days        int
	Departments []string
	Reasons     []string
	Seed        int64
	Start       time.Time
}

var (
	defaultDepartments = []string{"Produce", "Dairy", "Bakery", "Frozen", "Beverages"}
	defaultReasons     = []string{"Late Truck", "Traffic", "Weather", "Warehouse Backlog"}
)

// Generate produces one delivery per department per day, with occasional
// gaps. Delayed deliveries carry a cause and a positive delay; on-time ones
// always report zero delay and no cause. The same seed yields the same
// records.
func Generate(spec GenSpec) []restock.Record {
	if spec.Days <= 0 {
		return nil
	}
	deps := spec.Departments
	if len(deps) == 0 {
		deps = defaultDepartments
	}
	reasons := spec.Reasons
	if len(reasons) == 0 {
		reasons = defaultReasons
	}
	seed := spec.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	start := spec.Start
	if start.IsZero() {
		start = time.Now().AddDate(0, 0, -spec.Days)
	}
	start = restock.Day(start)

	rng := rand.New(rand.NewSource(seed))
	recs := make([]restock.Record, 0, spec.Days*len(deps))
	for day := 0; day < spec.Days; day++ {
		date := start.AddDate(0, 0, day)
		for _, dep := range deps {
			if rng.Float64() < 0.1 {
				continue // no delivery scheduled
			}
			rec := restock.Record{
				Date:        date,
				Department:  dep,
				DelayReason: restock.NoReason,
				TruckCount:  1 + rng.Intn(4),
			}
			if rng.Float64() < 0.3 {
				rec.DelayReason = reasons[rng.Intn(len(reasons))]
				rec.DelayMinutes = float64(5 + rng.Intn(56))
				rec.Stockout = rng.Float64() < 0.4
			} else {
				rec.Stockout = rng.Float64() < 0.05
			}
			recs = append(recs, rec)
		}
	}
	return recs
}

// WriteCSV writes records in the schema Parse reads back.
func WriteCSV(w io.Writer, recs []restock.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(requiredColumns); err != nil {
		return err
	}
	for _, rec := range recs {
		flag := "No"
		if rec.Stockout {
			flag = "Yes"
		}
		row := []string{
			rec.Date.Format(dateLayout),
			rec.Department,
			rec.DelayReason,
			strconv.FormatFloat(rec.DelayMinutes, 'f', -1, 64),
			flag,
			strconv.Itoa(rec.TruckCount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
