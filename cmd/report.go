package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/storeops/shelfwatch/core/restock"
	"github.com/storeops/shelfwatch/core/view"
	"github.com/storeops/shelfwatch/infra/dataset"
)

var reportFlags struct {
	departments []string
	reasons     []string
	stockout    string
	start       string
	end         string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a one-shot delivery summary to the terminal",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringSliceVar(&reportFlags.departments, "department", nil, "restrict to these departments")
	reportCmd.Flags().StringSliceVar(&reportFlags.reasons, "reason", nil, "restrict to these delay reasons")
	reportCmd.Flags().StringVar(&reportFlags.stockout, "stockout", "any", "any, only or none")
	reportCmd.Flags().StringVar(&reportFlags.start, "start", "", "first date, 2006-01-02")
	reportCmd.Flags().StringVar(&reportFlags.end, "end", "", "last date, 2006-01-02")
	rootCmd.AddCommand(reportCmd)
}

func reportFilter() (restock.Filter, error) {
	var f restock.Filter
	f.Departments = reportFlags.departments
	f.Reasons = reportFlags.reasons

	stockout, err := restock.ParseStockoutFilter(reportFlags.stockout)
	if err != nil {
		return f, err
	}
	f.Stockout = stockout

	if reportFlags.start != "" {
		t, err := time.Parse("2006-01-02", reportFlags.start)
		if err != nil {
			return f, fmt.Errorf("invalid start date %q", reportFlags.start)
		}
		f.Start = t
	}
	if reportFlags.end != "" {
		t, err := time.Parse("2006-01-02", reportFlags.end)
		if err != nil {
			return f, fmt.Errorf("invalid end date %q", reportFlags.end)
		}
		f.End = t
	}
	return f, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := reportFilter()
	if err != nil {
		return err
	}

	ds, err := dataset.LoadCSV(cfg.Dataset.Path)
	if err != nil {
		return err
	}
	snap := view.Build(ds, f, 0)

	out := cmd.OutOrStdout()
	if snap.NoData {
		fmt.Fprintln(out, "No deliveries match the given filters.")
		return nil
	}

	fmt.Fprintf(out, "Deliveries: %d of %d loaded\n", snap.KPIs.TotalDeliveries, ds.Len())
	fmt.Fprintf(out, "Delayed:    %d (%.1f%%)\n", snap.KPIs.DelayedCount, snap.KPIs.DelayedPct)
	fmt.Fprintf(out, "Stockouts:  %d (%.1f%%)\n", snap.KPIs.StockoutCount, snap.KPIs.StockoutPct)
	fmt.Fprintf(out, "Avg delay:  %.1f min\n", snap.KPIs.AvgDelayMinutes)

	for _, c := range snap.Charts {
		fmt.Fprintf(out, "\n%s\n", c.Title)
		for _, s := range c.Series {
			if len(c.Series) > 1 {
				fmt.Fprintf(out, " %s\n", s.Name)
			}
			for _, p := range s.Points {
				fmt.Fprintf(out, "  %-24s %10.1f\n", p.Label, p.Value)
			}
		}
	}
	return nil
}
