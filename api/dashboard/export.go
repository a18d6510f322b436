package dashboard

import (
	"encoding/csv"
	"net/http"
	"time"

	"github.com/storeops/shelfwatch/core/view"
)

var exportHeader = []string{"date", "department", "delay_reason", "stocking_delay_minutes", "stockout_flag", "truck_count"}

// ServeExportCSV handles GET /api/export.csv and streams the filtered
// records as a download. The output round trips through the loader.
func (h *Handler) ServeExportCSV(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	f, err := parseFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	recs := f.Apply(h.ds)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="deliveries.csv"`)

	// UTF-8 BOM for Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		h.log.Errorf("csv export: write BOM: %v", err)
		return
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(exportHeader); err != nil {
		h.log.Errorf("csv export: write header: %v", err)
		return
	}
	for _, rec := range recs {
		if err := cw.Write(view.RecordRow(rec)); err != nil {
			h.log.Errorf("csv export: write row: %v", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.log.Errorf("csv export: flush: %v", err)
		return
	}
	h.recordQuery("export", f, len(recs), time.Since(started))
}
