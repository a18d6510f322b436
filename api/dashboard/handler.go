// Package dashboard exposes the delivery analytics over HTTP: a server
// rendered page, a JSON API for snapshots and metadata, CSV export and
// saved views.
package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	corelogger "github.com/storeops/shelfwatch/core/logger"
	coremetrics "github.com/storeops/shelfwatch/core/metrics"
	"github.com/storeops/shelfwatch/core/restock"
	"github.com/storeops/shelfwatch/core/savedviews"
	"github.com/storeops/shelfwatch/core/view"
)

const dateLayout = "2006-01-02"

// Handler serves the dashboard. The dataset is immutable, so handlers share
// it freely; per request state lives entirely in the query string.
type Handler struct {
	ds      *restock.Dataset
	views   savedviews.Store
	sink    coremetrics.Sink
	log     corelogger.Logger
	limit   int
	started time.Time
}

// NewHandler wires the dashboard endpoints. tableLimit caps the raw record
// rows embedded in snapshots.
func NewHandler(ds *restock.Dataset, views savedviews.Store, sink coremetrics.Sink, log corelogger.Logger, tableLimit int) *Handler {
	return &Handler{
		ds:      ds,
		views:   views,
		sink:    sink,
		log:     log,
		limit:   tableLimit,
		started: time.Now(),
	}
}

// Routes returns the router for all dashboard endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.recoverer)
	r.Use(h.requestLogger)

	r.Get("/", h.ServePage)
	r.Get("/healthz", h.ServeHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", h.ServeDashboard)
		r.Get("/meta", h.ServeMeta)
		r.Get("/export.csv", h.ServeExportCSV)
		r.Route("/views", func(r chi.Router) {
			r.Get("/", h.ServeListViews)
			r.Post("/", h.ServeSaveView)
			r.Get("/{viewID}", h.ServeGetView)
			r.Delete("/{viewID}", h.ServeDeleteView)
		})
	})
	return r
}

// ServeDashboard handles GET /api/dashboard and returns a full snapshot for
// the filter in the query string.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	f, err := parseFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := parseLimit(r, h.limit)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	snap := view.Build(h.ds, f, limit)
	h.recordQuery("dashboard", f, snap.Table.TotalRows, time.Since(started))
	h.writeJSON(w, http.StatusOK, snap)
}

// ServeMeta handles GET /api/meta with the dataset description used to
// populate filter controls.
func (h *Handler) ServeMeta(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, view.BuildMeta(h.ds))
}

// ServeHealth reports liveness together with the dataset size.
func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"records":        h.ds.Len(),
		"uptime_seconds": int(time.Since(h.started).Seconds()),
	})
}

// parseFilter builds the record filter from query parameters. department and
// reason repeat, stockout is any, only or none, start and end are inclusive
// 2006-01-02 dates.
func parseFilter(r *http.Request) (restock.Filter, error) {
	q := r.URL.Query()
	var f restock.Filter
	f.Departments = dropEmpty(q["department"])
	f.Reasons = dropEmpty(q["reason"])

	stockout, err := restock.ParseStockoutFilter(q.Get("stockout"))
	if err != nil {
		return f, err
	}
	f.Stockout = stockout

	if s := q.Get("start"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, fmt.Errorf("invalid start date %q", s)
		}
		f.Start = t
	}
	if s := q.Get("end"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, fmt.Errorf("invalid end date %q", s)
		}
		f.End = t
	}
	return f, nil
}

func parseLimit(r *http.Request, fallback int) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid limit %q", s)
	}
	return n, nil
}

func dropEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (h *Handler) recordQuery(endpoint string, f restock.Filter, matched int, d time.Duration) {
	ev := coremetrics.QueryEvent{
		Endpoint: endpoint,
		Filter:   f,
		Matched:  matched,
		Total:    h.ds.Len(),
		Duration: d,
		Time:     time.Now(),
	}
	if err := h.sink.RecordQuery(ev); err != nil {
		h.log.Warnf("record query metrics: %v", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
