package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	coremetrics "github.com/storeops/shelfwatch/core/metrics"
	"github.com/storeops/shelfwatch/core/restock"
	"github.com/storeops/shelfwatch/core/savedviews"
	"github.com/storeops/shelfwatch/core/view"
)

// viewPayload is the wire form of a saved view.
type viewPayload struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Filter    view.FilterEcho `json:"filter"`
	CreatedAt time.Time       `json:"created_at"`
}

type saveViewRequest struct {
	Name   string          `json:"name"`
	Filter view.FilterEcho `json:"filter"`
}

func payloadFromView(v savedviews.View) viewPayload {
	return viewPayload{
		ID:        v.ID,
		Name:      v.Name,
		Filter:    view.EchoFilter(v.Filter),
		CreatedAt: v.CreatedAt,
	}
}

// filterFromEcho parses the wire form back into a record filter.
func filterFromEcho(e view.FilterEcho) (restock.Filter, error) {
	var f restock.Filter
	f.Departments = dropEmpty(e.Departments)
	f.Reasons = dropEmpty(e.Reasons)

	stockout, err := restock.ParseStockoutFilter(e.Stockout)
	if err != nil {
		return f, err
	}
	f.Stockout = stockout

	if e.Start != "" {
		t, err := time.Parse(dateLayout, e.Start)
		if err != nil {
			return f, fmt.Errorf("invalid start date %q", e.Start)
		}
		f.Start = t
	}
	if e.End != "" {
		t, err := time.Parse(dateLayout, e.End)
		if err != nil {
			return f, fmt.Errorf("invalid end date %q", e.End)
		}
		f.End = t
	}
	return f, nil
}

// ServeSaveView handles POST /api/views.
func (h *Handler) ServeSaveView(w http.ResponseWriter, r *http.Request) {
	var req saveViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	f, err := filterFromEcho(req.Filter)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	v, err := h.views.Save(req.Name, f)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	h.recordView("save")
	h.writeJSON(w, http.StatusCreated, payloadFromView(v))
}

// ServeListViews handles GET /api/views.
func (h *Handler) ServeListViews(w http.ResponseWriter, r *http.Request) {
	views := h.views.List()
	out := make([]viewPayload, 0, len(views))
	for _, v := range views {
		out = append(out, payloadFromView(v))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// ServeGetView handles GET /api/views/{viewID}.
func (h *Handler) ServeGetView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	v, ok := h.views.Get(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, fmt.Errorf("view %s not found", id))
		return
	}
	h.writeJSON(w, http.StatusOK, payloadFromView(v))
}

// ServeDeleteView handles DELETE /api/views/{viewID}.
func (h *Handler) ServeDeleteView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	if !h.views.Delete(id) {
		h.writeError(w, http.StatusNotFound, fmt.Errorf("view %s not found", id))
		return
	}
	h.recordView("delete")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recordView(action string) {
	rec, ok := h.sink.(coremetrics.ViewRecorder)
	if !ok {
		return
	}
	ev := coremetrics.ViewEvent{Action: action, Views: h.views.Len(), Time: time.Now()}
	if err := rec.RecordView(ev); err != nil {
		h.log.Warnf("record view metrics: %v", err)
	}
}
