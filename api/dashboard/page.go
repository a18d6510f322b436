package dashboard

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/storeops/shelfwatch/core/view"
)

//go:embed page.html
var pageFS embed.FS

var pageTmpl = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"contains": func(values []string, v string) bool {
		for _, s := range values {
			if s == v {
				return true
			}
		}
		return false
	},
}).ParseFS(pageFS, "page.html"))

// pageData feeds the dashboard template. SnapshotJSON is the same snapshot
// serialized for the chart script.
type pageData struct {
	Meta         view.Meta
	Snapshot     view.Snapshot
	SnapshotJSON template.JS
	ExportURL    string
}

// ServePage handles GET / and renders the dashboard page for the filter in
// the query string.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	f, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap := view.Build(h.ds, f, h.limit)

	raw, err := json.Marshal(snap)
	if err != nil {
		h.log.Errorf("marshal snapshot: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	exportURL := "/api/export.csv"
	if r.URL.RawQuery != "" {
		exportURL += "?" + r.URL.RawQuery
	}

	data := pageData{
		Meta:         view.BuildMeta(h.ds),
		Snapshot:     snap,
		SnapshotJSON: template.JS(raw),
		ExportURL:    exportURL,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		h.log.Errorf("render page: %v", err)
		return
	}
	h.recordQuery("page", f, snap.Table.TotalRows, time.Since(started))
}
