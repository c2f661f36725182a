// internal/webapp/routes/helpers.go

package routes

import (
	"encoding/json"
	"net/http"

	"appshell/internal/ui/viewmodels"
)

func baseVM(title, active, contentTmpl string, d Deps) viewmodels.BaseVM {
	version := ""
	if d.Version != nil {
		version = d.Version()
	}
	return viewmodels.BaseVM{
		Title:       title,
		Active:      active,
		SiteName:    d.Cfg.Site.Name,
		Version:     version,
		ContentTmpl: contentTmpl,
		Debug:       d.Cfg.Shell.Debug,
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func handleGet(mux *http.ServeMux, path string, fn http.HandlerFunc) {
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		fn(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

func sseHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}
