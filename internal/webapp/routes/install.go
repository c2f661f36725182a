// internal/webapp/routes/install.go

package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

func registerInstallRoutes(mux *http.ServeMux, d Deps) {
	if d.Bridge == nil {
		return
	}

	// Per-page websocket; the bridge owns the whole lifecycle.
	mux.HandleFunc("/api/install/socket", d.Bridge.HandleSocket)

	handleGet(mux, "/api/install/sessions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.Bridge.Sessions())
	})

	// SSE endpoint for live session updates
	handleGet(mux, "/api/install/stream", func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}

		sseHeaders(w)

		ch, cancel := d.Bridge.Subscribe()
		defer cancel()

		// Send initial snapshot
		snapshot, _ := json.Marshal(map[string]any{
			"type":     "snapshot",
			"sessions": d.Bridge.Sessions(),
		})
		fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", snapshot)
		flusher.Flush()

		heartbeat := time.NewTicker(25 * time.Second)
		defer heartbeat.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			case evt, ok := <-ch:
				if !ok {
					return
				}
				data, _ := json.Marshal(evt)
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, data)
				flusher.Flush()
			}
		}
	})
}
