// internal/webapp/routes/openapi.go

package routes

import (
	"net/http"

	"github.com/swaggo/swag"

	"appshell/internal/openapi"
)

// registerOpenAPIRoute serves the generated spec. Regenerate with
// `go generate ./...` after changing routes or annotation stubs.
func registerOpenAPIRoute(mux *http.ServeMux) {
	handleGet(mux, "/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc(openapi.SwaggerInfo.InstanceName())
		if err != nil {
			http.Error(w, "spec unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(doc))
	})
}
