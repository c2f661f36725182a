// internal/webapp/routes/register.go
package routes

import (
	"net/http"

	"appshell/internal/bridge"
	"appshell/internal/config"
	"appshell/internal/docsite"
	"appshell/internal/instructions"
)

type Logs interface {
	ServeLogsJSON(w http.ResponseWriter, r *http.Request)
	ServeLogsSSE(w http.ResponseWriter, r *http.Request)
	TailLines(n int) []string
}

type Deps struct {
	Cfg     config.Config
	CfgPath string
	SiteDir string

	Bridge   *bridge.Manager
	Guides   *instructions.Set
	Handbook *docsite.Site
	Logs     Logs

	// Version returns the current site content version for page footers.
	Version func() string
}

func Register(mux *http.ServeMux, d Deps) {
	registerInstallRoutes(mux, d)
	registerAPILogRoutes(mux, d)
	registerPageRoutes(mux, d)
	registerOpenAPIRoute(mux)
}
