// internal/webapp/routes/pages.go

package routes

import (
	"net/http"
	"strings"

	"appshell/internal/platform"
	"appshell/internal/ui/render"
	"appshell/internal/ui/viewmodels"
)

func registerPageRoutes(mux *http.ServeMux, d Deps) {
	handleGet(mux, "/appshell/status", func(w http.ResponseWriter, r *http.Request) {
		var tail []string
		if d.Logs != nil {
			tail = d.Logs.TailLines(100)
		}
		vm := viewmodels.StatusVM{
			BaseVM:   baseVM("Status", "status", "status", d),
			Addr:     r.Host,
			SiteDir:  d.SiteDir,
			Sessions: viewmodels.BuildSessionRows(d.Bridge.Sessions()),
			LogTail:  tail,
		}
		render.Render(w, vm)
	})

	if d.Handbook != nil && len(d.Handbook.Pages) > 0 {
		serveDoc := func(w http.ResponseWriter, r *http.Request, slug string) {
			page := d.Handbook.Pages[0]
			if slug != "" {
				p, ok := d.Handbook.BySlug(slug)
				if !ok {
					http.NotFound(w, r)
					return
				}
				page = p
			}
			vm := viewmodels.DocsVM{
				BaseVM: baseVM(page.Title, "docs", "docs", d),
				Pages:  d.Handbook.Pages,
				Page:   page,
			}
			render.Render(w, vm)
		}

		handleGet(mux, "/appshell/docs", func(w http.ResponseWriter, r *http.Request) {
			serveDoc(w, r, "")
		})
		handleGet(mux, "/appshell/docs/", func(w http.ResponseWriter, r *http.Request) {
			slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/appshell/docs/"), "/")
			serveDoc(w, r, slug)
		})
	}

	if d.Guides != nil {
		handleGet(mux, "/appshell/instructions/", func(w http.ResponseWriter, r *http.Request) {
			name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/appshell/instructions/"), "/")
			guide, ok := d.Guides.For(platform.Class(name))
			if !ok {
				http.NotFound(w, r)
				return
			}
			vm := viewmodels.GuideVM{
				BaseVM: baseVM(guide.Title, "", "guide", d),
				Guide:  *guide,
			}
			render.Render(w, vm)
		})
	}
}
