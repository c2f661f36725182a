// Package pwa generates the two files that make a served site installable:
// the web-app manifest, derived from site config, and the service worker
// with the current content version baked into its cache name. Both are
// served from the origin root so the worker's scope covers the whole app.
package pwa

import (
	"bytes"
	"embed"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"

	"appshell/internal/config"
)

//go:embed sw.js
var rawFS embed.FS

const versionToken = "__APPSHELL_VERSION__"

var workerTemplate []byte

func init() {
	raw, _ := rawFS.ReadFile("sw.js")

	m := minify.New()
	m.AddFunc("application/javascript", js.Minify)
	out, err := m.Bytes("application/javascript", raw)
	if err != nil {
		log.Printf("pwa: minify warning: %v (using original)", err)
		workerTemplate = raw
		return
	}
	workerTemplate = out
}

// Manifest is the generated web-app manifest.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Scope           string         `json:"scope"`
	Display         string         `json:"display"`
	ThemeColor      string         `json:"theme_color,omitempty"`
	BackgroundColor string         `json:"background_color,omitempty"`
	Icons           []ManifestIcon `json:"icons"`
}

type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

// BuildManifest derives the manifest from site config. Icon paths become
// root-absolute so the manifest works from any page URL.
func BuildManifest(site config.Site) Manifest {
	m := Manifest{
		Name:            site.Name,
		ShortName:       site.ShortName,
		Description:     site.Description,
		StartURL:        "/",
		Scope:           "/",
		Display:         "standalone",
		ThemeColor:      site.ThemeColor,
		BackgroundColor: site.BackgroundColor,
		Icons:           []ManifestIcon{},
	}
	for _, ic := range site.Icons {
		m.Icons = append(m.Icons, ManifestIcon{
			Src:   "/" + strings.TrimPrefix(ic.Src, "/"),
			Sizes: ic.Sizes,
			Type:  ic.Type,
		})
	}
	return m
}

// Files serves the generated installability files. The version callback is
// read per request; in dev mode it moves with every site edit.
type Files struct {
	site    config.Site
	version func() string
}

func NewFiles(site config.Site, version func() string) *Files {
	if version == nil {
		version = func() string { return "dev" }
	}
	return &Files{site: site, version: version}
}

// ServeManifest handles GET /manifest.webmanifest.
func (f *Files) ServeManifest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/manifest+json")
	w.Header().Set("Cache-Control", "no-cache")
	_ = json.NewEncoder(w).Encode(BuildManifest(f.site))
}

// ServeWorker handles GET /sw.js. The worker has a fixed, non-hashed name,
// so it must never be cached; the browser re-fetches it to detect updates.
func (f *Files) ServeWorker(w http.ResponseWriter, r *http.Request) {
	body := bytes.ReplaceAll(workerTemplate, []byte(versionToken), []byte(f.version()))
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Service-Worker-Allowed", "/")
	_, _ = w.Write(body)
}
