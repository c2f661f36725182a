// Package shim serves the embedded page-side assets of the install
// affordance: the forwarder script and its stylesheet. Files are minified
// once at startup and mounted under /appshell/, separate from the site's
// own content.
package shim

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed *.js *.css
var rawFS embed.FS

var contentTypes = map[string]string{
	".js":  "application/javascript; charset=utf-8",
	".css": "text/css; charset=utf-8",
}

var minified map[string][]byte

func init() {
	m := minify.New()
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("text/css", css.Minify)

	minified = make(map[string][]byte)

	_ = fs.WalkDir(rawFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := strings.ToLower(filepath.Ext(path))
		mediatype := ""
		switch ext {
		case ".js":
			mediatype = "application/javascript"
		case ".css":
			mediatype = "text/css"
		default:
			return nil
		}
		raw, err := rawFS.ReadFile(path)
		if err != nil {
			return nil
		}
		out, err := m.Bytes(mediatype, raw)
		if err != nil {
			log.Printf("shim: minify warning: %s: %v (using original)", path, err)
			minified[path] = raw
			return nil
		}
		minified[path] = out
		return nil
	})
}

// Handler returns an http.Handler that serves the shim assets.
// Mount it at /appshell/ with a StripPrefix.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		data, ok := minified[path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if ct, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
			w.Header().Set("Content-Type", ct)
		}
		_, _ = w.Write(data)
	})
}

// Asset returns a minified embedded asset by name, for the status page.
func Asset(name string) ([]byte, bool) {
	b, ok := minified[name]
	return b, ok
}
