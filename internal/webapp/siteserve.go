package webapp

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"appshell/internal/site"
)

// shimTags is what every served HTML page gets injected. Built once; the
// URLs are fixed mounts of this server.
var shimTags = site.ShimTags(
	"/manifest.webmanifest",
	"/appshell/install.css",
	"/appshell/install.js",
)

// serveSite resolves a request path inside the site store and serves it,
// injecting the install shim into HTML documents. Directory requests fall
// through to their index.html, and extensionless paths are retried as
// directories so sites can use pretty URLs.
func (s *Server) serveSite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if rel == "" || rel == "." {
		rel = "index.html"
	}

	data, etag, resolved, err := s.readWithIndex(r, rel)
	if err != nil {
		if errors.Is(err, site.ErrNotFound) || errors.Is(err, site.ErrOutsideRoot) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "read error", http.StatusInternalServerError)
		return
	}

	ct := contentTypeForPath(resolved, data)
	isHTML := strings.HasPrefix(ct, "text/html")
	if isHTML {
		data = site.InjectShim(data, shimTags)
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if s.opts.Cfg.Shell.DevMode {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	} else if !isHTML {
		// HTML carries the injected shim and revalidates every load; the
		// rest can use conditional requests against the content hash.
		w.Header().Set("ETag", `"`+etag+`"`)
		if match := r.Header.Get("If-None-Match"); match != "" && strings.Contains(match, etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}

// readWithIndex reads rel, trying rel/index.html when rel is a directory
// or an extensionless miss. It reports the path actually read.
func (s *Server) readWithIndex(r *http.Request, rel string) ([]byte, string, string, error) {
	if isDir, err := s.opts.Store.Stat(r.Context(), rel); err == nil && isDir {
		rel = path.Join(rel, "index.html")
	}

	data, etag, err := s.opts.Store.Read(r.Context(), rel)
	if errors.Is(err, site.ErrNotFound) && path.Ext(rel) == "" {
		rel = path.Join(rel, "index.html")
		data, etag, err = s.opts.Store.Read(r.Context(), rel)
	}
	return data, etag, rel, err
}

// contentTypeForPath returns a browser-safe Content-Type for common site
// files. It intentionally overrides sniffing for .css/.js to avoid MIME
// mismatch blocking.
func contentTypeForPath(rel string, data []byte) string {
	ext := strings.ToLower(path.Ext(rel))

	switch ext {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	case ".webmanifest":
		return "application/manifest+json"
	case ".wasm":
		return "application/wasm"
	}

	if ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return mt
		}
	}

	return http.DetectContentType(data)
}
