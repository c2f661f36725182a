// Package webapp is the HTTP face of a running shell: it serves the site
// files with the install shim injected, the generated installability files,
// the page bridge socket and the shell's own pages and APIs.
package webapp

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	"golang.org/x/crypto/acme/autocert"

	"appshell/internal/bridge"
	"appshell/internal/config"
	"appshell/internal/docsite"
	"appshell/internal/instructions"
	"appshell/internal/pwa"
	"appshell/internal/shim"
	"appshell/internal/site"
	"appshell/internal/ui/assets"
	"appshell/internal/ui/render"
	"appshell/internal/util"
	"appshell/internal/webapp/routes"
)

type Options struct {
	Cfg     config.Config
	CfgPath string
	SiteDir string

	Store    *site.Store
	Bridge   *bridge.Manager
	Guides   *instructions.Set
	Handbook *docsite.Site
	Logs     *LogBuffer

	// Version returns the current site content version. It backs the
	// worker cache name and the status page.
	Version func() string
}

type Server struct {
	opts  Options
	mux   *http.ServeMux
	files *pwa.Files

	srv      *http.Server
	redirect *http.Server
	url      string
}

func New(opts Options) (*Server, error) {
	if opts.Store == nil || opts.Bridge == nil {
		return nil, errors.New("webapp: store and bridge are required")
	}
	if err := render.InitTemplates(); err != nil {
		return nil, err
	}

	s := &Server{
		opts:  opts,
		files: pwa.NewFiles(opts.Cfg.Site, opts.Version),
	}

	mux := http.NewServeMux()

	// Shell assets and shim. Exact and longer patterns below win over the
	// /appshell/ subtree, so the shim handler only sees its own files.
	mux.Handle("/appshell/assets/", http.StripPrefix("/appshell/assets/",
		noCache(assets.Handler()),
	))
	mux.Handle("/appshell/", http.StripPrefix("/appshell/", shim.Handler()))

	// Installability files at the origin root.
	mux.HandleFunc("/manifest.webmanifest", s.files.ServeManifest)
	if wp := workerRoute(opts.Cfg.Install.WorkerPath); wp != "" {
		mux.HandleFunc(wp, s.files.ServeWorker)
	}

	deps := routes.Deps{
		Cfg:      opts.Cfg,
		CfgPath:  opts.CfgPath,
		SiteDir:  opts.SiteDir,
		Bridge:   opts.Bridge,
		Guides:   opts.Guides,
		Handbook: opts.Handbook,
		Version:  opts.Version,
	}
	if opts.Logs != nil {
		deps.Logs = opts.Logs
	}
	routes.Register(mux, deps)

	// Everything else is the site itself.
	mux.HandleFunc("/", s.serveSite)

	s.mux = mux
	return s, nil
}

// workerRoute turns the configured worker path into a root route.
// Empty config disables worker serving entirely.
func workerRoute(p string) string {
	if p == "" {
		return ""
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return p
}

// Start brings the listener up and serves in the background. With a domain
// configured it serves HTTPS with automatic certificates instead, plus a
// plain-HTTP redirect that also answers the issuer's challenges.
func (s *Server) Start() error {
	if s.opts.Cfg.Shell.Domain != "" {
		return s.startTLS()
	}

	addr := s.opts.Cfg.Shell.HTTPAddr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.url = "http://" + ln.Addr().String()
	s.srv = &http.Server{Handler: s.mux}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("WEBAPP: server stopped: %v", err)
		}
	}()

	log.Printf("WEBAPP: serving %s at %s", s.opts.SiteDir, s.url)
	return nil
}

func (s *Server) startTLS() error {
	domain := s.opts.Cfg.Shell.Domain
	certDir := util.ResolvePath(s.opts.SiteDir, s.opts.Cfg.Shell.CertCacheDir)
	mgr := &autocert.Manager{
		Cache:      autocert.DirCache(certDir),
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domain),
	}

	s.srv = &http.Server{
		Addr:      ":https",
		Handler:   s.mux,
		TLSConfig: mgr.TLSConfig(),
	}
	s.redirect = &http.Server{
		Addr: ":http",
		Handler: mgr.HTTPHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			target := "https://" + domain + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusMovedPermanently)
		})),
	}

	go func() {
		if err := s.redirect.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("WEBAPP: redirect server stopped: %v", err)
		}
	}()
	go func() {
		if err := s.srv.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("WEBAPP: tls server stopped: %v", err)
		}
	}()

	s.url = "https://" + domain
	log.Printf("WEBAPP: serving %s at %s (automatic certificates)", s.opts.SiteDir, s.url)
	return nil
}

// URL returns the canonical base URL once Start has succeeded.
func (s *Server) URL() string { return s.url }

// Handler exposes the assembled mux, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error
	if s.redirect != nil {
		if err := s.redirect.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if s.srv != nil {
		if err := s.srv.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// noCache disables all browser caching. The shell's own assets change
// between builds without changing names, so conditional caching would
// serve stale UI after an upgrade.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		w.Header().Del("ETag")
		w.Header().Del("Last-Modified")

		next.ServeHTTP(w, r)
	})
}
