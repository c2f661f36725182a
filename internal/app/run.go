package app

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"appshell/internal/bridge"
	"appshell/internal/config"
	"appshell/internal/docsite"
	"appshell/internal/instructions"
	"appshell/internal/site"
	"appshell/internal/util"
	"appshell/internal/watcher"
	"appshell/internal/webapp"
)

type Options struct {
	SiteDir string
	CfgPath string
	Cfg     config.Config

	// TeeLogs is an extra log sink alongside the ring buffer behind the
	// status page. CLI mode passes the terminal; the desktop app leaves
	// it nil.
	TeeLogs io.Writer

	Progress func(step, total int, label string)

	// OnReady is called once the server is reachable, with its base URL.
	OnReady func(url string)
}

func Run(ctx context.Context, opt Options) error {
	logBuf := webapp.NewLogBuffer(800)
	if opt.TeeLogs != nil {
		log.SetOutput(io.MultiWriter(opt.TeeLogs, logBuf))
	} else {
		log.SetOutput(logBuf)
	}

	logBanner(opt.SiteDir, opt.CfgPath)

	return runSite(ctx, runSiteOpts{
		SiteDir:  opt.SiteDir,
		CfgPath:  opt.CfgPath,
		Cfg:      opt.Cfg,
		Logs:     logBuf,
		Progress: opt.Progress,
		OnReady:  opt.OnReady,
	})
}

type runSiteOpts struct {
	SiteDir  string
	CfgPath  string
	Cfg      config.Config
	Logs     *webapp.LogBuffer
	Progress func(step, total int, label string)
	OnReady  func(url string)
}

func runSite(ctx context.Context, o runSiteOpts) error {
	cfg := o.Cfg

	emit := o.Progress
	if emit == nil {
		emit = func(int, int, string) {}
	}
	progress := func(s, t int, label string) {
		emit(s, t, label)
		time.Sleep(300 * time.Millisecond)
	}

	step := 0
	const total = 5 // site + bridge + server + watcher + online

	// ── Site store
	step++
	progress(step, total, "Opening site")

	store, err := site.NewStore(o.SiteDir, cfg.Paths.PublicDir)
	if err != nil {
		return err
	}
	if err := store.EnsureRoot(); err != nil {
		return err
	}
	log.Printf("SITE: serving %s", store.RootAbs())

	// The served content version feeds the worker cache name. It is
	// computed once here and refreshed by the watcher after edits.
	var verMu sync.RWMutex
	version := "dev"
	if v, err := store.Version(ctx); err == nil {
		version = v
	} else {
		log.Printf("SITE: version: %v", err)
	}
	versionFn := func() string {
		verMu.RLock()
		defer verMu.RUnlock()
		return version
	}

	// ── Install bridge
	step++
	progress(step, total, "Starting install bridge")

	guides := instructions.New()
	mgr := bridge.New(cfg, guides)
	defer mgr.Close()
	log.Printf("🔘 Install affordance enabled (worker: %q)", cfg.Install.WorkerPath)

	// ── Web server
	step++
	progress(step, total, "Starting web server")

	srv, err := webapp.New(webapp.Options{
		Cfg:      cfg,
		CfgPath:  o.CfgPath,
		SiteDir:  o.SiteDir,
		Store:    store,
		Bridge:   mgr,
		Guides:   guides,
		Handbook: docsite.New(),
		Logs:     o.Logs,
		Version:  versionFn,
	})
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}

	log.Println("────────────────────────────────────────────────────────")
	log.Printf("🌐 Site:  %s", srv.URL())
	log.Printf("📊 Shell: %s/appshell/status", srv.URL())
	log.Println("────────────────────────────────────────────────────────")

	if o.OnReady != nil {
		go o.OnReady(srv.URL())
	}

	// ── File watcher (dev mode: attached pages reload on edit)
	step++
	progress(step, total, "Watching for changes")

	if cfg.Shell.DevMode {
		w, err := watcher.New(store, watcher.NotifierFunc(func(v string) {
			verMu.Lock()
			version = v
			verMu.Unlock()
			mgr.BroadcastSiteUpdated(v)
		}), 0)
		if err != nil {
			log.Printf("WARNING: file watcher failed to start: %v", err)
		} else {
			defer w.Close()
		}
	}

	step++
	progress(step, total, "Online")

	<-ctx.Done()
	log.Println("SHELL: context cancelled, shutting down...")

	shutCtx, cancel := context.WithTimeout(context.Background(), util.DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("SHELL: shutdown: %v", err)
	}
	log.Println("SHELL: stopped")
	return nil
}
