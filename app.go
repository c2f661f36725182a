// app.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	shellapp "appshell/internal/app"
	"appshell/internal/config"
	"appshell/internal/sitetemplates"
	"appshell/internal/util"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

const sitesRoot = "./sites"

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu sync.RWMutex

	siteDir  string
	cfgPath  string
	siteName string
	started  bool
	siteURL  string
}

// SiteInfo is returned by ListSites to the Wails frontend.
type SiteInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	DevMode bool   `json:"dev_mode"`
}

func NewApp() *App { return &App{} }

func (a *App) startup(ctx context.Context) {
	// Create cancellable context for the site server lifecycle
	a.ctx, a.cancel = context.WithCancel(ctx)
}

func (a *App) shutdown(ctx context.Context) {
	if a.cancel != nil {
		log.Println("SHUTDOWN: cancelling server context...")
		a.cancel()

		// Give the server time to close its listeners
		time.Sleep(500 * time.Millisecond)
		log.Println("SHUTDOWN: complete")
	}
}

// -------------------------
// Frontend API (sites)
// -------------------------

func (a *App) ListSites() ([]SiteInfo, error) {
	entries, err := os.ReadDir(sitesRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return []SiteInfo{}, nil
		}
		return nil, err
	}

	var sites []SiteInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		cfgPath := filepath.Join(sitesRoot, e.Name(), "appshell.json")
		if _, err := os.Stat(cfgPath); err != nil {
			continue
		}

		info := SiteInfo{Name: e.Name()}

		// LoadPartial skips validation so the card still shows when the
		// config has issues the user needs to fix.
		if cfg, err := config.LoadPartial(cfgPath); err == nil {
			info.Title = cfg.Site.Name
			info.DevMode = cfg.Shell.DevMode
		}

		sites = append(sites, info)
	}

	sort.Slice(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })
	return sites, nil
}

func (a *App) ListTemplates() ([]sitetemplates.TemplateMeta, error) {
	return sitetemplates.List()
}

func (a *App) CreateSite(name string, template string) (string, error) {
	name, err := util.ValidateSiteName(name)
	if err != nil {
		return "", err
	}

	siteDir := filepath.Join(sitesRoot, name)
	if _, err := shellapp.InitSite(siteDir, template, name); err != nil {
		return "", err
	}
	return name, nil
}

func (a *App) DeleteSite(name string) error {
	name, err := util.ValidateSiteName(name)
	if err != nil {
		return err
	}

	a.mu.RLock()
	running := a.started && a.siteName == name
	a.mu.RUnlock()
	if running {
		return errors.New("cannot delete a running site")
	}

	return os.RemoveAll(filepath.Join(sitesRoot, name))
}

func (a *App) StartSite(name string) error {
	name, err := util.ValidateSiteName(name)
	if err != nil {
		return err
	}
	return a.startDir(filepath.Join(sitesRoot, name), name)
}

// StartFolder serves an existing site folder picked outside sitesRoot.
func (a *App) StartFolder(dir string) error {
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	return a.startDir(dir, filepath.Base(dir))
}

func (a *App) startDir(siteDir, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return fmt.Errorf("a site is already running")
	}

	cfgPath := filepath.Join(siteDir, "appshell.json")
	cfg, _, err := config.Ensure(cfgPath)
	if err != nil {
		return err
	}

	// pick free localhost port
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()

	cfg.Shell.HTTPAddr = fmt.Sprintf("127.0.0.1:%d", port)

	a.siteDir = siteDir
	a.cfgPath = cfgPath
	a.siteName = name
	a.started = true
	a.siteURL = "http://" + cfg.Shell.HTTPAddr

	progress := func(step, total int, label string) {
		runtime.EventsEmit(a.ctx, "startup:progress", map[string]interface{}{
			"step":  step,
			"total": total,
			"label": label,
		})
	}

	go func() {
		if err := shellapp.Run(a.ctx, shellapp.Options{
			SiteDir:  siteDir,
			CfgPath:  cfgPath,
			Cfg:      cfg,
			Progress: progress,
		}); err != nil {
			log.Printf("site server failed: %v", err)
			runtime.EventsEmit(a.ctx, "startup:error", err.Error())
		}
		// Run has returned, whether by crash or shutdown; allow a new start.
		a.mu.Lock()
		a.started = false
		a.siteURL = ""
		a.mu.Unlock()
	}()

	// wait until the server is listening (progress bar keeps user informed)
	if err := shellapp.WaitTCP(cfg.Shell.HTTPAddr, 30*time.Second); err != nil {
		a.started = false
		a.siteURL = ""
		runtime.EventsEmit(a.ctx, "startup:error", "Server did not start in time")
		return fmt.Errorf("server did not start")
	}

	return nil
}

func (a *App) GetSiteURL() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.siteURL
}

func (a *App) GetStatus() map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]string{
		"started":  fmt.Sprintf("%v", a.started),
		"siteName": a.siteName,
		"siteURL":  a.siteURL,
	}
}

// OpenInBrowser opens a URL in the default browser.
func (a *App) OpenInBrowser(url string) {
	runtime.BrowserOpenURL(a.ctx, url)
}

// SelectSiteFolder opens a native directory picker and returns the chosen
// path. Returns empty string if the user cancels.
func (a *App) SelectSiteFolder() (string, error) {
	dir, err := runtime.OpenDirectoryDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Choose site folder",
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}
