package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strings"

	"appshell/internal/util"
)

type Config struct {
	Site    Site    `json:"site"`
	Paths   Paths   `json:"paths"`
	Shell   Shell   `json:"shell"`
	Install Install `json:"install"`
}

// Paths locates the served content inside a site directory.
type Paths struct {
	// PublicDir is the served site root, relative to the site directory.
	PublicDir string `json:"public_dir"`
}

// Site describes the installable web app: everything that ends up in the
// generated manifest.
type Site struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	Description     string `json:"description"`
	ThemeColor      string `json:"theme_color"`
	BackgroundColor string `json:"background_color"`
	Icons           []Icon `json:"icons"`
}

// Icon is one manifest icon entry. Src is resolved against the site root.
type Icon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type Shell struct {
	// HTTPAddr is the listen address. Empty means 127.0.0.1 on an
	// ephemeral port (desktop mode).
	HTTPAddr string `json:"http_addr"`

	// Domain enables Let's Encrypt certificates for the given hostname.
	// Install prompts require a secure context, so public serving without
	// a domain only works behind an existing TLS proxy.
	Domain string `json:"domain"`

	// CertCacheDir is where issued certificates are cached. Relative to
	// the site directory. Only used when Domain is set.
	CertCacheDir string `json:"cert_cache_dir"`

	// DevMode watches the site directory and pushes updates to attached
	// pages.
	DevMode bool `json:"dev_mode"`

	Debug bool `json:"debug"`
}

type Install struct {
	// ContainerID names the element the button is appended to. A page
	// without it simply never shows the button.
	ContainerID string `json:"container_id"`

	ButtonLabel string `json:"button_label"`

	// WorkerPath is the background worker script registered on page load.
	// Empty disables registration.
	WorkerPath string `json:"worker_path"`

	// ShowDelayMs delays the proactive button on Apple platforms so a
	// slow page has its container in place.
	ShowDelayMs int `json:"show_delay_ms"`

	// RevealDelayMs is the pause between inserting the button and lifting
	// its entry transition.
	RevealDelayMs int `json:"reveal_delay_ms"`

	// FadeOutMs is the instructions-dialog fade duration.
	FadeOutMs int `json:"fade_out_ms"`

	Disabled bool `json:"disabled"`
}

func Default() Config {
	return Config{
		Site: Site{
			Name:            "App Shell Site",
			ShortName:       "AppShell",
			ThemeColor:      "#1f6feb",
			BackgroundColor: "#0d1117",
			Icons: []Icon{
				{Src: "icons/icon-192.png", Sizes: "192x192", Type: "image/png"},
				{Src: "icons/icon-512.png", Sizes: "512x512", Type: "image/png"},
			},
		},
		Paths: Paths{
			PublicDir: "public",
		},
		Shell: Shell{
			HTTPAddr:     "",
			Domain:       "",
			CertCacheDir: "data/certs",
			DevMode:      false,
			Debug:        false,
		},
		Install: Install{
			ContainerID:   "install-container",
			ButtonLabel:   "Install App",
			WorkerPath:    "sw.js",
			ShowDelayMs:   1500,
			RevealDelayMs: 50,
			FadeOutMs:     300,
			Disabled:      false,
		},
	}
}

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{3}(?:[0-9a-fA-F]{3})?$`)

func (c *Config) Validate() error {
	// Site
	if strings.TrimSpace(c.Site.Name) == "" {
		return errors.New("site.name is required")
	}
	if strings.TrimSpace(c.Site.ShortName) == "" {
		return errors.New("site.short_name is required")
	}
	if tc := c.Site.ThemeColor; tc != "" && !colorRe.MatchString(tc) {
		return errors.New("site.theme_color must be a #rgb or #rrggbb color")
	}
	if bc := c.Site.BackgroundColor; bc != "" && !colorRe.MatchString(bc) {
		return errors.New("site.background_color must be a #rgb or #rrggbb color")
	}
	for i, ic := range c.Site.Icons {
		if strings.TrimSpace(ic.Src) == "" {
			return fmt.Errorf("site.icons[%d].src is required", i)
		}
		if strings.HasPrefix(ic.Src, "/") || strings.Contains(ic.Src, "..") {
			return fmt.Errorf("site.icons[%d].src must be a relative path inside the site", i)
		}
	}

	// Paths
	if strings.TrimSpace(c.Paths.PublicDir) == "" {
		return errors.New("paths.public_dir is required")
	}
	if strings.Contains(c.Paths.PublicDir, "..") {
		return errors.New("paths.public_dir must not contain '..'")
	}

	// Shell
	if a := strings.TrimSpace(c.Shell.HTTPAddr); a != "" {
		if _, _, err := net.SplitHostPort(a); err != nil {
			return fmt.Errorf("shell.http_addr: %v", err)
		}
	}
	if d := strings.TrimSpace(c.Shell.Domain); d != "" {
		if strings.ContainsAny(d, "/: ") {
			return errors.New("shell.domain must be a bare hostname")
		}
		if strings.TrimSpace(c.Shell.CertCacheDir) == "" {
			return errors.New("shell.cert_cache_dir is required when shell.domain is set")
		}
	}

	// Install
	if strings.TrimSpace(c.Install.ContainerID) == "" {
		return errors.New("install.container_id is required")
	}
	if strings.TrimSpace(c.Install.ButtonLabel) == "" {
		return errors.New("install.button_label is required")
	}
	if wp := c.Install.WorkerPath; wp != "" {
		if strings.HasPrefix(wp, "/") || strings.Contains(wp, "..") {
			return errors.New("install.worker_path must be relative to the site root")
		}
	}
	if c.Install.ShowDelayMs < 0 || c.Install.ShowDelayMs > 60000 {
		return errors.New("install.show_delay_ms must be 0..60000")
	}
	if c.Install.RevealDelayMs < 0 || c.Install.RevealDelayMs > 5000 {
		return errors.New("install.reveal_delay_ms must be 0..5000")
	}
	if c.Install.FadeOutMs < 0 || c.Install.FadeOutMs > 5000 {
		return errors.New("install.fade_out_ms must be 0..5000")
	}

	return nil
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	// Strip UTF-8 BOM if present (common when editing JSON on Windows).
	b = stripBOM(b)

	// Start from defaults so missing JSON fields remain initialized.
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadPartial reads a config file without validation. Useful for reading
// individual fields (like shell.http_addr) when full validation may fail.
func LoadPartial(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	b = stripBOM(b)

	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// stripBOM removes a UTF-8 byte order mark if present.
func stripBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	return util.WriteJSONFile(path, cfg)
}

// Ensure loads config if it exists; otherwise creates a default config file.
// Returns (cfg, createdNew, err).
func Ensure(path string) (Config, bool, error) {
	if _, err := os.Stat(path); err == nil {
		cfg, err := Load(path)
		return cfg, false, err
	} else if !os.IsNotExist(err) {
		return Config{}, false, err
	}

	cfg := Default()
	if err := Save(path, cfg); err != nil {
		return Config{}, false, fmt.Errorf("create default config: %w", err)
	}
	return cfg, true, nil
}
