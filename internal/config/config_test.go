package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appshell.json")

	cfg, created, err := Ensure(path)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("expected created=true for a fresh path")
	}
	if cfg.Install.ContainerID != "install-container" {
		t.Fatalf("unexpected default container id %q", cfg.Install.ContainerID)
	}

	// Second call loads the file it just wrote.
	cfg2, created, err := Ensure(path)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("expected created=false on second call")
	}
	if cfg2.Site.Name != cfg.Site.Name {
		t.Fatalf("reloaded name %q != %q", cfg2.Site.Name, cfg.Site.Name)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appshell.json")
	body := `{"site":{"name":"Notes","short_name":"Notes"},"install":{"show_delay_ms":500}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Site.Name != "Notes" {
		t.Fatalf("name = %q, want Notes", cfg.Site.Name)
	}
	if cfg.Install.ShowDelayMs != 500 {
		t.Fatalf("show_delay_ms = %d, want 500", cfg.Install.ShowDelayMs)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Install.ButtonLabel != "Install App" {
		t.Fatalf("button_label = %q, want default", cfg.Install.ButtonLabel)
	}
	if len(cfg.Site.Icons) != 2 {
		t.Fatalf("icons = %d entries, want default 2", len(cfg.Site.Icons))
	}
}

func TestLoadStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appshell.json")
	body := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"site":{"name":"X","short_name":"X"}}`)...)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Site.Name != "X" {
		t.Fatalf("name = %q, want X", cfg.Site.Name)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default is valid", func(c *Config) {}, ""},
		{"missing site name", func(c *Config) { c.Site.Name = " " }, "site.name"},
		{"bad theme color", func(c *Config) { c.Site.ThemeColor = "blue" }, "theme_color"},
		{"short hex color ok", func(c *Config) { c.Site.ThemeColor = "#abc" }, ""},
		{"absolute icon src", func(c *Config) { c.Site.Icons[0].Src = "/etc/icon.png" }, "icons[0]"},
		{"icon escape", func(c *Config) { c.Site.Icons[1].Src = "../icon.png" }, "icons[1]"},
		{"empty public dir", func(c *Config) { c.Paths.PublicDir = "" }, "public_dir"},
		{"public dir escape", func(c *Config) { c.Paths.PublicDir = "../www" }, "public_dir"},
		{"bad listen addr", func(c *Config) { c.Shell.HTTPAddr = "8080" }, "http_addr"},
		{"valid listen addr", func(c *Config) { c.Shell.HTTPAddr = "0.0.0.0:8080" }, ""},
		{"domain with scheme", func(c *Config) { c.Shell.Domain = "https://x.example" }, "domain"},
		{"domain without cert cache", func(c *Config) { c.Shell.Domain = "x.example"; c.Shell.CertCacheDir = "" }, "cert_cache_dir"},
		{"absolute worker path", func(c *Config) { c.Install.WorkerPath = "/sw.js" }, "worker_path"},
		{"empty worker path ok", func(c *Config) { c.Install.WorkerPath = "" }, ""},
		{"negative delay", func(c *Config) { c.Install.ShowDelayMs = -1 }, "show_delay_ms"},
		{"huge delay", func(c *Config) { c.Install.ShowDelayMs = 120000 }, "show_delay_ms"},
		{"missing container", func(c *Config) { c.Install.ContainerID = "" }, "container_id"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(&cfg)
			err := cfg.Validate()
			if c.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, c.wantErr)
			}
		})
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Install.ContainerID = ""
	path := filepath.Join(t.TempDir(), "appshell.json")
	if err := Save(path, cfg); err == nil {
		t.Fatal("expected validation error from Save")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("invalid config was written to disk")
	}
}
