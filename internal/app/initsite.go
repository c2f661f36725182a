// internal/app/initsite.go
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"appshell/internal/config"
	"appshell/internal/sitetemplates"
)

// InitSite scaffolds a servable site at dir from an embedded template.
// Existing files are never overwritten, so running it again only fills
// gaps. A non-empty name replaces the default site name on first run.
// Returns the config path.
func InitSite(dir, template, name string) (string, error) {
	if template == "" {
		template = sitetemplates.Default
	}
	if _, err := sitetemplates.GetMeta(template); err != nil {
		return "", fmt.Errorf("unknown template %q", template)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	cfgPath := filepath.Join(dir, "appshell.json")
	cfg, created, err := config.Ensure(cfgPath)
	if err != nil {
		return "", err
	}
	if created && name != "" {
		cfg.Site.Name = name
		cfg.Site.ShortName = name
		if err := config.Save(cfgPath, cfg); err != nil {
			return "", err
		}
	}

	files, err := sitetemplates.SiteFiles(template)
	if err != nil {
		return "", err
	}

	pub := filepath.Join(dir, cfg.Paths.PublicDir)
	for rel, data := range files {
		abs := filepath.Join(pub, filepath.FromSlash(rel))
		if _, err := os.Stat(abs); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(abs, data, 0o644); err != nil {
			return "", err
		}
	}

	return cfgPath, nil
}
