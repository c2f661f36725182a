// internal/sitetemplates/embed.go

// Package sitetemplates ships the starter sites that init scaffolds.
// Each template is a ready-to-serve public tree plus a manifest.json
// describing it; writing the files to disk is the caller's job.
package sitetemplates

import (
	"embed"
	"encoding/json"
	"io/fs"
	"path"
	"strings"
)

//go:embed all:starter all:blog
var templateFS embed.FS

// Default is the template init uses when none is named.
const Default = "starter"

// TemplateMeta holds template metadata from manifest.json.
type TemplateMeta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Dir         string `json:"dir"` // directory name (e.g. "starter")
}

// List returns metadata for all available templates.
func List() ([]TemplateMeta, error) {
	entries, err := templateFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var out []TemplateMeta
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := readManifest(e.Name())
		if err != nil {
			continue // skip broken templates
		}
		m.Dir = e.Name()
		out = append(out, m)
	}
	return out, nil
}

// SiteFiles returns the template's public tree as relative path → content.
// The manifest describes the template and is not part of the site.
func SiteFiles(dir string) (map[string][]byte, error) {
	out := make(map[string][]byte)

	err := fs.WalkDir(templateFS, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		base := strings.TrimPrefix(p, dir+"/")
		if base == "manifest.json" {
			return nil
		}
		data, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		out[base] = data
		return nil
	})

	return out, err
}

// GetMeta returns the manifest metadata for a specific template directory.
func GetMeta(dir string) (TemplateMeta, error) {
	return readManifest(dir)
}

func readManifest(dir string) (TemplateMeta, error) {
	var m TemplateMeta
	b, err := templateFS.ReadFile(path.Join(dir, "manifest.json"))
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(b, &m)
	return m, err
}
