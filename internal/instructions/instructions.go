// Package instructions holds the manual install guides shown on platforms
// without a native install prompt. The embedded markdown is rendered once
// at startup; the resulting HTML is what the dialog command ships to the
// page.
package instructions

import (
	"bytes"
	"embed"
	"html/template"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"appshell/internal/platform"
)

//go:embed all:guides
var guidesFS embed.FS

// Guide is one rendered install guide.
type Guide struct {
	Class platform.Class
	Title string
	HTML  template.HTML
}

// Set holds the rendered guides keyed by platform class.
type Set struct {
	byClass map[platform.Class]*Guide
}

// New renders all embedded guides. A class without a guide file simply has
// no manual instructions, which the caller treats as "nothing to show".
func New() *Set {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	set := &Set{byClass: map[platform.Class]*Guide{}}

	entries, err := guidesFS.ReadDir("guides")
	if err != nil {
		return set
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}

		data, err := guidesFS.ReadFile(path.Join("guides", e.Name()))
		if err != nil {
			continue
		}

		class := platform.Class(strings.TrimSuffix(e.Name(), ".md"))

		// Title: first "# Heading" line.
		title := string(class)
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "# ") {
				title = strings.TrimPrefix(line, "# ")
				break
			}
		}

		var buf bytes.Buffer
		if err := md.Convert(data, &buf); err != nil {
			continue
		}

		set.byClass[class] = &Guide{
			Class: class,
			Title: title,
			HTML:  template.HTML(buf.String()),
		}
	}

	return set
}

// For returns the guide for a platform class, if one exists.
func (s *Set) For(class platform.Class) (*Guide, bool) {
	g, ok := s.byClass[class]
	return g, ok
}

// Classes lists the classes that have a guide, for the instructions API.
func (s *Set) Classes() []platform.Class {
	out := make([]platform.Class, 0, len(s.byClass))
	for _, c := range []platform.Class{platform.IOS, platform.IPadOS, platform.MacOS} {
		if _, ok := s.byClass[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
