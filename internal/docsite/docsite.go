// Package docsite renders the embedded handbook once at startup. Pages are
// markdown files with a numeric filename prefix that fixes their order.
package docsite

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

//go:embed all:pages
var pagesFS embed.FS

// Page is a single rendered handbook page.
type Page struct {
	Slug  string // "01-overview.md" -> "overview"
	Title string // first "#" heading, or the slug
	HTML  template.HTML
}

// Site holds the rendered handbook.
type Site struct {
	Pages  []Page
	bySlug map[string]int
}

// New renders every embedded page. Code fences get server-side syntax
// highlighting, so the handbook needs no scripts of its own.
func New() *Site {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			highlighting.NewHighlighting(highlighting.WithStyle("github")),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	site := &Site{bySlug: map[string]int{}}

	entries, err := pagesFS.ReadDir("pages")
	if err != nil {
		log.Printf("DOCS: embedded pages unavailable: %v", err)
		return site
	}

	// ReadDir returns entries sorted by name, which is the page order.
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := pagesFS.ReadFile(path.Join("pages", e.Name()))
		if err != nil {
			log.Printf("DOCS: read %s: %v", e.Name(), err)
			continue
		}

		var buf bytes.Buffer
		if err := md.Convert(data, &buf); err != nil {
			log.Printf("DOCS: render %s: %v", e.Name(), err)
			continue
		}

		slug := slugOf(e.Name())
		site.bySlug[slug] = len(site.Pages)
		site.Pages = append(site.Pages, Page{
			Slug:  slug,
			Title: titleOf(data, slug),
			HTML:  template.HTML(buf.String()),
		})
	}

	return site
}

// BySlug returns the page for a slug.
func (s *Site) BySlug(slug string) (Page, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return Page{}, false
	}
	return s.Pages[i], true
}

// slugOf strips the ordering prefix and the extension from a page
// filename.
func slugOf(name string) string {
	name = strings.TrimSuffix(name, ".md")
	if _, rest, ok := strings.Cut(name, "-"); ok {
		return rest
	}
	return name
}

// titleOf pulls the first top-level heading out of the raw markdown.
func titleOf(data []byte, fallback string) string {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return fallback
}
