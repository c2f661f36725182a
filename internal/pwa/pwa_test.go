package pwa

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"appshell/internal/config"
)

func TestBuildManifest(t *testing.T) {
	site := config.Site{
		Name:            "Notes",
		ShortName:       "Notes",
		Description:     "A notes app",
		ThemeColor:      "#112233",
		BackgroundColor: "#445566",
		Icons: []config.Icon{
			{Src: "icons/icon-192.png", Sizes: "192x192", Type: "image/png"},
			{Src: "/icons/icon-512.png", Sizes: "512x512", Type: "image/png"},
		},
	}

	m := BuildManifest(site)
	if m.StartURL != "/" || m.Scope != "/" || m.Display != "standalone" {
		t.Fatalf("bad manifest defaults: %+v", m)
	}
	for _, ic := range m.Icons {
		if !strings.HasPrefix(ic.Src, "/") {
			t.Fatalf("icon src %q not root-absolute", ic.Src)
		}
		if strings.HasPrefix(ic.Src, "//") {
			t.Fatalf("icon src %q double-rooted", ic.Src)
		}
	}
}

func TestServeManifest(t *testing.T) {
	f := NewFiles(config.Default().Site, func() string { return "abc123" })

	rec := httptest.NewRecorder()
	f.ServeManifest(rec, httptest.NewRequest("GET", "/manifest.webmanifest", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/manifest+json" {
		t.Fatalf("content-type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Fatalf("cache-control = %q", cc)
	}

	var m Manifest
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if m.Display != "standalone" {
		t.Fatalf("display = %q", m.Display)
	}
	if len(m.Icons) == 0 {
		t.Fatal("manifest has no icons")
	}
}

func TestServeWorker(t *testing.T) {
	f := NewFiles(config.Default().Site, func() string { return "abc123" })

	rec := httptest.NewRecorder()
	f.ServeWorker(rec, httptest.NewRequest("GET", "/sw.js", nil))

	if h := rec.Header().Get("Service-Worker-Allowed"); h != "/" {
		t.Fatalf("Service-Worker-Allowed = %q", h)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Fatalf("cache-control = %q", cc)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "appshell-abc123") {
		t.Fatalf("worker body missing versioned cache name: %.120s", body)
	}
	if strings.Contains(body, versionToken) {
		t.Fatal("version token left unreplaced")
	}
}

func TestWorkerVersionIsLive(t *testing.T) {
	v := "one"
	f := NewFiles(config.Default().Site, func() string { return v })

	rec1 := httptest.NewRecorder()
	f.ServeWorker(rec1, httptest.NewRequest("GET", "/sw.js", nil))
	v = "two"
	rec2 := httptest.NewRecorder()
	f.ServeWorker(rec2, httptest.NewRequest("GET", "/sw.js", nil))

	if !strings.Contains(rec2.Body.String(), "appshell-two") {
		t.Fatal("worker did not pick up the new version")
	}
	if rec1.Body.String() == rec2.Body.String() {
		t.Fatal("worker body identical across version change")
	}
}
