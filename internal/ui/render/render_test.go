package render

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"appshell/internal/docsite"
	"appshell/internal/instructions"
	"appshell/internal/platform"
	"appshell/internal/ui/viewmodels"
)

func TestRenderStatusPage(t *testing.T) {
	vm := viewmodels.StatusVM{
		BaseVM: viewmodels.BaseVM{
			Title:       "Status",
			Active:      "status",
			SiteName:    "Demo Site",
			Version:     "cafe12345678",
			ContentTmpl: "status",
		},
		Addr:    "127.0.0.1:8090",
		SiteDir: "/tmp/demo",
		Sessions: []viewmodels.SessionRow{
			{
				ID:        "0f8a1c2e-5b7d-4e91-a3f6-8c2d9b4e7a10",
				Class:     "ios",
				State:     "idle",
				Shown:     true,
				Remote:    "127.0.0.1:52114",
				Connected: time.Now().Add(-time.Minute),
				Ready:     true,
			},
		},
		LogTail: []string{"BRIDGE: session connected"},
	}

	rec := httptest.NewRecorder()
	Render(rec, vm)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Demo Site", "127.0.0.1:8090", "0f8a1c2e", "state-idle", "BRIDGE: session connected"} {
		if !strings.Contains(body, want) {
			t.Errorf("status page missing %q", want)
		}
	}
	if strings.Contains(body, "template error") || strings.Contains(body, `class="err"`) {
		t.Fatalf("render error leaked into page: %s", body)
	}
}

func TestRenderEmptyStatusPage(t *testing.T) {
	vm := viewmodels.StatusVM{
		BaseVM: viewmodels.BaseVM{Title: "Status", Active: "status", SiteName: "Demo", ContentTmpl: "status"},
		Addr:   "127.0.0.1:8090",
	}

	rec := httptest.NewRecorder()
	Render(rec, vm)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "No pages connected") {
		t.Error("empty state row missing")
	}
}

func TestRenderDocsPage(t *testing.T) {
	site := docsite.New()
	if len(site.Pages) == 0 {
		t.Fatal("no handbook pages")
	}

	vm := viewmodels.DocsVM{
		BaseVM: viewmodels.BaseVM{Title: site.Pages[0].Title, Active: "docs", SiteName: "Demo", ContentTmpl: "docs"},
		Pages:  site.Pages,
		Page:   site.Pages[0],
	}

	rec := httptest.NewRecorder()
	Render(rec, vm)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/appshell/docs/install-flow") {
		t.Error("handbook nav missing")
	}
	if !strings.Contains(body, "Install App") {
		t.Error("page content missing")
	}
}

func TestRenderGuidePage(t *testing.T) {
	guide, ok := instructions.New().For(platform.IOS)
	if !ok {
		t.Fatal("no ios guide")
	}

	vm := viewmodels.GuideVM{
		BaseVM: viewmodels.BaseVM{Title: guide.Title, SiteName: "Demo", ContentTmpl: "guide"},
		Guide:  *guide,
	}

	rec := httptest.NewRecorder()
	Render(rec, vm)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Add to Home Screen") {
		t.Error("guide content missing")
	}
}
