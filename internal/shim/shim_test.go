package shim

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAssetsEmbedded(t *testing.T) {
	for _, name := range []string{"install.js", "install.css"} {
		b, ok := Asset(name)
		if !ok {
			t.Fatalf("asset %s missing", name)
		}
		if len(b) == 0 {
			t.Fatalf("asset %s is empty", name)
		}
	}
}

func TestHandler(t *testing.T) {
	h := Handler()

	t.Run("serves script", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/install.js", nil))
		if rec.Code != 200 {
			t.Fatalf("status %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
			t.Fatalf("content-type %q", ct)
		}
		if !strings.Contains(rec.Body.String(), "beforeinstallprompt") {
			t.Fatal("script does not hook beforeinstallprompt")
		}
	})

	t.Run("serves stylesheet", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/install.css", nil))
		if rec.Code != 200 {
			t.Fatalf("status %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
			t.Fatalf("content-type %q", ct)
		}
	})

	t.Run("unknown asset 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/evil.js", nil))
		if rec.Code != 404 {
			t.Fatalf("status %d", rec.Code)
		}
	})
}

func TestScriptIsMinified(t *testing.T) {
	min, _ := Asset("install.js")
	raw, err := rawFS.ReadFile("install.js")
	if err != nil {
		t.Fatal(err)
	}
	if len(min) >= len(raw) {
		t.Fatalf("minified script (%d bytes) not smaller than source (%d bytes)", len(min), len(raw))
	}
}
