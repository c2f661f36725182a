package sitetemplates

import (
	"bytes"
	"testing"
)

func TestList(t *testing.T) {
	templates, err := List()
	if err != nil {
		t.Fatal(err)
	}
	byDir := map[string]TemplateMeta{}
	for _, m := range templates {
		byDir[m.Dir] = m
	}
	for _, dir := range []string{"starter", "blog"} {
		m, ok := byDir[dir]
		if !ok {
			t.Fatalf("template %q missing", dir)
		}
		if m.Name == "" || m.Description == "" {
			t.Errorf("template %q has empty metadata", dir)
		}
	}
}

func TestSiteFiles(t *testing.T) {
	files, err := SiteFiles(Default)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"index.html",
		"style.css",
		"about/index.html",
		"icons/icon-192.png",
		"icons/icon-512.png",
	} {
		if _, ok := files[want]; !ok {
			t.Errorf("starter missing %s", want)
		}
	}
	if _, ok := files["manifest.json"]; ok {
		t.Error("manifest.json leaked into site files")
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(files["icons/icon-192.png"], pngMagic) {
		t.Error("icon-192 is not a png")
	}
}

func TestGetMetaUnknown(t *testing.T) {
	if _, err := GetMeta("no-such-template"); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
