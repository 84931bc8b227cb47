package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalogIncludesDefaultAndUserThemes(t *testing.T) {
	dir := t.TempDir()

	tomlContent := []byte(`
[metadata]
name = "Oceanic"
author = "QA"

[styles.title]
foreground = "#ddeeff"

[colors]
otp_accent = "#335577"
`)
	if err := os.WriteFile(filepath.Join(dir, "oceanic.toml"), tomlContent, 0o644); err != nil {
		t.Fatalf("write toml theme: %v", err)
	}

	jsonContent := []byte(`{
  "metadata": {
    "name": "Oceanic",
    "author": "QA"
  },
  "colors": {
    "otp_text": "#ff9900"
  }
}`)
	if err := os.WriteFile(filepath.Join(dir, "sunset.json"), jsonContent, 0o644); err != nil {
		t.Fatalf("write json theme: %v", err)
	}

	yamlContent := []byte(`
metadata:
  name: Paper Mint
colors:
  otp_accent: "#2bb673"
styles:
  error:
    bold: true
`)
	if err := os.WriteFile(filepath.Join(dir, "mint.yml"), yamlContent, 0o644); err != nil {
		t.Fatalf("write yaml theme: %v", err)
	}

	catalog, err := LoadCatalog([]string{dir})
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}

	if _, ok := catalog.Get("default"); !ok {
		t.Fatalf("expected default theme to be present")
	}

	oceanic, ok := catalog.Get("oceanic")
	if !ok {
		t.Fatalf("expected oceanic theme to load")
	}
	if oceanic.Metadata.Author != "QA" {
		t.Fatalf("expected author QA, got %q", oceanic.Metadata.Author)
	}
	if oceanic.Theme.OTPAccent != "#335577" {
		t.Fatalf("expected accent override, got %q", oceanic.Theme.OTPAccent)
	}

	duplicate, ok := catalog.Get("oceanic-1")
	if !ok {
		t.Fatalf("expected duplicate slug to be uniquified")
	}
	if duplicate.Theme.OTPText != "#ff9900" {
		t.Fatalf("expected JSON theme color override, got %q", duplicate.Theme.OTPText)
	}

	mint, ok := catalog.Get("paper-mint")
	if !ok {
		t.Fatalf("expected yaml theme to load, keys: %v", catalog.Keys())
	}
	if mint.Format != FormatYAML {
		t.Fatalf("expected yaml format, got %q", mint.Format)
	}
	if mint.Theme.OTPAccent != "#2bb673" || !mint.Theme.Error.GetBold() {
		t.Fatalf("expected yaml overrides, got accent %q", mint.Theme.OTPAccent)
	}
}

func TestLoadCatalogHandlesMissingDirectory(t *testing.T) {
	catalog, err := LoadCatalog([]string{"/nonexistent/path"})
	if err != nil {
		t.Fatalf("LoadCatalog should not error on missing directories: %v", err)
	}
	if _, ok := catalog.Get("default"); !ok {
		t.Fatalf("expected default theme even when directories are missing")
	}
	if len(catalog.All()) != 1 {
		t.Fatalf("expected only default theme, got %d", len(catalog.All()))
	}
}

func TestLoadCatalogReportsBrokenThemes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("colours:\n  otp_text: red\n"), 0o644); err != nil {
		t.Fatalf("write yaml theme: %v", err)
	}
	catalog, err := LoadCatalog([]string{dir})
	if err == nil {
		t.Fatalf("expected unknown yaml field to be reported")
	}
	if _, ok := catalog.Get("default"); !ok {
		t.Fatalf("expected default theme to survive a broken user theme")
	}
}

func TestCatalogResolve(t *testing.T) {
	catalog, err := LoadCatalog(nil)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if def, ok := catalog.Resolve(""); !ok || def.Key != "default" {
		t.Fatalf("expected empty key to resolve to default, got %q (ok=%v)", def.Key, ok)
	}
	if def, ok := catalog.Resolve("Missing"); ok || def.Key != "default" {
		t.Fatalf("expected miss to fall back without ok, got %q (ok=%v)", def.Key, ok)
	}
	if def, ok := (Catalog{}).Resolve("default"); !ok || def.Theme.OTPAccent == "" {
		t.Fatalf("expected empty catalog to synthesise default theme")
	}
}
