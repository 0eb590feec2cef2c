package project

import (
	"os"
	"path/filepath"
	"testing"

	"wvtrace/internal/correlate"
)

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestResolveDefaultsWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	res, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.RunsDir != DefaultRunsDir {
		t.Errorf("RunsDir = %q, want %q", res.RunsDir, DefaultRunsDir)
	}
	if res.Ext != ".jsonl" {
		t.Errorf("Ext = %q, want .jsonl", res.Ext)
	}
	if res.Window != correlate.DefaultWindow {
		t.Errorf("Window = %+v, want default", res.Window)
	}
	if !res.Highlight {
		t.Error("Highlight should default to true")
	}
	if res.BaseDelay != 1200 {
		t.Errorf("BaseDelay = %d, want 1200", res.BaseDelay)
	}
}

func TestResolveReadsManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[runs]
dir = "traces"
ext = ".log"

[correlate]
start_offset = 3
end_offset = 0

[view]
base_delay_ms = 800
highlight = false
`)
	res, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(dir, "traces"); res.RunsDir != want {
		t.Errorf("RunsDir = %q, want %q", res.RunsDir, want)
	}
	if res.Ext != ".log" {
		t.Errorf("Ext = %q, want .log", res.Ext)
	}
	if res.Window.StartOffset != 3 || res.Window.EndOffset != 0 {
		t.Errorf("Window = %+v, want {3 0}", res.Window)
	}
	if res.BaseDelay != 800 {
		t.Errorf("BaseDelay = %d, want 800", res.BaseDelay)
	}
	if res.Highlight {
		t.Error("Highlight should be disabled by manifest")
	}
}

func TestResolveFindsManifestInParent(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[runs]\ndir = \"rec\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	res, err := Resolve(nested, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(root, "rec"); res.RunsDir != want {
		t.Errorf("RunsDir = %q, want %q", res.RunsDir, want)
	}
}

func TestResolveOverrideWins(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[runs]\ndir = \"traces\"\n")
	res, err := Resolve(dir, "/explicit/runs")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.RunsDir != "/explicit/runs" {
		t.Errorf("RunsDir = %q, want override", res.RunsDir)
	}
}

func TestResolveAbsoluteManifestDir(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere")
	writeManifest(t, dir, "[runs]\ndir = \""+abs+"\"\n")
	res, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.RunsDir != abs {
		t.Errorf("RunsDir = %q, want %q", res.RunsDir, abs)
	}
}
