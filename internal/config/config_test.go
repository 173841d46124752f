package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tagmint/tagmint"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, `
projects: [ops, core]
mainline: [trunk]
remote: upstream
first_release_tag: v2.0.0
`)

	got, err := Load(tagmint.DefaultOptions(), dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Projects) != 2 || got.Projects[0] != "ops" {
		t.Fatalf("Projects=%v", got.Projects)
	}
	if len(got.MainlineCandidates) != 1 || got.MainlineCandidates[0] != "trunk" {
		t.Fatalf("MainlineCandidates=%v", got.MainlineCandidates)
	}
	if got.Remote != "upstream" || got.FirstReleaseTag != "v2.0.0" {
		t.Fatalf("Remote=%q FirstReleaseTag=%q", got.Remote, got.FirstReleaseTag)
	}
	// Fields absent from the file keep their defaults.
	if got.FirstDevelopmentTag != "v0.1.0" {
		t.Fatalf("FirstDevelopmentTag=%q, want default", got.FirstDevelopmentTag)
	}
}

func TestLoadDefaultFileMissing(t *testing.T) {
	opt := tagmint.DefaultOptions()
	got, err := Load(opt, t.TempDir(), "")
	if err != nil {
		t.Fatalf("missing default file must not be an error: %v", err)
	}
	if got.Remote != opt.Remote || len(got.Projects) != len(opt.Projects) {
		t.Fatalf("options changed without a file: %+v", got)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(tagmint.DefaultOptions(), t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("explicitly named missing file must be an error")
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.yaml", "remote: backup\n")

	got, err := Load(tagmint.DefaultOptions(), "unused", path)
	if err != nil || got.Remote != "backup" {
		t.Fatalf("Remote=%q err=%v", got.Remote, err)
	}
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, "projects: [unterminated\n")

	if _, err := Load(tagmint.DefaultOptions(), dir, ""); err == nil {
		t.Fatal("malformed yaml must be an error")
	}
}
