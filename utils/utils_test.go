package utils

import (
	"path/filepath"
	"testing"
)

func TestPluginBasename(t *testing.T) {
	root := filepath.FromSlash("/srv/site/plugins")
	file := filepath.Join(root, "job-manager-fields", "job-manager-fields.go")

	if got := PluginBasename(file, root); got != "job-manager-fields/job-manager-fields.go" {
		t.Errorf("PluginBasename() = %q", got)
	}
	outside := filepath.FromSlash("/opt/other/fields.go")
	if got := PluginBasename(outside, root); got != "fields.go" {
		t.Errorf("PluginBasename(outside) = %q, want %q", got, "fields.go")
	}
	if got := PluginBasename(file, ""); got != "job-manager-fields.go" {
		t.Errorf("PluginBasename(no root) = %q", got)
	}
}

func TestPluginDirPath(t *testing.T) {
	file := filepath.FromSlash("/srv/site/plugins/fields/main.go")
	want := filepath.FromSlash("/srv/site/plugins/fields/")
	if got := PluginDirPath(file); got != want {
		t.Errorf("PluginDirPath() = %q, want %q", got, want)
	}
}

func TestPluginDirURL(t *testing.T) {
	root := filepath.FromSlash("/srv/site/plugins")
	file := filepath.Join(root, "job-manager-fields", "main.go")

	got, err := PluginDirURL("https://example.com/content/plugins", file, root)
	if err != nil {
		t.Fatalf("PluginDirURL() error: %v", err)
	}
	if want := "https://example.com/content/plugins/job-manager-fields/"; got != want {
		t.Errorf("PluginDirURL() = %q, want %q", got, want)
	}

	got, err = PluginDirURL("https://example.com/plugins/", filepath.Join(root, "main.go"), root)
	if err != nil {
		t.Fatalf("PluginDirURL() error: %v", err)
	}
	if want := "https://example.com/plugins/"; got != want {
		t.Errorf("PluginDirURL(root file) = %q, want %q", got, want)
	}
}

func TestGetProjectRoot(t *testing.T) {
	root, err := GetProjectRoot()
	if err != nil {
		t.Fatalf("GetProjectRoot() error: %v", err)
	}
	if !fileExists(filepath.Join(root, "go.mod")) {
		t.Errorf("GetProjectRoot() = %q, no go.mod there", root)
	}
}
