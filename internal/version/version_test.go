package version

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	info := Load(filepath.Join(t.TempDir(), "nope.json"))
	if info.Version != "0.0.0-dev" {
		t.Errorf("Expected dev placeholder, got %q", info.Version)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	info := Load(path)
	if info.Version != "0.0.0-dev" {
		t.Errorf("Expected dev placeholder for corrupt file, got %q", info.Version)
	}
}

func TestLoadValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.json")
	content := `{"version":"1.2.3","git_commit":"abc1234","git_branch":"main","built_at":"2026-08-20T09:00:00Z"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	info := Load(path)
	if info.Version != "1.2.3" {
		t.Errorf("Expected version 1.2.3, got %q", info.Version)
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("Expected commit abc1234, got %q", info.GitCommit)
	}
}
