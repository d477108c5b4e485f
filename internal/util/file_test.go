package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDirectory(path); err != nil {
		t.Fatalf("EnsureDirectory() error = %v", err)
	}
	if !DirectoryExists(path) {
		t.Error("directory not created")
	}
	// Idempotent on an existing directory.
	if err := EnsureDirectory(path); err != nil {
		t.Errorf("EnsureDirectory() second call error = %v", err)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mkv")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if DirectoryExists(file) {
		t.Error("DirectoryExists(file) = true")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestDirectoryEmpty(t *testing.T) {
	dir := t.TempDir()
	if !DirectoryEmpty(dir) {
		t.Error("fresh temp dir reported non-empty")
	}
	if err := os.WriteFile(filepath.Join(dir, "a"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if DirectoryEmpty(dir) {
		t.Error("populated dir reported empty")
	}
}
