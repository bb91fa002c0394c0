package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/toyz/dispatch/internal/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaultGoFileFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "writers.go"), "package writers\n")
	writeFile(t, filepath.Join(dir, "writers_test.go"), "package writers\n")
	writeFile(t, filepath.Join(dir, models.GeneratedFileName), "package writers\n")
	writeFile(t, filepath.Join(dir, "README.md"), "docs\n")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	filter := DefaultGoFileFilter()
	var kept []string
	for _, entry := range entries {
		if filter(filepath.Join(dir, entry.Name()), entry) {
			kept = append(kept, entry.Name())
		}
	}

	if len(kept) != 1 || kept[0] != "writers.go" {
		t.Errorf("expected only writers.go, got %v", kept)
	}
}

func TestDefaultDirectoryFilter_SkipsVendorAndHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "writers", "writers.go"), "package writers\n")
	writeFile(t, filepath.Join(dir, "vendor", "dep.go"), "package dep\n")
	writeFile(t, filepath.Join(dir, ".hidden", "hidden.go"), "package hidden\n")
	writeFile(t, filepath.Join(dir, "testdata", "fixture.go"), "package fixture\n")

	fp := NewFileProcessor()
	dirs, err := fp.ScanDirectoriesWithGoFiles([]string{dir})
	if err != nil {
		t.Fatalf("ScanDirectoriesWithGoFiles failed: %v", err)
	}

	if len(dirs) != 1 || filepath.Base(dirs[0]) != "writers" {
		t.Errorf("expected only the writers directory, got %v", dirs)
	}
}

func TestHasGoFiles(t *testing.T) {
	dir := t.TempDir()

	fp := NewFileProcessor()

	has, err := fp.HasGoFiles(dir)
	if err != nil {
		t.Fatalf("HasGoFiles failed: %v", err)
	}
	if has {
		t.Error("empty directory must not report Go files")
	}

	// Test files and generated dispatch files do not count.
	writeFile(t, filepath.Join(dir, "writers_test.go"), "package writers\n")
	writeFile(t, filepath.Join(dir, models.GeneratedFileName), "package writers\n")
	has, err = fp.HasGoFiles(dir)
	if err != nil {
		t.Fatalf("HasGoFiles failed: %v", err)
	}
	if has {
		t.Error("tests and generated files must not count as Go sources")
	}

	writeFile(t, filepath.Join(dir, "writers.go"), "package writers\n")
	has, err = fp.HasGoFiles(dir)
	if err != nil {
		t.Fatalf("HasGoFiles failed: %v", err)
	}
	if !has {
		t.Error("directory with a Go source must report Go files")
	}
}

func TestCleanDirectories(t *testing.T) {
	dir := t.TempDir()
	generated := filepath.Join(dir, "writers", models.GeneratedFileName)
	kept := filepath.Join(dir, "writers", "writers.go")
	writeFile(t, generated, "package writers\n")
	writeFile(t, kept, "package writers\n")

	fp := NewFileProcessor()
	removed, err := fp.CleanDirectories([]string{dir})
	if err != nil {
		t.Fatalf("CleanDirectories failed: %v", err)
	}

	if len(removed) != 1 || removed[0] != generated {
		t.Errorf("expected %s removed, got %v", generated, removed)
	}
	if _, err := os.Stat(generated); !os.IsNotExist(err) {
		t.Error("generated file must be removed")
	}
	if _, err := os.Stat(kept); err != nil {
		t.Error("source files must survive cleaning")
	}
}
