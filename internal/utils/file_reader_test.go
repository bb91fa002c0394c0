package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileReader_ReadFileCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "writers.go")
	writeFile(t, path, "package writers\n")

	reader := NewFileReader()

	first, err := reader.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	// Rewrite with same-size content but restore the mtime; the stale cached
	// content coming back proves the second read was served from the cache.
	stat, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	writeFile(t, path, "package authors\n")
	if err := os.Chtimes(path, stat.ModTime(), stat.ModTime()); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	second, err := reader.ReadFile(path)
	if err != nil {
		t.Fatalf("cached ReadFile failed: %v", err)
	}
	if second != first {
		t.Errorf("expected cached content %q, got %q", first, second)
	}
}

func TestFileReader_ReadFileDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "writers.go")
	writeFile(t, path, "package writers\n")

	reader := NewFileReader()
	if _, err := reader.ReadFile(path); err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	updated := "package writers\n\ntype Writer struct{}\n"
	writeFile(t, path, updated)

	content, err := reader.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile after rewrite failed: %v", err)
	}
	if content != updated {
		t.Errorf("expected fresh content after rewrite, got %q", content)
	}
}

func TestFileReader_MissingFile(t *testing.T) {
	reader := NewFileReader()
	if _, err := reader.ReadFile(filepath.Join(t.TempDir(), "missing.go")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCache_Basics(t *testing.T) {
	cache := NewCache[string, int]()

	if _, ok := cache.Get("a"); ok {
		t.Error("empty cache must miss")
	}

	cache.Set("a", 1)
	cache.Set("b", 2)

	if value, ok := cache.Get("a"); !ok || value != 1 {
		t.Errorf("expected hit with 1, got %d (%v)", value, ok)
	}
	if cache.Size() != 2 {
		t.Errorf("expected size 2, got %d", cache.Size())
	}

	cache.Delete("a")
	if _, ok := cache.Get("a"); ok {
		t.Error("deleted key must miss")
	}

	cache.Clear()
	if cache.Size() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", cache.Size())
	}
}

func TestCache_FileValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "writers.go")
	writeFile(t, path, "package writers\n")

	cache := NewCache[string, string]()
	if err := cache.SetWithFileInfo(path, "cached", path); err != nil {
		t.Fatalf("SetWithFileInfo failed: %v", err)
	}

	if value, ok := cache.GetWithFileValidation(path, path); !ok || value != "cached" {
		t.Error("unchanged file must hit the cache")
	}

	// Rewriting the file with different content invalidates the entry.
	writeFile(t, path, "package writers\n\ntype Writer struct{}\n")
	if _, ok := cache.GetWithFileValidation(path, path); ok {
		t.Error("modified file must miss the cache")
	}
}
