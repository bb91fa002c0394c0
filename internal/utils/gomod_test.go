package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseModuleName(t *testing.T) {
	dir := t.TempDir()
	goModPath := filepath.Join(dir, "go.mod")
	writeFile(t, goModPath, "module github.com/example/project\n\ngo 1.25\n")

	parser := NewGoModParser(NewFileReader())
	name, err := parser.ParseModuleName(goModPath)
	if err != nil {
		t.Fatalf("ParseModuleName failed: %v", err)
	}
	if name != "github.com/example/project" {
		t.Errorf("expected github.com/example/project, got %s", name)
	}
}

func TestParseModuleName_NotGoMod(t *testing.T) {
	parser := NewGoModParser(NewFileReader())
	if _, err := parser.ParseModuleName("main.go"); err == nil {
		t.Error("expected error for non-go.mod path")
	}
}

func TestParseModuleName_MissingModuleLine(t *testing.T) {
	dir := t.TempDir()
	goModPath := filepath.Join(dir, "go.mod")
	writeFile(t, goModPath, "go 1.25\n")

	parser := NewGoModParser(NewFileReader())
	if _, err := parser.ParseModuleName(goModPath); err == nil {
		t.Error("expected error for go.mod without module declaration")
	}
}

func TestFindGoModFile_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module github.com/example/project\n")
	nested := filepath.Join(root, "internal", "writers")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	parser := NewGoModParser(NewFileReader())
	found, err := parser.FindGoModFile(nested)
	if err != nil {
		t.Fatalf("FindGoModFile failed: %v", err)
	}
	if found != filepath.Join(root, "go.mod") {
		t.Errorf("expected go.mod at module root, got %s", found)
	}
}
