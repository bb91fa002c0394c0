package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"os"

	"golang.org/x/tools/imports"
)

// FormatGeneratedCode formats generated Go source and prunes the carried-over
// imports that generation left unused. The filename gives goimports context
// for resolving relative references; the file does not have to exist yet.
func FormatGeneratedCode(filename string, source string) (string, error) {
	formatted, err := imports.Process(filename, []byte(source), nil)
	if err != nil {
		// imports.Process needs resolvable paths; fall back to plain gofmt
		// formatting so generation still succeeds offline
		return FormatGoCodeString(source)
	}
	return string(formatted), nil
}

// FormatGoCodeString formats Go source code using the same logic as gofmt
func FormatGoCodeString(source string) (string, error) {
	formatted, err := format.Source([]byte(source))
	if err != nil {
		// If formatting fails, try to parse to see if it's valid Go
		fset := token.NewFileSet()
		_, parseErr := parser.ParseFile(fset, "", source, parser.ParseComments)
		if parseErr != nil {
			return source, fmt.Errorf("invalid Go syntax: %w (format error: %v)", parseErr, err)
		}
		// If parsing works but formatting doesn't, return the original
		return source, err
	}
	return string(formatted), nil
}

// FormatAndWriteGoFile formats generated code and writes it to a file.
// A formatting failure aborts the write: a generated file that does not parse
// points at a bad signature or interface path in a schema annotation.
func FormatAndWriteGoFile(filename string, code string) error {
	formatted, err := FormatGeneratedCode(filename, code)
	if err != nil {
		return fmt.Errorf("failed to format generated code for %s: %w", filename, err)
	}
	return os.WriteFile(filename, []byte(formatted), 0644)
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}
