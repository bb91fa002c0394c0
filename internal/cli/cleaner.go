package cli

import (
	"fmt"
	"strings"

	"github.com/toyz/dispatch/internal/utils"
)

// Cleaner handles cleaning up generated dispatch files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes all generated dispatch files from the specified
// directory trees and returns the paths of the files it removed
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	baseDirs := make([]string, 0, len(directories))

	for _, dir := range directories {
		// Handle Go-style patterns like ./...
		if strings.HasSuffix(dir, "/...") {
			baseDir := strings.TrimSuffix(dir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
			dir = baseDir
		}
		baseDirs = append(baseDirs, dir)
	}

	removedFiles, err := c.fileProcessor.CleanDirectories(baseDirs)
	if err != nil {
		return removedFiles, fmt.Errorf("failed to clean generated files: %w", err)
	}

	return removedFiles, nil
}
