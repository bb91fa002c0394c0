package generator

import "github.com/toyz/dispatch/internal/models"

// CodeGenerator defines the interface for generating dispatch files from
// parsed package metadata
type CodeGenerator interface {
	GeneratePackage(metadata *models.PackageMetadata) (*models.GeneratedFile, error)
}
