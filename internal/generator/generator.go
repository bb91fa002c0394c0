package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/dispatch/internal/models"
	"github.com/toyz/dispatch/internal/templates"
)

// Generator implements the CodeGenerator interface.
// It assembles one dispatch file per package: union scaffolding, forwarding
// methods and interface views for every schema the parser found. Generated
// code is emitted as written in the schema annotations; whether a payload
// actually has the requested methods or satisfies the requested interfaces
// is left to the compiler of the generated file.
type Generator struct{}

// NewGenerator creates a new code generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// GeneratePackage generates the complete dispatch file for a package.
// The returned content is raw generated code; formatting and import pruning
// happen in the post-processing phase.
func (g *Generator) GeneratePackage(metadata *models.PackageMetadata) (*models.GeneratedFile, error) {
	if metadata == nil {
		return nil, fmt.Errorf("metadata cannot be nil")
	}
	if !metadata.HasEnums() {
		return nil, fmt.Errorf("package %s has no dispatch schemas", metadata.PackageName)
	}

	var fileBuilder strings.Builder

	header, err := templates.GenerateFileHeader(metadata)
	if err != nil {
		return nil, err
	}
	fileBuilder.WriteString(header)

	methodCount := 0
	viewCount := 0

	for i := range metadata.Enums {
		enum := &metadata.Enums[i]

		scaffolding, err := templates.GenerateUnionScaffolding(enum)
		if err != nil {
			return nil, err
		}
		fileBuilder.WriteString("\n")
		fileBuilder.WriteString(scaffolding)

		for j := range enum.Methods {
			fileBuilder.WriteString("\n")
			fileBuilder.WriteString(GenerateForwardingMethod(enum, &enum.Methods[j]))
			methodCount++
		}

		for j := range enum.Interfaces {
			fileBuilder.WriteString("\n")
			fileBuilder.WriteString(GenerateInterfaceViews(enum, &enum.Interfaces[j]))
			viewCount += 3
		}
	}

	return &models.GeneratedFile{
		PackageName: metadata.PackageName,
		FilePath:    filepath.Join(metadata.PackagePath, models.GeneratedFileName),
		Content:     fileBuilder.String(),
		Enums:       len(metadata.Enums),
		Methods:     methodCount,
		Views:       viewCount,
	}, nil
}
