package cli

import (
	"fmt"
	"time"

	"github.com/toyz/dispatch/internal/generator"
	"github.com/toyz/dispatch/internal/models"
	"github.com/toyz/dispatch/internal/parser"
	"github.com/toyz/dispatch/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	parser         *parser.Parser
	codeGenerator  generator.CodeGenerator
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	customModule   string
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(verbose bool) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		parser:         parser.NewParser(),
		codeGenerator:  generator.NewGenerator(),
		reporter:       NewDiagnosticReporter(verbose),
		summary:        GenerationSummary{GeneratedFiles: make([]string, 0)},
	}
}

// NewGeneratorWithDiagnostics creates a new CLI generator with a diagnostic system
func NewGeneratorWithDiagnostics(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	g := NewGenerator(verbose)
	g.diagnostics = diagnostics
	return g
}

// Generate executes the generation process for the given directories
func (g *Generator) Generate(directories []string) error {
	config := Config{
		Directories: directories,
		Verbose:     g.reporter != nil && g.reporter.verbose,
		ModuleName:  g.customModule,
	}

	return g.Run(config)
}

// SetCustomModule sets a custom module name for import path construction
func (g *Generator) SetCustomModule(moduleName string) {
	g.customModule = moduleName
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process
func (g *Generator) Run(config Config) error {
	startTime := time.Now()

	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	if g.diagnostics != nil {
		g.diagnostics.Verbose("Starting dispatch generation at %s", startTime.Format("15:04:05"))
		g.diagnostics.Debug("Scanning directories: %v", config.Directories)
		if config.ModuleName != "" {
			g.diagnostics.Debug("Using custom module name: %s", config.ModuleName)
		}
	}

	// Resolve module name. Generated imports are carried over from the schema
	// sources, so the module name is only needed for diagnostics and for
	// reporting package import paths.
	if g.diagnostics != nil {
		g.diagnostics.StartProgress("Resolving module name")
	}
	moduleName, err := g.moduleResolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		if g.diagnostics != nil {
			g.diagnostics.EndProgress(false, "")
			g.diagnostics.Error("Failed to resolve module name: %v", err)
		}
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: fmt.Sprintf("Failed to resolve module name: %v", err),
			Suggestions: []string{
				"Check your go.mod file exists and is valid",
				"Ensure you're running from the correct directory",
				"Try specifying --module flag explicitly",
			},
			Context: map[string]interface{}{
				"provided_module": config.ModuleName,
				"directories":     config.Directories,
			},
			Cause: err,
		}
	}

	if g.diagnostics != nil {
		g.diagnostics.EndProgress(true, "")
		g.diagnostics.Debug("Resolved module name: %s", moduleName)
		g.diagnostics.StartProgress("Scanning directories for Go packages")
	}
	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		if g.diagnostics != nil {
			g.diagnostics.EndProgress(false, "")
			g.diagnostics.Error("Failed to scan directories: %v", err)
		}
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: fmt.Sprintf("Failed to scan directories: %v", err),
			Suggestions: []string{
				"Check that the specified directories exist",
				"Ensure you have read permissions for the directories",
				"Verify the directory paths are correct",
			},
			Context: map[string]interface{}{
				"directories": config.Directories,
			},
			Cause: err,
		}
	}

	if len(packageDirs) == 0 {
		if g.diagnostics != nil {
			g.diagnostics.EndProgress(false, "")
			g.diagnostics.Warn("No Go packages found in specified directories")
		}
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: "No Go packages found in specified directories",
			Suggestions: []string{
				"Ensure the directories contain Go files",
				"Check that Go files have valid package declarations",
				"Try scanning parent directories or use './...' pattern",
			},
			Context: map[string]interface{}{
				"directories": config.Directories,
			},
		}
	}

	if g.diagnostics != nil {
		g.diagnostics.EndProgress(true, "")
		g.diagnostics.Info("Found %d packages to process", len(packageDirs))
		g.diagnostics.Indent()
		for _, dir := range packageDirs {
			g.diagnostics.List("%s", dir)
		}
		g.diagnostics.Unindent()
	}

	g.summary.PackagesProcessed = len(packageDirs)

	for i, packageDir := range packageDirs {
		if g.diagnostics != nil {
			g.diagnostics.Verbose("Parsing package %d/%d: %s", i+1, len(packageDirs), packageDir)
		}

		metadata, err := g.parser.ParseDirectory(packageDir)
		if err != nil {
			if genErr, ok := err.(*models.GeneratorError); ok {
				if genErr.Context == nil {
					genErr.Context = make(map[string]interface{})
				}
				genErr.Context["package_directory"] = packageDir
				return genErr
			}
			return &models.GeneratorError{
				Type:    models.ErrorTypeValidation,
				Message: fmt.Sprintf("Failed to parse package %s: %v", packageDir, err),
				Suggestions: []string{
					"Check for syntax errors in Go files",
					"Ensure all files have valid package declarations",
					"Verify annotation syntax is correct",
				},
				Context: map[string]interface{}{
					"package_directory": packageDir,
				},
				Cause: err,
			}
		}

		// Packages without dispatch schemas produce no file
		if !metadata.HasEnums() {
			if g.diagnostics != nil {
				g.diagnostics.Verbose("Skipping package %s (no dispatch schemas found)", metadata.PackageName)
			}
			continue
		}

		// Keep the original directory path for file generation
		metadata.PackagePath = packageDir

		generatedFile, err := g.codeGenerator.GeneratePackage(metadata)
		if err != nil {
			return &models.GeneratorError{
				Type:    models.ErrorTypeGeneration,
				Message: fmt.Sprintf("Failed to generate dispatch file for package %s: %v", metadata.PackageName, err),
				Suggestions: []string{
					"Check that all annotations are valid",
					"Verify method signatures and interface paths parse as Go",
				},
				Context: map[string]interface{}{
					"package_name": metadata.PackageName,
					"package_path": packageDir,
				},
				Cause: err,
			}
		}

		if err := g.writeGeneratedFile(generatedFile); err != nil {
			return err
		}

		if g.diagnostics != nil {
			g.diagnostics.PhaseProgress(fmt.Sprintf("Writing %s", generatedFile.FilePath))
		}

		g.summary.EnumsFound += generatedFile.Enums
		g.summary.MethodsGenerated += generatedFile.Methods
		g.summary.ViewsGenerated += generatedFile.Views
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, generatedFile.FilePath)
	}

	if g.diagnostics != nil {
		duration := time.Since(startTime)
		g.diagnostics.Verbose("Generation completed in %v", duration)
		g.diagnostics.Verbose("Total packages processed: %d", len(packageDirs))
		g.diagnostics.Verbose("Total files generated: %d", len(g.summary.GeneratedFiles))
	}

	return nil
}

// writeGeneratedFile formats the generated content and writes it to disk
func (g *Generator) writeGeneratedFile(file *models.GeneratedFile) error {
	if err := utils.FormatAndWriteGoFile(file.FilePath, file.Content); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    file.FilePath,
			Message: fmt.Sprintf("Failed to write dispatch file for package %s: %v", file.PackageName, err),
			Suggestions: []string{
				"Check write permissions for the target directory",
				"Ensure the target directory exists",
				"Run with --verbose to see the formatting error detail",
			},
			Context: map[string]interface{}{
				"package_name": file.PackageName,
				"file_path":    file.FilePath,
			},
			Cause: err,
		}
	}
	return nil
}
