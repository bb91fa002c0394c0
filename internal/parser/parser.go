package parser

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"io/fs"
	"sort"
	"strings"

	"github.com/toyz/dispatch/internal/annotations"
	"github.com/toyz/dispatch/internal/models"
	"github.com/toyz/dispatch/internal/utils"
)

// Parser discovers annotated variant schemas in Go source and turns them into
// package metadata for the generator
type Parser struct {
	fileSet     *token.FileSet
	annotations *annotations.Parser
}

// NewParser creates a new schema parser
func NewParser() *Parser {
	return &Parser{
		fileSet:     token.NewFileSet(),
		annotations: annotations.NewParser(annotations.DefaultRegistry()),
	}
}

// ParseSource parses source code from a string for testing purposes
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}

	if err := p.processFile(filename, file, metadata); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ParseDirectory scans one package directory for annotated variant schemas.
// Generated dispatch files and tests are skipped.
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	filter := func(info fs.FileInfo) bool {
		name := info.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			name != models.GeneratedFileName
	}

	pkgs, err := parser.ParseDir(p.fileSet, path, filter, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", path, err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in directory %s", path)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found in directory %s", path)
	}

	var pkg *ast.Package
	var packageName string
	for name, astPkg := range pkgs {
		pkg = astPkg
		packageName = name
	}

	metadata := &models.PackageMetadata{
		PackageName: packageName,
		PackagePath: path,
	}

	// Map iteration order is not deterministic; process files in name order so
	// enums always come out in the same order across runs.
	fileNames := make([]string, 0, len(pkg.Files))
	for fileName := range pkg.Files {
		fileNames = append(fileNames, fileName)
	}
	sort.Strings(fileNames)

	for _, fileName := range fileNames {
		if err := p.processFile(fileName, pkg.Files[fileName], metadata); err != nil {
			return nil, err
		}
	}

	return metadata, nil
}

// processFile extracts every annotated schema declared in one file
func (p *Parser) processFile(fileName string, file *ast.File, metadata *models.PackageMetadata) error {
	fileHadEnum := false

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			parsed, err := p.collectAnnotations(genDecl, typeSpec, fileName)
			if err != nil {
				return err
			}
			if len(parsed) == 0 {
				continue
			}

			enum, err := p.buildEnum(typeSpec, parsed, fileName)
			if err != nil {
				return err
			}

			metadata.Enums = append(metadata.Enums, *enum)
			fileHadEnum = true
		}
	}

	if fileHadEnum {
		p.collectImports(file, metadata)
	}

	return nil
}

// collectAnnotations parses every dispatch annotation line attached to a type
// declaration, in source order. Annotations may sit on the surrounding GenDecl
// or on the TypeSpec itself.
func (p *Parser) collectAnnotations(decl *ast.GenDecl, spec *ast.TypeSpec, fileName string) ([]*annotations.ParsedAnnotation, error) {
	var parsed []*annotations.ParsedAnnotation

	for _, group := range []*ast.CommentGroup{decl.Doc, spec.Doc} {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			if !annotations.IsAnnotation(comment.Text) {
				continue
			}

			position := p.fileSet.Position(comment.Pos())
			location := annotations.SourceLocation{
				File:   fileName,
				Line:   position.Line,
				Column: position.Column,
			}

			annotation, err := p.annotations.ParseAnnotation(comment.Text, location)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, annotation)
		}
	}

	return parsed, nil
}

// buildEnum turns one annotated type declaration into enum metadata
func (p *Parser) buildEnum(typeSpec *ast.TypeSpec, parsed []*annotations.ParsedAnnotation, fileName string) (*models.EnumMetadata, error) {
	position := p.fileSet.Position(typeSpec.Pos())

	var enumAnnotation *annotations.ParsedAnnotation
	for _, annotation := range parsed {
		if annotation.Type != annotations.EnumAnnotation {
			continue
		}
		if enumAnnotation != nil {
			return nil, &models.GeneratorError{
				Type:    models.ErrorTypeValidation,
				File:    fileName,
				Line:    annotation.Location.Line,
				Message: fmt.Sprintf("duplicate dispatch::enum annotation on %s", typeSpec.Name.Name),
				Suggestions: []string{
					"Keep a single dispatch::enum annotation per schema declaration",
				},
			}
		}
		enumAnnotation = annotation
	}

	if enumAnnotation == nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			File:    fileName,
			Line:    parsed[0].Location.Line,
			Message: fmt.Sprintf("dispatch::%s on %s requires a dispatch::enum annotation on the same declaration", parsed[0].Type, typeSpec.Name.Name),
			Suggestions: []string{
				"Add //dispatch::enum to the schema's doc comment",
			},
		}
	}

	schemaStruct, ok := typeSpec.Type.(*ast.StructType)
	if !ok {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			File:    fileName,
			Line:    position.Line,
			Message: fmt.Sprintf("dispatch::enum target %s must be a struct type", typeSpec.Name.Name),
			Suggestions: []string{
				"Declare the schema as a struct whose fields are the variants",
			},
		}
	}

	name, err := p.unionName(typeSpec.Name.Name, enumAnnotation, fileName, position.Line)
	if err != nil {
		return nil, err
	}

	enum := &models.EnumMetadata{
		SchemaName: typeSpec.Name.Name,
		Name:       name,
		FileName:   fileName,
		Line:       position.Line,
	}
	enum.TypeParams, enum.TypeArgs = p.typeParams(typeSpec)

	variants, err := p.extractVariants(name, schemaStruct, fileName)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			File:    fileName,
			Line:    position.Line,
			Message: fmt.Sprintf("schema %s declares no variants", typeSpec.Name.Name),
			Suggestions: []string{
				"Add at least one field to the schema struct",
			},
		}
	}
	enum.Variants = variants

	// Method sets are purely organizational: annotations from every set are
	// concatenated into one flat list in source order.
	for _, annotation := range parsed {
		switch annotation.Type {
		case annotations.MethodAnnotation:
			method, err := p.parseMethodSignature(annotation)
			if err != nil {
				return nil, err
			}
			enum.Methods = append(enum.Methods, *method)
		case annotations.DynAnnotation:
			interfaces, err := p.parseInterfaceList(annotation)
			if err != nil {
				return nil, err
			}
			enum.Interfaces = append(enum.Interfaces, interfaces...)
		}
	}

	return enum, nil
}

// unionName derives the generated union type name from the schema name or the
// -Name override
func (p *Parser) unionName(schemaName string, annotation *annotations.ParsedAnnotation, fileName string, line int) (string, error) {
	if name := annotation.GetString("Name"); name != "" {
		if err := utils.ValidateUnionName("Name")(name); err != nil {
			return "", &models.GeneratorError{
				Type:    models.ErrorTypeValidation,
				File:    fileName,
				Line:    line,
				Message: fmt.Sprintf("-Name value '%s' cannot name a union type: %v", name, err),
				Suggestions: []string{
					"Use an exported Go identifier, e.g. -Name=Writer",
				},
			}
		}
		return name, nil
	}

	if strings.HasPrefix(schemaName, schemaPrefix) && len(schemaName) > len(schemaPrefix) {
		return schemaName[len(schemaPrefix):], nil
	}

	return "", &models.GeneratorError{
		Type:    models.ErrorTypeValidation,
		File:    fileName,
		Line:    line,
		Message: fmt.Sprintf("cannot derive a union name from schema %s", schemaName),
		Suggestions: []string{
			fmt.Sprintf("Name the schema with the '%s' prefix (e.g. %sWriter)", schemaPrefix, schemaPrefix),
			"Or set an explicit name with //dispatch::enum -Name=Writer",
		},
	}
}

// typeParams renders the schema's type parameter list for re-emission on the
// generated declarations, plus the matching argument form
func (p *Parser) typeParams(typeSpec *ast.TypeSpec) (params, args string) {
	if typeSpec.TypeParams == nil || len(typeSpec.TypeParams.List) == 0 {
		return "", ""
	}

	var paramParts, argParts []string
	for _, field := range typeSpec.TypeParams.List {
		var names []string
		for _, name := range field.Names {
			names = append(names, name.Name)
			argParts = append(argParts, name.Name)
		}
		paramParts = append(paramParts, strings.Join(names, ", ")+" "+p.render(field.Type))
	}

	return "[" + strings.Join(paramParts, ", ") + "]", "[" + strings.Join(argParts, ", ") + "]"
}

// collectImports carries the file's imports over for the generated file.
// Unused ones are pruned later by the import-aware formatter.
func (p *Parser) collectImports(file *ast.File, metadata *models.PackageMetadata) {
	seen := make(map[string]bool)
	for _, existing := range metadata.Imports {
		seen[existing.Path] = true
	}

	for _, spec := range file.Imports {
		path := strings.Trim(spec.Path.Value, `"`)
		if seen[path] {
			continue
		}
		seen[path] = true

		imported := models.ImportSpec{Path: path}
		if spec.Name != nil {
			imported.Alias = spec.Name.Name
		}
		metadata.Imports = append(metadata.Imports, imported)
	}
}

// render prints an AST node back to source form
func (p *Parser) render(node ast.Node) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, p.fileSet, node); err != nil {
		return ""
	}
	return buf.String()
}
