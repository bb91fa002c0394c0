package templates

import (
	"bytes"
	"fmt"
	"go/token"
	"strings"
	"text/template"

	"github.com/toyz/dispatch/internal/models"
)

// This package contains Go templates for the generated dispatch file:
// the file header with carried-over imports, and the union scaffolding
// (union struct, marker interface, variant wrappers, constructors).
// Forwarding methods and interface views are emitted by the generator package.

const fileHeaderTemplate = `// Code generated by dispatch. DO NOT EDIT.
// Schemas: {{.Schemas}}

package {{.PackageName}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{end}}`

const unionTemplate = `// {{.Union}} is the dispatch union generated from {{.Schema}}.
// The zero value has no variant selected; every generated method panics on it.
type {{.Union}}{{.TypeParams}} struct {
	variant {{.Marker}}{{.TypeArgs}}
}

// {{.Marker}} is implemented by the variant wrappers of {{.Union}}.
type {{.Marker}}{{.TypeParams}} interface {
	{{.MarkerMethod}}()
}
`

const variantTemplate = `// {{.Wrapper}} holds the {{.Variant}} variant of {{.Union}}.
type {{.Wrapper}}{{.TypeParams}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}

func (*{{.Wrapper}}{{.TypeArgs}}) {{.MarkerMethod}}() {}

// {{.Constructor}} returns a {{.Union}} holding the {{.Variant}} variant.
func {{.Constructor}}{{.TypeParams}}({{.Params}}) {{.Union}}{{.TypeArgs}} {
	return {{.Union}}{{.TypeArgs}}{variant: &{{.Wrapper}}{{.TypeArgs}}{{.Inits}}}
}
`

var (
	fileHeaderTmpl = template.Must(template.New("fileHeader").Parse(fileHeaderTemplate))
	unionTmpl      = template.Must(template.New("union").Parse(unionTemplate))
	variantTmpl    = template.Must(template.New("variant").Parse(variantTemplate))
)

// GenerateFileHeader generates the DO NOT EDIT header, package declaration
// and import block of a dispatch file. Imports are carried over verbatim
// from the schema source files; unused ones are pruned during formatting.
func GenerateFileHeader(metadata *models.PackageMetadata) (string, error) {
	schemas := make([]string, 0, len(metadata.Enums))
	for _, enum := range metadata.Enums {
		schemas = append(schemas, enum.SchemaName)
	}

	data := struct {
		Schemas     string
		PackageName string
		Imports     []models.ImportSpec
	}{
		Schemas:     strings.Join(schemas, ", "),
		PackageName: metadata.PackageName,
		Imports:     metadata.Imports,
	}

	var buf bytes.Buffer
	if err := fileHeaderTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to generate file header: %w", err)
	}
	return buf.String(), nil
}

// GenerateUnionScaffolding generates the union struct, its marker interface,
// and one wrapper struct plus constructor per variant.
func GenerateUnionScaffolding(enum *models.EnumMetadata) (string, error) {
	var scaffolding strings.Builder

	unionData := struct {
		Union        string
		Schema       string
		TypeParams   string
		TypeArgs     string
		Marker       string
		MarkerMethod string
	}{
		Union:        enum.Name,
		Schema:       enum.SchemaName,
		TypeParams:   enum.TypeParams,
		TypeArgs:     enum.TypeArgs,
		Marker:       MarkerInterfaceName(enum.Name),
		MarkerMethod: MarkerMethodName(enum.Name),
	}
	if err := unionTmpl.Execute(&scaffolding, unionData); err != nil {
		return "", fmt.Errorf("failed to generate union declaration for %s: %w", enum.Name, err)
	}

	for i := range enum.Variants {
		variant := &enum.Variants[i]
		scaffolding.WriteString("\n")
		wrapperCode, err := generateVariantWrapper(enum, variant)
		if err != nil {
			return "", err
		}
		scaffolding.WriteString(wrapperCode)
	}

	return scaffolding.String(), nil
}

// generateVariantWrapper generates the wrapper struct, marker method and
// constructor for a single variant
func generateVariantWrapper(enum *models.EnumMetadata, variant *models.VariantDescriptor) (string, error) {
	fields := wrapperFields(variant)

	params := make([]string, 0, len(fields))
	inits := make([]string, 0, len(fields))
	for _, field := range fields {
		param := constructorParam(field.Name)
		params = append(params, fmt.Sprintf("%s %s", param, field.Type))
		inits = append(inits, fmt.Sprintf("%s: %s", field.Name, param))
	}

	data := struct {
		Wrapper      string
		Variant      string
		Union        string
		TypeParams   string
		TypeArgs     string
		MarkerMethod string
		Constructor  string
		Fields       []models.Field
		Params       string
		Inits        string
	}{
		Wrapper:      WrapperName(enum.Name, variant.Name),
		Variant:      variant.Name,
		Union:        enum.Name,
		TypeParams:   enum.TypeParams,
		TypeArgs:     enum.TypeArgs,
		MarkerMethod: MarkerMethodName(enum.Name),
		Constructor:  ConstructorName(enum.Name, variant.Name),
		Fields:       fields,
		Params:       strings.Join(params, ", "),
		Inits:        "{" + strings.Join(inits, ", ") + "}",
	}

	var buf bytes.Buffer
	if err := variantTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to generate wrapper for variant %s.%s: %w", enum.Name, variant.Name, err)
	}
	return buf.String(), nil
}

// wrapperFields returns the fields of a variant wrapper in declaration
// order: the dispatch payload first, extra fields after
func wrapperFields(variant *models.VariantDescriptor) []models.Field {
	fields := make([]models.Field, 0, 1+len(variant.ExtraFields))
	fields = append(fields, models.Field{Name: variant.DispatchField, Type: variant.PayloadType})
	fields = append(fields, variant.ExtraFields...)
	return fields
}

// constructorParam derives a constructor parameter name from a wrapper field
// name. Keywords get an "Arg" suffix so the generated signature stays legal.
func constructorParam(fieldName string) string {
	name := strings.ToLower(fieldName[:1]) + fieldName[1:]
	if token.IsKeyword(name) {
		name += "Arg"
	}
	return name
}

// MarkerInterfaceName returns the name of a union's variant marker interface
func MarkerInterfaceName(unionName string) string {
	return "is" + unionName + "Variant"
}

// MarkerMethodName returns the name of a union's marker method
func MarkerMethodName(unionName string) string {
	return "is" + unionName
}

// WrapperName returns the name of a variant's wrapper struct
func WrapperName(unionName, variantName string) string {
	return unionName + variantName
}

// ConstructorName returns the name of a variant's constructor function
func ConstructorName(unionName, variantName string) string {
	return "New" + unionName + variantName
}
