package parser

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"

	"github.com/toyz/dispatch/internal/annotations"
	"github.com/toyz/dispatch/internal/models"
)

// parseMethodSignature parses the payload of a dispatch::method annotation.
// The payload is ordinary Go method-signature syntax; go/parser does the
// heavy lifting by parsing it as a single-method interface body.
func (p *Parser) parseMethodSignature(annotation *annotations.ParsedAnnotation) (*models.MethodSpec, error) {
	location := annotation.Location

	wrapped := fmt.Sprintf("package signature\ntype _ interface {\n%s\n}\n", annotation.Payload)
	fileSet := token.NewFileSet()
	file, err := parser.ParseFile(fileSet, location.File, wrapped, 0)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeAnnotationSyntax,
			File:    location.File,
			Line:    location.Line,
			Message: fmt.Sprintf("invalid method signature '%s'", annotation.Payload),
			Suggestions: []string{
				"Write the signature as Go method syntax, e.g. Write(p []byte) (n int, err error)",
			},
			Cause: err,
		}
	}

	iface := file.Decls[0].(*ast.GenDecl).Specs[0].(*ast.TypeSpec).Type.(*ast.InterfaceType)
	if len(iface.Methods.List) != 1 || len(iface.Methods.List[0].Names) != 1 {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeAnnotationSyntax,
			File:    location.File,
			Line:    location.Line,
			Message: fmt.Sprintf("expected exactly one method signature, got '%s'", annotation.Payload),
			Suggestions: []string{
				"Declare one method per dispatch::method annotation",
			},
		}
	}

	method := iface.Methods.List[0]
	funcType, ok := method.Type.(*ast.FuncType)
	if !ok {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeAnnotationSyntax,
			File:    location.File,
			Line:    location.Line,
			Message: fmt.Sprintf("'%s' is not a method signature", annotation.Payload),
			Suggestions: []string{
				"Write the signature as Go method syntax, e.g. Write(p []byte) (n int, err error)",
			},
		}
	}

	spec := &models.MethodSpec{
		Name:     method.Names[0].Name,
		Ptr:      annotation.GetBool("Ptr"),
		Set:      annotation.GetString("Set"),
		FileName: location.File,
		Line:     location.Line,
	}

	params, err := p.signatureParams(funcType, fileSet, spec.Name, location)
	if err != nil {
		return nil, err
	}
	spec.Params = params
	spec.Results = renderResults(funcType.Results, fileSet)

	return spec, nil
}

// signatureParams extracts the named parameters of a forwarding method.
// Every parameter must carry a usable name: the generated forwarding call
// forwards arguments by name.
func (p *Parser) signatureParams(funcType *ast.FuncType, fileSet *token.FileSet, methodName string, location annotations.SourceLocation) ([]models.Param, error) {
	if funcType.Params == nil {
		return nil, nil
	}

	var params []models.Param
	for _, field := range funcType.Params.List {
		if len(field.Names) == 0 {
			return nil, unnamedParamError(methodName, location)
		}

		paramType := field.Type
		variadic := false
		if ellipsis, ok := paramType.(*ast.Ellipsis); ok {
			paramType = ellipsis.Elt
			variadic = true
		}
		rendered := renderNode(paramType, fileSet)

		for _, name := range field.Names {
			if name.Name == "_" {
				return nil, unnamedParamError(methodName, location)
			}
			params = append(params, models.Param{
				Name:     name.Name,
				Type:     rendered,
				Variadic: variadic,
			})
		}
	}

	return params, nil
}

func unnamedParamError(methodName string, location annotations.SourceLocation) *models.GeneratorError {
	return &models.GeneratorError{
		Type:    models.ErrorTypeValidation,
		File:    location.File,
		Line:    location.Line,
		Message: fmt.Sprintf("method %s has an unnamed parameter", methodName),
		Suggestions: []string{
			"Name every parameter; the generated method forwards arguments by name",
		},
	}
}

// renderResults prints a result list back to source form, parenthesized when
// Go requires it
func renderResults(results *ast.FieldList, fileSet *token.FileSet) string {
	if results == nil || len(results.List) == 0 {
		return ""
	}

	var parts []string
	named := false
	for _, field := range results.List {
		rendered := renderNode(field.Type, fileSet)
		if len(field.Names) == 0 {
			parts = append(parts, rendered)
			continue
		}
		named = true
		names := make([]string, 0, len(field.Names))
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
		parts = append(parts, strings.Join(names, ", ")+" "+rendered)
	}

	joined := strings.Join(parts, ", ")
	if len(parts) > 1 || named {
		return "(" + joined + ")"
	}
	return joined
}

// parseInterfaceList parses the payload of a dispatch::dyn annotation: a
// comma-separated list of interface type paths, kept in supplied order and
// never deduplicated
func (p *Parser) parseInterfaceList(annotation *annotations.ParsedAnnotation) ([]models.InterfaceSpec, error) {
	location := annotation.Location

	var specs []models.InterfaceSpec
	for _, entry := range splitTopLevel(annotation.Payload) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return nil, &models.GeneratorError{
				Type:    models.ErrorTypeAnnotationSyntax,
				File:    location.File,
				Line:    location.Line,
				Message: "empty interface entry in dispatch::dyn list",
				Suggestions: []string{
					"Remove the stray comma",
				},
			}
		}

		expr, err := parser.ParseExpr(entry)
		if err != nil || !isTypePath(expr) {
			generatorErr := &models.GeneratorError{
				Type:    models.ErrorTypeAnnotationSyntax,
				File:    location.File,
				Line:    location.Line,
				Message: fmt.Sprintf("'%s' is not an interface type path", entry),
				Suggestions: []string{
					"Use a plain or package-qualified type name, e.g. io.Writer",
				},
			}
			if err != nil {
				generatorErr.Cause = err
			}
			return nil, generatorErr
		}

		specs = append(specs, models.InterfaceSpec{
			Path:     entry,
			FileName: location.File,
			Line:     location.Line,
		})
	}

	return specs, nil
}

// splitTopLevel splits on commas that are not nested inside brackets, so
// generic instantiations like Container[K, V] survive as one entry
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// isTypePath accepts plain, qualified and generic-instantiated type names
func isTypePath(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := t.X.(*ast.Ident)
		return ok
	case *ast.IndexExpr:
		return isTypePath(t.X)
	case *ast.IndexListExpr:
		return isTypePath(t.X)
	default:
		return false
	}
}

// renderNode prints an AST node parsed with a local file set
func renderNode(node ast.Node, fileSet *token.FileSet) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fileSet, node); err != nil {
		return ""
	}
	return buf.String()
}
