package parser

import (
	"fmt"
	"go/ast"

	"github.com/toyz/dispatch/internal/models"
)

// extractVariants produces the ordered variant descriptors for a schema
// struct. Declaration order is kept so generated output is deterministic.
func (p *Parser) extractVariants(enumName string, schema *ast.StructType, fileName string) ([]models.VariantDescriptor, error) {
	var variants []models.VariantDescriptor

	for _, field := range schema.Fields.List {
		line := p.fileSet.Position(field.Pos()).Line

		if len(field.Names) == 0 {
			return nil, &models.GeneratorError{
				Type:    models.ErrorTypeValidation,
				File:    fileName,
				Line:    line,
				Message: fmt.Sprintf("embedded fields are not allowed in schema %s", enumName),
				Suggestions: []string{
					"Name the variant explicitly (e.g. 'Cursor *bytes.Buffer')",
				},
			}
		}

		// A field declared with several names declares one variant per name,
		// all sharing the same payload shape.
		for _, name := range field.Names {
			variant, err := p.buildVariant(enumName, name.Name, field, fileName, line)
			if err != nil {
				return nil, err
			}
			variants = append(variants, *variant)
		}
	}

	return variants, nil
}

// buildVariant classifies a single schema field as a tuple- or struct-shaped
// variant and resolves its dispatch payload
func (p *Parser) buildVariant(enumName, variantName string, field *ast.Field, fileName string, line int) (*models.VariantDescriptor, error) {
	inline, ok := field.Type.(*ast.StructType)
	if !ok {
		// Plain type: the field itself is the single positional payload.
		return &models.VariantDescriptor{
			Name:          variantName,
			Shape:         models.TupleShape,
			DispatchField: tupleField,
			PayloadType:   p.render(field.Type),
			FileName:      fileName,
			Line:          line,
		}, nil
	}

	if inline.Fields == nil || len(inline.Fields.List) == 0 {
		return nil, models.NewUnsupportedVariantError(enumName, variantName, fileName, line)
	}

	fields := flattenFields(inline.Fields.List)
	first := fields[0]

	variant := &models.VariantDescriptor{
		Name:          variantName,
		Shape:         models.StructShape,
		DispatchField: first.name,
		PayloadType:   p.render(first.typ),
		FileName:      fileName,
		Line:          line,
	}

	// Remaining fields ride along on the variant but are never dispatched to.
	for _, extra := range fields[1:] {
		variant.ExtraFields = append(variant.ExtraFields, models.Field{
			Name: extra.name,
			Type: p.render(extra.typ),
		})
	}

	return variant, nil
}

type flatField struct {
	name string
	typ  ast.Expr
}

// flattenFields expands multi-name field declarations and resolves the
// implicit name of embedded fields, preserving declaration order
func flattenFields(list []*ast.Field) []flatField {
	var fields []flatField
	for _, field := range list {
		if len(field.Names) == 0 {
			fields = append(fields, flatField{
				name: embeddedFieldName(field.Type),
				typ:  field.Type,
			})
			continue
		}
		for _, name := range field.Names {
			fields = append(fields, flatField{name: name.Name, typ: field.Type})
		}
	}
	return fields
}

// embeddedFieldName resolves the implicit field name Go assigns to an
// embedded field
func embeddedFieldName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.StarExpr:
		return embeddedFieldName(t.X)
	case *ast.IndexExpr:
		return embeddedFieldName(t.X)
	case *ast.IndexListExpr:
		return embeddedFieldName(t.X)
	default:
		return ""
	}
}
