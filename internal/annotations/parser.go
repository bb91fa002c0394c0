package annotations

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// annotationPrefix is the marker every dispatch annotation starts with
const annotationPrefix = "dispatch::"

// Parser parses //dispatch:: annotation comments against registered schemas
type Parser struct {
	flags    *participle.Parser[flagList]
	registry AnnotationRegistry
}

// flagList is the participle grammar for the -Flag and -Flag=Value section
// that sits between the annotation type and the free-form payload
type flagList struct {
	Items []flagItem `parser:"@@*"`
}

// flagItem is a single flag, with or without an explicit value
type flagItem struct {
	Name  string  `parser:"Dash @Ident"`
	Value *string `parser:"(Equals @(Ident | Value))?"`
}

// NewParser creates a new annotation parser
func NewParser(registry AnnotationRegistry) *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Dash", Pattern: `-`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Value", Pattern: `[^\s=]+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	flags := participle.MustBuild[flagList](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)

	return &Parser{
		flags:    flags,
		registry: registry,
	}
}

// IsAnnotation reports whether a comment line looks like a dispatch annotation
func IsAnnotation(comment string) bool {
	content := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.HasPrefix(content, annotationPrefix)
}

// ParseAnnotation parses a single annotation comment line
func (p *Parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	annotationType, flagsPart, payload, err := p.parseBasicStructure(comment, location)
	if err != nil {
		return nil, err
	}

	parsedType, err := ParseAnnotationType(annotationType)
	if err != nil {
		return nil, &SyntaxError{
			Msg:  err.Error(),
			Loc:  location,
			Hint: "Supported annotations are dispatch::enum, dispatch::method and dispatch::dyn",
		}
	}

	if p.registry != nil && !p.registry.IsRegistered(parsedType) {
		return nil, &SchemaError{
			Msg:  fmt.Sprintf("annotation type '%s' is not registered", annotationType),
			Loc:  location,
			Hint: "Register a schema for the annotation before using it",
		}
	}

	parsed := &ParsedAnnotation{
		Type:       parsedType,
		Payload:    payload,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        comment,
	}

	if flagsPart != "" {
		list, err := p.flags.ParseString(location.File, flagsPart)
		if err != nil {
			return nil, &SyntaxError{
				Msg:  fmt.Sprintf("invalid flags '%s': %v", flagsPart, err),
				Loc:  location,
				Hint: "Flags are written as -Name or -Name=Value before the payload",
			}
		}
		if err := p.applyFlags(parsed, list.Items); err != nil {
			return nil, err
		}
	}

	if err := p.validateAgainstSchema(parsed); err != nil {
		return nil, err
	}

	return parsed, nil
}

// parseBasicStructure splits an annotation comment into its type name, the
// flags section and the free-form payload. The payload is everything after the
// last leading flag token, preserved verbatim.
func (p *Parser) parseBasicStructure(comment string, location SourceLocation) (annotationType, flagsPart, payload string, err error) {
	content := strings.TrimSpace(comment)
	if !strings.HasPrefix(content, "//") {
		return "", "", "", &SyntaxError{
			Msg:  "annotation must start with '//'",
			Loc:  location,
			Hint: "Annotations live in the doc comment of the schema type",
		}
	}
	content = strings.TrimSpace(strings.TrimPrefix(content, "//"))

	if !strings.HasPrefix(content, annotationPrefix) {
		return "", "", "", &SyntaxError{
			Msg:  fmt.Sprintf("annotation must contain the '%s' prefix", annotationPrefix),
			Loc:  location,
			Hint: "Write annotations as //dispatch::<type> [flags] [payload]",
		}
	}
	content = strings.TrimPrefix(content, annotationPrefix)

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return "", "", "", &SyntaxError{
			Msg:  "empty annotation",
			Loc:  location,
			Hint: "Write annotations as //dispatch::<type> [flags] [payload]",
		}
	}
	annotationType = fields[0]

	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(content), annotationType))

	// Flags come first; the payload starts at the first token that does not
	// begin with a dash and runs to the end of the line verbatim.
	pos := 0
	for pos < len(rest) {
		for pos < len(rest) && unicode.IsSpace(rune(rest[pos])) {
			pos++
		}
		if pos >= len(rest) || rest[pos] != '-' {
			break
		}
		for pos < len(rest) && !unicode.IsSpace(rune(rest[pos])) {
			pos++
		}
	}

	flagsPart = strings.TrimSpace(rest[:pos])
	payload = strings.TrimSpace(rest[pos:])
	return annotationType, flagsPart, payload, nil
}

// applyFlags converts parsed flag items into typed parameters using the schema
func (p *Parser) applyFlags(annotation *ParsedAnnotation, items []flagItem) error {
	schema, err := p.registry.GetSchema(annotation.Type)
	if err != nil {
		return &SchemaError{
			Msg:  err.Error(),
			Loc:  annotation.Location,
			Hint: "Register a schema for the annotation before using it",
		}
	}

	for _, item := range items {
		spec, exists := schema.Parameters[item.Name]
		if !exists {
			return &ValidationError{
				Parameter: item.Name,
				Expected:  fmt.Sprintf("one of the parameters of dispatch::%s", annotation.Type),
				Actual:    "-" + item.Name,
				Loc:       annotation.Location,
				Hint:      "Check the flag name against the annotation's documented parameters",
			}
		}

		switch spec.Type {
		case BoolType:
			if item.Value == nil {
				// Bare -Flag means true for boolean parameters
				annotation.Parameters[item.Name] = true
				continue
			}
			boolValue, err := strconv.ParseBool(*item.Value)
			if err != nil {
				return &ValidationError{
					Parameter: item.Name,
					Expected:  "a boolean value",
					Actual:    *item.Value,
					Loc:       annotation.Location,
					Hint:      "Use the bare flag form -" + item.Name + " or an explicit true/false",
				}
			}
			annotation.Parameters[item.Name] = boolValue
		case StringType:
			if item.Value == nil {
				if spec.DefaultValue != nil {
					annotation.Parameters[item.Name] = spec.DefaultValue
					continue
				}
				return &ValidationError{
					Parameter: item.Name,
					Expected:  "a value",
					Actual:    "bare flag",
					Loc:       annotation.Location,
					Hint:      fmt.Sprintf("Write -%s=<value>", item.Name),
				}
			}
			annotation.Parameters[item.Name] = unquote(*item.Value)
		}
	}

	return nil
}

// validateAgainstSchema checks payload presence, required parameters and
// parameter validators
func (p *Parser) validateAgainstSchema(annotation *ParsedAnnotation) error {
	if p.registry == nil {
		return nil
	}

	schema, err := p.registry.GetSchema(annotation.Type)
	if err != nil {
		return &SchemaError{
			Msg:  fmt.Sprintf("no schema found for annotation type: %s", annotation.Type),
			Loc:  annotation.Location,
			Hint: "Register a schema for the annotation before using it",
		}
	}

	if schema.RequiresPayload && annotation.Payload == "" {
		hint := "Write the method signature after the annotation type"
		if annotation.Type == DynAnnotation {
			hint = "Write a comma-separated list of interface types after the annotation type"
		}
		return &SyntaxError{
			Msg:  fmt.Sprintf("dispatch::%s requires a payload", annotation.Type),
			Loc:  annotation.Location,
			Hint: hint,
		}
	}

	if !schema.AllowsPayload && annotation.Payload != "" {
		return &SyntaxError{
			Msg:  fmt.Sprintf("dispatch::%s does not take a payload, got '%s'", annotation.Type, annotation.Payload),
			Loc:  annotation.Location,
			Hint: "Only flags such as -Name=X are accepted here",
		}
	}

	for paramName, paramValue := range annotation.Parameters {
		paramSpec, exists := schema.Parameters[paramName]
		if !exists {
			return &ValidationError{
				Parameter: paramName,
				Expected:  fmt.Sprintf("one of the parameters of dispatch::%s", annotation.Type),
				Actual:    paramName,
				Loc:       annotation.Location,
				Hint:      "Check the flag name against the annotation's documented parameters",
			}
		}

		if paramSpec.Validator != nil {
			if err := paramSpec.Validator(paramValue); err != nil {
				return &ValidationError{
					Parameter: paramName,
					Expected:  err.Error(),
					Actual:    fmt.Sprintf("%v", paramValue),
					Loc:       annotation.Location,
					Hint:      "Fix the flag value",
				}
			}
		}
	}

	for paramName, paramSpec := range schema.Parameters {
		if paramSpec.Required {
			if _, exists := annotation.Parameters[paramName]; !exists {
				return &ValidationError{
					Parameter: paramName,
					Expected:  "a value",
					Actual:    "missing",
					Loc:       annotation.Location,
					Hint:      fmt.Sprintf("Add -%s=<value> to the annotation", paramName),
				}
			}
		}
	}

	return nil
}

// unquote strips matching surrounding quotes from a flag value
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
