package models

import "fmt"

// ErrorType represents different types of generator errors
type ErrorType int

const (
	ErrorTypeAnnotationSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeGeneration
	ErrorTypeFileSystem
)

// String returns the string representation of the error type
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeAnnotationSyntax:
		return "AnnotationSyntax"
	case ErrorTypeValidation:
		return "Validation"
	case ErrorTypeGeneration:
		return "Generation"
	case ErrorTypeFileSystem:
		return "FileSystem"
	default:
		return "Unknown"
	}
}

// GeneratorError represents an error that occurred during code generation
type GeneratorError struct {
	Type        ErrorType              // type of error
	File        string                 // file where error occurred
	Line        int                    // line number where error occurred
	Message     string                 // error message
	Suggestions []string               // suggested fixes shown to the user
	Context     map[string]interface{} // additional structured context
	Cause       error                  // underlying error cause
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error cause
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// NewUnsupportedVariantError reports a variant that declares no fields.
// This is a hard precondition: the whole run for the package is aborted.
func NewUnsupportedVariantError(enumName, variantName, file string, line int) *GeneratorError {
	return &GeneratorError{
		Type:    ErrorTypeValidation,
		File:    file,
		Line:    line,
		Message: fmt.Sprintf("variant '%s' of %s has no fields; every variant must declare at least one field", variantName, enumName),
		Suggestions: []string{
			"Give the variant a payload type (e.g. 'Cursor *bytes.Buffer')",
			"Use an inline struct with at least one field for multi-field variants",
			"Remove the variant if it carries no payload",
		},
		Context: map[string]interface{}{
			"enum":    enumName,
			"variant": variantName,
		},
	}
}
