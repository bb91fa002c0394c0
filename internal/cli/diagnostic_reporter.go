package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/toyz/dispatch/internal/models"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(os.Stderr, "\nERROR: Dispatch Generation Failed\n")
	fmt.Fprintf(os.Stderr, "=================================\n\n")

	// Check if it's a GeneratorError with rich information
	if genErr, ok := err.(*models.GeneratorError); ok {
		r.reportGeneratorError(genErr)
	} else {
		// Try to unwrap and find a GeneratorError
		if unwrapped := r.findGeneratorError(err); unwrapped != nil {
			r.reportGeneratorError(unwrapped)
		} else {
			r.reportBasicError(err)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// reportGeneratorError reports a GeneratorError with full context and suggestions
func (r *DiagnosticReporter) reportGeneratorError(genErr *models.GeneratorError) {
	r.printErrorHeader(genErr)

	fmt.Fprintf(os.Stderr, "Message: %s\n\n", genErr.Message)

	if r.verbose && genErr.Cause != nil {
		fmt.Fprintf(os.Stderr, "Underlying cause: %s\n\n", genErr.Cause.Error())
	}

	if genErr.File != "" {
		if genErr.Line > 0 {
			fmt.Fprintf(os.Stderr, "Location: %s:%d\n\n", genErr.File, genErr.Line)
		} else {
			fmt.Fprintf(os.Stderr, "File: %s\n\n", genErr.File)
		}
	}

	if len(genErr.Context) > 0 {
		r.printContext(genErr.Context)
	}

	if len(genErr.Suggestions) > 0 {
		r.printSuggestions(genErr.Suggestions)
	}

	r.printAdditionalHelp(genErr.Type)

	if r.verbose {
		r.printVerboseDebuggingInfo(genErr)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(os.Stderr, "Message: %s\n\n", err.Error())

	// Try to provide some general guidance based on error message
	errorMsg := strings.ToLower(err.Error())

	if strings.Contains(errorMsg, "annotation") {
		fmt.Fprintf(os.Stderr, "This appears to be an annotation-related issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check your //dispatch:: annotation syntax\n")
		fmt.Fprintf(os.Stderr, "  - Ensure annotations are properly formatted\n")
		fmt.Fprintf(os.Stderr, "  - Verify annotations sit in the doc comment of an enum schema struct\n\n")
	} else if strings.Contains(errorMsg, "module") {
		fmt.Fprintf(os.Stderr, "This appears to be a module-related issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check your go.mod file\n")
		fmt.Fprintf(os.Stderr, "  - Ensure module paths are correct\n")
		fmt.Fprintf(os.Stderr, "  - Try specifying --module flag explicitly\n\n")
	} else if strings.Contains(errorMsg, "signature") {
		fmt.Fprintf(os.Stderr, "This appears to be a method signature issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Write the signature exactly as a Go method declaration\n")
		fmt.Fprintf(os.Stderr, "  - Name every parameter; arguments are forwarded by name\n\n")
	}
}

// printErrorHeader prints a formatted error header based on error type
func (r *DiagnosticReporter) printErrorHeader(genErr *models.GeneratorError) {
	var errorTypeStr string

	switch genErr.Type {
	case models.ErrorTypeAnnotationSyntax:
		errorTypeStr = "Annotation Syntax Error"
	case models.ErrorTypeValidation:
		errorTypeStr = "Validation Error"
	case models.ErrorTypeGeneration:
		errorTypeStr = "Code Generation Error"
	case models.ErrorTypeFileSystem:
		errorTypeStr = "File System Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(os.Stderr, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(os.Stderr, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "Context:\n")

	// Print important context items first
	importantKeys := []string{"enum", "variant", "method", "interface", "annotation"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	for key, value := range context {
		if !printed[key] {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", r.formatContextKey(key), value)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "enum":
		return "Enum"
	case "variant":
		return "Variant"
	case "method":
		return "Method"
	case "interface":
		return "Interface"
	case "annotation":
		return "Annotation"
	default:
		// Convert snake_case to Title Case
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(os.Stderr, "Suggestions:\n")

	for i, suggestion := range suggestions {
		// Format multi-line suggestions nicely
		lines := strings.Split(suggestion, "\n")
		if len(lines) == 1 {
			fmt.Fprintf(os.Stderr, "   %d. %s\n", i+1, suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "   %d. %s\n", i+1, lines[0])
			for _, line := range lines[1:] {
				if strings.TrimSpace(line) != "" {
					fmt.Fprintf(os.Stderr, "      %s\n", line)
				}
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// printAdditionalHelp prints additional help based on error type
func (r *DiagnosticReporter) printAdditionalHelp(errorType models.ErrorType) {
	switch errorType {
	case models.ErrorTypeAnnotationSyntax:
		fmt.Fprintf(os.Stderr, "Annotation Syntax Help:\n")
		fmt.Fprintf(os.Stderr, "  - Annotations must start with //dispatch::\n")
		fmt.Fprintf(os.Stderr, "  - Flags come before the payload: //dispatch::method -Ptr Write(p []byte) (n int, err error)\n")
		fmt.Fprintf(os.Stderr, "  - Annotations belong in the doc comment of a schema struct named enumXxx\n\n")

	case models.ErrorTypeValidation:
		fmt.Fprintf(os.Stderr, "Schema Requirements:\n")
		fmt.Fprintf(os.Stderr, "  - Every variant must declare at least one field\n")
		fmt.Fprintf(os.Stderr, "  - The first field of a struct variant is the dispatch payload\n")
		fmt.Fprintf(os.Stderr, "  - Forwarding method parameters must all be named\n\n")
	}

	// Always show general help
	fmt.Fprintf(os.Stderr, "For more help:\n")
	fmt.Fprintf(os.Stderr, "  - Run with --verbose for more detailed output\n")
	fmt.Fprintf(os.Stderr, "  - Review example schemas in the examples/ directory\n")
}

// findGeneratorError recursively searches for a GeneratorError in wrapped errors
func (r *DiagnosticReporter) findGeneratorError(err error) *models.GeneratorError {
	if err == nil {
		return nil
	}

	if genErr, ok := err.(*models.GeneratorError); ok {
		return genErr
	}

	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return r.findGeneratorError(unwrapper.Unwrap())
	}

	return nil
}

// printVerboseDebuggingInfo prints additional debugging information in verbose mode
func (r *DiagnosticReporter) printVerboseDebuggingInfo(genErr *models.GeneratorError) {
	fmt.Fprintf(os.Stderr, "Verbose Debug Information:\n")
	fmt.Fprintf(os.Stderr, "  Error Type: %s\n", genErr.Type.String())

	if genErr.Context != nil {
		fmt.Fprintf(os.Stderr, "  Full Context Data:\n")
		for key, value := range genErr.Context {
			fmt.Fprintf(os.Stderr, "    %s: %+v\n", key, value)
		}
	}

	if genErr.Cause != nil {
		fmt.Fprintf(os.Stderr, "  Error Chain:\n")
		err := genErr.Cause
		level := 1
		for err != nil {
			fmt.Fprintf(os.Stderr, "    %d. %s\n", level, err.Error())
			if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
				err = unwrapper.Unwrap()
				level++
			} else {
				break
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// ReportSuccess reports successful generation with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	fmt.Printf("\nDispatch Generation Completed Successfully!\n")
	fmt.Printf("===========================================\n\n")

	if summary.PackagesProcessed > 0 {
		fmt.Printf("Processed %d packages\n", summary.PackagesProcessed)
	}

	if summary.EnumsFound > 0 {
		fmt.Printf("Found %d dispatch schemas\n", summary.EnumsFound)
	}

	if summary.MethodsGenerated > 0 {
		fmt.Printf("Generated %d forwarding methods\n", summary.MethodsGenerated)
	}

	if summary.ViewsGenerated > 0 {
		fmt.Printf("Generated %d interface-view methods\n", summary.ViewsGenerated)
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Printf("\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Printf("  - %s\n", file)
		}
	}

	fmt.Printf("\nYour dispatch unions are ready to use!\n")
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	PackagesProcessed int
	EnumsFound        int
	MethodsGenerated  int
	ViewsGenerated    int
	GeneratedFiles    []string
}
