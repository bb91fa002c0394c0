package cli

// Config holds the configuration for the CLI generator
type Config struct {
	// Directories is the list of directories to scan for annotated Go files.
	// Supports Go-style patterns like "./..." for recursive scanning.
	Directories []string

	// ModuleName is the custom module name for import path construction.
	// If empty, it is read from the nearest go.mod file.
	ModuleName string

	// Verbose enables detailed logging and error reporting
	Verbose bool
}
