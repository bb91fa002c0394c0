package models

// GeneratedFileName is the file written into every package that contains at
// least one dispatch schema
const GeneratedFileName = "autogen_dispatch.go"

// GeneratedFile represents one generated dispatch file for a package.
// It is built once per run, written to disk, and never kept across runs.
type GeneratedFile struct {
	PackageName string // name of the package
	FilePath    string // path where the dispatch file should be written
	Content     string // generated Go code content
	Enums       int    // number of unions declared in the file
	Methods     int    // number of forwarding methods in the file
	Views       int    // number of interface-view methods in the file
}
