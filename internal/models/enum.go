package models

// VariantShape describes how a variant declares its payload in the schema struct.
type VariantShape int

const (
	// TupleShape is a schema field with a plain type: the field itself is the
	// single positional payload.
	TupleShape VariantShape = iota
	// StructShape is a schema field with an inline struct type: the payload is
	// the first declared field, remaining fields are carried on the variant but
	// never dispatched to.
	StructShape
)

// String returns the string representation of the variant shape
func (s VariantShape) String() string {
	switch s {
	case TupleShape:
		return "tuple"
	case StructShape:
		return "struct"
	default:
		return "unknown"
	}
}

// Field represents one named field carried by a variant
type Field struct {
	Name string // field name as declared
	Type string // rendered Go type, re-emitted verbatim
}

// VariantDescriptor describes one variant of a dispatch enum.
// Descriptors are built once per run from the schema declaration and are
// immutable afterwards.
type VariantDescriptor struct {
	Name          string       // variant name (schema field name)
	Shape         VariantShape // tuple or struct
	DispatchField string       // wrapper field holding the dispatch payload
	PayloadType   string       // rendered Go type of the dispatch payload
	ExtraFields   []Field      // struct-shaped variants: fields after the first, declaration order
	FileName      string       // file where the variant is declared
	Line          int          // line of the variant declaration
}

// Param represents one parameter of a forwarding method signature
type Param struct {
	Name     string // parameter name (forwarded by name into the dispatch call)
	Type     string // rendered Go type, never inspected
	Variadic bool   // true for a final ...T parameter
}

// MethodSpec describes one requested forwarding method.
// Parameter and result types are opaque to the generator: they are re-emitted
// verbatim into the generated signature and the forwarding call.
type MethodSpec struct {
	Name     string  // method name as written
	Ptr      bool    // pointer receiver (exclusive-reference form)
	Set      string  // organizational group label, no semantic effect
	Params   []Param // parameters in declaration order
	Results  string  // rendered result list, empty when the method returns nothing
	FileName string
	Line     int
}

// InterfaceSpec describes one requested interface view
type InterfaceSpec struct {
	Path     string // interface type path as written (possibly package-qualified)
	FileName string
	Line     int
}

// EnumMetadata represents one annotated variant schema and everything
// requested for it
type EnumMetadata struct {
	SchemaName string // schema struct name as declared (e.g. enumWriter)
	Name       string // generated union type name (e.g. Writer)
	TypeParams string // rendered type parameter list ("[T any]"), empty when none
	TypeArgs   string // rendered type argument list ("[T]"), empty when none
	Variants   []VariantDescriptor
	Methods    []MethodSpec
	Interfaces []InterfaceSpec
	FileName   string
	Line       int
}

// ImportSpec is an import carried over from a schema source file
type ImportSpec struct {
	Alias string // local alias, empty for the default
	Path  string // import path without quotes
}

// PackageMetadata represents all dispatch schemas found in one package
type PackageMetadata struct {
	PackageName string
	PackagePath string
	Imports     []ImportSpec // deduplicated imports from all schema source files
	Enums       []EnumMetadata
}

// HasEnums reports whether the package contains anything to generate for
func (m *PackageMetadata) HasEnums() bool {
	return len(m.Enums) > 0
}
