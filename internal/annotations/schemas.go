package annotations

import "fmt"

// ParameterType represents the type of an annotation parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
)

// ParameterSpec describes one named parameter of an annotation
type ParameterSpec struct {
	Type         ParameterType
	Required     bool
	DefaultValue interface{}
	Description  string
	Validator    func(interface{}) error
}

// AnnotationSchema describes the accepted shape of one annotation type
type AnnotationSchema struct {
	Type        AnnotationType
	Description string
	Parameters  map[string]ParameterSpec
	// RequiresPayload marks annotations whose trailing free-form text is
	// mandatory (a method signature, an interface list).
	RequiresPayload bool
	// AllowsPayload is false for annotations that take no trailing text.
	AllowsPayload bool
	Examples      []string
}

// Built-in annotation schemas

// EnumAnnotationSchema defines the schema for //dispatch::enum annotations
var EnumAnnotationSchema = AnnotationSchema{
	Type:        EnumAnnotation,
	Description: "Marks a struct as a variant schema for dispatch generation",
	Parameters: map[string]ParameterSpec{
		"Name": {
			Type:        StringType,
			Required:    false,
			Description: "Generated union type name; defaults to the schema name with its 'enum' prefix stripped",
			Validator: func(v interface{}) error {
				name := v.(string)
				if name == "" {
					return fmt.Errorf("must not be empty")
				}
				return nil
			},
		},
	},
	Examples: []string{
		"//dispatch::enum",
		"//dispatch::enum -Name=Writer",
	},
}

// MethodAnnotationSchema defines the schema for //dispatch::method annotations
var MethodAnnotationSchema = AnnotationSchema{
	Type:        MethodAnnotation,
	Description: "Declares one forwarding method for the annotated schema",
	Parameters: map[string]ParameterSpec{
		"Set": {
			Type:        StringType,
			Required:    false,
			Description: "Organizational group label; never changes generated semantics",
		},
		"Ptr": {
			Type:         BoolType,
			Required:     false,
			DefaultValue: false,
			Description:  "Generate the method on a pointer receiver",
		},
	},
	RequiresPayload: true,
	AllowsPayload:   true,
	Examples: []string{
		"//dispatch::method Write(p []byte) (n int, err error)",
		"//dispatch::method -Ptr Close() error",
		"//dispatch::method -Set=io -Ptr Flush() error",
	},
}

// DynAnnotationSchema defines the schema for //dispatch::dyn annotations
var DynAnnotationSchema = AnnotationSchema{
	Type:            DynAnnotation,
	Description:     "Requests interface-view conversion methods for the annotated schema",
	Parameters:      map[string]ParameterSpec{},
	RequiresPayload: true,
	AllowsPayload:   true,
	Examples: []string{
		"//dispatch::dyn io.Writer",
		"//dispatch::dyn io.Writer, fmt.Stringer",
	},
}

// RegisterBuiltinSchemas registers all built-in annotation schemas with the registry
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	schemas := []AnnotationSchema{
		EnumAnnotationSchema,
		MethodAnnotationSchema,
		DynAnnotationSchema,
	}

	for _, schema := range schemas {
		if err := registry.Register(schema.Type, schema); err != nil {
			return fmt.Errorf("failed to register %s schema: %w", schema.Type.String(), err)
		}
	}

	return nil
}
