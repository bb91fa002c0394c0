package parser

const (
	// schemaPrefix is the naming convention for variant schema structs. The
	// generated union name is the schema name with this prefix stripped,
	// unless -Name overrides it.
	schemaPrefix = "enum"

	// tupleField is the wrapper field name used for the single positional
	// payload of a tuple-shaped variant.
	tupleField = "Value"
)
