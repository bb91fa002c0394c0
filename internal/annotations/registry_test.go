package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_BuiltinsRegistered(t *testing.T) {
	registry := DefaultRegistry()

	assert.True(t, registry.IsRegistered(EnumAnnotation))
	assert.True(t, registry.IsRegistered(MethodAnnotation))
	assert.True(t, registry.IsRegistered(DynAnnotation))
	assert.Len(t, registry.ListTypes(), 3)
}

func TestDefaultRegistry_SameInstance(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestRegistry_RegisterRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(EnumAnnotation, EnumAnnotationSchema))

	err := registry.Register(EnumAnnotation, EnumAnnotationSchema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_RegisterRejectsTypeMismatch(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(MethodAnnotation, EnumAnnotationSchema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestRegistry_RegisterRejectsContradictoryPayloadRules(t *testing.T) {
	registry := NewRegistry()

	schema := AnnotationSchema{
		Type:            EnumAnnotation,
		RequiresPayload: true,
		AllowsPayload:   false,
	}

	err := registry.Register(EnumAnnotation, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a payload but does not allow one")
}

func TestRegistry_RegisterRejectsBadDefaultValue(t *testing.T) {
	registry := NewRegistry()

	schema := AnnotationSchema{
		Type: EnumAnnotation,
		Parameters: map[string]ParameterSpec{
			"Name": {Type: StringType, DefaultValue: 42},
		},
	}

	err := registry.Register(EnumAnnotation, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be string")
}

func TestRegistry_GetSchemaUnknownType(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.GetSchema(DynAnnotation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}
