package generator

import (
	"strings"
	"testing"

	"github.com/toyz/dispatch/internal/models"
)

func writerEnum() *models.EnumMetadata {
	return &models.EnumMetadata{
		SchemaName: "enumWriter",
		Name:       "Writer",
		Variants: []models.VariantDescriptor{
			{
				Name:          "Cursor",
				Shape:         models.TupleShape,
				DispatchField: "Value",
				PayloadType:   "*bytes.Buffer",
			},
			{
				Name:          "File",
				Shape:         models.StructShape,
				DispatchField: "Handle",
				PayloadType:   "*os.File",
				ExtraFields: []models.Field{
					{Name: "Path", Type: "string"},
				},
			},
		},
	}
}

func TestGenerateForwardingMethod_ValueResults(t *testing.T) {
	enum := writerEnum()
	spec := &models.MethodSpec{
		Name: "Write",
		Ptr:  true,
		Params: []models.Param{
			{Name: "p", Type: "[]byte"},
		},
		Results: "(n int, err error)",
	}

	code := GenerateForwardingMethod(enum, spec)

	expectations := []string{
		"func (w *Writer) Write(p []byte) (n int, err error) {",
		"switch first := w.variant.(type) {",
		"case *WriterCursor:",
		"return first.Value.Write(p)",
		"case *WriterFile:",
		"return first.Handle.Write(p)",
		`panic("dispatch: Writer has no variant selected")`,
	}
	for _, expected := range expectations {
		if !strings.Contains(code, expected) {
			t.Errorf("generated method missing %q:\n%s", expected, code)
		}
	}

	// Dispatch goes to the first field only; extra fields never appear in the
	// forwarding call.
	if strings.Contains(code, "Path") {
		t.Error("extra variant fields must not appear in forwarding methods")
	}
}

func TestGenerateForwardingMethod_VoidMethod(t *testing.T) {
	enum := writerEnum()
	spec := &models.MethodSpec{Name: "Reset", Ptr: true}

	code := GenerateForwardingMethod(enum, spec)

	if !strings.Contains(code, "first.Value.Reset()\n\t\treturn\n") {
		t.Errorf("void method must call then bare-return:\n%s", code)
	}
	if strings.Contains(code, "return first.Value.Reset()") {
		t.Error("void method must not return a call expression")
	}
}

func TestGenerateForwardingMethod_Variadic(t *testing.T) {
	enum := writerEnum()
	spec := &models.MethodSpec{
		Name: "WriteStrings",
		Params: []models.Param{
			{Name: "sep", Type: "string"},
			{Name: "parts", Type: "string", Variadic: true},
		},
		Results: "error",
	}

	code := GenerateForwardingMethod(enum, spec)

	if !strings.Contains(code, "WriteStrings(sep string, parts ...string) error {") {
		t.Errorf("variadic parameter not declared:\n%s", code)
	}
	if !strings.Contains(code, "first.Value.WriteStrings(sep, parts...)") {
		t.Errorf("variadic argument not spread:\n%s", code)
	}
}

func TestGenerateForwardingMethod_ValueReceiver(t *testing.T) {
	enum := writerEnum()
	spec := &models.MethodSpec{Name: "Len", Results: "int"}

	code := GenerateForwardingMethod(enum, spec)

	if !strings.Contains(code, "func (w Writer) Len() int {") {
		t.Errorf("expected value receiver:\n%s", code)
	}
}

func TestGenerateForwardingMethod_ReceiverCollision(t *testing.T) {
	enum := writerEnum()
	spec := &models.MethodSpec{
		Name: "Copy",
		Params: []models.Param{
			{Name: "w", Type: "io.Writer"},
		},
		Results: "(int64, error)",
	}

	code := GenerateForwardingMethod(enum, spec)

	// The receiver letter collides with the parameter and must be doubled.
	if !strings.Contains(code, "func (ww Writer) Copy(w io.Writer) (int64, error) {") {
		t.Errorf("receiver must avoid parameter names:\n%s", code)
	}
	if !strings.Contains(code, "switch first := ww.variant.(type) {") {
		t.Errorf("switch must use the adjusted receiver:\n%s", code)
	}
}

func TestGenerateForwardingMethod_BindingCollision(t *testing.T) {
	enum := writerEnum()
	spec := &models.MethodSpec{
		Name: "Push",
		Ptr:  true,
		Params: []models.Param{
			{Name: "first", Type: "string"},
		},
		Results: "error",
	}

	code := GenerateForwardingMethod(enum, spec)

	// The switch binding collides with the parameter and must be renamed so
	// the forwarded argument still refers to the parameter.
	if !strings.Contains(code, "switch first1 := w.variant.(type) {") {
		t.Errorf("binding must avoid parameter names:\n%s", code)
	}
	if !strings.Contains(code, "return first1.Value.Push(first)") {
		t.Errorf("call must forward the parameter through the renamed binding:\n%s", code)
	}
}

func TestGenerateForwardingMethod_MultibyteUnionName(t *testing.T) {
	enum := &models.EnumMetadata{
		SchemaName: "enumÜbersicht",
		Name:       "Übersicht",
		Variants: []models.VariantDescriptor{
			{Name: "Tabelle", Shape: models.TupleShape, DispatchField: "Value", PayloadType: "*Tabelle"},
		},
	}
	spec := &models.MethodSpec{Name: "Zeilen", Results: "int"}

	code := GenerateForwardingMethod(enum, spec)

	if !strings.Contains(code, "func (ü Übersicht) Zeilen() int {") {
		t.Errorf("receiver must be the lowered first rune:\n%s", code)
	}
}

func TestGenerateForwardingMethod_Generics(t *testing.T) {
	enum := &models.EnumMetadata{
		SchemaName: "enumContainer",
		Name:       "Container",
		TypeParams: "[T any]",
		TypeArgs:   "[T]",
		Variants: []models.VariantDescriptor{
			{Name: "Slice", Shape: models.TupleShape, DispatchField: "Value", PayloadType: "[]T"},
		},
	}
	spec := &models.MethodSpec{Name: "Len", Results: "int"}

	code := GenerateForwardingMethod(enum, spec)

	if !strings.Contains(code, "func (c Container[T]) Len() int {") {
		t.Errorf("receiver must carry type arguments:\n%s", code)
	}
	if !strings.Contains(code, "case *ContainerSlice[T]:") {
		t.Errorf("case must instantiate the wrapper:\n%s", code)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"io.Writer", "Writer"},
		{"Writer", "Writer"},
		{"flusher", "Flusher"},
		{"fmt.Stringer", "Stringer"},
		{"Store[string, int]", "Store"},
		{"kv.Store[K, V]", "Store"},
		{"  io.Closer  ", "Closer"},
	}

	for _, tt := range tests {
		if got := Slug(tt.path); got != tt.expected {
			t.Errorf("Slug(%q) = %q, want %q", tt.path, got, tt.expected)
		}
		// Idempotence: a slug is its own slug.
		if got := Slug(Slug(tt.path)); got != tt.expected {
			t.Errorf("Slug not idempotent for %q", tt.path)
		}
	}
}

func TestViewMethodNames(t *testing.T) {
	asName, asMutName, intoName := ViewMethodNames("io.Writer")
	if asName != "AsWriter" || asMutName != "AsWriterMut" || intoName != "IntoWriter" {
		t.Errorf("unexpected view names: %s, %s, %s", asName, asMutName, intoName)
	}
}

func TestGenerateInterfaceViews(t *testing.T) {
	enum := writerEnum()
	iface := &models.InterfaceSpec{Path: "io.Writer"}

	code := GenerateInterfaceViews(enum, iface)

	expectations := []string{
		"func (w Writer) AsWriter() io.Writer {",
		"func (w *Writer) AsWriterMut() io.Writer {",
		"func (w Writer) IntoWriter() io.Writer {",
		"return first.Value",
		"return &first.Value",
		"return first.Handle",
		"return &first.Handle",
		`panic("dispatch: Writer has no variant selected")`,
	}
	for _, expected := range expectations {
		if !strings.Contains(code, expected) {
			t.Errorf("views missing %q:\n%s", expected, code)
		}
	}
}

func TestGenerateInterfaceViews_GenericInterface(t *testing.T) {
	enum := writerEnum()
	iface := &models.InterfaceSpec{Path: "Store[string, int]"}

	code := GenerateInterfaceViews(enum, iface)

	if !strings.Contains(code, "func (w Writer) AsStore() Store[string, int] {") {
		t.Errorf("generic interface path must survive in the return type:\n%s", code)
	}
}

func TestGeneratePackage(t *testing.T) {
	metadata := &models.PackageMetadata{
		PackageName: "writers",
		PackagePath: "internal/writers",
		Enums:       []models.EnumMetadata{*writerEnum()},
	}
	metadata.Enums[0].Methods = []models.MethodSpec{
		{Name: "Write", Ptr: true, Params: []models.Param{{Name: "p", Type: "[]byte"}}, Results: "(int, error)"},
		{Name: "Close", Ptr: true, Results: "error"},
	}
	metadata.Enums[0].Interfaces = []models.InterfaceSpec{
		{Path: "io.Writer"},
	}

	generated, err := NewGenerator().GeneratePackage(metadata)
	if err != nil {
		t.Fatalf("GeneratePackage failed: %v", err)
	}

	if generated.PackageName != "writers" {
		t.Errorf("unexpected package name: %s", generated.PackageName)
	}
	if generated.FilePath != "internal/writers/"+models.GeneratedFileName {
		t.Errorf("unexpected file path: %s", generated.FilePath)
	}
	if generated.Enums != 1 || generated.Methods != 2 || generated.Views != 3 {
		t.Errorf("unexpected counts: enums=%d methods=%d views=%d",
			generated.Enums, generated.Methods, generated.Views)
	}

	expectations := []string{
		"// Code generated by dispatch. DO NOT EDIT.",
		"package writers",
		"type Writer struct {",
		"type isWriterVariant interface",
		"type WriterCursor struct {",
		"func NewWriterCursor(",
		"func NewWriterFile(",
		"func (w *Writer) Write(p []byte) (int, error) {",
		"func (w *Writer) Close() error {",
		"func (w Writer) AsWriter() io.Writer {",
	}
	for _, expected := range expectations {
		if !strings.Contains(generated.Content, expected) {
			t.Errorf("generated file missing %q", expected)
		}
	}
}

func TestGeneratePackage_Errors(t *testing.T) {
	g := NewGenerator()

	if _, err := g.GeneratePackage(nil); err == nil {
		t.Error("expected error for nil metadata")
	}

	empty := &models.PackageMetadata{PackageName: "writers"}
	if _, err := g.GeneratePackage(empty); err == nil {
		t.Error("expected error for package without schemas")
	}
}
