package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dispatch/internal/models"
)

const shapesSource = `package shapes

import "fmt"

type Circle struct {
	Radius float64
}

func (c Circle) Area() float64 {
	return 3.14159 * c.Radius * c.Radius
}

func (c Circle) String() string {
	return fmt.Sprintf("circle(r=%g)", c.Radius)
}

type Square struct {
	Side float64
}

func (s Square) Area() float64 {
	return s.Side * s.Side
}

func (s Square) String() string {
	return fmt.Sprintf("square(%g)", s.Side)
}

//dispatch::enum
//dispatch::method Area() float64
//dispatch::dyn fmt.Stringer
type enumShape struct {
	Circle Circle
	Square Square
}
`

func setupModule(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"),
		[]byte("module example.com/demo\n\ngo 1.25\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shapes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shapes", "shapes.go"),
		[]byte(shapesSource), 0644))

	chdir(t, dir)
	return dir
}

func TestGeneratorEndToEnd(t *testing.T) {
	dir := setupModule(t)

	gen := NewGenerator(false)
	require.NoError(t, gen.Generate([]string{"./..."}))

	generated := filepath.Join(dir, "shapes", models.GeneratedFileName)
	content, err := os.ReadFile(generated)
	require.NoError(t, err)

	code := string(content)
	assert.Contains(t, code, "// Code generated by dispatch. DO NOT EDIT.")
	assert.Contains(t, code, "package shapes")
	assert.Contains(t, code, "type Shape struct {")
	assert.Contains(t, code, "func NewShapeCircle(value Circle) Shape {")
	assert.Contains(t, code, "func (s Shape) Area() float64 {")
	assert.Contains(t, code, "func (s Shape) AsStringer() fmt.Stringer {")
	assert.Contains(t, code, `panic("dispatch: Shape has no variant selected")`)

	summary := gen.GetSummary()
	assert.Equal(t, 1, summary.EnumsFound)
	assert.Equal(t, 1, summary.MethodsGenerated)
	assert.Equal(t, 3, summary.ViewsGenerated)
	assert.Equal(t, []string{generated}, summary.GeneratedFiles)
}

func TestGeneratorRegeneratesIdempotently(t *testing.T) {
	dir := setupModule(t)

	gen := NewGenerator(false)
	require.NoError(t, gen.Generate([]string{"./..."}))

	first, err := os.ReadFile(filepath.Join(dir, "shapes", models.GeneratedFileName))
	require.NoError(t, err)

	// A second run re-parses the package (skipping the generated file) and
	// writes identical output.
	require.NoError(t, NewGenerator(false).Generate([]string{"./..."}))
	second, err := os.ReadFile(filepath.Join(dir, "shapes", models.GeneratedFileName))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGeneratorRun_NoPackages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"),
		[]byte("module example.com/demo\n\ngo 1.25\n"), 0644))
	chdir(t, dir)

	err := NewGenerator(false).Generate([]string{"./..."})
	require.Error(t, err)

	var genErr *models.GeneratorError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, models.ErrorTypeValidation, genErr.Type)
	assert.Contains(t, genErr.Message, "No Go packages found")
}

func TestGeneratorRun_AnnotationErrorCarriesPackageDir(t *testing.T) {
	dir := setupModule(t)
	broken := `package broken

//dispatch::method Area() float64
type enumOrphan struct {
	Circle int
}
`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "broken"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken", "broken.go"), []byte(broken), 0644))

	err := NewGenerator(false).Generate([]string{"./..."})
	require.Error(t, err)

	var genErr *models.GeneratorError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Message, "requires a dispatch::enum annotation")
	assert.Equal(t, filepath.Join(dir, "broken"), genErr.Context["package_directory"])
}

func TestGeneratorRun_CustomModuleName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shapes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shapes", "shapes.go"),
		[]byte(shapesSource), 0644))
	chdir(t, dir)

	// No go.mod anywhere under the temp root: the custom module name keeps
	// generation working.
	gen := NewGenerator(false)
	gen.SetCustomModule("example.com/custom")
	require.NoError(t, gen.Generate([]string{"./shapes"}))

	_, err := os.Stat(filepath.Join(dir, "shapes", models.GeneratedFileName))
	assert.NoError(t, err)
}
