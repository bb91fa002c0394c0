package generator

import (
	"fmt"
	"strings"

	"github.com/toyz/dispatch/internal/models"
)

// GenerateInterfaceViews emits the three conversion methods for one requested
// interface: shared view, mutable view and consuming view. Duplicate
// interface requests yield duplicate method triples; the resulting name
// collision is the compiler's to report.
func GenerateInterfaceViews(enum *models.EnumMetadata, iface *models.InterfaceSpec) string {
	asName, asMutName, intoName := ViewMethodNames(iface.Path)

	var views strings.Builder

	views.WriteString(fmt.Sprintf("// %s returns the active variant's payload as %s.\n", asName, iface.Path))
	views.WriteString(viewMethod(enum, iface, asName, false, func(variant *models.VariantDescriptor) string {
		return fmt.Sprintf("%s.%s", dispatchBinding, variant.DispatchField)
	}))
	views.WriteString("\n")

	views.WriteString(fmt.Sprintf("// %s returns a pointer to the active variant's stored payload as\n", asMutName))
	views.WriteString(fmt.Sprintf("// %s; mutations through the view are visible on %s.\n", iface.Path, enum.Name))
	views.WriteString(viewMethod(enum, iface, asMutName, true, func(variant *models.VariantDescriptor) string {
		return fmt.Sprintf("&%s.%s", dispatchBinding, variant.DispatchField)
	}))
	views.WriteString("\n")

	views.WriteString(fmt.Sprintf("// %s extracts the active variant's payload as %s.\n", intoName, iface.Path))
	views.WriteString(viewMethod(enum, iface, intoName, false, func(variant *models.VariantDescriptor) string {
		return fmt.Sprintf("%s.%s", dispatchBinding, variant.DispatchField)
	}))

	return views.String()
}

// viewMethod emits one conversion method: a switch over the variants whose
// cases upcast the dispatch field expression to the interface type
func viewMethod(enum *models.EnumMetadata, iface *models.InterfaceSpec, name string, ptr bool, payload func(*models.VariantDescriptor) string) string {
	var method strings.Builder

	receiver := receiverName(enum, nil)

	method.WriteString(fmt.Sprintf("func (%s %s%s%s) %s() %s {\n",
		receiver, receiverPrefix(ptr), enum.Name, enum.TypeArgs, name, iface.Path))
	method.WriteString(fmt.Sprintf("\tswitch %s := %s.variant.(type) {\n", dispatchBinding, receiver))

	for i := range enum.Variants {
		variant := &enum.Variants[i]
		method.WriteString(fmt.Sprintf("\tcase *%s%s%s:\n", enum.Name, variant.Name, enum.TypeArgs))
		method.WriteString(fmt.Sprintf("\t\treturn %s\n", payload(variant)))
	}

	method.WriteString("\t}\n")
	method.WriteString(fmt.Sprintf("\tpanic(%q)\n", noVariantMessage(enum)))
	method.WriteString("}\n")

	return method.String()
}
