package generator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/dispatch/internal/models"
)

// dispatchBinding is the preferred name the active variant is bound to
// inside a generated switch. When a method parameter already uses it, the
// binding is renamed so the parameter is never shadowed.
const dispatchBinding = "first"

// GenerateForwardingMethod emits one forwarding method: the declared
// signature over a switch with one case per variant, each case calling the
// same-named method on the variant's dispatch field with every argument
// forwarded unchanged.
func GenerateForwardingMethod(enum *models.EnumMetadata, spec *models.MethodSpec) string {
	var method strings.Builder

	receiver := receiverName(enum, spec)
	binding := bindingName(spec, receiver)
	args := forwardedArgs(spec)

	method.WriteString(fmt.Sprintf("// %s dispatches to the active variant of %s.\n", spec.Name, enum.Name))
	method.WriteString(fmt.Sprintf("func (%s %s%s%s) %s(%s)%s {\n",
		receiver, receiverPrefix(spec.Ptr), enum.Name, enum.TypeArgs,
		spec.Name, signatureParams(spec), signatureResults(spec)))
	method.WriteString(fmt.Sprintf("\tswitch %s := %s.variant.(type) {\n", binding, receiver))

	for _, variant := range enum.Variants {
		method.WriteString(fmt.Sprintf("\tcase *%s%s%s:\n", enum.Name, variant.Name, enum.TypeArgs))
		call := fmt.Sprintf("%s.%s.%s(%s)", binding, variant.DispatchField, spec.Name, args)
		if spec.Results != "" {
			method.WriteString(fmt.Sprintf("\t\treturn %s\n", call))
		} else {
			method.WriteString(fmt.Sprintf("\t\t%s\n", call))
			method.WriteString("\t\treturn\n")
		}
	}

	method.WriteString("\t}\n")
	method.WriteString(fmt.Sprintf("\tpanic(%q)\n", noVariantMessage(enum)))
	method.WriteString("}\n")

	return method.String()
}

// receiverPrefix returns "*" for pointer receivers
func receiverPrefix(ptr bool) string {
	if ptr {
		return "*"
	}
	return ""
}

// receiverName picks a short receiver identifier that does not collide with
// any parameter or the dispatch binding
func receiverName(enum *models.EnumMetadata, spec *models.MethodSpec) string {
	taken := map[string]bool{dispatchBinding: true}
	if spec != nil {
		for _, param := range spec.Params {
			taken[param.Name] = true
		}
	}

	r, _ := utf8.DecodeRuneInString(enum.Name)
	letter := string(unicode.ToLower(r))
	name := letter
	for taken[name] {
		name += letter
	}
	return name
}

// bindingName picks the switch binding for the active variant, stepping away
// from the preferred name when a parameter or the receiver already uses it
func bindingName(spec *models.MethodSpec, receiver string) string {
	taken := map[string]bool{receiver: true}
	if spec != nil {
		for _, param := range spec.Params {
			taken[param.Name] = true
		}
	}

	name := dispatchBinding
	for i := 1; taken[name]; i++ {
		name = fmt.Sprintf("%s%d", dispatchBinding, i)
	}
	return name
}

// signatureParams renders the declared parameter list verbatim
func signatureParams(spec *models.MethodSpec) string {
	parts := make([]string, 0, len(spec.Params))
	for _, param := range spec.Params {
		if param.Variadic {
			parts = append(parts, fmt.Sprintf("%s ...%s", param.Name, param.Type))
		} else {
			parts = append(parts, fmt.Sprintf("%s %s", param.Name, param.Type))
		}
	}
	return strings.Join(parts, ", ")
}

// signatureResults renders the declared result list with its leading space
func signatureResults(spec *models.MethodSpec) string {
	if spec.Results == "" {
		return ""
	}
	return " " + spec.Results
}

// forwardedArgs renders the argument list of the dispatch call: every
// parameter by name, unchanged, variadics spread
func forwardedArgs(spec *models.MethodSpec) string {
	parts := make([]string, 0, len(spec.Params))
	for _, param := range spec.Params {
		if param.Variadic {
			parts = append(parts, param.Name+"...")
		} else {
			parts = append(parts, param.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// noVariantMessage is the panic text shared by every generated dispatch
// method of an enum
func noVariantMessage(enum *models.EnumMetadata) string {
	return fmt.Sprintf("dispatch: %s has no variant selected", enum.Name)
}
