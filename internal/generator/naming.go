package generator

import (
	"strings"
	"unicode"
)

// Slug derives the identifier fragment embedded in generated view-method
// names from an interface type path: package qualification and type arguments
// stripped, first rune exported-cased. Pure function; calling it twice on the
// same path always yields the same slug.
func Slug(path string) string {
	s := strings.TrimSpace(path)

	// Type arguments never contribute to the name.
	base := s
	if i := strings.Index(base, "["); i >= 0 {
		base = base[:i]
	}
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[i+1:]
	}

	return exported(base)
}

// ViewMethodNames returns the three generated view-method names for an
// interface path: shared view, mutable view, consuming view.
func ViewMethodNames(path string) (asName, asMutName, intoName string) {
	slug := Slug(path)
	return "As" + slug, "As" + slug + "Mut", "Into" + slug
}

// exported upper-cases the first rune of an identifier
func exported(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
