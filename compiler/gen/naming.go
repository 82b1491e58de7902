package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var rules = ruleset()

func ruleset() *inflect.Ruleset {
	r := inflect.NewDefaultRuleset()
	for _, w := range []string{"ID", "SQL", "HTTP", "UUID", "API", "URL"} {
		r.AddAcronym(w)
	}
	return r
}

// pascal converts a name to PascalCase, mapping the trailing key suffix
// "Id" to the Go initialism "ID".
func pascal(s string) string {
	if s == "" {
		return s
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	out := b.String()
	if strings.HasSuffix(out, "Id") && !strings.HasSuffix(out, "ID") {
		out = out[:len(out)-2] + "ID"
	}
	return out
}

// camel converts a name to camelCase with the same initialism handling
// as pascal, for unexported identifiers.
func camel(s string) string {
	p := pascal(s)
	if p == "" {
		return p
	}
	i := 1
	for i < len(p) && unicode.IsUpper(rune(p[i])) {
		i++
	}
	if i > 1 && i < len(p) {
		i--
	}
	out := strings.ToLower(p[:i]) + p[i:]
	if token.Lookup(out).IsKeyword() {
		out = "_" + out
	}
	return out
}

// jsonName returns the lowerCamel wire name of a declared field name,
// keeping the declared spelling of the key suffix ("OwnerId" -> "ownerId").
func jsonName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// snake converts a PascalCase name to snake_case.
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(rune(s[i-1])) || (i+1 < len(s) && unicode.IsLower(rune(s[i+1])))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// plural returns the plural form of a name, used for sibling-collection
// identifiers in generated code.
func plural(s string) string {
	return rules.Pluralize(s)
}

// validTypeName reports why an entity name cannot be used, or nil.
func validTypeName(name string) error {
	switch {
	case name == "":
		return NewSchemaError("", "", "entity name cannot be empty", nil)
	case token.Lookup(strings.ToLower(name)).IsKeyword():
		return NewSchemaError(name, "", "entity lowercase name conflicts with Go keyword", nil)
	case !unicode.IsUpper(rune(name[0])):
		return NewSchemaError(name, "", "entity name must begin with an uppercase letter", nil)
	}
	return nil
}
