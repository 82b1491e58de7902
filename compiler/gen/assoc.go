package gen

import (
	"strings"

	"github.com/syssam/cowgen/schema"
)

// KeySuffix is the fixed token appended to a navigation field's name to
// locate its foreign-key field. "Owner" pairs with "OwnerId".
const KeySuffix = "Id"

// resolveEdges pairs each navigation field with the key field named after
// it, and derives whether the pair requires constructor-time resolution.
//
// A pairing requires constructor resolution when the key field's policy
// level forbids post-construction writes (protected or private) or the key
// is non-nullable and must be known up front. Two navigation fields
// resolving to the same key field is a generation-time error; the pairing
// is never silently disambiguated.
func resolveEdges(e *Entity) error {
	keyed := make(map[string]*Field, len(e.Fields))
	for _, f := range e.Fields {
		if strings.HasSuffix(f.Name, KeySuffix) {
			keyed[f.Name] = f
		}
	}
	claimed := make(map[string]string, len(e.Edges))
	for _, ed := range e.Edges {
		key, ok := keyed[ed.Name+KeySuffix]
		if !ok {
			// Accessors only: no constructor wiring, no automated
			// resolution.
			continue
		}
		if prev, ok := claimed[key.Name]; ok {
			return NewSchemaError(e.Name, key.Name,
				"key field claimed by navigation fields "+prev+" and "+ed.Name, nil)
		}
		claimed[key.Name] = ed.Name
		ed.Key = key
		key.edge = ed
		ed.RequiresCtor = requiresCtor(key)
	}
	return nil
}

func requiresCtor(key *Field) bool {
	switch key.Access() {
	case schema.AccessProtectedOnly, schema.AccessPrivateOnly:
		return true
	}
	return !key.Nullable()
}

// MatchedEdges returns the edges that paired with a key field.
func (e *Entity) MatchedEdges() []*Edge {
	out := make([]*Edge, 0, len(e.Edges))
	for _, ed := range e.Edges {
		if ed.Matched() {
			out = append(out, ed)
		}
	}
	return out
}

// CtorEdges returns the associations that must be supplied at
// construction, excluding tenant-backed pairs.
func (e *Entity) CtorEdges() []*Edge {
	out := make([]*Edge, 0, len(e.Edges))
	for _, ed := range e.Edges {
		if ed.Matched() && ed.RequiresCtor && !ed.TenantBacked() {
			out = append(out, ed)
		}
	}
	return out
}

// ResolvableEdges returns the non-tenant, non-constructor-required pairs:
// the ones the generated resolution and copy-changes procedures handle.
func (e *Entity) ResolvableEdges() []*Edge {
	out := make([]*Edge, 0, len(e.Edges))
	for _, ed := range e.Edges {
		if ed.Matched() && !ed.RequiresCtor && !ed.TenantBacked() {
			out = append(out, ed)
		}
	}
	return out
}
