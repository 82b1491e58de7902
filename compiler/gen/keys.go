package gen

import (
	"fmt"
	"sort"
)

// planKeys collects the primary-key fields ordered by declared ordinal and
// validates the ordering: ordinals must be unique, start at zero, and be
// contiguous. An ambiguous ordering is a schema error; there is no
// well-defined fallback for it.
func planKeys(e *Entity) ([]*Field, error) {
	var keys []*Field
	for _, f := range e.Fields {
		if f.Key() {
			keys = append(keys, f)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].KeyOrder() < keys[j].KeyOrder() })
	for i, f := range keys {
		if f.KeyOrder() != i {
			return nil, NewSchemaError(e.Name, f.Name,
				fmt.Sprintf("ambiguous primary-key ordering: ordinal %d at position %d", f.KeyOrder(), i), nil)
		}
	}
	return keys, nil
}

// KeyShape describes the filter-predicate shape of an entity's key:
// the scalar key type when a single field forms the key, or a composite
// tuple preserving declared order.
type KeyShape struct {
	// Fields in key order.
	Fields []*Field
	// Composite is true when the key spans several fields.
	Composite bool
}

// KeyShape returns the entity's key shape.
func (e *Entity) KeyShape() KeyShape {
	return KeyShape{Fields: e.Keys, Composite: len(e.Keys) > 1}
}

// Predicates have two equality forms per entity: by literal key value, and
// by reference to an existing instance (field-by-field equality against the
// instance's own key fields). Both are conjunctions of per-field equalities
// in declared key order.

// LiteralPredicateName is the generated by-literal-key predicate name.
func (e *Entity) LiteralPredicateName() string { return e.Name + "ByKey" }

// InstancePredicateName is the generated by-instance-key predicate name.
func (e *Entity) InstancePredicateName() string { return e.Name + "KeyOf" }
