package gen

import (
	"github.com/syssam/cowgen/schema"
)

type (
	// Entity is the derived model of one entity type: its classified
	// fields, resolved associations, and key plan. It is built once from a
	// ClassDescriptor and read by every artifact emitter.
	Entity struct {
		*Config
		desc *schema.ClassDescriptor
		// Name holds the entity type name.
		Name string
		// Namespace groups entities under one schema document set.
		Namespace string
		// Fields holds the non-navigation properties in declaration order,
		// tenant key first when present.
		Fields []*Field
		fields map[string]*Field
		// Edges holds the navigation properties paired with their key
		// fields where naming convention allows.
		Edges []*Edge
		// Keys holds the primary-key fields ordered by declared ordinal.
		Keys []*Field
		// Tenant is the partition discriminator field, or nil.
		Tenant *Field
	}

	// Field is one classified non-navigation property.
	Field struct {
		cfg *Config
		def *schema.PropertyDescriptor
		// Name is the declared property name, e.g. "OwnerId".
		Name string
		// Category is the derived mutability class.
		Category Category
		// Exposure is the external capability of the generated setter.
		// Meaningful for categories that emit one.
		Exposure Exposure
		// edge points back to the association this field is the key of.
		edge *Edge
	}

	// Edge is one navigation property, paired with the key field whose
	// name equals the navigation name plus the key suffix. An edge without
	// a key field gets accessors only: no constructor wiring and no
	// automated resolution.
	Edge struct {
		def *schema.PropertyDescriptor
		// Name is the navigation property name, e.g. "Owner".
		Name string
		// Type is the related entity type name.
		Type string
		// Key is the paired foreign-key field, nil when unmatched.
		Key *Field
		// RequiresCtor means the association must be supplied at
		// construction: the key cannot be set afterwards, or it is
		// non-nullable and must be known up front.
		RequiresCtor bool
	}
)

// NewEntity derives the entity model from a descriptor. It validates the
// descriptor's invariants: property names are unique and non-empty, the
// access and type tags are declared levels, at most one tenant key exists
// (listed first), primary-key ordinals are contiguous from zero, and no
// two navigation fields pair with the same key field.
func NewEntity(c *Config, desc *schema.ClassDescriptor) (*Entity, error) {
	if err := validTypeName(desc.Name); err != nil {
		return nil, err
	}
	e := &Entity{
		Config:    c,
		desc:      desc,
		Name:      desc.Name,
		Namespace: desc.Namespace,
		Fields:    make([]*Field, 0, len(desc.Properties)),
		fields:    make(map[string]*Field, len(desc.Properties)),
	}
	seen := make(map[string]struct{}, len(desc.Properties))
	for i, p := range desc.Properties {
		if p.Name == "" {
			return nil, NewSchemaError(desc.Name, "", "property name cannot be empty", nil)
		}
		if _, ok := seen[p.Name]; ok {
			return nil, NewSchemaError(desc.Name, p.Name, "property redeclared", nil)
		}
		seen[p.Name] = struct{}{}
		if !p.Access.Valid() {
			return nil, NewSchemaError(desc.Name, p.Name, "undeclared access level", nil)
		}
		if p.Navigation {
			e.Edges = append(e.Edges, &Edge{def: p, Name: p.Name, Type: p.NavigationType})
			continue
		}
		if !p.Kind.Valid() {
			return nil, NewSchemaError(desc.Name, p.Name, "undeclared type tag", nil)
		}
		f, err := newField(c, p)
		if err != nil {
			return nil, NewSchemaError(desc.Name, p.Name, "classification failed", err)
		}
		if p.TenantKey {
			if e.Tenant != nil {
				return nil, NewSchemaError(desc.Name, p.Name, "entity declares more than one tenant key", nil)
			}
			if i != 0 {
				return nil, NewSchemaError(desc.Name, p.Name, "tenant key must be the first property", nil)
			}
			e.Tenant = f
		}
		e.Fields = append(e.Fields, f)
		e.fields[f.Name] = f
	}
	if err := resolveEdges(e); err != nil {
		return nil, err
	}
	keys, err := planKeys(e)
	if err != nil {
		return nil, err
	}
	e.Keys = keys
	return e, nil
}

func newField(c *Config, p *schema.PropertyDescriptor) (*Field, error) {
	f := &Field{cfg: c, def: p, Name: p.Name}
	cat, err := Classify(p.Access)
	if err != nil {
		return nil, err
	}
	f.Category = cat
	if p.Access != schema.AccessNone {
		exp, err := Expose(p.Access)
		if err != nil {
			return nil, err
		}
		f.Exposure = exp
	}
	return f, nil
}

// =============================================================================
// Entity methods
// =============================================================================

// Label returns the snake_case label of the entity.
func (e *Entity) Label() string { return snake(e.Name) }

// Receiver returns the receiver name used by generated methods.
func (e *Entity) Receiver() string { return "m" }

// Descriptor returns the schema descriptor this entity was derived from.
func (e *Entity) Descriptor() *schema.ClassDescriptor { return e.desc }

// Field returns the non-navigation field with the given name, or nil.
func (e *Entity) Field(name string) *Field { return e.fields[name] }

// Edge returns the navigation edge with the given name, or nil.
func (e *Entity) Edge(name string) *Edge {
	for _, ed := range e.Edges {
		if ed.Name == name {
			return ed
		}
	}
	return nil
}

// CompositeKey reports if the entity's primary key spans several fields.
func (e *Entity) CompositeKey() bool { return len(e.Keys) > 1 }

// ViewPath returns the client-view output path, defaulting to
// "<label>_view.go" next to the server artifacts.
func (e *Entity) ViewPath() string {
	if e.desc.ViewPath != "" {
		return e.desc.ViewPath
	}
	return e.Label() + "_view.go"
}

// Insertable reports the entity-level capability marker.
func (e *Entity) Insertable() bool { return e.desc.Insertable }

// Updatable reports the entity-level capability marker.
func (e *Entity) Updatable() bool { return e.desc.Updatable }

// =============================================================================
// Field methods
// =============================================================================

// Kind returns the declared type tag.
func (f *Field) Kind() schema.Kind { return f.def.Kind }

// Nullable reports if the field may hold no value.
func (f *Field) Nullable() bool { return f.def.Nullable }

// Generated reports if the store assigns the field's value.
func (f *Field) Generated() bool { return f.def.GeneratedKey }

// TenantKey reports if the field is the partition discriminator.
func (f *Field) TenantKey() bool { return f.def.TenantKey }

// TransferIgnored reports if the field is excluded from the client view.
func (f *Field) TransferIgnored() bool { return f.def.TransferIgnored }

// Access returns the declared mutation policy level.
func (f *Field) Access() schema.Access { return f.def.Access }

// Key reports if the field is part of the primary key.
func (f *Field) Key() bool { return f.def.Key() }

// KeyOrder returns the primary-key ordinal, or -1.
func (f *Field) KeyOrder() int {
	if f.def.PKOrder == nil {
		return -1
	}
	return *f.def.PKOrder
}

// EdgeKey returns the association this field is the key of, or nil.
func (f *Field) EdgeKey() *Edge { return f.edge }

// Insertable reports if the field may be supplied at construction.
func (f *Field) Insertable() bool {
	return Insertable(f.def.Access) && !f.Generated()
}

// Updatable reports if the field gets a tracked setter.
func (f *Field) Updatable() bool { return f.Category == Updatable }

// StructField returns the Go struct field name in generated code.
func (f *Field) StructField() string { return pascal(f.Name) }

// Column returns the snake_case storage name.
func (f *Field) Column() string { return snake(f.Name) }

// =============================================================================
// Edge methods
// =============================================================================

// Matched reports if the edge paired with a key field.
func (ed *Edge) Matched() bool { return ed.Key != nil }

// TenantBacked reports if the edge's key field is the tenant key. Such
// associations are excluded from constructor planning and from the
// copy/resolve procedures; the tenant key travels its own channel.
func (ed *Edge) TenantBacked() bool { return ed.Key != nil && ed.Key.TenantKey() }

// Updatable reports if the association gets a tracked setter, which it
// does when its key field does.
func (ed *Edge) Updatable() bool {
	return ed.Key != nil && !ed.TenantBacked() && ed.Key.Updatable()
}

// StructField returns the Go struct field name of the navigation value.
func (ed *Edge) StructField() string { return pascal(ed.Name) }

// Nullable reports if the navigation value may be absent, which follows
// the key field when one exists.
func (ed *Edge) Nullable() bool { return ed.Key == nil || ed.Key.Nullable() }
