package gen

// This file holds the pure derivations the artifact emitters consume:
// constructor argument planning, the test-factory surface, the tracked
// setter surface, the copy-changes plan, and the client-view partition.

// CtorArg is one argument of the generated construction contract. Exactly
// one of Field and Edge is set: plain fields pass their value, association
// arguments pass the related entity and convert to the underlying key.
type CtorArg struct {
	Field   *Field
	Edge    *Edge
	Default bool // argument may be omitted; defaulted arguments trail
}

// Name returns the argument's parameter name.
func (a CtorArg) Name() string {
	if a.Edge != nil {
		return camel(a.Edge.Name)
	}
	return camel(a.Field.Name)
}

// CtorArgs plans the construction contract. Required data sits furthest
// left and defaulted data last, matching default-argument constraints:
//
//	tenant key (when present and not generated)
//	-> constructor-required association pairs
//	-> remaining insert-only and non-nullable fields
//	-> remaining association pairs, defaulted null
//	-> remaining nullable fields, defaulted
//
// Generated-key fields never appear; neither do fields with no setter at
// all, nor key fields covered by an association argument.
func (e *Entity) CtorArgs() []CtorArg {
	var args []CtorArg
	if e.Tenant != nil && !e.Tenant.Generated() {
		args = append(args, CtorArg{Field: e.Tenant})
	}
	for _, ed := range e.CtorEdges() {
		args = append(args, CtorArg{Edge: ed})
	}
	var optional []CtorArg
	for _, f := range e.Fields {
		if !e.plainCtorField(f) {
			continue
		}
		if f.Category == InsertOnly || !f.Nullable() {
			args = append(args, CtorArg{Field: f})
		} else {
			optional = append(optional, CtorArg{Field: f, Default: true})
		}
	}
	for _, ed := range e.Edges {
		if ed.Matched() && !ed.RequiresCtor && !ed.TenantBacked() {
			args = append(args, CtorArg{Edge: ed, Default: true})
		}
	}
	return append(args, optional...)
}

// plainCtorField reports if f is supplied to the constructor as a plain
// value rather than through the tenant channel or an association argument.
func (e *Entity) plainCtorField(f *Field) bool {
	switch {
	case f.Generated(), f.TenantKey(), !f.Insertable():
		return false
	case f.edge != nil && !f.edge.TenantBacked():
		// Covered by the association argument (required or defaulted).
		return false
	}
	return true
}

// FactoryArg is one defaulted argument of the generated test factory.
type FactoryArg struct {
	Field *Field
	Edge  *Edge
}

// Name returns the argument's option name.
func (a FactoryArg) Name() string {
	if a.Edge != nil {
		return a.Edge.StructField()
	}
	return a.Field.StructField()
}

// FactoryArgs plans the test-construction factory: every field with a
// non-None mutation policy and every navigation field, all defaulted, in
// declaration order. The factory is a deliberately more permissive path
// than the production constructor, for test fixtures only; it bypasses
// the policy ordering constraints.
func (e *Entity) FactoryArgs() []FactoryArg {
	var args []FactoryArg
	for _, p := range e.desc.Properties {
		if p.Navigation {
			args = append(args, FactoryArg{Edge: e.Edge(p.Name)})
			continue
		}
		f := e.fields[p.Name]
		if Insertable(f.Access()) {
			args = append(args, FactoryArg{Field: f})
		}
	}
	return args
}

// Setter is one entry of the tracked mutation surface.
type Setter struct {
	Field    *Field
	Edge     *Edge // non-nil for association setters
	Exposure Exposure
}

// MethodName returns the generated setter name, capability-tagged: internal
// exposure yields an unexported method.
func (s Setter) MethodName() string {
	name := s.Field.StructField()
	if s.Edge != nil {
		name = s.Edge.StructField()
	}
	if s.Exposure == ExposureInternal {
		return "set" + name
	}
	return "Set" + name
}

// Setters plans the change-tracker surface: one setter per updatable
// non-association field and one per updatable association. Association
// setters also record the field's equivalent key value. The tenant key is
// immutable after construction and never appears here.
func (e *Entity) Setters() []Setter {
	var out []Setter
	for _, f := range e.Fields {
		if !f.Updatable() || f.TenantKey() || f.edge != nil {
			continue
		}
		out = append(out, Setter{Field: f, Exposure: f.Exposure})
	}
	for _, ed := range e.Edges {
		if ed.Updatable() {
			out = append(out, Setter{Field: ed.Key, Edge: ed, Exposure: ed.Key.Exposure})
		}
	}
	return out
}

// CopyFields returns the updatable non-association fields the copy-changes
// procedure applies from a source instance onto a tracker.
func (e *Entity) CopyFields() []*Field {
	var out []*Field
	for _, f := range e.Fields {
		if f.Updatable() && !f.TenantKey() && f.edge == nil {
			out = append(out, f)
		}
	}
	return out
}

// ViewGroup is one partition of the client-view projection.
type ViewGroup int

const (
	// ViewUpdatable fields form the innermost view shape.
	ViewUpdatable ViewGroup = iota
	// ViewInsertable fields extend it to the full insert shape.
	ViewInsertable
	// ViewReadOnly fields appear on the combined entity shape only.
	ViewReadOnly
	// ViewGeneratedKey fields are store-assigned.
	ViewGeneratedKey
	// ViewAssociation entries carry the navigation linkage.
	ViewAssociation
)

// ViewField is one client-view entry with its partition.
type ViewField struct {
	Field *Field
	Edge  *Edge
	Group ViewGroup
}

// ViewFields partitions the entity for the client-view projection. The
// tenant key and transfer-ignored fields are excluded.
func (e *Entity) ViewFields() []ViewField {
	var out []ViewField
	for _, f := range e.Fields {
		if f.TenantKey() || f.TransferIgnored() {
			continue
		}
		switch {
		case f.Generated():
			out = append(out, ViewField{Field: f, Group: ViewGeneratedKey})
		case f.Updatable():
			out = append(out, ViewField{Field: f, Group: ViewUpdatable})
		case f.Insertable():
			out = append(out, ViewField{Field: f, Group: ViewInsertable})
		default:
			out = append(out, ViewField{Field: f, Group: ViewReadOnly})
		}
	}
	for _, ed := range e.Edges {
		if ed.TenantBacked() {
			continue
		}
		out = append(out, ViewField{Edge: ed, Group: ViewAssociation})
	}
	return out
}
