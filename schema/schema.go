package schema

import "fmt"

// Kind is the declared type tag of a property.
type Kind int

// Kind values mirror the wire-level type tags recorded in the generated
// field-descriptor tables.
const (
	KindInvalid Kind = iota
	KindBool
	KindString
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindTime
	KindUUID
	KindBytes
	endKinds
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindString:  "string",
	KindInt:     "int",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint:    "uint",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindTime:    "time",
	KindUUID:    "uuid",
	KindBytes:   "bytes",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k > KindInvalid && k < endKinds {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// Valid reports if the kind is a declared type tag.
func (k Kind) Valid() bool { return k > KindInvalid && k < endKinds }

// Numeric reports if the kind is an integer or float tag.
func (k Kind) Numeric() bool { return k >= KindInt && k <= KindFloat64 }

// ParseKind returns the kind named by s. Unknown names return an error.
func ParseKind(s string) (Kind, error) {
	for k := KindBool; k < endKinds; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("schema: unknown type %q", s)
}

// PropertyDescriptor describes one field of an entity: its declared type,
// nullability, mutation policy, and structural roles.
type PropertyDescriptor struct {
	// Name is the declared field name, e.g. "OwnerId".
	Name string
	// Kind is the declared type tag. Navigation properties carry the kind
	// of the related entity's key, or KindInvalid when unknown.
	Kind Kind
	// Nullable indicates the field may hold no value.
	Nullable bool
	// Navigation is true for object-valued fields that represent a related
	// entity rather than a stored column.
	Navigation bool
	// NavigationType names the related entity for navigation properties.
	NavigationType string
	// Access is the declared mutation policy level.
	Access Access
	// PKOrder is the ordinal of this field inside the primary key.
	// Nil means the field is not part of the key. Order 0 is first.
	PKOrder *int
	// GeneratedKey is true if the store assigns this field's value.
	// Generated fields are never constructor arguments.
	GeneratedKey bool
	// TenantKey marks the partition discriminator. At most one per entity.
	TenantKey bool
	// TransferIgnored excludes the field from the client-view projection.
	TransferIgnored bool
}

// Key reports if the property is part of the primary key.
func (p *PropertyDescriptor) Key() bool { return p.PKOrder != nil }

// ClassDescriptor describes one entity type: its namespace, name, ordered
// property list (tenant key first when present) and capability markers.
type ClassDescriptor struct {
	// Namespace groups entities, e.g. "billing".
	Namespace string
	// Name is the entity type name, e.g. "Invoice".
	Name string
	// Properties in declaration order. When a tenant key exists it is the
	// first entry; compiler/load normalizes documents to this shape.
	Properties []*PropertyDescriptor
	// Insertable and Updatable are the declared capability markers of the
	// entity as a whole.
	Insertable bool
	Updatable  bool
	// ViewPath is the output location of the client-view artifact,
	// relative to the generation target. Empty means next to the server
	// artifacts under the default name.
	ViewPath string
}

// Property returns the property with the given name, or nil.
func (c *ClassDescriptor) Property(name string) *PropertyDescriptor {
	for _, p := range c.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Tenant returns the tenant-key property, or nil when the entity is not
// partitioned. It does not detect duplicates; the compiler validates that.
func (c *ClassDescriptor) Tenant() *PropertyDescriptor {
	for _, p := range c.Properties {
		if p.TenantKey {
			return p
		}
	}
	return nil
}
