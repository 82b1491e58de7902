package gen

import (
	"fmt"

	"github.com/syssam/cowgen/schema"
)

// Category is the derived mutability class of a property.
type Category int

const (
	// ReadOnly fields have no tracked setter. Fields with no setter at all
	// (access none) and public fields, which are mutated directly outside
	// the tracker, both land here.
	ReadOnly Category = iota
	// InsertOnly fields are settable once at construction, never after.
	InsertOnly
	// Updatable fields get a tracked setter on the mutation contract.
	Updatable
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case InsertOnly:
		return "insert-only"
	case Updatable:
		return "updatable"
	default:
		return "read-only"
	}
}

// Exposure is the external capability of a generated setter, the two-level
// scheme the six declared policy levels map onto.
type Exposure int

const (
	// ExposureInternal setters are emitted unexported.
	ExposureInternal Exposure = iota
	// ExposurePublic setters are emitted exported.
	ExposurePublic
)

// String returns the exposure name.
func (e Exposure) String() string {
	if e == ExposurePublic {
		return "public"
	}
	return "internal"
}

// categories is the fixed classification policy. It is a deliberate,
// enumerated mapping: do not infer it structurally.
var categories = map[schema.Access]Category{
	schema.AccessNone:              ReadOnly,
	schema.AccessPublic:            ReadOnly,
	schema.AccessPrivateOnly:       InsertOnly,
	schema.AccessProtectedOnly:     Updatable,
	schema.AccessPrivateProtected:  Updatable,
	schema.AccessProtectedInternal: Updatable,
	schema.AccessInternalOnly:      Updatable,
}

// exposures maps every non-None policy level onto the two-level external
// scheme. The most restrictive non-private levels externalize as internal;
// the more permissive ones as public.
var exposures = map[schema.Access]Exposure{
	schema.AccessPrivateOnly:       ExposureInternal,
	schema.AccessPrivateProtected:  ExposureInternal,
	schema.AccessProtectedOnly:     ExposureInternal,
	schema.AccessProtectedInternal: ExposurePublic,
	schema.AccessInternalOnly:      ExposurePublic,
	schema.AccessPublic:            ExposurePublic,
}

// Classify derives the mutability category of a declared policy level.
// The mapping is total over the declared levels; every field classifies
// into exactly one category.
func Classify(a schema.Access) (Category, error) {
	c, ok := categories[a]
	if !ok {
		return ReadOnly, fmt.Errorf("%w: unmapped access level %v", ErrInvalidSchema, a)
	}
	return c, nil
}

// Expose derives the external setter capability of a declared policy level.
// It is defined for exactly the six non-None levels.
func Expose(a schema.Access) (Exposure, error) {
	e, ok := exposures[a]
	if !ok {
		return ExposureInternal, fmt.Errorf("%w: no exposure for access level %v", ErrInvalidSchema, a)
	}
	return e, nil
}

// Insertable reports if a field with the given policy level may be supplied
// at construction. Only fields with no setter at all are excluded.
func Insertable(a schema.Access) bool {
	return a != schema.AccessNone
}
