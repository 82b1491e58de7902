package schema

import "fmt"

// Access is the declared mutation policy level of a property. It states the
// capability required to mutate the field after construction; it is not a
// language visibility keyword.
type Access int

const (
	// AccessNone means the field has no setter at all. Its value is derived
	// externally (computed, store-assigned) and never written by callers.
	AccessNone Access = iota
	// AccessPrivateOnly means the field is settable once at construction
	// and never after.
	AccessPrivateOnly
	// AccessProtectedOnly restricts post-construction mutation to the
	// entity's own construction/resolution machinery.
	AccessProtectedOnly
	// AccessPrivateProtected combines the private and protected restrictions.
	AccessPrivateProtected
	// AccessProtectedInternal allows mutation from the owning module.
	AccessProtectedInternal
	// AccessInternalOnly allows mutation from anywhere in the owning module.
	AccessInternalOnly
	// AccessPublic means the field is mutated directly, outside the tracked
	// setter surface.
	AccessPublic
)

var accessNames = map[Access]string{
	AccessNone:              "none",
	AccessPrivateOnly:       "private",
	AccessProtectedOnly:     "protected",
	AccessPrivateProtected:  "private-protected",
	AccessProtectedInternal: "protected-internal",
	AccessInternalOnly:      "internal",
	AccessPublic:            "public",
}

// String returns the lowercase name of the access level.
func (a Access) String() string {
	if s, ok := accessNames[a]; ok {
		return s
	}
	return fmt.Sprintf("invalid(%d)", int(a))
}

// Valid reports if a is one of the declared access levels.
func (a Access) Valid() bool {
	_, ok := accessNames[a]
	return ok
}

// ParseAccess returns the access level named by s, as written in schema
// documents. Unknown names return an error.
func ParseAccess(s string) (Access, error) {
	for a, name := range accessNames {
		if name == s {
			return a, nil
		}
	}
	return AccessNone, fmt.Errorf("schema: unknown access level %q", s)
}
