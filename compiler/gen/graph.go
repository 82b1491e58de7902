package gen

import (
	"github.com/syssam/cowgen/schema"
)

// Graph holds the derived entities of one generation pass.
type Graph struct {
	*Config
	// Entities that survived derivation, in input order.
	Entities []*Entity
	// Skipped maps entity names to the schema error that excluded them.
	Skipped map[string]error
}

// NewGraph derives an entity per descriptor. Schema malformation is
// recoverable: the offending entity is skipped with a diagnostic and
// recorded in Skipped, and generation proceeds with the rest.
func NewGraph(c *Config, descs ...*schema.ClassDescriptor) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	g := &Graph{Config: c, Skipped: make(map[string]error)}
	for _, desc := range descs {
		e, err := NewEntity(c, desc)
		if err != nil {
			c.Warnf("cowgen: skipping entity %s: %v", desc.Name, err)
			g.Skipped[desc.Name] = err
			continue
		}
		g.Entities = append(g.Entities, e)
	}
	return g, nil
}

// Entity returns the derived entity with the given name, or nil.
func (g *Graph) Entity(name string) *Entity {
	for _, e := range g.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// relatedKeyName returns the struct field name of the related entity's
// scalar key, falling back to the naming convention when the related
// entity is outside the graph or has a composite key.
func (g *Graph) relatedKeyName(ed *Edge) string {
	if rel := g.Entity(ed.Type); rel != nil && len(rel.Keys) == 1 {
		return rel.Keys[0].StructField()
	}
	return "ID"
}
