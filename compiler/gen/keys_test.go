package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/cowgen/schema"
)

func keyProp(name string, order int) *schema.PropertyDescriptor {
	p := prop(name, schema.KindInt64, schema.AccessPrivateOnly)
	p.PKOrder = ord(order)
	return p
}

func TestPlanKeys(t *testing.T) {
	t.Run("keys order by declared ordinal, not position", func(t *testing.T) {
		e, err := NewEntity(quietConfig(), &schema.ClassDescriptor{
			Name: "Membership",
			Properties: []*schema.PropertyDescriptor{
				keyProp("GroupId", 1),
				keyProp("UserId", 0),
			},
		})
		require.NoError(t, err)
		require.Len(t, e.Keys, 2)
		assert.Equal(t, "UserId", e.Keys[0].Name)
		assert.Equal(t, "GroupId", e.Keys[1].Name)
		assert.True(t, e.CompositeKey())

		shape := e.KeyShape()
		assert.True(t, shape.Composite)
		require.Len(t, shape.Fields, 2)
		assert.Equal(t, "UserId", shape.Fields[0].Name)
	})

	t.Run("single key", func(t *testing.T) {
		e, err := NewEntity(quietConfig(), userDesc())
		require.NoError(t, err)
		require.Len(t, e.Keys, 1)
		assert.False(t, e.CompositeKey())
		assert.False(t, e.KeyShape().Composite)
	})

	t.Run("gap in ordinals is ambiguous", func(t *testing.T) {
		_, err := NewEntity(quietConfig(), &schema.ClassDescriptor{
			Name: "T",
			Properties: []*schema.PropertyDescriptor{
				keyProp("A", 0),
				keyProp("B", 2),
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSchema)
		assert.Contains(t, err.Error(), "ambiguous primary-key ordering")
	})

	t.Run("duplicate ordinal is ambiguous", func(t *testing.T) {
		_, err := NewEntity(quietConfig(), &schema.ClassDescriptor{
			Name: "T",
			Properties: []*schema.PropertyDescriptor{
				keyProp("A", 0),
				keyProp("B", 0),
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("ordinals must start at zero", func(t *testing.T) {
		_, err := NewEntity(quietConfig(), &schema.ClassDescriptor{
			Name:       "T",
			Properties: []*schema.PropertyDescriptor{keyProp("A", 1)},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})
}

func TestPredicateNames(t *testing.T) {
	e, err := NewEntity(quietConfig(), userDesc())
	require.NoError(t, err)
	assert.Equal(t, "UserByKey", e.LiteralPredicateName())
	assert.Equal(t, "UserKeyOf", e.InstancePredicateName())
}
