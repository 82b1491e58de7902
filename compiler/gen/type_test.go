package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/cowgen/schema"
)

func TestNewEntity(t *testing.T) {
	require := require.New(t)
	e, err := NewEntity(quietConfig(), invoiceDesc())
	require.NoError(err)
	require.NotNil(e)
	require.Equal("Invoice", e.Name)
	require.Equal("billing", e.Namespace)
	require.Equal("invoice", e.Label())
	require.Equal("m", e.Receiver())
	require.Equal("invoice_view.go", e.ViewPath())
	require.True(e.Insertable())
	require.True(e.Updatable())

	require.Len(e.Fields, 7)
	require.Len(e.Edges, 2)
	require.NotNil(e.Tenant)
	require.Equal("TenantId", e.Tenant.Name)
	require.Equal("TenantID", e.Tenant.StructField())

	status := e.Field("Status")
	require.NotNil(status)
	require.Equal(Updatable, status.Category)
	require.Equal(ExposurePublic, status.Exposure)
	require.True(status.Updatable())
	require.True(status.Insertable())

	number := e.Field("Number")
	require.Equal(InsertOnly, number.Category)
	require.False(number.Updatable())
	require.True(number.Insertable())

	id := e.Field("Id")
	require.Equal(ReadOnly, id.Category)
	require.True(id.Generated())
	require.False(id.Insertable())
	require.True(id.Key())
	require.Equal(0, id.KeyOrder())
	require.Equal(-1, status.KeyOrder())
}

func TestNewEntityErrors(t *testing.T) {
	require := require.New(t)
	c := quietConfig()

	_, err := NewEntity(c, &schema.ClassDescriptor{Name: ""})
	require.ErrorIs(err, ErrInvalidSchema)
	require.Contains(err.Error(), "entity name cannot be empty")

	_, err = NewEntity(c, &schema.ClassDescriptor{Name: "invoice"})
	require.ErrorIs(err, ErrInvalidSchema)
	require.Contains(err.Error(), "uppercase")

	_, err = NewEntity(c, &schema.ClassDescriptor{Name: "Type"})
	require.ErrorIs(err, ErrInvalidSchema)
	require.Contains(err.Error(), "keyword")

	_, err = NewEntity(c, &schema.ClassDescriptor{
		Name:       "T",
		Properties: []*schema.PropertyDescriptor{prop("", schema.KindInt, schema.AccessPublic)},
	})
	require.ErrorIs(err, ErrInvalidSchema)
	require.Contains(err.Error(), "property name cannot be empty")

	_, err = NewEntity(c, &schema.ClassDescriptor{
		Name: "T",
		Properties: []*schema.PropertyDescriptor{
			prop("Foo", schema.KindInt, schema.AccessPublic),
			prop("Foo", schema.KindInt, schema.AccessPublic),
		},
	})
	require.ErrorIs(err, ErrInvalidSchema)
	require.Contains(err.Error(), "redeclared")

	_, err = NewEntity(c, &schema.ClassDescriptor{
		Name:       "T",
		Properties: []*schema.PropertyDescriptor{prop("Foo", schema.KindInvalid, schema.AccessPublic)},
	})
	require.ErrorIs(err, ErrInvalidSchema)
	require.Contains(err.Error(), "undeclared type tag")

	_, err = NewEntity(c, &schema.ClassDescriptor{
		Name:       "T",
		Properties: []*schema.PropertyDescriptor{prop("Foo", schema.KindInt, schema.Access(42))},
	})
	require.ErrorIs(err, ErrInvalidSchema)
	require.Contains(err.Error(), "undeclared access level")

	_, err = NewEntity(c, &schema.ClassDescriptor{
		Name: "T",
		Properties: []*schema.PropertyDescriptor{
			{Name: "TenantId", Kind: schema.KindInt64, Access: schema.AccessPrivateOnly, TenantKey: true},
			{Name: "RegionId", Kind: schema.KindInt64, Access: schema.AccessPrivateOnly, TenantKey: true},
		},
	})
	require.ErrorIs(err, ErrInvalidSchema)
	require.Contains(err.Error(), "more than one tenant key")

	_, err = NewEntity(c, &schema.ClassDescriptor{
		Name: "T",
		Properties: []*schema.PropertyDescriptor{
			prop("Foo", schema.KindInt, schema.AccessPublic),
			{Name: "TenantId", Kind: schema.KindInt64, Access: schema.AccessPrivateOnly, TenantKey: true},
		},
	})
	require.ErrorIs(err, ErrInvalidSchema)
	require.Contains(err.Error(), "first property")
}

func TestEdgeProperties(t *testing.T) {
	require := require.New(t)
	e, err := NewEntity(quietConfig(), invoiceDesc())
	require.NoError(err)

	owner := e.Edge("Owner")
	require.NotNil(owner)
	require.True(owner.Matched())
	require.True(owner.RequiresCtor)
	require.False(owner.Nullable())
	require.False(owner.Updatable(), "constructor-required pairs have no tracked setter")
	require.Equal("OwnerId", owner.Key.Name)
	require.Equal("OwnerID", owner.Key.StructField())
	require.Same(owner, owner.Key.EdgeKey())

	customer := e.Edge("Customer")
	require.NotNil(customer)
	require.True(customer.Matched())
	require.False(customer.RequiresCtor)
	require.True(customer.Nullable())
	require.True(customer.Updatable())

	require.Nil(e.Edge("Missing"))
}
