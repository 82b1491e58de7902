package load

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/cowgen/schema"
)

const invoiceDoc = `
namespace: billing
name: Invoice
insertable: true
updatable: true
properties:
  - name: Id
    type: int64
    access: none
    primaryKey: 0
    generatedKey: true
  - name: TenantId
    type: int64
    access: private
    tenantKey: true
  - name: Number
    type: string
    access: internal
  - name: Customer
    navigation: Customer
    access: internal
  - name: CustomerId
    type: int64?
    access: internal
  - name: Total
    type: float64?
    access: public
    transferIgnored: true
`

func TestParse(t *testing.T) {
	desc, err := Parse(strings.NewReader(invoiceDoc))
	require.NoError(t, err)

	assert.Equal(t, "billing", desc.Namespace)
	assert.Equal(t, "Invoice", desc.Name)
	assert.True(t, desc.Insertable)
	assert.True(t, desc.Updatable)
	require.Len(t, desc.Properties, 6)

	t.Run("tenant key is normalized first", func(t *testing.T) {
		assert.Equal(t, "TenantId", desc.Properties[0].Name)
		assert.True(t, desc.Properties[0].TenantKey)
		assert.Equal(t, "Id", desc.Properties[1].Name, "relative order of the rest is kept")
		assert.Equal(t, "Number", desc.Properties[2].Name)
	})

	t.Run("key and access mapping", func(t *testing.T) {
		id := desc.Property("Id")
		require.NotNil(t, id)
		assert.True(t, id.Key())
		assert.Zero(t, *id.PKOrder)
		assert.True(t, id.GeneratedKey)
		assert.Equal(t, schema.AccessNone, id.Access)
		assert.Equal(t, schema.AccessPrivateOnly, desc.Property("TenantId").Access)
		assert.Equal(t, schema.AccessInternalOnly, desc.Property("Number").Access)
	})

	t.Run("nullable wrapper suffix", func(t *testing.T) {
		fk := desc.Property("CustomerId")
		require.NotNil(t, fk)
		assert.Equal(t, schema.KindInt64, fk.Kind)
		assert.True(t, fk.Nullable)
		assert.False(t, desc.Property("Number").Nullable)
	})

	t.Run("navigation property", func(t *testing.T) {
		nav := desc.Property("Customer")
		require.NotNil(t, nav)
		assert.True(t, nav.Navigation)
		assert.Equal(t, "Customer", nav.NavigationType)
		assert.Equal(t, schema.KindInvalid, nav.Kind)
	})

	t.Run("transfer ignored", func(t *testing.T) {
		assert.True(t, desc.Property("Total").TransferIgnored)
	})
}

func TestParseErrors(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		_, err := Parse(strings.NewReader("namespace: billing"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing entity name")
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := Parse(strings.NewReader("name: A\nowner: bob"))
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		doc := "name: A\nproperties:\n  - name: X\n    type: decimal\n    access: public"
		_, err := Parse(strings.NewReader(doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "A.X")
	})

	t.Run("missing type", func(t *testing.T) {
		doc := "name: A\nproperties:\n  - name: X\n    access: public"
		_, err := Parse(strings.NewReader(doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing type")
	})

	t.Run("malformed nullable wrapper", func(t *testing.T) {
		for _, typ := range []string{"?", "int64??", "?int64"} {
			doc := "name: A\nproperties:\n  - name: X\n    type: \"" + typ + "\"\n    access: public"
			_, err := Parse(strings.NewReader(doc))
			assert.Error(t, err, typ)
		}
	})

	t.Run("unknown access level", func(t *testing.T) {
		doc := "name: A\nproperties:\n  - name: X\n    type: int\n    access: friend"
		_, err := Parse(strings.NewReader(doc))
		assert.Error(t, err)
	})

	t.Run("omitted access defaults to none", func(t *testing.T) {
		doc := "name: A\nproperties:\n  - name: X\n    type: int"
		desc, err := Parse(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, schema.AccessNone, desc.Property("X").Access)
	})
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("b_customer.yaml", "name: Customer")
	write("a_invoice.yml", "name: Invoice")
	write("readme.txt", "not a schema")

	descs, skipped, err := LoadDir(dir)
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, descs, 2)
	assert.Equal(t, "Invoice", descs[0].Name, "documents load in path order")
	assert.Equal(t, "Customer", descs[1].Name)
}

func TestLoadDirSkipsMalformedDocuments(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("bad.yaml", "name: Broken\nproperties:\n  - name: X\n    type: \"?\"\n")
	write("good.yaml", "name: Customer")

	descs, skipped, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, descs, 1, "the valid document still loads")
	assert.Equal(t, "Customer", descs[0].Name)

	require.Len(t, skipped, 1)
	badPath := filepath.Join(dir, "bad.yaml")
	require.Contains(t, skipped, badPath)
	assert.ErrorContains(t, skipped[badPath], `malformed nullable wrapper "?"`)
}
