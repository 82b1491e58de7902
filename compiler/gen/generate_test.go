package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/cowgen"
	"github.com/syssam/cowgen/schema"
)

func generateAll(t *testing.T) (string, func(string) string) {
	t.Helper()
	dir := t.TempDir()
	g, err := NewGraph(quietConfig(), invoiceDesc(), userDesc(), customerDesc())
	require.NoError(t, err)
	require.NoError(t, NewGenerator(g, dir).WithPackage("model").WithWorkers(2).Generate(context.Background()))
	return dir, func(name string) string {
		t.Helper()
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		return string(b)
	}
}

func TestGenerate(t *testing.T) {
	dir, read := generateAll(t)

	t.Run("emits every artifact", func(t *testing.T) {
		for _, name := range []string{
			"model_runtime.go",
			"invoice.go", "invoice_create.go", "invoice_update.go",
			"invoice_resolve.go", "invoice_predicate.go", "invoice_view.go",
			"user.go", "user_create.go", "customer.go",
		} {
			_, err := os.Stat(filepath.Join(dir, name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("header and package", func(t *testing.T) {
		src := read("invoice.go")
		assert.Contains(t, src, "Code generated by cowgen. DO NOT EDIT.")
		assert.Contains(t, src, "package model")
	})

	t.Run("runtime artifact", func(t *testing.T) {
		src := read("model_runtime.go")
		assert.Contains(t, src, "type IUpdatable[U any] interface")
		assert.Contains(t, src, "CloneForUpdate() U")
		assert.Contains(t, src, "type FieldDescriptor struct")
	})

	t.Run("entity artifact", func(t *testing.T) {
		src := read("invoice.go")
		assert.Contains(t, src, "type Invoice struct")
		assert.Contains(t, src, "type Invoices []*Invoice")
		assert.Contains(t, src, `json:"status,omitempty"`)
		assert.Contains(t, src, "invoiceStatus")
		assert.Contains(t, src, "invoiceCustomer")
		assert.Contains(t, src, "track.Accessor")
	})

	t.Run("construction contract", func(t *testing.T) {
		src := read("invoice_create.go")
		assert.Contains(t, src, "func NewInvoice(tenantID int64, owner *User, number string, status string, opts ...InvoiceOption) *Invoice")
		assert.Contains(t, src, "func NewInvoiceForTest(opts ...InvoiceOption) *Invoice")
		assert.Contains(t, src, "func WithInvoiceCustomer(v *Customer) InvoiceOption")
		assert.Contains(t, src, "m.OwnerID = owner.ID")
	})

	t.Run("mutation contract", func(t *testing.T) {
		src := read("invoice_update.go")
		assert.Contains(t, src, "type InvoiceUpdate struct")
		assert.Contains(t, src, "func (m *Invoice) CloneForUpdate() *InvoiceUpdate")
		assert.Contains(t, src, "func MutateInvoice(")
		assert.Contains(t, src, "func (u *InvoiceUpdate) SetStatus(")
		assert.Contains(t, src, "func (u *InvoiceUpdate) SetCustomer(")
		assert.Contains(t, src, "track.SetProperty")
		assert.Contains(t, src, "func AssignInvoiceTenantKey(")
		assert.NotContains(t, src, "SetNumber", "insert-only fields get no tracked setter")
	})

	t.Run("resolution and copy-changes", func(t *testing.T) {
		src := read("invoice_resolve.go")
		assert.Contains(t, src, "type InvoiceLookups struct")
		assert.Contains(t, src, "func ResolveInvoiceAssociations(")
		assert.Contains(t, src, "func CopyInvoiceChanges(")
		assert.Contains(t, src, "track.ResolveAll")
		assert.Contains(t, src, "track.VerifyKeyRef")
		assert.Contains(t, src, "if src.Customer != nil {", "the key check runs whenever an association is supplied")
		assert.NotContains(t, src, "*src.CustomerID", "the stored key passes by reference, nil included")
		assert.NotContains(t, src, "Owner", "constructor-required pairs are not resolved")
	})

	t.Run("predicates", func(t *testing.T) {
		src := read("invoice_predicate.go")
		assert.Contains(t, src, "func InvoiceByKey(")
		assert.Contains(t, src, "func InvoiceKeyOf(")
		assert.Contains(t, src, "func(m *Invoice) bool")
	})

	t.Run("client view", func(t *testing.T) {
		src := read("invoice_view.go")
		assert.Contains(t, src, "type InvoiceUpdatableFields struct")
		assert.Contains(t, src, "type InvoiceInsertFields struct")
		assert.Contains(t, src, "type InvoiceAssociations struct")
		assert.Contains(t, src, "type InvoiceView struct")
		assert.Contains(t, src, "var InvoiceDefaults = map[string]any")
		assert.Contains(t, src, "var InvoiceFieldTable = []FieldDescriptor")
		assert.NotContains(t, src, "TenantID", "the tenant key never reaches the client view")
	})
}

func TestGenerateCompositePredicate(t *testing.T) {
	dir := t.TempDir()
	desc := &schema.ClassDescriptor{
		Name: "Membership",
		Properties: []*schema.PropertyDescriptor{
			keyProp("UserId", 0),
			keyProp("GroupId", 1),
		},
	}
	g, err := NewGraph(quietConfig(), desc)
	require.NoError(t, err)
	require.NoError(t, NewGenerator(g, dir).WithPackage("model").Generate(context.Background()))

	b, err := os.ReadFile(filepath.Join(dir, "membership_predicate.go"))
	require.NoError(t, err)
	src := string(b)

	assert.Contains(t, src, "func MembershipByKey(userID int64, groupID int64) func(*Membership) bool")
	assert.Contains(t, src, "m.UserID == userID && m.GroupID == groupID")
	assert.Contains(t, src, "func MembershipKeyOf(ref *Membership) func(*Membership) bool")
	assert.Contains(t, src, "m.UserID == ref.UserID && m.GroupID == ref.GroupID")
}

func TestGenerateWithCache(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGraph(quietConfig(), userDesc())
	require.NoError(t, err)

	cache := cowgen.NewFingerprintCache()
	gen := NewGenerator(g, dir).WithPackage("model").WithCache(cache)
	require.NoError(t, gen.Generate(context.Background()))

	path := filepath.Join(dir, "user.go")
	first, err := os.Stat(path)
	require.NoError(t, err)

	// Second pass hits the cache: the entity artifact is not rewritten.
	require.NoError(t, os.Remove(path))
	require.NoError(t, gen.Generate(context.Background()))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "unchanged entity is skipped")
	_ = first
}

func TestGenerateFailedPassRetries(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGraph(quietConfig(), userDesc())
	require.NoError(t, err)

	cache := cowgen.NewFingerprintCache()
	gen := NewGenerator(g, dir).WithPackage("model").WithCache(cache)

	// A directory squatting on the artifact path makes the first pass fail.
	path := filepath.Join(dir, "user.go")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.Error(t, gen.Generate(context.Background()))

	// The failed pass must not count as a cache hit: with the obstacle
	// gone, the same inputs regenerate the entity.
	require.NoError(t, os.Remove(path))
	require.NoError(t, gen.Generate(context.Background()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "type User struct")
}

func TestGenerateCustomViewPath(t *testing.T) {
	dir := t.TempDir()
	desc := userDesc()
	desc.ViewPath = filepath.Join("client", "user_view.go")
	g, err := NewGraph(quietConfig(), desc)
	require.NoError(t, err)
	require.NoError(t, NewGenerator(g, dir).WithPackage("model").Generate(context.Background()))

	b, err := os.ReadFile(filepath.Join(dir, "client", "user_view.go"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "package client")
}
