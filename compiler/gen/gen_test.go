package gen

import (
	"github.com/syssam/cowgen/schema"
)

// Shared descriptor fixtures. invoiceDesc exercises every derivation path:
// a generated key, a tenant key, plain fields across the policy levels, a
// constructor-required association and a resolvable one.

func ord(n int) *int { return &n }

func prop(name string, kind schema.Kind, access schema.Access) *schema.PropertyDescriptor {
	return &schema.PropertyDescriptor{Name: name, Kind: kind, Access: access}
}

func nullable(p *schema.PropertyDescriptor) *schema.PropertyDescriptor {
	p.Nullable = true
	return p
}

func nav(name, related string, access schema.Access) *schema.PropertyDescriptor {
	return &schema.PropertyDescriptor{Name: name, Navigation: true, NavigationType: related, Access: access}
}

func invoiceDesc() *schema.ClassDescriptor {
	return &schema.ClassDescriptor{
		Namespace:  "billing",
		Name:       "Invoice",
		Insertable: true,
		Updatable:  true,
		Properties: []*schema.PropertyDescriptor{
			{Name: "TenantId", Kind: schema.KindInt64, Access: schema.AccessPrivateOnly, TenantKey: true},
			{Name: "Id", Kind: schema.KindInt64, Access: schema.AccessNone, PKOrder: ord(0), GeneratedKey: true},
			prop("Number", schema.KindString, schema.AccessPrivateOnly),
			prop("Status", schema.KindString, schema.AccessInternalOnly),
			nullable(prop("Note", schema.KindString, schema.AccessProtectedInternal)),
			nav("Owner", "User", schema.AccessInternalOnly),
			prop("OwnerId", schema.KindInt64, schema.AccessPrivateOnly),
			nav("Customer", "Customer", schema.AccessInternalOnly),
			nullable(prop("CustomerId", schema.KindInt64, schema.AccessInternalOnly)),
		},
	}
}

func userDesc() *schema.ClassDescriptor {
	return &schema.ClassDescriptor{
		Name:       "User",
		Insertable: true,
		Properties: []*schema.PropertyDescriptor{
			{Name: "Id", Kind: schema.KindInt64, Access: schema.AccessNone, PKOrder: ord(0), GeneratedKey: true},
			prop("Email", schema.KindString, schema.AccessInternalOnly),
		},
	}
}

func customerDesc() *schema.ClassDescriptor {
	return &schema.ClassDescriptor{
		Name:       "Customer",
		Insertable: true,
		Updatable:  true,
		Properties: []*schema.PropertyDescriptor{
			{Name: "Id", Kind: schema.KindInt64, Access: schema.AccessNone, PKOrder: ord(0), GeneratedKey: true},
			prop("Name", schema.KindString, schema.AccessInternalOnly),
		},
	}
}

func quietConfig() *Config {
	return MustNewConfig(WithWarnf(func(string, ...any) {}))
}
