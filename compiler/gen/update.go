package gen

import (
	"github.com/dave/jennifer/jen"
)

// genUpdate emits the tracked mutation contract ({label}_update.go): the
// update builder over the change tracker, the clone method implementing the
// update interface, the capability-tagged setter surface, and the dedicated
// tenant-key assignment channel.
func (g *Generator) genUpdate(e *Entity) *jen.File {
	f := g.newFile(g.pkg)
	c := g.graph.Config

	updateName := e.Name + "Update"

	f.Commentf("%s accumulates tracked writes against one %s instance.", updateName, e.Name)
	f.Comment("It is for single-threaded, single-operation use.")
	f.Type().Id(updateName).Struct(
		jen.Id("tracker").Op("*").Qual(trackPkg, c.TrackerBase).Types(jen.Id(e.Name)),
	)

	// Compile-time check that the entity implements the update contract.
	f.Var().Id("_").Id(c.UpdateInterface).Types(jen.Op("*").Id(updateName)).
		Op("=").Parens(jen.Op("*").Id(e.Name)).Call(jen.Nil())

	f.Commentf("%s returns a copy-on-write mutation contract over %s: writes land", c.CloneMethod, e.Receiver())
	f.Comment("on a private clone forked at the first effective change, and the receiver")
	f.Comment("stays valid for rollback.")
	f.Func().Params(jen.Id(e.Receiver()).Op("*").Id(e.Name)).Id(c.CloneMethod).Params().Op("*").Id(updateName).Block(
		jen.Return(jen.Op("&").Id(updateName).Values(jen.Dict{
			jen.Id("tracker"): jen.Qual(trackPkg, "NewCloning").Call(jen.Id(e.Receiver())),
		})),
	)

	f.Commentf("Mutate%s returns an in-place mutation contract over %s, for callers", e.Name, e.Receiver())
	f.Comment("that need no rollback.")
	f.Func().Id("Mutate"+e.Name).Params(
		jen.Id(e.Receiver()).Op("*").Id(e.Name),
	).Op("*").Id(updateName).Block(
		jen.Return(jen.Op("&").Id(updateName).Values(jen.Dict{
			jen.Id("tracker"): jen.Qual(trackPkg, "NewModifying").Call(jen.Id(e.Receiver())),
		})),
	)

	f.Comment("Original returns the instance the contract was opened on.")
	f.Func().Params(jen.Id("u").Op("*").Id(updateName)).Id("Original").Params().Op("*").Id(e.Name).Block(
		jen.Return(jen.Id("u").Dot("tracker").Dot("Original").Call()),
	)

	f.Comment("Updated materializes the accumulated changes: the clone when one was")
	f.Comment("forked, the original otherwise.")
	f.Func().Params(jen.Id("u").Op("*").Id(updateName)).Id("Updated").Params().Op("*").Id(e.Name).Block(
		jen.Return(jen.Id("u").Dot("tracker").Dot("Target").Call()),
	)

	for _, s := range e.Setters() {
		g.genSetter(f, e, updateName, s)
	}

	if e.Tenant != nil {
		f.Commentf("Assign%sTenantKey writes the partition key outside the tracked surface.", e.Name)
		f.Comment("The tenant key is immutable after construction; this is the dedicated")
		f.Comment("unsafe channel for the rare caller that must re-home an instance.")
		f.Func().Id("Assign"+e.Name+"TenantKey").Params(
			jen.Id(e.Receiver()).Op("*").Id(e.Name),
			jen.Id("v").Add(g.goType(e.Tenant)),
		).Block(
			jen.Id(e.Receiver()).Dot(e.Tenant.StructField()).Op("=").Id("v"),
		)
	}

	return f
}

// genSetter emits one tracked setter. Association setters record the
// navigation value and its equivalent key against the tracker.
func (g *Generator) genSetter(f *jen.File, e *Entity, updateName string, s Setter) {
	c := g.graph.Config
	method := s.MethodName()

	if s.Edge == nil {
		f.Commentf("%s records a %s write on the tracker.", method, s.Field.Name)
		f.Func().Params(jen.Id("u").Op("*").Id(updateName)).Id(method).Params(
			jen.Id("v").Add(g.goType(s.Field)),
		).Op("*").Id(updateName).Block(
			jen.Id("u").Dot("tracker").Op("=").Qual(trackPkg, c.SetMethod).Call(
				jen.Id("u").Dot("tracker"),
				jen.Id(g.accessorName(e, s.Field)),
				jen.Id("v"),
			),
			jen.Return(jen.Id("u")),
		)
		return
	}

	ed := s.Edge
	f.Commentf("%s records the %s association and its key on the tracker.", method, ed.Name)
	f.Func().Params(jen.Id("u").Op("*").Id(updateName)).Id(method).Params(
		jen.Id("v").Add(g.navType(ed)),
	).Op("*").Id(updateName).BlockFunc(func(b *jen.Group) {
		b.Id("u").Dot("tracker").Op("=").Qual(trackPkg, c.SetMethod).Call(
			jen.Id("u").Dot("tracker"),
			jen.Id(g.edgeAccessorName(e, ed)),
			jen.Id("v"),
		)
		keyAcc := jen.Id(g.accessorName(e, ed.Key))
		if ed.Key.Nullable() {
			b.If(jen.Id("v").Op("!=").Nil()).Block(
				jen.Id("key").Op(":=").Id("v").Dot(g.graph.relatedKeyName(ed)),
				jen.Id("u").Dot("tracker").Op("=").Qual(trackPkg, c.SetMethod).Call(
					jen.Id("u").Dot("tracker"), keyAcc, jen.Op("&").Id("key"),
				),
			).Else().Block(
				jen.Id("u").Dot("tracker").Op("=").Qual(trackPkg, c.SetMethod).Call(
					jen.Id("u").Dot("tracker"), keyAcc,
					jen.Parens(g.goType(ed.Key)).Call(jen.Nil()),
				),
			)
		} else {
			b.Id("u").Dot("tracker").Op("=").Qual(trackPkg, c.SetMethod).Call(
				jen.Id("u").Dot("tracker"), keyAcc,
				jen.Id("v").Dot(g.graph.relatedKeyName(ed)),
			)
		}
		b.Return(jen.Id("u"))
	})
}
