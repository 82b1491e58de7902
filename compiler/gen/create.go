package gen

import (
	"github.com/dave/jennifer/jen"
)

// genCreate emits the construction contract and the test-construction
// factory ({label}_create.go).
//
// The constructor takes the required data as positional parameters in
// policy order and the defaulted tail as functional options. The test
// factory is a separate, more permissive path: every field with a mutation
// policy gets an option, including ones the production constructor guards.
func (g *Generator) genCreate(e *Entity) *jen.File {
	f := g.newFile(g.pkg)

	optionType := e.Name + "Option"
	args := e.CtorArgs()

	f.Commentf("%s configures optional fields at construction. It is also the", optionType)
	f.Commentf("test-factory surface: New%s applies options last, with no policy checks.", e.Name+"ForTest")
	f.Type().Id(optionType).Func().Params(jen.Op("*").Id(e.Name))

	// One option per factory argument, shared between the constructor's
	// defaulted tail and the test factory.
	for _, fa := range e.FactoryArgs() {
		g.genFactoryOption(f, e, optionType, fa)
	}

	f.Commentf("New%s constructs a %s. Required arguments carry the structurally", e.Name, e.Name)
	f.Comment("required data; everything else defaults and is set through options.")
	f.Func().Id("New" + e.Name).ParamsFunc(func(p *jen.Group) {
		for _, a := range args {
			if a.Default {
				continue
			}
			if a.Edge != nil {
				p.Id(a.Name()).Add(g.navType(a.Edge))
			} else {
				p.Id(a.Name()).Add(g.goType(a.Field))
			}
		}
		p.Id("opts").Op("...").Id(optionType)
	}).Op("*").Id(e.Name).BlockFunc(func(b *jen.Group) {
		b.Id(e.Receiver()).Op(":=").Op("&").Id(e.Name).Values()
		for _, a := range args {
			if a.Default {
				continue
			}
			if a.Edge != nil {
				g.assignEdge(b, e, a.Edge, a.Name())
			} else {
				b.Id(e.Receiver()).Dot(a.Field.StructField()).Op("=").Id(a.Name())
			}
		}
		b.For(jen.List(jen.Id("_"), jen.Id("opt")).Op(":=").Range().Id("opts")).Block(
			jen.Id("opt").Call(jen.Id(e.Receiver())),
		)
		b.Return(jen.Id(e.Receiver()))
	})

	f.Commentf("New%sForTest builds a fixture with every field defaulted. Supplied", e.Name)
	f.Comment("options are applied verbatim, bypassing construction policy.")
	f.Func().Id("New"+e.Name+"ForTest").Params(
		jen.Id("opts").Op("...").Id(optionType),
	).Op("*").Id(e.Name).Block(
		jen.Id(e.Receiver()).Op(":=").Op("&").Id(e.Name).Values(),
		jen.For(jen.List(jen.Id("_"), jen.Id("opt")).Op(":=").Range().Id("opts")).Block(
			jen.Id("opt").Call(jen.Id(e.Receiver())),
		),
		jen.Return(jen.Id(e.Receiver())),
	)

	return f
}

// genFactoryOption emits the With{Entity}{Field} option for one factory
// argument. Association options assign the navigation value and its
// equivalent key.
func (g *Generator) genFactoryOption(f *jen.File, e *Entity, optionType string, fa FactoryArg) {
	name := "With" + e.Name + fa.Name()
	if fa.Edge != nil {
		f.Commentf("%s sets the %s association and its key.", name, fa.Edge.Name)
		f.Func().Id(name).Params(jen.Id("v").Add(g.navType(fa.Edge))).Id(optionType).Block(
			jen.Return(jen.Func().Params(jen.Id(e.Receiver()).Op("*").Id(e.Name)).BlockFunc(func(b *jen.Group) {
				g.assignEdge(b, e, fa.Edge, "v")
			})),
		)
		return
	}
	f.Commentf("%s sets the %s field.", name, fa.Field.Name)
	f.Func().Id(name).Params(jen.Id("v").Add(g.goType(fa.Field))).Id(optionType).Block(
		jen.Return(jen.Func().Params(jen.Id(e.Receiver()).Op("*").Id(e.Name)).Block(
			jen.Id(e.Receiver()).Dot(fa.Field.StructField()).Op("=").Id("v"),
		)),
	)
}

// assignEdge emits the assignment of a navigation value plus the conversion
// to its underlying key field. Unmatched edges assign the navigation value
// only.
func (g *Generator) assignEdge(b *jen.Group, e *Entity, ed *Edge, from string) {
	b.Id(e.Receiver()).Dot(ed.StructField()).Op("=").Id(from)
	if ed.Key == nil || ed.TenantBacked() {
		return
	}
	keyExpr := jen.Id(from).Dot(g.graph.relatedKeyName(ed))
	if ed.Key.Nullable() {
		keyExpr = jen.Op("&").Add(keyExpr)
	}
	assign := jen.Id(e.Receiver()).Dot(ed.Key.StructField()).Op("=").Add(keyExpr)
	if ed.Key.Nullable() {
		b.If(jen.Id(from).Op("!=").Nil()).Block(assign)
	} else {
		b.Add(assign)
	}
}
