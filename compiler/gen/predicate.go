package gen

import (
	"github.com/dave/jennifer/jen"
)

// genPredicate emits the filter predicates ({label}_predicate.go): equality
// by literal key value and by reference to an existing instance. Both are
// conjunctions of per-field equalities in declared key order.
func (g *Generator) genPredicate(e *Entity) *jen.File {
	f := g.newFile(g.pkg)

	shape := e.KeyShape()
	if len(shape.Fields) == 0 {
		f.Commentf("%s declares no primary key; no filter predicates are generated.", e.Name)
		return f
	}

	predType := jen.Func().Params(jen.Op("*").Id(e.Name)).Bool()

	f.Commentf("%s matches the %s identified by the given key value.", e.LiteralPredicateName(), e.Name)
	f.Func().Id(e.LiteralPredicateName()).ParamsFunc(func(p *jen.Group) {
		for _, k := range shape.Fields {
			p.Id(camel(k.Name)).Add(g.goType(k))
		}
	}).Add(predType).Block(
		jen.Return(jen.Func().Params(jen.Id(e.Receiver()).Op("*").Id(e.Name)).Bool().Block(
			jen.Return(conjunction(shape.Fields, func(k *Field) *jen.Statement {
				return jen.Id(e.Receiver()).Dot(k.StructField()).Op("==").Id(camel(k.Name))
			})),
		)),
	)

	f.Commentf("%s matches entities sharing ref's key, field by field.", e.InstancePredicateName())
	f.Func().Id(e.InstancePredicateName()).Params(
		jen.Id("ref").Op("*").Id(e.Name),
	).Add(predType).Block(
		jen.Return(jen.Func().Params(jen.Id(e.Receiver()).Op("*").Id(e.Name)).Bool().Block(
			jen.Return(conjunction(shape.Fields, func(k *Field) *jen.Statement {
				return jen.Id(e.Receiver()).Dot(k.StructField()).Op("==").Id("ref").Dot(k.StructField())
			})),
		)),
	)

	return f
}

// conjunction joins one equality per key field with &&, in key order.
func conjunction(keys []*Field, eq func(*Field) *jen.Statement) *jen.Statement {
	out := eq(keys[0])
	for _, k := range keys[1:] {
		out = out.Op("&&").Add(eq(k))
	}
	return out
}
