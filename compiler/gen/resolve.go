package gen

import (
	"github.com/dave/jennifer/jen"
)

// genResolve emits the association machinery ({label}_resolve.go): the
// lookup capability record, the insert-time resolution procedure, and the
// update-time copy-changes procedure.
func (g *Generator) genResolve(e *Entity) *jen.File {
	f := g.newFile(g.pkg)

	resolvable := e.ResolvableEdges()
	lookupsName := e.Name + "Lookups"

	f.Commentf("%s supplies the lookup capability per resolvable association.", lookupsName)
	f.Type().Id(lookupsName).StructFunc(func(group *jen.Group) {
		for _, ed := range resolvable {
			group.Id(ed.StructField()).Qual(runtimePkg, "Lookup").Types(
				g.baseType(ed.Key.Kind()),
				jen.Id(ed.Type),
			)
		}
	})

	f.Commentf("Resolve%sAssociations fetches each related entity by its stored key", e.Name)
	f.Comment("and assigns it to the navigation field. A nil key assigns nil without a")
	f.Comment("lookup. Pairs resolve concurrently; any lookup failure fails the whole")
	f.Comment("procedure.")
	f.Func().Id("Resolve"+e.Name+"Associations").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id(e.Receiver()).Op("*").Id(e.Name),
		jen.Id("lk").Id(lookupsName),
	).Error().Block(
		jen.Return(jen.Qual(trackPkg, "ResolveAll").CallFunc(func(c *jen.Group) {
			c.Id("ctx")
			for _, ed := range resolvable {
				c.Qual(trackPkg, "ResolveStep").Call(
					jen.Id(e.Receiver()),
					jen.Lit(ed.Name),
					jen.Id(e.Receiver()).Dot(ed.Key.StructField()),
					jen.Id("lk").Dot(ed.StructField()),
					jen.Func().Params(
						jen.Id(e.Receiver()).Op("*").Id(e.Name),
						jen.Id("v").Add(g.navType(ed)),
					).Block(
						jen.Id(e.Receiver()).Dot(ed.StructField()).Op("=").Id("v"),
					),
				)
			}
		})),
	)

	f.Commentf("Copy%sChanges applies every updatable value of src onto the contract,", e.Name)
	f.Comment("then reattaches src's resolved associations. Before each association is")
	f.Comment("applied, the stored key is checked against the supplied instance's key;")
	f.Comment("a disagreement, including a nil stored key, aborts the operation at")
	f.Comment("that point.")
	f.Func().Id("Copy"+e.Name+"Changes").Params(
		jen.Id("src").Op("*").Id(e.Name),
		jen.Id("u").Op("*").Id(e.Name+"Update"),
	).Error().BlockFunc(func(b *jen.Group) {
		for _, s := range e.Setters() {
			if s.Edge != nil {
				continue
			}
			b.Id("u").Dot(s.MethodName()).Call(jen.Id("src").Dot(s.Field.StructField()))
		}
		for _, ed := range resolvable {
			if !ed.Updatable() {
				// No tracked setter to apply through.
				continue
			}
			setter := Setter{Field: ed.Key, Edge: ed, Exposure: ed.Key.Exposure}
			b.If(
				jen.Id("src").Dot(ed.StructField()).Op("!=").Nil(),
			).Block(
				jen.If(
					jen.Id("err").Op(":=").Qual(trackPkg, "VerifyKeyRef").Call(
						jen.Lit(e.Name),
						jen.Lit(ed.Key.Name),
						jen.Id("src").Dot(ed.Key.StructField()),
						jen.Id("src").Dot(ed.StructField()).Dot(g.graph.relatedKeyName(ed)),
					),
					jen.Id("err").Op("!=").Nil(),
				).Block(
					jen.Return(jen.Id("err")),
				),
			)
			b.Id("u").Dot(setter.MethodName()).Call(jen.Id("src").Dot(ed.StructField()))
		}
		b.Return(jen.Nil())
	})

	return f
}
