package gen

import (
	"github.com/dave/jennifer/jen"
)

// genEntity emits the entity struct and its field accessor records
// ({label}.go). Accessor records are the per-field capability pairs the
// change-tracking runtime mutates through; generated code owns them, the
// runtime never reflects over the struct.
func (g *Generator) genEntity(e *Entity) *jen.File {
	f := g.newFile(g.pkg)

	f.Commentf("%s is the generated entity model.", e.Name)
	f.Type().Id(e.Name).StructFunc(func(group *jen.Group) {
		for _, field := range e.Fields {
			group.Id(field.StructField()).Add(g.goType(field)).Tag(map[string]string{
				"json": jsonName(field.Name) + ",omitempty",
			})
		}
		for _, ed := range e.Edges {
			group.Id(ed.StructField()).Add(g.navType(ed)).Tag(map[string]string{
				"json": jsonName(ed.Name) + ",omitempty",
			})
		}
	})

	f.Commentf("%s is a collection of %s entities.", plural(e.Name), e.Name)
	f.Type().Id(plural(e.Name)).Index().Op("*").Id(e.Name)

	// Accessor records for every tracked setter.
	for _, s := range e.Setters() {
		field := s.Field
		f.Commentf("%s exposes %s.%s to the change tracker.", g.accessorName(e, field), e.Name, field.StructField())
		f.Var().Id(g.accessorName(e, field)).Op("=").Qual(trackPkg, "Accessor").
			Types(jen.Id(e.Name), g.goType(field)).
			Values(jen.Dict{
				jen.Id("Get"): jen.Func().Params(jen.Id(e.Receiver()).Op("*").Id(e.Name)).Add(g.goType(field)).Block(
					jen.Return(jen.Id(e.Receiver()).Dot(field.StructField())),
				),
				jen.Id("Set"): jen.Func().Params(
					jen.Id(e.Receiver()).Op("*").Id(e.Name),
					jen.Id("v").Add(g.goType(field)),
				).Block(
					jen.Id(e.Receiver()).Dot(field.StructField()).Op("=").Id("v"),
				),
			})
		if s.Edge == nil {
			continue
		}
		ed := s.Edge
		f.Commentf("%s exposes the %s navigation value to the change tracker.", g.edgeAccessorName(e, ed), ed.Name)
		f.Var().Id(g.edgeAccessorName(e, ed)).Op("=").Qual(trackPkg, "Accessor").
			Types(jen.Id(e.Name), g.navType(ed)).
			Values(jen.Dict{
				jen.Id("Get"): jen.Func().Params(jen.Id(e.Receiver()).Op("*").Id(e.Name)).Add(g.navType(ed)).Block(
					jen.Return(jen.Id(e.Receiver()).Dot(ed.StructField())),
				),
				jen.Id("Set"): jen.Func().Params(
					jen.Id(e.Receiver()).Op("*").Id(e.Name),
					jen.Id("v").Add(g.navType(ed)),
				).Block(
					jen.Id(e.Receiver()).Dot(ed.StructField()).Op("=").Id("v"),
				),
			})
	}

	return f
}

// accessorName returns the package-level accessor variable for a field.
func (g *Generator) accessorName(e *Entity, f *Field) string {
	return camel(e.Name) + f.StructField()
}

// edgeAccessorName returns the accessor variable for a navigation value.
func (g *Generator) edgeAccessorName(e *Entity, ed *Edge) string {
	return camel(e.Name) + ed.StructField()
}
