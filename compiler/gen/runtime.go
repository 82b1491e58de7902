package gen

import "github.com/dave/jennifer/jen"

// genRuntime emits the file shared by all entities of the output package:
// the update contract interface and the runtime field-descriptor type the
// client views populate.
func (g *Generator) genRuntime() *jen.File {
	f := g.newFile(g.pkg)
	c := g.graph.Config

	f.Commentf("%s is implemented by every generated entity: %s returns the", c.UpdateInterface, c.CloneMethod)
	f.Comment("copy-on-write mutation contract over the receiving instance.")
	f.Type().Id(c.UpdateInterface).Types(jen.Id("U").Any()).Interface(
		jen.Id(c.CloneMethod).Params().Id("U"),
	)

	f.Comment("FieldDescriptor records the runtime shape of one view field.")
	f.Type().Id("FieldDescriptor").Struct(
		jen.Id("Name").String(),
		jen.Comment("Type is the declared type tag, e.g. \"int64\" or \"uuid\"."),
		jen.Id("Type").String(),
		jen.Comment("KeyOrder is the primary-key ordinal, or -1."),
		jen.Id("KeyOrder").Int(),
		jen.Id("Generated").Bool(),
		jen.Id("Nullable").Bool(),
		jen.Id("Updatable").Bool(),
		jen.Id("Insertable").Bool(),
		jen.Comment("Association links a key field to its navigation field and back."),
		jen.Id("Association").String(),
	)

	return f
}
