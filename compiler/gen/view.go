package gen

import (
	"path/filepath"

	"github.com/dave/jennifer/jen"
)

// genView emits the client-view projection: four layered shapes, the
// type-driven default-value table, and the runtime field-descriptor table.
// The tenant key and transfer-ignored fields never reach the client view.
func (g *Generator) genView(e *Entity) *jen.File {
	pkg := g.pkg
	sameDir := true
	if dir := filepath.Dir(e.ViewPath()); dir != "." {
		pkg = filepath.Base(dir)
		sameDir = false
	}
	f := g.newFile(pkg)

	fields := e.ViewFields()
	group := func(want ViewGroup) []ViewField {
		var out []ViewField
		for _, vf := range fields {
			if vf.Group == want {
				out = append(out, vf)
			}
		}
		return out
	}

	updatableName := e.Name + "UpdatableFields"
	insertName := e.Name + "InsertFields"
	assocName := e.Name + "Associations"
	viewName := e.Name + "View"

	f.Commentf("%s is the innermost view shape: fields a client may change.", updatableName)
	f.Type().Id(updatableName).StructFunc(func(s *jen.Group) {
		for _, vf := range group(ViewUpdatable) {
			s.Id(vf.Field.StructField()).Add(g.goType(vf.Field)).Tag(map[string]string{
				"json": jsonName(vf.Field.Name),
			})
		}
	})

	f.Commentf("%s extends the updatable shape with the insert-only fields.", insertName)
	f.Type().Id(insertName).StructFunc(func(s *jen.Group) {
		s.Id(updatableName)
		for _, vf := range group(ViewInsertable) {
			s.Id(vf.Field.StructField()).Add(g.goType(vf.Field)).Tag(map[string]string{
				"json": jsonName(vf.Field.Name),
			})
		}
	})

	f.Commentf("%s carries the navigation values of the entity.", assocName)
	f.Type().Id(assocName).StructFunc(func(s *jen.Group) {
		for _, vf := range group(ViewAssociation) {
			typ := jen.Any()
			if sameDir {
				typ = jen.Op("*").Id(vf.Edge.Type)
			}
			s.Id(vf.Edge.StructField()).Add(typ).Tag(map[string]string{
				"json": jsonName(vf.Edge.Name) + ",omitempty",
			})
		}
	})

	f.Commentf("%s is the combined entity shape seen by clients.", viewName)
	f.Type().Id(viewName).StructFunc(func(s *jen.Group) {
		s.Id(insertName)
		s.Id(assocName)
		for _, vf := range group(ViewGeneratedKey) {
			s.Id(vf.Field.StructField()).Add(g.goType(vf.Field)).Tag(map[string]string{
				"json": jsonName(vf.Field.Name),
			})
		}
		for _, vf := range group(ViewReadOnly) {
			s.Id(vf.Field.StructField()).Add(g.goType(vf.Field)).Tag(map[string]string{
				"json": jsonName(vf.Field.Name),
			})
		}
	})

	f.Commentf("%sDefaults maps each view field to its insertion default.", e.Name)
	f.Var().Id(e.Name + "Defaults").Op("=").Map(jen.String()).Any().Values(jen.DictFunc(func(d jen.Dict) {
		for _, vf := range fields {
			if vf.Edge != nil {
				d[jen.Lit(jsonName(vf.Edge.Name))] = jen.Nil()
				continue
			}
			d[jen.Lit(jsonName(vf.Field.Name))] = g.viewDefault(vf.Field)
		}
	}))

	fdType := jen.Id("FieldDescriptor")
	if !sameDir && g.graph.Package != "" {
		fdType = jen.Qual(g.graph.Package, "FieldDescriptor")
	}

	f.Commentf("%sFieldTable records the runtime descriptor of every view field.", e.Name)
	f.Var().Id(e.Name + "FieldTable").Op("=").Index().Add(fdType).ValuesFunc(func(v *jen.Group) {
		for _, vf := range fields {
			if vf.Edge != nil {
				v.Values(jen.Dict{
					jen.Id("Name"):        jen.Lit(vf.Edge.Name),
					jen.Id("Type"):        jen.Lit(vf.Edge.Type),
					jen.Id("KeyOrder"):    jen.Lit(-1),
					jen.Id("Nullable"):    jen.Lit(vf.Edge.Nullable()),
					jen.Id("Updatable"):   jen.Lit(vf.Edge.Updatable()),
					jen.Id("Insertable"):  jen.Lit(vf.Edge.Matched()),
					jen.Id("Association"): jen.Lit(edgeLink(vf.Edge)),
				})
				continue
			}
			fd := vf.Field
			v.Values(jen.Dict{
				jen.Id("Name"):        jen.Lit(fd.Name),
				jen.Id("Type"):        jen.Lit(fd.Kind().String()),
				jen.Id("KeyOrder"):    jen.Lit(fd.KeyOrder()),
				jen.Id("Generated"):   jen.Lit(fd.Generated()),
				jen.Id("Nullable"):    jen.Lit(fd.Nullable()),
				jen.Id("Updatable"):   jen.Lit(fd.Updatable()),
				jen.Id("Insertable"):  jen.Lit(fd.Insertable()),
				jen.Id("Association"): jen.Lit(fieldLink(fd)),
			})
		}
	})

	return f
}

// viewDefault returns the default-table value of a field. Foreign-key
// placeholders default to a zero-valued key, nullable fields to nil, and
// everything else to its type-driven zero.
func (g *Generator) viewDefault(f *Field) jen.Code {
	if f.edge != nil {
		return g.baseZero(f)
	}
	return g.zeroValue(f)
}

// baseZero returns the zero of a field's base type, ignoring nullability.
func (g *Generator) baseZero(f *Field) jen.Code {
	if !f.Nullable() {
		return g.zeroValue(f)
	}
	shadow := *f.def
	shadow.Nullable = false
	return g.zeroValue(&Field{cfg: f.cfg, def: &shadow, Name: f.Name})
}

func edgeLink(ed *Edge) string {
	if ed.Key == nil {
		return ""
	}
	return ed.Key.Name
}

func fieldLink(f *Field) string {
	if f.edge == nil {
		return ""
	}
	return f.edge.Name
}
