package marshal

import "bindgen/internal/csast"

// headerComment marks every generated compilation unit.
const headerComment = "This is a generated file, do not modify by hand."

// Lower turns the module into a complete compilation unit: header
// comment, interop usings, then one namespace holding the fixed-layout
// structs followed by the static class of extern declarations and their
// wrappers.
func (m *Module) Lower() csast.SourceFile {
	elements := []csast.TopLevel{
		csast.CommentElement(headerComment),
		csast.UsingElement("System"),
		csast.UsingElement("System.Runtime.InteropServices"),
	}

	var nested []csast.TopLevel
	for i := range m.Structs {
		nested = append(nested, csast.ObjectElement(m.Structs[i].object()))
	}
	nested = append(nested, csast.ObjectElement(m.classObject()))

	elements = append(elements, csast.NamespaceElement(csast.Namespace{
		Path:     m.Namespace,
		Elements: nested,
	}))

	return csast.SourceFile{Elements: elements}
}

func (d *StructDef) object() csast.Object {
	obj := csast.Object{
		Attrs: []csast.Attribute{{
			Name: csast.Named("StructLayout"),
			Args: []csast.Expr{
				csast.FieldOf(csast.IdentExpr(csast.Named("LayoutKind")), "Explicit"),
				csast.Assign(csast.IdentExpr(csast.Named("Size")), csast.IntLit(d.Size)),
				csast.Assign(csast.IdentExpr(csast.Named("Pack")), csast.IntLit(d.Pack)),
			},
		}},
		Visibility: csast.Public,
		Kind:       csast.StructObject,
		Name:       csast.Named(d.Name),
	}

	for _, field := range d.Fields {
		obj.Fields = append(obj.Fields, csast.ObjectField{
			Attrs: []csast.Attribute{{
				Name: csast.Named("FieldOffset"),
				Args: []csast.Expr{csast.IntLit(field.Offset)},
			}},
			Visibility: csast.Public,
			Type:       field.Type,
			Name:       csast.Named(field.Name),
		})
	}

	return obj
}

func (m *Module) classObject() csast.Object {
	obj := csast.Object{
		Visibility: csast.Public,
		Static:     true,
		Kind:       csast.Class,
		Name:       csast.Named(m.ClassName),
	}

	for i := range m.Methods {
		obj.Methods = append(obj.Methods, m.Methods[i].ExternDecl(m.Library))
		obj.Methods = append(obj.Methods, m.Methods[i].Wrapper())
	}

	return obj
}
