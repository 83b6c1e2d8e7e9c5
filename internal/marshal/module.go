package marshal

import (
	"fmt"

	"bindgen/internal/csast"
	"bindgen/internal/descriptor"
	"bindgen/internal/diag"
	"bindgen/internal/names"
)

// FieldDef is one laid-out field of a generated fixed-layout struct.
type FieldDef struct {
	Name   string
	Type   csast.Type
	Offset int
}

// StructDef is a generated fixed-layout value type. Offsets follow flat C
// layout rules and are rendered explicitly, so the managed and native
// sides agree on the layout without trusting either compiler's defaults.
type StructDef struct {
	Name   string
	Size   int
	Pack   int
	Fields []FieldDef
}

// SliceAbiDef is the record type slices cross the boundary as: a platform
// pointer-sized handle followed by a 64-bit length. The layout is fixed
// at 16 bytes so it matches the native side on every supported platform.
func SliceAbiDef() StructDef {
	return StructDef{
		Name: sliceAbiName,
		Size: 16,
		Pack: 8,
		Fields: []FieldDef{
			{Name: slicePointerField, Type: csast.StructType(handleTypeName), Offset: 0},
			{Name: sliceLengthField, Type: csast.Type{Kind: csast.TypeUInt64}, Offset: 8},
		},
	}
}

// LayoutStruct computes the explicit layout of one exported struct.
//
// Only sized integer fields have a computable flat layout; anything else
// would need per-field marshalling inside the struct, which the flat
// model does not cover.
func LayoutStruct(st descriptor.Struct) (StructDef, error) {
	def := StructDef{Name: names.ToPascal(st.Name)}

	offset := 0
	maxAlign := 1
	for _, field := range st.Fields {
		if field.Type.Kind != descriptor.KindInt {
			return StructDef{}, &Error{
				Code:   diag.ClsStructFieldUnsafe,
				Export: st.Name,
				Msg:    fmt.Sprintf("field %q has type %s, which has no fixed native layout", field.Name, field.Type),
			}
		}
		b, err := Classify(field.Type)
		if err != nil {
			return StructDef{}, attribute(err, st.Name)
		}

		size := int(field.Type.Width) / 8
		offset = alignUp(offset, size)
		def.Fields = append(def.Fields, FieldDef{
			Name:   names.ToPascal(field.Name),
			Type:   b.Native,
			Offset: offset,
		})
		offset += size
		if size > maxAlign {
			maxAlign = size
		}
	}

	def.Size = alignUp(offset, maxAlign)
	def.Pack = maxAlign
	return def, nil
}

func alignUp(v, align int) int {
	if rem := v % align; rem != 0 {
		return v + align - rem
	}
	return v
}

// Module is the fully classified shape of one generated compilation unit.
type Module struct {
	// Library is the name DllImport attributes resolve at runtime.
	Library   string
	Namespace string
	ClassName string
	Structs   []StructDef
	Methods   []Method
}

// Assemble classifies a sorted export list into a module. The SliceAbi
// record is always emitted first so slice fragments have a definition to
// refer to even when no struct exports exist.
func Assemble(library, namespace, class string, exports []descriptor.Export) (Module, error) {
	m := Module{
		Library:   library,
		Namespace: namespace,
		ClassName: class,
		Structs:   []StructDef{SliceAbiDef()},
	}

	thunks := make(map[string]string)
	typeNames := map[string]string{sliceAbiName: "slice marshalling record"}
	for _, export := range exports {
		switch export.Kind {
		case descriptor.ExportStruct:
			def, err := LayoutStruct(*export.St)
			if err != nil {
				return Module{}, err
			}
			// Pascal-casing can collapse distinct native names onto one
			// emitted type, and nothing may shadow the slice record.
			if prev, ok := typeNames[def.Name]; ok {
				return Module{}, &Error{
					Code:   diag.ClsNameCollision,
					Export: export.St.Name,
					Msg:    fmt.Sprintf("generated type name %q already claimed by %s", def.Name, prev),
				}
			}
			typeNames[def.Name] = fmt.Sprintf("export `%s`", export.St.Name)
			m.Structs = append(m.Structs, def)

		case descriptor.ExportFunction:
			fn := export.Fn
			if prev, ok := thunks[fn.ThunkName]; ok {
				return Module{}, &Error{
					Code:   diag.IntDuplicateThunk,
					Export: fn.RealName,
					Msg:    fmt.Sprintf("thunk symbol %q already claimed by export `%s`", fn.ThunkName, prev),
				}
			}
			thunks[fn.ThunkName] = fn.RealName

			method, err := NewMethod(*fn)
			if err != nil {
				return Module{}, err
			}
			m.Methods = append(m.Methods, method)
		}
	}

	return m, nil
}
