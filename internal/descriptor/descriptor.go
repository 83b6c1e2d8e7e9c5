// Package descriptor defines the export metadata model read out of an
// instrumented native binary: the FFI-relevant type grammar plus function
// and struct export descriptors. Descriptors are produced once per binary
// and are immutable afterwards.
package descriptor

import (
	"fmt"
	"strings"
)

// TypeKind enumerates the FFI-relevant type grammar.
type TypeKind uint8

const (
	// KindVoid is the unit/no-value type (return position only).
	KindVoid TypeKind = iota
	// KindInt is a sized integer, signed or unsigned.
	KindInt
	// KindBool is a boolean with an unspecified native representation.
	KindBool
	// KindSlice is a pointer+length view over elements of one type.
	KindSlice
	// KindStruct is a reference to a named exported struct.
	KindStruct
)

// Type is a kind-tagged FFI type descriptor.
//
// Only the fields for the active Kind are meaningful. Slice elements are
// owned by the parent: the type grammar is strictly tree-shaped.
type Type struct {
	Kind TypeKind

	// KindInt
	Width  uint8
	Signed bool

	// KindSlice
	Elem *Type

	// KindStruct
	Name string
}

// Void returns the void type.
func Void() Type { return Type{Kind: KindVoid} }

// Int returns a sized integer type. Width is not validated here; the
// binding classifier rejects widths outside {8, 16, 32, 64}.
func Int(width uint8, signed bool) Type {
	return Type{Kind: KindInt, Width: width, Signed: signed}
}

// Bool returns the boolean type.
func Bool() Type { return Type{Kind: KindBool} }

// SliceOf returns a slice type over elem.
func SliceOf(elem Type) Type {
	e := elem
	return Type{Kind: KindSlice, Elem: &e}
}

// StructRef returns a reference to a named struct.
func StructRef(name string) Type { return Type{Kind: KindStruct, Name: name} }

// Equal reports structural equality of two types.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindInt:
		return t.Width == other.Width && t.Signed == other.Signed
	case KindSlice:
		if t.Elem == nil || other.Elem == nil {
			return t.Elem == other.Elem
		}
		return t.Elem.Equal(*other.Elem)
	case KindStruct:
		return t.Name == other.Name
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindInt:
		prefix := "u"
		if t.Signed {
			prefix = "i"
		}
		return fmt.Sprintf("%s%d", prefix, t.Width)
	case KindBool:
		return "bool"
	case KindSlice:
		if t.Elem == nil {
			return "[?]"
		}
		return "[" + t.Elem.String() + "]"
	case KindStruct:
		return t.Name
	}
	return "invalid"
}

// Argument is one named function argument.
type Argument struct {
	Name string
	Type Type
}

// Function describes one exported function.
//
// ThunkName is the linkable symbol of the generated native shim and is
// unique within a binary. RealName is the source-level name and need not be.
type Function struct {
	RealName  string
	ThunkName string
	Args      []Argument
	Return    Type
}

// Field is one named struct field.
type Field struct {
	Name string
	Type Type
}

// Struct describes one exported struct as an ordered flat field list.
type Struct struct {
	Name   string
	Fields []Field
}

// ExportKind discriminates export descriptor variants.
type ExportKind uint8

const (
	// ExportFunction marks a function export.
	ExportFunction ExportKind = iota
	// ExportStruct marks a struct export.
	ExportStruct
)

// Export is a kind-tagged export descriptor.
type Export struct {
	Kind ExportKind

	Fn *Function
	St *Struct
}

// FunctionExport wraps a function descriptor.
func FunctionExport(fn Function) Export {
	f := fn
	return Export{Kind: ExportFunction, Fn: &f}
}

// StructExport wraps a struct descriptor.
func StructExport(st Struct) Export {
	s := st
	return Export{Kind: ExportStruct, St: &s}
}

// DisplayName returns the name used for sorting and diagnostics:
// the real name for functions, the struct name for structs.
func (e Export) DisplayName() string {
	switch e.Kind {
	case ExportFunction:
		if e.Fn != nil {
			return e.Fn.RealName
		}
	case ExportStruct:
		if e.St != nil {
			return e.St.Name
		}
	}
	return ""
}

func (e Export) String() string {
	switch e.Kind {
	case ExportFunction:
		if e.Fn == nil {
			return "fn <nil>"
		}
		parts := make([]string, 0, len(e.Fn.Args))
		for _, a := range e.Fn.Args {
			parts = append(parts, a.Name+": "+a.Type.String())
		}
		return fmt.Sprintf("fn %s(%s) -> %s", e.Fn.RealName, strings.Join(parts, ", "), e.Fn.Return)
	case ExportStruct:
		if e.St == nil {
			return "struct <nil>"
		}
		return fmt.Sprintf("struct %s (%d fields)", e.St.Name, len(e.St.Fields))
	}
	return "invalid export"
}

// Equal reports deep equality of two exports.
func (e Export) Equal(other Export) bool {
	if e.Kind != other.Kind {
		return false
	}
	switch e.Kind {
	case ExportFunction:
		return functionsEqual(e.Fn, other.Fn)
	case ExportStruct:
		return structsEqual(e.St, other.St)
	}
	return false
}

func functionsEqual(a, b *Function) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.RealName != b.RealName || a.ThunkName != b.ThunkName || !a.Return.Equal(b.Return) {
		return false
	}
	if len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i].Name != b.Args[i].Name || !a.Args[i].Type.Equal(b.Args[i].Type) {
			return false
		}
	}
	return true
}

func structsEqual(a, b *Struct) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name || !a.Fields[i].Type.Equal(b.Fields[i].Type) {
			return false
		}
	}
	return true
}
