// Package csast is the mid-level code-generation representation: a closed
// set of C# construct nodes free of any binding semantics. Every node
// lowers itself to a cstoken stream; adding a construct means adding one
// variant and one lowering case.
package csast

import "bindgen/internal/cstoken"

// TypeKind enumerates C# type name variants.
type TypeKind uint8

const (
	// TypeVar is the `var` pseudotype; it cannot appear in all typename
	// positions.
	TypeVar TypeKind = iota
	TypeVoid
	TypeSByte
	TypeInt16
	TypeInt32
	TypeInt64
	TypeByte
	TypeUInt16
	TypeUInt32
	TypeUInt64
	TypeBool
	// TypeArray is a 1D managed array of Elem.
	TypeArray
	// TypePtr is an unmanaged pointer to Elem.
	TypePtr
	// TypeStruct is a named value type.
	TypeStruct
)

// Type is a kind-tagged C# type name. Elem is set for arrays and pointers,
// Name for named structs.
type Type struct {
	Kind TypeKind
	Elem *Type
	Name string
}

// StructType returns a named struct type.
func StructType(name string) Type { return Type{Kind: TypeStruct, Name: name} }

// ArrayOf returns the 1D array type of t.
func ArrayOf(t Type) Type {
	e := t
	return Type{Kind: TypeArray, Elem: &e}
}

// PtrTo returns the pointer type to t.
func PtrTo(t Type) Type {
	e := t
	return Type{Kind: TypePtr, Elem: &e}
}

// Tokens lowers the type name.
func (t Type) Tokens(ts *cstoken.Stream) {
	switch t.Kind {
	case TypeVar:
		ts.Ident("var")
	case TypeVoid:
		ts.Ident("void")
	case TypeSByte:
		ts.Ident("SByte")
	case TypeInt16:
		ts.Ident("Int16")
	case TypeInt32:
		ts.Ident("Int32")
	case TypeInt64:
		ts.Ident("Int64")
	case TypeByte:
		ts.Ident("Byte")
	case TypeUInt16:
		ts.Ident("UInt16")
	case TypeUInt32:
		ts.Ident("UInt32")
	case TypeUInt64:
		ts.Ident("UInt64")
	case TypeBool:
		ts.Ident("bool")
	case TypeArray:
		t.Elem.Tokens(ts)
		ts.Open(cstoken.DelimBracket, cstoken.Stream{})
	case TypePtr:
		t.Elem.Tokens(ts)
		ts.Push(cstoken.Asterisk)
	case TypeStruct:
		ts.Ident(t.Name)
	}
}

// Equal reports structural equality of two type names.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind || t.Name != other.Name {
		return false
	}
	if t.Elem == nil || other.Elem == nil {
		return t.Elem == other.Elem
	}
	return t.Elem.Equal(*other.Elem)
}
