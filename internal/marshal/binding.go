// Package marshal maps export descriptors onto generated C# constructs.
// Each type descriptor is classified as Simple (one representation on both
// sides of the FFI boundary) or Complex (distinct native and idiomatic
// representations bridged by a conversion fragment); classified exports
// are then assembled into methods, struct definitions and finally one
// compilation unit.
package marshal

import (
	"fmt"

	"bindgen/internal/csast"
	"bindgen/internal/descriptor"
	"bindgen/internal/diag"
	"bindgen/internal/names"
)

// Generated type and field names shared across the package.
const (
	sliceAbiName      = "SliceAbi"
	slicePointerField = "Pointer"
	sliceLengthField  = "Length"
	handleTypeName    = "IntPtr"
)

// Error is a classification or assembly failure with a stable diagnostic
// code. Export is filled in by the first caller that knows which export
// was being processed.
type Error struct {
	Code   diag.Code
	Export string
	Msg    string
}

func (e *Error) Error() string {
	if e.Export == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("%s: %s (export `%s`)", e.Code, e.Msg, e.Export)
}

// Diagnostic converts the error into a reportable diagnostic.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     e.Code,
		Message:  e.Msg,
		Export:   e.Export,
	}
}

// attribute tags err with the export name when it is a bare *Error.
func attribute(err error, export string) error {
	if e, ok := err.(*Error); ok && e.Export == "" {
		e.Export = export
	}
	return err
}

// Binding pairs a type descriptor with its two generated representations.
// Native is the type crossing the boundary in the extern declaration,
// Idiomatic the type exposed by the wrapper; they are equal exactly when
// the binding is Simple.
type Binding struct {
	Desc      descriptor.Type
	Native    csast.Type
	Idiomatic csast.Type
}

// Simple reports whether the type needs no conversion fragment.
func (b Binding) Simple() bool { return b.Native.Equal(b.Idiomatic) }

// Classify maps a type descriptor to its binding strategy.
//
// Sized integers and opaque struct references are Simple. Bool crosses
// the boundary as a byte and slices as a SliceAbi record over a pinned
// pointer; both are Complex. A slice element must itself be Simple and
// addressable, since the record's pointer field aliases the element
// storage directly.
func Classify(t descriptor.Type) (Binding, error) {
	switch t.Kind {
	case descriptor.KindVoid:
		void := csast.Type{Kind: csast.TypeVoid}
		return Binding{Desc: t, Native: void, Idiomatic: void}, nil

	case descriptor.KindInt:
		cs, ok := intType(t.Width, t.Signed)
		if !ok {
			return Binding{}, &Error{
				Code: diag.ClsBadIntWidth,
				Msg:  fmt.Sprintf("no C# integer type of width %d", t.Width),
			}
		}
		return Binding{Desc: t, Native: cs, Idiomatic: cs}, nil

	case descriptor.KindBool:
		return Binding{
			Desc:      t,
			Native:    csast.Type{Kind: csast.TypeByte},
			Idiomatic: csast.Type{Kind: csast.TypeBool},
		}, nil

	case descriptor.KindSlice:
		// A decoded payload can carry a slice record with no element.
		if t.Elem == nil {
			return Binding{}, &Error{
				Code: diag.ClsSliceOfComplex,
				Msg:  "slice descriptor has no element type",
			}
		}
		elem, err := Classify(*t.Elem)
		if err != nil {
			return Binding{}, err
		}
		if !elem.Simple() || elem.Desc.Kind == descriptor.KindVoid {
			return Binding{}, &Error{
				Code: diag.ClsSliceOfComplex,
				Msg:  fmt.Sprintf("slice element %s has no stable native layout", *t.Elem),
			}
		}
		return Binding{
			Desc:      t,
			Native:    csast.StructType(sliceAbiName),
			Idiomatic: csast.ArrayOf(elem.Native),
		}, nil

	case descriptor.KindStruct:
		cs := csast.StructType(names.ToPascal(t.Name))
		return Binding{Desc: t, Native: cs, Idiomatic: cs}, nil
	}

	return Binding{}, &Error{
		Code: diag.ClsInfo,
		Msg:  fmt.Sprintf("unknown type descriptor kind %d", t.Kind),
	}
}

func intType(width uint8, signed bool) (csast.Type, bool) {
	var kind csast.TypeKind
	switch {
	case width == 8 && signed:
		kind = csast.TypeSByte
	case width == 16 && signed:
		kind = csast.TypeInt16
	case width == 32 && signed:
		kind = csast.TypeInt32
	case width == 64 && signed:
		kind = csast.TypeInt64
	case width == 8:
		kind = csast.TypeByte
	case width == 16:
		kind = csast.TypeUInt16
	case width == 32:
		kind = csast.TypeUInt32
	case width == 64:
		kind = csast.TypeUInt64
	default:
		return csast.Type{}, false
	}
	return csast.Type{Kind: kind}, true
}
