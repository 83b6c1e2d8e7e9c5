package marshal

import (
	"bindgen/internal/csast"
	"bindgen/internal/descriptor"
)

// Fragment is the statement sequence converting one idiomatic value into
// its native representation. SourceIdent names the wrapper argument and
// DestIdent the value handed to the extern declaration; for Identity the
// two coincide. Issued counts the generated idents the fragment used so
// the assembler can shift later fragments past them.
type Fragment struct {
	SourceIdent csast.Ident
	SourceType  csast.Type
	DestIdent   csast.Ident
	DestType    csast.Type
	Stmts       []csast.Stmt
	Unsafe      bool
	Issued      int
}

// Shift moves every generated identifier in the fragment by delta.
func (f *Fragment) Shift(delta int) {
	if delta == 0 {
		return
	}
	csast.OffsetGenerated(f.Stmts, delta)
	f.SourceIdent = f.SourceIdent.Shifted(delta)
	f.DestIdent = f.DestIdent.Shifted(delta)
}

// Identity is the no-op fragment for Simple bindings: the argument is
// passed through unchanged.
func Identity(src csast.Ident, ty csast.Type) Fragment {
	return Fragment{SourceIdent: src, SourceType: ty, DestIdent: src, DestType: ty}
}

// BoolToByte converts a bool to the byte crossing the boundary:
//
//	Byte _gen0 = src ? (Byte)1 : (Byte)0;
func BoolToByte(src csast.Ident, alloc *csast.IdentAlloc) Fragment {
	byteTy := csast.Type{Kind: csast.TypeByte}
	dest := alloc.Next()

	stmt := csast.ExprStmt(csast.Assign(
		csast.Declare(byteTy, dest),
		csast.Ternary(
			csast.IdentExpr(src),
			csast.Cast(byteTy, csast.IntLit(1)),
			csast.Cast(byteTy, csast.IntLit(0)),
		),
	))

	return Fragment{
		SourceIdent: src,
		SourceType:  csast.Type{Kind: csast.TypeBool},
		DestIdent:   dest,
		DestType:    byteTy,
		Stmts:       []csast.Stmt{stmt},
		Issued:      alloc.Issued(),
	}
}

// ArrayToSlice converts a managed array into the SliceAbi record passed
// across the boundary:
//
//	SliceAbi _gen0;
//	_gen0.Length = (UInt64)(src.Length);
//	fixed (T* _gen1 = &src[0]) {
//		_gen0.Pointer = (IntPtr)_gen1;
//	}
//
// The runtime may move the array, so its address is only valid under the
// fixed pin; the pointer store is tail-scoped inside the pinned block and
// every later statement of the same body ends up inside it as well.
func ArrayToSlice(src csast.Ident, elem csast.Type, alloc *csast.IdentAlloc) Fragment {
	abiTy := csast.StructType(sliceAbiName)
	dest := alloc.Next()
	pin := alloc.Next()

	stmts := []csast.Stmt{
		csast.DeclStmt(abiTy, dest),
		csast.ExprStmt(csast.Assign(
			csast.FieldOf(csast.IdentExpr(dest), sliceLengthField),
			csast.Cast(csast.Type{Kind: csast.TypeUInt64}, csast.FieldOf(csast.IdentExpr(src), "Length")),
		)),
		csast.FixedStmt(
			csast.Declare(csast.PtrTo(elem), pin),
			csast.AddrOf(csast.IndexOf(csast.IdentExpr(src), csast.IntLit(0))),
		),
		csast.ExprStmt(csast.Assign(
			csast.FieldOf(csast.IdentExpr(dest), slicePointerField),
			csast.Cast(csast.StructType(handleTypeName), csast.IdentExpr(pin)),
		)),
	}

	return Fragment{
		SourceIdent: src,
		SourceType:  csast.ArrayOf(elem),
		DestIdent:   dest,
		DestType:    abiTy,
		Stmts:       stmts,
		Unsafe:      true,
		Issued:      alloc.Issued(),
	}
}

// Synthesize builds the conversion fragment for one classified argument.
// The allocator must be fresh for the fragment; concatenation into a
// method body shifts the issued ids afterwards.
func Synthesize(src csast.Ident, b Binding, alloc *csast.IdentAlloc) Fragment {
	if b.Simple() {
		return Identity(src, b.Native)
	}
	switch b.Desc.Kind {
	case descriptor.KindBool:
		return BoolToByte(src, alloc)
	case descriptor.KindSlice:
		return ArrayToSlice(src, *b.Idiomatic.Elem, alloc)
	}
	return Identity(src, b.Native)
}
