package marshal_test

import (
	"strings"
	"testing"

	"bindgen/internal/csast"
	"bindgen/internal/cstoken"
	"bindgen/internal/marshal"
)

func renderBody(stmts []csast.Stmt) string {
	var ts cstoken.Stream
	csast.BodyTokens(stmts, &ts)
	return ts.RenderString()
}

// sameTokens compares two renderings word by word, ignoring whitespace.
func sameTokens(t *testing.T, got, want string) {
	t.Helper()
	gotFields := strings.Fields(got)
	wantFields := strings.Fields(want)
	if len(gotFields) != len(wantFields) {
		t.Fatalf("token mismatch\ngot:  %v\nwant: %v", gotFields, wantFields)
	}
	for i := range gotFields {
		if gotFields[i] != wantFields[i] {
			t.Fatalf("token %d: got %q want %q\nfull: %v", i, gotFields[i], wantFields[i], gotFields)
		}
	}
}

func TestIdentityFragmentIsEmpty(t *testing.T) {
	frag := marshal.Identity(csast.Named("value"), csast.Type{Kind: csast.TypeInt32})
	if len(frag.Stmts) != 0 {
		t.Fatalf("identity fragment has %d statements", len(frag.Stmts))
	}
	if frag.Unsafe {
		t.Fatal("identity fragment marked unsafe")
	}
	if frag.Issued != 0 {
		t.Fatalf("identity fragment issued %d ids", frag.Issued)
	}
	if frag.DestIdent != frag.SourceIdent {
		t.Fatal("identity fragment renamed its value")
	}
}

func TestBoolToByteFragment(t *testing.T) {
	var alloc csast.IdentAlloc
	frag := marshal.BoolToByte(csast.Named("source"), &alloc)

	sameTokens(t, renderBody(frag.Stmts),
		"Byte _gen0 = source ? ( ( Byte ) 1 ) : ( ( Byte ) 0 ) ;")

	if frag.Unsafe {
		t.Fatal("bool fragment marked unsafe")
	}
	if frag.Issued != 1 {
		t.Fatalf("issued = %d, want 1", frag.Issued)
	}
	if got := frag.DestIdent.Render(); got != "_gen0" {
		t.Fatalf("dest ident = %q, want _gen0", got)
	}
}

func TestArrayToSliceFragment(t *testing.T) {
	var alloc csast.IdentAlloc
	frag := marshal.ArrayToSlice(csast.Named("source"), csast.Type{Kind: csast.TypeInt16}, &alloc)

	sameTokens(t, renderBody(frag.Stmts), `
		SliceAbi _gen0 ;
		_gen0 . Length = ( ( UInt64 ) source . Length ) ;
		fixed ( Int16 * _gen1 = & source [ 0 ] )
		{
			_gen0 . Pointer = ( ( IntPtr ) _gen1 ) ;
		}`)

	if !frag.Unsafe {
		t.Fatal("slice fragment not marked unsafe")
	}
	if frag.Issued != 2 {
		t.Fatalf("issued = %d, want 2", frag.Issued)
	}
}

func TestFragmentShiftMovesGeneratedIdsOnly(t *testing.T) {
	var alloc csast.IdentAlloc
	frag := marshal.ArrayToSlice(csast.Named("source"), csast.Type{Kind: csast.TypeByte}, &alloc)
	frag.Shift(2)

	rendered := renderBody(frag.Stmts)
	if !strings.Contains(rendered, "_gen2") || !strings.Contains(rendered, "_gen3") {
		t.Fatalf("shifted fragment missing _gen2/_gen3: %s", rendered)
	}
	if strings.Contains(rendered, "_gen0") || strings.Contains(rendered, "_gen1") {
		t.Fatalf("shifted fragment still has unshifted ids: %s", rendered)
	}
	if got := frag.DestIdent.Render(); got != "_gen2" {
		t.Fatalf("dest ident = %q, want _gen2", got)
	}
	if got := frag.SourceIdent.Render(); got != "source" {
		t.Fatalf("source ident = %q, want source", got)
	}
}
