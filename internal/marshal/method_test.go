package marshal_test

import (
	"testing"

	"bindgen/internal/csast"
	"bindgen/internal/cstoken"
	"bindgen/internal/descriptor"
	"bindgen/internal/diag"
	"bindgen/internal/marshal"
)

func renderMethod(m csast.Method) string {
	var ts cstoken.Stream
	m.Tokens(&ts)
	return ts.RenderString()
}

func TestWrapperForBoolArgument(t *testing.T) {
	method, err := marshal.NewMethod(descriptor.Function{
		RealName:  "f",
		ThunkName: "__bindgen_thunk_f",
		Args:      []descriptor.Argument{{Name: "flag", Type: descriptor.Bool()}},
		Return:    descriptor.Void(),
	})
	if err != nil {
		t.Fatalf("NewMethod: %v", err)
	}
	if method.Unsafe {
		t.Fatal("bool-only method marked unsafe")
	}

	sameTokens(t, renderMethod(method.Wrapper()), `
		public static void F ( bool flag )
		{
			Byte _gen0 = flag ? ( ( Byte ) 1 ) : ( ( Byte ) 0 ) ;
			__bindgen_thunk_f ( _gen0 ) ;
		}`)
}

func TestWrapperPinsSliceForTheCall(t *testing.T) {
	method, err := marshal.NewMethod(descriptor.Function{
		RealName:  "g",
		ThunkName: "__bindgen_thunk_g",
		Args:      []descriptor.Argument{{Name: "data", Type: descriptor.SliceOf(descriptor.Int(16, true))}},
		Return:    descriptor.Void(),
	})
	if err != nil {
		t.Fatalf("NewMethod: %v", err)
	}
	if !method.Unsafe {
		t.Fatal("slice method not marked unsafe")
	}

	// The extern call must stay inside the pinned scope: the record holds
	// a raw pointer that dies with the pin.
	sameTokens(t, renderMethod(method.Wrapper()), `
		public static void G ( Int16 [ ] data )
		{
			unsafe
			{
				SliceAbi _gen0 ;
				_gen0 . Length = ( ( UInt64 ) data . Length ) ;
				fixed ( Int16 * _gen1 = & data [ 0 ] )
				{
					_gen0 . Pointer = ( ( IntPtr ) _gen1 ) ;
					__bindgen_thunk_g ( _gen0 ) ;
				}
			}
		}`)
}

func TestTwoSliceFragmentsStayDisjoint(t *testing.T) {
	method, err := marshal.NewMethod(descriptor.Function{
		RealName:  "pair",
		ThunkName: "__bindgen_thunk_pair",
		Args: []descriptor.Argument{
			{Name: "first", Type: descriptor.SliceOf(descriptor.Int(8, false))},
			{Name: "second", Type: descriptor.SliceOf(descriptor.Int(8, false))},
		},
		Return: descriptor.Void(),
	})
	if err != nil {
		t.Fatalf("NewMethod: %v", err)
	}

	firstIDs := csast.CollectGenerated(method.Fragments[0].Stmts)
	secondIDs := csast.CollectGenerated(method.Fragments[1].Stmts)
	for id := range secondIDs {
		if firstIDs[id] {
			t.Fatalf("generated id %d appears in both fragments", id)
		}
	}
	if len(firstIDs) != 2 || len(secondIDs) != 2 {
		t.Fatalf("fragment id counts = %d, %d; want 2, 2", len(firstIDs), len(secondIDs))
	}
}

func TestExternDecl(t *testing.T) {
	method, err := marshal.NewMethod(descriptor.Function{
		RealName:  "f",
		ThunkName: "__bindgen_thunk_f",
		Args:      []descriptor.Argument{{Name: "flag", Type: descriptor.Bool()}},
		Return:    descriptor.Void(),
	})
	if err != nil {
		t.Fatalf("NewMethod: %v", err)
	}

	sameTokens(t, renderMethod(method.ExternDecl("demo")), `
		[ DllImport ( "demo" , EntryPoint = "__bindgen_thunk_f" ) ]
		private static extern void __bindgen_thunk_f ( Byte flag ) ;`)
}

func TestSimpleReturnIsPassedThrough(t *testing.T) {
	method, err := marshal.NewMethod(descriptor.Function{
		RealName:  "h",
		ThunkName: "__bindgen_thunk_h",
		Return:    descriptor.Int(32, true),
	})
	if err != nil {
		t.Fatalf("NewMethod: %v", err)
	}

	sameTokens(t, renderMethod(method.Wrapper()), `
		public static Int32 H ( )
		{
			return __bindgen_thunk_h ( ) ;
		}`)
}

func TestComplexReturnIsRejected(t *testing.T) {
	_, err := marshal.NewMethod(descriptor.Function{
		RealName:  "bad",
		ThunkName: "__bindgen_thunk_bad",
		Return:    descriptor.SliceOf(descriptor.Int(8, false)),
	})
	merr := wantCode(t, err, diag.ClsComplexReturn)
	if merr.Export != "bad" {
		t.Fatalf("error export = %q, want bad", merr.Export)
	}
}

func TestArgumentErrorNamesTheExport(t *testing.T) {
	_, err := marshal.NewMethod(descriptor.Function{
		RealName:  "odd",
		ThunkName: "__bindgen_thunk_odd",
		Args:      []descriptor.Argument{{Name: "x", Type: descriptor.Int(24, true)}},
		Return:    descriptor.Void(),
	})
	merr := wantCode(t, err, diag.ClsBadIntWidth)
	if merr.Export != "odd" {
		t.Fatalf("error export = %q, want odd", merr.Export)
	}
}

func TestArgumentNamesBecomeCamelCase(t *testing.T) {
	method, err := marshal.NewMethod(descriptor.Function{
		RealName:  "add_two_numbers",
		ThunkName: "__bindgen_thunk_add_two_numbers",
		Args: []descriptor.Argument{
			{Name: "arg_one", Type: descriptor.Int(32, true)},
			{Name: "arg_two", Type: descriptor.Int(32, true)},
		},
		Return: descriptor.Int(32, true),
	})
	if err != nil {
		t.Fatalf("NewMethod: %v", err)
	}

	sameTokens(t, renderMethod(method.Wrapper()), `
		public static Int32 AddTwoNumbers ( Int32 argOne , Int32 argTwo )
		{
			return __bindgen_thunk_add_two_numbers ( argOne , argTwo ) ;
		}`)
}
