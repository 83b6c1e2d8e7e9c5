package csast_test

import (
	"strings"
	"testing"

	"bindgen/internal/csast"
	"bindgen/internal/cstoken"
)

type tokener interface {
	Tokens(*cstoken.Stream)
}

func renderTokens(t *testing.T, node tokener, want string) {
	t.Helper()
	var ts cstoken.Stream
	node.Tokens(&ts)
	got := strings.Fields(ts.RenderString())
	expected := strings.Fields(want)
	if len(got) != len(expected) {
		t.Fatalf("token mismatch\ngot:  %v\nwant: %v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("token %d: got %q want %q\nfull: %v", i, got[i], expected[i], got)
		}
	}
}

func TestUsingTokens(t *testing.T) {
	u := csast.UsingElement("System.Runtime.InteropServices")
	renderTokens(t, &u, "using System.Runtime.InteropServices ;")
}

func TestNamespaceTokens(t *testing.T) {
	empty := csast.NamespaceElement(csast.Namespace{Path: "Example.Namespace"})
	renderTokens(t, &empty, "namespace Example.Namespace { }")

	nested := csast.NamespaceElement(csast.Namespace{
		Path:     "Example.Namespace",
		Elements: []csast.TopLevel{csast.UsingElement("Other.Namespace")},
	})
	renderTokens(t, &nested, "namespace Example.Namespace { using Other.Namespace ; }")
}

func TestCastTokens(t *testing.T) {
	e := csast.Cast(csast.Type{Kind: csast.TypeInt16}, csast.IdentExpr(csast.Named("source")))
	renderTokens(t, e, "( ( Int16 ) source )")
}

func TestTypeTokens(t *testing.T) {
	cases := []struct {
		ty   csast.Type
		want string
	}{
		{csast.Type{Kind: csast.TypeVoid}, "void"},
		{csast.Type{Kind: csast.TypeSByte}, "SByte"},
		{csast.Type{Kind: csast.TypeBool}, "bool"},
		{csast.ArrayOf(csast.Type{Kind: csast.TypeInt16}), "Int16 [ ]"},
		{csast.PtrTo(csast.Type{Kind: csast.TypeInt16}), "Int16 *"},
		{csast.StructType("SliceAbi"), "SliceAbi"},
	}
	for _, c := range cases {
		renderTokens(t, c.ty, c.want)
	}
}

func TestMethodCallTokens(t *testing.T) {
	this := csast.Named("this")
	withObj := csast.Call(&this, csast.Named("MethodName"),
		csast.IdentExpr(csast.Named("anArg")), csast.IdentExpr(csast.Named("anotherArg")))
	renderTokens(t, withObj, "this . MethodName ( anArg , anotherArg )")

	free := csast.Call(nil, csast.Named("MethodName"), csast.IdentExpr(csast.Named("anArg")))
	renderTokens(t, free, "MethodName ( anArg )")
}

func TestReturnTokens(t *testing.T) {
	expr := csast.IdentExpr(csast.Generated(12))
	s := csast.ReturnStmt(&expr)
	renderTokens(t, &s, "return _gen12 ;")

	bare := csast.ReturnStmt(nil)
	renderTokens(t, &bare, "return ;")
}

func TestAttributeTokens(t *testing.T) {
	noArgs := csast.Attribute{Name: csast.Named("TestAttr")}
	renderTokens(t, &noArgs, "[ TestAttr ]")

	oneArg := csast.Attribute{
		Name: csast.Named("DllImport"),
		Args: []csast.Expr{csast.StringLit("mylib")},
	}
	renderTokens(t, &oneArg, `[ DllImport ( "mylib" ) ]`)

	twoArgs := csast.Attribute{
		Name: csast.Named("TestAttr"),
		Args: []csast.Expr{
			csast.IdentExpr(csast.Named("arg1")),
			csast.IdentExpr(csast.Named("arg2")),
		},
	}
	renderTokens(t, &twoArgs, "[ TestAttr ( arg1 , arg2 ) ]")
}

func TestMethodTokens(t *testing.T) {
	this := csast.Named("this")
	callExpr := csast.Assign(
		csast.Declare(csast.Type{Kind: csast.TypeInt64}, csast.Generated(1)),
		csast.Call(&this, csast.Named("MethodName"),
			csast.IdentExpr(csast.Named("arg1")), csast.IdentExpr(csast.Named("barArg"))),
	)
	ret := csast.IdentExpr(csast.Generated(1))

	m := csast.Method{
		Attrs: []csast.Attribute{{
			Name: csast.Named("TestAttr"),
			Args: []csast.Expr{
				csast.IdentExpr(csast.Named("arg1")),
				csast.IdentExpr(csast.Named("arg2")),
			},
		}},
		Visibility: csast.Public,
		Name:       csast.Named("FooMethod"),
		Return:     csast.Type{Kind: csast.TypeInt64},
		Params: []csast.Param{
			{Name: csast.Named("arg1"), Type: csast.Type{Kind: csast.TypeUInt16}},
			{Name: csast.Named("barArg"), Type: csast.Type{Kind: csast.TypeBool}},
		},
		Body: []csast.Stmt{
			csast.ExprStmt(callExpr),
			csast.ReturnStmt(&ret),
		},
		HasBody: true,
	}

	renderTokens(t, &m, `
		[ TestAttr ( arg1 , arg2 ) ]
		public Int64 FooMethod ( UInt16 arg1 , bool barArg )
		{
			Int64 _gen1 = this . MethodName ( arg1 , barArg ) ;
			return _gen1 ;
		}`)
}

func TestExternMethodEndsWithSemicolon(t *testing.T) {
	m := csast.Method{
		Attrs: []csast.Attribute{{
			Name: csast.Named("DllImport"),
			Args: []csast.Expr{csast.StringLit("sample")},
		}},
		Visibility: csast.Private,
		Static:     true,
		Extern:     true,
		Name:       csast.Named("__bindgen_thunk_f"),
		Return:     csast.Type{Kind: csast.TypeVoid},
	}
	renderTokens(t, &m, `[ DllImport ( "sample" ) ] private static extern void __bindgen_thunk_f ( ) ;`)
}
