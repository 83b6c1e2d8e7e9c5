package marshal

import (
	"fmt"

	"bindgen/internal/csast"
	"bindgen/internal/descriptor"
	"bindgen/internal/diag"
	"bindgen/internal/names"
)

// Method is one classified function export, ready to lower into an extern
// declaration plus its idiomatic wrapper. Fragments run parallel to
// Fn.Args and have already been shifted onto one shared id space.
type Method struct {
	Fn        descriptor.Function
	Name      string
	Return    Binding
	Fragments []Fragment
	Unsafe    bool
}

// NewMethod classifies every argument and the return type of fn and
// synthesizes the conversion fragments for its wrapper body.
//
// Each fragment is synthesized against a fresh allocator and then shifted
// by the running total of ids issued by the fragments before it, so the
// concatenated body never reuses a generated id.
func NewMethod(fn descriptor.Function) (Method, error) {
	ret, err := Classify(fn.Return)
	if err != nil {
		return Method{}, attribute(err, fn.RealName)
	}
	if !ret.Simple() {
		return Method{}, &Error{
			Code:   diag.ClsComplexReturn,
			Export: fn.RealName,
			Msg:    fmt.Sprintf("return type %s needs marshalling, which is not supported", fn.Return),
		}
	}

	m := Method{
		Fn:     fn,
		Name:   names.ToPascal(fn.RealName),
		Return: ret,
	}

	offset := 0
	for _, arg := range fn.Args {
		b, err := Classify(arg.Type)
		if err != nil {
			return Method{}, attribute(err, fn.RealName)
		}

		var alloc csast.IdentAlloc
		frag := Synthesize(csast.Named(names.ToCamel(arg.Name)), b, &alloc)
		if max := csast.MaxGenerated(frag.Stmts); max >= frag.Issued {
			return Method{}, &Error{
				Code:   diag.IntIdentOverflow,
				Export: fn.RealName,
				Msg:    fmt.Sprintf("fragment for argument %q references generated id %d beyond its allocator", arg.Name, max),
			}
		}

		frag.Shift(offset)
		offset += frag.Issued

		m.Fragments = append(m.Fragments, frag)
		m.Unsafe = m.Unsafe || frag.Unsafe
	}

	return m, nil
}

// ExternDecl lowers the externally-linked declaration backing the method.
// The declaration carries the thunk's linkable name and a DllImport
// attribute naming the backing library.
func (m *Method) ExternDecl(library string) csast.Method {
	params := make([]csast.Param, len(m.Fragments))
	for i, frag := range m.Fragments {
		params[i] = csast.Param{
			Name: csast.Named(m.Fn.Args[i].Name),
			Type: frag.DestType,
		}
	}

	return csast.Method{
		Attrs: []csast.Attribute{{
			Name: csast.Named("DllImport"),
			Args: []csast.Expr{
				csast.StringLit(library),
				csast.Assign(csast.IdentExpr(csast.Named("EntryPoint")), csast.StringLit(m.Fn.ThunkName)),
			},
		}},
		Visibility: csast.Private,
		Static:     true,
		Extern:     true,
		Name:       csast.Named(m.Fn.ThunkName),
		Return:     m.Return.Native,
		Params:     params,
	}
}

// Wrapper lowers the public method that converts its arguments and calls
// the extern declaration. When any fragment needs an unsafe scope, the
// body opens a single shared one ahead of all fragments.
func (m *Method) Wrapper() csast.Method {
	params := make([]csast.Param, len(m.Fragments))
	for i, frag := range m.Fragments {
		params[i] = csast.Param{Name: frag.SourceIdent, Type: frag.SourceType}
	}

	var body []csast.Stmt
	if m.Unsafe {
		body = append(body, csast.UnsafeStmt())
	}
	for _, frag := range m.Fragments {
		body = append(body, frag.Stmts...)
	}

	args := make([]csast.Expr, len(m.Fragments))
	for i, frag := range m.Fragments {
		args[i] = csast.IdentExpr(frag.DestIdent)
	}
	call := csast.Call(nil, csast.Named(m.Fn.ThunkName), args...)
	if m.Return.Native.Kind == csast.TypeVoid {
		body = append(body, csast.ExprStmt(call))
	} else {
		body = append(body, csast.ReturnStmt(&call))
	}

	return csast.Method{
		Visibility: csast.Public,
		Static:     true,
		Name:       csast.Named(m.Name),
		Return:     m.Return.Idiomatic,
		Params:     params,
		Body:       body,
		HasBody:    true,
	}
}
