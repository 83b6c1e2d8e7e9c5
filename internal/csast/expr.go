package csast

import (
	"strconv"

	"bindgen/internal/cstoken"
)

// ExprKind discriminates expression variants.
type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprDeclare
	ExprCast
	ExprField
	ExprIndex
	ExprAddrOf
	ExprAssign
	ExprTernary
	ExprCall
)

// LitKind discriminates literal variants.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitString
)

// Literal is an integer or string literal.
type Literal struct {
	Kind LitKind
	Int  int
	Str  string
}

// DeclareExpr is `$type $ident`, usable on the left of an assignment or as
// a statement of its own.
type DeclareExpr struct {
	Type  Type
	Ident Ident
}

// CastExpr is `( ( $type ) $source )`.
type CastExpr struct {
	Type   Type
	Source Expr
}

// FieldExpr is `$root . $name`.
type FieldExpr struct {
	Root Expr
	Name Ident
}

// IndexExpr is `$target [ $index ]`.
type IndexExpr struct {
	Target Expr
	Index  Expr
}

// AddrOfExpr is `& $target`.
type AddrOfExpr struct {
	Target Expr
}

// AssignExpr is `$lhs = $rhs`.
type AssignExpr struct {
	LHS Expr
	RHS Expr
}

// TernaryExpr is `$cond ? $then : $else`.
type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

// CallExpr is `$object . $method ( $args,* )`; Object may be absent.
type CallExpr struct {
	Object *Ident
	Method Ident
	Args   []Expr
}

// Expr is a kind-tagged expression node. Ownership is strictly tree-shaped:
// child expressions are owned by their parent payload.
type Expr struct {
	Kind ExprKind

	Ident   Ident
	Lit     Literal
	Declare *DeclareExpr
	Cast    *CastExpr
	Field   *FieldExpr
	Index   *IndexExpr
	AddrOf  *AddrOfExpr
	Assign  *AssignExpr
	Ternary *TernaryExpr
	Call    *CallExpr
}

// IdentExpr wraps an identifier as an expression.
func IdentExpr(id Ident) Expr { return Expr{Kind: ExprIdent, Ident: id} }

// IntLit returns an integer literal expression.
func IntLit(v int) Expr { return Expr{Kind: ExprLit, Lit: Literal{Kind: LitInt, Int: v}} }

// StringLit returns a string literal expression.
func StringLit(s string) Expr { return Expr{Kind: ExprLit, Lit: Literal{Kind: LitString, Str: s}} }

// Declare returns a `$type $ident` expression.
func Declare(ty Type, id Ident) Expr {
	return Expr{Kind: ExprDeclare, Declare: &DeclareExpr{Type: ty, Ident: id}}
}

// Cast returns a `(($type) $source)` expression.
func Cast(ty Type, source Expr) Expr {
	return Expr{Kind: ExprCast, Cast: &CastExpr{Type: ty, Source: source}}
}

// FieldOf returns a `$root.$name` expression.
func FieldOf(root Expr, name string) Expr {
	return Expr{Kind: ExprField, Field: &FieldExpr{Root: root, Name: Named(name)}}
}

// IndexOf returns a `$target[$index]` expression.
func IndexOf(target, index Expr) Expr {
	return Expr{Kind: ExprIndex, Index: &IndexExpr{Target: target, Index: index}}
}

// AddrOf returns a `&$target` expression.
func AddrOf(target Expr) Expr {
	return Expr{Kind: ExprAddrOf, AddrOf: &AddrOfExpr{Target: target}}
}

// Assign returns a `$lhs = $rhs` expression.
func Assign(lhs, rhs Expr) Expr {
	return Expr{Kind: ExprAssign, Assign: &AssignExpr{LHS: lhs, RHS: rhs}}
}

// Ternary returns a `$cond ? $then : $else` expression.
func Ternary(cond, then, els Expr) Expr {
	return Expr{Kind: ExprTernary, Ternary: &TernaryExpr{Cond: cond, Then: then, Else: els}}
}

// Call returns a call expression; object may be nil for free calls.
func Call(object *Ident, method Ident, args ...Expr) Expr {
	return Expr{Kind: ExprCall, Call: &CallExpr{Object: object, Method: method, Args: args}}
}

// Tokens lowers the expression.
func (e Expr) Tokens(ts *cstoken.Stream) {
	switch e.Kind {
	case ExprIdent:
		e.Ident.Tokens(ts)
	case ExprLit:
		switch e.Lit.Kind {
		case LitInt:
			ts.Ident(strconv.Itoa(e.Lit.Int))
		case LitString:
			ts.Ident(strconv.Quote(e.Lit.Str))
		}
	case ExprDeclare:
		e.Declare.Type.Tokens(ts)
		e.Declare.Ident.Tokens(ts)
	case ExprCast:
		var tyStream cstoken.Stream
		e.Cast.Type.Tokens(&tyStream)
		var content cstoken.Stream
		content.Open(cstoken.DelimParen, tyStream)
		e.Cast.Source.Tokens(&content)
		ts.Open(cstoken.DelimParen, content)
	case ExprField:
		e.Field.Root.Tokens(ts)
		ts.Push(cstoken.Period)
		e.Field.Name.Tokens(ts)
	case ExprIndex:
		e.Index.Target.Tokens(ts)
		var idx cstoken.Stream
		e.Index.Index.Tokens(&idx)
		ts.Open(cstoken.DelimBracket, idx)
	case ExprAddrOf:
		ts.Push(cstoken.Ampersand)
		e.AddrOf.Target.Tokens(ts)
	case ExprAssign:
		e.Assign.LHS.Tokens(ts)
		ts.Push(cstoken.Equals)
		e.Assign.RHS.Tokens(ts)
	case ExprTernary:
		e.Ternary.Cond.Tokens(ts)
		ts.Push(cstoken.Question)
		e.Ternary.Then.Tokens(ts)
		ts.Push(cstoken.Colon)
		e.Ternary.Else.Tokens(ts)
	case ExprCall:
		if e.Call.Object != nil {
			e.Call.Object.Tokens(ts)
			ts.Push(cstoken.Period)
		}
		e.Call.Method.Tokens(ts)
		var args cstoken.Stream
		for i, arg := range e.Call.Args {
			if i > 0 {
				args.Push(cstoken.Comma)
			}
			arg.Tokens(&args)
		}
		ts.Open(cstoken.DelimParen, args)
	}
}
