package csast

import "bindgen/internal/cstoken"

// StmtKind discriminates statement variants.
type StmtKind uint8

const (
	// StmtDecl is `$type $ident ;`.
	StmtDecl StmtKind = iota
	// StmtExpr is `$expr ;`.
	StmtExpr
	// StmtFixed is `fixed ( $decl = $rhs )`. Tail-scoping: everything after
	// it in the current statement list lives inside its pinned scope.
	StmtFixed
	// StmtUnsafe is an `unsafe` marker. Tail-scoping like StmtFixed.
	StmtUnsafe
	// StmtReturn is `return $expr? ;`.
	StmtReturn
)

// Stmt is a kind-tagged statement node.
type Stmt struct {
	Kind StmtKind

	Decl  *DeclareExpr
	Expr  *Expr
	Fixed *AssignExpr
	Ret   *Expr
}

// DeclStmt returns a bare local declaration statement.
func DeclStmt(ty Type, id Ident) Stmt {
	return Stmt{Kind: StmtDecl, Decl: &DeclareExpr{Type: ty, Ident: id}}
}

// ExprStmt terminates an expression with a semicolon.
func ExprStmt(e Expr) Stmt {
	expr := e
	return Stmt{Kind: StmtExpr, Expr: &expr}
}

// FixedStmt returns a pointer-pinning statement binding decl to rhs.
func FixedStmt(decl Expr, rhs Expr) Stmt {
	return Stmt{Kind: StmtFixed, Fixed: &AssignExpr{LHS: decl, RHS: rhs}}
}

// UnsafeStmt returns an unsafe scope marker.
func UnsafeStmt() Stmt { return Stmt{Kind: StmtUnsafe} }

// ReturnStmt returns `return $expr ;`, or a bare `return ;` when expr is nil.
func ReturnStmt(expr *Expr) Stmt { return Stmt{Kind: StmtReturn, Ret: expr} }

// RequiresBlock reports whether everything after this statement must be
// nested in a new brace scope.
func (s *Stmt) RequiresBlock() bool {
	return s.Kind == StmtFixed || s.Kind == StmtUnsafe
}

// Tokens lowers a single statement, without any scope handling.
func (s *Stmt) Tokens(ts *cstoken.Stream) {
	switch s.Kind {
	case StmtDecl:
		s.Decl.Type.Tokens(ts)
		s.Decl.Ident.Tokens(ts)
		ts.Push(cstoken.Semicolon)
	case StmtExpr:
		s.Expr.Tokens(ts)
		ts.Push(cstoken.Semicolon)
	case StmtFixed:
		ts.Ident("fixed")
		var content cstoken.Stream
		s.Fixed.LHS.Tokens(&content)
		content.Push(cstoken.Equals)
		s.Fixed.RHS.Tokens(&content)
		ts.Open(cstoken.DelimParen, content)
	case StmtUnsafe:
		ts.Ident("unsafe")
	case StmtReturn:
		ts.Ident("return")
		if s.Ret != nil {
			s.Ret.Tokens(ts)
		}
		ts.Push(cstoken.Semicolon)
	}
}

// SplitScope returns the statements to lower flat and the suffix that must
// be nested under the first scope-opening statement. nested is nil when no
// statement in the list opens a scope.
func SplitScope(stmts []Stmt) (flat, nested []Stmt) {
	for i := range stmts {
		if stmts[i].RequiresBlock() {
			return stmts[:i+1], stmts[i+1:]
		}
	}
	return stmts, nil
}

// BodyTokens lowers a statement list. Scope-opening statements consume the
// rest of the list into one nested brace group; the nesting recurses, so a
// later scoping statement opens its own inner scope.
func BodyTokens(stmts []Stmt, ts *cstoken.Stream) {
	flat, nested := SplitScope(stmts)
	for i := range flat {
		flat[i].Tokens(ts)
	}
	if len(flat) > 0 && flat[len(flat)-1].RequiresBlock() {
		var inner cstoken.Stream
		BodyTokens(nested, &inner)
		ts.Open(cstoken.DelimBrace, inner)
	}
}
