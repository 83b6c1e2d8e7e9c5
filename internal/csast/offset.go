package csast

// Generated-identifier offsetting. Conversion fragments are synthesized
// with independent allocators, each starting at id 0; before fragments are
// concatenated into one method body, every fragment after the first is
// shifted by the running total of prior fragments' issued ids so the
// combined body never reuses an id.

// OffsetGenerated shifts every generated identifier in stmts by delta.
// Named identifiers are untouched; delta 0 is a no-op.
func OffsetGenerated(stmts []Stmt, delta int) {
	if delta == 0 {
		return
	}
	for i := range stmts {
		offsetStmt(&stmts[i], delta)
	}
}

func offsetStmt(s *Stmt, delta int) {
	switch s.Kind {
	case StmtDecl:
		s.Decl.Ident = s.Decl.Ident.Shifted(delta)
	case StmtExpr:
		offsetExpr(s.Expr, delta)
	case StmtFixed:
		offsetExpr(&s.Fixed.LHS, delta)
		offsetExpr(&s.Fixed.RHS, delta)
	case StmtReturn:
		if s.Ret != nil {
			offsetExpr(s.Ret, delta)
		}
	}
}

func offsetExpr(e *Expr, delta int) {
	switch e.Kind {
	case ExprIdent:
		e.Ident = e.Ident.Shifted(delta)
	case ExprDeclare:
		e.Declare.Ident = e.Declare.Ident.Shifted(delta)
	case ExprCast:
		offsetExpr(&e.Cast.Source, delta)
	case ExprField:
		offsetExpr(&e.Field.Root, delta)
		e.Field.Name = e.Field.Name.Shifted(delta)
	case ExprIndex:
		offsetExpr(&e.Index.Target, delta)
		offsetExpr(&e.Index.Index, delta)
	case ExprAddrOf:
		offsetExpr(&e.AddrOf.Target, delta)
	case ExprAssign:
		offsetExpr(&e.Assign.LHS, delta)
		offsetExpr(&e.Assign.RHS, delta)
	case ExprTernary:
		offsetExpr(&e.Ternary.Cond, delta)
		offsetExpr(&e.Ternary.Then, delta)
		offsetExpr(&e.Ternary.Else, delta)
	case ExprCall:
		if e.Call.Object != nil {
			shifted := e.Call.Object.Shifted(delta)
			e.Call.Object = &shifted
		}
		e.Call.Method = e.Call.Method.Shifted(delta)
		for i := range e.Call.Args {
			offsetExpr(&e.Call.Args[i], delta)
		}
	}
}

// CollectGenerated returns the set of generated ids referenced in stmts.
func CollectGenerated(stmts []Stmt) map[int]bool {
	ids := make(map[int]bool)
	for i := range stmts {
		collectStmt(&stmts[i], ids)
	}
	return ids
}

// MaxGenerated returns the largest generated id referenced in stmts, or -1
// when none are.
func MaxGenerated(stmts []Stmt) int {
	max := -1
	for id := range CollectGenerated(stmts) {
		if id > max {
			max = id
		}
	}
	return max
}

func collectStmt(s *Stmt, ids map[int]bool) {
	switch s.Kind {
	case StmtDecl:
		collectIdent(s.Decl.Ident, ids)
	case StmtExpr:
		collectExpr(s.Expr, ids)
	case StmtFixed:
		collectExpr(&s.Fixed.LHS, ids)
		collectExpr(&s.Fixed.RHS, ids)
	case StmtReturn:
		if s.Ret != nil {
			collectExpr(s.Ret, ids)
		}
	}
}

func collectIdent(id Ident, ids map[int]bool) {
	if id.Gen {
		ids[id.ID] = true
	}
}

func collectExpr(e *Expr, ids map[int]bool) {
	switch e.Kind {
	case ExprIdent:
		collectIdent(e.Ident, ids)
	case ExprDeclare:
		collectIdent(e.Declare.Ident, ids)
	case ExprCast:
		collectExpr(&e.Cast.Source, ids)
	case ExprField:
		collectExpr(&e.Field.Root, ids)
		collectIdent(e.Field.Name, ids)
	case ExprIndex:
		collectExpr(&e.Index.Target, ids)
		collectExpr(&e.Index.Index, ids)
	case ExprAddrOf:
		collectExpr(&e.AddrOf.Target, ids)
	case ExprAssign:
		collectExpr(&e.Assign.LHS, ids)
		collectExpr(&e.Assign.RHS, ids)
	case ExprTernary:
		collectExpr(&e.Ternary.Cond, ids)
		collectExpr(&e.Ternary.Then, ids)
		collectExpr(&e.Ternary.Else, ids)
	case ExprCall:
		if e.Call.Object != nil {
			collectIdent(*e.Call.Object, ids)
		}
		collectIdent(e.Call.Method, ids)
		for i := range e.Call.Args {
			collectExpr(&e.Call.Args[i], ids)
		}
	}
}
