package js_ast

// The walk layer is a mutable pre-order traversal over the tree. A visitor
// receives pointers so its hooks can rewrite nodes in place. Returning false
// from a hook blocks descent into that subtree, which is how the rewrite
// passes avoid editing nested constructs; a hook that wants to resume
// descent selectively can call WalkStmtChildren or WalkExprChildren itself.
//
// Traversal itself cannot fail. Passes record their outcome in their own
// state and report it after the walk completes.

type Visitor interface {
	VisitStmt(stmt *Stmt) bool
	VisitExpr(expr *Expr) bool
}

// NoopVisitor descends everywhere and edits nothing. Passes embed it and
// override only the hooks they care about.
type NoopVisitor struct{}

func (NoopVisitor) VisitStmt(stmt *Stmt) bool { return true }
func (NoopVisitor) VisitExpr(expr *Expr) bool { return true }

func WalkStmts(v Visitor, stmts []Stmt) {
	for i := range stmts {
		WalkStmt(v, &stmts[i])
	}
}

func WalkStmt(v Visitor, stmt *Stmt) {
	if v.VisitStmt(stmt) {
		WalkStmtChildren(v, stmt)
	}
}

func WalkExpr(v Visitor, expr *Expr) {
	if v.VisitExpr(expr) {
		WalkExprChildren(v, expr)
	}
}

func walkOptionalExpr(v Visitor, expr *Expr) {
	if expr != nil {
		WalkExpr(v, expr)
	}
}

func walkFn(v Visitor, fn *Fn) {
	walkArgs(v, fn.Args)
	WalkStmts(v, fn.Body.Stmts)
}

func walkArgs(v Visitor, args []Arg) {
	for i := range args {
		walkBinding(v, &args[i].Binding)
		walkOptionalExpr(v, args[i].Default)
	}
}

func walkBinding(v Visitor, binding *Binding) {
	switch b := binding.Data.(type) {
	case *BArray:
		for i := range b.Items {
			walkBinding(v, &b.Items[i].Binding)
			walkOptionalExpr(v, b.Items[i].DefaultValue)
		}
	case *BObject:
		for i := range b.Properties {
			p := &b.Properties[i]
			if p.IsComputed {
				WalkExpr(v, &p.Key)
			}
			walkBinding(v, &p.Value)
			walkOptionalExpr(v, p.DefaultValue)
		}
	}
}

func walkClass(v Visitor, class *Class) {
	walkOptionalExpr(v, class.Extends)
	walkProperties(v, class.Properties)
}

func walkProperties(v Visitor, properties []Property) {
	for i := range properties {
		p := &properties[i]
		if p.Kind != PropertySpread {
			WalkExpr(v, &p.Key)
		}
		if p.Value != nil {
			WalkExpr(v, p.Value)
		}
		walkOptionalExpr(v, p.Initializer)
	}
}

// WalkStmtChildren recurses into a statement's children in source order
// without re-visiting the statement itself.
func WalkStmtChildren(v Visitor, stmt *Stmt) {
	switch s := stmt.Data.(type) {
	case *SBlock:
		WalkStmts(v, s.Stmts)

	case *SExportDefault:
		if s.Value.Expr != nil {
			WalkExpr(v, s.Value.Expr)
		}
		if s.Value.Stmt != nil {
			WalkStmt(v, s.Value.Stmt)
		}

	case *SExpr:
		WalkExpr(v, &s.Value)

	case *SFunction:
		walkFn(v, &s.Fn)

	case *SClass:
		walkClass(v, &s.Class)

	case *SIf:
		WalkExpr(v, &s.Test)
		WalkStmt(v, &s.Yes)
		if s.No != nil {
			WalkStmt(v, s.No)
		}

	case *SLocal:
		for i := range s.Decls {
			walkBinding(v, &s.Decls[i].Binding)
			walkOptionalExpr(v, s.Decls[i].Value)
		}

	case *SReturn:
		walkOptionalExpr(v, s.Value)

	case *SThrow:
		WalkExpr(v, &s.Value)

	case *SFor:
		if s.Init != nil {
			WalkStmt(v, s.Init)
		}
		walkOptionalExpr(v, s.Test)
		walkOptionalExpr(v, s.Update)
		WalkStmt(v, &s.Body)

	case *SForIn:
		WalkStmt(v, &s.Init)
		WalkExpr(v, &s.Value)
		WalkStmt(v, &s.Body)

	case *SForOf:
		WalkStmt(v, &s.Init)
		WalkExpr(v, &s.Value)
		WalkStmt(v, &s.Body)

	case *SDoWhile:
		WalkStmt(v, &s.Body)
		WalkExpr(v, &s.Test)

	case *SWhile:
		WalkExpr(v, &s.Test)
		WalkStmt(v, &s.Body)

	case *SLabel:
		WalkStmt(v, &s.Stmt)

	case *SSwitch:
		WalkExpr(v, &s.Test)
		for i := range s.Cases {
			if s.Cases[i].Value != nil {
				WalkExpr(v, s.Cases[i].Value)
			}
			WalkStmts(v, s.Cases[i].Body)
		}

	case *STry:
		WalkStmts(v, s.Body)
		if s.Catch != nil {
			if s.Catch.Binding != nil {
				walkBinding(v, s.Catch.Binding)
			}
			WalkStmts(v, s.Catch.Body)
		}
		if s.Finally != nil {
			WalkStmts(v, s.Finally.Stmts)
		}
	}
}

// WalkExprChildren recurses into an expression's children in source order
// without re-visiting the expression itself.
func WalkExprChildren(v Visitor, expr *Expr) {
	switch e := expr.Data.(type) {
	case *EArray:
		for i := range e.Items {
			WalkExpr(v, &e.Items[i])
		}

	case *EUnary:
		WalkExpr(v, &e.Value)

	case *EBinary:
		WalkExpr(v, &e.Left)
		WalkExpr(v, &e.Right)

	case *ENew:
		WalkExpr(v, &e.Target)
		for i := range e.Args {
			WalkExpr(v, &e.Args[i])
		}

	case *ECall:
		WalkExpr(v, &e.Target)
		for i := range e.Args {
			WalkExpr(v, &e.Args[i])
		}

	case *EDot:
		WalkExpr(v, &e.Target)

	case *EIndex:
		WalkExpr(v, &e.Target)
		WalkExpr(v, &e.Index)

	case *EArrow:
		walkArgs(v, e.Args)
		WalkStmts(v, e.Body.Stmts)

	case *EFunction:
		walkFn(v, &e.Fn)

	case *EClass:
		walkClass(v, &e.Class)

	case *EObject:
		walkProperties(v, e.Properties)

	case *ESpread:
		WalkExpr(v, &e.Value)

	case *ETemplate:
		if e.Tag != nil {
			WalkExpr(v, e.Tag)
		}
		for i := range e.Parts {
			WalkExpr(v, &e.Parts[i].Value)
		}

	case *EAwait:
		WalkExpr(v, &e.Value)

	case *EYield:
		walkOptionalExpr(v, e.Value)

	case *EIf:
		WalkExpr(v, &e.Test)
		WalkExpr(v, &e.Yes)
		WalkExpr(v, &e.No)

	case *EImportCall:
		WalkExpr(v, &e.Value)
	}
}
