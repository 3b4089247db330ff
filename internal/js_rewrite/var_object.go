package js_rewrite

import (
	"fmt"

	"github.com/jsmend/jsmend/internal/js_ast"
)

// The extender edits every declarator binding varName to an object literal.
// Unlike the live-socket locator it never looks inside constructor calls,
// and it keeps walking after a match so repeated declarations are all
// extended.
type varObjectExtender struct {
	js_ast.NoopVisitor
	varName string
	names   []string

	found     bool
	malformed bool
}

func (x *varObjectExtender) VisitStmt(stmt *js_ast.Stmt) bool {
	local, ok := stmt.Data.(*js_ast.SLocal)
	if !ok {
		return true
	}

	for _, decl := range local.Decls {
		id, ok := decl.Binding.Data.(*js_ast.BIdentifier)
		if !ok || id.Name != x.varName || decl.Value == nil {
			continue
		}
		object, ok := decl.Value.Data.(*js_ast.EObject)
		if !ok {
			x.malformed = true
			continue
		}
		x.found = true
		appendHookMembers(object, x.names)
	}

	return true
}

func (x *varObjectExtender) VisitExpr(expr *js_ast.Expr) bool {
	return false
}

// ExtendVarObjectByNames appends shorthand members (and "...X" spreads) to
// the object literal bound to varName, skipping members already present.
// It is an error when no such binding exists or when the binding's
// initializer is not an object literal.
func ExtendVarObjectByNames(tree *js_ast.AST, varName string, names []string) error {
	extender := &varObjectExtender{varName: varName, names: names}
	js_ast.WalkStmts(extender, tree.Body)

	if extender.found {
		return nil
	}
	if extender.malformed {
		return fmt.Errorf("the initializer of %q is not an object literal: %w", varName, ErrMalformed)
	}
	return fmt.Errorf("no %q binding with an object literal initializer: %w", varName, ErrNotFound)
}
