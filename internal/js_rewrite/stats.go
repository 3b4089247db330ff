package js_rewrite

import (
	"github.com/jsmend/jsmend/internal/js_ast"
)

// Statistics counts nodes of the six kinds the tooling reports on.
// Functions covers declarations, expressions, and methods; arrow functions
// are deliberately not counted.
type Statistics struct {
	Functions int `json:"functions"`
	Classes   int `json:"classes"`
	Debuggers int `json:"debuggers"`
	Imports   int `json:"imports"`
	Trys      int `json:"trys"`
	Throws    int `json:"throws"`
}

// Add accumulates another record into this one.
func (s *Statistics) Add(other Statistics) {
	s.Functions += other.Functions
	s.Classes += other.Classes
	s.Debuggers += other.Debuggers
	s.Imports += other.Imports
	s.Trys += other.Trys
	s.Throws += other.Throws
}

type statsVisitor struct {
	js_ast.NoopVisitor
	stats Statistics
}

func (v *statsVisitor) VisitStmt(stmt *js_ast.Stmt) bool {
	switch stmt.Data.(type) {
	case *js_ast.SFunction:
		v.stats.Functions++
	case *js_ast.SClass:
		v.stats.Classes++
	case *js_ast.SDebugger:
		v.stats.Debuggers++
	case *js_ast.SImport:
		v.stats.Imports++
	case *js_ast.STry:
		v.stats.Trys++
	case *js_ast.SThrow:
		v.stats.Throws++
	}
	return true
}

func (v *statsVisitor) VisitExpr(expr *js_ast.Expr) bool {
	switch expr.Data.(type) {
	case *js_ast.EFunction:
		v.stats.Functions++
	case *js_ast.EClass:
		v.stats.Classes++
	}
	return true
}

// CollectStatistics walks the whole tree, counting nested matches
// individually.
func CollectStatistics(tree *js_ast.AST) Statistics {
	visitor := &statsVisitor{}
	js_ast.WalkStmts(visitor, tree.Body)
	return visitor.stats
}
