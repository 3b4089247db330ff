package js_rewrite

import (
	"errors"

	"github.com/jsmend/jsmend/internal/js_ast"
)

// The rewrite passes mutate a parsed tree in place. Callers parse, run one
// pass, and print; a pass that returns an error leaves no guarantee about
// the tree, so on error the caller keeps its original text.

var (
	// ErrNotFound means no binding matched the locator.
	ErrNotFound = errors.New("target not found")

	// ErrMalformed means a binding matched but its shape is unusable.
	ErrMalformed = errors.New("target malformed")
)

// IsModuleImported reports whether some top-level import declaration's path
// equals moduleName exactly.
func IsModuleImported(tree *js_ast.AST, moduleName string) bool {
	for _, stmt := range tree.Body {
		if imp, ok := stmt.Data.(*js_ast.SImport); ok && imp.Path.Text == moduleName {
			return true
		}
	}
	return false
}

// InsertImport merges every import declaration of the parsed fragment into
// the tree. A fragment import whose path is already imported contributes
// its missing specifiers to the existing declaration; new paths are inserted
// after the last import of the leading import block, or at the top of the
// body (after any directive prologue and leading comments) when the body has
// no leading imports. Repeating the same fragment is a no-op.
func InsertImport(tree *js_ast.AST, fragment *js_ast.AST) {
	existing := map[string]*js_ast.SImport{}
	for _, stmt := range tree.Body {
		if imp, ok := stmt.Data.(*js_ast.SImport); ok {
			if _, seen := existing[imp.Path.Text]; !seen {
				existing[imp.Path.Text] = imp
			}
		}
	}

	insertAt := importInsertIndex(tree.Body)

	for _, stmt := range fragment.Body {
		imp, ok := stmt.Data.(*js_ast.SImport)
		if !ok {
			continue
		}

		target := existing[imp.Path.Text]
		if target == nil {
			added := js_ast.Stmt{Data: imp}
			tree.Body = append(tree.Body, js_ast.Stmt{})
			copy(tree.Body[insertAt+1:], tree.Body[insertAt:])
			tree.Body[insertAt] = added
			insertAt++
			existing[imp.Path.Text] = imp
			continue
		}

		mergeImport(target, imp)
	}
}

// Merges the specifiers of src into dst. Named specifiers match by local
// name; a default or namespace specifier is only adopted when dst has none,
// since one declaration cannot carry two.
func mergeImport(dst *js_ast.SImport, src *js_ast.SImport) {
	if src.DefaultName != nil && dst.DefaultName == nil {
		dst.DefaultName = src.DefaultName
	}
	if src.StarName != nil && dst.StarName == nil {
		dst.StarName = src.StarName
	}
	if src.Items == nil {
		return
	}

	for _, item := range *src.Items {
		if dst.Items == nil {
			items := []js_ast.ClauseItem{}
			dst.Items = &items
		}
		found := false
		for _, have := range *dst.Items {
			if have.Name.Name == item.Name.Name {
				found = true
				break
			}
		}
		if !found {
			*dst.Items = append(*dst.Items, item)
		}
	}
}

// The index where a brand-new import declaration goes. When the body opens
// with imports (comments and directives may be interleaved), that is right
// after the last of them; otherwise it is the first position after the
// directive prologue and any leading comments.
func importInsertIndex(body []js_ast.Stmt) int {
	index := 0
	sawImport := false

	for i, stmt := range body {
		switch stmt.Data.(type) {
		case *js_ast.SImport:
			sawImport = true
			index = i + 1
		case *js_ast.SComment, *js_ast.SDirective:
			if !sawImport {
				index = i + 1
			}
		default:
			return index
		}
	}

	return index
}

// RemoveImport drops every top-level import declaration whose path is in
// paths, along with the run of comment statements immediately preceding it.
func RemoveImport(tree *js_ast.AST, paths []string) {
	doomed := map[string]bool{}
	for _, path := range paths {
		doomed[path] = true
	}

	kept := tree.Body[:0]
	for _, stmt := range tree.Body {
		if imp, ok := stmt.Data.(*js_ast.SImport); ok && doomed[imp.Path.Text] {
			for len(kept) > 0 {
				if _, isComment := kept[len(kept)-1].Data.(*js_ast.SComment); !isComment {
					break
				}
				kept = kept[:len(kept)-1]
			}
			continue
		}
		kept = append(kept, stmt)
	}
	tree.Body = kept
}
