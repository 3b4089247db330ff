// Package api is the public surface of jsmend. Every function is a pure
// transformation of source text: one parse, at most one rewrite pass, one
// print. Nothing is cached or shared between calls, so concurrent use needs
// no coordination. On error the input is never partially modified: callers
// keep their original text.
package api

import (
	"fmt"

	"github.com/jsmend/jsmend/internal/estree"
	"github.com/jsmend/jsmend/internal/format"
	"github.com/jsmend/jsmend/internal/js_ast"
	"github.com/jsmend/jsmend/internal/js_parser"
	"github.com/jsmend/jsmend/internal/js_printer"
	"github.com/jsmend/jsmend/internal/js_rewrite"
	"github.com/jsmend/jsmend/internal/logger"
)

// StatisticsRecord counts the node kinds the tooling reports on. Functions
// covers declarations, expressions, and methods but not arrow functions.
type StatisticsRecord = js_rewrite.Statistics

// LiveSocketOptions overrides the names the live-socket locator matches.
// The zero value selects "liveSocket" and "LiveSocket".
type LiveSocketOptions = js_rewrite.LocatorOptions

func parse(source string, what string) (js_ast.AST, error) {
	log := logger.NewDeferLog()
	src := logger.Source{PrettyPath: what, Contents: source}
	tree, ok := js_parser.Parse(log, src, js_parser.Options{})
	if !ok {
		return js_ast.AST{}, fmt.Errorf("parsing %s: %s", what, logger.MsgsToText(log.Done(), &src))
	}
	return tree, nil
}

// IsModuleImported reports whether some top-level import's path equals
// moduleName exactly.
func IsModuleImported(source string, moduleName string) (bool, error) {
	tree, err := parse(source, "source")
	if err != nil {
		return false, err
	}
	return js_rewrite.IsModuleImported(&tree, moduleName), nil
}

// InsertImport merges the import declarations of fragment into source,
// deduplicating declarations by path and named specifiers by local name.
// Applying the same fragment twice yields the same output as applying it
// once.
func InsertImport(source string, fragment string) (string, error) {
	tree, err := parse(source, "source")
	if err != nil {
		return "", err
	}
	fragmentTree, err := parse(fragment, "fragment")
	if err != nil {
		return "", err
	}
	js_rewrite.InsertImport(&tree, &fragmentTree)
	return js_printer.Print(tree), nil
}

// RemoveImport drops every top-level import whose path is in names, with
// the comments attached to it.
func RemoveImport(source string, names []string) (string, error) {
	tree, err := parse(source, "source")
	if err != nil {
		return "", err
	}
	js_rewrite.RemoveImport(&tree, names)
	return js_printer.Print(tree), nil
}

// FindLiveSocket reports whether the source declares a well-formed
// live-socket binding. Parse failure, a missing binding, and a malformed
// one all return (false, err); the predicate is true only for a usable
// declaration.
func FindLiveSocket(source string) (bool, error) {
	return FindLiveSocketWith(source, LiveSocketOptions{})
}

// FindLiveSocketWith is FindLiveSocket with overridden locator names.
func FindLiveSocketWith(source string, opts LiveSocketOptions) (bool, error) {
	tree, err := parse(source, "source")
	if err != nil {
		return false, err
	}
	if err := js_rewrite.FindLiveSocket(&tree, opts); err != nil {
		return false, err
	}
	return true, nil
}

// ExtendHookObject adds the given members to the hooks property of the
// live-socket options object. A name of the form "...X" becomes a spread of
// the identifier X; any other name becomes a shorthand property. Members
// already present are left alone.
func ExtendHookObject(source string, names []string) (string, error) {
	return ExtendHookObjectWith(source, LiveSocketOptions{}, names)
}

// ExtendHookObjectWith is ExtendHookObject with overridden locator names.
func ExtendHookObjectWith(source string, opts LiveSocketOptions, names []string) (string, error) {
	tree, err := parse(source, "source")
	if err != nil {
		return "", err
	}
	if err := js_rewrite.ExtendHooks(&tree, opts, names); err != nil {
		return "", err
	}
	return js_printer.Print(tree), nil
}

// RemoveHookMembers removes the named shorthand members and "...X" spreads
// from an inline hooks object literal.
func RemoveHookMembers(source string, names []string) (string, error) {
	return RemoveHookMembersWith(source, LiveSocketOptions{}, names)
}

// RemoveHookMembersWith is RemoveHookMembers with overridden locator names.
func RemoveHookMembersWith(source string, opts LiveSocketOptions, names []string) (string, error) {
	tree, err := parse(source, "source")
	if err != nil {
		return "", err
	}
	if err := js_rewrite.RemoveHookMembers(&tree, opts, names); err != nil {
		return "", err
	}
	return js_printer.Print(tree), nil
}

// ExtendVarObjectByNames appends shorthand members to the object literal
// bound to varName. It is an error when no such binding exists or its
// initializer is not an object literal.
func ExtendVarObjectByNames(source string, varName string, names []string) (string, error) {
	tree, err := parse(source, "source")
	if err != nil {
		return "", err
	}
	if err := js_rewrite.ExtendVarObjectByNames(&tree, varName, names); err != nil {
		return "", err
	}
	return js_printer.Print(tree), nil
}

// Statistics counts functions, classes, debugger statements, imports, try
// statements, and throw statements.
func Statistics(source string) (StatisticsRecord, error) {
	tree, err := parse(source, "source")
	if err != nil {
		return StatisticsRecord{}, err
	}
	return js_rewrite.CollectStatistics(&tree), nil
}

// EstreeDump returns a pretty-printed JSON document of the parse:
// { "program": <ESTree>, "comments": [...], "errors": [...] } with UTF-16
// offsets. Syntax errors go into "errors" instead of failing the call.
func EstreeDump(source string) (string, error) {
	return estree.Dump(source)
}

// FormatJS reformats JavaScript into the printer's canonical shape.
func FormatJS(source string) (string, error) {
	return format.JS(source)
}

// IsJSFormatted reports whether the JavaScript is already in canonical
// shape, ignoring leading and trailing whitespace.
func IsJSFormatted(source string) (bool, error) {
	return format.JSFormatted(source)
}

// FormatCSS reformats a stylesheet through esbuild's CSS pipeline.
func FormatCSS(source string) (string, error) {
	return format.CSS(source)
}

// IsCSSFormatted reports whether the stylesheet is already formatted,
// ignoring leading and trailing whitespace.
func IsCSSFormatted(source string) (bool, error) {
	return format.CSSFormatted(source)
}
