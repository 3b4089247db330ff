package js_rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsmend/jsmend/internal/js_ast"
	"github.com/jsmend/jsmend/internal/js_parser"
	"github.com/jsmend/jsmend/internal/js_printer"
	"github.com/jsmend/jsmend/internal/logger"
)

func parseTree(t *testing.T, contents string) js_ast.AST {
	t.Helper()
	log := logger.NewDeferLog()
	source := logger.Source{PrettyPath: "<test>", Contents: contents}
	tree, ok := js_parser.Parse(log, source, js_parser.Options{})
	msgs := log.Done()
	require.True(t, ok, logger.MsgsToText(msgs, &source))
	require.Empty(t, msgs, logger.MsgsToText(msgs, &source))
	return tree
}

func printTree(tree js_ast.AST) string {
	return js_printer.Print(tree)
}
