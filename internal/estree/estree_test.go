package estree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func dump(t *testing.T, contents string) map[string]any {
	t.Helper()
	out, err := Dump(contents)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	return doc
}

func program(t *testing.T, doc map[string]any) map[string]any {
	t.Helper()
	p, ok := doc["program"].(map[string]any)
	require.True(t, ok)
	return p
}

func body(t *testing.T, doc map[string]any) []any {
	t.Helper()
	b, ok := program(t, doc)["body"].([]any)
	require.True(t, ok)
	return b
}

func TestDumpProgram(t *testing.T) {
	doc := dump(t, "let x = 1\n")
	p := program(t, doc)

	require.Equal(t, "Program", p["type"])
	require.Equal(t, "module", p["sourceType"])
	require.EqualValues(t, 0, p["start"])
	require.EqualValues(t, 10, p["end"])
	require.Empty(t, doc["errors"])

	b := body(t, doc)
	require.Len(t, b, 1)
	decl := b[0].(map[string]any)
	require.Equal(t, "VariableDeclaration", decl["type"])
	require.Equal(t, "let", decl["kind"])
}

func TestDumpLiteralRaw(t *testing.T) {
	doc := dump(t, "x = 0x10\n")
	b := body(t, doc)
	stmt := b[0].(map[string]any)
	require.Equal(t, "ExpressionStatement", stmt["type"])
	assign := stmt["expression"].(map[string]any)
	require.Equal(t, "AssignmentExpression", assign["type"])
	lit := assign["right"].(map[string]any)
	require.Equal(t, "Literal", lit["type"])
	require.EqualValues(t, 16, lit["value"])
	require.Equal(t, "0x10", lit["raw"])
}

func TestDumpComments(t *testing.T) {
	doc := dump(t, "// line\nlet x = 1 /* block */\n")
	comments := doc["comments"].([]any)
	require.Len(t, comments, 2)

	line := comments[0].(map[string]any)
	require.Equal(t, "Line", line["kind"])
	require.Equal(t, " line", line["value"])
	require.EqualValues(t, 0, line["start"])
	require.EqualValues(t, 7, line["end"])

	block := comments[1].(map[string]any)
	require.Equal(t, "Block", block["kind"])
	require.Equal(t, " block ", block["value"])
}

func TestDumpSyntaxError(t *testing.T) {
	doc := dump(t, "let x = \n")

	// The error is reported but the program node is still there
	p := program(t, doc)
	require.Equal(t, "Program", p["type"])
	require.Empty(t, p["body"])

	errs := doc["errors"].([]any)
	require.NotEmpty(t, errs)
	first := errs[0].(map[string]any)
	require.Equal(t, "Error", first["severity"])
	require.NotEmpty(t, first["message"])
	require.NotEmpty(t, first["labels"])
}

func TestDumpPartialProgramOnSyntaxError(t *testing.T) {
	// Statements before the error survive into the program body
	doc := dump(t, "let x = 1\nlet y = ;\n")

	b := body(t, doc)
	require.Len(t, b, 1)
	decl := b[0].(map[string]any)
	require.Equal(t, "VariableDeclaration", decl["type"])

	errs := doc["errors"].([]any)
	require.NotEmpty(t, errs)
}

func TestDumpArrowExpressionFlag(t *testing.T) {
	doc := dump(t, "f = a => a\ng = a => { return a }\n")
	b := body(t, doc)

	first := b[0].(map[string]any)["expression"].(map[string]any)["right"].(map[string]any)
	require.Equal(t, "ArrowFunctionExpression", first["type"])
	require.Equal(t, true, first["expression"])

	second := b[1].(map[string]any)["expression"].(map[string]any)["right"].(map[string]any)
	require.Equal(t, "ArrowFunctionExpression", second["type"])
	require.Equal(t, false, second["expression"])
}

func TestDumpUTF16Offsets(t *testing.T) {
	// "é" is two UTF-8 bytes but one UTF-16 unit; "𝟘" is four bytes and
	// two units. The identifier starts after each in turn.
	doc := dump(t, "é = 1\nx = \"𝟘\"\n")
	b := body(t, doc)

	str := b[1].(map[string]any)["expression"].(map[string]any)["right"].(map[string]any)
	require.Equal(t, "Literal", str["type"])
	require.EqualValues(t, 10, str["start"])
	require.EqualValues(t, 14, str["end"])
}
