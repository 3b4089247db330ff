package js_rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtendVarObjectByNames(t *testing.T) {
	tree := parseTree(t, `const Hooks = { A }
export default Hooks
`)
	require.NoError(t, ExtendVarObjectByNames(&tree, "Hooks", []string{"B", "...extra"}))

	require.Equal(t, `const Hooks = { A, B, ...extra };
export default Hooks;
`, printTree(tree))
}

func TestExtendVarObjectEmptyObject(t *testing.T) {
	tree := parseTree(t, `const Hooks = {}
`)
	require.NoError(t, ExtendVarObjectByNames(&tree, "Hooks", []string{"A"}))
	require.Equal(t, "const Hooks = { A };\n", printTree(tree))
}

func TestExtendVarObjectSkipsPresentMembers(t *testing.T) {
	tree := parseTree(t, `const Hooks = { A, ...extra }
`)
	require.NoError(t, ExtendVarObjectByNames(&tree, "Hooks", []string{"A", "...extra", "B"}))
	require.Equal(t, "const Hooks = { A, ...extra, B };\n", printTree(tree))
}

func TestExtendVarObjectEditsEveryMatch(t *testing.T) {
	tree := parseTree(t, `var cfg = { a }
var cfg = { b }
`)
	require.NoError(t, ExtendVarObjectByNames(&tree, "cfg", []string{"c"}))

	require.Equal(t, `var cfg = { a, c };
var cfg = { b, c };
`, printTree(tree))
}

func TestExtendVarObjectInsideBlocks(t *testing.T) {
	tree := parseTree(t, `function setup() {
  const Hooks = { A };
}
`)
	require.NoError(t, ExtendVarObjectByNames(&tree, "Hooks", []string{"B"}))

	require.Equal(t, `function setup() {
  const Hooks = { A, B };
}
`, printTree(tree))
}

func TestExtendVarObjectNotFound(t *testing.T) {
	tree := parseTree(t, `const Other = {}
`)
	err := ExtendVarObjectByNames(&tree, "Hooks", []string{"A"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestExtendVarObjectMalformed(t *testing.T) {
	tree := parseTree(t, `const Hooks = 5
`)
	err := ExtendVarObjectByNames(&tree, "Hooks", []string{"A"})
	require.ErrorIs(t, err, ErrMalformed)
}
