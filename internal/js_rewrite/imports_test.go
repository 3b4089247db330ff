package js_rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsModuleImported(t *testing.T) {
	tree := parseTree(t, `import { Socket } from "phoenix"
import topbar from "topbar"
let x = 1
`)
	require.True(t, IsModuleImported(&tree, "phoenix"))
	require.True(t, IsModuleImported(&tree, "topbar"))
	require.False(t, IsModuleImported(&tree, "phoenix_live_view"))
	require.False(t, IsModuleImported(&tree, "phoeni"))
}

func TestInsertImportNewPath(t *testing.T) {
	tree := parseTree(t, `import { Socket } from "phoenix"
import { LiveSocket } from "phoenix_live_view"
let x = 1
`)
	fragment := parseTree(t, `import Sortable from "sortablejs"`)
	InsertImport(&tree, &fragment)

	require.Equal(t, `import { Socket } from "phoenix";
import { LiveSocket } from "phoenix_live_view";
import Sortable from "sortablejs";
let x = 1;
`, printTree(tree))
}

func TestInsertImportMergesSpecifiers(t *testing.T) {
	tree := parseTree(t, `import { Socket } from "phoenix"
let x = 1
`)
	fragment := parseTree(t, `import { Socket, Presence } from "phoenix"`)
	InsertImport(&tree, &fragment)

	require.Equal(t, `import { Socket, Presence } from "phoenix";
let x = 1;
`, printTree(tree))
}

func TestInsertImportAdoptsDefaultOnce(t *testing.T) {
	tree := parseTree(t, `import { render } from "./render"
`)
	fragment := parseTree(t, `import Renderer from "./render"`)
	InsertImport(&tree, &fragment)

	require.Equal(t, "import Renderer, { render } from \"./render\";\n", printTree(tree))

	// A second default for the same path cannot be adopted
	other := parseTree(t, `import Other from "./render"`)
	InsertImport(&tree, &other)
	require.Equal(t, "import Renderer, { render } from \"./render\";\n", printTree(tree))
}

func TestInsertImportIdempotent(t *testing.T) {
	tree := parseTree(t, `import { Socket } from "phoenix"
let x = 1
`)
	fragment := parseTree(t, `import { LiveSocket } from "phoenix_live_view"
import "./app.css"
`)
	InsertImport(&tree, &fragment)
	once := printTree(tree)

	again := parseTree(t, `import { LiveSocket } from "phoenix_live_view"
import "./app.css"
`)
	InsertImport(&tree, &again)
	require.Equal(t, once, printTree(tree))
}

func TestInsertImportWithoutLeadingImports(t *testing.T) {
	tree := parseTree(t, `// app bootstrap
let x = 1
`)
	fragment := parseTree(t, `import "./app.css"`)
	InsertImport(&tree, &fragment)

	require.Equal(t, `// app bootstrap
import "./app.css";
let x = 1;
`, printTree(tree))
}

func TestInsertImportAfterDirectivePrologue(t *testing.T) {
	tree := parseTree(t, `"use strict"
let x = 1
`)
	fragment := parseTree(t, `import "./app.css"`)
	InsertImport(&tree, &fragment)

	require.Equal(t, `"use strict";
import "./app.css";
let x = 1;
`, printTree(tree))
}

func TestInsertImportInterleavedComments(t *testing.T) {
	tree := parseTree(t, `// deps
import { Socket } from "phoenix"
// realtime
import { LiveSocket } from "phoenix_live_view"
let x = 1
`)
	fragment := parseTree(t, `import topbar from "topbar"`)
	InsertImport(&tree, &fragment)

	require.Equal(t, `// deps
import { Socket } from "phoenix";
// realtime
import { LiveSocket } from "phoenix_live_view";
import topbar from "topbar";
let x = 1;
`, printTree(tree))
}

func TestInsertImportIgnoresNonImportStatements(t *testing.T) {
	tree := parseTree(t, `let x = 1
`)
	fragment := parseTree(t, `import "./app.css"
console.log("setup")
`)
	InsertImport(&tree, &fragment)

	require.Equal(t, `import "./app.css";
let x = 1;
`, printTree(tree))
}

func TestRemoveImport(t *testing.T) {
	tree := parseTree(t, `import { Socket } from "phoenix"
import { LiveSocket } from "phoenix_live_view"
import topbar from "topbar"
let x = 1
`)
	RemoveImport(&tree, []string{"phoenix_live_view", "topbar"})

	require.Equal(t, `import { Socket } from "phoenix";
let x = 1;
`, printTree(tree))
}

func TestRemoveImportTakesPrecedingComments(t *testing.T) {
	tree := parseTree(t, `import { Socket } from "phoenix"
// progress bar
// shown during navigation
import topbar from "topbar"
let x = 1
`)
	RemoveImport(&tree, []string{"topbar"})

	require.Equal(t, `import { Socket } from "phoenix";
let x = 1;
`, printTree(tree))
}

func TestRemoveImportMissingPathIsNoop(t *testing.T) {
	tree := parseTree(t, `import { Socket } from "phoenix"
`)
	RemoveImport(&tree, []string{"not-there"})
	require.Equal(t, "import { Socket } from \"phoenix\";\n", printTree(tree))
}
