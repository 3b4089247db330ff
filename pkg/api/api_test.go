package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsmend/jsmend/internal/js_rewrite"
)

const bootstrap = `import { Socket } from "phoenix"
import { LiveSocket } from "phoenix_live_view"
let liveSocket = new LiveSocket("/live", Socket, { params: { _csrf_token: csrfToken } })
liveSocket.connect()
`

func TestIsModuleImported(t *testing.T) {
	ok, err := IsModuleImported(bootstrap, "phoenix")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = IsModuleImported(bootstrap, "topbar")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = IsModuleImported("let x = ", "phoenix")
	require.Error(t, err)
}

func TestInsertImport(t *testing.T) {
	out, err := InsertImport(bootstrap, `import topbar from "topbar"`)
	require.NoError(t, err)
	require.Equal(t, `import { Socket } from "phoenix";
import { LiveSocket } from "phoenix_live_view";
import topbar from "topbar";
let liveSocket = new LiveSocket("/live", Socket, { params: { _csrf_token: csrfToken } });
liveSocket.connect();
`, out)

	// Applying the same fragment to the output changes nothing
	again, err := InsertImport(out, `import topbar from "topbar"`)
	require.NoError(t, err)
	require.Equal(t, out, again)
}

func TestInsertImportBadFragment(t *testing.T) {
	_, err := InsertImport(bootstrap, "import {")
	require.Error(t, err)
	require.Contains(t, err.Error(), "fragment")
}

func TestRemoveImport(t *testing.T) {
	out, err := RemoveImport(bootstrap, []string{"phoenix_live_view"})
	require.NoError(t, err)
	require.Equal(t, `import { Socket } from "phoenix";
let liveSocket = new LiveSocket("/live", Socket, { params: { _csrf_token: csrfToken } });
liveSocket.connect();
`, out)
}

func TestImportMembershipAfterEdit(t *testing.T) {
	out, err := InsertImport(bootstrap, `import "./app.css"`)
	require.NoError(t, err)
	ok, err := IsModuleImported(out, "./app.css")
	require.NoError(t, err)
	require.True(t, ok)

	out, err = RemoveImport(out, []string{"./app.css"})
	require.NoError(t, err)
	ok, err = IsModuleImported(out, "./app.css")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFindLiveSocket(t *testing.T) {
	found, err := FindLiveSocket(bootstrap)
	require.NoError(t, err)
	require.True(t, found)

	found, err = FindLiveSocket("let x = 1\n")
	require.False(t, found)
	require.ErrorIs(t, err, js_rewrite.ErrNotFound)

	found, err = FindLiveSocket("let liveSocket = new LiveSocket()\n")
	require.False(t, found)
	require.ErrorIs(t, err, js_rewrite.ErrMalformed)
}

func TestFindLiveSocketWith(t *testing.T) {
	source := "const socket = new MySocket(\"/live\", {})\n"
	found, err := FindLiveSocketWith(source, LiveSocketOptions{
		Variable:    "socket",
		Constructor: "MySocket",
	})
	require.NoError(t, err)
	require.True(t, found)
}

func TestExtendHookObject(t *testing.T) {
	out, err := ExtendHookObject(bootstrap, []string{"InfiniteScroll", "...colocated"})
	require.NoError(t, err)
	require.Contains(t, out, "hooks: { InfiniteScroll, ...colocated }")

	found, err := FindLiveSocket(out)
	require.NoError(t, err)
	require.True(t, found)
}

func TestRemoveHookMembers(t *testing.T) {
	extended, err := ExtendHookObject(bootstrap, []string{"A", "B"})
	require.NoError(t, err)

	out, err := RemoveHookMembers(extended, []string{"A"})
	require.NoError(t, err)
	require.Contains(t, out, "hooks: { B }")
	require.NotContains(t, out, "hooks: { A")
}

func TestExtendVarObjectByNames(t *testing.T) {
	out, err := ExtendVarObjectByNames("const Hooks = { A }\n", "Hooks", []string{"B"})
	require.NoError(t, err)
	require.Equal(t, "const Hooks = { A, B };\n", out)

	_, err = ExtendVarObjectByNames("let x = 1\n", "Hooks", []string{"B"})
	require.True(t, errors.Is(err, js_rewrite.ErrNotFound))
}

func TestStatistics(t *testing.T) {
	stats, err := Statistics(bootstrap)
	require.NoError(t, err)
	require.Equal(t, StatisticsRecord{Imports: 2}, stats)
}

func TestStatisticsAdditive(t *testing.T) {
	a := "function f() {\n}\n"
	b := "class C {}\nimport \"m\";\n"

	first, err := Statistics(a)
	require.NoError(t, err)
	second, err := Statistics(b)
	require.NoError(t, err)
	combined, err := Statistics(a + b)
	require.NoError(t, err)

	first.Add(second)
	require.Equal(t, combined, first)
}

func TestEstreeDump(t *testing.T) {
	out, err := EstreeDump("let x = 1\n")
	require.NoError(t, err)
	require.Contains(t, out, "\"program\"")
	require.Contains(t, out, "\"VariableDeclaration\"")
	require.Contains(t, out, "\"comments\"")
	require.Contains(t, out, "\"errors\"")
}

func TestFormatJS(t *testing.T) {
	out, err := FormatJS("let    x=1")
	require.NoError(t, err)
	require.Equal(t, "let x = 1;\n", out)

	ok, err := IsJSFormatted(out)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFormatCSS(t *testing.T) {
	out, err := FormatCSS(".a{color:red}")
	require.NoError(t, err)
	require.Contains(t, out, "color: red;")

	ok, err := IsCSSFormatted(out)
	require.NoError(t, err)
	require.True(t, ok)
}
