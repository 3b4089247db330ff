package js_printer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsmend/jsmend/internal/js_ast"
	"github.com/jsmend/jsmend/internal/js_parser"
	"github.com/jsmend/jsmend/internal/logger"
)

func printSource(t *testing.T, contents string) string {
	t.Helper()
	log := logger.NewDeferLog()
	source := logger.Source{PrettyPath: "<test>", Contents: contents}
	tree, ok := js_parser.Parse(log, source, js_parser.Options{})
	msgs := log.Done()
	require.True(t, ok, logger.MsgsToText(msgs, &source))
	require.Empty(t, msgs)
	return Print(tree)
}

func TestPrintExpr(t *testing.T) {
	left := js_ast.Expr{Data: &js_ast.EIdentifier{Name: "a"}}
	right := js_ast.Expr{Data: &js_ast.ENumber{Value: 2}}
	expr := js_ast.Expr{Data: &js_ast.EBinary{Op: js_ast.BinOpAdd, Left: left, Right: right}}
	require.Equal(t, "a + 2", PrintExpr(expr))
}

func TestNumbers(t *testing.T) {
	for _, it := range []struct{ source, expected string }{
		{"x = 0", "x = 0;\n"},
		{"x = 1.5", "x = 1.5;\n"},
		{"x = 0x10", "x = 16;\n"},
		{"x = 1e3", "x = 1000;\n"},
		{"x = 1e21", "x = 1e+21;\n"},
		{"x = 1e-7", "x = 1e-7;\n"},
		{"x = 0.000001", "x = 0.000001;\n"},
	} {
		require.Equal(t, it.expected, printSource(t, it.source), it.source)
	}
}

func TestStringQuoting(t *testing.T) {
	for _, it := range []struct{ source, expected string }{
		{`x = 'plain'`, "x = \"plain\";\n"},
		{`x = "say \"hi\""`, "x = \"say \\\"hi\\\"\";\n"},
		{`x = "tab\there"`, "x = \"tab\\there\";\n"},
		{`x = "\x07"`, "x = \"\\x07\";\n"},
		{`x = "back\\slash"`, "x = \"back\\\\slash\";\n"},
		{`x = "héllo"`, "x = \"héllo\";\n"},
		{`x = "\u{1D7D8}"`, "x = \"𝟘\";\n"},
		{`x = "\uD835"`, "x = \"\\uD835\";\n"},
	} {
		require.Equal(t, it.expected, printSource(t, it.source), it.source)
	}
}

func TestIndentation(t *testing.T) {
	require.Equal(t, `function f() {
  if (a) {
    while (b) {
      c();
    }
  }
}
`, printSource(t, "function f() { if (a) { while (b) { c() } } }"))
}

func TestPrintIsIdempotent(t *testing.T) {
	fixture := `#!/usr/bin/env node
"use strict";
// bootstrap
import { Socket } from "phoenix";
import { LiveSocket } from "phoenix_live_view";
import topbar from "topbar";
const Hooks = { A, ...extra };
let csrfToken = document.querySelector("meta[name='csrf-token']").getAttribute("content");
let liveSocket = new LiveSocket("/live", Socket, { params: { _csrf_token: csrfToken }, hooks: Hooks });
topbar.config({ barColors: { 0: "#29d" }, shadowColor: "rgba(0, 0, 0, .3)" });
window.addEventListener("phx:page-loading-start", (_info) => topbar.show(300));
liveSocket.connect();
window.liveSocket = liveSocket;
export default class Widget extends Base {
  #count = 0;
  static kind = "widget";
  render() {
    return this.#count ?? 0;
  }
}
`
	once := printSource(t, fixture)
	require.Equal(t, once, printSource(t, once))
}

func TestCommentLayout(t *testing.T) {
	// Comments attached inside a construct force the multi-line layout.
	// Each fixture is already canonical, so printing is a fixed point.
	for _, source := range []string{
		"const opts = {\n  // reconnect with a backoff\n  backoff: [100, 500],\n  timeout: 30000\n};\n",
		"f(\n  // handler\n  onEvent,\n  {}\n);\n",
		"const xs = [\n  // pair\n  1,\n  2\n];\n",
		"class Foo {\n  // counter\n  count = 0;\n}\n",
		"let liveSocket = new LiveSocket(\"/live\", Socket, {\n  // fall back to long polling after 2.5s\n  longPollFallbackMs: 2500,\n  params: { _csrf_token: csrfToken }\n  // CSRF\n});\n",
	} {
		out := printSource(t, source)
		require.Equal(t, source, out)
		require.Equal(t, out, printSource(t, out))
	}
}
