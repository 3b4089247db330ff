package js_parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsmend/jsmend/internal/js_printer"
	"github.com/jsmend/jsmend/internal/logger"
)

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		source := logger.Source{PrettyPath: "<test>", Contents: contents}
		tree, ok := Parse(log, source, Options{})
		msgs := log.Done()
		require.True(t, ok, logger.MsgsToText(msgs, &source))
		require.Empty(t, msgs, logger.MsgsToText(msgs, &source))
		require.Equal(t, expected, js_printer.Print(tree))
	})
}

func expectParseError(t *testing.T, contents string, text string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		source := logger.Source{PrettyPath: "<test>", Contents: contents}
		_, _ = Parse(log, source, Options{})
		msgs := log.Done()
		require.NotEmpty(t, msgs, "expected a syntax error")
		all := []string{}
		for _, msg := range msgs {
			all = append(all, msg.Text)
		}
		require.Contains(t, strings.Join(all, "\n"), text)
	})
}

func TestDeclarations(t *testing.T) {
	expectPrinted(t, "let x = 1", "let x = 1;\n")
	expectPrinted(t, "const x = 1, y = 2", "const x = 1, y = 2;\n")
	expectPrinted(t, "var x", "var x;\n")
	expectPrinted(t, "let [a, b = 2] = c", "let [a, b = 2] = c;\n")
	expectPrinted(t, "let [, x] = y", "let [, x] = y;\n")
	expectPrinted(t, "let {a, b: c, ...rest} = d", "let { a, b: c, ...rest } = d;\n")
	expectPrinted(t, "let {a = 1} = b", "let { a = 1 } = b;\n")
}

func TestExpressions(t *testing.T) {
	expectPrinted(t, "x = a + b * c", "x = a + b * c;\n")
	expectPrinted(t, "x = (a + b) * c", "x = (a + b) * c;\n")
	expectPrinted(t, "x = a ** b ** c", "x = a ** b ** c;\n")
	expectPrinted(t, "x = (a ** b) ** c", "x = (a ** b) ** c;\n")
	expectPrinted(t, "x = a ? b : c ? d : e", "x = a ? b : c ? d : e;\n")
	expectPrinted(t, "x = (a, b, c)", "x = (a, b, c);\n")
	expectPrinted(t, "x = a ?? b", "x = a ?? b;\n")
	expectPrinted(t, "x = (a ?? b) || c", "x = (a ?? b) || c;\n")
	expectPrinted(t, "x = a || (b ?? c)", "x = a || (b ?? c);\n")
	expectPrinted(t, "x = -(-a)", "x = - -a;\n")
	expectPrinted(t, "x = typeof void 0", "x = typeof void 0;\n")
	expectPrinted(t, "x++", "x++;\n")
	expectPrinted(t, "x = a in b", "x = a in b;\n")
	expectPrinted(t, "x ||= y", "x ||= y;\n")
	expectPrinted(t, "x ??= y", "x ??= y;\n")
}

func TestMembers(t *testing.T) {
	expectPrinted(t, "a.b.c()", "a.b.c();\n")
	expectPrinted(t, "a[b](c)", "a[b](c);\n")
	expectPrinted(t, "a?.b", "a?.b;\n")
	expectPrinted(t, "a?.[b]", "a?.[b];\n")
	expectPrinted(t, "a?.b(c)", "a?.b(c);\n")
	expectPrinted(t, "new Foo", "new Foo();\n")
	expectPrinted(t, "new Foo(1, 2)", "new Foo(1, 2);\n")
	expectPrinted(t, "new Foo(1).bar", "new Foo(1).bar;\n")
	expectPrinted(t, "f(...args)", "f(...args);\n")
}

func TestStrings(t *testing.T) {
	expectPrinted(t, "x = 'abc'", "x = \"abc\";\n")
	expectPrinted(t, "x = 'it\\'s'", "x = \"it's\";\n")
	expectPrinted(t, "x = \"a\\nb\"", "x = \"a\\nb\";\n")
	expectPrinted(t, "x = `a${b}c`", "x = `a${b}c`;\n")
	expectPrinted(t, "x = tag`a${b}`", "x = tag`a${b}`;\n")
	expectPrinted(t, "x = /ab+c/gi", "x = /ab+c/gi;\n")
}

func TestArrows(t *testing.T) {
	expectPrinted(t, "x = a => a", "x = (a) => a;\n")
	expectPrinted(t, "x = () => {}", "x = () => {\n};\n")
	expectPrinted(t, "x = () => ({})", "x = () => ({});\n")
	expectPrinted(t, "x = (a, b) => a + b", "x = (a, b) => a + b;\n")
	expectPrinted(t, "x = async a => await a", "x = async (a) => await a;\n")
	expectPrinted(t, "x = ({a}, [b]) => a", "x = ({ a }, [b]) => a;\n")
	expectPrinted(t, "x = (a = 1, ...rest) => a", "x = (a = 1, ...rest) => a;\n")
}

func TestObjects(t *testing.T) {
	expectPrinted(t, "x = {}", "x = {};\n")
	expectPrinted(t, "x = {a: 1, 'b': 2}", "x = { a: 1, \"b\": 2 };\n")
	expectPrinted(t, "x = {a}", "x = { a };\n")
	expectPrinted(t, "x = {...a, b}", "x = { ...a, b };\n")
	expectPrinted(t, "x = {[k]: v}", "x = { [k]: v };\n")
	expectPrinted(t, "x = {get a() {\n}}", "x = { get a() {\n} };\n")
	expectPrinted(t, "x = {async *f() {\n}}", "x = { async *f() {\n} };\n")
	expectPrinted(t, "({a} = b)", "({ a } = b);\n")
}

func TestStatements(t *testing.T) {
	expectPrinted(t, "if (a) b(); else c()", "if (a)\n  b();\nelse\n  c();\n")
	expectPrinted(t, "if (a) { b() } else if (c) { d() }",
		"if (a) {\n  b();\n} else if (c) {\n  d();\n}\n")
	expectPrinted(t, "for (let i = 0; i < n; i++) f(i)",
		"for (let i = 0; i < n; i++)\n  f(i);\n")
	expectPrinted(t, "for (;;) break", "for (;;)\n  break;\n")
	expectPrinted(t, "for (const x of xs) { f(x) }",
		"for (const x of xs) {\n  f(x);\n}\n")
	expectPrinted(t, "for (const k in o) f(k)", "for (const k in o)\n  f(k);\n")
	expectPrinted(t, "while (a) b()", "while (a)\n  b();\n")
	expectPrinted(t, "do { a() } while (b)", "do {\n  a();\n} while (b);\n")
	expectPrinted(t, "try { a() } catch { b() } finally { c() }",
		"try {\n  a();\n} catch {\n  b();\n} finally {\n  c();\n}\n")
	expectPrinted(t, "try { a() } catch (e) { b(e) }",
		"try {\n  a();\n} catch (e) {\n  b(e);\n}\n")
	expectPrinted(t, "throw new Error(\"x\")", "throw new Error(\"x\");\n")
	expectPrinted(t, "switch (x) {\ncase 1:\n  a();\n  break;\ndefault:\n  b();\n}",
		"switch (x) {\n  case 1:\n    a();\n    break;\n  default:\n    b();\n}\n")
	expectPrinted(t, "outer: for (;;) continue outer",
		"outer:\n  for (;;)\n    continue outer;\n")
	expectPrinted(t, "debugger", "debugger;\n")
}

func TestFunctions(t *testing.T) {
	expectPrinted(t, "function f(a, b = 1, ...rest) {\n  return a;\n}",
		"function f(a, b = 1, ...rest) {\n  return a;\n}\n")
	expectPrinted(t, "async function f() {\n  await g();\n}",
		"async function f() {\n  await g();\n}\n")
	expectPrinted(t, "function* f() {\n  yield 1;\n}",
		"function* f() {\n  yield 1;\n}\n")
	expectPrinted(t, "x = function() {\n}", "x = function() {\n};\n")
	expectPrinted(t, "x = function named() {\n}", "x = function named() {\n};\n")
	expectPrinted(t, "async function f() {\n  for await (const x of y)\n    g(x);\n}",
		"async function f() {\n  for await (const x of y)\n    g(x);\n}\n")
}

func TestClasses(t *testing.T) {
	expectPrinted(t, "class A {}", "class A {}\n")
	expectPrinted(t, "class A extends B {\n  constructor() {\n    super();\n  }\n}",
		"class A extends B {\n  constructor() {\n    super();\n  }\n}\n")
	expectPrinted(t, "class A {\n  static get x() {\n    return 1;\n  }\n}",
		"class A {\n  static get x() {\n    return 1;\n  }\n}\n")
	expectPrinted(t, "class A {\n  #count = 0;\n  inc() {\n    this.#count++;\n  }\n}",
		"class A {\n  #count = 0;\n  inc() {\n    this.#count++;\n  }\n}\n")
	expectPrinted(t, "x = class extends B {}", "x = class extends B {};\n")
}

func TestImports(t *testing.T) {
	expectPrinted(t, "import \"./app.css\"", "import \"./app.css\";\n")
	expectPrinted(t, "import Sortable from \"sortablejs\"", "import Sortable from \"sortablejs\";\n")
	expectPrinted(t, "import { Socket } from \"phoenix\"", "import { Socket } from \"phoenix\";\n")
	expectPrinted(t, "import { a as b, c } from \"m\"", "import { a as b, c } from \"m\";\n")
	expectPrinted(t, "import topbar, * as bar from \"topbar\"", "import topbar, * as bar from \"topbar\";\n")
	expectPrinted(t, "x = import(\"./lazy.js\")", "x = import(\"./lazy.js\");\n")
	expectPrinted(t, "x = import.meta.url", "x = import.meta.url;\n")
}

func TestExports(t *testing.T) {
	expectPrinted(t, "export const x = 1", "export const x = 1;\n")
	expectPrinted(t, "export function f() {\n}", "export function f() {\n}\n")
	expectPrinted(t, "export { a, b as c }", "export { a, b as c };\n")
	expectPrinted(t, "export { a } from \"m\"", "export { a } from \"m\";\n")
	expectPrinted(t, "export * from \"m\"", "export * from \"m\";\n")
	expectPrinted(t, "export * as ns from \"m\"", "export * as ns from \"m\";\n")
	expectPrinted(t, "export default class {}", "export default class {}\n")
	expectPrinted(t, "export default function f() {\n}", "export default function f() {\n}\n")
	expectPrinted(t, "export default a + b", "export default a + b;\n")
}

func TestComments(t *testing.T) {
	expectPrinted(t, "// leading\nlet x = 1", "// leading\nlet x = 1;\n")
	expectPrinted(t, "/* block */\nf()", "/* block */\nf();\n")
	expectPrinted(t, "let a = 1\n// between\nlet b = 2", "let a = 1;\n// between\nlet b = 2;\n")

	// Comments inside object literals attach to the property that follows
	expectPrinted(t, "x = {\n  // first\n  a: 1,\n  b: 2\n}",
		"x = {\n  // first\n  a: 1,\n  b: 2\n};\n")
	expectPrinted(t, "x = { a: 1, /* keep */ b: 2 }",
		"x = {\n  a: 1,\n  /* keep */\n  b: 2\n};\n")
	expectPrinted(t, "x = { a: 1 /* after */, b: 2 }",
		"x = {\n  a: 1,\n  /* after */\n  b: 2\n};\n")
	expectPrinted(t, "x = {\n  a: 1\n  // trailing\n}",
		"x = {\n  a: 1\n  // trailing\n};\n")

	// Call arguments and array elements keep their comments too
	expectPrinted(t, "f(\n  // first\n  a,\n  b\n)",
		"f(\n  // first\n  a,\n  b\n);\n")
	expectPrinted(t, "x = [\n  // first\n  1,\n  2\n]",
		"x = [\n  // first\n  1,\n  2\n];\n")

	// Class members as well
	expectPrinted(t, "class Foo {\n  // counter\n  count = 0;\n}",
		"class Foo {\n  // counter\n  count = 0;\n}\n")
}

func TestDirectives(t *testing.T) {
	expectPrinted(t, "\"use strict\"\nf()", "\"use strict\";\nf();\n")
	expectPrinted(t, "#!/usr/bin/env node\nf()", "#!/usr/bin/env node\nf();\n")
}

func TestStatementStartAmbiguity(t *testing.T) {
	expectPrinted(t, "({a: 1})", "({ a: 1 });\n")
	expectPrinted(t, "(function() {\n})()", "(function() {\n}());\n")
	expectPrinted(t, "(class {}).name", "(class {}.name);\n")
}

func TestSyntaxErrors(t *testing.T) {
	expectParseError(t, "let x = ", "Unexpected end of file")
	expectParseError(t, "f(", "Unexpected end of file")
	expectParseError(t, "with (a) b()", "With statements cannot be used in a module")
	expectParseError(t, "switch (x) {\ndefault:\n  a();\ndefault:\n  b();\n}",
		"Multiple default clauses are not allowed")
	expectParseError(t, "try { a() }", "Expected \"catch\"")
	expectParseError(t, "function* f() {\n  x = a + yield b;\n}", "Cannot use a \"yield\" expression here")
	expectParseError(t, "x = (a, ...b)", "Unexpected \"...\"")
	expectParseError(t, "x = ()", "Unexpected \")\"")
}

func TestPartialResultOnSyntaxError(t *testing.T) {
	log := logger.NewDeferLog()
	source := logger.Source{PrettyPath: "<test>", Contents: "let x = 1\nlet y = ;\n"}
	tree, ok := Parse(log, source, Options{})
	msgs := log.Done()

	require.False(t, ok)
	require.NotEmpty(t, msgs)

	// The statement before the error is still in the tree
	require.Len(t, tree.Body, 1)
	require.Equal(t, "let x = 1;\n", js_printer.Print(tree))
}
