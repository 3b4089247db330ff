package js_printer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/jsmend/jsmend/internal/js_ast"
)

// This printer turns a tree back into source text. The output is fully
// canonical: two-space indentation, one statement per line, double-quoted
// strings, and single-line object and array literals. Printing the result
// of a parse is therefore also the "format" operation, and printing an
// already-printed file is a no-op.

type printer struct {
	js     []byte
	indent int
}

// Print converts the tree into canonical source text. The output always
// ends with a newline unless it is empty.
func Print(tree js_ast.AST) string {
	p := &printer{}
	if tree.Hashbang != "" {
		p.print(tree.Hashbang)
		p.print("\n")
	}
	for _, stmt := range tree.Body {
		p.printStmt(stmt)
	}
	return string(p.js)
}

// PrintExpr converts a single expression into source text with no trailing
// newline. This is mainly useful for error messages and tests.
func PrintExpr(expr js_ast.Expr) string {
	p := &printer{}
	p.printExpr(expr, js_ast.LLowest)
	return string(p.js)
}

func (p *printer) print(text string) {
	p.js = append(p.js, text...)
}

func (p *printer) printIndent() {
	for i := 0; i < p.indent; i++ {
		p.js = append(p.js, ' ', ' ')
	}
}

func (p *printer) printQuotedUTF16(text []uint16) {
	p.js = append(p.js, quoteUTF16(text)...)
}

func quoteUTF16(text []uint16) string {
	sb := strings.Builder{}
	sb.WriteByte('"')

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch c {
		case 0:
			// "\0" followed by a digit means something else
			if i+1 < len(text) && text[i+1] >= '0' && text[i+1] <= '9' {
				sb.WriteString("\\x00")
			} else {
				sb.WriteString("\\0")
			}
		case '\b':
			sb.WriteString("\\b")
		case '\f':
			sb.WriteString("\\f")
		case '\n':
			sb.WriteString("\\n")
		case '\r':
			sb.WriteString("\\r")
		case '\v':
			sb.WriteString("\\v")
		case '\t':
			sb.WriteString("\\t")
		case '\\':
			sb.WriteString("\\\\")
		case '"':
			sb.WriteString("\\\"")
		case ' ':
			sb.WriteString("\\u2028")
		case ' ':
			sb.WriteString("\\u2029")

		default:
			switch {
			case c < 0x20:
				fmt.Fprintf(&sb, "\\x%02X", c)

			case c >= 0xD800 && c <= 0xDBFF:
				// A surrogate pair becomes the rune it encodes, a lone
				// surrogate must be escaped to stay valid UTF-8
				if i+1 < len(text) && text[i+1] >= 0xDC00 && text[i+1] <= 0xDFFF {
					sb.WriteRune(utf16.DecodeRune(rune(c), rune(text[i+1])))
					i++
				} else {
					fmt.Fprintf(&sb, "\\u%04X", c)
				}

			case c >= 0xDC00 && c <= 0xDFFF:
				fmt.Fprintf(&sb, "\\u%04X", c)

			default:
				sb.WriteRune(rune(c))
			}
		}
	}

	sb.WriteByte('"')
	return sb.String()
}

func numberToString(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}

	abs := math.Abs(value)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		// Exponents are printed without a "+" and without leading zeros
		text := strconv.FormatFloat(value, 'e', -1, 64)
		text = strings.Replace(text, "e+0", "e+", 1)
		text = strings.Replace(text, "e-0", "e-", 1)
		return text
	}

	return strconv.FormatFloat(value, 'f', -1, 64)
}

// True when the leftmost term of the expression is an object literal, a
// function expression, or a class expression. Those would be misparsed at
// the start of an expression statement, so the statement needs parentheses.
func startsWithAmbiguousTerm(expr js_ast.Expr) bool {
	for {
		switch e := expr.Data.(type) {
		case *js_ast.EObject, *js_ast.EFunction, *js_ast.EClass:
			return true

		case *js_ast.EBinary:
			expr = e.Left

		case *js_ast.ECall:
			expr = e.Target

		case *js_ast.EDot:
			expr = e.Target

		case *js_ast.EIndex:
			expr = e.Target

		case *js_ast.EIf:
			expr = e.Test

		case *js_ast.ETemplate:
			if e.Tag == nil {
				return false
			}
			expr = *e.Tag

		case *js_ast.EUnary:
			if e.Op.IsPrefix() {
				return false
			}
			expr = e.Value

		default:
			return false
		}
	}
}

func (p *printer) printBlock(stmts []js_ast.Stmt) {
	p.print("{\n")
	p.indent++
	for _, stmt := range stmts {
		p.printStmt(stmt)
	}
	p.indent--
	p.printIndent()
	p.print("}")
}

// Prints the body of a loop or conditional. A block is printed inline after
// a space; any other statement goes on its own indented line.
func (p *printer) printBody(body js_ast.Stmt) {
	if block, ok := body.Data.(*js_ast.SBlock); ok {
		p.print(" ")
		p.printBlock(block.Stmts)
		p.print("\n")
	} else {
		p.print("\n")
		p.indent++
		p.printStmt(body)
		p.indent--
	}
}

func (p *printer) printClauseItemsForImport(items []js_ast.ClauseItem) {
	p.print("{ ")
	for i, item := range items {
		if i > 0 {
			p.print(", ")
		}
		p.print(item.Alias)
		if item.Alias != item.Name.Name {
			p.print(" as ")
			p.print(item.Name.Name)
		}
	}
	p.print(" }")
}

func (p *printer) printClauseItemsForExport(items []js_ast.ClauseItem) {
	p.print("{ ")
	for i, item := range items {
		if i > 0 {
			p.print(", ")
		}
		p.print(item.Name.Name)
		if item.Alias != item.Name.Name {
			p.print(" as ")
			p.print(item.Alias)
		}
	}
	p.print(" }")
}

func (p *printer) printPath(path js_ast.Path) {
	p.printQuotedUTF16(stringToUTF16(path.Text))
}

func stringToUTF16(text string) []uint16 {
	value := []uint16{}
	for _, c := range text {
		if c <= 0xFFFF {
			value = append(value, uint16(c))
		} else {
			c -= 0x10000
			value = append(value, uint16(0xD800+((c>>10)&0x3FF)), uint16(0xDC00+(c&0x3FF)))
		}
	}
	return value
}

func (p *printer) printStmt(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SComment:
		p.printIndent()
		p.print(s.Text)
		p.print("\n")

	case *js_ast.SEmpty:
		p.printIndent()
		p.print(";\n")

	case *js_ast.SDebugger:
		p.printIndent()
		p.print("debugger;\n")

	case *js_ast.SDirective:
		p.printIndent()
		p.printQuotedUTF16(s.Value)
		p.print(";\n")

	case *js_ast.SImport:
		p.printIndent()
		p.print("import ")
		hasItems := false

		if s.DefaultName != nil {
			p.print(s.DefaultName.Name)
			hasItems = true
		}
		if s.Items != nil {
			if hasItems {
				p.print(", ")
			}
			p.printClauseItemsForImport(*s.Items)
			hasItems = true
		}
		if s.StarName != nil {
			if hasItems {
				p.print(", ")
			}
			p.print("* as ")
			p.print(s.StarName.Name)
			hasItems = true
		}

		if hasItems {
			p.print(" from ")
		}
		p.printPath(s.Path)
		p.print(";\n")

	case *js_ast.SExportClause:
		p.printIndent()
		p.print("export ")
		p.printClauseItemsForExport(s.Items)
		p.print(";\n")

	case *js_ast.SExportFrom:
		p.printIndent()
		p.print("export ")
		p.printClauseItemsForExport(s.Items)
		p.print(" from ")
		p.printPath(s.Path)
		p.print(";\n")

	case *js_ast.SExportStar:
		p.printIndent()
		p.print("export *")
		if s.Alias != nil {
			p.print(" as ")
			p.print(s.Alias.Name)
		}
		p.print(" from ")
		p.printPath(s.Path)
		p.print(";\n")

	case *js_ast.SExportDefault:
		p.printIndent()
		p.print("export default ")
		if s.Value.Stmt != nil {
			switch s2 := s.Value.Stmt.Data.(type) {
			case *js_ast.SFunction:
				p.printFnHeader(s2.Fn)
				p.printFn(s2.Fn)
				p.print("\n")
			case *js_ast.SClass:
				p.printClass(s2.Class)
				p.print("\n")
			}
		} else {
			p.printExpr(*s.Value.Expr, js_ast.LComma)
			p.print(";\n")
		}

	case *js_ast.SFunction:
		p.printIndent()
		if s.IsExport {
			p.print("export ")
		}
		p.printFnHeader(s.Fn)
		p.printFn(s.Fn)
		p.print("\n")

	case *js_ast.SClass:
		p.printIndent()
		if s.IsExport {
			p.print("export ")
		}
		p.printClass(s.Class)
		p.print("\n")

	case *js_ast.SLocal:
		p.printIndent()
		if s.IsExport {
			p.print("export ")
		}
		p.print(s.Kind.String())
		p.print(" ")
		p.printDecls(s.Decls)
		p.print(";\n")

	case *js_ast.SExpr:
		p.printIndent()
		if startsWithAmbiguousTerm(s.Value) {
			p.print("(")
			p.printExpr(s.Value, js_ast.LLowest)
			p.print(")")
		} else {
			p.printExpr(s.Value, js_ast.LLowest)
		}
		p.print(";\n")

	case *js_ast.SIf:
		p.printIndent()
		p.printIf(s)

	case *js_ast.SFor:
		p.printIndent()
		p.print("for (")
		if s.Init != nil {
			p.printForLoopInit(*s.Init)
		}
		p.print(";")
		if s.Test != nil {
			p.print(" ")
			p.printExpr(*s.Test, js_ast.LLowest)
		}
		p.print(";")
		if s.Update != nil {
			p.print(" ")
			p.printExpr(*s.Update, js_ast.LLowest)
		}
		p.print(")")
		p.printBody(s.Body)

	case *js_ast.SForIn:
		p.printIndent()
		p.print("for (")
		p.printForLoopInit(s.Init)
		p.print(" in ")
		p.printExpr(s.Value, js_ast.LLowest)
		p.print(")")
		p.printBody(s.Body)

	case *js_ast.SForOf:
		p.printIndent()
		p.print("for ")
		if s.IsAwait {
			p.print("await ")
		}
		p.print("(")
		p.printForLoopInit(s.Init)
		p.print(" of ")
		p.printExpr(s.Value, js_ast.LComma)
		p.print(")")
		p.printBody(s.Body)

	case *js_ast.SWhile:
		p.printIndent()
		p.print("while (")
		p.printExpr(s.Test, js_ast.LLowest)
		p.print(")")
		p.printBody(s.Body)

	case *js_ast.SDoWhile:
		p.printIndent()
		p.print("do")
		if block, ok := s.Body.Data.(*js_ast.SBlock); ok {
			p.print(" ")
			p.printBlock(block.Stmts)
			p.print(" ")
		} else {
			p.print("\n")
			p.indent++
			p.printStmt(s.Body)
			p.indent--
			p.printIndent()
		}
		p.print("while (")
		p.printExpr(s.Test, js_ast.LLowest)
		p.print(");\n")

	case *js_ast.SSwitch:
		p.printIndent()
		p.print("switch (")
		p.printExpr(s.Test, js_ast.LLowest)
		p.print(") {\n")
		p.indent++

		for _, c := range s.Cases {
			p.printIndent()
			if c.Value != nil {
				p.print("case ")
				p.printExpr(*c.Value, js_ast.LLowest)
				p.print(":")
			} else {
				p.print("default:")
			}

			if len(c.Body) == 1 {
				if block, ok := c.Body[0].Data.(*js_ast.SBlock); ok {
					p.print(" ")
					p.printBlock(block.Stmts)
					p.print("\n")
					continue
				}
			}

			p.print("\n")
			p.indent++
			for _, stmt := range c.Body {
				p.printStmt(stmt)
			}
			p.indent--
		}

		p.indent--
		p.printIndent()
		p.print("}\n")

	case *js_ast.STry:
		p.printIndent()
		p.print("try ")
		p.printBlock(s.Body)

		if s.Catch != nil {
			p.print(" catch ")
			if s.Catch.Binding != nil {
				p.print("(")
				p.printBinding(*s.Catch.Binding)
				p.print(") ")
			}
			p.printBlock(s.Catch.Body)
		}

		if s.Finally != nil {
			p.print(" finally ")
			p.printBlock(s.Finally.Stmts)
		}

		p.print("\n")

	case *js_ast.SLabel:
		p.printIndent()
		p.print(s.Name.Name)
		p.print(":")
		p.printBody(s.Stmt)

	case *js_ast.SReturn:
		p.printIndent()
		p.print("return")
		if s.Value != nil {
			p.print(" ")
			p.printExpr(*s.Value, js_ast.LLowest)
		}
		p.print(";\n")

	case *js_ast.SThrow:
		p.printIndent()
		p.print("throw ")
		p.printExpr(s.Value, js_ast.LLowest)
		p.print(";\n")

	case *js_ast.SBreak:
		p.printIndent()
		p.print("break")
		if s.Label != nil {
			p.print(" ")
			p.print(s.Label.Name)
		}
		p.print(";\n")

	case *js_ast.SContinue:
		p.printIndent()
		p.print("continue")
		if s.Label != nil {
			p.print(" ")
			p.print(s.Label.Name)
		}
		p.print(";\n")

	case *js_ast.SBlock:
		p.printIndent()
		p.printBlock(s.Stmts)
		p.print("\n")

	default:
		panic(fmt.Sprintf("unexpected statement of type %T", stmt.Data))
	}
}

func (p *printer) printIf(s *js_ast.SIf) {
	p.print("if (")
	p.printExpr(s.Test, js_ast.LLowest)
	p.print(")")

	if block, ok := s.Yes.Data.(*js_ast.SBlock); ok {
		p.print(" ")
		p.printBlock(block.Stmts)
		if s.No == nil {
			p.print("\n")
			return
		}
		p.print(" else")
	} else {
		p.print("\n")
		p.indent++
		p.printStmt(s.Yes)
		p.indent--
		if s.No == nil {
			return
		}
		p.printIndent()
		p.print("else")
	}

	switch no := s.No.Data.(type) {
	case *js_ast.SIf:
		p.print(" ")
		p.printIf(no)
	case *js_ast.SBlock:
		p.print(" ")
		p.printBlock(no.Stmts)
		p.print("\n")
	default:
		p.print("\n")
		p.indent++
		p.printStmt(*s.No)
		p.indent--
	}
}

// The init clause of a for loop is either a declaration without the
// trailing semicolon or an expression.
func (p *printer) printForLoopInit(init js_ast.Stmt) {
	switch s := init.Data.(type) {
	case *js_ast.SExpr:
		p.printExpr(s.Value, js_ast.LLowest)
	case *js_ast.SLocal:
		p.print(s.Kind.String())
		p.print(" ")
		p.printDecls(s.Decls)
	default:
		panic(fmt.Sprintf("unexpected for loop initializer of type %T", init.Data))
	}
}

func (p *printer) printDecls(decls []js_ast.Decl) {
	for i, decl := range decls {
		if i > 0 {
			p.print(", ")
		}
		p.printBinding(decl.Binding)
		if decl.Value != nil {
			p.print(" = ")
			p.printExpr(*decl.Value, js_ast.LComma)
		}
	}
}

func (p *printer) printBinding(binding js_ast.Binding) {
	switch b := binding.Data.(type) {
	case *js_ast.BMissing:

	case *js_ast.BIdentifier:
		p.print(b.Name)

	case *js_ast.BArray:
		p.print("[")
		for i, item := range b.Items {
			if i > 0 {
				p.print(", ")
			}
			if b.HasSpread && i == len(b.Items)-1 {
				p.print("...")
			}
			p.printBinding(item.Binding)
			if item.DefaultValue != nil {
				p.print(" = ")
				p.printExpr(*item.DefaultValue, js_ast.LComma)
			}
		}
		p.print("]")

	case *js_ast.BObject:
		if len(b.Properties) == 0 {
			p.print("{}")
			return
		}
		p.print("{ ")
		for i, property := range b.Properties {
			if i > 0 {
				p.print(", ")
			}

			if property.IsSpread {
				p.print("...")
				p.printBinding(property.Value)
				continue
			}

			if property.IsComputed {
				p.print("[")
				p.printExpr(property.Key, js_ast.LComma)
				p.print("]: ")
				p.printBinding(property.Value)
			} else {
				p.printPropertyKey(property.Key)

				// Shorthand: the value is a binding for the same name
				isShorthand := false
				if key, ok := property.Key.Data.(*js_ast.EIdentifier); ok {
					if value, ok := property.Value.Data.(*js_ast.BIdentifier); ok && key.Name == value.Name {
						isShorthand = true
					}
				}
				if !isShorthand {
					p.print(": ")
					p.printBinding(property.Value)
				}
			}

			if property.DefaultValue != nil {
				p.print(" = ")
				p.printExpr(*property.DefaultValue, js_ast.LComma)
			}
		}
		p.print(" }")

	default:
		panic(fmt.Sprintf("unexpected binding of type %T", binding.Data))
	}
}

func (p *printer) printFnHeader(fn js_ast.Fn) {
	if fn.IsAsync {
		p.print("async ")
	}
	p.print("function")
	if fn.IsGenerator {
		p.print("*")
	}
	if fn.Name != nil {
		p.print(" ")
		p.print(fn.Name.Name)
	}
}

// Prints "(args) { body }" for a function whose header is already printed.
func (p *printer) printFn(fn js_ast.Fn) {
	p.print("(")
	for i, arg := range fn.Args {
		if i > 0 {
			p.print(", ")
		}
		if fn.HasRestArg && i == len(fn.Args)-1 {
			p.print("...")
		}
		p.printBinding(arg.Binding)
		if arg.Default != nil {
			p.print(" = ")
			p.printExpr(*arg.Default, js_ast.LComma)
		}
	}
	p.print(") ")
	p.printBlock(fn.Body.Stmts)
}

// Comments attached below the statement level print on their own lines, so
// whatever carries them switches to a multi-line layout.
func (p *printer) printComments(comments []js_ast.Comment) {
	for _, comment := range comments {
		p.printIndent()
		p.print(comment.Text)
		p.print("\n")
	}
}

func propertiesHaveComments(properties []js_ast.Property, closeComments []js_ast.Comment) bool {
	if len(closeComments) > 0 {
		return true
	}
	for _, property := range properties {
		if len(property.CommentsBefore) > 0 {
			return true
		}
	}
	return false
}

func exprsHaveComments(exprs []js_ast.Expr, closeComments []js_ast.Comment) bool {
	if len(closeComments) > 0 {
		return true
	}
	for _, expr := range exprs {
		if len(expr.CommentsBefore) > 0 {
			return true
		}
	}
	return false
}

func (p *printer) printClass(class js_ast.Class) {
	p.print("class")
	if class.Name != nil {
		p.print(" ")
		p.print(class.Name.Name)
	}
	if class.Extends != nil {
		p.print(" extends ")
		p.printExpr(*class.Extends, js_ast.LNew)
	}

	if len(class.Properties) == 0 {
		p.print(" {}")
		return
	}

	p.print(" {\n")
	p.indent++
	for _, property := range class.Properties {
		p.printComments(property.CommentsBefore)
		p.printIndent()
		p.printProperty(property, true)
		p.print("\n")
	}
	p.indent--
	p.printIndent()
	p.print("}")
}

func (p *printer) printPropertyKey(key js_ast.Expr) {
	switch k := key.Data.(type) {
	case *js_ast.EIdentifier:
		p.print(k.Name)
	case *js_ast.EPrivateIdentifier:
		p.print(k.Name)
	case *js_ast.EString:
		p.printQuotedUTF16(k.Value)
	case *js_ast.ENumber:
		p.print(numberToString(k.Value))
	default:
		p.printExpr(key, js_ast.LComma)
	}
}

func (p *printer) printProperty(property js_ast.Property, isClassBody bool) {
	if property.Kind == js_ast.PropertySpread {
		p.print("...")
		p.printExpr(*property.Value, js_ast.LComma)
		return
	}

	if property.IsStatic {
		p.print("static ")
	}

	if property.IsMethod || property.Kind != js_ast.PropertyNormal {
		fn := property.Value.Data.(*js_ast.EFunction).Fn

		switch property.Kind {
		case js_ast.PropertyGet:
			p.print("get ")
		case js_ast.PropertySet:
			p.print("set ")
		default:
			if fn.IsAsync {
				p.print("async ")
			}
			if fn.IsGenerator {
				p.print("*")
			}
		}

		if property.IsComputed {
			p.print("[")
			p.printExpr(property.Key, js_ast.LComma)
			p.print("]")
		} else {
			p.printPropertyKey(property.Key)
		}

		p.printFn(fn)
		return
	}

	// A class field
	if isClassBody && property.Value == nil {
		if property.IsComputed {
			p.print("[")
			p.printExpr(property.Key, js_ast.LComma)
			p.print("]")
		} else {
			p.printPropertyKey(property.Key)
		}
		if property.Initializer != nil {
			p.print(" = ")
			p.printExpr(*property.Initializer, js_ast.LComma)
		}
		p.print(";")
		return
	}

	if property.IsComputed {
		p.print("[")
		p.printExpr(property.Key, js_ast.LComma)
		p.print("]: ")
		p.printExpr(*property.Value, js_ast.LComma)
		return
	}

	if property.WasShorthand {
		if key, ok := property.Key.Data.(*js_ast.EIdentifier); ok {
			if value, ok := property.Value.Data.(*js_ast.EIdentifier); ok && key.Name == value.Name {
				p.print(key.Name)
				if property.Initializer != nil {
					p.print(" = ")
					p.printExpr(*property.Initializer, js_ast.LComma)
				}
				return
			}
		}
	}

	p.printPropertyKey(property.Key)
	p.print(": ")
	p.printExpr(*property.Value, js_ast.LComma)
}

func (p *printer) printCallArgs(args []js_ast.Expr, closeComments []js_ast.Comment) {
	if exprsHaveComments(args, closeComments) {
		p.print("(\n")
		p.indent++
		for i, arg := range args {
			p.printComments(arg.CommentsBefore)
			p.printIndent()
			p.printExpr(arg, js_ast.LComma)
			if i+1 < len(args) {
				p.print(",")
			}
			p.print("\n")
		}
		p.printComments(closeComments)
		p.indent--
		p.printIndent()
		p.print(")")
		return
	}

	p.print("(")
	for i, arg := range args {
		if i > 0 {
			p.print(", ")
		}
		p.printExpr(arg, js_ast.LComma)
	}
	p.print(")")
}

func (p *printer) printExpr(expr js_ast.Expr, level js_ast.L) {
	switch e := expr.Data.(type) {
	case *js_ast.EMissing:

	case *js_ast.ENull:
		p.print("null")

	case *js_ast.ESuper:
		p.print("super")

	case *js_ast.EThis:
		p.print("this")

	case *js_ast.ENewTarget:
		p.print("new.target")

	case *js_ast.EImportMeta:
		p.print("import.meta")

	case *js_ast.EBoolean:
		if e.Value {
			p.print("true")
		} else {
			p.print("false")
		}

	case *js_ast.ENumber:
		p.print(numberToString(e.Value))

	case *js_ast.EBigInt:
		p.print(e.Value)

	case *js_ast.EString:
		p.printQuotedUTF16(e.Value)

	case *js_ast.ERegExp:
		p.print(e.Value)

	case *js_ast.EIdentifier:
		p.print(e.Name)

	case *js_ast.EPrivateIdentifier:
		p.print(e.Name)

	case *js_ast.ESpread:
		p.print("...")
		p.printExpr(e.Value, js_ast.LComma)

	case *js_ast.EArray:
		if exprsHaveComments(e.Items, e.CommentsBeforeClose) {
			p.print("[\n")
			p.indent++
			for i, item := range e.Items {
				p.printComments(item.CommentsBefore)
				p.printIndent()
				p.printExpr(item, js_ast.LComma)
				_, isMissing := item.Data.(*js_ast.EMissing)
				if i+1 < len(e.Items) || isMissing {
					p.print(",")
				}
				p.print("\n")
			}
			p.printComments(e.CommentsBeforeClose)
			p.indent--
			p.printIndent()
			p.print("]")
			return
		}
		p.print("[")
		for i, item := range e.Items {
			if i > 0 {
				p.print(", ")
			}
			p.printExpr(item, js_ast.LComma)

			// A trailing hole needs a trailing comma to exist
			if i == len(e.Items)-1 {
				if _, isMissing := item.Data.(*js_ast.EMissing); isMissing {
					p.print(",")
				}
			}
		}
		p.print("]")

	case *js_ast.EObject:
		if propertiesHaveComments(e.Properties, e.CommentsBeforeClose) {
			p.print("{\n")
			p.indent++
			for i, property := range e.Properties {
				p.printComments(property.CommentsBefore)
				p.printIndent()
				p.printProperty(property, false)
				if i+1 < len(e.Properties) {
					p.print(",")
				}
				p.print("\n")
			}
			p.printComments(e.CommentsBeforeClose)
			p.indent--
			p.printIndent()
			p.print("}")
			return
		}
		if len(e.Properties) == 0 {
			p.print("{}")
			return
		}
		p.print("{ ")
		for i, property := range e.Properties {
			if i > 0 {
				p.print(", ")
			}
			p.printProperty(property, false)
		}
		p.print(" }")

	case *js_ast.ETemplate:
		if e.Tag != nil {
			p.printExpr(*e.Tag, js_ast.LPostfix)
		}
		p.print("`")
		p.print(e.HeadRaw)
		for _, part := range e.Parts {
			p.print("${")
			p.printExpr(part.Value, js_ast.LLowest)
			p.print("}")
			p.print(part.TailRaw)
		}
		p.print("`")

	case *js_ast.EFunction:
		p.printFnHeader(e.Fn)
		p.printFn(e.Fn)

	case *js_ast.EClass:
		p.printClass(e.Class)

	case *js_ast.EArrow:
		wrap := level >= js_ast.LAssign
		if wrap {
			p.print("(")
		}

		if e.IsAsync {
			p.print("async ")
		}
		p.print("(")
		for i, arg := range e.Args {
			if i > 0 {
				p.print(", ")
			}
			if e.HasRestArg && i == len(e.Args)-1 {
				p.print("...")
			}
			p.printBinding(arg.Binding)
			if arg.Default != nil {
				p.print(" = ")
				p.printExpr(*arg.Default, js_ast.LComma)
			}
		}
		p.print(") => ")

		useExprBody := false
		if e.PreferExpr && len(e.Body.Stmts) == 1 {
			if ret, ok := e.Body.Stmts[0].Data.(*js_ast.SReturn); ok && ret.Value != nil {
				useExprBody = true
				if startsWithAmbiguousTerm(*ret.Value) {
					p.print("(")
					p.printExpr(*ret.Value, js_ast.LComma)
					p.print(")")
				} else {
					p.printExpr(*ret.Value, js_ast.LComma)
				}
			}
		}
		if !useExprBody {
			p.printBlock(e.Body.Stmts)
		}

		if wrap {
			p.print(")")
		}

	case *js_ast.ENew:
		wrap := level >= js_ast.LCall
		if wrap {
			p.print("(")
		}
		p.print("new ")
		p.printExpr(e.Target, js_ast.LNew)
		p.printCallArgs(e.Args, e.CommentsBeforeClose)
		if wrap {
			p.print(")")
		}

	case *js_ast.ECall:
		wrap := level >= js_ast.LNew
		if wrap {
			p.print("(")
		}
		p.printExpr(e.Target, js_ast.LPostfix)
		if e.OptionalChain == js_ast.OptionalChainStart {
			p.print("?.")
		}
		p.printCallArgs(e.Args, e.CommentsBeforeClose)
		if wrap {
			p.print(")")
		}

	case *js_ast.EDot:
		p.printMemberTarget(e.Target)
		if e.OptionalChain == js_ast.OptionalChainStart {
			p.print("?.")
		} else {
			p.print(".")
		}
		p.print(e.Name)

	case *js_ast.EIndex:
		p.printMemberTarget(e.Target)
		if private, ok := e.Index.Data.(*js_ast.EPrivateIdentifier); ok {
			if e.OptionalChain == js_ast.OptionalChainStart {
				p.print("?.")
			} else {
				p.print(".")
			}
			p.print(private.Name)
			return
		}
		if e.OptionalChain == js_ast.OptionalChainStart {
			p.print("?.")
		}
		p.print("[")
		p.printExpr(e.Index, js_ast.LLowest)
		p.print("]")

	case *js_ast.EImportCall:
		p.print("import(")
		p.printExpr(e.Value, js_ast.LComma)
		p.print(")")

	case *js_ast.EAwait:
		wrap := level >= js_ast.LPrefix
		if wrap {
			p.print("(")
		}
		p.print("await ")
		p.printExpr(e.Value, js_ast.LPrefix-1)
		if wrap {
			p.print(")")
		}

	case *js_ast.EYield:
		wrap := level >= js_ast.LAssign
		if wrap {
			p.print("(")
		}
		p.print("yield")
		if e.IsStar {
			p.print("*")
		}
		if e.Value != nil {
			p.print(" ")
			p.printExpr(*e.Value, js_ast.LYield)
		}
		if wrap {
			p.print(")")
		}

	case *js_ast.EUnary:
		entry := js_ast.OpTable[e.Op]
		wrap := level >= js_ast.LPrefix
		if wrap {
			p.print("(")
		}

		if e.Op.IsPrefix() {
			p.print(entry.Text)
			if entry.IsKeyword {
				p.print(" ")
			} else if needsSpaceBetweenPrefixOps(e.Op, e.Value) {
				p.print(" ")
			}
			p.printExpr(e.Value, js_ast.LPrefix-1)
		} else {
			p.printExpr(e.Value, js_ast.LPostfix-1)
			p.print(entry.Text)
		}

		if wrap {
			p.print(")")
		}

	case *js_ast.EBinary:
		entry := js_ast.OpTable[e.Op]
		wrap := level >= entry.Level

		// Mixing "??" with "||" or "&&" requires parentheses
		if e.Op == js_ast.BinOpNullishCoalescing {
			if isLogicalOrAnd(e.Left) || isLogicalOrAnd(e.Right) {
				wrap = true
			}
		}

		if wrap {
			p.print("(")
		}

		leftLevel := entry.Level - 1
		rightLevel := entry.Level - 1
		if e.Op.IsRightAssociative() {
			leftLevel = entry.Level
		}
		if e.Op.IsLeftAssociative() {
			rightLevel = entry.Level
		}

		p.printExpr(e.Left, leftLevel)
		if e.Op == js_ast.BinOpComma {
			p.print(", ")
		} else {
			p.print(" ")
			p.print(entry.Text)
			p.print(" ")
		}
		p.printExpr(e.Right, rightLevel)

		if wrap {
			p.print(")")
		}

	case *js_ast.EIf:
		wrap := level >= js_ast.LConditional
		if wrap {
			p.print("(")
		}
		p.printExpr(e.Test, js_ast.LConditional)
		p.print(" ? ")
		p.printExpr(e.Yes, js_ast.LComma)
		p.print(" : ")
		p.printExpr(e.No, js_ast.LComma)
		if wrap {
			p.print(")")
		}

	default:
		panic(fmt.Sprintf("unexpected expression of type %T", expr.Data))
	}
}

// The target of a "." access needs parentheses when it is a number, since
// "1.toString()" does not parse.
func (p *printer) printMemberTarget(target js_ast.Expr) {
	if _, isNumber := target.Data.(*js_ast.ENumber); isNumber {
		p.print("(")
		p.printExpr(target, js_ast.LLowest)
		p.print(")")
		return
	}
	p.printExpr(target, js_ast.LPostfix)
}

// "+ +a" and "- -a" must not merge into "++a" and "--a"
func needsSpaceBetweenPrefixOps(op js_ast.OpCode, value js_ast.Expr) bool {
	inner, ok := value.Data.(*js_ast.EUnary)
	if !ok {
		return false
	}
	switch op {
	case js_ast.UnOpPos:
		return inner.Op == js_ast.UnOpPos || inner.Op == js_ast.UnOpPreInc
	case js_ast.UnOpNeg:
		return inner.Op == js_ast.UnOpNeg || inner.Op == js_ast.UnOpPreDec
	}
	return false
}

func isLogicalOrAnd(expr js_ast.Expr) bool {
	if binary, ok := expr.Data.(*js_ast.EBinary); ok {
		return binary.Op == js_ast.BinOpLogicalOr || binary.Op == js_ast.BinOpLogicalAnd
	}
	return false
}
