package estree

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jsmend/jsmend/internal/js_ast"
	"github.com/jsmend/jsmend/internal/js_lexer"
	"github.com/jsmend/jsmend/internal/js_parser"
	"github.com/jsmend/jsmend/internal/logger"
)

// Dump parses the source and returns an ESTree-shaped JSON document:
//
//	{ "program": <ESTree>, "comments": [...], "errors": [...] }
//
// Syntax errors are not fatal here: they land in "errors" while "program"
// still holds the prefix of the file that parsed cleanly before the first
// error. All offsets in the document are UTF-16 code-unit indices.
func Dump(contents string) (string, error) {
	log := logger.NewDeferLog()
	source := logger.Source{PrettyPath: "<source>", Contents: contents}
	tree, _ := js_parser.Parse(log, source, js_parser.Options{})
	msgs := log.Done()

	c := &converter{source: contents, offsets: newOffsetConverter(contents)}

	program := c.program(&tree)
	comments := []node{}
	for _, comment := range tree.Comments {
		comments = append(comments, c.comment(comment))
	}

	errors := []node{}
	for _, msg := range msgs {
		errors = append(errors, c.diagnostic(msg))
	}

	doc := struct {
		Program  any    `json:"program"`
		Comments []node `json:"comments"`
		Errors   []node `json:"errors"`
	}{program, comments, errors}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing tree dump: %w", err)
	}
	return string(out), nil
}

type node = map[string]any

type converter struct {
	source  string
	offsets *offsetConverter
}

func (c *converter) node(kind string, loc logger.Loc, end logger.Loc) node {
	return node{
		"type":  kind,
		"start": c.offsets.Convert(loc.Start),
		"end":   c.offsets.Convert(end.Start),
	}
}

// The raw source text behind a span, used for literal "raw" fields.
func (c *converter) raw(loc logger.Loc, end logger.Loc) string {
	if loc.Start >= 0 && end.Start >= loc.Start && int(end.Start) <= len(c.source) {
		return c.source[loc.Start:end.Start]
	}
	return ""
}

func (c *converter) comment(comment js_ast.Comment) node {
	kind := "Block"
	if comment.IsLine() {
		kind = "Line"
	}
	return node{
		"kind":  kind,
		"value": comment.Value(),
		"start": c.offsets.Convert(comment.Loc.Start),
		"end":   c.offsets.Convert(comment.End.Start),
	}
}

func (c *converter) diagnostic(msg logger.Msg) node {
	labels := []node{}
	for _, label := range msg.Labels {
		l := node{
			"start":   c.offsets.Convert(label.Range.Loc.Start),
			"end":     c.offsets.Convert(label.Range.End()),
			"primary": label.Primary,
		}
		if label.Text != "" {
			l["label"] = label.Text
		}
		labels = append(labels, l)
	}

	d := node{
		"severity": msg.Kind.String(),
		"message":  msg.Text,
		"labels":   labels,
		"code":     msg.Code,
	}
	if msg.Help != "" {
		d["help"] = msg.Help
	}
	if msg.URL != "" {
		d["url"] = msg.URL
	}
	return d
}

func (c *converter) program(tree *js_ast.AST) node {
	start := logger.Loc{}
	end := logger.Loc{Start: int32(len(c.source))}

	body := []any{}
	for _, stmt := range tree.Body {
		if _, isComment := stmt.Data.(*js_ast.SComment); isComment {
			continue
		}
		body = append(body, c.stmt(stmt))
	}

	n := c.node("Program", start, end)
	n["sourceType"] = "module"
	n["body"] = body
	return n
}

func (c *converter) stmts(stmts []js_ast.Stmt) []any {
	out := []any{}
	for _, stmt := range stmts {
		if _, isComment := stmt.Data.(*js_ast.SComment); isComment {
			continue
		}
		out = append(out, c.stmt(stmt))
	}
	return out
}

func (c *converter) stmt(stmt js_ast.Stmt) node {
	switch s := stmt.Data.(type) {
	case *js_ast.SEmpty:
		return c.node("EmptyStatement", stmt.Loc, stmt.End)

	case *js_ast.SDebugger:
		return c.node("DebuggerStatement", stmt.Loc, stmt.End)

	case *js_ast.SDirective:
		n := c.node("ExpressionStatement", stmt.Loc, stmt.End)
		value := js_lexer.UTF16ToString(s.Value)
		literal := c.node("Literal", stmt.Loc, stmt.End)
		literal["value"] = value
		literal["raw"] = c.raw(stmt.Loc, stmt.End)
		n["expression"] = literal
		n["directive"] = value
		return n

	case *js_ast.SExpr:
		n := c.node("ExpressionStatement", stmt.Loc, stmt.End)
		n["expression"] = c.expr(s.Value)
		return n

	case *js_ast.SBlock:
		n := c.node("BlockStatement", stmt.Loc, stmt.End)
		n["body"] = c.stmts(s.Stmts)
		return n

	case *js_ast.SLocal:
		n := c.localNode(s, stmt.Loc, stmt.End)
		if s.IsExport {
			wrapper := c.node("ExportNamedDeclaration", stmt.Loc, stmt.End)
			wrapper["declaration"] = n
			wrapper["specifiers"] = []any{}
			wrapper["source"] = nil
			return wrapper
		}
		return n

	case *js_ast.SFunction:
		n := c.fnNode("FunctionDeclaration", s.Fn, stmt.Loc, stmt.End)
		if s.IsExport {
			wrapper := c.node("ExportNamedDeclaration", stmt.Loc, stmt.End)
			wrapper["declaration"] = n
			wrapper["specifiers"] = []any{}
			wrapper["source"] = nil
			return wrapper
		}
		return n

	case *js_ast.SClass:
		n := c.classNode("ClassDeclaration", s.Class, stmt.Loc, stmt.End)
		if s.IsExport {
			wrapper := c.node("ExportNamedDeclaration", stmt.Loc, stmt.End)
			wrapper["declaration"] = n
			wrapper["specifiers"] = []any{}
			wrapper["source"] = nil
			return wrapper
		}
		return n

	case *js_ast.SIf:
		n := c.node("IfStatement", stmt.Loc, stmt.End)
		n["test"] = c.expr(s.Test)
		n["consequent"] = c.stmt(s.Yes)
		if s.No != nil {
			n["alternate"] = c.stmt(*s.No)
		} else {
			n["alternate"] = nil
		}
		return n

	case *js_ast.SFor:
		n := c.node("ForStatement", stmt.Loc, stmt.End)
		if s.Init != nil {
			n["init"] = c.forInit(*s.Init)
		} else {
			n["init"] = nil
		}
		if s.Test != nil {
			n["test"] = c.expr(*s.Test)
		} else {
			n["test"] = nil
		}
		if s.Update != nil {
			n["update"] = c.expr(*s.Update)
		} else {
			n["update"] = nil
		}
		n["body"] = c.stmt(s.Body)
		return n

	case *js_ast.SForIn:
		n := c.node("ForInStatement", stmt.Loc, stmt.End)
		n["left"] = c.forInit(s.Init)
		n["right"] = c.expr(s.Value)
		n["body"] = c.stmt(s.Body)
		return n

	case *js_ast.SForOf:
		n := c.node("ForOfStatement", stmt.Loc, stmt.End)
		n["await"] = s.IsAwait
		n["left"] = c.forInit(s.Init)
		n["right"] = c.expr(s.Value)
		n["body"] = c.stmt(s.Body)
		return n

	case *js_ast.SWhile:
		n := c.node("WhileStatement", stmt.Loc, stmt.End)
		n["test"] = c.expr(s.Test)
		n["body"] = c.stmt(s.Body)
		return n

	case *js_ast.SDoWhile:
		n := c.node("DoWhileStatement", stmt.Loc, stmt.End)
		n["body"] = c.stmt(s.Body)
		n["test"] = c.expr(s.Test)
		return n

	case *js_ast.SSwitch:
		cases := []any{}
		for _, sc := range s.Cases {
			caseNode := c.node("SwitchCase", stmt.Loc, stmt.End)
			if sc.Value != nil {
				caseNode["test"] = c.expr(*sc.Value)
			} else {
				caseNode["test"] = nil
			}
			caseNode["consequent"] = c.stmts(sc.Body)
			cases = append(cases, caseNode)
		}
		n := c.node("SwitchStatement", stmt.Loc, stmt.End)
		n["discriminant"] = c.expr(s.Test)
		n["cases"] = cases
		return n

	case *js_ast.STry:
		n := c.node("TryStatement", stmt.Loc, stmt.End)
		block := c.node("BlockStatement", stmt.Loc, stmt.End)
		block["body"] = c.stmts(s.Body)
		n["block"] = block
		if s.Catch != nil {
			handler := c.node("CatchClause", s.Catch.Loc, stmt.End)
			if s.Catch.Binding != nil {
				handler["param"] = c.binding(*s.Catch.Binding)
			} else {
				handler["param"] = nil
			}
			catchBody := c.node("BlockStatement", s.Catch.Loc, stmt.End)
			catchBody["body"] = c.stmts(s.Catch.Body)
			handler["body"] = catchBody
			n["handler"] = handler
		} else {
			n["handler"] = nil
		}
		if s.Finally != nil {
			finalizer := c.node("BlockStatement", s.Finally.Loc, stmt.End)
			finalizer["body"] = c.stmts(s.Finally.Stmts)
			n["finalizer"] = finalizer
		} else {
			n["finalizer"] = nil
		}
		return n

	case *js_ast.SLabel:
		n := c.node("LabeledStatement", stmt.Loc, stmt.End)
		n["label"] = c.identifier(s.Name.Name, s.Name.Loc)
		n["body"] = c.stmt(s.Stmt)
		return n

	case *js_ast.SReturn:
		n := c.node("ReturnStatement", stmt.Loc, stmt.End)
		if s.Value != nil {
			n["argument"] = c.expr(*s.Value)
		} else {
			n["argument"] = nil
		}
		return n

	case *js_ast.SThrow:
		n := c.node("ThrowStatement", stmt.Loc, stmt.End)
		n["argument"] = c.expr(s.Value)
		return n

	case *js_ast.SBreak:
		n := c.node("BreakStatement", stmt.Loc, stmt.End)
		if s.Label != nil {
			n["label"] = c.identifier(s.Label.Name, s.Label.Loc)
		} else {
			n["label"] = nil
		}
		return n

	case *js_ast.SContinue:
		n := c.node("ContinueStatement", stmt.Loc, stmt.End)
		if s.Label != nil {
			n["label"] = c.identifier(s.Label.Name, s.Label.Loc)
		} else {
			n["label"] = nil
		}
		return n

	case *js_ast.SImport:
		specifiers := []any{}
		if s.DefaultName != nil {
			spec := c.node("ImportDefaultSpecifier", s.DefaultName.Loc, s.DefaultName.Loc)
			spec["local"] = c.identifier(s.DefaultName.Name, s.DefaultName.Loc)
			specifiers = append(specifiers, spec)
		}
		if s.Items != nil {
			for _, item := range *s.Items {
				spec := c.node("ImportSpecifier", item.AliasLoc, item.Name.Loc)
				spec["imported"] = c.identifier(item.Alias, item.AliasLoc)
				spec["local"] = c.identifier(item.Name.Name, item.Name.Loc)
				specifiers = append(specifiers, spec)
			}
		}
		if s.StarName != nil {
			spec := c.node("ImportNamespaceSpecifier", s.StarName.Loc, s.StarName.Loc)
			spec["local"] = c.identifier(s.StarName.Name, s.StarName.Loc)
			specifiers = append(specifiers, spec)
		}
		n := c.node("ImportDeclaration", stmt.Loc, stmt.End)
		n["specifiers"] = specifiers
		n["source"] = c.pathLiteral(s.Path)
		return n

	case *js_ast.SExportClause:
		n := c.node("ExportNamedDeclaration", stmt.Loc, stmt.End)
		n["declaration"] = nil
		n["specifiers"] = c.exportSpecifiers(s.Items)
		n["source"] = nil
		return n

	case *js_ast.SExportFrom:
		n := c.node("ExportNamedDeclaration", stmt.Loc, stmt.End)
		n["declaration"] = nil
		n["specifiers"] = c.exportSpecifiers(s.Items)
		n["source"] = c.pathLiteral(s.Path)
		return n

	case *js_ast.SExportStar:
		n := c.node("ExportAllDeclaration", stmt.Loc, stmt.End)
		if s.Alias != nil {
			n["exported"] = c.identifier(s.Alias.Name, s.Alias.Loc)
		} else {
			n["exported"] = nil
		}
		n["source"] = c.pathLiteral(s.Path)
		return n

	case *js_ast.SExportDefault:
		n := c.node("ExportDefaultDeclaration", stmt.Loc, stmt.End)
		if s.Value.Expr != nil {
			n["declaration"] = c.expr(*s.Value.Expr)
		} else {
			n["declaration"] = c.stmt(*s.Value.Stmt)
		}
		return n
	}

	// SComment is filtered out by the callers
	return c.node("EmptyStatement", stmt.Loc, stmt.End)
}

func (c *converter) forInit(init js_ast.Stmt) any {
	switch s := init.Data.(type) {
	case *js_ast.SExpr:
		return c.expr(s.Value)
	case *js_ast.SLocal:
		return c.localNode(s, init.Loc, init.End)
	}
	return nil
}

func (c *converter) localNode(s *js_ast.SLocal, loc logger.Loc, end logger.Loc) node {
	declarations := []any{}
	for _, decl := range s.Decls {
		declEnd := decl.Binding.End
		if decl.Value != nil {
			declEnd = decl.Value.End
		}
		d := c.node("VariableDeclarator", decl.Binding.Loc, declEnd)
		d["id"] = c.binding(decl.Binding)
		if decl.Value != nil {
			d["init"] = c.expr(*decl.Value)
		} else {
			d["init"] = nil
		}
		declarations = append(declarations, d)
	}
	n := c.node("VariableDeclaration", loc, end)
	n["kind"] = s.Kind.String()
	n["declarations"] = declarations
	return n
}

func (c *converter) exportSpecifiers(items []js_ast.ClauseItem) []any {
	specifiers := []any{}
	for _, item := range items {
		spec := c.node("ExportSpecifier", item.Name.Loc, item.AliasLoc)
		spec["local"] = c.identifier(item.Name.Name, item.Name.Loc)
		spec["exported"] = c.identifier(item.Alias, item.AliasLoc)
		specifiers = append(specifiers, spec)
	}
	return specifiers
}

func (c *converter) identifier(name string, loc logger.Loc) node {
	end := logger.Loc{Start: loc.Start + int32(len(name))}
	n := c.node("Identifier", loc, end)
	n["name"] = name
	return n
}

// The tree keeps only the decoded path text, so the end of the string token
// is recovered by scanning for the closing quote.
func (c *converter) pathLiteral(path js_ast.Path) node {
	end := path.Loc
	if int(path.Loc.Start) < len(c.source) {
		quote := c.source[path.Loc.Start]
		for i := int(path.Loc.Start) + 1; i < len(c.source); i++ {
			if c.source[i] == '\\' {
				i++
				continue
			}
			if c.source[i] == quote {
				end = logger.Loc{Start: int32(i + 1)}
				break
			}
		}
	}
	n := c.node("Literal", path.Loc, end)
	n["value"] = path.Text
	n["raw"] = c.raw(path.Loc, end)
	return n
}

func (c *converter) fnNode(kind string, fn js_ast.Fn, loc logger.Loc, end logger.Loc) node {
	n := c.node(kind, loc, end)
	if fn.Name != nil {
		n["id"] = c.identifier(fn.Name.Name, fn.Name.Loc)
	} else {
		n["id"] = nil
	}
	n["params"] = c.params(fn.Args, fn.HasRestArg)
	body := c.node("BlockStatement", fn.Body.Loc, end)
	body["body"] = c.stmts(fn.Body.Stmts)
	n["body"] = body
	n["async"] = fn.IsAsync
	n["generator"] = fn.IsGenerator
	return n
}

func (c *converter) params(args []js_ast.Arg, hasRest bool) []any {
	params := []any{}
	for i, arg := range args {
		var param any = c.binding(arg.Binding)
		if arg.Default != nil {
			p := c.node("AssignmentPattern", arg.Binding.Loc, arg.Default.End)
			p["left"] = param
			p["right"] = c.expr(*arg.Default)
			param = p
		}
		if hasRest && i == len(args)-1 {
			p := c.node("RestElement", arg.Binding.Loc, arg.Binding.End)
			p["argument"] = param
			param = p
		}
		params = append(params, param)
	}
	return params
}

func (c *converter) binding(binding js_ast.Binding) any {
	switch b := binding.Data.(type) {
	case *js_ast.BMissing:
		return nil

	case *js_ast.BIdentifier:
		return c.identifier(b.Name, binding.Loc)

	case *js_ast.BArray:
		elements := []any{}
		for i, item := range b.Items {
			var element any = c.binding(item.Binding)
			if item.DefaultValue != nil {
				p := c.node("AssignmentPattern", item.Binding.Loc, item.DefaultValue.End)
				p["left"] = element
				p["right"] = c.expr(*item.DefaultValue)
				element = p
			}
			if b.HasSpread && i == len(b.Items)-1 {
				p := c.node("RestElement", item.Binding.Loc, item.Binding.End)
				p["argument"] = element
				element = p
			}
			elements = append(elements, element)
		}
		n := c.node("ArrayPattern", binding.Loc, binding.End)
		n["elements"] = elements
		return n

	case *js_ast.BObject:
		properties := []any{}
		for _, property := range b.Properties {
			if property.IsSpread {
				value := c.binding(property.Value)
				p := c.node("RestElement", property.Value.Loc, property.Value.End)
				p["argument"] = value
				properties = append(properties, p)
				continue
			}

			var value any = c.binding(property.Value)
			if property.DefaultValue != nil {
				ap := c.node("AssignmentPattern", property.Value.Loc, property.DefaultValue.End)
				ap["left"] = value
				ap["right"] = c.expr(*property.DefaultValue)
				value = ap
			}

			p := c.node("Property", property.Key.Loc, property.Value.End)
			p["key"] = c.expr(property.Key)
			p["value"] = value
			p["kind"] = "init"
			p["computed"] = property.IsComputed
			p["method"] = false

			shorthand := false
			if key, ok := property.Key.Data.(*js_ast.EIdentifier); ok {
				if id, ok := property.Value.Data.(*js_ast.BIdentifier); ok && id.Name == key.Name {
					shorthand = true
				}
			}
			p["shorthand"] = shorthand
			properties = append(properties, p)
		}
		n := c.node("ObjectPattern", binding.Loc, binding.End)
		n["properties"] = properties
		return n
	}
	return nil
}

func (c *converter) classNode(kind string, class js_ast.Class, loc logger.Loc, end logger.Loc) node {
	n := c.node(kind, loc, end)
	if class.Name != nil {
		n["id"] = c.identifier(class.Name.Name, class.Name.Loc)
	} else {
		n["id"] = nil
	}
	if class.Extends != nil {
		n["superClass"] = c.expr(*class.Extends)
	} else {
		n["superClass"] = nil
	}

	members := []any{}
	for _, property := range class.Properties {
		members = append(members, c.classMember(property))
	}
	body := c.node("ClassBody", class.BodyLoc, end)
	body["body"] = members
	n["body"] = body
	return n
}

func (c *converter) classMember(property js_ast.Property) node {
	keyEnd := property.Key.End

	if property.IsMethod || property.Kind != js_ast.PropertyNormal {
		fn := property.Value.Data.(*js_ast.EFunction).Fn
		n := c.node("MethodDefinition", property.Key.Loc, property.Value.End)
		n["key"] = c.expr(property.Key)
		n["value"] = c.fnNode("FunctionExpression", fn, property.Value.Loc, property.Value.End)
		n["static"] = property.IsStatic
		n["computed"] = property.IsComputed

		kind := "method"
		switch property.Kind {
		case js_ast.PropertyGet:
			kind = "get"
		case js_ast.PropertySet:
			kind = "set"
		default:
			if !property.IsStatic && !property.IsComputed {
				if key, ok := property.Key.Data.(*js_ast.EIdentifier); ok && key.Name == "constructor" {
					kind = "constructor"
				}
			}
		}
		n["kind"] = kind
		return n
	}

	end := keyEnd
	if property.Initializer != nil {
		end = property.Initializer.End
	}
	n := c.node("PropertyDefinition", property.Key.Loc, end)
	n["key"] = c.expr(property.Key)
	if property.Initializer != nil {
		n["value"] = c.expr(*property.Initializer)
	} else {
		n["value"] = nil
	}
	n["static"] = property.IsStatic
	n["computed"] = property.IsComputed
	return n
}

func (c *converter) objectProperty(property js_ast.Property) node {
	if property.Kind == js_ast.PropertySpread {
		n := c.node("SpreadElement", property.Value.Loc, property.Value.End)
		n["argument"] = c.expr(*property.Value)
		return n
	}

	end := property.Key.End
	if property.Value != nil {
		end = property.Value.End
	}
	n := c.node("Property", property.Key.Loc, end)
	n["key"] = c.expr(property.Key)
	n["computed"] = property.IsComputed
	n["method"] = property.IsMethod

	kind := "init"
	switch property.Kind {
	case js_ast.PropertyGet:
		kind = "get"
	case js_ast.PropertySet:
		kind = "set"
	}
	n["kind"] = kind

	if property.Value != nil {
		n["value"] = c.expr(*property.Value)
	} else {
		n["value"] = nil
	}

	shorthand := false
	if property.WasShorthand {
		shorthand = true
	} else if key, ok := property.Key.Data.(*js_ast.EIdentifier); ok && property.Value != nil {
		if id, ok := property.Value.Data.(*js_ast.EIdentifier); ok && id.Name == key.Name {
			shorthand = true
		}
	}
	n["shorthand"] = shorthand
	return n
}

func (c *converter) expr(expr js_ast.Expr) any {
	switch e := expr.Data.(type) {
	case *js_ast.EMissing:
		return nil

	case *js_ast.ENull:
		n := c.node("Literal", expr.Loc, expr.End)
		n["value"] = nil
		n["raw"] = "null"
		return n

	case *js_ast.EBoolean:
		n := c.node("Literal", expr.Loc, expr.End)
		n["value"] = e.Value
		n["raw"] = c.raw(expr.Loc, expr.End)
		return n

	case *js_ast.ENumber:
		n := c.node("Literal", expr.Loc, expr.End)
		n["value"] = e.Value
		n["raw"] = c.raw(expr.Loc, expr.End)
		return n

	case *js_ast.EString:
		n := c.node("Literal", expr.Loc, expr.End)
		n["value"] = js_lexer.UTF16ToString(e.Value)
		n["raw"] = c.raw(expr.Loc, expr.End)
		return n

	case *js_ast.EBigInt:
		n := c.node("Literal", expr.Loc, expr.End)
		n["raw"] = e.Value
		n["bigint"] = strings.TrimSuffix(e.Value, "n")
		return n

	case *js_ast.ERegExp:
		n := c.node("Literal", expr.Loc, expr.End)
		n["raw"] = e.Value
		if slash := strings.LastIndexByte(e.Value, '/'); slash > 0 {
			n["regex"] = node{
				"pattern": e.Value[1:slash],
				"flags":   e.Value[slash+1:],
			}
		}
		return n

	case *js_ast.EIdentifier:
		n := c.node("Identifier", expr.Loc, expr.End)
		n["name"] = e.Name
		return n

	case *js_ast.EPrivateIdentifier:
		n := c.node("PrivateIdentifier", expr.Loc, expr.End)
		n["name"] = strings.TrimPrefix(e.Name, "#")
		return n

	case *js_ast.EThis:
		return c.node("ThisExpression", expr.Loc, expr.End)

	case *js_ast.ESuper:
		return c.node("Super", expr.Loc, expr.End)

	case *js_ast.ENewTarget:
		n := c.node("MetaProperty", expr.Loc, expr.End)
		n["meta"] = c.identifier("new", expr.Loc)
		n["property"] = c.identifier("target", logger.Loc{Start: expr.End.Start - 6})
		return n

	case *js_ast.EImportMeta:
		n := c.node("MetaProperty", expr.Loc, expr.End)
		n["meta"] = c.identifier("import", expr.Loc)
		n["property"] = c.identifier("meta", logger.Loc{Start: expr.End.Start - 4})
		return n

	case *js_ast.ESpread:
		n := c.node("SpreadElement", expr.Loc, expr.End)
		n["argument"] = c.expr(e.Value)
		return n

	case *js_ast.EArray:
		elements := []any{}
		for _, item := range e.Items {
			elements = append(elements, c.expr(item))
		}
		n := c.node("ArrayExpression", expr.Loc, expr.End)
		n["elements"] = elements
		return n

	case *js_ast.EObject:
		properties := []any{}
		for _, property := range e.Properties {
			properties = append(properties, c.objectProperty(property))
		}
		n := c.node("ObjectExpression", expr.Loc, expr.End)
		n["properties"] = properties
		return n

	case *js_ast.ETemplate:
		quasis := []any{}
		expressions := []any{}
		head := c.node("TemplateElement", expr.Loc, expr.End)
		head["value"] = node{"raw": e.HeadRaw}
		head["tail"] = len(e.Parts) == 0
		quasis = append(quasis, head)
		for i, part := range e.Parts {
			expressions = append(expressions, c.expr(part.Value))
			quasi := c.node("TemplateElement", part.Value.End, expr.End)
			quasi["value"] = node{"raw": part.TailRaw}
			quasi["tail"] = i == len(e.Parts)-1
			quasis = append(quasis, quasi)
		}

		template := c.node("TemplateLiteral", expr.Loc, expr.End)
		template["quasis"] = quasis
		template["expressions"] = expressions
		if e.Tag == nil {
			return template
		}

		n := c.node("TaggedTemplateExpression", expr.Loc, expr.End)
		n["tag"] = c.expr(*e.Tag)
		n["quasi"] = template
		return n

	case *js_ast.EFunction:
		return c.fnNode("FunctionExpression", e.Fn, expr.Loc, expr.End)

	case *js_ast.EClass:
		return c.classNode("ClassExpression", e.Class, expr.Loc, expr.End)

	case *js_ast.EArrow:
		n := c.node("ArrowFunctionExpression", expr.Loc, expr.End)
		n["id"] = nil
		n["params"] = c.params(e.Args, e.HasRestArg)
		n["async"] = e.IsAsync
		n["generator"] = false

		isExpr := false
		if e.PreferExpr && len(e.Body.Stmts) == 1 {
			if ret, ok := e.Body.Stmts[0].Data.(*js_ast.SReturn); ok && ret.Value != nil {
				isExpr = true
				n["body"] = c.expr(*ret.Value)
			}
		}
		if !isExpr {
			body := c.node("BlockStatement", e.Body.Loc, expr.End)
			body["body"] = c.stmts(e.Body.Stmts)
			n["body"] = body
		}
		n["expression"] = isExpr
		return n

	case *js_ast.ENew:
		arguments := []any{}
		for _, arg := range e.Args {
			arguments = append(arguments, c.expr(arg))
		}
		n := c.node("NewExpression", expr.Loc, expr.End)
		n["callee"] = c.expr(e.Target)
		n["arguments"] = arguments
		return n

	case *js_ast.ECall:
		arguments := []any{}
		for _, arg := range e.Args {
			arguments = append(arguments, c.expr(arg))
		}
		n := c.node("CallExpression", expr.Loc, expr.End)
		n["callee"] = c.expr(e.Target)
		n["arguments"] = arguments
		n["optional"] = e.OptionalChain == js_ast.OptionalChainStart
		return n

	case *js_ast.EDot:
		n := c.node("MemberExpression", expr.Loc, expr.End)
		n["object"] = c.expr(e.Target)
		n["property"] = c.identifier(e.Name, e.NameLoc)
		n["computed"] = false
		n["optional"] = e.OptionalChain == js_ast.OptionalChainStart
		return n

	case *js_ast.EIndex:
		n := c.node("MemberExpression", expr.Loc, expr.End)
		n["object"] = c.expr(e.Target)
		n["property"] = c.expr(e.Index)
		_, isPrivate := e.Index.Data.(*js_ast.EPrivateIdentifier)
		n["computed"] = !isPrivate
		n["optional"] = e.OptionalChain == js_ast.OptionalChainStart
		return n

	case *js_ast.EImportCall:
		n := c.node("ImportExpression", expr.Loc, expr.End)
		n["source"] = c.expr(e.Value)
		return n

	case *js_ast.EAwait:
		n := c.node("AwaitExpression", expr.Loc, expr.End)
		n["argument"] = c.expr(e.Value)
		return n

	case *js_ast.EYield:
		n := c.node("YieldExpression", expr.Loc, expr.End)
		if e.Value != nil {
			n["argument"] = c.expr(*e.Value)
		} else {
			n["argument"] = nil
		}
		n["delegate"] = e.IsStar
		return n

	case *js_ast.EUnary:
		entry := js_ast.OpTable[e.Op]
		switch e.Op {
		case js_ast.UnOpPreDec, js_ast.UnOpPreInc, js_ast.UnOpPostDec, js_ast.UnOpPostInc:
			n := c.node("UpdateExpression", expr.Loc, expr.End)
			n["operator"] = entry.Text
			n["argument"] = c.expr(e.Value)
			n["prefix"] = e.Op.IsPrefix()
			return n
		}
		n := c.node("UnaryExpression", expr.Loc, expr.End)
		n["operator"] = entry.Text
		n["argument"] = c.expr(e.Value)
		n["prefix"] = true
		return n

	case *js_ast.EBinary:
		entry := js_ast.OpTable[e.Op]
		kind := "BinaryExpression"
		switch {
		case e.Op == js_ast.BinOpComma:
			n := c.node("SequenceExpression", expr.Loc, expr.End)
			n["expressions"] = c.flattenComma(expr)
			return n
		case e.Op == js_ast.BinOpLogicalOr, e.Op == js_ast.BinOpLogicalAnd,
			e.Op == js_ast.BinOpNullishCoalescing:
			kind = "LogicalExpression"
		case e.Op >= js_ast.BinOpAssign:
			kind = "AssignmentExpression"
		}
		n := c.node(kind, expr.Loc, expr.End)
		n["operator"] = entry.Text
		n["left"] = c.expr(e.Left)
		n["right"] = c.expr(e.Right)
		return n

	case *js_ast.EIf:
		n := c.node("ConditionalExpression", expr.Loc, expr.End)
		n["test"] = c.expr(e.Test)
		n["consequent"] = c.expr(e.Yes)
		n["alternate"] = c.expr(e.No)
		return n
	}

	return nil
}

// Nested comma operators flatten into one SequenceExpression the way every
// ESTree producer emits them.
func (c *converter) flattenComma(expr js_ast.Expr) []any {
	if e, ok := expr.Data.(*js_ast.EBinary); ok && e.Op == js_ast.BinOpComma {
		return append(c.flattenComma(e.Left), c.expr(e.Right))
	}
	return []any{c.expr(expr)}
}
