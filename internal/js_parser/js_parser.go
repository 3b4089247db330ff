package js_parser

import (
	"github.com/jsmend/jsmend/internal/js_ast"
	"github.com/jsmend/jsmend/internal/js_lexer"
	"github.com/jsmend/jsmend/internal/logger"
)

// This parser is a hand-written recursive descent parser. It produces the
// tree in internal/js_ast. There is no symbol resolution pass because every
// consumer of the tree works on raw names.
//
// Comments that appear between statements become SComment statements so that
// edit passes and the printer see them in source order. Comments inside
// expressions are not attached to the tree; they are still recorded in
// AST.Comments for tree dumps.

type parser struct {
	log    logger.Log
	source logger.Source
	lexer  js_lexer.Lexer

	// "in" is not allowed inside the init clause of a for loop
	allowIn bool

	allowAwait bool
	allowYield bool

	// Top-level statements parsed so far, kept so a syntax error can still
	// surface the prefix of the file that parsed cleanly.
	topLevel []js_ast.Stmt
}

// Kind selects the parse goal. Modules allow import and export statements
// and top-level await; scripts allow neither.
type Kind uint8

const (
	KindModule Kind = iota
	KindScript
)

type Options struct {
	Kind Kind
}

type parseStmtOpts struct {
	isModuleScope  bool
	isExport       bool
	isNameOptional bool
}

type propertyOpts struct {
	isAsync     bool
	isGenerator bool
	isStatic    bool
	isClass     bool
}

type fnOpts struct {
	allowAwait bool
	allowYield bool
}

// Parse turns source into an AST. The returned flag is false when a syntax
// error stopped the parse; the error itself is in the log, and the result
// still holds the statements that parsed cleanly before the error.
func Parse(log logger.Log, source logger.Source, options Options) (result js_ast.AST, ok bool) {
	isModule := options.Kind == KindModule
	p := &parser{
		log:    log,
		source: source,

		// Modules are parsed with top-level await enabled
		allowIn:    true,
		allowAwait: isModule,
	}
	hashbang := ""

	ok = true
	defer func() {
		r := recover()
		if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
			ok = false
			result = js_ast.AST{
				Hashbang: hashbang,
				Body:     p.topLevel,
				Comments: p.lexer.AllComments,
			}
		} else if r != nil {
			panic(r)
		}
	}()

	p.lexer = js_lexer.NewLexer(log, source)

	if p.lexer.Token == js_lexer.THashbang {
		hashbang = p.lexer.Identifier
		p.lexer.Next()
	}

	stmts := p.parseStmtsUpTo(js_lexer.TEndOfFile, parseStmtOpts{isModuleScope: isModule})

	result = js_ast.AST{
		Hashbang: hashbang,
		Body:     stmts,
		Comments: p.lexer.AllComments,
	}
	return
}

// The end of the last consumed token. Every node records this right after
// its final token so tree spans line up with the source text.
func (p *parser) prevEnd() logger.Loc {
	return logger.Loc{Start: p.lexer.PrevTokenEnd}
}

// Comments before the current token. The lexer drops them on the next
// advance, so constructs that keep comments below the statement level must
// take them before consuming the token they precede.
func (p *parser) takeComments() []js_ast.Comment {
	comments := p.lexer.CommentsBefore
	p.lexer.CommentsBefore = nil
	return comments
}

func (p *parser) parseStmtsUpTo(end js_lexer.T, opts parseStmtOpts) []js_ast.Stmt {
	stmts := []js_ast.Stmt{}
	isDirectivePrologue := true
	isTopLevel := end == js_lexer.TEndOfFile

	for {
		// Comments between statements become statements themselves
		for _, comment := range p.lexer.CommentsBefore {
			stmts = append(stmts, js_ast.Stmt{Loc: comment.Loc, End: comment.End, Data: &js_ast.SComment{Text: comment.Text}})
		}
		if isTopLevel {
			p.topLevel = stmts
		}

		if p.lexer.Token == end {
			break
		}

		stmt := p.parseStmt(opts)

		// Convert string literals at the top of the file into directives
		if isDirectivePrologue {
			if expr, isExpr := stmt.Data.(*js_ast.SExpr); isExpr {
				if str, isString := expr.Value.Data.(*js_ast.EString); isString {
					stmt.Data = &js_ast.SDirective{Value: str.Value}
				} else {
					isDirectivePrologue = false
				}
			} else {
				isDirectivePrologue = false
			}
		}

		stmts = append(stmts, stmt)
		if isTopLevel {
			p.topLevel = stmts
		}
	}

	return stmts
}

func (p *parser) parseStmt(opts parseStmtOpts) js_ast.Stmt {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSemicolon:
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SEmpty{}}

	case js_lexer.TExport:
		if !opts.isModuleScope {
			p.lexer.Unexpected()
		}
		p.lexer.Next()
		return p.parseExportStmt(loc)

	case js_lexer.TImport:
		if !opts.isModuleScope {
			p.lexer.Unexpected()
		}
		p.lexer.Next()
		return p.parseImportStmt(loc)

	case js_lexer.TFunction:
		p.lexer.Next()
		return p.parseFnStmt(loc, opts, false /* isAsync */)

	case js_lexer.TClass:
		p.lexer.Next()
		return p.parseClassStmt(loc, opts)

	case js_lexer.TVar:
		p.lexer.Next()
		decls := p.parseDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SLocal{
			Kind:     js_ast.LocalVar,
			Decls:    decls,
			IsExport: opts.isExport,
		}}

	case js_lexer.TConst:
		p.lexer.Next()
		decls := p.parseDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SLocal{
			Kind:     js_ast.LocalConst,
			Decls:    decls,
			IsExport: opts.isExport,
		}}

	case js_lexer.TIf:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		yes := p.parseStmt(parseStmtOpts{})
		var no *js_ast.Stmt
		if p.lexer.Token == js_lexer.TElse {
			p.lexer.Next()
			stmt := p.parseStmt(parseStmtOpts{})
			no = &stmt
		}
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SIf{Test: test, Yes: yes, No: no}}

	case js_lexer.TDo:
		p.lexer.Next()
		body := p.parseStmt(parseStmtOpts{})
		p.lexer.Expect(js_lexer.TWhile)
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)

		// The semicolon after a do-while body is optional
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
		}
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SDoWhile{Body: body, Test: test}}

	case js_lexer.TWhile:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SWhile{Test: test, Body: body}}

	case js_lexer.TWith:
		// Modules are always strict mode code
		p.log.AddRangeError(&p.source, p.lexer.Range(), "With statements cannot be used in a module")
		panic(js_lexer.LexerPanic{})

	case js_lexer.TFor:
		return p.parseForStmt(loc)

	case js_lexer.TSwitch:
		return p.parseSwitchStmt(loc)

	case js_lexer.TBreak:
		p.lexer.Next()
		label := p.parseLabelName()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SBreak{Label: label}}

	case js_lexer.TContinue:
		p.lexer.Next()
		label := p.parseLabelName()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SContinue{Label: label}}

	case js_lexer.TReturn:
		p.lexer.Next()
		var value *js_ast.Expr
		if p.lexer.Token != js_lexer.TSemicolon &&
			!p.lexer.HasNewlineBefore &&
			p.lexer.Token != js_lexer.TCloseBrace &&
			p.lexer.Token != js_lexer.TEndOfFile {
			expr := p.parseExpr(js_ast.LLowest)
			value = &expr
		}
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SReturn{Value: value}}

	case js_lexer.TThrow:
		p.lexer.Next()
		if p.lexer.HasNewlineBefore {
			p.log.AddError(&p.source, logger.Loc{Start: loc.Start + 5}, "Unexpected newline after \"throw\"")
			panic(js_lexer.LexerPanic{})
		}
		expr := p.parseExpr(js_ast.LLowest)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SThrow{Value: expr}}

	case js_lexer.TDebugger:
		p.lexer.Next()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SDebugger{}}

	case js_lexer.TTry:
		return p.parseTryStmt(loc)

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{})
		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SBlock{Stmts: stmts}}

	default:
		isIdentifier := p.lexer.Token == js_lexer.TIdentifier
		name := p.lexer.Identifier

		if isIdentifier {
			switch name {
			case "let":
				// "let" is a keyword only when a binding follows it
				p.lexer.Next()
				switch p.lexer.Token {
				case js_lexer.TIdentifier, js_lexer.TOpenBracket, js_lexer.TOpenBrace:
					decls := p.parseDecls()
					p.lexer.ExpectOrInsertSemicolon()
					return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SLocal{
						Kind:     js_ast.LocalLet,
						Decls:    decls,
						IsExport: opts.isExport,
					}}
				}
				letExpr := js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EIdentifier{Name: "let"}}
				expr := p.parseSuffix(letExpr, js_ast.LLowest)
				p.lexer.ExpectOrInsertSemicolon()
				return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExpr{Value: expr}}

			case "async":
				p.lexer.Next()
				if p.lexer.Token == js_lexer.TFunction && !p.lexer.HasNewlineBefore {
					p.lexer.Next()
					return p.parseFnStmt(loc, opts, true /* isAsync */)
				}
				expr := p.parseSuffix(p.parseAsyncPrefixExpr(loc), js_ast.LLowest)
				p.lexer.ExpectOrInsertSemicolon()
				return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExpr{Value: expr}}
			}
		}

		expr := p.parseExpr(js_ast.LLowest)

		// A labeled statement
		if isIdentifier {
			if ident, ok := expr.Data.(*js_ast.EIdentifier); ok && p.lexer.Token == js_lexer.TColon {
				p.lexer.Next()
				stmt := p.parseStmt(parseStmtOpts{})
				return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SLabel{
					Name: js_ast.NameLoc{Loc: expr.Loc, Name: ident.Name},
					Stmt: stmt,
				}}
			}
		}

		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExpr{Value: expr}}
	}
}

func (p *parser) parseLabelName() *js_ast.NameLoc {
	if p.lexer.Token != js_lexer.TIdentifier || p.lexer.HasNewlineBefore {
		return nil
	}
	name := &js_ast.NameLoc{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
	p.lexer.Next()
	return name
}

func (p *parser) parseFnStmt(loc logger.Loc, opts parseStmtOpts, isAsync bool) js_ast.Stmt {
	// "function" has already been consumed
	isGenerator := p.lexer.Token == js_lexer.TAsterisk
	if isGenerator {
		p.lexer.Next()
	}

	var name *js_ast.NameLoc
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.NameLoc{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()
	} else if !opts.isNameOptional {
		p.lexer.Expect(js_lexer.TIdentifier)
	}

	fn := p.parseFn(name, fnOpts{allowAwait: isAsync, allowYield: isGenerator})
	return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SFunction{Fn: fn, IsExport: opts.isExport}}
}

func (p *parser) parseClassStmt(loc logger.Loc, opts parseStmtOpts) js_ast.Stmt {
	// "class" has already been consumed
	var name *js_ast.NameLoc
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.NameLoc{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()
	} else if !opts.isNameOptional {
		p.lexer.Expect(js_lexer.TIdentifier)
	}

	class := p.parseClass(name)
	return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SClass{Class: class, IsExport: opts.isExport}}
}

func (p *parser) parseForStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()

	isAwait := false
	if p.lexer.IsContextualKeyword("await") {
		isAwait = true
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TOpenParen)

	var init *js_ast.Stmt

	// "in" is forbidden inside the init clause so that "for (a in b)" is
	// not parsed as a binary expression
	p.allowIn = false

	switch p.lexer.Token {
	case js_lexer.TVar:
		initLoc := p.lexer.Loc()
		p.lexer.Next()
		decls := p.parseDecls()
		init = &js_ast.Stmt{Loc: initLoc, End: p.prevEnd(), Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: decls}}

	case js_lexer.TConst:
		initLoc := p.lexer.Loc()
		p.lexer.Next()
		decls := p.parseDecls()
		init = &js_ast.Stmt{Loc: initLoc, End: p.prevEnd(), Data: &js_ast.SLocal{Kind: js_ast.LocalConst, Decls: decls}}

	case js_lexer.TSemicolon:

	default:
		if p.lexer.IsContextualKeyword("let") {
			initLoc := p.lexer.Loc()
			p.lexer.Next()
			switch p.lexer.Token {
			case js_lexer.TIdentifier, js_lexer.TOpenBracket, js_lexer.TOpenBrace:
				decls := p.parseDecls()
				init = &js_ast.Stmt{Loc: initLoc, End: p.prevEnd(), Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: decls}}
			default:
				letExpr := js_ast.Expr{Loc: initLoc, End: p.prevEnd(), Data: &js_ast.EIdentifier{Name: "let"}}
				expr := p.parseSuffix(letExpr, js_ast.LLowest)
				init = &js_ast.Stmt{Loc: expr.Loc, End: expr.End, Data: &js_ast.SExpr{Value: expr}}
			}
		} else {
			expr := p.parseExpr(js_ast.LLowest)
			init = &js_ast.Stmt{Loc: expr.Loc, End: expr.End, Data: &js_ast.SExpr{Value: expr}}
		}
	}

	p.allowIn = true

	// "for (a in b)"
	if p.lexer.Token == js_lexer.TIn {
		if isAwait {
			p.log.AddError(&p.source, loc, "Cannot use \"await\" with a for-in loop")
			panic(js_lexer.LexerPanic{})
		}
		if init == nil {
			p.lexer.Unexpected()
		}
		p.lexer.Next()
		value := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SForIn{Init: *init, Value: value, Body: body}}
	}

	// "for (a of b)"
	if p.lexer.IsContextualKeyword("of") {
		if init == nil {
			p.lexer.Unexpected()
		}
		p.lexer.Next()
		value := p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SForOf{IsAwait: isAwait, Init: *init, Value: value, Body: body}}
	}

	if isAwait {
		p.log.AddError(&p.source, loc, "\"await\" can only be used with a for-of loop")
		panic(js_lexer.LexerPanic{})
	}

	p.lexer.Expect(js_lexer.TSemicolon)

	var test *js_ast.Expr
	if p.lexer.Token != js_lexer.TSemicolon {
		expr := p.parseExpr(js_ast.LLowest)
		test = &expr
	}

	p.lexer.Expect(js_lexer.TSemicolon)

	var update *js_ast.Expr
	if p.lexer.Token != js_lexer.TCloseParen {
		expr := p.parseExpr(js_ast.LLowest)
		update = &expr
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	body := p.parseStmt(parseStmtOpts{})
	return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SFor{Init: init, Test: test, Update: update, Body: body}}
}

func (p *parser) parseSwitchStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()
	p.lexer.Expect(js_lexer.TOpenParen)
	test := p.parseExpr(js_ast.LLowest)
	p.lexer.Expect(js_lexer.TCloseParen)
	p.lexer.Expect(js_lexer.TOpenBrace)

	cases := []js_ast.Case{}
	foundDefault := false

	for p.lexer.Token != js_lexer.TCloseBrace {
		var value *js_ast.Expr

		if p.lexer.Token == js_lexer.TDefault {
			if foundDefault {
				p.log.AddRangeError(&p.source, p.lexer.Range(), "Multiple default clauses are not allowed")
				panic(js_lexer.LexerPanic{})
			}
			foundDefault = true
			p.lexer.Next()
		} else {
			p.lexer.Expect(js_lexer.TCase)
			expr := p.parseExpr(js_ast.LLowest)
			value = &expr
		}
		p.lexer.Expect(js_lexer.TColon)

		body := []js_ast.Stmt{}
	caseBody:
		for {
			switch p.lexer.Token {
			case js_lexer.TCloseBrace, js_lexer.TCase, js_lexer.TDefault:
				break caseBody
			default:
				body = append(body, p.parseStmt(parseStmtOpts{}))
			}
		}

		cases = append(cases, js_ast.Case{Value: value, Body: body})
	}

	p.lexer.Expect(js_lexer.TCloseBrace)
	return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SSwitch{Test: test, Cases: cases}}
}

func (p *parser) parseTryStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()
	p.lexer.Expect(js_lexer.TOpenBrace)
	body := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{})
	p.lexer.Expect(js_lexer.TCloseBrace)

	var catch *js_ast.Catch
	var finally *js_ast.Finally

	if p.lexer.Token == js_lexer.TCatch {
		catchLoc := p.lexer.Loc()
		p.lexer.Next()

		// The binding is optional
		var binding *js_ast.Binding
		if p.lexer.Token == js_lexer.TOpenParen {
			p.lexer.Next()
			value := p.parseBinding()
			binding = &value
			p.lexer.Expect(js_lexer.TCloseParen)
		}

		p.lexer.Expect(js_lexer.TOpenBrace)
		stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{})
		p.lexer.Expect(js_lexer.TCloseBrace)
		catch = &js_ast.Catch{Loc: catchLoc, Binding: binding, Body: stmts}
	}

	if p.lexer.Token == js_lexer.TFinally {
		finallyLoc := p.lexer.Loc()
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenBrace)
		stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{})
		p.lexer.Expect(js_lexer.TCloseBrace)
		finally = &js_ast.Finally{Loc: finallyLoc, Stmts: stmts}
	}

	if catch == nil && finally == nil {
		p.lexer.Expected(js_lexer.TCatch)
	}

	return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.STry{Body: body, Catch: catch, Finally: finally}}
}

func (p *parser) parseImportStmt(loc logger.Loc) js_ast.Stmt {
	// "import" has already been consumed
	stmt := js_ast.SImport{}

	switch p.lexer.Token {
	case js_lexer.TOpenParen, js_lexer.TDot:
		// "import('path')" and "import.meta" are expressions, not statements
		expr := p.parseSuffix(p.parseImportExpr(loc), js_ast.LLowest)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExpr{Value: expr}}

	case js_lexer.TStringLiteral:
		// "import 'path'"
		stmt.Path = js_ast.Path{Loc: p.lexer.Loc(), Text: js_lexer.UTF16ToString(p.lexer.StringLiteral)}
		p.lexer.Next()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &stmt}

	case js_lexer.TAsterisk:
		// "import * as ns from 'path'"
		p.lexer.Next()
		p.lexer.ExpectContextualKeyword("as")
		stmt.StarName = &js_ast.NameLoc{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Expect(js_lexer.TIdentifier)

	case js_lexer.TOpenBrace:
		// "import {item1, item2} from 'path'"
		items := p.parseImportClause()
		stmt.Items = &items

	case js_lexer.TIdentifier:
		// "import defaultItem from 'path'"
		stmt.DefaultName = &js_ast.NameLoc{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()

		if p.lexer.Token == js_lexer.TComma {
			p.lexer.Next()
			switch p.lexer.Token {
			case js_lexer.TAsterisk:
				// "import defaultItem, * as ns from 'path'"
				p.lexer.Next()
				p.lexer.ExpectContextualKeyword("as")
				stmt.StarName = &js_ast.NameLoc{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
				p.lexer.Expect(js_lexer.TIdentifier)

			case js_lexer.TOpenBrace:
				// "import defaultItem, {item1, item2} from 'path'"
				items := p.parseImportClause()
				stmt.Items = &items

			default:
				p.lexer.Unexpected()
			}
		}

	default:
		p.lexer.Unexpected()
	}

	p.lexer.ExpectContextualKeyword("from")
	stmt.Path = p.parsePath()
	p.lexer.ExpectOrInsertSemicolon()
	return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &stmt}
}

func (p *parser) parseExportStmt(loc logger.Loc) js_ast.Stmt {
	// "export" has already been consumed
	switch p.lexer.Token {
	case js_lexer.TClass:
		p.lexer.Next()
		return p.parseClassStmt(loc, parseStmtOpts{isExport: true})

	case js_lexer.TFunction:
		p.lexer.Next()
		return p.parseFnStmt(loc, parseStmtOpts{isExport: true}, false /* isAsync */)

	case js_lexer.TVar:
		p.lexer.Next()
		decls := p.parseDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SLocal{
			Kind: js_ast.LocalVar, Decls: decls, IsExport: true}}

	case js_lexer.TConst:
		p.lexer.Next()
		decls := p.parseDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SLocal{
			Kind: js_ast.LocalConst, Decls: decls, IsExport: true}}

	case js_lexer.TIdentifier:
		if p.lexer.IsContextualKeyword("let") {
			p.lexer.Next()
			decls := p.parseDecls()
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SLocal{
				Kind: js_ast.LocalLet, Decls: decls, IsExport: true}}
		}
		if p.lexer.IsContextualKeyword("async") {
			// "export async function foo() {}"
			p.lexer.Next()
			p.lexer.Expect(js_lexer.TFunction)
			return p.parseFnStmt(loc, parseStmtOpts{isExport: true}, true /* isAsync */)
		}
		p.lexer.Unexpected()

	case js_lexer.TDefault:
		p.lexer.Next()

		if p.lexer.Token == js_lexer.TFunction {
			stmtLoc := p.lexer.Loc()
			p.lexer.Next()
			stmt := p.parseFnStmt(stmtLoc, parseStmtOpts{isNameOptional: true}, false /* isAsync */)
			return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExportDefault{Value: js_ast.ExprOrStmt{Stmt: &stmt}}}
		}

		if p.lexer.Token == js_lexer.TClass {
			stmtLoc := p.lexer.Loc()
			p.lexer.Next()
			stmt := p.parseClassStmt(stmtLoc, parseStmtOpts{isNameOptional: true})
			return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExportDefault{Value: js_ast.ExprOrStmt{Stmt: &stmt}}}
		}

		if p.lexer.IsContextualKeyword("async") {
			asyncLoc := p.lexer.Loc()
			p.lexer.Next()
			if p.lexer.Token == js_lexer.TFunction && !p.lexer.HasNewlineBefore {
				p.lexer.Next()
				stmt := p.parseFnStmt(asyncLoc, parseStmtOpts{isNameOptional: true}, true /* isAsync */)
				return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExportDefault{Value: js_ast.ExprOrStmt{Stmt: &stmt}}}
			}
			expr := p.parseSuffix(p.parseAsyncPrefixExpr(asyncLoc), js_ast.LComma)
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExportDefault{Value: js_ast.ExprOrStmt{Expr: &expr}}}
		}

		expr := p.parseExpr(js_ast.LComma)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExportDefault{Value: js_ast.ExprOrStmt{Expr: &expr}}}

	case js_lexer.TAsterisk:
		p.lexer.Next()
		var alias *js_ast.ExportStarAlias
		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			alias = &js_ast.ExportStarAlias{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
			if !p.lexer.IsIdentifierOrKeyword() {
				p.lexer.Expect(js_lexer.TIdentifier)
			}
			p.lexer.Next()
		}
		p.lexer.ExpectContextualKeyword("from")
		path := p.parsePath()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExportStar{Alias: alias, Path: path}}

	case js_lexer.TOpenBrace:
		items := p.parseExportClause()
		if p.lexer.IsContextualKeyword("from") {
			p.lexer.Next()
			path := p.parsePath()
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExportFrom{Items: items, Path: path}}
		}
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, End: p.prevEnd(), Data: &js_ast.SExportClause{Items: items}}
	}

	p.lexer.Unexpected()
	return js_ast.Stmt{}
}

func (p *parser) parseImportClause() []js_ast.ClauseItem {
	items := []js_ast.ClauseItem{}
	p.lexer.Expect(js_lexer.TOpenBrace)

	for p.lexer.Token != js_lexer.TCloseBrace {
		alias := p.lexer.Identifier
		aliasLoc := p.lexer.Loc()
		name := js_ast.NameLoc{Loc: aliasLoc, Name: alias}

		// The alias may be a keyword, but then "as" is required:
		//   import {default as foo} from 'path'
		isIdentifier := p.lexer.Token == js_lexer.TIdentifier
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		p.lexer.Next()

		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			name = js_ast.NameLoc{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
			p.lexer.Expect(js_lexer.TIdentifier)
		} else if !isIdentifier {
			p.lexer.ExpectedString("\"as\"")
		}

		items = append(items, js_ast.ClauseItem{Alias: alias, AliasLoc: aliasLoc, Name: name})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseBrace)
	return items
}

func (p *parser) parseExportClause() []js_ast.ClauseItem {
	items := []js_ast.ClauseItem{}
	p.lexer.Expect(js_lexer.TOpenBrace)

	for p.lexer.Token != js_lexer.TCloseBrace {
		// The local name is in Name and the exported name is the alias. The
		// two coincide without "as".
		name := js_ast.NameLoc{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		alias := name.Name
		aliasLoc := name.Loc

		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		p.lexer.Next()

		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			alias = p.lexer.Identifier
			aliasLoc = p.lexer.Loc()
			if !p.lexer.IsIdentifierOrKeyword() {
				p.lexer.Expect(js_lexer.TIdentifier)
			}
			p.lexer.Next()
		}

		items = append(items, js_ast.ClauseItem{Alias: alias, AliasLoc: aliasLoc, Name: name})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseBrace)
	return items
}

func (p *parser) parsePath() js_ast.Path {
	path := js_ast.Path{Loc: p.lexer.Loc(), Text: js_lexer.UTF16ToString(p.lexer.StringLiteral)}
	p.lexer.Expect(js_lexer.TStringLiteral)
	return path
}

func (p *parser) parseDecls() []js_ast.Decl {
	decls := []js_ast.Decl{}

	for {
		binding := p.parseBinding()

		var value *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			expr := p.parseExpr(js_ast.LComma)
			value = &expr
		}

		decls = append(decls, js_ast.Decl{Binding: binding, Value: value})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	return decls
}

func (p *parser) parseBinding() js_ast.Binding {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Binding{Loc: loc, End: p.prevEnd(), Data: &js_ast.BIdentifier{Name: name}}

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		items := []js_ast.ArrayBinding{}
		hasSpread := false

		for p.lexer.Token != js_lexer.TCloseBracket {
			if p.lexer.Token == js_lexer.TComma {
				// A hole in the pattern
				binding := js_ast.Binding{Loc: p.lexer.Loc(), End: p.lexer.Loc(), Data: &js_ast.BMissing{}}
				items = append(items, js_ast.ArrayBinding{Binding: binding})
			} else {
				if p.lexer.Token == js_lexer.TDotDotDot {
					p.lexer.Next()
					hasSpread = true
				}

				binding := p.parseBinding()

				var defaultValue *js_ast.Expr
				if p.lexer.Token == js_lexer.TEquals {
					p.lexer.Next()
					value := p.parseExpr(js_ast.LComma)
					defaultValue = &value
				}

				items = append(items, js_ast.ArrayBinding{Binding: binding, DefaultValue: defaultValue})
			}

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}

		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.Binding{Loc: loc, End: p.prevEnd(), Data: &js_ast.BArray{Items: items, HasSpread: hasSpread}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		properties := []js_ast.PropertyBinding{}

		for p.lexer.Token != js_lexer.TCloseBrace {
			properties = append(properties, p.parsePropertyBinding())

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}

		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Binding{Loc: loc, End: p.prevEnd(), Data: &js_ast.BObject{Properties: properties}}
	}

	p.lexer.Expect(js_lexer.TIdentifier)
	return js_ast.Binding{}
}

func (p *parser) parsePropertyBinding() js_ast.PropertyBinding {
	var key js_ast.Expr
	isComputed := false

	switch p.lexer.Token {
	case js_lexer.TDotDotDot:
		p.lexer.Next()
		return js_ast.PropertyBinding{IsSpread: true, Value: p.parseBinding()}

	case js_lexer.TNumericLiteral:
		key = js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.ENumber{Value: p.lexer.Number}}
		p.lexer.Next()
		key.End = p.prevEnd()

	case js_lexer.TStringLiteral:
		key = js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EString{Value: p.lexer.StringLiteral}}
		p.lexer.Next()
		key.End = p.prevEnd()

	case js_lexer.TOpenBracket:
		isComputed = true
		p.lexer.Next()
		key = p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseBracket)

	default:
		name := p.lexer.Identifier
		loc := p.lexer.Loc()
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		p.lexer.Next()
		key = js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EIdentifier{Name: name}}

		if p.lexer.Token != js_lexer.TColon {
			// Shorthand property: "{a}" or "{a = 1}"
			binding := js_ast.Binding{Loc: loc, End: key.End, Data: &js_ast.BIdentifier{Name: name}}

			var defaultValue *js_ast.Expr
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next()
				value := p.parseExpr(js_ast.LComma)
				defaultValue = &value
			}

			return js_ast.PropertyBinding{Key: key, Value: binding, DefaultValue: defaultValue}
		}
	}

	p.lexer.Expect(js_lexer.TColon)
	value := p.parseBinding()

	var defaultValue *js_ast.Expr
	if p.lexer.Token == js_lexer.TEquals {
		p.lexer.Next()
		expr := p.parseExpr(js_ast.LComma)
		defaultValue = &expr
	}

	return js_ast.PropertyBinding{IsComputed: isComputed, Key: key, Value: value, DefaultValue: defaultValue}
}

func (p *parser) parseFn(name *js_ast.NameLoc, opts fnOpts) js_ast.Fn {
	fn := js_ast.Fn{Name: name, IsAsync: opts.allowAwait, IsGenerator: opts.allowYield}

	p.lexer.Expect(js_lexer.TOpenParen)

	oldAllowIn := p.allowIn
	p.allowIn = true

	for p.lexer.Token != js_lexer.TCloseParen {
		if p.lexer.Token == js_lexer.TDotDotDot {
			fn.HasRestArg = true
			p.lexer.Next()
		}

		binding := p.parseBinding()

		var defaultValue *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			value := p.parseExpr(js_ast.LComma)
			defaultValue = &value
		}

		fn.Args = append(fn.Args, js_ast.Arg{Binding: binding, Default: defaultValue})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		if fn.HasRestArg {
			// A rest argument must be last
			p.lexer.Expect(js_lexer.TCloseParen)
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	p.allowIn = oldAllowIn

	fn.Body = p.parseFnBodyWith(opts)
	return fn
}

func (p *parser) parseFnBodyWith(opts fnOpts) js_ast.FnBody {
	oldAllowAwait := p.allowAwait
	oldAllowYield := p.allowYield
	p.allowAwait = opts.allowAwait
	p.allowYield = opts.allowYield

	loc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{})
	p.lexer.Expect(js_lexer.TCloseBrace)

	p.allowAwait = oldAllowAwait
	p.allowYield = oldAllowYield
	return js_ast.FnBody{Loc: loc, Stmts: stmts}
}

func (p *parser) parseClass(name *js_ast.NameLoc) js_ast.Class {
	var extends *js_ast.Expr
	if p.lexer.Token == js_lexer.TExtends {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LNew)
		extends = &value
	}

	bodyLoc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)

	properties := []js_ast.Property{}
	var comments []js_ast.Comment
	for p.lexer.Token != js_lexer.TCloseBrace {
		comments = append(comments, p.takeComments()...)
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
			continue
		}
		property := p.parseProperty(js_ast.PropertyNormal, propertyOpts{isClass: true})
		property.CommentsBefore = comments
		comments = nil
		properties = append(properties, property)
	}

	p.lexer.Expect(js_lexer.TCloseBrace)
	return js_ast.Class{Name: name, Extends: extends, BodyLoc: bodyLoc, Properties: properties}
}

func (p *parser) parseProperty(kind js_ast.PropertyKind, opts propertyOpts) js_ast.Property {
	var key js_ast.Expr
	isComputed := false

	switch p.lexer.Token {
	case js_lexer.TNumericLiteral:
		key = js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.ENumber{Value: p.lexer.Number}}
		p.lexer.Next()
		key.End = p.prevEnd()

	case js_lexer.TStringLiteral:
		key = js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EString{Value: p.lexer.StringLiteral}}
		p.lexer.Next()
		key.End = p.prevEnd()

	case js_lexer.TPrivateIdentifier:
		if !opts.isClass {
			p.lexer.Unexpected()
		}
		key = js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EPrivateIdentifier{Name: p.lexer.Identifier}}
		p.lexer.Next()
		key.End = p.prevEnd()

	case js_lexer.TOpenBracket:
		isComputed = true
		p.lexer.Next()
		key = p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseBracket)

	case js_lexer.TAsterisk:
		if kind != js_ast.PropertyNormal || opts.isGenerator {
			p.lexer.Unexpected()
		}
		p.lexer.Next()
		opts.isGenerator = true
		return p.parseProperty(kind, opts)

	default:
		name := p.lexer.Identifier
		loc := p.lexer.Loc()
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		p.lexer.Next()

		// Support contextual modifier keywords
		if kind == js_ast.PropertyNormal && !opts.isGenerator {
			couldBeModifierKeyword := p.lexer.IsIdentifierOrKeyword()
			if !couldBeModifierKeyword {
				switch p.lexer.Token {
				case js_lexer.TOpenBracket, js_lexer.TNumericLiteral, js_lexer.TStringLiteral,
					js_lexer.TAsterisk, js_lexer.TPrivateIdentifier:
					couldBeModifierKeyword = true
				}
			}

			if couldBeModifierKeyword {
				switch name {
				case "async":
					if !p.lexer.HasNewlineBefore {
						opts.isAsync = true
						return p.parseProperty(kind, opts)
					}

				case "get":
					return p.parseProperty(js_ast.PropertyGet, opts)

				case "set":
					return p.parseProperty(js_ast.PropertySet, opts)

				case "static":
					if !opts.isStatic && opts.isClass {
						opts.isStatic = true
						return p.parseProperty(kind, opts)
					}
				}
			}
		}

		key = js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EIdentifier{Name: name}}

		// Shorthand property: "{a}" or "{a = 1}". The initializer form only
		// appears inside a destructuring assignment target; it is kept so
		// the cover grammar can be converted to a binding pattern later.
		if !opts.isClass && kind == js_ast.PropertyNormal &&
			p.lexer.Token != js_lexer.TColon && p.lexer.Token != js_lexer.TOpenParen {
			value := js_ast.Expr{Loc: loc, End: key.End, Data: &js_ast.EIdentifier{Name: name}}

			var initializer *js_ast.Expr
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next()
				expr := p.parseExpr(js_ast.LComma)
				initializer = &expr
			}

			return js_ast.Property{
				Kind:         kind,
				Key:          key,
				Value:        &value,
				Initializer:  initializer,
				WasShorthand: true,
			}
		}
	}

	// Class fields
	if opts.isClass && kind == js_ast.PropertyNormal && !opts.isAsync && !opts.isGenerator &&
		p.lexer.Token != js_lexer.TOpenParen {
		var initializer *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			value := p.parseExpr(js_ast.LComma)
			initializer = &value
		}
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Property{
			Kind:        kind,
			Key:         key,
			Initializer: initializer,
			IsComputed:  isComputed,
			IsStatic:    opts.isStatic,
		}
	}

	// Methods, getters, and setters
	if p.lexer.Token == js_lexer.TOpenParen || kind != js_ast.PropertyNormal {
		fnLoc := p.lexer.Loc()
		fn := p.parseFn(nil, fnOpts{allowAwait: opts.isAsync, allowYield: opts.isGenerator})
		value := js_ast.Expr{Loc: fnLoc, End: p.prevEnd(), Data: &js_ast.EFunction{Fn: fn}}
		return js_ast.Property{
			Kind:       kind,
			Key:        key,
			Value:      &value,
			IsComputed: isComputed,
			IsMethod:   true,
			IsStatic:   opts.isStatic,
		}
	}

	p.lexer.Expect(js_lexer.TColon)
	value := p.parseExpr(js_ast.LComma)
	return js_ast.Property{
		Kind:       kind,
		Key:        key,
		Value:      &value,
		IsComputed: isComputed,
		IsStatic:   opts.isStatic,
	}
}

func (p *parser) parseExpr(level js_ast.L) js_ast.Expr {
	return p.parseSuffix(p.parsePrefix(level), level)
}

func (p *parser) parsePrefix(level js_ast.L) js_ast.Expr {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSuper:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.ESuper{}}

	case js_lexer.TOpenParen:
		return p.parseParenExpr(loc, false /* isAsync */)

	case js_lexer.TFalse:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EBoolean{Value: false}}

	case js_lexer.TTrue:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EBoolean{Value: true}}

	case js_lexer.TNull:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.ENull{}}

	case js_lexer.TThis:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EThis{}}

	case js_lexer.TIdentifier, js_lexer.TEscapedKeyword:
		name := p.lexer.Identifier
		isIdentifier := p.lexer.Token == js_lexer.TIdentifier
		p.lexer.Next()
		nameEnd := p.prevEnd()

		if isIdentifier {
			switch name {
			case "async":
				return p.parseAsyncPrefixExpr(loc)

			case "await":
				if p.allowAwait {
					value := p.parseExpr(js_ast.LPrefix)
					return js_ast.Expr{Loc: loc, End: value.End, Data: &js_ast.EAwait{Value: value}}
				}

			case "yield":
				if p.allowYield {
					if level > js_ast.LAssign {
						p.log.AddRangeError(&p.source, logger.Range{Loc: loc, Len: 5},
							"Cannot use a \"yield\" expression here")
						panic(js_lexer.LexerPanic{})
					}

					isStar := p.lexer.Token == js_lexer.TAsterisk && !p.lexer.HasNewlineBefore
					if isStar {
						p.lexer.Next()
					}

					var value *js_ast.Expr
					switch p.lexer.Token {
					case js_lexer.TCloseBrace, js_lexer.TCloseBracket, js_lexer.TCloseParen,
						js_lexer.TColon, js_lexer.TComma, js_lexer.TSemicolon, js_lexer.TEndOfFile:
					default:
						if isStar || !p.lexer.HasNewlineBefore {
							expr := p.parseExpr(js_ast.LYield)
							value = &expr
						}
					}

					return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EYield{Value: value, IsStar: isStar}}
				}
			}
		}

		// An arrow function with a single unparenthesized argument
		if p.lexer.Token == js_lexer.TEqualsGreaterThan {
			arg := js_ast.Arg{Binding: js_ast.Binding{Loc: loc, End: nameEnd, Data: &js_ast.BIdentifier{Name: name}}}
			arrow := p.parseArrowBody([]js_ast.Arg{arg}, fnOpts{})
			return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: arrow}
		}

		return js_ast.Expr{Loc: loc, End: nameEnd, Data: &js_ast.EIdentifier{Name: name}}

	case js_lexer.TPrivateIdentifier:
		// Only valid as the left operand of "in"
		name := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EPrivateIdentifier{Name: name}}

	case js_lexer.TStringLiteral:
		value := p.lexer.StringLiteral
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EString{Value: value}}

	case js_lexer.TNoSubstitutionTemplateLiteral:
		headRaw := p.lexer.RawTemplateContents()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.ETemplate{HeadRaw: headRaw}}

	case js_lexer.TTemplateHead:
		headRaw := p.lexer.RawTemplateContents()
		parts := p.parseTemplateParts()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.ETemplate{HeadRaw: headRaw, Parts: parts}}

	case js_lexer.TNumericLiteral:
		value := p.lexer.Number
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.ENumber{Value: value}}

	case js_lexer.TBigIntegerLiteral:
		value := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EBigInt{Value: value}}

	case js_lexer.TSlash, js_lexer.TSlashEquals:
		p.lexer.ScanRegExp()
		value := p.lexer.Raw()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.ERegExp{Value: value}}

	case js_lexer.TVoid:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Loc: loc, End: value.End, Data: &js_ast.EUnary{Op: js_ast.UnOpVoid, Value: value}}

	case js_lexer.TTypeof:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Loc: loc, End: value.End, Data: &js_ast.EUnary{Op: js_ast.UnOpTypeof, Value: value}}

	case js_lexer.TDelete:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Loc: loc, End: value.End, Data: &js_ast.EUnary{Op: js_ast.UnOpDelete, Value: value}}

	case js_lexer.TPlus:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Loc: loc, End: value.End, Data: &js_ast.EUnary{Op: js_ast.UnOpPos, Value: value}}

	case js_lexer.TMinus:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Loc: loc, End: value.End, Data: &js_ast.EUnary{Op: js_ast.UnOpNeg, Value: value}}

	case js_lexer.TTilde:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Loc: loc, End: value.End, Data: &js_ast.EUnary{Op: js_ast.UnOpCpl, Value: value}}

	case js_lexer.TExclamation:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Loc: loc, End: value.End, Data: &js_ast.EUnary{Op: js_ast.UnOpNot, Value: value}}

	case js_lexer.TMinusMinus:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Loc: loc, End: value.End, Data: &js_ast.EUnary{Op: js_ast.UnOpPreDec, Value: value}}

	case js_lexer.TPlusPlus:
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Loc: loc, End: value.End, Data: &js_ast.EUnary{Op: js_ast.UnOpPreInc, Value: value}}

	case js_lexer.TFunction:
		p.lexer.Next()
		return p.parseFnExpr(loc, false /* isAsync */)

	case js_lexer.TClass:
		p.lexer.Next()
		var name *js_ast.NameLoc
		if p.lexer.Token == js_lexer.TIdentifier {
			name = &js_ast.NameLoc{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
			p.lexer.Next()
		}
		class := p.parseClass(name)
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EClass{Class: class}}

	case js_lexer.TNew:
		p.lexer.Next()

		// "new.target"
		if p.lexer.Token == js_lexer.TDot {
			p.lexer.Next()
			if !p.lexer.IsContextualKeyword("target") {
				p.lexer.Unexpected()
			}
			p.lexer.Next()
			return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.ENewTarget{}}
		}

		target := p.parseExpr(js_ast.LCall)
		hasParens := false
		var args []js_ast.Expr
		var closeComments []js_ast.Comment
		if p.lexer.Token == js_lexer.TOpenParen {
			hasParens = true
			args, closeComments = p.parseCallArgs()
		}
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.ENew{Target: target, Args: args, CommentsBeforeClose: closeComments, HasParens: hasParens}}

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		items := []js_ast.Expr{}

		oldAllowIn := p.allowIn
		p.allowIn = true

		var carry []js_ast.Comment
		for p.lexer.Token != js_lexer.TCloseBracket {
			comments := append(carry, p.takeComments()...)
			carry = nil
			switch p.lexer.Token {
			case js_lexer.TComma:
				// A hole in the array
				items = append(items, js_ast.Expr{Loc: p.lexer.Loc(), End: p.lexer.Loc(), Data: &js_ast.EMissing{}, CommentsBefore: comments})

			case js_lexer.TDotDotDot:
				spreadLoc := p.lexer.Loc()
				p.lexer.Next()
				item := p.parseExpr(js_ast.LComma)
				items = append(items, js_ast.Expr{Loc: spreadLoc, End: item.End, Data: &js_ast.ESpread{Value: item}, CommentsBefore: comments})

			default:
				item := p.parseExpr(js_ast.LComma)
				item.CommentsBefore = comments
				items = append(items, item)
			}

			carry = p.takeComments()
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}

		p.allowIn = oldAllowIn
		closeComments := append(carry, p.takeComments()...)
		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EArray{Items: items, CommentsBeforeClose: closeComments}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		properties := []js_ast.Property{}

		oldAllowIn := p.allowIn
		p.allowIn = true

		// Comments pending right before a separator carry over to the next
		// property, or to the closing brace when none follows
		var carry []js_ast.Comment
		for p.lexer.Token != js_lexer.TCloseBrace {
			comments := append(carry, p.takeComments()...)
			carry = nil
			if p.lexer.Token == js_lexer.TDotDotDot {
				p.lexer.Next()
				value := p.parseExpr(js_ast.LComma)
				properties = append(properties, js_ast.Property{Kind: js_ast.PropertySpread, Value: &value, CommentsBefore: comments})
			} else {
				property := p.parseProperty(js_ast.PropertyNormal, propertyOpts{})
				property.CommentsBefore = comments
				properties = append(properties, property)
			}

			carry = p.takeComments()
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}

		p.allowIn = oldAllowIn
		closeComments := append(carry, p.takeComments()...)
		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EObject{Properties: properties, CommentsBeforeClose: closeComments}}

	case js_lexer.TImport:
		p.lexer.Next()
		return p.parseImportExpr(loc)

	default:
		p.lexer.Unexpected()
		return js_ast.Expr{}
	}
}

// Parses the expression after the identifier "async", which has already been
// consumed. This covers async functions, async arrow functions, and plain
// references to a variable that happens to be called "async".
func (p *parser) parseAsyncPrefixExpr(loc logger.Loc) js_ast.Expr {
	if !p.lexer.HasNewlineBefore {
		switch p.lexer.Token {
		case js_lexer.TFunction:
			// "async function() {}"
			p.lexer.Next()
			return p.parseFnExpr(loc, true /* isAsync */)

		case js_lexer.TIdentifier:
			// "async x => {}"
			argLoc := p.lexer.Loc()
			name := p.lexer.Identifier
			p.lexer.Next()
			arg := js_ast.Arg{Binding: js_ast.Binding{Loc: argLoc, End: p.prevEnd(), Data: &js_ast.BIdentifier{Name: name}}}
			arrow := p.parseArrowBody([]js_ast.Arg{arg}, fnOpts{allowAwait: true})
			return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: arrow}

		case js_lexer.TOpenParen:
			// "async()" or "async () => {}"
			return p.parseParenExpr(loc, true /* isAsync */)
		}
	}

	return js_ast.Expr{Loc: loc, End: logger.Loc{Start: loc.Start + 5}, Data: &js_ast.EIdentifier{Name: "async"}}
}

func (p *parser) parseFnExpr(loc logger.Loc, isAsync bool) js_ast.Expr {
	// "function" has already been consumed
	isGenerator := p.lexer.Token == js_lexer.TAsterisk
	if isGenerator {
		p.lexer.Next()
	}

	var name *js_ast.NameLoc
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.NameLoc{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()
	}

	fn := p.parseFn(name, fnOpts{allowAwait: isAsync, allowYield: isGenerator})
	return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EFunction{Fn: fn}}
}

func (p *parser) parseImportExpr(loc logger.Loc) js_ast.Expr {
	// "import" has already been consumed
	if p.lexer.Token == js_lexer.TDot {
		p.lexer.Next()
		if !p.lexer.IsContextualKeyword("meta") {
			p.lexer.Unexpected()
		}
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EImportMeta{}}
	}

	p.lexer.Expect(js_lexer.TOpenParen)

	oldAllowIn := p.allowIn
	p.allowIn = true
	value := p.parseExpr(js_ast.LComma)
	p.allowIn = oldAllowIn

	p.lexer.Expect(js_lexer.TCloseParen)
	return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.EImportCall{Value: value}}
}

// Parses a parenthesized expression, which may actually be the argument list
// of an arrow function. The contents are parsed as expressions first and
// converted into bindings when "=>" follows the closing parenthesis.
func (p *parser) parseParenExpr(loc logger.Loc, isAsync bool) js_ast.Expr {
	items := []js_ast.Expr{}
	spreadRange := logger.Range{}
	hasSpread := false

	p.lexer.Expect(js_lexer.TOpenParen)

	oldAllowIn := p.allowIn
	p.allowIn = true

	for p.lexer.Token != js_lexer.TCloseParen {
		itemLoc := p.lexer.Loc()
		isSpread := p.lexer.Token == js_lexer.TDotDotDot
		if isSpread {
			spreadRange = p.lexer.Range()
			hasSpread = true
			p.lexer.Next()
		}

		item := p.parseExpr(js_ast.LComma)
		if isSpread {
			item = js_ast.Expr{Loc: itemLoc, End: item.End, Data: &js_ast.ESpread{Value: item}}
		}
		items = append(items, item)

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	p.allowIn = oldAllowIn

	// Is this an arrow function?
	if p.lexer.Token == js_lexer.TEqualsGreaterThan {
		args := []js_ast.Arg{}
		hasRestArg := false

		for _, item := range items {
			if spread, ok := item.Data.(*js_ast.ESpread); ok {
				item = spread.Value
				hasRestArg = true
			}
			binding, defaultValue := p.convertExprToBinding(item)
			args = append(args, js_ast.Arg{Binding: binding, Default: defaultValue})
		}

		arrow := p.parseArrowBody(args, fnOpts{allowAwait: isAsync})
		arrow.HasRestArg = hasRestArg
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: arrow}
	}

	// Is this a call to a function named "async"?
	if isAsync {
		target := js_ast.Expr{Loc: loc, End: logger.Loc{Start: loc.Start + 5}, Data: &js_ast.EIdentifier{Name: "async"}}
		return js_ast.Expr{Loc: loc, End: p.prevEnd(), Data: &js_ast.ECall{Target: target, Args: items}}
	}

	// A spread is only allowed inside an arrow argument list or call arguments
	if hasSpread {
		p.log.AddRangeError(&p.source, spreadRange, "Unexpected \"...\"")
		panic(js_lexer.LexerPanic{})
	}

	if len(items) == 0 {
		p.log.AddError(&p.source, loc, "Unexpected \")\"")
		panic(js_lexer.LexerPanic{})
	}

	// A comma expression
	value := items[0]
	for _, item := range items[1:] {
		value = js_ast.Expr{Loc: value.Loc, End: item.End, Data: &js_ast.EBinary{
			Op:    js_ast.BinOpComma,
			Left:  value,
			Right: item,
		}}
	}
	return value
}

func (p *parser) parseArrowBody(args []js_ast.Arg, opts fnOpts) *js_ast.EArrow {
	p.lexer.Expect(js_lexer.TEqualsGreaterThan)

	if p.lexer.Token == js_lexer.TOpenBrace {
		body := p.parseFnBodyWith(opts)
		return &js_ast.EArrow{Args: args, Body: body, IsAsync: opts.allowAwait}
	}

	oldAllowAwait := p.allowAwait
	oldAllowYield := p.allowYield
	p.allowAwait = opts.allowAwait
	p.allowYield = false

	bodyLoc := p.lexer.Loc()
	expr := p.parseExpr(js_ast.LComma)

	p.allowAwait = oldAllowAwait
	p.allowYield = oldAllowYield

	return &js_ast.EArrow{
		Args: args,
		Body: js_ast.FnBody{Loc: bodyLoc, Stmts: []js_ast.Stmt{
			{Loc: expr.Loc, End: expr.End, Data: &js_ast.SReturn{Value: &expr}},
		}},
		IsAsync:    opts.allowAwait,
		PreferExpr: true,
	}
}

// Converts an expression from the arrow function cover grammar into a
// binding pattern.
func (p *parser) convertExprToBinding(expr js_ast.Expr) (js_ast.Binding, *js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EMissing:
		return js_ast.Binding{Loc: expr.Loc, End: expr.End, Data: &js_ast.BMissing{}}, nil

	case *js_ast.EIdentifier:
		return js_ast.Binding{Loc: expr.Loc, End: expr.End, Data: &js_ast.BIdentifier{Name: e.Name}}, nil

	case *js_ast.EBinary:
		if e.Op == js_ast.BinOpAssign {
			binding, _ := p.convertExprToBinding(e.Left)
			value := e.Right
			return binding, &value
		}

	case *js_ast.EArray:
		items := []js_ast.ArrayBinding{}
		hasSpread := false
		for _, item := range e.Items {
			if spread, ok := item.Data.(*js_ast.ESpread); ok {
				hasSpread = true
				item = spread.Value
			}
			binding, defaultValue := p.convertExprToBinding(item)
			items = append(items, js_ast.ArrayBinding{Binding: binding, DefaultValue: defaultValue})
		}
		return js_ast.Binding{Loc: expr.Loc, End: expr.End, Data: &js_ast.BArray{Items: items, HasSpread: hasSpread}}, nil

	case *js_ast.EObject:
		properties := []js_ast.PropertyBinding{}
		ok := true
		for _, prop := range e.Properties {
			if prop.Kind == js_ast.PropertySpread {
				binding, _ := p.convertExprToBinding(*prop.Value)
				properties = append(properties, js_ast.PropertyBinding{IsSpread: true, Value: binding})
				continue
			}
			if prop.IsMethod || prop.Kind != js_ast.PropertyNormal {
				ok = false
				break
			}
			binding, defaultValue := p.convertExprToBinding(*prop.Value)
			if defaultValue == nil {
				defaultValue = prop.Initializer
			}
			properties = append(properties, js_ast.PropertyBinding{
				IsComputed:   prop.IsComputed,
				Key:          prop.Key,
				Value:        binding,
				DefaultValue: defaultValue,
			})
		}
		if ok {
			return js_ast.Binding{Loc: expr.Loc, End: expr.End, Data: &js_ast.BObject{Properties: properties}}, nil
		}
	}

	p.log.AddError(&p.source, expr.Loc, "Invalid binding pattern")
	panic(js_lexer.LexerPanic{})
}

func (p *parser) parseTemplateParts() []js_ast.TemplatePart {
	parts := []js_ast.TemplatePart{}

	oldAllowIn := p.allowIn
	p.allowIn = true

	for {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LLowest)
		p.lexer.RescanCloseBraceAsTemplateToken()
		tailRaw := p.lexer.RawTemplateContents()
		parts = append(parts, js_ast.TemplatePart{Value: value, TailRaw: tailRaw})
		if p.lexer.Token == js_lexer.TTemplateTail {
			p.lexer.Next()
			break
		}
	}

	p.allowIn = oldAllowIn
	return parts
}

func (p *parser) parseCallArgs() ([]js_ast.Expr, []js_ast.Comment) {
	args := []js_ast.Expr{}

	oldAllowIn := p.allowIn
	p.allowIn = true

	p.lexer.Expect(js_lexer.TOpenParen)

	var carry []js_ast.Comment
	for p.lexer.Token != js_lexer.TCloseParen {
		comments := append(carry, p.takeComments()...)
		carry = nil
		loc := p.lexer.Loc()
		isSpread := p.lexer.Token == js_lexer.TDotDotDot
		if isSpread {
			p.lexer.Next()
		}

		arg := p.parseExpr(js_ast.LComma)
		if isSpread {
			arg = js_ast.Expr{Loc: loc, End: arg.End, Data: &js_ast.ESpread{Value: arg}}
		}
		arg.CommentsBefore = comments
		args = append(args, arg)

		carry = p.takeComments()
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	closeComments := append(carry, p.takeComments()...)
	p.lexer.Expect(js_lexer.TCloseParen)
	p.allowIn = oldAllowIn
	return args, closeComments
}

func (p *parser) parseSuffix(left js_ast.Expr, level js_ast.L) js_ast.Expr {
	optionalChain := js_ast.OptionalChainNone

	for {
		// Reset the optional chain flag by default. That way the "c.d" in
		// "a?.b + c.d" is not considered part of the chain.
		oldOptionalChain := optionalChain
		optionalChain = js_ast.OptionalChainNone

		switch p.lexer.Token {
		case js_lexer.TDot:
			p.lexer.Next()

			if p.lexer.Token == js_lexer.TPrivateIdentifier {
				// "a.#b" is represented as an index
				index := js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EPrivateIdentifier{Name: p.lexer.Identifier}}
				p.lexer.Next()
				index.End = p.prevEnd()
				left = js_ast.Expr{Loc: left.Loc, End: p.prevEnd(), Data: &js_ast.EIndex{
					Target:        left,
					Index:         index,
					OptionalChain: oldOptionalChain,
				}}
				optionalChain = oldOptionalChain
				continue
			}

			if !p.lexer.IsIdentifierOrKeyword() {
				p.lexer.Expect(js_lexer.TIdentifier)
			}
			nameLoc := p.lexer.Loc()
			name := p.lexer.Identifier
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, End: p.prevEnd(), Data: &js_ast.EDot{
				Target:        left,
				Name:          name,
				NameLoc:       nameLoc,
				OptionalChain: oldOptionalChain,
			}}
			optionalChain = oldOptionalChain

		case js_lexer.TQuestionDot:
			p.lexer.Next()

			switch p.lexer.Token {
			case js_lexer.TOpenParen:
				// "a?.()"
				if level >= js_ast.LCall {
					return left
				}
				args, closeComments := p.parseCallArgs()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{
					Target:              left,
					Args:                args,
					CommentsBeforeClose: closeComments,
					OptionalChain:       js_ast.OptionalChainStart,
				}}
				left.End = p.prevEnd()

			case js_lexer.TOpenBracket:
				// "a?.[b]"
				p.lexer.Next()
				oldAllowIn := p.allowIn
				p.allowIn = true
				index := p.parseExpr(js_ast.LLowest)
				p.allowIn = oldAllowIn
				p.lexer.Expect(js_lexer.TCloseBracket)
				left = js_ast.Expr{Loc: left.Loc, End: p.prevEnd(), Data: &js_ast.EIndex{
					Target:        left,
					Index:         index,
					OptionalChain: js_ast.OptionalChainStart,
				}}

			default:
				// "a?.b"
				if !p.lexer.IsIdentifierOrKeyword() {
					p.lexer.Expect(js_lexer.TIdentifier)
				}
				nameLoc := p.lexer.Loc()
				name := p.lexer.Identifier
				p.lexer.Next()
				left = js_ast.Expr{Loc: left.Loc, End: p.prevEnd(), Data: &js_ast.EDot{
					Target:        left,
					Name:          name,
					NameLoc:       nameLoc,
					OptionalChain: js_ast.OptionalChainStart,
				}}
			}

			optionalChain = js_ast.OptionalChainContinue

		case js_lexer.TOpenBracket:
			p.lexer.Next()
			oldAllowIn := p.allowIn
			p.allowIn = true
			index := p.parseExpr(js_ast.LLowest)
			p.allowIn = oldAllowIn
			p.lexer.Expect(js_lexer.TCloseBracket)
			left = js_ast.Expr{Loc: left.Loc, End: p.prevEnd(), Data: &js_ast.EIndex{
				Target:        left,
				Index:         index,
				OptionalChain: oldOptionalChain,
			}}
			optionalChain = oldOptionalChain

		case js_lexer.TOpenParen:
			if level >= js_ast.LCall {
				return left
			}
			args, closeComments := p.parseCallArgs()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{
				Target:              left,
				Args:                args,
				CommentsBeforeClose: closeComments,
				OptionalChain:       oldOptionalChain,
			}}
			left.End = p.prevEnd()
			optionalChain = oldOptionalChain

		case js_lexer.TNoSubstitutionTemplateLiteral:
			// A tagged template literal
			if level >= js_ast.LPrefix {
				return left
			}
			headRaw := p.lexer.RawTemplateContents()
			p.lexer.Next()
			tag := left
			left = js_ast.Expr{Loc: left.Loc, End: p.prevEnd(), Data: &js_ast.ETemplate{Tag: &tag, HeadRaw: headRaw}}

		case js_lexer.TTemplateHead:
			if level >= js_ast.LPrefix {
				return left
			}
			headRaw := p.lexer.RawTemplateContents()
			parts := p.parseTemplateParts()
			tag := left
			left = js_ast.Expr{Loc: left.Loc, End: p.prevEnd(), Data: &js_ast.ETemplate{Tag: &tag, HeadRaw: headRaw, Parts: parts}}

		case js_lexer.TQuestion:
			if level >= js_ast.LConditional {
				return left
			}
			p.lexer.Next()

			// The middle operand is parsed with "in" allowed even inside the
			// init clause of a for loop
			oldAllowIn := p.allowIn
			p.allowIn = true
			yes := p.parseExpr(js_ast.LComma)
			p.allowIn = oldAllowIn

			p.lexer.Expect(js_lexer.TColon)
			no := p.parseExpr(js_ast.LComma)
			left = js_ast.Expr{Loc: left.Loc, End: no.End, Data: &js_ast.EIf{Test: left, Yes: yes, No: no}}

		case js_lexer.TMinusMinus:
			if p.lexer.HasNewlineBefore || level >= js_ast.LPostfix {
				return left
			}
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, End: p.prevEnd(), Data: &js_ast.EUnary{Op: js_ast.UnOpPostDec, Value: left}}

		case js_lexer.TPlusPlus:
			if p.lexer.HasNewlineBefore || level >= js_ast.LPostfix {
				return left
			}
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, End: p.prevEnd(), Data: &js_ast.EUnary{Op: js_ast.UnOpPostInc, Value: left}}

		case js_lexer.TComma:
			if level >= js_ast.LComma {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpComma, js_ast.LComma)

		case js_lexer.TAsteriskAsterisk:
			if level >= js_ast.LExponentiation {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpPow, js_ast.LExponentiation-1)

		case js_lexer.TAsterisk:
			if level >= js_ast.LMultiply {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpMul, js_ast.LMultiply)

		case js_lexer.TSlash:
			if level >= js_ast.LMultiply {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpDiv, js_ast.LMultiply)

		case js_lexer.TPercent:
			if level >= js_ast.LMultiply {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpRem, js_ast.LMultiply)

		case js_lexer.TPlus:
			if level >= js_ast.LAdd {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpAdd, js_ast.LAdd)

		case js_lexer.TMinus:
			if level >= js_ast.LAdd {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpSub, js_ast.LAdd)

		case js_lexer.TLessThanLessThan:
			if level >= js_ast.LShift {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpShl, js_ast.LShift)

		case js_lexer.TGreaterThanGreaterThan:
			if level >= js_ast.LShift {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpShr, js_ast.LShift)

		case js_lexer.TGreaterThanGreaterThanGreaterThan:
			if level >= js_ast.LShift {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpUShr, js_ast.LShift)

		case js_lexer.TLessThan:
			if level >= js_ast.LCompare {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpLt, js_ast.LCompare)

		case js_lexer.TLessThanEquals:
			if level >= js_ast.LCompare {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpLe, js_ast.LCompare)

		case js_lexer.TGreaterThan:
			if level >= js_ast.LCompare {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpGt, js_ast.LCompare)

		case js_lexer.TGreaterThanEquals:
			if level >= js_ast.LCompare {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpGe, js_ast.LCompare)

		case js_lexer.TIn:
			if level >= js_ast.LCompare || !p.allowIn {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpIn, js_ast.LCompare)

		case js_lexer.TInstanceof:
			if level >= js_ast.LCompare {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpInstanceof, js_ast.LCompare)

		case js_lexer.TEqualsEquals:
			if level >= js_ast.LEquals {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpLooseEq, js_ast.LEquals)

		case js_lexer.TExclamationEquals:
			if level >= js_ast.LEquals {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpLooseNe, js_ast.LEquals)

		case js_lexer.TEqualsEqualsEquals:
			if level >= js_ast.LEquals {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpStrictEq, js_ast.LEquals)

		case js_lexer.TExclamationEqualsEquals:
			if level >= js_ast.LEquals {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpStrictNe, js_ast.LEquals)

		case js_lexer.TQuestionQuestion:
			if level >= js_ast.LNullishCoalescing {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpNullishCoalescing, js_ast.LNullishCoalescing)

		case js_lexer.TBarBar:
			if level >= js_ast.LLogicalOr {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpLogicalOr, js_ast.LLogicalOr)

		case js_lexer.TAmpersandAmpersand:
			if level >= js_ast.LLogicalAnd {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpLogicalAnd, js_ast.LLogicalAnd)

		case js_lexer.TBar:
			if level >= js_ast.LBitwiseOr {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpBitwiseOr, js_ast.LBitwiseOr)

		case js_lexer.TAmpersand:
			if level >= js_ast.LBitwiseAnd {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpBitwiseAnd, js_ast.LBitwiseAnd)

		case js_lexer.TCaret:
			if level >= js_ast.LBitwiseXor {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpBitwiseXor, js_ast.LBitwiseXor)

		case js_lexer.TEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpAssign, js_ast.LAssign-1)

		case js_lexer.TPlusEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpAddAssign, js_ast.LAssign-1)

		case js_lexer.TMinusEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpSubAssign, js_ast.LAssign-1)

		case js_lexer.TAsteriskEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpMulAssign, js_ast.LAssign-1)

		case js_lexer.TSlashEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpDivAssign, js_ast.LAssign-1)

		case js_lexer.TPercentEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpRemAssign, js_ast.LAssign-1)

		case js_lexer.TAsteriskAsteriskEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpPowAssign, js_ast.LAssign-1)

		case js_lexer.TLessThanLessThanEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpShlAssign, js_ast.LAssign-1)

		case js_lexer.TGreaterThanGreaterThanEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpShrAssign, js_ast.LAssign-1)

		case js_lexer.TGreaterThanGreaterThanGreaterThanEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpUShrAssign, js_ast.LAssign-1)

		case js_lexer.TBarEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpBitwiseOrAssign, js_ast.LAssign-1)

		case js_lexer.TAmpersandEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpBitwiseAndAssign, js_ast.LAssign-1)

		case js_lexer.TCaretEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpBitwiseXorAssign, js_ast.LAssign-1)

		case js_lexer.TQuestionQuestionEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpNullishCoalescingAssign, js_ast.LAssign-1)

		case js_lexer.TBarBarEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpLogicalOrAssign, js_ast.LAssign-1)

		case js_lexer.TAmpersandAmpersandEquals:
			if level >= js_ast.LAssign {
				return left
			}
			left = p.parseBinarySuffix(left, js_ast.BinOpLogicalAndAssign, js_ast.LAssign-1)

		default:
			return left
		}
	}
}

// Consumes the current binary operator token and the right operand, parsed
// at rightLevel.
func (p *parser) parseBinarySuffix(left js_ast.Expr, op js_ast.OpCode, rightLevel js_ast.L) js_ast.Expr {
	p.lexer.Next()
	right := p.parseExpr(rightLevel)
	return js_ast.Expr{Loc: left.Loc, End: right.End, Data: &js_ast.EBinary{Op: op, Left: left, Right: right}}
}
