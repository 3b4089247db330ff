package js_ast

import (
	"github.com/jsmend/jsmend/internal/logger"
)

// Every source file is parsed into a separate AST. The tree is owned by the
// operation that parsed it and is mutated in place by the rewrite passes; no
// node escapes the operation boundary. Identifiers are stored by name rather
// than through a symbol table because every edit this tool performs is purely
// syntactic.

type L int

// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Operators/Operator_Precedence
const (
	LLowest L = iota
	LComma
	LSpread
	LYield
	LAssign
	LConditional
	LNullishCoalescing
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponentiation
	LPrefix
	LPostfix
	LNew
	LCall
	LMember
)

type OpCode int

func (op OpCode) IsPrefix() bool {
	return op < UnOpPostDec
}

func (op OpCode) IsLeftAssociative() bool {
	return op >= BinOpAdd && op < BinOpComma && op != BinOpPow
}

func (op OpCode) IsRightAssociative() bool {
	return op >= BinOpAssign || op == BinOpPow
}

// If you add a new operator, remember to add it to "OpTable" too
const (
	// Prefix
	UnOpPos OpCode = iota
	UnOpNeg
	UnOpCpl
	UnOpNot
	UnOpVoid
	UnOpTypeof
	UnOpDelete

	// Prefix update
	UnOpPreDec
	UnOpPreInc

	// Postfix update
	UnOpPostDec
	UnOpPostInc

	// Left-associative
	BinOpAdd
	BinOpSub
	BinOpMul
	BinOpDiv
	BinOpRem
	BinOpPow
	BinOpLt
	BinOpLe
	BinOpGt
	BinOpGe
	BinOpIn
	BinOpInstanceof
	BinOpShl
	BinOpShr
	BinOpUShr
	BinOpLooseEq
	BinOpLooseNe
	BinOpStrictEq
	BinOpStrictNe
	BinOpNullishCoalescing
	BinOpLogicalOr
	BinOpLogicalAnd
	BinOpBitwiseOr
	BinOpBitwiseAnd
	BinOpBitwiseXor

	// Non-associative
	BinOpComma

	// Right-associative
	BinOpAssign
	BinOpAddAssign
	BinOpSubAssign
	BinOpMulAssign
	BinOpDivAssign
	BinOpRemAssign
	BinOpPowAssign
	BinOpShlAssign
	BinOpShrAssign
	BinOpUShrAssign
	BinOpBitwiseOrAssign
	BinOpBitwiseAndAssign
	BinOpBitwiseXorAssign
	BinOpNullishCoalescingAssign
	BinOpLogicalOrAssign
	BinOpLogicalAndAssign
)

type opTableEntry struct {
	Text      string
	Level     L
	IsKeyword bool
}

var OpTable = []opTableEntry{
	// Prefix
	{"+", LPrefix, false},
	{"-", LPrefix, false},
	{"~", LPrefix, false},
	{"!", LPrefix, false},
	{"void", LPrefix, true},
	{"typeof", LPrefix, true},
	{"delete", LPrefix, true},

	// Prefix update
	{"--", LPrefix, false},
	{"++", LPrefix, false},

	// Postfix update
	{"--", LPostfix, false},
	{"++", LPostfix, false},

	// Left-associative
	{"+", LAdd, false},
	{"-", LAdd, false},
	{"*", LMultiply, false},
	{"/", LMultiply, false},
	{"%", LMultiply, false},
	{"**", LExponentiation, false}, // Right-associative
	{"<", LCompare, false},
	{"<=", LCompare, false},
	{">", LCompare, false},
	{">=", LCompare, false},
	{"in", LCompare, true},
	{"instanceof", LCompare, true},
	{"<<", LShift, false},
	{">>", LShift, false},
	{">>>", LShift, false},
	{"==", LEquals, false},
	{"!=", LEquals, false},
	{"===", LEquals, false},
	{"!==", LEquals, false},
	{"??", LNullishCoalescing, false},
	{"||", LLogicalOr, false},
	{"&&", LLogicalAnd, false},
	{"|", LBitwiseOr, false},
	{"&", LBitwiseAnd, false},
	{"^", LBitwiseXor, false},

	// Non-associative
	{",", LComma, false},

	// Right-associative
	{"=", LAssign, false},
	{"+=", LAssign, false},
	{"-=", LAssign, false},
	{"*=", LAssign, false},
	{"/=", LAssign, false},
	{"%=", LAssign, false},
	{"**=", LAssign, false},
	{"<<=", LAssign, false},
	{">>=", LAssign, false},
	{">>>=", LAssign, false},
	{"|=", LAssign, false},
	{"&=", LAssign, false},
	{"^=", LAssign, false},
	{"??=", LAssign, false},
	{"||=", LAssign, false},
	{"&&=", LAssign, false},
}

// NameLoc binds a raw name to its source location.
type NameLoc struct {
	Loc  logger.Loc
	Name string
}

// Comment is a captured source comment. Text includes the "//" or "/* */"
// delimiters so the printer can re-emit it verbatim.
type Comment struct {
	Loc  logger.Loc
	End  logger.Loc
	Text string
}

func (c Comment) IsLine() bool {
	return len(c.Text) >= 2 && c.Text[1] == '/'
}

// Value returns the comment text without its delimiters.
func (c Comment) Value() string {
	if c.IsLine() {
		return c.Text[2:]
	}
	if len(c.Text) >= 4 {
		return c.Text[2 : len(c.Text)-2]
	}
	return ""
}

type PropertyKind int

const (
	PropertyNormal PropertyKind = iota
	PropertyGet
	PropertySet
	PropertySpread
)

type Property struct {
	// Unused when Kind is PropertySpread. Identifier keys are EIdentifier,
	// quoted keys are EString, numeric keys are ENumber; computed keys may be
	// any expression.
	Key Expr

	// The spread expression for PropertySpread, the method function for
	// methods, otherwise the property value.
	Value *Expr

	// Default value in destructuring patterns and class fields with values:
	//   ({a = 1} = {});
	//   class Foo { a = 1 }
	Initializer *Expr

	// Comments on the lines above the property inside an object literal or
	// class body.
	CommentsBefore []Comment

	Kind         PropertyKind
	IsComputed   bool
	IsMethod     bool
	IsStatic     bool
	WasShorthand bool
}

type PropertyBinding struct {
	IsComputed   bool
	IsSpread     bool
	Key          Expr
	Value        Binding
	DefaultValue *Expr
}

type Arg struct {
	Binding Binding
	Default *Expr
}

type Fn struct {
	Name *NameLoc
	Args []Arg
	Body FnBody

	IsAsync     bool
	IsGenerator bool
	HasRestArg  bool
}

type FnBody struct {
	Loc   logger.Loc
	Stmts []Stmt
}

type Class struct {
	Name       *NameLoc
	Extends    *Expr
	BodyLoc    logger.Loc
	Properties []Property
}

type ArrayBinding struct {
	Binding      Binding
	DefaultValue *Expr
}

type Binding struct {
	Loc  logger.Loc
	End  logger.Loc
	Data B
}

// This interface is never called. Its purpose is to encode a variant type in
// Go's type system.
type B interface{ isBinding() }

type BMissing struct{}

type BIdentifier struct{ Name string }

type BArray struct {
	Items     []ArrayBinding
	HasSpread bool
}

type BObject struct{ Properties []PropertyBinding }

func (*BMissing) isBinding()    {}
func (*BIdentifier) isBinding() {}
func (*BArray) isBinding()      {}
func (*BObject) isBinding()     {}

type Expr struct {
	Loc  logger.Loc
	End  logger.Loc
	Data E

	// Comments on the lines above the expression. Only call arguments and
	// array elements carry these; everywhere else the slice stays nil.
	CommentsBefore []Comment
}

// This interface is never called. Its purpose is to encode a variant type in
// Go's type system.
type E interface{ isExpr() }

type EArray struct {
	Items []Expr

	// Comments between the last element and the closing bracket.
	CommentsBeforeClose []Comment
}

type EUnary struct {
	Op    OpCode
	Value Expr
}

type EBinary struct {
	Op    OpCode
	Left  Expr
	Right Expr
}

type EBoolean struct{ Value bool }

type ESuper struct{}

type ENull struct{}

type EThis struct{}

type OptionalChain uint8

const (
	// "a.b"
	OptionalChainNone OptionalChain = iota

	// "a?.b"
	OptionalChainStart

	// The ".c" in "a?.b.c"
	OptionalChainContinue
)

type ENew struct {
	Target Expr
	Args   []Expr

	// Comments between the last argument and the closing parenthesis.
	CommentsBeforeClose []Comment

	// True for "new Foo()", false for "new Foo"
	HasParens bool
}

type ENewTarget struct{}

type EImportMeta struct{}

type ECall struct {
	Target        Expr
	Args          []Expr
	OptionalChain OptionalChain

	// Comments between the last argument and the closing parenthesis.
	CommentsBeforeClose []Comment
}

type EDot struct {
	Target        Expr
	Name          string
	NameLoc       logger.Loc
	OptionalChain OptionalChain
}

type EIndex struct {
	Target        Expr
	Index         Expr
	OptionalChain OptionalChain
}

type EArrow struct {
	Args       []Arg
	Body       FnBody
	IsAsync    bool
	HasRestArg bool

	// True when the body is an expression: "x => x + 1"
	PreferExpr bool
}

type EFunction struct{ Fn Fn }

type EClass struct{ Class Class }

type EIdentifier struct{ Name string }

type EPrivateIdentifier struct{ Name string }

type EMissing struct{}

type ENumber struct{ Value float64 }

type EBigInt struct{ Value string }

type EObject struct {
	Properties []Property

	// Comments between the last property and the closing brace.
	CommentsBeforeClose []Comment
}

type ESpread struct{ Value Expr }

type EString struct{ Value []uint16 }

type TemplatePart struct {
	Value   Expr
	TailRaw string
}

type ETemplate struct {
	Tag     *Expr
	HeadRaw string
	Parts   []TemplatePart
}

type ERegExp struct{ Value string }

type EAwait struct{ Value Expr }

type EYield struct {
	Value  *Expr
	IsStar bool
}

type EIf struct {
	Test Expr
	Yes  Expr
	No   Expr
}

type EImportCall struct{ Value Expr }

func (*EArray) isExpr()             {}
func (*EUnary) isExpr()             {}
func (*EBinary) isExpr()            {}
func (*EBoolean) isExpr()           {}
func (*ESuper) isExpr()             {}
func (*ENull) isExpr()              {}
func (*EThis) isExpr()              {}
func (*ENew) isExpr()               {}
func (*ENewTarget) isExpr()         {}
func (*EImportMeta) isExpr()        {}
func (*ECall) isExpr()              {}
func (*EDot) isExpr()               {}
func (*EIndex) isExpr()             {}
func (*EArrow) isExpr()             {}
func (*EFunction) isExpr()          {}
func (*EClass) isExpr()             {}
func (*EIdentifier) isExpr()        {}
func (*EPrivateIdentifier) isExpr() {}
func (*EMissing) isExpr()           {}
func (*ENumber) isExpr()            {}
func (*EBigInt) isExpr()            {}
func (*EObject) isExpr()            {}
func (*ESpread) isExpr()            {}
func (*EString) isExpr()            {}
func (*ETemplate) isExpr()          {}
func (*ERegExp) isExpr()            {}
func (*EAwait) isExpr()             {}
func (*EYield) isExpr()             {}
func (*EIf) isExpr()                {}
func (*EImportCall) isExpr()        {}

type ExprOrStmt struct {
	Expr *Expr
	Stmt *Stmt
}

type Stmt struct {
	Loc  logger.Loc
	End  logger.Loc
	Data S
}

// This interface is never called. Its purpose is to encode a variant type in
// Go's type system.
type S interface{ isStmt() }

type SBlock struct{ Stmts []Stmt }

type SEmpty struct{}

// A comment that appeared between statements. Comments survive edits by
// living in the statement list, so the printer re-emits them at their
// original attachment points and passes that remove a statement can remove
// the comments attached to it.
type SComment struct{ Text string }

type SDebugger struct{}

type SDirective struct{ Value []uint16 }

type ClauseItem struct {
	// The name exported or imported from the other module. For "import {x as
	// y}" this is "x"; Name.Name is "y". The two coincide without "as".
	Alias    string
	AliasLoc logger.Loc
	Name     NameLoc
}

// Path is a module specifier string and its location.
type Path struct {
	Loc  logger.Loc
	Text string
}

// This object represents all of these types of import statements:
//
//	import 'path'
//	import {item1, item2} from 'path'
//	import * as ns from 'path'
//	import defaultItem, {item1, item2} from 'path'
//	import defaultItem, * as ns from 'path'
//
// Many parts are optional and can be combined in different ways. The only
// restriction is that you cannot have both a clause and a star namespace.
type SImport struct {
	DefaultName *NameLoc
	Items       *[]ClauseItem
	StarName    *NameLoc
	Path        Path
}

type SExportClause struct{ Items []ClauseItem }

type SExportFrom struct {
	Items []ClauseItem
	Path  Path
}

type ExportStarAlias struct {
	Loc  logger.Loc
	Name string
}

type SExportStar struct {
	Alias *ExportStarAlias
	Path  Path
}

type SExportDefault struct {
	// May hold an SFunction or SClass statement
	Value ExprOrStmt
}

type SExpr struct{ Value Expr }

type SFunction struct {
	Fn       Fn
	IsExport bool
}

type SClass struct {
	Class    Class
	IsExport bool
}

type SIf struct {
	Test Expr
	Yes  Stmt
	No   *Stmt
}

type LocalKind uint8

const (
	LocalVar LocalKind = iota
	LocalLet
	LocalConst
)

func (kind LocalKind) String() string {
	switch kind {
	case LocalVar:
		return "var"
	case LocalLet:
		return "let"
	default:
		return "const"
	}
}

type Decl struct {
	Binding Binding
	Value   *Expr
}

type SLocal struct {
	Decls    []Decl
	Kind     LocalKind
	IsExport bool
}

type SReturn struct{ Value *Expr }

type SThrow struct{ Value Expr }

type SBreak struct{ Label *NameLoc }

type SContinue struct{ Label *NameLoc }

type SFor struct {
	// May be nil, an SLocal, or an SExpr
	Init   *Stmt
	Test   *Expr
	Update *Expr
	Body   Stmt
}

type SForIn struct {
	// An SLocal or an SExpr
	Init  Stmt
	Value Expr
	Body  Stmt
}

type SForOf struct {
	IsAwait bool
	Init    Stmt
	Value   Expr
	Body    Stmt
}

type SDoWhile struct {
	Body Stmt
	Test Expr
}

type SWhile struct {
	Test Expr
	Body Stmt
}

type SLabel struct {
	Name NameLoc
	Stmt Stmt
}

type Case struct {
	// nil for "default:"
	Value *Expr
	Body  []Stmt
}

type SSwitch struct {
	Test  Expr
	Cases []Case
}

type Catch struct {
	Loc     logger.Loc
	Binding *Binding
	Body    []Stmt
}

type Finally struct {
	Loc   logger.Loc
	Stmts []Stmt
}

type STry struct {
	Body    []Stmt
	Catch   *Catch
	Finally *Finally
}

func (*SBlock) isStmt()         {}
func (*SEmpty) isStmt()         {}
func (*SComment) isStmt()       {}
func (*SDebugger) isStmt()      {}
func (*SDirective) isStmt()     {}
func (*SImport) isStmt()        {}
func (*SExportClause) isStmt()  {}
func (*SExportFrom) isStmt()    {}
func (*SExportStar) isStmt()    {}
func (*SExportDefault) isStmt() {}
func (*SExpr) isStmt()          {}
func (*SFunction) isStmt()      {}
func (*SClass) isStmt()         {}
func (*SIf) isStmt()            {}
func (*SLocal) isStmt()         {}
func (*SReturn) isStmt()        {}
func (*SThrow) isStmt()         {}
func (*SBreak) isStmt()         {}
func (*SContinue) isStmt()      {}
func (*SFor) isStmt()           {}
func (*SForIn) isStmt()         {}
func (*SForOf) isStmt()         {}
func (*SDoWhile) isStmt()       {}
func (*SWhile) isStmt()         {}
func (*SLabel) isStmt()         {}
func (*SSwitch) isStmt()        {}
func (*STry) isStmt()           {}

type AST struct {
	Hashbang string
	Body     []Stmt

	// Every comment in the file in source order, including ones attached to
	// EOF. The printer works from the SComment statements instead; this list
	// feeds the ESTree dump.
	Comments []Comment
}
