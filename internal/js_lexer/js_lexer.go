package js_lexer

// The lexer converts a source file to a stream of tokens. It is not run to
// completion before parsing starts: the parser calls it repeatedly because
// some tokens are context-sensitive. Regular expression literals are the
// main example: the parser asks for a rescan of "/" when one is legal.
//
// Identifiers are stored as UTF-8 slices of the input. String literal
// contents are stored as UTF-16 so lone surrogates survive a roundtrip.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/jsmend/jsmend/internal/js_ast"
	"github.com/jsmend/jsmend/internal/logger"
)

type T uint8

// If you add a new token, remember to add it to "tokenToString" too
const (
	TEndOfFile T = iota
	TSyntaxError

	// "#!/usr/bin/env node"
	THashbang

	// Literals
	TNoSubstitutionTemplateLiteral // Raw contents are in the source text
	TNumericLiteral                // Contents are in lexer.Number (float64)
	TStringLiteral                 // Contents are in lexer.StringLiteral ([]uint16)
	TBigIntegerLiteral             // Contents are in lexer.Identifier (string)

	// Pseudo-literals
	TTemplateHead
	TTemplateMiddle
	TTemplateTail

	// Punctuation
	TAmpersand
	TAmpersandAmpersand
	TAsterisk
	TAsteriskAsterisk
	TAt
	TBar
	TBarBar
	TCaret
	TCloseBrace
	TCloseBracket
	TCloseParen
	TColon
	TComma
	TDot
	TDotDotDot
	TEqualsEquals
	TEqualsEqualsEquals
	TEqualsGreaterThan
	TExclamation
	TExclamationEquals
	TExclamationEqualsEquals
	TGreaterThan
	TGreaterThanEquals
	TGreaterThanGreaterThan
	TGreaterThanGreaterThanGreaterThan
	TLessThan
	TLessThanEquals
	TLessThanLessThan
	TMinus
	TMinusMinus
	TOpenBrace
	TOpenBracket
	TOpenParen
	TPercent
	TPlus
	TPlusPlus
	TQuestion
	TQuestionDot
	TQuestionQuestion
	TSemicolon
	TSlash
	TTilde

	// Assignments
	TAmpersandAmpersandEquals
	TAmpersandEquals
	TAsteriskAsteriskEquals
	TAsteriskEquals
	TBarBarEquals
	TBarEquals
	TCaretEquals
	TEquals
	TGreaterThanGreaterThanEquals
	TGreaterThanGreaterThanGreaterThanEquals
	TLessThanLessThanEquals
	TMinusEquals
	TPercentEquals
	TPlusEquals
	TQuestionQuestionEquals
	TSlashEquals

	// Class-private fields and methods
	TPrivateIdentifier

	// Identifiers
	TIdentifier     // Contents are in lexer.Identifier (string)
	TEscapedKeyword // A keyword that has been escaped as an identifier

	// Reserved words
	TBreak
	TCase
	TCatch
	TClass
	TConst
	TContinue
	TDebugger
	TDefault
	TDelete
	TDo
	TElse
	TEnum
	TExport
	TExtends
	TFalse
	TFinally
	TFor
	TFunction
	TIf
	TImport
	TIn
	TInstanceof
	TNew
	TNull
	TReturn
	TSuper
	TSwitch
	TThis
	TThrow
	TTrue
	TTry
	TTypeof
	TVar
	TVoid
	TWhile
	TWith
)

var Keywords = map[string]T{
	// Reserved words
	"break":      TBreak,
	"case":       TCase,
	"catch":      TCatch,
	"class":      TClass,
	"const":      TConst,
	"continue":   TContinue,
	"debugger":   TDebugger,
	"default":    TDefault,
	"delete":     TDelete,
	"do":         TDo,
	"else":       TElse,
	"enum":       TEnum,
	"export":     TExport,
	"extends":    TExtends,
	"false":      TFalse,
	"finally":    TFinally,
	"for":        TFor,
	"function":   TFunction,
	"if":         TIf,
	"import":     TImport,
	"in":         TIn,
	"instanceof": TInstanceof,
	"new":        TNew,
	"null":       TNull,
	"return":     TReturn,
	"super":      TSuper,
	"switch":     TSwitch,
	"this":       TThis,
	"throw":      TThrow,
	"true":       TTrue,
	"try":        TTry,
	"typeof":     TTypeof,
	"var":        TVar,
	"void":       TVoid,
	"while":      TWhile,
	"with":       TWith,
}

var tokenToString = map[T]string{
	TEndOfFile:                     "end of file",
	TSyntaxError:                   "syntax error",
	THashbang:                      "hashbang comment",
	TNoSubstitutionTemplateLiteral: "template literal",
	TNumericLiteral:                "number",
	TStringLiteral:                 "string",
	TBigIntegerLiteral:             "bigint",
	TTemplateHead:                  "template literal",
	TTemplateMiddle:                "template literal",
	TTemplateTail:                  "template literal",

	TAmpersand:                               "\"&\"",
	TAmpersandAmpersand:                      "\"&&\"",
	TAsterisk:                                "\"*\"",
	TAsteriskAsterisk:                        "\"**\"",
	TAt:                                      "\"@\"",
	TBar:                                     "\"|\"",
	TBarBar:                                  "\"||\"",
	TCaret:                                   "\"^\"",
	TCloseBrace:                              "\"}\"",
	TCloseBracket:                            "\"]\"",
	TCloseParen:                              "\")\"",
	TColon:                                   "\":\"",
	TComma:                                   "\",\"",
	TDot:                                     "\".\"",
	TDotDotDot:                               "\"...\"",
	TEqualsEquals:                            "\"==\"",
	TEqualsEqualsEquals:                      "\"===\"",
	TEqualsGreaterThan:                       "\"=>\"",
	TExclamation:                             "\"!\"",
	TExclamationEquals:                       "\"!=\"",
	TExclamationEqualsEquals:                 "\"!==\"",
	TGreaterThan:                             "\">\"",
	TGreaterThanEquals:                       "\">=\"",
	TGreaterThanGreaterThan:                  "\">>\"",
	TGreaterThanGreaterThanGreaterThan:       "\">>>\"",
	TLessThan:                                "\"<\"",
	TLessThanEquals:                          "\"<=\"",
	TLessThanLessThan:                        "\"<<\"",
	TMinus:                                   "\"-\"",
	TMinusMinus:                              "\"--\"",
	TOpenBrace:                               "\"{\"",
	TOpenBracket:                             "\"[\"",
	TOpenParen:                               "\"(\"",
	TPercent:                                 "\"%\"",
	TPlus:                                    "\"+\"",
	TPlusPlus:                                "\"++\"",
	TQuestion:                                "\"?\"",
	TQuestionDot:                             "\"?.\"",
	TQuestionQuestion:                        "\"??\"",
	TSemicolon:                               "\";\"",
	TSlash:                                   "\"/\"",
	TTilde:                                   "\"~\"",
	TAmpersandAmpersandEquals:                "\"&&=\"",
	TAmpersandEquals:                         "\"&=\"",
	TAsteriskAsteriskEquals:                  "\"**=\"",
	TAsteriskEquals:                          "\"*=\"",
	TBarBarEquals:                            "\"||=\"",
	TBarEquals:                               "\"|=\"",
	TCaretEquals:                             "\"^=\"",
	TEquals:                                  "\"=\"",
	TGreaterThanGreaterThanEquals:            "\">>=\"",
	TGreaterThanGreaterThanGreaterThanEquals: "\">>>=\"",
	TLessThanLessThanEquals:                  "\"<<=\"",
	TMinusEquals:                             "\"-=\"",
	TPercentEquals:                           "\"%=\"",
	TPlusEquals:                              "\"+=\"",
	TQuestionQuestionEquals:                  "\"??=\"",
	TSlashEquals:                             "\"/=\"",

	TPrivateIdentifier: "private name",
	TIdentifier:        "identifier",
	TEscapedKeyword:    "escaped keyword",

	TBreak:      "\"break\"",
	TCase:       "\"case\"",
	TCatch:      "\"catch\"",
	TClass:      "\"class\"",
	TConst:      "\"const\"",
	TContinue:   "\"continue\"",
	TDebugger:   "\"debugger\"",
	TDefault:    "\"default\"",
	TDelete:     "\"delete\"",
	TDo:         "\"do\"",
	TElse:       "\"else\"",
	TEnum:       "\"enum\"",
	TExport:     "\"export\"",
	TExtends:    "\"extends\"",
	TFalse:      "\"false\"",
	TFinally:    "\"finally\"",
	TFor:        "\"for\"",
	TFunction:   "\"function\"",
	TIf:         "\"if\"",
	TImport:     "\"import\"",
	TIn:         "\"in\"",
	TInstanceof: "\"instanceof\"",
	TNew:        "\"new\"",
	TNull:       "\"null\"",
	TReturn:     "\"return\"",
	TSuper:      "\"super\"",
	TSwitch:     "\"switch\"",
	TThis:       "\"this\"",
	TThrow:      "\"throw\"",
	TTrue:       "\"true\"",
	TTry:        "\"try\"",
	TTypeof:     "\"typeof\"",
	TVar:        "\"var\"",
	TVoid:       "\"void\"",
	TWhile:      "\"while\"",
	TWith:       "\"with\"",
}

type Lexer struct {
	log     logger.Log
	source  logger.Source
	current int
	start   int
	end     int

	Token            T
	HasNewlineBefore bool

	// Comments scanned since the previous token. The parser drains this into
	// statement-level comment nodes.
	CommentsBefore []js_ast.Comment

	// Every comment in the file, in source order.
	AllComments []js_ast.Comment

	// The end of the previously consumed token. The parser reads this right
	// after consuming a node's final token to record the node's end offset.
	PrevTokenEnd int32

	codePoint     rune
	StringLiteral []uint16
	Identifier    string
	Number        float64
	Hashbang      string

	rescanCloseBraceAsTemplateToken bool

	// The log is disabled during speculative scans that may backtrack
	IsLogDisabled bool
}

type LexerPanic struct{}

func NewLexer(log logger.Log, source logger.Source) Lexer {
	lexer := Lexer{
		log:    log,
		source: source,
	}
	lexer.step()
	lexer.Next()
	return lexer
}

func (lexer *Lexer) Loc() logger.Loc {
	return logger.Loc{Start: int32(lexer.start)}
}

func (lexer *Lexer) Range() logger.Range {
	return logger.Range{Loc: logger.Loc{Start: int32(lexer.start)}, Len: int32(lexer.end - lexer.start)}
}

func (lexer *Lexer) Raw() string {
	return lexer.source.Contents[lexer.start:lexer.end]
}

// RawTemplateContents returns the raw text of a template token without its
// delimiters, exactly as written in the source.
func (lexer *Lexer) RawTemplateContents() string {
	switch lexer.Token {
	case TNoSubstitutionTemplateLiteral, TTemplateTail:
		// "`x`" or "}x`"
		return lexer.source.Contents[lexer.start+1 : lexer.end-1]

	case TTemplateHead, TTemplateMiddle:
		// "`x${" or "}x${"
		return lexer.source.Contents[lexer.start+1 : lexer.end-2]
	}
	return ""
}

func (lexer *Lexer) IsIdentifierOrKeyword() bool {
	return lexer.Token >= TIdentifier
}

func (lexer *Lexer) IsContextualKeyword(text string) bool {
	return lexer.Token == TIdentifier && lexer.Raw() == text
}

func (lexer *Lexer) ExpectContextualKeyword(text string) {
	if !lexer.IsContextualKeyword(text) {
		lexer.ExpectedString(fmt.Sprintf("%q", text))
	}
	lexer.Next()
}

func (lexer *Lexer) SyntaxError() {
	loc := logger.Loc{Start: int32(lexer.end)}
	message := "Unexpected end of file"
	if lexer.end < len(lexer.source.Contents) {
		c, _ := utf8.DecodeRuneInString(lexer.source.Contents[lexer.end:])
		if c < 0x20 {
			message = fmt.Sprintf("Syntax error \"\\x%02X\"", c)
		} else if c >= 0x80 {
			message = fmt.Sprintf("Syntax error \"\\u{%x}\"", c)
		} else if c != '"' {
			message = fmt.Sprintf("Syntax error \"%c\"", c)
		} else {
			message = "Syntax error '\"'"
		}
	}
	lexer.addError(loc, message)
	panic(LexerPanic{})
}

func (lexer *Lexer) ExpectedString(text string) {
	found := fmt.Sprintf("%q", lexer.Raw())
	if lexer.start == len(lexer.source.Contents) {
		found = "end of file"
	}
	lexer.addRangeError(lexer.Range(), fmt.Sprintf("Expected %s but found %s", text, found))
	panic(LexerPanic{})
}

func (lexer *Lexer) Expected(token T) {
	if text, ok := tokenToString[token]; ok {
		lexer.ExpectedString(text)
	} else {
		lexer.Unexpected()
	}
}

func (lexer *Lexer) Unexpected() {
	found := fmt.Sprintf("%q", lexer.Raw())
	if lexer.start == len(lexer.source.Contents) {
		found = "end of file"
	}
	lexer.addRangeError(lexer.Range(), fmt.Sprintf("Unexpected %s", found))
	panic(LexerPanic{})
}

func (lexer *Lexer) Expect(token T) {
	if lexer.Token != token {
		lexer.Expected(token)
	}
	lexer.Next()
}

func (lexer *Lexer) ExpectOrInsertSemicolon() {
	if lexer.Token == TSemicolon || (!lexer.HasNewlineBefore &&
		lexer.Token != TCloseBrace && lexer.Token != TEndOfFile) {
		lexer.Expect(TSemicolon)
	}
}

func IsIdentifierStart(codePoint rune) bool {
	switch codePoint {
	case '_', '$':
		return true
	}
	if codePoint >= 'a' && codePoint <= 'z' || codePoint >= 'A' && codePoint <= 'Z' {
		return true
	}
	if codePoint < 0x80 {
		return false
	}
	return unicode.In(codePoint, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

func IsIdentifierContinue(codePoint rune) bool {
	switch codePoint {
	case '_', '$', '\u200C', '\u200D':
		return true
	}
	if codePoint >= 'a' && codePoint <= 'z' || codePoint >= 'A' && codePoint <= 'Z' ||
		codePoint >= '0' && codePoint <= '9' {
		return true
	}
	if codePoint < 0x80 {
		return false
	}
	return unicode.In(codePoint, unicode.L, unicode.Nl, unicode.Other_ID_Start,
		unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

func IsWhitespace(codePoint rune) bool {
	switch codePoint {
	case '\t', '\v', '\f', ' ', '\u00A0', '\uFEFF':
		return true
	}
	return codePoint > 0x80 && unicode.Is(unicode.Zs, codePoint)
}

// IsIdentifier reports whether text is a valid JavaScript identifier. The
// printer uses this to decide when a property key needs quoting.
func IsIdentifier(text string) bool {
	if len(text) == 0 {
		return false
	}
	for i, codePoint := range text {
		if i == 0 {
			if !IsIdentifierStart(codePoint) {
				return false
			}
		} else if !IsIdentifierContinue(codePoint) {
			return false
		}
	}
	return true
}

func StringToUTF16(text string) []uint16 {
	return utf16.Encode([]rune(text))
}

func UTF16ToString(text []uint16) string {
	return string(utf16.Decode(text))
}

func UTF16EqualsString(text []uint16, str string) bool {
	decoded := utf16.Decode(text)
	if len(decoded) != utf8.RuneCountInString(str) {
		return false
	}
	i := 0
	for _, r := range str {
		if decoded[i] != r {
			return false
		}
		i++
	}
	return true
}

func (lexer *Lexer) Next() {
	lexer.PrevTokenEnd = int32(lexer.end)
	lexer.HasNewlineBefore = lexer.end == 0
	lexer.CommentsBefore = nil

	for {
		lexer.start = lexer.end
		lexer.Token = 0

		switch lexer.codePoint {
		case -1: // This indicates the end of the file
			lexer.Token = TEndOfFile

		case '#':
			if lexer.start == 0 && strings.HasPrefix(lexer.source.Contents, "#!") {
				// "#!/usr/bin/env node"
				lexer.Token = THashbang
			hashbang:
				for {
					lexer.step()
					switch lexer.codePoint {
					case '\r', '\n', '\u2028', '\u2029':
						break hashbang
					case -1: // This indicates the end of the file
						break hashbang
					}
				}
				lexer.Identifier = lexer.Raw()
				lexer.Hashbang = lexer.Identifier
			} else {
				// "#foo"
				lexer.step()
				if !IsIdentifierStart(lexer.codePoint) {
					lexer.SyntaxError()
				}
				lexer.step()
				for IsIdentifierContinue(lexer.codePoint) {
					lexer.step()
				}
				lexer.Identifier = lexer.Raw()
				lexer.Token = TPrivateIdentifier
			}

		case '\r', '\n', '\u2028', '\u2029':
			lexer.step()
			lexer.HasNewlineBefore = true
			continue

		case '\t', ' ', '\v', '\f', '\u00A0', '\uFEFF':
			lexer.step()
			continue

		case '(':
			lexer.step()
			lexer.Token = TOpenParen

		case ')':
			lexer.step()
			lexer.Token = TCloseParen

		case '[':
			lexer.step()
			lexer.Token = TOpenBracket

		case ']':
			lexer.step()
			lexer.Token = TCloseBracket

		case '{':
			lexer.step()
			lexer.Token = TOpenBrace

		case '}':
			lexer.step()
			lexer.Token = TCloseBrace

		case ',':
			lexer.step()
			lexer.Token = TComma

		case ':':
			lexer.step()
			lexer.Token = TColon

		case ';':
			lexer.step()
			lexer.Token = TSemicolon

		case '@':
			lexer.step()
			lexer.Token = TAt

		case '~':
			lexer.step()
			lexer.Token = TTilde

		case '?':
			// '?' or '?.' or '??' or '??='
			lexer.step()
			switch lexer.codePoint {
			case '?':
				lexer.step()
				switch lexer.codePoint {
				case '=':
					lexer.step()
					lexer.Token = TQuestionQuestionEquals
				default:
					lexer.Token = TQuestionQuestion
				}
			case '.':
				lexer.Token = TQuestion
				current := lexer.current
				contents := lexer.source.Contents

				// Lookahead to disambiguate with 'a?.1:b'
				if current < len(contents) {
					c := contents[current]
					if c < '0' || c > '9' {
						lexer.step()
						lexer.Token = TQuestionDot
					}
				}
			default:
				lexer.Token = TQuestion
			}

		case '%':
			// '%' or '%='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TPercentEquals
			default:
				lexer.Token = TPercent
			}

		case '&':
			// '&' or '&=' or '&&' or '&&='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TAmpersandEquals
			case '&':
				lexer.step()
				switch lexer.codePoint {
				case '=':
					lexer.step()
					lexer.Token = TAmpersandAmpersandEquals
				default:
					lexer.Token = TAmpersandAmpersand
				}
			default:
				lexer.Token = TAmpersand
			}

		case '|':
			// '|' or '|=' or '||' or '||='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TBarEquals
			case '|':
				lexer.step()
				switch lexer.codePoint {
				case '=':
					lexer.step()
					lexer.Token = TBarBarEquals
				default:
					lexer.Token = TBarBar
				}
			default:
				lexer.Token = TBar
			}

		case '^':
			// '^' or '^='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TCaretEquals
			default:
				lexer.Token = TCaret
			}

		case '+':
			// '+' or '+=' or '++'
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TPlusEquals
			case '+':
				lexer.step()
				lexer.Token = TPlusPlus
			default:
				lexer.Token = TPlus
			}

		case '-':
			// '-' or '-=' or '--'
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TMinusEquals
			case '-':
				lexer.step()
				lexer.Token = TMinusMinus
			default:
				lexer.Token = TMinus
			}

		case '*':
			// '*' or '*=' or '**' or '**='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TAsteriskEquals
			case '*':
				lexer.step()
				switch lexer.codePoint {
				case '=':
					lexer.step()
					lexer.Token = TAsteriskAsteriskEquals
				default:
					lexer.Token = TAsteriskAsterisk
				}
			default:
				lexer.Token = TAsterisk
			}

		case '/':
			// '/' or '/=' or '//' or '/* ... */'
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TSlashEquals

			case '/':
			singleLineComment:
				for {
					lexer.step()
					switch lexer.codePoint {
					case '\r', '\n', '\u2028', '\u2029':
						break singleLineComment
					case -1: // This indicates the end of the file
						break singleLineComment
					}
				}
				lexer.scanCommentText()
				continue

			case '*':
				lexer.step()
			multiLineComment:
				for {
					switch lexer.codePoint {
					case '*':
						lexer.step()
						if lexer.codePoint == '/' {
							lexer.step()
							break multiLineComment
						}

					case '\r', '\n', '\u2028', '\u2029':
						lexer.step()
						lexer.HasNewlineBefore = true

					case -1: // This indicates the end of the file
						lexer.start = lexer.end
						lexer.addError(lexer.Loc(), "Expected \"*/\" to terminate multi-line comment")
						panic(LexerPanic{})

					default:
						lexer.step()
					}
				}
				lexer.scanCommentText()
				continue

			default:
				lexer.Token = TSlash
			}

		case '=':
			// '=' or '=>' or '==' or '==='
			lexer.step()
			switch lexer.codePoint {
			case '>':
				lexer.step()
				lexer.Token = TEqualsGreaterThan
			case '=':
				lexer.step()
				switch lexer.codePoint {
				case '=':
					lexer.step()
					lexer.Token = TEqualsEqualsEquals
				default:
					lexer.Token = TEqualsEquals
				}
			default:
				lexer.Token = TEquals
			}

		case '<':
			// '<' or '<<' or '<=' or '<<='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TLessThanEquals
			case '<':
				lexer.step()
				switch lexer.codePoint {
				case '=':
					lexer.step()
					lexer.Token = TLessThanLessThanEquals
				default:
					lexer.Token = TLessThanLessThan
				}
			default:
				lexer.Token = TLessThan
			}

		case '>':
			// '>' or '>>' or '>>>' or '>=' or '>>=' or '>>>='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TGreaterThanEquals
			case '>':
				lexer.step()
				switch lexer.codePoint {
				case '=':
					lexer.step()
					lexer.Token = TGreaterThanGreaterThanEquals
				case '>':
					lexer.step()
					switch lexer.codePoint {
					case '=':
						lexer.step()
						lexer.Token = TGreaterThanGreaterThanGreaterThanEquals
					default:
						lexer.Token = TGreaterThanGreaterThanGreaterThan
					}
				default:
					lexer.Token = TGreaterThanGreaterThan
				}
			default:
				lexer.Token = TGreaterThan
			}

		case '!':
			// '!' or '!=' or '!=='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				switch lexer.codePoint {
				case '=':
					lexer.step()
					lexer.Token = TExclamationEqualsEquals
				default:
					lexer.Token = TExclamationEquals
				}
			default:
				lexer.Token = TExclamation
			}

		case '\'', '"':
			quote := lexer.codePoint
			hasEscape := false

		stringLiteral:
			for {
				lexer.step()
				switch lexer.codePoint {
				case '\\':
					hasEscape = true
					lexer.step()

					// Handle Windows CRLF
					if lexer.codePoint == '\r' {
						lexer.step()
						if lexer.codePoint == '\n' {
							lexer.step()
						}
						continue
					}

				case '\r', '\n':
					lexer.addError(logger.Loc{Start: int32(lexer.end)}, "Unterminated string literal")
					panic(LexerPanic{})

				case -1: // This indicates the end of the file
					lexer.addError(logger.Loc{Start: int32(lexer.end)}, "Unterminated string literal")
					panic(LexerPanic{})

				case quote:
					lexer.step()
					break stringLiteral
				}
			}

			text := lexer.source.Contents[lexer.start+1 : lexer.end-1]
			if hasEscape {
				lexer.StringLiteral = lexer.decodeEscapeSequences(lexer.start+1, text)
			} else {
				lexer.StringLiteral = StringToUTF16(text)
			}
			lexer.Token = TStringLiteral

		case '`':
			lexer.step()

			token := TNoSubstitutionTemplateLiteral
			if lexer.rescanCloseBraceAsTemplateToken {
				token = TTemplateTail
			}

		templateLiteral:
			for {
				switch lexer.codePoint {
				case '$':
					lexer.step()
					if lexer.codePoint == '{' {
						lexer.step()
						if lexer.rescanCloseBraceAsTemplateToken {
							token = TTemplateMiddle
						} else {
							token = TTemplateHead
						}
						break templateLiteral
					}

				case '\\':
					lexer.step()
					lexer.step()

				case '`':
					lexer.step()
					break templateLiteral

				case -1: // This indicates the end of the file
					lexer.addError(logger.Loc{Start: int32(lexer.end)}, "Unterminated template literal")
					panic(LexerPanic{})

				default:
					lexer.step()
				}
			}

			lexer.Token = token

		case '.':
			lexer.parseNumericLiteralOrDot()

		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			lexer.parseNumericLiteralOrDot()

		default:
			if IsIdentifierStart(lexer.codePoint) {
				lexer.step()
				for IsIdentifierContinue(lexer.codePoint) {
					lexer.step()
				}
				if lexer.codePoint == '\\' {
					lexer.Identifier, lexer.Token = lexer.scanIdentifierWithEscapes()
				} else {
					contents := lexer.Raw()
					lexer.Identifier = contents
					if token, ok := Keywords[contents]; ok {
						lexer.Token = token
					} else {
						lexer.Token = TIdentifier
					}
				}
				break
			}

			if lexer.codePoint == '\\' {
				lexer.Identifier, lexer.Token = lexer.scanIdentifierWithEscapes()
				break
			}

			lexer.end = lexer.current
			lexer.Token = TSyntaxError
			lexer.SyntaxError()
		}

		return
	}
}

// An identifier that contains "\uXXXX" or "\u{XXXX}" escapes. Keywords
// written with escapes are valid identifier references but not keywords.
func (lexer *Lexer) scanIdentifierWithEscapes() (string, T) {
	// First pass: scan over the identifier to see how long it is
	for {
		if lexer.codePoint == '\\' {
			lexer.step()
			if lexer.codePoint != 'u' {
				lexer.SyntaxError()
			}
			lexer.step()
			if lexer.codePoint == '{' {
				lexer.step()
				for lexer.codePoint != '}' {
					if lexer.codePoint == -1 {
						lexer.SyntaxError()
					}
					lexer.step()
				}
				lexer.step()
			} else {
				for i := 0; i < 4; i++ {
					if !isHexDigit(lexer.codePoint) {
						lexer.SyntaxError()
					}
					lexer.step()
				}
			}
			continue
		}
		if !IsIdentifierContinue(lexer.codePoint) {
			break
		}
		lexer.step()
	}

	// Second pass: re-use the string literal escape decoder
	text := UTF16ToString(lexer.decodeEscapeSequences(lexer.start, lexer.Raw()))
	if !IsIdentifier(text) {
		lexer.addRangeError(lexer.Range(), fmt.Sprintf("Invalid identifier: %q", lexer.Raw()))
		panic(LexerPanic{})
	}

	// Escaped keywords are identifier references, never keywords
	if _, ok := Keywords[text]; ok {
		return text, TEscapedKeyword
	}
	return text, TIdentifier
}

func isHexDigit(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func (lexer *Lexer) parseNumericLiteralOrDot() {
	// Number or dot
	first := lexer.codePoint
	lexer.step()

	// Dot without a digit after it
	if first == '.' && (lexer.codePoint < '0' || lexer.codePoint > '9') {
		// "..."
		if lexer.codePoint == '.' &&
			lexer.current < len(lexer.source.Contents) &&
			lexer.source.Contents[lexer.current] == '.' {
			lexer.step()
			lexer.step()
			lexer.Token = TDotDotDot
			return
		}

		// "."
		lexer.Token = TDot
		return
	}

	isInvalidLegacyOctalLiteral := false
	base := float64(0)

	// Assume this is a number, but potentially change to a bigint later
	lexer.Token = TNumericLiteral

	// Check for binary, octal, or hexadecimal literal
	if first == '0' {
		switch lexer.codePoint {
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		case 'x', 'X':
			base = 16
		case '0', '1', '2', '3', '4', '5', '6', '7', '_':
			isInvalidLegacyOctalLiteral = true
		}
	}

	if base != 0 {
		// Integer literal with a base prefix
		lexer.step()
		digits := 0
		for {
			c := lexer.codePoint
			isDigit := false
			switch base {
			case 2:
				isDigit = c == '0' || c == '1'
			case 8:
				isDigit = c >= '0' && c <= '7'
			case 16:
				isDigit = isHexDigit(c)
			}
			if c == '_' {
				lexer.step()
				continue
			}
			if !isDigit {
				break
			}
			digits++
			lexer.step()
		}
		if digits == 0 {
			lexer.SyntaxError()
		}

		if lexer.codePoint == 'n' {
			lexer.step()
			lexer.Identifier = lexer.Raw()[: len(lexer.Raw())-1]
			lexer.Token = TBigIntegerLiteral
		} else {
			raw := strings.ReplaceAll(lexer.Raw()[2:], "_", "")
			value, err := strconv.ParseUint(raw, int(base), 64)
			if err != nil {
				// Out-of-range values still parse; precision is lost
				big, _ := strconv.ParseFloat(raw, 64)
				lexer.Number = big
			} else {
				lexer.Number = float64(value)
			}
		}
	} else {
		// Decimal literal (possibly a legacy octal literal)
		for lexer.codePoint >= '0' && lexer.codePoint <= '9' || lexer.codePoint == '_' {
			lexer.step()
		}

		hasDotOrExponent := false
		if lexer.codePoint == '.' {
			hasDotOrExponent = true
			lexer.step()
			for lexer.codePoint >= '0' && lexer.codePoint <= '9' || lexer.codePoint == '_' {
				lexer.step()
			}
		}

		if lexer.codePoint == 'e' || lexer.codePoint == 'E' {
			hasDotOrExponent = true
			lexer.step()
			if lexer.codePoint == '+' || lexer.codePoint == '-' {
				lexer.step()
			}
			if lexer.codePoint < '0' || lexer.codePoint > '9' {
				lexer.SyntaxError()
			}
			for lexer.codePoint >= '0' && lexer.codePoint <= '9' {
				lexer.step()
			}
		}

		if lexer.codePoint == 'n' && !hasDotOrExponent && !isInvalidLegacyOctalLiteral {
			lexer.step()
			lexer.Identifier = lexer.Raw()[: len(lexer.Raw())-1]
			lexer.Token = TBigIntegerLiteral
		} else if isInvalidLegacyOctalLiteral && !hasDotOrExponent {
			// "0123" is a legacy octal literal
			raw := strings.ReplaceAll(lexer.Raw(), "_", "")
			value, err := strconv.ParseUint(raw, 8, 64)
			if err != nil {
				lexer.SyntaxError()
			}
			lexer.Number = float64(value)
		} else {
			raw := strings.ReplaceAll(lexer.Raw(), "_", "")
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				lexer.SyntaxError()
			}
			lexer.Number = value
		}
	}

	// An identifier right after a number is not allowed
	if IsIdentifierStart(lexer.codePoint) {
		lexer.SyntaxError()
	}
}

// ScanRegExp rescans the current "/" or "/=" token as a regular expression
// literal. The parser calls this when a regex is legal in the current
// position.
func (lexer *Lexer) ScanRegExp() {
	inClass := false
	for {
		switch lexer.codePoint {
		case '/':
			if !inClass {
				lexer.step()
				// Scan flags
				for IsIdentifierContinue(lexer.codePoint) {
					switch lexer.codePoint {
					case 'd', 'g', 'i', 'm', 's', 'u', 'v', 'y':
						lexer.step()
					default:
						lexer.SyntaxError()
					}
				}
				return
			}
			lexer.step()

		case '[':
			inClass = true
			lexer.step()

		case ']':
			inClass = false
			lexer.step()

		case '\\':
			lexer.step()
			if lexer.codePoint == -1 || lexer.codePoint == '\r' || lexer.codePoint == '\n' {
				lexer.addError(logger.Loc{Start: int32(lexer.end)}, "Unterminated regular expression")
				panic(LexerPanic{})
			}
			lexer.step()

		case '\r', '\n', '\u2028', '\u2029', -1:
			lexer.addError(logger.Loc{Start: int32(lexer.end)}, "Unterminated regular expression")
			panic(LexerPanic{})

		default:
			lexer.step()
		}
	}
}

func (lexer *Lexer) decodeEscapeSequences(start int, text string) []uint16 {
	decoded := []uint16{}
	i := 0

	for i < len(text) {
		c, width := utf8.DecodeRuneInString(text[i:])
		i += width

		if c != '\\' {
			if c <= 0xFFFF {
				decoded = append(decoded, uint16(c))
			} else {
				c -= 0x10000
				decoded = append(decoded,
					uint16(0xD800+((c>>10)&0x3FF)),
					uint16(0xDC00+(c&0x3FF)))
			}
			continue
		}

		c2, width2 := utf8.DecodeRuneInString(text[i:])
		i += width2

		switch c2 {
		case 'b':
			decoded = append(decoded, '\b')
		case 'f':
			decoded = append(decoded, '\f')
		case 'n':
			decoded = append(decoded, '\n')
		case 'r':
			decoded = append(decoded, '\r')
		case 't':
			decoded = append(decoded, '\t')
		case 'v':
			decoded = append(decoded, '\v')

		case '0', '1', '2', '3', '4', '5', '6', '7':
			// Legacy octal escape (up to three digits)
			value := c2 - '0'
			for digits := 1; digits < 3 && i < len(text); digits++ {
				c3 := text[i]
				if c3 < '0' || c3 > '7' {
					break
				}
				next := value*8 + rune(c3-'0')
				if next > 255 {
					break
				}
				value = next
				i++
			}
			decoded = append(decoded, uint16(value))

		case 'x':
			// "\x00"
			value := rune(0)
			for digits := 0; digits < 2; digits++ {
				if i >= len(text) || !isHexDigit(rune(text[i])) {
					lexer.addError(logger.Loc{Start: int32(start + i)}, "Invalid hexadecimal escape")
					panic(LexerPanic{})
				}
				value = value*16 + hexValue(rune(text[i]))
				i++
			}
			decoded = append(decoded, uint16(value))

		case 'u':
			// "\u0000" or "\u{10000}"
			value := rune(0)
			if i < len(text) && text[i] == '{' {
				i++
				digits := 0
				for i < len(text) && text[i] != '}' {
					if !isHexDigit(rune(text[i])) {
						lexer.addError(logger.Loc{Start: int32(start + i)}, "Invalid Unicode escape")
						panic(LexerPanic{})
					}
					value = value*16 + hexValue(rune(text[i]))
					if value > 0x10FFFF {
						lexer.addError(logger.Loc{Start: int32(start + i)}, "Unicode escape is out of range")
						panic(LexerPanic{})
					}
					digits++
					i++
				}
				if digits == 0 || i >= len(text) {
					lexer.addError(logger.Loc{Start: int32(start + i)}, "Invalid Unicode escape")
					panic(LexerPanic{})
				}
				i++ // '}'
			} else {
				for digits := 0; digits < 4; digits++ {
					if i >= len(text) || !isHexDigit(rune(text[i])) {
						lexer.addError(logger.Loc{Start: int32(start + i)}, "Invalid Unicode escape")
						panic(LexerPanic{})
					}
					value = value*16 + hexValue(rune(text[i]))
					i++
				}
			}
			if value <= 0xFFFF {
				decoded = append(decoded, uint16(value))
			} else {
				value -= 0x10000
				decoded = append(decoded,
					uint16(0xD800+((value>>10)&0x3FF)),
					uint16(0xDC00+(value&0x3FF)))
			}

		case '\r':
			// Line continuation; skip a following "\n" from CRLF
			if i < len(text) && text[i] == '\n' {
				i++
			}

		case '\n', '\u2028', '\u2029':
			// Line continuation

		default:
			if c2 <= 0xFFFF {
				decoded = append(decoded, uint16(c2))
			} else {
				c2 -= 0x10000
				decoded = append(decoded,
					uint16(0xD800+((c2>>10)&0x3FF)),
					uint16(0xDC00+(c2&0x3FF)))
			}
		}
	}

	return decoded
}

func hexValue(c rune) rune {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func (lexer *Lexer) RescanCloseBraceAsTemplateToken() {
	if lexer.Token != TCloseBrace {
		lexer.Expected(TCloseBrace)
	}

	lexer.rescanCloseBraceAsTemplateToken = true
	lexer.codePoint = '`'
	lexer.current = lexer.end
	lexer.end -= 1
	lexer.Next()
	lexer.rescanCloseBraceAsTemplateToken = false
}

func (lexer *Lexer) step() {
	codePoint, width := utf8.DecodeRuneInString(lexer.source.Contents[lexer.current:])

	// Use -1 to indicate the end of the file
	if width == 0 {
		codePoint = -1
	}

	lexer.codePoint = codePoint
	lexer.end = lexer.current
	lexer.current += width
}

func (lexer *Lexer) addError(loc logger.Loc, text string) {
	if !lexer.IsLogDisabled {
		lexer.log.AddError(&lexer.source, loc, text)
	}
}

func (lexer *Lexer) addRangeError(r logger.Range, text string) {
	if !lexer.IsLogDisabled {
		lexer.log.AddRangeError(&lexer.source, r, text)
	}
}

func (lexer *Lexer) scanCommentText() {
	comment := js_ast.Comment{
		Loc:  logger.Loc{Start: int32(lexer.start)},
		End:  logger.Loc{Start: int32(lexer.end)},
		Text: lexer.source.Contents[lexer.start:lexer.end],
	}
	lexer.CommentsBefore = append(lexer.CommentsBefore, comment)
	lexer.AllComments = append(lexer.AllComments, comment)
}
