package js_lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsmend/jsmend/internal/logger"
)

func lex(t *testing.T, contents string) *Lexer {
	t.Helper()
	log := logger.NewDeferLog()
	source := logger.Source{PrettyPath: "<test>", Contents: contents}
	lexer := NewLexer(log, source)
	return &lexer
}

func tokens(t *testing.T, contents string) []T {
	t.Helper()
	lexer := lex(t, contents)
	out := []T{}
	for lexer.Token != TEndOfFile {
		out = append(out, lexer.Token)
		lexer.Next()
	}
	return out
}

func TestTokens(t *testing.T) {
	require.Equal(t, []T{TIdentifier, TIdentifier, TEquals, TNumericLiteral, TSemicolon},
		tokens(t, "let x = 1;"))
	require.Equal(t, []T{TIdentifier, TQuestionDot, TIdentifier},
		tokens(t, "a?.b"))
	require.Equal(t, []T{TIdentifier, TQuestionQuestionEquals, TIdentifier},
		tokens(t, "a ??= b"))
	require.Equal(t, []T{TIdentifier, TAsteriskAsterisk, TIdentifier},
		tokens(t, "a ** b"))
	require.Equal(t, []T{TDotDotDot, TIdentifier},
		tokens(t, "...rest"))
}

func TestIdentifierValues(t *testing.T) {
	lexer := lex(t, "liveSocket")
	require.Equal(t, TIdentifier, lexer.Token)
	require.Equal(t, "liveSocket", lexer.Identifier)
}

func TestNumericLiterals(t *testing.T) {
	for _, it := range []struct {
		source string
		value  float64
	}{
		{"123", 123},
		{"1.5", 1.5},
		{"0x10", 16},
		{"0o17", 15},
		{"0b101", 5},
		{"1e3", 1000},
		{"1_000", 1000},
	} {
		lexer := lex(t, it.source)
		require.Equal(t, TNumericLiteral, lexer.Token, it.source)
		require.Equal(t, it.value, lexer.Number, it.source)
	}
}

func TestStringLiterals(t *testing.T) {
	lexer := lex(t, `"a\nb"`)
	require.Equal(t, TStringLiteral, lexer.Token)
	require.Equal(t, "a\nb", UTF16ToString(lexer.StringLiteral))

	lexer = lex(t, "'it\\'s'")
	require.Equal(t, "it's", UTF16ToString(lexer.StringLiteral))
}

func TestCommentsAreCollected(t *testing.T) {
	lexer := lex(t, "// one\n/* two */ let x")
	require.Equal(t, TIdentifier, lexer.Token)
	require.Equal(t, "let", lexer.Identifier)
	require.Len(t, lexer.CommentsBefore, 2)
	require.Equal(t, "// one", lexer.CommentsBefore[0].Text)
	require.Equal(t, "/* two */", lexer.CommentsBefore[1].Text)
}

func TestHashbang(t *testing.T) {
	lexer := lex(t, "#!/usr/bin/env node\nrun()")
	require.Equal(t, THashbang, lexer.Token)
	require.Equal(t, "#!/usr/bin/env node", lexer.Identifier)
}

func TestIsIdentifier(t *testing.T) {
	require.True(t, IsIdentifier("liveSocket"))
	require.True(t, IsIdentifier("_private"))
	require.True(t, IsIdentifier("$el"))
	require.False(t, IsIdentifier(""))
	require.False(t, IsIdentifier("1abc"))
	require.False(t, IsIdentifier("a-b"))
}

func TestUTF16Helpers(t *testing.T) {
	text := StringToUTF16("héllo 𝟘")
	require.Equal(t, "héllo 𝟘", UTF16ToString(text))
	require.True(t, UTF16EqualsString(text, "héllo 𝟘"))
	require.False(t, UTF16EqualsString(text, "hello"))
}
