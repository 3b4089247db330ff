package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJS(t *testing.T) {
	out, err := JS("let   x=1;const y  =  {a:1,  b}\n")
	require.NoError(t, err)
	require.Equal(t, "let x = 1;\nconst y = { a: 1, b };\n", out)
}

func TestJSKeepsComments(t *testing.T) {
	out, err := JS("// keep me\nf( 1,2 )\n")
	require.NoError(t, err)
	require.Equal(t, "// keep me\nf(1, 2);\n", out)
}

func TestJSKeepsPropertyComments(t *testing.T) {
	out, err := JS(`new LiveSocket("/live", Socket, {
  // fall back to long polling after 2.5s
  longPollFallbackMs: 2500,
  params: {_csrf_token: csrfToken}
})
`)
	require.NoError(t, err)
	require.Equal(t, `new LiveSocket("/live", Socket, {
  // fall back to long polling after 2.5s
  longPollFallbackMs: 2500,
  params: { _csrf_token: csrfToken }
});
`, out)
}

func TestJSIdempotent(t *testing.T) {
	once, err := JS(`import { Socket } from "phoenix"
let liveSocket = new LiveSocket("/live", Socket, { hooks: { A } })
liveSocket.connect()
`)
	require.NoError(t, err)
	twice, err := JS(once)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestJSSyntaxError(t *testing.T) {
	_, err := JS("let x = ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing javascript")
}

func TestJSFormatted(t *testing.T) {
	ok, err := JSFormatted("let x = 1;\n")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = JSFormatted("let   x=1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCSS(t *testing.T) {
	out, err := CSS(".a{color:red}")
	require.NoError(t, err)
	require.Contains(t, out, "color: red;")
}

func TestCSSFormatted(t *testing.T) {
	formatted, err := CSS(".a{color:red}")
	require.NoError(t, err)

	ok, err := CSSFormatted(formatted)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = CSSFormatted(".a{color:red}")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCSSError(t *testing.T) {
	_, err := CSS(".a{color:red")
	require.Error(t, err)
}
