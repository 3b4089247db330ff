package js_rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const bootstrap = `import { Socket } from "phoenix"
import { LiveSocket } from "phoenix_live_view"
let liveSocket = new LiveSocket("/live", Socket, { params: { _csrf_token: csrfToken } })
liveSocket.connect()
`

func TestFindLiveSocket(t *testing.T) {
	tree := parseTree(t, bootstrap)
	require.NoError(t, FindLiveSocket(&tree, LocatorOptions{}))
}

func TestFindLiveSocketNotFound(t *testing.T) {
	tree := parseTree(t, `let socket = new Socket("/socket")
`)
	err := FindLiveSocket(&tree, LocatorOptions{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindLiveSocketNoArguments(t *testing.T) {
	tree := parseTree(t, `let liveSocket = new LiveSocket()
`)
	err := FindLiveSocket(&tree, LocatorOptions{})
	require.ErrorIs(t, err, ErrMalformed)
}

func TestFindLiveSocketLastArgNotObject(t *testing.T) {
	tree := parseTree(t, `let liveSocket = new LiveSocket("/live", Socket, opts)
`)
	err := FindLiveSocket(&tree, LocatorOptions{})
	require.ErrorIs(t, err, ErrMalformed)
}

func TestFindLiveSocketWrongVariableName(t *testing.T) {
	tree := parseTree(t, `let NoneSocket = new LiveSocket("/live", Socket, {})
`)
	require.ErrorIs(t, FindLiveSocket(&tree, LocatorOptions{}), ErrNotFound)
}

func TestFindLiveSocketEmptyInput(t *testing.T) {
	tree := parseTree(t, "")
	require.ErrorIs(t, FindLiveSocket(&tree, LocatorOptions{}), ErrNotFound)
}

func TestFindLiveSocketCustomNames(t *testing.T) {
	tree := parseTree(t, `const socket = new MySocket("/live", { hooks: {} })
`)
	require.NoError(t, FindLiveSocket(&tree, LocatorOptions{
		Variable:    "socket",
		Constructor: "MySocket",
	}))
	require.ErrorIs(t, FindLiveSocket(&tree, LocatorOptions{}), ErrNotFound)
}

func TestFindLiveSocketFirstMatchWins(t *testing.T) {
	tree := parseTree(t, `var liveSocket = new LiveSocket("/a", Socket, {})
var liveSocket = new LiveSocket("/b", Socket, broken)
`)
	require.NoError(t, FindLiveSocket(&tree, LocatorOptions{}))
}

func TestFindLiveSocketSkipsExpressions(t *testing.T) {
	// The declarator lives inside an arrow body, which the locator never
	// descends into.
	tree := parseTree(t, `const init = () => {
  let liveSocket = new LiveSocket("/live", Socket, {})
}
`)
	require.ErrorIs(t, FindLiveSocket(&tree, LocatorOptions{}), ErrNotFound)
}

func TestExtendHooksCreatesProperty(t *testing.T) {
	tree := parseTree(t, bootstrap)
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, []string{"InfiniteScroll"}))

	require.Equal(t, `import { Socket } from "phoenix";
import { LiveSocket } from "phoenix_live_view";
let liveSocket = new LiveSocket("/live", Socket, { params: { _csrf_token: csrfToken }, hooks: { InfiniteScroll } });
liveSocket.connect();
`, printTree(tree))
}

func TestExtendHooksAppendsToObject(t *testing.T) {
	tree := parseTree(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { A } })
`)
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, []string{"B", "...extra"}))

	require.Equal(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { A, B, ...extra } });
`, printTree(tree))
}

func TestExtendHooksDeduplicates(t *testing.T) {
	tree := parseTree(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { A, ...extra } })
`)
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, []string{"A", "...extra", "B"}))

	require.Equal(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { A, ...extra, B } });
`, printTree(tree))
}

func TestExtendHooksIdentifierValueBecomesSpread(t *testing.T) {
	tree := parseTree(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: Hooks })
`)
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, []string{"B"}))

	require.Equal(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { ...Hooks, B } });
`, printTree(tree))
}

func TestExtendHooksStringKey(t *testing.T) {
	tree := parseTree(t, `let liveSocket = new LiveSocket("/live", Socket, { "hooks": { A } })
`)
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, []string{"B"}))

	require.Equal(t, `let liveSocket = new LiveSocket("/live", Socket, { "hooks": { A, B } });
`, printTree(tree))
}

func TestExtendHooksOpaqueValueLeftAlone(t *testing.T) {
	source := `let liveSocket = new LiveSocket("/live", Socket, { hooks: getHooks() });
`
	tree := parseTree(t, source)
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, []string{"B"}))
	require.Equal(t, source, printTree(tree))
}

func TestExtendHooksKeepsOtherOptions(t *testing.T) {
	tree := parseTree(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { ...Hooks, A }, params: {} })
`)
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, []string{"A", "B", "...Hooks"}))

	require.Equal(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { ...Hooks, A, B }, params: {} });
`, printTree(tree))
}

func TestExtendHooksKeepsOptionComments(t *testing.T) {
	tree := parseTree(t, `let liveSocket = new LiveSocket("/live", Socket, {
  // fall back to long polling after 2.5s
  longPollFallbackMs: 2500,
  params: { _csrf_token: csrfToken } // CSRF
})
`)
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, []string{"InfiniteScroll"}))

	require.Equal(t, `let liveSocket = new LiveSocket("/live", Socket, {
  // fall back to long polling after 2.5s
  longPollFallbackMs: 2500,
  params: { _csrf_token: csrfToken },
  hooks: { InfiniteScroll }
  // CSRF
});
`, printTree(tree))
}

func TestRemoveAfterExtendRestoresHooks(t *testing.T) {
	source := `let liveSocket = new LiveSocket("/live", Socket, { hooks: { A } });
`
	tree := parseTree(t, source)
	names := []string{"B", "...extra"}
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, names))
	require.NoError(t, RemoveHookMembers(&tree, LocatorOptions{}, names))
	require.Equal(t, source, printTree(tree))
}

func TestExtendHooksIdempotent(t *testing.T) {
	tree := parseTree(t, bootstrap)
	names := []string{"A", "...extra"}
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, names))
	once := printTree(tree)
	require.NoError(t, ExtendHooks(&tree, LocatorOptions{}, names))
	require.Equal(t, once, printTree(tree))
}

func TestExtendHooksNotFound(t *testing.T) {
	tree := parseTree(t, `let x = 1
`)
	require.ErrorIs(t, ExtendHooks(&tree, LocatorOptions{}, []string{"A"}), ErrNotFound)
}

func TestRemoveHookMembers(t *testing.T) {
	tree := parseTree(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { A, B, ...extra, c: d } })
`)
	require.NoError(t, RemoveHookMembers(&tree, LocatorOptions{}, []string{"A", "...extra"}))

	require.Equal(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { B, c: d } });
`, printTree(tree))
}

func TestRemoveHookMembersKeepsKeyValueProperties(t *testing.T) {
	// "c: d" is not a shorthand even though "c" is in the list
	tree := parseTree(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { c: d } })
`)
	require.NoError(t, RemoveHookMembers(&tree, LocatorOptions{}, []string{"c"}))

	require.Equal(t, `let liveSocket = new LiveSocket("/live", Socket, { hooks: { c: d } });
`, printTree(tree))
}

func TestRemoveHookMembersMissingHooksIsNoop(t *testing.T) {
	source := `let liveSocket = new LiveSocket("/live", Socket, { params: {} });
`
	tree := parseTree(t, source)
	require.NoError(t, RemoveHookMembers(&tree, LocatorOptions{}, []string{"A"}))
	require.Equal(t, source, printTree(tree))
}

func TestRemoveHookMembersIdentifierValueIsNoop(t *testing.T) {
	source := `let liveSocket = new LiveSocket("/live", Socket, { hooks: Hooks });
`
	tree := parseTree(t, source)
	require.NoError(t, RemoveHookMembers(&tree, LocatorOptions{}, []string{"Hooks"}))
	require.Equal(t, source, printTree(tree))
}
