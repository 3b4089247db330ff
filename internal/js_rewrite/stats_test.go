package js_rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectStatistics(t *testing.T) {
	tree := parseTree(t, `import { Socket } from "phoenix"
import "./app.css"

function top() {
  try {
    risky()
  } catch (e) {
    throw new Error("wrapped")
  }
}

const helper = function() {
  debugger
}

const arrow = () => 1

class Widget {
  render() {
    return html
  }
}
`)
	stats := CollectStatistics(&tree)

	// top, the helper function expression, and the render method; the
	// arrow is not a function statistic
	require.Equal(t, 3, stats.Functions)
	require.Equal(t, 1, stats.Classes)
	require.Equal(t, 1, stats.Debuggers)
	require.Equal(t, 2, stats.Imports)
	require.Equal(t, 1, stats.Trys)
	require.Equal(t, 1, stats.Throws)
}

func TestCollectStatisticsNestedExpressions(t *testing.T) {
	tree := parseTree(t, `const o = { handle: function() {
  return class Inner {};
} }
`)
	stats := CollectStatistics(&tree)
	require.Equal(t, 1, stats.Functions)
	require.Equal(t, 1, stats.Classes)
}

func TestCollectStatisticsEmpty(t *testing.T) {
	tree := parseTree(t, "")
	stats := CollectStatistics(&tree)
	require.Zero(t, stats.Functions)
	require.Zero(t, stats.Classes)
	require.Zero(t, stats.Imports)
}

func TestStatisticsAdd(t *testing.T) {
	a := Statistics{Functions: 1, Imports: 2}
	b := Statistics{Functions: 3, Throws: 1}
	a.Add(b)
	require.Equal(t, Statistics{Functions: 4, Imports: 2, Throws: 1}, a)
}
