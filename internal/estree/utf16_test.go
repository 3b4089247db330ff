package estree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffsetConverterASCII(t *testing.T) {
	c := newOffsetConverter("hello world")
	for i := int32(0); i <= 11; i++ {
		require.Equal(t, i, c.Convert(i))
	}
}

func TestOffsetConverterTwoByteRunes(t *testing.T) {
	// "héllo": h(1) é(2) l(1) l(1) o(1)
	c := newOffsetConverter("héllo")
	require.EqualValues(t, 0, c.Convert(0))
	require.EqualValues(t, 1, c.Convert(1))
	require.EqualValues(t, 2, c.Convert(3))
	require.EqualValues(t, 5, c.Convert(6))
}

func TestOffsetConverterSurrogatePairs(t *testing.T) {
	// "𝟘x": the digit is four UTF-8 bytes and two UTF-16 units
	c := newOffsetConverter("𝟘x")
	require.EqualValues(t, 0, c.Convert(0))
	require.EqualValues(t, 2, c.Convert(4))
	require.EqualValues(t, 3, c.Convert(5))
}

func TestOffsetConverterMixed(t *testing.T) {
	// "a€b𝄞c": a(1,1) €(3,1) b(1,1) 𝄞(4,2) c(1,1)
	c := newOffsetConverter("a€b𝄞c")
	require.EqualValues(t, 1, c.Convert(1))
	require.EqualValues(t, 2, c.Convert(4))
	require.EqualValues(t, 3, c.Convert(5))
	require.EqualValues(t, 5, c.Convert(9))
	require.EqualValues(t, 6, c.Convert(10))
}
