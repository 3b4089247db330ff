package estree

import (
	"sort"
	"unicode/utf8"
)

// The tree carries UTF-8 byte offsets but downstream JavaScript consumers
// index strings by UTF-16 code units, so every span in the dump goes through
// this converter. The table records one checkpoint after each non-ASCII
// rune; between checkpoints the two offset spaces advance in lockstep, so an
// all-ASCII source has a single sentinel entry and converts for free.
type offsetConverter struct {
	utf8  []int32
	utf16 []int32
}

func newOffsetConverter(contents string) *offsetConverter {
	c := &offsetConverter{utf8: []int32{0}, utf16: []int32{0}}

	utf8Off := int32(0)
	utf16Off := int32(0)
	for _, r := range contents {
		if r < 0x80 {
			utf8Off++
			utf16Off++
			continue
		}
		utf8Off += int32(utf8.RuneLen(r))
		if r <= 0xFFFF {
			utf16Off++
		} else {
			utf16Off += 2
		}
		c.utf8 = append(c.utf8, utf8Off)
		c.utf16 = append(c.utf16, utf16Off)
	}

	return c
}

func (c *offsetConverter) Convert(utf8Offset int32) int32 {
	i := sort.Search(len(c.utf8), func(i int) bool { return c.utf8[i] > utf8Offset }) - 1
	return c.utf16[i] + (utf8Offset - c.utf8[i])
}
