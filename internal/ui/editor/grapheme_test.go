package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGraphemeCount(t *testing.T) {
	require.Equal(t, 0, GraphemeCount(""))
	require.Equal(t, 5, GraphemeCount("hello"))
	require.Equal(t, 1, GraphemeCount("👍"))
	require.Equal(t, 1, GraphemeCount("👨‍👩‍👧‍👦")) // family emoji is one cluster
	require.Equal(t, 4, GraphemeCount("日本語x"))
}

func TestGraphemeAt(t *testing.T) {
	require.Equal(t, "h", GraphemeAt("hello", 0))
	require.Equal(t, "o", GraphemeAt("hello", 4))
	require.Equal(t, "", GraphemeAt("hello", 5))
	require.Equal(t, "👍", GraphemeAt("a👍b", 1))
}

func TestSliceByGraphemes(t *testing.T) {
	require.Equal(t, "ell", SliceByGraphemes("hello", 1, 4))
	require.Equal(t, "", SliceByGraphemes("hello", 3, 3))
	require.Equal(t, "👍b", SliceByGraphemes("a👍b", 1, 3))
}

func TestInsertAtGrapheme(t *testing.T) {
	require.Equal(t, "heXllo", InsertAtGrapheme("hello", 2, "X"))
	require.Equal(t, "Xhello", InsertAtGrapheme("hello", 0, "X"))
	require.Equal(t, "helloX", InsertAtGrapheme("hello", 5, "X"))
	require.Equal(t, "a👍X b", InsertAtGrapheme("a👍 b", 2, "X"))
}

func TestDeleteGraphemeRange(t *testing.T) {
	require.Equal(t, "ho", DeleteGraphemeRange("hello", 1, 4))
	require.Equal(t, "ab", DeleteGraphemeRange("a👍b", 1, 2))
}

func TestLeadingWhitespace(t *testing.T) {
	require.Equal(t, "    ", leadingWhitespace("    code"))
	require.Equal(t, "\t\t", leadingWhitespace("\t\tcode"))
	require.Equal(t, "", leadingWhitespace("code"))
	require.Equal(t, "   ", leadingWhitespace("   "))
}

// Property: byte/grapheme offset conversions round-trip at every cluster
// boundary.
func TestOffsetConversion_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		count := GraphemeCount(s)

		for g := 0; g <= count; g++ {
			b := GraphemeToByteOffset(s, g)
			require.Equal(t, g, ByteToGraphemeOffset(s, b))
		}
	})
}

// Property: slicing [0,k) + [k,n) reassembles the original string.
func TestSliceByGraphemes_Partition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		count := GraphemeCount(s)
		k := rapid.IntRange(0, count).Draw(t, "k")

		head := SliceByGraphemes(s, 0, k)
		tail := SliceByGraphemes(s, k, count)
		require.Equal(t, s, head+tail)
	})
}

func TestGraphemeIterator_Walk(t *testing.T) {
	iter := NewGraphemeIterator("a👍b")

	require.True(t, iter.Next())
	require.Equal(t, "a", iter.Cluster())
	require.Equal(t, 0, iter.Index())
	require.Equal(t, 0, iter.BytePos())

	require.True(t, iter.Next())
	require.Equal(t, "👍", iter.Cluster())
	require.Equal(t, 1, iter.Index())
	require.Equal(t, 1, iter.BytePos())

	require.True(t, iter.Next())
	require.Equal(t, "b", iter.Cluster())
	require.Equal(t, 2, iter.Index())
	require.Equal(t, 5, iter.BytePos())

	require.False(t, iter.Next())
}
