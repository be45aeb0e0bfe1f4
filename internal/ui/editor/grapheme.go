// Package editor provides an embeddable source-code editing component
// with syntax highlighting, soft tabs, smart indentation, and delimiter
// auto-completion.
//
// Text is measured in three units:
//
//  1. Bytes: Go string storage. A grapheme can span many bytes.
//  2. Graphemes: what the user perceives as one character. Cursor
//     columns and selection offsets are grapheme indices.
//  3. Display columns: terminal cells. ASCII is 1 cell, emoji and CJK
//     are 2. Wrapping and widths use this unit.
//
// The helpers in this file translate between the three.
package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in a string.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// GraphemeAt returns the grapheme cluster at the given grapheme index,
// or "" when the index is out of bounds.
func GraphemeAt(s string, graphemeIdx int) string {
	if graphemeIdx < 0 {
		return ""
	}

	idx := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if idx == graphemeIdx {
			return cluster
		}
		idx++
		s = rest
		state = newState
	}
	return ""
}

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Indices past the end clamp to len(s); negative indices clamp to 0.
func GraphemeToByteOffset(s string, graphemeIdx int) int {
	if graphemeIdx <= 0 {
		return 0
	}

	idx := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		idx++
		if idx == graphemeIdx {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// ByteToGraphemeOffset converts a byte offset to a grapheme index. An
// offset falling inside a cluster maps to that cluster's index.
func ByteToGraphemeOffset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return GraphemeCount(s)
	}

	idx := 0
	currentPos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		nextPos := currentPos + len(cluster)
		if byteOffset < nextPos {
			return idx
		}
		idx++
		currentPos = nextPos
		s = rest
		state = newState
	}
	return idx
}

// SliceByGraphemes returns s[start:end] in grapheme indices.
// Returns "" for inverted or out-of-range slices.
func SliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}

	startByte := GraphemeToByteOffset(s, start)
	endByte := GraphemeToByteOffset(s, end)

	if startByte >= len(s) {
		return ""
	}
	if endByte > len(s) {
		endByte = len(s)
	}

	return s[startByte:endByte]
}

// GraphemeDisplayWidth returns the terminal-cell width of one cluster.
func GraphemeDisplayWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	return runewidth.StringWidth(cluster)
}

// StringDisplayWidth returns the terminal-cell width of a string.
func StringDisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// GraphemeIterator walks grapheme clusters front to back, tracking the
// byte position and grapheme index of the current cluster.
type GraphemeIterator struct {
	original string
	rest     string
	state    int
	cluster  string
	bytePos  int
	index    int
	started  bool
}

// NewGraphemeIterator creates an iterator over the clusters in s.
func NewGraphemeIterator(s string) *GraphemeIterator {
	return &GraphemeIterator{
		original: s,
		rest:     s,
		state:    -1,
		index:    -1,
	}
}

// Next advances to the next grapheme cluster.
// Returns false when the string is exhausted.
func (g *GraphemeIterator) Next() bool {
	if len(g.rest) == 0 {
		return false
	}

	if g.started {
		g.bytePos = len(g.original) - len(g.rest)
		g.index++
	} else {
		g.bytePos = 0
		g.index = 0
		g.started = true
	}

	cluster, rest, _, newState := uniseg.StepString(g.rest, g.state)
	g.cluster = cluster
	g.rest = rest
	g.state = newState

	return true
}

// Cluster returns the current grapheme cluster.
func (g *GraphemeIterator) Cluster() string {
	return g.cluster
}

// BytePos returns the byte offset of the current cluster.
func (g *GraphemeIterator) BytePos() int {
	return g.bytePos
}

// Index returns the grapheme index of the current cluster.
func (g *GraphemeIterator) Index() int {
	return g.index
}

// InsertAtGrapheme inserts text at the given grapheme index.
func InsertAtGrapheme(s string, graphemeIdx int, insert string) string {
	byteOffset := GraphemeToByteOffset(s, graphemeIdx)
	return s[:byteOffset] + insert + s[byteOffset:]
}

// DeleteGraphemeRange removes clusters from start to end (exclusive).
func DeleteGraphemeRange(s string, start, end int) string {
	startByte := GraphemeToByteOffset(s, start)
	endByte := GraphemeToByteOffset(s, end)
	return s[:startByte] + s[endByte:]
}

// TruncateToDisplayWidth cuts a string to fit within maxWidth terminal
// cells without splitting grapheme clusters.
func TruncateToDisplayWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	var result strings.Builder
	currentWidth := 0

	iter := NewGraphemeIterator(s)
	for iter.Next() {
		clusterWidth := GraphemeDisplayWidth(iter.Cluster())
		if currentWidth+clusterWidth > maxWidth {
			break
		}
		result.WriteString(iter.Cluster())
		currentWidth += clusterWidth
	}

	return result.String()
}

// leadingWhitespace returns the run of spaces and tabs at the start of
// a line. Used by smart indentation to carry indent onto new lines.
func leadingWhitespace(line string) string {
	for i, r := range line {
		if !isWhitespace(r) {
			return line[:i]
		}
	}
	return line
}
