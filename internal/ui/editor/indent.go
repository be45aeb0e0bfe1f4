package editor

import "strings"

// IndentStyle controls what the Tab key inserts: a literal tab
// (the default) or a soft tab of N spaces.
type IndentStyle struct {
	soft  bool
	width int
}

// IndentTab returns the default style: Tab inserts "\t".
func IndentTab() IndentStyle {
	return IndentStyle{}
}

// IndentSpaces returns a soft-tab style inserting width spaces per
// Tab press. Non-positive widths fall back to 4.
func IndentSpaces(width int) IndentStyle {
	if width <= 0 {
		width = 4
	}
	return IndentStyle{soft: true, width: width}
}

// IsSoft reports whether Tab inserts spaces instead of a tab rune.
func (s IndentStyle) IsSoft() bool {
	return s.soft
}

// Width returns the space count for soft tabs, 0 for the tab style.
func (s IndentStyle) Width() int {
	if !s.soft {
		return 0
	}
	return s.width
}

// Text returns the string a single Tab press inserts.
func (s IndentStyle) Text() string {
	if s.soft {
		return strings.Repeat(" ", s.width)
	}
	return "\t"
}

// DefaultAutoPairs maps opening delimiters to the closing text inserted
// after the cursor when the opener is typed. Typing a closing delimiter
// that already sits under the cursor steps over it instead of doubling.
func DefaultAutoPairs() map[string]string {
	return map[string]string{
		"(":  ")",
		"[":  "]",
		"{":  "}",
		"\"": "\"",
		"'":  "'",
	}
}
