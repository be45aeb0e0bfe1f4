package syntax

import (
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// ThemeName identifies a highlighting theme by its chroma style name.
// Unknown names are rejected at application time rather than silently
// falling back, so a typo never half-applies.
type ThemeName string

// DefaultTheme is used when no theme is configured.
const DefaultTheme ThemeName = "monokai"

// DefaultFontSize is the point size assigned to a freshly created store.
const DefaultFontSize = 13.0

// String returns the raw style name.
func (t ThemeName) String() string {
	return string(t)
}

// Known reports whether a chroma style is registered under this name.
// styles.Get returns a fallback for unknown names, so membership has to
// be checked against the registry directly.
func (t ThemeName) Known() bool {
	_, ok := styles.Registry[string(t)]
	return ok
}

// AvailableThemes returns the sorted names of all registered themes.
func AvailableThemes() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

// Font is the code font a theme produces: a style trio plus a point
// size. The trio shares one base derived from the theme's text color so
// regular, bold, and italic runs stay visually consistent. Hosts that
// cannot change glyph size (terminals) still carry Size so it survives
// theme swaps and round-trips through bindings.
type Font struct {
	Size    float64
	Regular lipgloss.Style
	Bold    lipgloss.Style
	Italic  lipgloss.Style
}

// fontForTheme derives the font trio from a chroma style at the given
// size. The base foreground comes from the theme's plain-text entry.
func fontForTheme(style *chroma.Style, size float64) Font {
	base := lipgloss.NewStyle()
	if style != nil {
		entry := style.Get(chroma.Text)
		if entry.Colour.IsSet() {
			base = base.Foreground(lipgloss.Color(entry.Colour.String()))
		}
	}
	return Font{
		Size:    size,
		Regular: base,
		Bold:    base.Bold(true),
		Italic:  base.Italic(true),
	}
}

// tokenStyle converts a chroma style entry for a token type into a
// lipgloss style suitable for terminal rendering. Only the attributes
// that survive ANSI output are carried over.
func tokenStyle(style *chroma.Style, typ chroma.TokenType) lipgloss.Style {
	st := lipgloss.NewStyle()
	if style == nil {
		return st
	}
	entry := style.Get(typ)
	if entry.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}
