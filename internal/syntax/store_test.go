package syntax

import (
	"testing"

	cache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
)

// newPlainStore builds a store with no style table, the state a store
// ends up in when no themes are registered with the engine.
func newPlainStore() *Store {
	return &Store{
		lines:  []string{""},
		tokens: cache.New(cacheTTL, cacheCleanup),
		font:   fontForTheme(nil, DefaultFontSize),
		lexer:  detectFromContent(""),
	}
}

// ============================================================================
// Construction
// ============================================================================

func TestNewStore_UsesRequestedTheme(t *testing.T) {
	s := NewStore("dracula", 16)

	require.True(t, s.Available())
	require.Equal(t, ThemeName("dracula"), s.Theme())
	require.Equal(t, 16.0, s.Font().Size)
}

func TestNewStore_UnknownThemeFallsBack(t *testing.T) {
	s := NewStore("no-such-theme", DefaultFontSize)

	require.True(t, s.Available())
	require.Equal(t, DefaultTheme, s.Theme())
}

// ============================================================================
// Text
// ============================================================================

func TestSetText_TracksLines(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)
	require.Equal(t, 1, s.LineCount())

	s.SetText("a\nb\nc")

	require.Equal(t, "a\nb\nc", s.Text())
	require.Equal(t, 3, s.LineCount())
}

func TestSetText_IdenticalIsNoOp(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)
	s.SetText("hello")

	before := s.gen
	s.SetText("hello")

	require.Equal(t, before, s.gen, "identical text must not invalidate tokens")
}

// ============================================================================
// Language
// ============================================================================

func TestSetLanguage_NilIsDistinctFromEmpty(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)

	// nil-to-nil stays a no-op.
	before := s.gen
	s.SetLanguage(nil)
	require.Equal(t, before, s.gen)
	require.Nil(t, s.Language())

	// The empty language is a real (if useless) identifier, not
	// detection mode.
	empty := Language("")
	s.SetLanguage(&empty)
	require.NotNil(t, s.Language())
	require.Equal(t, Language(""), *s.Language())
	require.Greater(t, s.gen, before)

	// Back to nil re-enables detection.
	s.SetLanguage(nil)
	require.Nil(t, s.Language())
}

func TestSetLanguage_UnchangedIsNoOp(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)

	lang := LangGo
	s.SetLanguage(&lang)
	before := s.gen

	same := LangGo
	s.SetLanguage(&same)

	require.Equal(t, before, s.gen)
}

func TestDetectLanguage_NormalizesToAlias(t *testing.T) {
	got := DetectLanguage("main.go")

	require.NotNil(t, got)
	// The alias form, not chroma's display name "Go", so the value
	// round-trips through lexer lookup.
	require.Equal(t, LangGo, *got)
	require.True(t, got.Known())
}

func TestDetectLanguage_UnknownExtensionIsNil(t *testing.T) {
	require.Nil(t, DetectLanguage("mystery.qqqq"))
}

// ============================================================================
// Theme and font
// ============================================================================

func TestSetThemeSize_UnknownRejectedWholesale(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)

	bad := ThemeName("no-such-theme")
	require.False(t, s.SetThemeSize(&bad, 20))

	require.Equal(t, DefaultTheme, s.Theme())
	require.Equal(t, DefaultFontSize, s.Font().Size, "size must not apply when the theme is rejected")
}

func TestSetThemeSize_NilNameResizesOnly(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)

	require.True(t, s.SetThemeSize(nil, 20))
	require.Equal(t, DefaultTheme, s.Theme())
	require.Equal(t, 20.0, s.Font().Size)

	// Same size again reports no change.
	require.False(t, s.SetThemeSize(nil, 20))
}

func TestSetTheme_ChangeAndRepeat(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)

	require.True(t, s.SetTheme("dracula"))
	require.Equal(t, ThemeName("dracula"), s.Theme())
	require.False(t, s.SetTheme("dracula"))
}

// ============================================================================
// Tokens
// ============================================================================

func TestLineTokens_ByteOffsets(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)
	lang := LangGo
	s.SetLanguage(&lang)
	s.SetText("package main\nvar x = 1")

	tokens := s.LineTokens(0)
	require.NotEmpty(t, tokens)
	require.Equal(t, 0, tokens[0].Start)
	require.Equal(t, len("package"), tokens[0].End)

	// Non-overlapping, sorted, and within the line.
	prev := 0
	for _, tok := range tokens {
		require.GreaterOrEqual(t, tok.Start, prev)
		require.Greater(t, tok.End, tok.Start)
		prev = tok.End
	}
	require.LessOrEqual(t, prev, len("package main"))
}

func TestLineTokens_OutOfRange(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)
	s.SetText("hello")

	require.Nil(t, s.LineTokens(-1))
	require.Nil(t, s.LineTokens(s.LineCount()))
}

func TestLineTokens_InvalidatedBySetText(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)
	lang := LangGo
	s.SetLanguage(&lang)
	s.SetText("package main")

	require.NotEmpty(t, s.LineTokens(0))

	s.SetText("za")

	for _, tok := range s.LineTokens(0) {
		require.LessOrEqual(t, tok.End, len("za"), "stale tokens from the previous text")
	}
}

func TestLineTokens_InvalidatedByLanguageChange(t *testing.T) {
	s := NewStore(DefaultTheme, DefaultFontSize)
	plain := LangPlainText
	s.SetLanguage(&plain)
	s.SetText("var x = 1")

	require.Len(t, s.LineTokens(0), 1, "plaintext should be one undifferentiated run")

	golang := LangGo
	s.SetLanguage(&golang)

	require.Greater(t, len(s.LineTokens(0)), 1, "language change must re-tokenize")
}

func TestLineTokens_RestyledByThemeChange(t *testing.T) {
	s := NewStore("monokai", DefaultFontSize)
	lang := LangGo
	s.SetLanguage(&lang)
	s.SetText("package main")

	before := s.LineTokens(0)[0].Style.GetForeground()

	require.True(t, s.SetTheme("dracula"))
	after := s.LineTokens(0)[0].Style.GetForeground()

	require.NotEqual(t, before, after, "keyword color should follow the theme")
}

// ============================================================================
// Plain-store degradation
// ============================================================================

func TestPlainStore_TextStillWorks(t *testing.T) {
	s := newPlainStore()

	require.False(t, s.Available())

	s.SetText("a\nb")
	require.Equal(t, "a\nb", s.Text())
	require.Equal(t, 2, s.LineCount())
	require.Nil(t, s.LineTokens(0))
}

func TestPlainStore_ThemeRejectedSizeTracked(t *testing.T) {
	s := newPlainStore()

	require.False(t, s.SetTheme("monokai"))

	// The size still round-trips so font bindings keep working.
	require.True(t, s.SetThemeSize(nil, 20))
	require.Equal(t, 20.0, s.Font().Size)
	require.False(t, s.SetThemeSize(nil, 20))
}
