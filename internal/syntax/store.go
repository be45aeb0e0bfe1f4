package syntax

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	cache "github.com/patrickmn/go-cache"

	"github.com/telgren/codeview/internal/log"
)

// Token is a styled region within a single line.
// Start and End are byte offsets into the line (End exclusive). Tokens
// are non-overlapping and sorted by Start; gaps render as plain text.
type Token struct {
	Start int
	End   int
	Style lipgloss.Style
}

// cacheTTL bounds how long tokenized generations stay resident. A
// generation is invalidated by any text/language/theme change anyway,
// so the TTL only matters for abandoned generations.
const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Store owns the highlighting state for one piece of text: the content,
// the active language and theme, and the per-line token runs derived
// from them. It is not safe for concurrent use; like the widget that
// owns it, all access happens on the UI loop.
//
// When the engine cannot be initialized (no themes registered), the
// store degrades to plain text: LineTokens returns nil and theme
// changes are rejected, but text and font state keep working.
type Store struct {
	text  string
	lines []string

	language *Language // nil = detect from content
	lexer    chroma.Lexer

	theme     ThemeName
	style     *chroma.Style
	font      Font
	available bool

	gen    uint64 // bumped on any change that invalidates tokens
	tokens *cache.Cache
}

// NewStore creates a store with the given theme and font size. An
// unknown theme falls back to DefaultTheme; if no themes are registered
// at all, the store starts in plain-text mode.
func NewStore(theme ThemeName, size float64) *Store {
	s := &Store{
		lines:  []string{""},
		tokens: cache.New(cacheTTL, cacheCleanup),
	}

	if !theme.Known() {
		theme = DefaultTheme
	}
	if style, ok := styles.Registry[string(theme)]; ok {
		s.theme = theme
		s.style = style
		s.available = true
	} else {
		log.Warn(log.CatSyntax, "no themes registered, highlighting disabled")
	}
	s.font = fontForTheme(s.style, size)
	s.lexer = detectFromContent("")
	return s
}

// Available reports whether the highlighting engine is usable. A plain
// store still tracks text, language, and font.
func (s *Store) Available() bool {
	return s.available
}

// Text returns the current content.
func (s *Store) Text() string {
	return s.text
}

// LineCount returns the number of lines in the current content.
func (s *Store) LineCount() int {
	return len(s.lines)
}

// SetText replaces the content. Identical text is a no-op so repeated
// configuration passes don't invalidate the token cache.
func (s *Store) SetText(text string) {
	if text == s.text {
		return
	}
	s.text = text
	s.lines = strings.Split(text, "\n")
	if s.language == nil {
		s.lexer = detectFromContent(text)
	}
	s.gen++
}

// Language returns the active language, or nil when the store is
// detecting from content.
func (s *Store) Language() *Language {
	return s.language
}

// SetLanguage fixes the language, or re-enables content detection when
// lang is nil. An unchanged language is a no-op.
func (s *Store) SetLanguage(lang *Language) {
	switch {
	case lang == nil && s.language == nil:
		return
	case lang != nil && s.language != nil && *lang == *s.language:
		return
	}

	if lang == nil {
		s.language = nil
		s.lexer = detectFromContent(s.text)
	} else {
		l := *lang
		s.language = &l
		s.lexer = l.lexerFor()
		if !l.Known() {
			log.Warn(log.CatSyntax, "unknown language, using plaintext lexer", "language", l)
		}
	}
	s.gen++
}

// Theme returns the active theme name. Meaningless when Available is
// false.
func (s *Store) Theme() ThemeName {
	return s.theme
}

// Font returns the current code font.
func (s *Store) Font() Font {
	return s.font
}

// SetTheme switches the theme, keeping the current font size. Returns
// true when the theme actually changed; unknown names and repeats are
// rejected without touching any state.
func (s *Store) SetTheme(name ThemeName) bool {
	return s.SetThemeSize(&name, s.font.Size)
}

// SetThemeSize applies a theme and font size together as one atomic
// swap. A nil name keeps the current theme and only adjusts the size.
// Returns true when anything changed. An unknown theme rejects the
// whole update, size included.
func (s *Store) SetThemeSize(name *ThemeName, size float64) bool {
	if !s.available {
		// Plain store: theme changes are meaningless, but size is
		// still tracked so bindings round-trip.
		if name == nil && size != s.font.Size {
			s.font = fontForTheme(nil, size)
			return true
		}
		return false
	}

	theme := s.theme
	if name != nil {
		theme = *name
	}
	style, ok := styles.Registry[string(theme)]
	if !ok {
		log.Warn(log.CatSyntax, "rejecting unknown theme", "theme", theme)
		return false
	}

	if theme == s.theme && size == s.font.Size {
		return false
	}

	themeChanged := theme != s.theme
	s.theme = theme
	s.style = style
	s.font = fontForTheme(style, size)
	if themeChanged {
		s.gen++
	}
	log.Debug(log.CatSyntax, "theme applied", "theme", theme, "size", size)
	return true
}

// LineTokens returns the styled token runs for one line, by row index.
// Returns nil for out-of-range rows, plain stores, and plain-text
// content. Token offsets are byte positions within that line.
func (s *Store) LineTokens(row int) []Token {
	if !s.available || row < 0 || row >= s.LineCount() {
		return nil
	}
	all := s.tokenizeAll()
	if row >= len(all) {
		return nil
	}
	return all[row]
}

// tokenizeAll tokenizes the whole text once per generation and caches
// the per-line result. Whole-text tokenization (rather than per-line)
// keeps multiline constructs like block comments and raw strings
// highlighted correctly.
func (s *Store) tokenizeAll() [][]Token {
	key := fmt.Sprintf("gen:%d", s.gen)
	if cached, ok := s.tokens.Get(key); ok {
		return cached.([][]Token)
	}

	iterator, err := s.lexer.Tokenise(nil, s.text)
	if err != nil {
		log.ErrorErr(log.CatSyntax, "tokenize failed", err)
		return nil
	}
	tokenLines := chroma.SplitTokensIntoLines(iterator.Tokens())

	result := make([][]Token, 0, len(s.lines))
	for _, lineTokens := range tokenLines {
		var line []Token
		offset := 0
		for _, tok := range lineTokens {
			value := strings.TrimSuffix(tok.Value, "\n")
			if value == "" {
				continue
			}
			line = append(line, Token{
				Start: offset,
				End:   offset + len(value),
				Style: tokenStyle(s.style, tok.Type),
			})
			offset += len(value)
		}
		result = append(result, line)
	}

	s.tokens.Set(key, result, cache.DefaultExpiration)
	return result
}
