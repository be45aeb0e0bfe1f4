// Package syntax wraps the chroma highlighting engine behind the small
// surface the editor widget needs: language and theme identifiers, a
// token store that styles lines, and the font derived from a theme.
package syntax

import (
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Language identifies a source language by its chroma lexer name.
// The zero value is the empty string, which is a valid identifier for
// plain text. A nil *Language (as used by Store.SetLanguage) means
// "detect from content" and is distinct from the empty Language.
type Language string

// Common languages. Any chroma lexer name is accepted; these constants
// exist for the ones the demo app and tests reach for.
const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJSON       Language = "json"
	LangYAML       Language = "yaml"
	LangMarkdown   Language = "markdown"
	LangShell      Language = "bash"
	LangPlainText  Language = "plaintext"
)

// String returns the raw lexer name.
func (l Language) String() string {
	return string(l)
}

// Known reports whether a chroma lexer exists for this language name.
func (l Language) Known() bool {
	return lexers.Get(string(l)) != nil
}

// lexerFor resolves the language to a chroma lexer, falling back to the
// plaintext lexer when the name is unrecognized. The returned lexer is
// coalesced so adjacent same-type tokens merge into single runs.
func (l Language) lexerFor() chroma.Lexer {
	lexer := lexers.Get(string(l))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// DetectLanguage guesses the language from a filename, returning nil
// when no lexer matches. The result feeds Store.SetLanguage directly:
// nil keeps content-based detection active.
func DetectLanguage(filename string) *Language {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return nil
	}
	name := Language(lexer.Config().Name)
	// Chroma reports display names ("Go"); normalize through the alias
	// table so the identifier round-trips via lexers.Get.
	if alias := lexer.Config().Aliases; len(alias) > 0 {
		name = Language(alias[0])
	}
	return &name
}

// detectFromContent analyses text and returns the best-guess lexer.
// Falls back to plaintext when analysis is inconclusive.
func detectFromContent(text string) chroma.Lexer {
	lexer := lexers.Analyse(text)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// AvailableLanguages returns the sorted lexer names the engine knows.
func AvailableLanguages() []string {
	names := lexers.Names(false)
	sort.Strings(names)
	return names
}
