package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/telgren/codeview/internal/syntax"
)

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestDefaults_Values(t *testing.T) {
	cfg := Defaults()
	require.True(t, cfg.AutoReload)
	require.False(t, cfg.ReadOnly)
	require.Equal(t, string(syntax.DefaultTheme), cfg.View.Theme)
	require.Equal(t, syntax.DefaultFontSize, cfg.View.FontSize)
	require.Equal(t, "tab", cfg.Editor.Indent.Style)
	require.True(t, cfg.Editor.SmartIndent)
	require.True(t, cfg.Editor.AutoPairs)
}

func TestValidateView_UnknownTheme(t *testing.T) {
	err := ValidateView(ViewConfig{Theme: "no-such-theme"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme")
}

func TestValidateView_UnknownLanguage(t *testing.T) {
	err := ValidateView(ViewConfig{Language: "no-such-lang"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown language")
}

func TestValidateView_KnownValues(t *testing.T) {
	err := ValidateView(ViewConfig{Theme: "dracula", Language: "go", FontSize: 14})
	require.NoError(t, err)
}

func TestValidateView_NegativeInset(t *testing.T) {
	err := ValidateView(ViewConfig{InsetX: -1})
	require.Error(t, err)
}

func TestValidateEditor_InvalidIndentStyle(t *testing.T) {
	err := ValidateEditor(EditorConfig{Indent: IndentConfig{Style: "elastic"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "indent.style")
}

func TestValidateEditor_EmptyStyleDefaultsToTab(t *testing.T) {
	require.NoError(t, ValidateEditor(EditorConfig{}))
	require.Equal(t, "tab", IndentConfig{}.IndentStyleName())
}

func TestValidateEditor_NegativeCharLimit(t *testing.T) {
	err := ValidateEditor(EditorConfig{CharLimit: -1})
	require.Error(t, err)
}

func TestWriteDefaultConfig_CreatesFileAndParents(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", ".codeview.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "theme: monokai")
	require.Contains(t, string(data), "smart_indent: true")
}
