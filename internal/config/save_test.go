package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveView_CreatesNewFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".codeview.yaml")

	err := SaveView(configPath, ViewConfig{Theme: "dracula", FontSize: 15, InsetX: 1})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: dracula")
	assert.Contains(t, string(data), "font_size: 15")
}

func TestSaveView_PreservesOtherSections(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".codeview.yaml")

	initial := `# my config
auto_reload: false
editor:
  smart_indent: true
view:
  theme: monokai
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o644))

	err := SaveView(configPath, ViewConfig{Theme: "nord", FontSize: 13})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# my config")
	assert.Contains(t, content, "auto_reload: false")
	assert.Contains(t, content, "smart_indent: true")
	assert.Contains(t, content, "theme: nord")
	assert.NotContains(t, content, "theme: monokai")
}

func TestSaveView_RoundTripsThroughViper(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".codeview.yaml")

	saved := ViewConfig{Theme: "dracula", FontSize: 16, Language: "go", InsetX: 2, InsetY: 1, Autoscroll: true}
	require.NoError(t, SaveView(configPath, saved))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, saved, cfg.View)
}

func TestSaveView_OmitsZeroOptionalFields(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".codeview.yaml")

	require.NoError(t, SaveView(configPath, ViewConfig{Theme: "monokai"}))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "language")
	assert.NotContains(t, string(data), "autoscroll")
	assert.NotContains(t, string(data), "font_size")
}
