// Package config provides configuration types and defaults for codeview.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/telgren/codeview/internal/log"
	"github.com/telgren/codeview/internal/syntax"
)

// IndentConfig controls what the Tab key inserts.
type IndentConfig struct {
	Style string `mapstructure:"style"` // "tab" (default) or "spaces"
	Width int    `mapstructure:"width"` // Spaces per indent level (spaces style only)
}

// EditorConfig holds editing behavior options.
type EditorConfig struct {
	Indent      IndentConfig `mapstructure:"indent"`
	SmartIndent bool         `mapstructure:"smart_indent"` // Carry leading whitespace onto new lines
	AutoPairs   bool         `mapstructure:"auto_pairs"`   // Complete (, [, {, ", '
	CharLimit   int          `mapstructure:"char_limit"`   // Maximum characters, 0 = unlimited
}

// ViewConfig holds display options.
type ViewConfig struct {
	Theme      string  `mapstructure:"theme"`      // Highlighting theme (run 'codeview themes')
	FontSize   float64 `mapstructure:"font_size"`  // Initial font size
	Language   string  `mapstructure:"language"`   // Fixed language, empty = detect
	InsetX     int     `mapstructure:"inset_x"`    // Horizontal padding in cells
	InsetY     int     `mapstructure:"inset_y"`    // Vertical padding in cells
	Autoscroll bool    `mapstructure:"autoscroll"` // Keep selection visible on programmatic moves
}

// Config holds all configuration options for codeview.
type Config struct {
	AutoReload bool         `mapstructure:"auto_reload"` // Reload when the file changes on disk
	ReadOnly   bool         `mapstructure:"read_only"`   // Open files as display-only views
	View       ViewConfig   `mapstructure:"view"`
	Editor     EditorConfig `mapstructure:"editor"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload: true,
		View: ViewConfig{
			Theme:    string(syntax.DefaultTheme),
			FontSize: syntax.DefaultFontSize,
			InsetX:   1,
			InsetY:   0,
		},
		Editor: EditorConfig{
			Indent:      IndentConfig{Style: "tab", Width: 4},
			SmartIndent: true,
			AutoPairs:   true,
		},
	}
}

// ValidateView checks display configuration for errors.
// Empty values fall back to defaults and are valid.
func ValidateView(v ViewConfig) error {
	if v.Theme != "" && !syntax.ThemeName(v.Theme).Known() {
		return fmt.Errorf("view.theme: unknown theme %q (run 'codeview themes')", v.Theme)
	}
	if v.Language != "" && !syntax.Language(v.Language).Known() {
		return fmt.Errorf("view.language: unknown language %q (run 'codeview languages')", v.Language)
	}
	if v.FontSize < 0 {
		return fmt.Errorf("view.font_size must be positive, got %v", v.FontSize)
	}
	if v.InsetX < 0 || v.InsetY < 0 {
		return fmt.Errorf("view insets must be non-negative, got %d/%d", v.InsetX, v.InsetY)
	}
	return nil
}

// ValidateEditor checks editing configuration for errors.
func ValidateEditor(e EditorConfig) error {
	switch e.Indent.Style {
	case "", "tab", "spaces":
		// Valid
	default:
		return fmt.Errorf("editor.indent.style must be \"tab\" or \"spaces\", got %q", e.Indent.Style)
	}
	if e.Indent.Style == "spaces" && e.Indent.Width < 0 {
		return fmt.Errorf("editor.indent.width must be non-negative, got %d", e.Indent.Width)
	}
	if e.CharLimit < 0 {
		return fmt.Errorf("editor.char_limit must be non-negative, got %d", e.CharLimit)
	}
	return nil
}

// Validate checks the whole configuration for errors.
func Validate(c Config) error {
	if err := ValidateView(c.View); err != nil {
		return err
	}
	return ValidateEditor(c.Editor)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Codeview Configuration

# Reload the buffer when the file changes on disk
auto_reload: true

# Open files as display-only views (no editing, selection still works)
# read_only: true

# Display settings
view:
  # Highlighting theme (run 'codeview themes' to list available themes):
  theme: monokai

  # Initial font size; adjust at runtime with ctrl+up / ctrl+down
  font_size: 13

  # Fix the highlighting language instead of detecting it from the file
  # (run 'codeview languages' to list available languages):
  # language: go

  # Padding between the widget edge and the text, in cells
  inset_x: 1
  inset_y: 0

  # Keep the selection visible when it moves programmatically
  # autoscroll: true

# Editing behavior
editor:
  indent:
    style: tab   # "tab" or "spaces"
    width: 4     # spaces per level (spaces style only)

  # Carry the previous line's leading whitespace onto new lines
  smart_indent: true

  # Complete (, [, {, ", ' with their closing delimiter
  auto_pairs: true

  # Maximum characters in the buffer, 0 = unlimited
  # char_limit: 0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// IndentStyleName normalizes the configured indent style.
func (i IndentConfig) IndentStyleName() string {
	if i.Style == "" {
		return "tab"
	}
	return i.Style
}
