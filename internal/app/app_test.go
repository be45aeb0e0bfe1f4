package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telgren/codeview/internal/config"
)

// createTestModel creates a Model over a temp file with auto-reload off.
func createTestModel(t *testing.T, content string) Model {
	t.Helper()

	cfg := config.Defaults()
	cfg.AutoReload = false

	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := New(path, "", cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	m.width = 100
	m.height = 40
	return m
}

func TestApp_LoadsFileIntoWidget(t *testing.T) {
	m := createTestModel(t, "package main\n")
	assert.Equal(t, "package main\n", m.view.Widget().Value())
	assert.False(t, m.dirty())
}

func TestApp_MissingFileErrors(t *testing.T) {
	_, err := New("/no/such/file.go", "", config.Defaults())
	assert.Error(t, err)
}

func TestApp_WindowSizeMsg(t *testing.T) {
	m := createTestModel(t, "x")

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = newModel.(Model)

	assert.Equal(t, 120, m.width, "expected width to be updated")
	assert.Equal(t, 50, m.height, "expected height to be updated")
}

func TestApp_TypingMarksDirty(t *testing.T) {
	m := createTestModel(t, "hello")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = newModel.(Model)

	assert.True(t, m.dirty())
	assert.Equal(t, "xhello", m.st.source)
}

func TestApp_SaveClearsDirty(t *testing.T) {
	m := createTestModel(t, "hello")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = newModel.(Model)
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = newModel.(Model)

	assert.False(t, m.dirty())
	data, err := os.ReadFile(m.filePath)
	require.NoError(t, err)
	assert.Equal(t, "xhello", string(data))
}

func TestApp_ReadOnly_SaveAndEditIgnored(t *testing.T) {
	cfg := config.Defaults()
	cfg.AutoReload = false
	cfg.ReadOnly = true

	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("locked"), 0o644))

	m, err := New(path, "", cfg)
	require.NoError(t, err)
	defer func() { _ = m.Close() }()

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = newModel.(Model)

	assert.Equal(t, "locked", m.st.source)
	assert.False(t, m.view.Widget().Editable())
}

func TestApp_ToggleReadOnly(t *testing.T) {
	m := createTestModel(t, "text")
	require.True(t, m.view.Widget().Editable())

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = newModel.(Model)

	assert.True(t, m.readOnly)
	assert.False(t, m.view.Widget().Editable())
}

func TestApp_CycleTheme(t *testing.T) {
	m := createTestModel(t, "x")
	before := m.currentTheme()

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = newModel.(Model)

	assert.NotEqual(t, before, m.currentTheme())
	assert.Equal(t, m.currentTheme(), m.view.Widget().Theme())
}

func TestApp_CycleTheme_PersistsToConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.AutoReload = false

	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	configPath := filepath.Join(dir, ".codeview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	m, err := New(path, configPath, cfg)
	require.NoError(t, err)
	defer func() { _ = m.Close() }()

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = newModel.(Model)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: "+string(m.currentTheme()))
}

func TestApp_ReloadFromDisk(t *testing.T) {
	m := createTestModel(t, "v1")
	require.NoError(t, os.WriteFile(m.filePath, []byte("v2"), 0o644))

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = newModel.(Model)

	assert.Equal(t, "v2", m.st.source)
	assert.Equal(t, "v2", m.view.Widget().Value())
}

func TestApp_FileChanged_KeepsUnsavedEdits(t *testing.T) {
	m := createTestModel(t, "v1")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = newModel.(Model)
	require.NoError(t, os.WriteFile(m.filePath, []byte("v2"), 0o644))

	newModel, _ = m.Update(fileChangedMsg{})
	m = newModel.(Model)

	assert.Equal(t, "xv1", m.st.source, "unsaved edits must survive disk changes")
}

func TestApp_FileChanged_ReloadsCleanBuffer(t *testing.T) {
	m := createTestModel(t, "v1")
	require.NoError(t, os.WriteFile(m.filePath, []byte("v2"), 0o644))

	newModel, _ := m.Update(fileChangedMsg{})
	m = newModel.(Model)

	assert.Equal(t, "v2", m.st.source)
}

func TestApp_ViewRendersStatusBar(t *testing.T) {
	m := createTestModel(t, "x")
	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = newModel.(Model)

	view := m.View()
	assert.Contains(t, view, "main.go")
}

func TestApp_ToggleStatusBar(t *testing.T) {
	m := createTestModel(t, "x")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	m = newModel.(Model)

	assert.False(t, m.showStatus)
}
