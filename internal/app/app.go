// Package app contains the root application model.
package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/telgren/codeview/internal/config"
	"github.com/telgren/codeview/internal/keys"
	"github.com/telgren/codeview/internal/log"
	"github.com/telgren/codeview/internal/syntax"
	"github.com/telgren/codeview/internal/ui/codeview"
	"github.com/telgren/codeview/internal/ui/editor"
	"github.com/telgren/codeview/internal/watcher"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
	statusDirtyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Background(lipgloss.Color("236"))
	statusReadOnlyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203")).
				Background(lipgloss.Color("236"))
)

// fileChangedMsg signals that the opened file changed on disk.
type fileChangedMsg struct{}

// state holds the host-owned values the widget bindings close over.
// It lives behind a pointer so binding closures stay valid while the
// bubbletea model is copied around.
type state struct {
	source    string
	lastSaved string
	selection editor.Range
	fontSize  float64
}

// Model is the root application state.
type Model struct {
	st   *state
	view *codeview.View

	cfg        config.Config
	configPath string
	filePath   string
	language   *syntax.Language

	themes     []string
	themeIdx   int
	readOnly   bool
	showStatus bool

	keymap keys.KeyMap
	help   help.Model

	watcherHandle *watcher.Watcher
	watcherCh     <-chan struct{}

	width  int
	height int
	err    error
}

// New creates the application model for a file. The file's content is
// loaded immediately; a watcher is started when auto-reload is on.
func New(filePath, configPath string, cfg config.Config) (Model, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Model{}, fmt.Errorf("reading %s: %w", filePath, err)
	}

	st := &state{
		source:    string(data),
		lastSaved: string(data),
		fontSize:  cfg.View.FontSize,
	}
	if st.fontSize <= 0 {
		st.fontSize = syntax.DefaultFontSize
	}

	m := Model{
		st:         st,
		cfg:        cfg,
		configPath: configPath,
		filePath:   filePath,
		readOnly:   cfg.ReadOnly,
		showStatus: true,
		keymap:     keys.DefaultKeyMap(),
		help:       help.New(),
		themes:     syntax.AvailableThemes(),
	}

	// Language: explicit config wins, then filename detection.
	if cfg.View.Language != "" {
		lang := syntax.Language(cfg.View.Language)
		m.language = &lang
	} else {
		m.language = syntax.DetectLanguage(filePath)
	}

	m.themeIdx = indexOf(m.themes, themeName(cfg))
	m.view = codeview.New(m.sourceBinding())
	m.view.Reconfigure(m.adapterConfig())
	m.view.Focus()

	if cfg.AutoReload {
		w, err := watcher.New(watcher.DefaultConfig(filePath))
		if err == nil {
			if ch, err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherCh = ch
			} else {
				_ = w.Stop()
			}
		}
		// App works fine without auto-reload; ignore watcher init errors.
	}

	log.Info(log.CatApp, "Opened file", "path", filePath, "readOnly", m.readOnly)
	return m, nil
}

func themeName(cfg config.Config) string {
	if cfg.View.Theme != "" {
		return cfg.View.Theme
	}
	return string(syntax.DefaultTheme)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return 0
}

// sourceBinding binds the widget content to the in-memory buffer.
func (m Model) sourceBinding() codeview.Binding[string] {
	st := m.st
	return codeview.Binding[string]{
		Get: func() string { return st.source },
		Set: func(v string) { st.source = v },
	}
}

func (m Model) indentStyle() editor.IndentStyle {
	if m.cfg.Editor.Indent.IndentStyleName() == "spaces" {
		return editor.IndentSpaces(m.cfg.Editor.Indent.Width)
	}
	return editor.IndentTab()
}

func (m Model) currentTheme() syntax.ThemeName {
	if len(m.themes) == 0 {
		return syntax.DefaultTheme
	}
	return syntax.ThemeName(m.themes[m.themeIdx])
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.watcherCh != nil {
		return m.listenForChanges()
	}
	return nil
}

// listenForChanges waits for the next watcher notification.
func (m Model) listenForChanges() tea.Cmd {
	ch := m.watcherCh
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeView()
		return m, nil

	case fileChangedMsg:
		return m.handleFileChanged()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Save):
			return m.handleSave()

		case key.Matches(msg, m.keymap.Reload):
			return m.reloadFromDisk()

		case key.Matches(msg, m.keymap.NextTheme):
			return m.cycleTheme(1)

		case key.Matches(msg, m.keymap.PrevTheme):
			return m.cycleTheme(-1)

		case key.Matches(msg, m.keymap.ToggleStatus):
			m.showStatus = !m.showStatus
			m.resizeView()
			return m, nil

		case key.Matches(msg, m.keymap.ToggleReadOnly):
			return m.toggleReadOnly()

		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resizeView()
			return m, nil
		}
	}

	// Everything else goes to the widget.
	_, cmd := m.view.Update(msg)
	return m, cmd
}

func (m *Model) resizeView() {
	h := m.height - lipgloss.Height(m.chrome())
	m.view.SetSize(m.width, max(h, 0))
}

// handleSave writes the buffer back to the file.
func (m Model) handleSave() (tea.Model, tea.Cmd) {
	if m.readOnly {
		return m, nil
	}
	if err := os.WriteFile(m.filePath, []byte(m.st.source), 0o644); err != nil {
		log.ErrorErr(log.CatApp, "Save failed", err, "path", m.filePath)
		m.err = err
		return m, nil
	}
	m.st.lastSaved = m.st.source
	m.err = nil
	log.Info(log.CatApp, "Saved file", "path", m.filePath, "bytes", len(m.st.source))
	return m, nil
}

// handleFileChanged reloads the buffer unless there are unsaved edits;
// clobbering user edits with disk content is worse than going stale.
func (m Model) handleFileChanged() (tea.Model, tea.Cmd) {
	if m.dirty() {
		log.Warn(log.CatApp, "File changed on disk, keeping unsaved edits", "path", m.filePath)
		return m, m.listenForChanges()
	}

	model, _ := m.reloadFromDisk()
	return model, m.listenForChanges()
}

// reloadFromDisk replaces the buffer with the file's current content.
func (m Model) reloadFromDisk() (tea.Model, tea.Cmd) {
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		log.ErrorErr(log.CatApp, "Reload failed", err, "path", m.filePath)
		m.err = err
		return m, nil
	}

	m.st.source = string(data)
	m.st.lastSaved = string(data)
	m.err = nil
	m.view.Refresh()
	log.Debug(log.CatApp, "Reloaded file", "path", m.filePath, "bytes", len(data))
	return m, nil
}

// cycleTheme moves through the available themes and persists the choice.
func (m Model) cycleTheme(delta int) (tea.Model, tea.Cmd) {
	if len(m.themes) == 0 {
		return m, nil
	}
	m.themeIdx = (m.themeIdx + delta + len(m.themes)) % len(m.themes)
	m.reconfigure()

	if m.configPath != "" {
		m.cfg.View.Theme = m.themes[m.themeIdx]
		m.cfg.View.FontSize = m.st.fontSize
		if err := config.SaveView(m.configPath, m.cfg.View); err != nil {
			log.Warn(log.CatConfig, "Failed to persist theme", "error", err)
		}
	}
	return m, nil
}

// toggleReadOnly flips the editable flag and rebuilds the widget config.
func (m Model) toggleReadOnly() (tea.Model, tea.Cmd) {
	m.readOnly = !m.readOnly
	m.reconfigure()
	log.Info(log.CatApp, "Toggled read-only", "readOnly", m.readOnly)
	return m, nil
}

// reconfigure rebuilds the widget configuration from current state.
// The existing widget is reused so cursor, scroll, and guard identity
// survive; only the configuration changes.
func (m *Model) reconfigure() {
	m.view.Reconfigure(m.adapterConfig())
	m.resizeView()
}

// adapterConfig assembles the full adapter configuration directly.
func (m Model) adapterConfig() codeview.AdapterConfig {
	st := m.st
	cfg := codeview.AdapterConfig{
		Source: m.sourceBinding(),
		Theme:  m.currentTheme(),
		FontSize: &codeview.Binding[float64]{
			Get: func() float64 { return st.fontSize },
			Set: func(v float64) { st.fontSize = v },
		},
		Selection: &codeview.Binding[editor.Range]{
			Get: func() editor.Range { return st.selection },
			Set: func(r editor.Range) { st.selection = r },
		},
		Flags: codeview.Flags{
			Editable:    !m.readOnly,
			Selectable:  true,
			SmartIndent: m.cfg.Editor.SmartIndent,
		},
		Indent:     m.indentStyle(),
		Inset:      codeview.Inset{X: m.cfg.View.InsetX, Y: m.cfg.View.InsetY},
		Language:   m.language,
		Autoscroll: m.cfg.View.Autoscroll,
	}
	if m.cfg.Editor.AutoPairs {
		cfg.AutoPairs = editor.DefaultAutoPairs()
	}
	return cfg
}

func (m Model) dirty() bool {
	return m.st.source != m.st.lastSaved
}

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{m.view.View()}
	if chrome := m.chrome(); chrome != "" {
		sections = append(sections, chrome)
	}
	return strings.Join(sections, "\n")
}

// chrome renders the status bar and help below the editor.
func (m Model) chrome() string {
	var parts []string
	if m.showStatus {
		parts = append(parts, m.statusBar())
	}
	if m.help.ShowAll {
		parts = append(parts, m.help.View(m.keymap))
	}
	return strings.Join(parts, "\n")
}

// statusBar renders one line of file and widget state.
func (m Model) statusBar() string {
	name := m.filePath
	if m.err != nil {
		name = fmt.Sprintf("%s [%v]", name, m.err)
	}

	var flags []string
	if m.dirty() {
		flags = append(flags, statusDirtyStyle.Render("+"))
	}
	if m.readOnly {
		flags = append(flags, statusReadOnlyStyle.Render("RO"))
	}

	lang := "auto"
	if m.language != nil {
		lang = m.language.String()
	}
	theme := m.currentTheme().String()
	if !m.view.Widget().Highlighted() {
		theme = "plain"
	}
	pos := m.view.Widget().CursorPosition()

	right := fmt.Sprintf("%s · %s · %.0fpt · %d:%d",
		lang, theme, m.st.fontSize, pos.Row+1, pos.Col+1)

	left := name
	if len(flags) > 0 {
		left += " " + strings.Join(flags, " ")
	}

	// Truncate the file name first when the bar doesn't fit.
	avail := m.width - lipgloss.Width(right) - 4
	if avail > 0 {
		left = truncate.StringWithTail(left, uint(avail), "…")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.view.Release()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}
