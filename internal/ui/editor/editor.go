package editor

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/telgren/codeview/internal/log"
	"github.com/telgren/codeview/internal/syntax"
)

// mouseEscapePattern matches SGR mouse tracking sequences that weren't parsed by bubbletea.
// These look like "[<65;87;15M" or "<65;87;15M" (CSI < Pb ; Px ; Py M/m format).
var mouseEscapePattern = regexp.MustCompile(`^\[?<\d+;\d+;\d+[Mm]$`)

// isMouseEscapeSequence checks if runes represent an unparsed SGR mouse tracking sequence.
func isMouseEscapeSequence(runes []rune) bool {
	if len(runes) < 6 {
		return false
	}
	return mouseEscapePattern.MatchString(string(runes))
}

// Font size bounds for the step keys. Sizes outside this range stop
// tracking usefully in any host.
const (
	minFontSize  = 6.0
	maxFontSize  = 72.0
	fontSizeStep = 1.0
)

// Config defines editor configuration with optional callbacks.
type Config struct {
	// Placeholder is the text shown when the editor is empty.
	Placeholder string

	// CharLimit is the maximum number of characters allowed. 0 means unlimited.
	CharLimit int

	// OnChange produces a custom message when the user edits content.
	// Programmatic SetValue does not emit it; hosts driving the widget
	// through bindings observe those through the adapter instead.
	OnChange func(content string) tea.Msg

	// OnSelect produces a custom message when the cursor or selection
	// moves in response to user input.
	OnSelect func(sel Range) tea.Msg

	// OnFontSize produces a custom message when the font size step
	// keys change the size.
	OnFontSize func(size float64) tea.Msg
}

// Model holds the editor state. Create instances with New; the zero
// value is not usable.
type Model struct {
	config Config
	id     string

	// Content state
	content   []string // Lines of text
	cursorRow int      // Current line (0-indexed)
	cursorCol int      // Current column as grapheme index (0-indexed, not byte offset)

	preferredCol int    // Preferred column for vertical movement
	selection    *Range // Active selection extent (nil = caret only)

	// Capabilities
	editable   bool
	selectable bool

	// Editing behavior
	indent      IndentStyle
	smartIndent bool
	autoPairs   map[string]string

	// Highlighting
	store *syntax.Store

	// Synchronous observers, installed by the binding adapter.
	// These fire on any change, programmatic or user-driven.
	notifyChange   func(content string)
	notifySelect   func(sel Range)
	notifyFontSize func(size float64)

	clip Clipboard

	// Display state
	width, height  int
	insetX, insetY int
	focused        bool
	scrollOffset   int // First visible display row
}

// New creates an editor with the given configuration. The widget
// starts editable and selectable with default auto-pairs, a tab indent
// style, and the default highlighting theme.
func New(cfg Config) Model {
	return Model{
		config:     cfg,
		id:         uuid.NewString(),
		content:    []string{""},
		editable:   true,
		selectable: true,
		indent:     IndentTab(),
		autoPairs:  DefaultAutoPairs(),
		store:      syntax.NewStore(syntax.DefaultTheme, syntax.DefaultFontSize),
		clip:       systemClipboard{},
	}
}

// ID returns the widget's stable identity. The binding adapter keys
// its re-entrancy guard on this, so it must outlive adapter instances.
func (m Model) ID() string {
	return m.id
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m, cmd := m.handleKeyMsg(msg)
		m.ensureCursorVisible()
		return m, cmd
	}
	return m, nil
}

// keyToString converts a tea.KeyMsg to a registry-compatible key string.
// Returns empty string for unhandled key types.
func keyToString(msg tea.KeyMsg) string {
	switch msg.String() {
	case "ctrl+up":
		return "<ctrl+up>"
	case "ctrl+down":
		return "<ctrl+down>"
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return string(msg.Runes[0])
		}
		return "<runes>" // Multi-rune input (paste)
	case tea.KeyEnter:
		return "<enter>"
	case tea.KeyTab:
		return "<tab>"
	case tea.KeyBackspace:
		return "<backspace>"
	case tea.KeyDelete:
		return "<delete>"
	case tea.KeySpace:
		return "<space>"
	case tea.KeyLeft:
		return "<left>"
	case tea.KeyRight:
		return "<right>"
	case tea.KeyUp:
		return "<up>"
	case tea.KeyDown:
		return "<down>"
	case tea.KeyHome:
		return "<home>"
	case tea.KeyEnd:
		return "<end>"
	case tea.KeyCtrlA:
		return "<ctrl+a>"
	case tea.KeyCtrlE:
		return "<ctrl+e>"
	case tea.KeyCtrlK:
		return "<ctrl+k>"
	case tea.KeyCtrlU:
		return "<ctrl+u>"
	case tea.KeyCtrlC:
		return "<ctrl+c>"
	default:
		return ""
	}
}

// handleKeyMsg processes keyboard input via registry dispatch.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := keyToString(msg)
	if keyStr == "" {
		return m, nil
	}

	// Font size steps are widget-level, not registry commands, because
	// they touch the highlighting store rather than the text.
	switch keyStr {
	case "<ctrl+up>":
		return m.stepFontSize(fontSizeStep)
	case "<ctrl+down>":
		return m.stepFontSize(-fontSizeStep)
	}

	cmd, ok := DefaultRegistry.Get(keyStr)
	if !ok {
		// Fallback: printable character input
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
			return m.handleCharacterInput(msg.Runes)
		}
		return m, nil
	}

	result, teaCmd := m.executeCommand(cmd)
	if result == PassThrough {
		return m, nil
	}
	return m, teaCmd
}

// handleCharacterInput handles printable character input, applying
// delimiter skip-over and auto-pair completion for single characters.
func (m Model) handleCharacterInput(runes []rune) (Model, tea.Cmd) {
	if len(runes) == 0 || !m.editable {
		return m, nil
	}
	if isMouseEscapeSequence(runes) {
		return m, nil
	}

	typed := string(runes)

	if len(runes) == 1 {
		// Skip over a closing delimiter already under the cursor
		// instead of doubling it.
		if m.isAutoPairCloser(typed) && GraphemeAt(m.content[m.cursorRow], m.cursorCol) == typed {
			m.cursorCol++
			m.preferredCol = m.cursorCol
			var cmds []tea.Cmd
			m.emitSelect(&cmds)
			return m, batch(cmds)
		}

		// Auto-pair: insert opener plus closer, cursor between.
		if closer, ok := m.autoPairs[typed]; ok {
			result, teaCmd := m.executeCommand(&InsertTextCommand{
				text:       typed + closer,
				cursorBack: GraphemeCount(closer),
			})
			if result == Skipped {
				return m, nil
			}
			return m, teaCmd
		}
	}

	result, teaCmd := m.executeCommand(&InsertTextCommand{text: typed})
	if result == Skipped {
		return m, nil
	}
	return m, teaCmd
}

// isAutoPairCloser reports whether s is the closing half of any
// configured pair. Symmetric pairs (quotes) count.
func (m Model) isAutoPairCloser(s string) bool {
	for _, closer := range m.autoPairs {
		if closer == s {
			return true
		}
	}
	return false
}

// stepFontSize nudges the font size by delta, clamped to sane bounds.
func (m Model) stepFontSize(delta float64) (Model, tea.Cmd) {
	size := m.store.Font().Size + delta
	size = max(min(size, maxFontSize), minFontSize)
	if !m.store.SetThemeSize(nil, size) {
		return m, nil
	}
	log.Debug(log.CatEditor, "font size stepped", "size", size)

	if m.notifyFontSize != nil {
		m.notifyFontSize(size)
	}
	if m.config.OnFontSize != nil {
		return m, func() tea.Msg {
			return m.config.OnFontSize(size)
		}
	}
	return m, nil
}

// executeCommand runs a command, gating edits on the editable flag and
// emitting change/selection notifications for what actually happened.
func (m *Model) executeCommand(cmd Command) (ExecuteResult, tea.Cmd) {
	if cmd.ChangesContent() && !m.editable {
		return Skipped, nil
	}

	prevCursor := Position{Row: m.cursorRow, Col: m.cursorCol}
	hadSelection := m.selection != nil

	result := cmd.Execute(m)
	if result != Executed {
		return result, nil
	}

	var cmds []tea.Cmd
	if cmd.ChangesContent() {
		m.selection = nil // edits collapse any extent
		m.syncStore()
		m.emitChange(&cmds)
	}
	cursorMoved := prevCursor != (Position{Row: m.cursorRow, Col: m.cursorCol})
	if cursorMoved || hadSelection != (m.selection != nil) {
		m.emitSelect(&cmds)
	}
	return Executed, batch(cmds)
}

func batch(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// emitChange fires the synchronous change observer and queues the
// OnChange message if configured.
func (m *Model) emitChange(cmds *[]tea.Cmd) {
	content := m.Value()
	if m.notifyChange != nil {
		m.notifyChange(content)
	}
	if m.config.OnChange != nil {
		*cmds = append(*cmds, func() tea.Msg {
			return m.config.OnChange(content)
		})
	}
}

// emitSelect fires the synchronous selection observer and queues the
// OnSelect message if configured.
func (m *Model) emitSelect(cmds *[]tea.Cmd) {
	sel := m.Selection()
	if m.notifySelect != nil {
		m.notifySelect(sel)
	}
	if m.config.OnSelect != nil {
		*cmds = append(*cmds, func() tea.Msg {
			return m.config.OnSelect(sel)
		})
	}
}

// syncStore pushes the current content into the highlighting store.
func (m *Model) syncStore() {
	m.store.SetText(m.Value())
}

// totalCharCount returns the grapheme count of the full content,
// newlines included, for CharLimit enforcement.
func (m Model) totalCharCount() int {
	return m.contentGraphemeCount()
}

// ============================================================================
// Capability flags
// ============================================================================

// SetEditable toggles whether user input may modify content. Turning
// editing off does not affect programmatic SetValue.
func (m *Model) SetEditable(editable bool) {
	m.editable = editable
}

// Editable reports whether user edits are accepted.
func (m Model) Editable() bool {
	return m.editable
}

// SetSelectable toggles whether the copy command may read content.
func (m *Model) SetSelectable(selectable bool) {
	m.selectable = selectable
}

// Selectable reports whether copy is permitted independently of edits.
func (m Model) Selectable() bool {
	return m.selectable
}

// ============================================================================
// Editing behavior
// ============================================================================

// SetIndentStyle sets what the Tab key inserts.
func (m *Model) SetIndentStyle(style IndentStyle) {
	m.indent = style
}

// IndentStyle returns the active indent style.
func (m Model) IndentStyle() IndentStyle {
	return m.indent
}

// SetSmartIndent toggles carrying the previous line's leading
// whitespace onto lines created by Enter.
func (m *Model) SetSmartIndent(enabled bool) {
	m.smartIndent = enabled
}

// SmartIndent reports whether smart indentation is active.
func (m Model) SmartIndent() bool {
	return m.smartIndent
}

// SetAutoPairs replaces the delimiter completion table. Nil or empty
// disables auto-pairing.
func (m *Model) SetAutoPairs(pairs map[string]string) {
	m.autoPairs = pairs
}

// AutoPairs returns the active delimiter completion table.
func (m Model) AutoPairs() map[string]string {
	return m.autoPairs
}

// SetClipboard replaces the clipboard implementation. Tests use this
// to observe copies without touching the system clipboard.
func (m *Model) SetClipboard(c Clipboard) {
	m.clip = c
}

// ============================================================================
// Highlighting surface
// ============================================================================

// ApplyTheme switches the highlighting theme, keeping the font size.
// Returns false without changing anything for unknown theme names.
func (m *Model) ApplyTheme(name syntax.ThemeName) bool {
	return m.store.SetTheme(name)
}

// ApplyThemeSize applies a theme and font size as one atomic update.
// A nil theme keeps the current one. Unknown themes reject the whole
// update, size included.
func (m *Model) ApplyThemeSize(name *syntax.ThemeName, size float64) bool {
	return m.store.SetThemeSize(name, size)
}

// Theme returns the active highlighting theme.
func (m Model) Theme() syntax.ThemeName {
	return m.store.Theme()
}

// Highlighted reports whether the highlighting engine is usable. False
// means the widget renders plain text regardless of theme or language.
func (m Model) Highlighted() bool {
	return m.store.Available()
}

// Font returns the theme-derived code font.
func (m Model) Font() syntax.Font {
	return m.store.Font()
}

// SetLanguage fixes the highlighting language; nil re-enables
// content-based detection.
func (m *Model) SetLanguage(lang *syntax.Language) {
	m.store.SetLanguage(lang)
}

// Language returns the fixed language, or nil when detecting.
func (m Model) Language() *syntax.Language {
	return m.store.Language()
}

// ============================================================================
// Content access
// ============================================================================

// Value returns the full content as a single string with newlines.
func (m Model) Value() string {
	return strings.Join(m.content, "\n")
}

// Lines returns the content as a slice of lines.
func (m Model) Lines() []string {
	return m.content
}

// SetValue replaces the content wholesale. The cursor clamps to the
// new bounds and any selection collapses. The synchronous change
// observer fires; the OnChange message does not, since it reports user
// edits only.
func (m *Model) SetValue(s string) {
	if s == m.Value() {
		return
	}

	if s == "" {
		m.content = []string{""}
	} else {
		m.content = strings.Split(s, "\n")
	}
	m.selection = nil
	m.clampCursor()
	m.syncStore()

	if m.notifyChange != nil {
		m.notifyChange(s)
	}
}

// Reset clears the content and cursor.
func (m *Model) Reset() {
	m.SetValue("")
	m.cursorRow = 0
	m.cursorCol = 0
	m.scrollOffset = 0
}

// SetNotifiers installs the synchronous observers the binding adapter
// uses to relay widget events into bindings. Pass nil to detach.
func (m *Model) SetNotifiers(onChange func(string), onSelect func(Range), onFontSize func(float64)) {
	m.notifyChange = onChange
	m.notifySelect = onSelect
	m.notifyFontSize = onFontSize
}

// ============================================================================
// Display state
// ============================================================================

// SetSize sets the viewport dimensions in terminal cells, including
// any inset padding.
func (m *Model) SetSize(w, h int) {
	m.width = max(w-2*m.insetX, 0)
	m.height = max(h-2*m.insetY, 0)
	m.ensureCursorVisible()
}

// SetInset sets horizontal and vertical padding between the widget
// edge and the text.
func (m *Model) SetInset(x, y int) {
	m.insetX = max(x, 0)
	m.insetY = max(y, 0)
}

// Focus focuses the editor.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus.
func (m *Model) Blur() {
	m.focused = false
}

// Focused returns whether the editor is focused.
func (m Model) Focused() bool {
	return m.focused
}

// CursorPosition returns the current cursor position.
func (m Model) CursorPosition() Position {
	return Position{Row: m.cursorRow, Col: m.cursorCol}
}

// clampCursor ensures the cursor is within valid bounds.
// cursorCol is a grapheme index, not a byte offset.
func (m *Model) clampCursor() {
	if len(m.content) == 0 {
		m.content = []string{""}
	}
	if m.cursorRow >= len(m.content) {
		m.cursorRow = len(m.content) - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	lineGraphemeCount := GraphemeCount(m.content[m.cursorRow])
	if m.cursorCol > lineGraphemeCount {
		m.cursorCol = lineGraphemeCount
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
}
