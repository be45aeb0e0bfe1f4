package codeview

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/telgren/codeview/internal/syntax"
	"github.com/telgren/codeview/internal/ui/editor"
)

// Option adjusts a view's configuration at construction time.
type Option func(*AdapterConfig)

// WithLanguage fixes the highlighting language instead of detecting it
// from content.
func WithLanguage(lang syntax.Language) Option {
	return func(c *AdapterConfig) { c.Language = &lang }
}

// WithTheme sets the highlighting theme.
func WithTheme(name syntax.ThemeName) Option {
	return func(c *AdapterConfig) { c.Theme = name }
}

// WithFontSize binds the font size so step-key changes flow back to the
// host.
func WithFontSize(b Binding[float64]) Option {
	return func(c *AdapterConfig) { c.FontSize = &b }
}

// WithSelection binds the selection range.
func WithSelection(b Binding[editor.Range]) Option {
	return func(c *AdapterConfig) { c.Selection = &b }
}

// WithFlags replaces the capability flags wholesale.
func WithFlags(f Flags) Option {
	return func(c *AdapterConfig) { c.Flags = f }
}

// WithIndent sets what the Tab key inserts.
func WithIndent(style editor.IndentStyle) Option {
	return func(c *AdapterConfig) { c.Indent = style }
}

// WithAutoPairs replaces the delimiter completion table. Pass nil to
// disable auto-pairing.
func WithAutoPairs(pairs map[string]string) Option {
	return func(c *AdapterConfig) { c.AutoPairs = pairs }
}

// WithInset pads the text away from the widget edge.
func WithInset(x, y int) Option {
	return func(c *AdapterConfig) { c.Inset = Inset{X: x, Y: y} }
}

// WithAutoscroll scrolls the viewport to the selection whenever a
// configuration pass moves it.
func WithAutoscroll() Option {
	return func(c *AdapterConfig) { c.Autoscroll = true }
}

// View is the widget facade: an editor wired to its bindings through an
// adapter. It implements the usual bubbletea component surface.
type View struct {
	widget  *editor.Model
	adapter *Adapter
}

func defaultConfig(source Binding[string]) AdapterConfig {
	return AdapterConfig{
		Source:    source,
		Theme:     syntax.DefaultTheme,
		Flags:     Flags{Editable: true, Selectable: true},
		Indent:    editor.IndentTab(),
		AutoPairs: editor.DefaultAutoPairs(),
	}
}

// New creates an editable view over the source binding. The view starts
// editable and selectable; use WithFlags to restrict it. Panics when
// the flags ask for editing but the source has no Set.
func New(source Binding[string], opts ...Option) *View {
	cfg := defaultConfig(source)
	for _, opt := range opts {
		opt(&cfg)
	}
	return newView(cfg)
}

// NewDisplay creates a read-only view over fixed text. Selection and
// copy stay available; asking for the editable flag panics, since a
// constant source can never accept edits.
func NewDisplay(text string, opts ...Option) *View {
	cfg := defaultConfig(Constant(text))
	cfg.Flags = Flags{Editable: false, Selectable: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Flags.Editable {
		panic("codeview: display view cannot be editable")
	}
	return newView(cfg)
}

func newView(cfg AdapterConfig) *View {
	widget := editor.New(editor.Config{})
	v := &View{widget: &widget}
	v.adapter = NewAdapter(v.widget, cfg)
	v.adapter.Apply()
	return v
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return v.widget.Init()
}

// Update forwards input to the widget. Widget-side changes reach the
// bindings synchronously through the adapter's notifiers before Update
// returns.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	w, cmd := v.widget.Update(msg)
	*v.widget = w
	return v, cmd
}

// View implements tea.Model.
func (v *View) View() string {
	return v.widget.View()
}

// Refresh re-runs the configuration pass, picking up changes the host
// made to bound state or to the config's referents.
func (v *View) Refresh() {
	v.adapter.Apply()
}

// Reconfigure replaces the adapter config and re-applies it. The widget
// and its identity are kept, so the re-entrancy guard carries over.
func (v *View) Reconfigure(cfg AdapterConfig) {
	v.adapter.Release()
	v.adapter = NewAdapter(v.widget, cfg)
	v.adapter.Apply()
}

// SetSize sets the view's dimensions in terminal cells.
func (v *View) SetSize(w, h int) {
	v.widget.SetSize(w, h)
}

// Focus gives the widget keyboard focus.
func (v *View) Focus() {
	v.widget.Focus()
}

// Blur removes keyboard focus.
func (v *View) Blur() {
	v.widget.Blur()
}

// Widget exposes the underlying editor for direct inspection. Mutating
// it bypasses the bindings; prefer Refresh with updated bound state.
func (v *View) Widget() *editor.Model {
	return v.widget
}

// Release detaches the view from its bindings.
func (v *View) Release() {
	v.adapter.Release()
}
