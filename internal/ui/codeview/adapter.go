package codeview

import (
	"github.com/telgren/codeview/internal/log"
	"github.com/telgren/codeview/internal/syntax"
	"github.com/telgren/codeview/internal/ui/editor"
)

// Flags are the widget capability toggles.
type Flags struct {
	Editable    bool
	Selectable  bool
	SmartIndent bool
}

// Inset is the padding, in cells, between the widget edge and the text.
type Inset struct {
	X int
	Y int
}

// AdapterConfig describes one complete widget configuration. The
// adapter re-applies it on every pass; hosts rebuild it freely since
// all identity lives in the widget, not here.
type AdapterConfig struct {
	// Source binds the text content. Get is required; Set is required
	// when the widget is editable.
	Source Binding[string]

	// Selection optionally binds the selection range. Nil leaves the
	// selection entirely widget-driven.
	Selection *Binding[editor.Range]

	// Language fixes the highlighting language. Nil means detect from
	// content.
	Language *syntax.Language

	// Theme names the highlighting theme. Empty keeps the current one.
	Theme syntax.ThemeName

	// FontSize optionally binds the font size. Nil leaves the size
	// under widget control (the step keys).
	FontSize *Binding[float64]

	Flags     Flags
	Indent    editor.IndentStyle
	AutoPairs map[string]string
	Inset     Inset

	// Autoscroll scrolls the viewport to the selection start whenever
	// a pass moves the selection.
	Autoscroll bool
}

// Adapter drives an editor widget from an AdapterConfig. Apply runs a
// fixed-order configuration pass; widget events flow back into the
// bindings through the editor's synchronous notifiers. A re-entrancy
// guard keyed on the widget's identity suppresses the write-back while
// a pass is running, so binding updates never echo.
//
// Adapters are cheap and hold no state of their own beyond the config;
// reconstructing one for the same widget each pass is the expected
// usage.
type Adapter struct {
	widget *editor.Model
	cfg    AdapterConfig
}

// NewAdapter creates an adapter for the widget. It panics when the
// config asks for an editable widget without a writable source binding,
// since user edits would be silently lost.
func NewAdapter(widget *editor.Model, cfg AdapterConfig) *Adapter {
	if !cfg.Source.readable() {
		panic("codeview: adapter requires a readable source binding")
	}
	if cfg.Flags.Editable && !cfg.Source.writable() {
		panic("codeview: editable widget requires a writable source binding")
	}

	a := &Adapter{widget: widget, cfg: cfg}
	a.installNotifiers()
	return a
}

// installNotifiers wires widget events back into the bindings. Each
// notifier checks the guard first: changes made by Apply itself must
// not be written back.
func (a *Adapter) installNotifiers() {
	id := a.widget.ID()

	var onChange func(string)
	if a.cfg.Source.writable() {
		onChange = func(content string) {
			if guards.held(id) {
				return
			}
			a.cfg.Source.Set(content)
		}
	}

	var onSelect func(editor.Range)
	if a.cfg.Selection != nil && a.cfg.Selection.writable() {
		sel := *a.cfg.Selection
		onSelect = func(r editor.Range) {
			if guards.held(id) {
				return
			}
			if sel.readable() && r == sel.Get() {
				return
			}
			sel.Set(r)
		}
	}

	var onFontSize func(float64)
	if a.cfg.FontSize != nil && a.cfg.FontSize.writable() {
		fs := *a.cfg.FontSize
		onFontSize = func(size float64) {
			if guards.held(id) {
				return
			}
			fs.Set(size)
		}
	}

	a.widget.SetNotifiers(onChange, onSelect, onFontSize)
}

// Apply runs one configuration pass over the widget. The step order is
// fixed: appearance first, then content, then selection, then the
// capability flags. A pass already running for this widget makes Apply
// a no-op, which is what breaks binding feedback cycles.
func (a *Adapter) Apply() {
	release := guards.acquire(a.widget.ID())
	if release == nil {
		log.Debug(log.CatBinding, "re-entrant apply suppressed", "widget", a.widget.ID())
		return
	}
	defer release()

	a.applyTheme()
	a.applyLanguage()
	a.applyEditing()
	a.applyInset()
	a.applyText()
	a.applySelection()
	a.applyFlags()
}

// applyTheme applies theme and font size as one atomic update.
func (a *Adapter) applyTheme() {
	size := a.widget.Font().Size
	if a.cfg.FontSize != nil && a.cfg.FontSize.readable() {
		size = a.cfg.FontSize.Get()
	}

	var theme *syntax.ThemeName
	if a.cfg.Theme != "" {
		theme = &a.cfg.Theme
	}

	if theme == nil && size == a.widget.Font().Size {
		return
	}
	if !a.widget.ApplyThemeSize(theme, size) && theme != nil && *theme != a.widget.Theme() {
		log.Warn(log.CatBinding, "theme rejected", "theme", *theme)
	}
}

func (a *Adapter) applyLanguage() {
	a.widget.SetLanguage(a.cfg.Language)
}

func (a *Adapter) applyEditing() {
	a.widget.SetIndentStyle(a.cfg.Indent)
	a.widget.SetSmartIndent(a.cfg.Flags.SmartIndent)
	a.widget.SetAutoPairs(a.cfg.AutoPairs)
}

func (a *Adapter) applyInset() {
	a.widget.SetInset(a.cfg.Inset.X, a.cfg.Inset.Y)
}

// applyText reconciles the widget content with the source binding.
// SetValue is a no-op for identical text, so repeated passes with an
// unchanged source don't disturb cursor or scroll state.
func (a *Adapter) applyText() {
	v := a.cfg.Source.Get()
	if v == a.widget.Value() {
		return
	}
	a.widget.SetValue(v)
}

// applySelection reconciles the widget selection with the binding and
// optionally scrolls it into view.
func (a *Adapter) applySelection() {
	if a.cfg.Selection == nil || !a.cfg.Selection.readable() {
		return
	}

	want := a.cfg.Selection.Get()
	if want == a.widget.Selection() {
		return
	}
	a.widget.SetSelection(want)
	if a.cfg.Autoscroll {
		a.widget.ScrollToSelection()
	}
}

func (a *Adapter) applyFlags() {
	a.widget.SetEditable(a.cfg.Flags.Editable)
	a.widget.SetSelectable(a.cfg.Flags.Selectable)
}

// Release detaches the adapter from the widget: notifiers are removed
// and the guard entry is dropped.
func (a *Adapter) Release() {
	a.widget.SetNotifiers(nil, nil, nil)
	guards.forget(a.widget.ID())
}
