// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level keybindings. Editing keys live
// in the editor widget itself; these cover everything around it.
type KeyMap struct {
	// File
	Save   key.Binding
	Reload key.Binding

	// Appearance
	NextTheme    key.Binding
	PrevTheme    key.Binding
	FontBigger   key.Binding
	FontSmaller  key.Binding
	ToggleStatus key.Binding

	// General
	ToggleReadOnly key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// File
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save file"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload from disk"),
		),

		// Appearance
		NextTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "next theme"),
		),
		PrevTheme: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "previous theme"),
		),
		FontBigger: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("ctrl+↑", "bigger font"),
		),
		FontSmaller: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("ctrl+↓", "smaller font"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "toggle status bar"),
		),

		// General
		// ctrl+e belongs to the editor (end of line), so read-only
		// toggling uses ctrl+l.
		ToggleReadOnly: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "toggle read-only"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Reload},                                 // File
		{k.NextTheme, k.PrevTheme, k.FontBigger, k.FontSmaller}, // Appearance
		{k.ToggleReadOnly, k.ToggleStatus, k.Help, k.Quit},      // General
	}
}
