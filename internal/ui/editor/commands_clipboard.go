package editor

import (
	"github.com/atotto/clipboard"

	"github.com/telgren/codeview/internal/log"
)

// Clipboard abstracts the system clipboard so tests can observe copies
// without touching the real one.
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard writes through to the OS clipboard.
type systemClipboard struct{}

func (systemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// CopyCommand copies the selected text, or the current line when no
// selection is active. The command is permitted only when the widget
// is selectable or editable; otherwise it is silently skipped, which
// is how display-only views suppress content exfiltration via keys.
type CopyCommand struct {
	MotionBase
}

func (c *CopyCommand) Execute(m *Model) ExecuteResult {
	if !m.selectable && !m.editable {
		return Skipped
	}

	text := m.SelectedText()
	if text == "" {
		text = m.content[m.cursorRow]
	}
	if text == "" {
		return Skipped
	}

	if err := m.clip.Copy(text); err != nil {
		log.ErrorErr(log.CatEditor, "clipboard copy failed", err)
		return Skipped
	}
	return Executed
}

func (c *CopyCommand) Keys() []string {
	return []string{"<ctrl+c>"}
}

func (c *CopyCommand) ID() string {
	return "clipboard.copy"
}
