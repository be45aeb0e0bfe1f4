package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

// newTestModel creates a focused editor with the given content.
func newTestModel(content string) Model {
	m := New(Config{})
	m.SetValue(content)
	m.Focus()
	return m
}

// recordingClipboard captures copies instead of touching the system
// clipboard.
type recordingClipboard struct {
	copied []string
	err    error
}

func (c *recordingClipboard) Copy(text string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

// typeString feeds each rune of s to the model as a key press.
func typeString(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// press feeds a single special key to the model.
func press(m Model, key tea.KeyType) Model {
	m, _ = m.Update(tea.KeyMsg{Type: key})
	return m
}
