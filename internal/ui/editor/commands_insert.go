package editor

import "strings"

// ============================================================================
// Insert Commands
// ============================================================================

// InsertTextCommand inserts text at the cursor. Handles character
// input, paste, and auto-pair insertion (via cursorBack, which leaves
// the cursor that many graphemes before the end of the inserted text).
type InsertTextCommand struct {
	EditBase
	text       string
	cursorBack int
}

// Execute inserts the text at the cursor position.
func (c *InsertTextCommand) Execute(m *Model) ExecuteResult {
	text := c.text
	if m.config.CharLimit > 0 {
		currentLen := m.totalCharCount()
		if currentLen+GraphemeCount(text) > m.config.CharLimit {
			remaining := m.config.CharLimit - currentLen
			if remaining <= 0 {
				return Skipped
			}
			text = SliceByGraphemes(text, 0, remaining)
		}
	}
	if text == "" {
		return Skipped
	}

	row := min(m.cursorRow, len(m.content)-1)
	line := m.content[row]
	col := min(m.cursorCol, GraphemeCount(line))

	if !strings.Contains(text, "\n") {
		m.content[row] = InsertAtGrapheme(line, col, text)
		m.cursorCol = col + GraphemeCount(text)
	} else {
		// Multi-line paste: split the current line around the cursor
		// and splice the pasted lines in between.
		lines := strings.Split(text, "\n")
		before := SliceByGraphemes(line, 0, col)
		after := SliceByGraphemes(line, col, GraphemeCount(line))

		newContent := make([]string, 0, len(m.content)+len(lines)-1)
		newContent = append(newContent, m.content[:row]...)
		newContent = append(newContent, before+lines[0])
		newContent = append(newContent, lines[1:len(lines)-1]...)
		newContent = append(newContent, lines[len(lines)-1]+after)
		newContent = append(newContent, m.content[row+1:]...)
		m.content = newContent

		m.cursorRow = row + len(lines) - 1
		m.cursorCol = GraphemeCount(lines[len(lines)-1])
	}

	if c.cursorBack > 0 {
		m.cursorCol = max(m.cursorCol-c.cursorBack, 0)
	}
	m.preferredCol = m.cursorCol
	return Executed
}

// Keys is a placeholder; InsertTextCommand is created for any
// printable character rather than dispatched from the registry.
func (c *InsertTextCommand) Keys() []string {
	return []string{"<char>"}
}

func (c *InsertTextCommand) ID() string {
	return "insert.text"
}

// NewlineCommand splits the line at the cursor (Enter key). With smart
// indent enabled, the new line inherits the previous line's leading
// whitespace.
type NewlineCommand struct {
	EditBase
}

// Execute splits the current line at the cursor position.
func (c *NewlineCommand) Execute(m *Model) ExecuteResult {
	row := min(m.cursorRow, len(m.content)-1)
	line := m.content[row]
	col := min(m.cursorCol, GraphemeCount(line))

	before := SliceByGraphemes(line, 0, col)
	after := SliceByGraphemes(line, col, GraphemeCount(line))

	indent := ""
	if m.smartIndent {
		indent = leadingWhitespace(before)
	}

	newContent := make([]string, 0, len(m.content)+1)
	newContent = append(newContent, m.content[:row]...)
	newContent = append(newContent, before, indent+after)
	newContent = append(newContent, m.content[row+1:]...)
	m.content = newContent

	m.cursorRow = row + 1
	m.cursorCol = GraphemeCount(indent)
	m.preferredCol = m.cursorCol
	return Executed
}

func (c *NewlineCommand) Keys() []string {
	return []string{"<enter>"}
}

func (c *NewlineCommand) ID() string {
	return "insert.newline"
}

// TabCommand inserts the configured indent text: a literal tab by
// default, or N spaces in soft-tab mode.
type TabCommand struct {
	EditBase
	insertCmd *InsertTextCommand
}

// Execute inserts one indent unit at the cursor.
func (c *TabCommand) Execute(m *Model) ExecuteResult {
	c.insertCmd = &InsertTextCommand{text: m.indent.Text()}
	return c.insertCmd.Execute(m)
}

func (c *TabCommand) Keys() []string {
	return []string{"<tab>"}
}

func (c *TabCommand) ID() string {
	return "insert.tab"
}

// SpaceCommand inserts a space character. Registered separately
// because Bubble Tea sends space as KeySpace, not KeyRunes.
type SpaceCommand struct {
	EditBase
	insertCmd *InsertTextCommand
}

// Execute inserts a space character.
func (c *SpaceCommand) Execute(m *Model) ExecuteResult {
	c.insertCmd = &InsertTextCommand{text: " "}
	return c.insertCmd.Execute(m)
}

func (c *SpaceCommand) Keys() []string {
	return []string{"<space>"}
}

func (c *SpaceCommand) ID() string {
	return "insert.space"
}
