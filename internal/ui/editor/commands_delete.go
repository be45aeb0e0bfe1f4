package editor

// ============================================================================
// Delete Commands
// ============================================================================

// BackspaceCommand deletes the grapheme cluster before the cursor.
// At line start it joins with the previous line. When the deleted
// opener has its auto-pair closer directly under the cursor, both
// halves go at once.
type BackspaceCommand struct {
	EditBase
}

// Execute deletes the grapheme before the cursor or joins lines.
func (c *BackspaceCommand) Execute(m *Model) ExecuteResult {
	row, col := m.cursorRow, m.cursorCol

	if row == 0 && col == 0 {
		return Skipped
	}

	if col > 0 {
		line := m.content[row]
		deleted := GraphemeAt(line, col-1)

		end := col
		// Empty pair under cursor: remove opener and closer together.
		if closer, ok := m.autoPairs[deleted]; ok && GraphemeAt(line, col) == closer {
			end = col + 1
		}

		m.content[row] = DeleteGraphemeRange(line, col-1, end)
		m.cursorCol = col - 1
	} else {
		// At start of line - join with previous line.
		prevLine := m.content[row-1]
		newCursorCol := GraphemeCount(prevLine)
		m.content[row-1] = prevLine + m.content[row]

		newContent := make([]string, 0, len(m.content)-1)
		newContent = append(newContent, m.content[:row]...)
		newContent = append(newContent, m.content[row+1:]...)
		m.content = newContent

		m.cursorRow = row - 1
		m.cursorCol = newCursorCol
	}

	m.preferredCol = m.cursorCol
	return Executed
}

func (c *BackspaceCommand) Keys() []string {
	return []string{"<backspace>"}
}

func (c *BackspaceCommand) ID() string {
	return "delete.backspace"
}

// DeleteKeyCommand deletes the grapheme cluster at the cursor.
// At line end it joins the next line up.
type DeleteKeyCommand struct {
	EditBase
}

// Execute deletes the grapheme under the cursor or joins lines.
func (c *DeleteKeyCommand) Execute(m *Model) ExecuteResult {
	row, col := m.cursorRow, m.cursorCol
	line := m.content[row]
	count := GraphemeCount(line)

	if col < count {
		m.content[row] = DeleteGraphemeRange(line, col, col+1)
		return Executed
	}

	// At end of line - join the next line up.
	if row+1 >= len(m.content) {
		return Skipped
	}
	m.content[row] = line + m.content[row+1]

	newContent := make([]string, 0, len(m.content)-1)
	newContent = append(newContent, m.content[:row+1]...)
	newContent = append(newContent, m.content[row+2:]...)
	m.content = newContent
	return Executed
}

func (c *DeleteKeyCommand) Keys() []string {
	return []string{"<delete>"}
}

func (c *DeleteKeyCommand) ID() string {
	return "delete.at_cursor"
}

// KillToLineEndCommand deletes from the cursor to the end of the line.
type KillToLineEndCommand struct {
	EditBase
}

func (c *KillToLineEndCommand) Execute(m *Model) ExecuteResult {
	line := m.content[m.cursorRow]
	count := GraphemeCount(line)
	if m.cursorCol >= count {
		return Skipped
	}
	m.content[m.cursorRow] = SliceByGraphemes(line, 0, m.cursorCol)
	return Executed
}

func (c *KillToLineEndCommand) Keys() []string {
	return []string{"<ctrl+k>"}
}

func (c *KillToLineEndCommand) ID() string {
	return "delete.to_line_end"
}

// KillToLineStartCommand deletes from the start of the line to the cursor.
type KillToLineStartCommand struct {
	EditBase
}

func (c *KillToLineStartCommand) Execute(m *Model) ExecuteResult {
	if m.cursorCol == 0 {
		return Skipped
	}
	line := m.content[m.cursorRow]
	m.content[m.cursorRow] = SliceByGraphemes(line, m.cursorCol, GraphemeCount(line))
	m.cursorCol = 0
	m.preferredCol = 0
	return Executed
}

func (c *KillToLineStartCommand) Keys() []string {
	return []string{"<ctrl+u>"}
}

func (c *KillToLineStartCommand) ID() string {
	return "delete.to_line_start"
}
