package editor

// ============================================================================
// Motion Commands
// ============================================================================

// MoveLeftCommand moves the cursor one grapheme left, wrapping to the
// end of the previous line.
type MoveLeftCommand struct {
	MotionBase
}

func (c *MoveLeftCommand) Execute(m *Model) ExecuteResult {
	m.selection = nil
	if m.cursorCol > 0 {
		m.cursorCol--
	} else if m.cursorRow > 0 {
		m.cursorRow--
		m.cursorCol = GraphemeCount(m.content[m.cursorRow])
	} else {
		return Skipped
	}
	m.preferredCol = m.cursorCol
	return Executed
}

func (c *MoveLeftCommand) Keys() []string {
	return []string{"<left>"}
}

func (c *MoveLeftCommand) ID() string {
	return "move.left"
}

// MoveRightCommand moves the cursor one grapheme right, wrapping to
// the start of the next line.
type MoveRightCommand struct {
	MotionBase
}

func (c *MoveRightCommand) Execute(m *Model) ExecuteResult {
	m.selection = nil
	if m.cursorCol < GraphemeCount(m.content[m.cursorRow]) {
		m.cursorCol++
	} else if m.cursorRow < len(m.content)-1 {
		m.cursorRow++
		m.cursorCol = 0
	} else {
		return Skipped
	}
	m.preferredCol = m.cursorCol
	return Executed
}

func (c *MoveRightCommand) Keys() []string {
	return []string{"<right>"}
}

func (c *MoveRightCommand) ID() string {
	return "move.right"
}

// MoveUpCommand moves the cursor up a line, tracking the preferred
// column across short lines.
type MoveUpCommand struct {
	MotionBase
}

func (c *MoveUpCommand) Execute(m *Model) ExecuteResult {
	if m.cursorRow == 0 {
		return Skipped
	}
	m.selection = nil
	m.cursorRow--
	m.cursorCol = min(m.preferredCol, GraphemeCount(m.content[m.cursorRow]))
	return Executed
}

func (c *MoveUpCommand) Keys() []string {
	return []string{"<up>"}
}

func (c *MoveUpCommand) ID() string {
	return "move.up"
}

// MoveDownCommand moves the cursor down a line, tracking the preferred
// column across short lines.
type MoveDownCommand struct {
	MotionBase
}

func (c *MoveDownCommand) Execute(m *Model) ExecuteResult {
	if m.cursorRow >= len(m.content)-1 {
		return Skipped
	}
	m.selection = nil
	m.cursorRow++
	m.cursorCol = min(m.preferredCol, GraphemeCount(m.content[m.cursorRow]))
	return Executed
}

func (c *MoveDownCommand) Keys() []string {
	return []string{"<down>"}
}

func (c *MoveDownCommand) ID() string {
	return "move.down"
}

// MoveToLineStartCommand jumps to column 0.
type MoveToLineStartCommand struct {
	MotionBase
}

func (c *MoveToLineStartCommand) Execute(m *Model) ExecuteResult {
	if m.cursorCol == 0 {
		return Skipped
	}
	m.selection = nil
	m.cursorCol = 0
	m.preferredCol = 0
	return Executed
}

func (c *MoveToLineStartCommand) Keys() []string {
	return []string{"<home>", "<ctrl+a>"}
}

func (c *MoveToLineStartCommand) ID() string {
	return "move.line_start"
}

// MoveToLineEndCommand jumps past the last grapheme of the line.
type MoveToLineEndCommand struct {
	MotionBase
}

func (c *MoveToLineEndCommand) Execute(m *Model) ExecuteResult {
	count := GraphemeCount(m.content[m.cursorRow])
	if m.cursorCol == count {
		return Skipped
	}
	m.selection = nil
	m.cursorCol = count
	m.preferredCol = count
	return Executed
}

func (c *MoveToLineEndCommand) Keys() []string {
	return []string{"<end>", "<ctrl+e>"}
}

func (c *MoveToLineEndCommand) ID() string {
	return "move.line_end"
}
