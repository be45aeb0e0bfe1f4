package editor

// Range is a half-open span of grapheme offsets over the editor's full
// content (lines joined with "\n", each newline counting as one
// grapheme). Start == End is a caret with no extent.
type Range struct {
	Start int
	End   int
}

// IsCaret reports whether the range has no extent.
func (r Range) IsCaret() bool {
	return r.Start == r.End
}

// Len returns the number of graphemes covered.
func (r Range) Len() int {
	return r.End - r.Start
}

// normalize orders the endpoints and clamps them to [0, limit].
func (r Range) normalize(limit int) Range {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	r.Start = max(min(r.Start, limit), 0)
	r.End = max(min(r.End, limit), 0)
	return r
}

// Position is a cursor location in the content.
// Col is a grapheme index within the row, not a byte offset.
type Position struct {
	Row int
	Col int
}

// positionToOffset converts a row/column to a global grapheme offset.
func (m Model) positionToOffset(p Position) int {
	offset := 0
	for row := 0; row < p.Row && row < len(m.content); row++ {
		offset += GraphemeCount(m.content[row]) + 1 // +1 for newline
	}
	if p.Row >= 0 && p.Row < len(m.content) {
		offset += min(p.Col, GraphemeCount(m.content[p.Row]))
	}
	return offset
}

// offsetToPosition converts a global grapheme offset to a row/column.
// Offsets past the end clamp to the last position.
func (m Model) offsetToPosition(offset int) Position {
	if offset <= 0 {
		return Position{}
	}
	remaining := offset
	for row, line := range m.content {
		count := GraphemeCount(line)
		if remaining <= count {
			return Position{Row: row, Col: remaining}
		}
		remaining -= count + 1 // consume the newline
	}
	last := len(m.content) - 1
	return Position{Row: last, Col: GraphemeCount(m.content[last])}
}

// contentGraphemeCount returns the grapheme length of the full joined
// content, counting each newline as one grapheme.
func (m Model) contentGraphemeCount() int {
	count := 0
	for i, line := range m.content {
		count += GraphemeCount(line)
		if i < len(m.content)-1 {
			count++
		}
	}
	return count
}

// Selection returns the current selection. With no active extent this
// is the caret position as an empty range.
func (m Model) Selection() Range {
	if m.selection != nil {
		return *m.selection
	}
	caret := m.positionToOffset(Position{Row: m.cursorRow, Col: m.cursorCol})
	return Range{Start: caret, End: caret}
}

// SetSelection replaces the selection. Out-of-range offsets clamp to
// the content bounds; a caret range collapses to plain cursor state.
// Selection is honored even when the widget is neither editable nor
// selectable, since programmatic callers own their scope.
func (m *Model) SetSelection(r Range) {
	r = r.normalize(m.contentGraphemeCount())

	end := m.offsetToPosition(r.End)
	m.cursorRow = end.Row
	m.cursorCol = end.Col
	m.preferredCol = end.Col

	if r.IsCaret() {
		m.selection = nil
	} else {
		m.selection = &r
	}
}

// ClearSelection collapses any extent to the cursor position.
func (m *Model) ClearSelection() {
	m.selection = nil
}

// HasSelection reports whether a non-empty extent is active.
func (m Model) HasSelection() bool {
	return m.selection != nil
}

// SelectedText returns the text covered by the active selection.
func (m Model) SelectedText() string {
	if m.selection == nil {
		return ""
	}
	start := m.offsetToPosition(m.selection.Start)
	end := m.offsetToPosition(m.selection.End)

	if start.Row == end.Row {
		return SliceByGraphemes(m.content[start.Row], start.Col, end.Col)
	}

	parts := make([]string, 0, end.Row-start.Row+1)
	first := m.content[start.Row]
	parts = append(parts, SliceByGraphemes(first, start.Col, GraphemeCount(first)))
	for row := start.Row + 1; row < end.Row; row++ {
		parts = append(parts, m.content[row])
	}
	parts = append(parts, SliceByGraphemes(m.content[end.Row], 0, end.Col))

	joined := parts[0]
	for _, p := range parts[1:] {
		joined += "\n" + p
	}
	return joined
}

// ScrollToSelection adjusts the viewport so the selection start row is
// visible. With no extent it scrolls to the cursor.
func (m *Model) ScrollToSelection() {
	target := Position{Row: m.cursorRow, Col: m.cursorCol}
	if m.selection != nil {
		target = m.offsetToPosition(m.selection.Start)
	}

	if m.height <= 0 {
		m.scrollOffset = 0
		return
	}

	displayRow := 0
	for i := 0; i < target.Row && i < len(m.content); i++ {
		displayRow += m.displayLinesForLine(m.content[i])
	}

	if displayRow < m.scrollOffset {
		m.scrollOffset = displayRow
	}
	if displayRow >= m.scrollOffset+m.height {
		m.scrollOffset = displayRow - m.height + 1
	}
	m.scrollOffset = max(m.scrollOffset, 0)
}

// selectionRangeForRow returns the selected column span on a row as
// grapheme indices with endCol exclusive. Rows outside the selection
// report inSelection false.
func (m Model) selectionRangeForRow(row int) (startCol, endCol int, inSelection bool) {
	if m.selection == nil || row >= len(m.content) {
		return 0, 0, false
	}

	start := m.offsetToPosition(m.selection.Start)
	end := m.offsetToPosition(m.selection.End)
	if row < start.Row || row > end.Row {
		return 0, 0, false
	}

	lineGraphemeCount := GraphemeCount(m.content[row])
	switch {
	case row == start.Row && row == end.Row:
		return start.Col, min(end.Col, lineGraphemeCount), true
	case row == start.Row:
		return start.Col, lineGraphemeCount, true
	case row == end.Row:
		return 0, min(end.Col, lineGraphemeCount), true
	default:
		return 0, lineGraphemeCount, true
	}
}
