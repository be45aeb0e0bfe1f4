package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/telgren/codeview/internal/syntax"
)

// ANSI codes for cursor and selection
// Cursor uses reverse video (bold highlight), selection uses a dimmer background
const (
	cursorOn  = "\x1b[7m"  // reverse video on (bold, high contrast)
	cursorOff = "\x1b[27m" // reverse video off (not full reset)
	// Selection uses a subtle background color (gray) to distinguish from cursor
	// 48;5;238 = 256-color background (dark gray)
	// 38;5;255 = 256-color foreground (bright white for contrast)
	selectionOn  = "\x1b[48;5;238;38;5;255m" // dark gray background, white text
	selectionOff = "\x1b[49;39m"             // reset background and foreground
)

var placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// View renders the editor content with cursor and selection overlays.
// This implements the tea.Model View interface.
func (m Model) View() string {
	return m.applyInset(m.renderContent())
}

// applyInset pads the rendered block with the configured inset.
func (m Model) applyInset(content string) string {
	if m.insetX <= 0 && m.insetY <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	pad := strings.Repeat(" ", m.insetX)
	for i, line := range lines {
		lines[i] = pad + line
	}

	var out []string
	for i := 0; i < m.insetY; i++ {
		out = append(out, "")
	}
	out = append(out, lines...)
	for i := 0; i < m.insetY; i++ {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// renderContent renders the text content with cursor, handling soft-wrap.
func (m Model) renderContent() string {
	// Handle empty content with placeholder
	if m.isEmpty() {
		return m.renderEmpty()
	}

	// Compute scroll offset in display rows (ensures cursor is visible)
	scrollDisplayRow := m.computeDisplayScrollOffset()

	// Build visible display lines with wrapping
	var displayLines []string
	currentDisplayRow := 0

	hasSelection := m.selection != nil

	for logicalRow, line := range m.content {
		wrappedLines, graphemeStarts := m.wrapLineWithInfo(line)

		for wrapIdx, wrappedLine := range wrappedLines {
			// Skip lines before scroll offset
			if currentDisplayRow < scrollDisplayRow {
				currentDisplayRow++
				continue
			}

			// Stop if we've filled the visible area
			if m.height > 0 && len(displayLines) >= m.height {
				break
			}

			// Check if cursor is on this display line
			isCursorDisplayLine := m.focused && logicalRow == m.cursorRow && wrapIdx == m.cursorWrapLine()

			// Calculate cursor grapheme index within this wrapped segment.
			// cursorCol is a grapheme index in the full line; subtract the
			// segment's starting grapheme index.
			segmentStartGrapheme := 0
			if wrapIdx < len(graphemeStarts) {
				segmentStartGrapheme = graphemeStarts[wrapIdx]
			}
			colInWrap := max(m.cursorCol-segmentStartGrapheme, 0)

			if hasSelection {
				renderedLine := m.renderWrappedLineWithSelection(wrappedLine, logicalRow, colInWrap, isCursorDisplayLine, segmentStartGrapheme)
				displayLines = append(displayLines, renderedLine)
			} else if isCursorDisplayLine {
				// Syntax highlighting as the base layer, cursor on top.
				displayLines = append(displayLines, m.renderLineWithSyntaxAndCursor(wrappedLine, logicalRow, colInWrap, segmentStartGrapheme))
			} else {
				if wrappedLine == "" {
					displayLines = append(displayLines, " ")
				} else {
					displayLines = append(displayLines, m.applySyntaxToSegment(wrappedLine, logicalRow, segmentStartGrapheme))
				}
			}
			currentDisplayRow++
		}

		// Stop if we've filled the visible area
		if m.height > 0 && len(displayLines) >= m.height {
			break
		}
	}

	return strings.Join(displayLines, "\n")
}

// renderWrappedLineWithSelection renders a wrapped line segment with selection
// highlighting. Layer order: syntax (base) → selection (background) → cursor
// (reverse video). segmentStartGrapheme is the grapheme index where this
// wrapped segment begins in the full line.
func (m Model) renderWrappedLineWithSelection(wrappedLine string, logicalRow int, cursorColInWrap int, isCursorDisplayLine bool, segmentStartGrapheme int) string {
	// Selection range for the full logical row (grapheme indices)
	startCol, endCol, inSelection := m.selectionRangeForRow(logicalRow)

	if !inSelection {
		if isCursorDisplayLine {
			return m.renderLineWithSyntaxAndCursor(wrappedLine, logicalRow, cursorColInWrap, segmentStartGrapheme)
		}
		if wrappedLine == "" {
			return " "
		}
		return m.applySyntaxToSegment(wrappedLine, logicalRow, segmentStartGrapheme)
	}

	segmentGraphemeCount := GraphemeCount(wrappedLine)

	// Map selection to this wrapped segment (grapheme indices relative to segment start)
	segmentSelStart := max(startCol-segmentStartGrapheme, 0)
	segmentSelEnd := min(endCol-segmentStartGrapheme, segmentGraphemeCount)

	if segmentSelEnd <= 0 || segmentSelStart >= segmentGraphemeCount {
		// Selection doesn't overlap this segment
		if isCursorDisplayLine {
			return m.renderLineWithSyntaxAndCursor(wrappedLine, logicalRow, cursorColInWrap, segmentStartGrapheme)
		}
		if wrappedLine == "" {
			return " "
		}
		return m.applySyntaxToSegment(wrappedLine, logicalRow, segmentStartGrapheme)
	}

	// Empty wrapped line with selection
	if wrappedLine == "" {
		if isCursorDisplayLine {
			return cursorOn + " " + cursorOff
		}
		return selectionOn + " " + selectionOff
	}

	byteStyles := m.segmentByteStyles(wrappedLine, logicalRow, segmentStartGrapheme)

	// Build output by iterating through graphemes and batching consecutive selections
	var result strings.Builder
	var selectionBuffer strings.Builder
	inSelectionRun := false
	iter := NewGraphemeIterator(wrappedLine)

	for iter.Next() {
		graphemeIdx := iter.Index()
		cluster := iter.Cluster()
		bytePos := iter.BytePos()

		isSelected := graphemeIdx >= segmentSelStart && graphemeIdx < segmentSelEnd
		isCursor := isCursorDisplayLine && graphemeIdx == cursorColInWrap

		switch {
		case isCursor:
			flushSelection(&result, &selectionBuffer, &inSelectionRun)
			// Cursor takes precedence, reverse video
			result.WriteString(cursorOn)
			result.WriteString(cluster)
			result.WriteString(cursorOff)
		case isSelected:
			selectionBuffer.WriteString(cluster)
			inSelectionRun = true
		default:
			flushSelection(&result, &selectionBuffer, &inSelectionRun)
			if style, hasStyle := byteStyles[bytePos]; hasStyle {
				result.WriteString(style.Render(cluster))
			} else {
				result.WriteString(cluster)
			}
		}
	}

	flushSelection(&result, &selectionBuffer, &inSelectionRun)

	if isCursorDisplayLine && cursorColInWrap >= segmentGraphemeCount {
		result.WriteString(cursorOn + " " + cursorOff)
	}

	return result.String()
}

func flushSelection(result, buffer *strings.Builder, inRun *bool) {
	if !*inRun {
		return
	}
	result.WriteString(selectionOn)
	result.WriteString(buffer.String())
	result.WriteString(selectionOff)
	buffer.Reset()
	*inRun = false
}

// wrapLineWithInfo wraps a line and returns both the wrapped segments and
// the starting grapheme index of each segment. The line is broken at grapheme
// boundaries so emoji and other multi-byte clusters are never split; m.width
// is in display columns (terminal cells), not bytes or graphemes.
func (m Model) wrapLineWithInfo(line string) ([]string, []int) {
	if m.width <= 0 || len(line) == 0 {
		return []string{line}, []int{0}
	}

	var wrapped []string
	var graphemeStarts []int
	var current strings.Builder
	currentWidth := 0
	segmentStartGrapheme := 0
	currentGrapheme := 0

	iter := NewGraphemeIterator(line)
	for iter.Next() {
		clusterWidth := GraphemeDisplayWidth(iter.Cluster())
		// If adding this grapheme would exceed width, wrap
		if currentWidth+clusterWidth > m.width && currentWidth > 0 {
			wrapped = append(wrapped, current.String())
			graphemeStarts = append(graphemeStarts, segmentStartGrapheme)
			current.Reset()
			currentWidth = 0
			segmentStartGrapheme = currentGrapheme
		}
		current.WriteString(iter.Cluster())
		currentWidth += clusterWidth
		currentGrapheme++
	}

	if current.Len() > 0 || len(wrapped) == 0 {
		wrapped = append(wrapped, current.String())
		graphemeStarts = append(graphemeStarts, segmentStartGrapheme)
	}

	return wrapped, graphemeStarts
}

// renderEmpty renders the view when content is empty.
func (m Model) renderEmpty() string {
	if m.focused {
		return cursorOn + " " + cursorOff
	}

	if m.config.Placeholder != "" {
		placeholder := m.config.Placeholder
		if m.width > 0 {
			placeholder = TruncateToDisplayWidth(placeholder, m.width)
		}
		return placeholderStyle.Render(placeholder)
	}

	return ""
}

// renderLineWithCursor renders a single line with the cursor at the specified
// column, without syntax highlighting. Used as fallback.
// col is a grapheme index, not a byte offset.
func (m Model) renderLineWithCursor(line string, col int) string {
	if line == "" {
		return cursorOn + " " + cursorOff
	}

	if col >= GraphemeCount(line) {
		// Cursor is past the last character
		return line + cursorOn + " " + cursorOff
	}

	var result strings.Builder
	iter := NewGraphemeIterator(line)
	for iter.Next() {
		if iter.Index() == col {
			result.WriteString(cursorOn)
			result.WriteString(iter.Cluster())
			result.WriteString(cursorOff)
		} else {
			result.WriteString(iter.Cluster())
		}
	}
	return result.String()
}

// renderLineWithSyntaxAndCursor renders a line with syntax highlighting as
// the base layer and the cursor on top. Reverse video overrides token colors.
// cursorColInWrap is a grapheme index within the wrapped segment.
func (m Model) renderLineWithSyntaxAndCursor(segment string, logicalRow int, cursorColInWrap int, segmentStartGrapheme int) string {
	if segment == "" {
		return cursorOn + " " + cursorOff
	}

	byteStyles := m.segmentByteStyles(segment, logicalRow, segmentStartGrapheme)
	if byteStyles == nil {
		return m.renderLineWithCursor(segment, cursorColInWrap)
	}

	segmentGraphemeCount := GraphemeCount(segment)

	var result strings.Builder
	iter := NewGraphemeIterator(segment)

	for iter.Next() {
		graphemeIdx := iter.Index()
		cluster := iter.Cluster()
		bytePos := iter.BytePos()

		if graphemeIdx == cursorColInWrap {
			result.WriteString(cursorOn)
			result.WriteString(cluster)
			result.WriteString(cursorOff)
		} else if style, hasStyle := byteStyles[bytePos]; hasStyle {
			result.WriteString(style.Render(cluster))
		} else {
			result.WriteString(cluster)
		}
	}

	// Cursor at end of line
	if cursorColInWrap >= segmentGraphemeCount {
		result.WriteString(cursorOn + " " + cursorOff)
	}

	return result.String()
}

// segmentByteStyles builds a byte-position to style map for a wrapped
// segment from the store's line tokens. Returns nil when no tokens apply.
func (m Model) segmentByteStyles(segment string, logicalRow int, segmentStartGrapheme int) map[int]*lipgloss.Style {
	tokens := m.store.LineTokens(logicalRow)
	if len(tokens) == 0 {
		return nil
	}

	fullLine := ""
	if logicalRow < len(m.content) {
		fullLine = m.content[logicalRow]
	}
	if fullLine == "" {
		return nil
	}

	segmentStartByte := GraphemeToByteOffset(fullLine, segmentStartGrapheme)
	segmentTokens := mapTokensToSegment(tokens, segmentStartByte, len(segment))
	if len(segmentTokens) == 0 {
		return nil
	}

	byteStyles := make(map[int]*lipgloss.Style)
	for _, tok := range segmentTokens {
		for bytePos := tok.Start; bytePos < tok.End && bytePos < len(segment); bytePos++ {
			style := tok.Style
			byteStyles[bytePos] = &style
		}
	}
	return byteStyles
}

// isEmpty returns true if the content is empty (single empty line).
func (m Model) isEmpty() bool {
	return len(m.content) == 1 && m.content[0] == ""
}

// ============================================================================
// Soft-wrap helpers
// ============================================================================

// displayLinesForLine returns how many display lines a logical line takes
// when wrapped. A line of width 0 or an empty line takes 1 display line.
// Uses display width so emoji and CJK characters count correctly.
func (m Model) displayLinesForLine(line string) int {
	if m.width <= 0 || len(line) == 0 {
		return 1
	}
	displayWidth := StringDisplayWidth(line)
	if displayWidth == 0 {
		return 1
	}
	// Ceiling division
	return (displayWidth + m.width - 1) / m.width
}

// TotalDisplayLines returns the total number of display lines for all
// content, accounting for soft-wrap at the current width.
func (m Model) TotalDisplayLines() int {
	total := 0
	for _, line := range m.content {
		total += m.displayLinesForLine(line)
	}
	return total
}

// cursorDisplayRow returns which display row the cursor is on (0-indexed),
// accounting for wrapped lines above the cursor row.
func (m Model) cursorDisplayRow() int {
	displayRow := 0
	for i := 0; i < m.cursorRow && i < len(m.content); i++ {
		displayRow += m.displayLinesForLine(m.content[i])
	}
	displayRow += m.cursorWrapLine()
	return displayRow
}

// cursorWrapLine returns which wrapped line within the current row the
// cursor is on (0-indexed). cursorCol is a grapheme index, so the display
// column is the sum of display widths of the graphemes before it.
func (m Model) cursorWrapLine() int {
	if m.width <= 0 {
		return 0
	}
	if m.cursorRow >= len(m.content) {
		return 0
	}
	line := m.content[m.cursorRow]

	displayCol := 0
	idx := 0
	iter := NewGraphemeIterator(line)
	for iter.Next() {
		if idx >= m.cursorCol {
			break
		}
		displayCol += GraphemeDisplayWidth(iter.Cluster())
		idx++
	}

	return displayCol / m.width
}

// computeDisplayScrollOffset returns the scroll offset in display rows that
// keeps the cursor visible. Pure; does not modify the model.
func (m Model) computeDisplayScrollOffset() int {
	if m.height <= 0 {
		return 0
	}

	cursorDisplayRow := m.cursorDisplayRow()
	scrollOffset := min(m.scrollOffset, cursorDisplayRow)

	if cursorDisplayRow >= scrollOffset+m.height {
		scrollOffset = cursorDisplayRow - m.height + 1
	}

	maxOffset := max(m.TotalDisplayLines()-m.height, 0)
	scrollOffset = min(scrollOffset, maxOffset)
	return max(scrollOffset, 0)
}

// ensureCursorVisible adjusts scrollOffset so the cursor stays visible.
// scrollOffset is stored in display rows to support soft-wrap scrolling.
func (m *Model) ensureCursorVisible() {
	if m.height <= 0 {
		m.scrollOffset = 0
		return
	}

	cursorDisplayRow := m.cursorDisplayRow()
	m.scrollOffset = min(m.scrollOffset, cursorDisplayRow)

	if cursorDisplayRow >= m.scrollOffset+m.height {
		m.scrollOffset = cursorDisplayRow - m.height + 1
	}

	maxOffset := max(m.TotalDisplayLines()-m.height, 0)
	m.scrollOffset = min(m.scrollOffset, maxOffset)
	m.scrollOffset = max(m.scrollOffset, 0)
}

// ScrollOffset returns the current scroll offset (first visible display row).
func (m Model) ScrollOffset() int {
	return m.scrollOffset
}

// SetScrollOffset sets the scroll offset (first visible display row).
func (m *Model) SetScrollOffset(offset int) {
	m.scrollOffset = offset
	m.ensureCursorVisible()
}

// mapTokensToSegment maps tokens from logical-line byte coordinates to a
// wrapped segment's coordinates, dropping tokens that don't overlap.
func mapTokensToSegment(tokens []syntax.Token, wrapStartByte, segmentLen int) []syntax.Token {
	if len(tokens) == 0 || segmentLen == 0 {
		return nil
	}

	wrapEndByte := wrapStartByte + segmentLen
	var result []syntax.Token

	for _, tok := range tokens {
		if tok.End <= wrapStartByte || tok.Start >= wrapEndByte {
			continue
		}
		result = append(result, syntax.Token{
			Start: max(tok.Start-wrapStartByte, 0),
			End:   min(tok.End-wrapStartByte, segmentLen),
			Style: tok.Style,
		})
	}

	return result
}

// applySyntaxToSegment applies syntax highlighting to a wrapped segment by
// mapping the logical line's tokens onto the segment's byte range.
func (m Model) applySyntaxToSegment(segment string, logicalRow int, segmentStartGrapheme int) string {
	if segment == "" {
		return segment
	}

	tokens := m.store.LineTokens(logicalRow)
	if len(tokens) == 0 {
		return segment
	}

	fullLine := ""
	if logicalRow < len(m.content) {
		fullLine = m.content[logicalRow]
	}
	if fullLine == "" {
		return segment
	}

	segmentStartByte := GraphemeToByteOffset(fullLine, segmentStartGrapheme)
	segmentTokens := mapTokensToSegment(tokens, segmentStartByte, len(segment))
	if len(segmentTokens) == 0 {
		return segment
	}

	var result strings.Builder
	pos := 0

	for _, tok := range segmentTokens {
		// Gap before token renders plain
		if tok.Start > pos {
			result.WriteString(segment[pos:tok.Start])
		}
		endPos := min(tok.End, len(segment))
		result.WriteString(tok.Style.Render(segment[tok.Start:endPos]))
		pos = endPos
	}

	if pos < len(segment) {
		result.WriteString(segment[pos:])
	}

	return result.String()
}
