package buffer

import (
	"strings"

	"github.com/iw2rmb/lineguard/internal/grapheme"
)

// InsertText inserts text at the cursor, or replaces the active selection.
func (b *Buffer) InsertText(s string) {
	r, ok := b.Selection()
	if !ok {
		if s == "" {
			return
		}
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.replaceAndCommit(r, s)
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if r, ok := b.Selection(); ok {
		b.replaceAndCommit(r, "")
		return
	}

	row, col := b.cursor.Row, b.cursor.GraphemeCol
	switch {
	case row == 0 && col == 0:
		return
	case col > 0:
		b.replaceAndCommit(Range{
			Start: Pos{Row: row, GraphemeCol: col - 1},
			End:   b.cursor,
		}, "")
	default:
		// Join with previous line (delete the newline).
		b.replaceAndCommit(Range{
			Start: Pos{Row: row - 1, GraphemeCol: len(b.lines[row-1])},
			End:   b.cursor,
		}, "")
	}
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if r, ok := b.Selection(); ok {
		b.replaceAndCommit(r, "")
		return
	}

	row, col := b.cursor.Row, b.cursor.GraphemeCol
	lastRow := len(b.lines) - 1
	switch {
	case row == lastRow && col == len(b.lines[lastRow]):
		return
	case col < len(b.lines[row]):
		b.replaceAndCommit(Range{
			Start: b.cursor,
			End:   Pos{Row: row, GraphemeCol: col + 1},
		}, "")
	default:
		b.replaceAndCommit(Range{
			Start: b.cursor,
			End:   Pos{Row: row + 1},
		}, "")
	}
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	b.replaceAndCommit(r, "")
}

// SetText replaces the whole document as one undoable change. Only the lines
// that differ are reported in the resulting Change.
func (b *Buffer) SetText(text string) {
	next := splitLines(text)
	applied, ok := replacementAppliedEdit(b.lines, next)
	if !ok {
		return
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)
	b.lines = next
	b.cursor = b.clampPos(b.cursor)
	b.sel = selectionState{}
	b.recordUndo(prev)
	change.addAppliedEdit(applied)
	b.commitTextChange(change)
}

func (b *Buffer) replaceAndCommit(r Range, text string) {
	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	nextCursor, applied, changed := b.replaceRange(r, text)
	if !changed {
		return
	}

	b.cursor = nextCursor
	b.sel = selectionState{}
	b.recordUndo(prev)
	change.addAppliedEdit(applied)
	b.commitTextChange(change)
}

func (b *Buffer) replaceRange(r Range, text string) (nextCursor Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	if r.IsEmpty() && text == "" {
		return b.cursor, AppliedEdit{}, false
	}

	startRow, startCol := r.Start.Row, r.Start.GraphemeCol
	endRow, endCol := r.End.Row, r.End.GraphemeCol
	deletedText := textForLinesRange(b.lines, r)
	if deletedText == text {
		return b.cursor, AppliedEdit{}, false
	}

	prefix := b.lines[startRow][:startCol]
	suffix := b.lines[endRow][endCol:]

	parts := strings.Split(text, "\n")
	repl := make([][]string, 0, len(parts))
	for i, p := range parts {
		var line []string
		if i == 0 {
			line = append(line, prefix...)
		}
		line = append(line, grapheme.Split(p)...)
		if i == len(parts)-1 {
			nextCursor = Pos{Row: startRow + i, GraphemeCol: len(line)}
			line = append(line, suffix...)
		}
		repl = append(repl, line)
	}

	out := make([][]string, 0, len(b.lines)-(endRow-startRow)+len(repl))
	out = append(out, b.lines[:startRow]...)
	out = append(out, repl...)
	out = append(out, b.lines[endRow+1:]...)

	b.lines = out
	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: nextCursor},
		InsertText:  text,
		DeletedText: deletedText,
	}
	return nextCursor, applied, true
}

func textForLinesRange(lines [][]string, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}

	startRow, startCol := r.Start.Row, r.Start.GraphemeCol
	endRow, endCol := r.End.Row, r.End.GraphemeCol

	if startRow == endRow {
		return grapheme.Join(lines[startRow][startCol:endCol])
	}

	var sb strings.Builder
	for row := startRow; row <= endRow; row++ {
		if row > startRow {
			sb.WriteByte('\n')
		}
		partStart, partEnd := 0, len(lines[row])
		if row == startRow {
			partStart = startCol
		}
		if row == endRow {
			partEnd = endCol
		}
		sb.WriteString(grapheme.Join(lines[row][partStart:partEnd]))
	}
	return sb.String()
}
