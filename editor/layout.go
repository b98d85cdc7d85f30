package editor

import (
	"strconv"

	"github.com/iw2rmb/lineguard/internal/grapheme"
)

// segment is a half-open grapheme column span of one logical line that is
// drawn on a single visual row.
type segment struct {
	start int
	end   int
}

type visualRow struct {
	row   int // 0-based logical row
	index int // segment index within the row
	seg   segment
}

func gutterDigits(lineCount, offset int) int {
	w := len(strconv.Itoa(lineCount + offset))
	if lo := len(strconv.Itoa(1 + offset)); lo > w {
		w = lo
	}
	return w
}

// gutterWidth is the number of cells used by line numbers, including one
// separating space.
func (e *Editor) gutterWidth() int {
	if e.opts.HideLineNumbers {
		return 0
	}
	return gutterDigits(e.buf.LineCount(), e.opts.LineNumberOffset) + 1
}

func (e *Editor) contentWidth() int {
	return max(e.width-e.gutterWidth(), 0)
}

// segmentsFor splits a line into visual rows. Without word wrap, or before
// the first Layout, a line is always one row.
func (e *Editor) segmentsFor(clusters []string) []segment {
	width := e.contentWidth()
	if !e.opts.WordWrap || width <= 0 || len(clusters) == 0 {
		return []segment{{start: 0, end: len(clusters)}}
	}

	var segs []segment
	start, col := 0, 0
	for i, c := range clusters {
		w := grapheme.Width(c, col, e.opts.TabSize)
		if col > 0 && col+w > width {
			segs = append(segs, segment{start: start, end: i})
			start, col = i, 0
			w = grapheme.Width(c, 0, e.opts.TabSize)
		}
		col += w
	}
	return append(segs, segment{start: start, end: len(clusters)})
}

func (e *Editor) visualRows() []visualRow {
	rows := make([]visualRow, 0, e.buf.LineCount())
	for row := 0; row < e.buf.LineCount(); row++ {
		for i, seg := range e.segmentsFor(e.buf.LineClusters(row)) {
			rows = append(rows, visualRow{row: row, index: i, seg: seg})
		}
	}
	return rows
}

// TopForLineNumber returns the row offset of the top of line, measured from
// the top of the first line (padding excluded). line is clamped into
// [1, LineCount].
func (e *Editor) TopForLineNumber(line int) int {
	line = min(max(line, 1), e.buf.LineCount())
	rows := 0
	for row := 0; row < line-1; row++ {
		rows += len(e.segmentsFor(e.buf.LineClusters(row)))
	}
	return rows * e.opts.LineHeight
}

// ContentHeight returns the rendered height of the document in rows,
// padding included.
func (e *Editor) ContentHeight() int {
	return e.opts.Padding.Top + len(e.visualRows())*e.opts.LineHeight + e.opts.Padding.Bottom
}

// cursorTop returns the content row of the cursor's visual row.
func (e *Editor) cursorTop() int {
	cur := e.buf.Cursor()
	top := e.opts.Padding.Top
	for _, ref := range e.visualRows() {
		if ref.row == cur.Row && (cur.GraphemeCol < ref.seg.end || cur.GraphemeCol == ref.seg.start) {
			return top
		}
		if ref.row > cur.Row {
			break
		}
		top += e.opts.LineHeight
	}
	return max(top-e.opts.LineHeight, e.opts.Padding.Top)
}

func (e *Editor) hitTest(x, y int) MouseTarget {
	rows := e.visualRows()
	lh := e.opts.LineHeight

	vr := 0
	if y > e.opts.Padding.Top {
		vr = (y - e.opts.Padding.Top) / lh
	}

	if vr >= len(rows) {
		last := e.buf.LineCount()
		col := len(e.buf.LineClusters(last-1)) + 1
		return MouseTarget{
			Type:          MouseTargetEmpty,
			Range:         LineRange{StartLineNumber: last, StartColumn: col, EndLineNumber: last, EndColumn: col},
			AfterLastLine: true,
		}
	}

	ref := rows[vr]
	line := ref.row + 1
	gw := e.gutterWidth()
	if x < gw {
		col := ref.seg.start + 1
		return MouseTarget{
			Type:  MouseTargetGutter,
			Range: LineRange{StartLineNumber: line, StartColumn: col, EndLineNumber: line, EndColumn: col},
		}
	}

	clusters := e.buf.LineClusters(ref.row)[ref.seg.start:ref.seg.end]
	col := ref.seg.start + colForCell(clusters, x-gw, e.opts.TabSize) + 1
	return MouseTarget{
		Type:  MouseTargetContent,
		Range: LineRange{StartLineNumber: line, StartColumn: col, EndLineNumber: line, EndColumn: col},
	}
}

// colForCell maps a cell offset within clusters to a grapheme index.
func colForCell(clusters []string, cell, tabSize int) int {
	if cell <= 0 {
		return 0
	}
	acc := 0
	for i, c := range clusters {
		w := grapheme.Width(c, acc, tabSize)
		if cell < acc+w {
			return i
		}
		acc += w
	}
	return len(clusters)
}
