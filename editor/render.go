package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/lineguard/buffer"
	"github.com/iw2rmb/lineguard/internal/grapheme"
)

type cellKind uint8

const (
	cellText cellKind = iota
	cellSelected
	cellCursor
)

// lineStyles resolves the decoration classes that apply to one line.
type lineStyles struct {
	whole    lipgloss.Style
	hasWhole bool
	text     lipgloss.Style
}

func (e *Editor) stylesForLine(decos []DecorationOptions) lineStyles {
	ls := lineStyles{text: e.style.Text}
	for _, d := range decos {
		if d.IsWholeLine {
			if st, ok := e.style.classStyle(d.ClassName); ok {
				ls.whole = st.Inherit(ls.whole)
				ls.hasWhole = true
			}
		}
	}
	if ls.hasWhole {
		ls.text = ls.whole.Inherit(ls.text)
	}
	for _, d := range decos {
		if st, ok := e.style.classStyle(d.InlineClassName); ok {
			ls.text = st.Inherit(ls.text)
		}
	}
	return ls
}

// Render draws the whole document, padding included. The Bubble Tea Model
// feeds this into its viewport.
func (e *Editor) Render() string {
	rows := e.visualRows()
	byLine := e.decorationsByLine()
	gw := e.gutterWidth()
	cw := e.contentWidth()
	cursor := e.buf.Cursor()
	sel, selOK := e.buf.Selection()

	out := make([]string, 0, e.ContentHeight())
	for range e.opts.Padding.Top {
		out = append(out, "")
	}

	for _, ref := range rows {
		line := ref.row + 1
		ls := e.stylesForLine(byLine[line])

		var sb strings.Builder
		if gw > 0 {
			sb.WriteString(e.renderGutter(ref, gw, cursor.Row))
		}

		text, width := e.renderSegment(ref, ls, cursor, sel, selOK)
		sb.WriteString(text)
		if ls.hasWhole && cw > width {
			sb.WriteString(ls.whole.Render(strings.Repeat(" ", cw-width)))
		}
		out = append(out, sb.String())

		for range e.opts.LineHeight - 1 {
			out = append(out, "")
		}
	}

	for range e.opts.Padding.Bottom {
		out = append(out, "")
	}
	if e.opts.ScrollBeyondLastLine && e.height > 1 {
		for range e.height - 1 {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

func (e *Editor) renderGutter(ref visualRow, gw, cursorRow int) string {
	digits := gw - 1
	if ref.index > 0 {
		return e.style.Gutter.Render(strings.Repeat(" ", gw))
	}
	st := e.style.LineNum
	if e.focused && ref.row == cursorRow {
		st = e.style.LineNumActive
	}
	num := fmt.Sprintf("%*d", digits, ref.row+1+e.opts.LineNumberOffset)
	return st.Render(num) + e.style.Gutter.Render(" ")
}

// renderSegment draws the clusters of one visual row and reports their width
// in cells. Without word wrap, text past the content width is clipped.
func (e *Editor) renderSegment(ref visualRow, ls lineStyles, cursor buffer.Pos, sel buffer.Range, selOK bool) (string, int) {
	clusters := e.buf.LineClusters(ref.row)
	limit := e.contentWidth()
	clip := !e.opts.WordWrap && limit > 0

	var (
		sb      strings.Builder
		run     strings.Builder
		runKind cellKind
		col     int
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(e.styleFor(runKind, ls).Render(run.String()))
		run.Reset()
	}
	emit := func(kind cellKind, s string) {
		if kind != runKind {
			flush()
			runKind = kind
		}
		run.WriteString(s)
	}

	for i := ref.seg.start; i < ref.seg.end; i++ {
		c := clusters[i]
		w := grapheme.Width(c, col, e.opts.TabSize)
		if clip && col+w > limit {
			break
		}
		text := c
		if c == "\t" {
			text = strings.Repeat(" ", w)
		}
		pos := buffer.Pos{Row: ref.row, GraphemeCol: i}
		kind := cellText
		switch {
		case e.focused && pos == cursor:
			kind = cellCursor
		case selOK && inRange(sel, pos):
			kind = cellSelected
		}
		emit(kind, text)
		col += w
	}

	lastSeg := ref.seg.end == len(clusters)
	if e.focused && lastSeg && cursor.Row == ref.row && cursor.GraphemeCol == len(clusters) && (!clip || col < limit) {
		emit(cellCursor, " ")
		col++
	}
	flush()
	return sb.String(), col
}

func (e *Editor) styleFor(kind cellKind, ls lineStyles) lipgloss.Style {
	switch kind {
	case cellCursor:
		return e.style.Cursor.Inherit(ls.text)
	case cellSelected:
		return e.style.Selection.Inherit(ls.text)
	default:
		return ls.text
	}
}

func inRange(r buffer.Range, p buffer.Pos) bool {
	return buffer.ComparePos(r.Start, p) <= 0 && buffer.ComparePos(p, r.End) < 0
}
