package editor

import "github.com/iw2rmb/lineguard/buffer"

// TextModel exposes the document of an Editor in 1-based line numbers.
type TextModel struct {
	e *Editor
}

func (m *TextModel) LineCount() int { return m.e.buf.LineCount() }

// LineContent returns the text of the 1-based line, or "" when out of range.
func (m *TextModel) LineContent(line int) string { return m.e.buf.Line(line - 1) }

func (m *TextModel) Value() string { return m.e.buf.Text() }

// VersionID increments with every text change.
func (m *TextModel) VersionID() uint64 { return m.e.buf.TextVersion() }

func (m *TextModel) CanUndo() bool { return m.e.buf.CanUndo() }

func (m *TextModel) CanRedo() bool { return m.e.buf.CanRedo() }

// Undo reverts the most recent transaction and reports it to content
// listeners with IsUndoing set.
func (m *TextModel) Undo() error {
	if m.e.disposed {
		return ErrDisposed
	}
	if !m.e.buf.CanUndo() {
		return ErrNothingToUndo
	}
	return m.e.mutate(func(b *buffer.Buffer) { b.Undo() })
}

// Redo re-applies the most recently undone transaction and reports it with
// IsRedoing set.
func (m *TextModel) Redo() error {
	if m.e.disposed {
		return ErrDisposed
	}
	if !m.e.buf.CanRedo() {
		return ErrNothingToRedo
	}
	return m.e.mutate(func(b *buffer.Buffer) { b.Redo() })
}
