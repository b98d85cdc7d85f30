package editor

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/iw2rmb/lineguard/buffer"
	"github.com/iw2rmb/lineguard/internal/grapheme"
	"github.com/iw2rmb/lineguard/internal/logging"
)

var (
	// ErrDisposed is returned by mutations on a disposed Editor.
	ErrDisposed = errors.New("editor: disposed")
	// ErrNothingToUndo is returned when the undo history is empty.
	ErrNothingToUndo = errors.New("editor: nothing to undo")
	// ErrNothingToRedo is returned when the redo history is empty.
	ErrNothingToRedo = errors.New("editor: nothing to redo")
)

type contentEntry struct {
	id uint64
	fn ContentChangeListener
}

type mouseEntry struct {
	id uint64
	fn MouseListener
}

// Editor is one editor instance: document, subscriptions, decorations,
// options and themes. It is not safe for concurrent use.
type Editor struct {
	opts  Options
	buf   *buffer.Buffer
	model *TextModel
	log   *log.Logger

	style     Style
	themeBase *Style
	keys      KeyMap
	themes    map[string]ThemeData
	theme     string

	contentListeners []contentEntry
	mouseListeners   []mouseEntry
	decorations      []*decorationsCollection
	nextID           uint64

	focused  bool
	width    int
	height   int
	revision uint64
	disposed bool
}

func New(cfg Config) *Editor {
	style := DefaultStyle()
	if cfg.Style != nil {
		style = *cfg.Style
	}
	keys := cfg.KeyMap
	if isZeroKeyMap(keys) {
		keys = DefaultKeyMap()
	}

	e := &Editor{
		opts:   normalizeOptions(cfg.Options),
		buf:    buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		log:    logging.OrDefault(cfg.Logger),
		style:  style,
		keys:   keys,
		themes: make(map[string]ThemeData),
	}
	e.model = &TextModel{e: e}
	return e
}

// Model returns the text model of the editor.
func (e *Editor) Model() *TextModel { return e.model }

func (e *Editor) Value() string { return e.buf.Text() }

func (e *Editor) LineCount() int { return e.buf.LineCount() }

// LineContent returns the text of the 1-based line, or "" when out of range.
func (e *Editor) LineContent(line int) string { return e.buf.Line(line - 1) }

// Undo reverts the most recent transaction.
func (e *Editor) Undo() error { return e.model.Undo() }

// Redo re-applies the most recently undone transaction.
func (e *Editor) Redo() error { return e.model.Redo() }

// Revision changes whenever anything that affects rendering changes.
func (e *Editor) Revision() uint64 { return e.buf.Version() + e.revision }

func (e *Editor) Cursor() buffer.Pos { return e.buf.Cursor() }

func (e *Editor) SetCursor(p buffer.Pos) { e.buf.SetCursor(p) }

func (e *Editor) Move(m buffer.Move) { e.buf.Move(m) }

func (e *Editor) Selection() (buffer.Range, bool) { return e.buf.Selection() }

func (e *Editor) SetSelection(r buffer.Range) { e.buf.SetSelection(r) }

// Apply applies edits as one transaction.
func (e *Editor) Apply(edits ...buffer.TextEdit) error {
	return e.mutate(func(b *buffer.Buffer) { b.Apply(edits...) })
}

func (e *Editor) InsertText(s string) error {
	return e.mutate(func(b *buffer.Buffer) { b.InsertText(s) })
}

func (e *Editor) InsertNewline() error {
	return e.mutate(func(b *buffer.Buffer) { b.InsertNewline() })
}

func (e *Editor) DeleteBackward() error {
	return e.mutate(func(b *buffer.Buffer) { b.DeleteBackward() })
}

func (e *Editor) DeleteForward() error {
	return e.mutate(func(b *buffer.Buffer) { b.DeleteForward() })
}

// SetValue replaces the document as one undoable transaction.
func (e *Editor) SetValue(text string) error {
	return e.mutate(func(b *buffer.Buffer) { b.SetText(text) })
}

// OnDidChangeModelContent subscribes fn to content changes.
func (e *Editor) OnDidChangeModelContent(fn ContentChangeListener) Disposable {
	e.nextID++
	id := e.nextID
	e.contentListeners = append(e.contentListeners, contentEntry{id: id, fn: fn})
	return newDisposable(func() {
		for i, l := range e.contentListeners {
			if l.id == id {
				e.contentListeners = append(e.contentListeners[:i:i], e.contentListeners[i+1:]...)
				return
			}
		}
	})
}

// OnMouseDown subscribes fn to pointer-down events.
func (e *Editor) OnMouseDown(fn MouseListener) Disposable {
	e.nextID++
	id := e.nextID
	e.mouseListeners = append(e.mouseListeners, mouseEntry{id: id, fn: fn})
	return newDisposable(func() {
		for i, l := range e.mouseListeners {
			if l.id == id {
				e.mouseListeners = append(e.mouseListeners[:i:i], e.mouseListeners[i+1:]...)
				return
			}
		}
	})
}

// MouseDown hit-tests a pointer press at viewport column x and content row y
// (rows counted from the top of the rendered document, scroll included) and
// notifies mouse listeners.
func (e *Editor) MouseDown(x, y int, shift bool) MouseEvent {
	ev := MouseEvent{Target: e.hitTest(x, y), X: x, Y: y, Shift: shift}
	if e.disposed {
		return ev
	}
	listeners := append([]mouseEntry(nil), e.mouseListeners...)
	for _, l := range listeners {
		l.fn(ev)
	}
	return ev
}

func (e *Editor) Options() Options { return e.opts }

// UpdateOptions applies fn to a copy of the options and installs the result.
func (e *Editor) UpdateOptions(fn func(*Options)) {
	next := e.opts
	fn(&next)
	e.opts = normalizeOptions(next)
	e.revision++
}

func (e *Editor) Language() string { return e.opts.Language }

func (e *Editor) SetLanguage(id string) {
	if id == e.opts.Language {
		return
	}
	e.opts.Language = id
	e.revision++
	e.log.Debug("language changed", logging.FieldLanguage, id)
}

func (e *Editor) LineNumberOffset() int { return e.opts.LineNumberOffset }

func (e *Editor) Padding() Padding { return e.opts.Padding }

func (e *Editor) LineHeight() int { return e.opts.LineHeight }

func (e *Editor) TabSize() int { return e.opts.TabSize }

func (e *Editor) WordWrap() bool { return e.opts.WordWrap }

func (e *Editor) ReadOnly() bool { return e.opts.ReadOnly }

func (e *Editor) KeyMap() KeyMap { return e.keys }

func (e *Editor) Focus() {
	if !e.focused {
		e.focused = true
		e.revision++
	}
}

func (e *Editor) Blur() {
	if e.focused {
		e.focused = false
		e.revision++
	}
}

func (e *Editor) Focused() bool { return e.focused }

// Layout sets the size of the editor viewport in cells.
func (e *Editor) Layout(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height
	e.revision++
}

func (e *Editor) Size() (width, height int) { return e.width, e.height }

// Dispose drops all subscriptions and decorations. Later mutations fail with
// ErrDisposed.
func (e *Editor) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.contentListeners = nil
	e.mouseListeners = nil
	for _, c := range e.decorations {
		c.decorations = nil
		c.cleared = true
	}
	e.decorations = nil
	e.revision++
}

func (e *Editor) Disposed() bool { return e.disposed }

func (e *Editor) mutate(fn func(*buffer.Buffer)) error {
	if e.disposed {
		return ErrDisposed
	}
	before := e.buf.TextVersion()
	fn(e.buf)
	if e.buf.TextVersion() == before {
		return nil
	}
	ch, ok := e.buf.LastChange()
	if !ok {
		return nil
	}
	return e.fireContentChange(ch)
}

func (e *Editor) fireContentChange(ch buffer.Change) error {
	ev := ContentChangeEvent{
		Changes:   make([]ContentChange, 0, len(ch.AppliedEdits)),
		VersionID: e.buf.TextVersion(),
		IsUndoing: ch.Source == buffer.ChangeSourceUndo,
		IsRedoing: ch.Source == buffer.ChangeSourceRedo,
	}
	for _, edit := range ch.AppliedEdits {
		ev.Changes = append(ev.Changes, ContentChange{
			Range:       lineRangeFromBuffer(edit.RangeBefore),
			RangeLength: grapheme.Count(edit.DeletedText),
			Text:        edit.InsertText,
		})
	}

	var errs []error
	listeners := append([]contentEntry(nil), e.contentListeners...)
	for _, l := range listeners {
		if err := l.fn(ev); err != nil {
			e.log.Error("content change listener failed",
				logging.FieldDocVer, ev.VersionID,
				logging.FieldError, err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("content change %d: %w", ev.VersionID, errors.Join(errs...))
	}
	return nil
}

func lineRangeFromBuffer(r buffer.Range) LineRange {
	return LineRange{
		StartLineNumber: r.Start.Row + 1,
		StartColumn:     r.Start.GraphemeCol + 1,
		EndLineNumber:   r.End.Row + 1,
		EndColumn:       r.End.GraphemeCol + 1,
	}
}
