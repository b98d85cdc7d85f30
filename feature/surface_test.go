package feature_test

import (
	"slices"

	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/event"
	"github.com/iw2rmb/lineguard/feature"
	"github.com/iw2rmb/lineguard/internal/logging"
)

// fakeSurface records what features do to the editor.
type fakeSurface struct {
	offset     int
	lineCount  int
	lineHeight int
	padding    editor.Padding

	undoCalls int
	undoErr   error
	onUndo    func()

	content     map[int]editor.ContentChangeListener
	mouse       map[int]editor.MouseListener
	nextID      int
	collections []*fakeCollection
}

func newFakeSurface(lineCount, offset int) *fakeSurface {
	return &fakeSurface{
		offset:     offset,
		lineCount:  lineCount,
		lineHeight: 1,
		content:    make(map[int]editor.ContentChangeListener),
		mouse:      make(map[int]editor.MouseListener),
	}
}

func (s *fakeSurface) LineNumberOffset() int   { return s.offset }
func (s *fakeSurface) LineCount() int          { return s.lineCount }
func (s *fakeSurface) Padding() editor.Padding { return s.padding }
func (s *fakeSurface) LineHeight() int         { return s.lineHeight }

func (s *fakeSurface) TopForLineNumber(line int) int {
	line = min(max(line, 1), s.lineCount)
	return (line - 1) * s.lineHeight
}

func (s *fakeSurface) Undo() error {
	s.undoCalls++
	if s.onUndo != nil {
		s.onUndo()
	}
	return s.undoErr
}

func (s *fakeSurface) OnDidChangeModelContent(fn editor.ContentChangeListener) editor.Disposable {
	s.nextID++
	id := s.nextID
	s.content[id] = fn
	return disposeFunc(func() { delete(s.content, id) })
}

func (s *fakeSurface) OnMouseDown(fn editor.MouseListener) editor.Disposable {
	s.nextID++
	id := s.nextID
	s.mouse[id] = fn
	return disposeFunc(func() { delete(s.mouse, id) })
}

func (s *fakeSurface) CreateDecorationsCollection(decos []editor.Decoration) editor.DecorationsCollection {
	c := &fakeCollection{decos: slices.Clone(decos)}
	s.collections = append(s.collections, c)
	return c
}

// fire delivers ev to every content listener and returns the first error.
func (s *fakeSurface) fire(ev editor.ContentChangeEvent) error {
	for _, fn := range s.content {
		if err := fn(ev); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeSurface) click(target editor.MouseTarget) {
	for _, fn := range s.mouse {
		fn(editor.MouseEvent{Target: target})
	}
}

// liveLines returns the start lines of every uncleared decoration.
func (s *fakeSurface) liveLines() []int {
	var out []int
	for _, c := range s.collections {
		if c.cleared {
			continue
		}
		for _, d := range c.decos {
			out = append(out, d.Range.StartLineNumber)
		}
	}
	return out
}

func (s *fakeSurface) liveCollections() int {
	n := 0
	for _, c := range s.collections {
		if !c.cleared {
			n++
		}
	}
	return n
}

type fakeCollection struct {
	decos   []editor.Decoration
	cleared bool
}

func (c *fakeCollection) Clear() { c.cleared = true }

func (c *fakeCollection) Len() int {
	if c.cleared {
		return 0
	}
	return len(c.decos)
}

func (c *fakeCollection) Ranges() []editor.LineRange {
	var out []editor.LineRange
	for _, d := range c.decos {
		out = append(out, d.Range)
	}
	return out
}

type disposeFunc func()

func (f disposeFunc) Dispose() { f() }

func newEnv(s feature.Surface) feature.Env {
	return feature.Env{Surface: s, Channel: event.New(), Logger: logging.Discard()}
}

// change builds a single-change transaction over lines start..end.
func change(start, end int, text string) editor.ContentChangeEvent {
	return editor.ContentChangeEvent{Changes: []editor.ContentChange{{
		Range: editor.LineRange{StartLineNumber: start, StartColumn: 1, EndLineNumber: end, EndColumn: 1},
		Text:  text,
	}}}
}
