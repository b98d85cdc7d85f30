package editor

import "sync"

// LineRange is a 1-based range in internal line/column coordinates.
// Columns count grapheme clusters; EndColumn is exclusive.
type LineRange struct {
	StartLineNumber int
	StartColumn     int
	EndLineNumber   int
	EndColumn       int
}

// WholeLine returns the collapsed range at the start of line.
func WholeLine(line int) LineRange {
	return LineRange{StartLineNumber: line, StartColumn: 1, EndLineNumber: line, EndColumn: 1}
}

// ContainsLine reports whether line lies within [StartLineNumber, EndLineNumber].
func (r LineRange) ContainsLine(line int) bool {
	return line >= r.StartLineNumber && line <= r.EndLineNumber
}

// ContentChange is one edit of a content-change transaction. Range is
// relative to the document right before this change was applied.
type ContentChange struct {
	Range       LineRange
	RangeLength int
	Text        string
}

// ContentChangeEvent reports one transaction of document edits.
type ContentChangeEvent struct {
	Changes   []ContentChange
	VersionID uint64
	IsUndoing bool
	IsRedoing bool
}

// ContentChangeListener observes content changes. A returned error is
// propagated to the caller of the mutating operation.
type ContentChangeListener func(ContentChangeEvent) error

type MouseTargetType int

const (
	MouseTargetContent MouseTargetType = iota
	MouseTargetGutter
	MouseTargetEmpty
)

func (t MouseTargetType) String() string {
	switch t {
	case MouseTargetContent:
		return "content"
	case MouseTargetGutter:
		return "gutter"
	case MouseTargetEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// MouseTarget describes what a pointer event hit.
type MouseTarget struct {
	Type  MouseTargetType
	Range LineRange
	// AfterLastLine is set when the pointer is below the last line.
	AfterLastLine bool
}

// MouseEvent is a pointer-down notification.
type MouseEvent struct {
	Target MouseTarget
	// X and Y are viewport-local cell coordinates of the pointer.
	X, Y  int
	Shift bool
}

type MouseListener func(MouseEvent)

// Disposable releases a subscription. Dispose is idempotent.
type Disposable interface {
	Dispose()
}

type disposer struct {
	once sync.Once
	fn   func()
}

func (d *disposer) Dispose() { d.once.Do(d.fn) }

func newDisposable(fn func()) Disposable { return &disposer{fn: fn} }
