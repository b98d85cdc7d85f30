package buffer

// ChangeSource identifies what produced a change.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceUndo
	ChangeSourceRedo
)

func (s ChangeSource) String() string {
	switch s {
	case ChangeSourceLocal:
		return "local"
	case ChangeSourceUndo:
		return "undo"
	case ChangeSourceRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// SelectionState captures normalized selection state at a point in time.
type SelectionState struct {
	Active bool
	Range  Range
}

// AppliedEdit describes one effective edit in a change transaction.
//
// RangeBefore is expressed against the document as it was right before this
// edit was applied (after any earlier edits of the same transaction).
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// Change is a normalized, versioned mutation payload.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    Pos
	CursorAfter     Pos
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	AppliedEdits    []AppliedEdit
}

type changeBuilder struct {
	source          ChangeSource
	versionBefore   uint64
	cursorBefore    Pos
	selectionBefore SelectionState
	appliedEdits    []AppliedEdit
}

// LastChange returns the most recent effective text change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	return out
}

func selectionStateFromInternal(sel selectionState) SelectionState {
	if !sel.active {
		return SelectionState{}
	}
	r := NormalizeRange(Range{Start: sel.anchor, End: sel.end})
	if r.IsEmpty() {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: r}
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:          source,
		versionBefore:   b.version,
		cursorBefore:    b.cursor,
		selectionBefore: selectionStateFromInternal(b.sel),
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	edit.RangeBefore = NormalizeRange(edit.RangeBefore)
	edit.RangeAfter = NormalizeRange(edit.RangeAfter)
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

// commitTextChange bumps both versions and records cb as the last change.
func (b *Buffer) commitTextChange(cb changeBuilder) {
	b.version++
	b.textVersion++
	b.lastChange = Change{
		Source:          cb.source,
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    cb.cursorBefore,
		CursorAfter:     b.cursor,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  selectionStateFromInternal(b.sel),
		AppliedEdits:    append([]AppliedEdit(nil), cb.appliedEdits...),
	}
	b.hasLastChange = true
}

// replacementAppliedEdit describes the move from before to after as a single
// edit covering only the lines that differ.
func replacementAppliedEdit(before, after [][]string) (AppliedEdit, bool) {
	n, m := len(before), len(after)

	prefix := 0
	for prefix < n && prefix < m && linesEqual(before[prefix], after[prefix]) {
		prefix++
	}
	if prefix == n && n == m {
		return AppliedEdit{}, false
	}
	suffix := 0
	for suffix < n-prefix && suffix < m-prefix && linesEqual(before[n-1-suffix], after[m-1-suffix]) {
		suffix++
	}

	removed := before[prefix : n-suffix]
	added := after[prefix : m-suffix]

	var edit AppliedEdit
	switch {
	case len(removed) > 0 && len(added) > 0:
		edit.RangeBefore = Range{
			Start: Pos{Row: prefix},
			End:   Pos{Row: n - suffix - 1, GraphemeCol: len(before[n-suffix-1])},
		}
		edit.RangeAfter = Range{
			Start: Pos{Row: prefix},
			End:   Pos{Row: m - suffix - 1, GraphemeCol: len(after[m-suffix-1])},
		}
		edit.InsertText = joinLines(added)
		edit.DeletedText = joinLines(removed)
	case len(added) > 0:
		// Pure line insertion.
		if suffix > 0 {
			at := Pos{Row: prefix}
			edit.RangeBefore = Range{Start: at, End: at}
			edit.RangeAfter = Range{Start: at, End: Pos{Row: prefix + len(added)}}
			edit.InsertText = joinLines(added) + "\n"
		} else {
			at := Pos{Row: prefix - 1, GraphemeCol: len(before[prefix-1])}
			edit.RangeBefore = Range{Start: at, End: at}
			edit.RangeAfter = Range{
				Start: at,
				End:   Pos{Row: m - 1, GraphemeCol: len(after[m-1])},
			}
			edit.InsertText = "\n" + joinLines(added)
		}
	default:
		// Pure line deletion.
		if suffix > 0 {
			at := Pos{Row: prefix}
			edit.RangeBefore = Range{Start: at, End: Pos{Row: n - suffix}}
			edit.RangeAfter = Range{Start: at, End: at}
			edit.DeletedText = joinLines(removed) + "\n"
		} else {
			at := Pos{Row: prefix - 1, GraphemeCol: len(before[prefix-1])}
			edit.RangeBefore = Range{
				Start: at,
				End:   Pos{Row: n - 1, GraphemeCol: len(before[n-1])},
			}
			edit.RangeAfter = Range{Start: at, End: at}
			edit.DeletedText = "\n" + joinLines(removed)
		}
	}
	return edit, true
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
