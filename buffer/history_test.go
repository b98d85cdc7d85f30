package buffer

import "testing"

func TestBuffer_UndoRedo_BasicTyping(t *testing.T) {
	b := New("", Options{})
	if b.CanUndo() || b.CanRedo() {
		t.Fatalf("expected empty history")
	}

	b.InsertText("a")
	if !b.CanUndo() {
		t.Fatalf("expected CanUndo=true")
	}

	v := b.Version()
	if ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
	if !b.CanRedo() {
		t.Fatalf("expected CanRedo=true")
	}

	if ok := b.Redo(); !ok {
		t.Fatalf("expected Redo=true")
	}
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{GraphemeCol: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_UndoRedo_EmptyStacks_NoMutation(t *testing.T) {
	b := New("hi", Options{})
	v := b.Version()

	if b.Undo() {
		t.Fatalf("expected Undo=false")
	}
	if b.Redo() {
		t.Fatalf("expected Redo=false")
	}
	if b.Version() != v {
		t.Fatalf("version changed on empty history")
	}
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no change")
	}
}

func TestBuffer_Undo_ChangeCarriesSourceAndMinimalRange(t *testing.T) {
	b := New("a\nb\nc", Options{})
	b.SetCursor(Pos{Row: 1, GraphemeCol: 1})
	b.InsertText("X")

	b.Undo()
	if got, want := b.Text(), "a\nb\nc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected change")
	}
	if got, want := ch.Source, ChangeSourceUndo; got != want {
		t.Fatalf("source=%v, want %v", got, want)
	}
	if got, want := len(ch.AppliedEdits), 1; got != want {
		t.Fatalf("applied edits=%d, want %d", got, want)
	}
	edit := ch.AppliedEdits[0]
	if got, want := edit.RangeBefore, (Range{Start: Pos{Row: 1}, End: Pos{Row: 1, GraphemeCol: 2}}); got != want {
		t.Fatalf("range before=%v, want %v", got, want)
	}
	if got, want := edit.InsertText, "b"; got != want {
		t.Fatalf("insert text=%q, want %q", got, want)
	}

	b.Redo()
	ch, _ = b.LastChange()
	if got, want := ch.Source, ChangeSourceRedo; got != want {
		t.Fatalf("source=%v, want %v", got, want)
	}
}

func TestBuffer_HistoryLimit(t *testing.T) {
	b := New("", Options{HistoryLimit: 2})
	b.InsertText("a")
	b.InsertText("b")
	b.InsertText("c")

	if !b.Undo() || !b.Undo() {
		t.Fatalf("expected two undo steps")
	}
	if b.Undo() {
		t.Fatalf("expected history capped at 2")
	}
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	disabled := New("", Options{HistoryLimit: -1})
	disabled.InsertText("a")
	if disabled.CanUndo() {
		t.Fatalf("expected history disabled")
	}
}

func TestBuffer_NewEditClearsRedo(t *testing.T) {
	b := New("", Options{})
	b.InsertText("a")
	b.Undo()
	b.InsertText("b")
	if b.CanRedo() {
		t.Fatalf("expected redo stack cleared")
	}
}

func TestReplacementAppliedEdit(t *testing.T) {
	cases := []struct {
		name       string
		before     string
		after      string
		wantBefore Range
		wantAfter  Range
		insert     string
		deleted    string
	}{
		{
			name:       "replace middle line",
			before:     "a\nb\nc",
			after:      "a\nX\nY\nc",
			wantBefore: Range{Start: Pos{Row: 1}, End: Pos{Row: 1, GraphemeCol: 1}},
			wantAfter:  Range{Start: Pos{Row: 1}, End: Pos{Row: 2, GraphemeCol: 1}},
			insert:     "X\nY",
			deleted:    "b",
		},
		{
			name:       "insert line before suffix",
			before:     "a\nc",
			after:      "a\nb\nc",
			wantBefore: Range{Start: Pos{Row: 1}, End: Pos{Row: 1}},
			wantAfter:  Range{Start: Pos{Row: 1}, End: Pos{Row: 2}},
			insert:     "b\n",
		},
		{
			name:       "append line",
			before:     "a",
			after:      "a\nb",
			wantBefore: Range{Start: Pos{GraphemeCol: 1}, End: Pos{GraphemeCol: 1}},
			wantAfter:  Range{Start: Pos{GraphemeCol: 1}, End: Pos{Row: 1, GraphemeCol: 1}},
			insert:     "\nb",
		},
		{
			name:       "delete middle line",
			before:     "a\nb\nc",
			after:      "a\nc",
			wantBefore: Range{Start: Pos{Row: 1}, End: Pos{Row: 2}},
			wantAfter:  Range{Start: Pos{Row: 1}, End: Pos{Row: 1}},
			deleted:    "b\n",
		},
		{
			name:       "delete trailing line",
			before:     "a\nb",
			after:      "a",
			wantBefore: Range{Start: Pos{GraphemeCol: 1}, End: Pos{Row: 1, GraphemeCol: 1}},
			wantAfter:  Range{Start: Pos{GraphemeCol: 1}, End: Pos{GraphemeCol: 1}},
			deleted:    "\nb",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			edit, ok := replacementAppliedEdit(splitLines(tc.before), splitLines(tc.after))
			if !ok {
				t.Fatalf("expected an edit")
			}
			if edit.RangeBefore != tc.wantBefore {
				t.Fatalf("range before=%v, want %v", edit.RangeBefore, tc.wantBefore)
			}
			if edit.RangeAfter != tc.wantAfter {
				t.Fatalf("range after=%v, want %v", edit.RangeAfter, tc.wantAfter)
			}
			if edit.InsertText != tc.insert || edit.DeletedText != tc.deleted {
				t.Fatalf("text=%q/%q, want %q/%q", edit.InsertText, edit.DeletedText, tc.insert, tc.deleted)
			}

			// Replaying the edit on the before-state must yield the after-state.
			b := New(tc.before, Options{})
			b.Apply(TextEdit{Range: edit.RangeBefore, Text: edit.InsertText})
			if got := b.Text(); got != tc.after {
				t.Fatalf("replayed text=%q, want %q", got, tc.after)
			}
		})
	}

	if _, ok := replacementAppliedEdit(splitLines("same"), splitLines("same")); ok {
		t.Fatalf("expected no edit for identical documents")
	}
}
