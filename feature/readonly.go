package feature

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/internal/logging"
)

// ReadOnlyLines protects a set of lines from edits. Any transaction that
// touches a protected line is undone; other edits shift the protected lines
// so they keep pointing at the same text.
//
// A transaction is reverted with a single undo on its first protected
// change. Changes after that one are still scanned and may shift the
// protected lines.
type ReadOnlyLines struct {
	Base

	external    []int
	lines       []int // internal, sorted and unique
	decorations editor.DecorationsCollection
	sub         editor.Disposable
	reverting   bool
}

// NewReadOnlyLines protects the given external line numbers. With no lines
// the whole document present at activation is protected.
func NewReadOnlyLines(lines ...int) *ReadOnlyLines {
	return &ReadOnlyLines{external: slices.Clone(lines)}
}

func (f *ReadOnlyLines) Activate(env Env) error {
	return f.Begin(env, func() error {
		s := env.Surface
		count := s.LineCount()
		if len(f.external) > 0 {
			f.lines = make([]int, 0, len(f.external))
			for _, line := range f.external {
				f.lines = append(f.lines, f.toInternal(line))
			}
		} else {
			f.lines = make([]int, count)
			for i := range f.lines {
				f.lines[i] = i + 1
			}
		}
		f.lines = normalizeLines(f.lines, count)
		f.decorate()
		f.sub = s.OnDidChangeModelContent(f.handleChange)
		f.Logger().Debug("read-only lines active", logging.FieldLines, f.lines)
		return nil
	})
}

func (f *ReadOnlyLines) Deactivate() error {
	return f.End(func() error {
		f.clearDecorations()
		if f.sub != nil {
			f.sub.Dispose()
			f.sub = nil
		}
		return nil
	})
}

// Lines returns the protected lines in external numbering.
func (f *ReadOnlyLines) Lines() []int {
	if f.State() == StateUninjected {
		return slices.Clone(f.external)
	}
	out := make([]int, len(f.lines))
	for i, line := range f.lines {
		out[i] = f.toExternal(line)
	}
	return out
}

// InternalLines returns the protected lines in the surface's numbering.
func (f *ReadOnlyLines) InternalLines() []int {
	return slices.Clone(f.lines)
}

func (f *ReadOnlyLines) handleChange(ev editor.ContentChangeEvent) error {
	// Only our own revert is skipped. A user undo still moves lines around,
	// so IsUndoing alone would leave the protected set pointing at stale
	// lines.
	if f.reverting {
		return nil
	}

	f.clearDecorations()
	reverted := false
	for _, ch := range ev.Changes {
		// User undo is never reverted; its deltas still move the lines.
		if !ev.IsUndoing && f.intersects(ch.Range) {
			if !reverted {
				reverted = true
				if err := f.revert(ev); err != nil {
					f.decorate()
					return err
				}
			}
			continue
		}
		if delta := lineDelta(ch); delta != 0 {
			start := ch.Range.StartLineNumber
			for i, line := range f.lines {
				if line > start {
					f.lines[i] = line + delta
				}
			}
		}
	}

	f.lines = normalizeLines(f.lines, f.Surface().LineCount())
	f.decorate()
	return nil
}

func (f *ReadOnlyLines) revert(ev editor.ContentChangeEvent) error {
	f.reverting = true
	err := f.Surface().Undo()
	f.reverting = false
	if err != nil {
		f.Logger().Error("revert of protected edit failed",
			logging.FieldDocVer, ev.VersionID,
			logging.FieldError, err)
		return fmt.Errorf("revert protected edit: %w", err)
	}
	f.Logger().Debug("reverted protected edit",
		logging.FieldDocVer, ev.VersionID,
		logging.FieldChanges, len(ev.Changes))
	return nil
}

func (f *ReadOnlyLines) intersects(r editor.LineRange) bool {
	for line := r.StartLineNumber; line <= r.EndLineNumber; line++ {
		if _, ok := slices.BinarySearch(f.lines, line); ok {
			return true
		}
	}
	return false
}

func (f *ReadOnlyLines) decorate() {
	if len(f.lines) == 0 {
		f.decorations = nil
		return
	}
	decos := make([]editor.Decoration, 0, len(f.lines))
	for _, line := range f.lines {
		decos = append(decos, editor.Decoration{
			Range: editor.WholeLine(line),
			Options: editor.DecorationOptions{
				IsWholeLine:     true,
				ClassName:       editor.ClassReadOnlyLine,
				InlineClassName: editor.ClassReadOnlyText,
			},
		})
	}
	f.decorations = f.Surface().CreateDecorationsCollection(decos)
}

func (f *ReadOnlyLines) clearDecorations() {
	if f.decorations != nil {
		f.decorations.Clear()
		f.decorations = nil
	}
}

// lineDelta is the number of lines a change adds (or removes, if negative).
func lineDelta(ch editor.ContentChange) int {
	return ch.Range.StartLineNumber - ch.Range.EndLineNumber + strings.Count(ch.Text, "\n")
}

// normalizeLines drops lines outside [1, lineCount] and sorts the rest
// without duplicates.
func normalizeLines(lines []int, lineCount int) []int {
	lines = slices.DeleteFunc(lines, func(line int) bool {
		return line < 1 || line > lineCount
	})
	slices.Sort(lines)
	return slices.Compact(lines)
}
