package feature

import (
	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/event"
	"github.com/iw2rmb/lineguard/internal/logging"
)

// Highlight decorates the lines carried by EventHighlight. Each event
// replaces the previous highlight.
type Highlight struct {
	Base

	listener    event.ListenerID
	decorations editor.DecorationsCollection
	lines       []int
}

func NewHighlight() *Highlight { return &Highlight{} }

func (f *Highlight) Activate(env Env) error {
	return f.Begin(env, func() error {
		f.listener = env.Channel.AddListener(EventHighlight, f.handle)
		return nil
	})
}

func (f *Highlight) Deactivate() error {
	return f.End(func() error {
		f.clear()
		f.Channel().RemoveListener(EventHighlight, f.listener)
		return nil
	})
}

// Lines returns the highlighted lines in external numbering.
func (f *Highlight) Lines() []int { return append([]int(nil), f.lines...) }

func (f *Highlight) handle(args ...any) {
	f.clear()
	lines := linesFromArgs(args)
	if len(lines) == 0 {
		return
	}

	decos := make([]editor.Decoration, 0, len(lines))
	for _, line := range lines {
		decos = append(decos, editor.Decoration{
			Range: editor.WholeLine(f.toInternal(line)),
			Options: editor.DecorationOptions{
				IsWholeLine: true,
				ClassName:   editor.ClassHighlightLine,
			},
		})
	}
	f.decorations = f.Surface().CreateDecorationsCollection(decos)
	f.lines = append([]int(nil), lines...)
	f.Logger().Debug("lines highlighted", logging.FieldLines, lines)
}

func (f *Highlight) clear() {
	if f.decorations != nil {
		f.decorations.Clear()
		f.decorations = nil
	}
	f.lines = nil
}
