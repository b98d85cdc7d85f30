package feature

import "github.com/iw2rmb/lineguard/editor"

// LineSelection emits EventSelectLine with the external line number of every
// pointer press on a line. Presses below the last line are ignored.
type LineSelection struct {
	Base

	sub editor.Disposable
}

func NewLineSelection() *LineSelection { return &LineSelection{} }

func (f *LineSelection) Activate(env Env) error {
	return f.Begin(env, func() error {
		offset := env.Surface.LineNumberOffset()
		f.sub = env.Surface.OnMouseDown(func(ev editor.MouseEvent) {
			if ev.Target.AfterLastLine {
				return
			}
			env.Channel.Emit(EventSelectLine, ev.Target.Range.StartLineNumber+offset)
		})
		return nil
	})
}

func (f *LineSelection) Deactivate() error {
	return f.End(func() error {
		if f.sub != nil {
			f.sub.Dispose()
			f.sub = nil
		}
		return nil
	})
}
