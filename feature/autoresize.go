package feature

import "github.com/iw2rmb/lineguard/internal/logging"

// AutoResizeHeight computes the height the editor needs to show the whole
// document and emits it once, on activation, as EventHeight. Later edits do
// not update it; add a new instance to recompute.
type AutoResizeHeight struct {
	Base

	height int
}

func NewAutoResizeHeight() *AutoResizeHeight { return &AutoResizeHeight{} }

func (f *AutoResizeHeight) Activate(env Env) error {
	return f.Begin(env, func() error {
		s := env.Surface
		pad := s.Padding()
		lineCount := max(s.LineCount(), 1)
		f.height = s.TopForLineNumber(lineCount+1) + s.LineHeight() + pad.Top + pad.Bottom
		f.Logger().Debug("content height computed", logging.FieldCount, f.height)
		env.Channel.Emit(EventHeight, f.height)
		return nil
	})
}

// Height returns the value computed at activation.
func (f *AutoResizeHeight) Height() int { return f.height }
