package feature

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/event"
	"github.com/iw2rmb/lineguard/internal/logging"
)

// Surface is the editor API features are allowed to use. *editor.Editor
// implements it.
type Surface interface {
	LineNumberOffset() int
	LineCount() int
	Undo() error

	OnDidChangeModelContent(editor.ContentChangeListener) editor.Disposable
	OnMouseDown(editor.MouseListener) editor.Disposable
	CreateDecorationsCollection([]editor.Decoration) editor.DecorationsCollection

	Padding() editor.Padding
	LineHeight() int
	TopForLineNumber(line int) int
}

var _ Surface = (*editor.Editor)(nil)

// Env is what a feature is bound to when it is injected.
type Env struct {
	Surface Surface
	Channel *event.Channel
	// Nil means logging.Default.
	Logger *log.Logger
}

// Feature is a pluggable behaviour. Activate is called exactly once, when the
// feature is added to a Registry; Deactivate at most once, on removal.
type Feature interface {
	Activate(Env) error
	Deactivate() error
}

// Inject binds env to f and activates it.
func Inject(f Feature, env Env) error {
	return f.Activate(env)
}

type State int

const (
	StateUninjected State = iota
	StateActive
	StateDeactivated
)

func (s State) String() string {
	switch s {
	case StateUninjected:
		return "uninjected"
	case StateActive:
		return "active"
	case StateDeactivated:
		return "deactivated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrNotInjected   = errors.New("feature not injected")
	ErrAlreadyActive = errors.New("feature already active")
	ErrDeactivated   = errors.New("feature deactivated")
)

// StateError reports a lifecycle call made in the wrong state.
type StateError struct {
	Op    string
	State State
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("feature %s (%s): %v", e.Op, e.State, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }

// Base tracks the lifecycle of a feature and holds its Env. Embed it and
// call Begin and End from Activate and Deactivate. The zero value is an
// uninjected feature whose Activate and Deactivate do nothing else.
type Base struct {
	env   Env
	state State
}

// Begin binds env and runs fn. If fn fails the binding is rolled back and
// the feature stays uninjected.
func (b *Base) Begin(env Env, fn func() error) error {
	switch b.state {
	case StateActive:
		return &StateError{Op: "activate", State: b.state, Err: ErrAlreadyActive}
	case StateDeactivated:
		return &StateError{Op: "activate", State: b.state, Err: ErrDeactivated}
	}
	if env.Surface == nil || env.Channel == nil {
		return &StateError{Op: "activate", State: b.state, Err: ErrNotInjected}
	}

	env.Logger = logging.OrDefault(env.Logger)
	b.env = env
	b.state = StateActive
	if fn == nil {
		return nil
	}
	if err := fn(); err != nil {
		b.env = Env{}
		b.state = StateUninjected
		return err
	}
	return nil
}

// End marks the feature deactivated and runs fn to release what Begin
// acquired.
func (b *Base) End(fn func() error) error {
	switch b.state {
	case StateUninjected:
		return &StateError{Op: "deactivate", State: b.state, Err: ErrNotInjected}
	case StateDeactivated:
		return &StateError{Op: "deactivate", State: b.state, Err: ErrDeactivated}
	}
	b.state = StateDeactivated
	if fn == nil {
		return nil
	}
	return fn()
}

func (b *Base) Activate(env Env) error { return b.Begin(env, nil) }

func (b *Base) Deactivate() error { return b.End(nil) }

func (b *Base) State() State { return b.state }

func (b *Base) Surface() Surface { return b.env.Surface }

func (b *Base) Channel() *event.Channel { return b.env.Channel }

func (b *Base) Logger() *log.Logger { return logging.OrDefault(b.env.Logger) }

// toInternal converts a host line number into the surface's numbering.
func (b *Base) toInternal(line int) int { return line - b.env.Surface.LineNumberOffset() }

func (b *Base) toExternal(line int) int { return line + b.env.Surface.LineNumberOffset() }
