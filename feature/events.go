package feature

import "github.com/iw2rmb/lineguard/event"

// Channel events used by the built-in features. Line numbers carried by
// these events are external (offset applied).
const (
	// EventHighlight carries the lines to highlight, as []int or as int
	// arguments. An empty list clears the highlight.
	EventHighlight = "editor.highlight"
	// EventSelectLine carries the clicked line as an int.
	EventSelectLine = "editor.selectLine"
	// EventHeight carries the computed content height in rows as an int.
	EventHeight = "editor.height"
)

// EmitHighlight asks the Highlight feature to decorate lines.
func EmitHighlight(ch *event.Channel, lines ...int) {
	ch.Emit(EventHighlight, lines)
}

// OnSelectLine registers fn for EventSelectLine.
func OnSelectLine(ch *event.Channel, fn func(line int)) event.ListenerID {
	return ch.AddListener(EventSelectLine, func(args ...any) {
		if line, ok := firstInt(args); ok {
			fn(line)
		}
	})
}

// OnHeight registers fn for EventHeight.
func OnHeight(ch *event.Channel, fn func(height int)) event.ListenerID {
	return ch.AddListener(EventHeight, func(args ...any) {
		if h, ok := firstInt(args); ok {
			fn(h)
		}
	})
}

func firstInt(args []any) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	v, ok := args[0].(int)
	return v, ok
}

// linesFromArgs accepts a single []int argument or a list of int arguments.
// Anything else is dropped.
func linesFromArgs(args []any) []int {
	if len(args) == 1 {
		if lines, ok := args[0].([]int); ok {
			return lines
		}
	}
	var out []int
	for _, a := range args {
		if v, ok := a.(int); ok {
			out = append(out, v)
		}
	}
	return out
}
