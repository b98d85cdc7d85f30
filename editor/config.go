package editor

import "github.com/charmbracelet/log"

// Padding is blank space, in rows, above the first and below the last line.
type Padding struct {
	Top    int
	Bottom int
}

// Options are the runtime-adjustable editor options.
type Options struct {
	Language string

	// LineNumberOffset is added to internal line numbers for display and for
	// host-facing line numbers.
	LineNumberOffset int

	ReadOnly bool
	WordWrap bool

	// TabSize defaults to 2.
	TabSize int
	Padding Padding
	// LineHeight is the number of terminal rows per visual line. Defaults to 1.
	LineHeight int

	ScrollBeyondLastLine bool
	HideLineNumbers      bool
}

// Config configures a new Editor.
type Config struct {
	Options

	// Initial text.
	Text string

	// Forwarded to buffer.Options.
	HistoryLimit int

	// Nil means DefaultStyle.
	Style *Style
	// Zero value means DefaultKeyMap.
	KeyMap KeyMap

	// Nil means logging.Default.
	Logger *log.Logger
}

func normalizeOptions(o Options) Options {
	if o.TabSize <= 0 {
		o.TabSize = 2
	}
	if o.LineHeight <= 0 {
		o.LineHeight = 1
	}
	if o.Padding.Top < 0 {
		o.Padding.Top = 0
	}
	if o.Padding.Bottom < 0 {
		o.Padding.Bottom = 0
	}
	if o.Language == "" {
		o.Language = "text"
	}
	return o
}
