package editor

import (
	"maps"

	"github.com/charmbracelet/lipgloss"
)

// Decoration classes used by the built-in features.
const (
	ClassReadOnlyLine  = "read-only-code-line"
	ClassReadOnlyText  = "read-only-code-text"
	ClassHighlightLine = "highlight-code-line"
)

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Classes maps decoration class names to styles. Whole-line classes
	// colour the full row; inline classes colour the text only.
	Classes map[string]lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Classes: map[string]lipgloss.Style{
			ClassReadOnlyLine:  lipgloss.NewStyle().Background(lipgloss.Color("236")),
			ClassReadOnlyText:  lipgloss.NewStyle().Faint(true),
			ClassHighlightLine: lipgloss.NewStyle().Background(lipgloss.Color("58")),
		},
	}
}

func (s Style) classStyle(name string) (lipgloss.Style, bool) {
	if name == "" || s.Classes == nil {
		return lipgloss.Style{}, false
	}
	st, ok := s.Classes[name]
	return st, ok
}

func (s Style) clone() Style {
	out := s
	out.Classes = maps.Clone(s.Classes)
	if out.Classes == nil {
		out.Classes = make(map[string]lipgloss.Style)
	}
	return out
}
