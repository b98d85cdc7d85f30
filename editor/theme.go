package editor

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/lineguard/internal/logging"
)

var (
	ErrUnknownTheme = errors.New("editor: unknown theme")
	ErrInvalidTheme = errors.New("editor: invalid theme")
)

// Theme colour keys understood by the editor.
const (
	ColorForeground          = "editor.foreground"
	ColorBackground          = "editor.background"
	ColorSelection           = "editor.selectionBackground"
	ColorCursor              = "editorCursor.foreground"
	ColorLineNumber          = "editorLineNumber.foreground"
	ColorLineNumberActive    = "editorLineNumber.activeForeground"
	ColorReadOnlyBackground  = "lineguard.readOnlyBackground"
	ColorHighlightBackground = "lineguard.highlightBackground"
)

// ThemeRule styles one decoration class.
type ThemeRule struct {
	Class      string
	Foreground string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
	Faint      bool
}

// ThemeData is a theme definition. Colours are terminal colour strings
// accepted by lipgloss (hex or ANSI index).
type ThemeData struct {
	Base   string
	Colors map[string]string
	Rules  []ThemeRule
}

// DefineTheme registers a theme on this editor instance.
func (e *Editor) DefineTheme(name string, data ThemeData) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTheme)
	}
	for _, r := range data.Rules {
		if r.Class == "" {
			return fmt.Errorf("%w: %s: rule without class", ErrInvalidTheme, name)
		}
	}
	e.themes[name] = data
	e.log.Debug("theme defined", logging.FieldTheme, name)
	if e.theme == name {
		e.style = applyTheme(e.baseStyle(), data)
		e.revision++
	}
	return nil
}

// SetTheme activates a theme previously registered with DefineTheme.
func (e *Editor) SetTheme(name string) error {
	data, ok := e.themes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	e.theme = name
	e.style = applyTheme(e.baseStyle(), data)
	e.revision++
	e.log.Debug("theme activated", logging.FieldTheme, name)
	return nil
}

// Theme returns the active theme name, or "" for the built-in style.
func (e *Editor) Theme() string { return e.theme }

// Themes returns the sorted names of the registered themes.
func (e *Editor) Themes() []string {
	return slices.Sorted(maps.Keys(e.themes))
}

// Style returns the effective style.
func (e *Editor) Style() Style { return e.style }

func (e *Editor) baseStyle() Style {
	if e.themeBase != nil {
		return *e.themeBase
	}
	base := e.style.clone()
	e.themeBase = &base
	return base
}

func applyTheme(base Style, data ThemeData) Style {
	s := base.clone()
	c := data.Colors

	if v := c[ColorForeground]; v != "" {
		s.Text = s.Text.Foreground(lipgloss.Color(v))
	}
	if v := c[ColorBackground]; v != "" {
		s.Text = s.Text.Background(lipgloss.Color(v))
	}
	if v := c[ColorSelection]; v != "" {
		s.Selection = s.Selection.Background(lipgloss.Color(v))
	}
	if v := c[ColorCursor]; v != "" {
		s.Cursor = lipgloss.NewStyle().Background(lipgloss.Color(v))
	}
	if v := c[ColorLineNumber]; v != "" {
		s.LineNum = s.LineNum.Foreground(lipgloss.Color(v))
		s.Gutter = s.Gutter.Foreground(lipgloss.Color(v))
	}
	if v := c[ColorLineNumberActive]; v != "" {
		s.LineNumActive = s.LineNumActive.Foreground(lipgloss.Color(v))
	}
	if v := c[ColorReadOnlyBackground]; v != "" {
		s.Classes[ClassReadOnlyLine] = lipgloss.NewStyle().Background(lipgloss.Color(v))
	}
	if v := c[ColorHighlightBackground]; v != "" {
		s.Classes[ClassHighlightLine] = lipgloss.NewStyle().Background(lipgloss.Color(v))
	}

	for _, r := range data.Rules {
		st := lipgloss.NewStyle()
		if r.Foreground != "" {
			st = st.Foreground(lipgloss.Color(r.Foreground))
		}
		if r.Background != "" {
			st = st.Background(lipgloss.Color(r.Background))
		}
		st = st.Bold(r.Bold).Italic(r.Italic).Underline(r.Underline).Faint(r.Faint)
		s.Classes[r.Class] = st
	}
	return s
}
