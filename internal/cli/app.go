package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/feature"
)

type appKeys struct {
	Quit      key.Binding
	NextTheme key.Binding
	Highlight key.Binding
}

func defaultAppKeys() appKeys {
	return appKeys{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		NextTheme: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next theme")),
		Highlight: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "highlight selected line")),
	}
}

// selectMsg carries a line selected by the LineSelection feature.
type selectMsg int

// app is the top-level program: the editor plus a one-line status bar.
type app struct {
	s      *session
	editor editor.Model
	keys   appKeys

	// selected is the last external line reported on the channel.
	selected int
	// pending collects channel selections between updates; the listener runs
	// inside editor.Model.Update, so it cannot return a tea.Msg itself.
	pending *[]int
	status  string
	width   int
}

func newApp(s *session) app {
	pending := new([]int)
	feature.OnSelectLine(s.host.Channel(), func(line int) {
		*pending = append(*pending, line)
	})
	return app{
		s:       s,
		editor:  s.host.Model(),
		keys:    defaultAppKeys(),
		pending: pending,
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.editor = a.editor.SetSize(msg.Width, max(msg.Height-1, 0))
		return a, nil
	case selectMsg:
		a.selected = int(msg)
		a.status = fmt.Sprintf("line %d", a.selected)
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.NextTheme):
			a.status = a.nextTheme()
			a.editor, _ = a.editor.Update(nil)
			return a, nil
		case key.Matches(msg, a.keys.Highlight):
			a.status = a.toggleHighlight()
			a.editor, _ = a.editor.Update(nil)
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	if err := a.editor.Err(); err != nil {
		a.status = err.Error()
	}
	return a, tea.Batch(cmd, a.drainSelections())
}

// drainSelections turns the last selection gathered during the previous
// update into a message.
func (a app) drainSelections() tea.Cmd {
	if len(*a.pending) == 0 {
		return nil
	}
	line := (*a.pending)[len(*a.pending)-1]
	*a.pending = nil
	return func() tea.Msg { return selectMsg(line) }
}

func (a app) nextTheme() string {
	ed := a.s.host.Editor()
	names := ed.Themes()
	if len(names) == 0 {
		return "no themes"
	}
	i := slices.Index(names, ed.Theme())
	next := names[(i+1)%len(names)]
	if err := a.s.host.ChangeTheme(next); err != nil {
		return err.Error()
	}
	return "theme " + next
}

// toggleHighlight highlights the selected line, or clears the highlight when
// it is already highlighted.
func (a app) toggleHighlight() string {
	if a.selected == 0 {
		return "click a line first"
	}
	h, ok := a.s.host.Features().Get("highlight")
	if !ok {
		return "highlight disabled"
	}
	if slices.Contains(h.(*feature.Highlight).Lines(), a.selected) {
		feature.EmitHighlight(a.s.host.Channel())
		return "highlight cleared"
	}
	feature.EmitHighlight(a.s.host.Channel(), a.selected)
	return fmt.Sprintf("highlighted line %d", a.selected)
}

var statusStyle = lipgloss.NewStyle().Reverse(true)

func (a app) View() string {
	ed := a.s.host.Editor()
	left := fmt.Sprintf(" %s  %s  %s", a.s.displayName(), ed.Language(), ed.Theme())
	if ro, ok := a.s.host.Features().Get("readOnly"); ok {
		left += fmt.Sprintf("  ro:%d", len(ro.(*feature.ReadOnlyLines).InternalLines()))
	}
	if a.s.height > 0 {
		left += fmt.Sprintf("  h:%d", a.s.height)
	}
	right := a.status + " "
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := statusStyle.Render(left + strings.Repeat(" ", gap) + right)
	return lipgloss.JoinVertical(lipgloss.Left, a.editor.View(), bar)
}

func (s *session) displayName() string {
	if s.path == "" {
		return "[scratch]"
	}
	return s.path
}
