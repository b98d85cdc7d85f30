package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/lineguard/buffer"
	"github.com/iw2rmb/lineguard/internal/logging"
)

// Model is a Bubble Tea component that renders an Editor inside a viewport
// and turns key and mouse messages into editor operations.
type Model struct {
	ed *Editor

	viewport viewport.Model

	lastRevision uint64
	lastCursor   buffer.Pos

	err error
}

func NewModel(ed *Editor) Model {
	ed.Focus()
	m := Model{
		ed:       ed,
		viewport: viewport.New(0, 0),
	}
	m.lastRevision = ed.Revision()
	m.lastCursor = ed.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Editor() *Editor { return m.ed }

// Err returns the error of the last editing operation triggered by input.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	width, height = max(width, 0), max(height, 0)
	m.viewport.Width = width
	m.viewport.Height = height
	m.ed.Layout(width, height)

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
		// Wheel scrolling must not snap back to the cursor.
		m.syncFromEditor()
		return m, cmd
	}
	if m.syncFromEditor() {
		m.followCursor()
	}
	return m, cmd
}

func (m Model) View() string { return m.viewport.View() }

// syncFromEditor rebuilds the viewport content when the host or an input
// changed the editor, and reports whether the cursor moved.
func (m *Model) syncFromEditor() (cursorChanged bool) {
	rev := m.ed.Revision()
	cur := m.ed.Cursor()
	if rev == m.lastRevision && cur == m.lastCursor {
		return false
	}
	cursorChanged = cur != m.lastCursor
	m.lastRevision = rev
	m.lastCursor = cur
	m.rebuildContent()
	return cursorChanged
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.ed.Render())
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	top := m.ed.cursorTop()
	lh := m.ed.LineHeight()

	y := m.viewport.YOffset
	if top < y {
		m.viewport.SetYOffset(top)
		return
	}
	if top+lh > y+h {
		m.viewport.SetYOffset(top + lh - h)
	}
}

func (m *Model) record(err error) {
	m.err = err
	if err != nil {
		m.ed.log.Warn("edit failed", logging.FieldError, err)
	}
}
