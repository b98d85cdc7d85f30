package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/lineguard/buffer"
)

func newTestModel(text string, opts Options) Model {
	ed := New(Config{Text: text, Options: opts, Style: &Style{}})
	return NewModel(ed).SetSize(20, 5)
}

func TestModel_TypingMovementAndDelete(t *testing.T) {
	m := newTestModel("ab", Options{})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := m.Editor().Value(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := m.Editor().Cursor(); got != (buffer.Pos{Row: 0, GraphemeCol: 2}) {
		t.Fatalf("cursor after insert: got %v", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Editor().Value(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.Editor().Value(); got != "aXb" {
		t.Fatalf("text after undo: got %q, want %q", got, "aXb")
	}
	if m.Err() != nil {
		t.Fatalf("Err=%v", m.Err())
	}
	if !strings.Contains(m.View(), "aXb") {
		t.Fatalf("view does not show the edit:\n%s", m.View())
	}
}

func TestModel_ReadOnlyIgnoresMutations(t *testing.T) {
	m := newTestModel("ab", Options{ReadOnly: true})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pasted"), Paste: true})

	if got := m.Editor().Value(); got != "ab" {
		t.Fatalf("text: got %q, want %q", got, "ab")
	}
	if got := m.Editor().Cursor(); got != (buffer.Pos{Row: 0, GraphemeCol: 1}) {
		t.Fatalf("cursor: got %v", got)
	}
}

func TestModel_EmptyUndoIsNotAnError(t *testing.T) {
	m := newTestModel("ab", Options{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.Err() != nil {
		t.Fatalf("Err=%v, want nil", m.Err())
	}
}

func TestModel_MouseClickMovesCursor(t *testing.T) {
	m := newTestModel("abc\ndef", Options{})

	var got []MouseEvent
	m.Editor().OnMouseDown(func(ev MouseEvent) { got = append(got, ev) })

	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if c := m.Editor().Cursor(); c != (buffer.Pos{Row: 1, GraphemeCol: 1}) {
		t.Fatalf("cursor=%v, want row 1 col 1", c)
	}
	if len(got) != 1 || got[0].Target.Type != MouseTargetContent {
		t.Fatalf("mouse events=%+v", got)
	}

	m, _ = m.Update(tea.MouseMsg{X: 5, Y: 0, Shift: true, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	sel, ok := m.Editor().Selection()
	if !ok {
		t.Fatalf("expected a selection after shift-click")
	}
	want := buffer.Range{Start: buffer.Pos{Row: 0, GraphemeCol: 3}, End: buffer.Pos{Row: 1, GraphemeCol: 1}}
	if sel != want {
		t.Fatalf("selection=%v, want %v", sel, want)
	}
}

func TestModel_MouseOutOfBoundsIgnored(t *testing.T) {
	m := newTestModel("abc", Options{})
	calls := 0
	m.Editor().OnMouseDown(func(MouseEvent) { calls++ })

	m, _ = m.Update(tea.MouseMsg{X: 50, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if calls != 0 {
		t.Fatalf("calls=%d, want 0", calls)
	}
}

func TestModel_FollowsCursor(t *testing.T) {
	ed := New(Config{Text: strings.Repeat("x\n", 9) + "x", Style: &Style{}})
	m := NewModel(ed).SetSize(10, 3)

	for range 5 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if got := m.viewport.YOffset; got != 3 {
		t.Fatalf("YOffset=%d, want 3", got)
	}
}

func TestModel_HostMutationRefreshesView(t *testing.T) {
	m := newTestModel("ab", Options{HideLineNumbers: true})
	if err := m.Editor().SetValue("changed"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	m, _ = m.Update(struct{}{})
	if !strings.Contains(m.View(), "changed") {
		t.Fatalf("view not refreshed:\n%s", m.View())
	}
}
