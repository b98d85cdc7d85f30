package editor

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/lineguard/buffer"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.ed.Focused() || m.ed.Disposed() {
		return m
	}
	ro := m.ed.ReadOnly()

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !ro {
			m.record(m.ed.InsertText(string(msg.Runes)))
		}
		return m
	}

	km := m.ed.KeyMap()
	move := func(unit buffer.MoveUnit, dir buffer.MoveDir, extend bool) {
		m.ed.Move(buffer.Move{Unit: unit, Dir: dir, Extend: extend})
	}

	switch {
	case key.Matches(msg, km.Left):
		move(buffer.MoveGrapheme, buffer.DirLeft, false)
	case key.Matches(msg, km.Right):
		move(buffer.MoveGrapheme, buffer.DirRight, false)
	case key.Matches(msg, km.Up):
		move(buffer.MoveGrapheme, buffer.DirUp, false)
	case key.Matches(msg, km.Down):
		move(buffer.MoveGrapheme, buffer.DirDown, false)

	case key.Matches(msg, km.ShiftLeft):
		move(buffer.MoveGrapheme, buffer.DirLeft, true)
	case key.Matches(msg, km.ShiftRight):
		move(buffer.MoveGrapheme, buffer.DirRight, true)
	case key.Matches(msg, km.ShiftUp):
		move(buffer.MoveGrapheme, buffer.DirUp, true)
	case key.Matches(msg, km.ShiftDown):
		move(buffer.MoveGrapheme, buffer.DirDown, true)

	case key.Matches(msg, km.WordLeft):
		move(buffer.MoveWord, buffer.DirLeft, false)
	case key.Matches(msg, km.WordRight):
		move(buffer.MoveWord, buffer.DirRight, false)

	case key.Matches(msg, km.Home):
		move(buffer.MoveLine, buffer.DirHome, false)
	case key.Matches(msg, km.End):
		move(buffer.MoveLine, buffer.DirEnd, false)
	case key.Matches(msg, km.DocStart):
		move(buffer.MoveDoc, buffer.DirHome, false)
	case key.Matches(msg, km.DocEnd):
		move(buffer.MoveDoc, buffer.DirEnd, false)

	case key.Matches(msg, km.Backspace):
		if !ro {
			m.record(m.ed.DeleteBackward())
		}
	case key.Matches(msg, km.Delete):
		if !ro {
			m.record(m.ed.DeleteForward())
		}
	case key.Matches(msg, km.Enter):
		if !ro {
			m.record(m.ed.InsertNewline())
		}
	case key.Matches(msg, km.Tab):
		if !ro {
			m.record(m.ed.InsertText("\t"))
		}

	case key.Matches(msg, km.Undo):
		if !ro {
			m.record(ignoreEmptyHistory(m.ed.Undo()))
		}
	case key.Matches(msg, km.Redo):
		if !ro {
			m.record(ignoreEmptyHistory(m.ed.Redo()))
		}

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt && !ro {
			m.record(m.ed.InsertText(string(msg.Runes)))
		}
	}
	return m
}

func ignoreEmptyHistory(err error) error {
	if errors.Is(err, ErrNothingToUndo) || errors.Is(err, ErrNothingToRedo) {
		return nil
	}
	return err
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if isWheelMouse(msg) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.ed.Disposed() || !m.mouseInBounds(msg.X, msg.Y) {
		return m, nil
	}

	ev := m.ed.MouseDown(msg.X, msg.Y+m.viewport.YOffset, msg.Shift)
	m.ed.Focus()

	r := ev.Target.Range
	p := buffer.Pos{Row: r.StartLineNumber - 1, GraphemeCol: r.StartColumn - 1}
	if msg.Shift {
		anchor := m.ed.Cursor()
		if raw, ok := m.ed.buf.SelectionRaw(); ok {
			anchor = raw.Start
		}
		m.ed.SetCursor(p)
		m.ed.SetSelection(buffer.Range{Start: anchor, End: p})
	} else {
		m.ed.SetCursor(p)
		m.ed.buf.ClearSelection()
	}
	return m, nil
}

func isWheelMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}
