package tui

import (
	"fmt"
	"slices"

	"linkdeck/internal/model"
	"linkdeck/internal/reorder"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case submittedMsg:
		m.submitting = false
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("submit failed")
			m.showMinibuffer("Submit failed: " + msg.err.Error())
			return m, nil
		}
		m.lastSubmitted = msg.links
		m.showMinibuffer(fmt.Sprintf("Submitted %d links", len(msg.links)))
		return m, nil

	case tea.MouseMsg:
		if m.modal != modalNone {
			return m, nil
		}
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.modal {
		case modalEdit:
			return m.updateEdit(msg)
		case modalConfirmSubmit:
			return m.updateConfirmSubmit(msg)
		}
		if m.drag.Dragging() {
			return m.updateDragKeys(msg)
		}
		return m.updateListKeys(msg)
	}
	return m, nil
}

func (m *appModel) showMinibuffer(text string) { m.minibufferText = text }

func (m *appModel) clampCursor() {
	n := m.store.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset > n-rows {
		m.offset = n - rows
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m appModel) updateListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.minibufferText = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.MoveUp):
		if m.store.Move(m.cursor, m.cursor-1) {
			m.cursor--
		}
	case key.Matches(msg, m.keys.MoveDown):
		if m.store.Move(m.cursor, m.cursor+1) {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Swap):
		if !m.store.Swap(m.cursor, m.cursor+1) {
			m.showMinibuffer("Nothing to swap with")
		}
	case key.Matches(msg, m.keys.Append):
		m.store.Append(m.newLink)
		m.cursor = m.store.Len() - 1
		m.openEdit(m.cursor)
	case key.Matches(msg, m.keys.Prepend):
		m.store.Prepend(m.newLink)
		m.cursor = 0
		m.openEdit(m.cursor)
	case key.Matches(msg, m.keys.Insert):
		at := m.cursor
		if m.store.Len() == 0 {
			at = 0
		}
		m.store.Insert(at, m.newLink)
		m.cursor = at
		m.openEdit(m.cursor)
	case key.Matches(msg, m.keys.Remove):
		if l, ok := m.store.At(m.cursor); ok && m.store.Remove(m.cursor) {
			m.showMinibuffer("Removed " + displayTitle(l))
		}
	case key.Matches(msg, m.keys.Reset):
		m.store.Replace(m.initial)
		m.cursor = 0
		m.showMinibuffer("Replaced with initial links")
	case key.Matches(msg, m.keys.Edit):
		m.openEdit(m.cursor)
	case key.Matches(msg, m.keys.Grab):
		if m.drag.DragStart(m.cursor) {
			m.showMinibuffer("Dragging: ↑/↓ to move, space to drop")
		}
	case key.Matches(msg, m.keys.Submit):
		if m.submitting {
			return m, nil
		}
		m.modal = modalConfirmSubmit
		m.confirmFocus = confirmFocusConfirm
	}
	m.clampCursor()
	return m, nil
}

// updateDragKeys turns arrow keys into candidate orders where the dragged row
// trades places with its neighbour.
func (m appModel) updateDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up, m.keys.MoveUp):
		m.dragBy(-1)
	case key.Matches(msg, m.keys.Down, m.keys.MoveDown):
		m.dragBy(1)
	case key.Matches(msg, m.keys.Drop):
		m.drag.DragEnd()
		m.showMinibuffer("")
	case key.Matches(msg, m.keys.Quit):
		m.drag.DragEnd()
		return m, tea.Quit
	}
	m.clampCursor()
	return m, nil
}

func (m *appModel) dragBy(delta int) {
	active, ok := m.drag.ActiveIndex()
	if !ok {
		return
	}
	ids := m.store.IDs()
	target := active + delta
	if target < 0 || target >= len(ids) {
		return
	}
	ids[active], ids[target] = ids[target], ids[active]
	m.reportOutcome(m.drag.CandidateOrder(ids))
}

func (m *appModel) reportOutcome(o reorder.Outcome) {
	switch o {
	case reorder.Moved:
		if a, ok := m.drag.ActiveIndex(); ok {
			m.cursor = a
		}
	case reorder.Cancelled:
		m.mouseDrag = false
		m.showMinibuffer("Drag cancelled")
	}
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.cursor--
		case tea.MouseButtonWheelDown:
			m.cursor++
		case tea.MouseButtonLeft:
			if row, ok := m.rowAt(msg.Y); ok {
				m.cursor = row
				m.mouseDrag = m.drag.DragStart(row)
			}
		}
	case tea.MouseActionMotion:
		if !m.mouseDrag || !m.drag.Dragging() {
			break
		}
		target := m.rowAtClamped(msg.Y)
		m.reportOutcome(m.drag.CandidateOrder(moveID(m.store.IDs(), m.drag.DraggedID(), target)))
	case tea.MouseActionRelease:
		if m.mouseDrag {
			m.mouseDrag = false
			m.drag.DragEnd()
		}
	}
	m.clampCursor()
	return m, nil
}

// moveID returns ids with id relocated to position to.
func moveID(ids []string, id string, to int) []string {
	from := slices.Index(ids, id)
	if from < 0 {
		return ids
	}
	out := slices.Delete(slices.Clone(ids), from, from+1)
	to = min(max(to, 0), len(out))
	return slices.Insert(out, to, id)
}

func (m appModel) rowAt(y int) (int, bool) {
	row := y - headerLines + m.offset
	if y < headerLines || row >= m.store.Len() || row-m.offset >= m.visibleRows() {
		return 0, false
	}
	return row, true
}

func (m appModel) rowAtClamped(y int) int {
	row := y - headerLines + m.offset
	return min(max(row, 0), m.store.Len()-1)
}

func (m *appModel) openEdit(index int) {
	l, ok := m.store.At(index)
	if !ok {
		return
	}
	m.edit = newEditState(l.ID, l.Values(), m.width)
	m.modal = modalEdit
}

// updateEdit writes every keystroke through the binding; esc restores the
// values the record had when editing started.
func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.edit
	index := m.store.IndexOf(e.id)
	if index < 0 {
		m.closeEdit()
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.store.Update(index, model.FullPatch(e.original))
		m.closeEdit()
		m.showMinibuffer("Edit cancelled")
		return m, nil
	case "enter":
		m.closeEdit()
		return m, nil
	case "tab", "down":
		e.setFocus(e.focus + 1)
		return m, nil
	case "shift+tab", "up":
		e.setFocus(e.focus - 1)
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	field := model.Fields[e.focus]
	if cur, _ := m.binding.Get(index, field); cur != e.inputs[e.focus].Value() {
		m.binding.Set(index, field, e.inputs[e.focus].Value())
	}
	return m, cmd
}

func (m *appModel) closeEdit() {
	m.modal = modalNone
	m.edit = nil
}

func (m appModel) updateConfirmSubmit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.modal = modalNone
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		m.confirmFocus = confirmFocusConfirm
	case "enter":
	case "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}
	m.modal = modalNone
	if m.confirmFocus != confirmFocusConfirm {
		return m, nil
	}
	m.submitting = true
	m.showMinibuffer("Submitting…")
	return m, m.submitCmd()
}
