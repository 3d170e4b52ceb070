package tui

import (
	"fmt"
	"strings"

	"linkdeck/internal/format"
	"linkdeck/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func displayTitle(l model.Link) string {
	if t := strings.TrimSpace(l.Title); t != "" {
		return t
	}
	return "(untitled)"
}

func (m appModel) footerLines() int {
	n := 2 // minibuffer + help
	if m.showHelp {
		n += 4
	}
	return n
}

func (m appModel) visibleRows() int {
	rows := m.height - headerLines - m.footerLines() - 1
	if m.preview {
		rows = rows / 2
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m appModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderRows())

	if m.preview {
		b.WriteString("\n")
		b.WriteString(m.renderPreview())
	}

	b.WriteString("\n")
	b.WriteString(m.renderMinibuffer())
	b.WriteString("\n")
	if m.drag.Dragging() {
		b.WriteString(m.help.View(dragKeyMap{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	body := b.String()

	switch m.modal {
	case modalEdit:
		return m.overlay(m.renderEditModal())
	case modalConfirmSubmit:
		return m.overlay(m.renderSubmitModal())
	}
	return body
}

func (m appModel) overlay(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m appModel) renderHeader() string {
	title := styleTitle().Render(fmt.Sprintf("Links (%d)", m.store.Len()))
	if m.drag.Dragging() {
		title += "  " + styleMuted().Render("dragging")
	}
	return title
}

func (m appModel) renderRows() string {
	n := m.store.Len()
	if n == 0 {
		return styleMuted().Render("No links. Press a to add one.")
	}
	end := min(m.offset+m.visibleRows(), n)
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i))
	}
	if end < n {
		lines = append(lines, styleMuted().Render(fmt.Sprintf("  … %d more", n-end)))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderRow(i int) string {
	l, _ := m.store.At(i)
	w := max(m.width, 20)

	active, dragging := m.drag.ActiveIndex()
	grip := glyphGrip()
	if dragging && i == active {
		grip = glyphGrabbed()
	}
	num := fmt.Sprintf("%2d.", i+1)
	prefix := grip + " " + num + " "

	rest := w - lipgloss.Width(prefix) - 3
	titleW := max(rest*2/5, 6)
	urlW := max(rest-titleW, 6)
	line := prefix + fitLine(displayTitle(l), titleW) + " " + glyphSeparator() + " " + fitLine(l.URL, urlW)
	line = fitLine(line, w)

	switch {
	case dragging && i == active:
		return styleDragging().Render(line)
	case m.drag.Dimmed(i):
		return styleDimmed().Render(line)
	case i == m.cursor:
		return styleSelected().Render(line)
	}
	return line
}

func (m appModel) renderMinibuffer() string {
	if m.minibufferText == "" {
		return ""
	}
	if strings.HasPrefix(m.minibufferText, "Submit failed") {
		return styleError().Render(m.minibufferText)
	}
	return styleMuted().Render(m.minibufferText)
}

func (m appModel) renderPreview() string {
	md, err := format.Markdown(m.store.Snapshot())
	if err != nil {
		return styleError().Render(err.Error())
	}
	return renderMarkdown(md, max(m.width-2, 10))
}

func (m appModel) renderEditModal() string {
	e := m.edit
	bodyW := modalBodyWidth(m.width)
	labels := []string{"Title", "URL"}
	var parts []string
	for i := range e.inputs {
		label := labels[i]
		if i == e.focus {
			label = styleTitle().Render(label)
		} else {
			label = styleMuted().Render(label)
		}
		parts = append(parts, label, renderInputLine(bodyW, e.inputs[i].View()))
	}
	parts = append(parts, "", styleMuted().Render("tab: next field   enter: done   esc: revert"))
	title := "Edit link"
	if i := m.store.IndexOf(e.id); i >= 0 {
		title = fmt.Sprintf("Edit link %d", i+1)
	}
	return renderModalBox(m.width, title, strings.Join(parts, "\n"))
}

func (m appModel) renderSubmitModal() string {
	md, err := format.Markdown(m.store.Snapshot())
	if err != nil {
		md = err.Error()
	}
	body := renderMarkdown(md, modalBodyWidth(m.width))
	if body == "" {
		body = styleMuted().Render("(no links)")
	}
	return renderConfirmModal(m.width, fmt.Sprintf("Submit %d links?", m.store.Len()), body, "Submit", "Cancel", m.confirmFocus)
}
