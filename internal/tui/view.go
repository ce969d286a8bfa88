package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const defaultWidth = 60

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Tasks"))
	sb.WriteString("\n\n")

	switch m.mode {
	case modeAdd, modeEdit:
		sb.WriteString(m.viewForm())
	case modeConfirmDelete:
		sb.WriteString(m.viewConfirm())
	default:
		sb.WriteString(m.viewList(width))
	}

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(faint.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(faint.Render(m.helpLine()))
	return sb.String()
}

func (m Model) viewList(width int) string {
	if len(m.tasks) == 0 {
		return "No tasks yet.\n"
	}

	rowWidth := max(width-2, 10)
	var sb strings.Builder
	for i, t := range m.tasks {
		marker := "  "
		if i == m.cursor {
			marker = "› "
		}
		label := string(t.Priority)
		text := ansi.Truncate(t.Text, max(rowWidth-len(label)-3, 1), "…")
		line := " " + text + strings.Repeat(" ", max(rowWidth-ansi.StringWidth(text)-len(label)-2, 1)) + label + " "
		row := m.theme.PriorityStyle(t.Priority).Render(line)
		sb.WriteString(marker + row + "\n")
	}
	return sb.String()
}

func (m Model) viewForm() string {
	title := "Add Task"
	priority := m.addPriority
	if m.mode == modeEdit {
		title = "Edit Task"
		priority = m.editing.priority
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Accent).
		Padding(0, 1)

	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(title),
		"",
		m.input.View(),
		"",
		"Priority: "+m.theme.PriorityLabel(priority),
	)
	return box.Render(body) + "\n"
}

func (m Model) viewConfirm() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Danger).
		Padding(0, 1)

	body := lipgloss.JoinVertical(lipgloss.Left,
		"Are you sure you want to delete this task?",
		"",
		m.pending.Text,
	)
	return box.Render(body) + "\n"
}

func (m Model) helpLine() string {
	var bindings []key.Binding
	switch m.mode {
	case modeAdd, modeEdit:
		bindings = []key.Binding{m.keys.Submit, m.keys.CyclePriority, m.keys.Cancel}
	case modeConfirmDelete:
		bindings = []key.Binding{m.keys.Yes, m.keys.No}
	default:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, " • ")
}
