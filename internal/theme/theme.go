// Package theme holds the colours shared by the CLI output and the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/tasks/internal/task"
)

// Theme defines the palette for task rendering.
type Theme struct {
	// Row backgrounds per priority.
	High   lipgloss.Color
	Medium lipgloss.Color
	Low    lipgloss.Color

	// Text drawn on a priority background.
	OnPriority lipgloss.Color

	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	Accent     lipgloss.Color
	Danger     lipgloss.Color
}

// Default is the built-in palette: soft red, yellow and green rows.
//
//nolint:gochecknoglobals // read-only palette
var Default = Theme{
	High:       lipgloss.Color("#ffcccb"),
	Medium:     lipgloss.Color("#fffacd"),
	Low:        lipgloss.Color("#d3ffd3"),
	OnPriority: lipgloss.Color("#333333"),
	NormalText: lipgloss.Color("#f0f0f0"),
	FaintText:  lipgloss.Color("#6c757d"),
	Accent:     lipgloss.Color("#00b7ff"),
	Danger:     lipgloss.Color("#ff6347"),
}

// PriorityColor returns the background for a priority. Unknown priorities
// get FaintText.
func (t Theme) PriorityColor(p task.Priority) lipgloss.Color {
	switch p {
	case task.PriorityHigh:
		return t.High
	case task.PriorityMedium:
		return t.Medium
	case task.PriorityLow:
		return t.Low
	default:
		return t.FaintText
	}
}

// PriorityStyle renders text on the priority's background.
func (t Theme) PriorityStyle(p task.Priority) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.PriorityColor(p)).
		Foreground(t.OnPriority)
}

// PriorityLabel returns the priority name padded to a fixed width and styled.
func (t Theme) PriorityLabel(p task.Priority) string {
	return t.PriorityStyle(p).Width(labelWidth).Render(string(p))
}

// labelWidth fits "Medium" plus one space of padding.
const labelWidth = 7
