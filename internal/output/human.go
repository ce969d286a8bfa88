package output

import (
	"fmt"
	"strings"

	"github.com/abatilo/tasks/internal/task"
	"github.com/abatilo/tasks/internal/theme"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct {
	theme theme.Theme
}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{theme: theme.Default}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t task.Task) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s] %s\n", t.ID, t.Text)
	fmt.Fprintf(&sb, "  Priority: %s\n", f.theme.PriorityLabel(t.Priority))
	fmt.Fprintf(&sb, "  Done:     %s\n", yesNo(t.Done))

	return sb.String()
}

// FormatTaskList formats a list of tasks for display.
func (f *HumanFormatter) FormatTaskList(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	width := 0
	for _, t := range tasks {
		width = max(width, len(t.ID))
	}

	var sb strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&sb, "%s %-*s %s\n",
			f.theme.PriorityLabel(t.Priority), width+2, "["+string(t.ID)+"]", t.Text)
	}
	return sb.String()
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
