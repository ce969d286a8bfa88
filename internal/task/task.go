package task

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Priority represents the importance level of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultPriority is used when the caller does not choose one.
const DefaultPriority = PriorityMedium

// Priorities lists the valid priorities from highest to lowest rank.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Rank returns the display rank for a priority (higher = shown first).
// Unknown priorities rank below Low.
func Rank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// IsValidPriority checks if a priority string is valid.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority maps user input to a Priority, ignoring case and surrounding space.
func ParsePriority(s string) (Priority, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities() {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Next returns the priority after p in High, Medium, Low order, wrapping around.
func Next(p Priority) Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// ID identifies a task. It is assigned once at creation.
type ID string

// UnmarshalJSON accepts both strings and the numeric ids of older slots.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Task is a single entry in the task list.
type Task struct {
	ID       ID       `json:"id"`
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
	Done     bool     `json:"done"`
}

// HasText reports whether text is non-empty once surrounding space is trimmed.
func HasText(text string) bool {
	return strings.TrimSpace(text) != ""
}
