package task

import "slices"

// DisplayOrder returns a copy of tasks sorted by descending priority rank.
// Tasks of equal rank keep their relative order. The input is not modified.
func DisplayOrder(tasks []Task) []Task {
	ordered := slices.Clone(tasks)
	slices.SortStableFunc(ordered, func(a, b Task) int {
		return Rank(b.Priority) - Rank(a.Priority)
	})
	return ordered
}

// Index returns the position of the task with the given id, or -1.
func Index(tasks []Task, id ID) int {
	return slices.IndexFunc(tasks, func(t Task) bool {
		return t.ID == id
	})
}
