// Package store holds the task collection for one session and keeps it
// written through to a persistent slot.
//
// Every mutating call either leaves the collection untouched (blank text,
// unknown id, declined delete) or replaces the slot value with the full
// new collection before returning. If the slot write fails the in-memory
// collection is left as it was, so memory and slot never diverge.
package store

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/abatilo/tasks/internal/storage"
	"github.com/abatilo/tasks/internal/task"
)

// Confirmer decides whether a destructive action may proceed.
type Confirmer interface {
	Confirm(t task.Task) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(t task.Task) bool

// Confirm calls f(t).
func (f ConfirmFunc) Confirm(t task.Task) bool {
	return f(t)
}

// Confirmed approves every request. Use it when intent was confirmed up front.
//
//nolint:gochecknoglobals // stateless helper value
var Confirmed Confirmer = ConfirmFunc(func(task.Task) bool { return true })

// Store is the in-memory task collection backed by a slot.
type Store struct {
	slot   storage.Slot
	tasks  []task.Task
	logger *slog.Logger
	now    func() time.Time
}

// New loads the collection from slot. A missing or undecodable value loads
// as an empty collection; only a failure to read the slot at all is an error.
func New(slot storage.Slot, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("slot", slot.Key())

	data, err := slot.Read()
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", slot.Key(), err)
	}

	tasks, err := storage.Decode(data)
	if err != nil {
		logger.Warn("ignoring unreadable slot value", "error", err)
		tasks = []task.Task{}
	}
	logger.Debug("slot loaded", "count", len(tasks))

	s := &Store{
		slot:   slot,
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
	if s.reassignRepeatedIDs() {
		if err = s.commit(slices.Clone(s.tasks)); err != nil {
			logger.Warn("could not persist reassigned ids", "error", err)
		}
	}
	return s, nil
}

// reassignRepeatedIDs gives every task whose id was already used by an
// earlier task a fresh id. Older slots could hold two tasks created in the
// same millisecond. It reports whether anything changed.
func (s *Store) reassignRepeatedIDs() bool {
	seen := make(map[task.ID]bool, len(s.tasks))
	for _, t := range s.tasks {
		seen[t.ID] = true
	}

	first := make(map[task.ID]bool, len(s.tasks))
	changed := false
	for i, t := range s.tasks {
		if !first[t.ID] {
			first[t.ID] = true
			continue
		}
		id := task.GenerateID(t.Text, s.now().UTC(), func(id task.ID) bool {
			return seen[id]
		})
		seen[id] = true
		first[id] = true
		s.tasks[i].ID = id
		changed = true
		s.logger.Warn("reassigned repeated task id", "old", t.ID, "new", id)
	}
	return changed
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

// DisplayOrder returns the collection sorted for display: highest priority
// first, insertion order within a priority.
func (s *Store) DisplayOrder() []task.Task {
	return task.DisplayOrder(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id task.ID) (task.Task, bool) {
	i := task.Index(s.tasks, id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// Add appends a new task. Text that is blank once trimmed is ignored.
// The text itself is stored as given.
func (s *Store) Add(text string, priority task.Priority) ([]task.Task, error) {
	if !task.HasText(text) {
		s.logger.Debug("add ignored: blank text")
		return s.Tasks(), nil
	}

	existing := make(map[task.ID]bool, len(s.tasks))
	for _, t := range s.tasks {
		existing[t.ID] = true
	}
	id := task.GenerateID(text, s.now().UTC(), func(id task.ID) bool {
		return existing[id]
	})

	next := append(slices.Clone(s.tasks), task.Task{
		ID:       id,
		Text:     text,
		Priority: priority,
		Done:     false,
	})
	if err := s.commit(next); err != nil {
		return s.Tasks(), err
	}
	s.logger.Debug("task added", "id", id, "priority", priority)
	return s.Tasks(), nil
}

// Edit replaces the text and priority of the task with the given id.
// Unknown ids and blank text are ignored.
func (s *Store) Edit(id task.ID, text string, priority task.Priority) ([]task.Task, error) {
	i := task.Index(s.tasks, id)
	if i < 0 {
		s.logger.Debug("edit ignored: unknown id", "id", id)
		return s.Tasks(), nil
	}
	if !task.HasText(text) {
		s.logger.Debug("edit ignored: blank text", "id", id)
		return s.Tasks(), nil
	}

	next := slices.Clone(s.tasks)
	next[i].Text = text
	next[i].Priority = priority
	if err := s.commit(next); err != nil {
		return s.Tasks(), err
	}
	s.logger.Debug("task edited", "id", id, "priority", priority)
	return s.Tasks(), nil
}

// Delete removes the task with the given id once confirm approves it.
// Unknown ids are ignored without asking. A nil confirm declines.
func (s *Store) Delete(id task.ID, confirm Confirmer) ([]task.Task, error) {
	i := task.Index(s.tasks, id)
	if i < 0 {
		s.logger.Debug("delete ignored: unknown id", "id", id)
		return s.Tasks(), nil
	}
	if confirm == nil || !confirm.Confirm(s.tasks[i]) {
		s.logger.Debug("delete declined", "id", id)
		return s.Tasks(), nil
	}

	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	if err := s.commit(next); err != nil {
		return s.Tasks(), err
	}
	s.logger.Debug("task deleted", "id", id)
	return s.Tasks(), nil
}

// commit writes next to the slot and, only on success, makes it current.
func (s *Store) commit(next []task.Task) error {
	data, err := storage.Encode(next)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err = s.slot.Write(data); err != nil {
		s.logger.Error("slot write failed", "error", err)
		return fmt.Errorf("writing slot %s: %w", s.slot.Key(), err)
	}
	s.tasks = next
	return nil
}
