package main

import (
	"strings"

	"github.com/spf13/pflag"

	taskerrors "github.com/abatilo/tasks/internal/errors"
	"github.com/abatilo/tasks/internal/task"
)

// priorityValue is a pflag.Value accepting high, medium or low in any case.
type priorityValue struct {
	p   task.Priority
	set bool
}

var _ pflag.Value = (*priorityValue)(nil)

func newPriorityValue(def task.Priority) *priorityValue {
	return &priorityValue{p: def}
}

func (v *priorityValue) String() string {
	return strings.ToLower(string(v.p))
}

func (v *priorityValue) Set(s string) error {
	p, ok := task.ParsePriority(s)
	if !ok {
		return taskerrors.InvalidPriorityError{Value: s}
	}
	v.p = p
	v.set = true
	return nil
}

func (v *priorityValue) Type() string {
	return "priority"
}

// Priority returns the parsed priority.
func (v *priorityValue) Priority() task.Priority {
	return v.p
}
