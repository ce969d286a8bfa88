//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// AlreadyInitializedError indicates the slot directory already exists.
type AlreadyInitializedError struct {
	Path string
}

func (e AlreadyInitializedError) Error() string {
	return fmt.Sprintf("tasks already initialized at %s", e.Path)
}

// TaskNotFoundError indicates the task ID doesn't match any task.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// InvalidPriorityError indicates an invalid priority value.
type InvalidPriorityError struct {
	Value string
}

func (e InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority: %s (valid: high, medium, low)", e.Value)
}

// UnknownBackendError indicates a configured slot backend that doesn't exist.
type UnknownBackendError struct {
	Backend string
}

func (e UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown backend: %s (valid: file, sqlite, memory)", e.Backend)
}

// InvalidLogLevelError indicates a log level slog doesn't know.
type InvalidLogLevelError struct {
	Value string
}

func (e InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level: %s (valid: debug, info, warn, error)", e.Value)
}

// MissingKeyError indicates the slot key is empty.
type MissingKeyError struct{}

func (e MissingKeyError) Error() string {
	return "slot key is required"
}

// InvalidKeyError indicates a slot key that can't name a file in the slot directory.
type InvalidKeyError struct {
	Key string
}

func (e InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid slot key: %q (must not contain path separators or be . or ..)", e.Key)
}

// NotInRepoError indicates the command was run outside a git repository.
type NotInRepoError struct{}

func (e NotInRepoError) Error() string {
	return "not in a git repository"
}
