package storage

import (
	"os"
	"path/filepath"

	taskerrors "github.com/abatilo/tasks/internal/errors"
)

const (
	// DefaultKey is the slot name the task list lives under.
	DefaultKey = "tasks"

	fileExt = ".json"
)

// Slot is a single named persistent location holding the serialized task
// collection. Writes overwrite the whole value.
type Slot interface {
	// Key returns the slot name.
	Key() string
	// Read returns the stored value, or nil with no error when the slot is empty.
	Read() ([]byte, error)
	// Write replaces the stored value.
	Write(data []byte) error
}

// FileSlot stores the value in <dir>/<key>.json.
type FileSlot struct {
	dir string
	key string
}

// NewFileSlot creates a FileSlot. The directory is created on first write.
func NewFileSlot(dir, key string) *FileSlot {
	return &FileSlot{dir: dir, key: key}
}

// Key returns the slot name.
func (s *FileSlot) Key() string {
	return s.key
}

// Path returns the file backing the slot.
func (s *FileSlot) Path() string {
	return filepath.Join(s.dir, s.key+fileExt)
}

// Read returns the file contents, or nil if the file doesn't exist.
func (s *FileSlot) Read() ([]byte, error) {
	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write replaces the file contents. The value is written to a temporary
// file in the same directory and renamed over the slot file, so readers
// see either the old or the new collection.
func (s *FileSlot) Write(data []byte) error {
	//nolint:gosec // G301: 0755 is appropriate for user-accessible task directory
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+s.key+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // best effort; gone after a successful rename

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	//nolint:gosec // G302: 0644 is appropriate for user-readable task files
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, s.Path())
}

// IsInitialized checks if the task directory exists.
func IsInitialized(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// Init creates the task directory.
func Init(dir string, force bool) error {
	if IsInitialized(dir) && !force {
		return taskerrors.AlreadyInitializedError{Path: dir}
	}
	//nolint:gosec // G301: 0755 is appropriate for user-accessible task directory
	return os.MkdirAll(dir, 0o755)
}
