package storage

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	taskerrors "github.com/abatilo/tasks/internal/errors"
)

const (
	tasksDir   = ".tasks"
	defaultDir = "default"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// FindProjectRoot walks up from cwd looking for .git directory.
// Returns the directory containing .git, or error if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		gitPath := filepath.Join(dir, ".git")
		info, err := os.Stat(gitPath)
		if err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", taskerrors.NotInRepoError{}
		}
		dir = parent
	}
}

// SanitizePath converts an absolute path to a safe directory name.
// "/Users/abatilo/myproject" -> "Users-abatilo-myproject"
func SanitizePath(path string) string {
	result := strings.TrimPrefix(path, "/")
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// DefaultDir returns the task directory for the current working directory:
// ~/.tasks/<sanitized-project-root> inside a git repository, and
// ~/.tasks/default everywhere else.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	projectRoot, err := FindProjectRoot()
	if errors.As(err, &taskerrors.NotInRepoError{}) {
		return filepath.Join(home, tasksDir, defaultDir), nil
	}
	if err != nil {
		return "", err
	}
	return filepath.Join(home, tasksDir, SanitizePath(projectRoot)), nil
}
