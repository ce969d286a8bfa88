package storage

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/jsonc"

	"github.com/abatilo/tasks/internal/task"
)

// Encode serializes the full collection as an indented JSON array.
// A nil collection encodes as an empty array, never as null.
func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses a stored collection. Comments and trailing commas are
// tolerated so hand-edited slots still load. Blank input and a JSON null
// decode to an empty collection. Repeated ids are returned as stored.
func Decode(data []byte) ([]task.Task, error) {
	clean := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(clean) == 0 {
		return []task.Task{}, nil
	}
	if clean[0] != '[' && !bytes.Equal(clean, []byte("null")) {
		return nil, &parseError{"stored value is not a JSON array"}
	}

	var tasks []task.Task
	if err := json.Unmarshal(clean, &tasks); err != nil {
		return nil, &parseError{"invalid JSON: " + err.Error()}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// parseError represents a parsing error.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}
