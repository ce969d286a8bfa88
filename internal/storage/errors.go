package storage

import "fmt"

// ClosedError indicates a slot was used after Close.
type ClosedError struct {
	Key string
}

func (e ClosedError) Error() string {
	return fmt.Sprintf("slot %s is closed", e.Key)
}
