package storage

// MemorySlot keeps the value in process memory. Nothing survives a restart.
type MemorySlot struct {
	key  string
	data []byte

	// WriteErr, when set, is returned by Write without storing anything.
	WriteErr error
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot(key string) *MemorySlot {
	return &MemorySlot{key: key}
}

// Key returns the slot name.
func (s *MemorySlot) Key() string {
	return s.key
}

func (s *MemorySlot) Read() ([]byte, error) {
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(data []byte) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.data = append([]byte(nil), data...)
	return nil
}
