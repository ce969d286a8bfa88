//nolint:testpackage // Tests require internal access for thorough testing
package storage

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func openTestSQLiteSlot(t *testing.T, path, key string) *SQLiteSlot {
	t.Helper()
	slot, err := OpenSQLiteSlot(path, key, nil)
	if err != nil {
		t.Fatalf("OpenSQLiteSlot failed: %v", err)
	}
	t.Cleanup(func() { slot.Close() })
	return slot
}

func TestSQLiteSlotReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "tasks.db")
	slot := openTestSQLiteSlot(t, path, DefaultKey)

	data, err := slot.Read()
	if err != nil {
		t.Fatalf("Read of empty slot failed: %v", err)
	}
	if data != nil {
		t.Errorf("Read of empty slot = %q, want nil", data)
	}

	if err = slot.Write([]byte("first")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err = slot.Write([]byte("second")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	data, err = slot.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Read = %q, want %q", data, "second")
	}
}

func TestSQLiteSlotPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")

	encoded, err := Encode(sampleTasks())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	first, err := OpenSQLiteSlot(path, DefaultKey, nil)
	if err != nil {
		t.Fatalf("OpenSQLiteSlot failed: %v", err)
	}
	if err = first.Write(encoded); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err = first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := openTestSQLiteSlot(t, path, DefaultKey)
	data, err := second.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	tasks, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !slices.Equal(tasks, sampleTasks()) {
		t.Errorf("reloaded = %+v, want %+v", tasks, sampleTasks())
	}
}

func TestSQLiteSlotKeysAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	work := openTestSQLiteSlot(t, path, "work")

	if err := work.Write([]byte("w")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := work.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	home := openTestSQLiteSlot(t, path, "home")
	data, err := home.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if data != nil {
		t.Errorf("home slot = %q, want nil", data)
	}
}

func TestSQLiteSlotClosed(t *testing.T) {
	slot := openTestSQLiteSlot(t, filepath.Join(t.TempDir(), "tasks.db"), DefaultKey)
	if err := slot.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	_, err := slot.Read()
	var closed ClosedError
	if !errors.As(err, &closed) {
		t.Errorf("Read after Close error = %v, want ClosedError", err)
	}
	if err = slot.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}
