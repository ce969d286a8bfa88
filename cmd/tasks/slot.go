package main

import (
	"fmt"
	"log/slog"

	"github.com/abatilo/tasks/internal/config"
	taskerrors "github.com/abatilo/tasks/internal/errors"
	"github.com/abatilo/tasks/internal/storage"
	"github.com/abatilo/tasks/internal/store"
)

// openSlot builds the slot selected by cfg. The returned close func is
// never nil.
func openSlot(cfg *config.Config, logger *slog.Logger) (storage.Slot, func() error, error) {
	noop := func() error { return nil }

	if cfg.Backend == config.BackendMemory {
		return storage.NewMemorySlot(cfg.Key), noop, nil
	}

	dir, err := cfg.ResolveDir()
	if err != nil {
		return nil, noop, err
	}

	switch cfg.Backend {
	case config.BackendFile:
		logger.Debug("using file slot", "dir", dir, "key", cfg.Key)
		return storage.NewFileSlot(dir, cfg.Key), noop, nil
	case config.BackendSQLite:
		path := cfg.DatabasePath(dir)
		if !storage.IsInitialized(dir) {
			if err = storage.Init(dir, true); err != nil {
				return nil, noop, fmt.Errorf("creating %s: %w", dir, err)
			}
		}
		slot, err := storage.OpenSQLiteSlot(path, cfg.Key, logger)
		if err != nil {
			return nil, noop, err
		}
		return slot, slot.Close, nil
	default:
		return nil, noop, taskerrors.UnknownBackendError{Backend: string(cfg.Backend)}
	}
}

// openStore loads the store over the configured slot.
func openStore(cfg *config.Config, logger *slog.Logger) (*store.Store, func() error, error) {
	slot, closeFn, err := openSlot(cfg, logger)
	if err != nil {
		return nil, closeFn, err
	}
	s, err := store.New(slot, logger)
	if err != nil {
		_ = closeFn()
		return nil, func() error { return nil }, err
	}
	return s, closeFn, nil
}

// initSlot creates the slot location and writes an empty collection if the
// slot holds nothing yet. It returns where the slot lives.
func initSlot(cfg *config.Config, logger *slog.Logger, force bool) (string, error) {
	where := "memory"
	if cfg.Backend != config.BackendMemory {
		dir, err := cfg.ResolveDir()
		if err != nil {
			return "", err
		}
		if err = storage.Init(dir, force); err != nil {
			return "", err
		}
		where = dir
	}

	slot, closeFn, err := openSlot(cfg, logger)
	if err != nil {
		return "", err
	}
	defer func() { _ = closeFn() }()

	data, err := slot.Read()
	if err != nil {
		return "", err
	}
	if data == nil {
		empty, err := storage.Encode(nil)
		if err != nil {
			return "", err
		}
		if err = slot.Write(empty); err != nil {
			return "", err
		}
	}
	return where, nil
}
