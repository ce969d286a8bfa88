//nolint:testpackage // Tests require internal access for thorough testing
package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abatilo/tasks/internal/config"
	taskerrors "github.com/abatilo/tasks/internal/errors"
	"github.com/abatilo/tasks/internal/logging"
	"github.com/abatilo/tasks/internal/output"
	"github.com/abatilo/tasks/internal/prompt"
	"github.com/abatilo/tasks/internal/storage"
	"github.com/abatilo/tasks/internal/store"
	"github.com/abatilo/tasks/internal/task"
)

func TestPriorityValue(t *testing.T) {
	tests := []struct {
		input   string
		want    task.Priority
		wantErr bool
	}{
		{"high", task.PriorityHigh, false},
		{"HIGH", task.PriorityHigh, false},
		{"Medium", task.PriorityMedium, false},
		{"low", task.PriorityLow, false},
		{"critical", task.PriorityMedium, true},
		{"", task.PriorityMedium, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := newPriorityValue(task.DefaultPriority)
			err := v.Set(tt.input)

			if tt.wantErr {
				var perr taskerrors.InvalidPriorityError
				if !errors.As(err, &perr) {
					t.Fatalf("Set(%q) error = %v, want InvalidPriorityError", tt.input, err)
				}
				if v.set {
					t.Error("failed Set marked the value as set")
				}
			} else if err != nil {
				t.Fatalf("Set(%q) unexpected error: %v", tt.input, err)
			}
			if v.Priority() != tt.want {
				t.Errorf("Priority() = %q, want %q", v.Priority(), tt.want)
			}
		})
	}
}

func TestPriorityValueString(t *testing.T) {
	v := newPriorityValue(task.PriorityHigh)
	if v.String() != "high" {
		t.Errorf("String() = %q, want high", v.String())
	}
	if v.Type() != "priority" {
		t.Errorf("Type() = %q, want priority", v.Type())
	}
}

func testConfig(t *testing.T, backend config.Backend) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Backend = backend
	cfg.Dir = filepath.Join(t.TempDir(), "slot")
	return cfg
}

func TestOpenStoreBackends(t *testing.T) {
	for _, backend := range []config.Backend{config.BackendFile, config.BackendSQLite, config.BackendMemory} {
		t.Run(string(backend), func(t *testing.T) {
			cfg := testConfig(t, backend)
			logger := logging.Discard()

			s, closeFn, err := openStore(cfg, logger)
			if err != nil {
				t.Fatalf("openStore failed: %v", err)
			}
			if _, err = s.Add("Persist me", task.PriorityHigh); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if err = closeFn(); err != nil {
				t.Fatalf("close failed: %v", err)
			}

			reopened, closeFn, err := openStore(cfg, logger)
			if err != nil {
				t.Fatalf("reopen failed: %v", err)
			}
			defer func() { _ = closeFn() }()

			want := 1
			if backend == config.BackendMemory {
				want = 0
			}
			if got := len(reopened.Tasks()); got != want {
				t.Errorf("reopened store has %d tasks, want %d", got, want)
			}
		})
	}
}

func TestOpenSlotUnknownBackend(t *testing.T) {
	cfg := testConfig(t, config.Backend("redis"))

	_, closeFn, err := openSlot(cfg, logging.Discard())
	if closeFn == nil {
		t.Fatal("close func must never be nil")
	}
	var berr taskerrors.UnknownBackendError
	if !errors.As(err, &berr) {
		t.Errorf("error = %v, want UnknownBackendError", err)
	}
}

func TestInitSlot(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	logger := logging.Discard()

	where, err := initSlot(cfg, logger, false)
	if err != nil {
		t.Fatalf("initSlot failed: %v", err)
	}
	if where != cfg.Dir {
		t.Errorf("initSlot location = %q, want %q", where, cfg.Dir)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Dir, cfg.Key+".json"))
	if err != nil {
		t.Fatalf("slot file not written: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("slot contents = %q, want empty list", data)
	}

	_, err = initSlot(cfg, logger, false)
	var aerr taskerrors.AlreadyInitializedError
	if !errors.As(err, &aerr) {
		t.Errorf("second init error = %v, want AlreadyInitializedError", err)
	}
}

func TestInitSlotKeepsExistingTasks(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	logger := logging.Discard()

	slot := storage.NewFileSlot(cfg.Dir, cfg.Key)
	data, err := storage.Encode([]task.Task{{ID: "abc", Text: "Keep", Priority: task.PriorityLow}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err = slot.Write(data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err = initSlot(cfg, logger, true); err != nil {
		t.Fatalf("forced initSlot failed: %v", err)
	}

	s, closeFn, err := openStore(cfg, logger)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer func() { _ = closeFn() }()
	if _, ok := s.Get("abc"); !ok {
		t.Error("forced init discarded existing tasks")
	}
}

func newMemoryStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(storage.NewMemorySlot(storage.DefaultKey), nil)
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	return s
}

func TestAddTaskBlankText(t *testing.T) {
	s := newMemoryStore(t)
	f := output.NewHumanFormatter()

	for _, text := range []string{"", "   ", "\t\n"} {
		out, err := addTask(s, f, text, task.PriorityHigh)
		if err != nil {
			t.Fatalf("addTask(%q) unexpected error: %v", text, err)
		}
		if out != "Nothing to add\n" {
			t.Errorf("addTask(%q) output = %q, want Nothing to add", text, out)
		}
	}
	if len(s.Tasks()) != 0 {
		t.Errorf("blank adds created %v", s.Tasks())
	}
}

func TestAddTask(t *testing.T) {
	s := newMemoryStore(t)

	out, err := addTask(s, output.NewJSONFormatter(), "Buy milk", task.PriorityHigh)
	if err != nil {
		t.Fatalf("addTask failed: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Priority != task.PriorityHigh {
		t.Fatalf("store = %+v, want one High task", tasks)
	}
	if !strings.Contains(out, `"id": "`+string(tasks[0].ID)+`"`) {
		t.Errorf("output %q does not show the new task", out)
	}
}

func TestListTasksOrder(t *testing.T) {
	s := newMemoryStore(t)
	for _, add := range []struct {
		text string
		p    task.Priority
	}{{"A", task.PriorityLow}, {"B", task.PriorityHigh}, {"C", task.PriorityMedium}} {
		if _, err := s.Add(add.text, add.p); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	f := output.NewHumanFormatter()

	order := func(out string) string {
		var sb strings.Builder
		for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
			sb.WriteString(line[len(line)-1:])
		}
		return sb.String()
	}

	if got := order(listTasks(s, f, false)); got != "BCA" {
		t.Errorf("display order = %s, want BCA", got)
	}
	if got := order(listTasks(s, f, true)); got != "ABC" {
		t.Errorf("stored order = %s, want ABC", got)
	}
}

func TestShowTaskMissing(t *testing.T) {
	s := newMemoryStore(t)

	_, err := showTask(s, output.NewHumanFormatter(), "nope")
	var nf taskerrors.TaskNotFoundError
	if !errors.As(err, &nf) || nf.ID != "nope" {
		t.Errorf("showTask error = %v, want TaskNotFoundError for nope", err)
	}
}

func TestEditTaskKeepsUnsetFields(t *testing.T) {
	s := newMemoryStore(t)
	tasks, err := s.Add("Original text", task.PriorityLow)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	id := tasks[0].ID
	f := output.NewHumanFormatter()

	high := task.PriorityHigh
	if _, err = editTask(s, f, id, nil, &high); err != nil {
		t.Fatalf("editTask failed: %v", err)
	}
	got, _ := s.Get(id)
	if got.Text != "Original text" || got.Priority != task.PriorityHigh {
		t.Errorf("after priority edit = %+v, want Original text/High", got)
	}

	text := "Renamed"
	if _, err = editTask(s, f, id, &text, nil); err != nil {
		t.Fatalf("editTask failed: %v", err)
	}
	got, _ = s.Get(id)
	if got.Text != "Renamed" || got.Priority != task.PriorityHigh {
		t.Errorf("after text edit = %+v, want Renamed/High", got)
	}
}

func TestEditTaskMissingID(t *testing.T) {
	s := newMemoryStore(t)

	text := "x"
	out, err := editTask(s, output.NewHumanFormatter(), "nope", &text, nil)
	if err != nil {
		t.Fatalf("editTask unexpected error: %v", err)
	}
	if out != "No task nope\n" {
		t.Errorf("output = %q, want No task nope", out)
	}
}

func TestRemoveTask(t *testing.T) {
	s := newMemoryStore(t)
	tasks, err := s.Add("Doomed", task.PriorityLow)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	id := tasks[0].ID

	out, err := removeTask(s, output.NewHumanFormatter(), id, store.Confirmed)
	if err != nil {
		t.Fatalf("removeTask failed: %v", err)
	}
	if !strings.HasPrefix(out, "Removed task") || len(s.Tasks()) != 0 {
		t.Errorf("output = %q tasks = %v, want removal", out, s.Tasks())
	}
}

func TestRemoveTaskDeclinesWithoutTerminal(t *testing.T) {
	s := newMemoryStore(t)
	tasks, err := s.Add("Safe", task.PriorityLow)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	id := tasks[0].ID

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	if _, err = w.WriteString("y\n"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out, err := removeTask(s, output.NewHumanFormatter(), id, prompt.NewFile(r, os.Stderr))
	if err != nil {
		t.Fatalf("removeTask failed: %v", err)
	}
	if out != "Kept task "+string(id)+"\n" {
		t.Errorf("output = %q, want Kept task", out)
	}
	if len(s.Tasks()) != 1 {
		t.Error("task removed without a terminal to confirm on")
	}
}

func TestRemoveTaskMissingID(t *testing.T) {
	s := newMemoryStore(t)
	asked := false
	confirm := store.ConfirmFunc(func(task.Task) bool {
		asked = true
		return true
	})

	out, err := removeTask(s, output.NewHumanFormatter(), "nope", confirm)
	if err != nil {
		t.Fatalf("removeTask unexpected error: %v", err)
	}
	if out != "No task nope\n" || asked {
		t.Errorf("output = %q asked = %v, want No task without asking", out, asked)
	}
}

func TestRunWithStoreClosesOnEveryPath(t *testing.T) {
	failure := errors.New("write failed")
	closeFailure := errors.New("close failed")

	tests := []struct {
		name     string
		fnErr    error
		closeErr error
		wantOut  string
		wantErr  error
	}{
		{"success", nil, nil, "ok", nil},
		{"command error", failure, nil, "", failure},
		{"close error", nil, closeFailure, "", closeFailure},
		{"command error wins", failure, closeFailure, "", failure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closed := 0
			open := func() (*store.Store, func() error, error) {
				return newMemoryStore(t), func() error {
					closed++
					return tt.closeErr
				}, nil
			}

			out, err := runWithStore(open, func(*store.Store) (string, error) {
				if tt.fnErr != nil {
					return "", tt.fnErr
				}
				return "ok", nil
			})

			if closed != 1 {
				t.Errorf("close called %d times, want 1", closed)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if out != tt.wantOut {
				t.Errorf("output = %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestRunWithStoreOpenFailure(t *testing.T) {
	openErr := errors.New("cannot open")
	ran := false

	_, err := runWithStore(func() (*store.Store, func() error, error) {
		return nil, func() error { return nil }, openErr
	}, func(*store.Store) (string, error) {
		ran = true
		return "", nil
	})

	if !errors.Is(err, openErr) {
		t.Errorf("error = %v, want %v", err, openErr)
	}
	if ran {
		t.Error("command ran without a store")
	}
}

func TestRunWithStoreClosesSQLiteSlot(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	logger := logging.Discard()

	var opened *store.Store
	_, err := runWithStore(func() (*store.Store, func() error, error) {
		return openStore(cfg, logger)
	}, func(s *store.Store) (string, error) {
		opened = s
		if _, err := s.Add("Persist me", task.PriorityLow); err != nil {
			return "", err
		}
		return "", taskerrors.TaskNotFoundError{ID: "later"}
	})
	var nf taskerrors.TaskNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want TaskNotFoundError", err)
	}

	_, err = opened.Add("after close", task.PriorityLow)
	var closed storage.ClosedError
	if !errors.As(err, &closed) {
		t.Errorf("Add after runWithStore error = %v, want ClosedError", err)
	}
}
