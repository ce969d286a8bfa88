// Package tui is the interactive terminal front end for the task store.
//
// The model owns all transient presentation state: the cursor, the add
// form, the per-task edit state and the pending delete. None of it is
// persisted; only the store's collection is.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abatilo/tasks/internal/store"
	"github.com/abatilo/tasks/internal/task"
	"github.com/abatilo/tasks/internal/theme"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

// addTextLimit caps new task text. Edits are not capped so stored text of
// any length survives a round trip through the form.
const addTextLimit = 256

// editState is the in-progress edit of one task. It exists only between
// pressing edit and saving or cancelling.
type editState struct {
	id       task.ID
	priority task.Priority

	// original is the stored text; shown is what the input displays after
	// sanitizing it. Submitting shown unchanged keeps original.
	original string
	shown    string
}

var _ store.Confirmer = Model{}

// Model is the bubbletea model for the task list.
type Model struct {
	store *store.Store
	keys  KeyMap
	theme theme.Theme

	tasks  []task.Task // display order snapshot of the store
	cursor int
	mode   mode

	input       textinput.Model
	addPriority task.Priority
	editing     *editState
	pending     *task.Task
	approved    bool // answer for pending

	status string
	width  int
}

// NewModel creates a Model over s.
func NewModel(s *store.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "Task description"
	ti.CharLimit = addTextLimit
	ti.Width = 40

	m := Model{
		store:       s,
		keys:        DefaultKeyMap,
		theme:       theme.Default,
		mode:        modeList,
		input:       ti,
		addPriority: task.DefaultPriority,
		status:      "Press 'a' to add, 'e' to edit, 'd' to delete.",
	}
	m.refresh()
	return m
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(s *store.Store) error {
	program := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateList(msg)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-20, 10)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.addPriority = task.DefaultPriority
		m.input.CharLimit = addTextLimit
		m.input.SetValue("")
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		selected, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.input.CharLimit = 0
		m.input.SetValue(selected.Text)
		m.input.CursorEnd()
		m.editing = &editState{
			id:       selected.ID,
			priority: selected.Priority,
			original: selected.Text,
			shown:    m.input.Value(),
		}
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		selected, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.pending = &selected
		m.approved = false
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		m.status = "Cancelled"
		return m, nil

	case key.Matches(msg, m.keys.CyclePriority):
		if m.mode == modeEdit {
			m.editing.priority = task.Next(m.editing.priority)
		} else {
			m.addPriority = task.Next(m.addPriority)
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if !task.HasText(text) {
		m.status = "Task text cannot be empty"
		return m, nil
	}

	var err error
	if m.mode == modeEdit {
		if text == m.editing.shown {
			text = m.editing.original
		}
		id := m.editing.id
		_, err = m.store.Edit(id, text, m.editing.priority)
		if err == nil {
			m.status = "Saved task"
			m.refresh()
			m.moveTo(id)
		}
	} else {
		var tasks []task.Task
		tasks, err = m.store.Add(text, m.addPriority)
		if err == nil {
			m.status = "Added task"
			m.refresh()
			m.moveTo(tasks[len(tasks)-1].ID)
		}
	}
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.closeForm()
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.approved = true
	case key.Matches(msg, m.keys.No):
		m.approved = false
	default:
		return m, nil
	}

	before := len(m.store.Tasks())
	tasks, err := m.store.Delete(m.pending.ID, m)
	switch {
	case err != nil:
		m.status = fmt.Sprintf("delete failed: %v", err)
	case len(tasks) < before:
		m.status = "Deleted task"
	default:
		m.status = "Kept task"
	}
	m.pending = nil
	m.approved = false
	m.mode = modeList
	m.refresh()
	return m, nil
}

// Confirm implements store.Confirmer with the answer given in the delete
// modal. Only the pending task can be approved.
func (m Model) Confirm(t task.Task) bool {
	return m.approved && m.pending != nil && m.pending.ID == t.ID
}

// closeForm leaves add/edit mode and drops the transient edit state.
func (m *Model) closeForm() {
	m.mode = modeList
	m.editing = nil
	m.input.SetValue("")
	m.input.Blur()
}

// refresh re-reads the display order from the store and clamps the cursor.
func (m *Model) refresh() {
	m.tasks = m.store.DisplayOrder()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) moveTo(id task.ID) {
	if i := task.Index(m.tasks, id); i >= 0 {
		m.cursor = i
	}
}

func (m Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}
