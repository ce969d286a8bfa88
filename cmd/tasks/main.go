package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/abatilo/tasks/internal/config"
	taskerrors "github.com/abatilo/tasks/internal/errors"
	"github.com/abatilo/tasks/internal/logging"
	"github.com/abatilo/tasks/internal/output"
	"github.com/abatilo/tasks/internal/prompt"
	"github.com/abatilo/tasks/internal/store"
	"github.com/abatilo/tasks/internal/task"
	"github.com/abatilo/tasks/internal/tui"
)

//nolint:gochecknoglobals // CLI flags and formatter are package-level by design
var (
	jsonOutput bool
	noColor    bool
	configPath string
	logLevel   string

	formatter output.Formatter
	cfg       *config.Config
	logger    *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tasks",
		Short: "A prioritized task list",
		Long:  "tasks - A prioritized task list kept in a single persistent slot.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter()
			}
			if noColor {
				lipgloss.SetColorProfile(termenv.Ascii)
			}

			var err error
			if cfg, err = config.Load(configPath); err != nil {
				printError(err)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				printError(err)
			}
			logger = logging.New(level)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&configPath, "config", "", "Path to config file (default $"+config.EnvConfig+")")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		initCmd(),
		addCmd(),
		listCmd(),
		showCmd(),
		editCmd(),
		rmCmd(),
		tuiCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withStore runs fn against the configured store and prints its output,
// or its error and exits.
func withStore(fn func(s *store.Store) (string, error)) {
	out, err := runWithStore(func() (*store.Store, func() error, error) {
		return openStore(cfg, logger)
	}, fn)
	if err != nil {
		printError(err)
	}
	printOutput(out)
}

// runWithStore opens a store, runs fn and closes the store before
// returning, whatever fn returned.
func runWithStore(
	open func() (*store.Store, func() error, error),
	fn func(s *store.Store) (string, error),
) (string, error) {
	s, closeFn, err := open()
	if err != nil {
		return "", err
	}
	out, err := fn(s)
	if closeErr := closeFn(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", err
	}
	return out, nil
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

// initCmd implements 'tasks init'.
func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the task slot",
		Run: func(_ *cobra.Command, _ []string) {
			where, err := initSlot(cfg, logger, force)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Initialized tasks at %s", where)))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinitialize even if already exists")
	return cmd
}

// addCmd implements 'tasks add'.
func addCmd() *cobra.Command {
	priority := newPriorityValue(task.DefaultPriority)
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			withStore(func(s *store.Store) (string, error) {
				return addTask(s, formatter, args[0], priority.Priority())
			})
		},
	}
	cmd.Flags().VarP(priority, "priority", "p", "Priority (high, medium, low)")
	return cmd
}

func addTask(s *store.Store, f output.Formatter, text string, p task.Priority) (string, error) {
	if !task.HasText(text) {
		return f.FormatMessage("Nothing to add"), nil
	}
	tasks, err := s.Add(text, p)
	if err != nil {
		return "", err
	}
	return f.FormatTask(tasks[len(tasks)-1]), nil
}

// listCmd implements 'tasks list'.
func listCmd() *cobra.Command {
	var stored bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, highest priority first",
		Run: func(_ *cobra.Command, _ []string) {
			withStore(func(s *store.Store) (string, error) {
				return listTasks(s, formatter, stored), nil
			})
		},
	}
	cmd.Flags().BoolVar(&stored, "stored", false, "List in stored (insertion) order")
	return cmd
}

func listTasks(s *store.Store, f output.Formatter, stored bool) string {
	if stored {
		return f.FormatTaskList(s.Tasks())
	}
	return f.FormatTaskList(s.DisplayOrder())
}

// showCmd implements 'tasks show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			withStore(func(s *store.Store) (string, error) {
				return showTask(s, formatter, task.ID(args[0]))
			})
		},
	}
}

func showTask(s *store.Store, f output.Formatter, id task.ID) (string, error) {
	t, ok := s.Get(id)
	if !ok {
		return "", taskerrors.TaskNotFoundError{ID: string(id)}
	}
	return f.FormatTask(t), nil
}

// editCmd implements 'tasks edit'.
func editCmd() *cobra.Command {
	var text string
	priority := newPriorityValue(task.DefaultPriority)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's text or priority",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			var newText *string
			if c.Flags().Changed("text") {
				newText = &text
			}
			var newPriority *task.Priority
			if priority.set {
				p := priority.Priority()
				newPriority = &p
			}
			withStore(func(s *store.Store) (string, error) {
				return editTask(s, formatter, task.ID(args[0]), newText, newPriority)
			})
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "New task text")
	cmd.Flags().VarP(priority, "priority", "p", "New priority (high, medium, low)")
	return cmd
}

// editTask applies the fields that are non-nil and keeps the rest.
func editTask(s *store.Store, f output.Formatter, id task.ID, text *string, p *task.Priority) (string, error) {
	current, ok := s.Get(id)
	if !ok {
		return f.FormatMessage(fmt.Sprintf("No task %s", id)), nil
	}

	newText, newPriority := current.Text, current.Priority
	if text != nil {
		newText = *text
	}
	if p != nil {
		newPriority = *p
	}

	if _, err := s.Edit(id, newText, newPriority); err != nil {
		return "", err
	}
	updated, _ := s.Get(id)
	return f.FormatTask(updated), nil
}

// rmCmd implements 'tasks rm'.
func rmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			var confirm store.Confirmer = prompt.NewTerminal()
			if yes {
				confirm = store.Confirmed
			}
			withStore(func(s *store.Store) (string, error) {
				return removeTask(s, formatter, task.ID(args[0]), confirm)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}

func removeTask(s *store.Store, f output.Formatter, id task.ID, confirm store.Confirmer) (string, error) {
	if _, ok := s.Get(id); !ok {
		return f.FormatMessage(fmt.Sprintf("No task %s", id)), nil
	}

	before := len(s.Tasks())
	tasks, err := s.Delete(id, confirm)
	if err != nil {
		return "", err
	}
	if len(tasks) == before {
		return f.FormatMessage(fmt.Sprintf("Kept task %s", id)), nil
	}
	return f.FormatMessage(fmt.Sprintf("Removed task %s", id)), nil
}

// tuiCmd implements 'tasks tui'.
func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list",
		Run: func(_ *cobra.Command, _ []string) {
			withStore(func(s *store.Store) (string, error) {
				return "", tui.Run(s)
			})
		},
	}
}
