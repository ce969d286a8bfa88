// Package prompt asks the user to confirm destructive actions on a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/abatilo/tasks/internal/task"
)

// Prompter reads a yes/no answer for each task it is asked about.
// It satisfies store.Confirmer.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewTerminal prompts on stderr and reads stdin. When stdin is not a
// terminal every request is declined without prompting.
func NewTerminal() *Prompter {
	return NewFile(os.Stdin, os.Stderr)
}

// NewFile prompts on out and reads answers from in, but only when in is a
// terminal. Otherwise every request is declined without prompting.
func NewFile(in *os.File, out io.Writer) *Prompter {
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: term.IsTerminal(int(in.Fd())),
	}
}

// New prompts on out and reads answers from in.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, interactive: true}
}

// Confirm asks whether t may be deleted. Only "y" or "yes" approve.
func (p *Prompter) Confirm(t task.Task) bool {
	if !p.interactive {
		return false
	}

	fmt.Fprintf(p.out, "[%s] %s\nAre you sure you want to delete this task? [y/N] ", t.ID, t.Text)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
