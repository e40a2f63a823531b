package cli

import (
	"os"

	"github.com/jakoblorz/go-builderdata/internal/tui"
	"github.com/mattn/go-isatty"
)

// Prompter decides how the run talks to a terminal.
type Prompter interface {
	// Interactive reports whether the user can answer prompts.
	Interactive() bool

	// Progress reports whether a progress bar can be drawn.
	Progress() bool

	ConfirmOverwrite(dir string, existing int) (bool, error)
}

type terminalPrompter struct {
	in  *os.File
	out *os.File
}

// NewTerminalPrompter prompts on in when both in and out are terminals.
func NewTerminalPrompter(in, out *os.File) Prompter {
	return &terminalPrompter{in: in, out: out}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *terminalPrompter) Interactive() bool {
	return isTerminal(p.in) && isTerminal(p.out)
}

func (p *terminalPrompter) Progress() bool {
	return isTerminal(p.out)
}

func (p *terminalPrompter) ConfirmOverwrite(dir string, existing int) (bool, error) {
	return tui.ConfirmOverwrite(dir, existing)
}

// NonInteractive never prompts and never draws progress.
type NonInteractive struct{}

func (NonInteractive) Interactive() bool { return false }
func (NonInteractive) Progress() bool    { return false }
func (NonInteractive) ConfirmOverwrite(string, int) (bool, error) {
	return false, nil
}
