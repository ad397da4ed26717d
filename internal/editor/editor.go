package editor

import (
	"os"
	"os/exec"
	"strings"
)

// Editor handles editor resolution and invocation.
type Editor struct {
	override string
}

// NewEditor creates a new Editor. A non-empty override wins over the
// environment.
func NewEditor(override string) *Editor {
	return &Editor{override: override}
}

// Resolve returns the editor command to use.
// Order: override > $VISUAL > $EDITOR > vim
func (e *Editor) Resolve() string {
	if e.override != "" {
		return e.override
	}

	for _, env := range []string{"VISUAL", "EDITOR"} {
		if editor := os.Getenv(env); editor != "" {
			return editor
		}
	}

	return "vim"
}

// Command builds the command that opens path. Editor values with arguments
// such as "code --wait" are split on whitespace.
func (e *Editor) Command(path string) *exec.Cmd {
	fields := strings.Fields(e.Resolve())
	args := append(fields[1:], path)
	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Open edits path in place and waits for the editor to exit.
func (e *Editor) Open(path string) error {
	return e.Command(path).Run()
}
