// Package editor opens the manifest in the user's text editor.
package editor

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/neostow/pkg/errors"
	"github.com/arthur-debert/neostow/pkg/logging"
	"github.com/arthur-debert/neostow/pkg/types"
)

// DefaultEditor is used when neither the configuration nor $EDITOR names one
const DefaultEditor = "vim"

// Command launches an editor process attached to the given streams
type Command struct {
	// Name is the editor command line; extra words become arguments,
	// so "code --wait" works.
	Name   string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an editor bound to the process's terminal
func New(name string) *Command {
	return &Command{Name: name, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Resolve picks the editor: the configured one, then $EDITOR, then vim
func Resolve(configured string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return DefaultEditor
}

// Open runs the editor on path and waits for it to exit
func (c *Command) Open(path string) error {
	logger := logging.GetLogger("editor")

	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		fields = []string{DefaultEditor}
	}
	args := append(fields[1:], path)

	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	logger.Debug().Str("command", fields[0]).Strs("args", args).Msg("Executing command")

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, errors.ErrEditor, "editor failed").
			WithDetail("editor", c.Name).
			WithDetail("path", path)
	}
	return nil
}

var _ types.Editor = (*Command)(nil)
