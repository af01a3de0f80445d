package conflict

import (
	"bytes"
	"errors"
	"io"
	"os/exec"

	"github.com/arthur-debert/neostow/pkg/logging"
	"github.com/arthur-debert/neostow/pkg/types"
)

// DefaultDiffCommand is the external tool used for comparisons
const DefaultDiffCommand = "diff"

// External compares paths by running `diff [-r] -u a b`.
// Exit status 0 means identical; any other exit status means the paths
// differ. Only a failure to start the command is an error.
type External struct {
	// Command is the diff executable, DefaultDiffCommand when empty
	Command string
	// Out receives diff's output; nil discards it
	Out io.Writer
}

// NewExternal creates an External comparator
func NewExternal(command string, out io.Writer) *External {
	return &External{Command: command, Out: out}
}

func (e *External) Compare(a, b string, recursive bool) (types.Comparison, error) {
	logger := logging.GetLogger("conflict.external")

	command := e.Command
	if command == "" {
		command = DefaultDiffCommand
	}

	var args []string
	if recursive {
		args = append(args, "-r")
	}
	args = append(args, "-u", a, b)

	var captured bytes.Buffer
	cmd := exec.Command(command, args...)
	if e.Out != nil {
		cmd.Stdout = io.MultiWriter(e.Out, &captured)
		cmd.Stderr = e.Out
	} else {
		cmd.Stdout = &captured
	}

	logger.Debug().Str("command", command).Strs("args", args).Msg("Executing command")

	err := cmd.Run()
	if err == nil {
		return types.Identical, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return types.Differs, err
	}

	stats, parseErr := ParseStats(captured.Bytes())
	if parseErr != nil {
		logger.Debug().Err(parseErr).Msg("Could not parse diff output")
	} else {
		logger.Debug().
			Int("exitCode", exitErr.ExitCode()).
			Int("files", stats.Files).
			Int("added", stats.Added).
			Int("removed", stats.Removed).
			Msg("Paths differ")
	}

	return types.Differs, nil
}

var _ types.Comparator = (*External)(nil)
