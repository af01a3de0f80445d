package conflict

import (
	"io"
	"os/exec"

	"github.com/arthur-debert/neostow/pkg/errors"
	"github.com/arthur-debert/neostow/pkg/logging"
	"github.com/arthur-debert/neostow/pkg/types"
)

// Comparator tools accepted by NewComparator
const (
	ToolAuto     = "auto"
	ToolExternal = "external"
	ToolBuiltin  = "builtin"
)

// lookPath is swapped in tests
var lookPath = exec.LookPath

// NewComparator picks a comparator for tool. In auto mode the external
// command is used when it can be found on PATH, the builtin one otherwise.
// out receives the rendered differences and may be nil.
func NewComparator(tool, command string, fsys types.FS, out io.Writer) (types.Comparator, error) {
	logger := logging.GetLogger("conflict")

	if command == "" {
		command = DefaultDiffCommand
	}

	switch tool {
	case ToolExternal:
		return NewExternal(command, out), nil
	case ToolBuiltin:
		return NewBuiltin(fsys, out), nil
	case ToolAuto, "":
		if _, err := lookPath(command); err == nil {
			return NewExternal(command, out), nil
		}
		logger.Debug().Str("command", command).Msg("Diff command not found, using builtin comparator")
		return NewBuiltin(fsys, out), nil
	}

	return nil, errors.Newf(errors.ErrInvalidInput, "unknown diff tool %q", tool).
		WithDetail("tool", tool)
}
