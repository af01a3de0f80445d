// Package confirmations provides the console yes/no prompt.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/neostow/pkg/logging"
	"github.com/arthur-debert/neostow/pkg/types"
)

// ConsoleDialog implements types.Prompter over a pair of streams
type ConsoleDialog struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleDialog creates a dialog reading answers from in and writing
// questions to out. The reader is buffered once so consecutive prompts
// never lose typed-ahead answers.
func NewConsoleDialog(in io.Reader, out io.Writer) *ConsoleDialog {
	return &ConsoleDialog{in: bufio.NewReader(in), out: out}
}

// Confirm asks question and waits for an answer. Only "y" or "yes", in any
// case, is an approval; an empty answer or a read failure declines.
func (d *ConsoleDialog) Confirm(question string) bool {
	logger := logging.GetLogger("confirmations")

	_, _ = fmt.Fprintf(d.out, "%s [y/N] ", question)

	response, err := d.in.ReadString('\n')
	if err != nil && response == "" {
		logger.Debug().Err(err).Msg("Failed to read user input, declining")
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	approved := response == "y" || response == "yes"

	logger.Debug().Str("question", question).Bool("approved", approved).Msg("Confirmation answered")
	return approved
}

var _ types.Prompter = (*ConsoleDialog)(nil)
