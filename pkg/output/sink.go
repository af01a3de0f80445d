// Package output renders neostow's user-facing messages on the terminal.
//
// Messages carry one of four severities. Fatal and Error messages go to
// stderr, Info and Debug messages and unlabelled lines go to stdout. Each
// labelled message is prefixed with a colored tag such as "[INFO]:".
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/arthur-debert/neostow/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color modes accepted by ColorEnabled
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ConsoleSink implements types.Sink for a pair of terminal streams
type ConsoleSink struct {
	mu        sync.Mutex
	out       io.Writer
	errOut    io.Writer
	outStyles map[string]lipgloss.Style
	errStyles map[string]lipgloss.Style
}

// NewConsoleSink creates a sink writing to out and errOut. When color is
// false every style renders as plain text.
func NewConsoleSink(out, errOut io.Writer, color bool) *ConsoleSink {
	return &ConsoleSink{
		out:       out,
		errOut:    errOut,
		outStyles: defaultStyles(newRenderer(out, color)),
		errStyles: defaultStyles(newRenderer(errOut, color)),
	}
}

func newRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Logf writes a labelled message at the given level
func (s *ConsoleSink) Logf(level types.Level, format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, styles := s.out, s.outStyles
	if level == types.LevelFatal || level == types.LevelError {
		w, styles = s.errOut, s.errStyles
	}

	label := styles[styleFor(level)].Render("[" + level.String() + "]:")
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n", label, strings.TrimRight(msg, "\n"))
}

// Printf writes an unlabelled line to stdout
func (s *ConsoleSink) Printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = io.WriteString(s.out, msg)
}

func styleFor(level types.Level) string {
	switch level {
	case types.LevelFatal:
		return "Fatal"
	case types.LevelError:
		return "Error"
	case types.LevelInfo:
		return "Info"
	default:
		return "Debug"
	}
}

// ColorEnabled resolves a color mode against the given stream. In auto
// mode color is used only when f is a terminal.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var _ types.Sink = (*ConsoleSink)(nil)
