// Package manifest reads .neostow manifests.
//
// A manifest maps source paths, relative to the manifest's directory, to
// destination directories:
//
//	# comment line
//	nvim        = $XDG_CONFIG_HOME      # inline comment
//	zsh/.zshrc  = ~
//
// Blank lines and lines starting with # are skipped. Any other # truncates
// the line. The first = separates the source from the destination and both
// sides are trimmed. Lines without = are ignored.
package manifest

import (
	"bufio"
	"io"
	"strings"
)

// DefaultFileName is the manifest looked up in the working directory
const DefaultFileName = ".neostow"

// Entry is one source-to-destination rule
type Entry struct {
	// Source is relative to the manifest's directory
	Source string
	// Dest is the destination directory template, before expansion
	Dest string
}

// ParseLine parses one manifest line. It reports false for blank lines,
// comments and lines that do not contain an =.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}

	if i := strings.IndexByte(line, '#'); i > 0 {
		line = strings.TrimSpace(line[:i])
	}
	if line == "" {
		return Entry{}, false
	}

	source, dest, ok := strings.Cut(line, "=")
	if !ok {
		return Entry{}, false
	}

	return Entry{
		Source: strings.TrimSpace(source),
		Dest:   strings.TrimSpace(dest),
	}, true
}

// Line is a raw manifest line with its 1-indexed position
type Line struct {
	Number int
	Text   string
}

// Entry parses the line
func (l Line) Entry() (Entry, bool) {
	return ParseLine(l.Text)
}

// Scanner reads a manifest one line at a time
type Scanner struct {
	r    *bufio.Reader
	line Line
	err  error
	done bool
}

// NewScanner returns a Scanner reading from r
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Scan advances to the next line. It returns false at the end of input or
// after a read error, which Err then reports.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	text, err := s.r.ReadString('\n')
	if err != nil {
		s.done = true
		if err != io.EOF {
			s.err = err
			return false
		}
		if text == "" {
			return false
		}
	}

	s.line = Line{
		Number: s.line.Number + 1,
		Text:   strings.TrimRight(text, "\r\n"),
	}
	return true
}

// Line returns the most recent line read by Scan
func (s *Scanner) Line() Line {
	return s.line
}

// Err returns the first non-EOF read error
func (s *Scanner) Err() error {
	return s.err
}
