package testutil

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arthur-debert/neostow/pkg/types"
)

// Message is one recorded sink emission. Printf lines carry Plain = true.
type Message struct {
	Level types.Level
	Plain bool
	Text  string
}

// RecordingSink implements types.Sink by keeping every message
type RecordingSink struct {
	mu       sync.Mutex
	Messages []Message
}

// NewRecordingSink creates an empty recording sink
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Logf(level types.Level, format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, Message{Level: level, Text: fmt.Sprintf(format, args...)})
}

func (s *RecordingSink) Printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	s.Messages = append(s.Messages, Message{Plain: true, Text: text})
}

// Texts returns the text of every message at level
func (s *RecordingSink) Texts(level types.Level) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, m := range s.Messages {
		if !m.Plain && m.Level == level {
			out = append(out, m.Text)
		}
	}
	return out
}

// Lines returns the text of every Printf message
func (s *RecordingSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, m := range s.Messages {
		if m.Plain {
			out = append(out, m.Text)
		}
	}
	return out
}

// String renders all messages the way the console sink would, uncolored
func (s *RecordingSink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, m := range s.Messages {
		if !m.Plain {
			b.WriteString("[" + m.Level.String() + "]: ")
		}
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	return b.String()
}

var _ types.Sink = (*RecordingSink)(nil)
