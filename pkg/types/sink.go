package types

// Level is the severity of a user-facing message
type Level int

const (
	LevelFatal Level = iota
	LevelError
	LevelInfo
	LevelDebug
)

// String returns the label printed in front of messages of this level
func (l Level) String() string {
	switch l {
	case LevelFatal:
		return "FATAL"
	case LevelError:
		return "ERROR"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	}
	return "UNKNOWN"
}

// Sink receives user-facing output. Logf emits a labelled message at the
// given level, Printf emits an unlabelled line.
type Sink interface {
	Logf(level Level, format string, args ...interface{})
	Printf(format string, args ...interface{})
}
