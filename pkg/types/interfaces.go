package types

import "io/fs"

// FS defines the filesystem operations neostow performs
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error

	// Removal
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat does not follow a trailing symlink
	Lstat(name string) (fs.FileInfo, error)
}

// Comparison is the outcome of a content comparison
type Comparison int

const (
	// Identical means no information would be lost by replacing one side
	Identical Comparison = iota
	// Differs means the two sides hold different content
	Differs
)

func (c Comparison) String() string {
	if c == Identical {
		return "identical"
	}
	return "differs"
}

// Comparator compares the content of two paths, recursing into
// directories when recursive is set.
type Comparator interface {
	Compare(a, b string, recursive bool) (Comparison, error)
}

// Prompter asks the user a yes/no question. Only an explicit affirmative
// answer returns true.
type Prompter interface {
	Confirm(question string) bool
}

// Editor opens a file in an interactive editor and waits for it to exit.
type Editor interface {
	Open(path string) error
}
