package conflict

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/arthur-debert/neostow/pkg/types"
	"github.com/pmezard/go-difflib/difflib"
)

// Builtin compares paths in-process through a types.FS. It mirrors the
// verdicts of `diff -r`: names present on one side only, a file facing a
// directory, and differing bytes all count as differences. When Out is set
// a unified diff of each differing text file is written to it.
type Builtin struct {
	FS  types.FS
	Out io.Writer
}

// NewBuiltin creates a Builtin comparator
func NewBuiltin(fsys types.FS, out io.Writer) *Builtin {
	return &Builtin{FS: fsys, Out: out}
}

func (b *Builtin) Compare(a, c string, recursive bool) (types.Comparison, error) {
	same, err := b.compare(a, c, recursive)
	if err != nil {
		return types.Differs, err
	}
	if same {
		return types.Identical, nil
	}
	return types.Differs, nil
}

func (b *Builtin) compare(a, c string, recursive bool) (bool, error) {
	infoA, err := b.FS.Stat(a)
	if err != nil {
		return false, err
	}
	infoC, err := b.FS.Stat(c)
	if err != nil {
		return false, err
	}

	switch {
	case infoA.IsDir() && infoC.IsDir():
		if !recursive {
			return false, nil
		}
		return b.compareDirs(a, c)
	case infoA.IsDir() != infoC.IsDir():
		b.printf("File %s is a %s while file %s is a %s\n", a, kind(infoA), c, kind(infoC))
		return false, nil
	}

	return b.compareFiles(a, c)
}

func (b *Builtin) compareDirs(a, c string) (bool, error) {
	namesA, err := b.names(a)
	if err != nil {
		return false, err
	}
	namesC, err := b.names(c)
	if err != nil {
		return false, err
	}

	all := make(map[string]struct{}, len(namesA)+len(namesC))
	for n := range namesA {
		all[n] = struct{}{}
	}
	for n := range namesC {
		all[n] = struct{}{}
	}
	sorted := make([]string, 0, len(all))
	for n := range all {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	same := true
	for _, name := range sorted {
		_, inA := namesA[name]
		_, inC := namesC[name]
		switch {
		case !inC:
			b.printf("Only in %s: %s\n", a, name)
			same = false
		case !inA:
			b.printf("Only in %s: %s\n", c, name)
			same = false
		default:
			ok, err := b.compare(filepath.Join(a, name), filepath.Join(c, name), true)
			if err != nil {
				return false, err
			}
			same = same && ok
		}
	}
	return same, nil
}

func (b *Builtin) names(dir string) (map[string]struct{}, error) {
	entries, err := b.FS.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Name()] = struct{}{}
	}
	return names, nil
}

func (b *Builtin) compareFiles(a, c string) (bool, error) {
	dataA, err := b.FS.ReadFile(a)
	if err != nil {
		return false, err
	}
	dataC, err := b.FS.ReadFile(c)
	if err != nil {
		return false, err
	}
	if bytes.Equal(dataA, dataC) {
		return true, nil
	}

	if b.Out == nil {
		return false, nil
	}
	if !utf8.Valid(dataA) || !utf8.Valid(dataC) {
		b.printf("Binary files %s and %s differ\n", a, c)
		return false, nil
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(dataA)),
		B:        difflib.SplitLines(string(dataC)),
		FromFile: a,
		ToFile:   c,
		Context:  3,
	})
	if err != nil {
		return false, err
	}
	b.printf("%s", text)
	return false, nil
}

func (b *Builtin) printf(format string, args ...interface{}) {
	if b.Out != nil {
		_, _ = fmt.Fprintf(b.Out, format, args...)
	}
}

func kind(info fs.FileInfo) string {
	if info.IsDir() {
		return "directory"
	}
	return "regular file"
}

var _ types.Comparator = (*Builtin)(nil)
