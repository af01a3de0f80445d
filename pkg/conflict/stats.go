package conflict

import (
	"bytes"

	"github.com/sourcegraph/go-diff/diff"
)

// Stats summarises a unified diff
type Stats struct {
	Files   int
	Hunks   int
	Added   int
	Removed int
}

// ParseStats counts files, hunks and changed lines in unified diff output,
// including the multi-file output of `diff -r -u`.
func ParseStats(unified []byte) (Stats, error) {
	var stats Stats
	if len(bytes.TrimSpace(unified)) == 0 {
		return stats, nil
	}

	fileDiffs, err := diff.NewMultiFileDiffReader(bytes.NewReader(unified)).ReadAllFiles()
	if err != nil {
		return stats, err
	}

	stats.Files = len(fileDiffs)
	for _, fd := range fileDiffs {
		stats.Hunks += len(fd.Hunks)
		s := fd.Stat()
		stats.Added += int(s.Added + s.Changed)
		stats.Removed += int(s.Deleted + s.Changed)
	}
	return stats, nil
}
