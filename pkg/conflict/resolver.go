// Package conflict decides whether replacing an existing destination needs
// the user's confirmation.
//
// A destination that is a real file or directory may hold content that is
// not in the dotfiles tree. The Resolver compares it with the source and
// asks for a prompt only when the two differ; replacing identical content
// loses nothing.
package conflict

import (
	"github.com/arthur-debert/neostow/pkg/errors"
	"github.com/arthur-debert/neostow/pkg/logging"
	"github.com/arthur-debert/neostow/pkg/types"
)

// Resolver compares a source with an existing non-symlink destination
type Resolver struct {
	comparator types.Comparator
	sink       types.Sink
}

// NewResolver creates a Resolver
func NewResolver(comparator types.Comparator, sink types.Sink) *Resolver {
	return &Resolver{comparator: comparator, sink: sink}
}

// ShouldPrompt reports whether overwriting dest with a link to source needs
// confirmation. The comparison recurses when isDir is set.
func (r *Resolver) ShouldPrompt(source, dest string, isDir bool) (bool, error) {
	logger := logging.GetLogger("conflict")

	result, err := r.comparator.Compare(source, dest, isDir)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrCompare, "failed to compare %s with %s", source, dest).
			WithDetail("source", source).
			WithDetail("dest", dest)
	}

	logger.Debug().
		Str("source", source).
		Str("dest", dest).
		Bool("recursive", isDir).
		Stringer("result", result).
		Msg("Compared destination with source")

	if result == types.Differs {
		r.sink.Printf("Files differ.")
		return true, nil
	}

	r.sink.Printf("Files are identical.")
	return false, nil
}
