// Package reconcile brings one manifest entry's symlink into the state the
// run mode asks for.
//
// Each entry resolves to a source below the manifest's directory and a
// destination directory. The symlink lives at dest/basename(source) and
// points at the source. Depending on the mode the link is created, an
// existing destination is replaced by it, or the destination is removed.
package reconcile

import (
	goerrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/neostow/pkg/config"
	"github.com/arthur-debert/neostow/pkg/errors"
	"github.com/arthur-debert/neostow/pkg/logging"
	"github.com/arthur-debert/neostow/pkg/manifest"
	"github.com/arthur-debert/neostow/pkg/paths"
	"github.com/arthur-debert/neostow/pkg/types"
	"github.com/rs/zerolog"
)

// ConflictChecker decides whether replacing a real destination needs the
// user's confirmation
type ConflictChecker interface {
	ShouldPrompt(source, dest string, isDir bool) (bool, error)
}

// Options holds the collaborators of a Reconciler
type Options struct {
	Config   *config.Config
	FS       types.FS
	Expander *paths.Expander
	Conflict ConflictChecker
	Prompter types.Prompter
	Sink     types.Sink
}

// Reconciler applies manifest entries to the filesystem
type Reconciler struct {
	cfg      *config.Config
	fs       types.FS
	expander *paths.Expander
	conflict ConflictChecker
	prompter types.Prompter
	sink     types.Sink
	logger   zerolog.Logger
}

// New creates a Reconciler. A nil Expander reads the process environment.
func New(opts Options) *Reconciler {
	expander := opts.Expander
	if expander == nil {
		expander = paths.NewExpander()
	}
	return &Reconciler{
		cfg:      opts.Config,
		fs:       opts.FS,
		expander: expander,
		conflict: opts.Conflict,
		prompter: opts.Prompter,
		sink:     opts.Sink,
		logger:   logging.GetLogger("reconcile"),
	}
}

// Reconcile applies one entry. Benign outcomes such as a missing source or
// a declined prompt are returned as Skipped results, never as errors.
func (r *Reconciler) Reconcile(entry manifest.Entry) (Result, error) {
	source := r.sourcePath(entry.Source)
	destBase := r.expander.Expand(entry.Dest)

	if r.cfg.Debug {
		r.sink.Logf(types.LevelDebug, "Source file: %s", source)
		r.sink.Logf(types.LevelDebug, "Destination: %s", destBase)
	}

	info, err := r.fs.Stat(source)
	if err != nil {
		if !absent(err) {
			return Result{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot access source %s", source).
				WithDetail("source", source)
		}
		if r.cfg.Verbose {
			r.sink.Logf(types.LevelError, "Source %q not found", source)
		}
		r.logger.Debug().Str("source", source).Msg("Source missing, skipping")
		return skipped(SourceMissing, source, ""), nil
	}
	isDir := info.IsDir()

	dest := filepath.Join(destBase, filepath.Base(source))
	logger := r.logger.With().
		Str("source", source).
		Str("dest", dest).
		Str("mode", string(r.cfg.Mode)).
		Logger()

	if !r.cfg.DryRun {
		parent := filepath.Dir(dest)
		if err := r.fs.MkdirAll(parent, 0755); err != nil {
			return Result{}, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", parent).
				WithDetail("dir", parent)
		}
	}

	// destInfo stays nil when nothing occupies dest
	destInfo, err := r.fs.Lstat(dest)
	if err != nil {
		if !absent(err) {
			return Result{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot access destination %s", dest).
				WithDetail("dest", dest)
		}
		destInfo = nil
	}

	if destInfo != nil && destInfo.Mode()&fs.ModeSymlink == 0 && r.cfg.Mode == types.ModeOverwrite {
		proceed, err := r.confirmOverwrite(source, dest, isDir)
		if err != nil {
			return Result{}, err
		}
		if !proceed {
			logger.Info().Msg("Overwrite declined")
			return skipped(Declined, source, dest), nil
		}
	}

	var result Result
	switch r.cfg.Mode {
	case types.ModeDelete:
		result, err = r.delete(source, dest, destInfo)
	case types.ModeOverwrite:
		result, err = r.overwrite(source, dest, destInfo)
	case types.ModeCreate:
		result, err = r.create(source, dest)
	default:
		return Result{}, errors.Newf(errors.ErrInvalidInput, "unknown mode %q", r.cfg.Mode)
	}
	if err != nil {
		return Result{}, err
	}

	if result.Status == Performed {
		logger.Info().Msg(r.cfg.Mode.Verb())
		if r.cfg.Verbose {
			r.sink.Printf("%s: %s → %s", r.cfg.Mode.Verb(), dest, source)
		}
	} else {
		logger.Debug().Stringer("reason", result.Reason).Msg("Entry skipped")
	}
	return result, nil
}

// absent reports whether a stat error means nothing is at the path. A path
// running through a regular file cannot exist either.
func absent(err error) bool {
	return goerrors.Is(err, fs.ErrNotExist) || goerrors.Is(err, syscall.ENOTDIR)
}

// sourcePath resolves a manifest source against the base directory
func (r *Reconciler) sourcePath(raw string) string {
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Join(r.cfg.BaseDir, raw)
}

func (r *Reconciler) confirmOverwrite(source, dest string, isDir bool) (bool, error) {
	differs, err := r.conflict.ShouldPrompt(source, dest, isDir)
	if err != nil {
		return false, err
	}
	if !differs || r.cfg.Force {
		return true, nil
	}
	question := fmt.Sprintf("Destination '%s' exists and is not a symlink. Overwrite?", dest)
	return r.prompter.Confirm(question), nil
}

func (r *Reconciler) delete(source, dest string, destInfo fs.FileInfo) (Result, error) {
	if r.cfg.DryRun {
		r.sink.Logf(types.LevelInfo, "Would remove %s", dest)
		return skipped(DryRun, source, dest), nil
	}
	if destInfo == nil {
		return skipped(NothingToDelete, source, dest), nil
	}
	if err := r.remove(dest, destInfo); err != nil {
		return Result{}, err
	}
	return performed(source, dest), nil
}

func (r *Reconciler) overwrite(source, dest string, destInfo fs.FileInfo) (Result, error) {
	if r.cfg.DryRun {
		r.sink.Logf(types.LevelInfo, "Would remove %s", dest)
		r.sink.Printf("%s → %s", source, dest)
		return skipped(DryRun, source, dest), nil
	}
	if destInfo != nil {
		if err := r.remove(dest, destInfo); err != nil {
			return Result{}, err
		}
	}
	if err := r.link(source, dest); err != nil {
		return Result{}, err
	}
	return performed(source, dest), nil
}

func (r *Reconciler) create(source, dest string) (Result, error) {
	if r.cfg.DryRun {
		r.sink.Printf("%s → %s", source, dest)
		return skipped(DryRun, source, dest), nil
	}
	if err := r.link(source, dest); err != nil {
		return Result{}, err
	}
	return performed(source, dest), nil
}

// remove deletes dest without following it. Real directories are removed
// with their contents; a symlink is removed itself.
func (r *Reconciler) remove(dest string, info fs.FileInfo) error {
	var err error
	if info.IsDir() {
		err = r.fs.RemoveAll(dest)
	} else {
		err = r.fs.Remove(dest)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrRemove, "cannot remove %s", dest).
			WithDetail("dest", dest)
	}
	return nil
}

func (r *Reconciler) link(source, dest string) error {
	if err := r.fs.Symlink(source, dest); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", dest).
			WithDetail("source", source).
			WithDetail("dest", dest)
	}
	return nil
}
