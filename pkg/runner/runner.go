// Package runner drives one pass over a manifest.
//
// Every rule line is handed to the reconciler in order. A failing line is
// reported with its position and the pass continues; only a missing or
// unreadable manifest stops the run.
package runner

import (
	"io"
	"os"

	"github.com/arthur-debert/neostow/pkg/config"
	"github.com/arthur-debert/neostow/pkg/errors"
	"github.com/arthur-debert/neostow/pkg/logging"
	"github.com/arthur-debert/neostow/pkg/manifest"
	"github.com/arthur-debert/neostow/pkg/reconcile"
	"github.com/arthur-debert/neostow/pkg/types"
)

// Applier reconciles a single manifest entry
type Applier interface {
	Reconcile(entry manifest.Entry) (reconcile.Result, error)
}

// Deps holds the collaborators of a run
type Deps struct {
	FS types.FS
	// Open opens the manifest for reading; os.Open when nil
	Open       func(name string) (io.ReadCloser, error)
	Reconciler Applier
	Sink       types.Sink
}

func openFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Run reconciles every entry of the manifest at cfg.File and returns how
// many of them changed the filesystem.
func Run(cfg *config.Config, deps Deps) (int, error) {
	logger := logging.GetLogger("runner").With().
		Str("manifest", cfg.File).
		Str("mode", string(cfg.Mode)).
		Bool("dry", cfg.DryRun).
		Logger()
	done := logging.LogOperationStart(logger, "run")
	defer done()

	if _, err := deps.FS.Stat(cfg.File); err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Newf(errors.ErrManifestNotFound, "%q not found", cfg.File).
				WithDetail("path", cfg.File)
		}
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", cfg.File).
			WithDetail("path", cfg.File)
	}

	open := deps.Open
	if open == nil {
		open = openFile
	}
	f, err := open(cfg.File)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", cfg.File).
			WithDetail("path", cfg.File)
	}
	defer func() { _ = f.Close() }()

	count := 0
	scanner := manifest.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Line()
		entry, ok := line.Entry()
		if !ok {
			continue
		}

		result, err := deps.Reconciler.Reconcile(entry)
		if err != nil {
			logger.Error().Err(err).Int("line", line.Number).Msg("Entry failed")
			deps.Sink.Logf(types.LevelError, "%s:%d: %s", cfg.File, line.Number, errors.Message(err))
			continue
		}
		if result.Status == reconcile.Performed {
			count++
		}
	}

	if err := scanner.Err(); err != nil {
		lineNum := scanner.Line().Number + 1
		readErr := errors.Wrap(err, errors.ErrManifestRead, "cannot read manifest")
		logger.Error().Err(readErr).Int("line", lineNum).Msg("Manifest read failed")
		deps.Sink.Logf(types.LevelError, "%s:%d: %s", cfg.File, lineNum, errors.Message(readErr))
	}

	logger.Info().Int("operations", count).Msg("Run finished")
	return count, nil
}
