package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/neostow/internal/commands"
	"github.com/arthur-debert/neostow/internal/version"
	"github.com/arthur-debert/neostow/pkg/cobrax/topics"
	"github.com/arthur-debert/neostow/pkg/config"
	"github.com/arthur-debert/neostow/pkg/conflict"
	"github.com/arthur-debert/neostow/pkg/editor"
	"github.com/arthur-debert/neostow/pkg/errors"
	"github.com/arthur-debert/neostow/pkg/filesystem"
	"github.com/arthur-debert/neostow/pkg/logging"
	"github.com/arthur-debert/neostow/pkg/manifest"
	"github.com/arthur-debert/neostow/pkg/output"
	"github.com/arthur-debert/neostow/pkg/reconcile"
	"github.com/arthur-debert/neostow/pkg/runner"
	"github.com/arthur-debert/neostow/pkg/types"
	"github.com/arthur-debert/neostow/pkg/ui/confirmations"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// options holds the raw flag values
type options struct {
	overwrite bool
	force     bool
	verbose   bool
	debug     bool
	dry       bool
	file      string
	color     string
}

// app carries the state shared by the commands of one invocation
type app struct {
	opts options
	cfg  *config.Config
	sink *output.ConsoleSink
}

// Execute runs neostow on the process's arguments and returns the exit status
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes the command line with the given streams and returns the
// exit status. Errors are reported as a fatal message on errOut.
func Run(args []string, in io.Reader, out, errOut io.Writer) int {
	a, rootCmd := newApp()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	if err := rootCmd.Execute(); err != nil {
		sink := a.sink
		if sink == nil {
			sink = output.NewConsoleSink(out, errOut, colorFor(output.ColorAuto, errOut))
		}
		sink.Logf(types.LevelFatal, "%s", errors.Message(err))
		return 1
	}
	return 0
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	_, rootCmd := newApp()
	return rootCmd
}

func newApp() (*app, *cobra.Command) {
	a := &app{}

	// Nothing is logged until setup knows whether debug output is wanted
	log.Logger = zerolog.Nop()

	rootCmd := &cobra.Command{
		Use:               "neostow",
		Short:             commands.MsgRootShort,
		Long:              commands.MsgRootLong,
		Example:           commands.MsgRootExample,
		Version:           version.String(),
		Args:              unknownArgs,
		PersistentPreRunE: a.setup,
		RunE:              a.reconcile,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}
	rootCmd.SetVersionTemplate(commands.MsgVersionTemplate)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid arguments")
	})

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&a.opts.overwrite, "overwrite", "o", false, commands.MsgFlagOverwrite)
	pf.BoolVarP(&a.opts.force, "force", "F", false, commands.MsgFlagForce)
	pf.BoolVarP(&a.opts.verbose, "verbose", "V", false, commands.MsgFlagVerbose)
	pf.BoolVarP(&a.opts.debug, "debug", "D", false, commands.MsgFlagDebug)
	pf.BoolVarP(&a.opts.dry, "dry", "d", false, commands.MsgFlagDry)
	pf.StringVarP(&a.opts.file, "file", "f", manifest.DefaultFileName, commands.MsgFlagFile)
	pf.StringVar(&a.opts.color, "color", output.ColorAuto, commands.MsgFlagColor)
	// Persistent so every subcommand accepts it; each carries the version too
	pf.BoolP("version", "v", false, commands.MsgFlagVersion)

	rootCmd.AddCommand(a.newDeleteCmd())
	rootCmd.AddCommand(a.newEditCmd())
	rootCmd.AddCommand(a.newConfigCmd())

	// Topic-based help; the notty style is used unless stdout is a terminal
	renderer := topics.NewGlamourRenderer(colorFor(output.ColorAuto, os.Stdout))
	if _, err := topics.Initialize(rootCmd, commands.Topics, commands.TopicsRoot, topics.Options{Renderer: renderer}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return a, rootCmd
}

func unknownArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.Newf(errors.ErrInvalidInput, commands.MsgUnknownArgument, args[0])
	}
	return nil
}

// setup loads the configuration and wires logging and output for every command
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" {
		return nil
	}
	logging.SetupLogger(a.opts.debug)

	mode := types.ModeCreate
	if a.opts.overwrite {
		mode = types.ModeOverwrite
	}
	if cmd.Name() == "delete" {
		mode = types.ModeDelete
	}

	cfg, err := config.Load(config.LoadOptions{
		Flags: a.changedFlags(cmd),
		Mode:  mode,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.Debug != a.opts.debug {
		logging.SetupLogger(cfg.Debug)
	}
	a.sink = output.NewConsoleSink(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorFor(cfg.Color, cmd.OutOrStdout()))

	log.Debug().Str("command", cmd.Name()).Str("version", version.Version).Msg("Command started")
	return nil
}

// changedFlags returns the flags the user passed, keyed like the settings
func (a *app) changedFlags(cmd *cobra.Command) map[string]interface{} {
	values := map[string]interface{}{
		"file":    a.opts.file,
		"verbose": a.opts.verbose,
		"force":   a.opts.force,
		"dry":     a.opts.dry,
		"debug":   a.opts.debug,
		"color":   a.opts.color,
	}

	changed := make(map[string]interface{})
	for name, value := range values {
		if cmd.Flags().Changed(name) {
			changed[name] = value
		}
	}
	return changed
}

func (a *app) reconcile(cmd *cobra.Command, args []string) error {
	cfg := a.cfg
	fsys := filesystem.NewOS()

	var diffOut io.Writer = io.Discard
	if cfg.Diff.Show {
		diffOut = cmd.OutOrStdout()
	}
	comparator, err := conflict.NewComparator(cfg.Diff.Tool, cfg.Diff.Command, fsys, diffOut)
	if err != nil {
		return err
	}

	rec := reconcile.New(reconcile.Options{
		Config:   cfg,
		FS:       fsys,
		Conflict: conflict.NewResolver(comparator, a.sink),
		Prompter: confirmations.NewConsoleDialog(cmd.InOrStdin(), cmd.OutOrStdout()),
		Sink:     a.sink,
	})

	count, err := runner.Run(cfg, runner.Deps{FS: fsys, Reconciler: rec, Sink: a.sink})
	if errors.IsErrorCode(err, errors.ErrManifestNotFound) {
		return err
	}
	a.sink.Printf(commands.MsgOperationsFormat, count)
	return err
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete",
		Short:   commands.MsgDeleteShort,
		Long:    commands.MsgDeleteLong,
		Version: version.String(),
		Args:    unknownArgs,
		RunE:    a.reconcile,
	}
}

func (a *app) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "edit",
		Short:   commands.MsgEditShort,
		Long:    commands.MsgEditLong,
		Version: version.String(),
		Args:    unknownArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := editor.New(editor.Resolve(a.cfg.Editor))
			ed.Stdin = cmd.InOrStdin()
			ed.Stdout = cmd.OutOrStdout()
			ed.Stderr = cmd.ErrOrStderr()
			return ed.Open(a.cfg.File)
		},
	}
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   commands.MsgConfigShort,
		Long:    commands.MsgConfigLong,
		Version: version.String(),
		Args:    unknownArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.TOML()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to render settings")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

// colorFor resolves a color mode for w; only real files can be terminals
func colorFor(mode string, w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return output.ColorEnabled(mode, f)
	}
	return mode == output.ColorAlways
}
