package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/neostow/pkg/errors"
	"github.com/arthur-debert/neostow/pkg/logging"
	"github.com/arthur-debert/neostow/pkg/manifest"
	"github.com/arthur-debert/neostow/pkg/paths"
	"github.com/arthur-debert/neostow/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "NEOSTOW_"
	// EnvConfigFile names an alternative settings file
	EnvConfigFile = "NEOSTOW_CONFIG"

	appDirName       = "neostow"
	settingsFileName = "config.toml"
)

// LoadOptions carries what the command line contributes to a Config
type LoadOptions struct {
	// WorkDir resolves a relative manifest path; the process working
	// directory when empty
	WorkDir string
	// SettingsFile overrides the settings file location
	SettingsFile string
	// Flags holds only the flags the user set, keyed like the settings
	Flags map[string]interface{}
	// Mode is the run mode chosen on the command line
	Mode types.Mode
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"file":         manifest.DefaultFileName,
		"verbose":      false,
		"force":        false,
		"dry":          false,
		"debug":        false,
		"color":        "auto",
		"editor":       "",
		"diff.tool":    "auto",
		"diff.command": "diff",
		"diff.show":    true,
	}
}

// SettingsFilePath returns the settings file location, honouring
// $NEOSTOW_CONFIG and then $XDG_CONFIG_HOME
func SettingsFilePath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, appDirName, settingsFileName)
}

// Load builds the run configuration from all layers
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Settings file, if present
	settingsPath := opts.SettingsFile
	if settingsPath == "" {
		settingsPath = SettingsFilePath()
	}
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load settings from %s", settingsPath).
				WithDetail("path", settingsPath)
		}
		logger.Debug().Str("path", settingsPath).Msg("Loaded settings file")
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Flags
	if len(opts.Flags) > 0 {
		if err := k.Load(confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	cfg.Mode = opts.Mode
	if cfg.Mode == "" {
		cfg.Mode = types.ModeCreate
	}

	if err := postProcess(&cfg, opts.WorkDir); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("file", cfg.File).
		Str("baseDir", cfg.BaseDir).
		Str("mode", string(cfg.Mode)).
		Bool("dry", cfg.DryRun).
		Bool("force", cfg.Force).
		Msg("Configuration loaded")

	return &cfg, nil
}

// postProcess validates enum settings and derives the manifest paths
func postProcess(cfg *Config, workDir string) error {
	if err := validate(cfg); err != nil {
		return err
	}

	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, errors.ErrFileAccess, "failed to get working directory")
		}
		workDir = wd
	}

	manifestPath := paths.Expand(cfg.File)
	if manifestPath == "" {
		return errors.New(errors.ErrConfigValid, "manifest path is empty")
	}
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(workDir, manifestPath)
	}
	cfg.File = filepath.Clean(manifestPath)
	cfg.BaseDir = filepath.Dir(cfg.File)
	return nil
}

func validate(cfg *Config) error {
	checks := []struct {
		key     string
		value   string
		allowed []string
	}{
		{"color", cfg.Color, []string{"auto", "always", "never"}},
		{"diff.tool", cfg.Diff.Tool, []string{"auto", "external", "builtin"}},
		{"mode", string(cfg.Mode), []string{string(types.ModeCreate), string(types.ModeOverwrite), string(types.ModeDelete)}},
	}

	for _, c := range checks {
		if !contains(c.allowed, c.value) {
			return errors.Newf(errors.ErrConfigValid, "invalid %s %q (want one of %s)", c.key, c.value, strings.Join(c.allowed, ", ")).
				WithDetail("key", c.key)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
