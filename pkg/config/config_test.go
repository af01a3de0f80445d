package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/neostow/pkg/errors"
	"github.com/arthur-debert/neostow/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the user's settings and NEOSTOW_* variables out of a test
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, EnvPrefix) {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
	return dir
}

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(LoadOptions{
		WorkDir:      dir,
		SettingsFile: filepath.Join(dir, "absent.toml"),
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".neostow"), cfg.File)
	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, types.ModeCreate, cfg.Mode)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Force)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, "auto", cfg.Diff.Tool)
	assert.Equal(t, "diff", cfg.Diff.Command)
	assert.True(t, cfg.Diff.Show)
}

func TestLoad_Layers(t *testing.T) {
	dir := isolate(t)
	settings := writeSettings(t, dir, `
verbose = true
color = "never"

[diff]
tool = "builtin"
show = false
`)

	t.Run("settings file", func(t *testing.T) {
		cfg, err := Load(LoadOptions{WorkDir: dir, SettingsFile: settings})
		require.NoError(t, err)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "never", cfg.Color)
		assert.Equal(t, "builtin", cfg.Diff.Tool)
		assert.False(t, cfg.Diff.Show)
	})

	t.Run("environment beats settings file", func(t *testing.T) {
		t.Setenv("NEOSTOW_DIFF_TOOL", "external")
		t.Setenv("NEOSTOW_FORCE", "true")

		cfg, err := Load(LoadOptions{WorkDir: dir, SettingsFile: settings})
		require.NoError(t, err)
		assert.Equal(t, "external", cfg.Diff.Tool)
		assert.True(t, cfg.Force)
	})

	t.Run("flags beat environment", func(t *testing.T) {
		t.Setenv("NEOSTOW_COLOR", "always")

		cfg, err := Load(LoadOptions{
			WorkDir:      dir,
			SettingsFile: settings,
			Flags:        map[string]interface{}{"color": "auto", "dry": true},
			Mode:         types.ModeOverwrite,
		})
		require.NoError(t, err)
		assert.Equal(t, "auto", cfg.Color)
		assert.True(t, cfg.DryRun)
		assert.Equal(t, types.ModeOverwrite, cfg.Mode)
	})
}

func TestLoad_SettingsFileFromEnvironment(t *testing.T) {
	dir := isolate(t)
	settings := writeSettings(t, dir, `editor = "nano"`)
	t.Setenv(EnvConfigFile, settings)

	assert.Equal(t, settings, SettingsFilePath())

	cfg, err := Load(LoadOptions{WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "nano", cfg.Editor)
}

func TestLoad_ManifestPath(t *testing.T) {
	dir := isolate(t)
	absent := filepath.Join(dir, "absent.toml")

	t.Run("relative to work dir", func(t *testing.T) {
		cfg, err := Load(LoadOptions{
			WorkDir:      dir,
			SettingsFile: absent,
			Flags:        map[string]interface{}{"file": "dots/links"},
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "dots", "links"), cfg.File)
		assert.Equal(t, filepath.Join(dir, "dots"), cfg.BaseDir)
	})

	t.Run("home expansion", func(t *testing.T) {
		home := filepath.Join(dir, "home")
		t.Setenv("HOME", home)

		cfg, err := Load(LoadOptions{
			WorkDir:      dir,
			SettingsFile: absent,
			Flags:        map[string]interface{}{"file": "~/dotfiles/.neostow"},
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "dotfiles", ".neostow"), cfg.File)
		assert.Equal(t, filepath.Join(home, "dotfiles"), cfg.BaseDir)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := Load(LoadOptions{
			WorkDir:      dir,
			SettingsFile: absent,
			Flags:        map[string]interface{}{"file": ""},
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestLoad_Invalid(t *testing.T) {
	dir := isolate(t)
	absent := filepath.Join(dir, "absent.toml")

	tests := []struct {
		name  string
		flags map[string]interface{}
		mode  types.Mode
		key   string
	}{
		{"color", map[string]interface{}{"color": "sometimes"}, "", "color"},
		{"diff tool", map[string]interface{}{"diff.tool": "meld"}, "", "diff.tool"},
		{"mode", nil, types.Mode("sync"), "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{WorkDir: dir, SettingsFile: absent, Flags: tt.flags, Mode: tt.mode})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			assert.Equal(t, tt.key, errors.GetErrorDetails(err)["key"])
		})
	}
}

func TestLoad_MalformedSettings(t *testing.T) {
	dir := isolate(t)
	settings := writeSettings(t, dir, "verbose = = true\n")

	_, err := Load(LoadOptions{WorkDir: dir, SettingsFile: settings})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	assert.Equal(t, settings, errors.GetErrorDetails(err)["path"])
}

func TestConfig_TOML(t *testing.T) {
	cfg := &Config{
		File:    "/work/.neostow",
		BaseDir: "/work",
		Mode:    types.ModeDelete,
		Verbose: true,
		Color:   "never",
		Diff:    DiffConfig{Tool: "builtin", Command: "diff", Show: true},
	}

	data, err := cfg.TOML()
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "file = '/work/.neostow'")
	assert.Contains(t, text, "verbose = true")
	assert.Contains(t, text, "[diff]")
	assert.Contains(t, text, "tool = 'builtin'")
	assert.NotContains(t, text, "BaseDir")
	assert.NotContains(t, text, "delete")
}
