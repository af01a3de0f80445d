package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/neostow/internal/version"
	"github.com/arthur-debert/neostow/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// setupCLI isolates settings, logs and editor choice, and lays out a
// dotfiles tree with a manifest linking vimrc into $HOME
func setupCLI(t *testing.T) *testutil.Environment {
	t.Helper()
	env := testutil.NewEnvironment(t)

	t.Setenv("XDG_STATE_HOME", filepath.Join(env.Root, "state"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.Root, "config"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "NEOSTOW_") {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
	t.Setenv("NEOSTOW_DIFF_TOOL", "builtin")

	env.Source("vimrc", "set number\n")
	env.WriteManifest("vimrc = ~ # editor\nmissing = ~\n")
	return env
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCreate(t *testing.T) {
	env := setupCLI(t)
	link := env.InHome("vimrc")

	res := run(t, "", "-f", env.ManifestPath())
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "1 operations were performed.")
	testutil.AssertSymlink(t, link, filepath.Join(env.Dotfiles, "vimrc"))

	res = run(t, "", "-f", env.ManifestPath())
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "0 operations were performed.")
	assert.Contains(t, res.stderr, "[ERROR]: "+env.ManifestPath()+":1: ")
}

func TestCreate_Verbose(t *testing.T) {
	env := setupCLI(t)

	res := run(t, "", "--file", env.ManifestPath(), "-V", "--color", "never")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Created symlink: "+env.InHome("vimrc")+" → "+filepath.Join(env.Dotfiles, "vimrc"))
	assert.Contains(t, res.stderr, `[ERROR]: Source "`+filepath.Join(env.Dotfiles, "missing")+`" not found`)
}

func TestDryRun(t *testing.T) {
	env := setupCLI(t)

	res := run(t, "", "-f", env.ManifestPath(), "-d")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, filepath.Join(env.Dotfiles, "vimrc")+" → "+env.InHome("vimrc"))
	assert.Contains(t, res.stdout, "0 operations were performed.")
	testutil.AssertNoPath(t, env.InHome("vimrc"))
}

func TestOverwrite(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		env := setupCLI(t)
		testutil.CreateFile(t, env.Home, "vimrc", "mine\n")

		res := run(t, "n\n", "-f", env.ManifestPath(), "-o")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Files differ.")
		assert.Contains(t, res.stdout, "Destination '"+env.InHome("vimrc")+"' exists and is not a symlink. Overwrite? [y/N]")
		assert.Contains(t, res.stdout, "0 operations were performed.")
		testutil.AssertFileContent(t, env.InHome("vimrc"), "mine\n")
	})

	t.Run("accepted", func(t *testing.T) {
		env := setupCLI(t)
		testutil.CreateFile(t, env.Home, "vimrc", "mine\n")

		res := run(t, "yes\n", "-f", env.ManifestPath(), "--overwrite")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "1 operations were performed.")
		testutil.AssertSymlink(t, env.InHome("vimrc"), filepath.Join(env.Dotfiles, "vimrc"))
	})

	t.Run("forced", func(t *testing.T) {
		env := setupCLI(t)
		testutil.CreateFile(t, env.Home, "vimrc", "mine\n")

		res := run(t, "", "-f", env.ManifestPath(), "-o", "-F")
		require.Equal(t, 0, res.code, res.stderr)
		assert.NotContains(t, res.stdout, "Overwrite?")
		testutil.AssertSymlink(t, env.InHome("vimrc"), filepath.Join(env.Dotfiles, "vimrc"))
	})
}

func TestDelete(t *testing.T) {
	env := setupCLI(t)
	testutil.CreateSymlink(t, filepath.Join(env.Dotfiles, "vimrc"), env.InHome("vimrc"))

	// delete wins over --overwrite
	res := run(t, "", "delete", "-o", "-f", env.ManifestPath())
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "1 operations were performed.")
	testutil.AssertNoPath(t, env.InHome("vimrc"))
	testutil.AssertFileContent(t, filepath.Join(env.Dotfiles, "vimrc"), "set number\n")
}

func TestFatalErrors(t *testing.T) {
	env := setupCLI(t)

	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"unknown argument", []string{"-f", env.ManifestPath(), "bogus"}, "[FATAL]: Unknown argument: bogus"},
		{"unknown flag", []string{"--bogus"}, "[FATAL]: invalid arguments: unknown flag: --bogus"},
		{"missing manifest", []string{"-f", filepath.Join(env.Root, "nope")}, `[FATAL]: "` + filepath.Join(env.Root, "nope") + `" not found`},
		{"invalid color", []string{"-f", env.ManifestPath(), "--color", "plaid"}, "[FATAL]: invalid color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, tt.stderr)
			assert.NotContains(t, res.stdout, "operations were performed")
		})
	}
}

func TestConfigCommand(t *testing.T) {
	env := setupCLI(t)
	settings := filepath.Join(env.Root, "config", "neostow", "config.toml")
	testutil.CreateFile(t, filepath.Dir(settings), "config.toml", "verbose = true\n")

	res := run(t, "", "config", "-f", env.ManifestPath(), "--dry")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "file = '"+env.ManifestPath()+"'")
	assert.Contains(t, res.stdout, "verbose = true")
	assert.Contains(t, res.stdout, "dry = true")
	assert.Contains(t, res.stdout, "tool = 'builtin'")
}

func TestEditCommand(t *testing.T) {
	env := setupCLI(t)

	t.Setenv("NEOSTOW_EDITOR", "true")
	res := run(t, "", "edit", "-f", env.ManifestPath())
	assert.Equal(t, 0, res.code, res.stderr)

	t.Setenv("NEOSTOW_EDITOR", "false")
	res = run(t, "", "edit", "-f", env.ManifestPath())
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "[FATAL]: editor failed")
}

func TestVersion(t *testing.T) {
	setupCLI(t)

	for _, args := range [][]string{{"-v"}, {"--version"}, {"delete", "-v"}, {"config", "--version"}} {
		res := run(t, "", args...)
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "neostow "+version.String()+"\n", res.stdout, args)
	}
}

func TestDiagnosticsStayOffTerminal(t *testing.T) {
	env := setupCLI(t)

	// Anything logged before setup replaces the global logger lands in early
	var early bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&early)
	t.Cleanup(func() { log.Logger = prev })

	stderrFile, err := os.CreateTemp(env.Root, "stderr")
	require.NoError(t, err)
	realStderr := os.Stderr
	os.Stderr = stderrFile
	t.Cleanup(func() { os.Stderr = realStderr })

	res := run(t, "", "-f", env.ManifestPath(), "-V", "-d")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NotContains(t, res.stderr, "Configuration loaded")

	os.Stderr = realStderr
	require.NoError(t, stderrFile.Close())
	written, err := os.ReadFile(stderrFile.Name())
	require.NoError(t, err)
	assert.Empty(t, string(written))
	assert.Empty(t, early.String())

	logData, err := os.ReadFile(filepath.Join(env.Root, "state", "neostow", "neostow.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(logData), "Configuration loaded", "debug records need --debug")
}

func TestHelpTopics(t *testing.T) {
	setupCLI(t)

	res := run(t, "", "help", "topics")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "manifest")
	assert.Contains(t, res.stdout, "--dry")

	res = run(t, "", "help", "expansion")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "HOMEDIR")

	res = run(t, "", "help", "delete")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Delete removes the destination")
}
