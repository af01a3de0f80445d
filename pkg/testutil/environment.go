package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Environment is a real-filesystem layout in a temp directory: a dotfiles
// tree holding the manifest and a separate fake home directory.
type Environment struct {
	Root     string
	Dotfiles string
	Home     string

	t *testing.T
}

// NewEnvironment creates the layout and points $HOME at the fake home.
// Paths are resolved so they compare equal to what the code computes even
// when the temp dir sits behind a symlink.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	env := &Environment{
		Root:     root,
		Dotfiles: CreateDir(t, root, "dotfiles"),
		Home:     CreateDir(t, root, "home"),
		t:        t,
	}
	t.Setenv("HOME", env.Home)
	return env
}

// ManifestPath returns the path of the manifest in the dotfiles tree
func (e *Environment) ManifestPath() string {
	return filepath.Join(e.Dotfiles, ".neostow")
}

// WriteManifest writes the manifest and returns its path
func (e *Environment) WriteManifest(content string) string {
	e.t.Helper()
	return CreateFile(e.t, e.Dotfiles, ".neostow", content)
}

// Source creates a file in the dotfiles tree and returns its path
func (e *Environment) Source(rel, content string) string {
	e.t.Helper()
	return CreateFile(e.t, e.Dotfiles, rel, content)
}

// InHome joins elements onto the fake home directory
func (e *Environment) InHome(elem ...string) string {
	return filepath.Join(append([]string{e.Home}, elem...)...)
}

// CreateFile creates a file with the given content, making parent
// directories as needed.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// CreateDir creates a directory in the specified parent directory.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// CreateSymlink creates a symbolic link pointing to target.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Failed to create parent directory for symlink %s: %v", link, err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
}

// SymlinkExists checks if a path is a symbolic link.
func SymlinkExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// AssertSymlink checks that a symlink exists and points to the expected target.
func AssertSymlink(t *testing.T, link, expectedTarget string) {
	t.Helper()

	if !SymlinkExists(t, link) {
		t.Fatalf("Symlink %s does not exist", link)
	}
	actual, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("Failed to read symlink %s: %v", link, err)
	}
	if actual != expectedTarget {
		t.Errorf("Symlink %s target mismatch\nExpected: %s\nActual: %s", link, expectedTarget, actual)
	}
}

// AssertFileContent checks that path is a regular file with the expected content.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Fatalf("File %s does not exist: %v", path, err)
	}
	if !info.Mode().IsRegular() {
		t.Fatalf("File %s is not a regular file (mode %v)", path, info.Mode())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	if string(content) != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, string(content))
	}
}

// AssertNoPath checks that nothing, not even a dangling symlink, exists at path.
func AssertNoPath(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("Path %s exists but should not", path)
	}
}
