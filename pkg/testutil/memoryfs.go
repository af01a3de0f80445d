package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/neostow/pkg/types"
)

// maxLinkHops bounds symlink resolution, like the kernel's ELOOP limit
const maxLinkHops = 40

// MemoryFS implements types.FS with in-memory storage.
// Symlinks are resolved when they are the final element of a path or when
// they are the parent of a path being created.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode

	// Error injection
	errorPaths map[string]error

	// Statistics
	writeCount int
}

// fileNode represents a file, directory or symlink in memory
type fileNode struct {
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
}

// NewMemoryFS creates a new in-memory filesystem containing only /
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: map[string]*fileNode{
			"/": {mode: 0755 | os.ModeDir, modTime: time.Now(), isDir: true},
		},
		errorPaths: make(map[string]error),
	}
}

func normalizePath(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join("/", path)
	}
	return filepath.Clean(path)
}

// lookup returns the node at path without following a final symlink
func (m *MemoryFS) lookup(op, path string) (*fileNode, error) {
	if err, ok := m.errorPaths[path]; ok {
		return nil, &fs.PathError{Op: op, Path: path, Err: err}
	}
	node, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
	}
	return node, nil
}

// resolve follows symlinks at path until it reaches a non-link node
func (m *MemoryFS) resolve(op, path string) (string, *fileNode, error) {
	for i := 0; i < maxLinkHops; i++ {
		node, err := m.lookup(op, path)
		if err != nil {
			return path, nil, err
		}
		if !node.isLink {
			return path, node, nil
		}
		target := node.linkDest
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = filepath.Clean(target)
	}
	return path, nil, &fs.PathError{Op: op, Path: path, Err: errors.New("too many levels of symbolic links")}
}

// parentDir returns the resolved directory that holds path
func (m *MemoryFS) parentDir(op, path string) (string, error) {
	dir, node, err := m.resolve(op, filepath.Dir(path))
	if err != nil {
		return "", err
	}
	if !node.isDir {
		return "", &fs.PathError{Op: op, Path: dir, Err: errors.New("not a directory")}
	}
	return dir, nil
}

// Stat returns file info, following symlinks
func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := normalizePath(name)
	_, node, err := m.resolve("stat", path)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(path)}, nil
}

// Lstat returns file info without following a final symlink
func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := normalizePath(name)
	node, err := m.lookup("lstat", path)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(path)}, nil
}

// ReadFile reads the entire file content, following symlinks
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := normalizePath(name)
	_, node, err := m.resolve("open", path)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}

	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file, creating parent directories as needed
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := normalizePath(name)
	if err, ok := m.errorPaths[path]; ok {
		return &fs.PathError{Op: "write", Path: path, Err: err}
	}
	if err := m.mkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	dir, err := m.parentDir("write", path)
	if err != nil {
		return err
	}

	target := filepath.Join(dir, filepath.Base(path))
	if existing, ok := m.files[target]; ok && existing.isDir {
		return &fs.PathError{Op: "write", Path: path, Err: errors.New("is a directory")}
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.files[target] = &fileNode{mode: perm, modTime: time.Now(), content: content}
	m.writeCount++
	return nil
}

// ReadDir returns the entries of a directory sorted by name
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path, node, err := m.resolve("readdir", normalizePath(name))
	if err != nil {
		return nil, err
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: errors.New("not a directory")}
	}

	var entries []fs.DirEntry
	for _, childPath := range m.children(path) {
		childName := filepath.Base(childPath)
		entries = append(entries, &dirEntry{info: &fileInfo{node: m.files[childPath], name: childName}})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// children lists the direct children of dir
func (m *MemoryFS) children(dir string) []string {
	prefix := dir + "/"
	if dir == "/" {
		prefix = "/"
	}
	var out []string
	for p := range m.files {
		if p == dir || !strings.HasPrefix(p, prefix) {
			continue
		}
		if !strings.Contains(p[len(prefix):], "/") {
			out = append(out, p)
		}
	}
	return out
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mkdirAll(normalizePath(path), perm)
}

func (m *MemoryFS) mkdirAll(path string, perm fs.FileMode) error {
	if err, ok := m.errorPaths[path]; ok {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}

	if _, node, err := m.resolve("mkdir", path); err == nil {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
		}
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := m.mkdirAll(filepath.Dir(path), perm); err != nil {
		return err
	}
	dir, err := m.parentDir("mkdir", path)
	if err != nil {
		return err
	}

	target := filepath.Join(dir, filepath.Base(path))
	if _, exists := m.files[target]; exists {
		// a dangling symlink occupies the slot
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	m.files[target] = &fileNode{mode: perm | os.ModeDir, modTime: time.Now(), isDir: true}
	m.writeCount++
	return nil
}

// Symlink creates newname pointing at oldname
func (m *MemoryFS) Symlink(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := normalizePath(newname)
	if err, ok := m.errorPaths[path]; ok {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	dir, err := m.parentDir("symlink", path)
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}

	target := filepath.Join(dir, filepath.Base(path))
	if _, exists := m.files[target]; exists {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrExist}
	}
	m.files[target] = &fileNode{
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: oldname,
	}
	m.writeCount++
	return nil
}

// Readlink returns the destination of a symbolic link
func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := normalizePath(name)
	node, err := m.lookup("readlink", path)
	if err != nil {
		return "", err
	}
	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: path, Err: errors.New("not a symbolic link")}
	}
	return node.linkDest, nil
}

// Remove removes a file, symlink or empty directory
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := normalizePath(name)
	node, err := m.lookup("remove", path)
	if err != nil {
		return err
	}
	if node.isDir && len(m.children(path)) > 0 {
		return &fs.PathError{Op: "remove", Path: path, Err: errors.New("directory not empty")}
	}

	delete(m.files, path)
	m.writeCount++
	return nil
}

// RemoveAll removes path and everything below it. A symlink is removed
// itself; its target is left alone. A missing path is not an error.
func (m *MemoryFS) RemoveAll(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := normalizePath(name)
	if err, ok := m.errorPaths[path]; ok {
		return &fs.PathError{Op: "unlinkat", Path: path, Err: err}
	}

	for p := range m.files {
		if p == path || strings.HasPrefix(p, path+"/") {
			delete(m.files, p)
			m.writeCount++
		}
	}
	return nil
}

// WithError makes every operation on path fail with err
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[normalizePath(path)] = err
	return m
}

// Writes returns the number of mutating operations performed so far
func (m *MemoryFS) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writeCount
}

// fileInfo implements fs.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() fs.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return nil }

// dirEntry implements fs.DirEntry
type dirEntry struct {
	info *fileInfo
}

func (de *dirEntry) Name() string               { return de.info.Name() }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() fs.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (fs.FileInfo, error) { return de.info, nil }

var _ types.FS = (*MemoryFS)(nil)
