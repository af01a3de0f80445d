// Package testutil provides utilities for testing neostow components.
//
// Key components:
//   - MemoryFS: in-memory types.FS with symlinks and error injection
//   - RecordingSink: types.Sink that keeps every message for assertions
//   - ScriptedPrompter: types.Prompter answering from a fixed script
//   - Environment: temp-dir layout with a dotfiles tree and a fake $HOME
//   - file helpers (CreateFile, AssertSymlink, ...) for real-filesystem tests
package testutil
