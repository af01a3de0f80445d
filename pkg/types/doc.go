// Package types defines the core types and the collaborator interfaces used
// throughout neostow: the filesystem primitives, the output sink, the
// content comparator, the confirmation prompter and the editor launcher.
//
// Every component of the reconciliation engine depends on these interfaces
// rather than on concrete implementations, so the engine can be exercised
// against an in-memory filesystem, a recording sink and scripted answers.
package types
