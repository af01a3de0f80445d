// Package filesystem provides the operating system implementation of
// types.FS used by neostow at runtime.
package filesystem
