// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code lookup

package errors_test

import (
	stderrors "errors"
	"io/fs"
	"os"
	"testing"

	"github.com/arthur-debert/neostow/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "manifest_not_found",
			code:    errors.ErrManifestNotFound,
			message: "\".neostow\" not found",
			wantStr: "[MANIFEST_NOT_FOUND] \".neostow\" not found",
		},
		{
			name:    "invalid_input",
			code:    errors.ErrInvalidInput,
			message: "bad value",
			wantStr: "[INVALID_INPUT] bad value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrConfigValid, "unknown diff tool %q", "meld")
	assert.Equal(t, "unknown diff tool \"meld\"", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")
		assert.Equal(t, errors.ErrInternal, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[INTERNAL] internal error: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})

	t.Run("path_errors_stay_reachable", func(t *testing.T) {
		pathErr := &fs.PathError{Op: "symlink", Path: "/tmp/x", Err: os.ErrExist}
		err := errors.Wrapf(pathErr, errors.ErrSymlinkCreate, "failed to link %s", "/tmp/x")
		assert.True(t, stderrors.Is(err, fs.ErrExist))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrRemove, "cannot remove").
		WithDetail("path", "/test/path").
		WithDetail("type", "dir")

	assert.Equal(t, "/test/path", err.Details["path"])
	assert.Equal(t, "dir", err.Details["type"])
	assert.Equal(t, err.Details, errors.GetErrorDetails(err))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrCompare, "error 1")
	err2 := errors.New(errors.ErrCompare, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrDirCreate, "x"), errors.ErrDirCreate, true},
		{"different_code", errors.New(errors.ErrDirCreate, "x"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"), errors.ErrFileAccess, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrFileAccess, false},
		{"nil_error", nil, errors.ErrFileAccess, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrEditor, errors.GetErrorCode(errors.New(errors.ErrEditor, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(configErr, errors.ErrConfigLoad))

	var middle *errors.NeostowError
	require.True(t, stderrors.As(configErr.Unwrap(), &middle))
	assert.Equal(t, errors.ErrFileAccess, middle.Code)

	assert.True(t, stderrors.Is(configErr, rootCause))
}

func TestMessage(t *testing.T) {
	rootCause := stderrors.New("permission denied")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	assert.Equal(t, "failed to load config: cannot read file: permission denied", errors.Message(configErr))
	assert.Equal(t, "editor failed", errors.Message(errors.New(errors.ErrEditor, "editor failed")))
	assert.Equal(t, "plain", errors.Message(stderrors.New("plain")))
}
