package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/annix/pkg/errors"
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
			name:    "file_read_error",
			code:    errors.ErrFileRead,
			message: "cannot read file",
			wantStr: "[FILE_READ] cannot read file",
		},
		{
			name:    "parse_error",
			code:    errors.ErrParseMultiplePackages,
			message: "multiple packages on one line",
			wantStr: "[PARSE_MULTIPLE_PACKAGES] multiple packages on one line",
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

func TestWrap(t *testing.T) {
	inner := stderrors.New("permission denied")
	err := errors.Wrap(inner, errors.ErrPermission, "cannot write /etc/nixos/an.nix")

	assert.Equal(t, errors.ErrPermission, err.Code)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "permission denied")

	assert.Nil(t, errors.Wrap(nil, errors.ErrPermission, "nothing"))
}

func TestWithLine(t *testing.T) {
	err := errors.New(errors.ErrParseMultilineComment, "multi-line comments are not supported").
		WithLine(12, "/* nope */")

	n, raw, ok := errors.Line(err)
	require.True(t, ok)
	assert.Equal(t, 12, n)
	assert.Equal(t, "/* nope */", raw)

	// Line context survives wrapping.
	wrapped := fmt.Errorf("parse failed: %w", err)
	n, raw, ok = errors.Line(wrapped)
	require.True(t, ok)
	assert.Equal(t, 12, n)
	assert.Equal(t, "/* nope */", raw)

	_, _, ok = errors.Line(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrFileWrite, "cannot write %s", "an.nix")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
	assert.False(t, errors.IsErrorCode(err, errors.ErrFileRead))
	assert.Equal(t, errors.ErrFileWrite, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestIsParseError(t *testing.T) {
	assert.True(t, errors.IsParseError(errors.New(errors.ErrParseMultilineString, "x")))
	assert.True(t, errors.IsParseError(errors.New(errors.ErrParseMultiplePackages, "x")))
	assert.False(t, errors.IsParseError(errors.New(errors.ErrFileRead, "x")))
}
