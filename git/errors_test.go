package git

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		// Direct sentinel errors
		{"ErrRepoNotFound direct", ErrRepoNotFound, ErrRepoNotFound, true},
		{"ErrRepoExists direct", ErrRepoExists, ErrRepoExists, true},
		{"ErrTagExists direct", ErrTagExists, ErrTagExists, true},
		{"ErrTagMissing direct", ErrTagMissing, ErrTagMissing, true},
		{"ErrRemoteMissing direct", ErrRemoteMissing, ErrRemoteMissing, true},
		{"ErrRemoteExists direct", ErrRemoteExists, ErrRemoteExists, true},
		{"ErrAuthRequired direct", ErrAuthRequired, ErrAuthRequired, true},
		{"ErrNotFastForward direct", ErrNotFastForward, ErrNotFastForward, true},
		{"ErrEmptyCommit direct", ErrEmptyCommit, ErrEmptyCommit, true},
		{"ErrInvalidRef direct", ErrInvalidRef, ErrInvalidRef, true},
		{"ErrResolveFailed direct", ErrResolveFailed, ErrResolveFailed, true},

		// Wrapped errors
		{"ErrTagExists wrapped", WrapError(ErrTagExists, "context"), ErrTagExists, true},
		{"ErrRemoteMissing wrapped", WrapErrorf(ErrRemoteMissing, "remote %q", "origin"), ErrRemoteMissing, true},

		// Non-matching errors
		{"ErrTagExists vs ErrTagMissing", ErrTagExists, ErrTagMissing, false},
		{"ErrRepoExists vs ErrRepoNotFound", ErrRepoExists, ErrRepoNotFound, false},

		// Nil handling
		{"WrapError with nil", WrapError(nil, "context"), ErrTagExists, false},
		{"WrapErrorf with nil", WrapErrorf(nil, "context"), ErrTagExists, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := errors.Is(tt.err, tt.target)
			assert.Equal(t, tt.expected, result,
				"errors.Is(%v, %v) should be %v", tt.err, tt.target, tt.expected)
		})
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name:     "wrap ErrTagExists",
			err:      ErrTagExists,
			msg:      "create failed",
			expected: "create failed: tag already exists",
		},
		{
			name:     "wrap ErrAuthRequired",
			err:      ErrAuthRequired,
			msg:      "authentication needed",
			expected: "authentication needed: authentication required",
		},
		{
			name:     "wrap nil error",
			err:      nil,
			msg:      "context",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapError(tt.err, tt.msg)

			if tt.err == nil {
				assert.Nil(t, wrapped, "WrapError(nil) should return nil")
				return
			}

			require.NotNil(t, wrapped, "WrapError(%v) should not return nil", tt.err)
			assert.Equal(t, tt.expected, wrapped.Error())

			// Verify the original error is still detectable
			assert.True(t, errors.Is(wrapped, tt.err),
				"wrapped error should match original sentinel")
		})
	}
}

func TestWrapErrorf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		format   string
		args     []any
		expected string
	}{
		{
			name:     "wrap with format",
			err:      ErrTagExists,
			format:   "tag %s",
			args:     []any{"v1.0.0.RELEASE"},
			expected: "tag v1.0.0.RELEASE: tag already exists",
		},
		{
			name:     "wrap with multiple args",
			err:      ErrTagMissing,
			format:   "tag %s in %s",
			args:     []any{"v1.0", "repo"},
			expected: "tag v1.0 in repo: tag does not exist",
		},
		{
			name:     "wrap nil error",
			err:      nil,
			format:   "context %s",
			args:     []any{"arg"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapErrorf(tt.err, tt.format, tt.args...)

			if tt.err == nil {
				assert.Nil(t, wrapped, "WrapErrorf(nil) should return nil")
				return
			}

			require.NotNil(t, wrapped, "WrapErrorf(%v) should not return nil", tt.err)
			assert.Equal(t, tt.expected, wrapped.Error())

			// Verify the original error is still detectable
			assert.True(t, errors.Is(wrapped, tt.err),
				"wrapped error should match original sentinel")
		})
	}
}
