// Package git provides sentinel errors for common git operations.
// All errors can be checked using errors.Is() for programmatic handling.
package git

import (
	"errors"
	"fmt"
)

// ErrRepoNotFound is returned when opening a path that does not contain
// a git repository.
var ErrRepoNotFound = errors.New("repository not found")

// ErrRepoExists is returned when initializing a repository at a path that
// already contains one.
var ErrRepoExists = errors.New("repository already exists")

// ErrTagExists is returned when attempting to create a tag that already exists
// and force creation was not requested.
var ErrTagExists = errors.New("tag already exists")

// ErrTagMissing is returned when attempting to operate on a tag that does not exist.
var ErrTagMissing = errors.New("tag does not exist")

// ErrRemoteMissing is returned when a push targets a remote that is not configured.
// Read-side remote lookups report absence through their ok result instead.
var ErrRemoteMissing = errors.New("remote does not exist")

// ErrRemoteExists is returned when attempting to add a remote that already exists.
var ErrRemoteExists = errors.New("remote already exists")

// ErrAuthRequired is returned when an operation requires authentication
// but no credentials were provided or available.
var ErrAuthRequired = errors.New("authentication required")

// ErrNotFastForward is returned when a push cannot be performed as a
// fast-forward update because the remote holds work the local ref does not.
var ErrNotFastForward = errors.New("not a fast-forward")

// ErrEmptyCommit is returned when a commit is attempted with no staged
// changes and empty commits were not explicitly allowed.
var ErrEmptyCommit = errors.New("no changes to commit")

// ErrInvalidRef is returned when a reference name or revision specification
// is malformed or invalid according to git's reference naming rules.
var ErrInvalidRef = errors.New("invalid reference")

// ErrResolveFailed is returned when a revision specification cannot be resolved
// to a valid commit hash (e.g., branch/tag doesn't exist, invalid SHA).
var ErrResolveFailed = errors.New("cannot resolve revision")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
