// Package release provides sentinel errors for release resolution.
// All errors can be checked using errors.Is() for programmatic handling.
package release

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned when release resolution fails because of the
// way the build was invoked or configured: conflicting stage commands, an
// unparsable version override, or missing inputs such as a last tag. These
// errors are fatal and must be surfaced to the user without retrying.
var ErrConfiguration = errors.New("invalid release configuration")

// ErrNoVersionSource is returned when no base version can be determined:
// there is no explicit version, no usable tag, and no repository to infer
// from. It wraps ErrConfiguration.
var ErrNoVersionSource = fmt.Errorf("no base version could be determined: %w", ErrConfiguration)

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
