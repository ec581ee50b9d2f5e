package release

import "context"

// Source supplies the repository state that version computation reads.
// Implementations must be read-only: resolution never mutates the repository.
//
// The git package provides a Source backed by a real repository. Tests can
// supply a fake. A nil Source is valid wherever a Source is accepted; any
// computation that needs repository state then fails with ErrConfiguration.
type Source interface {
	// Tags returns all tag names beginning with prefix, sorted
	// lexicographically. An empty prefix returns every tag.
	Tags(ctx context.Context, prefix string) ([]string, error)

	// CommitsSince counts the commits reachable from HEAD, stopping at rev
	// (exclusive). An empty rev counts the full history. The count is zero
	// when HEAD is the tagged commit itself.
	CommitsSince(ctx context.Context, rev string) (int, error)

	// SubjectsSince returns the subject lines of the commits reachable from
	// HEAD, stopping at rev (exclusive), newest first. An empty rev walks
	// the full history.
	SubjectsSince(ctx context.Context, rev string) ([]string, error)

	// ShortHash returns the abbreviated hash of the HEAD commit.
	ShortHash(ctx context.Context) (string, error)
}
