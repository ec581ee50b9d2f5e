package git

import "context"

// ReleaseSource adapts a Repo to the narrow tag-and-history reader shape
// that version resolution consumes. It exposes only read operations.
type ReleaseSource struct {
	repo *Repo
}

// ReleaseSource returns a read-only view of the repository for version
// resolution.
func (r *Repo) ReleaseSource() *ReleaseSource {
	return &ReleaseSource{repo: r}
}

// Tags returns the repository tags carrying the given prefix, sorted
// alphabetically. An empty prefix returns all tags.
func (s *ReleaseSource) Tags(ctx context.Context, prefix string) ([]string, error) {
	return s.repo.Tags(ctx, TagPrefixFilter(prefix))
}

// CommitsSince counts commits in the history of HEAD after the given
// revision. An empty rev counts the entire history.
func (s *ReleaseSource) CommitsSince(ctx context.Context, rev string) (int, error) {
	return s.repo.CommitsSince(ctx, rev)
}

// SubjectsSince returns commit subjects after the given revision, newest
// first. An empty rev covers the entire history.
func (s *ReleaseSource) SubjectsSince(ctx context.Context, rev string) ([]string, error) {
	return s.repo.SubjectsSince(ctx, rev)
}

// ShortHash returns the abbreviated hash of HEAD.
func (s *ReleaseSource) ShortHash(ctx context.Context) (string, error) {
	return s.repo.ShortHash(ctx)
}
