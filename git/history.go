// Package git provides high-level Git operations through a clean facade.
// This file contains history operations for counting commits and reading
// subjects since a revision.
package git

import (
	"context"
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// shortHashLen is the abbreviated hash length used in dev version strings.
const shortHashLen = 7

// walkSince iterates commits reachable from HEAD, newest first, invoking
// visit for each commit until the boundary revision is reached. The boundary
// commit itself is not visited. An empty rev walks the full history.
func (r *Repo) walkSince(ctx context.Context, rev string, visit func(*object.Commit) error) error {
	if err := ctx.Err(); err != nil {
		return WrapError(err, "context cancelled")
	}

	var boundary plumbing.Hash
	if rev != "" {
		hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
		if err != nil {
			return WrapErrorf(ErrResolveFailed, "revision %q", rev)
		}
		boundary = *hash
	}

	iter, err := r.repo.Log(&git.LogOptions{})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return WrapError(ErrResolveFailed, "repository has no commits")
		}
		return WrapError(err, "failed to read commit log")
	}
	defer iter.Close()

	err = iter.ForEach(func(commit *object.Commit) error {
		if rev != "" && commit.Hash == boundary {
			return storer.ErrStop
		}
		return visit(commit)
	})
	if err != nil {
		return WrapError(err, "failed to iterate commits")
	}

	return nil
}

// CommitsSince counts the commits in the history of HEAD after the given
// revision, excluding the revision itself. An empty rev counts the entire
// history. Returns ErrResolveFailed if rev cannot be resolved or the
// repository has no commits.
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) CommitsSince(ctx context.Context, rev string) (int, error) {
	count := 0
	err := r.walkSince(ctx, rev, func(*object.Commit) error {
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// SubjectsSince returns the commit subjects (first message lines) in the
// history of HEAD after the given revision, newest first. An empty rev
// returns subjects for the entire history.
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) SubjectsSince(ctx context.Context, rev string) ([]string, error) {
	var subjects []string
	err := r.walkSince(ctx, rev, func(commit *object.Commit) error {
		subjects = append(subjects, commitSubject(commit))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return subjects, nil
}

// commitSubject extracts the first line of a commit message.
func commitSubject(commit *object.Commit) string {
	subject, _, _ := strings.Cut(commit.Message, "\n")
	return strings.TrimSpace(subject)
}

// Head returns the full hash of the current HEAD commit.
// Returns ErrResolveFailed if the repository has no commits.
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) Head(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", WrapError(ErrResolveFailed, "repository has no commits")
		}
		return "", WrapError(err, "failed to resolve HEAD")
	}

	return head.Hash().String(), nil
}

// ShortHash returns the abbreviated hash of the current HEAD commit, as used
// in dev version strings.
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) ShortHash(ctx context.Context) (string, error) {
	hash, err := r.Head(ctx)
	if err != nil {
		return "", err
	}

	return hash[:shortHashLen], nil
}
