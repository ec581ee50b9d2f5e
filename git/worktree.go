// Package git provides a high-level Go wrapper for go-git operations.
// This file contains worktree operations (add, commit).
package git

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Add stages files in the worktree for the next commit.
// It supports glob patterns and handles missing files appropriately.
// Files that don't exist are silently ignored (matching git add behavior).
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) Add(ctx context.Context, paths ...string) error {
	if r.worktree == nil {
		return WrapError(ErrInvalidRef, "cannot add files in bare repository")
	}

	if len(paths) == 0 {
		return nil // No paths to add, not an error
	}

	workdirFS, err := r.fs.Chroot(r.options.Workdir)
	if err != nil {
		return WrapErrorf(err, "failed to chroot to workdir %q", r.options.Workdir)
	}

	// Collect all paths to add, expanding globs and skipping missing files
	var pathsToAdd []string

	for _, path := range paths {
		if path == "" {
			continue
		}

		if strings.ContainsAny(path, "*?[") {
			matches, globErr := util.Glob(workdirFS, path)
			if globErr != nil {
				return WrapErrorf(globErr, "invalid glob pattern %q", path)
			}

			pathsToAdd = append(pathsToAdd, matches...)
		} else {
			exists, err := workdirFS.Stat(path)
			if err == nil && exists != nil {
				pathsToAdd = append(pathsToAdd, path)
			}
			// Silently ignore non-existent files (matching git behavior)
		}
	}

	for _, path := range pathsToAdd {
		_, err := r.worktree.Add(path)
		if err != nil {
			return WrapErrorf(err, "failed to add path %q", path)
		}
	}

	return nil
}

// Commit creates a new commit with the specified message and author/committer.
// It returns the SHA of the new commit. A zero-valued Signature falls back to
// the configured Tagger identity. The CommitOpts can be used to control commit
// behavior such as allowing empty commits or staging all changes first.
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) Commit(ctx context.Context, msg string, who Signature, opts CommitOpts) (string, error) {
	if r.worktree == nil {
		return "", WrapError(ErrInvalidRef, "cannot commit in bare repository")
	}

	if msg == "" {
		return "", WrapError(ErrInvalidRef, "commit message cannot be empty")
	}

	if who.Name == "" && who.Email == "" {
		who = *r.options.Tagger
	}

	if who.Name == "" || who.Email == "" {
		return "", WrapError(ErrInvalidRef, "committer name and email are required")
	}

	if who.When.IsZero() {
		who.When = time.Now()
	}

	if opts.All {
		err := r.worktree.AddWithOptions(&git.AddOptions{All: true})
		if err != nil {
			return "", WrapError(err, "failed to stage changes")
		}
	}

	// Check if there are any staged changes
	status, err := r.worktree.Status()
	if err != nil {
		return "", WrapError(err, "failed to get worktree status")
	}

	stagedCount := 0
	for _, fileStatus := range status {
		if fileStatus.Staging != git.Untracked && fileStatus.Staging != git.Unmodified {
			stagedCount++
		}
	}

	if stagedCount == 0 && !opts.AllowEmpty {
		return "", WrapError(ErrEmptyCommit, "no changes staged for commit")
	}

	commitOpts := &git.CommitOptions{
		Author: &object.Signature{
			Name:  who.Name,
			Email: who.Email,
			When:  who.When,
		},
		Committer: &object.Signature{
			Name:  who.Name,
			Email: who.Email,
			When:  who.When,
		},
		AllowEmptyCommits: opts.AllowEmpty,
	}

	hash, err := r.worktree.Commit(msg, commitOpts)
	if err != nil {
		if errors.Is(err, git.ErrEmptyCommit) {
			return "", ErrEmptyCommit
		}
		return "", WrapError(err, "failed to create commit")
	}

	return hash.String(), nil
}
