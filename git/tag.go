// Package git provides a high-level Go wrapper for go-git operations.
// This file contains tag operations (create, delete, list, push).
package git

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TagFilter is a predicate function for filtering tags.
// It returns true if the tag should be included in the results.
// Filters are applied progressively - if any filter returns false, the tag is excluded.
type TagFilter func(name string, ref *plumbing.Reference) bool

// CreateTag creates a new tag at the specified target revision.
// If message is provided and annotated is true, an annotated tag is created.
// If message is empty or annotated is false, a lightweight tag is created.
// The target can be any valid revision specifier (commit hash, branch name, etc.).
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) CreateTag(ctx context.Context, name, target, message string, annotated bool) error {
	if name == "" {
		return WrapError(ErrInvalidRef, "tag name cannot be empty")
	}

	if target == "" {
		return WrapError(ErrInvalidRef, "target revision cannot be empty")
	}

	// Resolve the target revision to a commit hash
	hash, err := r.repo.ResolveRevision(plumbing.Revision(target))
	if err != nil {
		return WrapError(ErrResolveFailed, "failed to resolve target revision")
	}

	// Check if tag already exists
	tagRefName := plumbing.NewTagReferenceName(name)
	_, err = r.repo.Reference(tagRefName, true)
	if err == nil {
		return WrapErrorf(ErrTagExists, "tag %q", name)
	}

	if annotated && message != "" {
		tagOpts := &git.CreateTagOptions{
			Tagger:  r.tagger(),
			Message: message,
		}

		_, err = r.repo.CreateTag(name, *hash, tagOpts)
		if err != nil {
			return WrapError(err, "failed to create annotated tag")
		}
	} else {
		tagRef := plumbing.NewHashReference(tagRefName, *hash)
		err = r.repo.Storer.SetReference(tagRef)
		if err != nil {
			return WrapError(err, "failed to create lightweight tag")
		}
	}

	return nil
}

// tagger materializes the configured tag author, stamping the current time
// when the signature carries none.
func (r *Repo) tagger() *object.Signature {
	sig := r.options.Tagger
	when := sig.When
	if when.IsZero() {
		when = time.Now()
	}

	return &object.Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  when,
	}
}

// DeleteTag deletes the specified tag from the repository.
// Returns ErrTagMissing if the tag does not exist.
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) DeleteTag(ctx context.Context, name string) error {
	if name == "" {
		return WrapError(ErrInvalidRef, "tag name cannot be empty")
	}

	// Check if tag exists
	tagRefName := plumbing.NewTagReferenceName(name)
	_, err := r.repo.Reference(tagRefName, true)
	if err != nil {
		return WrapErrorf(ErrTagMissing, "tag %q", name)
	}

	// Delete the tag
	err = r.repo.Storer.RemoveReference(tagRefName)
	if err != nil {
		return WrapError(err, "failed to delete tag")
	}

	return nil
}

// HasTag reports whether the named tag exists in the repository.
func (r *Repo) HasTag(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, WrapError(ErrInvalidRef, "tag name cannot be empty")
	}

	_, err := r.repo.Reference(plumbing.NewTagReferenceName(name), true)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}

	return false, WrapError(err, "failed to look up tag")
}

// Tags returns a list of tags that pass all the provided filters.
// If no filters are provided, all tags are returned.
// Filters are applied progressively - a tag must pass ALL filters to be included.
// Results are sorted alphabetically.
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) Tags(ctx context.Context, filters ...TagFilter) ([]string, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, WrapError(err, "failed to get references")
	}

	var tags []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsTag() {
			tagName := ref.Name().Short()

			if shouldIncludeTag(tagName, ref, filters) {
				tags = append(tags, tagName)
			}
		}
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to iterate references")
	}

	sort.Strings(tags)

	return tags, nil
}

// PushTag pushes a single tag to the specified remote.
// A tag that is already present on the remote is treated as success.
// Returns ErrRemoteMissing if the remote is not configured and
// ErrNotFastForward if the remote holds a different tag under the same name.
//
// Context timeout/cancellation is honored during the push operation.
func (r *Repo) PushTag(ctx context.Context, remote, name string) error {
	if name == "" {
		return WrapError(ErrInvalidRef, "tag name cannot be empty")
	}

	if remote == "" {
		remote = DefaultRemoteName
	}

	refSpec := config.RefSpec(
		plumbing.NewTagReferenceName(name) + ":" + plumbing.NewTagReferenceName(name),
	)

	pushOpts := &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
	}

	// Set up authentication if available
	if r.options.Auth != nil {
		remoteConfig, err := r.repo.Remote(remote)
		if err != nil {
			if errors.Is(err, git.ErrRemoteNotFound) {
				return WrapErrorf(ErrRemoteMissing, "remote %q", remote)
			}
			return WrapError(err, "failed to get remote configuration")
		}

		authMethod, authErr := r.options.Auth.Method(remoteConfig.Config().URLs[0])
		if authErr != nil {
			return WrapError(ErrAuthRequired, "failed to get authentication method")
		}
		pushOpts.Auth = authMethod
	}

	err := r.repo.Push(pushOpts)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return WrapErrorf(ErrRemoteMissing, "remote %q", remote)
		}
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			return nil
		}
		if errors.Is(err, git.ErrNonFastForwardUpdate) {
			return WrapErrorf(ErrNotFastForward, "tag %q", name)
		}
		return WrapError(err, "failed to push tag to remote")
	}

	return nil
}

// shouldIncludeTag checks if a tag passes all filters
func shouldIncludeTag(name string, ref *plumbing.Reference, filters []TagFilter) bool {
	for _, filter := range filters {
		if filter != nil && !filter(name, ref) {
			return false
		}
	}
	return true
}

// Common TagFilter implementations for convenience

// TagPatternFilter returns a filter that matches tags against a glob pattern.
// Supports * (matches any number of characters) and ? (matches single character).
// For example: "v1.*" matches "v1.0", "v1.1", etc.
func TagPatternFilter(pattern string) TagFilter {
	return func(name string, ref *plumbing.Reference) bool {
		return matchesTagPattern(name, pattern)
	}
}

// matchesTagPattern checks if a tag name matches the given pattern
func matchesTagPattern(name, pattern string) bool {
	if pattern == "" {
		return true // Empty pattern matches all
	}

	// Handle * wildcard
	if strings.Contains(pattern, "*") {
		return matchesStarPattern(name, pattern)
	}

	// Handle ? wildcard
	if strings.Contains(pattern, "?") {
		return matchesQuestionPattern(name, pattern)
	}

	// Exact match for patterns without wildcards
	return name == pattern
}

// matchesStarPattern matches names with * wildcards
func matchesStarPattern(name, pattern string) bool {
	switch {
	case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
		// *middle* pattern - contains substring
		middle := strings.TrimPrefix(strings.TrimSuffix(pattern, "*"), "*")
		return strings.Contains(name, middle)
	case strings.HasPrefix(pattern, "*"):
		// *suffix pattern - ends with
		suffix := strings.TrimPrefix(pattern, "*")
		return strings.HasSuffix(name, suffix)
	case strings.HasSuffix(pattern, "*"):
		// prefix* pattern - starts with
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(name, prefix)
	default:
		// Multiple * wildcards - split and check each part
		parts := strings.Split(pattern, "*")
		if len(parts) <= 1 {
			return false
		}

		pos := 0
		for i, part := range parts {
			if part == "" {
				continue // Empty parts from consecutive *
			}

			switch {
			case i == 0:
				// First part must be at the beginning
				if !strings.HasPrefix(name[pos:], part) {
					return false
				}
				pos += len(part)
			case i == len(parts)-1 && part != "":
				// Last part must be at the end
				return strings.HasSuffix(name, part)
			default:
				// Middle parts can be anywhere after current position
				idx := strings.Index(name[pos:], part)
				if idx == -1 {
					return false
				}
				pos += idx + len(part)
			}
		}
		return true
	}
}

// matchesQuestionPattern matches names with ? wildcards
func matchesQuestionPattern(name, pattern string) bool {
	if len(name) != len(pattern) {
		return false
	}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '?' {
			continue // ? matches any single character
		}
		if pattern[i] != name[i] {
			return false
		}
	}

	return true
}

// TagPrefixFilter returns a filter that matches tags with the given prefix.
// For example: "v" matches "v1.0", "v2.0", etc.
func TagPrefixFilter(prefix string) TagFilter {
	return func(name string, ref *plumbing.Reference) bool {
		return strings.HasPrefix(name, prefix)
	}
}

// TagSuffixFilter returns a filter that matches tags with the given suffix.
// For example: ".RELEASE" matches "v1.0.0.RELEASE", "v2.0.0.RELEASE", etc.
func TagSuffixFilter(suffix string) TagFilter {
	return func(name string, ref *plumbing.Reference) bool {
		return strings.HasSuffix(name, suffix)
	}
}

// TagExcludeFilter returns a filter that excludes tags matching the given pattern.
// This is useful for filtering out certain tags while keeping all others.
// For example: TagExcludeFilter("*-rc*") excludes all release candidates.
func TagExcludeFilter(pattern string) TagFilter {
	includeFilter := TagPatternFilter(pattern)
	return func(name string, ref *plumbing.Reference) bool {
		return !includeFilter(name, ref) // Invert the pattern filter
	}
}
