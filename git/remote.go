// Package git provides high-level Git operations through a clean facade.
// This file contains remote lookup, creation, and remote URL parsing.
package git

import (
	"context"
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// RemoteInfo holds the structured parts of a parsed remote URL.
type RemoteInfo struct {
	// Host is the hostname of the remote, without user info or port.
	Host string

	// Owner is the repository owner or organization path.
	// Nested group paths keep their separators (e.g. "group/subgroup").
	Owner string

	// Name is the repository name with any .git suffix removed.
	Name string

	// URL is the remote URL as configured, unmodified.
	URL string
}

// RemoteURL returns the fetch URL of the named remote.
// A missing remote is not an error: it reports ok=false so callers can
// disable remote-dependent behavior and continue.
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) RemoteURL(ctx context.Context, name string) (string, bool, error) {
	if name == "" {
		name = DefaultRemoteName
	}

	remote, err := r.repo.Remote(name)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", false, nil
		}
		return "", false, WrapError(err, "failed to look up remote")
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", false, nil
	}

	return urls[0], true, nil
}

// AddRemote configures a new remote with the given name and URL.
// Returns ErrRemoteExists if a remote with the same name is already configured.
//
// Context timeout/cancellation is honored during the operation.
func (r *Repo) AddRemote(ctx context.Context, name, url string) error {
	if name == "" {
		return WrapError(ErrInvalidRef, "remote name cannot be empty")
	}

	if url == "" {
		return WrapError(ErrInvalidRef, "remote URL cannot be empty")
	}

	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err != nil {
		if errors.Is(err, git.ErrRemoteExists) {
			return WrapErrorf(ErrRemoteExists, "remote %q", name)
		}
		return WrapError(err, "failed to add remote")
	}

	return nil
}

// ParseRemoteURL extracts host, owner, and repository name from a remote URL.
// It understands https://, ssh://, git:// and scp-like (git@host:path) forms.
// Local paths and unrecognized schemes report ok=false; callers treat that
// as "no SCM information available" rather than an error.
func ParseRemoteURL(remoteURL string) (RemoteInfo, bool) {
	raw := strings.TrimSpace(remoteURL)
	if raw == "" {
		return RemoteInfo{}, false
	}

	var hostPart, pathPart string

	switch {
	case strings.Contains(raw, "://"):
		scheme, rest, _ := strings.Cut(raw, "://")
		switch strings.ToLower(scheme) {
		case "http", "https", "ssh", "git":
		default:
			return RemoteInfo{}, false
		}

		var found bool
		hostPart, pathPart, found = strings.Cut(rest, "/")
		if !found {
			return RemoteInfo{}, false
		}

	case looksScpLike(raw):
		hostPart, pathPart, _ = strings.Cut(raw, ":")

	default:
		return RemoteInfo{}, false
	}

	host := cleanHost(hostPart)
	owner, name, ok := splitRepoPath(pathPart)
	if host == "" || !ok {
		return RemoteInfo{}, false
	}

	return RemoteInfo{
		Host:  host,
		Owner: owner,
		Name:  name,
		URL:   raw,
	}, true
}

// looksScpLike reports whether the URL uses the scp-like git@host:path form,
// i.e. a colon appears before any slash.
func looksScpLike(raw string) bool {
	colon := strings.Index(raw, ":")
	if colon <= 0 {
		return false
	}

	slash := strings.Index(raw, "/")
	return slash == -1 || colon < slash
}

// cleanHost strips user info and a numeric port from a host fragment.
func cleanHost(hostPart string) string {
	host := hostPart
	if at := strings.LastIndex(host, "@"); at != -1 {
		host = host[at+1:]
	}

	if colon := strings.LastIndex(host, ":"); colon != -1 {
		port := host[colon+1:]
		if port != "" && strings.Trim(port, "0123456789") == "" {
			host = host[:colon]
		}
	}

	return host
}

// splitRepoPath splits a repository path into owner and name.
// The owner keeps any nested group segments.
func splitRepoPath(pathPart string) (owner, name string, ok bool) {
	path := strings.Trim(pathPart, "/")
	path = strings.TrimSuffix(path, ".git")
	if path == "" {
		return "", "", false
	}

	idx := strings.LastIndex(path, "/")
	if idx <= 0 || idx == len(path)-1 {
		return "", "", false
	}

	return path[:idx], path[idx+1:], true
}
