// Package git provides a high-level, idiomatic Go wrapper for the git
// operations release resolution needs.
//
// This package offers a clean facade over go-git, exposing task-oriented
// operations for reading tag history, counting commits, inspecting remotes,
// and creating release tags. All operations work with both on-disk and
// in-memory repositories through the billy filesystem abstraction.
//
// # Design Principles
//
// The package follows these core principles:
//   - Minimal surface area - only what release resolution consumes
//   - Testability by construction - in-memory FS, controlled side effects
//   - Absence is not failure - a missing remote disables remote features
//     instead of erroring
//   - Go idioms - accepts interfaces, returns concrete types
//
// # Basic Usage
//
// Open an existing repository:
//
//	import (
//	    "context"
//	    "github.com/go-git/go-billy/v5/osfs"
//	    "github.com/spring-operator/spring-release/git"
//	)
//
//	repo, err := git.Open(context.Background(), &git.Options{
//	    FS: osfs.New("/path/to/repo"),
//	})
//
// Or initialize a new one (tests typically use memfs.New()):
//
//	repo, err := git.Init(context.Background(), &git.Options{
//	    FS: memfs.New(),
//	})
//
// # Working with Tags
//
// Create and list release tags:
//
//	// Create annotated tag
//	err = repo.CreateTag(ctx, "v1.2.0.RELEASE", "HEAD", "release 1.2.0", true)
//
//	// List tags matching a prefix
//	tags, err := repo.Tags(ctx, git.TagPrefixFilter("v"))
//
//	// Push a single tag
//	err = repo.PushTag(ctx, "origin", "v1.2.0.RELEASE")
//
// # History
//
// Read the history facts version inference needs:
//
//	count, err := repo.CommitsSince(ctx, "v1.1.0.RELEASE")
//	subjects, err := repo.SubjectsSince(ctx, "v1.1.0.RELEASE")
//	hash, err := repo.ShortHash(ctx)
//
// # Remotes
//
// Remote inspection never fails just because a remote is absent:
//
//	url, ok, err := repo.RemoteURL(ctx, "origin")
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    // no remote configured; pushing is disabled, resolution continues
//	}
//
//	info, ok := git.ParseRemoteURL(url)
//	if ok {
//	    fmt.Println(info.Host, info.Owner, info.Name)
//	}
//
// # Authentication
//
// Pushing over HTTPS uses the AuthProvider interface. TokenAuth covers the
// common token case:
//
//	opts := &git.Options{
//	    FS:   osfs.New("."),
//	    Auth: git.NewTokenAuth(os.Getenv("GITHUB_TOKEN")),
//	}
//
// # Error Handling
//
// The package provides sentinel errors for common conditions:
//
//	err := repo.CreateTag(ctx, "v1.0.0", "HEAD", "", false)
//	if errors.Is(err, git.ErrTagExists) {
//	    // tag was already cut
//	}
//
// # Thread Safety
//
// A Repo instance is NOT safe for concurrent writes. Read operations (Tags,
// CommitsSince, RemoteURL, etc.) can be called concurrently. Write operations
// (CreateTag, Commit, PushTag) must be serialized.
package git
