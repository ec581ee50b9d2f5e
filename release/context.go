// Package release resolves release stages and versions.
// This file contains the resolver and the immutable release context it
// produces for downstream consumers.
package release

import (
	"context"
	"fmt"
)

// SCM describes the source control remote a release is cut from. The zero
// value means no remote is configured; remote-dependent behavior (tag
// pushing, links) is disabled rather than failing.
type SCM struct {
	// Host is the remote host, e.g. "github.com".
	Host string `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty"`

	// Owner is the organization or user owning the repository.
	Owner string `json:"owner,omitempty" yaml:"owner,omitempty" toml:"owner,omitempty"`

	// Repo is the repository name without the ".git" suffix.
	Repo string `json:"repo,omitempty" yaml:"repo,omitempty" toml:"repo,omitempty"`

	// URL is the remote URL as configured, unparsed.
	URL string `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`
}

// Enabled reports whether a remote is configured. When false, release
// features that need a remote are soft-disabled.
func (s SCM) Enabled() bool {
	return s.URL != ""
}

// Context is the frozen result of release resolution. It is built exactly
// once per invocation and shared read-only: every project of a multi-project
// build sees the same stage and version. Context has no setters; copy it
// freely.
type Context struct {
	// Stage the invocation resolved to.
	Stage Stage `json:"stage" yaml:"stage" toml:"stage"`

	// Status is the publication status string for the stage ("release",
	// "candidate", or empty).
	Status string `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`

	// Version is the fully rendered version string.
	Version string `json:"version" yaml:"version" toml:"version"`

	// TagName is the tag that publishes this release, including the tag
	// prefix. Empty for snapshot and dev builds, which are never tagged.
	TagName string `json:"tag,omitempty" yaml:"tag,omitempty" toml:"tag,omitempty"`

	// PreviousTag is the newest release tag the version was derived from.
	// Empty when the repository has no release tags.
	PreviousTag string `json:"previousTag,omitempty" yaml:"previousTag,omitempty" toml:"previousTag,omitempty"`

	// SCM identifies the remote the release is cut from, when one exists.
	SCM SCM `json:"scm,omitempty" yaml:"scm,omitempty" toml:"scm,omitempty"`

	// InvokedCommands is the command set the stage was resolved from.
	InvokedCommands []string `json:"invokedCommands,omitempty" yaml:"invokedCommands,omitempty" toml:"invokedCommands,omitempty"`
}

// Environ renders the context as environment variables for hook processes.
// Keys are stable; empty values are omitted.
func (c Context) Environ() []string {
	pairs := []struct{ key, value string }{
		{"RELEASE_VERSION", c.Version},
		{"RELEASE_STAGE", c.Stage.String()},
		{"RELEASE_STATUS", c.Status},
		{"RELEASE_TAG", c.TagName},
		{"RELEASE_PREVIOUS_TAG", c.PreviousTag},
		{"RELEASE_SCM_URL", c.SCM.URL},
		{"RELEASE_SCM_HOST", c.SCM.Host},
		{"RELEASE_SCM_OWNER", c.SCM.Owner},
		{"RELEASE_SCM_REPO", c.SCM.Repo},
	}

	env := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.value != "" {
			env = append(env, fmt.Sprintf("%s=%s", p.key, p.value))
		}
	}
	return env
}

// Options configures a Resolver.
type Options struct {
	// Source supplies repository state. May be nil; resolution then works
	// only with explicit versions.
	Source Source

	// SCM identifies the repository remote, when one was detected.
	SCM SCM

	// ExplicitVersion overrides all version inference when non-empty.
	ExplicitVersion string

	// UseLastTag promotes the newest version tag instead of computing a new
	// version.
	UseLastTag bool

	// Scope selects the version component bumped during inference.
	Scope Scope

	// InitialVersion seeds untagged repositories. Defaults to
	// DefaultInitialVersion.
	InitialVersion string

	// TagPrefix is the version tag prefix, typically "v".
	TagPrefix string
}

// Validate checks that the Options are properly configured.
func (o *Options) Validate() error {
	if o.Scope != "" && !o.Scope.Valid() {
		return WrapErrorf(ErrConfiguration, "unknown version scope %q", o.Scope)
	}
	return nil
}

// Resolver resolves release contexts. Create one per invocation with
// NewResolver; it holds no mutable state beyond its options.
type Resolver struct {
	opts Options
}

// NewResolver returns a Resolver for the given options.
func NewResolver(opts *Options) (*Resolver, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}
	return &Resolver{opts: *opts}, nil
}

// Resolve computes the release context for an invocation. The invoked slice
// is the full set of command names the build was started with; stage
// resolution validates it and everything else follows from the stage.
//
// The returned Context is complete and immutable. Context cancellation is
// honored while repository state is read.
func (r *Resolver) Resolve(ctx context.Context, invoked []string) (Context, error) {
	stage, err := ResolveStage(invoked)
	if err != nil {
		return Context{}, err
	}
	return r.ResolveStage(ctx, stage, invoked)
}

// ResolveStage computes the release context for an already-selected stage.
// Use Resolve when the stage should be derived from the invocation.
func (r *Resolver) ResolveStage(ctx context.Context, stage Stage, invoked []string) (Context, error) {
	if !stage.Valid() {
		return Context{}, WrapErrorf(ErrConfiguration, "unknown release stage %q", stage)
	}

	version, err := ComputeVersion(ctx, Request{
		Stage:           stage,
		ExplicitVersion: r.opts.ExplicitVersion,
		UseLastTag:      r.opts.UseLastTag,
		Scope:           r.opts.Scope,
		InitialVersion:  r.opts.InitialVersion,
		TagPrefix:       r.opts.TagPrefix,
	}, r.opts.Source)
	if err != nil {
		return Context{}, err
	}

	previous, err := r.previousTag(ctx)
	if err != nil {
		return Context{}, err
	}

	rc := Context{
		Stage:           stage,
		Status:          stage.Status(),
		Version:         version.Full,
		PreviousTag:     previous,
		SCM:             r.opts.SCM,
		InvokedCommands: append([]string(nil), invoked...),
	}

	if stage.Releasable() {
		rc.TagName = r.opts.TagPrefix + version.Full
	}

	return rc, nil
}

// previousTag finds the newest release tag, or empty when the repository has
// none (or there is no repository at all).
func (r *Resolver) previousTag(ctx context.Context) (string, error) {
	if r.opts.Source == nil {
		return "", nil
	}

	names, err := r.opts.Source.Tags(ctx, r.opts.TagPrefix)
	if err != nil {
		return "", WrapError(err, "failed to list version tags")
	}

	var newest TagInfo
	found := false
	for _, name := range names {
		info, ok := ParseVersionTag(name, r.opts.TagPrefix)
		if !ok || !info.Final() {
			continue
		}
		if !found || info.Version.GreaterThan(newest.Version) {
			newest = info
			found = true
		}
	}

	if !found {
		return "", nil
	}
	return newest.Raw, nil
}
