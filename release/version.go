// Package release resolves release stages and versions.
// This file contains version computation: suffix normalization, tag parsing,
// and inference of the next version from repository state.
package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// ReleaseSuffix marks promoted release versions, e.g. "1.2.0.RELEASE".
	// The suffix is appended exactly once; normalization is idempotent.
	ReleaseSuffix = ".RELEASE"

	// SnapshotSuffix marks mutable snapshot versions, e.g. "1.2.0-SNAPSHOT".
	SnapshotSuffix = "-SNAPSHOT"

	// DefaultInitialVersion is used for the first release of a repository
	// that has no version tags yet.
	DefaultInitialVersion = "0.1.0"
)

// Version is a fully resolved version for one release stage.
type Version struct {
	// Full is the complete rendered version string, for example
	// "1.2.0.RELEASE", "1.2.0-rc.1" or "1.2.0-dev.4.9ae12bc".
	Full string `json:"full" yaml:"full" toml:"full"`

	// Base is the numeric MAJOR.MINOR.PATCH core of the version.
	Base *semver.Version `json:"-" yaml:"-" toml:"-"`

	// Stage the version was computed for.
	Stage Stage `json:"stage" yaml:"stage" toml:"stage"`

	// Status is the publication status attached to the version: "release"
	// for final builds, "candidate" for release candidates, empty otherwise.
	Status string `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`
}

// String returns the full version string.
func (v Version) String() string {
	return v.Full
}

// Request carries the inputs to a version computation. All fields are
// read-only; ComputeVersion never mutates the request.
type Request struct {
	// Stage is the resolved release stage. Required.
	Stage Stage

	// ExplicitVersion overrides all inference when non-empty. It is used
	// verbatim apart from release-suffix normalization.
	ExplicitVersion string

	// UseLastTag promotes the newest version tag instead of computing a new
	// version. The tag is used verbatim after the tag prefix is stripped,
	// with release-suffix normalization applied.
	UseLastTag bool

	// Scope selects the component bumped when inferring the next version
	// from the previous release tag. Defaults to DefaultScope.
	Scope Scope

	// InitialVersion is the version used when the repository has no release
	// tags yet. Defaults to DefaultInitialVersion.
	InitialVersion string

	// TagPrefix is the prefix version tags carry in this repository,
	// typically "v". An empty prefix matches bare version tags.
	TagPrefix string
}

// TagInfo is the parsed form of a version tag.
type TagInfo struct {
	// Version is the parsed version including any prerelease identifiers.
	Version *semver.Version

	// Prerelease is the prerelease portion, empty for final releases.
	Prerelease string

	// ReleaseSuffix reports whether the tag carried the ".RELEASE" marker.
	ReleaseSuffix bool

	// Raw is the tag name exactly as found in the repository.
	Raw string
}

// Final reports whether the tag names a promoted release rather than a
// candidate or other prerelease. Both "v1.2.0" and "v1.2.0.RELEASE" count.
func (t TagInfo) Final() bool {
	return t.Prerelease == ""
}

// ParseVersionTag parses a version tag into its components. It is a pure
// string function: a tag that does not look like a version returns ok=false,
// never an error. Accepted shapes are
//
//	<prefix>MAJOR.MINOR.PATCH[-prerelease][.RELEASE]
//
// with a leading "v" tolerated even when prefix is empty. Tags that do not
// start with the given prefix do not match.
func ParseVersionTag(tag, prefix string) (TagInfo, bool) {
	rest := tag
	if prefix != "" {
		if !strings.HasPrefix(rest, prefix) {
			return TagInfo{}, false
		}
		rest = strings.TrimPrefix(rest, prefix)
	}
	rest = strings.TrimPrefix(rest, "v")

	suffixed := strings.HasSuffix(rest, ReleaseSuffix)
	if suffixed {
		rest = strings.TrimSuffix(rest, ReleaseSuffix)
	}

	v, err := semver.StrictNewVersion(rest)
	if err != nil {
		return TagInfo{}, false
	}

	return TagInfo{
		Version:       v,
		Prerelease:    v.Prerelease(),
		ReleaseSuffix: suffixed,
		Raw:           tag,
	}, true
}

// needsReleaseSuffix reports whether versions resolved at this stage carry
// the ".RELEASE" marker. Final versions always do; candidate versions only
// when they promote an existing tag.
func needsReleaseSuffix(stage Stage, useLastTag bool) bool {
	return stage == StageFinal || (stage == StageCandidate && useLastTag)
}

// ensureReleaseSuffix appends ReleaseSuffix unless it is already present.
func ensureReleaseSuffix(version string) string {
	if strings.HasSuffix(version, ReleaseSuffix) {
		return version
	}
	return version + ReleaseSuffix
}

// ComputeVersion resolves the version for one release stage. Inputs are
// considered in order: an explicit version wins, then tag promotion via
// UseLastTag, then inference from the newest release tag (or the initial
// version when the repository has none). src may be nil when an explicit
// version is given; every other path needs repository state and fails with
// an error wrapping ErrConfiguration without it.
func ComputeVersion(ctx context.Context, req Request, src Source) (Version, error) {
	if !req.Stage.Valid() {
		return Version{}, WrapErrorf(ErrConfiguration, "unknown release stage %q", req.Stage)
	}

	if req.ExplicitVersion != "" {
		return normalizeExplicit(req)
	}

	if req.UseLastTag {
		return promoteLastTag(ctx, req, src)
	}

	return inferVersion(ctx, req, src)
}

// normalizeExplicit validates an explicit version override and applies
// release-suffix normalization. The override is otherwise returned unchanged.
func normalizeExplicit(req Request) (Version, error) {
	full := req.ExplicitVersion

	base, err := semver.NewVersion(strings.TrimSuffix(full, ReleaseSuffix))
	if err != nil {
		return Version{}, WrapErrorf(ErrConfiguration, "explicit version %q is not a valid version", full)
	}

	if needsReleaseSuffix(req.Stage, req.UseLastTag) {
		full = ensureReleaseSuffix(full)
	}

	return Version{
		Full:   full,
		Base:   core(base),
		Stage:  req.Stage,
		Status: req.Stage.Status(),
	}, nil
}

// promoteLastTag resolves the version from the newest version tag in the
// repository. The tag is used verbatim after the prefix (or a bare leading
// "v") is stripped, with release-suffix normalization applied.
func promoteLastTag(ctx context.Context, req Request, src Source) (Version, error) {
	if src == nil {
		return Version{}, WrapError(ErrNoVersionSource, "useLastTag requires a repository")
	}

	infos, err := versionTags(ctx, req, src)
	if err != nil {
		return Version{}, err
	}
	if len(infos) == 0 {
		return Version{}, WrapErrorf(ErrNoVersionSource,
			"useLastTag requires a version tag with prefix %q", req.TagPrefix)
	}

	last := newestTag(infos)

	full := strings.TrimPrefix(last.Raw, req.TagPrefix)
	full = strings.TrimPrefix(full, "v")
	if needsReleaseSuffix(req.Stage, true) {
		full = ensureReleaseSuffix(full)
	}

	return Version{
		Full:   full,
		Base:   core(last.Version),
		Stage:  req.Stage,
		Status: req.Stage.Status(),
	}, nil
}

// inferVersion computes the next version from the newest release tag,
// falling back to the initial version for untagged repositories, and applies
// the stage suffix policy.
func inferVersion(ctx context.Context, req Request, src Source) (Version, error) {
	if src == nil {
		return Version{}, WrapError(ErrNoVersionSource, "cannot infer a version without a repository")
	}

	infos, err := versionTags(ctx, req, src)
	if err != nil {
		return Version{}, err
	}

	var finals []TagInfo
	for _, info := range infos {
		if info.Final() {
			finals = append(finals, info)
		}
	}

	var base *semver.Version
	lastFinalRev := ""
	if len(finals) == 0 {
		initial := req.InitialVersion
		if initial == "" {
			initial = DefaultInitialVersion
		}
		base, err = semver.NewVersion(initial)
		if err != nil {
			return Version{}, WrapErrorf(ErrConfiguration, "initial version %q is not a valid version", initial)
		}
		base = core(base)
	} else {
		last := newestTag(finals)
		lastFinalRev = last.Raw

		scope, err := concreteScope(ctx, req, src, last.Raw)
		if err != nil {
			return Version{}, err
		}
		base = bump(core(last.Version), scope)
	}

	switch req.Stage {
	case StageFinal:
		return Version{
			Full:   ensureReleaseSuffix(base.String()),
			Base:   base,
			Stage:  req.Stage,
			Status: req.Stage.Status(),
		}, nil

	case StageCandidate:
		ordinal := nextCandidateOrdinal(infos, base)
		return Version{
			Full:   fmt.Sprintf("%s-%s.%d", base, req.Stage.Qualifier(), ordinal),
			Base:   base,
			Stage:  req.Stage,
			Status: req.Stage.Status(),
		}, nil

	case StageSnapshot:
		return Version{
			Full:  base.String() + SnapshotSuffix,
			Base:  base,
			Stage: req.Stage,
		}, nil

	default: // StageDev
		count, err := src.CommitsSince(ctx, lastFinalRev)
		if err != nil {
			return Version{}, WrapError(err, "failed to count commits for dev version")
		}
		hash, err := src.ShortHash(ctx)
		if err != nil {
			return Version{}, WrapError(err, "failed to read commit hash for dev version")
		}
		return Version{
			Full:  fmt.Sprintf("%s-%s.%d.%s", base, req.Stage.Qualifier(), count, hash),
			Base:  base,
			Stage: req.Stage,
		}, nil
	}
}

// versionTags lists the repository's tags and keeps those that parse as
// version tags with the configured prefix.
func versionTags(ctx context.Context, req Request, src Source) ([]TagInfo, error) {
	names, err := src.Tags(ctx, req.TagPrefix)
	if err != nil {
		return nil, WrapError(err, "failed to list version tags")
	}

	var infos []TagInfo
	for _, name := range names {
		if info, ok := ParseVersionTag(name, req.TagPrefix); ok {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

// newestTag returns the tag with the highest version. Prerelease ordering
// follows semver, so "1.2.0-rc.2" sorts below "1.2.0".
func newestTag(infos []TagInfo) TagInfo {
	newest := infos[0]
	for _, info := range infos[1:] {
		if info.Version.GreaterThan(newest.Version) {
			newest = info
		}
	}
	return newest
}

// concreteScope resolves ScopeAuto against the commit subjects since the last
// release, and defaults an unset scope.
func concreteScope(ctx context.Context, req Request, src Source, sinceRev string) (Scope, error) {
	scope := req.Scope
	if scope == "" {
		scope = DefaultScope
	}
	if !scope.Valid() {
		return "", WrapErrorf(ErrConfiguration, "unknown version scope %q", scope)
	}
	if scope != ScopeAuto {
		return scope, nil
	}

	subjects, err := src.SubjectsSince(ctx, sinceRev)
	if err != nil {
		return "", WrapError(err, "failed to read commit subjects for scope inference")
	}
	return InferScope(subjects, DefaultScope), nil
}

// bump increments the scope's component of the version.
func bump(v *semver.Version, scope Scope) *semver.Version {
	var next semver.Version
	switch scope {
	case ScopeMajor:
		next = v.IncMajor()
	case ScopePatch:
		next = v.IncPatch()
	default:
		next = v.IncMinor()
	}
	return &next
}

// nextCandidateOrdinal returns one past the highest existing "rc.N" ordinal
// among tags sharing the same base version.
func nextCandidateOrdinal(infos []TagInfo, base *semver.Version) int {
	highest := 0
	for _, info := range infos {
		if !sameCore(info.Version, base) {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(info.Prerelease, "rc.%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// core strips prerelease and build metadata, leaving MAJOR.MINOR.PATCH.
func core(v *semver.Version) *semver.Version {
	return semver.New(v.Major(), v.Minor(), v.Patch(), "", "")
}

// sameCore reports whether two versions share the same numeric core.
func sameCore(a, b *semver.Version) bool {
	return a.Major() == b.Major() && a.Minor() == b.Minor() && a.Patch() == b.Patch()
}
