// Package release resolves release stages and versions.
// This file contains the stage type and stage resolution from invoked commands.
package release

import (
	"strings"
)

// Stage identifies the release lifecycle stage of a build invocation.
// The zero value is not valid; use ResolveStage or one of the constants.
type Stage string

const (
	// StageDev is the default stage when no stage command is invoked.
	// Versions carry a "-dev.N.<hash>" suffix and are never published.
	StageDev Stage = "dev"

	// StageSnapshot produces mutable "-SNAPSHOT" versions.
	StageSnapshot Stage = "snapshot"

	// StageCandidate produces "-rc.N" release candidates.
	StageCandidate Stage = "candidate"

	// StageFinal produces promoted ".RELEASE" versions.
	StageFinal Stage = "final"
)

// Command names that select a release stage when present in the invocation.
// CommandDevSnapshot is accepted in both its camel-case and kebab-case
// spellings; they are the same command.
const (
	CommandFinal            = "final"
	CommandCandidate        = "candidate"
	CommandSnapshot         = "snapshot"
	CommandDevSnapshot      = "devSnapshot"
	CommandDevSnapshotAlias = "dev-snapshot"
)

// String returns the stage name.
func (s Stage) String() string {
	return string(s)
}

// Valid reports whether s is one of the four known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageDev, StageSnapshot, StageCandidate, StageFinal:
		return true
	default:
		return false
	}
}

// Releasable reports whether the stage produces an immutable, taggable
// release. Only final and candidate versions are ever tagged or promoted.
func (s Stage) Releasable() bool {
	return s == StageFinal || s == StageCandidate
}

// Status returns the publication status string attached to artifacts built at
// this stage: "release" for final, "candidate" for candidate, and empty for
// snapshot and dev builds.
func (s Stage) Status() string {
	switch s {
	case StageFinal:
		return "release"
	case StageCandidate:
		return "candidate"
	default:
		return ""
	}
}

// Qualifier returns the version qualifier for this stage: the prerelease
// identifier of candidate ("rc"), snapshot ("SNAPSHOT") and dev ("dev")
// versions. Final versions have no qualifier; they are marked with the
// ".RELEASE" suffix instead.
func (s Stage) Qualifier() string {
	switch s {
	case StageCandidate:
		return "rc"
	case StageSnapshot:
		return "SNAPSHOT"
	case StageDev:
		return "dev"
	default:
		return ""
	}
}

// ResolveStage selects the release stage from the command names a build was
// invoked with. Exactly one of the stage commands (final, candidate,
// snapshot, devSnapshot) may be present; invoking more than one returns an
// error wrapping ErrConfiguration. When none is present the build resolves
// to StageDev.
//
// Matching is exact apart from the devSnapshot/dev-snapshot spelling pair.
// Duplicate occurrences of the same command count once.
func ResolveStage(invoked []string) (Stage, error) {
	var hasFinal, hasCandidate, hasSnapshot, hasDevSnapshot bool

	for _, name := range invoked {
		switch strings.TrimSpace(name) {
		case CommandFinal:
			hasFinal = true
		case CommandCandidate:
			hasCandidate = true
		case CommandSnapshot:
			hasSnapshot = true
		case CommandDevSnapshot, CommandDevSnapshotAlias:
			hasDevSnapshot = true
		}
	}

	var selected []string
	if hasFinal {
		selected = append(selected, CommandFinal)
	}
	if hasCandidate {
		selected = append(selected, CommandCandidate)
	}
	if hasSnapshot {
		selected = append(selected, CommandSnapshot)
	}
	if hasDevSnapshot {
		selected = append(selected, CommandDevSnapshot)
	}

	if len(selected) > 1 {
		return "", WrapErrorf(ErrConfiguration,
			"only one release stage command may be specified, got: %s",
			strings.Join(selected, ", "))
	}

	switch {
	case hasFinal:
		return StageFinal, nil
	case hasCandidate:
		return StageCandidate, nil
	case hasSnapshot:
		return StageSnapshot, nil
	default:
		return StageDev, nil
	}
}

// ParseStage converts a stage name into a Stage, accepting the same
// spellings as ResolveStage plus the literal "dev".
func ParseStage(name string) (Stage, error) {
	switch strings.TrimSpace(name) {
	case string(StageDev), CommandDevSnapshot, CommandDevSnapshotAlias:
		return StageDev, nil
	case string(StageSnapshot):
		return StageSnapshot, nil
	case string(StageCandidate):
		return StageCandidate, nil
	case string(StageFinal):
		return StageFinal, nil
	default:
		return "", WrapErrorf(ErrConfiguration, "unknown release stage %q", name)
	}
}
