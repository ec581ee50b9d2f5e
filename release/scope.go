// Package release resolves release stages and versions.
// This file contains the change scope used to bump the base version.
package release

import (
	"strings"

	"github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
)

// Scope selects which part of the base version is incremented when the next
// version is inferred from the previous release tag.
type Scope string

const (
	// ScopeMajor bumps the major version (1.2.3 -> 2.0.0).
	ScopeMajor Scope = "major"

	// ScopeMinor bumps the minor version (1.2.3 -> 1.3.0).
	ScopeMinor Scope = "minor"

	// ScopePatch bumps the patch version (1.2.3 -> 1.2.4).
	ScopePatch Scope = "patch"

	// ScopeAuto infers the scope from conventional commit subjects since the
	// last release: a breaking change bumps major, a feature bumps minor,
	// everything else bumps patch.
	ScopeAuto Scope = "auto"
)

// DefaultScope is used when no scope is configured and automatic inference
// finds nothing to go on.
const DefaultScope = ScopeMinor

// String returns the scope name.
func (s Scope) String() string {
	return string(s)
}

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	switch s {
	case ScopeMajor, ScopeMinor, ScopePatch, ScopeAuto:
		return true
	default:
		return false
	}
}

// ParseScope converts a scope name into a Scope.
func ParseScope(name string) (Scope, error) {
	s := Scope(strings.TrimSpace(strings.ToLower(name)))
	if !s.Valid() {
		return "", WrapErrorf(ErrConfiguration, "unknown version scope %q", name)
	}
	return s, nil
}

// InferScope derives a concrete scope from conventional commit subject lines.
// The strongest change wins: any breaking change yields major, otherwise any
// feature yields minor, otherwise any conventional commit yields patch.
// Subjects that do not parse as conventional commits are ignored; when none
// parse, fallback is returned.
func InferScope(subjects []string, fallback Scope) Scope {
	machine := parser.NewMachine(
		conventionalcommits.WithTypes(conventionalcommits.TypesConventional),
	)

	scope := Scope("")
	for _, subject := range subjects {
		msg, err := machine.Parse([]byte(subject))
		if err != nil {
			continue
		}
		cc, ok := msg.(*conventionalcommits.ConventionalCommit)
		if !ok {
			continue
		}

		switch {
		case cc.IsBreakingChange():
			return ScopeMajor
		case cc.IsFeat():
			scope = ScopeMinor
		default:
			if scope == "" {
				scope = ScopePatch
			}
		}
	}

	if scope == "" {
		return fallback
	}
	return scope
}
