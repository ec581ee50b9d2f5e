// Package release resolves the release stage and version for a build invocation.
//
// The package turns three inputs into one immutable decision: the set of
// commands the build was invoked with, the repository's tag history, and any
// explicit overrides from configuration. The decision is captured in a Context
// value that downstream consumers (taggers, publish hooks, multi-project
// builds) share read-only.
//
// # Stages
//
// Every invocation resolves to exactly one stage:
//
//	final      promoted release, versions end in ".RELEASE"
//	candidate  release candidate, versions end in "-rc.N"
//	snapshot   mutable pre-release, versions end in "-SNAPSHOT"
//	dev        default stage, versions end in "-dev.N.<hash>"
//
// The stage is selected by the command names passed to ResolveStage. Invoking
// more than one stage command is a configuration error: a build must never
// have to guess whether it is producing a candidate or a final release.
//
// # Basic Usage
//
// Resolve a complete release context:
//
//	resolver, err := release.NewResolver(&release.Options{
//	    Source:    src, // e.g. a git-backed Source, may be nil
//	    TagPrefix: "v",
//	})
//	if err != nil {
//	    return err
//	}
//
//	rc, err := resolver.Resolve(ctx, []string{"build", "candidate"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(rc.Version) // e.g. "0.2.0-rc.1"
//
// Or compute a version directly:
//
//	v, err := release.ComputeVersion(ctx, release.Request{
//	    Stage:          release.StageFinal,
//	    InitialVersion: "0.1.0",
//	}, src)
//	fmt.Println(v.Full) // "0.1.0.RELEASE"
//
// # Version Sources
//
// Repository state is read through the Source interface. A nil Source is
// allowed: explicit versions still resolve, and everything that needs tag
// history fails with ErrConfiguration instead of panicking. The git package
// provides a Source implementation backed by a repository.
//
// # Error Handling
//
// All failures that stem from user input wrap ErrConfiguration:
//
//	if errors.Is(err, release.ErrConfiguration) {
//	    // fatal; fix the invocation or the settings and rerun
//	}
//
// Configuration errors are never retried. They are surfaced to the user
// verbatim.
//
// # Immutability
//
// Context is a plain value with no setters. Resolve builds it once per
// invocation; consumers receive copies and cannot influence each other.
package release
