package main

import (
	"github.com/spf13/cobra"

	"github.com/spring-operator/spring-release/config"
	"github.com/spring-operator/spring-release/release"
)

// Flags shared by the four stage commands. Only one stage command runs per
// invocation, so shared storage is safe.
var (
	stageVersion    string
	stageUseLastTag bool
	stageScope      string
	stageDryRun     bool
	stageNoTag      bool
	stageNoPush     bool
)

var (
	finalCmd = &cobra.Command{
		Use:   "final",
		Short: "Release a promoted .RELEASE version",
		Long: `Release the next final version.

The version is the last release tag bumped by the configured scope (or the
initial version for untagged repositories) with the .RELEASE suffix, for
example 1.2.0.RELEASE. The release is tagged, the tag is pushed when a
remote is configured, and the verify and publish hooks run around it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(cmd, release.StageFinal)
		},
	}

	candidateCmd = &cobra.Command{
		Use:   "candidate",
		Short: "Release the next -rc.N release candidate",
		Long: `Release the next release candidate.

The version is the next inferred version with an -rc.N suffix, where N is
one past the highest existing candidate of the same base version. Candidates
are tagged and pushed like final releases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(cmd, release.StageCandidate)
		},
	}

	snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "Build a mutable -SNAPSHOT version",
		Long: `Resolve a snapshot version.

The version is the next inferred version with the -SNAPSHOT suffix.
Snapshots are mutable and never tagged; hooks still run so snapshot
artifacts can be published.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(cmd, release.StageSnapshot)
		},
	}

	devSnapshotCmd = &cobra.Command{
		Use:     "dev-snapshot",
		Aliases: []string{"devSnapshot"},
		Short:   "Build a -dev.N.<hash> development version",
		Long: `Resolve a development snapshot version.

The version is the next inferred version with a -dev.N.<hash> suffix, where
N counts the commits since the last release tag and <hash> abbreviates the
HEAD commit. Development snapshots are never tagged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(cmd, release.StageDev)
		},
	}
)

func init() {
	for _, cmd := range []*cobra.Command{finalCmd, candidateCmd, snapshotCmd, devSnapshotCmd} {
		cmd.Flags().StringVar(&stageVersion, "version", "", "release this exact version instead of inferring one")
		cmd.Flags().BoolVar(&stageUseLastTag, "use-last-tag", false, "promote the newest version tag instead of computing a version")
		cmd.Flags().StringVar(&stageScope, "scope", "", "version component to bump (major|minor|patch|auto)")
		cmd.Flags().BoolVar(&stageDryRun, "dry-run", false, "resolve and print the context, then stop")
		cmd.Flags().BoolVar(&stageNoTag, "no-tag", false, "do not create or push the release tag")
		cmd.Flags().BoolVar(&stageNoPush, "no-push", false, "create the release tag but do not push it")
	}
}

// runStage drives a full release for the given stage: settings and flag
// overrides, repository state, resolution, and the release steps.
func runStage(cmd *cobra.Command, stage release.Stage) error {
	ctx := cmd.Context()

	run, err := prepareRun(ctx, chdir, cfgFile, func(s *config.Settings) {
		if cmd.Flags().Changed("version") {
			s.Version = stageVersion
		}
		if cmd.Flags().Changed("use-last-tag") {
			s.UseLastTag = stageUseLastTag
		}
		if cmd.Flags().Changed("scope") {
			s.Scope = stageScope
		}
	})
	if err != nil {
		return err
	}
	run.out = cmd.OutOrStdout()

	return run.execute(ctx, stage, []string{cmd.CalledAs()}, stageOptions{
		dryRun: stageDryRun,
		noTag:  stageNoTag,
		noPush: stageNoPush,
	})
}
