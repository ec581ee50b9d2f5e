// Package main implements spring-release, a CLI that resolves the release
// stage and version for a build invocation and drives the release steps
// that follow: tagging, tag pushing, and the configured verify and publish
// hooks. The heavy lifting lives in the release, git, config, and hook
// packages; this package wires them to the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug diagnostics on stderr
	verbose bool
	// cfgFile loads settings from the given file instead of release.cue
	cfgFile string
	// chdir runs as if started in the given directory
	chdir string
	// format selects the context output format
	format string

	// logger writes diagnostics to stderr; stdout carries only the
	// resolved context so scripts can consume it.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "spring-release",
	})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "spring-release",
		Short: "Resolve release stages and versions for build pipelines",
		Long: TitleStyle.Render("spring-release") + SubtitleStyle.Render(" - release stage and version resolution") + `

spring-release maps the commands a build was invoked with to exactly one
release stage (final, candidate, snapshot, dev), computes the matching
version from git tag history and configuration, and freezes both into an
immutable release context. Downstream work - tagging, tag pushing, and the
configured verify/publish hooks - consumes that context; hooks receive it
as RELEASE_* environment variables.

Settings come from release.cue at the repository root, overridden by
` + SubtitleStyle.Render("SPRING_RELEASE_*") + ` environment variables. Pushing authenticates with the
SPRING_RELEASE_TOKEN (or GITHUB_TOKEN) environment variable over HTTPS.

` + SubtitleStyle.Render("Examples:") + `
  spring-release final            Cut a promoted x.y.z.RELEASE release
  spring-release candidate        Cut the next x.y.z-rc.N candidate
  spring-release snapshot         Build a mutable x.y.z-SNAPSHOT version
  spring-release dev-snapshot     Build a x.y.z-dev.N.<hash> version
  spring-release resolve build final   Resolve a full command list, no side effects
  spring-release version --stage dev   Print only the computed version
  spring-release init             Write a starter release.cue`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
			if !validFormat(format) {
				return fmt.Errorf("unknown output format %q (expected %s)", format, formatList())
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is release.cue in the repository root)")
	rootCmd.PersistentFlags().StringVarP(&chdir, "chdir", "C", ".", "run as if started in this directory")
	rootCmd.PersistentFlags().StringVar(&format, "format", formatText, "context output format (text|json|yaml|toml|env)")

	rootCmd.AddCommand(finalCmd)
	rootCmd.AddCommand(candidateCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(devSnapshotCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command through fang and exits non-zero on error.
// Error messages reach the user verbatim on stderr.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
