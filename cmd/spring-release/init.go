package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spring-operator/spring-release/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter release.cue",
	Long: `Create a starter release.cue in the repository root (or at the given
path) with the defaults spelled out and every optional setting documented.
An existing file is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join(chdir, config.ProjectFileName)
	if len(args) > 0 {
		path = args[0]
	}

	if err := config.WriteStarter(path); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Created %s\n", SuccessStyle.Render("✓"), abs)
	fmt.Fprintln(out)
	fmt.Fprintln(out, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(out, "  1. Adjust release.cue to your repository")
	fmt.Fprintln(out, "  2. Run 'spring-release resolve' to inspect the release context")
	fmt.Fprintln(out, "  3. Run 'spring-release final' to cut a release")

	return nil
}
