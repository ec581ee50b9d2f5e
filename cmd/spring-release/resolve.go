package main

import (
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [command...]",
	Short: "Resolve the release context for a build command list",
	Long: `Resolve feeds a build's full command list through stage resolution and
prints the resulting release context. Nothing is tagged, pushed, or run:
this is the pure decision procedure.

The command list may contain at most one of the stage commands (final,
candidate, snapshot, devSnapshot); naming more than one is a configuration
error. A list without any stage command resolves to the dev stage.

Examples:
  spring-release resolve build final
  spring-release resolve clean build test --format env
  spring-release resolve`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		run, err := prepareRun(ctx, chdir, cfgFile, nil)
		if err != nil {
			return err
		}
		run.out = cmd.OutOrStdout()

		rc, err := run.resolver.Resolve(ctx, args)
		if err != nil {
			return err
		}

		return renderContext(run.out, rc, run.format)
	},
}
