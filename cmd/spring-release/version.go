package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spring-operator/spring-release/release"
)

var versionStage string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version the given stage would release",
	Long: `Version prints only the computed version string, for embedding in other
tooling:

  VERSION=$(spring-release version --stage final)

The default stage is dev, so a bare 'spring-release version' prints the
current development version.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		stage, err := release.ParseStage(versionStage)
		if err != nil {
			return err
		}

		run, err := prepareRun(ctx, chdir, cfgFile, nil)
		if err != nil {
			return err
		}
		run.out = cmd.OutOrStdout()

		rc, err := run.resolver.ResolveStage(ctx, stage, nil)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(run.out, rc.Version)
		return err
	},
}

func init() {
	versionCmd.Flags().StringVar(&versionStage, "stage", "dev", "stage to compute the version for (final|candidate|snapshot|dev)")
}
