package main

import (
	"github.com/spf13/cobra"
)

var (
	// Version is the current version of tix (overridden by ldflags at build time)
	Version = "1.0.0"
	// Build can be set via ldflags at compile time
	Build = "dev"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	GroupID: "setup",
	Short:   "Print version information",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			outputJSON(cmd.OutOrStdout(), map[string]string{
				"version": Version,
				"build":   Build,
			})
			return
		}
		printVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
