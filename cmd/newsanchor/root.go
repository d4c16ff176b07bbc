package main

import (
	"github.com/spf13/cobra"
)

// newRootCommand builds the CLI and returns the shared command context
// alongside it. Cleanup is the caller's job: cobra skips PersistentPostRun
// when a command errors, so releasing resources there would leak them on
// every failure path.
func newRootCommand() (*cobra.Command, *commandContext) {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "newsanchor",
		Short:         "AI news anchor: harvest Pakistani news and broadcast it",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newNewsCommand(ctx))
	rootCmd.AddCommand(newAudioCommand(ctx))
	rootCmd.AddCommand(newVideoCommand(ctx))
	rootCmd.AddCommand(newBroadcastCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newSetupCommand(ctx))

	return rootCmd, ctx
}
