package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adnanqk/newsanchor/internal/video"
)

func newSetupCommand(ctx *commandContext) *cobra.Command {
	var downloadCheckpoint bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create directories and check video requirements",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if _, err := ctx.openDB(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "data directory: %s\n", cfg.DataDir)

			runner := video.NewRunner(cfg)
			if downloadCheckpoint {
				if err := runner.EnsureCheckpoint(cmd.Context()); err != nil {
					return err
				}
			}

			missing := runner.ValidateRequirements()
			if len(missing) == 0 {
				fmt.Fprintln(out, "video requirements: ok")
				return nil
			}
			fmt.Fprintln(out, "video requirements missing:")
			for _, m := range missing {
				fmt.Fprintf(out, "  - %s\n", m)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&downloadCheckpoint, "download-checkpoint", false, "Download the Wav2Lip checkpoint if missing")

	return cmd
}
