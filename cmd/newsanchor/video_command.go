package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adnanqk/newsanchor/internal/video"
)

func newVideoCommand(ctx *commandContext) *cobra.Command {
	var (
		audioPath string
		language  string
	)

	cmd := &cobra.Command{
		Use:   "video",
		Short: "Lip-sync the anchor avatar to an audio file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if audioPath == "" {
				return fmt.Errorf("provide --audio")
			}

			runner := video.NewRunner(cfg)
			if missing := runner.ValidateRequirements(); len(missing) > 0 {
				for _, m := range missing {
					fmt.Fprintf(cmd.ErrOrStderr(), "missing: %s\n", m)
				}
				return fmt.Errorf("video requirements not met; run `newsanchor setup`")
			}

			path, err := runner.Generate(cmd.Context(), audioPath, language)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&audioPath, "audio", "", "MP3 file to lip-sync")
	cmd.Flags().StringVar(&language, "language", "en", "Language (selects the avatar)")

	return cmd
}
