package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adnanqk/newsanchor/internal/text"
	"github.com/adnanqk/newsanchor/internal/tts"
)

func newAudioCommand(ctx *commandContext) *cobra.Command {
	var (
		script   string
		file     string
		language string
		gender   string
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Synthesize anchor audio from text",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				script = string(data)
			}
			if strings.TrimSpace(script) == "" {
				return fmt.Errorf("provide --text or --file")
			}

			if !raw {
				script = text.PrepareForTTS(script, language, cfg.News.MaxTTSLength)
			}

			router := tts.NewRouter(cfg)
			path, err := router.Speak(cmd.Context(), script, language, gender)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&script, "text", "", "Text to synthesize")
	cmd.Flags().StringVar(&file, "file", "", "Read text from a file")
	cmd.Flags().StringVar(&language, "language", "en", "Language (en or ur)")
	cmd.Flags().StringVar(&gender, "gender", "male", "Anchor voice gender for English")
	cmd.Flags().BoolVar(&raw, "raw", false, "Send text to the engine unprocessed")

	return cmd
}
