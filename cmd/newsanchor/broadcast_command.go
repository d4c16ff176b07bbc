package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adnanqk/newsanchor/internal/config"
)

func newBroadcastCommand(ctx *commandContext) *cobra.Command {
	var (
		category  string
		language  string
		gender    string
		withVideo bool
		count     int
		summary   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "broadcast",
		Short: "Produce anchor broadcasts for a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !config.ValidCategory(category) {
				return fmt.Errorf("unknown category %q (valid: %v)", category, config.ValidCategories)
			}

			pipeline, err := ctx.newsPipeline()
			if err != nil {
				return err
			}
			caster, err := ctx.broadcaster()
			if err != nil {
				return err
			}

			articles, err := pipeline.Articles(cmd.Context(), category, language, refresh)
			if err != nil {
				return err
			}
			if len(articles) == 0 {
				return fmt.Errorf("no articles available for %s/%s", category, language)
			}
			if count > len(articles) || count <= 0 {
				count = len(articles)
			}

			out := cmd.OutOrStdout()

			if summary {
				headlines := make([]string, 0, count)
				for _, a := range articles[:count] {
					headlines = append(headlines, a.Headline)
				}
				path, err := caster.SummaryAudio(cmd.Context(), category, language, gender, headlines)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "summary audio: %s\n", path)
				return nil
			}

			for i := range articles[:count] {
				a := &articles[i]
				result, err := caster.Run(cmd.Context(), a, gender, withVideo)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "broadcast failed for %q: %v\n", a.Headline, err)
					continue
				}
				fmt.Fprintf(out, "%s\n  audio: %s\n", result.Headline, result.AudioPath)
				if result.VideoPath != "" {
					fmt.Fprintf(out, "  video: %s\n", result.VideoPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "general", "News category")
	cmd.Flags().StringVar(&language, "language", "en", "Language (en or ur)")
	cmd.Flags().StringVar(&gender, "gender", "male", "Anchor voice gender for English")
	cmd.Flags().BoolVar(&withVideo, "video", false, "Generate lip-synced video")
	cmd.Flags().IntVar(&count, "count", 1, "How many articles to broadcast (0 = all)")
	cmd.Flags().BoolVar(&summary, "summary", false, "One roundup audio instead of per-article broadcasts")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the article cache")

	return cmd
}
