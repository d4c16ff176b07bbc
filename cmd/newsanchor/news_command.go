package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adnanqk/newsanchor/internal/config"
)

func newNewsCommand(ctx *commandContext) *cobra.Command {
	var (
		category string
		language string
		refresh  bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Harvest and process articles for a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !config.ValidCategory(category) {
				return fmt.Errorf("unknown category %q (valid: %v)", category, config.ValidCategories)
			}
			if language != "en" && language != "ur" {
				return fmt.Errorf("unknown language %q (valid: en, ur)", language)
			}

			pipeline, err := ctx.newsPipeline()
			if err != nil {
				return err
			}

			articles, err := pipeline.Articles(cmd.Context(), category, language, refresh)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(articles)
			}

			if len(articles) == 0 {
				fmt.Fprintln(out, "No articles found.")
				return nil
			}
			for i, a := range articles {
				fmt.Fprintf(out, "%d. %s\n", i+1, a.Headline)
				fmt.Fprintf(out, "   %s | %s\n", a.Source, a.Published.Format("Jan 02, 15:04"))
				fmt.Fprintf(out, "%s\n\n", indent(a.Description, "   "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "general", "News category")
	cmd.Flags().StringVar(&language, "language", "en", "Language (en or ur)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the article cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")

	return cmd
}
