package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adnanqk/newsanchor/internal/cache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the article cache",
	}

	store := func() (*cache.Store, error) {
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return nil, err
		}
		db, err := ctx.openDB()
		if err != nil {
			return nil, err
		}
		return cache.NewStore(db, cfg.Cache.TTLSecs), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "List cached article batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			entries, err := s.Stats()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s/%s: %d articles, age %s\n",
					e.Category, e.Language, e.Articles, e.Age.Round(time.Second))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Drop expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			n := s.ClearExpired()
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries.\n", n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop all cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			if err := s.ClearAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	})

	return cmd
}
