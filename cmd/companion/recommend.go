// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRecommendCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Get anime recommendations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "history",
			Short: "Recommend titles related to what you asked about",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				recs, err := a.client.RecommendFromHistory(cmd.Context())
				if err != nil {
					return describe(err)
				}
				a.print(cmd, "Recommendations", a.renderer.FromHistory(recs))
				return nil
			},
		},
		&cobra.Command{
			Use:   "similar",
			Short: "Recommend titles rated highly by users like you",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				recs, err := a.client.RecommendSimilar(cmd.Context())
				if err != nil {
					return describe(err)
				}
				a.print(cmd, "Recommendations", a.renderer.Similar(recs))
				return nil
			},
		},
	)
	return cmd
}

func newRateCommand(a *app) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:     "rate <anime_id> <rating>",
		Short:   "Rate an anime from 0 to 10",
		Example: `  companion rate 1 9 --title "Cowboy Bebop"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			animeID, err := strconv.Atoi(args[0])
			if err != nil || animeID <= 0 {
				return fmt.Errorf("anime_id must be a positive integer, got %q", args[0])
			}
			rating, err := strconv.ParseFloat(args[1], 64)
			if err != nil || rating < 0 || rating > 10 {
				return fmt.Errorf("rating must be a number from 0 to 10, got %q", args[1])
			}
			if err := a.client.Rate(cmd.Context(), animeID, rating, title); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rated anime %d: %s\n", animeID, args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Anime title, stored for recommendation output")
	return cmd
}
