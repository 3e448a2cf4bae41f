// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCommand(a *app) *cobra.Command {
	var (
		suggestion bool
		pick       int
	)

	cmd := &cobra.Command{
		Use:   "chat <question>",
		Short: "Ask about an anime title",
		Example: `  companion chat "tell me about Cowboy Bebop"
  companion chat --pick 2 naruto`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			fromSuggestion := suggestion

			if pick > 0 {
				titles, err := a.client.Suggest(cmd.Context(), input)
				if err != nil {
					return describe(err)
				}
				if pick > len(titles) {
					return fmt.Errorf("only %d suggestions for %q", len(titles), input)
				}
				input = titles[pick-1]
				fromSuggestion = true
			}

			reply, err := a.client.Chat(cmd.Context(), input, fromSuggestion)
			if err != nil {
				return describe(err)
			}
			a.print(cmd, "Chat", a.renderer.Chat(reply))
			return nil
		},
	}

	cmd.Flags().BoolVar(&suggestion, "suggestion", false, "Send the title exactly as given")
	cmd.Flags().IntVar(&pick, "pick", 0, "Chat about the Nth suggestion for the input")
	return cmd
}

func newSuggestCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <partial title>",
		Short: "List matching titles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			titles, err := a.client.Suggest(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return describe(err)
			}
			a.print(cmd, "Suggestions", a.renderer.Suggestions(titles))
			return nil
		},
	}
}
