// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear your conversation history",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show your conversation history",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				turns, err := a.client.History(cmd.Context())
				if err != nil {
					return describe(err)
				}
				a.print(cmd, "Conversation History", a.renderer.History(turns))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete your conversation history",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.client.ClearHistory(cmd.Context()); err != nil {
					return describe(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Conversation history deleted for the current user.")
				return nil
			},
		},
	)
	return cmd
}

func newAboutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Describe this program",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.print(cmd, "About", a.renderer.About())
			return nil
		},
	}
}
