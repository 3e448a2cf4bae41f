// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/client"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
)

type credentialFlags struct {
	email    string
	password string
}

func bindCredentialFlags(cmd *cobra.Command, f *credentialFlags) {
	cmd.Flags().StringVar(&f.email, "email", "", "Account email")
	cmd.Flags().StringVar(&f.password, "password", "", "Account password (read from stdin when omitted)")
	cmd.MarkFlagRequired("email") //nolint:errcheck
}

func newSignupCommand(a *app) *cobra.Command {
	f := &credentialFlags{}
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin(), f.password)
			if err != nil {
				return err
			}
			if _, err := a.client.Signup(cmd.Context(), f.email, password); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s\n", f.email)
			return nil
		},
	}
	bindCredentialFlags(cmd, f)
	return cmd
}

func newLoginCommand(a *app) *cobra.Command {
	f := &credentialFlags{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin(), f.password)
			if err != nil {
				return err
			}
			if _, err := a.client.Login(cmd.Context(), f.email, password); err != nil {
				return describe(err)
			}
			if err := a.saveSession(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", f.email)
			return nil
		},
	}
	bindCredentialFlags(cmd, f)
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.client.Logout(cmd.Context())
			if errors.Is(err, client.ErrNotLoggedIn) {
				return errors.New("you need to log in to log out")
			}
			if saveErr := a.saveSession(); saveErr != nil {
				return saveErr
			}
			if err != nil {
				logging.Warn().Err(err).Msg("backend logout failed, session cleared locally")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "You have been logged out successfully.")
			return nil
		},
	}
}

func newAccountCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your account",
	}

	var confirm bool
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and its history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("refusing to delete without --yes")
			}
			if err := a.client.DeleteAccount(cmd.Context()); err != nil {
				return fmt.Errorf("failed to delete the account: %w", describe(err))
			}
			if err := a.saveSession(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted successfully.")
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&confirm, "yes", false, "Confirm the deletion")

	cmd.AddCommand(deleteCmd)
	return cmd
}
