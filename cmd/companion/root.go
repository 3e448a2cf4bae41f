// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/client"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
)

// GlobalFlags are shared by every subcommand.
type GlobalFlags struct {
	APIURL      string
	SessionPath string
	Format      string
	Theme       string
	Timeout     time.Duration
	LogLevel    string
}

// NewGlobalFlags reads defaults from COMPANION_API_URL and
// COMPANION_SESSION.
func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		APIURL:      "http://localhost:5000",
		SessionPath: os.Getenv("COMPANION_SESSION"),
		Format:      string(client.FormatText),
		Theme:       string(client.ThemeLight),
		Timeout:     30 * time.Second,
		LogLevel:    "warn",
	}
	if v := os.Getenv("COMPANION_API_URL"); v != "" {
		f.APIURL = v
	}
	return f
}

func (f *GlobalFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.APIURL, "api-url", f.APIURL, "Backend base URL")
	fs.StringVar(&f.SessionPath, "session", f.SessionPath, "Session file (default: user config dir)")
	fs.StringVar(&f.Format, "format", f.Format, "Output format: text or html")
	fs.StringVar(&f.Theme, "theme", f.Theme, "HTML theme: light or dark")
	fs.DurationVar(&f.Timeout, "timeout", f.Timeout, "Request timeout")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "Log level (trace,debug,info,warn,error)")
}

// app is the state built once flags are parsed.
type app struct {
	flags       *GlobalFlags
	client      *client.Client
	renderer    client.Renderer
	sessionPath string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	f := NewGlobalFlags()
	a := &app{flags: f}

	cmd := &cobra.Command{
		Use:   "companion",
		Short: "Chat about anime and get recommendations",
		Long: `companion talks to a MyAnimeCompanion backend. Ask about a title,
browse suggestions, keep a conversation history and get recommendations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	f.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newChatCommand(a),
		newSuggestCommand(a),
		newRecommendCommand(a),
		newHistoryCommand(a),
		newSignupCommand(a),
		newLoginCommand(a),
		newLogoutCommand(a),
		newAccountCommand(a),
		newRateCommand(a),
		newAboutCommand(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	logging.Init(logging.Config{
		Level:  a.flags.LogLevel,
		Format: "console",
		Output: cmd.ErrOrStderr(),
	})

	format, err := client.ParseFormat(a.flags.Format)
	if err != nil {
		return err
	}
	theme, err := client.ParseTheme(a.flags.Theme)
	if err != nil {
		return err
	}
	a.renderer = client.Renderer{Format: format, Theme: theme}

	a.sessionPath = a.flags.SessionPath
	if a.sessionPath == "" {
		if a.sessionPath, err = client.DefaultSessionPath(); err != nil {
			return err
		}
	}
	session, err := client.LoadSession(a.sessionPath)
	if err != nil {
		return err
	}

	a.client = client.New(a.flags.APIURL, &http.Client{Timeout: a.flags.Timeout}, session)
	logging.Debug().Str("api_url", a.flags.APIURL).Bool("logged_in", session.LoggedIn()).Msg("client ready")
	return nil
}

func (a *app) saveSession() error {
	return a.client.Session().Save(a.sessionPath)
}

// print writes a rendered body, wrapped in a themed page for HTML output.
func (a *app) print(cmd *cobra.Command, title, body string) {
	fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Page(title, body))
}

// describe turns client errors into the messages shown to the user.
func describe(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return errors.New("you need to log in first, run: companion login")
	case errors.As(err, &apiErr):
		if apiErr.RequestID != "" {
			return fmt.Errorf("%s (request %s)", apiErr.Error(), apiErr.RequestID)
		}
		return apiErr
	}
	return err
}

// readPassword returns the --password value or the first line of stdin.
func readPassword(in io.Reader, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password is required: pass --password or pipe it on stdin")
	}
	return line, nil
}
