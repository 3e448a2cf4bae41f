// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Command companion is the terminal front end of MyAnimeCompanion.
package main

import (
	"os"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		logging.Debug().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
