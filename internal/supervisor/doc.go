// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Package supervisor runs long-lived services under a suture supervisor tree.
//
// The tree has two layers so a crash in one does not stop the other:
//
//	myanimecompanion
//	├── data-layer   store monitor
//	└── api-layer    HTTP server
//
// Supervisor events are logged through sutureslog on the slog adapter of
// the logging package.
package supervisor
