// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Package recommend produces anime recommendations for a user.
//
// # Collaborative filtering
//
// Collaborative pivots every stored rating into a dense user by item matrix
// (users and items in ascending order, missing cells 0, duplicate ratings
// averaged) and runs an exact cosine nearest-neighbor query for the target
// row. The target counts toward k but is dropped from the neighbor set.
// The neighbors' ratings are averaged per anime and the best averages are
// labeled with titles from the anime title table:
//
//	rec := recommend.NewCollaborative(st, 6, 5)
//	items, err := rec.Recommend(ctx, "42")
//
// # History
//
// History re-runs a catalog search for every input in a user's conversation
// history and returns the raw catalog records in history order. Searches run
// concurrently with a bounded worker count.
package recommend
