// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package catalog

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity is the Ratcliff/Obershelp ratio of the lowercased strings,
// compared rune by rune. The result is in [0, 1].
func Similarity(a, b string) float64 {
	m := difflib.NewMatcher(splitRunes(strings.ToLower(a)), splitRunes(strings.ToLower(b)))
	return m.Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// bestMatch returns the index and score of the most similar candidate. The
// first candidate wins a tie. Index is -1 for an empty slice.
func bestMatch(title string, candidates []Anime) (int, float64) {
	best, bestScore := -1, -1.0
	for i := range candidates {
		score := Similarity(title, candidates[i].TitleOr(missingTitle))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, bestScore
}
