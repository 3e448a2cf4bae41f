// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	missingTitle    = "Title not available"
	missingSynopsis = "Synopsis not available."
	missingValue    = "N/A"
	missingURL      = "#"
	unknownTitle    = "Unknown Title"
)

// NotFoundMessage is returned when the catalog has no results.
func NotFoundMessage(title string) string {
	return fmt.Sprintf("I couldn't find any information on %s.", title)
}

// NoMatchMessage is returned when no candidate is similar enough.
func NoMatchMessage(title string) string {
	return fmt.Sprintf("No exact match found for %s.", title)
}

// FailureMessage is returned when the catalog could not be queried.
func FailureMessage(title string) string {
	return fmt.Sprintf("An error occurred while fetching the anime data for %s.", title)
}

// FormatRecord renders a record as labeled lines, one field per line.
func FormatRecord(a *Anime) string {
	episodes := missingValue
	if a.Episodes != nil {
		episodes = strconv.Itoa(*a.Episodes)
	}
	score := missingValue
	if a.Score != nil {
		score = formatScore(*a.Score)
	}

	lines := []string{
		"**Title:** " + a.TitleOr(missingTitle),
		"**Synopsis:** " + stringOr(a.Synopsis, missingSynopsis),
		"**Episodes:** " + episodes,
		"**Score:** " + score,
		"**Status:** " + stringOr(a.Status, missingValue),
		"**More info:** [MyAnimeList](" + stringOr(a.URL, missingURL) + ")",
	}
	return strings.Join(lines, "\n")
}

// formatScore keeps one decimal for whole numbers, so 9 reads "9.0".
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
