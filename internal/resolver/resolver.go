// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Package resolver turns a conversational request into a bare anime title.
package resolver

import (
	"regexp"
	"strings"
)

// LeadInPhrases are removed from user input before a catalog search.
var LeadInPhrases = []string{
	"tell me about",
	"info on",
	"information about",
	"let's talk about",
	"give me details on",
	"what can you say about",
	"do you know about",
}

var (
	leadInPattern = buildLeadInPattern(LeadInPhrases)

	// Everything that is not a letter, digit, underscore or whitespace.
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// Options controls optional normalization steps.
type Options struct {
	// StripPunctuation drops punctuation after the lead-in phrases are removed.
	StripPunctuation bool
}

func buildLeadInPattern(phrases []string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)\s*(?:` + strings.Join(quoted, "|") + `)\s*`)
}

// Resolve strips lead-in phrases case-insensitively and trims the result.
// Whitespace between the remaining words is kept.
//
//	Resolve("Tell me about Naruto", Options{})          // "Naruto"
//	Resolve("info on Steins;Gate!", Options{true})      // "SteinsGate"
func Resolve(input string, opts Options) string {
	out := leadInPattern.ReplaceAllString(input, " ")
	if opts.StripPunctuation {
		out = punctuationPattern.ReplaceAllString(out, "")
	}
	return strings.TrimSpace(out)
}
