// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package catalog

import (
	"context"
	"strings"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/metrics"
)

// DefaultMatchThreshold is the similarity a candidate must exceed.
const DefaultMatchThreshold = 0.70

// Outcome classifies a lookup.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNoMatch  Outcome = "no_match"
	OutcomeNotFound Outcome = "not_found"
	OutcomeFailed   Outcome = "failed"
)

// Result is the user-facing answer to a title lookup. ImageURL and
// TrailerURL are only set when Outcome is OutcomeFound.
type Result struct {
	Text       string
	ImageURL   *string
	TrailerURL *string
	Outcome    Outcome

	// Match and Score describe the accepted candidate.
	Match *Anime
	Score float64

	// Err is the search failure behind OutcomeFailed.
	Err error
}

// Service answers title lookups and autocomplete queries.
type Service struct {
	searcher  Searcher
	threshold float64
}

// NewService creates a lookup service. A threshold outside [0, 1) falls
// back to DefaultMatchThreshold.
func NewService(searcher Searcher, threshold float64) *Service {
	if threshold < 0 || threshold >= 1 {
		threshold = DefaultMatchThreshold
	}
	return &Service{searcher: searcher, threshold: threshold}
}

// Lookup searches for title and accepts the most similar candidate when its
// similarity is strictly above the threshold. Failures are reported in the
// result text, never as an error.
func (s *Service) Lookup(ctx context.Context, title string) Result {
	res := s.lookup(ctx, title)
	metrics.LookupOutcomes.WithLabelValues(string(res.Outcome)).Inc()
	return res
}

func (s *Service) lookup(ctx context.Context, title string) Result {
	candidates, err := s.searcher.Search(ctx, title)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("title", title).Msg("Catalog lookup failed")
		return Result{Text: FailureMessage(title), Outcome: OutcomeFailed, Err: err}
	}
	if len(candidates) == 0 {
		return Result{Text: NotFoundMessage(title), Outcome: OutcomeNotFound}
	}

	idx, score := bestMatch(title, candidates)
	if score <= s.threshold {
		logging.Ctx(ctx).Debug().Str("title", title).Float64("best_score", score).Msg("No candidate above threshold")
		return Result{Text: NoMatchMessage(title), Outcome: OutcomeNoMatch, Score: score}
	}

	match := &candidates[idx]
	return Result{
		Text:       FormatRecord(match),
		ImageURL:   match.ImageURL(),
		TrailerURL: match.TrailerURL(),
		Outcome:    OutcomeFound,
		Match:      match,
		Score:      score,
	}
}

// Suggest returns the distinct candidate titles for partial, compared
// case-insensitively and kept in API order. Failures yield an empty list.
func (s *Service) Suggest(ctx context.Context, partial string) []string {
	candidates, err := s.searcher.Search(ctx, partial)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("input", partial).Msg("Search assistance failed")
		return []string{}
	}

	seen := make(map[string]struct{}, len(candidates))
	suggestions := make([]string, 0, len(candidates))
	for i := range candidates {
		title := candidates[i].TitleOr(unknownTitle)
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, title)
	}
	return suggestions
}
