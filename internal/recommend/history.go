// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/catalog"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/metrics"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
)

// DefaultHistoryConcurrency bounds parallel catalog searches.
const DefaultHistoryConcurrency = 3

const kindHistory = "history"

// History recommends by searching the catalog for everything a user asked.
type History struct {
	conversations store.ConversationStore
	searcher      catalog.Searcher
	concurrency   int
}

// NewHistory creates a history recommender.
func NewHistory(conversations store.ConversationStore, searcher catalog.Searcher, concurrency int) *History {
	if concurrency < 1 {
		concurrency = DefaultHistoryConcurrency
	}
	return &History{conversations: conversations, searcher: searcher, concurrency: concurrency}
}

// Recommend returns every raw catalog record found for the user's history
// inputs, grouped by turn in history order. Any failed search fails the
// whole request.
func (h *History) Recommend(ctx context.Context, userID string) (records []json.RawMessage, err error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendation(kindHistory, time.Since(start), err) }()

	turns, err := h.conversations.History(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &UserError{UserID: userID, Err: ErrNoHistory}
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if len(turns) == 0 {
		return nil, &UserError{UserID: userID, Err: ErrNoHistory}
	}

	results := make([][]json.RawMessage, len(turns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)
	for i, turn := range turns {
		g.Go(func() error {
			found, err := h.searcher.Search(gctx, turn.UserInput)
			if err != nil {
				return fmt.Errorf("search %q: %w", turn.UserInput, err)
			}
			raw := make([]json.RawMessage, 0, len(found))
			for j := range found {
				raw = append(raw, found[j].Raw)
			}
			results[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records = make([]json.RawMessage, 0, len(turns))
	for _, r := range results {
		records = append(records, r...)
	}
	logging.Ctx(ctx).Debug().
		Str("user_id", userID).
		Int("turns", len(turns)).
		Int("records", len(records)).
		Msg("History recommendation computed")
	return records, nil
}
