// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/metrics"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
)

const (
	// DefaultNeighbors is k for the neighbor query, the target included.
	DefaultNeighbors = 6

	// DefaultTopN is the number of recommendations returned.
	DefaultTopN = 5

	kindCollaborative = "collaborative"
)

// Recommendation is one ranked anime.
type Recommendation struct {
	AnimeID int    `json:"anime_id"`
	Title   string `json:"title"`
}

// Collaborative recommends what the nearest users rated highest.
type Collaborative struct {
	ratings   store.RatingStore
	neighbors int
	topN      int
}

// NewCollaborative creates a collaborative recommender. Non-positive
// arguments fall back to the defaults.
func NewCollaborative(ratings store.RatingStore, neighbors, topN int) *Collaborative {
	if neighbors < 2 {
		neighbors = DefaultNeighbors
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Collaborative{ratings: ratings, neighbors: neighbors, topN: topN}
}

// Recommend returns up to topN titled anime for userID, best first.
func (c *Collaborative) Recommend(ctx context.Context, userID string) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendation(kindCollaborative, time.Since(start), err) }()

	ratings, err := c.ratings.Ratings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}

	m := Pivot(ratings)
	row := m.Row(userID)
	if row < 0 {
		return nil, &UserError{UserID: userID, Err: ErrUserNotFound}
	}
	neighbors := m.Neighbors(row, c.neighbors)

	ranked := rankItems(ratings, neighbors, c.topN)
	if len(ranked) == 0 {
		return []Recommendation{}, nil
	}

	titles, err := c.ratings.AnimeTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load anime titles: %w", err)
	}
	recs = joinTitles(ranked, titles)

	logging.Ctx(ctx).Debug().
		Str("user_id", userID).
		Int("users", len(m.Users)).
		Int("items", len(m.Items)).
		Strs("neighbors", neighbors).
		Int("results", len(recs)).
		Msg("Collaborative recommendation computed")
	return recs, nil
}

type itemScore struct {
	animeID int
	average float64
}

// rankItems averages the neighbors' raw ratings per anime and keeps the
// best topN, ties broken by ascending anime id.
func rankItems(ratings []store.Rating, neighbors []string, topN int) []itemScore {
	members := make(map[string]struct{}, len(neighbors))
	for _, u := range neighbors {
		members[u] = struct{}{}
	}

	type acc struct {
		sum   float64
		count int
	}
	sums := make(map[int]*acc)
	for _, r := range ratings {
		if _, ok := members[r.UserID]; !ok {
			continue
		}
		a := sums[r.AnimeID]
		if a == nil {
			a = &acc{}
			sums[r.AnimeID] = a
		}
		a.sum += r.Rating
		a.count++
	}

	scores := make([]itemScore, 0, len(sums))
	for id, a := range sums {
		scores = append(scores, itemScore{animeID: id, average: a.sum / float64(a.count)})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].average != scores[j].average {
			return scores[i].average > scores[j].average
		}
		return scores[i].animeID < scores[j].animeID
	})
	if len(scores) > topN {
		scores = scores[:topN]
	}
	return scores
}

// joinTitles labels ranked items, dropping those without a title. The first
// title stored for an id wins.
func joinTitles(ranked []itemScore, titles []store.AnimeTitle) []Recommendation {
	byID := make(map[int]string, len(titles))
	for _, t := range titles {
		if _, ok := byID[t.AnimeID]; !ok {
			byID[t.AnimeID] = t.Title
		}
	}
	recs := make([]Recommendation, 0, len(ranked))
	for _, s := range ranked {
		title, ok := byID[s.animeID]
		if !ok {
			continue
		}
		recs = append(recs, Recommendation{AnimeID: s.animeID, Title: title})
	}
	return recs
}
