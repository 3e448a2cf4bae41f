// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/catalog"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
)

type fakeRatingStore struct {
	ratings   []store.Rating
	titles    []store.AnimeTitle
	ratingErr error
}

func (f *fakeRatingStore) Ratings(context.Context) ([]store.Rating, error) {
	return f.ratings, f.ratingErr
}

func (f *fakeRatingStore) UpsertRating(context.Context, store.Rating) error { return nil }

func (f *fakeRatingStore) AnimeTitles(context.Context) ([]store.AnimeTitle, error) {
	return f.titles, nil
}

func (f *fakeRatingStore) UpsertAnimeTitle(context.Context, store.AnimeTitle) error { return nil }

func rating(user string, anime int, value float64) store.Rating {
	return store.Rating{UserID: user, AnimeID: anime, Rating: value}
}

func sampleRatings() []store.Rating {
	return []store.Rating{
		rating("1", 10, 10), rating("1", 20, 8),
		rating("2", 10, 9), rating("2", 20, 7), rating("2", 30, 6),
		rating("3", 30, 10),
		rating("4", 10, 5), rating("4", 20, 5), rating("4", 40, 9),
	}
}

func TestPivot(t *testing.T) {
	t.Parallel()

	m := Pivot([]store.Rating{
		rating("10", 5, 4),
		rating("2", 3, 8),
		rating("2", 3, 6),
		rating("abc", 9, 1),
	})

	if want := []string{"2", "10", "abc"}; !reflect.DeepEqual(m.Users, want) {
		t.Errorf("Users = %v, want %v", m.Users, want)
	}
	if want := []int{3, 5, 9}; !reflect.DeepEqual(m.Items, want) {
		t.Errorf("Items = %v, want %v", m.Items, want)
	}
	if got := m.Rows[m.Row("2")]; !reflect.DeepEqual(got, []float64{7, 0, 0}) {
		t.Errorf("row for user 2 = %v, want duplicate ratings averaged", got)
	}
	if m.Row("missing") != -1 {
		t.Error("expected -1 for an unknown user")
	}
}

func TestNeighbors(t *testing.T) {
	t.Parallel()

	m := Pivot(sampleRatings())

	tests := []struct {
		name string
		user string
		k    int
		want []string
	}{
		{"closest first", "1", 3, []string{"2", "4"}},
		{"k larger than population", "1", 10, []string{"2", "4", "3"}},
		{"k of one leaves no neighbors", "1", 1, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := m.Neighbors(m.Row(tt.user), tt.k)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Neighbors(%s, %d) = %v, want %v", tt.user, tt.k, got, tt.want)
			}
		})
	}
}

func TestNeighborsZeroRowKeepsMatrixOrder(t *testing.T) {
	t.Parallel()

	m := Pivot([]store.Rating{
		rating("1", 10, 0),
		rating("2", 20, 3),
		rating("3", 10, 4),
		rating("4", 20, 1),
	})
	got := m.Neighbors(m.Row("1"), 3)
	if want := []string{"2", "3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors = %v, want %v", got, want)
	}
}

func TestCollaborativeRecommend(t *testing.T) {
	t.Parallel()

	st := &fakeRatingStore{
		ratings: sampleRatings(),
		titles: []store.AnimeTitle{
			{AnimeID: 10, Title: "Cowboy Bebop"},
			{AnimeID: 20, Title: "Trigun"},
			{AnimeID: 20, Title: "Trigun (duplicate)"},
			{AnimeID: 30, Title: "Monster"},
		},
	}

	rec := NewCollaborative(st, 3, 3)
	got, err := rec.Recommend(context.Background(), "1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// 40 ranks first but has no title.
	want := []Recommendation{
		{AnimeID: 10, Title: "Cowboy Bebop"},
		{AnimeID: 20, Title: "Trigun"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend = %+v, want %+v", got, want)
	}
}

func TestCollaborativeTiesByAnimeID(t *testing.T) {
	t.Parallel()

	ranked := rankItems([]store.Rating{
		rating("2", 30, 6),
		rating("2", 20, 6),
		rating("3", 40, 9),
		rating("9", 50, 10),
	}, []string{"2", "3"}, 5)

	var ids []int
	for _, s := range ranked {
		ids = append(ids, s.animeID)
	}
	if want := []int{40, 20, 30}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ranked ids = %v, want %v", ids, want)
	}
}

func TestCollaborativeUnknownUser(t *testing.T) {
	t.Parallel()

	rec := NewCollaborative(&fakeRatingStore{ratings: sampleRatings()}, 0, 0)
	_, err := rec.Recommend(context.Background(), "99")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if want := "User 99 not found in interactions data."; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestCollaborativeStoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	rec := NewCollaborative(&fakeRatingStore{ratingErr: boom}, 6, 5)
	if _, err := rec.Recommend(context.Background(), "1"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

type fakeConversations struct {
	turns map[string][]store.Turn
}

func (f *fakeConversations) AppendTurn(context.Context, string, store.Turn) error { return nil }

func (f *fakeConversations) History(_ context.Context, userID string) ([]store.Turn, error) {
	turns, ok := f.turns[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return turns, nil
}

func (f *fakeConversations) ClearHistory(context.Context, string) error { return nil }

type fakeSearcher struct {
	fail   map[string]bool
	delay  map[string]time.Duration
	active atomic.Int32
	peak   atomic.Int32
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]catalog.Anime, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	select {
	case <-time.After(f.delay[query]):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.fail[query] {
		return nil, fmt.Errorf("%w: connection refused", catalog.ErrTransport)
	}
	return []catalog.Anime{
		{Raw: json.RawMessage(fmt.Sprintf(`{"q":%q,"n":1}`, query))},
		{Raw: json.RawMessage(fmt.Sprintf(`{"q":%q,"n":2}`, query))},
	}, nil
}

func turnsFor(inputs ...string) []store.Turn {
	turns := make([]store.Turn, len(inputs))
	for i, in := range inputs {
		turns[i] = store.Turn{UserInput: in}
	}
	return turns
}

func TestHistoryRecommendKeepsOrder(t *testing.T) {
	t.Parallel()

	conv := &fakeConversations{turns: map[string][]store.Turn{
		"u1": turnsFor("a", "b", "c", "d"),
	}}
	searcher := &fakeSearcher{delay: map[string]time.Duration{
		"a": 30 * time.Millisecond,
		"b": 10 * time.Millisecond,
	}}

	got, err := NewHistory(conv, searcher, 2).Recommend(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("expected 8 records, got %d", len(got))
	}
	for i, in := range []string{"a", "b", "c", "d"} {
		want := fmt.Sprintf(`{"q":%q,"n":1}`, in)
		if string(got[2*i]) != want {
			t.Errorf("record %d = %s, want %s", 2*i, got[2*i], want)
		}
	}
	if peak := searcher.peak.Load(); peak > 2 {
		t.Errorf("peak concurrency = %d, want at most 2", peak)
	}
}

func TestHistoryRecommendNoHistory(t *testing.T) {
	t.Parallel()

	conv := &fakeConversations{turns: map[string][]store.Turn{"empty": {}}}
	h := NewHistory(conv, &fakeSearcher{}, 0)

	for _, user := range []string{"empty", "ghost"} {
		_, err := h.Recommend(context.Background(), user)
		if !errors.Is(err, ErrNoHistory) {
			t.Errorf("user %s: expected ErrNoHistory, got %v", user, err)
			continue
		}
		if want := fmt.Sprintf("No history found for user %s.", user); err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
	}
}

func TestHistoryRecommendSearchFailure(t *testing.T) {
	t.Parallel()

	conv := &fakeConversations{turns: map[string][]store.Turn{"u1": turnsFor("ok", "bad")}}
	searcher := &fakeSearcher{fail: map[string]bool{"bad": true}}

	_, err := NewHistory(conv, searcher, 3).Recommend(context.Background(), "u1")
	if !errors.Is(err, catalog.ErrTransport) {
		t.Errorf("expected catalog.ErrTransport, got %v", err)
	}
}
