// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package catalog

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

type fakeSearcher struct {
	results []Anime
	err     error
}

func (f *fakeSearcher) Search(context.Context, string) ([]Anime, error) {
	return f.results, f.err
}

func strPtr(s string) *string { return &s }

func anime(id int, title string) Anime {
	return Anime{MalID: id, Title: strPtr(title)}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want float64
	}{
		{"Naruto", "Naruto", 1},
		{"naruto", "NARUTO", 1},
		{"Naruto", "Naruto: Shippuuden", 0.5},
		{"abcdefghij", "abcdefgxyz", 0.7},
		{"abc", "xyz", 0},
		{"", "", 1},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLookupExactMatch(t *testing.T) {
	t.Parallel()

	naruto := anime(20, "Naruto")
	naruto.Synopsis = strPtr("A ninja story.")
	naruto.Episodes = new(int)
	*naruto.Episodes = 220
	score := 8.0
	naruto.Score = &score
	naruto.Status = strPtr("Finished Airing")
	naruto.URL = strPtr("https://myanimelist.net/anime/20/Naruto")
	naruto.Images.JPG.ImageURL = strPtr("https://img.example/naruto.jpg")
	naruto.Trailer.URL = strPtr("https://youtube.example/naruto")

	svc := NewService(&fakeSearcher{results: []Anime{anime(1735, "Naruto: Shippuuden"), naruto}}, 0.7)
	res := svc.Lookup(context.Background(), "Naruto")

	if res.Outcome != OutcomeFound {
		t.Fatalf("expected found, got %s (%s)", res.Outcome, res.Text)
	}
	want := "**Title:** Naruto\n" +
		"**Synopsis:** A ninja story.\n" +
		"**Episodes:** 220\n" +
		"**Score:** 8.0\n" +
		"**Status:** Finished Airing\n" +
		"**More info:** [MyAnimeList](https://myanimelist.net/anime/20/Naruto)"
	if res.Text != want {
		t.Errorf("unexpected text:\n%s\nwant:\n%s", res.Text, want)
	}
	if res.ImageURL == nil || *res.ImageURL != "https://img.example/naruto.jpg" {
		t.Errorf("expected image url, got %v", res.ImageURL)
	}
	if res.TrailerURL == nil || *res.TrailerURL != "https://youtube.example/naruto" {
		t.Errorf("expected trailer url, got %v", res.TrailerURL)
	}
	if res.Match.MalID != 20 {
		t.Errorf("expected mal_id 20, got %d", res.Match.MalID)
	}
}

func TestLookupPlaceholders(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeSearcher{results: []Anime{anime(5, "Monster")}}, 0.7)
	res := svc.Lookup(context.Background(), "monster")

	want := "**Title:** Monster\n" +
		"**Synopsis:** Synopsis not available.\n" +
		"**Episodes:** N/A\n" +
		"**Score:** N/A\n" +
		"**Status:** N/A\n" +
		"**More info:** [MyAnimeList](#)"
	if res.Text != want {
		t.Errorf("unexpected text:\n%s\nwant:\n%s", res.Text, want)
	}
	if res.ImageURL != nil || res.TrailerURL != nil {
		t.Error("expected no media urls for a record without media")
	}
}

func TestLookupOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searcher *fakeSearcher
		title    string
		want     Outcome
		wantText string
	}{
		{
			name:     "empty results",
			searcher: &fakeSearcher{},
			title:    "Nonexistent",
			want:     OutcomeNotFound,
			wantText: "I couldn't find any information on Nonexistent.",
		},
		{
			name:     "below threshold",
			searcher: &fakeSearcher{results: []Anime{anime(1735, "Naruto: Shippuuden"), anime(34566, "Boruto: Naruto Next Generations")}},
			title:    "Naruto",
			want:     OutcomeNoMatch,
			wantText: "No exact match found for Naruto.",
		},
		{
			name:     "exactly at threshold is rejected",
			searcher: &fakeSearcher{results: []Anime{anime(1, "abcdefgxyz")}},
			title:    "abcdefghij",
			want:     OutcomeNoMatch,
			wantText: "No exact match found for abcdefghij.",
		},
		{
			name:     "missing title never matches",
			searcher: &fakeSearcher{results: []Anime{{MalID: 9}}},
			title:    "Naruto",
			want:     OutcomeNoMatch,
			wantText: "No exact match found for Naruto.",
		},
		{
			name:     "search failure",
			searcher: &fakeSearcher{err: ErrTransport},
			title:    "Naruto",
			want:     OutcomeFailed,
			wantText: "An error occurred while fetching the anime data for Naruto.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := NewService(tt.searcher, 0.7).Lookup(context.Background(), tt.title)
			if res.Outcome != tt.want {
				t.Errorf("expected outcome %s, got %s", tt.want, res.Outcome)
			}
			if res.Text != tt.wantText {
				t.Errorf("expected %q, got %q", tt.wantText, res.Text)
			}
			if res.ImageURL != nil || res.TrailerURL != nil {
				t.Error("expected media urls to be absent")
			}
			if tt.want == OutcomeFailed && !errors.Is(res.Err, ErrTransport) {
				t.Errorf("expected underlying error to be kept, got %v", res.Err)
			}
		})
	}
}

func TestLookupTieKeepsFirstCandidate(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeSearcher{results: []Anime{anime(1, "Bleach"), anime(2, "Bleach")}}, 0.7)
	res := svc.Lookup(context.Background(), "Bleach")
	if res.Match == nil || res.Match.MalID != 1 {
		t.Errorf("expected first candidate to win the tie, got %+v", res.Match)
	}
}

func TestNewServiceDefaultsThreshold(t *testing.T) {
	t.Parallel()

	if svc := NewService(&fakeSearcher{}, 1.5); svc.threshold != DefaultMatchThreshold {
		t.Errorf("expected default threshold, got %v", svc.threshold)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeSearcher{results: []Anime{
		anime(1, "One Piece"),
		anime(2, "ONE PIECE"),
		{MalID: 3},
		anime(4, "One Piece Film: Red"),
		{MalID: 5},
		anime(6, "one piece"),
	}}, 0.7)

	got := svc.Suggest(context.Background(), "one pi")
	want := []string{"One Piece", "Unknown Title", "One Piece Film: Red"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggestFailureIsEmpty(t *testing.T) {
	t.Parallel()

	got := NewService(&fakeSearcher{err: errors.New("down")}, 0.7).Suggest(context.Background(), "x")
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
