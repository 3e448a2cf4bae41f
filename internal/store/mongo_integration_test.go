// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

//go:build integration

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/testinfra"
)

func TestMongoStoreAgainstContainer(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	mongo, err := testinfra.NewMongoContainer(ctx)
	if err != nil {
		t.Fatalf("NewMongoContainer: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, mongo)

	st, err := OpenMongoStore(ctx, mongo.URI, "animechatbot_test", 10*time.Second)
	if err != nil {
		t.Fatalf("OpenMongoStore: %v", err)
	}
	defer st.Close()

	if err := st.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	id, err := st.CreateUser(ctx, "fan@example.com", []byte("hash"))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	u, err := st.UserByEmail(ctx, "fan@example.com")
	if err != nil || u.ID != id {
		t.Fatalf("UserByEmail = %+v, %v", u, err)
	}

	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	for _, input := range []string{"Naruto", "Bleach"} {
		if err := st.AppendTurn(ctx, id, NewTurn(input, "reply", nil, nil, at)); err != nil {
			t.Fatalf("AppendTurn: %v", err)
		}
	}
	history, err := st.History(ctx, id)
	if err != nil || len(history) != 2 || history[0].UserInput != "Naruto" || history[1].UserInput != "Bleach" {
		t.Fatalf("History = %+v, %v", history, err)
	}
	if history[0].Timestamp != "2026-03-04 05:06:07" {
		t.Errorf("Timestamp = %q", history[0].Timestamp)
	}

	if err := st.ClearHistory(ctx, id); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	if history, _ := st.History(ctx, id); len(history) != 0 {
		t.Errorf("history after clear = %+v", history)
	}

	if err := st.UpsertRating(ctx, Rating{UserID: "1", AnimeID: 20, Rating: 7}); err != nil {
		t.Fatalf("UpsertRating: %v", err)
	}
	if err := st.UpsertRating(ctx, Rating{UserID: "1", AnimeID: 20, Rating: 9}); err != nil {
		t.Fatalf("UpsertRating: %v", err)
	}
	ratings, err := st.Ratings(ctx)
	if err != nil || len(ratings) != 1 || ratings[0].Rating != 9 {
		t.Errorf("Ratings = %+v, %v", ratings, err)
	}

	// Rows imported from the original dataset carry numeric user ids.
	if _, err := st.ratings.InsertOne(ctx, bson.M{"user_id": int32(2), "anime_id": 30, "rating": 4.0}); err != nil {
		t.Fatalf("insert legacy rating: %v", err)
	}
	if err := st.UpsertRating(ctx, Rating{UserID: "2", AnimeID: 30, Rating: 8}); err != nil {
		t.Fatalf("UpsertRating legacy: %v", err)
	}
	if err := st.UpsertRating(ctx, Rating{UserID: "3", AnimeID: 30, Rating: 6}); err != nil {
		t.Fatalf("UpsertRating new numeric user: %v", err)
	}
	ratings, err = st.Ratings(ctx)
	if err != nil {
		t.Fatalf("Ratings: %v", err)
	}
	byUser := map[string][]float64{}
	for _, r := range ratings {
		if r.AnimeID == 30 {
			byUser[r.UserID] = append(byUser[r.UserID], r.Rating)
		}
	}
	if got := byUser["2"]; len(got) != 1 || got[0] != 8 {
		t.Errorf("legacy user ratings = %v, want a single updated rating of 8", got)
	}
	if got := byUser["3"]; len(got) != 1 || got[0] != 6 {
		t.Errorf("new numeric user ratings = %v, want [6]", got)
	}

	if _, err := st.User(ctx, "not-an-object-id"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("User(invalid) error = %v, want ErrInvalidID", err)
	}
	if err := st.DeleteUser(ctx, id); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := st.User(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("User(deleted) error = %v, want ErrNotFound", err)
	}
}
