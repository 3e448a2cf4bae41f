// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package api

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/catalog"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/recommend"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
)

// Lookuper answers title lookups and autocomplete.
type Lookuper interface {
	Lookup(ctx context.Context, title string) catalog.Result
	Suggest(ctx context.Context, partial string) []string
}

// Accounts manages the account lifecycle.
type Accounts interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, userID string)
	DeleteAccount(ctx context.Context, userID string) error
}

// CollaborativeRecommender ranks anime rated by similar users.
type CollaborativeRecommender interface {
	Recommend(ctx context.Context, userID string) ([]recommend.Recommendation, error)
}

// HistoryRecommender returns catalog records for a user's past queries.
type HistoryRecommender interface {
	Recommend(ctx context.Context, userID string) ([]json.RawMessage, error)
}

// Pinger reports backend readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the services the handlers call.
type Dependencies struct {
	Lookup        Lookuper
	Conversations store.ConversationStore
	Ratings       store.RatingStore
	Accounts      Accounts
	Collaborative CollaborativeRecommender
	History       HistoryRecommender
	Store         Pinger

	// RequestTimeout bounds the work of a single request. Zero disables it.
	RequestTimeout time.Duration

	// Now stamps conversation turns. Defaults to time.Now.
	Now func() time.Time
}

// Handler serves the API endpoints.
type Handler struct {
	deps      Dependencies
	startTime time.Time
}

// NewHandler creates a handler.
func NewHandler(deps Dependencies) *Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Handler{deps: deps, startTime: time.Now()}
}

// withTimeout applies the configured request timeout.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.deps.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.deps.RequestTimeout)
}
