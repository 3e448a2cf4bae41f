// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package api

import "github.com/AnshGaigawali/MyAnimeCompanion/internal/store"

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Input  string `json:"input" validate:"required,notblank,max=500"`
	UserID string `json:"user_id" validate:"max=64"`
}

// ChatResponse is the lookup answer. Media URLs are null when absent.
type ChatResponse struct {
	Response   string  `json:"response"`
	ImageURL   *string `json:"image_url"`
	TrailerURL *string `json:"trailer_url"`
}

// SearchRequest is the body of POST /search-assistance.
type SearchRequest struct {
	Input string `json:"input" validate:"max=200"`
}

// SearchResponse lists autocomplete suggestions.
type SearchResponse struct {
	Suggestions []string `json:"suggestions"`
}

// UserRequest carries only a user id.
type UserRequest struct {
	UserID string `json:"user_id" validate:"required,notblank,max=64"`
}

// LogoutRequest may omit the user id.
type LogoutRequest struct {
	UserID string `json:"user_id" validate:"max=64"`
}

// CredentialsRequest is the body of signup and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// UserIDResponse returns the authenticated or created user.
type UserIDResponse struct {
	UserID string `json:"user_id"`
}

// HistoryResponse wraps a user's conversation history.
type HistoryResponse struct {
	History []store.Turn `json:"history"`
}

// RatingRequest records one rating and optionally the anime's title.
type RatingRequest struct {
	UserID  string   `json:"user_id" validate:"required,notblank,max=64"`
	AnimeID int      `json:"anime_id" validate:"required,gt=0"`
	Rating  *float64 `json:"rating" validate:"required,gte=0,lte=10"`
	Title   string   `json:"title" validate:"max=500"`
}
