// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Package store persists users, their conversation history, ratings and the
// anime title table. Two backends exist: an embedded BadgerDB store and a
// MongoDB store using the original collection layout.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound means the user (or record) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID means the identifier is malformed for the backend.
	ErrInvalidID = errors.New("invalid identifier")
)

// TimestampLayout is the format of Turn.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// User is an account with its conversation history.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash"`
	History      []Turn    `json:"history"`
	CreatedAt    time.Time `json:"created_at"`
}

// Turn is one logged chat exchange. It is never modified after append.
type Turn struct {
	UserInput  string  `json:"user_input" bson:"user_input"`
	Response   string  `json:"response" bson:"response"`
	ImageURL   *string `json:"image_url" bson:"image_url"`
	TrailerURL *string `json:"trailer_url" bson:"trailer_url"`
	Timestamp  string  `json:"timestamp" bson:"timestamp"`
}

// NewTurn stamps a turn with the given time.
func NewTurn(input, response string, imageURL, trailerURL *string, at time.Time) Turn {
	return Turn{
		UserInput:  input,
		Response:   response,
		ImageURL:   imageURL,
		TrailerURL: trailerURL,
		Timestamp:  at.Format(TimestampLayout),
	}
}

// Rating is one (user, anime, rating) triple.
type Rating struct {
	UserID  string  `json:"user_id"`
	AnimeID int     `json:"anime_id"`
	Rating  float64 `json:"rating"`
}

// AnimeTitle maps a catalog id to its display title.
type AnimeTitle struct {
	AnimeID int    `json:"anime_id"`
	Title   string `json:"title"`
}

// UserStore manages accounts.
type UserStore interface {
	CreateUser(ctx context.Context, email string, passwordHash []byte) (string, error)
	// UserByEmail returns the earliest account registered with email.
	UserByEmail(ctx context.Context, email string) (*User, error)
	User(ctx context.Context, id string) (*User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ConversationStore manages per-user chat history.
type ConversationStore interface {
	AppendTurn(ctx context.Context, userID string, turn Turn) error
	// History returns turns in insertion order, never nil.
	History(ctx context.Context, userID string) ([]Turn, error)
	ClearHistory(ctx context.Context, userID string) error
}

// RatingStore manages ratings and the title table used to label them.
type RatingStore interface {
	Ratings(ctx context.Context) ([]Rating, error)
	UpsertRating(ctx context.Context, r Rating) error
	AnimeTitles(ctx context.Context) ([]AnimeTitle, error)
	UpsertAnimeTitle(ctx context.Context, t AnimeTitle) error
}

// Store is the full persistence surface.
type Store interface {
	UserStore
	ConversationStore
	RatingStore
	Ping(ctx context.Context) error
	Close() error
}
