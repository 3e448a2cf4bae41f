// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound means the user has no row in the ratings matrix.
	ErrUserNotFound = errors.New("user not found in interactions data")

	// ErrNoHistory means the user is unknown or has an empty history.
	ErrNoHistory = errors.New("no history found")
)

// UserError carries the user-facing message for a recommendation failure.
type UserError struct {
	UserID string
	Err    error
}

func (e *UserError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUserNotFound):
		return fmt.Sprintf("User %s not found in interactions data.", e.UserID)
	case errors.Is(e.Err, ErrNoHistory):
		return fmt.Sprintf("No history found for user %s.", e.UserID)
	default:
		return fmt.Sprintf("user %s: %v", e.UserID, e.Err)
	}
}

func (e *UserError) Unwrap() error {
	return e.Err
}
