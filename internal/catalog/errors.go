// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps network failures talking to the catalog.
	ErrTransport = errors.New("catalog transport failure")

	// ErrUpstreamStatus is matched by every *StatusError.
	ErrUpstreamStatus = errors.New("catalog returned a non-success status")

	// ErrMalformedResponse means the catalog body could not be decoded.
	ErrMalformedResponse = errors.New("catalog returned a malformed response")

	// ErrUnavailable means the circuit breaker rejected the call.
	ErrUnavailable = errors.New("catalog temporarily unavailable")
)

// StatusError is a non-2xx catalog response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets errors.Is(err, ErrUpstreamStatus) match.
func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}
