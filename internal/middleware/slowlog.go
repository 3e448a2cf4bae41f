// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package middleware

import (
	"net/http"
	"time"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
)

// SlowRequests logs a warning for requests slower than threshold.
// A non-positive threshold disables the check.
func SlowRequests(threshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if threshold <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(sw, r)

			if elapsed := time.Since(start); elapsed > threshold {
				logging.Ctx(r.Context()).Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", sw.statusCode).
					Dur("duration", elapsed).
					Dur("threshold", threshold).
					Msg("Slow request")
			}
		})
	}
}
