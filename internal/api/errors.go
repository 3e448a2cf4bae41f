// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/account"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/catalog"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/recommend"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
)

// classify maps a domain error to its HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout
	case errors.Is(err, catalog.ErrTransport),
		errors.Is(err, catalog.ErrUpstreamStatus),
		errors.Is(err, catalog.ErrMalformedResponse),
		errors.Is(err, catalog.ErrUnavailable):
		return http.StatusBadGateway, ErrCodeExternalServiceFail
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, recommend.ErrUserNotFound),
		errors.Is(err, recommend.ErrNoHistory):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, store.ErrInvalidID):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, account.ErrEmailTaken):
		return http.StatusConflict, ErrCodeConflict
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// writeError logs err and writes it with the status classify picks. The
// error text is the response message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	event := logging.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Str("path", r.URL.Path).Msg("Request failed")

	respondError(w, r, status, code, err.Error())
}
