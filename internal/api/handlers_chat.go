// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
)

// Chat handles POST /chat. The input is looked up as a title; catalog
// failures are reported in the response text with status 200. When user_id
// is present the turn is appended to that user's history.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	res := h.deps.Lookup.Lookup(ctx, req.Input)

	if req.UserID != "" {
		turn := store.NewTurn(req.Input, res.Text, res.ImageURL, res.TrailerURL, h.deps.Now())
		err := h.deps.Conversations.AppendTurn(ctx, req.UserID, turn)
		switch {
		case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidID):
			logging.Ctx(ctx).Warn().
				Err(err).
				Str("user_id", logging.SanitizeUserID(req.UserID)).
				Msg("Chat turn not recorded: unknown user")
		case err != nil:
			writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:   res.Text,
		ImageURL:   res.ImageURL,
		TrailerURL: res.TrailerURL,
	})
}

// SearchAssistance handles POST /search-assistance. Blank input yields an
// empty suggestion list without a catalog call.
func (h *Handler) SearchAssistance(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	input := strings.TrimSpace(req.Input)
	if input == "" {
		writeJSON(w, http.StatusOK, SearchResponse{Suggestions: []string{}})
		return
	}
	suggestions := h.deps.Lookup.Suggest(ctx, input)
	writeJSON(w, http.StatusOK, SearchResponse{Suggestions: suggestions})
}
