// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package api

import (
	"net/http"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
)

// History handles POST /history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	turns, err := h.deps.Conversations.History(r.Context(), req.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{History: turns})
}

// DeleteHistory handles POST /delete_history.
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if err := h.deps.Conversations.ClearHistory(r.Context(), req.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "cleared"})
}

// Ratings handles POST /ratings. A non-empty title also updates the anime
// title table used to label collaborative recommendations.
func (h *Handler) Ratings(w http.ResponseWriter, r *http.Request) {
	var req RatingRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	ctx := r.Context()

	err := h.deps.Ratings.UpsertRating(ctx, store.Rating{
		UserID:  req.UserID,
		AnimeID: req.AnimeID,
		Rating:  *req.Rating,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if req.Title != "" {
		if err := h.deps.Ratings.UpsertAnimeTitle(ctx, store.AnimeTitle{AnimeID: req.AnimeID, Title: req.Title}); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "saved"})
}
