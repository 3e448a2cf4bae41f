// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package api

import "net/http"

// Signup handles POST /signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	id, err := h.deps.Accounts.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, UserIDResponse{UserID: id})
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	id, err := h.deps.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UserIDResponse{UserID: id})
}

// Logout handles POST /logout. The session lives on the client, so this
// only records the event.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	h.deps.Accounts.Logout(r.Context(), req.UserID)
	writeJSON(w, http.StatusOK, StatusResponse{Status: "logged_out"})
}

// DeleteAccount handles POST /delete_account.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if err := h.deps.Accounts.DeleteAccount(r.Context(), req.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
