// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/validation"
)

// Error codes for API responses.
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeValidationFailed    = "VALIDATION_ERROR"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeExternalServiceFail = "EXTERNAL_SERVICE_FAILED"
	ErrCodeTimeout             = "GATEWAY_TIMEOUT"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
)

// msgNoInput is the original contract's message for a missing body.
const msgNoInput = "No input data provided"

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code"`
	RequestID string   `json:"request_id,omitempty"`
	Fields    []string `json:"fields,omitempty"`
}

// StatusResponse acknowledges a command.
type StatusResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
}

// decodeRequest reads a JSON body into dst and validates it. It writes the
// error response itself and reports whether the handler may continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || strings.TrimSpace(string(body)) == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, msgNoInput)
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Rejected malformed JSON body")
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, msgNoInput)
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		fields, _ := apiErr.Details["fields"].([]string)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     apiErr.Message,
			Code:      apiErr.Code,
			RequestID: logging.RequestIDFromContext(r.Context()),
			Fields:    fields,
		})
		return false
	}
	return true
}
