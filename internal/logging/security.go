// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityEvent is an account event written to the audit log.
type SecurityEvent struct {
	// Event is the event name, e.g. "signup", "login_failed", "account_deleted".
	Event     string
	UserID    string
	Email     string
	IPAddress string
	Success   bool
	Error     string
}

// SecurityLogger writes account events with identifiers masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: With().Str("component", "account").Logger()}
}

// NewSecurityLoggerWithLogger creates a security logger on a custom logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "account").Logger()}
}

// LogEvent writes event with masked identifiers.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info().Str("event", event.Event)
	if event.Success {
		e = e.Str("status", "success")
	} else {
		e = e.Str("status", "failed")
	}
	if event.UserID != "" {
		e = e.Str("user_id", SanitizeUserID(event.UserID))
	}
	if event.Email != "" {
		e = e.Str("email", SanitizeEmail(event.Email))
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.Error != "" && !event.Success {
		e = e.Str("error", SanitizeError(event.Error))
	}
	e.Msg("")
}

// LogSignup records an account creation attempt.
func (l *SecurityLogger) LogSignup(userID, email string, success bool, errMsg string) {
	l.LogEvent(&SecurityEvent{Event: "signup", UserID: userID, Email: email, Success: success, Error: errMsg})
}

// LogLoginSuccess records a successful login.
func (l *SecurityLogger) LogLoginSuccess(userID, email string) {
	l.LogEvent(&SecurityEvent{Event: "login_success", UserID: userID, Email: email, Success: true})
}

// LogLoginFailure records a failed login.
func (l *SecurityLogger) LogLoginFailure(email, reason string) {
	l.LogEvent(&SecurityEvent{Event: "login_failed", Email: email, Error: reason})
}

// LogLogout records a client logout.
func (l *SecurityLogger) LogLogout(userID string) {
	l.LogEvent(&SecurityEvent{Event: "logout", UserID: userID, Success: true})
}

// LogAccountDeleted records an account deletion attempt.
func (l *SecurityLogger) LogAccountDeleted(userID string, success bool, errMsg string) {
	l.LogEvent(&SecurityEvent{Event: "account_deleted", UserID: userID, Success: success, Error: errMsg})
}

// SanitizeUserID keeps the first and last four characters.
// Example: "665f1c2ab9e4d2a1f0c3b7e8" -> "665f...b7e8"
func SanitizeUserID(userID string) string {
	if userID == "" {
		return ""
	}
	if len(userID) <= 8 {
		return "***"
	}
	return userID[:4] + "..." + userID[len(userID)-4:]
}

// SanitizeEmail keeps the first two characters of the local part.
// Example: "john.doe@example.com" -> "jo***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

// SanitizeError hides messages that mention credentials and truncates the rest.
func SanitizeError(err string) string {
	lowerErr := strings.ToLower(err)
	for _, pattern := range []string{"password", "secret", "token", "hash", "authorization"} {
		if strings.Contains(lowerErr, pattern) {
			return "authentication error"
		}
	}
	return truncateString(err, 200)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
