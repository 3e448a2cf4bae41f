// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Package account handles signup, login, logout and account deletion on top
// of the user store. Passwords are stored as bcrypt hashes.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned by Signup when unique emails are enforced.
	ErrEmailTaken = errors.New("email already registered")
)

// Options configures a Manager.
type Options struct {
	BcryptCost  int
	UniqueEmail bool
}

// Manager owns the account lifecycle.
type Manager struct {
	users    store.UserStore
	opts     Options
	security *logging.SecurityLogger

	// dummyHash keeps unknown-email logins as slow as real ones.
	dummyOnce sync.Once
	dummyHash []byte
}

// NewManager creates an account manager. An out-of-range cost falls back to
// bcrypt.DefaultCost.
func NewManager(users store.UserStore, opts Options, security *logging.SecurityLogger) *Manager {
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if security == nil {
		security = logging.NewSecurityLogger()
	}
	return &Manager{users: users, opts: opts, security: security}
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new account and returns its id.
func (m *Manager) Signup(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	if m.opts.UniqueEmail {
		_, err := m.users.UserByEmail(ctx, email)
		switch {
		case err == nil:
			m.security.LogSignup("", email, false, ErrEmailTaken.Error())
			return "", ErrEmailTaken
		case !errors.Is(err, store.ErrNotFound):
			return "", fmt.Errorf("check existing email: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.opts.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := m.users.CreateUser(ctx, email, hash)
	if err != nil {
		m.security.LogSignup("", email, false, err.Error())
		return "", fmt.Errorf("create user: %w", err)
	}
	m.security.LogSignup(id, email, true, "")
	return id, nil
}

// Login checks credentials against the earliest account with the email.
func (m *Manager) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	user, err := m.users.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(m.placeholderHash(), []byte(password))
		m.security.LogLoginFailure(email, "unknown email")
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		m.security.LogLoginFailure(email, "password mismatch")
		return "", ErrInvalidCredentials
	}
	m.security.LogLoginSuccess(user.ID, email)
	return user.ID, nil
}

// Logout records the event. Sessions live on the client.
func (m *Manager) Logout(_ context.Context, userID string) {
	m.security.LogLogout(userID)
}

// DeleteAccount removes the user and its history.
func (m *Manager) DeleteAccount(ctx context.Context, userID string) error {
	if err := m.users.DeleteUser(ctx, userID); err != nil {
		m.security.LogAccountDeleted(userID, false, err.Error())
		return fmt.Errorf("delete user: %w", err)
	}
	m.security.LogAccountDeleted(userID, true, "")
	return nil
}

func (m *Manager) placeholderHash() []byte {
	m.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("placeholder-password"), m.opts.BcryptCost)
		if err == nil {
			m.dummyHash = hash
		}
	})
	return m.dummyHash
}
