// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Package client is the presentation client of the backend JSON API. It
// holds only the session's user id and renders replies for display.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/resolver"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodySize    = 8 << 20

	// DefaultReply is shown when the backend returns an empty response.
	DefaultReply = "I'm sorry, I couldn't find any information."
)

var (
	// ErrNotLoggedIn is returned by user-scoped calls without a session.
	ErrNotLoggedIn = errors.New("you need to log in first")

	// ErrEmptyInput is returned when nothing is left after title resolution.
	ErrEmptyInput = errors.New("please enter an anime name")
)

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
	}
	return e.Message
}

// Client talks to the backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New creates a client for baseURL. A nil httpClient gets a 30s timeout and
// a nil session starts logged out.
func New(baseURL string, httpClient *http.Client, session *Session) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if session == nil {
		session = &Session{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: session,
	}
}

// Session returns the session the client mutates on login and logout.
func (c *Client) Session() *Session {
	return c.session
}

// ChatReply is the backend's answer to a chat turn.
type ChatReply struct {
	Response   string  `json:"response"`
	ImageURL   *string `json:"image_url"`
	TrailerURL *string `json:"trailer_url"`
}

// Recommendation is one collaborative-filter result.
type Recommendation struct {
	AnimeID int    `json:"anime_id"`
	Title   string `json:"title"`
}

// CatalogRecommendation is the subset of a catalog record that is displayed
// for history-based recommendations.
type CatalogRecommendation struct {
	MalID int    `json:"mal_id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Turn is one stored conversation turn.
type Turn struct {
	UserInput  string  `json:"user_input"`
	Response   string  `json:"response"`
	ImageURL   *string `json:"image_url"`
	TrailerURL *string `json:"trailer_url"`
	Timestamp  string  `json:"timestamp"`
}

type chatRequest struct {
	Input  string `json:"input"`
	UserID string `json:"user_id,omitempty"`
}

type inputRequest struct {
	Input string `json:"input"`
}

type userRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ratingRequest struct {
	UserID  string  `json:"user_id"`
	AnimeID int     `json:"anime_id"`
	Rating  float64 `json:"rating"`
	Title   string  `json:"title,omitempty"`
}

type userIDResponse struct {
	UserID string `json:"user_id"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

// Chat asks about a title. Free text goes through the title resolver with
// punctuation stripping; a picked suggestion is sent verbatim.
func (c *Client) Chat(ctx context.Context, input string, fromSuggestion bool) (*ChatReply, error) {
	text := input
	if !fromSuggestion {
		text = resolver.Resolve(input, resolver.Options{StripPunctuation: true})
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	var reply ChatReply
	if err := c.post(ctx, "/chat", chatRequest{Input: text, UserID: c.session.UserID}, &reply); err != nil {
		return nil, err
	}
	if reply.Response == "" {
		reply.Response = DefaultReply
	}
	return &reply, nil
}

// Suggest returns autocomplete titles for a partial input.
func (c *Client) Suggest(ctx context.Context, partial string) ([]string, error) {
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.post(ctx, "/search-assistance", inputRequest{Input: partial}, &resp); err != nil {
		return nil, err
	}
	if resp.Suggestions == nil {
		return []string{}, nil
	}
	return resp.Suggestions, nil
}

// RecommendSimilar returns collaborative-filter recommendations for the
// logged-in user.
func (c *Client) RecommendSimilar(ctx context.Context) ([]Recommendation, error) {
	userID, err := c.userID()
	if err != nil {
		return nil, err
	}
	var recs []Recommendation
	if err := c.post(ctx, "/recommend_cf", userRequest{UserID: userID}, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// RecommendFromHistory returns catalog records related to the titles the
// logged-in user asked about.
func (c *Client) RecommendFromHistory(ctx context.Context) ([]CatalogRecommendation, error) {
	userID, err := c.userID()
	if err != nil {
		return nil, err
	}
	var recs []CatalogRecommendation
	if err := c.post(ctx, "/recommend_based_on_history", userRequest{UserID: userID}, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// History returns the logged-in user's conversation, oldest first.
func (c *Client) History(ctx context.Context) ([]Turn, error) {
	userID, err := c.userID()
	if err != nil {
		return nil, err
	}
	var resp struct {
		History []Turn `json:"history"`
	}
	if err := c.post(ctx, "/history", userRequest{UserID: userID}, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// ClearHistory empties the logged-in user's conversation.
func (c *Client) ClearHistory(ctx context.Context) error {
	userID, err := c.userID()
	if err != nil {
		return err
	}
	return c.post(ctx, "/delete_history", userRequest{UserID: userID}, nil)
}

// Signup creates an account. It does not log in.
func (c *Client) Signup(ctx context.Context, email, password string) (string, error) {
	var resp userIDResponse
	if err := c.post(ctx, "/signup", credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// Login authenticates and stores the user id in the session.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp userIDResponse
	if err := c.post(ctx, "/login", credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	c.session.UserID = resp.UserID
	return resp.UserID, nil
}

// Logout clears the session. The session is cleared even when the backend
// cannot be reached, since logout holds no server-side state.
func (c *Client) Logout(ctx context.Context) error {
	if c.session.UserID == "" {
		return ErrNotLoggedIn
	}
	err := c.post(ctx, "/logout", userRequest{UserID: c.session.UserID}, nil)
	c.session.UserID = ""
	return err
}

// DeleteAccount removes the logged-in user and, on success, clears the session.
func (c *Client) DeleteAccount(ctx context.Context) error {
	userID, err := c.userID()
	if err != nil {
		return err
	}
	if err := c.post(ctx, "/delete_account", userRequest{UserID: userID}, nil); err != nil {
		return err
	}
	c.session.UserID = ""
	return nil
}

// Rate records the logged-in user's rating of an anime.
func (c *Client) Rate(ctx context.Context, animeID int, rating float64, title string) error {
	userID, err := c.userID()
	if err != nil {
		return err
	}
	return c.post(ctx, "/ratings", ratingRequest{
		UserID:  userID,
		AnimeID: animeID,
		Rating:  rating,
		Title:   title,
	}, nil)
}

func (c *Client) userID() (string, error) {
	if c.session.UserID == "" {
		return "", ErrNotLoggedIn
	}
	return c.session.UserID, nil
}

// post sends body as JSON and decodes a 2xx response into out when non-nil.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(data, &er) == nil {
			apiErr.Message = er.Error
			apiErr.Code = er.Code
			apiErr.RequestID = er.RequestID
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
