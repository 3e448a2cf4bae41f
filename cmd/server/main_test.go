// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/api"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/config"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
)

const jikanBebop = `{"data":[{"mal_id":1,"title":"Cowboy Bebop","synopsis":"Space bounty hunters.",` +
	`"episodes":26,"score":8.75,"status":"Finished Airing","url":"https://myanimelist.net/anime/1/Cowboy_Bebop",` +
	`"images":{"jpg":{"image_url":"https://cdn.myanimelist.net/images/anime/4/19644.jpg"}},"trailer":{"url":null}}]}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	jikan := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, jikanBebop)
	}))
	t.Cleanup(jikan.Close)

	t.Setenv(config.ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("JIKAN_BASE_URL", jikan.URL)
	t.Setenv("BADGER_IN_MEMORY", "true")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("DISABLE_RATE_LIMIT", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	st, err := store.OpenBadgerStore("", true)
	if err != nil {
		t.Fatalf("OpenBadgerStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	router := api.NewRouter(newHandler(cfg, st), middlewareConfig(cfg))
	srv := httptest.NewServer(router.SetupChi())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", strings.NewReader(string(payload)))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestServerWiringEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	status, body := postJSON(t, srv.URL+"/signup", map[string]string{"email": "fan@example.com", "password": "hunter2"})
	if status != http.StatusCreated {
		t.Fatalf("signup status = %d, body = %v", status, body)
	}
	status, body = postJSON(t, srv.URL+"/login", map[string]string{"email": "FAN@example.com", "password": "hunter2"})
	if status != http.StatusOK {
		t.Fatalf("login status = %d, body = %v", status, body)
	}
	userID, _ := body["user_id"].(string)
	if userID == "" {
		t.Fatalf("login returned no user id: %v", body)
	}

	status, body = postJSON(t, srv.URL+"/chat", map[string]string{"input": "Cowboy Bebop", "user_id": userID})
	if status != http.StatusOK {
		t.Fatalf("chat status = %d, body = %v", status, body)
	}
	if resp, _ := body["response"].(string); !strings.HasPrefix(resp, "**Title:** Cowboy Bebop\n") {
		t.Errorf("chat response = %q", body["response"])
	}

	status, body = postJSON(t, srv.URL+"/history", map[string]string{"user_id": userID})
	if status != http.StatusOK {
		t.Fatalf("history status = %d", status)
	}
	if turns, _ := body["history"].([]any); len(turns) != 1 {
		t.Errorf("history = %v, want one turn", body["history"])
	}
}

func TestServerRejectsEmptyChat(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/chat", "application/json", http.NoBody)
	if err != nil {
		t.Fatalf("POST /chat: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServerHealth(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, resp.StatusCode)
		}
	}
}
