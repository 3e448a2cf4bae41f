// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Catalog.BaseURL != "https://api.jikan.moe/v4" {
		t.Errorf("Catalog.BaseURL = %q, want https://api.jikan.moe/v4", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.MatchThreshold != 0.7 {
		t.Errorf("Catalog.MatchThreshold = %v, want 0.7", cfg.Catalog.MatchThreshold)
	}
	if cfg.Store.Backend != "badger" {
		t.Errorf("Store.Backend = %q, want badger", cfg.Store.Backend)
	}
	if cfg.Store.MongoDatabase != "animechatbot" {
		t.Errorf("Store.MongoDatabase = %q, want animechatbot", cfg.Store.MongoDatabase)
	}
	if cfg.Recommend.Neighbors != 6 || cfg.Recommend.TopN != 5 {
		t.Errorf("Recommend = %+v, want neighbors 6 and top_n 5", cfg.Recommend)
	}
	if cfg.Accounts.UniqueEmail {
		t.Error("Accounts.UniqueEmail should be false by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"JIKAN_BASE_URL", "catalog.base_url"},
		{"STORE_BACKEND", "store.backend"},
		{"MONGO_URI", "store.mongo_uri"},
		{"UNIQUE_EMAIL", "accounts.unique_email"},
		{"RECOMMEND_TOP_N", "recommend.top_n"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty for a missing file", got)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("HTTP_PORT", "8088")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("STORE_BACKEND", "mongo")
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error: %v", err)
	}

	if cfg.Server.Port != 8088 {
		t.Errorf("Server.Port = %d, want 8088", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Catalog.Timeout != 3*time.Second {
		t.Errorf("Catalog.Timeout = %v, want 3s", cfg.Catalog.Timeout)
	}
	wantOrigins := []string{"http://a.example", "http://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
	if cfg.Store.Backend != "mongo" || cfg.Store.MongoURI != "mongodb://db:27017" {
		t.Errorf("Store = %+v, want mongo backend at mongodb://db:27017", cfg.Store)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9000
catalog:
  match_threshold: 0.8
recommend:
  neighbors: 4
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_NEIGHBORS", "8")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000 from file", cfg.Server.Port)
	}
	if cfg.Catalog.MatchThreshold != 0.8 {
		t.Errorf("Catalog.MatchThreshold = %v, want 0.8 from file", cfg.Catalog.MatchThreshold)
	}
	if cfg.Recommend.Neighbors != 8 {
		t.Errorf("Recommend.Neighbors = %d, want 8 (env overrides file)", cfg.Recommend.Neighbors)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }, "ENVIRONMENT"},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, "CORS_ORIGINS"},
		{"rate limit window too small", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"rate limit ignored when disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"catalog url with query", func(c *Config) { c.Catalog.BaseURL = "https://api.jikan.moe/v4?x=1" }, "JIKAN_BASE_URL"},
		{"catalog url ftp", func(c *Config) { c.Catalog.BaseURL = "ftp://api.jikan.moe" }, "JIKAN_BASE_URL"},
		{"threshold one", func(c *Config) { c.Catalog.MatchThreshold = 1 }, "CATALOG_MATCH_THRESHOLD"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, "STORE_BACKEND"},
		{"mongo without uri", func(c *Config) {
			c.Store.Backend = "mongo"
			c.Store.MongoURI = ""
		}, "MONGO_URI"},
		{"in-memory badger without path", func(c *Config) {
			c.Store.BadgerInMemory = true
			c.Store.BadgerPath = ""
		}, ""},
		{"bcrypt cost too high", func(c *Config) { c.Accounts.BcryptCost = 40 }, "BCRYPT_COST"},
		{"one neighbor", func(c *Config) { c.Recommend.Neighbors = 1 }, "RECOMMEND_NEIGHBORS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
