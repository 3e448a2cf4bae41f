// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Package config loads server configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Store     StoreConfig     `koanf:"store"`
	Accounts  AccountsConfig  `koanf:"accounts"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production". Production refuses a
	// wildcard CORS origin.
	Environment string `koanf:"environment"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig configures the Jikan catalog client.
type CatalogConfig struct {
	BaseURL        string        `koanf:"base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`

	// RequestsPerSecond and Burst feed the client-side token bucket.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// MatchThreshold is the similarity a candidate must exceed to be accepted.
	MatchThreshold float64 `koanf:"match_threshold"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Backend is "badger" or "mongo".
	Backend string `koanf:"backend"`

	BadgerPath     string `koanf:"badger_path"`
	BadgerInMemory bool   `koanf:"badger_in_memory"`

	MongoURI       string        `koanf:"mongo_uri"`
	MongoDatabase  string        `koanf:"mongo_database"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// AccountsConfig holds signup and login settings.
type AccountsConfig struct {
	BcryptCost int `koanf:"bcrypt_cost"`

	// UniqueEmail rejects a signup whose email is already registered.
	UniqueEmail bool `koanf:"unique_email"`
}

// RecommendConfig tunes both recommenders.
type RecommendConfig struct {
	// Neighbors is k for the nearest-neighbor query, the target user included.
	Neighbors int `koanf:"neighbors"`
	TopN      int `koanf:"top_n"`

	// HistoryConcurrency bounds parallel catalog searches for history recommendations.
	HistoryConcurrency int `koanf:"history_concurrency"`
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
