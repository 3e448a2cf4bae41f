// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Package main is the MyAnimeCompanion backend.
//
// Startup order:
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Logging
//  3. Store (badger or mongo, STORE_BACKEND)
//  4. Catalog client wrapped in a circuit breaker, then the title lookup
//  5. Recommenders and the account manager
//  6. HTTP router, run with a store monitor under a suture supervisor tree
//
// SIGINT and SIGTERM cancel the tree; the HTTP server drains for up to 10s
// and the store is closed last.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/account"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/api"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/catalog"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/config"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/logging"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/recommend"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/supervisor"
	"github.com/AnshGaigawali/MyAnimeCompanion/internal/supervisor/services"
)

const (
	shutdownTimeout    = 10 * time.Second
	storeCheckInterval = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("store_backend", cfg.Store.Backend).
		Str("catalog_url", cfg.Catalog.BaseURL).
		Str("environment", cfg.Server.Environment).
		Msg("Starting MyAnimeCompanion")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, &cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Store opened")

	handler := newHandler(cfg, st)
	router := api.NewRouter(handler, middlewareConfig(cfg))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddDataService(services.NewStoreMonitorService(st, storeCheckInterval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// newHandler wires the domain services around an open store.
func newHandler(cfg *config.Config, st store.Store) *api.Handler {
	searcher := catalog.NewBreakerClient(catalog.NewClient(&cfg.Catalog))
	lookup := catalog.NewService(searcher, cfg.Catalog.MatchThreshold)

	accounts := account.NewManager(st, account.Options{
		BcryptCost:  cfg.Accounts.BcryptCost,
		UniqueEmail: cfg.Accounts.UniqueEmail,
	}, logging.NewSecurityLogger())

	return api.NewHandler(api.Dependencies{
		Lookup:         lookup,
		Conversations:  st,
		Ratings:        st,
		Accounts:       accounts,
		Collaborative:  recommend.NewCollaborative(st, cfg.Recommend.Neighbors, cfg.Recommend.TopN),
		History:        recommend.NewHistory(st, searcher, cfg.Recommend.HistoryConcurrency),
		Store:          st,
		RequestTimeout: cfg.Server.Timeout,
	})
}

func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}
