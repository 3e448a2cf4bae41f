// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/middleware"
)

// slowRequestThreshold flags requests worth a warning. A history
// recommendation legitimately waits on several catalog searches.
const slowRequestThreshold = 5 * time.Second

// Router wires handlers and middleware.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware config uses defaults.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, ErrCodeNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	h := router.handler

	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.SlowRequests(slowRequestThreshold))

		// Each chat or suggestion spends one catalog search.
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitCustom(RateLimitCatalog))
			r.Post("/chat", h.Chat)
			r.Post("/search-assistance", h.SearchAssistance)
		})

		r.With(middleware.Compression).Post("/recommend_cf", h.RecommendCF)
		r.With(middleware.Compression).Post("/recommend_based_on_history", h.RecommendBasedOnHistory)

		r.With(router.chiMiddleware.RateLimitCustom(RateLimitSignup)).Post("/signup", h.Signup)
		r.With(router.chiMiddleware.RateLimitCustom(RateLimitLogin)).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/delete_account", h.DeleteAccount)

		r.Post("/history", h.History)
		r.Post("/delete_history", h.DeleteHistory)
		r.Post("/ratings", h.Ratings)
	})

	return r
}
