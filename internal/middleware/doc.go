// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

/*
Package middleware provides chi-compatible HTTP middleware.

  - PrometheusMetrics: request count, latency and in-flight gauge, labeled by
    route pattern so path parameters do not explode cardinality
  - Compression: gzip for responses of at least MinCompressSize bytes when the
    client accepts it; recommendation payloads of raw catalog records are the
    main beneficiary
  - SlowRequests: logs requests slower than a threshold through the request
    logger

Usage:

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.With(middleware.Compression).Post("/recommend_based_on_history", h)
*/
package middleware
