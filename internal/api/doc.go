// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

// Package api exposes the assistant over HTTP with a chi router.
//
// Every endpoint takes a JSON body and answers with JSON. The four original
// endpoints keep their contract:
//
//	POST /chat                        {input, user_id?}
//	POST /search-assistance           {input}
//	POST /recommend_cf                {user_id}
//	POST /recommend_based_on_history  {user_id}
//
// Account, history and rating endpoints sit next to them, together with
// /health/live, /health/ready and /metrics. Errors are written as
// {"error", "code", "request_id"} with the status chosen by writeError.
package api
