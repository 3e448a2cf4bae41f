// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package store

import (
	"context"
	"fmt"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/config"
)

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendMongo  = "mongo"
)

// Open builds the configured backend.
func Open(ctx context.Context, cfg *config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case BackendBadger:
		return OpenBadgerStore(cfg.BadgerPath, cfg.BadgerInMemory)
	case BackendMongo:
		return OpenMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.ConnectTimeout)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
