// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/metrics"
)

// DefaultStoreCheckInterval is used when the configured interval is not positive.
const DefaultStoreCheckInterval = 30 * time.Second

// Pinger is implemented by every store backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreMonitorService pings the store on a ticker, exports the result as the
// store_up gauge and logs up/down transitions.
type StoreMonitorService struct {
	store    Pinger
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger

	state atomic.Int32
}

const (
	stateUnknown int32 = iota
	stateUp
	stateDown
)

// NewStoreMonitorService creates the monitor. Each ping is bounded by half
// the interval.
func NewStoreMonitorService(store Pinger, interval time.Duration, logger zerolog.Logger) *StoreMonitorService {
	if interval <= 0 {
		interval = DefaultStoreCheckInterval
	}
	return &StoreMonitorService{
		store:    store,
		interval: interval,
		timeout:  interval / 2,
		logger:   logger.With().Str("service", "store-monitor").Logger(),
	}
}

// Serve implements suture.Service. It checks once immediately, then on
// every tick until ctx is canceled.
func (s *StoreMonitorService) Serve(ctx context.Context) error {
	s.check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *StoreMonitorService) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.store.Ping(pingCtx)
	if ctx.Err() != nil {
		return
	}
	next := stateUp
	if err != nil {
		next = stateDown
	}

	if next == stateUp {
		metrics.StoreUp.Set(1)
	} else {
		metrics.StoreUp.Set(0)
	}

	prev := s.state.Swap(next)
	switch {
	case prev == stateUnknown && next == stateDown:
		s.logger.Error().Err(err).Msg("store unreachable at startup")
	case prev == stateUp && next == stateDown:
		s.logger.Error().Err(err).Msg("store went down")
	case prev == stateDown && next == stateUp:
		s.logger.Info().Msg("store recovered")
	}
}

// Up reports the result of the last completed check. known is false until
// the first check finishes.
func (s *StoreMonitorService) Up() (up, known bool) {
	switch s.state.Load() {
	case stateUp:
		return true, true
	case stateDown:
		return false, true
	}
	return false, false
}

func (s *StoreMonitorService) String() string {
	return "store-monitor"
}
