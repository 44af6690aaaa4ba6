// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package workers

import (
	"context"
	"time"

	"github.com/codegenhq/codechat/internal/logger"
)

// Refresher is the slice of the session store the worker needs.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshWorker periodically re-fetches the conversation list so sidebar
// titles and message counts converge with the server. Refresh failures are
// logged and ignored; the next tick tries again.
type RefreshWorker struct {
	store    Refresher
	interval time.Duration
	logger   *logger.Logger

	stop chan struct{}
	done chan struct{}
}

// NewRefreshWorker builds a worker ticking at the given interval.
func NewRefreshWorker(store Refresher, interval time.Duration, log *logger.Logger) *RefreshWorker {
	return &RefreshWorker{
		store:    store,
		interval: interval,
		logger:   log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run starts the refresh loop in its own goroutine and returns.
func (w *RefreshWorker) Run() {
	go w.loop()
}

// Stop shuts the loop down and waits for it to exit. Safe to call once.
func (w *RefreshWorker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *RefreshWorker) loop() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			if err := w.store.Refresh(context.Background()); err != nil {
				w.logger.Debug().Err(err).Msg("background conversation refresh failed")
			}
		}
	}
}
