// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package webhook tells the public storefront which list paths changed so it
// can revalidate its own caches. Paths are coalesced over a short window and
// delivered as one signed POST.
package webhook

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Config holds revalidator configuration.
type Config struct {
	URL    string // Storefront revalidation endpoint
	Secret string // HMAC key; empty sends unsigned requests

	// Interval is the debounce window. Paths reported within it are sent together.
	Interval time.Duration
	// MaxWait bounds how long a path may be held back by a stream of changes.
	MaxWait time.Duration

	MaxAttempts    int
	InitialBackoff time.Duration
	Timeout        time.Duration
}

// DefaultConfig returns default revalidator configuration.
func DefaultConfig() Config {
	return Config{
		Interval:       time.Second,
		MaxWait:        5 * time.Second,
		MaxAttempts:    3,
		InitialBackoff: 2 * time.Second,
		Timeout:        10 * time.Second,
	}
}

// Revalidator coalesces revalidated paths and posts them to the storefront.
// It implements cache.PathNotifier.
type Revalidator struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger

	mu        sync.Mutex
	pending   map[string]struct{}
	timer     *time.Timer
	firstSeen time.Time
	stopped   bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a revalidator. Zero durations and attempts take defaults.
func New(cfg Config, logger *slog.Logger) *Revalidator {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = def.MaxWait
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Revalidator{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		pending: make(map[string]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Notify queues paths for delivery.
func (r *Revalidator) Notify(paths ...string) {
	if len(paths) == 0 {
		return
	}
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}

	for _, p := range paths {
		r.pending[p] = struct{}{}
	}

	if r.timer == nil {
		r.firstSeen = now
		r.timer = time.AfterFunc(r.cfg.Interval, func() {
			r.mu.Lock()
			r.flushLocked()
			r.mu.Unlock()
		})
		return
	}

	if now.Sub(r.firstSeen) >= r.cfg.MaxWait {
		r.flushLocked()
		return
	}
	r.timer.Reset(r.cfg.Interval)
}

// flushLocked hands the pending paths to a delivery goroutine. Must be
// called with the lock held.
func (r *Revalidator) flushLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if len(r.pending) == 0 {
		return
	}

	paths := make([]string, 0, len(r.pending))
	for p := range r.pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	r.pending = make(map[string]struct{})

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.deliver(r.ctx, paths)
	}()
}

// Flush immediately delivers all pending paths.
func (r *Revalidator) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()
}

// Stop flushes pending paths and waits for deliveries in flight. Retries
// still waiting for their backoff are abandoned.
func (r *Revalidator) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.flushLocked()
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(r.cfg.Timeout):
		r.cancel()
		<-done
	}
	r.cancel()
}

// PendingCount returns the number of paths waiting for the debounce window.
func (r *Revalidator) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
