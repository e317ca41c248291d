// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package worker runs translation jobs on a pool of goroutines.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Processor runs a single job. It is responsible for recording the outcome
// of the job; the returned error is only logged.
type Processor interface {
	Process(ctx context.Context, jobID int64) error
}

// Config holds dispatcher configuration.
type Config struct {
	Workers    int           // Number of concurrent workers
	QueueSize  int           // Buffered job ids; overflow is left to the sweeper
	JobTimeout time.Duration // Upper bound for one job
}

// DefaultConfig returns default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		Workers:    2,
		QueueSize:  100,
		JobTimeout: 2 * time.Minute,
	}
}

// Dispatcher feeds job ids to a fixed pool of workers.
type Dispatcher struct {
	processor Processor
	logger    *slog.Logger
	queue     chan int64
	workers   int
	timeout   time.Duration
	wg        sync.WaitGroup
	done      chan struct{}
	mu        sync.RWMutex
	running   bool
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(processor Processor, logger *slog.Logger, cfg Config) *Dispatcher {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = def.JobTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		processor: processor,
		logger:    logger,
		queue:     make(chan int64, cfg.QueueSize),
		workers:   cfg.Workers,
		timeout:   cfg.JobTimeout,
		done:      make(chan struct{}),
	}
}

// Start starts the dispatcher workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info("starting translation dispatcher", "workers", d.workers)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop stops the dispatcher and waits for in-flight jobs to finish.
// Queued ids are dropped; their jobs stay pending in the database.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.done)
	d.mu.Unlock()

	d.logger.Info("stopping translation dispatcher")
	d.wg.Wait()
	d.logger.Info("translation dispatcher stopped")
}

// Enqueue hands job ids to the workers without blocking.
func (d *Dispatcher) Enqueue(jobIDs ...int64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		d.logger.Debug("dispatcher not running, jobs left for the sweeper", "count", len(jobIDs))
		return
	}

	for _, id := range jobIDs {
		select {
		case d.queue <- id:
		default:
			d.logger.Warn("translation queue full, job will be picked up by the sweeper", "job_id", id)
		}
	}
}

// Pending returns the number of queued ids.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	d.logger.Debug("translation worker started", "worker_id", id)

	for {
		select {
		case <-d.done:
			d.logger.Debug("translation worker stopping", "worker_id", id)
			return
		case <-ctx.Done():
			d.logger.Debug("translation worker context cancelled", "worker_id", id)
			return
		case jobID := <-d.queue:
			d.process(ctx, id, jobID)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, jobID int64) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("translation job panicked", "worker_id", workerID, "job_id", jobID, "panic", r)
		}
	}()

	if err := d.processor.Process(ctx, jobID); err != nil {
		d.logger.Debug("translation job failed", "worker_id", workerID, "job_id", jobID, "error", err)
	}
}
