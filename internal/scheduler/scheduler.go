// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance of the back-office:
// sweeping due translation jobs into the worker queue and pruning the
// event log.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// sweepBatch caps how many due jobs a single sweep hands to the queue.
const sweepBatch = 100

// JobSource lists translation jobs that are ready to run.
type JobSource interface {
	DueJobIDs(ctx context.Context, limit int64) ([]int64, error)
}

// Queue accepts job ids for processing.
type Queue interface {
	Enqueue(jobIDs ...int64)
}

// EventPruner removes old event log entries.
type EventPruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// Scheduler handles the periodic tasks.
type Scheduler struct {
	cron      *cron.Cron
	logger    *slog.Logger
	jobs      JobSource
	queue     Queue
	events    EventPruner
	retention time.Duration
}

// New creates a new scheduler instance. A nil pruner or a zero retention
// disables event pruning.
func New(jobs JobSource, queue Queue, events EventPruner, retention time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		logger:    logger,
		jobs:      jobs,
		queue:     queue,
		events:    events,
		retention: retention,
	}
}

// Start registers the periodic tasks and starts the cron runner.
func (s *Scheduler) Start() error {
	// Run every minute
	_, err := s.cron.AddFunc("* * * * *", func() {
		if _, err := s.Sweep(context.Background()); err != nil {
			s.logger.Error("failed to sweep translation jobs", "error", err)
		}
	})
	if err != nil {
		return err
	}

	if s.events != nil && s.retention > 0 {
		_, err = s.cron.AddFunc("@daily", func() {
			if _, err := s.Prune(context.Background()); err != nil {
				s.logger.Error("failed to prune events", "error", err)
			}
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Sweep enqueues pending jobs whose next attempt is due. It returns the
// number of enqueued jobs.
func (s *Scheduler) Sweep(ctx context.Context) (int, error) {
	ids, err := s.jobs.DueJobIDs(ctx, sweepBatch)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	s.logger.Debug("sweeping due translation jobs", "count", len(ids))
	s.queue.Enqueue(ids...)
	return len(ids), nil
}

// Prune deletes events older than the retention period.
func (s *Scheduler) Prune(ctx context.Context) (int64, error) {
	if s.events == nil || s.retention <= 0 {
		return 0, nil
	}
	n, err := s.events.Prune(ctx, s.retention)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("pruned old events", "count", n, "retention", s.retention)
	}
	return n, nil
}
