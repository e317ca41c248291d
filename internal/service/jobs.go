// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/store"
)

// JobService lists and re-drives translation jobs.
type JobService struct {
	db       *sql.DB
	queries  *store.Queries
	cache    *cache.Manager
	notifier JobNotifier
}

// NewJobService creates a new JobService. notifier may be nil.
func NewJobService(db *sql.DB, cm *cache.Manager, notifier JobNotifier) *JobService {
	return &JobService{
		db:       db,
		queries:  store.New(db),
		cache:    cm,
		notifier: notifier,
	}
}

// List returns jobs newest first, optionally filtered by status.
func (s *JobService) List(ctx context.Context, status string, limit, offset int64) ([]model.TranslationJob, error) {
	if status != "" && !model.IsValidJobStatus(status) {
		return nil, invalid("unknown job status %q", status)
	}
	rows, err := s.queries.ListTranslationJobs(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	out := make([]model.TranslationJob, 0, len(rows))
	for _, r := range rows {
		out = append(out, jobFromStore(r))
	}
	return out, nil
}

// Counts returns the number of jobs per status.
func (s *JobService) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 4)
	for _, status := range []string{model.JobStatusPending, model.JobStatusProcessing, model.JobStatusDone, model.JobStatusDead} {
		n, err := s.queries.CountTranslationJobsByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("counting %s jobs: %w", status, err)
		}
		counts[status] = n
	}
	return counts, nil
}

// Retry puts a dead or done job back in the queue with a fresh attempt
// budget and marks its target pending again.
func (s *JobService) Retry(ctx context.Context, id int64) (model.TranslationJob, error) {
	var job store.TranslationJob
	err := store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		current, err := q.GetTranslationJob(ctx, id)
		if err != nil {
			return err
		}
		n, err := q.RequeueTranslationJob(ctx, id, time.Now().UTC())
		if err != nil {
			return err
		}
		if n == 0 {
			return invalid("job %d is %s and cannot be retried", id, current.Status)
		}
		if err := q.SetTranslationState(ctx, current.TargetPostID, model.SyncStatusPending, "", sql.NullTime{}); err != nil {
			return err
		}
		job, err = q.GetTranslationJob(ctx, id)
		return err
	})
	if err != nil {
		if isInvalid(err) {
			return model.TranslationJob{}, err
		}
		return model.TranslationJob{}, notFound(err, "translation job")
	}

	if s.notifier != nil {
		s.notifier.Enqueue(job.ID)
	}
	s.cache.Revalidate(ctx, cache.PathSeoPosts)
	return jobFromStore(job), nil
}
