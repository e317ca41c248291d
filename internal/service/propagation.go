// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/seo"
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/translator"
)

// RetryPolicy controls how failed propagation jobs are retried.
type RetryPolicy struct {
	MaxAttempts    int64
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryPolicy returns 5 attempts backing off from 1 minute to 24 hours.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    5,
		InitialBackoff: time.Minute,
		MaxBackoff:     24 * time.Hour,
	}
}

// Delay returns the wait before the next try after attempt failures.
// Attempt 1 = 1 min, attempt 2 = 2 min, attempt 3 = 4 min, and so on.
func (p RetryPolicy) Delay(attempt int64) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}
	backoff := p.InitialBackoff
	for i := int64(1); i < attempt; i++ {
		backoff *= 2
		if backoff >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	if backoff > p.MaxBackoff {
		backoff = p.MaxBackoff
	}
	return backoff
}

// errSuperseded ends a job whose target already has newer queued work.
var errSuperseded = errors.New("superseded by a newer job")

// Propagator executes translation jobs: it translates the current pivot
// content into the target row's language, regenerates the target's derived
// artifacts and overwrites the target row.
type Propagator struct {
	db         *sql.DB
	queries    *store.Queries
	cache      *cache.Manager
	translator translator.Translator
	site       seo.SiteConfig
	policy     RetryPolicy
	logger     *slog.Logger
}

// NewPropagator creates a new Propagator.
func NewPropagator(db *sql.DB, cm *cache.Manager, tr translator.Translator, site seo.SiteConfig, policy RetryPolicy, logger *slog.Logger) *Propagator {
	if logger == nil {
		logger = slog.Default()
	}
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy()
	}
	return &Propagator{
		db:         db,
		queries:    store.New(db),
		cache:      cm,
		translator: tr,
		site:       site,
		policy:     policy,
		logger:     logger,
	}
}

// DueJobIDs returns pending jobs whose next attempt time has passed.
func (p *Propagator) DueJobIDs(ctx context.Context, limit int64) ([]int64, error) {
	jobs, err := p.queries.ListDueTranslationJobs(ctx, time.Now().UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("listing due jobs: %w", err)
	}
	ids := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids, nil
}

// RecoverAbandoned returns jobs left in processing by a previous run to the
// queue. Call it once before workers start.
func (p *Propagator) RecoverAbandoned(ctx context.Context) (int64, error) {
	n, err := p.queries.ResetProcessingJobs(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("resetting abandoned jobs: %w", err)
	}
	if n > 0 {
		p.logger.Info("requeued abandoned translation jobs", "count", n)
	}
	return n, nil
}

// bookkeepingTimeout bounds the state writes that follow a failed run.
const bookkeepingTimeout = 10 * time.Second

// Process runs one job. A job that another worker already claimed is
// skipped. Failures, panics included, are recorded on the job and the
// target row before the error is returned.
func (p *Propagator) Process(ctx context.Context, jobID int64) (err error) {
	job, err := p.queries.GetTranslationJob(ctx, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading job %d: %w", jobID, err)
	}

	claimed, err := p.queries.ClaimTranslationJob(ctx, jobID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("claiming job %d: %w", jobID, err)
	}
	if !claimed {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %d panicked: %v", jobID, r)
			p.fail(ctx, job, err)
		}
	}()

	err = p.propagate(ctx, job)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errSuperseded), errors.Is(err, sql.ErrNoRows):
		// Newer job queued, or the group was deleted mid-flight.
		bctx, cancel := bookkeepingContext(ctx)
		defer cancel()
		if err := p.queries.MarkTranslationJobDone(bctx, job.ID, time.Now().UTC()); err != nil {
			return fmt.Errorf("closing job %d: %w", job.ID, err)
		}
		return nil
	default:
		p.fail(ctx, job, err)
		return err
	}
}

// bookkeepingContext outlives ctx, so state can still be written after the
// job's own deadline has passed.
func bookkeepingContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), bookkeepingTimeout)
}

func (p *Propagator) propagate(ctx context.Context, job store.TranslationJob) error {
	pivot, err := p.queries.GetSeoPostByID(ctx, job.PivotPostID)
	if err != nil {
		return err
	}
	target, err := p.queries.GetSeoPostByID(ctx, job.TargetPostID)
	if err != nil {
		return err
	}
	if err := checkSuperseded(ctx, p.queries, job); err != nil {
		return err
	}

	source, err := p.cache.Languages.ByID(ctx, pivot.LanguageID)
	if err != nil {
		return fmt.Errorf("loading source language: %w", err)
	}
	lang, err := p.cache.Languages.ByID(ctx, target.LanguageID)
	if err != nil {
		return fmt.Errorf("loading target language: %w", err)
	}

	src := postFromStore(pivot, source.Code)
	fields, err := p.translator.TranslatePost(ctx, src.Fields(), translatorLanguage(source), translatorLanguage(lang))
	if err != nil {
		return fmt.Errorf("translating post %d to %s: %w", pivot.ID, lang.Code, err)
	}

	now := time.Now().UTC()
	content := buildContent(&p.site, fields, lang.Code, target.Slug, pivot.MainImageUrl, target.PublishedAt, now)

	err = store.RunInTx(ctx, p.db, func(q *store.Queries) error {
		// The pivot may have been edited while the translator ran.
		if err := checkSuperseded(ctx, q, job); err != nil {
			return err
		}
		if _, err := q.UpdateSeoPostContent(ctx, target.ID, content, now); err != nil {
			return err
		}
		if _, err := linkPostTags(ctx, q, target.ID, fields.ListTags, now); err != nil {
			return err
		}
		if err := q.SetTranslationState(ctx, target.ID, model.SyncStatusSynced, "", sql.NullTime{Time: now, Valid: true}); err != nil {
			return err
		}
		return q.MarkTranslationJobDone(ctx, job.ID, now)
	})
	if err != nil {
		return fmt.Errorf("writing translation %d: %w", target.ID, err)
	}

	p.logger.Info("post translation synced",
		"category", model.EventCategoryTranslation,
		"job_id", job.ID,
		"batch_id", job.BatchID,
		"post_id", target.ID,
		"language", lang.Code)
	p.cache.Revalidate(ctx, cache.PathSeoPosts, cache.PathTags)
	return nil
}

// checkSuperseded returns errSuperseded when a later edit of the pivot
// queued another job for the same target.
func checkSuperseded(ctx context.Context, q *store.Queries, job store.TranslationJob) error {
	newer, err := q.HasNewerJobForTarget(ctx, job.TargetPostID, job.ID)
	if err != nil {
		return err
	}
	if newer {
		return errSuperseded
	}
	return nil
}

// fail schedules a retry, or buries the job and flags the target row as
// failed once attempts are exhausted or the error is permanent.
func (p *Propagator) fail(ctx context.Context, job store.TranslationJob, cause error) {
	ctx, cancel := bookkeepingContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	msg := cause.Error()
	attempts := job.Attempts + 1

	if translator.IsPermanent(cause) || attempts >= p.policy.MaxAttempts {
		if err := p.queries.MarkTranslationJobDead(ctx, job.ID, msg, now); err != nil {
			p.logger.Error("failed to mark translation job dead", "job_id", job.ID, "error", err)
		}
		if err := p.queries.SetTranslationState(ctx, job.TargetPostID, model.SyncStatusFailed, msg, sql.NullTime{}); err != nil {
			p.logger.Error("failed to flag translation as failed", "post_id", job.TargetPostID, "error", err)
		}
		p.logger.Error("post translation failed permanently",
			"category", model.EventCategoryTranslation,
			"job_id", job.ID,
			"post_id", job.TargetPostID,
			"attempts", attempts,
			"error", msg)
		p.cache.Revalidate(ctx, cache.PathSeoPosts)
		return
	}

	backoff := p.policy.Delay(attempts)
	next := now.Add(backoff)
	if err := p.queries.MarkTranslationJobRetry(ctx, job.ID, msg, next, now); err != nil {
		p.logger.Error("failed to schedule translation retry", "job_id", job.ID, "error", err)
		return
	}
	p.logger.Warn("post translation failed, retry scheduled",
		"category", model.EventCategoryTranslation,
		"job_id", job.ID,
		"post_id", job.TargetPostID,
		"attempt", attempts,
		"next_attempt_at", next.Format(time.RFC3339),
		"backoff", backoff.String(),
		"error", msg)
}
