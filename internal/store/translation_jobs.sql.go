// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const translationJobColumns = `id, batch_id, kind, pivot_post_id, target_post_id, changed_fields, status, attempts,
    last_error, next_attempt_at, completed_at, created_at, updated_at`

func scanTranslationJob(row interface{ Scan(...any) error }) (TranslationJob, error) {
	var i TranslationJob
	err := row.Scan(
		&i.ID,
		&i.BatchID,
		&i.Kind,
		&i.PivotPostID,
		&i.TargetPostID,
		&i.ChangedFields,
		&i.Status,
		&i.Attempts,
		&i.LastError,
		&i.NextAttemptAt,
		&i.CompletedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) listTranslationJobs(ctx context.Context, query string, args ...any) ([]TranslationJob, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []TranslationJob
	for rows.Next() {
		i, err := scanTranslationJob(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createTranslationJob = `-- name: CreateTranslationJob :one
INSERT INTO translation_jobs (batch_id, kind, pivot_post_id, target_post_id, changed_fields, status, attempts,
    next_attempt_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, 'pending', 0, ?, ?, ?)
RETURNING ` + translationJobColumns

type CreateTranslationJobParams struct {
	BatchID       string
	Kind          string
	PivotPostID   int64
	TargetPostID  int64
	ChangedFields string
	CreatedAt     time.Time
}

func (q *Queries) CreateTranslationJob(ctx context.Context, arg CreateTranslationJobParams) (TranslationJob, error) {
	return scanTranslationJob(q.db.QueryRowContext(ctx, createTranslationJob,
		arg.BatchID,
		arg.Kind,
		arg.PivotPostID,
		arg.TargetPostID,
		arg.ChangedFields,
		arg.CreatedAt,
		arg.CreatedAt,
		arg.CreatedAt,
	))
}

const getTranslationJob = `-- name: GetTranslationJob :one
SELECT ` + translationJobColumns + ` FROM translation_jobs WHERE id = ?
`

func (q *Queries) GetTranslationJob(ctx context.Context, id int64) (TranslationJob, error) {
	return scanTranslationJob(q.db.QueryRowContext(ctx, getTranslationJob, id))
}

const listDueTranslationJobs = `-- name: ListDueTranslationJobs :many
SELECT ` + translationJobColumns + ` FROM translation_jobs
WHERE status = 'pending' AND next_attempt_at <= ?
ORDER BY next_attempt_at, id
LIMIT ?
`

func (q *Queries) ListDueTranslationJobs(ctx context.Context, now time.Time, limit int64) ([]TranslationJob, error) {
	return q.listTranslationJobs(ctx, listDueTranslationJobs, now, limit)
}

const listTranslationJobs = `-- name: ListTranslationJobs :many
SELECT ` + translationJobColumns + ` FROM translation_jobs
WHERE (? = '' OR status = ?)
ORDER BY id DESC
LIMIT ? OFFSET ?
`

func (q *Queries) ListTranslationJobs(ctx context.Context, status string, limit, offset int64) ([]TranslationJob, error) {
	return q.listTranslationJobs(ctx, listTranslationJobs, status, status, limit, offset)
}

const hasNewerJobForTarget = `-- name: HasNewerJobForTarget :one
SELECT EXISTS (SELECT 1 FROM translation_jobs WHERE target_post_id = ? AND id > ?)
`

// HasNewerJobForTarget reports whether a job queued after id exists for the
// same target, whatever its state.
func (q *Queries) HasNewerJobForTarget(ctx context.Context, targetPostID, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, hasNewerJobForTarget, targetPostID, id).Scan(&exists)
	return exists, err
}

const claimTranslationJob = `-- name: ClaimTranslationJob :execrows
UPDATE translation_jobs SET status = 'processing', updated_at = ?
WHERE id = ? AND status = 'pending'
`

// ClaimTranslationJob moves a pending job to processing. It returns false
// when another worker got there first.
func (q *Queries) ClaimTranslationJob(ctx context.Context, id int64, now time.Time) (bool, error) {
	result, err := q.db.ExecContext(ctx, claimTranslationJob, now, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

const markTranslationJobDone = `-- name: MarkTranslationJobDone :exec
UPDATE translation_jobs SET status = 'done', attempts = attempts + 1, last_error = '', completed_at = ?, updated_at = ?
WHERE id = ?
`

func (q *Queries) MarkTranslationJobDone(ctx context.Context, id int64, now time.Time) error {
	_, err := q.db.ExecContext(ctx, markTranslationJobDone, now, now, id)
	return err
}

const markTranslationJobRetry = `-- name: MarkTranslationJobRetry :exec
UPDATE translation_jobs SET status = 'pending', attempts = attempts + 1, last_error = ?, next_attempt_at = ?, updated_at = ?
WHERE id = ?
`

func (q *Queries) MarkTranslationJobRetry(ctx context.Context, id int64, errMsg string, next, now time.Time) error {
	_, err := q.db.ExecContext(ctx, markTranslationJobRetry, errMsg, next, now, id)
	return err
}

const markTranslationJobDead = `-- name: MarkTranslationJobDead :exec
UPDATE translation_jobs SET status = 'dead', attempts = attempts + 1, last_error = ?, updated_at = ?
WHERE id = ?
`

func (q *Queries) MarkTranslationJobDead(ctx context.Context, id int64, errMsg string, now time.Time) error {
	_, err := q.db.ExecContext(ctx, markTranslationJobDead, errMsg, now, id)
	return err
}

const requeueTranslationJob = `-- name: RequeueTranslationJob :execrows
UPDATE translation_jobs SET status = 'pending', attempts = 0, next_attempt_at = ?, updated_at = ?
WHERE id = ? AND status IN ('dead', 'done')
`

// RequeueTranslationJob re-drives a finished job from scratch.
func (q *Queries) RequeueTranslationJob(ctx context.Context, id int64, now time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, requeueTranslationJob, now, now, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const supersedePendingJobs = `-- name: SupersedePendingJobs :exec
UPDATE translation_jobs SET status = 'done', last_error = 'superseded', completed_at = ?, updated_at = ?
WHERE target_post_id = ? AND status = 'pending'
`

// SupersedePendingJobs retires queued work for a target that a newer job replaces.
func (q *Queries) SupersedePendingJobs(ctx context.Context, targetPostID int64, now time.Time) error {
	_, err := q.db.ExecContext(ctx, supersedePendingJobs, now, now, targetPostID)
	return err
}

const resetProcessingJobs = `-- name: ResetProcessingJobs :execrows
UPDATE translation_jobs SET status = 'pending', updated_at = ? WHERE status = 'processing'
`

// ResetProcessingJobs returns jobs abandoned by a previous process to the queue.
func (q *Queries) ResetProcessingJobs(ctx context.Context, now time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, resetProcessingJobs, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countTranslationJobsByStatus = `-- name: CountTranslationJobsByStatus :one
SELECT COUNT(*) FROM translation_jobs WHERE status = ?
`

func (q *Queries) CountTranslationJobsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countTranslationJobsByStatus, status).Scan(&count)
	return count, err
}

