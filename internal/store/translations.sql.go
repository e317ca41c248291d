// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const translationColumns = `id, entity_type, entity_id, field, value, language_id, created_at, updated_at`

func scanTranslation(row interface{ Scan(...any) error }) (Translation, error) {
	var i Translation
	err := row.Scan(
		&i.ID,
		&i.EntityType,
		&i.EntityID,
		&i.Field,
		&i.Value,
		&i.LanguageID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) listTranslations(ctx context.Context, query string, args ...any) ([]Translation, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []Translation
	for rows.Next() {
		i, err := scanTranslation(rows)
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

const getTranslation = `-- name: GetTranslation :one
SELECT ` + translationColumns + ` FROM translations
WHERE entity_type = ? AND entity_id = ? AND field = ? AND language_id = ?
`

type TranslationKey struct {
	EntityType string
	EntityID   int64
	Field      string
	LanguageID int64
}

func (q *Queries) GetTranslation(ctx context.Context, arg TranslationKey) (Translation, error) {
	return scanTranslation(q.db.QueryRowContext(ctx, getTranslation,
		arg.EntityType, arg.EntityID, arg.Field, arg.LanguageID))
}

const getTranslationByID = `-- name: GetTranslationByID :one
SELECT ` + translationColumns + ` FROM translations WHERE id = ?
`

func (q *Queries) GetTranslationByID(ctx context.Context, id int64) (Translation, error) {
	return scanTranslation(q.db.QueryRowContext(ctx, getTranslationByID, id))
}

const listTranslationsForEntity = `-- name: ListTranslationsForEntity :many
SELECT ` + translationColumns + ` FROM translations
WHERE entity_type = ? AND entity_id = ?
ORDER BY field, language_id
`

func (q *Queries) ListTranslationsForEntity(ctx context.Context, entityType string, entityID int64) ([]Translation, error) {
	return q.listTranslations(ctx, listTranslationsForEntity, entityType, entityID)
}

const listTranslationsByType = `-- name: ListTranslationsByType :many
SELECT ` + translationColumns + ` FROM translations
WHERE entity_type = ?
ORDER BY entity_id, field, language_id
LIMIT ? OFFSET ?
`

type ListTranslationsByTypeParams struct {
	EntityType string
	Limit      int64
	Offset     int64
}

func (q *Queries) ListTranslationsByType(ctx context.Context, arg ListTranslationsByTypeParams) ([]Translation, error) {
	return q.listTranslations(ctx, listTranslationsByType, arg.EntityType, arg.Limit, arg.Offset)
}

const upsertTranslation = `-- name: UpsertTranslation :one
INSERT INTO translations (entity_type, entity_id, field, value, language_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (entity_type, entity_id, field, language_id)
DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
RETURNING ` + translationColumns

type WriteTranslationParams struct {
	EntityType string
	EntityID   int64
	Field      string
	Value      string
	LanguageID int64
	Now        time.Time
}

// UpsertTranslation creates the row or overwrites its value.
func (q *Queries) UpsertTranslation(ctx context.Context, arg WriteTranslationParams) (Translation, error) {
	return scanTranslation(q.db.QueryRowContext(ctx, upsertTranslation,
		arg.EntityType, arg.EntityID, arg.Field, arg.Value, arg.LanguageID, arg.Now, arg.Now))
}

const insertTranslationIfAbsent = `-- name: InsertTranslationIfAbsent :execrows
INSERT INTO translations (entity_type, entity_id, field, value, language_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (entity_type, entity_id, field, language_id) DO NOTHING
`

// InsertTranslationIfAbsent returns 1 when a row was created and 0 when one already existed.
func (q *Queries) InsertTranslationIfAbsent(ctx context.Context, arg WriteTranslationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertTranslationIfAbsent,
		arg.EntityType, arg.EntityID, arg.Field, arg.Value, arg.LanguageID, arg.Now, arg.Now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateTranslationValue = `-- name: UpdateTranslationValue :one
UPDATE translations SET value = ?, updated_at = ? WHERE id = ?
RETURNING ` + translationColumns

func (q *Queries) UpdateTranslationValue(ctx context.Context, id int64, value string, now time.Time) (Translation, error) {
	return scanTranslation(q.db.QueryRowContext(ctx, updateTranslationValue, value, now, id))
}

const deleteTranslationsForEntity = `-- name: DeleteTranslationsForEntity :exec
DELETE FROM translations WHERE entity_type = ? AND entity_id = ?
`

func (q *Queries) DeleteTranslationsForEntity(ctx context.Context, entityType string, entityID int64) error {
	_, err := q.db.ExecContext(ctx, deleteTranslationsForEntity, entityType, entityID)
	return err
}

const countTranslationsForKey = `-- name: CountTranslationsForField :one
SELECT COUNT(*) FROM translations WHERE entity_type = ? AND entity_id = ? AND field = ?
`

func (q *Queries) CountTranslationsForField(ctx context.Context, entityType string, entityID int64, field string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countTranslationsForKey, entityType, entityID, field).Scan(&count)
	return count, err
}
