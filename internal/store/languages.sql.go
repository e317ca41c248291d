// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

const languageColumns = `id, code, name, native_name, is_default, direction, position, created_at`

func scanLanguage(row interface{ Scan(...any) error }) (Language, error) {
	var i Language
	err := row.Scan(
		&i.ID,
		&i.Code,
		&i.Name,
		&i.NativeName,
		&i.IsDefault,
		&i.Direction,
		&i.Position,
		&i.CreatedAt,
	)
	return i, err
}

const listLanguages = `-- name: ListLanguages :many
SELECT ` + languageColumns + ` FROM languages ORDER BY position, id
`

func (q *Queries) ListLanguages(ctx context.Context) ([]Language, error) {
	rows, err := q.db.QueryContext(ctx, listLanguages)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []Language
	for rows.Next() {
		i, err := scanLanguage(rows)
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

const getLanguageByID = `-- name: GetLanguageByID :one
SELECT ` + languageColumns + ` FROM languages WHERE id = ?
`

func (q *Queries) GetLanguageByID(ctx context.Context, id int64) (Language, error) {
	return scanLanguage(q.db.QueryRowContext(ctx, getLanguageByID, id))
}

const getLanguageByCode = `-- name: GetLanguageByCode :one
SELECT ` + languageColumns + ` FROM languages WHERE code = ?
`

func (q *Queries) GetLanguageByCode(ctx context.Context, code string) (Language, error) {
	return scanLanguage(q.db.QueryRowContext(ctx, getLanguageByCode, code))
}

const getDefaultLanguage = `-- name: GetDefaultLanguage :one
SELECT ` + languageColumns + ` FROM languages WHERE is_default = 1 LIMIT 1
`

func (q *Queries) GetDefaultLanguage(ctx context.Context) (Language, error) {
	return scanLanguage(q.db.QueryRowContext(ctx, getDefaultLanguage))
}

const countLanguages = `-- name: CountLanguages :one
SELECT COUNT(*) FROM languages
`

func (q *Queries) CountLanguages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countLanguages).Scan(&count)
	return count, err
}

const createLanguage = `-- name: CreateLanguage :one
INSERT INTO languages (code, name, native_name, is_default, direction, position)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + languageColumns

type CreateLanguageParams struct {
	Code       string
	Name       string
	NativeName string
	IsDefault  bool
	Direction  string
	Position   int64
}

func (q *Queries) CreateLanguage(ctx context.Context, arg CreateLanguageParams) (Language, error) {
	return scanLanguage(q.db.QueryRowContext(ctx, createLanguage,
		arg.Code,
		arg.Name,
		arg.NativeName,
		arg.IsDefault,
		arg.Direction,
		arg.Position,
	))
}
