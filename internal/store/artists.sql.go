// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const artistColumns = `id, name, slug, biography, short_description, avatar_url, wallet_address, created_at, updated_at`

func scanArtist(row interface{ Scan(...any) error }) (Artist, error) {
	var i Artist
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.Biography,
		&i.ShortDescription,
		&i.AvatarUrl,
		&i.WalletAddress,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listArtists = `-- name: ListArtists :many
SELECT ` + artistColumns + ` FROM artists ORDER BY name, id
`

func (q *Queries) ListArtists(ctx context.Context) ([]Artist, error) {
	rows, err := q.db.QueryContext(ctx, listArtists)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []Artist
	for rows.Next() {
		i, err := scanArtist(rows)
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

const getArtistByID = `-- name: GetArtistByID :one
SELECT ` + artistColumns + ` FROM artists WHERE id = ?
`

func (q *Queries) GetArtistByID(ctx context.Context, id int64) (Artist, error) {
	return scanArtist(q.db.QueryRowContext(ctx, getArtistByID, id))
}

const artistSlugExists = `-- name: ArtistSlugExists :one
SELECT COUNT(*) FROM artists WHERE slug = ? AND id != ?
`

func (q *Queries) ArtistSlugExists(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, artistSlugExists, slug, excludeID).Scan(&count)
	return count, err
}

const createArtist = `-- name: CreateArtist :one
INSERT INTO artists (name, slug, biography, short_description, avatar_url, wallet_address, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + artistColumns

type CreateArtistParams struct {
	Name             string
	Slug             string
	Biography        sql.NullString
	ShortDescription sql.NullString
	AvatarUrl        string
	WalletAddress    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (q *Queries) CreateArtist(ctx context.Context, arg CreateArtistParams) (Artist, error) {
	return scanArtist(q.db.QueryRowContext(ctx, createArtist,
		arg.Name,
		arg.Slug,
		arg.Biography,
		arg.ShortDescription,
		arg.AvatarUrl,
		arg.WalletAddress,
		arg.CreatedAt,
		arg.UpdatedAt,
	))
}

const updateArtist = `-- name: UpdateArtist :one
UPDATE artists SET name = ?, slug = ?, biography = ?, short_description = ?, avatar_url = ?,
    wallet_address = ?, updated_at = ?
WHERE id = ?
RETURNING ` + artistColumns

type UpdateArtistParams struct {
	Name             string
	Slug             string
	Biography        sql.NullString
	ShortDescription sql.NullString
	AvatarUrl        string
	WalletAddress    string
	UpdatedAt        time.Time
	ID               int64
}

func (q *Queries) UpdateArtist(ctx context.Context, arg UpdateArtistParams) (Artist, error) {
	return scanArtist(q.db.QueryRowContext(ctx, updateArtist,
		arg.Name,
		arg.Slug,
		arg.Biography,
		arg.ShortDescription,
		arg.AvatarUrl,
		arg.WalletAddress,
		arg.UpdatedAt,
		arg.ID,
	))
}

const deleteArtist = `-- name: DeleteArtist :execrows
DELETE FROM artists WHERE id = ?
`

func (q *Queries) DeleteArtist(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteArtist, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Landing artists

const landingArtistColumns = `id, artist_id, title, description, image_url, position, created_at, updated_at`

func scanLandingArtist(row interface{ Scan(...any) error }) (LandingArtist, error) {
	var i LandingArtist
	err := row.Scan(
		&i.ID,
		&i.ArtistID,
		&i.Title,
		&i.Description,
		&i.ImageUrl,
		&i.Position,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listLandingArtists = `-- name: ListLandingArtists :many
SELECT ` + landingArtistColumns + ` FROM landing_artists ORDER BY position, id
`

func (q *Queries) ListLandingArtists(ctx context.Context) ([]LandingArtist, error) {
	rows, err := q.db.QueryContext(ctx, listLandingArtists)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []LandingArtist
	for rows.Next() {
		i, err := scanLandingArtist(rows)
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

const listLandingArtistIDsByArtist = `-- name: ListLandingArtistIDsByArtist :many
SELECT id FROM landing_artists WHERE artist_id = ?
`

func (q *Queries) ListLandingArtistIDsByArtist(ctx context.Context, artistID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listLandingArtistIDsByArtist, artistID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const getLandingArtistByID = `-- name: GetLandingArtistByID :one
SELECT ` + landingArtistColumns + ` FROM landing_artists WHERE id = ?
`

func (q *Queries) GetLandingArtistByID(ctx context.Context, id int64) (LandingArtist, error) {
	return scanLandingArtist(q.db.QueryRowContext(ctx, getLandingArtistByID, id))
}

const createLandingArtist = `-- name: CreateLandingArtist :one
INSERT INTO landing_artists (artist_id, title, description, image_url, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + landingArtistColumns

type CreateLandingArtistParams struct {
	ArtistID    int64
	Title       sql.NullString
	Description sql.NullString
	ImageUrl    string
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateLandingArtist(ctx context.Context, arg CreateLandingArtistParams) (LandingArtist, error) {
	return scanLandingArtist(q.db.QueryRowContext(ctx, createLandingArtist,
		arg.ArtistID,
		arg.Title,
		arg.Description,
		arg.ImageUrl,
		arg.Position,
		arg.CreatedAt,
		arg.UpdatedAt,
	))
}

const updateLandingArtist = `-- name: UpdateLandingArtist :one
UPDATE landing_artists SET artist_id = ?, title = ?, description = ?, image_url = ?, position = ?, updated_at = ?
WHERE id = ?
RETURNING ` + landingArtistColumns

type UpdateLandingArtistParams struct {
	ArtistID    int64
	Title       sql.NullString
	Description sql.NullString
	ImageUrl    string
	Position    int64
	UpdatedAt   time.Time
	ID          int64
}

func (q *Queries) UpdateLandingArtist(ctx context.Context, arg UpdateLandingArtistParams) (LandingArtist, error) {
	return scanLandingArtist(q.db.QueryRowContext(ctx, updateLandingArtist,
		arg.ArtistID,
		arg.Title,
		arg.Description,
		arg.ImageUrl,
		arg.Position,
		arg.UpdatedAt,
		arg.ID,
	))
}

const deleteLandingArtist = `-- name: DeleteLandingArtist :execrows
DELETE FROM landing_artists WHERE id = ?
`

func (q *Queries) DeleteLandingArtist(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteLandingArtist, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Glossary

const glossaryColumns = `id, term, definition, created_at, updated_at`

func scanGlossaryItem(row interface{ Scan(...any) error }) (GlossaryItem, error) {
	var i GlossaryItem
	err := row.Scan(&i.ID, &i.Term, &i.Definition, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listGlossaryItems = `-- name: ListGlossaryItems :many
SELECT ` + glossaryColumns + ` FROM glossary_items ORDER BY term COLLATE NOCASE, id
`

func (q *Queries) ListGlossaryItems(ctx context.Context) ([]GlossaryItem, error) {
	rows, err := q.db.QueryContext(ctx, listGlossaryItems)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []GlossaryItem
	for rows.Next() {
		i, err := scanGlossaryItem(rows)
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

const getGlossaryItemByID = `-- name: GetGlossaryItemByID :one
SELECT ` + glossaryColumns + ` FROM glossary_items WHERE id = ?
`

func (q *Queries) GetGlossaryItemByID(ctx context.Context, id int64) (GlossaryItem, error) {
	return scanGlossaryItem(q.db.QueryRowContext(ctx, getGlossaryItemByID, id))
}

const createGlossaryItem = `-- name: CreateGlossaryItem :one
INSERT INTO glossary_items (term, definition, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING ` + glossaryColumns

func (q *Queries) CreateGlossaryItem(ctx context.Context, term, definition string, now time.Time) (GlossaryItem, error) {
	return scanGlossaryItem(q.db.QueryRowContext(ctx, createGlossaryItem, term, definition, now, now))
}

const updateGlossaryItem = `-- name: UpdateGlossaryItem :one
UPDATE glossary_items SET term = ?, definition = ?, updated_at = ? WHERE id = ?
RETURNING ` + glossaryColumns

func (q *Queries) UpdateGlossaryItem(ctx context.Context, id int64, term, definition string, now time.Time) (GlossaryItem, error) {
	return scanGlossaryItem(q.db.QueryRowContext(ctx, updateGlossaryItem, term, definition, now, id))
}

const deleteGlossaryItem = `-- name: DeleteGlossaryItem :execrows
DELETE FROM glossary_items WHERE id = ?
`

func (q *Queries) DeleteGlossaryItem(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteGlossaryItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
