// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const presaleArtworkColumns = `id, artist_id, title, description, image_url, price, currency, sort_order, created_at, updated_at`

func scanPresaleArtwork(row interface{ Scan(...any) error }) (PresaleArtwork, error) {
	var i PresaleArtwork
	err := row.Scan(
		&i.ID,
		&i.ArtistID,
		&i.Title,
		&i.Description,
		&i.ImageUrl,
		&i.Price,
		&i.Currency,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listPresaleArtworks = `-- name: ListPresaleArtworks :many
SELECT ` + presaleArtworkColumns + ` FROM presale_artworks ORDER BY sort_order, id
`

func (q *Queries) ListPresaleArtworks(ctx context.Context) ([]PresaleArtwork, error) {
	rows, err := q.db.QueryContext(ctx, listPresaleArtworks)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []PresaleArtwork
	for rows.Next() {
		i, err := scanPresaleArtwork(rows)
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

const getPresaleArtworkByID = `-- name: GetPresaleArtworkByID :one
SELECT ` + presaleArtworkColumns + ` FROM presale_artworks WHERE id = ?
`

func (q *Queries) GetPresaleArtworkByID(ctx context.Context, id int64) (PresaleArtwork, error) {
	return scanPresaleArtwork(q.db.QueryRowContext(ctx, getPresaleArtworkByID, id))
}

const maxPresaleArtworkOrder = `-- name: MaxPresaleArtworkOrder :one
SELECT COALESCE(MAX(sort_order), 0) FROM presale_artworks
`

func (q *Queries) MaxPresaleArtworkOrder(ctx context.Context) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx, maxPresaleArtworkOrder).Scan(&max)
	return max, err
}

const createPresaleArtwork = `-- name: CreatePresaleArtwork :one
INSERT INTO presale_artworks (artist_id, title, description, image_url, price, currency, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + presaleArtworkColumns

type CreatePresaleArtworkParams struct {
	ArtistID    sql.NullInt64
	Title       string
	Description sql.NullString
	ImageUrl    string
	Price       string
	Currency    string
	SortOrder   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreatePresaleArtwork(ctx context.Context, arg CreatePresaleArtworkParams) (PresaleArtwork, error) {
	return scanPresaleArtwork(q.db.QueryRowContext(ctx, createPresaleArtwork,
		arg.ArtistID,
		arg.Title,
		arg.Description,
		arg.ImageUrl,
		arg.Price,
		arg.Currency,
		arg.SortOrder,
		arg.CreatedAt,
		arg.UpdatedAt,
	))
}

const updatePresaleArtwork = `-- name: UpdatePresaleArtwork :one
UPDATE presale_artworks SET artist_id = ?, title = ?, description = ?, image_url = ?, price = ?, currency = ?, updated_at = ?
WHERE id = ?
RETURNING ` + presaleArtworkColumns

type UpdatePresaleArtworkParams struct {
	ArtistID    sql.NullInt64
	Title       string
	Description sql.NullString
	ImageUrl    string
	Price       string
	Currency    string
	UpdatedAt   time.Time
	ID          int64
}

func (q *Queries) UpdatePresaleArtwork(ctx context.Context, arg UpdatePresaleArtworkParams) (PresaleArtwork, error) {
	return scanPresaleArtwork(q.db.QueryRowContext(ctx, updatePresaleArtwork,
		arg.ArtistID,
		arg.Title,
		arg.Description,
		arg.ImageUrl,
		arg.Price,
		arg.Currency,
		arg.UpdatedAt,
		arg.ID,
	))
}

const setPresaleArtworkOrder = `-- name: SetPresaleArtworkOrder :exec
UPDATE presale_artworks SET sort_order = ?, updated_at = ? WHERE id = ?
`

func (q *Queries) SetPresaleArtworkOrder(ctx context.Context, id, order int64, now time.Time) error {
	_, err := q.db.ExecContext(ctx, setPresaleArtworkOrder, order, now, id)
	return err
}

const deletePresaleArtwork = `-- name: DeletePresaleArtwork :exec
DELETE FROM presale_artworks WHERE id = ?
`

func (q *Queries) DeletePresaleArtwork(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePresaleArtwork, id)
	return err
}

const shiftPresaleArtworkOrdersAfter = `-- name: ShiftPresaleArtworkOrdersAfter :exec
UPDATE presale_artworks SET sort_order = sort_order - 1, updated_at = ? WHERE sort_order > ?
`

// ShiftPresaleArtworkOrdersAfter closes the gap left by a deleted artwork.
func (q *Queries) ShiftPresaleArtworkOrdersAfter(ctx context.Context, order int64, now time.Time) error {
	_, err := q.db.ExecContext(ctx, shiftPresaleArtworkOrdersAfter, now, order)
	return err
}
