// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const insertTagIfAbsent = `-- name: InsertTagIfAbsent :exec
INSERT INTO seo_tags (name, slug, created_at) VALUES (?, ?, ?)
ON CONFLICT (slug) DO NOTHING
`

// InsertTagIfAbsent keeps the name of the first writer for a slug.
func (q *Queries) InsertTagIfAbsent(ctx context.Context, name, slug string, now time.Time) error {
	_, err := q.db.ExecContext(ctx, insertTagIfAbsent, name, slug, now)
	return err
}

const getTagBySlug = `-- name: GetTagBySlug :one
SELECT id, name, slug, created_at FROM seo_tags WHERE slug = ?
`

func (q *Queries) GetTagBySlug(ctx context.Context, slug string) (SeoTag, error) {
	var i SeoTag
	err := q.db.QueryRowContext(ctx, getTagBySlug, slug).Scan(&i.ID, &i.Name, &i.Slug, &i.CreatedAt)
	return i, err
}

const listTagsForPost = `-- name: ListTagsForPost :many
SELECT t.id, t.name, t.slug, t.created_at FROM seo_tags t
INNER JOIN seo_post_tags pt ON pt.tag_id = t.id
WHERE pt.post_id = ?
ORDER BY t.slug
`

func (q *Queries) ListTagsForPost(ctx context.Context, postID int64) ([]SeoTag, error) {
	rows, err := q.db.QueryContext(ctx, listTagsForPost, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []SeoTag
	for rows.Next() {
		var i SeoTag
		if err := rows.Scan(&i.ID, &i.Name, &i.Slug, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deletePostTags = `-- name: DeletePostTags :exec
DELETE FROM seo_post_tags WHERE post_id = ?
`

func (q *Queries) DeletePostTags(ctx context.Context, postID int64) error {
	_, err := q.db.ExecContext(ctx, deletePostTags, postID)
	return err
}

const addPostTag = `-- name: AddPostTag :exec
INSERT INTO seo_post_tags (post_id, tag_id) VALUES (?, ?)
ON CONFLICT (post_id, tag_id) DO NOTHING
`

func (q *Queries) AddPostTag(ctx context.Context, postID, tagID int64) error {
	_, err := q.db.ExecContext(ctx, addPostTag, postID, tagID)
	return err
}

const countTags = `-- name: CountTags :one
SELECT COUNT(*) FROM seo_tags
`

func (q *Queries) CountTags(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countTags).Scan(&count)
	return count, err
}
