// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

const seoPostColumns = `id, language_id, original_post_id, title, meta_description, meta_keywords, list_tags, slug,
    content, excerpt, status, pinned, main_image_url, main_image_alt, main_image_caption, generated_html, json_ld,
    generated_article_html, translation_status, translation_error, translated_at, published_at, created_at, updated_at`

func scanSeoPost(row interface{ Scan(...any) error }) (SeoPost, error) {
	var i SeoPost
	err := row.Scan(
		&i.ID,
		&i.LanguageID,
		&i.OriginalPostID,
		&i.Title,
		&i.MetaDescription,
		&i.MetaKeywords,
		&i.ListTags,
		&i.Slug,
		&i.Content,
		&i.Excerpt,
		&i.Status,
		&i.Pinned,
		&i.MainImageUrl,
		&i.MainImageAlt,
		&i.MainImageCaption,
		&i.GeneratedHtml,
		&i.JsonLd,
		&i.GeneratedArticleHtml,
		&i.TranslationStatus,
		&i.TranslationError,
		&i.TranslatedAt,
		&i.PublishedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) listSeoPosts(ctx context.Context, query string, args ...any) ([]SeoPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []SeoPost
	for rows.Next() {
		i, err := scanSeoPost(rows)
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

const getSeoPostByID = `-- name: GetSeoPostByID :one
SELECT ` + seoPostColumns + ` FROM seo_posts WHERE id = ?
`

func (q *Queries) GetSeoPostByID(ctx context.Context, id int64) (SeoPost, error) {
	return scanSeoPost(q.db.QueryRowContext(ctx, getSeoPostByID, id))
}

// SeoPostFilter narrows ListSeoPosts and CountSeoPosts. Zero values mean "any".
type SeoPostFilter struct {
	LanguageID int64
	Status     string
	PivotsOnly bool
}

func (f SeoPostFilter) where() (string, []any) {
	var conds []string
	var args []any
	if f.LanguageID != 0 {
		conds = append(conds, "language_id = ?")
		args = append(args, f.LanguageID)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.PivotsOnly {
		conds = append(conds, "original_post_id IS NULL")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListSeoPosts returns a page of posts, pinned first, newest first.
func (q *Queries) ListSeoPosts(ctx context.Context, f SeoPostFilter, limit, offset int64) ([]SeoPost, error) {
	where, args := f.where()
	query := "SELECT " + seoPostColumns + " FROM seo_posts" + where +
		" ORDER BY pinned DESC, created_at DESC, id DESC LIMIT ? OFFSET ?"
	return q.listSeoPosts(ctx, query, append(args, limit, offset)...)
}

func (q *Queries) CountSeoPosts(ctx context.Context, f SeoPostFilter) (int64, error) {
	where, args := f.where()
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM seo_posts"+where, args...).Scan(&count)
	return count, err
}

const listPostTranslations = `-- name: ListPostTranslations :many
SELECT ` + seoPostColumns + ` FROM seo_posts WHERE original_post_id = ? ORDER BY language_id
`

// ListPostTranslations returns the translation rows that belong to a pivot.
func (q *Queries) ListPostTranslations(ctx context.Context, pivotID int64) ([]SeoPost, error) {
	return q.listSeoPosts(ctx, listPostTranslations, pivotID)
}

const getPostTranslationForLanguage = `-- name: GetPostTranslationForLanguage :one
SELECT ` + seoPostColumns + ` FROM seo_posts WHERE original_post_id = ? AND language_id = ?
`

func (q *Queries) GetPostTranslationForLanguage(ctx context.Context, pivotID, languageID int64) (SeoPost, error) {
	return scanSeoPost(q.db.QueryRowContext(ctx, getPostTranslationForLanguage, pivotID, languageID))
}

const seoPostSlugExists = `-- name: SeoPostSlugExists :one
SELECT COUNT(*) FROM seo_posts WHERE slug = ? AND language_id = ? AND id != ?
`

func (q *Queries) SeoPostSlugExists(ctx context.Context, slug string, languageID, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, seoPostSlugExists, slug, languageID, excludeID).Scan(&count)
	return count, err
}

// SeoPostContent holds the editable and derived columns shared by create and update.
type SeoPostContent struct {
	Title                string
	MetaDescription      string
	MetaKeywords         string
	ListTags             string
	Slug                 string
	Content              string
	Excerpt              string
	MainImageUrl         string
	MainImageAlt         string
	MainImageCaption     string
	GeneratedHtml        string
	JsonLd               string
	GeneratedArticleHtml string
}

const createSeoPost = `-- name: CreateSeoPost :one
INSERT INTO seo_posts (language_id, original_post_id, title, meta_description, meta_keywords, list_tags, slug,
    content, excerpt, status, pinned, main_image_url, main_image_alt, main_image_caption, generated_html, json_ld,
    generated_article_html, translation_status, translated_at, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + seoPostColumns

type CreateSeoPostParams struct {
	LanguageID        int64
	OriginalPostID    sql.NullInt64
	Status            string
	Pinned            bool
	TranslationStatus string
	TranslatedAt      sql.NullTime
	PublishedAt       sql.NullTime
	CreatedAt         time.Time
	SeoPostContent
}

func (q *Queries) CreateSeoPost(ctx context.Context, arg CreateSeoPostParams) (SeoPost, error) {
	return scanSeoPost(q.db.QueryRowContext(ctx, createSeoPost,
		arg.LanguageID,
		arg.OriginalPostID,
		arg.Title,
		arg.MetaDescription,
		arg.MetaKeywords,
		arg.ListTags,
		arg.Slug,
		arg.Content,
		arg.Excerpt,
		arg.Status,
		arg.Pinned,
		arg.MainImageUrl,
		arg.MainImageAlt,
		arg.MainImageCaption,
		arg.GeneratedHtml,
		arg.JsonLd,
		arg.GeneratedArticleHtml,
		arg.TranslationStatus,
		arg.TranslatedAt,
		arg.PublishedAt,
		arg.CreatedAt,
		arg.CreatedAt,
	))
}

const updateSeoPostContent = `-- name: UpdateSeoPostContent :one
UPDATE seo_posts SET title = ?, meta_description = ?, meta_keywords = ?, list_tags = ?, slug = ?, content = ?,
    excerpt = ?, main_image_url = ?, main_image_alt = ?, main_image_caption = ?, generated_html = ?, json_ld = ?,
    generated_article_html = ?, updated_at = ?
WHERE id = ?
RETURNING ` + seoPostColumns

func (q *Queries) UpdateSeoPostContent(ctx context.Context, id int64, c SeoPostContent, now time.Time) (SeoPost, error) {
	return scanSeoPost(q.db.QueryRowContext(ctx, updateSeoPostContent,
		c.Title,
		c.MetaDescription,
		c.MetaKeywords,
		c.ListTags,
		c.Slug,
		c.Content,
		c.Excerpt,
		c.MainImageUrl,
		c.MainImageAlt,
		c.MainImageCaption,
		c.GeneratedHtml,
		c.JsonLd,
		c.GeneratedArticleHtml,
		now,
		id,
	))
}

const setGroupStatus = `-- name: SetGroupStatus :execrows
UPDATE seo_posts SET status = ?, published_at = ?, updated_at = ?
WHERE id = ? OR original_post_id = ?
`

// SetGroupStatus writes status to a pivot and all of its translations.
func (q *Queries) SetGroupStatus(ctx context.Context, pivotID int64, status string, publishedAt sql.NullTime, now time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, setGroupStatus, status, publishedAt, now, pivotID, pivotID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const setTranslationState = `-- name: SetTranslationState :exec
UPDATE seo_posts SET translation_status = ?, translation_error = ?, translated_at = COALESCE(?, translated_at)
WHERE id = ?
`

func (q *Queries) SetTranslationState(ctx context.Context, id int64, state, errMsg string, translatedAt sql.NullTime) error {
	_, err := q.db.ExecContext(ctx, setTranslationState, state, errMsg, translatedAt, id)
	return err
}

const updatePostListTags = `-- name: UpdatePostListTags :exec
UPDATE seo_posts SET list_tags = ? WHERE id = ?
`

// UpdatePostListTags rewrites the JSON array column on its own.
func (q *Queries) UpdatePostListTags(ctx context.Context, id int64, listTags string) error {
	_, err := q.db.ExecContext(ctx, updatePostListTags, listTags, id)
	return err
}

const deleteSeoPost = `-- name: DeleteSeoPost :execrows
DELETE FROM seo_posts WHERE id = ?
`

func (q *Queries) DeleteSeoPost(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteSeoPost, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const pinGroup = `-- name: PinGroup :exec
UPDATE seo_posts SET pinned = CASE WHEN id = ? OR original_post_id = ? THEN 1 ELSE 0 END
WHERE pinned = 1 OR id = ? OR original_post_id = ?
`

// PinGroup pins the pivot's group and unpins every other pinned post.
func (q *Queries) PinGroup(ctx context.Context, pivotID int64) error {
	_, err := q.db.ExecContext(ctx, pinGroup, pivotID, pivotID, pivotID, pivotID)
	return err
}

const unpinAll = `-- name: UnpinAll :exec
UPDATE seo_posts SET pinned = 0 WHERE pinned = 1
`

func (q *Queries) UnpinAll(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, unpinAll)
	return err
}

const countPinned = `-- name: CountPinned :one
SELECT COUNT(*) FROM seo_posts WHERE pinned = 1
`

func (q *Queries) CountPinned(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPinned).Scan(&count)
	return count, err
}

const getPinnedGroup = `-- name: GetPinnedGroup :one
SELECT pivot_post_id FROM pinned_group WHERE id = 1
`

func (q *Queries) GetPinnedGroup(ctx context.Context) (sql.NullInt64, error) {
	var pivot sql.NullInt64
	err := q.db.QueryRowContext(ctx, getPinnedGroup).Scan(&pivot)
	return pivot, err
}

const setPinnedGroup = `-- name: SetPinnedGroup :exec
UPDATE pinned_group SET pivot_post_id = ?, updated_at = ? WHERE id = 1
`

func (q *Queries) SetPinnedGroup(ctx context.Context, pivot sql.NullInt64, now time.Time) error {
	_, err := q.db.ExecContext(ctx, setPinnedGroup, pivot, now)
	return err
}
