// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/artadmin/internal/model"
)

func TestCreatePivotDerivesArtifacts(t *testing.T) {
	env := newTestEnv(t)

	p := env.createPivot(t, "Collecting Digital Art")

	assert.True(t, p.IsPivot())
	assert.Equal(t, "en", p.LanguageCode)
	assert.Equal(t, "collecting-digital-art", p.Slug)
	assert.Equal(t, model.PostStatusDraft, p.Status)
	assert.Nil(t, p.PublishedAt)
	assert.Contains(t, p.GeneratedHTML, "<strong>collectors</strong>")
	assert.Contains(t, p.GeneratedArticleHTML, `<article lang="en">`)
	assert.Contains(t, p.JSONLD, `"inLanguage":"en"`)
	assert.Equal(t, []string{"Art"}, p.ListTags)

	// Same title again gets a suffixed slug.
	p2 := env.createPivot(t, "Collecting Digital Art")
	assert.Equal(t, "collecting-digital-art-2", p2.Slug)
}

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   PostInput
	}{
		{"missing title", PostInput{}},
		{"bad status", PostInput{Title: "x", Status: "ARCHIVED"}},
		{"bad block", PostInput{Title: "x", Content: []model.ContentBlock{{Type: "video"}}}},
		{"bad language", PostInput{Title: "x", LanguageCode: "xx"}},
		{"bad slug", PostInput{Title: "x", Slug: "Not A Slug"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.posts.Create(ctx, tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTagDeduplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.posts.Create(ctx, PostInput{Title: "Tags", ListTags: []string{"Art", "art", "ART", "Street Art!"}})
	require.NoError(t, err)

	assert.Equal(t, int64(2), env.countRows(t, "SELECT COUNT(*) FROM seo_tags"))
	assert.Equal(t, int64(2), env.countRows(t, "SELECT COUNT(*) FROM seo_post_tags WHERE post_id = ?", p.ID))
	assert.Equal(t, []string{"Art", "Street Art!"}, p.ListTags)

	// A later post keeps the first-seen casing.
	p2, err := env.posts.Create(ctx, PostInput{Title: "More tags", ListTags: []string{"ART", "street-art"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), env.countRows(t, "SELECT COUNT(*) FROM seo_tags"))
	assert.Equal(t, []string{"Art", "Street Art!"}, p2.ListTags)

	tags, err := env.posts.Tags(ctx, p2.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "art", tags[0].Slug)
	assert.Equal(t, "street-art", tags[1].Slug)
}

func TestCreateTranslation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pivot := env.createPivot(t, "Hello")

	fr, err := env.posts.CreateTranslation(ctx, pivot.ID, "fr")
	require.NoError(t, err)
	require.NotNil(t, fr.OriginalPostID)
	assert.Equal(t, pivot.ID, *fr.OriginalPostID)
	assert.Equal(t, "fr", fr.LanguageCode)
	assert.Equal(t, "[fr] Hello", fr.Title)
	assert.Equal(t, "fr-hello", fr.Slug)
	assert.Equal(t, model.SyncStatusSynced, fr.TranslationStatus)
	assert.NotNil(t, fr.TranslatedAt)
	assert.Contains(t, fr.GeneratedHTML, "[fr] Hello <strong>collectors</strong>")
	assert.Contains(t, fr.GeneratedArticleHTML, `<article lang="fr">`)
	assert.Contains(t, fr.JSONLD, `"inLanguage":"fr"`)

	_, err = env.posts.CreateTranslation(ctx, pivot.ID, "fr")
	assert.ErrorIs(t, err, ErrTranslationExists)
	_, err = env.posts.CreateTranslation(ctx, pivot.ID, "en")
	assert.ErrorIs(t, err, ErrTranslationExists)
	_, err = env.posts.CreateTranslation(ctx, 9999, "de")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.posts.CreateTranslation(ctx, fr.ID, "de")
	assert.ErrorIs(t, err, ErrNotPivot)

	assert.Equal(t, int64(1), env.countRows(t,
		"SELECT COUNT(*) FROM seo_posts WHERE original_post_id = ? AND language_id = ?", pivot.ID, fr.LanguageID))

	list, err := env.posts.ListTranslations(ctx, pivot.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = env.posts.ListTranslations(ctx, fr.ID)
	assert.ErrorIs(t, err, ErrNotPivot)
}

func TestCreateTranslationProviderFailure(t *testing.T) {
	env := newTestEnv(t)
	pivot := env.createPivot(t, "Hello")
	env.translator.setErr(errors.New("timeout"))

	_, err := env.posts.CreateTranslation(context.Background(), pivot.ID, "de")
	require.Error(t, err)
	assert.Zero(t, env.countRows(t, "SELECT COUNT(*) FROM seo_posts WHERE original_post_id IS NOT NULL"))
}

func TestCreateThroughOriginalPostID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pivot := env.createPivot(t, "Hello")

	es, err := env.posts.Create(ctx, PostInput{Title: "Hola", LanguageCode: "es", OriginalPostID: &pivot.ID, Status: model.PostStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusDraft, es.Status, "status comes from the pivot")

	_, err = env.posts.Create(ctx, PostInput{Title: "Hola otra vez", LanguageCode: "es", OriginalPostID: &pivot.ID})
	assert.ErrorIs(t, err, ErrTranslationExists)
}

func groupStatus(t *testing.T, env *testEnv, pivotID int64) map[int64][2]any {
	t.Helper()
	rows, err := env.db.Query("SELECT id, status, pinned FROM seo_posts WHERE id = ? OR original_post_id = ?", pivotID, pivotID)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()
	out := map[int64][2]any{}
	for rows.Next() {
		var id int64
		var status string
		var pinned bool
		require.NoError(t, rows.Scan(&id, &status, &pinned))
		out[id] = [2]any{status, pinned}
	}
	require.NoError(t, rows.Err())
	return out
}

func TestUpdatePivotSynchronizesStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pivot := env.createPivot(t, "Hello")
	for _, code := range []string{"fr", "de", "it"} {
		_, err := env.posts.CreateTranslation(ctx, pivot.ID, code)
		require.NoError(t, err)
	}
	require.NoError(t, env.posts.Pin(ctx, pivot.ID))

	updated, err := env.posts.Update(ctx, pivot.ID, PostInput{
		Title:   pivot.Title,
		Status:  model.PostStatusPublished,
		Content: pivot.Content,
		Excerpt: pivot.Excerpt,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)

	group := groupStatus(t, env, pivot.ID)
	require.Len(t, group, 4)
	for id, st := range group {
		assert.Equal(t, [2]any{model.PostStatusPublished, true}, st, "post %d", id)
	}

	translations, err := env.posts.ListTranslations(ctx, pivot.ID)
	require.NoError(t, err)
	for _, tr := range translations {
		require.NotNil(t, tr.PublishedAt)
		assert.Contains(t, tr.JSONLD, `"datePublished"`, "structured data follows the new date")
	}
}

func TestUpdateTranslationKeepsGroupStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pivot := env.createPivot(t, "Hello")
	fr, err := env.posts.CreateTranslation(ctx, pivot.ID, "fr")
	require.NoError(t, err)

	fixed, err := env.posts.Update(ctx, fr.ID, PostInput{Title: "Bonjour", Status: model.PostStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", fixed.Title)
	assert.Equal(t, model.PostStatusDraft, fixed.Status)
	assert.Equal(t, fr.Slug, fixed.Slug)
	assert.Empty(t, env.notifier.ids, "editing a translation queues nothing")
}

func TestPinIsGlobalAndGroupWide(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.createPivot(t, "First")
	second := env.createPivot(t, "Second")
	var secondFR model.SeoPost
	for _, code := range []string{"fr", "es"} {
		_, err := env.posts.CreateTranslation(ctx, first.ID, code)
		require.NoError(t, err)
		tr, err := env.posts.CreateTranslation(ctx, second.ID, code)
		require.NoError(t, err)
		if code == "fr" {
			secondFR = tr
		}
	}

	require.NoError(t, env.posts.Pin(ctx, first.ID))
	assert.Equal(t, int64(3), env.countRows(t, "SELECT COUNT(*) FROM seo_posts WHERE pinned = 1"))

	// Pinning through a translation pins its whole group.
	require.NoError(t, env.posts.Pin(ctx, secondFR.ID))
	assert.Equal(t, int64(3), env.countRows(t, "SELECT COUNT(*) FROM seo_posts WHERE pinned = 1"))
	assert.Zero(t, env.countRows(t,
		"SELECT COUNT(*) FROM seo_posts WHERE pinned = 1 AND id != ? AND (original_post_id IS NULL OR original_post_id != ?)",
		second.ID, second.ID))

	pinned, err := env.queries.GetPinnedGroup(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, pinned.Int64)

	// A translation created later inherits the flag.
	de, err := env.posts.CreateTranslation(ctx, second.ID, "de")
	require.NoError(t, err)
	assert.True(t, de.Pinned)

	// Unpinning another group is a no-op.
	require.NoError(t, env.posts.Unpin(ctx, first.ID))
	assert.Equal(t, int64(4), env.countRows(t, "SELECT COUNT(*) FROM seo_posts WHERE pinned = 1"))

	require.NoError(t, env.posts.Unpin(ctx, second.ID))
	assert.Zero(t, env.countRows(t, "SELECT COUNT(*) FROM seo_posts WHERE pinned = 1"))
	pinned, err = env.queries.GetPinnedGroup(ctx)
	require.NoError(t, err)
	assert.False(t, pinned.Valid)

	assert.ErrorIs(t, env.posts.Pin(ctx, 9999), ErrNotFound)
}

func TestDeletePivotRemovesGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pivot := env.createPivot(t, "Hello")
	_, err := env.posts.CreateTranslation(ctx, pivot.ID, "fr")
	require.NoError(t, err)
	require.NoError(t, env.posts.Pin(ctx, pivot.ID))

	require.NoError(t, env.posts.Delete(ctx, pivot.ID))

	assert.Zero(t, env.countRows(t, "SELECT COUNT(*) FROM seo_posts"))
	assert.Zero(t, env.countRows(t, "SELECT COUNT(*) FROM seo_post_tags"))
	pinned, err := env.queries.GetPinnedGroup(ctx)
	require.NoError(t, err)
	assert.False(t, pinned.Valid)

	assert.ErrorIs(t, env.posts.Delete(ctx, pivot.ID), ErrNotFound)
}

func TestListPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createPivot(t, "A")
	env.createPivot(t, "B")
	_, err := env.posts.CreateTranslation(ctx, a.ID, "fr")
	require.NoError(t, err)

	page, err := env.posts.List(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)

	page, err = env.posts.List(ctx, PostFilter{PivotsOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = env.posts.List(ctx, PostFilter{LanguageCode: "fr"})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "fr", page.Posts[0].LanguageCode)

	page, err = env.posts.List(ctx, PostFilter{PerPage: 1, Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.Equal(t, int64(3), page.Total)

	_, err = env.posts.List(ctx, PostFilter{Status: "ARCHIVED"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
