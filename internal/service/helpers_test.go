// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/seo"
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/testutil"
	"github.com/olegiv/artadmin/internal/translator"
)

// fakeTranslator prefixes every text with the target language code.
type fakeTranslator struct {
	mu    sync.Mutex
	calls int
	err   error
	// failFor makes only this target language fail.
	failFor string
}

func (f *fakeTranslator) check(target translator.Language) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil && (f.failFor == "" || f.failFor == target.Code) {
		return f.err
	}
	return nil
}

func (f *fakeTranslator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeTranslator) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func tr(code, text string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s", code, text)
}

func (f *fakeTranslator) TranslateText(_ context.Context, text string, _, target translator.Language) (string, error) {
	if err := f.check(target); err != nil {
		return "", err
	}
	return tr(target.Code, text), nil
}

func (f *fakeTranslator) TranslatePost(_ context.Context, in model.PostFields, _, target translator.Language) (model.PostFields, error) {
	if err := f.check(target); err != nil {
		return model.PostFields{}, err
	}
	out := in
	out.Title = tr(target.Code, in.Title)
	out.MetaDescription = tr(target.Code, in.MetaDescription)
	out.Excerpt = tr(target.Code, in.Excerpt)
	out.MainImageAlt = tr(target.Code, in.MainImageAlt)
	out.MainImageCaption = tr(target.Code, in.MainImageCaption)
	out.MetaKeywords = nil
	for _, k := range in.MetaKeywords {
		out.MetaKeywords = append(out.MetaKeywords, tr(target.Code, k))
	}
	out.ListTags = nil
	for _, k := range in.ListTags {
		out.ListTags = append(out.ListTags, tr(target.Code, k))
	}
	out.Content = make([]model.ContentBlock, len(in.Content))
	for i, b := range in.Content {
		b.Text = tr(target.Code, b.Text)
		items := make([]string, len(b.Items))
		for j, it := range b.Items {
			items[j] = tr(target.Code, it)
		}
		b.Items = items
		out.Content[i] = b
	}
	return out, nil
}

type recordingNotifier struct {
	mu  sync.Mutex
	ids []int64
}

func (n *recordingNotifier) Enqueue(ids ...int64) {
	n.mu.Lock()
	n.ids = append(n.ids, ids...)
	n.mu.Unlock()
}

type testEnv struct {
	db         *sql.DB
	queries    *store.Queries
	cache      *cache.Manager
	translator *fakeTranslator
	notifier   *recordingNotifier
	sync       *FieldSync
	artists    *ArtistService
	landing    *LandingArtistService
	glossary   *GlossaryService
	presale    *PresaleArtworkService
	posts      *PostService
	propagator *Propagator
	jobs       *JobService
}

var testSite = seo.SiteConfig{SiteName: "Art Market", SiteURL: "https://art.example"}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestSeededDB(t)
	t.Cleanup(cleanup)

	queries := store.New(db)
	cm := cache.NewManager(cache.NewMemoryCache(cache.MemoryCacheOptions{}), queries)
	t.Cleanup(func() { _ = cm.Close() })

	ft := &fakeTranslator{}
	notifier := &recordingNotifier{}
	logger := testutil.TestLoggerSilent()
	fs := NewFieldSync(db, cm, ft, logger)

	return &testEnv{
		db:         db,
		queries:    queries,
		cache:      cm,
		translator: ft,
		notifier:   notifier,
		sync:       fs,
		artists:    NewArtistService(db, cm, fs),
		landing:    NewLandingArtistService(db, cm, fs),
		glossary:   NewGlossaryService(db, cm, fs),
		presale:    NewPresaleArtworkService(db, cm, fs),
		posts:      NewPostService(db, cm, ft, notifier, testSite, logger),
		propagator: NewPropagator(db, cm, ft, testSite, DefaultRetryPolicy(), logger),
		jobs:       NewJobService(db, cm, notifier),
	}
}

func ptr[T any](v T) *T {
	return &v
}

func (e *testEnv) countRows(t *testing.T, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.QueryRow(query, args...).Scan(&n))
	return n
}

func (e *testEnv) createPivot(t *testing.T, title string) model.SeoPost {
	t.Helper()
	p, err := e.posts.Create(context.Background(), PostInput{
		Title:    title,
		Status:   model.PostStatusDraft,
		ListTags: []string{"Art"},
		Content: []model.ContentBlock{
			{Type: model.BlockHeader, Level: 2, Text: "Intro"},
			{Type: model.BlockParagraph, Text: "Hello **collectors**"},
		},
		Excerpt: "Short",
	})
	require.NoError(t, err)
	return p
}
