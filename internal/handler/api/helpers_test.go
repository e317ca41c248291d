// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/middleware"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/seo"
	"github.com/olegiv/artadmin/internal/service"
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/testutil"
	"github.com/olegiv/artadmin/internal/translator"
	"github.com/olegiv/artadmin/internal/worker"
)

const testToken = "Kq7-admin-token-used-only-in-tests-42"

// prefixTranslator marks every text with the target language code.
type prefixTranslator struct{}

func mark(code, s string) string {
	if s == "" {
		return ""
	}
	return "[" + code + "] " + s
}

func (prefixTranslator) TranslateText(_ context.Context, text string, _, target translator.Language) (string, error) {
	return mark(target.Code, text), nil
}

func (prefixTranslator) TranslatePost(_ context.Context, in model.PostFields, _, target translator.Language) (model.PostFields, error) {
	out := in
	out.Title = mark(target.Code, in.Title)
	out.MetaDescription = mark(target.Code, in.MetaDescription)
	out.Excerpt = mark(target.Code, in.Excerpt)
	out.Content = make([]model.ContentBlock, len(in.Content))
	for i, b := range in.Content {
		b.Text = mark(target.Code, b.Text)
		out.Content[i] = b
	}
	return out, nil
}

type testServer struct {
	db     *sql.DB
	router http.Handler
}

// newTestServer wires the API the way main does, with an in-memory cache
// and a running dispatcher.
func newTestServer(t *testing.T, tr translator.Translator) *testServer {
	t.Helper()

	db, cleanup := testutil.TestSeededDB(t)
	t.Cleanup(cleanup)

	logger := testutil.TestLoggerSilent()
	cm := cache.NewManager(cache.NewMemoryCache(cache.MemoryCacheOptions{}), store.New(db))
	t.Cleanup(func() { _ = cm.Close() })

	site := seo.SiteConfig{SiteName: "Art Market", SiteURL: "https://art.example"}
	propagator := service.NewPropagator(db, cm, tr, site, service.DefaultRetryPolicy(), logger)
	dispatcher := worker.NewDispatcher(propagator, logger, worker.Config{Workers: 1})
	dispatcher.Start(context.Background())
	t.Cleanup(dispatcher.Stop)

	fs := service.NewFieldSync(db, cm, tr, logger)
	h := NewHandler(Services{
		Languages:       service.NewLanguageService(cm),
		Artists:         service.NewArtistService(db, cm, fs),
		LandingArtists:  service.NewLandingArtistService(db, cm, fs),
		Glossary:        service.NewGlossaryService(db, cm, fs),
		PresaleArtworks: service.NewPresaleArtworkService(db, cm, fs),
		Translations:    service.NewTranslationService(db, cm),
		Posts:           service.NewPostService(db, cm, tr, dispatcher, site, logger),
		Jobs:            service.NewJobService(db, cm, dispatcher),
		Events:          service.NewEventService(db),
		Cache:           cm,
	}, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BearerAuth(testToken))
		h.Register(r)
	})

	return &testServer{db: db, router: r}
}

// testResponse is Response with raw data for typed decoding.
type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *Meta           `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, testResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return rr.Code, resp
}

func decodeData[T any](t *testing.T, resp testResponse) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v), string(resp.Data))
	return v
}
