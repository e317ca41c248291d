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
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/testutil"
	"github.com/olegiv/artadmin/internal/translator"
)

func TestFieldSyncCreateIfAbsent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.sync.Sync(ctx, model.EntityTypeGlossaryItem, 7, map[string]*string{
		"term":       ptr("Provenance"),
		"definition": nil,
	})
	require.True(t, first.OK(), "failures: %v", first.Failures)
	assert.Equal(t, 5, first.Written) // en + 4 targets
	assert.Equal(t, 0, first.Skipped)

	second := env.sync.Sync(ctx, model.EntityTypeGlossaryItem, 7, map[string]*string{
		"term": ptr("Provenance (history)"),
	})
	require.True(t, second.OK())
	assert.Equal(t, 1, second.Written)
	assert.Equal(t, 4, second.Skipped)

	n, err := env.queries.CountTranslationsForField(ctx, model.EntityTypeGlossaryItem, 7, "term")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	n, err = env.queries.CountTranslationsForField(ctx, model.EntityTypeGlossaryItem, 7, "definition")
	require.NoError(t, err)
	assert.Zero(t, n, "nil values are skipped")

	en := testutil.Language(t, env.db, "en")
	fr := testutil.Language(t, env.db, "fr")

	def, err := env.queries.GetTranslation(ctx, store.TranslationKey{
		EntityType: model.EntityTypeGlossaryItem, EntityID: 7, Field: "term", LanguageID: en.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Provenance (history)", def.Value, "default row follows the entity")

	other, err := env.queries.GetTranslation(ctx, store.TranslationKey{
		EntityType: model.EntityTypeGlossaryItem, EntityID: 7, Field: "term", LanguageID: fr.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "[fr] Provenance", other.Value, "existing translations are never overwritten")
}

func TestFieldSyncFailuresAreReported(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.translator.err = errors.New("provider down")
	env.translator.failFor = "de"

	report := env.sync.Sync(ctx, model.EntityTypeArtist, 3, map[string]*string{"biography": ptr("Painter")})

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "de", report.Failures[0].Language)
	assert.Equal(t, "biography", report.Failures[0].Field)
	assert.Equal(t, 4, report.Written)

	n, err := env.queries.CountTranslationsForField(ctx, model.EntityTypeArtist, 3, "biography")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	// A later save fills the gap without touching the others.
	env.translator.setErr(nil)
	report = env.sync.Sync(ctx, model.EntityTypeArtist, 3, map[string]*string{"biography": ptr("Painter")})
	require.True(t, report.OK())
	assert.Equal(t, 2, report.Written)
	assert.Equal(t, 3, report.Skipped)
}

func TestFieldSyncWithoutProviderSeedsSourceText(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fs := NewFieldSync(env.db, env.cache, translator.Disabled{}, testutil.TestLoggerSilent())

	report := fs.Sync(ctx, model.EntityTypeArtist, 9, map[string]*string{"biography": ptr("Sculptor")})
	require.True(t, report.OK(), "failures: %v", report.Failures)
	assert.Equal(t, 5, report.Written)
	assert.Equal(t, 4, report.Untranslated)

	n, err := env.queries.CountTranslationsForField(ctx, model.EntityTypeArtist, 9, "biography")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	de := testutil.Language(t, env.db, "de")
	row, err := env.queries.GetTranslation(ctx, store.TranslationKey{
		EntityType: model.EntityTypeArtist, EntityID: 9, Field: "biography", LanguageID: de.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sculptor", row.Value)

	// Once a provider is configured the seeded rows are left alone.
	report = env.sync.Sync(ctx, model.EntityTypeArtist, 9, map[string]*string{"biography": ptr("Sculptor")})
	require.True(t, report.OK())
	assert.Equal(t, 4, report.Skipped)
}

func TestFieldSyncEmptyValueIsNotTranslated(t *testing.T) {
	env := newTestEnv(t)

	report := env.sync.Sync(context.Background(), model.EntityTypeArtist, 1, map[string]*string{"short_description": ptr("")})

	require.True(t, report.OK())
	assert.Equal(t, 5, report.Written)
	assert.Zero(t, env.translator.callCount())
}

func TestEntityMutationSurvivesTranslationFailure(t *testing.T) {
	env := newTestEnv(t)
	env.translator.err = errors.New("quota exceeded")

	a, err := env.artists.Create(context.Background(), ArtistInput{Name: "Ada Lovelace", Biography: ptr("Pioneer")})
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace", a.Slug)

	// Only the default-language row exists.
	assert.Equal(t, int64(1), env.countRows(t,
		"SELECT COUNT(*) FROM translations WHERE entity_type = ? AND entity_id = ?", model.EntityTypeArtist, a.ID))
}

func TestTranslationServiceUpdateValue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewTranslationService(env.db, env.cache)

	g, err := env.glossary.Create(ctx, GlossaryInput{Term: "Mint", Definition: "Create a token"})
	require.NoError(t, err)

	rows, err := svc.List(ctx, TranslationFilter{EntityType: model.EntityTypeGlossaryItem, EntityID: g.ID})
	require.NoError(t, err)
	require.Len(t, rows, 10)

	en := testutil.Language(t, env.db, "en")
	var defaultRow, otherRow model.Translation
	for _, r := range rows {
		if r.Field != "term" {
			continue
		}
		if r.LanguageID == en.ID {
			defaultRow = r
		} else {
			otherRow = r
		}
	}

	_, err = svc.UpdateValue(ctx, defaultRow.ID, "changed")
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := svc.UpdateValue(ctx, otherRow.ID, "Frapper")
	require.NoError(t, err)
	assert.Equal(t, "Frapper", updated.Value)

	// The cached list reflects the edit.
	rows, err = svc.List(ctx, TranslationFilter{EntityType: model.EntityTypeGlossaryItem, EntityID: g.ID})
	require.NoError(t, err)
	found := false
	for _, r := range rows {
		if r.ID == otherRow.ID {
			found = r.Value == "Frapper"
		}
	}
	assert.True(t, found)

	_, err = svc.UpdateValue(ctx, 99999, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.List(ctx, TranslationFilter{EntityType: "invoice"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
