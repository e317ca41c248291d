// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/artadmin/internal/model"
)

func TestArtistCRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.artists.Create(ctx, ArtistInput{Name: "Hilma af Klint", Biography: ptr("Swedish painter")})
	require.NoError(t, err)
	assert.Equal(t, "hilma-af-klint", a.Slug)

	_, err = env.artists.Create(ctx, ArtistInput{Name: "Hilma af Klint"})
	assert.ErrorIs(t, err, ErrInvalidInput, "duplicate slug")

	_, err = env.artists.Create(ctx, ArtistInput{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := env.artists.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	a, err = env.artists.Update(ctx, a.ID, ArtistInput{Name: "Hilma af Klint", Slug: "hilma", ShortDescription: ptr("Abstract pioneer")})
	require.NoError(t, err)
	assert.Equal(t, "hilma", a.Slug)
	assert.Nil(t, a.Biography)

	list, err = env.artists.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hilma", list[0].Slug, "list cache is revalidated on update")

	_, err = env.artists.Update(ctx, 4242, ArtistInput{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.artists.Get(ctx, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArtistDeleteRemovesTranslations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.artists.Create(ctx, ArtistInput{Name: "Sonia Delaunay", Biography: ptr("Colour")})
	require.NoError(t, err)
	la, err := env.landing.Create(ctx, LandingArtistInput{ArtistID: a.ID, Title: ptr("Featured")})
	require.NoError(t, err)

	require.Equal(t, int64(10), env.countRows(t, "SELECT COUNT(*) FROM translations"))

	require.NoError(t, env.artists.Delete(ctx, a.ID))

	assert.Zero(t, env.countRows(t, "SELECT COUNT(*) FROM translations"))
	_, err = env.landing.Get(ctx, la.ID)
	assert.ErrorIs(t, err, ErrNotFound, "landing entries cascade with the artist")

	assert.ErrorIs(t, env.artists.Delete(ctx, a.ID), ErrNotFound)
}

func TestLandingArtistRequiresArtist(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.landing.Create(context.Background(), LandingArtistInput{ArtistID: 99})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGlossaryCRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	g, err := env.glossary.Create(ctx, GlossaryInput{Term: "Edition", Definition: "A numbered copy"})
	require.NoError(t, err)

	g, err = env.glossary.Update(ctx, g.ID, GlossaryInput{Term: "Edition", Definition: "A numbered print"})
	require.NoError(t, err)
	assert.Equal(t, "A numbered print", g.Definition)

	_, err = env.glossary.Update(ctx, 999, GlossaryInput{Term: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.glossary.Delete(ctx, g.ID))
	assert.Zero(t, env.countRows(t, "SELECT COUNT(*) FROM translations WHERE entity_type = ?", model.EntityTypeGlossaryItem))
}

func createArtworks(t *testing.T, env *testEnv, n int) []model.PresaleArtwork {
	t.Helper()
	out := make([]model.PresaleArtwork, 0, n)
	for i := 0; i < n; i++ {
		p, err := env.presale.Create(context.Background(), PresaleArtworkInput{
			Title: "Work " + string(rune('A'+i)),
			Price: model.NewMoneyFromDecimal(decimal.NewFromInt(int64(100 + i))),
		})
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func orders(t *testing.T, env *testEnv) map[int64]int64 {
	t.Helper()
	list, err := env.presale.List(context.Background())
	require.NoError(t, err)
	m := make(map[int64]int64, len(list))
	for _, p := range list {
		m[p.ID] = p.SortOrder
	}
	return m
}

func TestPresaleCreateAppends(t *testing.T) {
	env := newTestEnv(t)

	works := createArtworks(t, env, 3)

	for i, w := range works {
		assert.Equal(t, int64(i+1), w.SortOrder)
		assert.Equal(t, DefaultCurrency, w.Currency)
	}
	assert.Equal(t, "100.00", works[0].Price.String())
}

func TestPresaleValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   PresaleArtworkInput
	}{
		{"missing title", PresaleArtworkInput{}},
		{"negative price", PresaleArtworkInput{Title: "x", Price: model.NewMoneyFromDecimal(decimal.NewFromInt(-1))}},
		{"bad currency", PresaleArtworkInput{Title: "x", Currency: "euro"}},
		{"unknown artist", PresaleArtworkInput{Title: "x", ArtistID: ptr(int64(42))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.presale.Create(ctx, tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestPresaleSwapOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	works := createArtworks(t, env, 8)
	// Works at positions 5 and 8.
	a, b := works[4], works[7]
	before := orders(t, env)

	require.NoError(t, env.presale.SwapOrder(ctx, a.ID, b.ID))

	after := orders(t, env)
	assert.Equal(t, int64(8), after[a.ID])
	assert.Equal(t, int64(5), after[b.ID])
	for id, order := range before {
		if id == a.ID || id == b.ID {
			continue
		}
		assert.Equal(t, order, after[id], "artwork %d must not move", id)
	}

	assert.ErrorIs(t, env.presale.SwapOrder(ctx, a.ID, a.ID), ErrInvalidInput)
	assert.ErrorIs(t, env.presale.SwapOrder(ctx, a.ID, 9999), ErrNotFound)
	assert.Equal(t, after, orders(t, env), "a failed swap changes nothing")
}

func TestPresaleDeleteClosesGap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	works := createArtworks(t, env, 5)

	require.NoError(t, env.presale.Delete(ctx, works[2].ID))

	after := orders(t, env)
	require.Len(t, after, 4)
	assert.Equal(t, int64(1), after[works[0].ID])
	assert.Equal(t, int64(2), after[works[1].ID])
	assert.Equal(t, int64(3), after[works[3].ID])
	assert.Equal(t, int64(4), after[works[4].ID])

	assert.ErrorIs(t, env.presale.Delete(ctx, works[2].ID), ErrNotFound)
	assert.Zero(t, env.countRows(t,
		"SELECT COUNT(*) FROM translations WHERE entity_type = ? AND entity_id = ?", model.EntityTypePresaleArtwork, works[2].ID))
}
