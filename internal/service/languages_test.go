// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	languages := NewLanguageService(env.cache)

	all, err := languages.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "en", all[0].Code)
	assert.True(t, all[0].IsDefault)

	fr, err := languages.Get(ctx, "fr")
	require.NoError(t, err)
	assert.Equal(t, "Français", fr.NativeName)

	_, err = languages.Get(ctx, "xx")
	assert.ErrorIs(t, err, ErrNotFound)
}
