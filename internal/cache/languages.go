// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/olegiv/artadmin/internal/store"
)

// ErrNoDefaultLanguage is returned when no language is flagged as default.
var ErrNoDefaultLanguage = errors.New("no default language configured")

// LanguageCache holds the language table in memory. Languages are reference
// data, so the whole table is loaded once and served until invalidated.
type LanguageCache struct {
	queries *store.Queries

	mu          sync.RWMutex
	loaded      bool
	languages   []store.Language
	byCode      map[string]store.Language
	byID        map[int64]store.Language
	defaultLang *store.Language
}

// NewLanguageCache creates a new language cache.
func NewLanguageCache(queries *store.Queries) *LanguageCache {
	return &LanguageCache{queries: queries}
}

// All returns every language ordered by position.
func (c *LanguageCache) All(ctx context.Context) ([]store.Language, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]store.Language, len(c.languages))
	copy(out, c.languages)
	return out, nil
}

// Default returns the default (source) language.
func (c *LanguageCache) Default(ctx context.Context) (store.Language, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return store.Language{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.defaultLang == nil {
		return store.Language{}, ErrNoDefaultLanguage
	}
	return *c.defaultLang, nil
}

// Targets returns every non-default language.
func (c *LanguageCache) Targets(ctx context.Context) ([]store.Language, error) {
	all, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	targets := all[:0]
	for _, l := range all {
		if !l.IsDefault {
			targets = append(targets, l)
		}
	}
	return targets, nil
}

// ByCode returns sql.ErrNoRows for an unknown code.
func (c *LanguageCache) ByCode(ctx context.Context, code string) (store.Language, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return store.Language{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.byCode[code]
	if !ok {
		return store.Language{}, sql.ErrNoRows
	}
	return l, nil
}

// ByID returns sql.ErrNoRows for an unknown id.
func (c *LanguageCache) ByID(ctx context.Context, id int64) (store.Language, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return store.Language{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.byID[id]
	if !ok {
		return store.Language{}, sql.ErrNoRows
	}
	return l, nil
}

// Invalidate forces a reload on next access.
func (c *LanguageCache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
}

func (c *LanguageCache) ensureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}

	langs, err := c.queries.ListLanguages(ctx)
	if err != nil {
		return err
	}

	c.languages = langs
	c.byCode = make(map[string]store.Language, len(langs))
	c.byID = make(map[int64]store.Language, len(langs))
	c.defaultLang = nil
	for i := range langs {
		c.byCode[langs[i].Code] = langs[i]
		c.byID[langs[i].ID] = langs[i]
		if langs[i].IsDefault {
			c.defaultLang = &c.languages[i]
		}
	}
	c.loaded = true
	return nil
}
