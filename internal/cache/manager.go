// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/olegiv/artadmin/internal/store"
)

// Cached list paths. Keys are derived from these by appending query details.
const (
	PathLanguages       = "/languages"
	PathArtists         = "/artists"
	PathLandingArtists  = "/landing-artists"
	PathGlossary        = "/glossary"
	PathPresaleArtworks = "/presale-artworks"
	PathTranslations    = "/translations"
	PathSeoPosts        = "/seo-posts"
	PathTags            = "/tags"
)

const listKeyPrefix = "list:"

// PathNotifier is told about revalidated paths, so that caches outside
// this process (the storefront) can drop them too.
type PathNotifier interface {
	Notify(paths ...string)
}

// Manager owns the list cache and the language cache.
type Manager struct {
	backend   Cacher
	notifier  PathNotifier
	Languages *LanguageCache
}

// NewManager creates a cache manager over backend.
func NewManager(backend Cacher, queries *store.Queries) *Manager {
	return &Manager{
		backend:   backend,
		Languages: NewLanguageCache(queries),
	}
}

// SetNotifier registers n to receive every revalidated path.
func (m *Manager) SetNotifier(n PathNotifier) {
	m.notifier = n
}

// Backend returns the underlying cache.
func (m *Manager) Backend() Cacher {
	return m.backend
}

func listKey(path string) string {
	return listKeyPrefix + path
}

// Revalidate drops every cached list whose path starts with one of paths.
// Failures are logged; a stale list is preferable to a failed mutation.
func (m *Manager) Revalidate(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if err := m.backend.DeleteByPrefix(ctx, listKey(p)); err != nil {
			slog.Warn("cache revalidation failed", "path", p, "error", err, "category", "cache")
		}
	}
	if m.notifier != nil && len(paths) > 0 {
		m.notifier.Notify(paths...)
	}
}

// Clear drops all cached lists and reloads languages on next use.
func (m *Manager) Clear(ctx context.Context) error {
	m.Languages.Invalidate()
	return m.backend.Clear(ctx)
}

// Stats returns backend statistics.
func (m *Manager) Stats() Stats {
	return m.backend.Stats()
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}

// Remember returns the cached JSON value stored for path, or calls load and
// caches its result. Backend errors fall through to load.
func Remember[T any](ctx context.Context, m *Manager, path string, load func(context.Context) (T, error)) (T, error) {
	key := listKey(path)

	if raw, err := m.backend.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		slog.Warn("cache read failed", "path", path, "error", err, "category", "cache")
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if raw, err := json.Marshal(v); err == nil {
		if err := m.backend.Set(ctx, key, raw, 0); err != nil {
			slog.Warn("cache write failed", "path", path, "error", err, "category", "cache")
		}
	}
	return v, nil
}

// ListPath joins a base path with query parts into a cache path,
// e.g. ListPath("/seo-posts", "lang=2", "page=1") = "/seo-posts?lang=2&page=1".
func ListPath(base string, parts ...string) string {
	if len(parts) == 0 {
		return base
	}
	return base + "?" + strings.Join(parts, "&")
}
