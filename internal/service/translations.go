// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/store"
)

// TranslationService exposes the translation store to editors.
type TranslationService struct {
	queries *store.Queries
	cache   *cache.Manager
}

// NewTranslationService creates a new TranslationService.
func NewTranslationService(db *sql.DB, cm *cache.Manager) *TranslationService {
	return &TranslationService{
		queries: store.New(db),
		cache:   cm,
	}
}

// TranslationFilter selects translation rows. EntityID is only used together
// with EntityType.
type TranslationFilter struct {
	EntityType string
	EntityID   int64
	Limit      int64
	Offset     int64
}

// List returns translation rows of one entity, or a page of one entity type.
func (s *TranslationService) List(ctx context.Context, f TranslationFilter) ([]model.Translation, error) {
	if !model.IsValidEntityType(f.EntityType) {
		return nil, invalid("unknown entity type %q", f.EntityType)
	}

	path := cache.ListPath(cache.PathTranslations,
		"type="+f.EntityType,
		"entity="+strconv.FormatInt(f.EntityID, 10),
		"limit="+strconv.FormatInt(f.Limit, 10),
		"offset="+strconv.FormatInt(f.Offset, 10))

	return cache.Remember(ctx, s.cache, path, func(ctx context.Context) ([]model.Translation, error) {
		var rows []store.Translation
		var err error
		if f.EntityID > 0 {
			rows, err = s.queries.ListTranslationsForEntity(ctx, f.EntityType, f.EntityID)
		} else {
			rows, err = s.queries.ListTranslationsByType(ctx, store.ListTranslationsByTypeParams{
				EntityType: f.EntityType,
				Limit:      f.Limit,
				Offset:     f.Offset,
			})
		}
		if err != nil {
			return nil, fmt.Errorf("listing translations: %w", err)
		}
		out := make([]model.Translation, 0, len(rows))
		for _, r := range rows {
			out = append(out, translationFromStore(r))
		}
		return out, nil
	})
}

// UpdateValue edits a non-default-language translation. Default-language
// values belong to the owning entity and are changed there.
func (s *TranslationService) UpdateValue(ctx context.Context, id int64, value string) (model.Translation, error) {
	row, err := s.queries.GetTranslationByID(ctx, id)
	if err != nil {
		return model.Translation{}, notFound(err, "translation")
	}

	def, err := s.cache.Languages.Default(ctx)
	if err != nil {
		return model.Translation{}, err
	}
	if row.LanguageID == def.ID {
		return model.Translation{}, invalid("default-language values are edited on the %s itself", row.EntityType)
	}

	updated, err := s.queries.UpdateTranslationValue(ctx, id, value, time.Now().UTC())
	if err != nil {
		return model.Translation{}, fmt.Errorf("updating translation: %w", err)
	}
	s.cache.Revalidate(ctx, cache.PathTranslations)
	return translationFromStore(updated), nil
}
