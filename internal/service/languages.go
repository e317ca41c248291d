// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/store"
)

// LanguageService exposes the language reference data.
type LanguageService struct {
	languages *cache.LanguageCache
}

// NewLanguageService creates a new LanguageService.
func NewLanguageService(cm *cache.Manager) *LanguageService {
	return &LanguageService{languages: cm.Languages}
}

// List returns all languages ordered by position.
func (s *LanguageService) List(ctx context.Context) ([]model.Language, error) {
	rows, err := s.languages.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	out := make([]model.Language, 0, len(rows))
	for _, l := range rows {
		out = append(out, languageFromStore(l))
	}
	return out, nil
}

// Get returns the language with the given code.
func (s *LanguageService) Get(ctx context.Context, code string) (model.Language, error) {
	l, err := s.languages.ByCode(ctx, code)
	if err != nil {
		return model.Language{}, notFound(err, "language "+code)
	}
	return languageFromStore(l), nil
}

func languageFromStore(l store.Language) model.Language {
	return model.Language{
		ID:         l.ID,
		Code:       l.Code,
		Name:       l.Name,
		NativeName: l.NativeName,
		IsDefault:  l.IsDefault,
		Direction:  l.Direction,
		Position:   int(l.Position),
		CreatedAt:  l.CreatedAt,
	}
}
