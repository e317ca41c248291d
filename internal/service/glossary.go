// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/store"
)

// GlossaryInput is the editable part of a glossary item.
type GlossaryInput struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// GlossaryService manages glossary items.
type GlossaryService struct {
	db      *sql.DB
	queries *store.Queries
	cache   *cache.Manager
	sync    *FieldSync
}

func NewGlossaryService(db *sql.DB, cm *cache.Manager, sync *FieldSync) *GlossaryService {
	return &GlossaryService{
		db:      db,
		queries: store.New(db),
		cache:   cm,
		sync:    sync,
	}
}

func (s *GlossaryService) List(ctx context.Context) ([]model.GlossaryItem, error) {
	return cache.Remember(ctx, s.cache, cache.PathGlossary, func(ctx context.Context) ([]model.GlossaryItem, error) {
		rows, err := s.queries.ListGlossaryItems(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing glossary: %w", err)
		}
		out := make([]model.GlossaryItem, 0, len(rows))
		for _, r := range rows {
			out = append(out, glossaryItemFromStore(r))
		}
		return out, nil
	})
}

func (s *GlossaryService) Get(ctx context.Context, id int64) (model.GlossaryItem, error) {
	g, err := s.queries.GetGlossaryItemByID(ctx, id)
	if err != nil {
		return model.GlossaryItem{}, notFound(err, "glossary item")
	}
	return glossaryItemFromStore(g), nil
}

func (s *GlossaryService) Create(ctx context.Context, in GlossaryInput) (model.GlossaryItem, error) {
	in.Term = strings.TrimSpace(in.Term)
	if in.Term == "" {
		return model.GlossaryItem{}, invalid("term is required")
	}

	g, err := s.queries.CreateGlossaryItem(ctx, in.Term, in.Definition, time.Now().UTC())
	if err != nil {
		return model.GlossaryItem{}, fmt.Errorf("creating glossary item: %w", err)
	}

	s.syncFields(ctx, g.ID, in)
	s.cache.Revalidate(ctx, cache.PathGlossary)
	return glossaryItemFromStore(g), nil
}

func (s *GlossaryService) Update(ctx context.Context, id int64, in GlossaryInput) (model.GlossaryItem, error) {
	in.Term = strings.TrimSpace(in.Term)
	if in.Term == "" {
		return model.GlossaryItem{}, invalid("term is required")
	}

	g, err := s.queries.UpdateGlossaryItem(ctx, id, in.Term, in.Definition, time.Now().UTC())
	if err != nil {
		return model.GlossaryItem{}, notFound(err, "glossary item")
	}

	s.syncFields(ctx, id, in)
	s.cache.Revalidate(ctx, cache.PathGlossary)
	return glossaryItemFromStore(g), nil
}

func (s *GlossaryService) syncFields(ctx context.Context, id int64, in GlossaryInput) {
	s.sync.Sync(ctx, model.EntityTypeGlossaryItem, id, map[string]*string{
		"term":       &in.Term,
		"definition": &in.Definition,
	})
}

func (s *GlossaryService) Delete(ctx context.Context, id int64) error {
	err := store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		if err := deleteEntityTranslations(ctx, q, model.EntityTypeGlossaryItem, id); err != nil {
			return err
		}
		n, err := q.DeleteGlossaryItem(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return notFound(err, "glossary item")
	}

	s.cache.Revalidate(ctx, cache.PathGlossary, cache.PathTranslations)
	return nil
}
