// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/util"
)

// LandingArtistInput is the editable part of a landing-page artist entry.
type LandingArtistInput struct {
	ArtistID    int64   `json:"artist_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    string  `json:"image_url"`
	Position    int64   `json:"position"`
}

// LandingArtistService manages the artists featured on the landing page.
type LandingArtistService struct {
	db      *sql.DB
	queries *store.Queries
	cache   *cache.Manager
	sync    *FieldSync
}

// NewLandingArtistService creates a new LandingArtistService.
func NewLandingArtistService(db *sql.DB, cm *cache.Manager, sync *FieldSync) *LandingArtistService {
	return &LandingArtistService{
		db:      db,
		queries: store.New(db),
		cache:   cm,
		sync:    sync,
	}
}

func (s *LandingArtistService) List(ctx context.Context) ([]model.LandingArtist, error) {
	return cache.Remember(ctx, s.cache, cache.PathLandingArtists, func(ctx context.Context) ([]model.LandingArtist, error) {
		rows, err := s.queries.ListLandingArtists(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing landing artists: %w", err)
		}
		out := make([]model.LandingArtist, 0, len(rows))
		for _, r := range rows {
			out = append(out, landingArtistFromStore(r))
		}
		return out, nil
	})
}

func (s *LandingArtistService) Get(ctx context.Context, id int64) (model.LandingArtist, error) {
	a, err := s.queries.GetLandingArtistByID(ctx, id)
	if err != nil {
		return model.LandingArtist{}, notFound(err, "landing artist")
	}
	return landingArtistFromStore(a), nil
}

func (s *LandingArtistService) checkArtist(ctx context.Context, artistID int64) error {
	if _, err := s.queries.GetArtistByID(ctx, artistID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invalid("artist %d does not exist", artistID)
		}
		return err
	}
	return nil
}

func (s *LandingArtistService) Create(ctx context.Context, in LandingArtistInput) (model.LandingArtist, error) {
	if err := s.checkArtist(ctx, in.ArtistID); err != nil {
		return model.LandingArtist{}, err
	}

	now := time.Now().UTC()
	a, err := s.queries.CreateLandingArtist(ctx, store.CreateLandingArtistParams{
		ArtistID:    in.ArtistID,
		Title:       util.NullStringFromPtr(in.Title),
		Description: util.NullStringFromPtr(in.Description),
		ImageUrl:    in.ImageURL,
		Position:    in.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.LandingArtist{}, fmt.Errorf("creating landing artist: %w", err)
	}

	s.syncFields(ctx, a.ID, in)
	s.cache.Revalidate(ctx, cache.PathLandingArtists)
	return landingArtistFromStore(a), nil
}

func (s *LandingArtistService) Update(ctx context.Context, id int64, in LandingArtistInput) (model.LandingArtist, error) {
	if _, err := s.queries.GetLandingArtistByID(ctx, id); err != nil {
		return model.LandingArtist{}, notFound(err, "landing artist")
	}
	if err := s.checkArtist(ctx, in.ArtistID); err != nil {
		return model.LandingArtist{}, err
	}

	a, err := s.queries.UpdateLandingArtist(ctx, store.UpdateLandingArtistParams{
		ArtistID:    in.ArtistID,
		Title:       util.NullStringFromPtr(in.Title),
		Description: util.NullStringFromPtr(in.Description),
		ImageUrl:    in.ImageURL,
		Position:    in.Position,
		UpdatedAt:   time.Now().UTC(),
		ID:          id,
	})
	if err != nil {
		return model.LandingArtist{}, fmt.Errorf("updating landing artist: %w", err)
	}

	s.syncFields(ctx, id, in)
	s.cache.Revalidate(ctx, cache.PathLandingArtists)
	return landingArtistFromStore(a), nil
}

func (s *LandingArtistService) syncFields(ctx context.Context, id int64, in LandingArtistInput) {
	s.sync.Sync(ctx, model.EntityTypeLandingArtist, id, map[string]*string{
		"title":       in.Title,
		"description": in.Description,
	})
}

func (s *LandingArtistService) Delete(ctx context.Context, id int64) error {
	err := store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		if err := deleteEntityTranslations(ctx, q, model.EntityTypeLandingArtist, id); err != nil {
			return err
		}
		n, err := q.DeleteLandingArtist(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return notFound(err, "landing artist")
	}

	s.cache.Revalidate(ctx, cache.PathLandingArtists, cache.PathTranslations)
	return nil
}
