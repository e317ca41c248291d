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
	"github.com/olegiv/artadmin/internal/util"
)

// ArtistInput is the editable part of an artist.
type ArtistInput struct {
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	Biography        *string `json:"biography"`
	ShortDescription *string `json:"short_description"`
	AvatarURL        string  `json:"avatar_url"`
	WalletAddress    string  `json:"wallet_address"`
}

// ArtistService manages artists.
type ArtistService struct {
	db      *sql.DB
	queries *store.Queries
	cache   *cache.Manager
	sync    *FieldSync
}

// NewArtistService creates a new ArtistService.
func NewArtistService(db *sql.DB, cm *cache.Manager, sync *FieldSync) *ArtistService {
	return &ArtistService{
		db:      db,
		queries: store.New(db),
		cache:   cm,
		sync:    sync,
	}
}

// List returns all artists by name.
func (s *ArtistService) List(ctx context.Context) ([]model.Artist, error) {
	return cache.Remember(ctx, s.cache, cache.PathArtists, func(ctx context.Context) ([]model.Artist, error) {
		rows, err := s.queries.ListArtists(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing artists: %w", err)
		}
		out := make([]model.Artist, 0, len(rows))
		for _, r := range rows {
			out = append(out, artistFromStore(r))
		}
		return out, nil
	})
}

// Get returns one artist.
func (s *ArtistService) Get(ctx context.Context, id int64) (model.Artist, error) {
	a, err := s.queries.GetArtistByID(ctx, id)
	if err != nil {
		return model.Artist{}, notFound(err, "artist")
	}
	return artistFromStore(a), nil
}

func (s *ArtistService) prepare(ctx context.Context, in *ArtistInput, excludeID int64) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("name is required")
	}
	if in.Slug == "" {
		in.Slug = util.Slugify(in.Name)
	}
	if !util.IsValidSlug(in.Slug) {
		return invalid("slug %q is not valid", in.Slug)
	}
	n, err := s.queries.ArtistSlugExists(ctx, in.Slug, excludeID)
	if err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	if n > 0 {
		return invalid("slug %q is already in use", in.Slug)
	}
	return nil
}

// Create inserts an artist and seeds its translations.
func (s *ArtistService) Create(ctx context.Context, in ArtistInput) (model.Artist, error) {
	if err := s.prepare(ctx, &in, 0); err != nil {
		return model.Artist{}, err
	}

	now := time.Now().UTC()
	a, err := s.queries.CreateArtist(ctx, store.CreateArtistParams{
		Name:             in.Name,
		Slug:             in.Slug,
		Biography:        util.NullStringFromPtr(in.Biography),
		ShortDescription: util.NullStringFromPtr(in.ShortDescription),
		AvatarUrl:        in.AvatarURL,
		WalletAddress:    in.WalletAddress,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return model.Artist{}, fmt.Errorf("creating artist: %w", err)
	}

	s.syncFields(ctx, a.ID, in)
	s.cache.Revalidate(ctx, cache.PathArtists)
	return artistFromStore(a), nil
}

// Update overwrites an artist.
func (s *ArtistService) Update(ctx context.Context, id int64, in ArtistInput) (model.Artist, error) {
	if _, err := s.queries.GetArtistByID(ctx, id); err != nil {
		return model.Artist{}, notFound(err, "artist")
	}
	if err := s.prepare(ctx, &in, id); err != nil {
		return model.Artist{}, err
	}

	a, err := s.queries.UpdateArtist(ctx, store.UpdateArtistParams{
		Name:             in.Name,
		Slug:             in.Slug,
		Biography:        util.NullStringFromPtr(in.Biography),
		ShortDescription: util.NullStringFromPtr(in.ShortDescription),
		AvatarUrl:        in.AvatarURL,
		WalletAddress:    in.WalletAddress,
		UpdatedAt:        time.Now().UTC(),
		ID:               id,
	})
	if err != nil {
		return model.Artist{}, fmt.Errorf("updating artist: %w", err)
	}

	s.syncFields(ctx, id, in)
	s.cache.Revalidate(ctx, cache.PathArtists)
	return artistFromStore(a), nil
}

func (s *ArtistService) syncFields(ctx context.Context, id int64, in ArtistInput) {
	s.sync.Sync(ctx, model.EntityTypeArtist, id, map[string]*string{
		"biography":         in.Biography,
		"short_description": in.ShortDescription,
	})
}

// Delete removes an artist together with its landing entries and every
// translation row that belonged to either.
func (s *ArtistService) Delete(ctx context.Context, id int64) error {
	err := store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		landingIDs, err := q.ListLandingArtistIDsByArtist(ctx, id)
		if err != nil {
			return err
		}
		if err := deleteEntityTranslations(ctx, q, model.EntityTypeLandingArtist, landingIDs...); err != nil {
			return err
		}
		if err := deleteEntityTranslations(ctx, q, model.EntityTypeArtist, id); err != nil {
			return err
		}
		n, err := q.DeleteArtist(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return notFound(err, "artist")
	}

	s.cache.Revalidate(ctx, cache.PathArtists, cache.PathLandingArtists, cache.PathPresaleArtworks, cache.PathTranslations)
	return nil
}
