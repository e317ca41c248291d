// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/util"
)

// DefaultCurrency is used when an artwork is saved without one.
const DefaultCurrency = "EUR"

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// PresaleArtworkInput is the editable part of a presale artwork.
type PresaleArtworkInput struct {
	ArtistID    *int64      `json:"artist_id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	ImageURL    string      `json:"image_url"`
	Price       model.Money `json:"price"`
	Currency    string      `json:"currency"`
}

// PresaleArtworkService manages presale artworks and their display order.
// Orders are dense and 1-based.
type PresaleArtworkService struct {
	db      *sql.DB
	queries *store.Queries
	cache   *cache.Manager
	sync    *FieldSync
}

// NewPresaleArtworkService creates a new PresaleArtworkService.
func NewPresaleArtworkService(db *sql.DB, cm *cache.Manager, sync *FieldSync) *PresaleArtworkService {
	return &PresaleArtworkService{
		db:      db,
		queries: store.New(db),
		cache:   cm,
		sync:    sync,
	}
}

// List returns artworks in display order.
func (s *PresaleArtworkService) List(ctx context.Context) ([]model.PresaleArtwork, error) {
	return cache.Remember(ctx, s.cache, cache.PathPresaleArtworks, func(ctx context.Context) ([]model.PresaleArtwork, error) {
		rows, err := s.queries.ListPresaleArtworks(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing presale artworks: %w", err)
		}
		out := make([]model.PresaleArtwork, 0, len(rows))
		for _, r := range rows {
			out = append(out, presaleArtworkFromStore(r))
		}
		return out, nil
	})
}

func (s *PresaleArtworkService) Get(ctx context.Context, id int64) (model.PresaleArtwork, error) {
	p, err := s.queries.GetPresaleArtworkByID(ctx, id)
	if err != nil {
		return model.PresaleArtwork{}, notFound(err, "presale artwork")
	}
	return presaleArtworkFromStore(p), nil
}

func (s *PresaleArtworkService) validate(ctx context.Context, in *PresaleArtworkInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return invalid("title is required")
	}
	if in.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	if !currencyPattern.MatchString(in.Currency) {
		return invalid("currency %q is not an ISO 4217 code", in.Currency)
	}
	if in.ArtistID != nil {
		if _, err := s.queries.GetArtistByID(ctx, *in.ArtistID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return invalid("artist %d does not exist", *in.ArtistID)
			}
			return err
		}
	}
	return nil
}

// Create appends an artwork at the end of the display order.
func (s *PresaleArtworkService) Create(ctx context.Context, in PresaleArtworkInput) (model.PresaleArtwork, error) {
	if err := s.validate(ctx, &in); err != nil {
		return model.PresaleArtwork{}, err
	}

	var created store.PresaleArtwork
	err := store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		last, err := q.MaxPresaleArtworkOrder(ctx)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		created, err = q.CreatePresaleArtwork(ctx, store.CreatePresaleArtworkParams{
			ArtistID:    util.NullInt64FromPtr(in.ArtistID),
			Title:       in.Title,
			Description: util.NullStringFromPtr(in.Description),
			ImageUrl:    in.ImageURL,
			Price:       in.Price.String(),
			Currency:    in.Currency,
			SortOrder:   last + 1,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		return err
	})
	if err != nil {
		return model.PresaleArtwork{}, fmt.Errorf("creating presale artwork: %w", err)
	}

	s.syncFields(ctx, created.ID, in)
	s.cache.Revalidate(ctx, cache.PathPresaleArtworks)
	return presaleArtworkFromStore(created), nil
}

// Update overwrites an artwork. The display order is not touched.
func (s *PresaleArtworkService) Update(ctx context.Context, id int64, in PresaleArtworkInput) (model.PresaleArtwork, error) {
	if _, err := s.queries.GetPresaleArtworkByID(ctx, id); err != nil {
		return model.PresaleArtwork{}, notFound(err, "presale artwork")
	}
	if err := s.validate(ctx, &in); err != nil {
		return model.PresaleArtwork{}, err
	}

	p, err := s.queries.UpdatePresaleArtwork(ctx, store.UpdatePresaleArtworkParams{
		ArtistID:    util.NullInt64FromPtr(in.ArtistID),
		Title:       in.Title,
		Description: util.NullStringFromPtr(in.Description),
		ImageUrl:    in.ImageURL,
		Price:       in.Price.String(),
		Currency:    in.Currency,
		UpdatedAt:   time.Now().UTC(),
		ID:          id,
	})
	if err != nil {
		return model.PresaleArtwork{}, fmt.Errorf("updating presale artwork: %w", err)
	}

	s.syncFields(ctx, id, in)
	s.cache.Revalidate(ctx, cache.PathPresaleArtworks)
	return presaleArtworkFromStore(p), nil
}

func (s *PresaleArtworkService) syncFields(ctx context.Context, id int64, in PresaleArtworkInput) {
	s.sync.Sync(ctx, model.EntityTypePresaleArtwork, id, map[string]*string{
		"title":       &in.Title,
		"description": in.Description,
	})
}

// SwapOrder exchanges the display positions of two artworks. No other row
// changes.
func (s *PresaleArtworkService) SwapOrder(ctx context.Context, firstID, secondID int64) error {
	if firstID == secondID {
		return invalid("cannot swap an artwork with itself")
	}

	err := store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		first, err := q.GetPresaleArtworkByID(ctx, firstID)
		if err != nil {
			return err
		}
		second, err := q.GetPresaleArtworkByID(ctx, secondID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := q.SetPresaleArtworkOrder(ctx, first.ID, second.SortOrder, now); err != nil {
			return err
		}
		return q.SetPresaleArtworkOrder(ctx, second.ID, first.SortOrder, now)
	})
	if err != nil {
		return notFound(err, "presale artwork")
	}

	s.cache.Revalidate(ctx, cache.PathPresaleArtworks)
	return nil
}

// Delete removes an artwork and closes the gap it leaves in the order.
func (s *PresaleArtworkService) Delete(ctx context.Context, id int64) error {
	err := store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		p, err := q.GetPresaleArtworkByID(ctx, id)
		if err != nil {
			return err
		}
		if err := deleteEntityTranslations(ctx, q, model.EntityTypePresaleArtwork, id); err != nil {
			return err
		}
		if err := q.DeletePresaleArtwork(ctx, id); err != nil {
			return err
		}
		return q.ShiftPresaleArtworkOrdersAfter(ctx, p.SortOrder, time.Now().UTC())
	})
	if err != nil {
		return notFound(err, "presale artwork")
	}

	s.cache.Revalidate(ctx, cache.PathPresaleArtworks, cache.PathTranslations)
	return nil
}
