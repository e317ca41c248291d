// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the business logic of the back-office: editorial
// entities, the translation store synchronizer, blog posts with their
// translation groups and the propagation of pivot changes.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/store"
)

// EventService reads the event log written by the logging handler.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
	}
}

// List returns events newest first. Empty level or category match all.
func (s *EventService) List(ctx context.Context, level, category string, limit, offset int64) ([]model.Event, error) {
	rows, err := s.queries.ListEvents(ctx, store.ListEventsParams{
		Level:    level,
		Category: category,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	out := make([]model.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, eventFromStore(r))
	}
	return out, nil
}

// Prune deletes events older than the retention period and returns the
// number of removed rows.
func (s *EventService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := s.queries.DeleteEventsBefore(ctx, time.Now().UTC().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("pruning events: %w", err)
	}
	return n, nil
}
