// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/translator"
)

// SyncFailure records one (field, language) pair that could not be written.
type SyncFailure struct {
	Field    string `json:"field"`
	Language string `json:"language"`
	Error    string `json:"error"`
}

// SyncReport summarizes one FieldSync run.
type SyncReport struct {
	EntityType   string        `json:"entity_type"`
	EntityID     int64         `json:"entity_id"`
	Written      int           `json:"written"`
	Skipped      int           `json:"skipped"`
	Untranslated int           `json:"untranslated,omitempty"` // rows seeded with the source text, no provider
	Failures     []SyncFailure `json:"failures,omitempty"`
}

// OK reports whether every translation was written or already present.
func (r SyncReport) OK() bool {
	return len(r.Failures) == 0
}

// FieldSync mirrors editable entity fields into the translations table.
//
// The default-language row always holds the entity's current value. Rows of
// the other languages are created once from a machine translation and are
// never overwritten afterwards; editors change them through the
// translations API.
type FieldSync struct {
	queries    *store.Queries
	cache      *cache.Manager
	translator translator.Translator
	logger     *slog.Logger
}

// NewFieldSync creates a new FieldSync.
func NewFieldSync(db *sql.DB, cm *cache.Manager, tr translator.Translator, logger *slog.Logger) *FieldSync {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldSync{
		queries:    store.New(db),
		cache:      cm,
		translator: tr,
		logger:     logger,
	}
}

// Sync writes fields for entityType/entityID into every language. Nil values
// are skipped. Failures are reported and logged but never returned, so the
// caller's own write is not affected by them.
func (s *FieldSync) Sync(ctx context.Context, entityType string, entityID int64, fields map[string]*string) SyncReport {
	report := SyncReport{EntityType: entityType, EntityID: entityID}

	defaultLang, err := s.cache.Languages.Default(ctx)
	if err != nil {
		report.Failures = append(report.Failures, SyncFailure{Language: "*", Error: err.Error()})
		s.logReport(report)
		return report
	}
	targets, err := s.cache.Languages.Targets(ctx)
	if err != nil {
		report.Failures = append(report.Failures, SyncFailure{Language: "*", Error: err.Error()})
		s.logReport(report)
		return report
	}

	names := make([]string, 0, len(fields))
	for name, value := range fields {
		if value != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, field := range names {
		value := *fields[field]
		now := time.Now().UTC()

		_, err := s.queries.UpsertTranslation(ctx, store.WriteTranslationParams{
			EntityType: entityType,
			EntityID:   entityID,
			Field:      field,
			Value:      value,
			LanguageID: defaultLang.ID,
			Now:        now,
		})
		if err != nil {
			report.Failures = append(report.Failures, SyncFailure{Field: field, Language: defaultLang.Code, Error: err.Error()})
		} else {
			report.Written++
		}

		for _, lang := range targets {
			s.syncTarget(ctx, &report, field, value, defaultLang, lang)
		}
	}

	if report.Written > 0 {
		s.cache.Revalidate(ctx, cache.PathTranslations)
	}
	s.logReport(report)
	return report
}

// syncTarget creates the row for one non-default language if it is absent.
func (s *FieldSync) syncTarget(ctx context.Context, report *SyncReport, field, value string, source, target store.Language) {
	key := store.TranslationKey{
		EntityType: report.EntityType,
		EntityID:   report.EntityID,
		Field:      field,
		LanguageID: target.ID,
	}
	fail := func(err error) {
		report.Failures = append(report.Failures, SyncFailure{Field: field, Language: target.Code, Error: err.Error()})
	}

	if _, err := s.queries.GetTranslation(ctx, key); err == nil {
		report.Skipped++
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		fail(err)
		return
	}

	translated := value
	if strings.TrimSpace(value) != "" {
		var err error
		translated, err = s.translator.TranslateText(ctx, value, translatorLanguage(source), translatorLanguage(target))
		switch {
		case translator.IsPermanent(err):
			// Editors translate the row through the translations API.
			translated = value
			report.Untranslated++
		case err != nil:
			fail(err)
			return
		}
	}

	n, err := s.queries.InsertTranslationIfAbsent(ctx, store.WriteTranslationParams{
		EntityType: report.EntityType,
		EntityID:   report.EntityID,
		Field:      field,
		Value:      translated,
		LanguageID: target.ID,
		Now:        time.Now().UTC(),
	})
	switch {
	case err != nil:
		fail(err)
	case n == 0:
		// A concurrent writer created the row first.
		report.Skipped++
	default:
		report.Written++
	}
}

func (s *FieldSync) logReport(r SyncReport) {
	for _, f := range r.Failures {
		s.logger.Warn("translation sync failed",
			"category", model.EventCategoryTranslation,
			"entity_type", r.EntityType,
			"entity_id", r.EntityID,
			"field", f.Field,
			"language", f.Language,
			"error", f.Error)
	}
	if r.OK() {
		s.logger.Debug("translation sync done",
			"entity_type", r.EntityType,
			"entity_id", r.EntityID,
			"written", r.Written,
			"skipped", r.Skipped,
			"untranslated", r.Untranslated)
	}
}

// deleteEntityTranslations removes every translation row of an entity.
// It runs on the caller's transaction.
func deleteEntityTranslations(ctx context.Context, q *store.Queries, entityType string, ids ...int64) error {
	for _, id := range ids {
		if err := q.DeleteTranslationsForEntity(ctx, entityType, id); err != nil {
			return err
		}
	}
	return nil
}
