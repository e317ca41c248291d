// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// referenceLanguages is the language set the back-office translates into.
// The first entry is the default (source) language.
var referenceLanguages = []CreateLanguageParams{
	{Code: "en", Name: "English", NativeName: "English", IsDefault: true, Direction: "ltr", Position: 0},
	{Code: "fr", Name: "French", NativeName: "Français", Direction: "ltr", Position: 1},
	{Code: "es", Name: "Spanish", NativeName: "Español", Direction: "ltr", Position: 2},
	{Code: "de", Name: "German", NativeName: "Deutsch", Direction: "ltr", Position: 3},
	{Code: "it", Name: "Italian", NativeName: "Italiano", Direction: "ltr", Position: 4},
}

// Seed inserts the reference languages when the languages table is empty.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	if !doSeed {
		return nil
	}

	q := New(db)
	count, err := q.CountLanguages(ctx)
	if err != nil {
		return fmt.Errorf("counting languages: %w", err)
	}
	if count > 0 {
		return nil
	}

	return RunInTx(ctx, db, func(q *Queries) error {
		for _, lang := range referenceLanguages {
			if _, err := q.CreateLanguage(ctx, lang); err != nil {
				return fmt.Errorf("creating language %s: %w", lang.Code, err)
			}
		}
		return nil
	})
}
