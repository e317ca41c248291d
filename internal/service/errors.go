// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the services. Handlers map them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrTranslationExists = errors.New("translation already exists")
	ErrNotPivot          = errors.New("post is a translation, not a pivot")
	ErrInvalidInput      = errors.New("invalid input")
)

// invalid wraps ErrInvalidInput with a user-facing reason.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// notFound maps sql.ErrNoRows to ErrNotFound and wraps everything else.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("loading %s: %w", what, err)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isInvalid(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
