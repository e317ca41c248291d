// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
)

func TestEventLevelConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"info level", EventLevelInfo, "info"},
		{"warning level", EventLevelWarning, "warning"},
		{"error level", EventLevelError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("constant = %q, want %q", tt.constant, tt.expected)
			}
		})
	}
}

func TestEventCategoriesUnique(t *testing.T) {
	categories := []string{
		EventCategoryTranslation,
		EventCategoryPost,
		EventCategoryArtwork,
		EventCategoryConfig,
		EventCategorySystem,
		EventCategoryCache,
	}

	seen := make(map[string]bool)
	for _, cat := range categories {
		if seen[cat] {
			t.Errorf("duplicate category: %q", cat)
		}
		seen[cat] = true
	}
}

func TestTranslatableFields(t *testing.T) {
	for _, et := range []string{EntityTypeArtist, EntityTypeLandingArtist, EntityTypeGlossaryItem, EntityTypePresaleArtwork} {
		if !IsValidEntityType(et) {
			t.Errorf("IsValidEntityType(%q) = false", et)
		}
		if len(TranslatableFields[et]) != 2 {
			t.Errorf("TranslatableFields[%q] = %v, want two fields", et, TranslatableFields[et])
		}
	}
	if IsValidEntityType("page") {
		t.Error("IsValidEntityType(page) = true")
	}
}

func TestLanguageNames(t *testing.T) {
	fr := Language{Code: "fr", Name: "Français"}
	if got := fr.EnglishName(); got != "French" {
		t.Errorf("EnglishName() = %q, want French", got)
	}

	bogus := Language{Code: "not a tag", Name: "Custom"}
	if got := bogus.EnglishName(); got != "Custom" {
		t.Errorf("EnglishName() = %q, want Custom", got)
	}

	ar := Language{Code: "ar", Direction: DirectionRTL}
	if !ar.IsRTL() {
		t.Error("IsRTL() = false for rtl language")
	}
}
