// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Entity types stored in the translations table.
const (
	EntityTypeArtist         = "artist"
	EntityTypeLandingArtist  = "landing_artist"
	EntityTypeGlossaryItem   = "glossary_item"
	EntityTypePresaleArtwork = "presale_artwork"
)

// TranslatableFields lists, per entity type, the fields mirrored into the
// translations table.
var TranslatableFields = map[string][]string{
	EntityTypeArtist:         {"biography", "short_description"},
	EntityTypeLandingArtist:  {"title", "description"},
	EntityTypeGlossaryItem:   {"term", "definition"},
	EntityTypePresaleArtwork: {"title", "description"},
}

// IsValidEntityType reports whether t names an entity with translatable fields.
func IsValidEntityType(t string) bool {
	_, ok := TranslatableFields[t]
	return ok
}

// Translation is one translated field value of a simple entity.
type Translation struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Field      string    `json:"field"`
	Value      string    `json:"value"`
	LanguageID int64     `json:"language_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
