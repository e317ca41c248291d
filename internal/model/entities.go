// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Artist is a marketplace artist profile.
type Artist struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Biography        *string   `json:"biography"`
	ShortDescription *string   `json:"short_description"`
	AvatarURL        string    `json:"avatar_url"`
	WalletAddress    string    `json:"wallet_address"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LandingArtist is an artist featured on the landing page.
type LandingArtist struct {
	ID          int64     `json:"id"`
	ArtistID    int64     `json:"artist_id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ImageURL    string    `json:"image_url"`
	Position    int64     `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GlossaryItem is a term explained in the marketplace glossary.
type GlossaryItem struct {
	ID         int64     `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PresaleArtwork is an artwork offered before the public sale. SortOrder is
// 1-based and dense across all presale artworks.
type PresaleArtwork struct {
	ID          int64     `json:"id"`
	ArtistID    *int64    `json:"artist_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    string    `json:"image_url"`
	Price       Money     `json:"price"`
	Currency    string    `json:"currency"`
	SortOrder   int64     `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
