// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type Language struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	NativeName string    `json:"native_name"`
	IsDefault  bool      `json:"is_default"`
	Direction  string    `json:"direction"`
	Position   int64     `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

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

type Artist struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Slug             string         `json:"slug"`
	Biography        sql.NullString `json:"biography"`
	ShortDescription sql.NullString `json:"short_description"`
	AvatarUrl        string         `json:"avatar_url"`
	WalletAddress    string         `json:"wallet_address"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type LandingArtist struct {
	ID          int64          `json:"id"`
	ArtistID    int64          `json:"artist_id"`
	Title       sql.NullString `json:"title"`
	Description sql.NullString `json:"description"`
	ImageUrl    string         `json:"image_url"`
	Position    int64          `json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type GlossaryItem struct {
	ID         int64     `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PresaleArtwork struct {
	ID          int64          `json:"id"`
	ArtistID    sql.NullInt64  `json:"artist_id"`
	Title       string         `json:"title"`
	Description sql.NullString `json:"description"`
	ImageUrl    string         `json:"image_url"`
	Price       string         `json:"price"`
	Currency    string         `json:"currency"`
	SortOrder   int64          `json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type SeoPost struct {
	ID                   int64          `json:"id"`
	LanguageID           int64          `json:"language_id"`
	OriginalPostID       sql.NullInt64  `json:"original_post_id"`
	Title                string         `json:"title"`
	MetaDescription      string         `json:"meta_description"`
	MetaKeywords         string         `json:"meta_keywords"`
	ListTags             string         `json:"list_tags"`
	Slug                 string         `json:"slug"`
	Content              string         `json:"content"`
	Excerpt              string         `json:"excerpt"`
	Status               string         `json:"status"`
	Pinned               bool           `json:"pinned"`
	MainImageUrl         string         `json:"main_image_url"`
	MainImageAlt         string         `json:"main_image_alt"`
	MainImageCaption     string         `json:"main_image_caption"`
	GeneratedHtml        string         `json:"generated_html"`
	JsonLd               string         `json:"json_ld"`
	GeneratedArticleHtml string         `json:"generated_article_html"`
	TranslationStatus    string         `json:"translation_status"`
	TranslationError     string         `json:"translation_error"`
	TranslatedAt         sql.NullTime   `json:"translated_at"`
	PublishedAt          sql.NullTime   `json:"published_at"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

type SeoTag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type TranslationJob struct {
	ID            int64        `json:"id"`
	BatchID       string       `json:"batch_id"`
	Kind          string       `json:"kind"`
	PivotPostID   int64        `json:"pivot_post_id"`
	TargetPostID  int64        `json:"target_post_id"`
	ChangedFields string       `json:"changed_fields"`
	Status        string       `json:"status"`
	Attempts      int64        `json:"attempts"`
	LastError     string       `json:"last_error"`
	NextAttemptAt time.Time    `json:"next_attempt_at"`
	CompletedAt   sql.NullTime `json:"completed_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
